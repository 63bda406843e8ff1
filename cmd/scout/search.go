// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/sirseerhq/sirseer-scout/internal/config"
	"github.com/sirseerhq/sirseer-scout/internal/credentials"
	"github.com/sirseerhq/sirseer-scout/internal/github"
	"github.com/sirseerhq/sirseer-scout/internal/logger"
	"github.com/sirseerhq/sirseer-scout/internal/metadata"
	"github.com/sirseerhq/sirseer-scout/internal/output"
	"github.com/sirseerhq/sirseer-scout/internal/query"
	"github.com/sirseerhq/sirseer-scout/internal/spans"
	"github.com/sirseerhq/sirseer-scout/internal/state"
	"github.com/sirseerhq/sirseer-scout/pkg/version"
)

// searchFlags are the flags of the search command beyond the filters.
type searchFlags struct {
	filterFlags

	maxPages      int
	output        string
	overwrite     bool
	records       string
	branch        string
	resolveBranch bool
	showMatches   bool
	highlight     string
	user          string
	token         string
	timeout       time.Duration
	metadataDir   string
}

func newSearchCommand(rf *rootFlags) *cobra.Command {
	var f searchFlags

	cmd := &cobra.Command{
		Use:   "search [text]",
		Short: "Search GitHub code and save the URLs of matching files",
		Long: `Search GitHub code and save the URLs of matching files.

The first page reports how many results exist; the remaining pages are then
fetched in order. GitHub serves at most the first 1000 results of a search.

URLs already in the output file are kept and new ones are appended, unless
--overwrite is given. If GitHub refuses a page part way through (rate limit,
bad credentials), the URLs collected so far are still saved.

Authentication uses HTTP basic auth:
  - Username from --user, the config file or SCOUT_USER
  - Token from --token, GITHUB_TOKEN, the gh CLI, or an interactive prompt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fs := cmd.Flags()
			cfg, err := loadConfig(fs, rf)
			if err != nil {
				return err
			}
			q, err := buildQuery(fs, cfg, &f.filterFlags, args)
			if err != nil {
				return err
			}
			applySearchFlags(fs, cfg, &f)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			return runSearch(ctx, cfg, q, &f, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	fs := cmd.Flags()
	addFilterFlags(fs, &f.filterFlags)
	fs.IntVar(&f.maxPages, "max-pages", 0, "Stop after this many pages (0 means all reachable pages)")
	fs.StringVar(&f.output, "output", "", "URL file to update (default \"urls.txt\")")
	fs.BoolVar(&f.overwrite, "overwrite", false, "Replace the URL file with this run's URLs instead of merging")
	fs.StringVar(&f.records, "records", "", "Also write every match record as NDJSON to this file")
	fs.StringVar(&f.branch, "branch", "", "Branch used in file URLs (default \"master\")")
	fs.BoolVar(&f.resolveBranch, "resolve-branch", false, "Look up each repository's default branch through the GraphQL API")
	fs.BoolVar(&f.showMatches, "show-matches", false, "Print each URL with its highlighted match fragments")
	fs.StringVar(&f.highlight, "highlight", "", "Case-insensitive pattern to highlight (default: the search text)")
	fs.StringVar(&f.user, "user", "", "GitHub username for basic authentication")
	fs.StringVar(&f.token, "token", "", "GitHub personal access token (overrides GITHUB_TOKEN env var)")
	fs.DurationVar(&f.timeout, "timeout", 0, "Per-request timeout (0 means none)")
	fs.StringVar(&f.metadataDir, "metadata-dir", "", "Write run metadata JSON files to this directory")

	return cmd
}

// applySearchFlags overrides cfg with the flags the user set explicitly.
func applySearchFlags(fs *pflag.FlagSet, cfg *config.Config, f *searchFlags) {
	if fs.Changed("max-pages") {
		cfg.Search.MaxPages = f.maxPages
	}
	if fs.Changed("branch") {
		cfg.Search.Branch = f.branch
	}
	if fs.Changed("resolve-branch") {
		cfg.Search.ResolveBranch = f.resolveBranch
	}
	if fs.Changed("output") {
		cfg.Output.URLsFile = f.output
	}
	if fs.Changed("overwrite") {
		cfg.Output.Overwrite = f.overwrite
	}
	if fs.Changed("records") {
		cfg.Output.RecordsFile = f.records
	}
	if fs.Changed("show-matches") {
		cfg.Output.ShowMatches = f.showMatches
	}
	if fs.Changed("metadata-dir") {
		cfg.Output.MetadataDir = f.metadataDir
	}
	if fs.Changed("timeout") {
		cfg.GitHub.Timeout = f.timeout
	}
}

// runSearch wires the configured collaborators and runs one search.
func runSearch(ctx context.Context, cfg *config.Config, q query.SearchQuery, f *searchFlags, stdout, stderr io.Writer) error {
	tracker := metadata.New()

	log, err := logger.New(cfg.Log, stderr)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	log = log.With(zap.String("run_id", tracker.RunID()))

	var prompter credentials.Prompter
	if p := credentials.NewTerminalPrompter(stderr); p != nil {
		prompter = p
	}
	creds, err := credentials.Resolve(credentials.Options{
		TokenFlag:   f.token,
		TokenEnv:    cfg.GitHub.TokenEnv,
		UserFlag:    f.user,
		UserConfig:  cfg.GitHub.Username,
		APIEndpoint: cfg.GitHub.APIEndpoint,
		Prompter:    prompter,
	})
	if err != nil {
		return err
	}
	log.Debug("credentials resolved", zap.String("user", creds.Username), zap.String("token_source", creds.TokenSource))

	client := github.NewRESTClient(github.Options{
		APIBase:  cfg.GitHub.APIEndpoint,
		Username: creds.Username,
		Token:    creds.Token,
		Sort:     cfg.Search.Sort,
		PerPage:  cfg.Search.PageSize,
		Timeout:  cfg.GitHub.Timeout,
		Logger:   log,
	})

	var branches github.BranchSource = github.StaticBranch(cfg.Search.Branch)
	var resolver *github.BranchResolver
	if cfg.Search.ResolveBranch {
		resolver = github.NewBranchResolver(cfg.GitHub.GraphQLEndpoint, creds.Token, cfg.Search.Branch, nil)
		branches = resolver
	}

	writer, err := newRecordWriter(cfg, q, f.highlight, stdout)
	if err != nil {
		return err
	}
	if writer != nil {
		defer writer.Close()
	}

	urls := state.NewURLSet()
	if !cfg.Output.Overwrite {
		if urls, err = state.LoadURLSet(cfg.Output.URLsFile); err != nil {
			return fmt.Errorf("failed to load %s: %w", cfg.Output.URLsFile, err)
		}
		log.Debug("loaded known urls", zap.String("file", cfg.Output.URLsFile), zap.Int("count", urls.Len()))
	}

	p := &pipeline{
		searcher: client,
		branches: branches,
		fallback: cfg.Search.Branch,
		webBase:  cfg.GitHub.WebURL,
		perPage:  cfg.Search.PageSize,
		maxPages: cfg.Search.MaxPages,
		writer:   writer,
		tracker:  tracker,
		logger:   log,
		progress: stderr,
	}
	written, runErr := p.execute(ctx, q, urls, cfg.Output.URLsFile)
	if resolver != nil {
		tracker.RecordBranchQueries(resolver.Queries())
	}

	if cfg.Output.MetadataDir != "" {
		if err := saveRunMetadata(cfg, q, tracker, written, log); err != nil {
			log.Warn("failed to save run metadata", zap.Error(err))
		}
	}

	return runErr
}

func newRecordWriter(cfg *config.Config, q query.SearchQuery, pattern string, stdout io.Writer) (output.RecordWriter, error) {
	var writers []output.RecordWriter

	if cfg.Output.RecordsFile != "" {
		w, err := output.NewFileWriter(cfg.Output.RecordsFile)
		if err != nil {
			return nil, err
		}
		writers = append(writers, w)
	}

	if cfg.Output.ShowMatches {
		finder := spans.Literal(q.Text())
		if pattern != "" {
			var err error
			if finder, err = spans.NewFinder(pattern); err != nil {
				for _, w := range writers {
					_ = w.Close()
				}
				return nil, err
			}
		}
		writers = append(writers, output.NewMatchPrinter(stdout, output.NewHighlighter(finder, output.DefaultMatchStyle)))
	}

	if len(writers) == 0 {
		return nil, nil
	}
	return output.Multi(writers...), nil
}

func saveRunMetadata(cfg *config.Config, q query.SearchQuery, tracker *metadata.Tracker, urlsWritten int, log *zap.Logger) error {
	previous, err := metadata.LoadLatestMetadata(cfg.Output.MetadataDir, q.String())
	if err != nil {
		return err
	}

	var prevRef *metadata.RunRef
	if previous != nil {
		prevRef = previous.Ref()
	}

	params := metadata.SearchParams{
		Query:        q.String(),
		Text:         q.Text(),
		Extensions:   cfg.Search.Extensions,
		ExcludeOrgs:  cfg.Search.ExcludeOrgs,
		ExcludeUsers: cfg.Search.ExcludeUsers,
		Sort:         cfg.Search.Sort,
		PageSize:     cfg.Search.PageSize,
		MaxPages:     cfg.Search.MaxPages,
		Branch:       cfg.Search.Branch,
		OutputFile:   cfg.Output.URLsFile,
		Overwrite:    cfg.Output.Overwrite,
	}

	m := tracker.GenerateMetadata(version.Version, params, urlsWritten, prevRef)
	path, err := metadata.SaveMetadata(m, cfg.Output.MetadataDir)
	if err != nil {
		return err
	}

	fields := []zap.Field{zap.String("file", path)}
	if prevRef != nil {
		fields = append(fields,
			zap.String("previous_run", prevRef.RunID),
			zap.Int("total_change", m.Results.TotalCount-prevRef.TotalCount))
	}
	log.Info("run metadata saved", fields...)
	return nil
}
