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
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	scouterrors "github.com/sirseerhq/sirseer-scout/internal/errors"
	"github.com/sirseerhq/sirseer-scout/internal/github"
	"github.com/sirseerhq/sirseer-scout/internal/metadata"
	"github.com/sirseerhq/sirseer-scout/internal/output"
	"github.com/sirseerhq/sirseer-scout/internal/query"
	"github.com/sirseerhq/sirseer-scout/internal/state"
)

// pipeline pages through one search and collects record URLs.
type pipeline struct {
	searcher github.Searcher
	branches github.BranchSource
	fallback string
	webBase  string
	perPage  int
	maxPages int

	// writer receives every record; nil discards them.
	writer   output.RecordWriter
	tracker  *metadata.Tracker
	logger   *zap.Logger
	progress io.Writer
}

// execute runs the search, adding URLs to urls, then writes urls to path.
// It returns how many lines were written, zero when path was left untouched.
// A page refused part way through still saves what earlier pages found.
func (p *pipeline) execute(ctx context.Context, q query.SearchQuery, urls *state.URLSet, path string) (int, error) {
	fmt.Fprintf(p.progress, "Searching code for %s...\n", q.String())

	before := urls.Len()
	err := p.run(ctx, q, urls)

	switch {
	case err == nil:
	case isBroken(err) && p.tracker.Stats().Pages > 0:
		fmt.Fprintf(p.progress, "\r\033[K")
		p.logger.Warn("search stopped early, saving partial results",
			zap.Int("pages", p.tracker.Stats().Pages),
			zap.Error(err))
	default:
		fmt.Fprintf(p.progress, "\r\033[K")
		return 0, err
	}

	if writeErr := state.DumpLines(urls.All(), path); writeErr != nil {
		return 0, errors.Join(err, fmt.Errorf("failed to save urls: %w", writeErr))
	}

	fmt.Fprintf(p.progress, "\r\033[K")
	fmt.Fprintf(p.progress, "Saved %s URLs to %s (%s new)\n",
		humanize.Comma(int64(urls.Len())), path, humanize.Comma(int64(urls.Len()-before)))

	return urls.Len(), err
}

// run fetches page 1, derives the page count from its total, then fetches
// the remaining pages in order.
func (p *pipeline) run(ctx context.Context, q query.SearchQuery, urls *state.URLSet) error {
	first, err := p.fetch(ctx, q, 1)
	if err != nil {
		return err
	}

	total := first.TotalCount
	reachable := github.ReachableTotal(total)
	p.tracker.SetTotal(total)

	lastPage := github.PageCount(reachable, p.perPage)
	if p.maxPages > 0 && p.maxPages < lastPage {
		lastPage = p.maxPages
	}

	fmt.Fprintf(p.progress, "Found %s results (%s pages)\n", humanize.Comma(int64(total)), humanize.Comma(int64(lastPage)))
	if reachable < total {
		p.logger.Warn("search has more results than GitHub serves",
			zap.Int("total", total),
			zap.Int("reachable", reachable))
	}
	if first.IncompleteResults {
		p.logger.Warn("GitHub reported incomplete results, the search timed out on its side")
	}

	for n := range github.Pages(reachable, p.perPage) {
		if n > lastPage {
			break
		}

		page := first
		if n > 1 {
			if page, err = p.fetch(ctx, q, n); err != nil {
				return err
			}
		}

		if err := p.collect(ctx, page, n, urls); err != nil {
			return err
		}
		p.updateProgress(n, lastPage)
	}

	// A total of zero yields no pages; page 1 still counts as fetched.
	if lastPage == 0 {
		p.tracker.RecordPage(first.Len())
	}

	return nil
}

// fetch requests page n and unwraps the result. A broken page is returned
// as an error wrapping ErrBrokenResponse.
func (p *pipeline) fetch(ctx context.Context, q query.SearchQuery, n int) (*github.Page, error) {
	res, err := p.searcher.SearchCode(ctx, q, n)
	p.tracker.IncrementAPICall()
	if err != nil {
		return nil, err
	}

	switch r := res.(type) {
	case *github.Page:
		p.logger.Debug("page fetched", zap.Int("page", n), zap.Int("items", r.Len()), zap.Int("total", r.TotalCount))
		return r, nil
	case *github.Broken:
		p.tracker.MarkBroken(n)
		p.logger.Debug("broken page", zap.Int("page", n), zap.Int("status", r.StatusCode), zap.String("message", r.Message))
		return nil, fmt.Errorf("page %d: %w", n, r.Err())
	default:
		return nil, fmt.Errorf("page %d: unexpected result %T", n, res)
	}
}

// collect turns the items of page n into records and URLs.
func (p *pipeline) collect(ctx context.Context, page *github.Page, n int, urls *state.URLSet) error {
	fresh := 0
	for record, err := range page.Records() {
		if err != nil {
			return fmt.Errorf("page %d: %w", n, err)
		}

		branch, err := p.branchFor(ctx, record)
		if err != nil {
			return err
		}

		url := record.URL(p.webBase, branch)
		if urls.Add(url) {
			fresh++
		}

		if p.writer != nil {
			if err := p.writer.Write(output.Record{MatchRecord: record, URL: url, Page: n}); err != nil {
				return fmt.Errorf("failed to write record: %w", err)
			}
		}
	}

	p.tracker.RecordPage(page.Len())
	p.tracker.RecordNewURLs(fresh)
	return nil
}

// branchFor returns the branch for the record's repository. Repositories
// the resolver cannot see fall back to the configured branch.
func (p *pipeline) branchFor(ctx context.Context, record github.MatchRecord) (string, error) {
	branch, err := p.branches.DefaultBranch(ctx, record.User, record.Repo)
	if errors.Is(err, scouterrors.ErrRepoNotFound) {
		p.logger.Warn("default branch unknown, using fallback",
			zap.String("repo", record.Repository()),
			zap.String("branch", p.fallback))
		return p.fallback, nil
	}
	return branch, err
}

// isBroken reports whether err came from a refused page.
func isBroken(err error) bool {
	return errors.Is(err, scouterrors.ErrBrokenResponse)
}

func (p *pipeline) updateProgress(page, lastPage int) {
	stats := p.tracker.Stats()
	fmt.Fprintf(p.progress, "\rPage %d/%d | %s records | %s new URLs",
		page, lastPage, humanize.Comma(int64(stats.Records)), humanize.Comma(int64(stats.NewURLs)))
}
