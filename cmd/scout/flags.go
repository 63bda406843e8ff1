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
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/sirseerhq/sirseer-scout/internal/config"
	"github.com/sirseerhq/sirseer-scout/internal/query"
)

// filterFlags shape the search query and are shared by search and query.
type filterFlags struct {
	preset       string
	extensions   []string
	excludeOrgs  []string
	excludeUsers []string
	sort         string
	pageSize     int
}

func addFilterFlags(fs *pflag.FlagSet, f *filterFlags) {
	fs.StringVar(&f.preset, "preset", "", "Named search from the config file")
	fs.StringSliceVar(&f.extensions, "ext", nil, "Only match files with this extension (repeatable)")
	fs.StringSliceVar(&f.excludeOrgs, "exclude-org", nil, "Skip repositories owned by this organization (repeatable)")
	fs.StringSliceVar(&f.excludeUsers, "exclude-user", nil, "Skip repositories owned by this user (repeatable)")
	fs.StringVar(&f.sort, "sort", "", "Sort key (default \"indexed\")")
	fs.IntVar(&f.pageSize, "page-size", 0, "Results per page, 1-100 (default 30)")
}

// loadConfig loads the configuration and applies the root flags on top.
func loadConfig(fs *pflag.FlagSet, rf *rootFlags) (*config.Config, error) {
	cfg, err := config.LoadConfig(rf.configPath)
	if err != nil {
		return nil, err
	}

	if fs.Changed("log-level") {
		cfg.Log.Level = rf.logLevel
	}
	if fs.Changed("log-format") {
		cfg.Log.Format = rf.logFormat
	}
	if fs.Changed("log-file") {
		cfg.Log.File = rf.logFile
	}

	return cfg, nil
}

// buildQuery applies the preset and filter flags to cfg, in that order, and
// returns the resulting query. A positional argument replaces the preset
// text.
func buildQuery(fs *pflag.FlagSet, cfg *config.Config, f *filterFlags, args []string) (query.SearchQuery, error) {
	var text string
	if f.preset != "" {
		presetText, err := cfg.ApplyPreset(f.preset)
		if err != nil {
			return query.SearchQuery{}, err
		}
		text = presetText
	}
	if len(args) > 0 {
		text = args[0]
	}

	if fs.Changed("ext") {
		cfg.Search.Extensions = f.extensions
	}
	if fs.Changed("exclude-org") {
		cfg.Search.ExcludeOrgs = f.excludeOrgs
	}
	if fs.Changed("exclude-user") {
		cfg.Search.ExcludeUsers = f.excludeUsers
	}
	if fs.Changed("sort") {
		cfg.Search.Sort = f.sort
	}
	if fs.Changed("page-size") {
		cfg.Search.PageSize = f.pageSize
	}

	q := query.Build(text, cfg.Search.Extensions, cfg.Search.ExcludeOrgs, cfg.Search.ExcludeUsers)
	if q.IsEmpty() {
		return query.SearchQuery{}, errors.New("search text is required: pass it as an argument or use --preset")
	}
	if q.Text() == "" {
		return query.SearchQuery{}, fmt.Errorf("query %q has no search text: GitHub code search needs at least one term", q.String())
	}

	return q, nil
}
