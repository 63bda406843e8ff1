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

// Package metadata types define the structures used for tracking and
// persisting information about search runs.
package metadata

import (
	"time"
)

// SearchMetadata is the record of a single search run: what was asked,
// how it was paged, and what came back.
type SearchMetadata struct {
	ScoutVersion string        `json:"scout_version"`
	RunID        string        `json:"run_id"`
	Parameters   SearchParams  `json:"parameters"`
	Results      SearchResults `json:"results"`
	PreviousRun  *RunRef       `json:"previous_run,omitempty"`
}

// SearchParams captures the inputs of a run so it can be reproduced.
type SearchParams struct {
	Query        string   `json:"query"`
	Text         string   `json:"text"`
	Extensions   []string `json:"extensions,omitempty"`
	ExcludeOrgs  []string `json:"exclude_orgs,omitempty"`
	ExcludeUsers []string `json:"exclude_users,omitempty"`
	Sort         string   `json:"sort"`
	PageSize     int      `json:"page_size"`
	MaxPages     int      `json:"max_pages,omitempty"`
	Branch       string   `json:"branch"`
	OutputFile   string   `json:"output_file"`
	Overwrite    bool     `json:"overwrite"`
}

// SearchResults holds the statistics of a completed or aborted run.
type SearchResults struct {
	TotalCount    int       `json:"total_count"`
	Pages         int       `json:"pages_fetched"`
	Records       int       `json:"records"`
	NewURLs       int       `json:"new_urls"`
	URLsWritten   int       `json:"urls_written"`
	Broken        bool      `json:"broken"`
	BrokenPage    int       `json:"broken_page,omitempty"`
	Duration      string    `json:"duration"`
	APICallCount  int       `json:"api_calls_made"`
	BranchQueries int       `json:"branch_queries,omitempty"`
	StartedAt     time.Time `json:"started_at"`
	CompletedAt   time.Time `json:"completed_at"`
}

// RunRef links a run to the previous run of the same query.
type RunRef struct {
	RunID       string    `json:"run_id"`
	TotalCount  int       `json:"total_count"`
	CompletedAt time.Time `json:"completed_at"`
}
