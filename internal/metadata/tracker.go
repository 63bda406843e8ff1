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

// Package metadata records statistics about search runs and persists them
// as JSON files, one per run. A run links to the previous run of the same
// query so result growth can be followed over time.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Tracker collects statistics during a search run. Create one at the start
// of each run.
type Tracker struct {
	runID        string
	startTime    time.Time
	apiCallCount int
	branchCalls  int
	stats        RunStats
}

// RunStats holds the running counts of a search.
type RunStats struct {
	TotalCount int // total_count reported by the first page
	Pages      int // pages successfully parsed
	Records    int // match records seen
	NewURLs    int // URLs not present before the run
	BrokenPage int // page that came back broken, 0 if none
}

// New creates a tracker with a fresh run ID.
func New() *Tracker {
	return &Tracker{
		runID:     uuid.NewString(),
		startTime: time.Now(),
	}
}

// RunID returns the identifier of the run.
func (t *Tracker) RunID() string {
	return t.runID
}

// IncrementAPICall records that an API call was made.
func (t *Tracker) IncrementAPICall() {
	t.apiCallCount++
}

// SetTotal records the total count reported by the first page.
func (t *Tracker) SetTotal(total int) {
	t.stats.TotalCount = total
}

// RecordPage records a parsed page holding n items.
func (t *Tracker) RecordPage(n int) {
	t.stats.Pages++
	t.stats.Records += n
}

// RecordNewURLs adds n to the count of previously unseen URLs.
func (t *Tracker) RecordNewURLs(n int) {
	t.stats.NewURLs += n
}

// MarkBroken records the page number that returned a broken response.
func (t *Tracker) MarkBroken(page int) {
	t.stats.BrokenPage = page
}

// Stats returns a copy of the running statistics.
func (t *Tracker) Stats() RunStats {
	return t.stats
}

// RecordBranchQueries sets the number of default-branch lookups sent to
// the GraphQL API.
func (t *Tracker) RecordBranchQueries(n int) {
	t.branchCalls = n
}

// GenerateMetadata creates the record for the run. urlsWritten is the
// number of lines saved to the URL file, zero when it was not written.
func (t *Tracker) GenerateMetadata(version string, params SearchParams, urlsWritten int, previous *RunRef) *SearchMetadata {
	completedAt := time.Now()

	return &SearchMetadata{
		ScoutVersion: version,
		RunID:        t.runID,
		Parameters:   params,
		Results: SearchResults{
			TotalCount:    t.stats.TotalCount,
			Pages:         t.stats.Pages,
			Records:       t.stats.Records,
			NewURLs:       t.stats.NewURLs,
			URLsWritten:   urlsWritten,
			Broken:        t.stats.BrokenPage > 0,
			BrokenPage:    t.stats.BrokenPage,
			Duration:      completedAt.Sub(t.startTime).String(),
			APICallCount:  t.apiCallCount,
			BranchQueries: t.branchCalls,
			StartedAt:     t.startTime,
			CompletedAt:   completedAt,
		},
		PreviousRun: previous,
	}
}

// Ref returns a reference to this record for linking from a later run.
func (m *SearchMetadata) Ref() *RunRef {
	return &RunRef{
		RunID:       m.RunID,
		TotalCount:  m.Results.TotalCount,
		CompletedAt: m.Results.CompletedAt,
	}
}

// SaveMetadata writes the record to dir as
// search-metadata-{unix}-{runid}.json. The file is written to a temporary
// name and renamed into place.
func SaveMetadata(metadata *SearchMetadata, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create metadata directory: %w", err)
	}

	filename := fmt.Sprintf("search-metadata-%d-%s.json", metadata.Results.StartedAt.Unix(), metadata.RunID)
	path := filepath.Join(dir, filename)

	tmpFile := path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return "", fmt.Errorf("failed to create metadata file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(metadata); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return "", fmt.Errorf("failed to write metadata: %w", err)
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return "", fmt.Errorf("failed to close metadata file: %w", err)
	}

	if err := os.Rename(tmpFile, path); err != nil {
		return "", fmt.Errorf("failed to save metadata file: %w", err)
	}

	return path, nil
}

// LoadLatestMetadata returns the most recently started run of query found
// in dir, or nil if there is none. Unreadable files are skipped.
func LoadLatestMetadata(dir, query string) (*SearchMetadata, error) {
	files, err := filepath.Glob(filepath.Join(dir, "search-metadata-*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list metadata files: %w", err)
	}

	var latest *SearchMetadata
	for _, file := range files {
		m, err := readMetadata(file)
		if err != nil || m.Parameters.Query != query {
			continue
		}
		if latest == nil || m.Results.StartedAt.After(latest.Results.StartedAt) {
			latest = m
		}
	}

	return latest, nil
}

func readMetadata(path string) (*SearchMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m SearchMetadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse metadata %s: %w", path, err)
	}
	return &m, nil
}
