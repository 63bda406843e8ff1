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

package metadata

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_Stats(t *testing.T) {
	tr := New()

	_, err := uuid.Parse(tr.RunID())
	require.NoError(t, err, "run id should be a UUID")

	tr.SetTotal(65)
	tr.IncrementAPICall()
	tr.RecordPage(30)
	tr.IncrementAPICall()
	tr.RecordPage(30)
	tr.RecordNewURLs(12)
	tr.RecordNewURLs(3)

	assert.Equal(t, RunStats{
		TotalCount: 65,
		Pages:      2,
		Records:    60,
		NewURLs:    15,
	}, tr.Stats())

	other := New()
	assert.NotEqual(t, tr.RunID(), other.RunID())
}

func TestTracker_GenerateMetadata(t *testing.T) {
	tr := New()
	tr.SetTotal(40)
	tr.IncrementAPICall()
	tr.IncrementAPICall()
	tr.RecordPage(30)
	tr.MarkBroken(2)
	tr.RecordBranchQueries(7)

	params := SearchParams{
		Query:    "needle+extension:go",
		Text:     "needle",
		Sort:     "indexed",
		PageSize: 30,
		Branch:   "master",
	}
	prev := &RunRef{RunID: "earlier", TotalCount: 20}

	time.Sleep(5 * time.Millisecond)
	m := tr.GenerateMetadata("1.2.3", params, 30, prev)

	assert.Equal(t, "1.2.3", m.ScoutVersion)
	assert.Equal(t, tr.RunID(), m.RunID)
	assert.Equal(t, params, m.Parameters)
	assert.Equal(t, 40, m.Results.TotalCount)
	assert.Equal(t, 1, m.Results.Pages)
	assert.Equal(t, 30, m.Results.Records)
	assert.Equal(t, 7, m.Results.BranchQueries)
	assert.Equal(t, 30, m.Results.URLsWritten)
	assert.Equal(t, 2, m.Results.APICallCount)
	assert.True(t, m.Results.Broken)
	assert.Equal(t, 2, m.Results.BrokenPage)
	assert.True(t, m.Results.CompletedAt.After(m.Results.StartedAt))
	assert.NotEmpty(t, m.Results.Duration)
	assert.Same(t, prev, m.PreviousRun)

	ref := m.Ref()
	assert.Equal(t, m.RunID, ref.RunID)
	assert.Equal(t, 40, ref.TotalCount)
}

func TestSaveMetadata(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "meta")

	m := New().GenerateMetadata("dev", SearchParams{Query: "q"}, 0, nil)
	path, err := SaveMetadata(m, dir)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filepath.Base(path), "search-metadata-"))
	assert.True(t, strings.HasSuffix(path, m.RunID+".json"))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file should be renamed away")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded SearchMetadata
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, m.RunID, loaded.RunID)
	assert.Equal(t, "q", loaded.Parameters.Query)
	assert.Nil(t, loaded.PreviousRun)
	assert.NotContains(t, string(data), "previous_run")
}

func TestLoadLatestMetadata(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	save := func(query string, started time.Time, total int) *SearchMetadata {
		m := &SearchMetadata{
			RunID:      uuid.NewString(),
			Parameters: SearchParams{Query: query},
			Results:    SearchResults{TotalCount: total, StartedAt: started},
		}
		_, err := SaveMetadata(m, dir)
		require.NoError(t, err)
		return m
	}

	save("needle", base, 10)
	newest := save("needle", base.Add(2*time.Hour), 30)
	save("needle", base.Add(time.Hour), 20)
	save("other", base.Add(5*time.Hour), 99)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "search-metadata-1-garbage.json"), []byte("{"), 0o644))

	got, err := LoadLatestMetadata(dir, "needle")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, newest.RunID, got.RunID)
	assert.Equal(t, 30, got.Results.TotalCount)

	none, err := LoadLatestMetadata(dir, "absent")
	require.NoError(t, err)
	assert.Nil(t, none)

	empty, err := LoadLatestMetadata(filepath.Join(dir, "missing"), "needle")
	require.NoError(t, err)
	assert.Nil(t, empty)
}
