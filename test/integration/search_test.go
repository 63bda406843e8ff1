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

package integration

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirseerhq/sirseer-scout/test/testutil"
)

func TestSearch_FullRun(t *testing.T) {
	records := testutil.GenerateRecords(70)
	server := testutil.NewCodeSearchServer(t, records)
	server.Username, server.Token = "test-user", "test-token"

	dir := t.TempDir()
	urlsPath := filepath.Join(dir, "urls.txt")
	recordsPath := filepath.Join(dir, "records.ndjson")
	metaDir := filepath.Join(dir, "meta")

	result := testutil.RunSearch(t, server, "needle",
		"--output", urlsPath,
		"--records", recordsPath,
		"--metadata-dir", metaDir,
	)
	testutil.AssertCLISuccess(t, result)

	if got := server.RequestCount(); got != 3 {
		t.Errorf("expected 3 search requests, got %d", got)
	}
	testutil.AssertURLFile(t, urlsPath, testutil.RecordURLs(records, "master"))
	testutil.AssertNDJSONRecords(t, recordsPath, 70)
	testutil.AssertMetadataFile(t, metaDir, "needle")

	if !strings.Contains(result.Stderr, "Found 70 results (3 pages)") {
		t.Errorf("missing progress summary in stderr:\n%s", result.Stderr)
	}
	if result.Stdout != "" {
		t.Errorf("expected empty stdout, got: %s", result.Stdout)
	}
}

func TestSearch_PartialSalvage(t *testing.T) {
	records := testutil.GenerateRecords(90)
	server := testutil.NewCodeSearchServer(t, records)
	server.BrokenPage = 3

	dir := t.TempDir()
	urlsPath := filepath.Join(dir, "urls.txt")
	testutil.WriteLines(t, urlsPath, "https://github.com/earlier/run/tree/master/a.go")

	result := testutil.RunSearch(t, server, "needle", "--output", urlsPath)

	testutil.AssertExitCode(t, result, 2)
	testutil.AssertCLIError(t, result, "page 3")

	want := append([]string{"https://github.com/earlier/run/tree/master/a.go"}, testutil.RecordURLs(records[:60], "master")...)
	testutil.AssertURLFile(t, urlsPath, want)
}

func TestSearch_Overwrite(t *testing.T) {
	records := testutil.GenerateRecords(2)
	server := testutil.NewCodeSearchServer(t, records)

	urlsPath := filepath.Join(t.TempDir(), "urls.txt")
	testutil.WriteLines(t, urlsPath, "https://github.com/stale/entry/tree/master/z.go")

	result := testutil.RunSearch(t, server, "needle", "--output", urlsPath, "--overwrite")
	testutil.AssertCLISuccess(t, result)

	testutil.AssertURLFile(t, urlsPath, testutil.RecordURLs(records, "master"))
}

func TestSearch_MaxPagesAndFilters(t *testing.T) {
	server := testutil.NewCodeSearchServer(t, testutil.GenerateRecords(100))

	urlsPath := filepath.Join(t.TempDir(), "urls.txt")
	result := testutil.RunSearch(t, server, "needle",
		"--output", urlsPath,
		"--max-pages", "2",
		"--ext", "go",
		"--exclude-org", "golang",
		"--exclude-user", "bot",
	)
	testutil.AssertCLISuccess(t, result)

	searches := server.Searches()
	if len(searches) != 2 {
		t.Fatalf("expected 2 search requests, got %d", len(searches))
	}
	if q := searches[0].Get("q"); q != "needle extension:go -org:golang -user:bot" {
		t.Errorf("unexpected query: %q", q)
	}
	if got := len(testutil.ReadLines(t, urlsPath)); got != 60 {
		t.Errorf("expected 60 URLs, got %d", got)
	}
}
