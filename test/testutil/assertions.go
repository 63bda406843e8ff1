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

package testutil

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// AssertURLFile checks that the URL file at path holds exactly want, in
// order.
func AssertURLFile(t *testing.T, path string, want []string) {
	t.Helper()

	got := ReadLines(t, path)
	if !slices.Equal(got, want) {
		t.Errorf("URL file %s mismatch\nGot:\n%v\nWant:\n%v", path, got, want)
	}
}

// AssertNDJSONRecords validates that a file holds count NDJSON match
// records, each with the fields every record carries.
func AssertNDJSONRecords(t *testing.T, path string, count int) {
	t.Helper()

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open records file: %v", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	n := 0
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		n++

		var record map[string]interface{}
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			t.Errorf("Line %d: invalid JSON: %v", n, err)
			continue
		}

		for _, field := range []string{"user", "repo", "path", "matches", "url", "page"} {
			if _, ok := record[field]; !ok {
				t.Errorf("Line %d: missing required field '%s'", n, field)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		t.Fatalf("Error reading file: %v", err)
	}
	if n != count {
		t.Errorf("Expected %d records, got %d", count, n)
	}
}

// AssertMetadataFile checks that dir holds exactly one run metadata file
// for query and returns its decoded contents.
func AssertMetadataFile(t *testing.T, dir, query string) map[string]interface{} {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(dir, "search-metadata-*.json"))
	if err != nil {
		t.Fatalf("Failed to glob metadata files: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Expected one metadata file, found %d", len(matches))
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("Failed to read metadata file: %v", err)
	}

	var metadata map[string]interface{}
	if err := json.Unmarshal(data, &metadata); err != nil {
		t.Fatalf("Invalid metadata JSON: %v", err)
	}

	for _, field := range []string{"scout_version", "run_id", "parameters", "results"} {
		if _, ok := metadata[field]; !ok {
			t.Errorf("Missing required metadata field: %s", field)
		}
	}

	params, _ := metadata["parameters"].(map[string]interface{})
	if params["query"] != query {
		t.Errorf("Metadata query = %v, want %q", params["query"], query)
	}

	return metadata
}
