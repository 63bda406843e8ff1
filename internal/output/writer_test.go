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

package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirseerhq/sirseer-scout/internal/github"
)

func testRecord(user, path string, page int) Record {
	return Record{
		MatchRecord: github.MatchRecord{User: user, Repo: "repo", Path: path, Matches: []string{"a <b> & c"}},
		URL:         "https://github.com/" + user + "/repo/tree/master/" + path,
		Page:        page,
	}
}

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(&buf)

	if writer == nil {
		t.Fatal("NewWriter returned nil")
	}
	if writer.output != &buf {
		t.Error("Writer output doesn't match provided buffer")
	}
	if writer.count != 0 {
		t.Errorf("Initial count should be 0, got %d", writer.count)
	}
}

func TestWriter_Write(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
		want    []string
	}{
		{
			name:    "single record",
			records: []Record{testRecord("u", "a.py", 1)},
			want: []string{
				`{"user":"u","repo":"repo","path":"a.py","matches":["a <b> & c"],"url":"https://github.com/u/repo/tree/master/a.py","page":1}`,
			},
		},
		{
			name: "multiple records",
			records: []Record{
				testRecord("u1", "a.go", 1),
				testRecord("u2", "b.go", 2),
			},
			want: []string{
				`{"user":"u1","repo":"repo","path":"a.go","matches":["a <b> & c"],"url":"https://github.com/u1/repo/tree/master/a.go","page":1}`,
				`{"user":"u2","repo":"repo","path":"b.go","matches":["a <b> & c"],"url":"https://github.com/u2/repo/tree/master/b.go","page":2}`,
			},
		},
		{
			name:    "empty records",
			records: nil,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			writer := NewWriter(&buf)

			for _, record := range tt.records {
				if err := writer.Write(record); err != nil {
					t.Fatalf("Write failed: %v", err)
				}
			}

			if writer.Count() != len(tt.records) {
				t.Errorf("Count mismatch: got %d, want %d", writer.Count(), len(tt.records))
			}

			output := strings.TrimSpace(buf.String())
			if output == "" && len(tt.want) == 0 {
				return
			}

			lines := strings.Split(output, "\n")
			if len(lines) != len(tt.want) {
				t.Fatalf("Line count mismatch: got %d, want %d", len(lines), len(tt.want))
			}
			for i, line := range lines {
				if line != tt.want[i] {
					t.Errorf("Line %d mismatch:\ngot:  %s\nwant: %s", i, line, tt.want[i])
				}
			}
		})
	}
}

func TestWriter_Concurrent(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(&buf)

	numGoroutines := 10
	recordsPerGoroutine := 100
	totalRecords := numGoroutines * recordsPerGoroutine

	errCh := make(chan error, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(goroutineID int) {
			for j := 0; j < recordsPerGoroutine; j++ {
				if err := writer.Write(testRecord("user", "file.go", goroutineID*recordsPerGoroutine+j)); err != nil {
					errCh <- err
					return
				}
			}
			errCh <- nil
		}(i)
	}

	for i := 0; i < numGoroutines; i++ {
		if err := <-errCh; err != nil {
			t.Fatalf("Concurrent write failed: %v", err)
		}
	}

	if writer.Count() != totalRecords {
		t.Errorf("Count mismatch: got %d, want %d", writer.Count(), totalRecords)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != totalRecords {
		t.Errorf("Line count mismatch: got %d, want %d", len(lines), totalRecords)
	}
	for i, line := range lines {
		var record Record
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			t.Errorf("Invalid JSON at line %d: %v", i, err)
		}
	}
}

func TestNewFileWriter(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "out", "records.ndjson")

	writer, err := NewFileWriter(filename)
	if err != nil {
		t.Fatalf("NewFileWriter failed: %v", err)
	}

	records := []Record{testRecord("a", "x.go", 1), testRecord("b", "y.go", 1)}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("second Close should be a no-op, got: %v", err)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != len(records) {
		t.Fatalf("Line count mismatch: got %d, want %d", len(lines), len(records))
	}
	for i, line := range lines {
		var record Record
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			t.Fatalf("Failed to parse JSON at line %d: %v", i, err)
		}
		if record.User != records[i].User || record.URL != records[i].URL {
			t.Errorf("record %d mismatch: got %+v, want %+v", i, record, records[i])
		}
	}
}

func TestNewFileWriter_Error(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileWriter(filepath.Join(blocker, "records.ndjson")); err == nil {
		t.Error("Expected error when parent is a file, got nil")
	}
}
