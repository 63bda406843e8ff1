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

// Package output writes match records as they are discovered.
//
// Two RecordWriter implementations are provided: Writer emits NDJSON
// (Newline Delimited JSON), one record per line, for downstream tooling;
// MatchPrinter renders each record's URL followed by its match fragments
// with the matching spans highlighted, for people. Multi fans a record out
// to several writers.
//
// Example usage:
//
//	w, err := output.NewFileWriter("records.ndjson")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	for record, err := range page.Records() {
//	    // ...
//	    if err := w.Write(output.Record{MatchRecord: record, URL: url}); err != nil {
//	        log.Printf("Failed to write record: %v", err)
//	    }
//	}
//
//	fmt.Printf("Wrote %d records\n", w.Count())
package output
