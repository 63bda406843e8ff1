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
	"fmt"

	"github.com/sirseerhq/sirseer-scout/internal/github"
)

// RecordBuilder provides a fluent interface for building match records
type RecordBuilder struct {
	record github.MatchRecord
}

// NewRecord starts a record for path in user/repo.
func NewRecord(user, repo, path string) *RecordBuilder {
	return &RecordBuilder{
		record: github.MatchRecord{User: user, Repo: repo, Path: path},
	}
}

// WithMatches sets the fragments of the record.
func (b *RecordBuilder) WithMatches(fragments ...string) *RecordBuilder {
	b.record.Matches = fragments
	return b
}

// Build returns the record.
func (b *RecordBuilder) Build() github.MatchRecord {
	return b.record
}

// GenerateRecords returns n distinct records spread over a handful of
// owners, each with a single fragment containing "needle".
func GenerateRecords(n int) []github.MatchRecord {
	owners := []string{"alice", "bob", "charlie", "dana"}

	records := make([]github.MatchRecord, 0, n)
	for i := 0; i < n; i++ {
		owner := owners[i%len(owners)]
		records = append(records, NewRecord(owner, fmt.Sprintf("repo%d", i%7), fmt.Sprintf("pkg/file%03d.go", i)).
			WithMatches(fmt.Sprintf("x := needle(%d)", i)).
			Build())
	}
	return records
}

// RecordURLs returns the URLs of records on branch of the public web base.
func RecordURLs(records []github.MatchRecord, branch string) []string {
	urls := make([]string, 0, len(records))
	for _, r := range records {
		urls = append(urls, r.URL(github.DefaultWebBase, branch))
	}
	return urls
}
