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

package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	scouterrors "github.com/sirseerhq/sirseer-scout/internal/errors"
	"github.com/sirseerhq/sirseer-scout/internal/query"
)

// MockClient is a mock implementation of the Searcher interface for testing.
// It serves Records in pages of PerPage items.
type MockClient struct {
	// Records to serve across all pages
	Records []MatchRecord

	// PerPage is the page size; defaults to DefaultPageSize
	PerPage int

	// TotalCount overrides the reported total_count when non-zero
	TotalCount int

	// Error to return
	Error error

	// Behavior flags
	ShouldFailAuth    bool
	ShouldFailNetwork bool

	// BrokenOnPage makes that page come back without items
	BrokenOnPage int
	BrokenStatus int

	// Track calls for verification
	CallCount int
	Pages     []int
	LastQuery query.SearchQuery
}

// NewMockClient creates a new mock client with default test data
func NewMockClient() *MockClient {
	return &MockClient{
		Records: generateTestRecords(),
	}
}

// SearchCode implements the Searcher interface
func (m *MockClient) SearchCode(ctx context.Context, q query.SearchQuery, page int) (Result, error) {
	m.CallCount++
	m.Pages = append(m.Pages, page)
	m.LastQuery = q

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if m.ShouldFailNetwork {
		return nil, fmt.Errorf("network timeout: %w", scouterrors.ErrNetworkFailure)
	}

	if m.Error != nil {
		return nil, m.Error
	}

	if m.ShouldFailAuth {
		return ParsePage([]byte(`{"message":"Bad credentials","documentation_url":"https://docs.github.com/rest"}`), http.StatusUnauthorized), nil
	}

	if m.BrokenOnPage == page {
		status := m.BrokenStatus
		if status == 0 {
			status = http.StatusForbidden
		}
		return ParsePage([]byte(`{"message":"API rate limit exceeded"}`), status), nil
	}

	perPage := m.PerPage
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	total := m.TotalCount
	if total == 0 {
		total = len(m.Records)
	}

	start := min((page-1)*perPage, len(m.Records))
	end := min(start+perPage, len(m.Records))

	body, err := EncodePage(total, m.Records[start:end])
	if err != nil {
		return nil, err
	}
	return ParsePage(body, http.StatusOK), nil
}

// EncodePage renders records in the shape of a code search response.
func EncodePage(total int, records []MatchRecord) ([]byte, error) {
	type owner struct {
		Login string `json:"login"`
	}
	type repository struct {
		Name  string `json:"name"`
		Owner owner  `json:"owner"`
	}
	type textMatch struct {
		Fragment string `json:"fragment"`
	}
	type item struct {
		Path        string      `json:"path"`
		Repository  repository  `json:"repository"`
		TextMatches []textMatch `json:"text_matches"`
	}

	items := make([]item, 0, len(records))
	for _, r := range records {
		matches := make([]textMatch, 0, len(r.Matches))
		for _, fragment := range r.Matches {
			matches = append(matches, textMatch{Fragment: fragment})
		}
		items = append(items, item{
			Path:        r.Path,
			Repository:  repository{Name: r.Repo, Owner: owner{Login: r.User}},
			TextMatches: matches,
		})
	}

	return json.Marshal(map[string]interface{}{
		"total_count":        total,
		"incomplete_results": false,
		"items":              items,
	})
}

// generateTestRecords creates sample search results for testing
func generateTestRecords() []MatchRecord {
	return []MatchRecord{
		{User: "alice", Repo: "tools", Path: "cmd/main.go", Matches: []string{"term.ReadPassword(fd)"}},
		{User: "bob", Repo: "cli", Path: "internal/auth/prompt.go", Matches: []string{"pass, _ := term.ReadPassword(0)"}},
		{User: "charlie", Repo: "vault", Path: "login.go", Matches: []string{"ReadPassword", "readPassword()"}},
	}
}

// MockClientOption allows configuring the mock client
type MockClientOption func(*MockClient)

// WithRecords sets specific records to serve
func WithRecords(records []MatchRecord) MockClientOption {
	return func(m *MockClient) {
		m.Records = records
	}
}

// WithPerPage sets the page size
func WithPerPage(n int) MockClientOption {
	return func(m *MockClient) {
		m.PerPage = n
	}
}

// WithError makes the client return a specific error
func WithError(err error) MockClientOption {
	return func(m *MockClient) {
		m.Error = err
	}
}

// WithAuthFailure makes the client answer with a 401 broken page
func WithAuthFailure() MockClientOption {
	return func(m *MockClient) {
		m.ShouldFailAuth = true
	}
}

// WithBrokenPage makes one page come back without items
func WithBrokenPage(page, status int) MockClientOption {
	return func(m *MockClient) {
		m.BrokenOnPage = page
		m.BrokenStatus = status
	}
}

// NewMockClientWithOptions creates a mock client with options
func NewMockClientWithOptions(opts ...MockClientOption) *MockClient {
	mock := NewMockClient()
	for _, opt := range opts {
		opt(mock)
	}
	return mock
}
