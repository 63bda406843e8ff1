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

// Package testutil provides common test helpers for sirseer-scout
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/sirseerhq/sirseer-scout/internal/github"
)

// CodeSearchServer is a fake GitHub API serving /search/code from a fixed
// record list and /graphql default-branch lookups.
type CodeSearchServer struct {
	*httptest.Server

	// Records are served in order, sliced by the page and per_page
	// parameters.
	Records []github.MatchRecord

	// TotalCount overrides total_count. Zero reports len(Records).
	TotalCount int

	// BrokenPage answers that page with BrokenStatus and BrokenMessage and
	// no items.
	BrokenPage    int
	BrokenStatus  int
	BrokenMessage string

	// Username and Token, when set, are required as basic auth.
	Username string
	Token    string

	// DefaultBranches maps owner/repo to the branch /graphql reports.
	// Unknown repositories get a NOT_FOUND error.
	DefaultBranches map[string]string

	requestCount int32
	graphqlCount int32

	mu       sync.Mutex
	searches []url.Values
	accepts  []string
}

// NewCodeSearchServer starts a server for records. It is closed when the
// test ends.
func NewCodeSearchServer(t *testing.T, records []github.MatchRecord) *CodeSearchServer {
	t.Helper()

	s := &CodeSearchServer{Records: records}
	mux := http.NewServeMux()
	mux.HandleFunc("/search/code", s.handleSearch)
	mux.HandleFunc("/graphql", s.handleGraphQL)
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)

	return s
}

// RequestCount returns the number of search requests served.
func (s *CodeSearchServer) RequestCount() int {
	return int(atomic.LoadInt32(&s.requestCount))
}

// GraphQLCount returns the number of GraphQL requests served.
func (s *CodeSearchServer) GraphQLCount() int {
	return int(atomic.LoadInt32(&s.graphqlCount))
}

// Searches returns the query parameters of every search request.
func (s *CodeSearchServer) Searches() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]url.Values(nil), s.searches...)
}

// AcceptHeaders returns the Accept header of every search request.
func (s *CodeSearchServer) AcceptHeaders() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.accepts...)
}

func (s *CodeSearchServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&s.requestCount, 1)

	params := r.URL.Query()
	s.mu.Lock()
	s.searches = append(s.searches, params)
	s.accepts = append(s.accepts, r.Header.Get("Accept"))
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if !s.authorized(r) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Bad credentials","documentation_url":"https://docs.github.com/rest"}`))
		return
	}

	page := intParam(params, "page", 1)
	perPage := intParam(params, "per_page", github.DefaultPageSize)

	if page == s.BrokenPage {
		status := s.BrokenStatus
		if status == 0 {
			status = http.StatusForbidden
		}
		message := s.BrokenMessage
		if message == "" {
			message = "API rate limit exceeded for user ID 1."
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
		return
	}

	total := s.TotalCount
	if total == 0 {
		total = len(s.Records)
	}
	start := min((page-1)*perPage, len(s.Records))
	end := min(start+perPage, len(s.Records))

	body, err := github.EncodePage(total, s.Records[start:end])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_, _ = w.Write(body)
}

func (s *CodeSearchServer) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&s.graphqlCount, 1)

	var req struct {
		Query     string            `json:"query"`
		Variables map[string]string `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	key := req.Variables["owner"] + "/" + req.Variables["repo"]
	branch, ok := s.DefaultBranches[key]
	if !ok {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{"repository": nil},
			"errors": []map[string]interface{}{{
				"type":    "NOT_FOUND",
				"message": fmt.Sprintf("Could not resolve to a Repository with the name '%s'.", key),
			}},
		})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"data": map[string]interface{}{
			"repository": map[string]interface{}{
				"defaultBranchRef": map[string]interface{}{"name": branch},
			},
		},
	})
}

func (s *CodeSearchServer) authorized(r *http.Request) bool {
	if s.Username == "" && s.Token == "" {
		return true
	}
	user, pass, ok := r.BasicAuth()
	return ok && user == s.Username && pass == s.Token
}

func intParam(params url.Values, key string, fallback int) int {
	n, err := strconv.Atoi(params.Get(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
