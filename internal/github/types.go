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
	"fmt"
	"strings"

	scouterrors "github.com/sirseerhq/sirseer-scout/internal/errors"
	"github.com/sirseerhq/sirseer-scout/internal/giterror"
	"github.com/tidwall/gjson"
)

// Defaults used when a caller leaves a setting empty.
const (
	DefaultAPIBase  = "https://api.github.com"
	DefaultWebBase  = "https://github.com"
	DefaultBranch   = "master"
	DefaultSort     = "indexed"
	DefaultPageSize = 30

	// MaxPageSize is the largest per_page value the search API accepts.
	MaxPageSize = 100

	// MaxReachableResults is how deep the search API lets a client page.
	MaxReachableResults = 1000

	// TextMatchMediaType asks the search API to include text_matches.
	TextMatchMediaType = "application/vnd.github.v3.text-match+json"
)

// MatchRecord is one file in a code search result.
type MatchRecord struct {
	User    string   `json:"user"`
	Repo    string   `json:"repo"`
	Path    string   `json:"path"`
	Matches []string `json:"matches"`
}

// Repository returns the record's repository as "owner/name".
func (r MatchRecord) Repository() string {
	return r.User + "/" + r.Repo
}

// URL returns the browsable location of the file on the given branch.
func (r MatchRecord) URL(webBase, branch string) string {
	if webBase == "" {
		webBase = DefaultWebBase
	}
	if branch == "" {
		branch = DefaultBranch
	}
	return fmt.Sprintf("%s/%s/%s/tree/%s/%s",
		strings.TrimSuffix(webBase, "/"), r.User, r.Repo, branch, r.Path)
}

// Result is one parsed search response: either a *Page or a *Broken.
type Result interface {
	// Total is the total_count reported by the API, zero if absent.
	Total() int

	isResult()
}

// Page is a search response that carried an items list.
type Page struct {
	TotalCount        int
	IncompleteResults bool

	items gjson.Result
}

// Total implements Result.
func (p *Page) Total() int { return p.TotalCount }

// Len returns the number of items on the page.
func (p *Page) Len() int {
	if !p.items.IsArray() {
		return 0
	}
	return len(p.items.Array())
}

func (*Page) isResult() {}

// Broken is a search response without an items list. GitHub sends these for
// bad credentials, rate limiting and rejected queries.
type Broken struct {
	StatusCode       int
	Message          string
	DocumentationURL string
	TotalCount       int
}

// Total implements Result.
func (b *Broken) Total() int { return b.TotalCount }

func (*Broken) isResult() {}

// Err converts the broken page into an error. The error always matches
// ErrBrokenResponse, and also ErrInvalidToken, ErrRateLimit or
// ErrInvalidQuery when the response says so.
func (b *Broken) Err() error {
	apiErr := &giterror.APIError{
		StatusCode:       b.StatusCode,
		Message:          b.Message,
		DocumentationURL: b.DocumentationURL,
	}

	inspector := giterror.NewErrorChainInspector(giterror.NewInspector())
	switch {
	case inspector.IsRateLimitError(apiErr):
		return fmt.Errorf("%w: %w: %w", scouterrors.ErrBrokenResponse, scouterrors.ErrRateLimit, apiErr)
	case inspector.IsAuthError(apiErr):
		return fmt.Errorf("%w: %w: %w", scouterrors.ErrBrokenResponse, scouterrors.ErrInvalidToken, apiErr)
	case inspector.IsValidationError(apiErr):
		return fmt.Errorf("%w: %w: %w", scouterrors.ErrBrokenResponse, scouterrors.ErrInvalidQuery, apiErr)
	default:
		return fmt.Errorf("%w: %w", scouterrors.ErrBrokenResponse, apiErr)
	}
}
