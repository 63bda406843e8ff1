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
	"fmt"
	"net/http"

	"github.com/shurcooL/graphql"
	scouterrors "github.com/sirseerhq/sirseer-scout/internal/errors"
	"github.com/sirseerhq/sirseer-scout/internal/giterror"
)

// DefaultGraphQLEndpoint is the public GitHub GraphQL endpoint.
const DefaultGraphQLEndpoint = "https://api.github.com/graphql"

// BranchSource names the branch a record URL should point at.
type BranchSource interface {
	DefaultBranch(ctx context.Context, owner, repo string) (string, error)
}

// StaticBranch is a BranchSource that always returns the same branch.
type StaticBranch string

// DefaultBranch implements BranchSource.
func (b StaticBranch) DefaultBranch(context.Context, string, string) (string, error) {
	if b == "" {
		return DefaultBranch, nil
	}
	return string(b), nil
}

// BranchResolver looks up default branches through the GraphQL API.
// Answers are cached per repository for the lifetime of the resolver,
// so a run costs at most one query per repository.
type BranchResolver struct {
	client    *graphql.Client
	fallback  string
	cache     map[string]string
	inspector giterror.Inspector
	queries   int
}

// NewBranchResolver creates a resolver. fallback is returned for
// repositories that have no default branch yet.
func NewBranchResolver(endpoint, token, fallback string, base http.RoundTripper) *BranchResolver {
	if endpoint == "" {
		endpoint = DefaultGraphQLEndpoint
	}
	if fallback == "" {
		fallback = DefaultBranch
	}
	if base == nil {
		base = http.DefaultTransport
	}

	httpClient := &http.Client{
		Transport: &authTransport{
			token: token,
			base:  base,
		},
	}

	return &BranchResolver{
		client:    graphql.NewClient(endpoint, httpClient),
		fallback:  fallback,
		cache:     make(map[string]string),
		inspector: giterror.NewInspector(),
	}
}

// DefaultBranch implements BranchSource.
func (r *BranchResolver) DefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	key := owner + "/" + repo
	if branch, ok := r.cache[key]; ok {
		return branch, nil
	}

	var q struct {
		Repository struct {
			DefaultBranchRef *struct {
				Name graphql.String
			}
		} `graphql:"repository(owner: $owner, name: $repo)"`
	}

	variables := map[string]interface{}{
		"owner": graphql.String(owner),
		"repo":  graphql.String(repo),
	}

	r.queries++
	if err := r.client.Query(ctx, &q, variables); err != nil {
		return "", r.mapError(err, owner, repo)
	}

	branch := r.fallback
	if ref := q.Repository.DefaultBranchRef; ref != nil && ref.Name != "" {
		branch = string(ref.Name)
	}
	r.cache[key] = branch
	return branch, nil
}

// Queries returns the number of GraphQL queries issued so far.
func (r *BranchResolver) Queries() int {
	return r.queries
}

func (r *BranchResolver) mapError(err error, owner, repo string) error {
	switch {
	case r.inspector.IsRateLimitError(err):
		return fmt.Errorf("GitHub API rate limit exceeded: %w", scouterrors.ErrRateLimit)
	case r.inspector.IsAuthError(err):
		return fmt.Errorf("GitHub API authentication failed: %w", scouterrors.ErrInvalidToken)
	case r.inspector.IsNotFoundError(err):
		return fmt.Errorf("repository '%s/%s' not found: %w", owner, repo, scouterrors.ErrRepoNotFound)
	case r.inspector.IsNetworkError(err):
		return fmt.Errorf("network error connecting to GitHub API: %w", scouterrors.ErrNetworkFailure)
	default:
		return fmt.Errorf("failed to resolve default branch of %s/%s: %w", owner, repo, err)
	}
}
