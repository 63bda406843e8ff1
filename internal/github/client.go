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
	"io"
	"net/http"
	"time"

	scouterrors "github.com/sirseerhq/sirseer-scout/internal/errors"
	"github.com/sirseerhq/sirseer-scout/internal/giterror"
	"github.com/sirseerhq/sirseer-scout/internal/query"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Searcher runs code searches one page at a time.
// This interface allows for easy mocking in tests.
type Searcher interface {
	// SearchCode fetches a single 1-indexed page of results for q.
	// A response without items is returned as *Broken, not as an error;
	// errors are reserved for transport failures and unreadable bodies.
	SearchCode(ctx context.Context, q query.SearchQuery, page int) (Result, error)
}

// Options configures a RESTClient. Zero values select the defaults.
type Options struct {
	// APIBase is the REST API root, e.g. https://github.example.com/api/v3
	// for GitHub Enterprise.
	APIBase string

	// Username and Token are sent as HTTP basic authentication.
	Username string
	Token    string

	// Sort is the search sort key. Defaults to "indexed".
	Sort string

	// PerPage is the page size requested from the API. Defaults to 30.
	PerPage int

	// Timeout bounds a whole request. Zero means no timeout.
	Timeout time.Duration

	// Transport overrides the underlying round tripper, mainly for tests.
	Transport http.RoundTripper

	Logger *zap.Logger
}

// RESTClient implements Searcher against the GitHub REST API.
type RESTClient struct {
	http      *http.Client
	opts      Options
	inspector giterror.Inspector
	logger    *zap.Logger
}

// NewRESTClient creates a client. Every request carries basic
// authentication, a User-Agent header and a 10MB response size limit.
func NewRESTClient(opts Options) *RESTClient {
	if opts.APIBase == "" {
		opts.APIBase = DefaultAPIBase
	}
	if opts.Sort == "" {
		opts.Sort = DefaultSort
	}
	if opts.PerPage <= 0 {
		opts.PerPage = DefaultPageSize
	}

	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RESTClient{
		http: &http.Client{
			Transport: newBasicAuthTransport(opts.Username, opts.Token, base),
			Timeout:   opts.Timeout,
		},
		opts:      opts,
		inspector: giterror.NewInspector(),
		logger:    logger,
	}
}

// Call issues one GET request and returns the response together with its
// body. The response body has already been read and closed. The status code
// is not inspected; the body must be valid JSON.
func (c *RESTClient) Call(ctx context.Context, url string, headers http.Header) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, c.mapError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, c.mapError(ctx, err)
	}

	c.logger.Debug("api call",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if !gjson.ValidBytes(body) {
		return resp, body, fmt.Errorf("status %d: %w", resp.StatusCode, scouterrors.ErrMalformedResponse)
	}

	return resp, body, nil
}

// SearchCode implements Searcher.
func (c *RESTClient) SearchCode(ctx context.Context, q query.SearchQuery, page int) (Result, error) {
	url := SearchCodeURL(c.opts.APIBase, q, c.opts.Sort, page, c.opts.PerPage)

	headers := http.Header{}
	headers.Set("Accept", TextMatchMediaType)

	resp, body, err := c.Call(ctx, url, headers)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", page, err)
	}

	return ParsePage(body, resp.StatusCode), nil
}

// PerPage returns the page size the client requests.
func (c *RESTClient) PerPage() int {
	return c.opts.PerPage
}

// mapError converts transport errors to errors wrapping the sentinels.
func (c *RESTClient) mapError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("request canceled: %w", ctx.Err())
	}
	if c.inspector.IsNetworkError(err) {
		return fmt.Errorf("network error connecting to GitHub API. Please check your internet connection and try again: %w: %w",
			scouterrors.ErrNetworkFailure, err)
	}
	return fmt.Errorf("request failed: %w", err)
}
