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
	"iter"
	"net/url"
	"slices"
	"strings"

	"github.com/sirseerhq/sirseer-scout/internal/query"
)

// Params are the query parameters of a request URL.
type Params map[string]any

// RawValue is a parameter value that is already URL-encoded.
type RawValue string

// BuildURL joins path segments under base and appends the parameters sorted
// by key. String values are escaped; RawValue values are copied verbatim.
func BuildURL(base string, params Params, path ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSuffix(base, "/"))
	b.WriteString("/")
	b.WriteString(strings.Join(path, "/"))

	first := true
	for param := range formatParams(params) {
		if first {
			b.WriteString("?")
			first = false
		} else {
			b.WriteString("&")
		}
		b.WriteString(param)
	}
	return b.String()
}

// SearchCodeURL builds the code search URL for one page of q.
// per_page is only sent when it differs from the API default.
func SearchCodeURL(base string, q query.SearchQuery, sort string, page, perPage int) string {
	if base == "" {
		base = DefaultAPIBase
	}
	if sort == "" {
		sort = DefaultSort
	}
	if page < 1 {
		page = 1
	}

	params := Params{
		"q":    RawValue(q.Encode()),
		"sort": sort,
		"page": page,
	}
	if perPage > 0 && perPage != DefaultPageSize {
		params["per_page"] = perPage
	}
	return BuildURL(base, params, "search", "code")
}

func formatParams(params Params) iter.Seq[string] {
	return func(yield func(string) bool) {
		keys := make([]string, 0, len(params))
		for key := range params {
			keys = append(keys, key)
		}
		slices.Sort(keys)

		for _, key := range keys {
			if !yield(key + "=" + formatValue(params[key])) {
				return
			}
		}
	}
}

func formatValue(v any) string {
	switch v := v.(type) {
	case RawValue:
		return string(v)
	case string:
		return url.QueryEscape(v)
	case fmt.Stringer:
		return url.QueryEscape(v.String())
	default:
		return url.QueryEscape(fmt.Sprint(v))
	}
}
