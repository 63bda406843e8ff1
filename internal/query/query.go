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

// Package query builds GitHub code search query strings.
//
// A query is a free-text term followed by qualifier terms of the form
// key:value, all joined with '+'. GitHub reads a literal '+' in the query
// component of a URL as a space, so the separator doubles as the word
// separator of the search syntax.
//
// Example:
//
//	q := query.Build("http.Client", []string{"go"}, []string{"golang"}, nil)
//	q.String() // "http.Client+extension:go+-org:golang"
//	q.Encode() // "http.Client+extension%3Ago+-org%3Agolang"
package query

import (
	"fmt"
	"iter"
	"net/url"
	"strings"
)

// Qualifier keys understood by the code search endpoint.
const (
	KeyExtension = "extension"
	KeyNoOrg     = "-org"
	KeyNoUser    = "-user"
)

// Separator joins the text and qualifier terms of a query.
const Separator = "+"

// Filter is one group of qualifier values sharing the same key.
type Filter struct {
	Key    string
	Values []string
}

// SearchQuery is an immutable code search query. The zero value is an
// empty query.
type SearchQuery struct {
	text    string
	filters []Filter
}

// Build composes a query from free text and the three filter groups.
// Groups are emitted in a fixed order: extensions, excluded organizations,
// excluded users. Values keep the order the caller supplied.
func Build(text string, extensions, noOrgs, noUsers []string) SearchQuery {
	return SearchQuery{
		text: text,
		filters: []Filter{
			{Key: KeyExtension, Values: clone(extensions)},
			{Key: KeyNoOrg, Values: clone(noOrgs)},
			{Key: KeyNoUser, Values: clone(noUsers)},
		},
	}
}

// FormatTerms yields one key:value term per value of every group.
// Empty groups contribute nothing.
func FormatTerms(groups []Filter) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, group := range groups {
			for _, value := range group.Values {
				if !yield(fmt.Sprintf("%s:%s", group.Key, value)) {
					return
				}
			}
		}
	}
}

// Text returns the free-text part of the query.
func (q SearchQuery) Text() string {
	return q.text
}

// Filters returns a copy of the qualifier groups.
func (q SearchQuery) Filters() []Filter {
	out := make([]Filter, len(q.filters))
	for i, f := range q.filters {
		out[i] = Filter{Key: f.Key, Values: clone(f.Values)}
	}
	return out
}

// Terms yields the text term first, then every qualifier term.
// An empty text yields no term.
func (q SearchQuery) Terms() iter.Seq[string] {
	return func(yield func(string) bool) {
		if q.text != "" {
			if !yield(q.text) {
				return
			}
		}
		for term := range FormatTerms(q.filters) {
			if !yield(term) {
				return
			}
		}
	}
}

// String returns the raw query with terms joined by Separator.
// Nothing is escaped.
func (q SearchQuery) String() string {
	return q.join(func(s string) string { return s })
}

// Encode returns the query ready to be placed in a URL query component.
// Each term is escaped on its own so that the separators stay literal.
func (q SearchQuery) Encode() string {
	return q.join(url.QueryEscape)
}

// IsEmpty reports whether the query has neither text nor qualifiers.
func (q SearchQuery) IsEmpty() bool {
	for range q.Terms() {
		return false
	}
	return true
}

func (q SearchQuery) join(escape func(string) string) string {
	var b strings.Builder
	for term := range q.Terms() {
		if b.Len() > 0 {
			b.WriteString(Separator)
		}
		b.WriteString(escape(term))
	}
	return b.String()
}

func clone(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
