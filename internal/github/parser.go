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

	scouterrors "github.com/sirseerhq/sirseer-scout/internal/errors"
	"github.com/tidwall/gjson"
)

// ParseTotal returns the total_count of a search response.
func ParseTotal(body []byte) int {
	return int(gjson.GetBytes(body, "total_count").Int())
}

// IsBroken reports whether a search response lacks its items list.
func IsBroken(body []byte) bool {
	return !gjson.GetBytes(body, "items").Exists()
}

// ParsePage turns a search response body into a Result.
// status is the HTTP status the body arrived with.
func ParsePage(body []byte, status int) Result {
	doc := gjson.ParseBytes(body)
	items := doc.Get("items")

	if !items.Exists() {
		return &Broken{
			StatusCode:       status,
			Message:          doc.Get("message").String(),
			DocumentationURL: doc.Get("documentation_url").String(),
			TotalCount:       int(doc.Get("total_count").Int()),
		}
	}

	return &Page{
		TotalCount:        int(doc.Get("total_count").Int()),
		IncompleteResults: doc.Get("incomplete_results").Bool(),
		items:             items,
	}
}

// Records yields one MatchRecord per item, in API order. A malformed item
// yields an error wrapping ErrMalformedItem and ends the sequence.
func (p *Page) Records() iter.Seq2[MatchRecord, error] {
	return func(yield func(MatchRecord, error) bool) {
		if !p.items.IsArray() {
			return
		}
		index := 0
		p.items.ForEach(func(_, item gjson.Result) bool {
			record, err := parseItem(item)
			if err != nil {
				yield(MatchRecord{}, fmt.Errorf("item %d: %w", index, err))
				return false
			}
			index++
			return yield(record, nil)
		})
	}
}

var identityFields = [...]string{"path", "repository.name", "repository.owner.login"}

func parseItem(item gjson.Result) (MatchRecord, error) {
	var values [len(identityFields)]string
	for i, field := range identityFields {
		value := item.Get(field)
		if value.Type != gjson.String {
			return MatchRecord{}, fmt.Errorf("missing %s: %w", field, scouterrors.ErrMalformedItem)
		}
		values[i] = value.String()
	}

	// text_matches is only present when the text-match media type was requested.
	var matches []string
	for _, textMatch := range item.Get("text_matches").Array() {
		fragment := textMatch.Get("fragment")
		if !fragment.Exists() {
			return MatchRecord{}, fmt.Errorf("text match without fragment: %w", scouterrors.ErrMalformedItem)
		}
		matches = append(matches, fragment.String())
	}

	return MatchRecord{
		User:    values[2],
		Repo:    values[1],
		Path:    values[0],
		Matches: matches,
	}, nil
}
