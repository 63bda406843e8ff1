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

package state

import (
	"iter"
	"slices"
)

// URLSet is an ordered set of URLs. Iteration follows insertion order.
type URLSet struct {
	order []string
	index map[string]struct{}
}

// NewURLSet returns an empty set.
func NewURLSet() *URLSet {
	return &URLSet{index: make(map[string]struct{})}
}

// LoadURLSet reads the file at path into a set. Blank lines and repeated
// URLs are dropped; a missing file gives an empty set.
func LoadURLSet(path string) (*URLSet, error) {
	set := NewURLSet()
	for line, err := range LoadLines(path) {
		if err != nil {
			return nil, err
		}
		set.Add(line)
	}
	return set, nil
}

// Add inserts url and reports whether it was new.
func (s *URLSet) Add(url string) bool {
	if url == "" {
		return false
	}
	if _, ok := s.index[url]; ok {
		return false
	}
	s.index[url] = struct{}{}
	s.order = append(s.order, url)
	return true
}

// Contains reports whether url is in the set.
func (s *URLSet) Contains(url string) bool {
	_, ok := s.index[url]
	return ok
}

// Len returns the number of URLs.
func (s *URLSet) Len() int {
	return len(s.order)
}

// All yields the URLs in insertion order.
func (s *URLSet) All() iter.Seq[string] {
	return slices.Values(s.order)
}
