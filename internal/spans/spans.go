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

// Package spans locates case-insensitive pattern matches inside match
// fragments so that a display layer can highlight them.
package spans

import (
	"fmt"
	"iter"
	"regexp"
	"unicode/utf8"
)

// Span is a half-open [Start, End) range of character offsets.
type Span struct {
	Start int
	End   int
}

// Len returns the number of characters covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Finder matches one compiled pattern against many texts.
type Finder struct {
	re *regexp.Regexp
}

// NewFinder compiles pattern as a case-insensitive regular expression.
func NewFinder(pattern string) (*Finder, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid highlight pattern %q: %w", pattern, err)
	}
	return &Finder{re: re}, nil
}

// Literal returns a Finder for the literal text s.
func Literal(s string) *Finder {
	return &Finder{re: regexp.MustCompile("(?i)" + regexp.QuoteMeta(s))}
}

// Spans yields the non-overlapping matches in text from left to right.
// Offsets count characters, not bytes. An empty match directly after a
// non-empty one is not reported.
func (f *Finder) Spans(text string) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		// Walk byte offsets forward once, converting to character offsets as we go.
		byteOff, charOff := 0, 0
		toChars := func(b int) int {
			charOff += utf8.RuneCountInString(text[byteOff:b])
			byteOff = b
			return charOff
		}

		for _, loc := range f.re.FindAllStringIndex(text, -1) {
			start := toChars(loc[0])
			end := toChars(loc[1])
			if !yield(Span{Start: start, End: end}) {
				return
			}
		}
	}
}

// Find yields the spans of pattern in text. It is a shorthand for
// NewFinder followed by Spans.
func Find(text, pattern string) (iter.Seq[Span], error) {
	f, err := NewFinder(pattern)
	if err != nil {
		return nil, err
	}
	return f.Spans(text), nil
}
