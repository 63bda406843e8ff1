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

package output

import (
	"bytes"
	"testing"

	"github.com/sirseerhq/sirseer-scout/internal/github"
	"github.com/sirseerhq/sirseer-scout/internal/spans"
)

func bracket(s string) string { return "[" + s + "]" }

func TestHighlighter_Render(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
		want    string
	}{
		{
			name:    "all occurrences case insensitive",
			pattern: "foo",
			text:    "Foo FOO foo",
			want:    "[Foo] [FOO] [foo]",
		},
		{
			name:    "no match",
			pattern: "zzz",
			text:    "plain text",
			want:    "plain text",
		},
		{
			name:    "multibyte text",
			pattern: "é",
			text:    "café CAFÉ",
			want:    "caf[é] CAF[É]",
		},
		{
			name:    "empty matches ignored",
			pattern: "x*",
			text:    "ab",
			want:    "ab",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finder, err := spans.NewFinder(tt.pattern)
			if err != nil {
				t.Fatal(err)
			}
			got := NewHighlighterFunc(finder, bracket).Render(tt.text)
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMatchPrinter_Write(t *testing.T) {
	var buf bytes.Buffer
	printer := NewMatchPrinter(&buf, NewHighlighterFunc(spans.Literal("hit"), bracket))

	record := Record{
		MatchRecord: github.MatchRecord{User: "u", Repo: "r", Path: "a.py", Matches: []string{"a hit\nanother HIT\n", "miss"}},
		URL:         "https://github.com/u/r/tree/master/a.py",
	}
	if err := printer.Write(record); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := "https://github.com/u/r/tree/master/a.py\n" +
		"    a [hit]\n" +
		"    another [HIT]\n" +
		"    miss\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
	if printer.Count() != 1 {
		t.Errorf("Count() = %d, want 1", printer.Count())
	}
}

func TestNewHighlighter_LipglossStyle(t *testing.T) {
	h := NewHighlighter(spans.Literal("x"), DefaultMatchStyle)
	got := h.Render("axb")
	if !bytes.Contains([]byte(got), []byte("x")) {
		t.Errorf("Render() = %q, want the match text preserved", got)
	}
}
