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
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirseerhq/sirseer-scout/internal/spans"
)

// DefaultMatchStyle marks matched text in rendered fragments.
var DefaultMatchStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

// Highlighter marks the spans a Finder locates inside a fragment.
type Highlighter struct {
	finder *spans.Finder
	mark   func(string) string
}

// NewHighlighter highlights finder matches with style.
func NewHighlighter(finder *spans.Finder, style lipgloss.Style) *Highlighter {
	return &Highlighter{finder: finder, mark: func(s string) string { return style.Render(s) }}
}

// NewHighlighterFunc highlights finder matches with an arbitrary marker.
func NewHighlighterFunc(finder *spans.Finder, mark func(string) string) *Highlighter {
	return &Highlighter{finder: finder, mark: mark}
}

// Render returns text with every match replaced by its marked form.
func (h *Highlighter) Render(text string) string {
	runes := []rune(text)

	var b strings.Builder
	last := 0
	for span := range h.finder.Spans(text) {
		if span.Len() == 0 {
			continue
		}
		b.WriteString(string(runes[last:span.Start]))
		b.WriteString(h.mark(string(runes[span.Start:span.End])))
		last = span.End
	}
	b.WriteString(string(runes[last:]))
	return b.String()
}

// MatchPrinter writes a human-readable listing of records: the URL, then
// each fragment indented beneath it with matches highlighted.
type MatchPrinter struct {
	out         io.Writer
	highlighter *Highlighter
	count       int
}

// NewMatchPrinter creates a printer. A nil highlighter prints fragments as is.
func NewMatchPrinter(out io.Writer, highlighter *Highlighter) *MatchPrinter {
	return &MatchPrinter{out: out, highlighter: highlighter}
}

// Write implements RecordWriter.
func (p *MatchPrinter) Write(record Record) error {
	if _, err := fmt.Fprintln(p.out, record.URL); err != nil {
		return fmt.Errorf("failed to print record: %w", err)
	}
	for _, fragment := range record.Matches {
		if p.highlighter != nil {
			fragment = p.highlighter.Render(fragment)
		}
		for _, line := range strings.Split(strings.TrimRight(fragment, "\n"), "\n") {
			if _, err := fmt.Fprintf(p.out, "    %s\n", line); err != nil {
				return fmt.Errorf("failed to print fragment: %w", err)
			}
		}
	}
	p.count++
	return nil
}

// Count returns the number of records printed.
func (p *MatchPrinter) Count() int {
	return p.count
}

// Close implements RecordWriter. The underlying writer is left open.
func (p *MatchPrinter) Close() error {
	return nil
}
