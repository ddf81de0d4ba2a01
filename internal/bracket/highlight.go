package bracket

import (
	"slices"

	"github.com/chenen3/codepad/internal/document"
)

// Highlight is the bracket decoration state for a set of cursors. It is
// recomputed on every cursor move and holds nothing else.
type Highlight struct {
	Marks []document.Pos // runes to decorate, in document order
}

// Highlight returns the decorations for the given cursors. Only matched
// pairs are decorated; a bracket without a counterpart gets nothing.
func (m *Matcher) Highlight(doc *document.Document, cursors []document.Pos) Highlight {
	var h Highlight
	seen := make(map[document.Pos]bool)
	for _, c := range cursors {
		match, ok := m.Find(doc, c)
		if !ok || !match.Matched {
			continue
		}
		for _, p := range []document.Pos{match.From, match.To} {
			if !seen[p] {
				seen[p] = true
				h.Marks = append(h.Marks, p)
			}
		}
	}
	slices.SortFunc(h.Marks, document.Pos.Compare)
	return h
}

// Marked reports whether the rune after p is decorated.
func (h Highlight) Marked(p document.Pos) bool {
	return slices.Contains(h.Marks, p)
}
