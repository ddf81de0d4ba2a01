package document

import (
	"fmt"
	"strings"
)

// Pos is a position between runes. Line and Col are zero based, Col counts
// runes.
type Pos struct {
	Line, Col int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line+1, p.Col+1) }

// Compare returns -1, 0 or +1 depending on whether p is before, at or
// after q.
func (p Pos) Compare(q Pos) int {
	switch {
	case p.Line < q.Line, p.Line == q.Line && p.Col < q.Col:
		return -1
	case p == q:
		return 0
	}
	return 1
}

func (p Pos) Less(q Pos) bool { return p.Compare(q) < 0 }

// Change replaces the text between From and To with Text.
type Change struct {
	From, To Pos
	Text     string
}

// End returns the position right after the inserted text once c has been
// applied.
func (c Change) End() Pos {
	lines := strings.Split(c.Text, "\n")
	if len(lines) == 1 {
		return Pos{Line: c.From.Line, Col: c.From.Col + len([]rune(lines[0]))}
	}
	return Pos{Line: c.From.Line + len(lines) - 1, Col: len([]rune(lines[len(lines)-1]))}
}

// MapPos returns where p ends up once c has been applied. Positions inside
// the replaced range collapse to its end.
func (c Change) MapPos(p Pos) Pos {
	if p.Less(c.From) {
		return p
	}
	end := c.End()
	if p.Less(c.To) {
		return end
	}
	if p.Line == c.To.Line {
		return Pos{Line: end.Line, Col: end.Col + p.Col - c.To.Col}
	}
	return Pos{Line: p.Line + end.Line - c.To.Line, Col: p.Col}
}

// Dirty is the range of lines, From to To inclusive, whose text or tokens
// changed. An empty Dirty has To < From.
type Dirty struct {
	From, To int
}

func (d Dirty) Empty() bool { return d.To < d.From }

// Union returns the smallest range covering d and e.
func (d Dirty) Union(e Dirty) Dirty {
	switch {
	case d.Empty():
		return e
	case e.Empty():
		return d
	}
	return Dirty{From: min(d.From, e.From), To: max(d.To, e.To)}
}
