// Package autoclose intercepts the keys that type, delete and split
// bracket pairs. It never edits a document itself: Handle describes the
// edits and the resulting selections, and the host applies them or falls
// back to its default behavior when the key is declined.
package autoclose

import (
	"slices"
	"strings"
	"unicode"

	"github.com/chenen3/codepad/internal/document"
	"github.com/chenen3/codepad/internal/lexer"
)

type Selection struct {
	Anchor, Head document.Pos
}

// Cursor returns an empty selection at p.
func Cursor(p document.Pos) Selection { return Selection{Anchor: p, Head: p} }

func (s Selection) Empty() bool { return s.Anchor == s.Head }

func (s Selection) From() document.Pos {
	if s.Head.Less(s.Anchor) {
		return s.Head
	}
	return s.Anchor
}

func (s Selection) To() document.Pos {
	if s.Head.Less(s.Anchor) {
		return s.Anchor
	}
	return s.Head
}

type KeyKind int

const (
	KeyRune KeyKind = iota
	KeyBackspace
	KeyEnter
)

type Key struct {
	Kind KeyKind
	Rune rune // for KeyRune
}

// Result describes what a handled key does. Changes are in reverse
// document order so each can be applied without shifting the ones after
// it. Selections are in document order and in the coordinates of the
// document once every change has been applied.
type Result struct {
	Handled    bool
	Changes    []document.Change
	Selections []Selection
}

// Apply performs the changes of r on doc.
func Apply(doc *document.Document, r Result) document.Dirty {
	dirty := document.Dirty{From: 0, To: -1}
	for _, c := range r.Changes {
		dirty = dirty.Union(doc.Apply(c))
	}
	return dirty
}

type action int

const (
	actSkip action = iota + 1
	actSkipThree
	actSurround
	actBoth
	actAddFour
	actDeletePair
	actExplode
)

// Closer decides how bracket keys are handled under a Config.
type Closer struct {
	cfg Config
}

func New(cfg Config) (*Closer, error) {
	if cfg.IndentUnit == "" {
		cfg.IndentUnit = "\t"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Closer{cfg: cfg}, nil
}

func (c *Closer) Config() Config { return c.cfg }

// Handle decides what key does to every selection at once. The key is
// declined, and nothing changes, unless every selection is handled the
// same way.
func (c *Closer) Handle(doc *document.Document, sels []Selection, k Key) Result {
	if len(sels) == 0 {
		return Result{}
	}
	sels = slices.Clone(sels)
	slices.SortFunc(sels, func(a, b Selection) int { return a.From().Compare(b.From()) })

	var act action
	for _, s := range sels {
		a := c.classify(doc, s, k)
		if a == 0 || act != 0 && a != act {
			return Result{}
		}
		act = a
	}

	res := Result{Handled: true}
	changes := make([]*document.Change, len(sels))
	for i, s := range sels {
		change, sel := c.perform(doc, s, k, act)
		changes[i] = change
		// shift by the changes made to the selections before this one
		for j := i - 1; j >= 0; j-- {
			if changes[j] != nil {
				sel.Anchor = changes[j].MapPos(sel.Anchor)
				sel.Head = changes[j].MapPos(sel.Head)
			}
		}
		res.Selections = append(res.Selections, sel)
	}
	for i := len(changes) - 1; i >= 0; i-- {
		if changes[i] != nil {
			res.Changes = append(res.Changes, *changes[i])
		}
	}
	return res
}

// classify returns how s is handled for k, or 0 when it is not.
func (c *Closer) classify(doc *document.Document, s Selection, k Key) action {
	cur := s.Head
	prev, _ := doc.Rune(document.Pos{Line: cur.Line, Col: cur.Col - 1})
	next, _ := doc.Rune(cur)

	switch k.Kind {
	case KeyBackspace:
		if !s.Empty() {
			return 0
		}
		if cl, ok := c.cfg.closing(prev); ok && cl == next {
			return actDeletePair
		}
		return 0
	case KeyEnter:
		if !s.Empty() || !strings.ContainsRune(c.cfg.Explode, prev) {
			return 0
		}
		if cl, ok := c.cfg.closing(prev); ok && cl == next {
			return actExplode
		}
		return 0
	}

	ch := k.Rune
	open, cl, ok := c.cfg.pair(ch)
	if !ok {
		return 0
	}
	identical := open == cl
	opening := ch == open
	triple := strings.ContainsRune(c.cfg.Triples, ch)

	switch {
	case opening && !s.Empty():
		return actSurround
	case (identical || !opening) && next == ch:
		// only the next rune is compared, so a closing rune typed before
		// any identical rune steps over it
		switch {
		case identical && c.stringStartsAt(doc, cur):
			return actBoth
		case triple && c.match(doc, cur, strings.Repeat(string(ch), 3)):
			return actSkipThree
		}
		return actSkip
	case identical && triple && cur.Col > 1 && c.match(doc, document.Pos{Line: cur.Line, Col: cur.Col - 2}, string([]rune{ch, ch})):
		if cur.Col > 2 && doc.KindAt(document.Pos{Line: cur.Line, Col: cur.Col - 3}) == lexer.String {
			return 0
		}
		return actAddFour
	case identical:
		if isWord(next) || prev == ch || isWord(prev) || insideLiteral(doc, cur) {
			return 0
		}
		return actBoth
	case opening && (next == 0 || unicode.IsSpace(next) || strings.ContainsRune(c.cfg.CloseBefore, next)):
		return actBoth
	}
	return 0
}

// perform returns the change a does to s, if any, and the selection that
// results once only that change has been applied.
func (c *Closer) perform(doc *document.Document, s Selection, k Key, a action) (*document.Change, Selection) {
	cur := s.Head
	at := func(col int) document.Pos { return document.Pos{Line: cur.Line, Col: col} }

	switch a {
	case actSkip:
		return nil, Cursor(at(cur.Col + 1))
	case actSkipThree:
		return nil, Cursor(at(cur.Col + 3))
	case actBoth:
		_, cl, _ := c.cfg.pair(k.Rune)
		return &document.Change{From: cur, To: cur, Text: string([]rune{k.Rune, cl})}, Cursor(at(cur.Col + 1))
	case actAddFour:
		return &document.Change{From: cur, To: cur, Text: strings.Repeat(string(k.Rune), 4)}, Cursor(at(cur.Col + 1))
	case actDeletePair:
		return &document.Change{From: at(cur.Col - 1), To: at(cur.Col + 1)}, Cursor(at(cur.Col - 1))
	case actExplode:
		ic := IndentContext{Base: doc.Indentation(cur.Line), Unit: c.cfg.IndentUnit}
		change := document.Change{From: cur, To: cur, Text: "\n" + ic.Inner() + "\n" + ic.Base}
		return &change, Cursor(document.Pos{Line: cur.Line + 1, Col: len([]rune(ic.Inner()))})
	case actSurround:
		_, cl, _ := c.cfg.pair(k.Rune)
		from, to := s.From(), s.To()
		inner := doc.Slice(from, to)
		change := document.Change{From: from, To: to, Text: string(k.Rune) + inner + string(cl)}
		start := document.Pos{Line: from.Line, Col: from.Col + 1}
		end := document.Change{From: from, To: from, Text: string(k.Rune) + inner}.End()
		if s.Head.Less(s.Anchor) {
			return &change, Selection{Anchor: end, Head: start}
		}
		return &change, Selection{Anchor: start, Head: end}
	}
	return nil, s
}

func (c *Closer) match(doc *document.Document, p document.Pos, s string) bool {
	text := doc.Line(p.Line)
	rs := []rune(s)
	if p.Col < 0 || p.Col+len(rs) > len(text) {
		return false
	}
	return slices.Equal(text[p.Col:p.Col+len(rs)], rs)
}

// stringStartsAt reports whether a string token opens at p, right after
// something that is not a string.
func (c *Closer) stringStartsAt(doc *document.Document, p document.Pos) bool {
	t, ok := doc.TokenAt(p)
	if !ok || t.Kind != lexer.String || t.Start != p.Col {
		return false
	}
	return p.Col == 0 || doc.KindAt(document.Pos{Line: p.Line, Col: p.Col - 1}) != lexer.String
}

// insideLiteral reports whether p lies inside a string or comment token.
func insideLiteral(doc *document.Document, p document.Pos) bool {
	if p.Col == 0 {
		return doc.EnterState(p.Line).Mode != lexer.Base
	}
	t, ok := doc.TokenAt(document.Pos{Line: p.Line, Col: p.Col - 1})
	if !ok || t.Kind.Structural() {
		return false
	}
	if p.Col < t.End {
		return true
	}
	// p is right after the token, which is only still open if it runs
	// to the end of the line and on past it
	text := doc.Line(p.Line)
	if t.End != len(text) {
		return false
	}
	if t.Kind == lexer.Comment {
		return !strings.HasSuffix(string(text[t.Start:t.End]), "*/")
	}
	return doc.ExitState(p.Line).Mode == lexer.InString
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
