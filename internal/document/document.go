// Package document holds the text of an editing session as a sequence of
// lines and keeps each line's tokens cached, retokenizing incrementally as
// the text is edited.
package document

import (
	"sort"
	"strings"

	"github.com/chenen3/codepad/internal/lexer"
)

// lineCache is replaced as a whole, never updated in place, so a reader
// holding one sees a consistent token set.
type lineCache struct {
	enter  lexer.State
	exit   lexer.State
	tokens []lexer.Token
}

type line struct {
	text  []rune
	cache *lineCache // nil until tokenized
}

// Document is an ordered sequence of lines. It is only modified through
// range edits, each of which retokenizes the lines it affects before
// returning.
//
// Caches are computed lazily and valid caches always form a prefix of the
// document: lines [0, valid) are tokenized, the rest are not.
type Document struct {
	lexer   lexer.Lexer
	lines   []*line
	valid   int
	version uint64
}

// New returns a document holding text, tokenized with lx.
func New(lx lexer.Lexer, text string) *Document {
	a := strings.Split(text, "\n")
	d := &Document{lexer: lx, lines: make([]*line, len(a))}
	for i := range a {
		d.lines[i] = &line{text: []rune(a[i])}
	}
	return d
}

func (d *Document) Lexer() lexer.Lexer { return d.lexer }

// Version is incremented by every edit.
func (d *Document) Version() uint64 { return d.version }

func (d *Document) NumLines() int { return len(d.lines) }

// Line returns the runes of line i. The slice must not be modified.
func (d *Document) Line(i int) []rune {
	if i < 0 || i >= len(d.lines) {
		return nil
	}
	return d.lines[i].text
}

func (d *Document) LineLen(i int) int { return len(d.Line(i)) }

// Text returns the whole document, lines joined by '\n'.
func (d *Document) Text() string {
	var b strings.Builder
	for i, l := range d.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(l.text))
	}
	return b.String()
}

// Rune returns the rune right after p.
func (d *Document) Rune(p Pos) (rune, bool) {
	text := d.Line(p.Line)
	if p.Col < 0 || p.Col >= len(text) {
		return 0, false
	}
	return text[p.Col], true
}

// Slice returns the text between from and to.
func (d *Document) Slice(from, to Pos) string {
	from, to = d.Clamp(from), d.Clamp(to)
	if to.Less(from) {
		from, to = to, from
	}
	if from.Line == to.Line {
		return string(d.lines[from.Line].text[from.Col:to.Col])
	}
	var b strings.Builder
	b.WriteString(string(d.lines[from.Line].text[from.Col:]))
	for i := from.Line + 1; i < to.Line; i++ {
		b.WriteByte('\n')
		b.WriteString(string(d.lines[i].text))
	}
	b.WriteByte('\n')
	b.WriteString(string(d.lines[to.Line].text[:to.Col]))
	return b.String()
}

// Clamp returns the position in the document nearest to p.
func (d *Document) Clamp(p Pos) Pos {
	switch {
	case p.Line < 0:
		return Pos{}
	case p.Line >= len(d.lines):
		last := len(d.lines) - 1
		return Pos{Line: last, Col: len(d.lines[last].text)}
	}
	p.Col = max(0, min(p.Col, len(d.lines[p.Line].text)))
	return p
}

// Indentation returns the leading blanks of line i.
func (d *Document) Indentation(i int) string {
	text := d.Line(i)
	n := 0
	for n < len(text) && (text[n] == ' ' || text[n] == '\t') {
		n++
	}
	return string(text[:n])
}

// Valid reports whether line i has a cached tokenization.
func (d *Document) Valid(i int) bool { return i >= 0 && i < d.valid }

// Tokens returns the tokens of line i, tokenizing it and every uncached
// line before it first.
func (d *Document) Tokens(i int) []lexer.Token {
	c := d.cached(i)
	if c == nil {
		return nil
	}
	return c.tokens
}

// EnterState returns the continuation state line i is tokenized from.
func (d *Document) EnterState(i int) lexer.State {
	if c := d.cached(i); c != nil {
		return c.enter
	}
	return lexer.State{}
}

// ExitState returns the continuation state in effect after line i.
func (d *Document) ExitState(i int) lexer.State {
	if c := d.cached(i); c != nil {
		return c.exit
	}
	return lexer.State{}
}

// TokenAt returns the token covering the rune right after p. It reports
// false when that rune is white space or p is out of range.
func (d *Document) TokenAt(p Pos) (lexer.Token, bool) {
	tokens := d.Tokens(p.Line)
	i := sort.Search(len(tokens), func(i int) bool { return tokens[i].End > p.Col })
	if i == len(tokens) || !tokens[i].Contains(p.Col) {
		return lexer.Token{}, false
	}
	return tokens[i], true
}

// KindAt returns the kind of the token covering the rune right after p,
// Whitespace when there is none.
func (d *Document) KindAt(p Pos) lexer.Kind {
	t, ok := d.TokenAt(p)
	if !ok {
		return lexer.Whitespace
	}
	return t.Kind
}

func (d *Document) cached(i int) *lineCache {
	if i < 0 || i >= len(d.lines) {
		return nil
	}
	d.ensure(i)
	l := d.lines[i]
	if len(l.cache.tokens) > 0 && l.cache.tokens[0].Line != i {
		// lines were inserted or removed above since l was tokenized
		c := *l.cache
		c.tokens = make([]lexer.Token, len(l.cache.tokens))
		for j, t := range l.cache.tokens {
			t.Line = i
			c.tokens[j] = t
		}
		l.cache = &c
	}
	return l.cache
}

// ensure extends the valid prefix to cover line i.
func (d *Document) ensure(i int) {
	for ; d.valid <= i; d.valid++ {
		d.tokenize(d.valid, d.exitBefore(d.valid))
	}
}

func (d *Document) exitBefore(i int) lexer.State {
	if i == 0 {
		return lexer.State{}
	}
	return d.lines[i-1].cache.exit
}

func (d *Document) tokenize(i int, enter lexer.State) lexer.State {
	l := d.lines[i]
	tokens, exit := lexer.Tokenize(d.lexer, l.text, i, enter)
	l.cache = &lineCache{enter: enter, exit: exit, tokens: tokens}
	return exit
}
