package lexer

import (
	"unicode"
)

// EOL is returned by Peek and Next once the stream is exhausted.
const EOL rune = -1

// tabWidth is the column width a tab counts for in Indentation.
const tabWidth = 4

// Stream is a cursor over the runes of one line. None of its methods fail:
// reading past the end yields EOL and leaves the cursor in place.
type Stream struct {
	line  []rune
	pos   int
	start int // start of the current lexeme
}

func NewStream(line []rune) *Stream {
	return &Stream{line: line}
}

func (s *Stream) Pos() int   { return s.pos }
func (s *Stream) Start() int { return s.start }

// Sol reports whether the cursor is at the start of the line.
func (s *Stream) Sol() bool { return s.pos == 0 }

// Eol reports whether the cursor is at the end of the line.
func (s *Stream) Eol() bool { return s.pos >= len(s.line) }

func (s *Stream) Peek() rune { return s.PeekAt(0) }

// PeekAt returns the rune n places after the cursor without consuming it.
func (s *Stream) PeekAt(n int) rune {
	i := s.pos + n
	if i < 0 || i >= len(s.line) {
		return EOL
	}
	return s.line[i]
}

func (s *Stream) Next() rune {
	if s.Eol() {
		return EOL
	}
	r := s.line[s.pos]
	s.pos++
	return r
}

// Eat consumes the next rune if ok accepts it.
func (s *Stream) Eat(ok func(rune) bool) bool {
	if s.Eol() || !ok(s.line[s.pos]) {
		return false
	}
	s.pos++
	return true
}

func (s *Stream) EatRune(r rune) bool {
	if s.Peek() != r {
		return false
	}
	s.pos++
	return true
}

// EatWhile consumes runes as long as ok accepts them and reports whether
// anything was consumed.
func (s *Stream) EatWhile(ok func(rune) bool) bool {
	start := s.pos
	for s.Eat(ok) {
	}
	return s.pos > start
}

func (s *Stream) EatSpace() bool {
	return s.EatWhile(unicode.IsSpace)
}

// Match reports whether the line continues with pattern at the cursor,
// consuming it when consume is set.
func (s *Stream) Match(pattern string, consume bool) bool {
	i := s.pos
	for _, r := range pattern {
		if i >= len(s.line) || s.line[i] != r {
			return false
		}
		i++
	}
	if consume {
		s.pos = i
	}
	return true
}

func (s *Stream) SkipToEnd() { s.pos = len(s.line) }

// SkipTo moves the cursor onto the next occurrence of r, leaving the
// cursor untouched when r does not occur.
func (s *Stream) SkipTo(r rune) bool {
	for i := s.pos; i < len(s.line); i++ {
		if s.line[i] == r {
			s.pos = i
			return true
		}
	}
	return false
}

// Current returns the lexeme consumed since the last token boundary.
func (s *Stream) Current() string { return string(s.line[s.start:s.pos]) }

// Indentation returns the width of the line's leading white space, with
// tabs counting for tabWidth columns.
func (s *Stream) Indentation() int {
	var n int
	for _, r := range s.line {
		switch r {
		case ' ':
			n++
		case '\t':
			n += tabWidth - n%tabWidth
		default:
			return n
		}
	}
	return n
}

// mark starts a new lexeme at the cursor.
func (s *Stream) mark() { s.start = s.pos }
