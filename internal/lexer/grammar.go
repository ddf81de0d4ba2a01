package lexer

import (
	"strings"
	"unicode"
)

// Grammar is a table driven Lexer. The reference grammars share the same
// state machine and differ only in their tables, character classes and
// flags.
type Grammar struct {
	name string

	Keywords map[string]bool
	Atoms    map[string]bool
	Types    map[string]bool // consulted only when TypeKeywords is set

	Operators  string // runes that form operator runs
	Delimiters string // runes that are single rune tokens
	Quotes     string // runes opening a string
	WordRunes  string // extra runes allowed in words, besides letters, digits and '_'

	TypeKeywords   bool
	NestedComments bool // "/* /* */ */" is one comment
	RawStrings     bool // r"..", r#".."#, b".." and br".." prefixes
	CharLiterals   bool // 'x' is a string, 'a alone is a lifetime
}

func (g *Grammar) Name() string { return g.name }

func (g *Grammar) Classify(s *Stream, st State) (Kind, State) {
	switch st.Mode {
	case InBlockComment:
		return g.blockComment(s, st)
	case InString:
		return g.str(s, st)
	}

	if s.EatSpace() {
		return Whitespace, st
	}
	if s.Match("//", true) {
		s.SkipToEnd()
		return Comment, st
	}
	if s.Match("/*", true) {
		return g.blockComment(s, State{Mode: InBlockComment, Depth: 1})
	}

	r := s.Peek()
	switch {
	case strings.ContainsRune(g.Quotes, r):
		s.Next()
		return g.str(s, State{Mode: InString, Quote: r})
	case r == '\'' && g.CharLiterals:
		return g.charOrLifetime(s), st
	case unicode.IsDigit(r):
		s.EatWhile(func(r rune) bool {
			return g.isWord(r) || r == '.' && unicode.IsDigit(s.PeekAt(1))
		})
		return Number, st
	case strings.ContainsRune(g.Operators, r):
		for strings.ContainsRune(g.Operators, s.Peek()) {
			if s.Peek() == '/' && (s.PeekAt(1) == '/' || s.PeekAt(1) == '*') {
				break
			}
			s.Next()
		}
		return Operator, st
	case strings.ContainsRune(g.Delimiters, r):
		s.Next()
		return Delimiter, st
	}

	if g.RawStrings {
		if next, ok := g.prefixedString(s); ok {
			return g.str(s, next)
		}
	}
	if s.EatWhile(g.isWord) {
		return g.word(s.Current()), st
	}
	s.Next()
	return Error, st
}

func (g *Grammar) isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(g.WordRunes, r)
}

func (g *Grammar) word(w string) Kind {
	switch {
	case g.Keywords[w]:
		return Keyword
	case g.Atoms[w]:
		return Atom
	case g.TypeKeywords && g.Types[w]:
		return Type
	}
	return Identifier
}

// blockComment consumes comment text up to the closing "*/" or the end of
// the line.
func (g *Grammar) blockComment(s *Stream, st State) (Kind, State) {
	if st.Star && s.Sol() && s.EatRune('/') {
		st.Depth--
		if st.Depth <= 0 {
			return Comment, State{}
		}
	}
	st.Star = false
	var star bool
	for !s.Eol() {
		if s.Match("*/", true) {
			star = false
			st.Depth--
			if st.Depth <= 0 {
				return Comment, State{}
			}
			continue
		}
		if g.NestedComments && s.Match("/*", true) {
			star = false
			st.Depth++
			continue
		}
		star = s.Next() == '*'
	}
	st.Star = star
	return Comment, st
}

// str consumes string content up to the closing quote or the end of the
// line. A string left open at the end of the line continues on the next.
func (g *Grammar) str(s *Stream, st State) (Kind, State) {
	for !s.Eol() {
		r := s.Next()
		if r == '\\' && !st.Raw {
			s.Next()
			continue
		}
		if r != st.Quote {
			continue
		}
		if st.Hashes == 0 || s.Match(strings.Repeat("#", st.Hashes), true) {
			return String, State{}
		}
	}
	return String, st
}

// charOrLifetime handles a leading quote in grammars where 'x' is a char
// literal and 'x on its own a lifetime or label.
func (g *Grammar) charOrLifetime(s *Stream) Kind {
	s.Next()
	if s.Peek() == '\\' {
		s.Next()
		s.Next()
		for !s.Eol() && s.Next() != '\'' {
		}
		return String
	}
	if s.PeekAt(1) == '\'' && s.Peek() != EOL {
		s.Next()
		s.Next()
		return String
	}
	if !s.EatWhile(g.isWord) {
		return Error
	}
	return Identifier
}

// prefixedString consumes a b"..", r"..", r#".."# or br".." opening and
// returns the string state it starts.
func (g *Grammar) prefixedString(s *Stream) (State, bool) {
	n := 0
	if s.PeekAt(n) == 'b' {
		n++
	}
	raw := s.PeekAt(n) == 'r'
	if raw {
		n++
	}
	if n == 0 {
		return State{}, false
	}
	hashes := 0
	for raw && s.PeekAt(n+hashes) == '#' {
		hashes++
	}
	if s.PeekAt(n+hashes) != '"' {
		return State{}, false
	}
	s.pos += n + hashes + 1
	return State{Mode: InString, Quote: '"', Raw: raw, Hashes: hashes}, true
}

func set(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
