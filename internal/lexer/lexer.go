// Package lexer classifies the text of a line into tokens. Lines are
// tokenized one at a time; a State carries multi-line constructs such as
// block comments and unterminated strings over to the next line.
package lexer

// Mode names the sub-tokenizer that resumes at the start of the next line.
type Mode uint8

const (
	Base Mode = iota
	InBlockComment
	InString
)

func (m Mode) String() string {
	switch m {
	case Base:
		return "base"
	case InBlockComment:
		return "block-comment"
	case InString:
		return "string"
	}
	return "unknown"
}

// State is the continuation state between two lines. It is a comparable
// value; the zero State is Base.
type State struct {
	Mode Mode

	Quote  rune // InString: the closing quote
	Raw    bool // InString: backslashes do not escape
	Hashes int  // InString: number of '#' after the closing quote of a raw string

	Depth int  // InBlockComment: nesting depth, 1 for a plain comment
	Star  bool // InBlockComment: the previous line ended with '*'
}

func (st State) String() string {
	switch st.Mode {
	case InString:
		return st.Mode.String() + "(" + string(st.Quote) + ")"
	case InBlockComment:
		if st.Star {
			return st.Mode.String() + "*"
		}
	}
	return st.Mode.String()
}

// Lexer is a grammar's classification function. Classify consumes one
// lexeme from s, starting in state st, and returns its kind together with
// the state that follows it. For a given line text and entering state the
// sequence of results must always be the same.
type Lexer interface {
	Name() string
	Classify(s *Stream, st State) (Kind, State)
}

// Tokenize classifies line from the entering state st and returns the
// tokens together with the exit state. White space is not reported. A
// Classify call that consumes nothing yields a one-rune Error token so the
// rest of the line is always tokenized.
func Tokenize(lx Lexer, line []rune, index int, st State) ([]Token, State) {
	if len(line) == 0 {
		// an empty line separates a trailing '*' from a leading '/'
		st.Star = false
		return nil, st
	}
	s := NewStream(line)
	var tokens []Token
	for !s.Eol() {
		s.mark()
		kind, next := lx.Classify(s, st)
		if s.pos == s.start {
			s.Next()
			kind = Error
		} else {
			st = next
		}
		if kind == Whitespace {
			continue
		}
		tokens = append(tokens, Token{Kind: kind, Start: s.start, End: s.pos, Line: index})
	}
	return tokens, st
}
