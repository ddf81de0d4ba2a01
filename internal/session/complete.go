package session

import (
	"unicode"

	"github.com/chenen3/codepad/internal/document"
	"github.com/chenen3/codepad/internal/lexer"
)

// Complete returns the identifiers seen in the tokenized lines that
// start with prefix. A lower case rune in prefix also matches its upper
// case form.
func (s *Session) Complete(prefix string) []string {
	if s.words == nil || s.wordsVersion != s.doc.Version() || s.wordsLines != s.validLines() {
		s.words = s.buildWords()
		s.wordsVersion = s.doc.Version()
		s.wordsLines = s.validLines()
	}
	return s.words.get(prefix)
}

// WordBefore returns the identifier that ends at p, if any.
func (s *Session) WordBefore(p document.Pos) string {
	if p.Col == 0 {
		return ""
	}
	t, ok := s.doc.TokenAt(document.Pos{Line: p.Line, Col: p.Col - 1})
	if !ok || t.Kind != lexer.Identifier || t.End != p.Col {
		return ""
	}
	return string(s.doc.Line(p.Line)[t.Start:t.End])
}

func (s *Session) validLines() int {
	n := 0
	for n < s.doc.NumLines() && s.doc.Valid(n) {
		n++
	}
	return n
}

func (s *Session) buildWords() *node {
	n := new(node)
	for i := 0; i < s.doc.NumLines() && s.doc.Valid(i); i++ {
		line := s.doc.Line(i)
		for _, t := range s.doc.Tokens(i) {
			if t.Kind == lexer.Identifier {
				n.set(string(line[t.Start:t.End]))
			}
		}
	}
	return n
}

// a tree of identifiers, one rune per node
type node struct {
	value    rune
	parent   *node
	children []*node
	end      bool // a word ends here
}

func (n *node) set(s string) {
	nn := n
	for _, c := range s {
		var found *node
		for _, child := range nn.children {
			if child.value == c {
				found = child
				break
			}
		}
		if found == nil {
			found = &node{parent: nn, value: c}
			nn.children = append(nn.children, found)
		}
		nn = found
	}
	if nn != n {
		nn.end = true
	}
}

func (n *node) get(s string) []string {
	if s == "" {
		return nil
	}

	// the deepest nodes that match s
	nodes := []*node{n}
	for _, c := range s {
		var match []*node
		for _, nn := range nodes {
			for _, child := range nn.children {
				if child.value == c || unicode.ToLower(child.value) == c {
					match = append(match, child)
				}
			}
		}
		if len(match) == 0 {
			return nil
		}
		nodes = match
	}

	var words []string
	for _, nn := range nodes {
		for _, w := range nn.words() {
			words = append(words, w.word())
		}
	}
	return words
}

// words returns the nodes at or below n where a word ends.
func (n *node) words() []*node {
	var ws []*node
	if n.end {
		ws = append(ws, n)
	}
	for _, child := range n.children {
		ws = append(ws, child.words()...)
	}
	return ws
}

func (n *node) word() string {
	var rs []rune
	for p := n; p != nil && p.parent != nil; p = p.parent {
		rs = append(rs, p.value)
	}
	for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
		rs[i], rs[j] = rs[j], rs[i]
	}
	return string(rs)
}
