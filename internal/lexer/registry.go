package lexer

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownGrammar is returned by Lookup for names without a grammar.
var ErrUnknownGrammar = errors.New("unknown grammar")

// Registry maps grammar names to lexers. A registry is built for and owned
// by whoever sets up an editing session; there is no package level one.
type Registry map[string]Lexer

// NewRegistry returns a registry holding the reference grammars under
// their names and common file extensions.
func NewRegistry() Registry {
	rust := Rust()
	js := JavaScript(false)
	ts := JavaScript(true)
	return Registry{
		"rust":       rust,
		"rs":         rust,
		"javascript": js,
		"js":         js,
		"typescript": ts,
		"ts":         ts,
	}
}

func (r Registry) Lookup(name string) (Lexer, error) {
	lx, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("lexer: %q: %w", name, ErrUnknownGrammar)
	}
	return lx, nil
}

// Names returns the registered names in sorted order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
