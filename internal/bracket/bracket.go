// Package bracket finds the structural counterpart of a bracket. Brackets
// inside string and comment tokens are not structural and are skipped.
package bracket

import (
	"errors"
	"fmt"

	"github.com/chenen3/codepad/internal/document"
)

var ErrBadPairs = errors.New("bracket pairs must be an even number of runes")

type Config struct {
	Pairs         string `json:"pairs"`         // opening rune followed by its closing rune, e.g. "()[]{}"
	MaxScanLines  int    `json:"maxScanLines"`  // lines a scan may visit
	MaxLineLength int    `json:"maxLineLength"` // longest line a scan will read
}

func DefaultConfig() Config {
	return Config{Pairs: "()[]{}", MaxScanLines: 1000, MaxLineLength: 10000}
}

func (c Config) Validate() error {
	rs := []rune(c.Pairs)
	if len(rs) == 0 || len(rs)%2 != 0 {
		return fmt.Errorf("bracket: %q: %w", c.Pairs, ErrBadPairs)
	}
	for i := 0; i < len(rs); i += 2 {
		if rs[i] == rs[i+1] {
			return fmt.Errorf("bracket: %q opens and closes with the same rune: %w", string(rs[i:i+2]), ErrBadPairs)
		}
	}
	if c.MaxScanLines <= 0 || c.MaxLineLength <= 0 {
		return fmt.Errorf("bracket: scan bounds must be positive, got %d lines of %d", c.MaxScanLines, c.MaxLineLength)
	}
	return nil
}

// Match is the outcome of a bracket search from the bracket at From. When
// Matched is false To is meaningless.
type Match struct {
	From, To document.Pos
	Matched  bool
}

type cacheKey struct {
	version uint64
	pos     document.Pos
}

type cacheEntry struct {
	m  Match
	ok bool
}

// Matcher searches brackets. Results are cached per document version until
// the matcher is reconfigured.
type Matcher struct {
	cfg   Config
	pairs []rune
	cache map[cacheKey]cacheEntry
	doc   *document.Document
}

func NewMatcher(cfg Config) (*Matcher, error) {
	m := &Matcher{}
	if err := m.Reconfigure(cfg); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Matcher) Config() Config { return m.cfg }

// Reconfigure replaces the configuration and forgets every cached search.
func (m *Matcher) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.cfg = cfg
	m.pairs = []rune(cfg.Pairs)
	m.cache = make(map[cacheKey]cacheEntry)
	return nil
}

// Find looks at the rune before pos, then the rune after it. It reports
// false when neither is a structural bracket. Otherwise the returned Match
// starts at that bracket and, when its counterpart was found within the
// scan bounds, ends at it.
func (m *Matcher) Find(doc *document.Document, pos document.Pos) (Match, bool) {
	if doc != m.doc {
		m.doc = doc
		clear(m.cache)
	}
	key := cacheKey{version: doc.Version(), pos: pos}
	if e, ok := m.cache[key]; ok {
		return e.m, e.ok
	}
	match, ok := m.find(doc, pos)
	if len(m.cache) > 256 {
		clear(m.cache)
	}
	m.cache[key] = cacheEntry{m: match, ok: ok}
	return match, ok
}

func (m *Matcher) find(doc *document.Document, pos document.Pos) (Match, bool) {
	for _, at := range []document.Pos{{Line: pos.Line, Col: pos.Col - 1}, pos} {
		r, ok := doc.Rune(at)
		if !ok {
			continue
		}
		i := runeIndex(m.pairs, r)
		if i < 0 || !doc.KindAt(at).Structural() {
			continue
		}
		if i%2 == 0 {
			return m.scan(doc, at, r, m.pairs[i+1], 1), true
		}
		return m.scan(doc, at, r, m.pairs[i-1], -1), true
	}
	return Match{}, false
}

// scan walks from the bracket b at from in direction dir looking for want.
// Only brackets of the same pair count towards the depth.
func (m *Matcher) scan(doc *document.Document, from document.Pos, b, want rune, dir int) Match {
	match := Match{From: from}
	depth := 0
	col := from.Col + dir
	for n, ln := 0, from.Line; n < m.cfg.MaxScanLines && ln >= 0 && ln < doc.NumLines(); n, ln = n+1, ln+dir {
		text := doc.Line(ln)
		if len(text) > m.cfg.MaxLineLength {
			return match
		}
		if ln != from.Line {
			col = 0
			if dir < 0 {
				col = len(text) - 1
			}
		}
		for ; col >= 0 && col < len(text); col += dir {
			r := text[col]
			if r != b && r != want {
				continue
			}
			at := document.Pos{Line: ln, Col: col}
			if !doc.KindAt(at).Structural() {
				continue
			}
			if r == b {
				depth++
				continue
			}
			if depth == 0 {
				match.To, match.Matched = at, true
				return match
			}
			depth--
		}
	}
	return match
}

func runeIndex(rs []rune, r rune) int {
	for i, x := range rs {
		if x == r {
			return i
		}
	}
	return -1
}
