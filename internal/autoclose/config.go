package autoclose

import (
	"errors"
	"fmt"
	"strings"
)

var ErrBadPair = errors.New("pair must be exactly two runes")

// Config describes which brackets are closed automatically.
type Config struct {
	Pairs       []string `json:"pairs"`       // opening rune followed by closing rune, e.g. "()"
	CloseBefore string   `json:"closeBefore"` // a pair is only inserted before one of these, white space or the line end
	Triples     string   `json:"triples"`     // identical pairs that also pair as triples, e.g. `"` for """
	Explode     string   `json:"explode"`     // opening runes whose empty pair expands into a block on Enter
	IndentUnit  string   `json:"indentUnit"`  // added per nesting level when exploding, defaults to a tab
}

func DefaultConfig() Config {
	return Config{
		Pairs:       []string{"()", "[]", "{}", "''", `""`, "``"},
		CloseBefore: ")]}'\":;>",
		Explode:     "[{",
		IndentUnit:  "\t",
	}
}

func (c Config) Validate() error {
	for _, p := range c.Pairs {
		if len([]rune(p)) != 2 {
			return fmt.Errorf("autoclose: %q: %w", p, ErrBadPair)
		}
	}
	if strings.Trim(c.IndentUnit, " \t") != "" {
		return fmt.Errorf("autoclose: indent unit %q is not blank", c.IndentUnit)
	}
	return nil
}

// pair returns the opening and closing runes of the pair containing r.
func (c Config) pair(r rune) (rune, rune, bool) {
	for _, p := range c.Pairs {
		rs := []rune(p)
		if rs[0] == r || rs[1] == r {
			return rs[0], rs[1], true
		}
	}
	return 0, 0, false
}

// closing returns the closing partner of open, if it opens a pair.
func (c Config) closing(open rune) (rune, bool) {
	for _, p := range c.Pairs {
		rs := []rune(p)
		if rs[0] == open {
			return rs[1], true
		}
	}
	return 0, false
}

// IndentContext is what Enter needs to know about indentation: the
// indentation of the current line and the unit added for a nested block.
type IndentContext struct {
	Base string
	Unit string
}

// Inner is the indentation of a block opened on the current line.
func (ic IndentContext) Inner() string { return ic.Base + ic.Unit }
