package main

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/chenen3/codepad/internal/lexer"
	"github.com/chenen3/codepad/internal/session"
)

var ansi = regexp.MustCompile("\x1b\\[[0-9;]*m")

func TestPrintHighlighted(t *testing.T) {
	opts := session.DefaultOptions()
	opts.Grammar = "rust"
	sess, err := session.New("fn main() {\n    // hi\n}\n", opts)
	if err != nil {
		t.Fatal(err)
	}
	for _, color := range []bool{false, true} {
		var buf bytes.Buffer
		if err := printHighlighted(&buf, sess, color); err != nil {
			t.Fatal(err)
		}
		got := ansi.ReplaceAllString(buf.String(), "")
		if want := "fn main() {\n    // hi\n}\n"; got != want {
			t.Errorf("color %v: printed %q, want %q", color, got, want)
		}
	}
}

func TestLexLine(t *testing.T) {
	lx := lexer.JavaScript(false)
	out, st := lexLine(lx, nil, "let x /* a", 0, lexer.State{})
	if want := "keyword:let identifier:x comment:/* a"; out != want {
		t.Errorf("line 1 = %q, want %q", out, want)
	}
	if st.Mode != lexer.InBlockComment {
		t.Fatalf("state after line 1 = %v, want block comment", st)
	}
	out, st = lexLine(lx, nil, "b */ y", 1, st)
	if want := "comment:b */ identifier:y"; out != want {
		t.Errorf("line 2 = %q, want %q", out, want)
	}
	if st.Mode != lexer.Base {
		t.Errorf("state after line 2 = %v, want base", st)
	}
}
