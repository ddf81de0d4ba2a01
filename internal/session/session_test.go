package session

import (
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/chenen3/codepad/internal/autoclose"
	"github.com/chenen3/codepad/internal/bracket"
	"github.com/chenen3/codepad/internal/document"
	"github.com/chenen3/codepad/internal/lexer"
	"github.com/chenen3/codepad/internal/theme"
)

func pos(line, col int) document.Pos { return document.Pos{Line: line, Col: col} }

func newSession(t *testing.T, text string) *Session {
	t.Helper()
	opts := DefaultOptions()
	opts.Logger = zaptest.NewLogger(t)
	s, err := New(text, opts)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		want   error
	}{
		{"unknown grammar", func(o *Options) { o.Grammar = "cobol" }, lexer.ErrUnknownGrammar},
		{"odd pair", func(o *Options) { o.AutoClose.Pairs = []string{"(", "[]"} }, autoclose.ErrBadPair},
		{"odd bracket pairs", func(o *Options) { o.Bracket.Pairs = "()[" }, bracket.ErrBadPairs},
		{"unknown theme", func(o *Options) { o.Theme = "neon" }, theme.ErrUnknownTheme},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			if _, err := New("", opts); !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestKey(t *testing.T) {
	s := newSession(t, "f")
	eff := s.Key([]autoclose.Selection{autoclose.Cursor(pos(0, 1))}, autoclose.Key{Kind: autoclose.KeyRune, Rune: '('})
	if !eff.Handled {
		t.Fatal("'(' declined at the end of a line")
	}
	if got := s.Text(); got != "f()" {
		t.Errorf("Text() = %q, want %q", got, "f()")
	}
	if want := []autoclose.Selection{autoclose.Cursor(pos(0, 2))}; !reflect.DeepEqual(eff.Selections, want) {
		t.Errorf("Selections = %v, want %v", eff.Selections, want)
	}
	if want := []document.Pos{pos(0, 1), pos(0, 2)}; !reflect.DeepEqual(eff.Highlight.Marks, want) {
		t.Errorf("Highlight = %v, want %v", eff.Highlight.Marks, want)
	}
	if eff.Dirty != (document.Dirty{From: 0, To: 0}) {
		t.Errorf("Dirty = %+v", eff.Dirty)
	}

	eff = s.Key([]autoclose.Selection{autoclose.Cursor(pos(0, 3))}, autoclose.Key{Kind: autoclose.KeyRune, Rune: 'x'})
	if eff.Handled || !eff.Dirty.Empty() || s.Text() != "f()" {
		t.Errorf("plain rune handled: %+v, text %q", eff, s.Text())
	}
}

func TestEditRetokenizes(t *testing.T) {
	s := newSession(t, "a\nb\nc")
	doc := s.Document()
	doc.Tokens(2)

	eff := s.Edit(document.Change{From: pos(0, 0), To: pos(0, 0), Text: "/*"})
	if eff.Dirty != (document.Dirty{From: 0, To: 2}) {
		t.Errorf("opening a comment: Dirty = %+v, want 0..2", eff.Dirty)
	}
	if doc.KindAt(pos(2, 0)) != lexer.Comment {
		t.Errorf("line 3 is %v, want Comment", doc.KindAt(pos(2, 0)))
	}
	if want := []autoclose.Selection{autoclose.Cursor(pos(0, 2))}; !reflect.DeepEqual(eff.Selections, want) {
		t.Errorf("Selections = %v, want %v", eff.Selections, want)
	}
}

func TestCursorAndReconfigure(t *testing.T) {
	s := newSession(t, "{\n\n\n}")
	eff := s.Cursor([]document.Pos{pos(0, 0)})
	if want := []document.Pos{pos(0, 0), pos(3, 0)}; !reflect.DeepEqual(eff.Highlight.Marks, want) {
		t.Fatalf("Highlight = %v, want %v", eff.Highlight.Marks, want)
	}

	cfg := bracket.DefaultConfig()
	cfg.MaxScanLines = 1
	if err := s.Reconfigure(cfg); err != nil {
		t.Fatal(err)
	}
	if eff := s.Cursor([]document.Pos{pos(0, 0)}); len(eff.Highlight.Marks) != 0 {
		t.Errorf("Highlight beyond scan bound = %v, want none", eff.Highlight.Marks)
	}
	if err := s.Reconfigure(bracket.Config{Pairs: "("}); err == nil {
		t.Error("Reconfigure accepted an odd pair string")
	}
}

func TestComplete(t *testing.T) {
	s := newSession(t, "fmt.Println(1024)\nprintln(1024)")
	if got := s.Complete("fm"); got != nil {
		t.Errorf("Complete before tokenizing = %v, want nil", got)
	}
	s.Document().Tokens(1)

	tests := []struct {
		name   string
		prefix string
		want   []string
	}{
		{prefix: "fm", want: []string{"fmt"}},
		{name: "insensitive case", prefix: "pri", want: []string{"Println", "println"}},
		{name: "upper case is exact", prefix: "Pr", want: []string{"Println"}},
		{name: "no match", prefix: "x", want: nil},
		{name: "empty prefix", prefix: "", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Complete(tt.prefix); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Complete(%q) = %v, want %v", tt.prefix, got, tt.want)
			}
		})
	}

	s.Edit(document.Change{From: pos(1, 13), To: pos(1, 13), Text: "\nfmtx"})
	s.Document().Tokens(2)
	if got, want := s.Complete("fm"), []string{"fmt", "fmtx"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Complete after edit = %v, want %v", got, want)
	}
}

func TestWordBefore(t *testing.T) {
	s := newSession(t, `let foo = "bar"`)
	tests := []struct {
		at   document.Pos
		want string
	}{
		{pos(0, 7), "foo"},
		{pos(0, 6), ""},
		{pos(0, 3), ""},
		{pos(0, 14), ""},
		{pos(0, 0), ""},
	}
	for _, tt := range tests {
		if got := s.WordBefore(tt.at); got != tt.want {
			t.Errorf("WordBefore(%v) = %q, want %q", tt.at, got, tt.want)
		}
	}
}
