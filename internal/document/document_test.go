package document

import (
	"reflect"
	"testing"

	"github.com/chenen3/codepad/internal/lexer"
)

func newJS(text string) *Document { return New(lexer.JavaScript(false), text) }

func checkCoherent(t *testing.T, d *Document) {
	t.Helper()
	d.Tokens(d.NumLines() - 1)
	for i := 0; i < d.NumLines(); i++ {
		want := lexer.State{}
		if i > 0 {
			want = d.ExitState(i - 1)
		}
		if got := d.EnterState(i); got != want {
			t.Errorf("EnterState(%d) = %v, want ExitState(%d) = %v", i, got, i-1, want)
		}
		for _, tok := range d.Tokens(i) {
			if tok.Line != i {
				t.Errorf("line %d holds token for line %d", i, tok.Line)
			}
		}
	}
}

func TestLazyTokenization(t *testing.T) {
	d := newJS("a\nb\nc\nd")
	if d.Valid(0) {
		t.Fatal("line 0 valid before first read")
	}
	d.Tokens(1)
	if !d.Valid(0) || !d.Valid(1) || d.Valid(2) {
		t.Fatalf("valid prefix after reading line 1 = %d, want 2", d.valid)
	}
	// editing past the valid prefix computes nothing
	if got := d.Insert(Pos{Line: 3, Col: 1}, "x"); got != (Dirty{From: 3, To: 3}) {
		t.Errorf("Insert past prefix = %+v", got)
	}
	if d.Valid(3) {
		t.Error("line 3 valid after edit past prefix")
	}
	checkCoherent(t, d)
}

func TestRetokenizeStopsWhenStateUnchanged(t *testing.T) {
	d := newJS("let a = 1\nlet b = 2\nlet c = 3\nlet d = 4")
	d.Tokens(3)
	before := []*lineCache{d.lines[2].cache, d.lines[3].cache}

	dirty := d.Insert(Pos{Line: 1, Col: 9}, " + 'x'")
	if dirty != (Dirty{From: 1, To: 1}) {
		t.Errorf("dirty = %+v, want line 1 only", dirty)
	}
	if d.lines[2].cache != before[0] || d.lines[3].cache != before[1] {
		t.Error("lines below the edit were retokenized")
	}
	checkCoherent(t, d)
}

func TestRetokenizePropagatesStateChange(t *testing.T) {
	d := newJS("a\nb\nc\nd")
	d.Tokens(3)

	dirty := d.Insert(Pos{Line: 1, Col: 0}, "/* ")
	if dirty != (Dirty{From: 1, To: 3}) {
		t.Errorf("opening a comment: dirty = %+v, want 1-3", dirty)
	}
	for i := 1; i < 4; i++ {
		if k := d.KindAt(Pos{Line: i, Col: 0}); k != lexer.Comment {
			t.Errorf("line %d kind = %v, want comment", i, k)
		}
	}
	checkCoherent(t, d)

	dirty = d.Insert(Pos{Line: 2, Col: 1}, " */")
	if dirty != (Dirty{From: 2, To: 3}) {
		t.Errorf("closing the comment: dirty = %+v, want 2-3", dirty)
	}
	if k := d.KindAt(Pos{Line: 3, Col: 0}); k != lexer.Identifier {
		t.Errorf("line 3 kind = %v, want identifier", k)
	}
	checkCoherent(t, d)
}

func TestMultiLineEdits(t *testing.T) {
	d := newJS("one\ntwo\nthree")
	d.Tokens(2)

	d.Insert(Pos{Line: 0, Col: 3}, " {\n\tx\n}")
	if got, want := d.Text(), "one {\n\tx\n}\ntwo\nthree"; got != want {
		t.Fatalf("after insert Text() = %q, want %q", got, want)
	}
	checkCoherent(t, d)

	d.Delete(Pos{Line: 0, Col: 3}, Pos{Line: 3, Col: 0})
	if got, want := d.Text(), "onetwo\nthree"; got != want {
		t.Fatalf("after delete Text() = %q, want %q", got, want)
	}
	checkCoherent(t, d)

	d.Replace(Pos{Line: 1, Col: 0}, Pos{Line: 1, Col: 5}, "'a\nb'")
	if got, want := d.Text(), "onetwo\n'a\nb'"; got != want {
		t.Fatalf("after replace Text() = %q, want %q", got, want)
	}
	if st := d.ExitState(1); st != (lexer.State{Mode: lexer.InString, Quote: '\''}) {
		t.Errorf("ExitState(1) = %v, want string", st)
	}
	checkCoherent(t, d)
}

func TestTokenAt(t *testing.T) {
	d := newJS(`f( "(" )`)
	tests := []struct {
		col  int
		kind lexer.Kind
		ok   bool
	}{
		{0, lexer.Identifier, true},
		{1, lexer.Delimiter, true},
		{2, 0, false},
		{4, lexer.String, true},
		{7, lexer.Delimiter, true},
		{8, 0, false},
	}
	for _, tt := range tests {
		tok, ok := d.TokenAt(Pos{Col: tt.col})
		if ok != tt.ok || ok && tok.Kind != tt.kind {
			t.Errorf("TokenAt(%d) = %v, %v, want %v, %v", tt.col, tok.Kind, ok, tt.kind, tt.ok)
		}
	}
}

func TestSliceAndClamp(t *testing.T) {
	d := newJS("ab\ncd\nef")
	if got := d.Slice(Pos{0, 1}, Pos{2, 1}); got != "b\ncd\ne" {
		t.Errorf("Slice = %q", got)
	}
	if got := d.Clamp(Pos{Line: 9, Col: 9}); got != (Pos{Line: 2, Col: 2}) {
		t.Errorf("Clamp = %v", got)
	}
	if got := d.Indentation(0); got != "" {
		t.Errorf("Indentation = %q", got)
	}
}

func TestChangeMapPos(t *testing.T) {
	c := Change{From: Pos{1, 2}, To: Pos{1, 4}, Text: "x\nyz"}
	tests := []struct {
		in, want Pos
	}{
		{Pos{0, 9}, Pos{0, 9}},
		{Pos{1, 1}, Pos{1, 1}},
		{Pos{1, 3}, Pos{2, 2}},
		{Pos{1, 6}, Pos{2, 4}},
		{Pos{3, 0}, Pos{4, 0}},
	}
	for _, tt := range tests {
		if got := c.MapPos(tt.in); got != tt.want {
			t.Errorf("MapPos(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := c.End(); !reflect.DeepEqual(got, Pos{2, 2}) {
		t.Errorf("End() = %v", got)
	}
}
