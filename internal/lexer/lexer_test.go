package lexer

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"unicode"
)

// describe renders tokens as "text:kind" for readable comparisons.
func describe(line string, tokens []Token) []string {
	rs := []rune(line)
	var s []string
	for _, t := range tokens {
		s = append(s, string(rs[t.Start:t.End])+":"+t.Kind.String())
	}
	return s
}

func tokenizeLines(lx Lexer, lines ...string) ([][]string, State) {
	var st State
	var out [][]string
	for i, line := range lines {
		var tokens []Token
		tokens, st = Tokenize(lx, []rune(line), i, st)
		out = append(out, describe(line, tokens))
	}
	return out, st
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		lexer Lexer
		lines []string
		want  [][]string
		exit  State
	}{
		{
			name:  "multi-line comment",
			lexer: JavaScript(false),
			lines: []string{"a /* x", "y */ b"},
			want: [][]string{
				{"a:identifier", "/* x:comment"},
				{"y */:comment", "b:identifier"},
			},
		},
		{
			name:  "unterminated string",
			lexer: JavaScript(false),
			lines: []string{"s = 'abc", "def' + x"},
			want: [][]string{
				{"s:identifier", "=:operator", "'abc:string"},
				{"def':string", "+:operator", "x:identifier"},
			},
		},
		{
			name:  "escaped quote",
			lexer: JavaScript(false),
			lines: []string{`i = "h\"i" // done`},
			want:  [][]string{{"i:identifier", "=:operator", `"h\"i":string`, "// done:comment"}},
		},
		{
			name:  "star closes across line boundary",
			lexer: JavaScript(false),
			lines: []string{"a /* x *", "/ b"},
			want: [][]string{
				{"a:identifier", "/* x *:comment"},
				{"/:comment", "b:identifier"},
			},
		},
		{
			name:  "opener star does not close",
			lexer: JavaScript(false),
			lines: []string{"/*", "/ b"},
			want: [][]string{
				{"/*:comment"},
				{"/ b:comment"},
			},
			exit: State{Mode: InBlockComment, Depth: 1},
		},
		{
			name:  "operator run stops at comment",
			lexer: JavaScript(false),
			lines: []string{"x=//c"},
			want:  [][]string{{"x:identifier", "=:operator", "//c:comment"}},
		},
		{
			name:  "keywords atoms numbers",
			lexer: JavaScript(false),
			lines: []string{"if (x === null) return 3.14;"},
			want: [][]string{{
				"if:keyword", "(:delimiter", "x:identifier", "===:operator", "null:atom",
				"):delimiter", "return:keyword", "3.14:number", ";:delimiter",
			}},
		},
		{
			name:  "template literal spans lines",
			lexer: JavaScript(false),
			lines: []string{"let s = `a", "b` + 1"},
			want: [][]string{
				{"let:keyword", "s:identifier", "=:operator", "`a:string"},
				{"b`:string", "+:operator", "1:number"},
			},
		},
		{
			name:  "typescript type keywords",
			lexer: JavaScript(true),
			lines: []string{"interface A { x: number }"},
			want: [][]string{{
				"interface:type", "A:identifier", "{:delimiter", "x:identifier", "::operator",
				"number:type", "}:delimiter",
			}},
		},
		{
			name:  "javascript has no type keywords",
			lexer: JavaScript(false),
			lines: []string{"interface"},
			want:  [][]string{{"interface:identifier"}},
		},
		{
			name:  "unknown rune is an error",
			lexer: JavaScript(false),
			lines: []string{"a @ b"},
			want:  [][]string{{"a:identifier", "@:error", "b:identifier"}},
		},
		{
			name:  "rust nested comment",
			lexer: Rust(),
			lines: []string{"/* a /* b */", "c */ fn"},
			want: [][]string{
				{"/* a /* b */:comment"},
				{"c */:comment", "fn:keyword"},
			},
		},
		{
			name:  "rust char and lifetime",
			lexer: Rust(),
			lines: []string{"fn f<'a>(c: char) { '(' }"},
			want: [][]string{{
				"fn:keyword", "f:identifier", "<:operator", "'a:identifier", ">:operator",
				"(:delimiter", "c:identifier", "::operator", "char:identifier", "):delimiter",
				"{:delimiter", "'(':string", "}:delimiter",
			}},
		},
		{
			name:  "rust raw string",
			lexer: Rust(),
			lines: []string{`let s = r#"a "quoted" \`, `b"#;`},
			want: [][]string{
				{"let:keyword", "s:identifier", "=:operator", `r#"a "quoted" \:string`},
				{`b"#:string`, ";:delimiter"},
			},
		},
		{
			name:  "rust range is not a float",
			lexer: Rust(),
			lines: []string{"0..10"},
			want:  [][]string{{"0:number", ".:delimiter", ".:delimiter", "10:number"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, exit := tokenizeLines(tt.lexer, tt.lines...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.lines, got, tt.want)
			}
			if exit != tt.exit {
				t.Errorf("exit state = %v, want %v", exit, tt.exit)
			}
		})
	}
}

func TestUnterminatedStringState(t *testing.T) {
	_, st := Tokenize(JavaScript(false), []rune("s = 'abc"), 0, State{})
	want := State{Mode: InString, Quote: '\''}
	if st != want {
		t.Fatalf("exit state = %v, want %v", st, want)
	}

	tokens, st := Tokenize(JavaScript(false), []rune(`still \' open`), 1, st)
	if len(tokens) != 1 || tokens[0].Kind != String {
		t.Fatalf("continued line = %v, want one string token", tokens)
	}
	if st != want {
		t.Fatalf("exit state after escaped quote = %v, want %v", st, want)
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	lines := []string{
		`let x = "a" + 'b' /* c`,
		`d */ fn main() { println!("{}", 1); }`,
		"    ",
		"",
	}
	for _, lx := range []Lexer{Rust(), JavaScript(false), JavaScript(true)} {
		for _, entering := range []State{{}, {Mode: InBlockComment, Depth: 1}, {Mode: InString, Quote: '"'}} {
			for _, line := range lines {
				t1, s1 := Tokenize(lx, []rune(line), 0, entering)
				t2, s2 := Tokenize(lx, []rune(line), 0, entering)
				if !reflect.DeepEqual(t1, t2) || s1 != s2 {
					t.Errorf("%s: Tokenize(%q, %v) differs between runs", lx.Name(), line, entering)
				}
			}
		}
	}
}

func TestTokensPartitionLine(t *testing.T) {
	lines := []string{
		`a+b*(c-"d e")//f`,
		`  x = { y: [1, 2.5, 'z'] } ; @#`,
		`r##"raw"## b"bytes" 'c' 'life`,
		"\t/* c */ d /* e",
	}
	for _, lx := range []Lexer{Rust(), JavaScript(true)} {
		for _, line := range lines {
			rs := []rune(line)
			tokens, _ := Tokenize(lx, rs, 0, State{})
			covered := make([]bool, len(rs))
			prev := 0
			for _, tok := range tokens {
				if tok.Start < prev || tok.End <= tok.Start {
					t.Fatalf("%s: %q: token %+v overlaps or is empty", lx.Name(), line, tok)
				}
				for i := tok.Start; i < tok.End; i++ {
					covered[i] = true
				}
				prev = tok.End
			}
			for i, r := range rs {
				if !covered[i] && !unicode.IsSpace(r) {
					t.Errorf("%s: %q: rune %d (%q) not covered", lx.Name(), line, i, r)
				}
			}
		}
	}
}

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"rust", "javascript", "typescript", "ts"} {
		if _, err := reg.Lookup(name); err != nil {
			t.Errorf("Lookup(%q): %v", name, err)
		}
	}
	_, err := reg.Lookup("cobol")
	if !errors.Is(err, ErrUnknownGrammar) {
		t.Fatalf("Lookup(cobol) error = %v, want ErrUnknownGrammar", err)
	}
	if !strings.Contains(err.Error(), "cobol") {
		t.Errorf("error %q does not name the grammar", err)
	}
}

func TestKindString(t *testing.T) {
	for _, k := range append([]Kind{Whitespace}, Kinds...) {
		if k.String() == "unknown" {
			t.Errorf("Kind(%d) has no name", k)
		}
	}
}
