package lexer

// Kind classifies a token. The set is closed: every switch over Kind in this
// module lists all of them.
type Kind int

const (
	Whitespace Kind = iota // never emitted by Tokenize
	Keyword
	Atom // literal atoms such as true, null, None
	Number
	String
	Comment
	Operator
	Delimiter
	Identifier
	Type // only produced by grammars with TypeKeywords set
	Error
)

func (k Kind) String() string {
	switch k {
	case Whitespace:
		return "whitespace"
	case Keyword:
		return "keyword"
	case Atom:
		return "atom"
	case Number:
		return "number"
	case String:
		return "string"
	case Comment:
		return "comment"
	case Operator:
		return "operator"
	case Delimiter:
		return "delimiter"
	case Identifier:
		return "identifier"
	case Type:
		return "type"
	case Error:
		return "error"
	}
	return "unknown"
}

// Structural reports whether delimiters inside a token of this kind take
// part in bracket nesting.
func (k Kind) Structural() bool {
	return k != String && k != Comment
}

// Kinds lists every kind that Tokenize may emit.
var Kinds = []Kind{Keyword, Atom, Number, String, Comment, Operator, Delimiter, Identifier, Type, Error}

// Token is a classified span of one line. Start and End are rune offsets,
// End is exclusive.
type Token struct {
	Kind  Kind
	Start int
	End   int
	Line  int
}

// Len returns the number of runes covered by t.
func (t Token) Len() int { return t.End - t.Start }

// Contains reports whether the rune at col belongs to t.
func (t Token) Contains(col int) bool { return t.Start <= col && col < t.End }
