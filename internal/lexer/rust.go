package lexer

// Rust returns the grammar for Rust source.
func Rust() *Grammar {
	return &Grammar{
		name: "rust",
		Keywords: set(
			"as", "async", "await", "break", "const", "continue", "crate", "dyn",
			"else", "enum", "extern", "fn", "for", "if", "impl", "in", "let", "loop",
			"match", "mod", "move", "mut", "pub", "ref", "return", "static", "struct",
			"super", "trait", "type", "union", "unsafe", "use", "where", "while", "yield",
		),
		Atoms: set("true", "false", "self", "Self", "Some", "None", "Ok", "Err"),
		Types: set(
			"bool", "char", "str", "String", "Vec", "Option", "Result", "Box",
			"i8", "i16", "i32", "i64", "i128", "isize",
			"u8", "u16", "u32", "u64", "u128", "usize", "f32", "f64",
		),
		Operators:      "+-*/%=&|^!<>?:@~",
		Delimiters:     "()[]{},;.#$",
		Quotes:         `"`,
		NestedComments: true,
		RawStrings:     true,
		CharLiterals:   true,
	}
}
