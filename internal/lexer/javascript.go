package lexer

// JavaScript returns the grammar for JavaScript, or for TypeScript when
// typescript is set. The TypeScript variant reports declaration keywords
// such as interface and namespace as Type.
func JavaScript(typescript bool) *Grammar {
	g := &Grammar{
		name: "javascript",
		Keywords: set(
			"async", "await", "break", "case", "catch", "class", "const", "continue",
			"debugger", "default", "delete", "do", "else", "export", "extends",
			"finally", "for", "function", "if", "import", "in", "instanceof", "let",
			"new", "of", "return", "static", "super", "switch", "this", "throw", "try",
			"typeof", "var", "void", "while", "with", "yield",
		),
		Atoms: set("true", "false", "null", "undefined", "NaN", "Infinity"),
		Types: set(
			"abstract", "any", "as", "asserts", "boolean", "declare", "enum", "implements",
			"infer", "interface", "keyof", "module", "namespace", "never", "number",
			"object", "private", "protected", "public", "readonly", "string", "symbol",
			"type", "unknown",
		),
		Operators:    "+-*/%=&|^~<>!?:",
		Delimiters:   "()[]{},;.",
		Quotes:       "'\"`",
		WordRunes:    "$",
		TypeKeywords: typescript,
	}
	if typescript {
		g.name = "typescript"
	}
	return g
}
