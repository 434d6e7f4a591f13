package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwUnion represents the 'union' keyword.
	KwUnion // union
	// KwImpl represents the 'impl' keyword.
	KwImpl // impl
	// KwMod represents the 'mod' keyword.
	KwMod // mod
	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwType represents the 'type' keyword.
	KwType // type
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwStatic represents the 'static' keyword.
	KwStatic // static
	// KwImport represents the 'import' keyword.
	KwImport // import
	// KwAs represents the 'as' keyword.
	KwAs // as
	// KwPub represents the 'pub' keyword.
	KwPub // pub
	// KwTrue represents the 'true' keyword.
	KwTrue // true
	// KwFalse represents the 'false' keyword.
	KwFalse // false

	// IntLit represents an integer literal.
	IntLit
	// FloatLit represents a floating point literal.
	FloatLit
	// StringLit represents a string literal.
	StringLit

	// Punctuation and operators.
	At         // @
	LParen     // (
	RParen     // )
	LBrace     // {
	RBrace     // }
	LBracket   // [
	RBracket   // ]
	Comma      // ,
	Semicolon  // ;
	Colon      // :
	ColonColon // ::
	Dot        // .
	Arrow      // ->
	FatArrow   // =>
	Assign     // =
	EqEq       // ==
	Bang       // !
	BangEq     // !=
	Lt         // <
	LtEq       // <=
	Gt         // >
	GtEq       // >=
	Plus       // +
	Minus      // -
	Star       // *
	Slash      // /
	Percent    // %
	Amp        // &
	AndAnd     // &&
	Pipe       // |
	OrOr       // ||
	Caret      // ^
	Question   // ?
	Underscore // _
)

var kindNames = map[Kind]string{
	Invalid:    "invalid",
	EOF:        "eof",
	Ident:      "ident",
	KwStruct:   "struct",
	KwEnum:     "enum",
	KwUnion:    "union",
	KwImpl:     "impl",
	KwMod:      "mod",
	KwFn:       "fn",
	KwConst:    "const",
	KwType:     "type",
	KwLet:      "let",
	KwStatic:   "static",
	KwImport:   "import",
	KwAs:       "as",
	KwPub:      "pub",
	KwTrue:     "true",
	KwFalse:    "false",
	IntLit:     "int literal",
	FloatLit:   "float literal",
	StringLit:  "string literal",
	At:         "@",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	LBracket:   "[",
	RBracket:   "]",
	Comma:      ",",
	Semicolon:  ";",
	Colon:      ":",
	ColonColon: "::",
	Dot:        ".",
	Arrow:      "->",
	FatArrow:   "=>",
	Assign:     "=",
	EqEq:       "==",
	Bang:       "!",
	BangEq:     "!=",
	Lt:         "<",
	LtEq:       "<=",
	Gt:         ">",
	GtEq:       ">=",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Percent:    "%",
	Amp:        "&",
	AndAnd:     "&&",
	Pipe:       "|",
	OrOr:       "||",
	Caret:      "^",
	Question:   "?",
	Underscore: "_",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}
