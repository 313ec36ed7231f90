// Package token defines the kinds of lexical tokens the lexer produces
// and the fixed keyword table the identifier scanner classifies against.
package token

// Type identifies a token's lexical category.
type Type string

// Token is one lexeme recognized by the lexer, with its source position.
type Token struct {
	Type   Type
	Lexeme string
	Line   int
	Column int
}

func (t Token) String() string {
	return string(t.Type) + " " + t.Lexeme
}

const (
	// Delimiters
	LeftParen  Type = "LEFT_PAREN"
	RightParen Type = "RIGHT_PAREN"
	LeftBrace  Type = "LEFT_BRACE"
	RightBrace Type = "RIGHT_BRACE"

	// Punctuation
	Comma     Type = "COMMA"
	Dot       Type = "DOT"
	DotDot    Type = "DOT_DOT"
	Ellipsis  Type = "ELLIPSIS"
	Colon     Type = "COLON"
	Semicolon Type = "SEMICOLON"

	// Math operators
	Plus  Type = "PLUS"
	Minus Type = "MINUS"
	Star  Type = "STAR"
	Slash Type = "SLASH"
	Caret Type = "CARET"

	// Comparison / equality
	Less         Type = "LESS"
	LessEqual    Type = "LESS_EQUAL"
	Greater      Type = "GREATER"
	GreaterEqual Type = "GREATER_EQUAL"
	EqualEqual   Type = "EQUAL_EQUAL"
	BangEqual    Type = "BANG_EQUAL"

	// Assignment
	Equal Type = "EQUAL"

	// Names
	Identifier Type = "IDENTIFIER"
	Keyword    Type = "KEYWORD"
	Reserved   Type = "RESERVED"

	// Literals
	String Type = "STRING"
	Number Type = "NUMBER"
	True   Type = "TRUE"
	False  Type = "FALSE"
	Nil    Type = "NIL"

	// Structural / trivia
	Comment Type = "COMMENT"
	Newline Type = "NEWLINE"
	Indent  Type = "INDENT"
	Dedent  Type = "DEDENT"

	// Error tokens
	Invalid            Type = "INVALID"
	InvalidIndentation Type = "INVALID_INDENTATION"
	UnterminatedString Type = "UNTERMINATED_STRING"

	EOF Type = "EOF"
)

// Keywords is the fixed set of reserved words the parser consumes.
// Unlike identifiers, these never resolve through an environment.
var Keywords = map[string]Type{
	"print":  Keyword,
	"import": Keyword,
	"from":   Keyword,
	"as":     Keyword,
	"and":    Keyword,
	"or":     Keyword,
	"func":   Keyword,
	"method": Keyword,
	"getter": Keyword,
	"setter": Keyword,
	"return": Keyword,
	"if":     Keyword,
	"elseif": Keyword,
	"else":   Keyword,
	"then":   Keyword,
	"its":    Keyword,
	"for":    Keyword,
	"in":     Keyword,
	"while":  Keyword,
	"do":     Keyword,
	"break":  Keyword,
	"struct": Keyword,
	"trait":  Keyword,
	"impl":   Keyword,
	"true":   True,
	"false":  False,
	"nil":    Nil,
}

// ReservedWords are recognized identifiers not yet bound to syntax; they
// lex as Reserved rather than Identifier. Positions that consume an
// Identifier token (declared names, parameters, loop variables) reject
// them, but in expressions the parser accepts a Reserved token as a
// variable name without a diagnostic. "this"/"This" are NOT here: they
// lex as ordinary identifiers because the resolver binds them as real
// names in the scope around method bodies (see resolveMethodBody and
// checkFunction in package resolver).
var ReservedWords = map[string]bool{
	"super":  true,
	"switch": true,
	"match":  true,
}

// LookupIdent classifies a scanned identifier lexeme.
func LookupIdent(ident string) Type {
	if t, ok := Keywords[ident]; ok {
		return t
	}
	if ReservedWords[ident] {
		return Reserved
	}
	return Identifier
}
