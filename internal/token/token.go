// Package token defines the lexical units consumed by the parser.
//
// The scanner that produces these tokens lives in internal/lexer; it is the
// one piece of the front end this system treats as an interchangeable token
// producer rather than as part of the core contract (scanning, unlike
// lowering and the virtual machine, carries no frame-layout or calling-
// convention semantics of its own).
package token

import "fmt"

// Kind identifies the category of a lexed token.
type Kind int

const (
	EOF Kind = iota // sentinel: end of input

	// Literals and identifiers
	IDENT  // variable / function name
	INT    // decimal integer literal
	FLOAT  // decimal floating-point literal (lexed, but not accepted by the parser)
	STRING // string literal "..."

	// Type keywords
	KwInt  // "int"
	KwVoid // "void"

	// Control keywords
	KwIf     // "if"
	KwElse   // "else"
	KwWhile  // "while"
	KwReturn // "return"

	// Paired delimiters
	LParen // (
	RParen // )
	LBrace // {
	RBrace // }

	// Punctuation
	Comma     // ,
	Semicolon // ;

	// Assignment
	Assign // =

	// Arithmetic operators
	Plus    // +
	Minus   // -
	Star    // *
	Slash   // /
	Percent // %

	// Comparison operators
	Eq  // ==
	Neq // !=
	Lt  // <
	Lte // <=
	Gt  // >
	Gte // >=
)

var kindNames = [...]string{
	EOF:       "EOF",
	IDENT:     "IDENT",
	INT:       "INT",
	FLOAT:     "FLOAT",
	STRING:    "STRING",
	KwInt:     "int",
	KwVoid:    "void",
	KwIf:      "if",
	KwElse:    "else",
	KwWhile:   "while",
	KwReturn:  "return",
	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
	Comma:     ",",
	Semicolon: ";",
	Assign:    "=",
	Plus:      "+",
	Minus:     "-",
	Star:      "*",
	Slash:     "/",
	Percent:   "%",
	Eq:        "==",
	Neq:       "!=",
	Lt:        "<",
	Lte:       "<=",
	Gt:        ">",
	Gte:       ">=",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps source text to its keyword Kind. Exported so the lexer's
// identifier scanner can consult it without this package exposing its guts.
var Keywords = map[string]Kind{
	"int":    KwInt,
	"void":   KwVoid,
	"if":     KwIf,
	"else":   KwElse,
	"while":  KwWhile,
	"return": KwReturn,
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Kind   Kind
	Lexeme string // the exact source text that was matched
	Line   int    // 1-based source line
}

func (t Token) String() string {
	return fmt.Sprintf("%-9s %-12q line %d", t.Kind, t.Lexeme, t.Line)
}
