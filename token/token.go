// Package token defines the tagged token type produced by the lexer, the
// upstream collaborator the parsing core treats as an external interface
// (spec §6): the core only ever consumes a Seq<Token>, never produces one.
package token

import "github.com/pontaoski/wisp/source"

// Kind tags a Token's variant.
type Kind int

const (
	EOF Kind = iota
	Illegal

	// punctuation
	LParen
	RParen
	LBrace
	RBrace
	Semicolon
	Equals
	EqualsEquals
	BangEquals
	Less
	LessEquals
	Greater
	GreaterEquals
	Plus
	Minus
	Star
	Slash
	Percent
	Bang
	Colon
	Comma
	Arrow // ->

	// keywords
	Let
	Mut
	Print
	Func
	If
	Then
	Else
	Return
	And
	Or

	// literals
	Integer
	Double
	Boolean
	Character
	String

	Identifier
)

var names = map[Kind]string{
	EOF:          "EOF",
	Illegal:      "ILLEGAL",
	LParen:       "(",
	RParen:       ")",
	LBrace:       "{",
	RBrace:       "}",
	Semicolon:    ";",
	Equals:       "=",
	EqualsEquals: "==",
	BangEquals:   "!=",
	Less:         "<",
	LessEquals:   "<=",
	Greater:      ">",
	GreaterEquals: ">=",
	Plus:         "+",
	Minus:        "-",
	Star:         "*",
	Slash:        "/",
	Percent:      "%",
	Bang:         "!",
	Colon:        ":",
	Comma:        ",",
	Arrow:        "->",
	Let:          "let",
	Mut:          "mut",
	Print:        "print",
	Func:         "func",
	If:           "if",
	Then:         "then",
	Else:         "else",
	Return:       "return",
	And:          "and",
	Or:           "or",
	Integer:      "INTEGER",
	Double:       "DOUBLE",
	Boolean:      "BOOLEAN",
	Character:    "CHARACTER",
	String:       "STRING",
	Identifier:   "IDENTIFIER",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// Keywords maps keyword text to its token kind.
var Keywords = map[string]Kind{
	"let":    Let,
	"mut":    Mut,
	"print":  Print,
	"func":   Func,
	"if":     If,
	"then":   Then,
	"else":   Else,
	"return": Return,
	"and":    And,
	"or":     Or,
}

// Token is a single lexeme tagged with its kind, source range, and (for
// literals and identifiers) its textual payload.
type Token struct {
	Kind  Kind
	Range source.Range
	Text  string
}

// IsOpenBracket reports whether t opens a bracketed section.
func (t Token) IsOpenBracket() bool {
	return t.Kind == LParen || t.Kind == LBrace
}

// IsCloseBracket reports whether t closes a bracketed section.
func (t Token) IsCloseBracket() bool {
	return t.Kind == RParen || t.Kind == RBrace
}
