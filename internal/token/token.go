package token

import "fmt"

// Type identifies the lexical class of a token.
type Type string

const (
	ILLEGAL Type = "ILLEGAL"
	EOF     Type = "EOF"

	IDENT  Type = "IDENT"  // lowercase identifier: x, failwith
	UIDENT Type = "UIDENT" // capitalized identifier: Some, Stdlib
	TYVAR  Type = "TYVAR"  // type variable: 'a

	INT    Type = "INT"
	FLOAT  Type = "FLOAT"
	STRING Type = "STRING"
	CHAR   Type = "CHAR"
	UNIT   Type = "UNIT" // the () literal, lexed as one token

	// Operators and delimiters
	ASSIGN    Type = "="
	ARROW     Type = "->"
	DARROW    Type = "=>"
	LARROW    Type = "<-"
	PIPE      Type = "|"
	COMMA     Type = ","
	SEMICOLON Type = ";"
	COLON     Type = ":"
	DOT       Type = "."
	STAR      Type = "*"
	LPAREN    Type = "("
	RPAREN    Type = ")"
	LBRACE    Type = "{"
	RBRACE    Type = "}"
	LBRACKET  Type = "["
	RBRACKET  Type = "]"
	WILDCARD  Type = "_"

	// Keywords
	LET   Type = "LET"
	REC   Type = "REC"
	IN    Type = "IN"
	FUN   Type = "FUN"
	MATCH Type = "MATCH"
	WITH  Type = "WITH"
	IF    Type = "IF"
	THEN  Type = "THEN"
	ELSE  Type = "ELSE"
	TRUE  Type = "TRUE"
	FALSE Type = "FALSE"
	WHILE Type = "WHILE"
	FOR   Type = "FOR"
	TO    Type = "TO"
	DO    Type = "DO"
	DONE  Type = "DONE"
	TRY   Type = "TRY"
	BEGIN Type = "BEGIN"
	END   Type = "END"
)

// Token is a single lexeme with its source position.
type Token struct {
	Type   Type
	Lexeme string
	Line   int
	Column int
}

// Pos renders the token's position as "line:column".
func (t Token) Pos() string {
	return fmt.Sprintf("%d:%d", t.Line, t.Column)
}

var keywords = map[string]Type{
	"let":   LET,
	"rec":   REC,
	"in":    IN,
	"fun":   FUN,
	"match": MATCH,
	"with":  WITH,
	"if":    IF,
	"then":  THEN,
	"else":  ELSE,
	"true":  TRUE,
	"false": FALSE,
	"while": WHILE,
	"for":   FOR,
	"to":    TO,
	"do":    DO,
	"done":  DONE,
	"try":   TRY,
	"begin": BEGIN,
	"end":   END,
}

// LookupIdent returns the keyword type for an identifier, or IDENT.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
