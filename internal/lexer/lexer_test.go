package lexer

import (
	"testing"

	"github.com/funvibe/purelift/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `let rec f (x : int) : int = if x then f x else 0 in f 1`

	expected := []struct {
		typ    token.Type
		lexeme string
	}{
		{token.LET, "let"},
		{token.REC, "rec"},
		{token.IDENT, "f"},
		{token.LPAREN, "("},
		{token.IDENT, "x"},
		{token.COLON, ":"},
		{token.IDENT, "int"},
		{token.RPAREN, ")"},
		{token.COLON, ":"},
		{token.IDENT, "int"},
		{token.ASSIGN, "="},
		{token.IF, "if"},
		{token.IDENT, "x"},
		{token.THEN, "then"},
		{token.IDENT, "f"},
		{token.IDENT, "x"},
		{token.ELSE, "else"},
		{token.INT, "0"},
		{token.IN, "in"},
		{token.IDENT, "f"},
		{token.INT, "1"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want.typ {
			t.Fatalf("token %d: type = %s, want %s (lexeme %q)", i, tok.Type, want.typ, tok.Lexeme)
		}
		if tok.Lexeme != want.lexeme {
			t.Fatalf("token %d: lexeme = %q, want %q", i, tok.Lexeme, want.lexeme)
		}
	}
}

func TestOperatorsAndDelimiters(t *testing.T) {
	input := `-> => <- | , ; : . * ( ) { } [ ] _ ()`

	expected := []token.Type{
		token.ARROW, token.DARROW, token.LARROW, token.PIPE, token.COMMA,
		token.SEMICOLON, token.COLON, token.DOT, token.STAR,
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
		token.LBRACKET, token.RBRACKET, token.WILDCARD, token.UNIT,
		token.EOF,
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token %d: type = %s, want %s", i, tok.Type, want)
		}
	}
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		typ    token.Type
		lexeme string
	}{
		{"Int", "42", token.INT, "42"},
		{"Negative Int", "-7", token.INT, "-7"},
		{"Float", "3.14", token.FLOAT, "3.14"},
		{"String", `"hi"`, token.STRING, "hi"},
		{"Char", "'c'", token.CHAR, "c"},
		{"Escaped Char", `'\n'`, token.CHAR, "\\n"},
		{"Type Variable", "'a", token.TYVAR, "a"},
		{"Unit", "()", token.UNIT, "()"},
		{"Upper Ident", "Some", token.UIDENT, "Some"},
		{"Lower Ident", "print_int", token.IDENT, "print_int"},
		{"True Keyword", "true", token.TRUE, "true"},
		{"False Keyword", "false", token.FALSE, "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := New(tt.input).NextToken()
			if tok.Type != tt.typ || tok.Lexeme != tt.lexeme {
				t.Errorf("got (%s, %q), want (%s, %q)", tok.Type, tok.Lexeme, tt.typ, tt.lexeme)
			}
		})
	}
}

func TestComments(t *testing.T) {
	input := `(* outer (* nested *) still comment *) x`
	l := New(input)
	tok := l.NextToken()
	if tok.Type != token.IDENT || tok.Lexeme != "x" {
		t.Errorf("comment not skipped, got (%s, %q)", tok.Type, tok.Lexeme)
	}
}

func TestPositions(t *testing.T) {
	input := "let\n  x"
	l := New(input)

	letTok := l.NextToken()
	if letTok.Line != 1 || letTok.Column != 1 {
		t.Errorf("let at %d:%d, want 1:1", letTok.Line, letTok.Column)
	}
	xTok := l.NextToken()
	if xTok.Line != 2 || xTok.Column != 3 {
		t.Errorf("x at %d:%d, want 2:3", xTok.Line, xTok.Column)
	}
}

func TestIllegal(t *testing.T) {
	tok := New("?").NextToken()
	if tok.Type != token.ILLEGAL {
		t.Errorf("unknown rune should be ILLEGAL, got %s", tok.Type)
	}
}
