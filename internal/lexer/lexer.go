package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/purelift/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.position = l.readPosition
		l.readPosition += w
		l.column++
		return
	}

	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	line, column := l.line, l.column

	switch l.ch {
	case 0:
		return token.Token{Type: token.EOF, Lexeme: "", Line: line, Column: column}
	case '=':
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.DARROW, Lexeme: "=>", Line: line, Column: column}
		}
		l.readChar()
		return token.Token{Type: token.ASSIGN, Lexeme: "=", Line: line, Column: column}
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.ARROW, Lexeme: "->", Line: line, Column: column}
		}
		if unicode.IsDigit(l.peekChar()) {
			return l.readNumber()
		}
		return l.illegal(line, column)
	case '<':
		if l.peekChar() == '-' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.LARROW, Lexeme: "<-", Line: line, Column: column}
		}
		return l.illegal(line, column)
	case '|':
		l.readChar()
		return token.Token{Type: token.PIPE, Lexeme: "|", Line: line, Column: column}
	case ',':
		l.readChar()
		return token.Token{Type: token.COMMA, Lexeme: ",", Line: line, Column: column}
	case ';':
		l.readChar()
		return token.Token{Type: token.SEMICOLON, Lexeme: ";", Line: line, Column: column}
	case ':':
		l.readChar()
		return token.Token{Type: token.COLON, Lexeme: ":", Line: line, Column: column}
	case '.':
		l.readChar()
		return token.Token{Type: token.DOT, Lexeme: ".", Line: line, Column: column}
	case '*':
		l.readChar()
		return token.Token{Type: token.STAR, Lexeme: "*", Line: line, Column: column}
	case '(':
		if l.peekChar() == ')' {
			l.readChar()
			l.readChar()
			// unit literal: one token keeps the parser regular
			return token.Token{Type: token.UNIT, Lexeme: "()", Line: line, Column: column}
		}
		l.readChar()
		return token.Token{Type: token.LPAREN, Lexeme: "(", Line: line, Column: column}
	case ')':
		l.readChar()
		return token.Token{Type: token.RPAREN, Lexeme: ")", Line: line, Column: column}
	case '{':
		l.readChar()
		return token.Token{Type: token.LBRACE, Lexeme: "{", Line: line, Column: column}
	case '}':
		l.readChar()
		return token.Token{Type: token.RBRACE, Lexeme: "}", Line: line, Column: column}
	case '[':
		l.readChar()
		return token.Token{Type: token.LBRACKET, Lexeme: "[", Line: line, Column: column}
	case ']':
		l.readChar()
		return token.Token{Type: token.RBRACKET, Lexeme: "]", Line: line, Column: column}
	case '\'':
		// 'a is a type variable, 'c' (or '\n') is a char literal
		if l.peekChar() == '\\' || l.peekCharAt(2) == '\'' {
			return l.readCharLiteral()
		}
		return l.readTypeVar()
	case '"':
		return l.readString()
	case '_':
		if !isIdentRune(l.peekChar()) {
			l.readChar()
			return token.Token{Type: token.WILDCARD, Lexeme: "_", Line: line, Column: column}
		}
		return l.readIdentifier()
	}

	if unicode.IsDigit(l.ch) {
		return l.readNumber()
	}
	if unicode.IsLetter(l.ch) {
		return l.readIdentifier()
	}
	return l.illegal(line, column)
}

func (l *Lexer) illegal(line, column int) token.Token {
	lex := string(l.ch)
	l.readChar()
	return token.Token{Type: token.ILLEGAL, Lexeme: lex, Line: line, Column: column}
}

// peekCharAt looks n runes past the current one.
func (l *Lexer) peekCharAt(n int) rune {
	pos := l.readPosition
	var r rune
	for i := 0; i < n; i++ {
		if pos >= len(l.input) {
			return 0
		}
		var w int
		r, w = utf8.DecodeRuneInString(l.input[pos:])
		pos += w
	}
	return r
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}
		// (* ... *) comments, nested
		if l.ch == '(' && l.peekChar() == '*' {
			depth := 1
			l.readChar()
			l.readChar()
			for depth > 0 && l.ch != 0 {
				if l.ch == '(' && l.peekChar() == '*' {
					depth++
					l.readChar()
				} else if l.ch == '*' && l.peekChar() == ')' {
					depth--
					l.readChar()
				}
				l.readChar()
			}
			continue
		}
		return
	}
}

func isIdentRune(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' || ch == '\''
}

func (l *Lexer) readIdentifier() token.Token {
	line, column := l.line, l.column
	start := l.position
	for isIdentRune(l.ch) {
		l.readChar()
	}
	lexeme := l.input[start:l.position]
	typ := token.LookupIdent(lexeme)
	if typ == token.IDENT && unicode.IsUpper([]rune(lexeme)[0]) {
		typ = token.UIDENT
	}
	return token.Token{Type: typ, Lexeme: lexeme, Line: line, Column: column}
}

func (l *Lexer) readNumber() token.Token {
	line, column := l.line, l.column
	start := l.position
	if l.ch == '-' {
		l.readChar()
	}
	typ := token.INT
	for unicode.IsDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && unicode.IsDigit(l.peekChar()) {
		typ = token.FLOAT
		l.readChar()
		for unicode.IsDigit(l.ch) {
			l.readChar()
		}
	}
	return token.Token{Type: typ, Lexeme: l.input[start:l.position], Line: line, Column: column}
}

func (l *Lexer) readString() token.Token {
	line, column := l.line, l.column
	l.readChar() // consume opening quote
	start := l.position
	for l.ch != '"' && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
		}
		l.readChar()
	}
	if l.ch == 0 {
		return token.Token{Type: token.ILLEGAL, Lexeme: l.input[start:l.position], Line: line, Column: column}
	}
	lexeme := l.input[start:l.position]
	l.readChar() // consume closing quote
	return token.Token{Type: token.STRING, Lexeme: lexeme, Line: line, Column: column}
}

func (l *Lexer) readCharLiteral() token.Token {
	line, column := l.line, l.column
	l.readChar() // consume opening quote
	start := l.position
	if l.ch == '\\' {
		l.readChar()
	}
	l.readChar()
	lexeme := l.input[start:l.position]
	if l.ch != '\'' {
		return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Line: line, Column: column}
	}
	l.readChar() // consume closing quote
	return token.Token{Type: token.CHAR, Lexeme: lexeme, Line: line, Column: column}
}

func (l *Lexer) readTypeVar() token.Token {
	line, column := l.line, l.column
	l.readChar() // consume the quote
	start := l.position
	for isIdentRune(l.ch) && l.ch != '\'' {
		l.readChar()
	}
	return token.Token{Type: token.TYVAR, Lexeme: l.input[start:l.position], Line: line, Column: column}
}
