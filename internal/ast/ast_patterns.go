package ast

import "github.com/funvibe/purelift/internal/token"

// Pattern is a Node that represents a match pattern.
type Pattern interface {
	Node
	patternNode()
}

// WildcardPattern matches anything: _
type WildcardPattern struct {
	Token token.Token
}

func (wp *WildcardPattern) patternNode()         {}
func (wp *WildcardPattern) TokenLiteral() string { return "_" }
func (wp *WildcardPattern) GetToken() token.Token {
	if wp == nil {
		return token.Token{}
	}
	return wp.Token
}

// IdentPattern binds the matched value: x
type IdentPattern struct {
	Token token.Token
	Value string
}

func (ip *IdentPattern) patternNode()         {}
func (ip *IdentPattern) TokenLiteral() string { return ip.Token.Lexeme }
func (ip *IdentPattern) GetToken() token.Token {
	if ip == nil {
		return token.Token{}
	}
	return ip.Token
}

// LiteralPattern matches a constant: 0, "x", true
type LiteralPattern struct {
	Token token.Token
	Value Expression // one of the literal expression nodes
}

func (lp *LiteralPattern) patternNode()         {}
func (lp *LiteralPattern) TokenLiteral() string { return lp.Token.Lexeme }
func (lp *LiteralPattern) GetToken() token.Token {
	if lp == nil {
		return token.Token{}
	}
	return lp.Token
}

// TuplePattern destructures a tuple: (a, b)
type TuplePattern struct {
	Token    token.Token
	Elements []Pattern
}

func (tp *TuplePattern) patternNode()         {}
func (tp *TuplePattern) TokenLiteral() string { return tp.Token.Lexeme }
func (tp *TuplePattern) GetToken() token.Token {
	if tp == nil {
		return token.Token{}
	}
	return tp.Token
}

// CtorPattern destructures a constructor: Some x
type CtorPattern struct {
	Token token.Token
	Path  []string
	Tag   string
	Args  []Pattern
}

func (cp *CtorPattern) patternNode()         {}
func (cp *CtorPattern) TokenLiteral() string { return cp.Token.Lexeme }
func (cp *CtorPattern) GetToken() token.Token {
	if cp == nil {
		return token.Token{}
	}
	return cp.Token
}
