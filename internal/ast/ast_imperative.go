package ast

import "github.com/funvibe/purelift/internal/token"

// The nodes in this file are parsed so that programs using them can be
// rejected with their own diagnostic instead of a generic parse error.
// The elaboration adapter never translates them.

// WhileExpression is while cond do body done.
type WhileExpression struct {
	Token token.Token // The 'while' token
	Cond  Expression
	Body  Expression
}

func (we *WhileExpression) expressionNode()      {}
func (we *WhileExpression) TokenLiteral() string { return we.Token.Lexeme }
func (we *WhileExpression) GetToken() token.Token {
	if we == nil {
		return token.Token{}
	}
	return we.Token
}

// ForExpression is for i = a to b do body done.
type ForExpression struct {
	Token token.Token // The 'for' token
	Var   string
	From  Expression
	To    Expression
	Body  Expression
}

func (fe *ForExpression) expressionNode()      {}
func (fe *ForExpression) TokenLiteral() string { return fe.Token.Lexeme }
func (fe *ForExpression) GetToken() token.Token {
	if fe == nil {
		return token.Token{}
	}
	return fe.Token
}

// AssignExpression is target <- value (reference/field mutation).
type AssignExpression struct {
	Token  token.Token // The '<-' token
	Target Expression
	Value  Expression
}

func (ae *AssignExpression) expressionNode()      {}
func (ae *AssignExpression) TokenLiteral() string { return ae.Token.Lexeme }
func (ae *AssignExpression) GetToken() token.Token {
	if ae == nil {
		return token.Token{}
	}
	return ae.Token
}

// TryExpression is try body with handler arms.
type TryExpression struct {
	Token token.Token // The 'try' token
	Body  Expression
	Arms  []MatchArm
}

func (te *TryExpression) expressionNode()      {}
func (te *TryExpression) TokenLiteral() string { return te.Token.Lexeme }
func (te *TryExpression) GetToken() token.Token {
	if te == nil {
		return token.Token{}
	}
	return te.Token
}

// ArrayLiteral is [| e; e |], the mutable array construct.
type ArrayLiteral struct {
	Token    token.Token // The '[' token
	Elements []Expression
}

func (al *ArrayLiteral) expressionNode()      {}
func (al *ArrayLiteral) TokenLiteral() string { return al.Token.Lexeme }
func (al *ArrayLiteral) GetToken() token.Token {
	if al == nil {
		return token.Token{}
	}
	return al.Token
}
