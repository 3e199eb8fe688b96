package ast

import (
	"github.com/funvibe/purelift/internal/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
}

// Expression is a Node that represents an expression of the typed source
// surface. This tree is what the elaboration adapter consumes; it still
// contains the imperative constructs the translator rejects.
type Expression interface {
	Node
	expressionNode()
}

// Identifier is a possibly qualified identifier, e.g. x or Stdlib.failwith.
type Identifier struct {
	Token token.Token
	Path  []string
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// IntegerLiteral represents an integer literal.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token {
	if il == nil {
		return token.Token{}
	}
	return il.Token
}

// FloatLiteral represents a floating point literal.
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()      {}
func (fl *FloatLiteral) TokenLiteral() string { return fl.Token.Lexeme }
func (fl *FloatLiteral) GetToken() token.Token {
	if fl == nil {
		return token.Token{}
	}
	return fl.Token
}

// BooleanLiteral represents boolean literals true/false.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode()      {}
func (b *BooleanLiteral) TokenLiteral() string { return b.Token.Lexeme }
func (b *BooleanLiteral) GetToken() token.Token {
	if b == nil {
		return token.Token{}
	}
	return b.Token
}

// StringLiteral represents a string, e.g. "hello"
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token {
	if sl == nil {
		return token.Token{}
	}
	return sl.Token
}

// CharLiteral represents a character, e.g. 'c'
type CharLiteral struct {
	Token token.Token
	Value string
}

func (cl *CharLiteral) expressionNode()      {}
func (cl *CharLiteral) TokenLiteral() string { return cl.Token.Lexeme }
func (cl *CharLiteral) GetToken() token.Token {
	if cl == nil {
		return token.Token{}
	}
	return cl.Token
}

// UnitLiteral represents the unit value ().
type UnitLiteral struct {
	Token token.Token
}

func (u *UnitLiteral) expressionNode()      {}
func (u *UnitLiteral) TokenLiteral() string { return "()" }
func (u *UnitLiteral) GetToken() token.Token {
	if u == nil {
		return token.Token{}
	}
	return u.Token
}

// TupleLiteral represents a tuple, e.g. (1, "hello", true)
type TupleLiteral struct {
	Token    token.Token // The '(' token
	Elements []Expression
}

func (tl *TupleLiteral) expressionNode()      {}
func (tl *TupleLiteral) TokenLiteral() string { return tl.Token.Lexeme }
func (tl *TupleLiteral) GetToken() token.Token {
	if tl == nil {
		return token.Token{}
	}
	return tl.Token
}

// RecordField is one field of a record literal, in source order.
type RecordField struct {
	Name  string
	Value Expression
}

// RecordLiteral represents a record construction, e.g. { x = 1; y = 2 }
type RecordLiteral struct {
	Token  token.Token // The '{' token
	Fields []RecordField
}

func (rl *RecordLiteral) expressionNode()      {}
func (rl *RecordLiteral) TokenLiteral() string { return rl.Token.Lexeme }
func (rl *RecordLiteral) GetToken() token.Token {
	if rl == nil {
		return token.Token{}
	}
	return rl.Token
}

// FieldAccess represents record field projection, e.g. r.x
type FieldAccess struct {
	Token token.Token // The '.' token
	Base  Expression
	Name  string
}

func (fa *FieldAccess) expressionNode()      {}
func (fa *FieldAccess) TokenLiteral() string { return fa.Token.Lexeme }
func (fa *FieldAccess) GetToken() token.Token {
	if fa == nil {
		return token.Token{}
	}
	return fa.Token
}

// CallExpression is n-ary application as parsed; the adapter curries it.
type CallExpression struct {
	Token token.Token
	Fn    Expression
	Args  []Expression
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token {
	if ce == nil {
		return token.Token{}
	}
	return ce.Token
}

// ConstructorExpression is constructor application, e.g. Some 1.
type ConstructorExpression struct {
	Token token.Token
	Path  []string
	Tag   string
	Args  []Expression
}

func (ce *ConstructorExpression) expressionNode()      {}
func (ce *ConstructorExpression) TokenLiteral() string { return ce.Token.Lexeme }
func (ce *ConstructorExpression) GetToken() token.Token {
	if ce == nil {
		return token.Token{}
	}
	return ce.Token
}

// FunParam is one declared parameter: a pattern with an optional type.
type FunParam struct {
	Token   token.Token
	Pattern Pattern
	Type    Type // may be nil
}

// FunExpression is an anonymous function, e.g. fun x -> x + 1
type FunExpression struct {
	Token  token.Token // The 'fun' token
	Params []FunParam
	Body   Expression
}

func (fe *FunExpression) expressionNode()      {}
func (fe *FunExpression) TokenLiteral() string { return fe.Token.Lexeme }
func (fe *FunExpression) GetToken() token.Token {
	if fe == nil {
		return token.Token{}
	}
	return fe.Token
}

// LetExpression is let / let rec with a continuation.
// A plain value binding has no parameters; a function binding has at
// least one.
type LetExpression struct {
	Token      token.Token // The 'let' token
	Rec        bool
	Name       string
	Params     []FunParam
	ResultType Type // may be nil
	Value      Expression
	In         Expression
}

func (le *LetExpression) expressionNode()      {}
func (le *LetExpression) TokenLiteral() string { return le.Token.Lexeme }
func (le *LetExpression) GetToken() token.Token {
	if le == nil {
		return token.Token{}
	}
	return le.Token
}

// MatchArm is one (pattern, body) pair of a match expression.
type MatchArm struct {
	Pattern Pattern
	Body    Expression
}

// MatchExpression is match ... with | p -> e | ...
type MatchExpression struct {
	Token     token.Token // The 'match' token
	Scrutinee Expression
	Arms      []MatchArm
}

func (me *MatchExpression) expressionNode()      {}
func (me *MatchExpression) TokenLiteral() string { return me.Token.Lexeme }
func (me *MatchExpression) GetToken() token.Token {
	if me == nil {
		return token.Token{}
	}
	return me.Token
}

// IfExpression is if/then/else; Else may be nil when omitted.
type IfExpression struct {
	Token token.Token // The 'if' token
	Cond  Expression
	Then  Expression
	Else  Expression
}

func (ie *IfExpression) expressionNode()      {}
func (ie *IfExpression) TokenLiteral() string { return ie.Token.Lexeme }
func (ie *IfExpression) GetToken() token.Token {
	if ie == nil {
		return token.Token{}
	}
	return ie.Token
}

// SeqExpression is e1 ; e2.
type SeqExpression struct {
	Token  token.Token // The ';' token
	First  Expression
	Second Expression
}

func (se *SeqExpression) expressionNode()      {}
func (se *SeqExpression) TokenLiteral() string { return se.Token.Lexeme }
func (se *SeqExpression) GetToken() token.Token {
	if se == nil {
		return token.Token{}
	}
	return se.Token
}
