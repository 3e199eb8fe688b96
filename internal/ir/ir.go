package ir

import (
	"github.com/funvibe/purelift/internal/effects"
	"github.com/funvibe/purelift/internal/token"
)

// Expr is the base interface for all nodes of the simplified expression
// tree. The tree is immutable once constructed; rewriting always builds
// new nodes.
type Expr interface {
	TokenLiteral() string
	GetToken() token.Token
	exprNode()
}

// SurfaceExpr is implemented by every variant the adapter may produce.
// Lift and Bind are deliberately excluded: they are monadic-rewriter
// output only, and effect inference must never observe them.
type SurfaceExpr interface {
	Expr
	surfaceNode()
}

// MonadicExpr is implemented only by the rewriter-introduced variants.
type MonadicExpr interface {
	Expr
	monadicNode()
}

// Const is a constant literal.
type Const struct {
	Token token.Token
	Value Constant
}

func (c *Const) exprNode()            {}
func (c *Const) surfaceNode()         {}
func (c *Const) TokenLiteral() string { return c.Value.String() }
func (c *Const) GetToken() token.Token {
	if c == nil {
		return token.Token{}
	}
	return c.Token
}

// Var is a reference to a qualified name.
type Var struct {
	Token token.Token
	Name  Name
}

func (v *Var) exprNode()            {}
func (v *Var) surfaceNode()         {}
func (v *Var) TokenLiteral() string { return v.Name.String() }
func (v *Var) GetToken() token.Token {
	if v == nil {
		return token.Token{}
	}
	return v.Token
}

// Tuple is an ordered product of expressions.
type Tuple struct {
	Token    token.Token
	Elements []Expr
}

func (t *Tuple) exprNode()            {}
func (t *Tuple) surfaceNode()         {}
func (t *Tuple) TokenLiteral() string { return t.Token.Lexeme }
func (t *Tuple) GetToken() token.Token {
	if t == nil {
		return token.Token{}
	}
	return t.Token
}

// Ctor is a constructor application: tag plus argument list.
type Ctor struct {
	Token token.Token
	Tag   Name
	Args  []Expr
}

func (c *Ctor) exprNode()            {}
func (c *Ctor) surfaceNode()         {}
func (c *Ctor) TokenLiteral() string { return c.Tag.String() }
func (c *Ctor) GetToken() token.Token {
	if c == nil {
		return token.Token{}
	}
	return c.Token
}

// Apply is curried binary application.
type Apply struct {
	Token token.Token
	Fn    Expr
	Arg   Expr
}

func (a *Apply) exprNode()            {}
func (a *Apply) surfaceNode()         {}
func (a *Apply) TokenLiteral() string { return a.Token.Lexeme }
func (a *Apply) GetToken() token.Token {
	if a == nil {
		return token.Token{}
	}
	return a.Token
}

// Lambda is a single-parameter abstraction. Multi-argument functions are
// curried chains of Lambda.
type Lambda struct {
	Token token.Token
	Param Name
	Body  Expr
}

func (l *Lambda) exprNode()            {}
func (l *Lambda) surfaceNode()         {}
func (l *Lambda) TokenLiteral() string { return l.Token.Lexeme }
func (l *Lambda) GetToken() token.Token {
	if l == nil {
		return token.Token{}
	}
	return l.Token
}

// Let is a non-recursive value binding.
type Let struct {
	Token token.Token
	Name  Name
	Value Expr
	Body  Expr
}

func (l *Let) exprNode()            {}
func (l *Let) surfaceNode()         {}
func (l *Let) TokenLiteral() string { return l.Token.Lexeme }
func (l *Let) GetToken() token.Token {
	if l == nil {
		return token.Token{}
	}
	return l.Token
}

// Param is one declared function argument.
type Param struct {
	Name Name
	Type TypeExpr // may be nil when the surface omitted the annotation
}

// Function is a recursive-or-not function binding with its continuation.
// The argument list is kept flat so arity can be inspected without
// re-walking a lambda chain.
type Function struct {
	Token      token.Token
	Rec        bool
	Name       Name
	TypeParams []Name
	Params     []Param
	Result     TypeExpr // may be nil
	Body       Expr
	In         Expr
}

func (f *Function) exprNode()            {}
func (f *Function) surfaceNode()         {}
func (f *Function) TokenLiteral() string { return f.Name.String() }
func (f *Function) GetToken() token.Token {
	if f == nil {
		return token.Token{}
	}
	return f.Token
}

// Arm is one (pattern, branch) pair of a Match.
type Arm struct {
	Pattern Pattern
	Body    Expr
}

// Match is a pattern match over a scrutinee.
type Match struct {
	Token     token.Token
	Scrutinee Expr
	Arms      []Arm
}

func (m *Match) exprNode()            {}
func (m *Match) surfaceNode()         {}
func (m *Match) TokenLiteral() string { return m.Token.Lexeme }
func (m *Match) GetToken() token.Token {
	if m == nil {
		return token.Token{}
	}
	return m.Token
}

// FieldInit is one ordered field of a record construction.
type FieldInit struct {
	Name  Name
	Value Expr
}

// Record is record construction with ordered fields.
type Record struct {
	Token  token.Token
	Fields []FieldInit
}

func (r *Record) exprNode()            {}
func (r *Record) surfaceNode()         {}
func (r *Record) TokenLiteral() string { return r.Token.Lexeme }
func (r *Record) GetToken() token.Token {
	if r == nil {
		return token.Token{}
	}
	return r.Token
}

// Field is record field projection.
type Field struct {
	Token token.Token
	Base  Expr
	Name  Name
}

func (f *Field) exprNode()            {}
func (f *Field) surfaceNode()         {}
func (f *Field) TokenLiteral() string { return f.Name.String() }
func (f *Field) GetToken() token.Token {
	if f == nil {
		return token.Token{}
	}
	return f.Token
}

// If is a conditional; Else may be the unit constant when the surface
// had no else branch.
type If struct {
	Token token.Token
	Cond  Expr
	Then  Expr
	Else  Expr
}

func (i *If) exprNode()            {}
func (i *If) surfaceNode()         {}
func (i *If) TokenLiteral() string { return i.Token.Lexeme }
func (i *If) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// Seq evaluates First for its effect, then Second. No name is bound.
type Seq struct {
	Token  token.Token
	First  Expr
	Second Expr
}

func (s *Seq) exprNode()            {}
func (s *Seq) surfaceNode()         {}
func (s *Seq) TokenLiteral() string { return s.Token.Lexeme }
func (s *Seq) GetToken() token.Token {
	if s == nil {
		return token.Token{}
	}
	return s.Token
}

// Lift widens a computation's descriptor from From to To. Rewriter
// output only.
type Lift struct {
	Token token.Token
	From  effects.Descriptor
	To    effects.Descriptor
	Expr  Expr
}

func (l *Lift) exprNode()            {}
func (l *Lift) monadicNode()         {}
func (l *Lift) TokenLiteral() string { return l.Token.Lexeme }
func (l *Lift) GetToken() token.Token {
	if l == nil {
		return token.Token{}
	}
	return l.Token
}

// Bind names the result of an effectful computation before the
// continuation proceeds. Rewriter output only.
type Bind struct {
	Token token.Token
	Value Expr
	Name  Name
	Body  Expr
}

func (b *Bind) exprNode()            {}
func (b *Bind) monadicNode()         {}
func (b *Bind) TokenLiteral() string { return b.Token.Lexeme }
func (b *Bind) GetToken() token.Token {
	if b == nil {
		return token.Token{}
	}
	return b.Token
}
