package ast

import "github.com/funvibe/purelift/internal/token"

// Type is a Node that represents a source type expression. Types are
// carried through for re-emission only; the translator never interprets
// them beyond argument-list arity.
type Type interface {
	Node
	typeNode()
}

// NamedType is a (possibly applied, possibly qualified) type name:
// int, option int, Stdlib.t a
type NamedType struct {
	Token token.Token
	Path  []string
	Name  string
	Args  []Type
}

func (nt *NamedType) typeNode()            {}
func (nt *NamedType) TokenLiteral() string { return nt.Token.Lexeme }
func (nt *NamedType) GetToken() token.Token {
	if nt == nil {
		return token.Token{}
	}
	return nt.Token
}

// VarType is a type variable: 'a
type VarType struct {
	Token token.Token
	Name  string
}

func (vt *VarType) typeNode()            {}
func (vt *VarType) TokenLiteral() string { return vt.Token.Lexeme }
func (vt *VarType) GetToken() token.Token {
	if vt == nil {
		return token.Token{}
	}
	return vt.Token
}

// ArrowType is a function type: a -> b
type ArrowType struct {
	Token token.Token
	From  Type
	To    Type
}

func (at *ArrowType) typeNode()            {}
func (at *ArrowType) TokenLiteral() string { return at.Token.Lexeme }
func (at *ArrowType) GetToken() token.Token {
	if at == nil {
		return token.Token{}
	}
	return at.Token
}

// TupleType is a product type: a * b
type TupleType struct {
	Token    token.Token
	Elements []Type
}

func (tt *TupleType) typeNode()            {}
func (tt *TupleType) TokenLiteral() string { return tt.Token.Lexeme }
func (tt *TupleType) GetToken() token.Token {
	if tt == nil {
		return token.Token{}
	}
	return tt.Token
}
