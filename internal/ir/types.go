package ir

import "strings"

// TypeExpr is an opaque printable type expression. The translation core
// re-emits types verbatim; it never inspects them beyond arity extraction
// for argument lists.
type TypeExpr interface {
	typeExprNode()
	String() string
}

// TName is a (possibly applied) named type: int, option int, Stdlib.t a.
type TName struct {
	Name Name
	Args []TypeExpr
}

func (t *TName) typeExprNode() {}
func (t *TName) String() string {
	if t == nil {
		return "_"
	}
	if len(t.Args) == 0 {
		return t.Name.String()
	}
	parts := make([]string, 0, len(t.Args)+1)
	parts = append(parts, t.Name.String())
	for _, a := range t.Args {
		parts = append(parts, typeAtom(a))
	}
	return strings.Join(parts, " ")
}

// TVar is a type variable: 'a.
type TVar struct {
	Name string
}

func (t *TVar) typeExprNode()  {}
func (t *TVar) String() string { return "'" + t.Name }

// TArrowType is a function type: a -> b.
type TArrowType struct {
	From TypeExpr
	To   TypeExpr
}

func (t *TArrowType) typeExprNode() {}
func (t *TArrowType) String() string {
	return typeAtom(t.From) + " -> " + t.To.String()
}

// TTupleType is a product type: a * b * c.
type TTupleType struct {
	Elements []TypeExpr
}

func (t *TTupleType) typeExprNode() {}
func (t *TTupleType) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = typeAtom(e)
	}
	return strings.Join(parts, " * ")
}

// typeAtom parenthesizes compound types in argument position.
func typeAtom(t TypeExpr) string {
	if t == nil {
		return "_"
	}
	switch tt := t.(type) {
	case *TArrowType, *TTupleType:
		return "(" + t.String() + ")"
	case *TName:
		if len(tt.Args) > 0 {
			return "(" + t.String() + ")"
		}
	}
	return t.String()
}

// TypeString renders a possibly-nil type annotation.
func TypeString(t TypeExpr) string {
	if t == nil {
		return "_"
	}
	return t.String()
}
