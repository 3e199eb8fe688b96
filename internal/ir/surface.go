package ir

import "fmt"

// Children returns the sub-expressions of e in evaluation order. The
// ordering here is the single source of truth for shadow-tree shape:
// effect inference produces shadow children in exactly this order and
// the monadic rewriter consumes them in exactly this order.
func Children(e Expr) []Expr {
	switch n := e.(type) {
	case *Const, *Var:
		return nil
	case *Tuple:
		return n.Elements
	case *Ctor:
		return n.Args
	case *Apply:
		return []Expr{n.Fn, n.Arg}
	case *Lambda:
		return []Expr{n.Body}
	case *Let:
		return []Expr{n.Value, n.Body}
	case *Function:
		return []Expr{n.Body, n.In}
	case *Match:
		out := make([]Expr, 0, len(n.Arms)+1)
		out = append(out, n.Scrutinee)
		for _, arm := range n.Arms {
			out = append(out, arm.Body)
		}
		return out
	case *Record:
		out := make([]Expr, len(n.Fields))
		for i, f := range n.Fields {
			out[i] = f.Value
		}
		return out
	case *Field:
		return []Expr{n.Base}
	case *If:
		return []Expr{n.Cond, n.Then, n.Else}
	case *Seq:
		return []Expr{n.First, n.Second}
	case *Lift:
		return []Expr{n.Expr}
	case *Bind:
		return []Expr{n.Value, n.Body}
	}
	return nil
}

// CheckSurface validates that the tree contains no monadic (Lift/Bind)
// nodes. It is the explicit conversion from the full expression type to
// its surface subset: the adapter's output must pass it, and effect
// inference assumes it holds.
func CheckSurface(e Expr) error {
	if e == nil {
		return fmt.Errorf("nil expression")
	}
	if _, ok := e.(MonadicExpr); ok {
		return fmt.Errorf("monadic node %T in surface tree", e)
	}
	for _, child := range Children(e) {
		if err := CheckSurface(child); err != nil {
			return err
		}
	}
	return nil
}

// OpenFunction collapses a chain of nested lambdas into a flat name list
// plus a single body, so arity can be inspected wherever a binding was
// not built with an explicit parameter list.
func OpenFunction(e Expr) ([]Name, Expr) {
	var names []Name
	for {
		lam, ok := e.(*Lambda)
		if !ok {
			return names, e
		}
		names = append(names, lam.Param)
		e = lam.Body
	}
}

// CloseFunction is the inverse of OpenFunction: it rebuilds the curried
// lambda chain around body.
func CloseFunction(names []Name, body Expr) Expr {
	e := body
	for i := len(names) - 1; i >= 0; i-- {
		e = &Lambda{Token: body.GetToken(), Param: names[i], Body: e}
	}
	return e
}

// Equal is structural equality over expression trees. Tokens are
// ignored; they carry positions, not meaning.
func Equal(a, b Expr) bool {
	switch x := a.(type) {
	case *Const:
		y, ok := b.(*Const)
		return ok && x.Value == y.Value
	case *Var:
		y, ok := b.(*Var)
		return ok && x.Name.Equal(y.Name)
	case *Tuple:
		y, ok := b.(*Tuple)
		return ok && equalSlices(x.Elements, y.Elements)
	case *Ctor:
		y, ok := b.(*Ctor)
		return ok && x.Tag.Equal(y.Tag) && equalSlices(x.Args, y.Args)
	case *Apply:
		y, ok := b.(*Apply)
		return ok && Equal(x.Fn, y.Fn) && Equal(x.Arg, y.Arg)
	case *Lambda:
		y, ok := b.(*Lambda)
		return ok && x.Param.Equal(y.Param) && Equal(x.Body, y.Body)
	case *Let:
		y, ok := b.(*Let)
		return ok && x.Name.Equal(y.Name) && Equal(x.Value, y.Value) && Equal(x.Body, y.Body)
	case *Function:
		y, ok := b.(*Function)
		if !ok || x.Rec != y.Rec || !x.Name.Equal(y.Name) || len(x.Params) != len(y.Params) {
			return false
		}
		for i := range x.Params {
			if !x.Params[i].Name.Equal(y.Params[i].Name) {
				return false
			}
		}
		return Equal(x.Body, y.Body) && Equal(x.In, y.In)
	case *Match:
		y, ok := b.(*Match)
		if !ok || len(x.Arms) != len(y.Arms) || !Equal(x.Scrutinee, y.Scrutinee) {
			return false
		}
		for i := range x.Arms {
			if x.Arms[i].Pattern.String() != y.Arms[i].Pattern.String() {
				return false
			}
			if !Equal(x.Arms[i].Body, y.Arms[i].Body) {
				return false
			}
		}
		return true
	case *Record:
		y, ok := b.(*Record)
		if !ok || len(x.Fields) != len(y.Fields) {
			return false
		}
		for i := range x.Fields {
			if !x.Fields[i].Name.Equal(y.Fields[i].Name) || !Equal(x.Fields[i].Value, y.Fields[i].Value) {
				return false
			}
		}
		return true
	case *Field:
		y, ok := b.(*Field)
		return ok && x.Name.Equal(y.Name) && Equal(x.Base, y.Base)
	case *If:
		y, ok := b.(*If)
		return ok && Equal(x.Cond, y.Cond) && Equal(x.Then, y.Then) && Equal(x.Else, y.Else)
	case *Seq:
		y, ok := b.(*Seq)
		return ok && Equal(x.First, y.First) && Equal(x.Second, y.Second)
	case *Lift:
		y, ok := b.(*Lift)
		return ok && x.From.Equal(y.From) && x.To.Equal(y.To) && Equal(x.Expr, y.Expr)
	case *Bind:
		y, ok := b.(*Bind)
		return ok && x.Name.Equal(y.Name) && Equal(x.Value, y.Value) && Equal(x.Body, y.Body)
	}
	return false
}

func equalSlices(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
