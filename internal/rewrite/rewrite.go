package rewrite

import (
	"github.com/funvibe/purelift/internal/diagnostics"
	"github.com/funvibe/purelift/internal/effects"
	"github.com/funvibe/purelift/internal/ir"
)

// Rewrite produces a new expression in which every effectful
// sub-computation is either the right-hand side of an explicit Bind or
// widened by an explicit Lift. The shadow tree must be the one inference
// produced for exactly this expression; any shape disagreement is an
// internal-consistency failure, never recovered from.
//
// The input tree is never mutated.
func Rewrite(fr Fresh, e ir.Expr, shadow *effects.Shadow) (ir.Expr, Fresh, *diagnostics.DiagnosticError) {
	out, fr, err := rewriteExpr(fr, e, shadow)
	if err != nil {
		return nil, fr, err
	}
	// At the top of a unit an effectful result still needs a name: bind
	// it and return the bound variable.
	if !shadow.Eff.Desc.IsPure() {
		if _, alreadyBound := out.(*ir.Bind); !alreadyBound {
			var name ir.Name
			name, fr = fr.Next()
			out = &ir.Bind{
				Token: e.GetToken(),
				Value: out,
				Name:  name,
				Body:  &ir.Var{Token: e.GetToken(), Name: name},
			}
		}
	}
	return out, fr, nil
}

func rewriteExpr(fr Fresh, e ir.Expr, s *effects.Shadow) (ir.Expr, Fresh, *diagnostics.DiagnosticError) {
	if s == nil {
		return nil, fr, diagnostics.NewError(diagnostics.ErrX003, e.GetToken(), e.TokenLiteral())
	}

	switch n := e.(type) {
	case *ir.Const, *ir.Var:
		if s.Arity() != 0 {
			return nil, fr, shapeError(e)
		}
		return e, fr, nil

	case *ir.Tuple:
		replaced, binds, fr, err := combine(fr, n.Elements, s, e)
		if err != nil {
			return nil, fr, err
		}
		out := ir.Expr(&ir.Tuple{Token: n.Token, Elements: replaced})
		return wrapBinds(binds, out), fr, nil

	case *ir.Ctor:
		replaced, binds, fr, err := combine(fr, n.Args, s, e)
		if err != nil {
			return nil, fr, err
		}
		out := ir.Expr(&ir.Ctor{Token: n.Token, Tag: n.Tag, Args: replaced})
		return wrapBinds(binds, out), fr, nil

	case *ir.Record:
		values := make([]ir.Expr, len(n.Fields))
		for i, f := range n.Fields {
			values[i] = f.Value
		}
		replaced, binds, fr, err := combine(fr, values, s, e)
		if err != nil {
			return nil, fr, err
		}
		fields := make([]ir.FieldInit, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = ir.FieldInit{Name: f.Name, Value: replaced[i]}
		}
		out := ir.Expr(&ir.Record{Token: n.Token, Fields: fields})
		return wrapBinds(binds, out), fr, nil

	case *ir.Apply:
		replaced, binds, fr, err := combine(fr, []ir.Expr{n.Fn, n.Arg}, s, e)
		if err != nil {
			return nil, fr, err
		}
		out := ir.Expr(&ir.Apply{Token: n.Token, Fn: replaced[0], Arg: replaced[1]})
		// The call itself discharges only the callee arrow's
		// descriptor; widen it to the node's full descriptor.
		callDesc := callDescriptor(s.Child(0).Eff.Type)
		if !callDesc.Equal(s.Eff.Desc) {
			out = &ir.Lift{Token: n.Token, From: callDesc, To: s.Eff.Desc, Expr: out}
		}
		return wrapBinds(binds, out), fr, nil

	case *ir.Lambda:
		if s.Arity() != 1 {
			return nil, fr, shapeError(e)
		}
		body, fr, err := rewriteExpr(fr, n.Body, s.Child(0))
		if err != nil {
			return nil, fr, err
		}
		return &ir.Lambda{Token: n.Token, Param: n.Param, Body: body}, fr, nil

	case *ir.Let:
		if s.Arity() != 2 {
			return nil, fr, shapeError(e)
		}
		value, fr, err := rewriteExpr(fr, n.Value, s.Child(0))
		if err != nil {
			return nil, fr, err
		}
		body, fr, err := rewriteExpr(fr, n.Body, s.Child(1))
		if err != nil {
			return nil, fr, err
		}
		valueDesc := s.Child(0).Eff.Desc
		if valueDesc.IsPure() {
			return &ir.Let{Token: n.Token, Name: n.Name, Value: value, Body: body}, fr, nil
		}
		if !valueDesc.Equal(s.Eff.Desc) {
			value = &ir.Lift{Token: n.Token, From: valueDesc, To: s.Eff.Desc, Expr: value}
		}
		return &ir.Bind{Token: n.Token, Value: value, Name: n.Name, Body: body}, fr, nil

	case *ir.Function:
		if s.Arity() != 2 {
			return nil, fr, shapeError(e)
		}
		body, fr, err := rewriteExpr(fr, n.Body, s.Child(0))
		if err != nil {
			return nil, fr, err
		}
		in, fr, err := rewriteExpr(fr, n.In, s.Child(1))
		if err != nil {
			return nil, fr, err
		}
		return &ir.Function{
			Token:      n.Token,
			Rec:        n.Rec,
			Name:       n.Name,
			TypeParams: n.TypeParams,
			Params:     n.Params,
			Result:     n.Result,
			Body:       body,
			In:         in,
		}, fr, nil

	case *ir.Match:
		if s.Arity() != len(n.Arms)+1 {
			return nil, fr, shapeError(e)
		}
		scrutinee, fr, err := rewriteExpr(fr, n.Scrutinee, s.Child(0))
		if err != nil {
			return nil, fr, err
		}
		arms := make([]ir.Arm, len(n.Arms))
		for i, arm := range n.Arms {
			armShadow := s.Child(i + 1)
			body, fr2, err := rewriteExpr(fr, arm.Body, armShadow)
			if err != nil {
				return nil, fr2, err
			}
			fr = fr2
			if !armShadow.Eff.Desc.Equal(s.Eff.Desc) {
				body = &ir.Lift{Token: arm.Body.GetToken(), From: armShadow.Eff.Desc, To: s.Eff.Desc, Expr: body}
			}
			arms[i] = ir.Arm{Pattern: arm.Pattern, Body: body}
		}
		out := ir.Expr(&ir.Match{Token: n.Token, Scrutinee: scrutinee, Arms: arms})
		return bindScrutinee(fr, out, scrutinee, s.Child(0))

	case *ir.If:
		if s.Arity() != 3 {
			return nil, fr, shapeError(e)
		}
		cond, fr, err := rewriteExpr(fr, n.Cond, s.Child(0))
		if err != nil {
			return nil, fr, err
		}
		then, fr, err := rewriteExpr(fr, n.Then, s.Child(1))
		if err != nil {
			return nil, fr, err
		}
		els, fr, err := rewriteExpr(fr, n.Else, s.Child(2))
		if err != nil {
			return nil, fr, err
		}
		if !s.Child(1).Eff.Desc.Equal(s.Eff.Desc) {
			then = &ir.Lift{Token: n.Then.GetToken(), From: s.Child(1).Eff.Desc, To: s.Eff.Desc, Expr: then}
		}
		if !s.Child(2).Eff.Desc.Equal(s.Eff.Desc) {
			els = &ir.Lift{Token: n.Else.GetToken(), From: s.Child(2).Eff.Desc, To: s.Eff.Desc, Expr: els}
		}
		out := ir.Expr(&ir.If{Token: n.Token, Cond: cond, Then: then, Else: els})
		return bindScrutinee(fr, out, cond, s.Child(0))

	case *ir.Field:
		if s.Arity() != 1 {
			return nil, fr, shapeError(e)
		}
		base, fr, err := rewriteExpr(fr, n.Base, s.Child(0))
		if err != nil {
			return nil, fr, err
		}
		if s.Child(0).Eff.Desc.IsPure() {
			return &ir.Field{Token: n.Token, Base: base, Name: n.Name}, fr, nil
		}
		name, fr := fr.Next()
		projection := &ir.Field{Token: n.Token, Base: &ir.Var{Token: n.Token, Name: name}, Name: n.Name}
		return &ir.Bind{Token: n.Token, Value: base, Name: name, Body: projection}, fr, nil

	case *ir.Seq:
		if s.Arity() != 2 {
			return nil, fr, shapeError(e)
		}
		first, fr, err := rewriteExpr(fr, n.First, s.Child(0))
		if err != nil {
			return nil, fr, err
		}
		second, fr, err := rewriteExpr(fr, n.Second, s.Child(1))
		if err != nil {
			return nil, fr, err
		}
		if s.Child(0).Eff.Desc.IsPure() {
			return &ir.Seq{Token: n.Token, First: first, Second: second}, fr, nil
		}
		// The first side's result is discarded; the fresh name only
		// exists to sequence the effect.
		name, fr := fr.Next()
		return &ir.Bind{Token: n.Token, Value: first, Name: name, Body: second}, fr, nil

	case *ir.Lift, *ir.Bind:
		return nil, fr, diagnostics.NewError(diagnostics.ErrX002, e.GetToken(), e.TokenLiteral())
	}
	return nil, fr, diagnostics.NewError(diagnostics.ErrX003, e.GetToken(), e.TokenLiteral())
}

// binding is one pending Bind introduced while normalizing a node's
// children left to right.
type binding struct {
	name  ir.Name
	value ir.Expr
}

// combine normalizes the children of a node that merges several values
// into one result. An effect-free child stays inline; an effectful
// child is rewritten, named, and replaced by its name, with later
// siblings and the final combination as the bind's continuation. This
// preserves left-to-right call-by-value order.
func combine(fr Fresh, children []ir.Expr, s *effects.Shadow, parent ir.Expr) ([]ir.Expr, []binding, Fresh, *diagnostics.DiagnosticError) {
	if s.Arity() != len(children) {
		return nil, nil, fr, shapeError(parent)
	}
	replaced := make([]ir.Expr, len(children))
	var binds []binding
	for i, child := range children {
		childShadow := s.Child(i)
		rewritten, fr2, err := rewriteExpr(fr, child, childShadow)
		if err != nil {
			return nil, nil, fr2, err
		}
		fr = fr2
		if childShadow.Eff.Desc.IsPure() {
			replaced[i] = rewritten
			continue
		}
		var name ir.Name
		name, fr = fr.Next()
		binds = append(binds, binding{name: name, value: rewritten})
		replaced[i] = &ir.Var{Token: child.GetToken(), Name: name}
	}
	return replaced, binds, fr, nil
}

// wrapBinds nests the pending binds around the combined expression,
// first child outermost.
func wrapBinds(binds []binding, body ir.Expr) ir.Expr {
	for i := len(binds) - 1; i >= 0; i-- {
		body = &ir.Bind{Token: body.GetToken(), Value: binds[i].value, Name: binds[i].name, Body: body}
	}
	return body
}

// bindScrutinee handles an effectful scrutinee or condition: inference
// guarantees its value is plain data, but its evaluation may still
// carry a descriptor, in which case it is named before the branch
// construct runs.
func bindScrutinee(fr Fresh, construct ir.Expr, scrutinee ir.Expr, scrutShadow *effects.Shadow) (ir.Expr, Fresh, *diagnostics.DiagnosticError) {
	if scrutShadow.Eff.Desc.IsPure() {
		return construct, fr, nil
	}
	name, fr := fr.Next()
	replacement := &ir.Var{Token: scrutinee.GetToken(), Name: name}
	switch c := construct.(type) {
	case *ir.Match:
		c.Scrutinee = replacement
	case *ir.If:
		c.Cond = replacement
	}
	return &ir.Bind{Token: scrutinee.GetToken(), Value: scrutinee, Name: name, Body: construct}, fr, nil
}

func callDescriptor(fnType effects.EffectType) effects.Descriptor {
	if arrow, ok := fnType.(effects.TArrow); ok {
		return arrow.Desc
	}
	return effects.NewDescriptor()
}

func shapeError(e ir.Expr) *diagnostics.DiagnosticError {
	return diagnostics.NewError(diagnostics.ErrX003, e.GetToken(), e.TokenLiteral())
}
