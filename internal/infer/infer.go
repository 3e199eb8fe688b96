package infer

import (
	"github.com/funvibe/purelift/internal/config"
	"github.com/funvibe/purelift/internal/diagnostics"
	"github.com/funvibe/purelift/internal/effects"
	"github.com/funvibe/purelift/internal/ir"
)

// Inferrer computes a shadow effect tree for an expression. It is
// deterministic and side-effect free: the environment is persistent and
// every call produces a fresh tree.
type Inferrer struct {
	fixpointCap int
}

func New() *Inferrer {
	return &Inferrer{fixpointCap: config.FixpointIterationCap}
}

// Infer produces a shadow tree of identical shape to e, or the first
// diagnostic encountered. The input must be a surface tree: observing a
// Lift or Bind node is an internal-consistency failure.
func (inf *Inferrer) Infer(env *effects.Env, e ir.Expr) (*effects.Shadow, *diagnostics.DiagnosticError) {
	switch n := e.(type) {
	case *ir.Const:
		return effects.NewShadow(effects.Effect{Type: effects.Pure}), nil

	case *ir.Var:
		et, ok := env.Lookup(n.Name.Key())
		if !ok {
			return nil, diagnostics.NewError(diagnostics.ErrX001, n.Token, n.Name.Key())
		}
		// Referencing a name performs nothing by itself; its latent
		// effect lives in the effect type.
		return effects.NewShadow(effects.Effect{Type: et}), nil

	case *ir.Tuple:
		return inf.inferCompound(env, e, n.Elements)

	case *ir.Ctor:
		return inf.inferCompound(env, e, n.Args)

	case *ir.Record:
		values := make([]ir.Expr, len(n.Fields))
		for i, f := range n.Fields {
			values[i] = f.Value
		}
		return inf.inferCompound(env, e, values)

	case *ir.Apply:
		return inf.inferApply(env, n)

	case *ir.Lambda:
		body, err := inf.Infer(env.BindAllPure([]string{n.Param.Key()}), n.Body)
		if err != nil {
			return nil, err
		}
		// Forming a lambda has no effect; the body's effect becomes
		// latent in the arrow.
		eff := effects.Effect{Type: effects.TArrow{Desc: body.Eff.Desc, Next: body.Eff.Type}}
		return effects.NewShadow(eff, body), nil

	case *ir.Let:
		value, err := inf.Infer(env, n.Value)
		if err != nil {
			return nil, err
		}
		body, err := inf.Infer(env.Bind(n.Name.Key(), value.Eff.Type), n.Body)
		if err != nil {
			return nil, err
		}
		eff := effects.Effect{Desc: value.Eff.Desc.Union(body.Eff.Desc), Type: body.Eff.Type}
		return effects.NewShadow(eff, value, body), nil

	case *ir.Function:
		return inf.inferFunction(env, n)

	case *ir.Match:
		scrutinee, err := inf.Infer(env, n.Scrutinee)
		if err != nil {
			return nil, err
		}
		if !scrutinee.Eff.Type.IsPure() {
			return nil, diagnostics.NewError(diagnostics.ErrT003, n.Scrutinee.GetToken(), "scrutinee", n.Scrutinee.TokenLiteral())
		}
		children := make([]*effects.Shadow, 0, len(n.Arms)+1)
		children = append(children, scrutinee)
		desc := scrutinee.Eff.Desc
		var branchType effects.EffectType
		for _, arm := range n.Arms {
			armEnv := env
			for _, bound := range arm.Pattern.BoundNames() {
				armEnv = armEnv.Bind(bound.Key(), effects.Pure)
			}
			body, err := inf.Infer(armEnv, arm.Body)
			if err != nil {
				return nil, err
			}
			children = append(children, body)
			desc = desc.Union(body.Eff.Desc)
			if branchType == nil {
				branchType = body.Eff.Type
			} else if !branchType.Equal(body.Eff.Type) {
				return nil, diagnostics.NewError(diagnostics.ErrT006, n.Token,
					n.TokenLiteral(), branchType.String(), body.Eff.Type.String())
			}
		}
		return effects.NewShadow(effects.Effect{Desc: desc, Type: branchType}, children...), nil

	case *ir.If:
		cond, err := inf.Infer(env, n.Cond)
		if err != nil {
			return nil, err
		}
		if !cond.Eff.Type.IsPure() {
			return nil, diagnostics.NewError(diagnostics.ErrT003, n.Cond.GetToken(), "condition", n.Cond.TokenLiteral())
		}
		then, err := inf.Infer(env, n.Then)
		if err != nil {
			return nil, err
		}
		els, err := inf.Infer(env, n.Else)
		if err != nil {
			return nil, err
		}
		if !then.Eff.Type.Equal(els.Eff.Type) {
			return nil, diagnostics.NewError(diagnostics.ErrT006, n.Token,
				n.TokenLiteral(), then.Eff.Type.String(), els.Eff.Type.String())
		}
		desc := cond.Eff.Desc.Union(then.Eff.Desc).Union(els.Eff.Desc)
		return effects.NewShadow(effects.Effect{Desc: desc, Type: then.Eff.Type}, cond, then, els), nil

	case *ir.Field:
		base, err := inf.Infer(env, n.Base)
		if err != nil {
			return nil, err
		}
		if !base.Eff.Type.IsPure() {
			return nil, diagnostics.NewError(diagnostics.ErrT004, n.Token, n.Base.TokenLiteral())
		}
		return effects.NewShadow(effects.Effect{Desc: base.Eff.Desc, Type: effects.Pure}, base), nil

	case *ir.Seq:
		first, err := inf.Infer(env, n.First)
		if err != nil {
			return nil, err
		}
		second, err := inf.Infer(env, n.Second)
		if err != nil {
			return nil, err
		}
		eff := effects.Effect{Desc: first.Eff.Desc.Union(second.Eff.Desc), Type: second.Eff.Type}
		return effects.NewShadow(eff, first, second), nil

	case *ir.Lift, *ir.Bind:
		return nil, diagnostics.NewError(diagnostics.ErrX002, e.GetToken(), e.TokenLiteral())
	}
	return nil, diagnostics.NewError(diagnostics.ErrS003, e.GetToken(), e.TokenLiteral())
}

// inferCompound handles data positions such as tuple elements,
// constructor arguments and record field values. Children must be plain
// data; a function value cannot be embedded unapplied in a data literal.
func (inf *Inferrer) inferCompound(env *effects.Env, parent ir.Expr, children []ir.Expr) (*effects.Shadow, *diagnostics.DiagnosticError) {
	shadows := make([]*effects.Shadow, len(children))
	var desc effects.Descriptor
	for i, child := range children {
		s, err := inf.Infer(env, child)
		if err != nil {
			return nil, err
		}
		if !s.Eff.Type.IsPure() {
			return nil, diagnostics.NewError(diagnostics.ErrT002, child.GetToken(), child.TokenLiteral())
		}
		shadows[i] = s
		desc = desc.Union(s.Eff.Desc)
	}
	return effects.NewShadow(effects.Effect{Desc: desc, Type: effects.Pure}, shadows...), nil
}

// inferApply handles one curried application step.
func (inf *Inferrer) inferApply(env *effects.Env, n *ir.Apply) (*effects.Shadow, *diagnostics.DiagnosticError) {
	fn, err := inf.Infer(env, n.Fn)
	if err != nil {
		return nil, err
	}
	arg, err := inf.Infer(env, n.Arg)
	if err != nil {
		return nil, err
	}
	if !arg.Eff.Type.IsPure() {
		return nil, diagnostics.NewError(diagnostics.ErrT001, n.Arg.GetToken(), n.Arg.TokenLiteral())
	}

	// A callee whose effect signature is opaque (e.g. a parameter bound
	// at Pure) is applied as an effect-free function.
	callDesc := effects.NewDescriptor()
	result := effects.Pure
	switch fnType := fn.Eff.Type.(type) {
	case effects.TArrow:
		callDesc = fnType.Desc
		result = fnType.Next
	case effects.TPure:
		// opaque callee
	default:
		return nil, diagnostics.NewError(diagnostics.ErrX005, n.Token, n.TokenLiteral())
	}

	desc := fn.Eff.Desc.Union(arg.Eff.Desc).Union(callDesc)
	return effects.NewShadow(effects.Effect{Desc: desc, Type: result}, fn, arg), nil
}
