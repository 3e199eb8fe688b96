package infer

import (
	"github.com/funvibe/purelift/internal/diagnostics"
	"github.com/funvibe/purelift/internal/effects"
	"github.com/funvibe/purelift/internal/ir"
)

// inferFunction handles recursive-or-not function bindings.
//
// For a recursive binding the name's own effect type is required inside
// its own body, so inference iterates a least fixpoint: assume Pure,
// infer the body, close the signature over the argument list, and repeat
// with the refined assumption until it stabilizes. The lattice built
// from a program's finite effect-label set has finite height, so the
// loop terminates; breaching the iteration cap is an
// internal-consistency failure.
func (inf *Inferrer) inferFunction(env *effects.Env, n *ir.Function) (*effects.Shadow, *diagnostics.DiagnosticError) {
	argKeys := make([]string, len(n.Params))
	for i, p := range n.Params {
		argKeys[i] = p.Name.Key()
	}
	nameKey := n.Name.Key()

	var body *effects.Shadow
	var signature effects.EffectType

	if !n.Rec {
		var err *diagnostics.DiagnosticError
		body, err = inf.Infer(env.BindAllPure(argKeys), n.Body)
		if err != nil {
			return nil, err
		}
		signature, err = inf.closeSignature(n, body.Eff)
		if err != nil {
			return nil, err
		}
	} else {
		assumed := effects.Pure
		converged := false
		for i := 0; i < inf.fixpointCap; i++ {
			bodyEnv := env.Bind(nameKey, assumed).BindAllPure(argKeys)
			var err *diagnostics.DiagnosticError
			body, err = inf.Infer(bodyEnv, n.Body)
			if err != nil {
				return nil, err
			}
			signature, err = inf.closeSignature(n, body.Eff)
			if err != nil {
				return nil, err
			}
			if signature.Equal(assumed) {
				converged = true
				break
			}
			assumed = signature
		}
		if !converged {
			return nil, diagnostics.NewError(diagnostics.ErrX004, n.Token, nameKey, inf.fixpointCap)
		}
	}

	in, err := inf.Infer(env.Bind(nameKey, signature), n.In)
	if err != nil {
		return nil, err
	}
	// Forming the binding is pure; only the continuation's effect
	// escapes.
	eff := effects.Effect{Desc: in.Eff.Desc, Type: in.Eff.Type}
	return effects.NewShadow(eff, body, in), nil
}

// closeSignature abstracts the body's inferred effect over the declared
// argument list, producing the binding's own effect type. The body's
// descriptor is discharged by the innermost application; outer arrows
// carry nothing. A binding with no arguments cannot abstract a leftover
// effect at all.
func (inf *Inferrer) closeSignature(n *ir.Function, body effects.Effect) (effects.EffectType, *diagnostics.DiagnosticError) {
	if len(n.Params) == 0 {
		if !body.Desc.IsPure() {
			return nil, diagnostics.NewError(diagnostics.ErrT005, n.Token, n.Name.Key())
		}
		return body.Type, nil
	}
	et := effects.EffectType(effects.TArrow{Desc: body.Desc, Next: body.Type})
	for i := 1; i < len(n.Params); i++ {
		et = effects.TArrow{Desc: effects.NewDescriptor(), Next: et}
	}
	return et, nil
}
