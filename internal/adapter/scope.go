package adapter

import (
	"github.com/funvibe/purelift/internal/diagnostics"
	"github.com/funvibe/purelift/internal/effects"
	"github.com/funvibe/purelift/internal/ir"
)

// ScopeCheck verifies that every variable reference is either locally
// bound or declared in the global effect manifest. It runs after
// adaptation so that effect inference can treat an environment miss as
// an internal-consistency failure rather than a user error.
func ScopeCheck(e ir.Expr, globals *effects.Env) *diagnostics.DiagnosticError {
	return scopeWalk(e, map[string]bool{}, globals)
}

func scopeWalk(e ir.Expr, local map[string]bool, globals *effects.Env) *diagnostics.DiagnosticError {
	switch n := e.(type) {
	case *ir.Var:
		key := n.Name.Key()
		if !local[key] && !globals.Has(key) {
			return diagnostics.NewError(diagnostics.ErrS001, n.Token, key)
		}
		return nil

	case *ir.Lambda:
		return scopeWalk(n.Body, extend(local, n.Param.Key()), globals)

	case *ir.Let:
		if err := scopeWalk(n.Value, local, globals); err != nil {
			return err
		}
		return scopeWalk(n.Body, extend(local, n.Name.Key()), globals)

	case *ir.Function:
		bodyScope := local
		if n.Rec {
			bodyScope = extend(bodyScope, n.Name.Key())
		}
		for _, p := range n.Params {
			bodyScope = extend(bodyScope, p.Name.Key())
		}
		if err := scopeWalk(n.Body, bodyScope, globals); err != nil {
			return err
		}
		return scopeWalk(n.In, extend(local, n.Name.Key()), globals)

	case *ir.Match:
		if err := scopeWalk(n.Scrutinee, local, globals); err != nil {
			return err
		}
		for _, arm := range n.Arms {
			armScope := local
			for _, bound := range arm.Pattern.BoundNames() {
				armScope = extend(armScope, bound.Key())
			}
			if err := scopeWalk(arm.Body, armScope, globals); err != nil {
				return err
			}
		}
		return nil
	}

	for _, child := range ir.Children(e) {
		if err := scopeWalk(child, local, globals); err != nil {
			return err
		}
	}
	return nil
}

func extend(scope map[string]bool, key string) map[string]bool {
	out := make(map[string]bool, len(scope)+1)
	for k := range scope {
		out[k] = true
	}
	out[key] = true
	return out
}
