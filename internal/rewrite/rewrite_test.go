package rewrite

import (
	"strings"
	"testing"

	"github.com/funvibe/purelift/internal/adapter"
	"github.com/funvibe/purelift/internal/diagnostics"
	"github.com/funvibe/purelift/internal/effects"
	"github.com/funvibe/purelift/internal/infer"
	"github.com/funvibe/purelift/internal/ir"
	"github.com/funvibe/purelift/internal/lexer"
	"github.com/funvibe/purelift/internal/parser"
	"github.com/funvibe/purelift/internal/pipeline"
)

func testGlobals() *effects.Env {
	return effects.NewEnv().
		Bind("Stdlib.failwith", effects.MakeArrow(effects.Pure, effects.NewDescriptor("Failure"))).
		Bind("Stdlib.print_int", effects.MakeArrow(effects.Pure, effects.NewDescriptor("IO"))).
		Bind("Stdlib.succ", effects.MakeArrow(effects.Pure, effects.NewDescriptor()))
}

func rewriteSource(t *testing.T, src string) ir.Expr {
	t.Helper()
	ctx := pipeline.NewContext("test.mlc", src, testGlobals())
	root := parser.New(lexer.New(src), ctx).ParseUnit()
	if ctx.Failed() || root == nil {
		t.Fatalf("parse %q failed: %v", src, ctx.Errors)
	}
	a := adapter.New()
	lowered := a.Adapt(root)
	if lowered == nil {
		t.Fatalf("adapt %q failed: %v", src, a.Errors())
	}
	shadow, derr := infer.New().Infer(testGlobals(), lowered)
	if derr != nil {
		t.Fatalf("infer %q failed: %s", src, derr)
	}
	out, _, derr := Rewrite(NewFresh(), lowered, shadow)
	if derr != nil {
		t.Fatalf("rewrite %q failed: %s", src, derr)
	}
	return out
}

func TestFreshNames(t *testing.T) {
	fr := NewFresh()
	a, fr2 := fr.Next()
	b, _ := fr2.Next()
	if a.Key() != "x_1" || b.Key() != "x_2" {
		t.Errorf("fresh names = %s, %s", a, b)
	}
	// The original generator is unchanged; rewinding reproduces names.
	again, _ := fr.Next()
	if !again.Equal(a) {
		t.Errorf("fresh generation must be reproducible from a saved value")
	}
}

func TestRewritePurityPreservation(t *testing.T) {
	sources := []string{
		"42",
		"let x = 1 in (x, x)",
		"fun a b -> a",
		"let f (x : int) : int = Stdlib.succ x in f 1",
		"let b = true in match b with | true -> 1 | false -> 0",
	}
	for _, src := range sources {
		out := rewriteSource(t, src)
		if hasMonadic(out) {
			t.Errorf("pure program %q gained monadic nodes", src)
		}
	}
}

func hasMonadic(e ir.Expr) bool {
	switch e.(type) {
	case *ir.Bind, *ir.Lift:
		return true
	}
	for _, c := range ir.Children(e) {
		if hasMonadic(c) {
			return true
		}
	}
	return false
}

func TestRewriteDischargesEffects(t *testing.T) {
	sources := []string{
		`Stdlib.failwith "boom"`,
		`let u = Stdlib.print_int 1 in 2`,
		`let x = Stdlib.succ 1 in Stdlib.print_int x`,
		`let u = Stdlib.print_int 1 in Stdlib.failwith "x"`,
		`Stdlib.print_int 1; 2`,
		`(Stdlib.print_int 1, 2, Stdlib.failwith "x")`,
		`match Stdlib.print_int 1 with | _ -> 2`,
		`let b = true in match b with | true -> 1 | false -> Stdlib.failwith "x"`,
	}
	for _, src := range sources {
		out := rewriteSource(t, src)
		if d := residual(t, out); !d.IsPure() {
			t.Errorf("rewritten %q still carries descriptor %s at the root", src, d)
		}
	}
}

// residual re-derives the effect descriptor a rewritten expression
// still carries implicitly, with bind and lift wrappers counted as
// already discharged. Along the way it checks the rewriter's output
// contract: every value position is effect-free, and a lift's payload
// carries exactly the lift's source descriptor. Tail positions (let
// and bind bodies, branch arms, the second side of a sequence) may
// stay effectful; their descriptor is the construct's own.
func residual(t *testing.T, e ir.Expr) effects.Descriptor {
	t.Helper()
	value := func(child ir.Expr, what string) {
		t.Helper()
		if d := residual(t, child); !d.IsPure() {
			t.Errorf("%s %q carries undischarged descriptor %s", what, child.TokenLiteral(), d)
		}
	}
	switch n := e.(type) {
	case *ir.Const, *ir.Var:
		return effects.NewDescriptor()
	case *ir.Tuple:
		for _, el := range n.Elements {
			value(el, "tuple element")
		}
		return effects.NewDescriptor()
	case *ir.Ctor:
		for _, a := range n.Args {
			value(a, "constructor argument")
		}
		return effects.NewDescriptor()
	case *ir.Record:
		for _, f := range n.Fields {
			value(f.Value, "field value")
		}
		return effects.NewDescriptor()
	case *ir.Field:
		value(n.Base, "projection base")
		return effects.NewDescriptor()
	case *ir.Apply:
		desc, args := chainDescriptor(n)
		for _, a := range args {
			value(a, "argument")
		}
		return desc
	case *ir.Lambda:
		// The body's effect is latent in the arrow.
		residual(t, n.Body)
		return effects.NewDescriptor()
	case *ir.Function:
		residual(t, n.Body)
		return residual(t, n.In)
	case *ir.Let:
		value(n.Value, "let value")
		return residual(t, n.Body)
	case *ir.Seq:
		value(n.First, "sequenced value")
		return residual(t, n.Second)
	case *ir.Match:
		value(n.Scrutinee, "scrutinee")
		desc := effects.NewDescriptor()
		for _, arm := range n.Arms {
			desc = desc.Union(residual(t, arm.Body))
		}
		return desc
	case *ir.If:
		value(n.Cond, "condition")
		return residual(t, n.Then).Union(residual(t, n.Else))
	case *ir.Lift:
		if d := residual(t, n.Expr); !d.Equal(n.From) {
			t.Errorf("lift declares source %s but payload carries %s", n.From, d)
		}
		return effects.NewDescriptor()
	case *ir.Bind:
		residual(t, n.Value)
		residual(t, n.Body)
		return effects.NewDescriptor()
	}
	t.Fatalf("unexpected node %T", e)
	return effects.NewDescriptor()
}

// chainDescriptor resolves a full application chain against the test
// globals and returns the unioned descriptor of the consumed arrows,
// plus the argument list. Heads outside the globals count as pure.
func chainDescriptor(e *ir.Apply) (effects.Descriptor, []ir.Expr) {
	var args []ir.Expr
	fn := ir.Expr(e)
	for {
		app, ok := fn.(*ir.Apply)
		if !ok {
			break
		}
		args = append([]ir.Expr{app.Arg}, args...)
		fn = app.Fn
	}
	desc := effects.NewDescriptor()
	v, ok := fn.(*ir.Var)
	if !ok {
		return desc, args
	}
	et, bound := testGlobals().Lookup(v.Name.Key())
	if !bound {
		return desc, args
	}
	for range args {
		arrow, ok := et.(effects.TArrow)
		if !ok {
			break
		}
		desc = desc.Union(arrow.Desc)
		et = arrow.Next
	}
	return desc, args
}

func TestRewriteRootApplicationIsBound(t *testing.T) {
	// An effectful result at the top of the unit gets a name.
	out := rewriteSource(t, `Stdlib.failwith "boom"`)
	bind, ok := out.(*ir.Bind)
	if !ok {
		t.Fatalf("expected bind at root, got %T", out)
	}
	if _, ok := bind.Value.(*ir.Apply); !ok {
		t.Errorf("bind value = %T, want the application", bind.Value)
	}
	v, ok := bind.Body.(*ir.Var)
	if !ok || !v.Name.Equal(bind.Name) {
		t.Errorf("bind body should return the bound name")
	}
	// Source and target descriptors are equal here, so no lift.
	if strings.Contains(exprDump(out), "lift") {
		t.Errorf("no lift expected when descriptors agree")
	}
}

func TestRewriteLetBecomesBind(t *testing.T) {
	out := rewriteSource(t, `let u = Stdlib.print_int 1 in 2`)
	bind, ok := out.(*ir.Bind)
	if !ok {
		t.Fatalf("expected bind, got %T", out)
	}
	if bind.Name.Key() != "u" {
		t.Errorf("bind keeps the let-bound name, got %s", bind.Name)
	}
	if _, ok := bind.Body.(*ir.Const); !ok {
		t.Errorf("pure continuation should stay unchanged, got %T", bind.Body)
	}
}

func TestRewritePureLetStaysLet(t *testing.T) {
	out := rewriteSource(t, `let x = Stdlib.succ 1 in Stdlib.print_int x`)
	// The value is pure, so the let survives even though the body is
	// effectful.
	bind, ok := out.(*ir.Bind)
	if !ok {
		t.Fatalf("effectful root should be bound, got %T", out)
	}
	if _, ok := bind.Value.(*ir.Let); !ok {
		t.Errorf("inner node = %T, want let", bind.Value)
	}
}

func TestRewriteSeqDiscardsFirst(t *testing.T) {
	out := rewriteSource(t, `Stdlib.print_int 1; 2`)
	bind, ok := out.(*ir.Bind)
	if !ok {
		t.Fatalf("expected bind, got %T", out)
	}
	if !strings.HasPrefix(bind.Name.Key(), "x_") {
		t.Errorf("discarded name should be fresh, got %s", bind.Name)
	}
	if _, ok := bind.Body.(*ir.Const); !ok {
		t.Errorf("continuation = %T, want the second side", bind.Body)
	}
}

func TestRewriteEvaluationOrder(t *testing.T) {
	// Children [effectful, pure, effectful]: the first is bound
	// outermost, the third after the second.
	out := rewriteSource(t, `(Stdlib.print_int 1, 2, Stdlib.failwith "x")`)
	first, ok := out.(*ir.Bind)
	if !ok {
		t.Fatalf("expected outer bind, got %T", out)
	}
	second, ok := first.Body.(*ir.Bind)
	if !ok {
		t.Fatalf("expected nested bind, got %T", first.Body)
	}
	tup, ok := second.Body.(*ir.Tuple)
	if !ok {
		t.Fatalf("expected tuple under the binds, got %T", second.Body)
	}
	if len(tup.Elements) != 3 {
		t.Fatalf("tuple arity = %d", len(tup.Elements))
	}
	if tup.Elements[0].TokenLiteral() != first.Name.Key() {
		t.Errorf("first element should reference the outer bind")
	}
	if _, ok := tup.Elements[1].(*ir.Const); !ok {
		t.Errorf("pure middle child should stay inline")
	}
	if tup.Elements[2].TokenLiteral() != second.Name.Key() {
		t.Errorf("third element should reference the inner bind")
	}
}

func TestRewriteMatchLiftsPureArm(t *testing.T) {
	out := rewriteSource(t, `let b = true in match b with | true -> 1 | false -> Stdlib.failwith "x"`)
	bind, ok := out.(*ir.Bind)
	if !ok {
		t.Fatalf("effectful unit should be bound at root, got %T", out)
	}
	let, ok := bind.Value.(*ir.Let)
	if !ok {
		t.Fatalf("bind value = %T, want the let", bind.Value)
	}
	m, ok := let.Body.(*ir.Match)
	if !ok {
		t.Fatalf("let body = %T, want match", let.Body)
	}
	lift, ok := m.Arms[0].Body.(*ir.Lift)
	if !ok {
		t.Fatalf("pure arm should be lifted, got %T", m.Arms[0].Body)
	}
	if !lift.From.IsPure() || lift.To.String() != "[Failure]" {
		t.Errorf("lift %s -> %s, want [] -> [Failure]", lift.From, lift.To)
	}
	if _, ok := m.Arms[1].Body.(*ir.Lift); ok {
		t.Errorf("already-effectful arm must not be lifted")
	}
}

func TestRewriteEffectfulScrutineeIsBound(t *testing.T) {
	out := rewriteSource(t, `match Stdlib.print_int 1 with | _ -> 2`)
	bind, ok := out.(*ir.Bind)
	if !ok {
		t.Fatalf("expected bind, got %T", out)
	}
	if _, ok := bind.Value.(*ir.Apply); !ok {
		t.Fatalf("bind value = %T, want the scrutinee call", bind.Value)
	}
	m, ok := bind.Body.(*ir.Match)
	if !ok {
		t.Fatalf("bind body = %T, want match", bind.Body)
	}
	v, ok := m.Scrutinee.(*ir.Var)
	if !ok || !v.Name.Equal(bind.Name) {
		t.Errorf("scrutinee should be the bound name, got %T", m.Scrutinee)
	}
	// The arm is pure while the match carries IO, so it is lifted.
	if _, ok := m.Arms[0].Body.(*ir.Lift); !ok {
		t.Errorf("pure arm should be lifted, got %T", m.Arms[0].Body)
	}
}

func TestRewriteFunctionBodyRewritten(t *testing.T) {
	out := rewriteSource(t, `let f (n : int) : int = Stdlib.failwith "no" in 1`)
	fn, ok := out.(*ir.Function)
	if !ok {
		t.Fatalf("expected function, got %T", out)
	}
	// The body's effect is latent in the signature; at the body's own
	// root it is simply the effectful expression, not re-bound.
	if _, ok := fn.Body.(*ir.Apply); !ok {
		t.Errorf("function body = %T, want the call", fn.Body)
	}
	if _, ok := fn.In.(*ir.Const); !ok {
		t.Errorf("pure continuation changed: %T", fn.In)
	}
}

func TestRewriteShapeMismatchIsInternal(t *testing.T) {
	e := &ir.Tuple{Elements: []ir.Expr{&ir.Const{Value: ir.UnitConstant}}}
	// Shadow with the wrong arity.
	s := effects.NewShadow(effects.Effect{Type: effects.Pure})
	_, _, err := Rewrite(NewFresh(), e, s)
	if err == nil {
		t.Fatalf("shape mismatch should fail")
	}
	if err.Code != diagnostics.ErrX003 || !err.Internal() {
		t.Errorf("code = %s, want internal %s", err.Code, diagnostics.ErrX003)
	}
}

func TestRewriteMonadicInputIsInternal(t *testing.T) {
	e := &ir.Lift{Expr: &ir.Const{Value: ir.UnitConstant}}
	s := effects.NewShadow(effects.Effect{Type: effects.Pure}, effects.NewShadow(effects.Effect{Type: effects.Pure}))
	_, _, err := Rewrite(NewFresh(), e, s)
	if err == nil {
		t.Fatalf("monadic input should fail")
	}
	if err.Code != diagnostics.ErrX002 || !err.Internal() {
		t.Errorf("code = %s, want internal %s", err.Code, diagnostics.ErrX002)
	}
}

func TestRewriteDoesNotMutateInput(t *testing.T) {
	src := `let u = Stdlib.print_int 1 in 2`
	ctx := pipeline.NewContext("test.mlc", src, testGlobals())
	root := parser.New(lexer.New(src), ctx).ParseUnit()
	a := adapter.New()
	lowered := a.Adapt(root)
	shadow, _ := infer.New().Infer(testGlobals(), lowered)

	before := exprDump(lowered)
	if _, _, err := Rewrite(NewFresh(), lowered, shadow); err != nil {
		t.Fatalf("rewrite failed: %s", err)
	}
	if exprDump(lowered) != before {
		t.Errorf("input tree was mutated")
	}
}

// exprDump is a crude structural fingerprint for mutation checks.
func exprDump(e ir.Expr) string {
	if e == nil {
		return "_"
	}
	var sb strings.Builder
	switch e.(type) {
	case *ir.Bind:
		sb.WriteString("bind:")
	case *ir.Lift:
		sb.WriteString("lift:")
	}
	sb.WriteString(e.TokenLiteral())
	for _, c := range ir.Children(e) {
		sb.WriteString("(")
		sb.WriteString(exprDump(c))
		sb.WriteString(")")
	}
	return sb.String()
}
