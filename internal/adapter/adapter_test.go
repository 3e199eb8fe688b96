package adapter

import (
	"strings"
	"testing"

	"github.com/funvibe/purelift/internal/ast"
	"github.com/funvibe/purelift/internal/diagnostics"
	"github.com/funvibe/purelift/internal/effects"
	"github.com/funvibe/purelift/internal/ir"
	"github.com/funvibe/purelift/internal/lexer"
	"github.com/funvibe/purelift/internal/parser"
	"github.com/funvibe/purelift/internal/pipeline"
)

func parseSource(t *testing.T, src string) ast.Expression {
	t.Helper()
	ctx := pipeline.NewContext("test.mlc", src, effects.NewEnv())
	root := parser.New(lexer.New(src), ctx).ParseUnit()
	if ctx.Failed() || root == nil {
		t.Fatalf("parse %q failed: %v", src, ctx.Errors)
	}
	return root
}

func adaptOK(t *testing.T, src string) ir.Expr {
	t.Helper()
	a := New()
	out := a.Adapt(parseSource(t, src))
	if out == nil {
		t.Fatalf("adapt %q failed: %v", src, a.Errors())
	}
	return out
}

func adaptFail(t *testing.T, src string) *diagnostics.DiagnosticError {
	t.Helper()
	a := New()
	if out := a.Adapt(parseSource(t, src)); out != nil {
		t.Fatalf("adapt %q should fail", src)
	}
	if len(a.Errors()) == 0 {
		t.Fatalf("adapt %q failed without diagnostics", src)
	}
	return a.Errors()[0]
}

func TestAdaptCallCurrying(t *testing.T) {
	// f x y becomes Apply(Apply(f, x), y)
	out := adaptOK(t, "f x y")
	outer, ok := out.(*ir.Apply)
	if !ok {
		t.Fatalf("expected apply, got %T", out)
	}
	inner, ok := outer.Fn.(*ir.Apply)
	if !ok {
		t.Fatalf("call should curry left, fn = %T", outer.Fn)
	}
	if inner.Fn.TokenLiteral() != "f" {
		t.Errorf("innermost callee = %s", inner.Fn.TokenLiteral())
	}
	if inner.Arg.TokenLiteral() != "x" || outer.Arg.TokenLiteral() != "y" {
		t.Errorf("argument order lost")
	}
}

func TestAdaptFunCurrying(t *testing.T) {
	out := adaptOK(t, "fun a b -> a")
	names, body := ir.OpenFunction(out)
	if len(names) != 2 || names[0].Key() != "a" || names[1].Key() != "b" {
		t.Fatalf("lambda chain names = %v", names)
	}
	if _, ok := body.(*ir.Var); !ok {
		t.Errorf("body = %T", body)
	}
}

func TestAdaptPlainLet(t *testing.T) {
	out := adaptOK(t, "let x = 1 in x")
	let, ok := out.(*ir.Let)
	if !ok {
		t.Fatalf("expected let, got %T", out)
	}
	if let.Name.Key() != "x" {
		t.Errorf("name = %s", let.Name)
	}
}

func TestAdaptFunctionBinding(t *testing.T) {
	out := adaptOK(t, "let f (x : int) (y : int) : int = x in f 1 2")
	fn, ok := out.(*ir.Function)
	if !ok {
		t.Fatalf("expected function, got %T", out)
	}
	if fn.Rec {
		t.Errorf("plain let should not be recursive")
	}
	if len(fn.Params) != 2 {
		t.Fatalf("params = %d, want 2", len(fn.Params))
	}
	if fn.Params[0].Type == nil || fn.Result == nil {
		t.Errorf("type annotations dropped")
	}
}

func TestAdaptRecBinding(t *testing.T) {
	out := adaptOK(t, "let rec loop (n : int) : int = loop n in loop 0")
	fn, ok := out.(*ir.Function)
	if !ok {
		t.Fatalf("expected function, got %T", out)
	}
	if !fn.Rec {
		t.Errorf("rec flag lost")
	}
}

func TestAdaptTypeParams(t *testing.T) {
	out := adaptOK(t, "let id (x : 'a) : 'a = x in id 1")
	fn, ok := out.(*ir.Function)
	if !ok {
		t.Fatalf("expected function, got %T", out)
	}
	if len(fn.TypeParams) != 1 || fn.TypeParams[0].Key() != "a" {
		t.Errorf("type params = %v", fn.TypeParams)
	}
}

func TestAdaptPatternParameter(t *testing.T) {
	// A tuple parameter becomes a fresh scrutinee matched in the body.
	out := adaptOK(t, "let swap ((a, b) : 'a * 'b) : 'b * 'a = (b, a) in swap (1, 2)")
	fn, ok := out.(*ir.Function)
	if !ok {
		t.Fatalf("expected function, got %T", out)
	}
	if len(fn.Params) != 1 {
		t.Fatalf("params = %d, want 1", len(fn.Params))
	}
	if !strings.HasPrefix(fn.Params[0].Name.Key(), "arg_") {
		t.Errorf("synthesized parameter name = %s", fn.Params[0].Name)
	}
	m, ok := fn.Body.(*ir.Match)
	if !ok {
		t.Fatalf("body should match on the synthesized scrutinee, got %T", fn.Body)
	}
	if m.Arms[0].Pattern.String() != "(a, b)" {
		t.Errorf("arm pattern = %s", m.Arms[0].Pattern)
	}
}

func TestAdaptMissingElse(t *testing.T) {
	out := adaptOK(t, "if c then x")
	ife, ok := out.(*ir.If)
	if !ok {
		t.Fatalf("expected if, got %T", out)
	}
	c, ok := ife.Else.(*ir.Const)
	if !ok || !c.Value.IsUnit() {
		t.Errorf("omitted else should become unit, got %T", ife.Else)
	}
}

func TestAdaptUnsupportedConstructs(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"While", "while c do e done", "while"},
		{"For", "for i = 0 to 9 do e done", "for"},
		{"Assign", "r <- 1", "<-"},
		{"Array", "[1; 2]", "array"},
		{"Try", "try f x with | e -> 0", "try"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := adaptFail(t, tt.src)
			if err.Code != diagnostics.ErrS002 {
				t.Errorf("code = %s, want %s", err.Code, diagnostics.ErrS002)
			}
			if !strings.Contains(err.Message, tt.want) {
				t.Errorf("message %q should name the construct %q", err.Message, tt.want)
			}
			if err.Internal() {
				t.Errorf("unsupported construct must be a user rejection")
			}
		})
	}
}

func TestAdaptNestedUnsupported(t *testing.T) {
	// Rejection applies however deep the construct sits.
	err := adaptFail(t, "let x = (1, while c do e done) in x")
	if err.Code != diagnostics.ErrS002 {
		t.Errorf("code = %s, want %s", err.Code, diagnostics.ErrS002)
	}
}

func TestAdaptOutputIsSurface(t *testing.T) {
	out := adaptOK(t, "let x = f 1 in (x, x)")
	if err := ir.CheckSurface(out); err != nil {
		t.Errorf("adapter output must contain no monadic nodes: %s", err)
	}
}

func TestScopeCheck(t *testing.T) {
	globals := effects.NewEnv().Bind("Stdlib.print_int", effects.MakeArrow(effects.Pure, effects.NewDescriptor("IO")))

	tests := []struct {
		name string
		src  string
		ok   bool
	}{
		{"Local Binding", "let x = 1 in x", true},
		{"Global Primitive", "Stdlib.print_int 1", true},
		{"Lambda Param", "fun x -> x", true},
		{"Match Arm Binding", "match Some 1 with | Some v -> v | None -> 0", true},
		{"Recursive Self Reference", "let rec f (n : int) : int = f n in f 0", true},
		{"Unbound Variable", "y", false},
		{"Out Of Scope", "let x = 1 in y", false},
		{"Value Not In Own Scope", "let x = x in x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := adaptOK(t, tt.src)
			err := ScopeCheck(out, globals)
			if tt.ok && err != nil {
				t.Errorf("ScopeCheck(%q) = %s, want ok", tt.src, err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatalf("ScopeCheck(%q) should fail", tt.src)
				}
				if err.Code != diagnostics.ErrS001 {
					t.Errorf("code = %s, want %s", err.Code, diagnostics.ErrS001)
				}
			}
		})
	}
}
