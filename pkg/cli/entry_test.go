package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/funvibe/purelift/internal/diagnostics"
	"github.com/funvibe/purelift/internal/manifest"
	"github.com/funvibe/purelift/internal/pipeline"
	"github.com/funvibe/purelift/internal/token"
)

func TestTranslatePureProgram(t *testing.T) {
	ctx := Translate("unit.mlc", "let x = 1 in x", manifest.Default(), false)
	if ctx.Failed() {
		t.Fatalf("translation failed: %v", ctx.Errors)
	}
	want := "let x := 1 in\n  x\n"
	if ctx.Output != want {
		t.Errorf("output = %q, want %q", ctx.Output, want)
	}
	if !ctx.RootEffect.Desc.IsPure() {
		t.Errorf("root descriptor = %s, want empty", ctx.RootEffect.Desc)
	}
}

func TestTranslateEffectfulProgram(t *testing.T) {
	ctx := Translate("unit.mlc", `Stdlib.failwith "boom"`, manifest.Default(), false)
	if ctx.Failed() {
		t.Fatalf("translation failed: %v", ctx.Errors)
	}
	if !strings.HasPrefix(ctx.Output, "let! x_1 := Stdlib.failwith") {
		t.Errorf("output = %q, want a bind at the root", ctx.Output)
	}
	if ctx.RootEffect.Desc.String() != "[Failure]" {
		t.Errorf("root descriptor = %s, want [Failure]", ctx.RootEffect.Desc)
	}
}

func TestTranslateEndToEnd(t *testing.T) {
	src := `let u = Stdlib.print_int 1 in
let rec go (n : int) : int = if true then Stdlib.failwith "stop" else go n in
go 0`
	ctx := Translate("unit.mlc", src, manifest.Default(), false)
	if ctx.Failed() {
		t.Fatalf("translation failed: %v", ctx.Errors)
	}
	for _, fragment := range []string{"let! u :=", "lift [IO] [Failure, IO]", "let fix go (n : int) : int :="} {
		if !strings.Contains(ctx.Output, fragment) {
			t.Errorf("output missing %q:\n%s", fragment, ctx.Output)
		}
	}
	if ctx.RootEffect.Desc.String() != "[Failure, IO]" {
		t.Errorf("root descriptor = %s, want [Failure, IO]", ctx.RootEffect.Desc)
	}
}

func TestTranslateCheckOnly(t *testing.T) {
	ctx := Translate("unit.mlc", `Stdlib.print_int 1`, manifest.Default(), true)
	if ctx.Failed() {
		t.Fatalf("check failed: %v", ctx.Errors)
	}
	if ctx.Output != "" {
		t.Errorf("check mode should not emit, got %q", ctx.Output)
	}
	if ctx.RootEffect == nil || ctx.RootEffect.Desc.String() != "[IO]" {
		t.Errorf("check mode should still infer the root effect")
	}
}

func TestTranslateRejections(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"Parse Error", "let x ="},
		{"Unsupported Construct", "while c do e done"},
		{"Unbound Name", "nope"},
		{"Top Level Effect", `let rec x = Stdlib.failwith "b" in x`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := Translate("unit.mlc", tt.src, manifest.Default(), false)
			if !ctx.Failed() {
				t.Fatalf("translation of %q should fail", tt.src)
			}
			if ctx.HasInternalError() {
				t.Errorf("user error misclassified as internal: %v", ctx.Errors)
			}
			if ctx.Output != "" {
				t.Errorf("failed translation must not emit")
			}
		})
	}
}

func TestReportInternalFailureNamesUnit(t *testing.T) {
	ctx := pipeline.NewContext("unit.mlc", "", manifest.Default())
	ctx.Errors = append(ctx.Errors, diagnostics.NewError(diagnostics.ErrX003, token.Token{}, "tuple"))

	var buf bytes.Buffer
	reportErrors(&buf, ctx)
	if !strings.Contains(buf.String(), ctx.UnitID) {
		t.Errorf("internal failure report should name unit %s, got %q", ctx.UnitID, buf.String())
	}
}

func TestReportUserRejectionOmitsUnit(t *testing.T) {
	ctx := pipeline.NewContext("unit.mlc", "", manifest.Default())
	ctx.Errors = append(ctx.Errors, diagnostics.NewError(diagnostics.ErrS001, token.Token{}, "nope"))

	var buf bytes.Buffer
	reportErrors(&buf, ctx)
	if strings.Contains(buf.String(), ctx.UnitID) {
		t.Errorf("user rejections should not carry the unit id, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "nope") {
		t.Errorf("rejection text missing from %q", buf.String())
	}
}

func TestParseArgs(t *testing.T) {
	opts, err := ParseArgs([]string{"purelift", "--manifest", "fx.yaml", "-o", "out.v", "prog.mlc"})
	if err != nil {
		t.Fatalf("ParseArgs failed: %s", err)
	}
	if opts.SourcePath != "prog.mlc" || opts.ManifestPath != "fx.yaml" || opts.OutputPath != "out.v" {
		t.Errorf("options = %+v", opts)
	}

	opts, err = ParseArgs([]string{"purelift", "--check", "--print-effects", "prog.mlc"})
	if err != nil {
		t.Fatalf("ParseArgs failed: %s", err)
	}
	if !opts.CheckOnly || !opts.PrintEffects {
		t.Errorf("flags lost: %+v", opts)
	}
}

func TestParseArgsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"No Source", []string{"purelift"}},
		{"Wrong Extension", []string{"purelift", "prog.txt"}},
		{"Unknown Flag", []string{"purelift", "--frobnicate", "prog.mlc"}},
		{"Two Sources", []string{"purelift", "a.mlc", "b.mlc"}},
		{"Dangling Output Flag", []string{"purelift", "prog.mlc", "-o"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseArgs(tt.args); err == nil {
				t.Errorf("ParseArgs(%v) should fail", tt.args)
			}
		})
	}
}
