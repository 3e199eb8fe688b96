package pipeline

import (
	"github.com/google/uuid"

	"github.com/funvibe/purelift/internal/ast"
	"github.com/funvibe/purelift/internal/diagnostics"
	"github.com/funvibe/purelift/internal/effects"
	"github.com/funvibe/purelift/internal/ir"
)

// Processor is a single pipeline stage. It reads and extends the shared
// context; it never mutates the trees already stored there.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries one translation unit through the stages:
// parse, adapt, infer, rewrite, emit.
type PipelineContext struct {
	// UnitID tags every internal-consistency diagnostic so a failing
	// unit can be correlated across logs.
	UnitID string

	SourcePath string
	SourceCode string

	// Globals is the seed effect environment for external primitives,
	// loaded from the effect manifest.
	Globals *effects.Env

	// CheckOnly stops the pipeline after inference (--check).
	CheckOnly bool

	// Stage outputs, in order.
	AstRoot    ast.Expression
	IrRoot     ir.Expr
	Shadow     *effects.Shadow
	RootEffect *effects.Effect
	Rewritten  ir.Expr
	Output     string

	Errors []*diagnostics.DiagnosticError
}

// NewContext builds a context for one translation unit.
func NewContext(sourcePath, sourceCode string, globals *effects.Env) *PipelineContext {
	return &PipelineContext{
		UnitID:     uuid.NewString(),
		SourcePath: sourcePath,
		SourceCode: sourceCode,
		Globals:    globals,
	}
}

// Failed reports whether any stage recorded an error.
func (ctx *PipelineContext) Failed() bool {
	return len(ctx.Errors) > 0
}

// HasInternalError reports whether any recorded diagnostic is an
// internal-consistency failure rather than a user rejection.
func (ctx *PipelineContext) HasInternalError() bool {
	for _, err := range ctx.Errors {
		if err.Internal() {
			return true
		}
	}
	return false
}
