package adapter

import (
	"github.com/funvibe/purelift/internal/pipeline"
)

type AdapterProcessor struct{}

func (ap *AdapterProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || len(ctx.Errors) > 0 {
		return ctx
	}
	a := New()
	root := a.Adapt(ctx.AstRoot)
	ctx.Errors = append(ctx.Errors, a.Errors()...)
	if root == nil {
		return ctx
	}
	if err := ScopeCheck(root, ctx.Globals); err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.IrRoot = root
	return ctx
}
