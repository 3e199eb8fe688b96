package rewrite

import (
	"github.com/funvibe/purelift/internal/pipeline"
)

type RewriteProcessor struct{}

func (rp *RewriteProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.IrRoot == nil || ctx.Shadow == nil || len(ctx.Errors) > 0 {
		return ctx
	}
	out, _, err := Rewrite(NewFresh(), ctx.IrRoot, ctx.Shadow)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.Rewritten = out
	return ctx
}
