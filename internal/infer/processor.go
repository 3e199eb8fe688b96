package infer

import (
	"github.com/funvibe/purelift/internal/pipeline"
)

type InferenceProcessor struct{}

func (ip *InferenceProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.IrRoot == nil || len(ctx.Errors) > 0 {
		return ctx
	}
	shadow, err := New().Infer(ctx.Globals, ctx.IrRoot)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.Shadow = shadow
	ctx.RootEffect = &shadow.Eff
	return ctx
}
