package emitter

import (
	"github.com/funvibe/purelift/internal/pipeline"
)

type EmitProcessor struct{}

func (ep *EmitProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Rewritten == nil || len(ctx.Errors) > 0 {
		return ctx
	}
	ctx.Output = Emit(ctx.Rewritten)
	return ctx
}
