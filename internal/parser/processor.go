package parser

import (
	"github.com/funvibe/purelift/internal/lexer"
	"github.com/funvibe/purelift/internal/pipeline"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	p := New(lexer.New(ctx.SourceCode), ctx)
	ctx.AstRoot = p.ParseUnit()
	return ctx
}
