package pipeline

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Stages keep running after errors so later
// ones can add their own diagnostics; each stage skips itself when its
// input is missing. A check-only run ends as soon as the root effect is
// known, before any rewriting or emission.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		if ctx.CheckOnly && ctx.RootEffect != nil {
			break
		}
	}
	return ctx
}
