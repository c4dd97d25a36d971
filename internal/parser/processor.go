package parser

import (
	"github.com/funvibe/gl/internal/pipeline"
)

type ParserProcessor struct {
	// MaxDepth overrides the default nesting limit when positive.
	MaxDepth int
}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() {
		return ctx
	}

	parser := New(ctx.Tokens, ctx)
	parser.SetMaxDepth(pp.MaxDepth)
	module := parser.ParseProgram()
	if module == nil {
		return ctx
	}
	module.File = ctx.FilePath
	ctx.AstRoot = module
	return ctx
}
