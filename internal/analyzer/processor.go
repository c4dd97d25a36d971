package analyzer

import (
	"github.com/funvibe/gl/internal/lexer"
	"github.com/funvibe/gl/internal/parser"
	"github.com/funvibe/gl/internal/pipeline"
)

// InferenceProcessor runs type inference over the parsed module and stores
// a *Report in ctx.Report. Inference never fails on its own.
type InferenceProcessor struct{}

func (ip *InferenceProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || ctx.Failed() {
		return ctx
	}
	root := NewInferencer().InferModule(ctx.AstRoot)
	ctx.Report = NewReport(root)
	return ctx
}

// Infer lexes, parses and infers src.
func Infer(src string) (*Report, error) {
	ctx := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&InferenceProcessor{},
	).Run(pipeline.NewPipelineContext(src))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ctx.Report.(*Report), nil
}
