package prettyprinter

import (
	"github.com/funvibe/gl/internal/lexer"
	"github.com/funvibe/gl/internal/parser"
	"github.com/funvibe/gl/internal/pipeline"
)

// FormatterProcessor renders the parsed module into ctx.Formatted.
type FormatterProcessor struct{}

func (fp *FormatterProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || ctx.Failed() {
		return ctx
	}
	ctx.Formatted = Print(ctx.AstRoot)
	return ctx
}

// Format re-lexes and re-parses src and returns it in canonical form. On a
// lex or parse failure the error is returned and nothing is formatted.
func Format(src string) (string, error) {
	ctx := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&FormatterProcessor{},
	).Run(pipeline.NewPipelineContext(src))
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return ctx.Formatted, nil
}
