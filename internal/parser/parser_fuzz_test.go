package parser_test

import (
	"testing"

	"github.com/funvibe/gl/internal/lexer"
	"github.com/funvibe/gl/internal/parser"
	"github.com/funvibe/gl/internal/pipeline"
)

// FuzzParser checks that arbitrary input either parses or fails with
// exactly one positioned diagnostic, and never panics.
func FuzzParser(f *testing.F) {
	f.Add("var x = [1, 2")
	f.Add("a[b.c] = 1")
	f.Add("if (x) { } else if (y) { } else { }")
	f.Add("((((((1))))))")

	f.Fuzz(func(t *testing.T, input string) {
		ctx := pipeline.New(
			&lexer.LexerProcessor{},
			&parser.ParserProcessor{MaxDepth: 64},
		).Run(pipeline.NewPipelineContext(input))

		if !ctx.Failed() {
			if ctx.AstRoot == nil {
				t.Fatalf("no AST and no error for %q", input)
			}
			return
		}
		if len(ctx.Errors) != 1 {
			t.Fatalf("got %d errors for %q, want 1", len(ctx.Errors), input)
		}
		if off := ctx.Errors[0].Offset(); off > len(input) {
			t.Errorf("error offset %d past end of input %q", off, input)
		}
	})
}
