package evaluator

import (
	"path/filepath"

	"github.com/funvibe/gl/internal/pipeline"
)

// EvaluatorProcessor runs the parsed module. The root environment is Env
// when set, so a REPL can keep state across runs; otherwise a fresh root
// is created. Bindings are declared in the root before evaluation.
type EvaluatorProcessor struct {
	Env      *Environment
	Bindings map[string]Object
	MaxDepth int

	// Configure, when set, is called with the evaluator before evaluation.
	Configure func(*Evaluator)
}

func (ep *EvaluatorProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || ctx.Failed() {
		return ctx
	}

	eval := New()
	if ep.MaxDepth > 0 {
		eval.MaxDepth = ep.MaxDepth
	}
	if ctx.FilePath != "" {
		eval.CurrentFile = filepath.Base(ctx.FilePath)
	}
	if ep.Configure != nil {
		ep.Configure(eval)
	}

	env := ep.Env
	if env == nil {
		env = NewEnvironment()
	}
	for name, val := range ep.Bindings {
		env.Declare(name, val)
	}

	result := eval.EvalProgram(ctx.AstRoot, env)
	if err, ok := result.(*Error); ok {
		ctx.AddError(err.Diagnostic(ctx.FilePath))
		return ctx
	}
	ctx.Result = result
	return ctx
}
