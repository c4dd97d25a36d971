package gl

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sync"

	"github.com/funvibe/gl/internal/analyzer"
	"github.com/funvibe/gl/internal/config"
	"github.com/funvibe/gl/internal/evaluator"
	"github.com/funvibe/gl/internal/lexer"
	"github.com/funvibe/gl/internal/parser"
	"github.com/funvibe/gl/internal/pipeline"
	"github.com/funvibe/gl/internal/prettyprinter"
)

// EvalFileName is reported as the file of errors raised by Eval.
const EvalFileName = "<eval>"

// Interpreter wraps a persistent root environment and provides a high-level
// embedding API. Successive Eval calls share the root scope, so a name
// declared by one script is visible to the next. An Interpreter is safe for
// concurrent use: every method that touches the root scope holds the same
// lock, so runs are serialized. A bound Go function must not call back into
// the Interpreter that is running it.
type Interpreter struct {
	mu         sync.Mutex
	env        *evaluator.Environment
	marshaller *Marshaller

	maxDepth       int
	parserMaxDepth int
	logPrefix      string
	stdout         io.Writer
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithStdHost registers the standard host bindings, log and uuid, with log
// writing to w.
func WithStdHost(w io.Writer) Option {
	return func(i *Interpreter) { i.stdout = w }
}

// WithLogPrefix sets the prefix printed by the log binding.
func WithLogPrefix(prefix string) Option {
	return func(i *Interpreter) { i.logPrefix = prefix }
}

// WithMaxDepth bounds evaluator recursion.
func WithMaxDepth(n int) Option {
	return func(i *Interpreter) { i.maxDepth = n }
}

// WithConfig applies the limits and log prefix of cfg.
func WithConfig(cfg *config.Config) Option {
	return func(i *Interpreter) {
		i.maxDepth = cfg.MaxDepth
		i.parserMaxDepth = cfg.ParserMaxDepth
		i.logPrefix = cfg.LogPrefix
	}
}

// New creates a new Interpreter with an empty root scope.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		env:            evaluator.NewEnvironment(),
		marshaller:     NewMarshaller(),
		maxDepth:       config.DefaultMaxDepth,
		parserMaxDepth: config.DefaultParserMaxDepth,
		logPrefix:      config.DefaultLogPrefix,
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.stdout != nil {
		evaluator.RegisterBuiltins(i.env, i.stdout, i.logPrefix)
	}
	return i
}

// configure installs the host handlers on an evaluator before a run.
func (i *Interpreter) configure(ev *evaluator.Evaluator) {
	ev.MaxDepth = i.maxDepth
	ev.HostCallHandler = i.hostCallHandler
	ev.HostToValueHandler = i.marshaller.ToValue
	ev.HostFromValueHandler = i.marshaller.FromValueOf
}

func (i *Interpreter) hostCallHandler(fn reflect.Value, args []evaluator.Object) (evaluator.Object, error) {
	// Convert args from gl to Go
	fnType := fn.Type()
	numIn := fnType.NumIn()
	isVariadic := fnType.IsVariadic()

	// Check arg count
	if isVariadic {
		if len(args) < numIn-1 {
			return nil, fmt.Errorf("expected at least %d arguments, got %d", numIn-1, len(args))
		}
	} else if len(args) != numIn {
		return nil, fmt.Errorf("expected %d arguments, got %d", numIn, len(args))
	}

	goArgs := make([]reflect.Value, len(args))
	for n, arg := range args {
		// Determine target type
		var targetType reflect.Type
		if isVariadic && n >= numIn-1 {
			targetType = fnType.In(numIn - 1).Elem()
		} else {
			targetType = fnType.In(n)
		}

		val, err := i.marshaller.FromValueOf(arg, targetType)
		if err != nil {
			return nil, fmt.Errorf("argument %d conversion failed: %w", n, err)
		}
		goArgs[n] = val
	}

	results := fn.Call(goArgs)

	// A trailing error result is reported, not returned.
	if k := len(results); k > 0 && fnType.Out(k-1) == errorType {
		if err, _ := results[k-1].Interface().(error); err != nil {
			return nil, err
		}
		results = results[:k-1]
	}

	switch len(results) {
	case 0:
		return evaluator.NULL, nil
	case 1:
		return i.marshaller.ToValue(results[0].Interface())
	}
	// Multiple returns -> Array
	elements := make([]evaluator.Object, len(results))
	for n, res := range results {
		val, err := i.marshaller.ToValue(res.Interface())
		if err != nil {
			return nil, err
		}
		elements[n] = val
	}
	return &evaluator.Array{Elements: elements}, nil
}

// Bind declares a Go function or value in the root scope. Functions become
// callable builtins named name; pointers and structs become host objects.
func (i *Interpreter) Bind(name string, val interface{}) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	obj, err := i.marshaller.ToValue(val)
	if err != nil {
		return fmt.Errorf("binding %s: %w", name, err)
	}
	if b, ok := obj.(*evaluator.Builtin); ok && reflect.TypeOf(val).Kind() == reflect.Func {
		b.Name = name
	}
	i.env.Declare(name, obj)
	return nil
}

// Set assigns a value to an existing root binding, declaring it when it
// does not exist yet.
func (i *Interpreter) Set(name string, val interface{}) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	obj, err := i.marshaller.ToValue(val)
	if err != nil {
		return fmt.Errorf("setting %s: %w", name, err)
	}
	if !i.env.Set(name, obj) {
		i.env.Declare(name, obj)
	}
	return nil
}

// Get retrieves a root binding converted to a Go value.
func (i *Interpreter) Get(name string) (interface{}, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	obj, ok := i.env.Get(name)
	if !ok {
		return nil, fmt.Errorf("variable '%s' not found", name)
	}
	return i.marshaller.FromValue(obj, nil)
}

// Call calls a function defined in gl (or bound from Go) by name.
func (i *Interpreter) Call(funcName string, args ...interface{}) (interface{}, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	fnObj, ok := i.env.Get(funcName)
	if !ok {
		return nil, fmt.Errorf("function '%s' not found", funcName)
	}

	glArgs := make([]evaluator.Object, len(args))
	for n, arg := range args {
		obj, err := i.marshaller.ToValue(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", n, err)
		}
		glArgs[n] = obj
	}

	ev := evaluator.New()
	i.configure(ev)
	result := ev.ApplyFunction(fnObj, glArgs...)
	if err, ok := result.(*evaluator.Error); ok {
		return nil, err.Diagnostic("")
	}
	return i.marshaller.FromValue(result, nil)
}

// Eval executes gl source and returns the value of its last statement.
func (i *Interpreter) Eval(code string) (interface{}, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	result, err := i.run(code, EvalFileName)
	if err != nil {
		return nil, err
	}
	return i.marshaller.FromValue(result, nil)
}

// EvalFile reads and executes a source file.
func (i *Interpreter) EvalFile(path string) (interface{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	result, err := i.run(string(content), path)
	if err != nil {
		return nil, err
	}
	return i.marshaller.FromValue(result, nil)
}

// EvalObject executes code attributed to file and returns the unconverted
// value of its last statement.
func (i *Interpreter) EvalObject(code, file string) (evaluator.Object, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.run(code, file)
}

// run executes code in the root scope. The caller holds i.mu.
func (i *Interpreter) run(code, file string) (evaluator.Object, error) {
	ctx := pipeline.NewPipelineContext(code)
	ctx.FilePath = file

	ctx = pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{MaxDepth: i.parserMaxDepth},
		&evaluator.EvaluatorProcessor{
			Env:       i.env,
			MaxDepth:  i.maxDepth,
			Configure: i.configure,
		},
	).Run(ctx)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result, ok := ctx.Result.(evaluator.Object)
	if !ok {
		return evaluator.NULL, nil
	}
	return result, nil
}

// Format returns code in canonical form.
func (i *Interpreter) Format(code string) (string, error) {
	return prettyprinter.Format(code)
}

// Infer runs the best-effort type inference over code.
func (i *Interpreter) Infer(code string) (*analyzer.Report, error) {
	return analyzer.Infer(code)
}
