package evaluator_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/funvibe/gl/internal/diagnostics"
	"github.com/funvibe/gl/internal/evaluator"
	"github.com/funvibe/gl/internal/lexer"
	"github.com/funvibe/gl/internal/parser"
	"github.com/funvibe/gl/internal/pipeline"
)

// run evaluates src in a fresh root scope with log writing to the returned
// buffer. It returns the value of the last top-level statement.
func run(t *testing.T, src string) (evaluator.Object, string, *diagnostics.DiagnosticError) {
	t.Helper()
	var out bytes.Buffer
	env := evaluator.NewEnvironment()
	evaluator.RegisterBuiltins(env, &out, "")

	ctx := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&evaluator.EvaluatorProcessor{Env: env},
	).Run(pipeline.NewPipelineContext(src))

	if ctx.Failed() {
		return nil, out.String(), ctx.Errors[0]
	}
	return ctx.Result.(evaluator.Object), out.String(), nil
}

func mustRun(t *testing.T, src string) (evaluator.Object, string) {
	t.Helper()
	result, out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error for %q: %v", src, err)
	}
	return result, out
}

func expectRuntimeError(t *testing.T, src string, code diagnostics.ErrorCode) *diagnostics.DiagnosticError {
	t.Helper()
	_, _, err := run(t, src)
	if err == nil {
		t.Fatalf("expected %s for %q, got no error", code, src)
	}
	if err.Code != code {
		t.Fatalf("expected %s for %q, got %s: %s", code, src, err.Code, err.Message)
	}
	return err
}

func TestExpressions(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"-1 + 2 * 3 - 7", "-2"},
		{"(1 + 2) * 3", "9"},
		{"10 - 2 - 3", "5"},
		{"6 / 3", "2"},
		{"7 / 2", "3.5"},
		{"7 / 2 * 2", "7"},
		{"7 % 3", "1"},
		{"-7 % 3", "-1"},
		{"1 / 0", "Infinity"},
		{"-1 / 0", "-Infinity"},
		{"0 / 0", "NaN"},
		{"5 % 0", "NaN"},
		{"9223372036854775807 + 1", "9.223372036854776e+18"},
		{"9223372036854775807 * 2", "1.8446744073709552e+19"},
		{`"a" + "b"`, "ab"},
		{`"a" + 1`, "a1"},
		{`1 + "a"`, "1a"},
		{`"n: " + null`, "n: null"},
		{`"x" + [1, "b"]`, `x[1, "b"]`},
		{"1 < 2", "true"},
		{"2 <= 1", "false"},
		{`"a" < "b"`, "true"},
		{`"b" >= "b"`, "true"},
		{"1 == 1", "true"},
		{`1 == "1"`, "false"},
		{"6 / 4 == 3 / 2", "true"},
		{"2 == 4 / 2", "true"},
		{"null == null", "true"},
		{"true != false", "true"},
		{"[1] == [1]", "false"},
		{`"héllo".length`, "5"},
		{`"abc"[1]`, "b"},
		{`"abc"[10]`, "null"},
		{"[1, 2][5]", "null"},
		{"[1, 2][-1]", "null"},
		{`[1, "a", [true, null]]`, `[1, "a", [true, null]]`},
		{"[1, 2, 3].length", "3"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, _ := mustRun(t, tt.input)
			if got := result.Inspect(); got != tt.expected {
				t.Errorf("%s = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diagnostics.ErrorCode
	}{
		{"undefined name", "missing + 1", diagnostics.ErrR001},
		{"assign undeclared", "missing = 1", diagnostics.ErrR001},
		{"redeclare", "var a = 1\nvar a = 2", diagnostics.ErrR002},
		{"redeclare const", "const a = 1\ncon a = 2", diagnostics.ErrR002},
		{"param redeclared", "function f(a) { var a = 1 }\nf(2)", diagnostics.ErrR002},
		{"compare mixed", `1 < "a"`, diagnostics.ErrR003},
		{"compare arrays", "[1] < [2]", diagnostics.ErrR003},
		{"subtract string", `1 - "a"`, diagnostics.ErrR003},
		{"multiply null", "null * 2", diagnostics.ErrR003},
		{"non-boolean test", "if (1) { }", diagnostics.ErrR003},
		{"null test", "if (null) { } else { }", diagnostics.ErrR003},
		{"member of null", "null.x", diagnostics.ErrR003},
		{"index number", "var n = 5\nn[0]", diagnostics.ErrR003},
		{"negative write", "var a = []\na[-1] = 1", diagnostics.ErrR003},
		{"huge write", "var a = []\na[9000000000000000000] = 1", diagnostics.ErrR003},
		{"write at length limit", "var a = []\na[16777216] = 1", diagnostics.ErrR003},
		{"call number", "var x = 1\nx()", diagnostics.ErrR004},
		{"call string", `var s = "f"` + "\ns(1)", diagnostics.ErrR004},
		{"call missing member", "var o = {}\no.nope()", diagnostics.ErrR004},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectRuntimeError(t, tt.input, tt.code)
		})
	}
}

func TestErrorPosition(t *testing.T) {
	err := expectRuntimeError(t, "var a = 1\n\n   missing", diagnostics.ErrR001)
	if err.Token.Line != 3 || err.Token.Column != 4 {
		t.Errorf("error at %d:%d, want 3:4", err.Token.Line, err.Token.Column)
	}
	if err.Kind != diagnostics.KindUndefinedVariable {
		t.Errorf("kind = %s, want %s", err.Kind, diagnostics.KindUndefinedVariable)
	}

	err = expectRuntimeError(t, "var a = 1\nvar a = 2", diagnostics.ErrR002)
	if err.Token.Line != 2 || err.Token.Lexeme != "a" {
		t.Errorf("error at %d %q, want line 2 on the name", err.Token.Line, err.Token.Lexeme)
	}

	err = expectRuntimeError(t, "if (\n  1) {}", diagnostics.ErrR003)
	if err.Token.Line != 2 {
		t.Errorf("if error on line %d, want 2 (the test expression)", err.Token.Line)
	}
}

func TestDeclareChecksBeforeEvaluating(t *testing.T) {
	// The second declaration fails before its initializer runs.
	_, out, err := run(t, "var a = 1\nvar a = log(\"side effect\")")
	if err == nil || err.Code != diagnostics.ErrR002 {
		t.Fatalf("expected R002, got %v", err)
	}
	if out != "" {
		t.Errorf("initializer ran: %q", out)
	}
}

func TestClosureCounter(t *testing.T) {
	_, out := mustRun(t, `
function makeCounter() {
    var count = -1
    return function () {
        count = count + 1
        return count
    }
}
var c = makeCounter()
log(c())
log(c())
log(c())
`)
	if out != "0\n1\n2\n" {
		t.Errorf("output = %q, want %q", out, "0\n1\n2\n")
	}
}

func TestIndependentClosures(t *testing.T) {
	_, out := mustRun(t, `
function makeCounter() {
    var count = 0
    function () {
        count = count + 1
        count
    }
}
var a = makeCounter()
var b = makeCounter()
a()
a()
log(a(), b())
`)
	if out != "3 1\n" {
		t.Errorf("output = %q, want %q", out, "3 1\n")
	}
}

func TestScopes(t *testing.T) {
	_, out := mustRun(t, `
var x = 1
function shadow() {
    var x = 2
    return x
}
function write() {
    x = 5
}
log(shadow(), x)
write()
log(x)
var y = 1
if (true) {
    var y = 2
    log(y)
}
log(y)
`)
	want := "2 1\n5\n2\n1\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestFunctionResults(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"last statement", "function f() { 1\n2 }\nf()", "2"},
		{"return is not an early exit", "function f() { return 1\n2 }\nf()", "2"},
		{"bare return", "function f() { return }\nf()", "null"},
		{"declare yields null", "function f() { var a = 1 }\nf()", "null"},
		{"empty body", "function f() { }\nf()", "null"},
		{"if value", "function f(n) { if (n < 0) { \"neg\" } else if (n == 0) { \"zero\" } else { \"pos\" } }\nf(0)", "zero"},
		{"if without else", "function f() { if (false) { 1 } }\nf()", "null"},
		{"missing arguments", "function f(a, b) { return b }\nf(1)", "null"},
		{"recursion", "function fact(n) { if (n < 2) { 1 } else { n * fact(n - 1) } }\nfact(10)", "3628800"},
		{"named expression binds name", "var f = function g() { return 1 }\ng() + f()", "2"},
		{"same name twice", "var f = function f() { return 3 }\nf()", "3"},
		{"inspect", "function add(a, b) { }\nadd", "function add(a, b)"},
		{"inspect anonymous", "var f = function (x) { }\nf", "function(x)"},
		{"const is reassignable", "const k = 1\nk = 2\nk", "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _ := mustRun(t, tt.input)
			if got := result.Inspect(); got != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestExtraArgumentsAreEvaluated(t *testing.T) {
	result, _ := mustRun(t, `
var n = 0
function inc() {
    n = n + 1
    return n
}
function first(a) {
    return a
}
var got = first(inc(), inc())
log(got)
n
`)
	if result.Inspect() != "2" {
		t.Errorf("n = %s, want 2", result.Inspect())
	}
}

func TestObjectsAndArrays(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"member", "var o = {a: 1}\no.a", "1"},
		{"missing member", "var o = {a: 1}\no.b", "null"},
		{"string index", "var o = {a: 1}\no[\"a\"]", "1"},
		{"number index on object", "var o = {\"1\": \"one\"}\no[1]", "one"},
		{"set member", "var o = {}\no.x = 2\no.y = 3\no", "{x: 2, y: 3}"},
		{"set index grows", "var a = []\na[2] = \"x\"\na", `[null, null, "x"]`},
		{"aliasing", "var a = [1]\nvar b = a\nb[0] = 9\na[0]", "9"},
		{"push", "var a = [1]\na.push(2, 3)", "3"},
		{"pop", "var a = [1, 2]\nvar last = a.pop()\nlast + a.length", "3"},
		{"pop empty", "var a = []\na.pop()", "null"},
		{"join default", "[1, null, \"x\"].join()", "1,,x"},
		{"join separator", "[1, 2].join(\"-\")", "1-2"},
		{"self reference", "var a = []\na.push(a)\na", "[[...]]"},
		{"this", "var o = {n: 3, get: function () { return this.n }}\no.get()", "3"},
		{"this through index", "var o = {n: 4, get: function () { return this.n }}\no[\"get\"]()", "4"},
		{"method mutates receiver", "var o = {n: 1, inc: function () { this.n = this.n + 1 }}\no.inc()\no.inc()\no.n", "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _ := mustRun(t, tt.input)
			if got := result.Inspect(); got != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestStackExhaustion(t *testing.T) {
	err := expectRuntimeError(t, "function f() { return f() }\nf()", diagnostics.ErrR005)
	if err.Kind != diagnostics.KindStackExhausted {
		t.Errorf("kind = %s, want %s", err.Kind, diagnostics.KindStackExhausted)
	}
	if len(err.Trace) != 17 {
		t.Fatalf("trace has %d lines, want 16 frames and a summary", len(err.Trace))
	}
	if !strings.HasPrefix(err.Trace[0], "at f (") {
		t.Errorf("innermost frame = %q", err.Trace[0])
	}
	if !strings.HasSuffix(err.Trace[16], "more frames") {
		t.Errorf("last trace line = %q", err.Trace[16])
	}
}

func TestErrorTrace(t *testing.T) {
	err := expectRuntimeError(t, `
function inner() {
    return missing
}
function outer() {
    inner()
}
outer()
`, diagnostics.ErrR001)
	if len(err.Trace) != 2 {
		t.Fatalf("trace = %v, want two frames", err.Trace)
	}
	if !strings.HasPrefix(err.Trace[0], "at inner") || !strings.HasPrefix(err.Trace[1], "at outer") {
		t.Errorf("trace = %v, want inner then outer", err.Trace)
	}
}

func TestLogFormatting(t *testing.T) {
	_, out := mustRun(t, `log("s", 1, 7 / 2, true, null, [1, "x"], {k: "v"})`)
	want := `s 1 3.5 true null [1, "x"] {k: "v"}` + "\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestMaxDepthSetting(t *testing.T) {
	ctx := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&evaluator.EvaluatorProcessor{MaxDepth: 50},
	).Run(pipeline.NewPipelineContext("function f(n) { if (n == 0) { 0 } else { f(n - 1) } }\nf(100)"))
	if !ctx.Failed() || ctx.Errors[0].Code != diagnostics.ErrR005 {
		t.Fatalf("expected R005 with depth 50, got %v", ctx.Err())
	}

	ctx = pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&evaluator.EvaluatorProcessor{MaxDepth: 50},
	).Run(pipeline.NewPipelineContext("function f(n) { if (n == 0) { 0 } else { f(n - 1) } }\nf(3)"))
	if ctx.Failed() {
		t.Fatalf("unexpected error: %v", ctx.Err())
	}
}

func TestBindings(t *testing.T) {
	ctx := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&evaluator.EvaluatorProcessor{Bindings: map[string]evaluator.Object{
			"answer": &evaluator.Integer{Value: 42},
		}},
	).Run(pipeline.NewPipelineContext("answer + 1"))
	if ctx.Failed() {
		t.Fatalf("unexpected error: %v", ctx.Err())
	}
	if got := ctx.Result.(evaluator.Object).Inspect(); got != "43" {
		t.Errorf("result = %s, want 43", got)
	}
}

func TestArrayGrowthLimit(t *testing.T) {
	// A rejected write leaves the array as it was.
	_, out, err := run(t, "var a = [1]\nlog(a.length)\na[20000000] = 1")
	if err == nil || err.Code != diagnostics.ErrR003 {
		t.Fatalf("expected R003, got %v", err)
	}
	if !strings.Contains(err.Message, "maximum array length") {
		t.Errorf("message = %q", err.Message)
	}
	if out != "1\n" {
		t.Errorf("output = %q", out)
	}

	result, _ := mustRun(t, "var a = [1]\na[1000] = 2\na.length")
	if got := result.Inspect(); got != "1001" {
		t.Errorf("length after growth = %s, want 1001", got)
	}
}

func TestNamedFunctionRebinds(t *testing.T) {
	// A function statement replaces an existing binding in the same scope.
	result, _ := mustRun(t, "var f = 1\nfunction f() { 2 }\nf()")
	if got := result.Inspect(); got != "2" {
		t.Errorf("f() = %s, want 2", got)
	}
	expectRuntimeError(t, "function f() { }\nvar f = 1", diagnostics.ErrR002)
}
