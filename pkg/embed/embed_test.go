package gl_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/funvibe/gl/internal/config"
	"github.com/funvibe/gl/internal/diagnostics"
	gl "github.com/funvibe/gl/pkg/embed"
)

// User represents a Go struct to be used as a Host Object
type User struct {
	Name  string
	Score int
}

func (u *User) AddScore(points int) {
	u.Score += points
}

func (u *User) GetStatus() string {
	return fmt.Sprintf("User %s has %d points", u.Name, u.Score)
}

func TestEmbedAPI(t *testing.T) {
	vm := gl.New()

	// 1. Bind a simple function
	if err := vm.Bind("double", func(x int) int { return x * 2 }); err != nil {
		t.Fatal(err)
	}

	// 2. Bind a Host Object
	user := &User{Name: "Alice", Score: 10}
	if err := vm.Bind("player", user); err != nil {
		t.Fatal(err)
	}

	// 3. Eval script using bound values
	code := `
	var doubled = double(21)

	// Access field
	var name = player.Name

	// Call method
	player.AddScore(5)
	var status = player.GetStatus()

	var result = [doubled, name, status]
	result
	`

	res, err := vm.Eval(code)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}

	// 4. Verify results
	list, ok := res.([]interface{})
	if !ok {
		t.Fatalf("Expected []interface{} result, got %T", res)
	}
	if len(list) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(list))
	}
	if list[0] != 42 {
		t.Errorf("Expected 42, got %v (%T)", list[0], list[0])
	}
	if list[1] != "Alice" {
		t.Errorf("Expected Alice, got %v", list[1])
	}
	expectedStatus := "User Alice has 15 points"
	if list[2] != expectedStatus {
		t.Errorf("Expected '%s', got '%v'", expectedStatus, list[2])
	}

	// 5. Verify side effect on Go struct
	if user.Score != 15 {
		t.Errorf("Go struct not updated! Score is %d, expected 15", user.Score)
	}
}

func TestHostFieldAssignment(t *testing.T) {
	vm := gl.New()
	user := &User{Name: "Bob"}
	if err := vm.Bind("player", user); err != nil {
		t.Fatal(err)
	}
	if _, err := vm.Eval(`player.Score = 7`); err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if user.Score != 7 {
		t.Errorf("Score = %d, want 7", user.Score)
	}

	_, err := vm.Eval(`player.Score = "seven"`)
	var diag *diagnostics.DiagnosticError
	if !errors.As(err, &diag) || diag.Code != diagnostics.ErrR006 {
		t.Fatalf("expected R006, got %v", err)
	}
}

func TestStatePersistsAcrossEval(t *testing.T) {
	vm := gl.New()
	if _, err := vm.Eval(`var counter = 0`); err != nil {
		t.Fatal(err)
	}
	if _, err := vm.Eval(`counter = counter + 5`); err != nil {
		t.Fatal(err)
	}
	got, err := vm.Get("counter")
	if err != nil {
		t.Fatal(err)
	}
	if got != 5 {
		t.Errorf("counter = %v, want 5", got)
	}

	_, err = vm.Eval(`var counter = 1`)
	var diag *diagnostics.DiagnosticError
	if !errors.As(err, &diag) || diag.Kind != diagnostics.KindAlreadyDeclared {
		t.Fatalf("expected AlreadyDeclared, got %v", err)
	}
}

func TestCallScriptFunction(t *testing.T) {
	vm := gl.New()
	_, err := vm.Eval(`
	function greet(name, punct) {
		return "Hello, " + name + punct
	}
	var add = function (a, b) { return a + b }
	`)
	if err != nil {
		t.Fatal(err)
	}

	got, err := vm.Call("greet", "Ada", "!")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Hello, Ada!" {
		t.Errorf("greet = %v", got)
	}

	got, err = vm.Call("add", 1.5, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got != 3.5 {
		t.Errorf("add = %v (%T)", got, got)
	}

	if _, err := vm.Call("missing"); err == nil {
		t.Error("expected error for missing function")
	}
}

func TestSetAndConversions(t *testing.T) {
	vm := gl.New()
	if err := vm.Set("config", map[string]interface{}{"name": "gl", "tags": []string{"a", "b"}}); err != nil {
		t.Fatal(err)
	}
	res, err := vm.Eval(`[config.name, config.tags.length, config.tags.join("-")]`)
	if err != nil {
		t.Fatal(err)
	}
	list := res.([]interface{})
	if list[0] != "gl" || list[1] != 2 || list[2] != "a-b" {
		t.Errorf("unexpected result %v", list)
	}

	res, err = vm.Eval("var o = {a: 1, b: [true, null]}\no")
	if err != nil {
		t.Fatal(err)
	}
	m, ok := res.(map[string]interface{})
	if !ok {
		t.Fatalf("expected map, got %T", res)
	}
	if m["a"] != 1 {
		t.Errorf("a = %v", m["a"])
	}
	b := m["b"].([]interface{})
	if b[0] != true || b[1] != nil {
		t.Errorf("b = %v", b)
	}
}

func TestHostFunctionErrors(t *testing.T) {
	vm := gl.New()
	_ = vm.Bind("parse", func(s string) (int, error) {
		if s == "" {
			return 0, errors.New("empty input")
		}
		return len(s), nil
	})

	res, err := vm.Eval(`parse("abc")`)
	if err != nil {
		t.Fatal(err)
	}
	if res != 3 {
		t.Errorf("parse = %v", res)
	}

	_, err = vm.Eval(`parse("")`)
	var diag *diagnostics.DiagnosticError
	if !errors.As(err, &diag) || diag.Code != diagnostics.ErrR006 {
		t.Fatalf("expected R006, got %v", err)
	}
	if !strings.Contains(diag.Message, "empty input") {
		t.Errorf("message %q does not mention the host error", diag.Message)
	}

	_, err = vm.Eval(`parse(1, 2)`)
	if !errors.As(err, &diag) || diag.Code != diagnostics.ErrR006 {
		t.Fatalf("expected R006 for arity mismatch, got %v", err)
	}
}

func TestStdHost(t *testing.T) {
	config.IsTestMode = true
	defer func() { config.IsTestMode = false }()

	var out bytes.Buffer
	vm := gl.New(gl.WithStdHost(&out), gl.WithLogPrefix(">"))
	_, err := vm.Eval(`
	var id = uuid()
	log("id", id.length, [1, "x"])
	`)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "> id 36 [1, \"x\"]\n"; got != want {
		t.Errorf("log output %q, want %q", got, want)
	}
}

func TestMaxDepth(t *testing.T) {
	vm := gl.New(gl.WithMaxDepth(200))
	_, err := vm.Eval(`
	function loop(n) { return loop(n + 1) }
	loop(0)
	`)
	var diag *diagnostics.DiagnosticError
	if !errors.As(err, &diag) || diag.Kind != diagnostics.KindStackExhausted {
		t.Fatalf("expected stack exhaustion, got %v", err)
	}
	if len(diag.Trace) == 0 {
		t.Error("expected a stack trace")
	}
}

func TestEvalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main"+config.SourceFileExt)
	code := "var greeting = \"Hello from \" + \"file\"\nundefinedName\n"
	if err := os.WriteFile(path, []byte(code), 0644); err != nil {
		t.Fatal(err)
	}

	vm := gl.New()
	_, err := vm.EvalFile(path)
	var diag *diagnostics.DiagnosticError
	if !errors.As(err, &diag) || diag.Code != diagnostics.ErrR001 {
		t.Fatalf("expected R001, got %v", err)
	}
	if diag.File != path || diag.Token.Line != 2 {
		t.Errorf("error located at %s:%d, want %s:2", diag.File, diag.Token.Line, path)
	}

	// Declarations before the failure are kept.
	res, err := vm.Get("greeting")
	if err != nil {
		t.Fatal(err)
	}
	if res != "Hello from file" {
		t.Errorf("greeting = %v", res)
	}
}

func TestFormatAndInfer(t *testing.T) {
	vm := gl.New()
	out, err := vm.Format("var x=1+2*3")
	if err != nil {
		t.Fatal(err)
	}
	if out != "var x = 1 + 2 * 3\n" {
		t.Errorf("Format = %q", out)
	}

	report, err := vm.Infer(`var s = "a" + 1`)
	if err != nil {
		t.Fatal(err)
	}
	if got := report.Text(); got != "s: string\n" {
		t.Errorf("Infer = %q", got)
	}
}

// Run with -race: readers convert the root scope while scripts mutate it.
func TestConcurrentAccess(t *testing.T) {
	vm := gl.New()
	if _, err := vm.Eval("var a = []\nvar grow = function (n) { a.push(n)\na.length }"); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			for n := 0; n < 50; n++ {
				if _, err := vm.Eval("grow(50)"); err != nil {
					t.Error(err)
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for n := 0; n < 50; n++ {
				if _, err := vm.Get("a"); err != nil {
					t.Error(err)
					return
				}
			}
		}()
		go func(w int) {
			defer wg.Done()
			for n := 0; n < 50; n++ {
				if err := vm.Set(fmt.Sprintf("v%d", w), n); err != nil {
					t.Error(err)
					return
				}
				if _, err := vm.Call("grow", n); err != nil {
					t.Error(err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	got, err := vm.Get("a")
	if err != nil {
		t.Fatal(err)
	}
	if items, ok := got.([]interface{}); !ok || len(items) != 400 {
		t.Errorf("a has %v, want 400 elements", got)
	}
}
