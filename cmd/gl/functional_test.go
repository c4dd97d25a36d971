package main

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/gl/internal/config"
)

// buildBinary compiles the gl command into a temporary directory.
func buildBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping binary tests in short mode")
	}
	binaryPath := filepath.Join(t.TempDir(), "gl-test-binary")
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build binary: %v\n%s", err, output)
	}
	return binaryPath
}

// runBinary runs the binary in dir in test mode and returns stdout, stderr
// and the exit code.
func runBinary(t *testing.T, binaryPath, dir string, args ...string) (string, string, int) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GL_TEST_MODE=1")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	code := 0
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	} else if err != nil {
		t.Fatalf("running %v: %v", args, err)
	}
	return stdout.String(), stderr.String(), code
}

// TestFunctional runs every script in testdata that has a .want file and
// compares stdout followed by stderr with it.
func TestFunctional(t *testing.T) {
	binaryPath := buildBinary(t)
	dir, err := filepath.Abs("testdata")
	if err != nil {
		t.Fatal(err)
	}

	scripts, err := filepath.Glob(filepath.Join(dir, "*"+config.SourceFileExt))
	if err != nil {
		t.Fatal(err)
	}
	if len(scripts) == 0 {
		t.Skip("No test files found")
	}

	for _, script := range scripts {
		name := filepath.Base(script)
		wantFile := strings.TrimSuffix(script, config.SourceFileExt) + ".want"
		wantBytes, err := os.ReadFile(wantFile)
		if err != nil {
			continue
		}

		t.Run(strings.TrimSuffix(name, config.SourceFileExt), func(t *testing.T) {
			stdout, stderr, _ := runBinary(t, binaryPath, dir, "run", name)

			var parts []string
			if s := strings.TrimSpace(stdout); s != "" {
				parts = append(parts, s)
			}
			if s := strings.TrimSpace(stderr); s != "" {
				parts = append(parts, s)
			}
			got := strings.Join(parts, "\n")
			want := strings.TrimSpace(strings.ReplaceAll(string(wantBytes), "\r\n", "\n"))

			if got != want {
				t.Errorf("Output mismatch:\n--- want ---\n%s\n--- got ---\n%s", want, got)
			}
		})
	}
}

func TestCommands(t *testing.T) {
	binaryPath := buildBinary(t)
	dir, err := filepath.Abs("testdata")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		args   []string
		stdout string
		code   int
	}{
		{"eval", []string{"-e", "1 + 2 * 3"}, "7\n", 0},
		{"eval null", []string{"-e", "var x = 1"}, "", 0},
		{"eval string", []string{"-e", `"a" + "b"`}, "ab\n", 0},
		{"eval error", []string{"-e", "missing"}, "", 1},
		{"run failure", []string{"run", "runtime_error.gl"}, "[LOG] before\n", 1},
		{"missing file", []string{"run", "nope.gl"}, "", 1},
		{"fmt", []string{"fmt", "messy.gl"}, "var total = (1 + 2) * 3\nlog(total)\n", 0},
		{"fmt check formatted", []string{"fmt", "-check", "closures.gl"}, "", 0},
		{"fmt check messy", []string{"fmt", "-check", "messy.gl"}, "messy.gl\n", 1},
		{"infer", []string{"infer", "types.gl"}, "add: (a: number, b: number) -> number\ngreeting: string\ntotal: number\n", 0},
		{"infer yaml", []string{"infer", "-format", "yaml", "types.gl"}, "", 0},
		{"infer bad format", []string{"infer", "-format", "xml", "types.gl"}, "", 2},
		{"unknown command", []string{"build"}, "", 2},
		{"uuid is stable in test mode", []string{"-e", "uuid() == uuid()"}, "true\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, code := runBinary(t, binaryPath, dir, tt.args...)
			if code != tt.code {
				t.Fatalf("exit code = %d, want %d\nstderr: %s", code, tt.code, stderr)
			}
			if tt.name == "infer yaml" {
				if !strings.Contains(stdout, "name: add") {
					t.Errorf("yaml output missing entry:\n%s", stdout)
				}
				return
			}
			if stdout != tt.stdout {
				t.Errorf("stdout = %q, want %q", stdout, tt.stdout)
			}
		})
	}
}

func TestFmtWrite(t *testing.T) {
	binaryPath := buildBinary(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "w.gl")
	if err := os.WriteFile(path, []byte("var   a=[1,2,]"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, stderr, code := runBinary(t, binaryPath, dir, "fmt", "-w", "w.gl"); code != 0 {
		t.Fatalf("fmt -w failed: %s", stderr)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "var a = [1, 2]\n" {
		t.Errorf("rewritten file = %q", got)
	}
}
