package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/gl/internal/config"
	"github.com/funvibe/gl/internal/diagnostics"
	gl "github.com/funvibe/gl/pkg/embed"
)

const appName = "gl"

func main() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	log.SetFlags(0)
	log.SetOutput(os.Stderr)
	log.SetPrefix(appName + ": ")

	if os.Getenv("GL_TEST_MODE") == "1" {
		config.IsTestMode = true
	}

	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "-e":
		os.Exit(cmdEval(os.Args[2:]))
	case "fmt":
		os.Exit(cmdFmt(os.Args[2:]))
	case "infer":
		os.Exit(cmdInfer(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "-h", "--help", "help":
		usage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage(os.Stderr)
		os.Exit(2)
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `Usage:
  %s run <file%s>                    Run a script.
  %s -e <source>                     Evaluate source and print the last value.
  %s fmt [-w] [-check] <file> ...    Print, rewrite or check canonical formatting.
  %s infer [-format text|yaml] <file>  Print inferred types of top-level names.
  %s repl                            Start the REPL.
`, appName, config.SourceFileExt, appName, appName, appName, appName)
}

// loadConfig discovers gl.yaml above dir. Failures are reported and fatal.
func loadConfig(dir string) (*config.Config, bool) {
	cfg, path, err := config.Discover(dir)
	if err != nil {
		log.Printf("config: %v", err)
		return nil, false
	}
	if path != "" && os.Getenv("DEBUG") == "1" {
		log.Printf("using config %s", path)
	}
	return cfg, true
}

// newInterpreter builds an interpreter with the standard host bindings
// writing to stdout.
func newInterpreter(cfg *config.Config) *gl.Interpreter {
	return gl.New(
		gl.WithConfig(cfg),
		gl.WithStdHost(os.Stdout),
	)
}

// useColor reports whether diagnostics on f should be colored.
func useColor(cfg *config.Config, f *os.File) bool {
	switch cfg.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

// reportError prints err to stderr, coloring the headline of a diagnostic.
func reportError(cfg *config.Config, err error) {
	color := useColor(cfg, os.Stderr)
	var diag *diagnostics.DiagnosticError
	if errors.As(err, &diag) && color {
		head := *diag
		head.Trace = nil
		fmt.Fprintln(os.Stderr, red(head.Error()))
		for _, frame := range diag.Trace {
			fmt.Fprintln(os.Stderr, "  "+frame)
		}
		return
	}
	if color {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return
	}
	fmt.Fprintln(os.Stderr, err.Error())
}

// dirOf is the directory config discovery starts from for path.
func dirOf(path string) string {
	if path == "" {
		return "."
	}
	return filepath.Dir(path)
}
