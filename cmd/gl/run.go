package main

import (
	"fmt"
	"os"

	"github.com/funvibe/gl/internal/evaluator"
	gl "github.com/funvibe/gl/pkg/embed"
)

func cmdRun(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file>\n", appName)
		return 2
	}
	path := args[0]

	cfg, ok := loadConfig(dirOf(path))
	if !ok {
		return 1
	}

	src, err := os.ReadFile(path)
	if err != nil {
		reportError(cfg, err)
		return 1
	}

	ip := newInterpreter(cfg)
	if _, err := ip.EvalObject(string(src), path); err != nil {
		reportError(cfg, err)
		return 1
	}
	return 0
}

// cmdEval evaluates its argument and prints the last value unless it is null.
func cmdEval(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s -e <source>\n", appName)
		return 2
	}

	cfg, ok := loadConfig(".")
	if !ok {
		return 1
	}

	ip := newInterpreter(cfg)
	result, err := ip.EvalObject(args[0], gl.EvalFileName)
	if err != nil {
		reportError(cfg, err)
		return 1
	}
	if result != evaluator.NULL {
		fmt.Println(result.Inspect())
	}
	return 0
}
