package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/funvibe/gl/internal/analyzer"
)

func cmdInfer(args []string) int {
	fs := flag.NewFlagSet("infer", flag.ContinueOnError)
	format := fs.String("format", "text", "output format: text or yaml")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 || (*format != "text" && *format != "yaml") {
		fmt.Fprintf(os.Stderr, "usage: %s infer [-format text|yaml] <file>\n", appName)
		return 2
	}
	path := fs.Arg(0)

	cfg, ok := loadConfig(dirOf(path))
	if !ok {
		return 1
	}

	src, err := os.ReadFile(path)
	if err != nil {
		reportError(cfg, err)
		return 1
	}
	report, err := analyzer.Infer(string(src))
	if err != nil {
		reportError(cfg, fmt.Errorf("%s: %w", path, err))
		return 1
	}

	if *format == "yaml" {
		out, err := report.YAML()
		if err != nil {
			reportError(cfg, err)
			return 1
		}
		fmt.Print(out)
		return 0
	}
	fmt.Print(report.Text())
	return 0
}
