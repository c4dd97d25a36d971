package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/funvibe/gl/internal/prettyprinter"
)

func cmdFmt(args []string) int {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	write := fs.Bool("w", false, "write result to the source file instead of stdout")
	check := fs.Bool("check", false, "list files whose formatting differs; exit 1 if any")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	paths := fs.Args()
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s fmt [-w] [-check] <file> ...\n", appName)
		return 2
	}

	cfg, ok := loadConfig(dirOf(paths[0]))
	if !ok {
		return 1
	}

	status := 0
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			reportError(cfg, err)
			status = 1
			continue
		}
		out, err := prettyprinter.Format(string(src))
		if err != nil {
			reportError(cfg, fmt.Errorf("%s: %w", path, err))
			status = 1
			continue
		}

		switch {
		case *check:
			if out != string(src) {
				fmt.Println(path)
				status = 1
			}
		case *write:
			if out == string(src) {
				continue
			}
			if err := os.WriteFile(path, []byte(out), 0644); err != nil {
				reportError(cfg, err)
				status = 1
			}
		default:
			fmt.Print(out)
		}
	}
	return status
}
