package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/funvibe/gl/internal/config"
	"github.com/funvibe/gl/internal/evaluator"
	"github.com/funvibe/gl/internal/lexer"
	"github.com/funvibe/gl/internal/parser"
	"github.com/funvibe/gl/internal/pipeline"
	"github.com/funvibe/gl/internal/token"
)

const (
	promptMain = "gl> "
	promptCont = "... "
	replFile   = "<repl>"
	banner     = "gl REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit."
)

func cmdRepl(_ []string) int {
	cfg, ok := loadConfig(".")
	if !ok {
		return 1
	}
	color := useColor(cfg, os.Stdout)
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := cfg.HistoryPath(home)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		if _, err := ln.ReadHistory(f); err != nil {
			log.Printf("reading history: %v", err)
		}
		_ = f.Close()
	}
	defer func() {
		f, err := os.Create(histPath)
		if err != nil {
			log.Printf("saving history: %v", err)
			return
		}
		if _, err := ln.WriteHistory(f); err != nil {
			log.Printf("saving history: %v", err)
		}
		_ = f.Close()
	}()

	// One interpreter for the session, so declarations persist.
	ip := newInterpreter(cfg)

	for {
		code, ok := readInput(ln)
		if !ok {
			fmt.Println()
			break
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit", ":q":
				return 0
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		result, err := ip.EvalObject(code, replFile)
		if err != nil {
			reportError(cfg, err)
			continue
		}
		if result == evaluator.NULL {
			continue
		}
		if color {
			fmt.Println(blue(result.Inspect()))
		} else {
			fmt.Println(result.Inspect())
		}
	}
	return 0
}

// readInput reads lines until they form a complete program or a parse
// error that more input cannot fix. It returns false on end of input.
func readInput(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			log.Printf("reading input: %v", err)
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !incomplete(b.String()) {
			return b.String(), true
		}
	}
}

// incomplete reports whether src fails to parse only because it ends too
// early, as with an unclosed block or bracket.
func incomplete(src string) bool {
	ctx := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{MaxDepth: config.DefaultParserMaxDepth},
	).Run(pipeline.NewPipelineContext(src))
	if !ctx.Failed() {
		return false
	}
	return ctx.Errors[0].Token.Type == token.EOF
}
