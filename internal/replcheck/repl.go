// Package replcheck is a small interactive front-end to the checker:
// `:type <expr>` infers and prints one expression's type, `:check
// <file>` runs a full file through the parser and checker. There is
// no evaluator in this compiler (spec.md's core stops at the typed
// AST), so unlike the teacher's REPL this one never runs a program -
// it only ever reports what the checker would decide about it.
package replcheck

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/forestlang/tree/internal/checker"
	"github.com/forestlang/tree/internal/lexer"
	"github.com/forestlang/tree/internal/parser"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// REPL is a line-editing front-end over the checker.
type REPL struct {
	history []string
}

// New creates a REPL with no history.
func New() *REPL {
	return &REPL{}
}

// Start runs the read-eval-print loop, reading lines from the terminal
// through liner and writing to out, until EOF or a :quit command.
func (r *REPL) Start(out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(true)

	historyFile := filepath.Join(os.TempDir(), ".tree_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	line.SetCompleter(func(input string) (c []string) {
		if strings.HasPrefix(input, ":") {
			for _, cmd := range []string{":type ", ":check ", ":help", ":quit"} {
				if strings.HasPrefix(cmd, input) {
					c = append(c, cmd)
				}
			}
		}
		return
	})

	fmt.Fprintf(out, "%s\n", bold("tree repl"))
	fmt.Fprintln(out, dim("Type :help for help, :quit to exit"))

	for {
		input, err := line.Prompt("tree> ")
		if err == io.EOF {
			fmt.Fprintln(out, green("Goodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		r.history = append(r.history, input)

		if input == ":quit" || input == ":q" {
			fmt.Fprintln(out, green("Goodbye!"))
			break
		}

		r.handle(input, out)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

func (r *REPL) handle(input string, out io.Writer) {
	switch {
	case input == ":help":
		r.printHelp(out)
	case strings.HasPrefix(input, ":type "):
		r.handleType(strings.TrimPrefix(input, ":type "), out)
	case strings.HasPrefix(input, ":check "):
		r.handleCheck(strings.TrimPrefix(input, ":check "), out)
	default:
		fmt.Fprintf(out, "%s: unknown command %q (try :help)\n", red("Error"), input)
	}
}

func (r *REPL) printHelp(out io.Writer) {
	fmt.Fprintln(out, "  :type <expr>   infer and print an expression's type")
	fmt.Fprintln(out, "  :check <file>  type-check a .tree file")
	fmt.Fprintln(out, "  :quit          exit")
}

func (r *REPL) handleType(src string, out io.Writer) {
	p := parser.New(lexer.New(src, "<repl>"), "<repl>")
	expr := p.ParseExpression()
	if len(p.Errors()) > 0 {
		printParseErrors(p.Errors(), out)
		return
	}

	typed, cerr := checker.InferStandaloneExpression(expr)
	if cerr != nil {
		fmt.Fprintf(out, "%s: %s\n", red(cerr.Construct.String()), cerr.Message)
		return
	}
	fmt.Fprintf(out, "%s\n", cyan(typed.Type().String()))
}

func (r *REPL) handleCheck(path string, out io.Writer) {
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
		return
	}

	p := parser.New(lexer.New(string(content), path), path)
	mod := p.Parse()
	if len(p.Errors()) > 0 {
		printParseErrors(p.Errors(), out)
		return
	}

	typed, errs := checker.CheckModuleWithLineInformation(mod, p.LineInformation())
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(out, "%s: %s\n", red(e.Construct.String()), e.Message)
		}
		return
	}

	fmt.Fprintf(out, "%s %d declaration(s) checked\n", green("✓"), len(typed.Declarations))
}

func printParseErrors(errs []error, out io.Writer) {
	for _, e := range errs {
		fmt.Fprintf(out, "%s: %v\n", red("ParseError"), e)
	}
}
