package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"

	"github.com/forestlang/tree/internal/ast"
	"github.com/forestlang/tree/internal/checker"
	"github.com/forestlang/tree/internal/emitter"
	treeerrors "github.com/forestlang/tree/internal/errors"
	"github.com/forestlang/tree/internal/lexer"
	"github.com/forestlang/tree/internal/manifest"
	"github.com/forestlang/tree/internal/parser"
	"github.com/forestlang/tree/internal/replcheck"
)

var (
	// Version info - set by ldflags during build.
	Version = "dev"
	Commit  = "unknown"

	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "Print version information")
		helpFlag    = flag.Bool("help", false, "Show help")
		outFlag     = flag.String("o", "", "Output path for build (overrides the manifest's or file's default out path)")
		jsonFlag    = flag.Bool("json", false, "Emit check diagnostics as newline-delimited JSON reports")
	)

	flag.Parse()

	if *versionFlag {
		printVersion()
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	command := flag.Arg(0)

	switch command {
	case "check":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing file argument\n", red("Error"))
			fmt.Println("Usage: tree check <file.tree>")
			os.Exit(1)
		}
		checkFile(flag.Arg(1), *jsonFlag)

	case "build":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing file or manifest argument\n", red("Error"))
			fmt.Println("Usage: tree [-o out.wat] build <file.tree|manifest.yaml>")
			os.Exit(1)
		}
		buildTarget(flag.Arg(1), *outFlag)

	case "watch":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing file argument\n", red("Error"))
			fmt.Println("Usage: tree watch <file.tree>")
			os.Exit(1)
		}
		watchFile(flag.Arg(1))

	case "repl":
		replcheck.New().Start(os.Stdout)

	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command '%s'\n", red("Error"), command)
		printHelp()
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("tree %s\n", bold(Version))
	if Commit != "unknown" {
		fmt.Printf("Commit: %s\n", Commit)
	}
}

func printHelp() {
	fmt.Println(bold("tree - the Forest compiler"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  tree <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Printf("  %s <file>              type-check a file, report errors, exit\n", cyan("check"))
	fmt.Printf("  %s <file|manifest>     compile to WebAssembly text\n", cyan("build"))
	fmt.Printf("  %s <file>              rebuild a file on every save\n", cyan("watch"))
	fmt.Printf("  %s                     start the interactive type-checking REPL\n", cyan("repl"))
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  --version        print version information")
	fmt.Println("  --help           show this help message")
	fmt.Println("  -o <path>        output path for build")
	fmt.Println("  -json            emit check diagnostics as newline-delimited JSON reports")
}

func checkFile(path string, asJSON bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read file '%s': %v\n", red("Error"), path, err)
		os.Exit(1)
	}

	p := parser.New(lexer.New(string(content), path), path)
	mod := p.Parse()
	if len(p.Errors()) > 0 {
		if asJSON {
			printJSONReports(parseErrorReports(p.Errors()))
		} else {
			printParseErrors(p.Errors())
		}
		os.Exit(1)
	}

	_, errs := checker.CheckModuleWithLineInformation(mod, p.LineInformation())
	if len(errs) > 0 {
		if asJSON {
			printJSONReports(checkErrorReports(errs))
		} else {
			printCheckErrors(errs)
		}
		os.Exit(1)
	}

	if asJSON {
		fmt.Println(`{"schema":"tree.error/v1","status":"ok"}`)
	} else {
		fmt.Printf("%s %s: no errors found\n", green("✓"), path)
	}
}

// parseErrorReports wraps raw parser errors (which carry no stable
// code) as generic reports, so -json has something to marshal even
// before a file reaches the checker.
func parseErrorReports(errs []error) []*treeerrors.Report {
	reports := make([]*treeerrors.Report, len(errs))
	for i, err := range errs {
		reports[i] = treeerrors.NewGeneric("parser", err)
	}
	return reports
}

func checkErrorReports(errs []*checker.CompileError) []*treeerrors.Report {
	reports := make([]*treeerrors.Report, len(errs))
	for i, e := range errs {
		reports[i] = e.ToReport()
	}
	return reports
}

// printJSONReports writes one compact JSON report per line, so a
// caller can stream and filter diagnostics without parsing an array.
func printJSONReports(reports []*treeerrors.Report) {
	for _, r := range reports {
		s, err := r.ToJSON(true)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			continue
		}
		fmt.Println(s)
	}
}

// buildTarget compiles target (a single .tree file or a project
// manifest) to WebAssembly text.
func buildTarget(target, outOverride string) {
	sources, out, exports := resolveTarget(target, outOverride)

	combined := &ast.Module{}
	var lines *ast.LineInformation
	for i, src := range sources {
		content, err := os.ReadFile(src)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: cannot read file '%s': %v\n", red("Error"), src, err)
			os.Exit(1)
		}
		p := parser.New(lexer.New(string(content), src), src)
		m := p.Parse()
		if len(p.Errors()) > 0 {
			printParseErrors(p.Errors())
			os.Exit(1)
		}
		combined.TopLevels = append(combined.TopLevels, m.TopLevels...)
		if i == 0 {
			lines = p.LineInformation()
		}
	}

	typed, errs := checker.CheckModuleWithLineInformation(combined, lines)
	if len(errs) > 0 {
		printCheckErrors(errs)
		os.Exit(1)
	}

	if len(exports) > 0 {
		declared := make(map[string]bool, len(typed.Declarations))
		for _, d := range typed.Declarations {
			declared[d.Name] = true
		}
		if missing := missingExports(exports, declared); len(missing) > 0 {
			fmt.Fprintf(os.Stderr, "%s: missing exports: %v\n", red("Error"), missing)
			os.Exit(1)
		}
	}

	wat, err := emitter.Emit(typed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}

	if err := os.WriteFile(out, []byte(wat), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot write '%s': %v\n", red("Error"), out, err)
		os.Exit(1)
	}
	fmt.Printf("%s wrote %s\n", green("✓"), out)
}

func missingExports(exports []string, declared map[string]bool) []string {
	var missing []string
	for _, e := range exports {
		if !declared[e] {
			missing = append(missing, e)
		}
	}
	return missing
}

// resolveTarget distinguishes a project manifest (.yaml/.yml) from a
// bare .tree source, returning the ordered list of files to parse,
// the output path to write to, and (for a manifest) the declarations
// a successful build must export.
func resolveTarget(target, outOverride string) (sources []string, out string, exports []string) {
	switch filepathExt(target) {
	case ".yaml", ".yml":
		m, err := manifest.Load(target)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			os.Exit(1)
		}
		out = m.OutPath()
		if outOverride != "" {
			out = outOverride
		}
		return m.SourcePaths(), out, m.Exports
	default:
		out = outOverride
		if out == "" {
			out = withSuffix(target, ".wat")
		}
		return []string{target}, out, nil
	}
}

// watchFile rebuilds path on every write, using fsnotify so the
// compiler never needs to poll the filesystem.
func watchFile(path string) {
	fmt.Printf("%s watching %s for changes (ctrl-c to stop)\n", cyan("→"), path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}

	buildOnce := func() {
		buildTarget(path, withSuffix(path, ".wat"))
	}
	buildOnce()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				buildOnce()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		}
	}
}

func printParseErrors(errs []error) {
	fmt.Fprintf(os.Stderr, "%s parser errors:\n", red("Error"))
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "  %s %v\n", red("•"), err)
	}
}

func printCheckErrors(errs []*checker.CompileError) {
	fmt.Fprintf(os.Stderr, "%s type errors:\n", red("Error"))
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "  %s [%s] %s\n", red("•"), e.Construct, e.Message)
	}
}

func filepathExt(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[i:]
		}
		if path[i] == '/' {
			break
		}
	}
	return ""
}

func withSuffix(path, suffix string) string {
	ext := filepathExt(path)
	if ext == "" {
		return path + suffix
	}
	return path[:len(path)-len(ext)] + suffix
}
