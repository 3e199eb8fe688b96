package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/purelift/internal/adapter"
	"github.com/funvibe/purelift/internal/config"
	"github.com/funvibe/purelift/internal/diagnostics"
	"github.com/funvibe/purelift/internal/effects"
	"github.com/funvibe/purelift/internal/emitter"
	"github.com/funvibe/purelift/internal/infer"
	"github.com/funvibe/purelift/internal/manifest"
	"github.com/funvibe/purelift/internal/parser"
	"github.com/funvibe/purelift/internal/pipeline"
	"github.com/funvibe/purelift/internal/rewrite"
)

// Exit codes: 1 for rejected input, 2 for an internal-consistency
// failure (a bug, not a user error).
const (
	exitRejected = 1
	exitInternal = 2
)

// Options collects everything the command line can set.
type Options struct {
	SourcePath   string
	ManifestPath string
	OutputPath   string // "" or "-" means stdout
	CheckOnly    bool
	PrintEffects bool
}

func printUsage(w io.Writer, prog string) {
	fmt.Fprintf(w, "Usage: %s [options] <file%s>\n", prog, config.SourceFileExt)
	fmt.Fprintf(w, "\nOptions:\n")
	fmt.Fprintf(w, "  -o <file>        write output to <file> instead of stdout\n")
	fmt.Fprintf(w, "  --manifest <f>   load effect signatures from a YAML manifest\n")
	fmt.Fprintf(w, "  --check          infer effects only, emit nothing\n")
	fmt.Fprintf(w, "  --print-effects  print the inferred root effect to stderr\n")
}

// ParseArgs turns an argument vector into Options. The first element is
// the program name.
func ParseArgs(args []string) (Options, error) {
	var opts Options
	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "-o":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("-o requires a file argument")
			}
			opts.OutputPath = args[i+1]
			i++
		case "--manifest":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("--manifest requires a file argument")
			}
			opts.ManifestPath = args[i+1]
			i++
		case "--check":
			opts.CheckOnly = true
		case "--print-effects":
			opts.PrintEffects = true
		case "-h", "--help":
			printUsage(os.Stdout, args[0])
			os.Exit(0)
		default:
			if strings.HasPrefix(args[i], "-") {
				return opts, fmt.Errorf("unknown flag %s", args[i])
			}
			if opts.SourcePath != "" {
				return opts, fmt.Errorf("only one source file per run")
			}
			opts.SourcePath = args[i]
		}
	}
	if opts.SourcePath == "" {
		return opts, fmt.Errorf("no source file given")
	}
	if !isSourceFile(opts.SourcePath) {
		return opts, fmt.Errorf("%s is not a %s file", opts.SourcePath, config.SourceFileExt)
	}
	return opts, nil
}

func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Entry is the process entry point behind main.
func Entry() {
	opts, err := ParseArgs(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n\n", err)
		printUsage(os.Stderr, os.Args[0])
		os.Exit(exitRejected)
	}

	globals, derr := loadGlobals(opts.ManifestPath)
	if derr != nil {
		printErrors(os.Stderr, []*diagnostics.DiagnosticError{derr})
		os.Exit(exitRejected)
	}

	source, err := os.ReadFile(opts.SourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %s\n", opts.SourcePath, err)
		os.Exit(exitRejected)
	}

	ctx := Translate(opts.SourcePath, string(source), globals, opts.CheckOnly)

	if opts.PrintEffects && ctx.RootEffect != nil {
		fmt.Fprintf(os.Stderr, "%s : %s\n", opts.SourcePath, ctx.RootEffect.String())
	}

	if ctx.Failed() {
		reportErrors(os.Stderr, ctx)
		if ctx.HasInternalError() {
			os.Exit(exitInternal)
		}
		os.Exit(exitRejected)
	}

	if opts.CheckOnly {
		return
	}

	if opts.OutputPath == "" || opts.OutputPath == "-" {
		fmt.Print(ctx.Output)
		return
	}
	if err := os.WriteFile(opts.OutputPath, []byte(ctx.Output), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %s\n", opts.OutputPath, err)
		os.Exit(exitRejected)
	}
}

// Translate runs the full stage chain over one source text.
func Translate(path, source string, globals *effects.Env, checkOnly bool) *pipeline.PipelineContext {
	ctx := pipeline.NewContext(path, source, globals)
	ctx.CheckOnly = checkOnly
	p := pipeline.New(
		&parser.ParserProcessor{},
		&adapter.AdapterProcessor{},
		&infer.InferenceProcessor{},
		&rewrite.RewriteProcessor{},
		&emitter.EmitProcessor{},
	)
	return p.Run(ctx)
}

func loadGlobals(manifestPath string) (*effects.Env, *diagnostics.DiagnosticError) {
	if manifestPath == "" {
		return manifest.Default(), nil
	}
	return manifest.Load(manifestPath)
}

// reportErrors prints a failed unit's diagnostics. An internal failure
// additionally names the unit id so the report can be correlated with
// the exact translation run.
func reportErrors(w io.Writer, ctx *pipeline.PipelineContext) {
	printErrors(w, ctx.Errors)
	if ctx.HasInternalError() {
		fmt.Fprintf(w, "internal failure translating %s (unit %s)\n", ctx.SourcePath, ctx.UnitID)
	}
}

func printErrors(w io.Writer, errs []*diagnostics.DiagnosticError) {
	red, reset := colorCodes()
	for _, e := range errs {
		fmt.Fprintf(w, "- %s%s%s\n", red, e.Error(), reset)
	}
}

// colorCodes returns ANSI codes for error highlighting when stderr is a
// terminal and the terminal supports it.
func colorCodes() (string, string) {
	if os.Getenv("TERM") == "dumb" {
		return "", ""
	}
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return "", ""
	}
	return "\x1b[31m", "\x1b[0m"
}
