package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kr/pretty"
	"github.com/kr/text"
	"github.com/spf13/cobra"
	"golang.org/x/text/width"

	"github.com/orbit-lang/orbit/internal/analyzer"
	"github.com/orbit-lang/orbit/internal/astjson"
	"github.com/orbit-lang/orbit/internal/config"
	"github.com/orbit-lang/orbit/internal/diagnostics"
	"github.com/orbit-lang/orbit/internal/source"
)

var (
	configPath  string
	strictMode  bool
	testMode    bool
	jsonOutput  bool
	debugOutput bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Run semantic analysis over a JSON-encoded Orbit AST",
	Long: `Run the semantic analyzer over a parsed Orbit program.

The input is a JSON document describing a Program (imports and
declarations) rather than Orbit source text, since this tool has no
parser of its own. Read from a file path, or from stdin when no path
is given.

Examples:
  orbitsema analyze program.json
  cat program.json | orbitsema analyze
  orbitsema analyze --json program.json
  orbitsema analyze --config orbit.yaml --strict program.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&configPath, "config", "", "path to a YAML analyzer config")
	analyzeCmd.Flags().BoolVar(&strictMode, "strict", false, "treat warnings as errors")
	analyzeCmd.Flags().BoolVar(&testMode, "test-mode", false, "set test_mode in the analyzer config (no analysis step reads it)")
	analyzeCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit diagnostics as pretty-printed JSON")
	analyzeCmd.Flags().BoolVar(&debugOutput, "debug", false, "dump the symbol table and node-count statistics alongside diagnostics")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	var input []byte
	var err error
	filename := "<stdin>"
	if len(args) == 1 {
		filename = args[0]
		input, err = os.ReadFile(filename)
	} else {
		input, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	prog, err := astjson.Decode(input)
	if err != nil {
		return fmt.Errorf("decoding AST: %w", err)
	}

	cfg := config.Default()
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	if strictMode {
		cfg.StrictMode = true
	}
	if testMode {
		cfg.TestMode = true
	}

	a := analyzer.New(cfg)
	a.AnalyzeProgram(prog)

	engine := a.Diagnostics()
	printDiagnostics(engine, filename)

	if debugOutput {
		printDebugDump(a)
	}

	failed := !engine.Succeeded()
	if cfg.StrictMode {
		for _, d := range engine.All() {
			if d.Level == diagnostics.Warning {
				failed = true
			}
		}
	}
	if failed {
		return fmt.Errorf("analysis failed with %d error(s)", engine.ErrorCount())
	}
	return nil
}

func printDiagnostics(engine *diagnostics.Engine, filename string) {
	all := engine.All()
	if jsonOutput {
		var docs []string
		for _, d := range all {
			j, err := d.ToJSON()
			if err != nil {
				continue
			}
			docs = append(docs, diagnostics.Pretty(j))
		}
		fmt.Println(strings.Join(docs, "\n"))
		return
	}
	for _, d := range all {
		loc := filename
		if len(d.Spans) > 0 {
			loc = d.Spans[0].Start.String()
		}
		fmt.Printf("%s: %s: %s [%s]\n", loc, d.Level.String(), d.Message, d.Code)
		if len(d.Spans) > 0 {
			printCaret(d.Spans[0])
		}
		for _, s := range d.Suggestions {
			fmt.Println(text.Indent(fmt.Sprintf("suggestion: %s (%s)", s.Text, s.Rationale), "  "))
		}
	}
	if dropped := engine.Dropped(); dropped > 0 {
		fmt.Fprintf(os.Stderr, "note: %d additional diagnostic(s) dropped (cap reached)\n", dropped)
	}
}

// printCaret renders the offending source line with a caret under the
// reported column, when the span carries a snippet. Display width, not
// byte or rune count, decides the caret's indent: East Asian wide/
// fullwidth runes occupy two terminal columns, so a caret aligned by
// rune count alone would drift on any line containing one.
func printCaret(span source.Span) {
	if span.Snippet == "" {
		return
	}
	fmt.Println("  " + span.Snippet)
	fmt.Println("  " + strings.Repeat(" ", caretOffset(span.Snippet, span.Start.Column)) + "^")
}

func caretOffset(line string, column int) int {
	offset := 0
	col := 1
	for _, r := range line {
		if col >= column {
			break
		}
		if isWideRune(r) {
			offset += 2
		} else {
			offset++
		}
		col++
	}
	return offset
}

func isWideRune(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	default:
		return false
	}
}

func printDebugDump(a *analyzer.Analyzer) {
	fmt.Println("--- debug ---")
	fmt.Printf("nodes analyzed: %d\n", a.NodesAnalyzed())
	fmt.Printf("max scope depth: %d\n", a.ScopeDepthHighWatermark())
	fmt.Println(pretty.Sprint(a.GlobalScope()))
}
