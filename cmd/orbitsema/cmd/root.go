package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "orbitsema",
	Short: "Semantic analyzer for the Orbit language",
	Long: `orbitsema is the Orbit language's static semantic analysis front end.

It consumes a parsed Orbit program (as JSON) and runs the full analysis
pipeline over it: type registry construction, symbol table resolution,
compile-time constant folding, expression and declaration analysis, and
annotation validation, reporting every diagnostic it collects.

orbitsema does not parse Orbit source itself; it expects an upstream
parser to hand it a JSON-encoded AST (see "orbitsema analyze --help").`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
