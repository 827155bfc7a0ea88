// Command orbitsema runs the Orbit semantic analyzer over a pre-parsed
// program and reports diagnostics (SPEC_FULL.md "CLI").
package main

import (
	"os"

	"github.com/orbit-lang/orbit/cmd/orbitsema/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
