// Where: cli/cmd/mlbundle/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"fmt"
	"os"

	"github.com/tsml/ml-bundle/cli/internal/app"
	"github.com/tsml/ml-bundle/cli/internal/generator"
	"github.com/tsml/ml-bundle/cli/internal/interaction"
)

var getwd = os.Getwd

// buildDependencies constructs all runtime dependencies required by the CLI:
// the project generator, interactive prompter, and confirmation helper.
func buildDependencies() (app.Dependencies, error) {
	workDir, err := getwd()
	if err != nil {
		return app.Dependencies{}, err
	}

	deps := app.Dependencies{
		WorkDir:       workDir,
		Out:           os.Stdout,
		Interactive:   interaction.IsTerminal(os.Stdin),
		Prompter:      interaction.HuhPrompter{},
		Confirm:       interaction.PromptYesNo,
		Generator:     generator.New(warnf),
		WriteManifest: generator.WriteManifest,
	}

	return deps, nil
}

// warnf reports non-fatal generation issues on stderr so they do not
// interleave with structured stdout output.
func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
