// Where: cli/internal/app/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package app

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/tsml/ml-bundle/cli/internal/generator"
	"github.com/tsml/ml-bundle/cli/internal/interaction"
	"github.com/tsml/ml-bundle/cli/internal/version"
)

// ProjectGenerator is the generation surface consumed by command handlers.
type ProjectGenerator interface {
	Generate(req generator.GenerationRequest, dest string) (generator.Report, error)
	Lint(req generator.GenerationRequest) (generator.Report, error)
}

// Dependencies holds all injected dependencies required for CLI command
// execution. This structure enables dependency injection for testing and
// allows swapping implementations of various subsystems.
type Dependencies struct {
	WorkDir       string
	Out           io.Writer
	Interactive   bool
	Prompter      interaction.Prompter
	Confirm       func(message string) (bool, error)
	Generator     ProjectGenerator
	WriteManifest func(dest string, req generator.GenerationRequest, toolVersion string) error
}

// CLI defines the command-line interface structure parsed by Kong.
// It contains global flags and all subcommand definitions.
type CLI struct {
	EnvFile string     `name:"env-file" help:"Path to .env file"`
	New     NewCmd     `cmd:"" help:"Generate a new ML project"`
	Lint    LintCmd    `cmd:"" help:"Dry-render all templates and report failures"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

type VersionCmd struct{}

// NewCmd holds the flags for project generation. Name and workspace host
// are prompted interactively when omitted on a terminal.
type NewCmd struct {
	Name          string `short:"n" help:"Name of the ML project (e.g., vista-2d-segmentation)"`
	OutputDir     string `short:"o" default:"." help:"Output directory for the project"`
	WorkspaceHost string `short:"w" help:"Workspace URL (e.g., https://your-workspace.cloud.databricks.com)"`
	ModelType     string `short:"m" help:"Type of ML model: classification, regression, segmentation, nlp, custom (default: custom)"`
	GPU           bool   `help:"Configure for GPU-based training"`
}

// LintCmd holds the flags for template linting.
type LintCmd struct {
	ModelType string `short:"m" default:"custom" help:"Model type to lint against"`
	GPU       bool   `help:"Lint with GPU variables"`
}

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments, identifies the requested command,
// and dispatches to the appropriate handler. Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}

	if deps.Confirm == nil {
		deps.Confirm = interaction.PromptYesNo
	}
	if deps.WriteManifest == nil {
		deps.WriteManifest = generator.WriteManifest
	}

	if len(args) == 0 {
		return runNoArgs(out)
	}

	cli := CLI{}
	parser, err := kong.New(&cli, kong.Name("mlbundle"))
	if err != nil {
		return exitWithError(out, err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return exitWithError(out, err)
	}

	// Load environment file if provided or if .env exists in current directory
	if cli.EnvFile != "" {
		if err := godotenv.Load(cli.EnvFile); err != nil {
			fmt.Fprintf(out, "Warning: failed to load env file %s: %v\n", cli.EnvFile, err)
		}
	} else {
		if _, err := os.Stat(".env"); err == nil {
			if err := godotenv.Load(); err != nil {
				fmt.Fprintf(out, "Warning: failed to load .env: %v\n", err)
			}
		}
	}

	command := ctx.Command()
	if exitCode, handled := dispatchCommand(command, cli, deps, out); handled {
		return exitCode
	}

	fmt.Fprintln(out, "unknown command")
	return 1
}

type commandHandler func(CLI, Dependencies, io.Writer) int

func dispatchCommand(command string, cli CLI, deps Dependencies, out io.Writer) (int, bool) {
	handlers := map[string]commandHandler{
		"new":     runNew,
		"lint":    runLint,
		"version": func(_ CLI, _ Dependencies, out io.Writer) int { return runVersion(out) },
	}

	if handler, ok := handlers[command]; ok {
		return handler(cli, deps, out), true
	}
	return 1, false
}

// runVersion prints the version information of the CLI.
func runVersion(out io.Writer) int {
	fmt.Fprintln(out, version.GetVersion())
	return 0
}

// runNoArgs handles invocation without arguments: show what the tool does
// and the available commands.
func runNoArgs(out io.Writer) int {
	fmt.Fprintln(out, "mlbundle generates ML workflow project scaffolding.")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  new       Generate a new ML project")
	fmt.Fprintln(out, "  lint      Dry-render all templates and report failures")
	fmt.Fprintln(out, "  version   Show version information")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'mlbundle <command> --help' for details.")
	return 1
}

func exitWithError(out io.Writer, err error) int {
	fmt.Fprintln(out, err)
	return 1
}
