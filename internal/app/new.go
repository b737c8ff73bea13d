// Where: cli/internal/app/new.go
// What: New command handler.
// Why: Resolve user inputs and drive project materialization.
package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsml/ml-bundle/cli/internal/generator"
	"github.com/tsml/ml-bundle/cli/internal/interaction"
	"github.com/tsml/ml-bundle/cli/internal/ui"
	"github.com/tsml/ml-bundle/cli/internal/version"
)

// workspaceHostEnv pre-seeds the workspace host prompt, typically via .env.
const workspaceHostEnv = "MLBUNDLE_HOST"

func runNew(cli CLI, deps Dependencies, out io.Writer) int {
	console := ui.New(out)

	req, err := resolveRequest(cli.New, deps)
	if err != nil {
		return exitWithError(out, err)
	}

	dest := resolveDestination(cli.New.OutputDir, deps.WorkDir, req.ProjectName)
	if _, err := os.Stat(dest); err == nil {
		ok, err := deps.Confirm(fmt.Sprintf("Directory %s already exists. Continue?", dest))
		if err != nil {
			return exitWithError(out, err)
		}
		if !ok {
			console.Error("Aborted.")
			return 0
		}
	}

	console.Header("🚀", "Creating ML project: "+req.ProjectName)

	report, err := deps.Generator.Generate(req, dest)
	if err != nil {
		console.Error(fmt.Sprintf("Error creating project: %v", err))
		return 1
	}

	if err := deps.WriteManifest(dest, req, version.GetVersion()); err != nil {
		console.Warn(fmt.Sprintf("could not write %s: %v", generator.ManifestFileName, err))
	}

	console.Success("Successfully created project at: " + dest)
	if fallbacks := report.FallbackCount(); fallbacks > 0 {
		console.Warn(fmt.Sprintf("%d of %d files received placeholder content", fallbacks, len(report.Results)))
	} else {
		console.Info(fmt.Sprintf("%d files generated", report.RenderedCount()))
	}

	fmt.Fprintln(out)
	console.Header("📋", "Next steps:")
	console.ItemPlain("1. cd " + req.ProjectName)
	console.ItemPlain("2. pip install -r requirements.txt")
	console.ItemPlain("3. databricks bundle validate --target dev")
	console.ItemPlain("4. databricks bundle deploy --target dev")
	return 0
}

// resolveRequest turns flags into a full GenerationRequest, prompting for
// the name, workspace host, and model type when omitted on a terminal.
func resolveRequest(cmd NewCmd, deps Dependencies) (generator.GenerationRequest, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		prompted, err := promptInput(deps, "Project name", nil)
		if err != nil {
			return generator.GenerationRequest{}, err
		}
		name = prompted
	}
	if name == "" {
		return generator.GenerationRequest{}, fmt.Errorf("project name is required (use --name)")
	}

	host := strings.TrimSpace(cmd.WorkspaceHost)
	if host == "" {
		host = strings.TrimSpace(os.Getenv(workspaceHostEnv))
	}
	if host == "" {
		prompted, err := promptInput(deps, "Workspace host", []string{"https://your-workspace.cloud.databricks.com"})
		if err != nil {
			return generator.GenerationRequest{}, err
		}
		host = prompted
	}
	if host == "" {
		return generator.GenerationRequest{}, fmt.Errorf("workspace host is required (use --workspace-host)")
	}

	modelType, err := resolveModelType(cmd.ModelType, deps)
	if err != nil {
		return generator.GenerationRequest{}, err
	}

	return generator.GenerationRequest{
		ProjectName:   name,
		WorkspaceHost: host,
		ModelType:     modelType,
		UseGPU:        cmd.GPU,
	}, nil
}

// resolveModelType validates an explicit model type, offers a selection on
// a terminal, and otherwise defaults to custom.
func resolveModelType(value string, deps Dependencies) (generator.ModelType, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed != "" {
		return parseModelType(trimmed)
	}

	if deps.Interactive && deps.Prompter != nil {
		options := make([]interaction.SelectOption, len(generator.ModelTypes))
		for i, modelType := range generator.ModelTypes {
			options[i] = interaction.SelectOption{Label: string(modelType), Value: string(modelType)}
		}
		selected, err := deps.Prompter.SelectValue("Model type", options)
		if err != nil {
			return "", err
		}
		if selected != "" {
			return generator.ModelType(selected), nil
		}
	}

	return generator.ModelCustom, nil
}

func parseModelType(value string) (generator.ModelType, error) {
	candidate := generator.ModelType(value)
	for _, modelType := range generator.ModelTypes {
		if candidate == modelType {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid model type %q (expected one of: %s)", value, modelTypeList())
}

func modelTypeList() string {
	names := make([]string, len(generator.ModelTypes))
	for i, modelType := range generator.ModelTypes {
		names[i] = string(modelType)
	}
	return strings.Join(names, ", ")
}

// promptInput asks for a value when running interactively; otherwise it
// returns empty and lets the caller surface a flag error.
func promptInput(deps Dependencies, title string, suggestions []string) (string, error) {
	if !deps.Interactive || deps.Prompter == nil {
		return "", nil
	}
	value, err := deps.Prompter.Input(title, suggestions)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

// resolveDestination joins the output directory and project name, anchoring
// relative output directories at the invocation working directory.
func resolveDestination(outputDir, workDir, name string) string {
	dir := strings.TrimSpace(outputDir)
	if dir == "" {
		dir = "."
	}
	if !filepath.IsAbs(dir) && workDir != "" {
		dir = filepath.Join(workDir, dir)
	}
	return filepath.Join(dir, name)
}
