// Where: cli/internal/app/new_test.go
// What: Tests for the new command handler.
// Why: Verify input resolution, confirmation, and generation wiring.
package app

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsml/ml-bundle/cli/internal/generator"
	"github.com/tsml/ml-bundle/cli/internal/interaction"
)

type fakeGenerator struct {
	generateCalls []string
	lastRequest   generator.GenerationRequest
	report        generator.Report
	err           error
}

func (f *fakeGenerator) Generate(req generator.GenerationRequest, dest string) (generator.Report, error) {
	f.generateCalls = append(f.generateCalls, dest)
	f.lastRequest = req
	return f.report, f.err
}

func (f *fakeGenerator) Lint(req generator.GenerationRequest) (generator.Report, error) {
	f.lastRequest = req
	return f.report, f.err
}

type fakePrompter struct {
	inputs  map[string]string
	selects map[string]string
}

func (f fakePrompter) Input(title string, _ []string) (string, error) {
	return f.inputs[title], nil
}

func (f fakePrompter) SelectValue(title string, _ []interaction.SelectOption) (string, error) {
	return f.selects[title], nil
}

func fullReport() generator.Report {
	report := generator.Report{}
	for _, path := range generator.OutputPaths() {
		report.Results = append(report.Results, generator.FileResult{Path: path})
	}
	return report
}

func newTestDeps(gen *fakeGenerator, workDir string) Dependencies {
	return Dependencies{
		WorkDir:       workDir,
		Generator:     gen,
		Confirm:       func(string) (bool, error) { return true, nil },
		WriteManifest: func(string, generator.GenerationRequest, string) error { return nil },
	}
}

func TestRunNewWithFlags(t *testing.T) {
	workDir := t.TempDir()
	gen := &fakeGenerator{report: fullReport()}
	out := &bytes.Buffer{}

	code := Run([]string{
		"new",
		"--name", "vista-2d",
		"--workspace-host", "https://x.cloud.example.com",
		"--model-type", "segmentation",
		"--gpu",
	}, func() Dependencies {
		deps := newTestDeps(gen, workDir)
		deps.Out = out
		return deps
	}())

	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, out.String())
	}
	if len(gen.generateCalls) != 1 {
		t.Fatalf("expected one generate call, got %d", len(gen.generateCalls))
	}
	if gen.generateCalls[0] != filepath.Join(workDir, "vista-2d") {
		t.Fatalf("unexpected destination: %s", gen.generateCalls[0])
	}
	if gen.lastRequest.ModelType != generator.ModelSegmentation || !gen.lastRequest.UseGPU {
		t.Fatalf("unexpected request: %+v", gen.lastRequest)
	}
	if !strings.Contains(out.String(), "Successfully created project") {
		t.Fatalf("expected success message: %s", out.String())
	}
	if !strings.Contains(out.String(), "Next steps:") {
		t.Fatalf("expected next steps: %s", out.String())
	}
}

func TestRunNewPromptsForMissingInputs(t *testing.T) {
	workDir := t.TempDir()
	gen := &fakeGenerator{report: fullReport()}
	out := &bytes.Buffer{}

	deps := newTestDeps(gen, workDir)
	deps.Out = out
	deps.Interactive = true
	deps.Prompter = fakePrompter{
		inputs: map[string]string{
			"Project name":   "prompted-project",
			"Workspace host": "https://prompted.cloud.example.com",
		},
		selects: map[string]string{"Model type": "nlp"},
	}

	code := Run([]string{"new"}, deps)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, out.String())
	}
	if gen.lastRequest.ProjectName != "prompted-project" {
		t.Fatalf("unexpected project name: %s", gen.lastRequest.ProjectName)
	}
	if gen.lastRequest.WorkspaceHost != "https://prompted.cloud.example.com" {
		t.Fatalf("unexpected host: %s", gen.lastRequest.WorkspaceHost)
	}
	if gen.lastRequest.ModelType != generator.ModelNLP {
		t.Fatalf("unexpected model type: %s", gen.lastRequest.ModelType)
	}
}

func TestRunNewMissingNameNonInteractive(t *testing.T) {
	gen := &fakeGenerator{report: fullReport()}
	out := &bytes.Buffer{}
	deps := newTestDeps(gen, t.TempDir())
	deps.Out = out

	code := Run([]string{"new", "--workspace-host", "https://x.cloud.example.com"}, deps)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if len(gen.generateCalls) != 0 {
		t.Fatalf("generator should not run without a name")
	}
	if !strings.Contains(out.String(), "project name is required") {
		t.Fatalf("expected name error: %s", out.String())
	}
}

func TestRunNewHostFromEnv(t *testing.T) {
	t.Setenv(workspaceHostEnv, "https://env.cloud.example.com")
	gen := &fakeGenerator{report: fullReport()}
	deps := newTestDeps(gen, t.TempDir())
	deps.Out = &bytes.Buffer{}

	code := Run([]string{"new", "--name", "envy"}, deps)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if gen.lastRequest.WorkspaceHost != "https://env.cloud.example.com" {
		t.Fatalf("expected env host, got %s", gen.lastRequest.WorkspaceHost)
	}
	if gen.lastRequest.ModelType != generator.ModelCustom {
		t.Fatalf("expected custom default, got %s", gen.lastRequest.ModelType)
	}
}

func TestRunNewInvalidModelType(t *testing.T) {
	gen := &fakeGenerator{report: fullReport()}
	out := &bytes.Buffer{}
	deps := newTestDeps(gen, t.TempDir())
	deps.Out = out

	code := Run([]string{
		"new",
		"--name", "vista-2d",
		"--workspace-host", "https://x.cloud.example.com",
		"--model-type", "timeseries",
	}, deps)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(out.String(), "invalid model type") {
		t.Fatalf("expected model type error: %s", out.String())
	}
	if len(gen.generateCalls) != 0 {
		t.Fatalf("generator should not run with invalid model type")
	}
}

func TestRunNewDeclineExistingDirectory(t *testing.T) {
	workDir := t.TempDir()
	dest := filepath.Join(workDir, "existing")
	if err := os.MkdirAll(dest, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	gen := &fakeGenerator{report: fullReport()}
	out := &bytes.Buffer{}
	deps := newTestDeps(gen, workDir)
	deps.Out = out
	deps.Confirm = func(string) (bool, error) { return false, nil }

	code := Run([]string{"new", "--name", "existing", "--workspace-host", "https://x.cloud.example.com"}, deps)
	if code != 0 {
		t.Fatalf("expected clean exit on decline, got %d", code)
	}
	if len(gen.generateCalls) != 0 {
		t.Fatalf("generator must not run after decline")
	}
	if !strings.Contains(out.String(), "Aborted.") {
		t.Fatalf("expected abort message: %s", out.String())
	}

	entries, err := os.ReadDir(dest)
	if err != nil {
		t.Fatalf("read dest: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("decline must leave the directory untouched: %v", entries)
	}
}

func TestRunNewGenerationError(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("disk full")}
	out := &bytes.Buffer{}
	deps := newTestDeps(gen, t.TempDir())
	deps.Out = out

	code := Run([]string{"new", "--name", "vista-2d", "--workspace-host", "https://x.cloud.example.com"}, deps)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(out.String(), "Error creating project: disk full") {
		t.Fatalf("expected generation error: %s", out.String())
	}
}

func TestRunNewReportsFallbacks(t *testing.T) {
	report := fullReport()
	report.Results[0].FellBack = true
	gen := &fakeGenerator{report: report}
	out := &bytes.Buffer{}
	deps := newTestDeps(gen, t.TempDir())
	deps.Out = out

	code := Run([]string{"new", "--name", "vista-2d", "--workspace-host", "https://x.cloud.example.com"}, deps)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out.String(), "placeholder content") {
		t.Fatalf("expected fallback warning: %s", out.String())
	}
}
