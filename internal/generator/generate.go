// Where: cli/internal/generator/generate.go
// What: Project materialization entrypoints.
// Why: Create the directory tree and render every project file with per-file fault isolation.
package generator

import (
	"fmt"
	"os"
	"path/filepath"
)

// projectDirectories is the fixed directory skeleton created under the
// destination root.
var projectDirectories = []string{
	"src/ds/utils",
	"notebooks",
	"jobs",
	"policies",
	"ci",
	"docs",
}

// fileSpec binds a template name to its relative output path.
type fileSpec struct {
	Template string
	Output   string
}

// fileSpecs is the fixed ordered list of files a project is built from.
// Order only affects log readability; every file is independent.
var fileSpecs = []fileSpec{
	{"databricks.yaml.tmpl", "databricks.yaml"},
	{"requirements.txt.tmpl", "requirements.txt"},
	{"requirements-lock.txt.tmpl", "requirements-lock.txt"},
	{"README.md.tmpl", "README.md"},
	{"gitignore.tmpl", ".gitignore"},
	{"src/ds/init.py.tmpl", "src/ds/__init__.py"},
	{"src/ds/preprocess.py.tmpl", "src/ds/preprocess.py"},
	{"src/ds/train.py.tmpl", "src/ds/train.py"},
	{"src/ds/register.py.tmpl", "src/ds/register.py"},
	{"src/ds/deploy_serving.py.tmpl", "src/ds/deploy_serving.py"},
	{"src/ds/utils/init.py.tmpl", "src/ds/utils/__init__.py"},
	{"src/ds/utils/io.py.tmpl", "src/ds/utils/io.py"},
	{"src/ds/utils/mlflow_utils.py.tmpl", "src/ds/utils/mlflow_utils.py"},
	{"notebooks/01_preprocess.py.tmpl", "notebooks/01_preprocess.py"},
	{"notebooks/02_train.py.tmpl", "notebooks/02_train.py"},
	{"notebooks/03_register_and_validate.py.tmpl", "notebooks/03_register_and_validate.py"},
	{"jobs/job_preprocess.yml.tmpl", "jobs/job_preprocess.yml"},
	{"jobs/job_train.yml.tmpl", "jobs/job_train.yml"},
	{"jobs/job_register.yml.tmpl", "jobs/job_register.yml"},
	{"jobs/job_deploy_serving.yml.tmpl", "jobs/job_deploy_serving.yml"},
	{"jobs/job_batch_inference.yml.tmpl", "jobs/job_batch_inference.yml"},
	{"policies/cluster_policy_restricted.json.tmpl", "policies/cluster_policy_restricted.json"},
	{"policies/serving_policy_serverless.json.tmpl", "policies/serving_policy_serverless.json"},
	{"policies/email_notifications.json.tmpl", "policies/email_notifications.json"},
	{"policies/mlflow_policy.json.tmpl", "policies/mlflow_policy.json"},
	{"ci/github-actions.yml.tmpl", "ci/github-actions.yml"},
	{"docs/GOVERNANCE.md.tmpl", "docs/GOVERNANCE.md"},
}

// OutputPaths returns the relative paths of every generated file, in
// generation order.
func OutputPaths() []string {
	paths := make([]string, len(fileSpecs))
	for i, spec := range fileSpecs {
		paths[i] = spec.Output
	}
	return paths
}

// Directories returns the fixed directory skeleton, relative to the
// destination root.
func Directories() []string {
	out := make([]string, len(projectDirectories))
	copy(out, projectDirectories)
	return out
}

// FileResult records the outcome for one output file.
type FileResult struct {
	Path     string // relative output path
	FellBack bool   // placeholder was written instead of rendered content
	Err      error  // render error when FellBack is true
}

// Report aggregates per-file outcomes of one generation or lint run.
type Report struct {
	Results []FileResult
}

// RenderedCount reports how many files rendered cleanly.
func (r Report) RenderedCount() int {
	return len(r.Results) - r.FallbackCount()
}

// FallbackCount reports how many files received a placeholder.
func (r Report) FallbackCount() int {
	count := 0
	for _, result := range r.Results {
		if result.FellBack {
			count++
		}
	}
	return count
}

// Generator materializes project trees from the template set.
type Generator struct {
	renderer *Renderer
	warnf    func(format string, args ...any)
}

// New returns a generator backed by the embedded templates.
// warnf receives one message per file that fell back to a placeholder;
// nil silences warnings.
func New(warnf func(format string, args ...any)) *Generator {
	return NewWithRenderer(NewRenderer(), warnf)
}

// NewWithRenderer returns a generator using an explicit renderer.
func NewWithRenderer(renderer *Renderer, warnf func(format string, args ...any)) *Generator {
	if warnf == nil {
		warnf = func(string, ...any) {}
	}
	return &Generator{renderer: renderer, warnf: warnf}
}

// Generate creates the directory skeleton under dest and writes every
// project file, overwriting existing files. A template failure degrades
// that one file to a placeholder; only filesystem errors are fatal.
func (g *Generator) Generate(req GenerationRequest, dest string) (Report, error) {
	vars := ResolveVariables(req)

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return Report{}, fmt.Errorf("create project directory: %w", err)
	}
	for _, dir := range projectDirectories {
		if err := os.MkdirAll(filepath.Join(dest, dir), 0o755); err != nil {
			return Report{}, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	report := Report{Results: make([]FileResult, 0, len(fileSpecs))}
	for _, spec := range fileSpecs {
		outputPath := filepath.Join(dest, filepath.FromSlash(spec.Output))

		content, err := g.renderer.Render(spec.Template, vars)
		if err == nil {
			err = writeFile(outputPath, content)
		}
		if err != nil {
			g.warnf("Warning: could not generate %s: %v", spec.Output, err)
			if fallbackErr := WriteFallback(outputPath, vars); fallbackErr != nil {
				return report, fmt.Errorf("write fallback for %s: %w", spec.Output, fallbackErr)
			}
			report.Results = append(report.Results, FileResult{Path: spec.Output, FellBack: true, Err: err})
			continue
		}
		report.Results = append(report.Results, FileResult{Path: spec.Output})
	}

	return report, nil
}

// Lint dry-renders every template against the request without touching the
// filesystem. Rendered JSON and bundle config outputs are additionally
// checked for structural validity.
func (g *Generator) Lint(req GenerationRequest) (Report, error) {
	vars := ResolveVariables(req)

	report := Report{Results: make([]FileResult, 0, len(fileSpecs))}
	for _, spec := range fileSpecs {
		content, err := g.renderer.Render(spec.Template, vars)
		if err == nil {
			err = CheckRendered(spec.Output, content)
		}
		if err != nil {
			report.Results = append(report.Results, FileResult{Path: spec.Output, FellBack: true, Err: err})
			continue
		}
		report.Results = append(report.Results, FileResult{Path: spec.Output})
	}

	return report, nil
}

// writeFile writes content to path, creating parent directories as needed.
func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
