// Where: cli/internal/generator/manifest.go
// What: Generation manifest persistence.
// Why: Record what a project was scaffolded from for later inspection.
package generator

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestFileName is the manifest written into the destination root.
const ManifestFileName = ".mlbundle.yml"

// Manifest captures the inputs and tool version of a generation run.
type Manifest struct {
	Project   ProjectManifest `yaml:"project"`
	Generator ToolManifest    `yaml:"generator"`
}

// ProjectManifest records the resolved user inputs.
type ProjectManifest struct {
	Name          string `yaml:"name"`
	WorkspaceHost string `yaml:"workspace_host"`
	ModelType     string `yaml:"model_type"`
	UseGPU        bool   `yaml:"use_gpu"`
}

// ToolManifest records the generating tool.
type ToolManifest struct {
	Version string `yaml:"version"`
}

// WriteManifest writes the generation manifest into dest.
func WriteManifest(dest string, req GenerationRequest, toolVersion string) error {
	manifest := Manifest{
		Project: ProjectManifest{
			Name:          req.ProjectName,
			WorkspaceHost: req.WorkspaceHost,
			ModelType:     string(req.ModelType),
			UseGPU:        req.UseGPU,
		},
		Generator: ToolManifest{Version: toolVersion},
	}

	data, err := yaml.Marshal(manifest)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dest, ManifestFileName), data, 0o644)
}

// ReadManifest loads the manifest from a previously generated project.
func ReadManifest(dest string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dest, ManifestFileName))
	if err != nil {
		return Manifest{}, err
	}
	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return Manifest{}, err
	}
	return manifest, nil
}
