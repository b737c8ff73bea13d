// Where: cli/internal/generator/vars.go
// What: Template variable resolution.
// Why: Derive the full substitution map from the four user inputs.
package generator

import "strings"

// Runtime and compute constants selected by the GPU flag.
const (
	sparkVersionGPU = "14.3.x-gpu-ml-scala2.12"
	sparkVersionCPU = "14.3.x-scala2.12"
	nodeTypeGPU     = "g4dn.xlarge"
	nodeTypeCPU     = "i3.xlarge"
)

var gpuLibraries = []string{"torch>=2.0.0", "torchvision>=0.15.0"}

// modelDependencyTable maps each model type to its pinned extra dependencies.
// Unknown keys resolve to an empty list, never an error.
var modelDependencyTable = map[ModelType][]string{
	ModelSegmentation:   {"monai>=1.3.0", "cellpose==3.0.6", "segment-anything-py"},
	ModelNLP:            {"transformers>=4.20.0", "datasets>=2.0.0", "tokenizers>=0.13.0"},
	ModelClassification: {"scikit-learn>=1.3.2", "xgboost>=1.7.0"},
	ModelRegression:     {"scikit-learn>=1.3.2", "statsmodels>=0.14.0"},
	ModelCustom:         {},
}

// Variables is the flat substitution map templates are rendered against.
type Variables map[string]any

// ResolveVariables derives the template variables for a request.
// It is deterministic and total over the input domain.
func ResolveVariables(req GenerationRequest) Variables {
	sparkVersion := sparkVersionCPU
	nodeType := nodeTypeCPU
	libraries := []string{}
	if req.UseGPU {
		sparkVersion = sparkVersionGPU
		nodeType = nodeTypeGPU
		libraries = append(libraries, gpuLibraries...)
	}

	return Variables{
		"project_name":            req.ProjectName,
		"project_name_underscore": underscoreName(req.ProjectName),
		"workspace_host":          req.WorkspaceHost,
		"model_type":              string(req.ModelType),
		"use_gpu":                 req.UseGPU,
		"spark_version":           sparkVersion,
		"node_type":               nodeType,
		"gpu_libraries":           libraries,
		"model_specific_deps":     ModelDependencies(req.ModelType),
	}
}

// ModelDependencies returns the extra dependency pins for a model type.
// Values outside the known set map to an empty list.
func ModelDependencies(modelType ModelType) []string {
	deps, ok := modelDependencyTable[modelType]
	if !ok {
		return []string{}
	}
	out := make([]string, len(deps))
	copy(out, deps)
	return out
}

// underscoreName rewrites a hyphenated project name into a form usable as a
// Python package identifier.
func underscoreName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// ProjectName reports the project name recorded in the variable map.
func (v Variables) ProjectName() string {
	name, _ := v["project_name"].(string)
	return name
}
