// Where: cli/internal/generator/request.go
// What: Generation request types.
// Why: Keep the CLI input shape centralized for the generator pipeline.
package generator

// ModelType identifies the kind of ML model the project is scaffolded for.
type ModelType string

const (
	ModelClassification ModelType = "classification"
	ModelRegression     ModelType = "regression"
	ModelSegmentation   ModelType = "segmentation"
	ModelNLP            ModelType = "nlp"
	ModelCustom         ModelType = "custom"
)

// ModelTypes lists the accepted model types in CLI display order.
var ModelTypes = []ModelType{
	ModelClassification,
	ModelRegression,
	ModelSegmentation,
	ModelNLP,
	ModelCustom,
}

// GenerationRequest captures the user inputs for one scaffolding run.
// It is constructed once from CLI input and never mutated.
type GenerationRequest struct {
	ProjectName   string
	WorkspaceHost string
	ModelType     ModelType
	UseGPU        bool
}
