// Where: cli/internal/generator/policycheck.go
// What: Structural checks for rendered outputs during lint.
// Why: Catch template authoring bugs that still render but produce invalid documents.
package generator

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"sigs.k8s.io/yaml"
)

const policySchemaURL = "mlbundle://schemas/policy-document.json"

// policyDocumentSchema constrains the generated policy JSON documents:
// a non-empty object whose values are scalars or policy attribute objects.
const policyDocumentSchema = `{
  "type": "object",
  "minProperties": 1,
  "additionalProperties": {
    "type": ["object", "string", "number", "boolean", "array"]
  }
}`

var (
	policySchemaOnce sync.Once
	policySchemaErr  error
	policySchema     *jsonschema.Schema
)

// CheckRendered validates rendered content for paths whose format can be
// verified independently of the target platform. Non-verifiable paths pass.
func CheckRendered(relPath, content string) error {
	switch {
	case strings.HasPrefix(relPath, "policies/") && strings.HasSuffix(relPath, ".json"):
		return checkPolicyDocument(relPath, content)
	case relPath == "databricks.yaml":
		return checkBundleConfig(content)
	default:
		return nil
	}
}

func checkPolicyDocument(relPath, content string) error {
	sch, err := loadPolicySchema()
	if err != nil {
		return err
	}

	var document any
	if err := json.Unmarshal([]byte(content), &document); err != nil {
		return fmt.Errorf("%s is not valid JSON: %w", relPath, err)
	}
	if err := sch.Validate(document); err != nil {
		return fmt.Errorf("%s failed policy schema: %w", relPath, err)
	}
	return nil
}

// checkBundleConfig verifies the bundle config parses as YAML and carries
// the keys the target CLI requires.
func checkBundleConfig(content string) error {
	jsonData, err := yaml.YAMLToJSON([]byte(content))
	if err != nil {
		return fmt.Errorf("databricks.yaml is not valid YAML: %w", err)
	}

	var document struct {
		Bundle struct {
			Name string `json:"name"`
		} `json:"bundle"`
		Targets map[string]any `json:"targets"`
	}
	if err := json.Unmarshal(jsonData, &document); err != nil {
		return fmt.Errorf("databricks.yaml has unexpected structure: %w", err)
	}
	if document.Bundle.Name == "" {
		return fmt.Errorf("databricks.yaml is missing bundle.name")
	}
	if len(document.Targets) == 0 {
		return fmt.Errorf("databricks.yaml defines no targets")
	}
	return nil
}

func loadPolicySchema() (*jsonschema.Schema, error) {
	policySchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(policySchemaURL, strings.NewReader(policyDocumentSchema)); err != nil {
			policySchemaErr = err
			return
		}
		policySchema, policySchemaErr = compiler.Compile(policySchemaURL)
	})
	return policySchema, policySchemaErr
}
