// Where: cli/internal/generator/policycheck_test.go
// What: Tests for lint-time structural checks.
// Why: Catch invalid rendered documents before they reach a workspace.
package generator

import (
	"strings"
	"testing"
)

func TestCheckRenderedValidPolicy(t *testing.T) {
	content := `{"spark_version": {"type": "fixed", "value": "14.3.x-scala2.12"}}`
	if err := CheckRendered("policies/cluster_policy_restricted.json", content); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestCheckRenderedInvalidJSON(t *testing.T) {
	err := CheckRendered("policies/mlflow_policy.json", `{"unclosed": `)
	if err == nil || !strings.Contains(err.Error(), "not valid JSON") {
		t.Fatalf("expected JSON error, got %v", err)
	}
}

func TestCheckRenderedEmptyPolicy(t *testing.T) {
	if err := CheckRendered("policies/mlflow_policy.json", `{}`); err == nil {
		t.Fatalf("expected schema error for empty policy")
	}
}

func TestCheckRenderedBundleConfig(t *testing.T) {
	content := "bundle:\n  name: demo\ntargets:\n  dev:\n    mode: development\n"
	if err := CheckRendered("databricks.yaml", content); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestCheckRenderedBundleConfigMissingName(t *testing.T) {
	content := "targets:\n  dev:\n    mode: development\n"
	err := CheckRendered("databricks.yaml", content)
	if err == nil || !strings.Contains(err.Error(), "bundle.name") {
		t.Fatalf("expected bundle.name error, got %v", err)
	}
}

func TestCheckRenderedBundleConfigNoTargets(t *testing.T) {
	err := CheckRendered("databricks.yaml", "bundle:\n  name: demo\n")
	if err == nil || !strings.Contains(err.Error(), "targets") {
		t.Fatalf("expected targets error, got %v", err)
	}
}

func TestCheckRenderedSkipsOpaquePaths(t *testing.T) {
	if err := CheckRendered("src/ds/train.py", "def broken(:"); err != nil {
		t.Fatalf("expected opaque path to pass, got %v", err)
	}
	if err := CheckRendered("jobs/job_train.yml", "not: [valid"); err != nil {
		t.Fatalf("expected non-bundle yaml to pass, got %v", err)
	}
}

func TestEmbeddedPoliciesPassCheck(t *testing.T) {
	renderer := NewRenderer()
	vars := gpuSegmentationVars()
	for _, spec := range fileSpecs {
		if !strings.HasPrefix(spec.Output, "policies/") && spec.Output != "databricks.yaml" {
			continue
		}
		content, err := renderer.Render(spec.Template, vars)
		if err != nil {
			t.Fatalf("render %s: %v", spec.Template, err)
		}
		if err := CheckRendered(spec.Output, content); err != nil {
			t.Fatalf("check %s: %v", spec.Output, err)
		}
	}
}
