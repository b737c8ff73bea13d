// Where: cli/cmd/mlbundle/cli_test.go
// What: Tests for CLI dependency wiring.
// Why: Ensure buildDependencies is deterministic.
package main

import (
	"errors"
	"testing"
)

func TestBuildDependenciesSuccess(t *testing.T) {
	origGetwd := getwd
	t.Cleanup(func() {
		getwd = origGetwd
	})

	getwd = func() (string, error) {
		return "/project", nil
	}

	deps, err := buildDependencies()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if deps.WorkDir != "/project" {
		t.Fatalf("unexpected work dir: %s", deps.WorkDir)
	}
	if deps.Generator == nil {
		t.Fatalf("expected generator")
	}
	if deps.Prompter == nil {
		t.Fatalf("expected prompter")
	}
	if deps.Confirm == nil {
		t.Fatalf("expected confirm helper")
	}
}

func TestBuildDependenciesGetwdError(t *testing.T) {
	origGetwd := getwd
	t.Cleanup(func() {
		getwd = origGetwd
	})

	getwd = func() (string, error) {
		return "", errors.New("getwd failed")
	}

	if _, err := buildDependencies(); err == nil {
		t.Fatalf("expected error")
	}
}
