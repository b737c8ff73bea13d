// Where: cli/internal/generator/fallback.go
// What: Placeholder file writer for failed templates.
// Why: Keep the output tree structurally complete when a template is broken.
package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteFallback writes a minimal placeholder for path, keyed by file
// extension. It creates parent directories as needed. This is the
// last-resort path of the render loop; it only fails if the filesystem
// itself does.
func WriteFallback(path string, vars Variables) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(FallbackContent(filepath.Base(path), vars)), 0o644)
}

// FallbackContent returns the placeholder body for a file name.
func FallbackContent(name string, vars Variables) string {
	project := vars.ProjectName()
	switch strings.ToLower(filepath.Ext(name)) {
	case ".py":
		return fmt.Sprintf("# %s - Generated file\n# TODO: Implement functionality\n", project)
	case ".yml", ".yaml":
		return fmt.Sprintf("# %s - Generated YAML\n# TODO: Configure properly\n", project)
	case ".json":
		return "{\n  \"TODO\": \"Configure properly\"\n}\n"
	case ".md":
		return fmt.Sprintf("# %s\n\nTODO: Add documentation\n", project)
	default:
		return fmt.Sprintf("# %s - Generated file\n", project)
	}
}
