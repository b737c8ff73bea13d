// Where: cli/internal/generator/renderer.go
// What: Template loading and rendering against the variable map.
// Why: Keep template parsing concerns out of the generation loop.
package generator

import (
	"bytes"
	"embed"
	"io/fs"
	"path"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

//go:embed all:templates
var templateFS embed.FS

// Renderer renders named templates from a template source filesystem.
// The default source is the embedded template set; tests inject their own
// filesystem to exercise missing and malformed templates.
type Renderer struct {
	source fs.FS
	cache  sync.Map
}

// NewRenderer returns a renderer backed by the embedded templates.
func NewRenderer() *Renderer {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		// The embedded tree always contains templates/.
		panic(err)
	}
	return &Renderer{source: sub}
}

// NewRendererFromFS returns a renderer reading templates from fsys,
// addressed by the same relative names as the embedded set.
func NewRendererFromFS(fsys fs.FS) *Renderer {
	return &Renderer{source: fsys}
}

// Render loads the named template and executes it against vars.
func (r *Renderer) Render(name string, vars Variables) (string, error) {
	tmpl, err := r.load(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Renderer) load(name string) (*template.Template, error) {
	if value, ok := r.cache.Load(name); ok {
		return value.(*template.Template), nil
	}
	tmpl, err := template.New(path.Base(name)).
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		ParseFS(r.source, name)
	if err != nil {
		return nil, err
	}
	r.cache.Store(name, tmpl)
	return tmpl, nil
}
