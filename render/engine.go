package render

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
	"text/template"

	"github.com/flosch/pongo2/v6"

	"github.com/simonhull/firebird-suite/anvil/filters"
)

// TextExt marks templates rendered with text/template instead of pongo2.
const TextExt = ".gotmpl"

// Engine loads named templates from a filesystem and binds them to data.
// Compiled templates are cached, so an Engine is cheap to reuse and safe
// for concurrent use.
type Engine struct {
	fsys  fs.FS
	set   *pongo2.TemplateSet
	cache map[string]any
	mu    sync.RWMutex // Protect cache for concurrent access
}

// Option configures an Engine.
type Option func(*Engine)

// WithFS loads templates from fsys.
func WithFS(fsys fs.FS) Option {
	return func(e *Engine) {
		e.fsys = fsys
	}
}

// WithDir loads templates from a directory on disk.
func WithDir(dir string) Option {
	return WithFS(os.DirFS(dir))
}

// NewEngine creates an engine with the case filters registered. Without
// WithFS or WithDir, templates load from the working directory.
//
// Like FromString, it turns off pongo2's HTML autoescaping process-wide.
func NewEngine(opts ...Option) (*Engine, error) {
	if err := setup(); err != nil {
		return nil, err
	}

	e := &Engine{cache: make(map[string]any)}
	for _, opt := range opts {
		opt(e)
	}
	if e.fsys == nil {
		e.fsys = os.DirFS(".")
	}
	e.set = pongo2.NewSet("anvil", pongo2.NewFSLoader(e.fsys))
	return e, nil
}

// Template loads the named template and binds it to data. Names ending in
// .gotmpl are text/template files; everything else is pongo2.
func (e *Engine) Template(name string, data map[string]any) (Template, error) {
	if strings.HasSuffix(name, TextExt) {
		tpl, err := cached(e, "text:"+name, func() (*template.Template, error) {
			src, err := fs.ReadFile(e.fsys, name)
			if err != nil {
				return nil, fmt.Errorf("failed to read template '%s': %w", name, err)
			}
			tpl, err := template.New(name).Funcs(filters.FuncMap()).Parse(string(src))
			if err != nil {
				return nil, fmt.Errorf("failed to parse template '%s': %w", name, err)
			}
			return tpl, nil
		})
		if err != nil {
			return nil, err
		}
		return Text(tpl, data), nil
	}

	tpl, err := cached(e, "pongo:"+name, func() (*pongo2.Template, error) {
		tpl, err := e.set.FromFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to load template '%s': %w", name, err)
		}
		return tpl, nil
	})
	if err != nil {
		return nil, err
	}
	return Pongo(tpl, contextOf(data)), nil
}

// RenderString renders an inline pongo2 template, such as an output path
// like "models/{{ name|snakecase }}.go".
func (e *Engine) RenderString(src string, data map[string]any) (string, error) {
	tpl, err := cached(e, "string:"+src, func() (*pongo2.Template, error) {
		tpl, err := e.set.FromString(src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %q: %w", src, err)
		}
		return tpl, nil
	})
	if err != nil {
		return "", err
	}

	out, err := tpl.Execute(contextOf(data))
	if err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", src, err)
	}
	return out, nil
}

func contextOf(data map[string]any) pongo2.Context {
	if data == nil {
		return pongo2.Context{}
	}
	return pongo2.Context(data)
}

// ClearCache clears the template cache (useful for testing)
func (e *Engine) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]any)
}

// cached returns the entry for key, compiling and storing it on a miss.
func cached[T any](e *Engine, key string, load func() (T, error)) (T, error) {
	e.mu.RLock()
	if v, ok := e.cache[key]; ok {
		e.mu.RUnlock()
		return v.(T), nil
	}
	e.mu.RUnlock()

	v, err := load()
	if err != nil {
		return v, err
	}

	e.mu.Lock()
	e.cache[key] = v
	e.mu.Unlock()
	return v, nil
}
