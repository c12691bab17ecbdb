package filters

import (
	"fmt"
	"sync"
	"text/template"

	"github.com/flosch/pongo2/v6"
)

// The case filters, in the order they are listed to users.
var caseFilters = []struct {
	name string
	fn   Func
}{
	{"snakecase", Snakecase},
	{"kebabcase", Kebabcase},
	{"camelcase", Camelcase},
	{"pascalcase", Pascalcase},
	{"titlecase", Titlecase},
}

var registry = func() map[string]Func {
	m := make(map[string]Func, len(caseFilters)+1)
	for _, f := range caseFilters {
		m[f.name] = f.fn
	}
	m["plural"] = Plural
	return m
}()

// Names returns the case filter names in a stable order.
func Names() []string {
	names := make([]string, 0, len(caseFilters))
	for _, f := range caseFilters {
		names = append(names, f.name)
	}
	return names
}

// All returns every registered filter name, the case filters first.
func All() []string {
	return append(Names(), "plural")
}

// Lookup finds a filter by the name template authors use.
func Lookup(name string) (Func, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// FuncMap exposes the filters to text/template as pipeline functions:
//
//	{{ .Name | snakecase }}
func FuncMap() template.FuncMap {
	fm := make(template.FuncMap, len(registry))
	for name, fn := range registry {
		fm[name] = fn
	}
	return fm
}

var (
	pongoOnce sync.Once
	pongoErr  error
)

// RegisterPongo registers the filters with pongo2 so templates can pipe
// values through them: {{ name|pascalcase }}. pongo2 keeps filters in a
// process-wide table, so registration happens once; names another package
// already registered are left alone.
func RegisterPongo() error {
	pongoOnce.Do(func() {
		for _, name := range All() {
			if pongo2.FilterExists(name) {
				continue
			}
			if err := pongo2.RegisterFilter(name, pongoFilter(name, registry[name])); err != nil {
				pongoErr = fmt.Errorf("failed to register filter %q: %w", name, err)
				return
			}
		}
	})
	return pongoErr
}

func pongoFilter(name string, fn Func) pongo2.FilterFunction {
	return func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		out, err := fn(in.String())
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(out), nil
	}
}
