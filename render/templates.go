package render

import (
	"fmt"
	"io"
	"sync"
	"text/template"

	"github.com/flosch/pongo2/v6"

	"github.com/simonhull/firebird-suite/anvil/filters"
)

var (
	setupOnce sync.Once
	setupErr  error
)

// setup registers the case filters with pongo2 and turns off HTML
// autoescaping, which would mangle generated source. Both are process-wide
// pongo2 settings.
func setup() error {
	setupOnce.Do(func() {
		pongo2.SetAutoescape(false)
		setupErr = filters.RegisterPongo()
	})
	return setupErr
}

type pongoTemplate struct {
	tpl *pongo2.Template
	ctx pongo2.Context
}

// Pongo binds a compiled pongo2 template to the context it renders with.
func Pongo(tpl *pongo2.Template, ctx pongo2.Context) Template {
	return pongoTemplate{tpl: tpl, ctx: ctx}
}

func (p pongoTemplate) WriteInto(w io.Writer) error {
	return p.tpl.ExecuteWriter(p.ctx, w)
}

// FromString compiles a pongo2 template with the case filters available and
// binds it to ctx.
//
// The first call also turns off pongo2's HTML autoescaping for the whole
// process, since generated source must keep its quotes and angle brackets.
// Programs that render HTML with pongo2 elsewhere must escape explicitly
// (the escape filter) or re-enable it with pongo2.SetAutoescape(true).
//
//	tmpl, err := render.FromString("type {{ name|pascalcase }} struct{}", pongo2.Context{"name": "user"})
func FromString(src string, ctx pongo2.Context) (Template, error) {
	if err := setup(); err != nil {
		return nil, err
	}
	tpl, err := pongo2.FromString(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return Pongo(tpl, ctx), nil
}

type textTemplate struct {
	tpl  *template.Template
	data any
}

// Text binds a text/template to its data. Parse it with filters.FuncMap()
// to use the case filters.
func Text(tpl *template.Template, data any) Template {
	return textTemplate{tpl: tpl, data: data}
}

func (t textTemplate) WriteInto(w io.Writer) error {
	return t.tpl.Execute(w, t.data)
}
