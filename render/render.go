package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/simonhull/firebird-suite/anvil/forge"
)

// ErrIO is the one error kind the adapter reports. Template failures and
// failed writes to the sink both surface as ErrIO; the cause stays in the
// chain for errors.Is/As and for logs.
var ErrIO = errors.New("render: could not produce output")

// Template is a template value bound to its data: it can render itself
// into a writer and report failure.
type Template interface {
	WriteInto(w io.Writer) error
}

// Adapter makes a Template usable as a forge payload. It holds the
// template without copying it and streams straight into the sink.
type Adapter struct {
	tmpl Template
}

// New wraps t in an Adapter.
func New(t Template) Adapter {
	return Adapter{tmpl: t}
}

// Template returns the wrapped template.
func (a Adapter) Template() Template {
	return a.tmpl
}

// Anvil renders the template into w.
func (a Adapter) Anvil(w io.Writer) error {
	if a.tmpl == nil {
		return fmt.Errorf("%w: no template", ErrIO)
	}
	if err := a.tmpl.WriteInto(w); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// Append returns t ready to be appended to an existing file:
//
//	err := render.Append(tmpl).Forge(ctx, "routes.go")
func Append(t Template) *forge.Append[Adapter] {
	return forge.NewAppend(New(t))
}

// Generate returns t ready to be written to a new file:
//
//	err := render.Generate(tmpl).Forge(ctx, "models/user.go")
func Generate(t Template) *forge.Generate[Adapter] {
	return forge.NewGenerate(New(t))
}
