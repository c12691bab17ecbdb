package forge

import (
	"context"
	"io"
)

// Anvil is the payload of a file operation: something that can write the
// bytes of a file into w. Template adapters are the usual Anvils.
type Anvil interface {
	Anvil(w io.Writer) error
}

// Forge applies itself to the file at path.
type Forge interface {
	Forge(ctx context.Context, path string) error
}

// Kind names what a Step does to its target.
type Kind string

const (
	KindAppend   Kind = "append"
	KindGenerate Kind = "generate"
)

// Step is a Forge whose payload can also be rendered in memory, which is
// what previews and drift checks need. Append and Generate are Steps.
type Step interface {
	Forge
	Kind() Kind
	Render(w io.Writer) error
}
