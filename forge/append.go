package forge

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Append adds its payload to the end of an existing file.
//
// The target must already exist: Append never creates files, so a missing
// path fails with an error matching fs.ErrNotExist and leaves nothing behind.
type Append[A Anvil] struct {
	payload A
}

// NewAppend wraps payload in an append operation.
func NewAppend[A Anvil](payload A) *Append[A] {
	return &Append[A]{payload: payload}
}

// Payload returns the wrapped payload.
func (a *Append[A]) Payload() A {
	return a.payload
}

func (a *Append[A]) Kind() Kind {
	return KindAppend
}

// Render writes the payload to w without touching the filesystem.
func (a *Append[A]) Render(w io.Writer) error {
	return a.payload.Anvil(w)
}

// Forge appends the payload to path.
func (a *Append[A]) Forge(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// No O_CREATE: a missing file is an error, not a new file.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return fmt.Errorf("cannot append to %s: %w", path, err)
	}

	if err := a.payload.Anvil(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to append to %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
