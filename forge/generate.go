package forge

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultMode is the permission Generate gives new files.
const DefaultMode fs.FileMode = 0644

// Generate creates a new file holding its payload.
//
// Behavior:
//   - Creates parent directories if they don't exist
//   - Fails with an error matching fs.ErrExist if the path already exists;
//     the existing file is not opened for writing
//   - Removes the new file if the payload fails, so no partial file remains
type Generate[A Anvil] struct {
	payload A
	mode    fs.FileMode
}

// NewGenerate wraps payload in a generate operation.
func NewGenerate[A Anvil](payload A) *Generate[A] {
	return &Generate[A]{payload: payload, mode: DefaultMode}
}

// WithMode sets the permissions of the created file.
func (g *Generate[A]) WithMode(mode fs.FileMode) *Generate[A] {
	g.mode = mode
	return g
}

// Payload returns the wrapped payload.
func (g *Generate[A]) Payload() A {
	return g.payload
}

func (g *Generate[A]) Kind() Kind {
	return KindGenerate
}

// Render writes the payload to w without touching the filesystem.
func (g *Generate[A]) Render(w io.Writer) error {
	return g.payload.Anvil(w)
}

// Forge creates path and fills it with the payload.
func (g *Generate[A]) Forge(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}

	// O_EXCL makes the existence check and the create one step.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, g.mode)
	if err != nil {
		return fmt.Errorf("cannot generate %s: %w", path, err)
	}

	if err := g.payload.Anvil(f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to generate %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
