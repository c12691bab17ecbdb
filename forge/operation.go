package forge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/go-cmp/cmp"
)

// Operation represents a file system operation that can be validated and executed.
//
// Validate checks if the operation would succeed without executing it and
// has no side effects.
//
// Execute performs the actual operation. This should only be called after Validate succeeds.
//
// Description returns a human-readable description for output (e.g., "Create models/user.go").
type Operation interface {
	Validate(ctx context.Context) error
	Execute(ctx context.Context) error
	Description() string
}

// Reversible operations can record the state of their target before Execute
// and hand back a function that restores it.
type Reversible interface {
	Operation
	Checkpoint() (undo func() error, err error)
}

// FileOp binds a Step to the path it forges.
type FileOp struct {
	Path string
	Step Step
}

// At binds step to path.
func At(path string, step Step) *FileOp {
	return &FileOp{Path: path, Step: step}
}

// Validate checks the target against the step's contract:
//   - generate: the path must not exist
//   - append: the path must exist and be a regular file
func (op *FileOp) Validate(ctx context.Context) error {
	return op.validate(ctx, nil)
}

// validate is Validate with planned holding the cleaned paths that earlier
// operations of the same run generate. Those count as existing regular files.
func (op *FileOp) validate(ctx context.Context, planned map[string]bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	exists, regular := planned[filepath.Clean(op.Path)], true
	if !exists {
		info, err := os.Stat(op.Path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot stat %s: %w", op.Path, err)
		}
		exists = err == nil
		regular = exists && info.Mode().IsRegular()
	}

	switch op.Step.Kind() {
	case KindGenerate:
		if exists {
			return fmt.Errorf("file already exists: %s: %w", op.Path, fs.ErrExist)
		}
	case KindAppend:
		if !exists {
			return fmt.Errorf("file does not exist: %s: %w", op.Path, fs.ErrNotExist)
		}
		if !regular {
			return fmt.Errorf("not a regular file: %s", op.Path)
		}
	default:
		return fmt.Errorf("unknown operation %q for %s", op.Step.Kind(), op.Path)
	}
	return nil
}

// Execute forges the step at the path.
func (op *FileOp) Execute(ctx context.Context) error {
	return op.Step.Forge(ctx, op.Path)
}

func (op *FileOp) Description() string {
	if op.Step.Kind() == KindAppend {
		return "Append to " + op.Path
	}
	return "Create " + op.Path
}

// Checkpoint records whether the target exists and how large it is. The
// returned undo removes a file that did not exist, along with any parent
// directories that were missing, or truncates one that did back to its
// recorded size.
func (op *FileOp) Checkpoint() (func() error, error) {
	info, err := os.Stat(op.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		dirs := missingDirs(op.Path)
		return func() error {
			if err := os.Remove(op.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			// Deepest first; stop at the first one something else now uses
			for _, dir := range dirs {
				if err := os.Remove(dir); err != nil && !errors.Is(err, fs.ErrNotExist) {
					break
				}
			}
			return nil
		}, nil
	case err != nil:
		return nil, fmt.Errorf("cannot stat %s: %w", op.Path, err)
	}

	size := info.Size()
	return func() error {
		return os.Truncate(op.Path, size)
	}, nil
}

// missingDirs lists the ancestors of path that do not exist, deepest first.
func missingDirs(path string) []string {
	var dirs []string
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		if _, err := os.Stat(dir); !errors.Is(err, fs.ErrNotExist) {
			break
		}
		dirs = append(dirs, dir)
		if filepath.Dir(dir) == dir {
			break
		}
	}
	return dirs
}

// Contents returns what the file holds now and what it would hold after
// the step runs. A missing file reads as empty.
func (op *FileOp) Contents() (current, next []byte, err error) {
	current, err = os.ReadFile(op.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("failed to read %s: %w", op.Path, err)
	}

	var buf bytes.Buffer
	if op.Step.Kind() == KindAppend {
		buf.Write(current)
	}
	if err := op.Step.Render(&buf); err != nil {
		return nil, nil, fmt.Errorf("failed to render %s: %w", op.Path, err)
	}
	return current, buf.Bytes(), nil
}

// Preview returns a diff of the change the step would make, or "" if the
// file would be left as it is.
func (op *FileOp) Preview() (string, error) {
	current, next, err := op.Contents()
	if err != nil {
		return "", err
	}
	return cmp.Diff(string(current), string(next)), nil
}
