package forge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// ErrDrift marks a file whose contents no longer match what its operation
// would produce.
var ErrDrift = errors.New("drift")

// verifyLimit bounds how many files Verify reads at once.
const verifyLimit = 8

// Verify checks, without writing anything, that the files on disk already
// hold what ops would produce. It is meant for CI: run the generator in
// verify mode to make sure committed output is up to date.
//
//   - generate: the file must exist with exactly the rendered content, or
//     start with it when a later op appends to the same path
//   - append: the file must exist and end with the rendered content
//
// Every drifted file is reported; the result is a *multierror.Error whose
// entries match ErrDrift. I/O failures other than a missing file abort.
func Verify(ctx context.Context, ops []*FileOp) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(verifyLimit)

	var (
		mu     sync.Mutex
		result *multierror.Error
	)

	// Generated files that a later op appends to
	extended := make(map[*FileOp]bool)
	appended := make(map[string]bool)
	for i := len(ops) - 1; i >= 0; i-- {
		path := filepath.Clean(ops[i].Path)
		switch ops[i].Step.Kind() {
		case KindAppend:
			appended[path] = true
		case KindGenerate:
			extended[ops[i]] = appended[path]
		}
	}

	for _, op := range ops {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			drift, err := op.drift(extended[op])
			if err != nil {
				return err
			}
			if drift != nil {
				mu.Lock()
				result = multierror.Append(result, drift)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("io error while verifying: %w", err)
	}
	return result.ErrorOrNil()
}

// drift returns a non-nil drift error when the file is out of date, or err
// when it could not be checked at all. With extended, a generated file only
// has to start with its rendered content.
func (op *FileOp) drift(extended bool) (drift error, err error) {
	if _, err := os.Stat(op.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s: file should exist, but does not", ErrDrift, op.Path), nil
		}
		return nil, fmt.Errorf("%s: could not stat file: %w", op.Path, err)
	}

	current, err := os.ReadFile(op.Path)
	if err != nil {
		return nil, fmt.Errorf("%s: error reading file: %w", op.Path, err)
	}

	var rendered bytes.Buffer
	if err := op.Step.Render(&rendered); err != nil {
		return nil, fmt.Errorf("%s: failed to render: %w", op.Path, err)
	}

	if op.Step.Kind() == KindAppend {
		if !bytes.HasSuffix(current, rendered.Bytes()) {
			return fmt.Errorf("%w: %s does not end with its appended content", ErrDrift, op.Path), nil
		}
		return nil, nil
	}

	if extended {
		if !bytes.HasPrefix(current, rendered.Bytes()) {
			return fmt.Errorf("%w: %s does not start with its generated content", ErrDrift, op.Path), nil
		}
		return nil, nil
	}

	if diff := cmp.Diff(string(current), rendered.String()); diff != "" {
		return fmt.Errorf("%w: %s would have changed:\n\n%s", ErrDrift, op.Path, diff), nil
	}
	return nil, nil
}
