package forge

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// ExecuteOptions configures execution behavior
type ExecuteOptions struct {
	DryRun  bool
	Preview bool         // With DryRun, print the diff each operation would cause
	Writer  io.Writer    // Where to write output (defaults to os.Stdout)
	Logger  *slog.Logger // Defaults to discarding
}

// previewer is implemented by operations that can show their change up front.
type previewer interface {
	Preview() (string, error)
}

// Execute runs operations with validation.
//
// Every operation is validated before any runs. The run itself happens in a
// Transaction, so a failure part-way leaves the files as they were.
func Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) error {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	// Phase 1: Validate all operations. A file generated earlier in the
	// run already exists for the operations after it.
	planned := make(map[string]bool)
	for _, op := range ops {
		logger.Debug("validating operation", "op", op.Description())

		f, ok := op.(*FileOp)
		if !ok {
			if err := op.Validate(ctx); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			continue
		}
		if err := f.validate(ctx, planned); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		if f.Step.Kind() == KindGenerate {
			planned[filepath.Clean(f.Path)] = true
		}
	}

	// Phase 2: Report or run
	if opts.DryRun {
		for _, op := range ops {
			fmt.Fprintf(opts.Writer, "✓ [DRY RUN] %s\n", op.Description())
			if !opts.Preview {
				continue
			}
			p, ok := op.(previewer)
			if !ok {
				continue
			}
			diff, err := p.Preview()
			if err != nil {
				return fmt.Errorf("preview failed: %w", err)
			}
			if diff != "" {
				fmt.Fprintln(opts.Writer, diff)
			}
		}
		return nil
	}

	tx := NewTransaction()
	tx.Add(ops...)
	if err := tx.Commit(ctx); err != nil {
		logger.Error("operations rolled back", "count", tx.Len(), "err", err)
		return fmt.Errorf("execution failed: %w", err)
	}

	for _, op := range ops {
		logger.Info("forged", "op", op.Description())
		fmt.Fprintf(opts.Writer, "✓ %s\n", op.Description())
	}
	return nil
}
