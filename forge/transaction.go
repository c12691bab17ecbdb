package forge

import (
	"context"
	"fmt"
)

// Transaction runs a set of operations as a unit.
// If any operation fails, the ones already run are undone.
type Transaction struct {
	operations []Operation
	undo       []func() error
	committed  bool
}

// NewTransaction creates a new operation transaction
func NewTransaction() *Transaction {
	return &Transaction{
		operations: make([]Operation, 0),
	}
}

// Add stages operations (doesn't run them yet)
func (t *Transaction) Add(ops ...Operation) {
	t.operations = append(t.operations, ops...)
}

// Len reports how many operations are staged.
func (t *Transaction) Len() int {
	return len(t.operations)
}

// Commit runs all staged operations in order.
// If one fails or ctx is cancelled, every operation attempted so far,
// including the failing one, is rolled back in reverse order.
func (t *Transaction) Commit(ctx context.Context) error {
	if t.committed {
		return fmt.Errorf("transaction already committed")
	}

	for _, op := range t.operations {
		if err := ctx.Err(); err != nil {
			t.rollback()
			return err
		}

		if r, ok := op.(Reversible); ok {
			undo, err := r.Checkpoint()
			if err != nil {
				t.rollback()
				return fmt.Errorf("failed to checkpoint %q: %w", op.Description(), err)
			}
			t.undo = append(t.undo, undo)
		}

		if err := op.Execute(ctx); err != nil {
			t.rollback()
			return fmt.Errorf("failed to %s: %w", lowerFirst(op.Description()), err)
		}
	}

	t.committed = true
	t.undo = nil
	return nil
}

// rollback restores checkpoints newest first
func (t *Transaction) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		_ = t.undo[i]() // Best effort, ignore errors
	}
	t.undo = nil
}

// Rollback manually triggers a rollback (for use in defer)
func (t *Transaction) Rollback() {
	if !t.committed {
		t.rollback()
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	if c := s[0]; c >= 'A' && c <= 'Z' {
		return string(c+'a'-'A') + s[1:]
	}
	return s
}
