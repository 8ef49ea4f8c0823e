package ledger

import (
	"context"
	"fmt"
	"time"
)

// DefaultTxTimeout bounds a transfer when no timeout is configured.
const DefaultTxTimeout = 5 * time.Second

// Coordinator runs a sequence of ledger writes as a single all-or-nothing unit.
type Coordinator struct {
	begin   Beginner
	timeout time.Duration
}

func NewCoordinator(b Beginner, timeout time.Duration) *Coordinator {
	if timeout <= 0 {
		timeout = DefaultTxTimeout
	}

	return &Coordinator{begin: b, timeout: timeout}
}

// Run calls fn inside a transaction. If fn returns an error or panics every write
// made through tx is rolled back before Run returns; otherwise the writes are
// committed. Errors from fn are returned unchanged.
func (c *Coordinator) Run(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	tx, err := c.begin.Begin(ctx)
	if err != nil {
		return Internal(fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return Internal(fmt.Errorf("committing transaction: %w", err))
	}

	return nil
}
