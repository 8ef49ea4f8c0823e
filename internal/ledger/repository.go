package ledger

import (
	"context"
	"time"
)

//go:generate mockgen -source=repository.go -destination=repository_mock.go -package=ledger

// Beginner opens a unit of work.
type Beginner interface {
	Begin(ctx context.Context) (Tx, error)
}

// Repository holds the read primitives used before a transfer and opens the
// transactions that apply it.
type Repository interface {
	Beginner

	FindProfile(ctx context.Context, id int64) (*Profile, error)
	// FindUnpaidJobsForClient skips jobs under terminated contracts.
	FindUnpaidJobsForClient(ctx context.Context, clientID int64) ([]*Job, error)
	// FindJobForPayment loads the job with its contract and the contract's client,
	// or ErrNotFound when the job does not exist or the contract is not clientID's.
	FindJobForPayment(ctx context.Context, jobID, clientID int64) (*Job, error)
}

// Tx is the write side of the ledger. Balances are only ever decremented through
// ConditionalUpdateBalance.
type Tx interface {
	// ConditionalUpdateBalance sets the balance to next only if it still equals
	// expected and returns the number of rows changed.
	ConditionalUpdateBalance(ctx context.Context, profileID, expected, next int64) (int64, error)
	IncrementBalance(ctx context.Context, profileID, delta int64) (int64, error)
	MarkJobPaid(ctx context.Context, jobID int64, paidAt time.Time) error
	RecordTransfer(ctx context.Context, t *Transfer) error
	Commit() error
	Rollback() error
}
