package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/marketplace/internal/money"
)

var (
	ErrInvalidArgument        = errors.New("invalid argument")
	ErrForbidden              = errors.New("forbidden")
	ErrNotFound               = errors.New("not found")
	ErrLimitExceeded          = errors.New("deposit limit exceeded")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrConcurrentModification = errors.New("balance update conflict, please retry")
	ErrInternal               = errors.New("internal error")
)

// Kind is the stable, client-facing name of an error category.
type Kind string

const (
	KindInvalidArgument        Kind = "invalid_argument"
	KindForbidden              Kind = "forbidden"
	KindNotFound               Kind = "not_found"
	KindLimitExceeded          Kind = "limit_exceeded"
	KindInsufficientFunds      Kind = "insufficient_funds"
	KindConcurrentModification Kind = "concurrent_modification"
	KindInternal               Kind = "internal"
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrInvalidArgument, KindInvalidArgument},
	{ErrForbidden, KindForbidden},
	{ErrNotFound, KindNotFound},
	{ErrLimitExceeded, KindLimitExceeded},
	{ErrInsufficientFunds, KindInsufficientFunds},
	{ErrConcurrentModification, KindConcurrentModification},
}

// KindOf reports the category of err. Errors marked with Internal and errors
// outside the known set are internal.
func KindOf(err error) Kind {
	if errors.Is(err, ErrInternal) {
		return KindInternal
	}

	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}

	return KindInternal
}

// Retryable reports whether the operation may succeed if repeated from scratch.
func Retryable(err error) bool {
	return errors.Is(err, ErrConcurrentModification)
}

// Internal marks err as a storage or transaction failure.
func Internal(err error) error {
	if err == nil || errors.Is(err, ErrInternal) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrInternal, err)
}

// Classify keeps errors that already carry a kind and marks the rest internal.
func Classify(err error) error {
	if err == nil || KindOf(err) != KindInternal {
		return err
	}

	return Internal(err)
}

// LimitExceededError is returned when a deposit is above the allowed cap.
type LimitExceededError struct {
	MaxAllowed decimal.Decimal
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf(
		"deposit amount exceeds the limit, you can only deposit up to 25%% of your total outstanding job payments, which is %s",
		money.Format(e.MaxAllowed),
	)
}

func (e *LimitExceededError) Unwrap() error { return ErrLimitExceeded }

// InsufficientFundsError is returned when a client balance cannot cover a job price.
type InsufficientFundsError struct {
	Shortfall int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient balance, add %s more to your wallet", money.FormatInt(e.Shortfall))
}

func (e *InsufficientFundsError) Unwrap() error { return ErrInsufficientFunds }
