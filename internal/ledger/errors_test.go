package ledger_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/marketplace/internal/ledger"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ledger.Kind
	}{
		{name: "InvalidArgument", err: fmt.Errorf("%w: amount must be positive", ledger.ErrInvalidArgument), want: ledger.KindInvalidArgument},
		{name: "Forbidden", err: ledger.ErrForbidden, want: ledger.KindForbidden},
		{name: "NotFound", err: fmt.Errorf("finding job: %w", ledger.ErrNotFound), want: ledger.KindNotFound},
		{name: "LimitExceeded", err: &ledger.LimitExceededError{MaxAllowed: decimal.NewFromInt(50)}, want: ledger.KindLimitExceeded},
		{name: "InsufficientFunds", err: &ledger.InsufficientFundsError{Shortfall: 30}, want: ledger.KindInsufficientFunds},
		{name: "ConcurrentModification", err: ledger.ErrConcurrentModification, want: ledger.KindConcurrentModification},
		{name: "Internal", err: ledger.Internal(errors.New("disk full")), want: ledger.KindInternal},
		{name: "InternalWinsOverNotFound", err: ledger.Internal(fmt.Errorf("crediting contractor: %w", ledger.ErrNotFound)), want: ledger.KindInternal},
		{name: "Unknown", err: errors.New("boom"), want: ledger.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ledger.KindOf(tt.err))
		})
	}
}

func TestRetryable(t *testing.T) {
	assert.True(t, ledger.Retryable(fmt.Errorf("paying job: %w", ledger.ErrConcurrentModification)))
	assert.False(t, ledger.Retryable(&ledger.InsufficientFundsError{Shortfall: 1}))
	assert.False(t, ledger.Retryable(ledger.ErrForbidden))
}

func TestTypedErrorMessages(t *testing.T) {
	limit := &ledger.LimitExceededError{MaxAllowed: decimal.NewFromInt(50)}
	assert.Contains(t, limit.Error(), "which is 50")

	funds := &ledger.InsufficientFundsError{Shortfall: 30}
	assert.Equal(t, "insufficient balance, add 30 more to your wallet", funds.Error())

	var target *ledger.InsufficientFundsError
	assert.True(t, errors.As(fmt.Errorf("paying: %w", funds), &target))
	assert.Equal(t, int64(30), target.Shortfall)
}

func TestInternal(t *testing.T) {
	assert.NoError(t, ledger.Internal(nil))

	wrapped := ledger.Internal(errors.New("disk full"))
	assert.ErrorIs(t, wrapped, ledger.ErrInternal)
	assert.Equal(t, wrapped, ledger.Internal(wrapped))
}

func TestClassify(t *testing.T) {
	assert.NoError(t, ledger.Classify(nil))
	assert.Equal(t, ledger.ErrNotFound, ledger.Classify(ledger.ErrNotFound))
	assert.ErrorIs(t, ledger.Classify(errors.New("connection refused")), ledger.ErrInternal)
}
