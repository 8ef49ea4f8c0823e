package deposit

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/marketplace/internal/ledger"
)

// capRatio is the share of a client's outstanding job payments they may deposit.
var capRatio = decimal.RequireFromString("0.25")

var (
	ErrContractorDeposit = fmt.Errorf("%w: contractors are not allowed to deposit money", ledger.ErrForbidden)
	ErrAmountNotPositive = fmt.Errorf("%w: deposit amount must be a positive integer", ledger.ErrInvalidArgument)
)

type Service struct {
	repo  ledger.Repository
	coord *ledger.Coordinator
}

func NewService(repo ledger.Repository, coord *ledger.Coordinator) *Service {
	return &Service{repo: repo, coord: coord}
}

type Result struct {
	ProfileID int64
	Amount    int64
	Balance   int64
}

// MaxAllowed returns the largest deposit clientID may make right now.
func (s *Service) MaxAllowed(ctx context.Context, clientID int64) (decimal.Decimal, error) {
	jobs, err := s.repo.FindUnpaidJobsForClient(ctx, clientID)
	if err != nil {
		return decimal.Zero, ledger.Internal(fmt.Errorf("listing unpaid jobs: %w", err))
	}

	var total int64
	for _, j := range jobs {
		total += j.Price
	}

	return decimal.NewFromInt(total).Mul(capRatio), nil
}

func (s *Service) Deposit(ctx context.Context, clientID, amount int64) (*Result, error) {
	profile, err := s.repo.FindProfile(ctx, clientID)
	if err != nil {
		return nil, ledger.Classify(err)
	}

	if profile.IsContractor() {
		return nil, ErrContractorDeposit
	}

	if amount <= 0 {
		return nil, ErrAmountNotPositive
	}

	maxAllowed, err := s.MaxAllowed(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if decimal.NewFromInt(amount).GreaterThan(maxAllowed) {
		return nil, &ledger.LimitExceededError{MaxAllowed: maxAllowed}
	}

	res := &Result{ProfileID: clientID, Amount: amount}

	err = s.coord.Run(ctx, func(ctx context.Context, tx ledger.Tx) error {
		balance, err := tx.IncrementBalance(ctx, clientID, amount)
		if err != nil {
			return ledger.Internal(fmt.Errorf("crediting client: %w", err))
		}

		if err := tx.RecordTransfer(ctx, &ledger.Transfer{
			Kind:        ledger.TransferKindDeposit,
			ToProfileID: clientID,
			Amount:      amount,
		}); err != nil {
			return ledger.Internal(fmt.Errorf("recording deposit: %w", err))
		}

		res.Balance = balance

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}
