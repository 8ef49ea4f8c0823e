package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/marketplace/internal/ledger"
)

var (
	ErrContractorPayment  = fmt.Errorf("%w: contractors are not allowed to pay for jobs", ledger.ErrForbidden)
	ErrContractTerminated = fmt.Errorf("%w: payments for terminated contracts are not allowed", ledger.ErrForbidden)
)

type Service struct {
	repo  ledger.Repository
	coord *ledger.Coordinator
	now   func() time.Time
}

func NewService(repo ledger.Repository, coord *ledger.Coordinator) *Service {
	return &Service{repo: repo, coord: coord, now: time.Now}
}

// Result describes a settled job. AlreadyPaid is set when the job had been paid
// before this call, in which case nothing was written.
type Result struct {
	JobID         int64
	AlreadyPaid   bool
	PaidAt        time.Time
	Amount        int64
	ClientBalance int64
}

// Pay moves the job price from the client to the contractor and marks the job
// paid. The client balance observed before the transaction is the expected value
// of the debit, so a balance that moved in between fails the whole payment with
// ledger.ErrConcurrentModification.
func (s *Service) Pay(ctx context.Context, jobID, clientID int64) (*Result, error) {
	profile, err := s.repo.FindProfile(ctx, clientID)
	if err != nil {
		return nil, ledger.Classify(err)
	}

	if profile.IsContractor() {
		return nil, ErrContractorPayment
	}

	job, err := s.repo.FindJobForPayment(ctx, jobID, clientID)
	if err != nil {
		return nil, ledger.Classify(err)
	}

	contract := job.Contract
	if contract == nil || contract.Client == nil {
		return nil, ledger.Internal(fmt.Errorf("job %d loaded without its contract", jobID))
	}

	if contract.IsTerminated() {
		return nil, ErrContractTerminated
	}

	observed := contract.Client.Balance

	if job.Paid {
		res := &Result{JobID: job.ID, AlreadyPaid: true, Amount: job.Price, ClientBalance: observed}
		if job.PaymentDate != nil {
			res.PaidAt = *job.PaymentDate
		}

		return res, nil
	}

	if job.Price > observed {
		return nil, &ledger.InsufficientFundsError{Shortfall: job.Price - observed}
	}

	paidAt := s.now().UTC()
	next := observed - job.Price

	err = s.coord.Run(ctx, func(ctx context.Context, tx ledger.Tx) error {
		if err := tx.MarkJobPaid(ctx, job.ID, paidAt); err != nil {
			if errors.Is(err, ledger.ErrConcurrentModification) {
				return err
			}

			return ledger.Internal(fmt.Errorf("marking job paid: %w", err))
		}

		n, err := tx.ConditionalUpdateBalance(ctx, clientID, observed, next)
		if err != nil {
			return ledger.Internal(fmt.Errorf("debiting client: %w", err))
		}

		if n == 0 {
			return ledger.ErrConcurrentModification
		}

		if _, err := tx.IncrementBalance(ctx, contract.ContractorID, job.Price); err != nil {
			return ledger.Internal(fmt.Errorf("crediting contractor: %w", err))
		}

		if err := tx.RecordTransfer(ctx, &ledger.Transfer{
			Kind:          ledger.TransferKindPayment,
			JobID:         new(job.ID),
			FromProfileID: new(clientID),
			ToProfileID:   contract.ContractorID,
			Amount:        job.Price,
		}); err != nil {
			return ledger.Internal(fmt.Errorf("recording payment: %w", err))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		JobID:         job.ID,
		PaidAt:        paidAt,
		Amount:        job.Price,
		ClientBalance: next,
	}, nil
}
