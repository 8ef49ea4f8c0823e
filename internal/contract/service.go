package contract

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/marketplace/internal/ledger"
)

// PageSize is the number of contracts returned per unpaid-jobs page.
const PageSize = 10

var ErrInvalidPage = fmt.Errorf("%w: page must be a positive integer", ledger.ErrInvalidArgument)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=contract
type Repository interface {
	// ListContracts returns the non-terminated contracts where profileID is on
	// the side given by role.
	ListContracts(ctx context.Context, role ledger.ProfileType, profileID int64) ([]*ledger.Contract, error)
	GetContract(ctx context.Context, id int64, role ledger.ProfileType, profileID int64) (*ledger.Contract, error)

	// ListUnpaid returns non-terminated contracts on either side of profileID that
	// still have unpaid jobs, with those jobs loaded.
	ListUnpaid(ctx context.Context, profileID int64, limit, offset int) ([]*ledger.Contract, error)
	CountUnpaid(ctx context.Context, profileID int64) (int, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type UnpaidPage struct {
	Contracts      []*ledger.Contract
	Page           int
	PageSize       int
	TotalContracts int
	TotalPages     int
}

func (s *Service) List(ctx context.Context, profile *ledger.Profile) ([]*ledger.Contract, error) {
	contracts, err := s.repo.ListContracts(ctx, profile.Type, profile.ID)
	if err != nil {
		return nil, ledger.Classify(err)
	}

	return contracts, nil
}

func (s *Service) Get(ctx context.Context, profile *ledger.Profile, id int64) (*ledger.Contract, error) {
	c, err := s.repo.GetContract(ctx, id, profile.Type, profile.ID)
	if err != nil {
		return nil, ledger.Classify(err)
	}

	return c, nil
}

func (s *Service) ListUnpaid(ctx context.Context, profile *ledger.Profile, page int) (*UnpaidPage, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}

	contracts, err := s.repo.ListUnpaid(ctx, profile.ID, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, ledger.Classify(err)
	}

	total, err := s.repo.CountUnpaid(ctx, profile.ID)
	if err != nil {
		return nil, ledger.Classify(err)
	}

	return &UnpaidPage{
		Contracts:      contracts,
		Page:           page,
		PageSize:       PageSize,
		TotalContracts: total,
		TotalPages:     (total + PageSize - 1) / PageSize,
	}, nil
}
