package report

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata" // ParseRange accepts IANA zones on hosts without a zoneinfo database

	"github.com/MrJamesThe3rd/marketplace/internal/ledger"
)

const (
	DateLayout       = time.DateOnly
	DefaultTimezone  = "UTC"
	DefaultClientCap = 2
)

var (
	ErrInvalidDate  = fmt.Errorf("%w: invalid date format, use YYYY-MM-DD (e.g. 2020-08-15)", ledger.ErrInvalidArgument)
	ErrInvertedSpan = fmt.Errorf("%w: start date must be less than or equal to end date", ledger.ErrInvalidArgument)
	ErrInvalidZone  = fmt.Errorf("%w: unknown timezone", ledger.ErrInvalidArgument)
	ErrInvalidLimit = fmt.Errorf("%w: limit must be a positive integer", ledger.ErrInvalidArgument)
)

// Range is an inclusive span of payment dates.
type Range struct {
	Start time.Time
	End   time.Time
}

// ParseRange reads start and end as calendar days in timezone and returns the
// span from the first instant of start to the last instant of end.
func ParseRange(start, end, timezone string) (Range, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Range{}, ErrInvalidZone
	}

	from, err := time.ParseInLocation(DateLayout, start, loc)
	if err != nil {
		return Range{}, ErrInvalidDate
	}

	to, err := time.ParseInLocation(DateLayout, end, loc)
	if err != nil {
		return Range{}, ErrInvalidDate
	}

	if from.After(to) {
		return Range{}, ErrInvertedSpan
	}

	return Range{Start: from, End: to.AddDate(0, 0, 1).Add(-time.Nanosecond)}, nil
}

type ProfessionTotal struct {
	Profession string
	Total      int64
}

type ClientTotal struct {
	ID       int64
	FullName string
	Paid     int64
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=report
type Repository interface {
	// TopProfessions sums paid job prices per contractor profession.
	TopProfessions(ctx context.Context, r Range, limit int) ([]ProfessionTotal, error)
	// TopClients sums paid job prices per client.
	TopClients(ctx context.Context, r Range, limit int) ([]ClientTotal, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) BestProfession(ctx context.Context, r Range) (*ProfessionTotal, error) {
	totals, err := s.repo.TopProfessions(ctx, r, 1)
	if err != nil {
		return nil, ledger.Internal(fmt.Errorf("ranking professions: %w", err))
	}

	if len(totals) == 0 {
		return nil, fmt.Errorf("%w: no paid jobs in the given range", ledger.ErrNotFound)
	}

	return &totals[0], nil
}

// BestClients returns up to limit clients ranked by amount paid. A zero limit
// means DefaultClientCap.
func (s *Service) BestClients(ctx context.Context, r Range, limit int) ([]ClientTotal, error) {
	if limit < 0 {
		return nil, ErrInvalidLimit
	}

	if limit == 0 {
		limit = DefaultClientCap
	}

	totals, err := s.repo.TopClients(ctx, r, limit)
	if err != nil {
		return nil, ledger.Internal(fmt.Errorf("ranking clients: %w", err))
	}

	if len(totals) == 0 {
		return nil, fmt.Errorf("%w: no paid jobs in the given range", ledger.ErrNotFound)
	}

	return totals, nil
}
