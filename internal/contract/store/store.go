package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/marketplace/internal/contract"
	"github.com/MrJamesThe3rd/marketplace/internal/ledger"
)

type Store struct {
	db *sql.DB
}

var _ contract.Repository = (*Store)(nil)

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectContractColumns = `c.id, c.terms, c.status, c.client_id, c.contractor_id, c.created_at, c.updated_at`

// unpaidContractsWhere matches non-terminated contracts on either side of $1
// with at least one unpaid job.
const unpaidContractsWhere = `
	WHERE c.status <> 'terminated'
		AND (c.client_id = $1 OR c.contractor_id = $1)
		AND EXISTS (SELECT 1 FROM jobs j WHERE j.contract_id = c.id AND j.paid IS NOT TRUE)`

func scanContract(s scanner, extra ...any) (*ledger.Contract, error) {
	var c ledger.Contract

	var statusStr string

	dest := append([]any{&c.ID, &c.Terms, &statusStr, &c.ClientID, &c.ContractorID, &c.CreatedAt, &c.UpdatedAt}, extra...)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}

	c.Status = ledger.ContractStatus(statusStr)

	return &c, nil
}

func sideColumn(role ledger.ProfileType) string {
	if role == ledger.ProfileTypeContractor {
		return "c.contractor_id"
	}

	return "c.client_id"
}

func (s *Store) ListContracts(ctx context.Context, role ledger.ProfileType, profileID int64) ([]*ledger.Contract, error) {
	query := `SELECT ` + selectContractColumns + ` FROM contracts c
		WHERE ` + sideColumn(role) + ` = $1 AND c.status <> 'terminated'
		ORDER BY c.id ASC`

	rows, err := s.db.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}
	defer rows.Close()

	var contracts []*ledger.Contract

	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contract: %w", err)
		}

		contracts = append(contracts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contracts: %w", err)
	}

	return contracts, nil
}

func (s *Store) GetContract(ctx context.Context, id int64, role ledger.ProfileType, profileID int64) (*ledger.Contract, error) {
	query := `SELECT ` + selectContractColumns + ` FROM contracts c
		WHERE c.id = $1 AND ` + sideColumn(role) + ` = $2 AND c.status <> 'terminated'`

	c, err := scanContract(s.db.QueryRowContext(ctx, query, id, profileID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting contract: %w", err)
	}

	return c, nil
}

func (s *Store) ListUnpaid(ctx context.Context, profileID int64, limit, offset int) ([]*ledger.Contract, error) {
	query := `
		WITH page AS (
			SELECT ` + selectContractColumns + ` FROM contracts c` + unpaidContractsWhere + `
			ORDER BY c.id ASC
			LIMIT $2 OFFSET $3
		)
		SELECT p.id, p.terms, p.status, p.client_id, p.contractor_id, p.created_at, p.updated_at,
			j.id, j.description, j.price, j.payment_date, j.created_at, j.updated_at
		FROM page p
		JOIN jobs j ON j.contract_id = p.id AND j.paid IS NOT TRUE
		ORDER BY p.id ASC, j.id ASC`

	rows, err := s.db.QueryContext(ctx, query, profileID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing unpaid contracts: %w", err)
	}
	defer rows.Close()

	var contracts []*ledger.Contract

	for rows.Next() {
		var j ledger.Job

		c, err := scanContract(rows, &j.ID, &j.Description, &j.Price, &j.PaymentDate, &j.CreatedAt, &j.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning unpaid job: %w", err)
		}

		j.ContractID = c.ID

		if n := len(contracts); n == 0 || contracts[n-1].ID != c.ID {
			contracts = append(contracts, c)
		}

		last := contracts[len(contracts)-1]
		last.Jobs = append(last.Jobs, &j)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating unpaid contracts: %w", err)
	}

	return contracts, nil
}

func (s *Store) CountUnpaid(ctx context.Context, profileID int64) (int, error) {
	query := `SELECT COUNT(*) FROM contracts c` + unpaidContractsWhere

	var n int
	if err := s.db.QueryRowContext(ctx, query, profileID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting unpaid contracts: %w", err)
	}

	return n, nil
}
