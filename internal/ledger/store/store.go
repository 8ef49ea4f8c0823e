package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/marketplace/internal/ledger"
)

type Store struct {
	db *sql.DB
}

var _ ledger.Repository = (*Store)(nil)

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectProfileColumns = `p.id, p.first_name, p.last_name, p.profession, p.balance, p.type, p.created_at, p.updated_at`

func scanProfile(s scanner) (*ledger.Profile, error) {
	var p ledger.Profile

	var typeStr string

	if err := s.Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Profession, &p.Balance, &typeStr, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.Type = ledger.ProfileType(typeStr)

	return &p, nil
}

func (s *Store) FindProfile(ctx context.Context, id int64) (*ledger.Profile, error) {
	query := `SELECT ` + selectProfileColumns + ` FROM profiles p WHERE p.id = $1`

	p, err := scanProfile(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("finding profile: %w", err)
	}

	return p, nil
}

func (s *Store) FindUnpaidJobsForClient(ctx context.Context, clientID int64) ([]*ledger.Job, error) {
	query := `
		SELECT j.id, j.description, j.price, COALESCE(j.paid, FALSE), j.payment_date, j.contract_id, j.created_at, j.updated_at
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		WHERE c.client_id = $1 AND c.status <> 'terminated' AND j.paid IS NOT TRUE
		ORDER BY j.id ASC`

	rows, err := s.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("listing unpaid jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*ledger.Job

	for rows.Next() {
		var j ledger.Job
		if err := rows.Scan(
			&j.ID, &j.Description, &j.Price, &j.Paid, &j.PaymentDate, &j.ContractID, &j.CreatedAt, &j.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning job: %w", err)
		}

		jobs = append(jobs, &j)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating unpaid jobs: %w", err)
	}

	return jobs, nil
}

func (s *Store) FindJobForPayment(ctx context.Context, jobID, clientID int64) (*ledger.Job, error) {
	query := `
		SELECT j.id, j.description, j.price, COALESCE(j.paid, FALSE), j.payment_date, j.contract_id,
			c.id, c.terms, c.status, c.client_id, c.contractor_id, ` + selectProfileColumns + `
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		JOIN profiles p ON p.id = c.client_id
		WHERE j.id = $1 AND c.client_id = $2`

	var (
		j         ledger.Job
		c         ledger.Contract
		client    ledger.Profile
		statusStr string
		typeStr   string
	)

	err := s.db.QueryRowContext(ctx, query, jobID, clientID).Scan(
		&j.ID, &j.Description, &j.Price, &j.Paid, &j.PaymentDate, &j.ContractID,
		&c.ID, &c.Terms, &statusStr, &c.ClientID, &c.ContractorID,
		&client.ID, &client.FirstName, &client.LastName, &client.Profession, &client.Balance, &typeStr,
		&client.CreatedAt, &client.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("finding job for payment: %w", err)
	}

	c.Status = ledger.ContractStatus(statusStr)
	client.Type = ledger.ProfileType(typeStr)
	c.Client = &client
	j.Contract = &c

	return &j, nil
}

type ledgerTx struct {
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (ledger.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning ledger tx: %w", err)
	}

	return &ledgerTx{tx: dbTx}, nil
}

func (ltx *ledgerTx) Commit() error   { return ltx.tx.Commit() }
func (ltx *ledgerTx) Rollback() error { return ltx.tx.Rollback() }

func (ltx *ledgerTx) ConditionalUpdateBalance(ctx context.Context, profileID, expected, next int64) (int64, error) {
	query := `UPDATE profiles SET balance = $1, updated_at = NOW() WHERE id = $2 AND balance = $3`

	res, err := ltx.tx.ExecContext(ctx, query, next, profileID, expected)
	if err != nil {
		return 0, fmt.Errorf("updating balance: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows: %w", err)
	}

	return n, nil
}

func (ltx *ledgerTx) IncrementBalance(ctx context.Context, profileID, delta int64) (int64, error) {
	query := `UPDATE profiles SET balance = balance + $1, updated_at = NOW() WHERE id = $2 RETURNING balance`

	var balance int64
	if err := ltx.tx.QueryRowContext(ctx, query, delta, profileID).Scan(&balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ledger.ErrNotFound
		}

		return 0, fmt.Errorf("incrementing balance: %w", err)
	}

	return balance, nil
}

// MarkJobPaid only touches unpaid rows, so a job racing through two payments
// is caught here even when the balances would allow both.
func (ltx *ledgerTx) MarkJobPaid(ctx context.Context, jobID int64, paidAt time.Time) error {
	query := `UPDATE jobs SET paid = TRUE, payment_date = $1, updated_at = NOW() WHERE id = $2 AND paid IS NOT TRUE`

	res, err := ltx.tx.ExecContext(ctx, query, paidAt, jobID)
	if err != nil {
		return fmt.Errorf("marking job paid: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return ledger.ErrConcurrentModification
	}

	return nil
}

func (ltx *ledgerTx) RecordTransfer(ctx context.Context, t *ledger.Transfer) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	query := `
		INSERT INTO transfers (id, kind, job_id, from_profile_id, to_profile_id, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`

	err := ltx.tx.QueryRowContext(ctx, query,
		t.ID,
		t.Kind,
		t.JobID,
		t.FromProfileID,
		t.ToProfileID,
		t.Amount,
	).Scan(&t.CreatedAt)
	if err != nil {
		return fmt.Errorf("recording transfer: %w", err)
	}

	return nil
}
