package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/marketplace/internal/report"
)

type Store struct {
	db *sql.DB
}

var _ report.Repository = (*Store)(nil)

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) TopProfessions(ctx context.Context, r report.Range, limit int) ([]report.ProfessionTotal, error) {
	query := `
		SELECT p.profession, SUM(j.price) AS total
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		JOIN profiles p ON p.id = c.contractor_id
		WHERE j.paid IS TRUE AND j.payment_date BETWEEN $1 AND $2
		GROUP BY p.profession
		ORDER BY total DESC, p.profession ASC
		LIMIT $3`

	rows, err := s.db.QueryContext(ctx, query, r.Start, r.End, limit)
	if err != nil {
		return nil, fmt.Errorf("querying professions: %w", err)
	}
	defer rows.Close()

	var totals []report.ProfessionTotal

	for rows.Next() {
		var t report.ProfessionTotal
		if err := rows.Scan(&t.Profession, &t.Total); err != nil {
			return nil, fmt.Errorf("scanning profession total: %w", err)
		}

		totals = append(totals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profession totals: %w", err)
	}

	return totals, nil
}

func (s *Store) TopClients(ctx context.Context, r report.Range, limit int) ([]report.ClientTotal, error) {
	query := `
		SELECT p.id, p.first_name, p.last_name, SUM(j.price) AS paid
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		JOIN profiles p ON p.id = c.client_id
		WHERE j.paid IS TRUE AND j.payment_date BETWEEN $1 AND $2
		GROUP BY p.id, p.first_name, p.last_name
		ORDER BY paid DESC, p.id ASC
		LIMIT $3`

	rows, err := s.db.QueryContext(ctx, query, r.Start, r.End, limit)
	if err != nil {
		return nil, fmt.Errorf("querying clients: %w", err)
	}
	defer rows.Close()

	var totals []report.ClientTotal

	for rows.Next() {
		var (
			t                   report.ClientTotal
			firstName, lastName string
		)

		if err := rows.Scan(&t.ID, &firstName, &lastName, &t.Paid); err != nil {
			return nil, fmt.Errorf("scanning client total: %w", err)
		}

		t.FullName = firstName + " " + lastName
		totals = append(totals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating client totals: %w", err)
	}

	return totals, nil
}
