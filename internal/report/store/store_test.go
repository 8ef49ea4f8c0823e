package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/marketplace/internal/report"
)

func TestStore_TopProfessions(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := report.Range{
		Start: time.Date(2020, 8, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2020, 8, 17, 23, 59, 59, 999999999, time.UTC),
	}

	mock.ExpectQuery(`GROUP BY p.profession ORDER BY total DESC`).
		WithArgs(r.Start, r.End, int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"profession", "total"}).AddRow("Programmer", int64(2683)))

	got, err := New(db).TopProfessions(context.Background(), r, 1)
	require.NoError(t, err)
	assert.Equal(t, []report.ProfessionTotal{{Profession: "Programmer", Total: 2683}}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_TopClients(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := report.Range{Start: time.Unix(0, 0).UTC(), End: time.Unix(1e9, 0).UTC()}

	mock.ExpectQuery(`JOIN profiles p ON p.id = c.client_id .+ LIMIT \$3`).
		WithArgs(r.Start, r.End, int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "paid"}).
			AddRow(int64(4), "Ash", "Kethcum", int64(2020)).
			AddRow(int64(2), "Mr", "Robot", int64(442)))

	got, err := New(db).TopClients(context.Background(), r, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Ash Kethcum", got[0].FullName)
	assert.Equal(t, int64(442), got[1].Paid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_TopClients_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM jobs j`).WillReturnError(errors.New("canceling statement due to statement timeout"))

	_, err = New(db).TopClients(context.Background(), report.Range{}, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "querying clients")
}
