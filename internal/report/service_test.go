package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/marketplace/internal/ledger"
	"github.com/MrJamesThe3rd/marketplace/internal/report"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		timezone  string
		wantStart time.Time
		wantEnd   time.Time
		wantErr   error
	}{
		{
			name:      "DefaultsToUTC",
			start:     "2020-08-15",
			end:       "2020-08-17",
			wantStart: time.Date(2020, 8, 15, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2020, 8, 17, 23, 59, 59, 999999999, time.UTC),
		},
		{
			name:      "SingleDay",
			start:     "2020-08-15",
			end:       "2020-08-15",
			wantStart: time.Date(2020, 8, 15, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2020, 8, 15, 23, 59, 59, 999999999, time.UTC),
		},
		{
			name:      "OffsetZone",
			start:     "2020-08-15",
			end:       "2020-08-15",
			timezone:  "Etc/GMT-2",
			wantStart: time.Date(2020, 8, 14, 22, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2020, 8, 15, 21, 59, 59, 999999999, time.UTC),
		},
		{name: "BadStart", start: "15/08/2020", end: "2020-08-15", wantErr: report.ErrInvalidDate},
		{name: "BadEnd", start: "2020-08-15", end: "2020-02-30", wantErr: report.ErrInvalidDate},
		{name: "Inverted", start: "2020-08-16", end: "2020-08-15", wantErr: report.ErrInvertedSpan},
		{name: "UnknownZone", start: "2020-08-15", end: "2020-08-16", timezone: "Mars/Olympus", wantErr: report.ErrInvalidZone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := report.ParseRange(tt.start, tt.end, tt.timezone)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, ledger.KindInvalidArgument, ledger.KindOf(err))

				return
			}

			require.NoError(t, err)
			assert.True(t, tt.wantStart.Equal(got.Start), "start = %s", got.Start)
			assert.True(t, tt.wantEnd.Equal(got.End), "end = %s", got.End)
		})
	}
}

func TestService_BestProfession(t *testing.T) {
	r := report.Range{Start: time.Unix(0, 0), End: time.Now()}

	type testCase struct {
		name      string
		setupMock func(m *report.MockRepository)
		want      *report.ProfessionTotal
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Found",
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().TopProfessions(gomock.Any(), r, 1).
					Return([]report.ProfessionTotal{{Profession: "Programmer", Total: 2683}}, nil)
			},
			want: &report.ProfessionTotal{Profession: "Programmer", Total: 2683},
		},
		{
			name: "NoPaidJobs",
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().TopProfessions(gomock.Any(), r, 1).Return(nil, nil)
			},
			wantErr: ledger.ErrNotFound,
		},
		{
			name: "StoreError",
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().TopProfessions(gomock.Any(), r, 1).Return(nil, errors.New("timeout"))
			},
			wantErr: ledger.ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := report.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := report.NewService(repo).BestProfession(context.Background(), r)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_BestClients(t *testing.T) {
	r := report.Range{Start: time.Unix(0, 0), End: time.Now()}

	type testCase struct {
		name      string
		limit     int
		setupMock func(m *report.MockRepository)
		wantLen   int
		wantErr   error
	}

	tests := []testCase{
		{
			name:  "DefaultLimit",
			limit: 0,
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().TopClients(gomock.Any(), r, report.DefaultClientCap).
					Return([]report.ClientTotal{{ID: 4, FullName: "Ash Kethcum", Paid: 2020}, {ID: 2, FullName: "Mr Robot", Paid: 442}}, nil)
			},
			wantLen: 2,
		},
		{
			name:  "ExplicitLimit",
			limit: 3,
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().TopClients(gomock.Any(), r, 3).
					Return([]report.ClientTotal{{ID: 4}, {ID: 2}, {ID: 1}}, nil)
			},
			wantLen: 3,
		},
		{
			name:    "NegativeLimit",
			limit:   -1,
			wantErr: ledger.ErrInvalidArgument,
		},
		{
			name:  "Empty",
			limit: 2,
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().TopClients(gomock.Any(), r, 2).Return(nil, nil)
			},
			wantErr: ledger.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := report.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := report.NewService(repo).BestClients(context.Background(), r, tt.limit)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}
