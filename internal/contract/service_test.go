package contract_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/marketplace/internal/contract"
	"github.com/MrJamesThe3rd/marketplace/internal/ledger"
)

var (
	client     = &ledger.Profile{ID: 1, Type: ledger.ProfileTypeClient}
	contractor = &ledger.Profile{ID: 6, Type: ledger.ProfileTypeContractor}
)

func TestService_List(t *testing.T) {
	type testCase struct {
		name      string
		profile   *ledger.Profile
		setupMock func(m *contract.MockRepository)
		wantLen   int
		wantErr   error
	}

	tests := []testCase{
		{
			name:    "ClientSide",
			profile: client,
			setupMock: func(m *contract.MockRepository) {
				m.EXPECT().
					ListContracts(gomock.Any(), ledger.ProfileTypeClient, int64(1)).
					Return([]*ledger.Contract{{ID: 1}, {ID: 2}}, nil)
			},
			wantLen: 2,
		},
		{
			name:    "ContractorSide",
			profile: contractor,
			setupMock: func(m *contract.MockRepository) {
				m.EXPECT().
					ListContracts(gomock.Any(), ledger.ProfileTypeContractor, int64(6)).
					Return([]*ledger.Contract{{ID: 3}}, nil)
			},
			wantLen: 1,
		},
		{
			name:    "StoreError",
			profile: client,
			setupMock: func(m *contract.MockRepository) {
				m.EXPECT().
					ListContracts(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("list error"))
			},
			wantErr: ledger.ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := contract.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := contract.NewService(repo)
			got, err := svc.List(context.Background(), tt.profile)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := contract.NewMockRepository(ctrl)
	repo.EXPECT().GetContract(gomock.Any(), int64(1), ledger.ProfileTypeClient, int64(1)).
		Return(&ledger.Contract{ID: 1, ClientID: 1}, nil)
	repo.EXPECT().GetContract(gomock.Any(), int64(3), ledger.ProfileTypeClient, int64(1)).
		Return(nil, ledger.ErrNotFound)

	svc := contract.NewService(repo)

	got, err := svc.Get(context.Background(), client, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)

	_, err = svc.Get(context.Background(), client, 3)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
	assert.Equal(t, ledger.KindNotFound, ledger.KindOf(err))
}

func TestService_ListUnpaid(t *testing.T) {
	type testCase struct {
		name      string
		page      int
		setupMock func(m *contract.MockRepository)
		want      *contract.UnpaidPage
		wantErr   error
	}

	tests := []testCase{
		{
			name: "FirstPage",
			page: 1,
			setupMock: func(m *contract.MockRepository) {
				m.EXPECT().ListUnpaid(gomock.Any(), int64(1), contract.PageSize, 0).
					Return([]*ledger.Contract{{ID: 2}}, nil)
				m.EXPECT().CountUnpaid(gomock.Any(), int64(1)).Return(1, nil)
			},
			want: &contract.UnpaidPage{
				Contracts:      []*ledger.Contract{{ID: 2}},
				Page:           1,
				PageSize:       10,
				TotalContracts: 1,
				TotalPages:     1,
			},
		},
		{
			name: "LaterPageRoundsUp",
			page: 3,
			setupMock: func(m *contract.MockRepository) {
				m.EXPECT().ListUnpaid(gomock.Any(), int64(1), contract.PageSize, 20).
					Return([]*ledger.Contract{{ID: 21}}, nil)
				m.EXPECT().CountUnpaid(gomock.Any(), int64(1)).Return(21, nil)
			},
			want: &contract.UnpaidPage{
				Contracts:      []*ledger.Contract{{ID: 21}},
				Page:           3,
				PageSize:       10,
				TotalContracts: 21,
				TotalPages:     3,
			},
		},
		{
			name: "Empty",
			page: 1,
			setupMock: func(m *contract.MockRepository) {
				m.EXPECT().ListUnpaid(gomock.Any(), int64(1), contract.PageSize, 0).Return(nil, nil)
				m.EXPECT().CountUnpaid(gomock.Any(), int64(1)).Return(0, nil)
			},
			want: &contract.UnpaidPage{Page: 1, PageSize: 10},
		},
		{
			name:    "InvalidPage",
			page:    0,
			wantErr: ledger.ErrInvalidArgument,
		},
		{
			name: "CountFails",
			page: 1,
			setupMock: func(m *contract.MockRepository) {
				m.EXPECT().ListUnpaid(gomock.Any(), int64(1), contract.PageSize, 0).Return(nil, nil)
				m.EXPECT().CountUnpaid(gomock.Any(), int64(1)).Return(0, errors.New("timeout"))
			},
			wantErr: ledger.ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := contract.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := contract.NewService(repo)
			got, err := svc.ListUnpaid(context.Background(), client, tt.page)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
