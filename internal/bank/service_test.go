package bank_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/carteira/internal/bank"
	"github.com/MrJamesThe3rd/carteira/internal/validation"
)

const owner = "user-1"

func TestService_Create(t *testing.T) {
	type args struct {
		params bank.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *bank.MockRepository)
		wantField string
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{params: bank.CreateParams{Name: "Nubank", Kind: bank.KindDigital, Balance: 150000}},
			setupMock: func(m *bank.MockRepository) {
				m.EXPECT().
					CreateAccount(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, a *bank.Account) error {
						assert.Equal(t, owner, a.OwnerID)
						assert.Equal(t, int64(150000), a.Balance)
						a.ID = uuid.New()

						return nil
					})
			},
		},
		{
			name:      "MissingName",
			args:      args{params: bank.CreateParams{Kind: bank.KindChecking}},
			wantField: "name",
		},
		{
			name:      "UnknownKind",
			args:      args{params: bank.CreateParams{Name: "Itaú", Kind: "crypto"}},
			wantField: "kind",
		},
		{
			name: "RepoError",
			args: args{params: bank.CreateParams{Name: "Itaú", Kind: bank.KindChecking}},
			setupMock: func(m *bank.MockRepository) {
				m.EXPECT().CreateAccount(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := bank.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := bank.NewService(repo)
			got, err := svc.Create(context.Background(), owner, tt.args.params)

			if tt.wantField != "" {
				ve, ok := validation.As(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantField, ve.Field)

				return
			}

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
		})
	}
}

func TestService_Adjust(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := bank.NewMockRepository(ctrl)
	id := uuid.New()

	repo.EXPECT().Adjust(gomock.Any(), owner, bank.Adjustment{AccountID: id, Delta: -5000}).Return(nil)

	svc := bank.NewService(repo)
	require.NoError(t, svc.Adjust(context.Background(), owner, bank.Adjustment{AccountID: id, Delta: -5000}))

	// Zero deltas never reach the store.
	require.NoError(t, svc.Adjust(context.Background(), owner, bank.Adjustment{AccountID: id}))
}

func TestService_TotalBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := bank.NewMockRepository(ctrl)
	repo.EXPECT().ListAccounts(gomock.Any(), owner).Return([]*bank.Account{
		{Balance: 300000},
		{Balance: 200000},
		{Balance: -1500},
	}, nil)

	svc := bank.NewService(repo)
	total, err := svc.TotalBalance(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, int64(498500), total)
}

func TestService_Update_Stale(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := bank.NewMockRepository(ctrl)
	a := &bank.Account{ID: uuid.New(), OwnerID: owner, Name: "Inter", Kind: bank.KindDigital, Version: 3}

	repo.EXPECT().UpdateAccount(gomock.Any(), a).Return(bank.ErrStale)

	svc := bank.NewService(repo)
	assert.ErrorIs(t, svc.Update(context.Background(), a), bank.ErrStale)
}
