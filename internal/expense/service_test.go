package expense_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/carteira/internal/bank"
	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/recurrence"
	"github.com/MrJamesThe3rd/carteira/internal/validation"
)

const owner = "user-1"

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpense_Validate(t *testing.T) {
	bankID := uuid.New()
	cardID := uuid.New()

	valid := func() expense.Expense {
		return expense.Expense{
			Description: "Mercado",
			Amount:      12050,
			Date:        day(2024, time.May, 10),
			Method:      expense.MethodPix,
			BankID:      &bankID,
			Status:      expense.StatusPaid,
		}
	}

	type testCase struct {
		name      string
		mutate    func(e *expense.Expense)
		wantField string
	}

	tests := []testCase{
		{name: "PaidPix", mutate: func(*expense.Expense) {}},
		{
			name:      "PaidWithoutBank",
			mutate:    func(e *expense.Expense) { e.BankID = nil },
			wantField: "bank_id",
		},
		{
			name: "PendingWithoutBank",
			mutate: func(e *expense.Expense) {
				e.Status = expense.StatusPending
				e.Method = expense.MethodPending
				e.BankID = nil
			},
		},
		{
			name:      "PaidWithPendingMethod",
			mutate:    func(e *expense.Expense) { e.Method = expense.MethodPending },
			wantField: "method",
		},
		{
			name: "CreditWithCard",
			mutate: func(e *expense.Expense) {
				e.Method = expense.MethodCredit
				e.BankID = nil
				e.CardID = &cardID
			},
		},
		{
			name: "CreditWithoutCard",
			mutate: func(e *expense.Expense) {
				e.Method = expense.MethodCredit
				e.BankID = nil
			},
			wantField: "card_id",
		},
		{
			name: "CreditWithBank",
			mutate: func(e *expense.Expense) {
				e.Method = expense.MethodCredit
				e.CardID = &cardID
			},
			wantField: "bank_id",
		},
		{
			name:      "CardOnDebit",
			mutate:    func(e *expense.Expense) { e.CardID = &cardID },
			wantField: "card_id",
		},
		{
			name:      "ZeroAmount",
			mutate:    func(e *expense.Expense) { e.Amount = 0 },
			wantField: "amount",
		},
		{
			name: "RecurringInstallment",
			mutate: func(e *expense.Expense) {
				e.Recurrence = new(recurrence.Monthly)
				e.Installment = &expense.Installment{Index: 1, Total: 2}
			},
			wantField: "recurrence",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid()
			tt.mutate(&e)

			err := e.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			verr, ok := validation.As(err)
			require.True(t, ok, "want validation error, got %v", err)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestExpense_BalanceAdjustment(t *testing.T) {
	bankID := uuid.New()

	paid := &expense.Expense{Amount: 5000, Status: expense.StatusPaid, BankID: &bankID, Method: expense.MethodCash}
	assert.Equal(t, &bank.Adjustment{AccountID: bankID, Delta: -5000}, paid.BalanceAdjustment())

	pending := &expense.Expense{Amount: 5000, Status: expense.StatusPending, BankID: &bankID}
	assert.Nil(t, pending.BalanceAdjustment())

	imported := &expense.Expense{Amount: 5000, Status: expense.StatusPaid, BankID: &bankID, Imported: true}
	assert.Nil(t, imported.BalanceAdjustment())
}

func TestService_Create(t *testing.T) {
	bankID := uuid.New()
	cardID := uuid.New()

	type args struct {
		params expense.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *expense.MockRepository)
		check     func(t *testing.T, got []*expense.Expense)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "PaidDebitAdjustsBank",
			args: args{params: expense.CreateParams{
				Description: "Farmácia",
				Amount:      4590,
				Date:        day(2024, time.May, 3),
				Method:      expense.MethodDebit,
				BankID:      &bankID,
				Status:      expense.StatusPaid,
			}},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().
					CreateExpenses(gomock.Any(), gomock.Len(1), []bank.Adjustment{{AccountID: bankID, Delta: -4590}}).
					Return(nil)
			},
			check: func(t *testing.T, got []*expense.Expense) {
				require.Len(t, got, 1)
				assert.Equal(t, owner, got[0].OwnerID)
				assert.Nil(t, got[0].Installment)
			},
		},
		{
			name: "PendingLeavesBalances",
			args: args{params: expense.CreateParams{
				Description: "Aluguel",
				Amount:      180000,
				Date:        day(2024, time.May, 5),
				Method:      expense.MethodPending,
			}},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().CreateExpenses(gomock.Any(), gomock.Len(1), gomock.Nil()).Return(nil)
			},
			check: func(t *testing.T, got []*expense.Expense) {
				assert.Equal(t, expense.StatusPending, got[0].Status)
			},
		},
		{
			name: "CreditInstallments",
			args: args{params: expense.CreateParams{
				Description:  "Geladeira",
				Amount:       100000,
				Date:         day(2024, time.January, 31),
				Method:       expense.MethodCredit,
				CardID:       &cardID,
				Status:       expense.StatusPaid,
				Installments: 3,
			}},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().CreateExpenses(gomock.Any(), gomock.Len(3), gomock.Nil()).Return(nil)
			},
			check: func(t *testing.T, got []*expense.Expense) {
				require.Len(t, got, 3)

				assert.Equal(t, []int64{33333, 33333, 33334}, []int64{got[0].Amount, got[1].Amount, got[2].Amount})
				assert.Equal(t, day(2024, time.February, 29), got[1].Date)
				assert.Equal(t, day(2024, time.March, 31), got[2].Date)

				group := got[0].GroupID()
				for i, e := range got {
					assert.Equal(t, group, e.GroupID())
					assert.Equal(t, i+1, e.Installment.Index)
					assert.Equal(t, int64(100000), e.Installment.TotalAmount)
					assert.Equal(t, expense.StatusPaid, e.Status)
					assert.Equal(t, &cardID, e.CardID)
				}

				assert.Equal(t, "2/3", got[1].Installment.Label)
			},
		},
		{
			name: "PixInstallmentsArePending",
			args: args{params: expense.CreateParams{
				Description:  "Curso",
				Amount:       60000,
				Date:         day(2024, time.May, 10),
				Method:       expense.MethodPix,
				BankID:       &bankID,
				Status:       expense.StatusPaid,
				Installments: 2,
			}},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().CreateExpenses(gomock.Any(), gomock.Len(2), gomock.Nil()).Return(nil)
			},
			check: func(t *testing.T, got []*expense.Expense) {
				for _, e := range got {
					assert.Equal(t, expense.StatusPending, e.Status)
					assert.Nil(t, e.BankID)
				}
			},
		},
		{
			name: "RecurringInstallmentsRejected",
			args: args{params: expense.CreateParams{
				Description:  "Academia",
				Amount:       20000,
				Date:         day(2024, time.May, 10),
				Method:       expense.MethodPending,
				Installments: 2,
				Recurrence:   new(recurrence.Monthly),
			}},
			wantErr: true,
		},
		{
			name: "CreditWithoutCard",
			args: args{params: expense.CreateParams{
				Description: "Restaurante",
				Amount:      9000,
				Date:        day(2024, time.May, 10),
				Method:      expense.MethodCredit,
				Status:      expense.StatusPaid,
			}},
			wantErr: true,
		},
		{
			name: "RepoError",
			args: args{params: expense.CreateParams{
				Description: "Padaria",
				Amount:      1500,
				Date:        day(2024, time.May, 10),
				Method:      expense.MethodPending,
			}},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().CreateExpenses(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := expense.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := expense.NewService(repo).Create(context.Background(), owner, tt.args.params)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestService_ConfirmPayment(t *testing.T) {
	id := uuid.New()
	bankID := uuid.New()

	pending := func() *expense.Expense {
		return &expense.Expense{
			ID:          id,
			OwnerID:     owner,
			Description: "Conta de luz",
			Amount:      23000,
			Date:        day(2024, time.May, 15),
			Method:      expense.MethodPending,
			Status:      expense.StatusPending,
		}
	}

	type args struct {
		params expense.ConfirmParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *expense.MockRepository)
		wantErr   error
		wantField string
	}

	tests := []testCase{
		{
			name: "DebitsBankOnce",
			args: args{params: expense.ConfirmParams{Method: expense.MethodBillet, BankID: &bankID}},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().GetExpense(gomock.Any(), owner, id).Return(pending(), nil)
				m.EXPECT().
					ConfirmPayment(gomock.Any(), gomock.Any(), &bank.Adjustment{AccountID: bankID, Delta: -23000}).
					DoAndReturn(func(_ context.Context, e *expense.Expense, _ *bank.Adjustment) error {
						assert.Equal(t, expense.StatusPaid, e.Status)
						assert.Equal(t, expense.MethodBillet, e.Method)

						return nil
					})
			},
		},
		{
			name: "AlreadyPaid",
			args: args{params: expense.ConfirmParams{Method: expense.MethodPix, BankID: &bankID}},
			setupMock: func(m *expense.MockRepository) {
				e := pending()
				e.Status = expense.StatusPaid
				m.EXPECT().GetExpense(gomock.Any(), owner, id).Return(e, nil)
			},
			wantErr: expense.ErrNotPending,
		},
		{
			name: "LostRace",
			args: args{params: expense.ConfirmParams{Method: expense.MethodPix, BankID: &bankID}},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().GetExpense(gomock.Any(), owner, id).Return(pending(), nil)
				m.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any(), gomock.Any()).Return(expense.ErrNotPending)
			},
			wantErr: expense.ErrNotPending,
		},
		{
			name: "MissingBank",
			args: args{params: expense.ConfirmParams{Method: expense.MethodPix}},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().GetExpense(gomock.Any(), owner, id).Return(pending(), nil)
			},
			wantField: "bank_id",
		},
		{
			name: "NotFound",
			args: args{params: expense.ConfirmParams{Method: expense.MethodPix, BankID: &bankID}},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().GetExpense(gomock.Any(), owner, id).Return(nil, expense.ErrNotFound)
			},
			wantErr: expense.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := expense.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := expense.NewService(repo).ConfirmPayment(context.Background(), owner, id, tt.args.params)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantField != "":
				verr, ok := validation.As(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantField, verr.Field)
			default:
				require.NoError(t, err)
				assert.Equal(t, expense.StatusPaid, got.Status)
			}
		})
	}
}

func TestService_DeleteGroup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	groupID := uuid.New()
	repo := expense.NewMockRepository(ctrl)
	svc := expense.NewService(repo)

	repo.EXPECT().DeleteGroup(gomock.Any(), owner, groupID).Return(int64(3), nil)
	require.NoError(t, svc.DeleteGroup(context.Background(), owner, groupID))

	repo.EXPECT().DeleteGroup(gomock.Any(), owner, groupID).Return(int64(0), nil)
	assert.ErrorIs(t, svc.DeleteGroup(context.Background(), owner, groupID), expense.ErrNotFound)
}

func TestService_ImportBatch(t *testing.T) {
	bankID := uuid.New()

	entry := func(desc string, amount int64, d time.Time) expense.CreateParams {
		return expense.CreateParams{
			Description:    desc,
			RawDescription: desc,
			Amount:         amount,
			Date:           d,
			Method:         expense.MethodDebit,
			BankID:         &bankID,
			Status:         expense.StatusPaid,
		}
	}

	type testCase struct {
		name         string
		params       []expense.CreateParams
		setupMock    func(m *expense.MockRepository, itx *expense.MockImportTx)
		wantImported int
		wantSkipped  int
		wantErr      bool
	}

	tests := []testCase{
		{
			name:   "SkipsDuplicates",
			params: []expense.CreateParams{entry("UBER", 2350, day(2024, time.May, 2)), entry("IFOOD", 5890, day(2024, time.May, 4))},
			setupMock: func(m *expense.MockRepository, itx *expense.MockImportTx) {
				m.EXPECT().BeginImport(gomock.Any(), owner, day(2024, time.May, 2), day(2024, time.May, 4)).Return(itx, nil)
				itx.EXPECT().FindDuplicates(gomock.Any(), gomock.Len(2)).Return([]*expense.Expense{{
					RawDescription: "UBER",
					Amount:         2350,
					Date:           day(2024, time.May, 2),
					BankID:         &bankID,
				}}, nil)
				itx.EXPECT().
					CreateExpenses(gomock.Any(), gomock.Len(1)).
					DoAndReturn(func(_ context.Context, exps []*expense.Expense) error {
						assert.Equal(t, "IFOOD", exps[0].RawDescription)
						assert.True(t, exps[0].Imported)
						assert.Nil(t, exps[0].BalanceAdjustment())

						return nil
					})
				itx.EXPECT().Commit().Return(nil)
				itx.EXPECT().Rollback().Return(nil)
			},
			wantImported: 1,
			wantSkipped:  1,
		},
		{
			name:   "AllDuplicates",
			params: []expense.CreateParams{entry("UBER", 2350, day(2024, time.May, 2))},
			setupMock: func(m *expense.MockRepository, itx *expense.MockImportTx) {
				m.EXPECT().BeginImport(gomock.Any(), owner, gomock.Any(), gomock.Any()).Return(itx, nil)
				itx.EXPECT().FindDuplicates(gomock.Any(), gomock.Any()).Return([]*expense.Expense{{
					RawDescription: "UBER",
					Amount:         2350,
					Date:           day(2024, time.May, 2),
					BankID:         &bankID,
				}}, nil)
				itx.EXPECT().Commit().Return(nil)
				itx.EXPECT().Rollback().Return(nil)
			},
			wantSkipped: 1,
		},
		{
			name:      "Empty",
			params:    nil,
			setupMock: func(*expense.MockRepository, *expense.MockImportTx) {},
		},
		{
			name:   "BeginFails",
			params: []expense.CreateParams{entry("UBER", 2350, day(2024, time.May, 2))},
			setupMock: func(m *expense.MockRepository, _ *expense.MockImportTx) {
				m.EXPECT().BeginImport(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := expense.NewMockRepository(ctrl)
			itx := expense.NewMockImportTx(ctrl)
			tt.setupMock(repo, itx)

			got, err := expense.NewService(repo).ImportBatch(context.Background(), owner, tt.params)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, got.Imported, tt.wantImported)
			assert.Len(t, got.Skipped, tt.wantSkipped)
		})
	}
}
