package invoice_test

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
	"github.com/MrJamesThe3rd/carteira/internal/card"
	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/invoice"
	"github.com/MrJamesThe3rd/carteira/internal/period"
)

const owner = "user-1"

type mocks struct {
	repo     *invoice.MockRepository
	cards    *invoice.MockCardReader
	expenses *invoice.MockExpenseLister
}

func newService(t *testing.T) (*invoice.Service, mocks) {
	ctrl := gomock.NewController(t)

	m := mocks{
		repo:     invoice.NewMockRepository(ctrl),
		cards:    invoice.NewMockCardReader(ctrl),
		expenses: invoice.NewMockExpenseLister(ctrl),
	}

	return invoice.NewService(m.repo, m.cards, m.expenses), m
}

func TestService_Generate(t *testing.T) {
	cardID := uuid.New()
	c := &card.Card{ID: cardID, Name: "Nubank", ClosingDay: 10, DueDay: 17, Limit: 500000}
	may := period.Period{Year: 2024, Month: time.May}

	exps := []*expense.Expense{
		{Amount: 15000, Date: day(2024, time.April, 20), Method: expense.MethodCredit, CardID: &cardID},
		{Amount: 5000, Date: day(2024, time.May, 12), Method: expense.MethodCredit, CardID: &cardID},
	}

	type testCase struct {
		name      string
		setupMock func(m mocks)
		wantTotal int64
		wantErr   error
	}

	tests := []testCase{
		{
			name: "NewInvoice",
			setupMock: func(m mocks) {
				m.cards.EXPECT().Get(gomock.Any(), owner, cardID).Return(c, nil)
				m.repo.EXPECT().GetByPeriod(gomock.Any(), owner, cardID, may).Return(nil, invoice.ErrNotFound)
				m.expenses.EXPECT().List(gomock.Any(), owner, gomock.Any()).Return(exps, nil)
				m.repo.EXPECT().
					SaveInvoice(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
						assert.Equal(t, day(2024, time.May, 17), inv.DueDate)
						inv.ID = uuid.New()

						return nil
					})
			},
			wantTotal: 15000,
		},
		{
			name: "RefreshesUnpaid",
			setupMock: func(m mocks) {
				existing := &invoice.Invoice{ID: uuid.New(), CardID: cardID, Period: may, Total: 1}
				m.cards.EXPECT().Get(gomock.Any(), owner, cardID).Return(c, nil)
				m.repo.EXPECT().GetByPeriod(gomock.Any(), owner, cardID, may).Return(existing, nil)
				m.expenses.EXPECT().List(gomock.Any(), owner, gomock.Any()).Return(exps, nil)
				m.repo.EXPECT().
					SaveInvoice(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
						assert.Equal(t, existing.ID, inv.ID)
						return nil
					})
			},
			wantTotal: 15000,
		},
		{
			name: "AlreadyPaid",
			setupMock: func(m mocks) {
				m.cards.EXPECT().Get(gomock.Any(), owner, cardID).Return(c, nil)
				m.repo.EXPECT().
					GetByPeriod(gomock.Any(), owner, cardID, may).
					Return(&invoice.Invoice{CardID: cardID, Period: may, Paid: true}, nil)
			},
			wantErr: invoice.ErrAlreadyPaid,
		},
		{
			name: "UnknownCard",
			setupMock: func(m mocks) {
				m.cards.EXPECT().Get(gomock.Any(), owner, cardID).Return(nil, card.ErrNotFound)
			},
			wantErr: card.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			got, err := svc.Generate(context.Background(), owner, cardID, may)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, got.Total)
		})
	}
}

func TestService_Pay(t *testing.T) {
	id := uuid.New()
	bankID := uuid.New()

	unpaid := func() *invoice.Invoice {
		return &invoice.Invoice{ID: id, OwnerID: owner, CardID: uuid.New(), Total: 80000}
	}

	type testCase struct {
		name      string
		bankID    *uuid.UUID
		setupMock func(m mocks)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "DebitsBank",
			bankID: &bankID,
			setupMock: func(m mocks) {
				m.repo.EXPECT().GetInvoice(gomock.Any(), owner, id).Return(unpaid(), nil)
				m.repo.EXPECT().
					MarkPaid(gomock.Any(), gomock.Any(), &bank.Adjustment{AccountID: bankID, Delta: -80000}).
					Return(nil)
			},
		},
		{
			name: "WithoutBank",
			setupMock: func(m mocks) {
				m.repo.EXPECT().GetInvoice(gomock.Any(), owner, id).Return(unpaid(), nil)
				m.repo.EXPECT().MarkPaid(gomock.Any(), gomock.Any(), gomock.Nil()).Return(nil)
			},
		},
		{
			name:   "AlreadyPaid",
			bankID: &bankID,
			setupMock: func(m mocks) {
				inv := unpaid()
				inv.Paid = true
				m.repo.EXPECT().GetInvoice(gomock.Any(), owner, id).Return(inv, nil)
			},
			wantErr: invoice.ErrAlreadyPaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			got, err := svc.Pay(context.Background(), owner, id, tt.bankID, new(day(2024, time.May, 17)))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.True(t, got.Paid)
			assert.Equal(t, day(2024, time.May, 17), *got.PaidAt)
		})
	}
}

func TestService_PeriodView_PersistedWins(t *testing.T) {
	svc, m := newService(t)

	cardID := uuid.New()
	may := period.Period{Year: 2024, Month: time.May}
	c := &card.Card{ID: cardID, ClosingDay: 10, DueDay: 17}

	m.cards.EXPECT().Get(gomock.Any(), owner, cardID).Return(c, nil)
	m.expenses.EXPECT().List(gomock.Any(), owner, gomock.Any()).Return([]*expense.Expense{
		{Amount: 30000, Date: day(2024, time.May, 3), Method: expense.MethodCredit, CardID: &cardID},
	}, nil)
	m.repo.EXPECT().
		GetByPeriod(gomock.Any(), owner, cardID, may).
		Return(&invoice.Invoice{CardID: cardID, Period: may, Total: 32000, DueDate: day(2024, time.May, 18)}, nil)

	got, err := svc.PeriodView(context.Background(), owner, cardID, may)
	require.NoError(t, err)

	assert.Equal(t, int64(30000), got.EffectiveTotal)
	assert.Equal(t, int64(32000), got.AmountDue)
	assert.Equal(t, day(2024, time.May, 10), got.ClosingDate)
	assert.Equal(t, day(2024, time.May, 18), got.DueDate)
	assert.Len(t, got.Expenses, 1)
}

func TestService_PeriodView_DerivedFallback(t *testing.T) {
	svc, m := newService(t)

	cardID := uuid.New()
	may := period.Period{Year: 2024, Month: time.May}

	m.cards.EXPECT().Get(gomock.Any(), owner, cardID).Return(&card.Card{ID: cardID, ClosingDay: 10, DueDay: 17}, nil)
	m.expenses.EXPECT().List(gomock.Any(), owner, gomock.Any()).Return([]*expense.Expense{
		{Amount: 30000, Date: day(2024, time.May, 3), Method: expense.MethodCredit, CardID: &cardID},
	}, nil)
	m.repo.EXPECT().GetByPeriod(gomock.Any(), owner, cardID, may).Return(nil, invoice.ErrNotFound)

	got, err := svc.PeriodView(context.Background(), owner, cardID, may)
	require.NoError(t, err)

	assert.Nil(t, got.Invoice)
	assert.Equal(t, int64(30000), got.AmountDue)
}

func TestService_PeriodView_RepoError(t *testing.T) {
	svc, m := newService(t)

	cardID := uuid.New()

	m.cards.EXPECT().Get(gomock.Any(), owner, cardID).Return(&card.Card{ID: cardID, ClosingDay: 10, DueDay: 17}, nil)
	m.expenses.EXPECT().List(gomock.Any(), owner, gomock.Any()).Return(nil, errors.New("db error"))

	_, err := svc.PeriodView(context.Background(), owner, cardID, period.Period{Year: 2024, Month: time.May})
	assert.Error(t, err)
}

func TestService_CardSummary(t *testing.T) {
	cardID := uuid.New()
	c := &card.Card{ID: cardID, Name: "Nubank", ClosingDay: 10, DueDay: 17, Limit: 500000}
	may := period.Period{Year: 2024, Month: time.May}

	type testCase struct {
		name      string
		setupMock func(m mocks)
		want      invoice.CardSummary
		wantErr   error
	}

	tests := []testCase{
		{
			name: "UsageAndLimitAreIndependent",
			setupMock: func(m mocks) {
				m.cards.EXPECT().Get(gomock.Any(), owner, cardID).Return(c, nil)
				m.repo.EXPECT().
					ListInvoices(gomock.Any(), owner, invoice.ListFilter{CardID: &cardID, Paid: new(false)}).
					Return([]*invoice.Invoice{
						{CardID: cardID, Period: may.Prev(), Total: 125000},
						{CardID: cardID, Period: may, Paid: true, Total: 30000},
					}, nil)
				m.expenses.EXPECT().List(gomock.Any(), owner, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, f expense.ListFilter) ([]*expense.Expense, error) {
						assert.Equal(t, day(2024, time.April, 1), *f.StartDate)
						return []*expense.Expense{
							{Amount: 3000, Date: day(2024, time.April, 20), Method: expense.MethodCredit, CardID: &cardID},
							{Amount: 4000, Date: day(2024, time.May, 5), Method: expense.MethodCredit, CardID: &cardID},
							{Amount: 2500, Date: day(2024, time.May, 15), Method: expense.MethodCredit, CardID: &cardID},
						}, nil
					})
			},
			want: invoice.CardSummary{
				Card:           c,
				CurrentPeriod:  may,
				UsedLimit:      125000,
				CurrentUsage:   7000,
				AvailableLimit: 375000,
				UsagePercent:   25,
			},
		},
		{
			name: "UnknownCard",
			setupMock: func(m mocks) {
				m.cards.EXPECT().Get(gomock.Any(), owner, cardID).Return(nil, card.ErrNotFound)
			},
			wantErr: card.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			svc.SetNow(func() time.Time { return time.Date(2024, time.May, 20, 14, 0, 0, 0, time.UTC) })
			tt.setupMock(m)

			got, err := svc.CardSummary(context.Background(), owner, cardID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}
