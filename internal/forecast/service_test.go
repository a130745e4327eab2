package forecast_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/carteira/internal/bank"
	"github.com/MrJamesThe3rd/carteira/internal/card"
	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/forecast"
	"github.com/MrJamesThe3rd/carteira/internal/income"
	"github.com/MrJamesThe3rd/carteira/internal/invoice"
)

const owner = "user-1"

type sources struct {
	banks    *forecast.MockBankLister
	cards    *forecast.MockCardLister
	incomes  *forecast.MockIncomeLister
	expenses *forecast.MockExpenseLister
	invoices *forecast.MockInvoiceLister
	users    *forecast.MockMemberSincer
}

func newSources(ctrl *gomock.Controller) sources {
	return sources{
		banks:    forecast.NewMockBankLister(ctrl),
		cards:    forecast.NewMockCardLister(ctrl),
		incomes:  forecast.NewMockIncomeLister(ctrl),
		expenses: forecast.NewMockExpenseLister(ctrl),
		invoices: forecast.NewMockInvoiceLister(ctrl),
		users:    forecast.NewMockMemberSincer(ctrl),
	}
}

func (s sources) bundle() forecast.Sources {
	return forecast.Sources{
		Banks:    s.banks,
		Cards:    s.cards,
		Incomes:  s.incomes,
		Expenses: s.expenses,
		Invoices: s.invoices,
		Users:    s.users,
	}
}

func TestService_Forecast(t *testing.T) {
	type testCase struct {
		name        string
		setupMock   func(s sources)
		wantErr     bool
		wantWarning bool
	}

	ghostCard := uuid.New()

	tests := []testCase{
		{
			name: "LogsWarnings",
			setupMock: func(s sources) {
				s.users.EXPECT().MemberSince(gomock.Any(), owner).Return(time.Now().AddDate(0, -2, 0), nil)
				s.banks.EXPECT().List(gomock.Any(), owner).Return([]*bank.Account{{ID: bankID, Balance: 100000}}, nil)
				s.cards.EXPECT().List(gomock.Any(), owner).Return([]*card.Card{{ID: cardID, ClosingDay: 10}}, nil)
				s.incomes.EXPECT().List(gomock.Any(), owner, income.ListFilter{}).Return(nil, nil)
				s.expenses.EXPECT().List(gomock.Any(), owner, expense.ListFilter{}).Return([]*expense.Expense{
					creditExpense(5000, time.Now(), ghostCard),
				}, nil)
				s.invoices.EXPECT().List(gomock.Any(), owner, invoice.ListFilter{}).Return(nil, nil)
			},
			wantWarning: true,
		},
		{
			name: "SourceFails",
			setupMock: func(s sources) {
				s.users.EXPECT().MemberSince(gomock.Any(), owner).Return(time.Now(), nil)
				s.banks.EXPECT().List(gomock.Any(), owner).Return(nil, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			src := newSources(ctrl)
			tt.setupMock(src)

			var buf bytes.Buffer

			svc := forecast.NewService(src.bundle(), zerolog.New(&buf))

			got, err := svc.Forecast(context.Background(), owner, 6)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, got.Forecast, 6)
			assert.Len(t, got.HistoryMonths, 2)
			assert.Equal(t, int64(100000), got.CurrentBalance)

			if tt.wantWarning {
				require.Len(t, got.Warnings, 1)
				assert.Contains(t, buf.String(), string(forecast.WarningUnknownCard))
			}
		})
	}
}

func TestRenderChart(t *testing.T) {
	res, err := forecast.Compute(forecast.Input{
		Now:     day(time.May, 1),
		Horizon: 12,
		Banks:   account(500000),
		Incomes: []*income.Income{pendingIncome(300000, day(time.June, 5))},
	})
	require.NoError(t, err)

	png, err := forecast.RenderChart(res)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	_, err = forecast.RenderChart(forecast.Result{Forecast: res.Forecast[:1]})
	assert.Error(t, err)
}
