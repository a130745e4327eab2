package card_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/carteira/internal/auth"
	"github.com/MrJamesThe3rd/carteira/internal/card"
	"github.com/MrJamesThe3rd/carteira/internal/expense"
	handler "github.com/MrJamesThe3rd/carteira/internal/http/card"
	"github.com/MrJamesThe3rd/carteira/internal/invoice"
	"github.com/MrJamesThe3rd/carteira/internal/period"
)

const owner = "user-1"

type mocks struct {
	cards    *card.MockRepository
	invoices *invoice.MockRepository
	expenses *invoice.MockExpenseLister
}

func day(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
}

func serve(t *testing.T, setupMock func(m mocks), target string) *httptest.ResponseRecorder {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := mocks{
		cards:    card.NewMockRepository(ctrl),
		invoices: invoice.NewMockRepository(ctrl),
		expenses: invoice.NewMockExpenseLister(ctrl),
	}

	setupMock(m)

	cards := card.NewService(m.cards)
	h := handler.NewHandler(cards, invoice.NewService(m.invoices, cards, m.expenses))

	r := chi.NewRouter()
	h.Routes(r)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req.WithContext(auth.WithOwner(req.Context(), owner)))

	return rec
}

func TestHandler_PeriodView(t *testing.T) {
	cardID := uuid.New()
	c := &card.Card{ID: cardID, OwnerID: owner, Name: "Roxinho", Limit: 500000, ClosingDay: 10, DueDay: 17}
	may := period.Period{Year: 2024, Month: time.May}

	credit := func(date time.Time, amount int64) *expense.Expense {
		return &expense.Expense{
			ID: uuid.New(), OwnerID: owner, Description: "Compra", Amount: amount, Date: date,
			Method: expense.MethodCredit, CardID: &cardID, Status: expense.StatusPaid,
		}
	}

	exps := []*expense.Expense{
		credit(day(time.April, 10), 1000),
		credit(day(time.April, 11), 2000),
		credit(day(time.May, 10), 3000),
		credit(day(time.May, 11), 4000),
	}

	type args struct {
		persisted *invoice.Invoice
	}

	type testCase struct {
		name          string
		args          args
		wantAmountDue int64
		wantInvoice   bool
	}

	tests := []testCase{
		{
			name:          "DerivedOnly",
			wantAmountDue: 5000,
		},
		{
			name: "PersistedWins",
			args: args{persisted: &invoice.Invoice{
				ID: uuid.New(), OwnerID: owner, CardID: cardID, Period: may, Total: 4800, DueDate: day(time.May, 17),
			}},
			wantAmountDue: 4800,
			wantInvoice:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, func(m mocks) {
				m.cards.EXPECT().GetCard(gomock.Any(), owner, cardID).Return(c, nil)
				m.expenses.EXPECT().List(gomock.Any(), owner, gomock.Any()).Return(exps, nil)

				if tt.args.persisted != nil {
					m.invoices.EXPECT().GetByPeriod(gomock.Any(), owner, cardID, may).Return(tt.args.persisted, nil)
				} else {
					m.invoices.EXPECT().GetByPeriod(gomock.Any(), owner, cardID, may).Return(nil, invoice.ErrNotFound)
				}
			}, "/"+cardID.String()+"/periods/2024-05")

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var got struct {
				Period         string `json:"period"`
				ClosingDate    string `json:"closing_date"`
				DueDate        string `json:"due_date"`
				EffectiveTotal int64  `json:"effective_total"`
				AmountDue      int64  `json:"amount_due"`
				Expenses       []struct {
					Date string `json:"date"`
				} `json:"expenses"`
				Invoice *struct {
					Total int64 `json:"total"`
				} `json:"invoice"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

			assert.Equal(t, "2024-05", got.Period)
			assert.Equal(t, "2024-05-10", got.ClosingDate)
			assert.Equal(t, "2024-05-17", got.DueDate)
			assert.Equal(t, int64(5000), got.EffectiveTotal)
			assert.Equal(t, tt.wantAmountDue, got.AmountDue)
			assert.Equal(t, tt.wantInvoice, got.Invoice != nil)

			dates := make([]string, len(got.Expenses))
			for i, e := range got.Expenses {
				dates[i] = e.Date
			}
			assert.ElementsMatch(t, []string{"2024-04-11", "2024-05-10"}, dates)
		})
	}
}

func TestHandler_PeriodViewErrors(t *testing.T) {
	cardID := uuid.New()

	t.Run("UnknownCard", func(t *testing.T) {
		rec := serve(t, func(m mocks) {
			m.cards.EXPECT().GetCard(gomock.Any(), owner, cardID).Return(nil, card.ErrNotFound)
		}, "/"+cardID.String()+"/periods/2024-05")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("BadPeriod", func(t *testing.T) {
		rec := serve(t, func(mocks) {}, "/"+cardID.String()+"/periods/2024-13")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
