package forecast_test

import (
	"bytes"
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
	"github.com/MrJamesThe3rd/carteira/internal/bank"
	"github.com/MrJamesThe3rd/carteira/internal/forecast"
	handler "github.com/MrJamesThe3rd/carteira/internal/http/forecast"
	"github.com/MrJamesThe3rd/carteira/internal/logger"
)

const owner = "user-1"

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)

	users := forecast.NewMockMemberSincer(ctrl)
	banks := forecast.NewMockBankLister(ctrl)
	cards := forecast.NewMockCardLister(ctrl)
	incomes := forecast.NewMockIncomeLister(ctrl)
	expenses := forecast.NewMockExpenseLister(ctrl)
	invoices := forecast.NewMockInvoiceLister(ctrl)

	users.EXPECT().MemberSince(gomock.Any(), owner).Return(time.Now(), nil).AnyTimes()
	banks.EXPECT().List(gomock.Any(), owner).Return([]*bank.Account{{ID: uuid.New(), Balance: 100000}}, nil).AnyTimes()
	cards.EXPECT().List(gomock.Any(), owner).Return(nil, nil).AnyTimes()
	incomes.EXPECT().List(gomock.Any(), owner, gomock.Any()).Return(nil, nil).AnyTimes()
	expenses.EXPECT().List(gomock.Any(), owner, gomock.Any()).Return(nil, nil).AnyTimes()
	invoices.EXPECT().List(gomock.Any(), owner, gomock.Any()).Return(nil, nil).AnyTimes()

	svc := forecast.NewService(forecast.Sources{
		Banks:    banks,
		Cards:    cards,
		Incomes:  incomes,
		Expenses: expenses,
		Invoices: invoices,
		Users:    users,
	}, logger.Nop())

	r := chi.NewRouter()
	handler.NewHandler(svc, 24).Routes(r)

	return r
}

func get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	newRouter(t).ServeHTTP(rec, req.WithContext(auth.WithOwner(req.Context(), owner)))

	return rec
}

func TestHandler_Forecast(t *testing.T) {
	type testCase struct {
		name       string
		target     string
		wantStatus int
		wantMonths int
	}

	tests := []testCase{
		{name: "DefaultHorizon", target: "/", wantStatus: http.StatusOK, wantMonths: 24},
		{name: "CustomHorizon", target: "/?horizon_months=3", wantStatus: http.StatusOK, wantMonths: 3},
		{name: "NotANumber", target: "/?horizon_months=abc", wantStatus: http.StatusBadRequest},
		{name: "TooLong", target: "/?horizon_months=500", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, tt.target)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantStatus != http.StatusOK {
				return
			}

			var got struct {
				CurrentBalance int64 `json:"current_balance"`
				Forecast       []struct {
					Period          string `json:"period"`
					StartingBalance int64  `json:"starting_balance"`
					EndingBalance   int64  `json:"ending_balance"`
				} `json:"forecast"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

			assert.Equal(t, int64(100000), got.CurrentBalance)
			require.Len(t, got.Forecast, tt.wantMonths)

			for _, row := range got.Forecast {
				assert.Equal(t, int64(100000), row.StartingBalance)
				assert.Equal(t, int64(100000), row.EndingBalance)
			}
		})
	}
}

func TestHandler_Chart(t *testing.T) {
	rec := get(t, "/chart.png?horizon_months=6")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec = get(t, "/chart.png?horizon_months=1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
