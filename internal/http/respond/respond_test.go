package respond_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/carteira/internal/auth"
	"github.com/MrJamesThe3rd/carteira/internal/category"
	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/http/respond"
	"github.com/MrJamesThe3rd/carteira/internal/invoice"
	"github.com/MrJamesThe3rd/carteira/internal/validation"
)

func TestError(t *testing.T) {
	type testCase struct {
		name       string
		err        error
		wantStatus int
		wantBody   respond.ErrorResponse
	}

	tests := []testCase{
		{
			name:       "Validation",
			err:        fmt.Errorf("create: %w", validation.New("amount", "must be positive")),
			wantStatus: http.StatusBadRequest,
			wantBody:   respond.ErrorResponse{Error: "invalid amount: must be positive", Field: "amount"},
		},
		{
			name:       "NotFound",
			err:        expense.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   respond.ErrorResponse{Error: "expense not found"},
		},
		{
			name:       "NotPending",
			err:        expense.ErrNotPending,
			wantStatus: http.StatusConflict,
			wantBody:   respond.ErrorResponse{Error: "expense is not pending"},
		},
		{
			name:       "CategoryInUse",
			err:        category.ErrInUse,
			wantStatus: http.StatusConflict,
			wantBody:   respond.ErrorResponse{Error: "category is in use"},
		},
		{
			name:       "AlreadyPaid",
			err:        fmt.Errorf("pay: %w", invoice.ErrAlreadyPaid),
			wantStatus: http.StatusConflict,
			wantBody:   respond.ErrorResponse{Error: "pay: invoice already paid"},
		},
		{
			name:       "Unauthorized",
			err:        auth.ErrMissingToken,
			wantStatus: http.StatusUnauthorized,
			wantBody:   respond.ErrorResponse{Error: "missing bearer token"},
		},
		{
			name:       "Internal",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   respond.ErrorResponse{Error: "internal error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respond.Error(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var got respond.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantBody, got)
		})
	}
}

func TestDecode(t *testing.T) {
	type payload struct {
		Date respond.Date `json:"date"`
	}

	type testCase struct {
		name      string
		body      string
		want      time.Time
		wantField string
	}

	tests := []testCase{
		{name: "Valid", body: `{"date":"2024-05-10"}`, want: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)},
		{name: "BadDate", body: `{"date":"10/05/2024"}`, wantField: "date"},
		{name: "UnknownField", body: `{"date":"2024-05-10","x":1}`, wantField: "body"},
		{name: "NotJSON", body: `nope`, wantField: "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var p payload
			err := respond.Decode(httptest.NewRecorder(), req, &p)

			if tt.wantField != "" {
				verr, ok := validation.As(err)
				require.True(t, ok, "got %v", err)
				assert.Equal(t, tt.wantField, verr.Field)

				return
			}

			require.NoError(t, err)
			assert.True(t, tt.want.Equal(p.Date.Time))
		})
	}
}

func TestDate_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(respond.Date{Time: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-02-29"`, string(b))
}

func TestQueries(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?from=2024-01-01&n=x&id=nope", nil)

	from, err := respond.DateQuery(req, "from")
	require.NoError(t, err)
	assert.Equal(t, 2024, from.Year())

	missing, err := respond.DateQuery(req, "to")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = respond.IntQuery(req, "n", 24)
	assert.Error(t, err)

	n, err := respond.IntQuery(req, "horizon", 24)
	require.NoError(t, err)
	assert.Equal(t, 24, n)

	_, err = respond.UUIDQuery(req, "id")
	verr, ok := validation.As(err)
	require.True(t, ok)
	assert.Equal(t, "id", verr.Field)
}
