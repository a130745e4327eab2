// Package respond holds the JSON and error plumbing shared by the HTTP handlers.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/auth"
	"github.com/MrJamesThe3rd/carteira/internal/bank"
	"github.com/MrJamesThe3rd/carteira/internal/card"
	"github.com/MrJamesThe3rd/carteira/internal/category"
	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/goal"
	"github.com/MrJamesThe3rd/carteira/internal/importer/statement"
	"github.com/MrJamesThe3rd/carteira/internal/income"
	"github.com/MrJamesThe3rd/carteira/internal/invoice"
	"github.com/MrJamesThe3rd/carteira/internal/logger"
	"github.com/MrJamesThe3rd/carteira/internal/matching"
	"github.com/MrJamesThe3rd/carteira/internal/period"
	"github.com/MrJamesThe3rd/carteira/internal/receipt"
	"github.com/MrJamesThe3rd/carteira/internal/user"
	"github.com/MrJamesThe3rd/carteira/internal/validation"
)

const maxBodyBytes = 1 << 20

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log := logger.FromContext(r.Context(), logger.Nop())
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func BadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	JSON(w, r, http.StatusBadRequest, ErrorResponse{Error: msg})
}

// Error maps err onto a status code. Unknown errors are logged and reported
// as a bare 500 so internals never leak to clients.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	if verr, ok := validation.As(err); ok {
		JSON(w, r, http.StatusBadRequest, ErrorResponse{Error: verr.Error(), Field: verr.Field})
		return
	}

	status := statusOf(err)
	if status == http.StatusInternalServerError {
		log := logger.FromContext(r.Context(), logger.Nop())
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		JSON(w, r, status, ErrorResponse{Error: "internal error"})

		return
	}

	JSON(w, r, status, ErrorResponse{Error: err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, bank.ErrNotFound),
		errors.Is(err, card.ErrNotFound),
		errors.Is(err, category.ErrNotFound),
		errors.Is(err, expense.ErrNotFound),
		errors.Is(err, income.ErrNotFound),
		errors.Is(err, invoice.ErrNotFound),
		errors.Is(err, goal.ErrNotFound),
		errors.Is(err, user.ErrNotFound),
		errors.Is(err, matching.ErrNotFound),
		errors.Is(err, receipt.ErrNoReceipt),
		errors.Is(err, receipt.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, expense.ErrNotPending),
		errors.Is(err, income.ErrNotPending),
		errors.Is(err, category.ErrInUse),
		errors.Is(err, invoice.ErrAlreadyPaid),
		errors.Is(err, bank.ErrStale):
		return http.StatusConflict
	case errors.Is(err, statement.ErrUnknownFormat):
		return http.StatusUnprocessableEntity
	}

	return http.StatusInternalServerError
}

// Decode reads a JSON body into v, rejecting unknown fields. Any failure is
// a *validation.Error so handlers can pass it straight to Error.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if verr, ok := validation.As(err); ok {
			return verr
		}

		return validation.New("body", fmt.Sprintf("is not valid JSON: %v", err))
	}

	return nil
}

// Owner returns the authenticated owner. Routes are mounted behind the auth
// middleware, so a missing owner is a wiring bug reported as 401.
func Owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	ownerID, ok := auth.OwnerFromContext(r.Context())
	if !ok {
		Error(w, r, auth.ErrMissingToken)
	}

	return ownerID, ok
}

func UUIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		BadRequest(w, r, "invalid "+name)
		return uuid.Nil, false
	}

	return id, true
}

func PeriodParam(w http.ResponseWriter, r *http.Request, name string) (period.Period, bool) {
	p, err := period.Parse(chi.URLParam(r, name))
	if err != nil {
		BadRequest(w, r, "invalid "+name+": expected YYYY-MM")
		return period.Period{}, false
	}

	return p, true
}

// DateQuery parses an optional YYYY-MM-DD query value.
func DateQuery(r *http.Request, name string) (*time.Time, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, validation.New(name, "must be a date in YYYY-MM-DD format")
	}

	return &t, nil
}

// UUIDQuery parses an optional uuid query value.
func UUIDQuery(r *http.Request, name string) (*uuid.UUID, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return nil, validation.New(name, "must be a uuid")
	}

	return &id, nil
}

// IntQuery parses an optional integer query value, returning def when absent.
func IntQuery(r *http.Request, name string, def int) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, validation.New(name, "must be an integer")
	}

	return n, nil
}

// Date is a calendar date encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(time.DateOnly))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return validation.New("date", "must be in YYYY-MM-DD format")
	}

	d.Time = t

	return nil
}

// DatePtr converts an optional Date into an optional time.
func DatePtr(d *Date) *time.Time {
	if d == nil {
		return nil
	}

	return &d.Time
}

func OptionalDate(t *time.Time) *Date {
	if t == nil {
		return nil
	}

	return &Date{Time: *t}
}
