package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/http/respond"
	"github.com/MrJamesThe3rd/carteira/internal/period"
	"github.com/MrJamesThe3rd/carteira/internal/report"
	"github.com/MrJamesThe3rd/carteira/internal/validation"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
}

type categoryTotal struct {
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	Name       string     `json:"name"`
	Color      string     `json:"color,omitempty"`
	Amount     int64      `json:"amount"`
	Percent    float64    `json:"percent"`
}

type methodTotal struct {
	Method  expense.Method `json:"method"`
	Amount  int64          `json:"amount"`
	Percent float64        `json:"percent"`
}

type monthTotal struct {
	Period   period.Period `json:"period"`
	Income   int64         `json:"income"`
	Expenses int64         `json:"expenses"`
}

type summaryResponse struct {
	From            respond.Date    `json:"from"`
	To              respond.Date    `json:"to"`
	ReceivedIncome  int64           `json:"received_income"`
	PendingIncome   int64           `json:"pending_income"`
	PaidExpenses    int64           `json:"paid_expenses"`
	PendingExpenses int64           `json:"pending_expenses"`
	Balance         int64           `json:"balance"`
	Count           int             `json:"count"`
	ByCategory      []categoryTotal `json:"by_category"`
	ByMethod        []methodTotal   `json:"by_method"`
	Monthly         []monthTotal    `json:"monthly"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	from, err := respond.DateQuery(r, "from")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	to, err := respond.DateQuery(r, "to")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if from == nil || to == nil {
		respond.Error(w, r, validation.New("from", "from and to are required"))
		return
	}

	s, err := h.svc.Summary(r.Context(), ownerID, *from, *to)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := summaryResponse{
		From:            respond.Date{Time: s.From},
		To:              respond.Date{Time: s.To},
		ReceivedIncome:  s.ReceivedIncome,
		PendingIncome:   s.PendingIncome,
		PaidExpenses:    s.PaidExpenses,
		PendingExpenses: s.PendingExpenses,
		Balance:         s.Balance,
		Count:           s.Count,
		ByCategory:      make([]categoryTotal, len(s.ByCategory)),
		ByMethod:        make([]methodTotal, len(s.ByMethod)),
		Monthly:         make([]monthTotal, len(s.Monthly)),
	}

	for i, c := range s.ByCategory {
		resp.ByCategory[i] = categoryTotal(c)
	}

	for i, m := range s.ByMethod {
		resp.ByMethod[i] = methodTotal(m)
	}

	for i, m := range s.Monthly {
		resp.Monthly[i] = monthTotal(m)
	}

	respond.JSON(w, r, http.StatusOK, resp)
}
