package card

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/card"
	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/http/respond"
	"github.com/MrJamesThe3rd/carteira/internal/invoice"
	"github.com/MrJamesThe3rd/carteira/internal/period"
)

type Handler struct {
	cards    *card.Service
	invoices *invoice.Service
}

func NewHandler(cards *card.Service, invoices *invoice.Service) *Handler {
	return &Handler{cards: cards, invoices: invoices}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/summary", h.summary)
	r.Get("/{id}/periods/{period}", h.periodView)
}

type cardResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	LastFour   string     `json:"last_four"`
	Brand      card.Brand `json:"brand"`
	Limit      int64      `json:"limit"`
	ClosingDay int        `json:"closing_day"`
	DueDay     int        `json:"due_day"`
	Color      string     `json:"color,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

func toResponse(c *card.Card) cardResponse {
	return cardResponse{
		ID:         c.ID,
		Name:       c.Name,
		LastFour:   c.LastFour,
		Brand:      c.Brand,
		Limit:      c.Limit,
		ClosingDay: c.ClosingDay,
		DueDay:     c.DueDay,
		Color:      c.Color,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

type createRequest struct {
	Name       string     `json:"name"`
	LastFour   string     `json:"last_four"`
	Brand      card.Brand `json:"brand"`
	Limit      int64      `json:"limit"`
	ClosingDay int        `json:"closing_day"`
	DueDay     int        `json:"due_day"`
	Color      string     `json:"color"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	var req createRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.cards.Create(r.Context(), ownerID, card.CreateParams{
		Name:       req.Name,
		LastFour:   req.LastFour,
		Brand:      req.Brand,
		Limit:      req.Limit,
		ClosingDay: req.ClosingDay,
		DueDay:     req.DueDay,
		Color:      req.Color,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, toResponse(c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	cards, err := h.cards.List(r.Context(), ownerID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]cardResponse, len(cards))
	for i, c := range cards {
		resp[i] = toResponse(c)
	}

	respond.JSON(w, r, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.UUIDParam(w, r, "id")
	if !ok {
		return
	}

	c, err := h.cards.Get(r.Context(), ownerID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(c))
}

type updateRequest struct {
	Name       *string     `json:"name,omitempty"`
	LastFour   *string     `json:"last_four,omitempty"`
	Brand      *card.Brand `json:"brand,omitempty"`
	Limit      *int64      `json:"limit,omitempty"`
	ClosingDay *int        `json:"closing_day,omitempty"`
	DueDay     *int        `json:"due_day,omitempty"`
	Color      *string     `json:"color,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.UUIDParam(w, r, "id")
	if !ok {
		return
	}

	var req updateRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.cards.Get(r.Context(), ownerID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if req.Name != nil {
		c.Name = *req.Name
	}

	if req.LastFour != nil {
		c.LastFour = *req.LastFour
	}

	if req.Brand != nil {
		c.Brand = *req.Brand
	}

	if req.Limit != nil {
		c.Limit = *req.Limit
	}

	if req.ClosingDay != nil {
		c.ClosingDay = *req.ClosingDay
	}

	if req.DueDay != nil {
		c.DueDay = *req.DueDay
	}

	if req.Color != nil {
		c.Color = *req.Color
	}

	if err := h.cards.Update(r.Context(), c); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(c))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.UUIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.cards.Delete(r.Context(), ownerID, id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type summaryResponse struct {
	Card           cardResponse  `json:"card"`
	CurrentPeriod  period.Period `json:"current_period"`
	UsedLimit      int64         `json:"used_limit"`
	CurrentUsage   int64         `json:"current_usage"`
	AvailableLimit int64         `json:"available_limit"`
	UsagePercent   float64       `json:"usage_percent"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.UUIDParam(w, r, "id")
	if !ok {
		return
	}

	s, err := h.invoices.CardSummary(r.Context(), ownerID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, summaryResponse{
		Card:           toResponse(s.Card),
		CurrentPeriod:  s.CurrentPeriod,
		UsedLimit:      s.UsedLimit,
		CurrentUsage:   s.CurrentUsage,
		AvailableLimit: s.AvailableLimit,
		UsagePercent:   s.UsagePercent,
	})
}

type periodExpense struct {
	ID          uuid.UUID      `json:"id"`
	Description string         `json:"description"`
	Amount      int64          `json:"amount"`
	Date        respond.Date   `json:"date"`
	Status      expense.Status `json:"status"`
	Installment string         `json:"installment,omitempty"`
	CategoryID  *uuid.UUID     `json:"category_id,omitempty"`
}

type periodInvoice struct {
	ID     uuid.UUID     `json:"id"`
	Total  int64         `json:"total"`
	Paid   bool          `json:"paid"`
	PaidAt *respond.Date `json:"paid_at,omitempty"`
}

type periodResponse struct {
	CardID         uuid.UUID       `json:"card_id"`
	Period         period.Period   `json:"period"`
	Label          string          `json:"label"`
	ClosingDate    respond.Date    `json:"closing_date"`
	DueDate        respond.Date    `json:"due_date"`
	Expenses       []periodExpense `json:"expenses"`
	EffectiveTotal int64           `json:"effective_total"`
	Invoice        *periodInvoice  `json:"invoice,omitempty"`
	AmountDue      int64           `json:"amount_due"`
}

func (h *Handler) periodView(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.UUIDParam(w, r, "id")
	if !ok {
		return
	}

	p, ok := respond.PeriodParam(w, r, "period")
	if !ok {
		return
	}

	v, err := h.invoices.PeriodView(r.Context(), ownerID, id, p)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := periodResponse{
		CardID:         v.Card.ID,
		Period:         v.Period,
		Label:          v.Period.Label(),
		ClosingDate:    respond.Date{Time: v.ClosingDate},
		DueDate:        respond.Date{Time: v.DueDate},
		Expenses:       make([]periodExpense, len(v.Expenses)),
		EffectiveTotal: v.EffectiveTotal,
		AmountDue:      v.AmountDue,
	}

	for i, e := range v.Expenses {
		pe := periodExpense{
			ID:          e.ID,
			Description: e.Description,
			Amount:      e.Amount,
			Date:        respond.Date{Time: e.Date},
			Status:      e.Status,
			CategoryID:  e.CategoryID,
		}
		if e.Installment != nil {
			pe.Installment = e.Installment.Label
		}

		resp.Expenses[i] = pe
	}

	if v.Invoice != nil {
		resp.Invoice = &periodInvoice{
			ID:     v.Invoice.ID,
			Total:  v.Invoice.Total,
			Paid:   v.Invoice.Paid,
			PaidAt: respond.OptionalDate(v.Invoice.PaidAt),
		}
	}

	respond.JSON(w, r, http.StatusOK, resp)
}
