package invoice

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/http/respond"
	"github.com/MrJamesThe3rd/carteira/internal/invoice"
	"github.com/MrJamesThe3rd/carteira/internal/period"
	"github.com/MrJamesThe3rd/carteira/internal/validation"
)

type Handler struct {
	svc *invoice.Service
}

func NewHandler(svc *invoice.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/generate", h.generate)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/pay", h.pay)
}

type invoiceResponse struct {
	ID        uuid.UUID     `json:"id"`
	CardID    uuid.UUID     `json:"card_id"`
	Period    period.Period `json:"period"`
	Total     int64         `json:"total"`
	DueDate   respond.Date  `json:"due_date"`
	Paid      bool          `json:"paid"`
	PaidAt    *respond.Date `json:"paid_at,omitempty"`
	BankID    *uuid.UUID    `json:"bank_id,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt *time.Time    `json:"updated_at,omitempty"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:        inv.ID,
		CardID:    inv.CardID,
		Period:    inv.Period,
		Total:     inv.Total,
		DueDate:   respond.Date{Time: inv.DueDate},
		Paid:      inv.Paid,
		PaidAt:    respond.OptionalDate(inv.PaidAt),
		BankID:    inv.BankID,
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	invs, err := h.svc.List(r.Context(), ownerID, filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]invoiceResponse, len(invs))
	for i, inv := range invs {
		resp[i] = toResponse(inv)
	}

	respond.JSON(w, r, http.StatusOK, resp)
}

func parseFilter(r *http.Request) (invoice.ListFilter, error) {
	q := r.URL.Query()
	filter := invoice.ListFilter{}

	var err error

	if filter.CardID, err = respond.UUIDQuery(r, "card_id"); err != nil {
		return filter, err
	}

	switch q.Get("paid") {
	case "":
	case "true":
		filter.Paid = new(true)
	case "false":
		filter.Paid = new(false)
	default:
		return filter, validation.New("paid", "must be true or false")
	}

	for name, dst := range map[string]**period.Period{"from": &filter.From, "to": &filter.To} {
		s := q.Get(name)
		if s == "" {
			continue
		}

		p, err := period.Parse(s)
		if err != nil {
			return filter, validation.New(name, "must be in YYYY-MM format")
		}

		*dst = &p
	}

	return filter, nil
}

type generateRequest struct {
	CardID uuid.UUID     `json:"card_id"`
	Period period.Period `json:"period"`
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	var req generateRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	if req.Period.IsZero() {
		respond.Error(w, r, validation.New("period", "is required"))
		return
	}

	inv, err := h.svc.Generate(r.Context(), ownerID, req.CardID, req.Period)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(inv))
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

	inv, err := h.svc.Get(r.Context(), ownerID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(inv))
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

	if err := h.svc.Delete(r.Context(), ownerID, id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type payRequest struct {
	BankID *uuid.UUID    `json:"bank_id,omitempty"`
	PaidOn *respond.Date `json:"paid_on,omitempty"`
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.UUIDParam(w, r, "id")
	if !ok {
		return
	}

	var req payRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	inv, err := h.svc.Pay(r.Context(), ownerID, id, req.BankID, respond.DatePtr(req.PaidOn))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(inv))
}
