package income

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/http/respond"
	"github.com/MrJamesThe3rd/carteira/internal/income"
	"github.com/MrJamesThe3rd/carteira/internal/recurrence"
	"github.com/MrJamesThe3rd/carteira/internal/validation"
)

type Handler struct {
	svc *income.Service
}

func NewHandler(svc *income.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/pending", h.pending)
	r.Get("/groups/{groupID}", h.group)
	r.Delete("/groups/{groupID}", h.deleteGroup)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/confirm", h.confirm)
}

type createRequest struct {
	Description  string                `json:"description"`
	Amount       int64                 `json:"amount"`
	Date         respond.Date          `json:"date"`
	CategoryID   *uuid.UUID            `json:"category_id,omitempty"`
	BankID       *uuid.UUID            `json:"bank_id,omitempty"`
	Status       income.Status         `json:"status"`
	Installments int                   `json:"installments,omitempty"`
	Debtor       string                `json:"debtor,omitempty"`
	Notes        string                `json:"notes,omitempty"`
	Recurrence   *recurrence.Frequency `json:"recurrence,omitempty"`
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

	incs, err := h.svc.Create(r.Context(), ownerID, income.CreateParams{
		Description:  req.Description,
		Amount:       req.Amount,
		Date:         req.Date.Time,
		CategoryID:   req.CategoryID,
		BankID:       req.BankID,
		Status:       req.Status,
		Installments: req.Installments,
		Debtor:       req.Debtor,
		Notes:        req.Notes,
		Recurrence:   req.Recurrence,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, toResponseList(incs))
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

	incs, err := h.svc.List(r.Context(), ownerID, filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponseList(incs))
}

func parseFilter(r *http.Request) (income.ListFilter, error) {
	filter := income.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		status := income.Status(s)
		if !status.Valid() {
			return filter, validation.New("status", "must be received or pending")
		}

		filter.Status = &status
	}

	var err error

	if filter.BankID, err = respond.UUIDQuery(r, "bank_id"); err != nil {
		return filter, err
	}

	if filter.CategoryID, err = respond.UUIDQuery(r, "category_id"); err != nil {
		return filter, err
	}

	if filter.StartDate, err = respond.DateQuery(r, "start_date"); err != nil {
		return filter, err
	}

	if filter.EndDate, err = respond.DateQuery(r, "end_date"); err != nil {
		return filter, err
	}

	return filter, nil
}

func (h *Handler) pending(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	incs, err := h.svc.Pending(r.Context(), ownerID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponseList(incs))
}

func (h *Handler) group(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	groupID, ok := respond.UUIDParam(w, r, "groupID")
	if !ok {
		return
	}

	incs, summary, err := h.svc.ListGroup(r.Context(), ownerID, groupID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toGroupResponse(incs, summary))
}

func (h *Handler) deleteGroup(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	groupID, ok := respond.UUIDParam(w, r, "groupID")
	if !ok {
		return
	}

	if err := h.svc.DeleteGroup(r.Context(), ownerID, groupID); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
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

	inc, err := h.svc.Get(r.Context(), ownerID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(inc))
}

type updateRequest struct {
	Description *string       `json:"description,omitempty"`
	Amount      *int64        `json:"amount,omitempty"`
	Date        *respond.Date `json:"date,omitempty"`
	CategoryID  *uuid.UUID    `json:"category_id,omitempty"`
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

	inc, err := h.svc.Get(r.Context(), ownerID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if req.Description != nil {
		inc.Description = *req.Description
	}

	if req.Amount != nil {
		inc.Amount = *req.Amount
	}

	if req.Date != nil {
		inc.Date = req.Date.Time
	}

	if req.CategoryID != nil {
		inc.CategoryID = req.CategoryID
	}

	if err := h.svc.Update(r.Context(), inc); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(inc))
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

type confirmRequest struct {
	BankID     uuid.UUID     `json:"bank_id"`
	ReceivedOn *respond.Date `json:"received_on,omitempty"`
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.UUIDParam(w, r, "id")
	if !ok {
		return
	}

	var req confirmRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	if req.BankID == uuid.Nil {
		respond.Error(w, r, validation.New("bank_id", "is required"))
		return
	}

	inc, err := h.svc.ConfirmReceipt(r.Context(), ownerID, id, req.BankID, respond.DatePtr(req.ReceivedOn))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(inc))
}
