package expense

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/http/respond"
	"github.com/MrJamesThe3rd/carteira/internal/logger"
	"github.com/MrJamesThe3rd/carteira/internal/receipt"
	"github.com/MrJamesThe3rd/carteira/internal/recurrence"
	"github.com/MrJamesThe3rd/carteira/internal/validation"
)

type Handler struct {
	svc       *expense.Service
	receipts  *receipt.Service
	maxUpload int64
}

func NewHandler(svc *expense.Service, receipts *receipt.Service, maxUpload int64) *Handler {
	return &Handler{svc: svc, receipts: receipts, maxUpload: maxUpload}
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
	r.Put("/{id}/receipt", h.putReceipt)
	r.Get("/{id}/receipt", h.getReceipt)
	r.Delete("/{id}/receipt", h.deleteReceipt)
}

type createRequest struct {
	Description  string                `json:"description"`
	Amount       int64                 `json:"amount"`
	Date         respond.Date          `json:"date"`
	CategoryID   *uuid.UUID            `json:"category_id,omitempty"`
	Method       expense.Method        `json:"method"`
	BankID       *uuid.UUID            `json:"bank_id,omitempty"`
	CardID       *uuid.UUID            `json:"card_id,omitempty"`
	Status       expense.Status        `json:"status"`
	Installments int                   `json:"installments,omitempty"`
	Recurrence   *recurrence.Frequency `json:"recurrence,omitempty"`
	Notes        string                `json:"notes,omitempty"`
}

// create answers with every stored expense; an installment purchase yields
// one per month.
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

	exps, err := h.svc.Create(r.Context(), ownerID, expense.CreateParams{
		Description:  req.Description,
		Amount:       req.Amount,
		Date:         req.Date.Time,
		CategoryID:   req.CategoryID,
		Method:       req.Method,
		BankID:       req.BankID,
		CardID:       req.CardID,
		Status:       req.Status,
		Installments: req.Installments,
		Recurrence:   req.Recurrence,
		Notes:        req.Notes,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, toResponseList(exps))
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

	exps, err := h.svc.List(r.Context(), ownerID, filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponseList(exps))
}

func parseFilter(r *http.Request) (expense.ListFilter, error) {
	q := r.URL.Query()
	filter := expense.ListFilter{}

	if s := q.Get("status"); s != "" {
		status := expense.Status(s)
		if !status.Valid() {
			return filter, validation.New("status", "must be paid or pending")
		}

		filter.Status = &status
	}

	if s := q.Get("method"); s != "" {
		method := expense.Method(s)
		if !method.Valid() {
			return filter, validation.New("method", "is not supported")
		}

		filter.Method = &method
	}

	var err error

	if filter.BankID, err = respond.UUIDQuery(r, "bank_id"); err != nil {
		return filter, err
	}

	if filter.CardID, err = respond.UUIDQuery(r, "card_id"); err != nil {
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

	exps, err := h.svc.Pending(r.Context(), ownerID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponseList(exps))
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

	exps, err := h.svc.ListGroup(r.Context(), ownerID, groupID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponseList(exps))
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

	e, err := h.svc.Get(r.Context(), ownerID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(e))
}

type updateRequest struct {
	Description *string       `json:"description,omitempty"`
	Amount      *int64        `json:"amount,omitempty"`
	Date        *respond.Date `json:"date,omitempty"`
	CategoryID  *uuid.UUID    `json:"category_id,omitempty"`
	Notes       *string       `json:"notes,omitempty"`
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

	e, err := h.svc.Get(r.Context(), ownerID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if req.Description != nil {
		e.Description = *req.Description
	}

	if req.Amount != nil {
		e.Amount = *req.Amount
	}

	if req.Date != nil {
		e.Date = req.Date.Time
	}

	if req.CategoryID != nil {
		e.CategoryID = req.CategoryID
	}

	if req.Notes != nil {
		e.Notes = *req.Notes
	}

	if err := h.svc.Update(r.Context(), e); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(e))
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
	Method expense.Method `json:"method"`
	BankID *uuid.UUID     `json:"bank_id,omitempty"`
	CardID *uuid.UUID     `json:"card_id,omitempty"`
	PaidOn *respond.Date  `json:"paid_on,omitempty"`
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

	e, err := h.svc.ConfirmPayment(r.Context(), ownerID, id, expense.ConfirmParams{
		Method: req.Method,
		BankID: req.BankID,
		CardID: req.CardID,
		PaidOn: respond.DatePtr(req.PaidOn),
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(e))
}

func (h *Handler) putReceipt(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.UUIDParam(w, r, "id")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		respond.BadRequest(w, r, "failed to parse form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respond.BadRequest(w, r, "file field is required")
		return
	}
	defer file.Close()

	if _, err := h.receipts.Attach(r.Context(), ownerID, id, header.Filename, header.Header.Get("Content-Type"), file); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getReceipt(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.UUIDParam(w, r, "id")
	if !ok {
		return
	}

	obj, err := h.receipts.Open(r.Context(), ownerID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	defer obj.Body.Close()

	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", obj.Name))

	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}

	if _, err := io.Copy(w, obj.Body); err != nil {
		log := logger.FromContext(r.Context(), logger.Nop())
		log.Error().Err(err).Str("expense", id.String()).Msg("failed to stream receipt")
	}
}

func (h *Handler) deleteReceipt(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.UUIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.receipts.Remove(r.Context(), ownerID, id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
