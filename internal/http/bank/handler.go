package bank

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/bank"
	"github.com/MrJamesThe3rd/carteira/internal/http/respond"
)

type Handler struct {
	svc *bank.Service
}

func NewHandler(svc *bank.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type accountResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Kind      bank.Kind  `json:"kind"`
	Balance   int64      `json:"balance"`
	Color     string     `json:"color,omitempty"`
	Version   int64      `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type listResponse struct {
	Accounts []accountResponse `json:"accounts"`
	Total    int64             `json:"total"`
}

func toResponse(a *bank.Account) accountResponse {
	return accountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Kind:      a.Kind,
		Balance:   a.Balance,
		Color:     a.Color,
		Version:   a.Version,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

type createRequest struct {
	Name    string    `json:"name"`
	Kind    bank.Kind `json:"kind"`
	Balance int64     `json:"balance"`
	Color   string    `json:"color"`
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

	a, err := h.svc.Create(r.Context(), ownerID, bank.CreateParams{
		Name:    req.Name,
		Kind:    req.Kind,
		Balance: req.Balance,
		Color:   req.Color,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, toResponse(a))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	accounts, err := h.svc.List(r.Context(), ownerID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := listResponse{
		Accounts: make([]accountResponse, len(accounts)),
		Total:    bank.Total(accounts),
	}
	for i, a := range accounts {
		resp.Accounts[i] = toResponse(a)
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

	a, err := h.svc.Get(r.Context(), ownerID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(a))
}

// updateRequest must carry the version the client read; a concurrent
// balance change makes the update fail with 409.
type updateRequest struct {
	Name    *string    `json:"name,omitempty"`
	Kind    *bank.Kind `json:"kind,omitempty"`
	Balance *int64     `json:"balance,omitempty"`
	Color   *string    `json:"color,omitempty"`
	Version int64      `json:"version"`
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

	a, err := h.svc.Get(r.Context(), ownerID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if req.Name != nil {
		a.Name = *req.Name
	}

	if req.Kind != nil {
		a.Kind = *req.Kind
	}

	if req.Balance != nil {
		a.Balance = *req.Balance
	}

	if req.Color != nil {
		a.Color = *req.Color
	}

	a.Version = req.Version

	if err := h.svc.Update(r.Context(), a); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(a))
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
