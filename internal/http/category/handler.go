package category

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/category"
	"github.com/MrJamesThe3rd/carteira/internal/http/respond"
	"github.com/MrJamesThe3rd/carteira/internal/validation"
)

type Handler struct {
	svc *category.Service
}

func NewHandler(svc *category.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/defaults", h.defaults)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type categoryResponse struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	Direction category.Direction `json:"direction"`
	Color     string             `json:"color,omitempty"`
	Icon      string             `json:"icon,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

func toResponse(c *category.Category) categoryResponse {
	return categoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Direction: c.Direction,
		Color:     c.Color,
		Icon:      c.Icon,
		CreatedAt: c.CreatedAt,
	}
}

func toResponseList(cs []*category.Category) []categoryResponse {
	resp := make([]categoryResponse, len(cs))
	for i, c := range cs {
		resp[i] = toResponse(c)
	}

	return resp
}

type createRequest struct {
	Name      string             `json:"name"`
	Direction category.Direction `json:"direction"`
	Color     string             `json:"color"`
	Icon      string             `json:"icon"`
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

	c, err := h.svc.Create(r.Context(), ownerID, category.CreateParams{
		Name:      req.Name,
		Direction: req.Direction,
		Color:     req.Color,
		Icon:      req.Icon,
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

	filter := category.ListFilter{}

	if s := r.URL.Query().Get("direction"); s != "" {
		d := category.Direction(s)
		if !d.Valid() {
			respond.Error(w, r, validation.New("direction", "must be income or expense"))
			return
		}

		filter.Direction = &d
	}

	cs, err := h.svc.List(r.Context(), ownerID, filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponseList(cs))
}

// defaults seeds the starter categories. It answers 200 with an empty list
// when the owner already has categories.
func (h *Handler) defaults(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	cs, err := h.svc.InitializeDefaults(r.Context(), ownerID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	status := http.StatusOK
	if len(cs) > 0 {
		status = http.StatusCreated
	}

	respond.JSON(w, r, status, toResponseList(cs))
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

	c, err := h.svc.Get(r.Context(), ownerID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(c))
}

type updateRequest struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty"`
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

	c, err := h.svc.Get(r.Context(), ownerID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if req.Name != nil {
		c.Name = *req.Name
	}

	if req.Color != nil {
		c.Color = *req.Color
	}

	if req.Icon != nil {
		c.Icon = *req.Icon
	}

	if err := h.svc.Update(r.Context(), c); err != nil {
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

	if err := h.svc.Delete(r.Context(), ownerID, id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
