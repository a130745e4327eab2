package goal

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/category"
	"github.com/MrJamesThe3rd/carteira/internal/goal"
	"github.com/MrJamesThe3rd/carteira/internal/http/respond"
	"github.com/MrJamesThe3rd/carteira/internal/period"
	"github.com/MrJamesThe3rd/carteira/internal/validation"
)

type Handler struct {
	svc *goal.Service
	now func() time.Time
}

func NewHandler(svc *goal.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/progress", h.progress)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type goalResponse struct {
	ID            uuid.UUID          `json:"id"`
	CategoryID    uuid.UUID          `json:"category_id"`
	Direction     category.Direction `json:"direction"`
	MonthlyTarget int64              `json:"monthly_target"`
	Active        bool               `json:"active"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     *time.Time         `json:"updated_at,omitempty"`
}

func toResponse(g *goal.Goal) goalResponse {
	return goalResponse{
		ID:            g.ID,
		CategoryID:    g.CategoryID,
		Direction:     g.Direction,
		MonthlyTarget: g.MonthlyTarget,
		Active:        g.Active,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

type createRequest struct {
	CategoryID    uuid.UUID `json:"category_id"`
	MonthlyTarget int64     `json:"monthly_target"`
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

	g, err := h.svc.Create(r.Context(), ownerID, goal.CreateParams{
		CategoryID:    req.CategoryID,
		MonthlyTarget: req.MonthlyTarget,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, toResponse(g))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	goals, err := h.svc.List(r.Context(), ownerID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]goalResponse, len(goals))
	for i, g := range goals {
		resp[i] = toResponse(g)
	}

	respond.JSON(w, r, http.StatusOK, resp)
}

type progressResponse struct {
	Goal      goalResponse  `json:"goal"`
	Period    period.Period `json:"period"`
	Current   int64         `json:"current"`
	Remaining int64         `json:"remaining"`
	Percent   float64       `json:"percent"`
	Status    goal.Status   `json:"status"`
}

// progress evaluates active goals for ?period=YYYY-MM, defaulting to the
// current month.
func (h *Handler) progress(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	p := period.Of(h.now())

	if s := r.URL.Query().Get("period"); s != "" {
		parsed, err := period.Parse(s)
		if err != nil {
			respond.Error(w, r, validation.New("period", "must be in YYYY-MM format"))
			return
		}

		p = parsed
	}

	progress, err := h.svc.ListProgress(r.Context(), ownerID, p)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]progressResponse, len(progress))
	for i, gp := range progress {
		resp[i] = progressResponse{
			Goal:      toResponse(gp.Goal),
			Period:    gp.Period,
			Current:   gp.Current,
			Remaining: gp.Remaining,
			Percent:   gp.Percent,
			Status:    gp.Status,
		}
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

	g, err := h.svc.Get(r.Context(), ownerID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(g))
}

type updateRequest struct {
	MonthlyTarget *int64 `json:"monthly_target,omitempty"`
	Active        *bool  `json:"active,omitempty"`
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

	g, err := h.svc.Get(r.Context(), ownerID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if req.MonthlyTarget != nil {
		g.MonthlyTarget = *req.MonthlyTarget
	}

	if req.Active != nil {
		g.Active = *req.Active
	}

	if err := h.svc.Update(r.Context(), g); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(g))
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
