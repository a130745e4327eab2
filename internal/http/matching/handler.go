package matching

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/http/respond"
	"github.com/MrJamesThe3rd/carteira/internal/matching"
)

type Handler struct {
	svc *matching.Service
}

func NewHandler(svc *matching.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.learn)
	r.Get("/suggest", h.suggest)
	r.Delete("/{id}", h.delete)
}

type ruleResponse struct {
	ID          uuid.UUID  `json:"id"`
	Pattern     string     `json:"pattern"`
	Description string     `json:"description,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toResponse(rule *matching.Rule) ruleResponse {
	return ruleResponse{
		ID:          rule.ID,
		Pattern:     rule.Pattern,
		Description: rule.Description,
		CategoryID:  rule.CategoryID,
		CreatedAt:   rule.CreatedAt,
	}
}

type suggestResponse struct {
	RawDescription string        `json:"raw_description"`
	Rule           *ruleResponse `json:"rule"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	rawDesc := r.URL.Query().Get("raw_description")
	if rawDesc == "" {
		respond.BadRequest(w, r, "raw_description query parameter is required")
		return
	}

	rule, err := h.svc.Suggest(r.Context(), ownerID, rawDesc)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := suggestResponse{RawDescription: rawDesc}
	if rule != nil {
		resp.Rule = new(toResponse(rule))
	}

	respond.JSON(w, r, http.StatusOK, resp)
}

type learnRequest struct {
	Pattern     string     `json:"pattern"`
	Description string     `json:"description"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	var req learnRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	rule, err := h.svc.Learn(r.Context(), ownerID, matching.LearnParams{
		Pattern:     req.Pattern,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, toResponse(rule))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	rules, err := h.svc.List(r.Context(), ownerID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]ruleResponse, len(rules))
	for i, rule := range rules {
		resp[i] = toResponse(rule)
	}

	respond.JSON(w, r, http.StatusOK, resp)
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
