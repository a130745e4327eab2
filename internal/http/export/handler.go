package export

import (
	"archive/zip"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/export"
	"github.com/MrJamesThe3rd/carteira/internal/http/respond"
	"github.com/MrJamesThe3rd/carteira/internal/logger"
)

type Handler struct {
	svc *export.Service
	now func() time.Time
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.metadata)
	r.Post("/download", h.download)
}

type exportRequest struct {
	StartDate  *respond.Date `json:"start_date,omitempty"`
	EndDate    *respond.Date `json:"end_date,omitempty"`
	CategoryID *uuid.UUID    `json:"category_id,omitempty"`
}

func (req exportRequest) filter() expense.ListFilter {
	return expense.ListFilter{
		StartDate:  respond.DatePtr(req.StartDate),
		EndDate:    respond.DatePtr(req.EndDate),
		CategoryID: req.CategoryID,
	}
}

type itemResponse struct {
	ID          uuid.UUID    `json:"id"`
	Description string       `json:"description"`
	Amount      int64        `json:"amount"`
	Date        respond.Date `json:"date"`
	File        string       `json:"file,omitempty"`
	Missing     bool         `json:"missing,omitempty"`
}

type metadataResponse struct {
	Items   []itemResponse `json:"items"`
	Summary string         `json:"summary"`
}

// run exports into a fresh temporary directory that the caller must remove.
func (h *Handler) run(w http.ResponseWriter, r *http.Request) (string, []export.Item, bool) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return "", nil, false
	}

	var req exportRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return "", nil, false
	}

	tmpDir, err := os.MkdirTemp("", "carteira-export-*")
	if err != nil {
		respond.Error(w, r, fmt.Errorf("create export directory: %w", err))
		return "", nil, false
	}

	items, err := h.svc.Export(r.Context(), ownerID, req.filter(), tmpDir)
	if err != nil {
		os.RemoveAll(tmpDir)
		respond.Error(w, r, err)

		return "", nil, false
	}

	return tmpDir, items, true
}

func (h *Handler) metadata(w http.ResponseWriter, r *http.Request) {
	tmpDir, items, ok := h.run(w, r)
	if !ok {
		return
	}
	defer os.RemoveAll(tmpDir)

	resp := metadataResponse{
		Items:   make([]itemResponse, 0, len(items)),
		Summary: h.svc.Summary(items),
	}

	for _, item := range items {
		ir := itemResponse{
			ID:          item.Expense.ID,
			Description: item.Expense.Description,
			Amount:      item.Expense.Amount,
			Date:        respond.Date{Time: item.Expense.Date},
			Missing:     item.Missing,
		}
		if item.FilePath != "" {
			ir.File = filepath.Base(item.FilePath)
		}

		resp.Items = append(resp.Items, ir)
	}

	respond.JSON(w, r, http.StatusOK, resp)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	tmpDir, items, ok := h.run(w, r)
	if !ok {
		return
	}
	defer os.RemoveAll(tmpDir)

	summary := h.svc.Summary(items)
	if err := os.WriteFile(filepath.Join(tmpDir, "resumo.txt"), []byte(summary), 0o644); err != nil {
		respond.Error(w, r, fmt.Errorf("write summary: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"comprovantes_%s.zip\"", h.now().Format("20060102")))

	zipWriter := zip.NewWriter(w)
	defer zipWriter.Close()

	err := filepath.Walk(tmpDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}

		relPath, _ := filepath.Rel(tmpDir, path)

		zf, err := zipWriter.Create(relPath)
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(zf, f)

		return err
	})
	if err != nil {
		log := logger.FromContext(r.Context(), logger.Nop())
		log.Error().Err(err).Msg("failed to create zip")
	}
}
