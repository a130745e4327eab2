package importcsv

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/http/respond"
	"github.com/MrJamesThe3rd/carteira/internal/importer"
	"github.com/MrJamesThe3rd/carteira/internal/importer/statement"
	"github.com/MrJamesThe3rd/carteira/internal/income"
	"github.com/MrJamesThe3rd/carteira/internal/validation"
)

type Handler struct {
	svc       *importer.Service
	maxUpload int64
}

func NewHandler(svc *importer.Service, maxUpload int64) *Handler {
	return &Handler{svc: svc, maxUpload: maxUpload}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type entryResponse struct {
	ID             *uuid.UUID   `json:"id,omitempty"`
	Description    string       `json:"description"`
	RawDescription string       `json:"raw_description"`
	Amount         int64        `json:"amount"`
	Date           respond.Date `json:"date"`
	CategoryID     *uuid.UUID   `json:"category_id,omitempty"`
}

type importResponse struct {
	Profile     string          `json:"profile"`
	Charset     string          `json:"charset"`
	Imported    int             `json:"imported"`
	Skipped     int             `json:"skipped"`
	Ignored     int             `json:"ignored"`
	Categorized int             `json:"categorized"`
	Expenses    []entryResponse `json:"expenses"`
	Incomes     []entryResponse `json:"incomes"`
	Duplicates  []entryResponse `json:"duplicates"`
}

func fromExpense(e *expense.Expense) entryResponse {
	return entryResponse{
		ID:             &e.ID,
		Description:    e.Description,
		RawDescription: e.RawDescription,
		Amount:         e.Amount,
		Date:           respond.Date{Time: e.Date},
		CategoryID:     e.CategoryID,
	}
}

func fromIncome(i *income.Income) entryResponse {
	return entryResponse{
		ID:             &i.ID,
		Description:    i.Description,
		RawDescription: i.RawDescription,
		Amount:         i.Amount,
		Date:           respond.Date{Time: i.Date},
		CategoryID:     i.CategoryID,
	}
}

func toResponse(s *importer.Summary) importResponse {
	resp := importResponse{
		Profile:     s.Profile,
		Charset:     s.Charset,
		Imported:    s.Imported(),
		Skipped:     s.Skipped(),
		Ignored:     s.Ignored,
		Categorized: s.Categorized,
		Expenses:    make([]entryResponse, 0, len(s.Expenses)),
		Incomes:     make([]entryResponse, 0, len(s.Incomes)),
		Duplicates:  make([]entryResponse, 0, s.Skipped()),
	}

	for _, e := range s.Expenses {
		resp.Expenses = append(resp.Expenses, fromExpense(e))
	}

	for _, i := range s.Incomes {
		resp.Incomes = append(resp.Incomes, fromIncome(i))
	}

	for _, e := range s.SkippedExpenses {
		d := fromExpense(e)
		d.ID = nil
		resp.Duplicates = append(resp.Duplicates, d)
	}

	for _, i := range s.SkippedIncomes {
		d := fromIncome(i)
		d.ID = nil
		resp.Duplicates = append(resp.Duplicates, d)
	}

	return resp
}

// importCSV takes a multipart form with the statement file, the source bank
// ("nubank", "itau", "bb" or empty to detect) and the account it belongs to:
// bank_id for checking statements, card_id for credit card statements.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		respond.BadRequest(w, r, "failed to parse form: "+err.Error())
		return
	}

	params := importer.Params{Source: statement.Source(r.FormValue("source"))}

	for name, dst := range map[string]**uuid.UUID{"bank_id": &params.BankID, "card_id": &params.CardID} {
		s := r.FormValue(name)
		if s == "" {
			continue
		}

		id, err := uuid.Parse(s)
		if err != nil {
			respond.Error(w, r, validation.New(name, "must be a uuid"))
			return
		}

		*dst = &id
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.BadRequest(w, r, "file field is required")
		return
	}
	defer file.Close()

	summary, err := h.svc.Import(r.Context(), ownerID, params, file)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	status := http.StatusCreated
	if summary.Imported() == 0 {
		status = http.StatusOK
	}

	respond.JSON(w, r, status, toResponse(summary))
}
