package forecast

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/forecast"
	"github.com/MrJamesThe3rd/carteira/internal/http/respond"
	"github.com/MrJamesThe3rd/carteira/internal/logger"
	"github.com/MrJamesThe3rd/carteira/internal/period"
	"github.com/MrJamesThe3rd/carteira/internal/validation"
)

type Handler struct {
	svc     *forecast.Service
	horizon int
}

// NewHandler serves forecasts of horizon months unless the request asks for
// another horizon.
func NewHandler(svc *forecast.Service, horizon int) *Handler {
	return &Handler{svc: svc, horizon: horizon}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.forecast)
	r.Get("/chart.png", h.chart)
}

type invoiceDetail struct {
	CardID uuid.UUID              `json:"card_id"`
	Period period.Period          `json:"period"`
	Amount int64                  `json:"amount"`
	Source forecast.InvoiceSource `json:"source"`
}

type monthRow struct {
	Period          period.Period   `json:"period"`
	Label           string          `json:"label"`
	StartingBalance int64           `json:"starting_balance"`
	Income          int64           `json:"income"`
	Expenses        int64           `json:"expenses"`
	Invoices        int64           `json:"invoices"`
	NetChange       int64           `json:"net_change"`
	EndingBalance   int64           `json:"ending_balance"`
	Historical      bool            `json:"historical"`
	InvoiceDetails  []invoiceDetail `json:"invoice_details"`
}

type warning struct {
	Kind     forecast.WarningKind `json:"kind"`
	RecordID uuid.UUID            `json:"record_id"`
	Reason   string               `json:"reason"`
}

type forecastResponse struct {
	CurrentBalance int64      `json:"current_balance"`
	HistoryMonths  []monthRow `json:"history_months"`
	Forecast       []monthRow `json:"forecast"`
	Warnings       []warning  `json:"warnings"`
}

func toRows(rows []forecast.MonthRow) []monthRow {
	out := make([]monthRow, len(rows))
	for i, r := range rows {
		details := make([]invoiceDetail, len(r.InvoiceDetails))
		for j, d := range r.InvoiceDetails {
			details[j] = invoiceDetail(d)
		}

		out[i] = monthRow{
			Period:          r.Period,
			Label:           r.Label,
			StartingBalance: r.StartingBalance,
			Income:          r.Income,
			Expenses:        r.Expenses,
			Invoices:        r.Invoices,
			NetChange:       r.NetChange,
			EndingBalance:   r.EndingBalance,
			Historical:      r.Historical,
			InvoiceDetails:  details,
		}
	}

	return out
}

func toResponse(res forecast.Result) forecastResponse {
	resp := forecastResponse{
		CurrentBalance: res.CurrentBalance,
		HistoryMonths:  toRows(res.HistoryMonths),
		Forecast:       toRows(res.Forecast),
		Warnings:       make([]warning, len(res.Warnings)),
	}

	for i, w := range res.Warnings {
		resp.Warnings[i] = warning(w)
	}

	return resp
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request) (forecast.Result, bool) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return forecast.Result{}, false
	}

	horizon, err := respond.IntQuery(r, "horizon_months", h.horizon)
	if err != nil {
		respond.Error(w, r, err)
		return forecast.Result{}, false
	}

	res, err := h.svc.Forecast(r.Context(), ownerID, horizon)
	if err != nil {
		respond.Error(w, r, err)
		return forecast.Result{}, false
	}

	return res, true
}

func (h *Handler) forecast(w http.ResponseWriter, r *http.Request) {
	res, ok := h.run(w, r)
	if !ok {
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(res))
}

func (h *Handler) chart(w http.ResponseWriter, r *http.Request) {
	res, ok := h.run(w, r)
	if !ok {
		return
	}

	if len(res.HistoryMonths)+len(res.Forecast) < 2 {
		respond.Error(w, r, validation.New("horizon_months", "a chart needs at least 2 months"))
		return
	}

	png, err := forecast.RenderChart(res)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))

	if _, err := w.Write(png); err != nil {
		log := logger.FromContext(r.Context(), logger.Nop())
		log.Error().Err(err).Msg("failed to write chart")
	}
}
