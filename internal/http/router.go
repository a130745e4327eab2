package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/carteira/internal/auth"
	"github.com/MrJamesThe3rd/carteira/internal/http/bank"
	"github.com/MrJamesThe3rd/carteira/internal/http/card"
	"github.com/MrJamesThe3rd/carteira/internal/http/category"
	"github.com/MrJamesThe3rd/carteira/internal/http/expense"
	"github.com/MrJamesThe3rd/carteira/internal/http/export"
	"github.com/MrJamesThe3rd/carteira/internal/http/forecast"
	"github.com/MrJamesThe3rd/carteira/internal/http/goal"
	"github.com/MrJamesThe3rd/carteira/internal/http/importcsv"
	"github.com/MrJamesThe3rd/carteira/internal/http/income"
	"github.com/MrJamesThe3rd/carteira/internal/http/invoice"
	"github.com/MrJamesThe3rd/carteira/internal/http/matching"
	"github.com/MrJamesThe3rd/carteira/internal/http/report"
	"github.com/MrJamesThe3rd/carteira/internal/http/respond"
	"github.com/MrJamesThe3rd/carteira/internal/http/user"
)

type Options struct {
	Log         zerolog.Logger
	Verifier    *auth.Verifier
	CORSOrigins []string
	Timeout     time.Duration
	RateLimit   float64
	RateBurst   int
}

type Handlers struct {
	Forecast   *forecast.Handler
	Banks      *bank.Handler
	Cards      *card.Handler
	Categories *category.Handler
	Goals      *goal.Handler
	Expenses   *expense.Handler
	Incomes    *income.Handler
	Invoices   *invoice.Handler
	Reports    *report.Handler
	Import     *importcsv.Handler
	Matching   *matching.Handler
	Export     *export.Handler
	Me         *user.Handler
}

func New(opts Options, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(requestLogger(opts.Log))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	limiter := newOwnerLimiter(opts.RateLimit, opts.RateBurst)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(opts.Verifier, respond.Error))
		r.Use(limiter.Handler)

		r.Route("/forecast", h.Forecast.Routes)

		r.Route("/banks", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Banks.Routes(r)
		})

		r.Route("/cards", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Cards.Routes(r)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Categories.Routes(r)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Goals.Routes(r)
		})

		// Receipts upload as multipart, so expenses accept any content type.
		r.Route("/expenses", h.Expenses.Routes)

		r.Route("/incomes", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Incomes.Routes(r)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Invoices.Routes(r)
		})

		r.Route("/reports", h.Reports.Routes)

		r.Route("/import", h.Import.Routes)

		r.Route("/matching", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Matching.Routes(r)
		})

		r.Route("/export", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Export.Routes(r)
		})

		r.Route("/me", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Me.Routes(r)
		})
	})

	return router
}
