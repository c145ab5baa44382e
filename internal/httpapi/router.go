// Package httpapi wires the HTTP surface of the classification service.
// It keeps handlers thin, delegating business rules to the service layer.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tallyfold/mis/internal/service/classify"
)

// ReadyFunc reports backend readiness (e.g. a database ping).
type ReadyFunc func(ctx context.Context) error

// Server wires handlers and middleware using Chi.
type Server struct {
	svc      classify.Service
	ready    ReadyFunc
	currency string
	log      *slog.Logger
	rt       *chi.Mux
}

// New constructs the HTTP server with routes and middleware. The logger
// is used by request/response logging and panic recovery.
func New(svc classify.Service, ready ReadyFunc, currency string, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)

	s := &Server{svc: svc, ready: ready, currency: currency, log: logger, rt: r}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints.
func (s *Server) routes() {
	// Imports
	s.rt.Post("/v1/journal/import", s.importJournal)
	s.rt.Post("/v1/sales/import", s.importSales)
	// Transactions and reclassification actions
	s.rt.Get("/v1/transactions", s.listTransactions)
	s.rt.Get("/v1/transactions/{id}", s.getTransaction)
	s.rt.Post("/v1/transactions/{id}/classify", s.classifyOne)
	s.rt.Post("/v1/transactions/classify", s.classifyMany)
	s.rt.Post("/v1/transactions/{id}/apply-suggestion", s.applySuggestion)
	s.rt.Post("/v1/transactions/apply-similar", s.applyToSimilar)
	s.rt.Post("/v1/transactions/{id}/ignore", s.ignoreOne)
	s.rt.Post("/v1/transactions/{id}/clear", s.clearOne)
	s.rt.Post("/v1/undo", s.undo)
	// Reports
	s.rt.Get("/v1/report", s.getReport)
	s.rt.Get("/v1/report/states", s.getStateRollup)
	s.rt.Post("/v1/prorate", s.postProrate)
	// Rules and stats
	s.rt.Get("/v1/rules", s.listRules)
	s.rt.Post("/v1/rules", s.appendRule)
	s.rt.Get("/v1/stats", s.getStats)
	// Ops (unversioned)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Method(http.MethodGet, "/metrics", metricsHandler())
}
