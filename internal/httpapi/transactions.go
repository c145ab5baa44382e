package httpapi

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tallyfold/mis/internal/mis"
)

// GET /v1/transactions?status=unclassified
func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	status := mis.Status(r.URL.Query().Get("status"))
	switch status {
	case "", mis.StatusUnclassified, mis.StatusSuggested, mis.StatusClassified, mis.StatusIgnored:
	default:
		badRequest(w, "invalid status filter")
		return
	}
	txs, err := s.svc.Transactions(r.Context(), status)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	out := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx))
	}
	toJSON(w, http.StatusOK, out)
}

// GET /v1/transactions/{id}
func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	tx, err := s.svc.Transaction(r.Context(), id)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toTransactionResponse(tx))
}

// POST /v1/transactions/{id}/classify
// Body: { head, subhead }
func (s *Server) classifyOne(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req classifyRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	tx, err := s.svc.Classify(r.Context(), id, req.Head, req.Subhead)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toTransactionResponse(tx))
}

// POST /v1/transactions/classify
// Body: { ids, head, subhead }
func (s *Server) classifyMany(w http.ResponseWriter, r *http.Request) {
	var req classifyManyRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	if len(req.IDs) == 0 {
		badRequest(w, "ids is required")
		return
	}
	n, err := s.svc.ClassifyMultiple(r.Context(), req.IDs, req.Head, req.Subhead)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, countResponse{Updated: n})
}

// POST /v1/transactions/{id}/apply-suggestion
func (s *Server) applySuggestion(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	tx, err := s.svc.ApplySuggestion(r.Context(), id)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toTransactionResponse(tx))
}

// POST /v1/transactions/apply-similar
// Body: { pattern, head, subhead }
func (s *Server) applyToSimilar(w http.ResponseWriter, r *http.Request) {
	var req applySimilarRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	if req.Pattern == "" {
		badRequest(w, "pattern is required")
		return
	}
	n, err := s.svc.ApplyToSimilar(r.Context(), req.Pattern, req.Head, req.Subhead)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, countResponse{Updated: n})
}

// POST /v1/transactions/{id}/ignore
// Body: { reason? }
func (s *Server) ignoreOne(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req ignoreRequest
	if r.ContentLength > 0 {
		if err := decode(r, &req); err != nil {
			badRequest(w, "invalid JSON: "+err.Error())
			return
		}
	}
	tx, err := s.svc.Ignore(r.Context(), id, req.Reason)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toTransactionResponse(tx))
}

// POST /v1/transactions/{id}/clear
func (s *Server) clearOne(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	tx, err := s.svc.ClearClassification(r.Context(), id)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toTransactionResponse(tx))
}

// POST /v1/undo
func (s *Server) undo(w http.ResponseWriter, r *http.Request) {
	n, err := s.svc.Undo(r.Context())
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, undoResponse{Restored: n})
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		badRequest(w, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
