package httpapi

import (
	"net/http"

	"github.com/tallyfold/mis/internal/rules"
)

// GET /v1/rules
// Lists the active ordered rule set, including patterns that failed to
// compile (inert but observable).
func (s *Server) listRules(w http.ResponseWriter, r *http.Request) {
	set, err := s.svc.RuleSet(r.Context())
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	rejected := set.Rejected()
	rulesRejected.Set(float64(len(rejected)))
	toJSON(w, http.StatusOK, struct {
		Rules    []rules.Rule       `json:"rules"`
		Ignore   []rules.IgnoreRule `json:"ignore"`
		Rejected []rules.Rejected   `json:"rejected"`
	}{Rules: set.Rules(), Ignore: set.IgnoreRules(), Rejected: rejected})
}

// POST /v1/rules
// Body: { pattern, head, subhead }
// Appends a user rule without reclassifying anything; use
// /v1/transactions/apply-similar to also update matching transactions.
func (s *Server) appendRule(w http.ResponseWriter, r *http.Request) {
	var req appendRuleRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	if req.Pattern == "" {
		badRequest(w, "pattern is required")
		return
	}
	if err := s.svc.AppendRule(r.Context(), req.Pattern, req.Head, req.Subhead); err != nil {
		writeServiceErr(w, err)
		return
	}
	toJSON(w, http.StatusCreated, struct {
		Pattern string `json:"pattern"`
	}{Pattern: req.Pattern})
}
