package httpapi

import (
	"net/http"
	"time"

	"github.com/tallyfold/mis/internal/prorate"
)

// GET /v1/report
func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.svc.Report(r.Context())
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, struct {
		Currency string `json:"currency"`
		Report   any    `json:"report"`
	}{Currency: s.currency, Report: rep})
}

// GET /v1/report/states
func (s *Server) getStateRollup(w http.ResponseWriter, r *http.Request) {
	roll, err := s.svc.StateRollup(r.Context())
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, roll)
}

// POST /v1/prorate
// Body: { periods: [{period_key, month, year, opening_stock, purchases, closing_stock, net_revenue}] }
// Pure computation: nothing is stored.
func (s *Server) postProrate(w http.ResponseWriter, r *http.Request) {
	var req prorateRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	periods := make([]prorate.PeriodSummary, 0, len(req.Periods))
	for i, p := range req.Periods {
		if p.Month < 1 || p.Month > 12 {
			badRequest(w, "period "+itoa(i)+": month must be 1-12")
			return
		}
		periods = append(periods, prorate.PeriodSummary{
			PeriodKey:    p.PeriodKey,
			Month:        time.Month(p.Month),
			Year:         p.Year,
			OpeningStock: p.OpeningStock,
			Purchases:    p.Purchases,
			ClosingStock: p.ClosingStock,
			NetRevenue:   p.NetRevenue,
		})
	}
	toJSON(w, http.StatusOK, prorate.Prorate(periods))
}

// GET /v1/stats
func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Stats(r.Context())
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, st)
}
