package httpapi

import (
	"net/http"

	"github.com/tallyfold/mis/internal/mis"
	"github.com/tallyfold/mis/internal/sales"
)

// POST /v1/journal/import
// Body: { rows: [{date?, voucher_number?, gst_type?, account, debit_minor, credit_minor}] }
func (s *Server) importJournal(w http.ResponseWriter, r *http.Request) {
	var req journalImportRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	if len(req.Rows) == 0 {
		badRequest(w, "rows is required")
		return
	}
	rows := make([]mis.LedgerRow, 0, len(req.Rows))
	for i, jr := range req.Rows {
		d, ok := parseDate(jr.Date)
		if !ok {
			badRequest(w, "row "+itoa(i)+": invalid date "+jr.Date)
			return
		}
		if jr.DebitMinor < 0 || jr.CreditMinor < 0 {
			badRequest(w, "row "+itoa(i)+": amounts must be >= 0")
			return
		}
		rows = append(rows, mis.LedgerRow{
			Date:          d,
			VoucherNumber: jr.VoucherNumber,
			GSTType:       jr.GSTType,
			AccountName:   jr.Account,
			DebitMinor:    jr.DebitMinor,
			CreditMinor:   jr.CreditMinor,
		})
	}

	summary, err := s.svc.ImportJournal(r.Context(), rows)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	transactionsImported.WithLabelValues("journal").Add(float64(summary.Created))
	vouchersSkipped.Add(float64(summary.SkippedVouchers))
	toJSON(w, http.StatusCreated, summary)
}

// POST /v1/sales/import
// Body: { name, state, taxes_minor?, discounts_minor?, rows: [{date?, bill_number?, party, amount_minor}] }
func (s *Server) importSales(w http.ResponseWriter, r *http.Request) {
	var req salesImportRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	if req.State == "" {
		badRequest(w, "state is required")
		return
	}
	if len(req.Rows) == 0 {
		badRequest(w, "rows is required")
		return
	}
	reg := sales.Register{
		Name:           req.Name,
		State:          req.State,
		TaxesMinor:     req.TaxesMinor,
		DiscountsMinor: req.DiscountsMinor,
	}
	for i, sr := range req.Rows {
		d, ok := parseDate(sr.Date)
		if !ok {
			badRequest(w, "row "+itoa(i)+": invalid date "+sr.Date)
			return
		}
		if sr.Party == "" {
			badRequest(w, "row "+itoa(i)+": party is required")
			return
		}
		reg.Rows = append(reg.Rows, sales.Row{
			Date:        d,
			BillNumber:  sr.BillNumber,
			PartyName:   sr.Party,
			AmountMinor: sr.AmountMinor,
		})
	}

	cr, err := s.svc.ImportSales(r.Context(), reg)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	transactionsImported.WithLabelValues("sales").Add(float64(len(cr.Items)))
	toJSON(w, http.StatusCreated, cr)
}

// small, allocation-free int to string for errors
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := false
	if n < 0 {
		neg = true
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
