package httpapi

import (
	"time"

	"github.com/google/uuid"
	"github.com/govalues/money"

	"github.com/tallyfold/mis/internal/mis"
	"github.com/tallyfold/mis/internal/taxonomy"
)

// Register exports print dates as dd-mm-yyyy; RFC3339 is accepted too.
const registerDateLayout = "02-01-2006"

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, true
	}
	if t, err := time.Parse(registerDateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

type journalRow struct {
	Date          string `json:"date,omitempty"`
	VoucherNumber string `json:"voucher_number,omitempty"`
	GSTType       string `json:"gst_type,omitempty"`
	Account       string `json:"account"`
	DebitMinor    int64  `json:"debit_minor"`
	CreditMinor   int64  `json:"credit_minor"`
}

type journalImportRequest struct {
	Rows []journalRow `json:"rows"`
}

type salesRow struct {
	Date        string `json:"date,omitempty"`
	BillNumber  string `json:"bill_number,omitempty"`
	Party       string `json:"party"`
	AmountMinor int64  `json:"amount_minor"`
}

type salesImportRequest struct {
	Name           string     `json:"name"`
	State          string     `json:"state"`
	TaxesMinor     int64      `json:"taxes_minor,omitempty"`
	DiscountsMinor int64      `json:"discounts_minor,omitempty"`
	Rows           []salesRow `json:"rows"`
}

type transactionResponse struct {
	ID               uuid.UUID         `json:"id"`
	Date             *time.Time        `json:"date,omitempty"`
	VoucherNo        string            `json:"voucher_no,omitempty"`
	Account          string            `json:"account"`
	Party            string            `json:"party,omitempty"`
	Notes            string            `json:"notes,omitempty"`
	Currency         string            `json:"currency"`
	DebitMinor       int64             `json:"debit_minor"`
	CreditMinor      int64             `json:"credit_minor"`
	Debit            string            `json:"debit,omitempty"`
	Credit           string            `json:"credit,omitempty"`
	Status           mis.Status        `json:"status"`
	Head             taxonomy.HeadID   `json:"head,omitempty"`
	Subhead          string            `json:"subhead,omitempty"`
	SuggestedHead    taxonomy.HeadID   `json:"suggested_head,omitempty"`
	SuggestedSubhead string            `json:"suggested_subhead,omitempty"`
	AutoIgnored      bool              `json:"auto_ignored,omitempty"`
	State            string            `json:"state,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

func toTransactionResponse(tx mis.Transaction) transactionResponse {
	resp := transactionResponse{
		ID:               tx.ID,
		VoucherNo:        tx.VoucherNo,
		Account:          tx.Account,
		Party:            tx.Party,
		Notes:            tx.Notes,
		Currency:         tx.Currency,
		DebitMinor:       tx.DebitMinor,
		CreditMinor:      tx.CreditMinor,
		Status:           tx.Status,
		Head:             tx.Head,
		Subhead:          tx.Subhead,
		SuggestedHead:    tx.SuggestedHead,
		SuggestedSubhead: tx.SuggestedSubhead,
		AutoIgnored:      tx.AutoIgnored,
		State:            tx.State,
		Metadata:         tx.Metadata,
	}
	if !tx.Date.IsZero() {
		d := tx.Date
		resp.Date = &d
	}
	if tx.DebitMinor != 0 {
		resp.Debit = mustAmount(tx.Currency, tx.DebitMinor).String()
	}
	if tx.CreditMinor != 0 {
		resp.Credit = mustAmount(tx.Currency, tx.CreditMinor).String()
	}
	return resp
}

func mustAmount(curr string, units int64) money.Amount {
	a, _ := money.NewAmountFromMinorUnits(curr, units)
	return a
}

type classifyRequest struct {
	Head    taxonomy.HeadID `json:"head"`
	Subhead string          `json:"subhead"`
}

type classifyManyRequest struct {
	IDs     []uuid.UUID     `json:"ids"`
	Head    taxonomy.HeadID `json:"head"`
	Subhead string          `json:"subhead"`
}

type applySimilarRequest struct {
	Pattern string          `json:"pattern"`
	Head    taxonomy.HeadID `json:"head"`
	Subhead string          `json:"subhead"`
}

type ignoreRequest struct {
	Reason string `json:"reason,omitempty"`
}

type countResponse struct {
	Updated int `json:"updated"`
}

type undoResponse struct {
	Restored int `json:"restored"`
}

type appendRuleRequest struct {
	Pattern string          `json:"pattern"`
	Head    taxonomy.HeadID `json:"head"`
	Subhead string          `json:"subhead"`
}

type proratePeriod struct {
	PeriodKey    string  `json:"period_key"`
	Month        int     `json:"month"`
	Year         int     `json:"year"`
	OpeningStock float64 `json:"opening_stock"`
	Purchases    float64 `json:"purchases"`
	ClosingStock float64 `json:"closing_stock"`
	NetRevenue   float64 `json:"net_revenue"`
}

type prorateRequest struct {
	Periods []proratePeriod `json:"periods"`
}
