package voucher

import (
	"github.com/google/uuid"

	"github.com/tallyfold/mis/internal/meta"
	"github.com/tallyfold/mis/internal/mis"
	"github.com/tallyfold/mis/internal/rules"
	"github.com/tallyfold/mis/internal/taxonomy"
)

// Classifier extracts expense transactions from vouchers using the rule
// set. SkipReceipts controls the credit-first-row heuristic: vouchers
// whose first row is a credit are treated as receipts/settlements and
// discarded. The heuristic reflects how the source accounting software
// orders settlement vouchers and is configurable for exports that order
// differently.
type Classifier struct {
	rules        *rules.Set
	skipReceipts bool
	currency     string
}

// NewClassifier builds a voucher classifier over a compiled rule set.
func NewClassifier(set *rules.Set, skipReceipts bool, currency string) *Classifier {
	return &Classifier{rules: set, skipReceipts: skipReceipts, currency: currency}
}

// Result is the outcome of classifying a batch of vouchers.
type Result struct {
	Transactions []mis.Transaction
	Summary      mis.ImportSummary
}

// ClassifyAll runs Classify over every voucher and accumulates summary
// statistics. A voucher yielding zero expense lines is counted as skipped
// but is not an error.
func (c *Classifier) ClassifyAll(vouchers []mis.Voucher) Result {
	res := Result{Summary: mis.ImportSummary{Vouchers: len(vouchers)}}
	for _, v := range vouchers {
		txs, skipped := c.Classify(v)
		if skipped || len(txs) == 0 {
			res.Summary.SkippedVouchers++
			continue
		}
		for _, tx := range txs {
			switch tx.Status {
			case mis.StatusSuggested:
				res.Summary.Suggested++
			case mis.StatusIgnored:
				res.Summary.AutoIgnored++
			case mis.StatusUnclassified:
				res.Summary.Unclassified++
			}
		}
		res.Summary.Created += len(txs)
		res.Transactions = append(res.Transactions, txs...)
	}
	return res
}

// Classify produces zero or more transactions from one voucher, one per
// qualifying debit line. The second return value reports whether the
// whole voucher was discarded by the receipt heuristic.
func (c *Classifier) Classify(v mis.Voucher) ([]mis.Transaction, bool) {
	if len(v.Rows) == 0 {
		return nil, false
	}
	if c.skipReceipts && v.Rows[0].CreditMinor > 0 {
		return nil, true
	}

	// GST/TDS/rounding legs are balance mechanics, not expenses.
	considered := make([]mis.LedgerRow, 0, len(v.Rows))
	for _, r := range v.Rows {
		if rules.IsBalanceMechanics(r.AccountName) {
			continue
		}
		considered = append(considered, r)
	}

	// The first remaining credit row names the party paid.
	party := ""
	for _, r := range considered {
		if r.CreditMinor > 0 {
			party = r.AccountName
			break
		}
	}

	var out []mis.Transaction
	for _, r := range considered {
		if r.DebitMinor <= 0 {
			continue
		}
		out = append(out, c.buildEntry(v, r, party))
	}
	return out, false
}

func (c *Classifier) buildEntry(v mis.Voucher, r mis.LedgerRow, party string) mis.Transaction {
	notes := r.AccountName
	if party != "" {
		notes = r.AccountName + " - " + party
	}
	tx := mis.Transaction{
		ID:         uuid.New(),
		Date:       v.Date,
		VoucherNo:  r.VoucherNumber,
		Account:    r.AccountName,
		Party:      party,
		Notes:      notes,
		Currency:   c.currency,
		DebitMinor: r.DebitMinor,
		Status:     mis.StatusUnclassified,
	}
	if r.GSTType != "" {
		tx.Metadata = meta.New(map[string]string{"gst_type": r.GSTType})
	}

	switch o := c.rules.Classify(r.AccountName, party); {
	case o.Ignored:
		tx.Status = mis.StatusIgnored
		tx.Head = taxonomy.HeadIgnore
		tx.Subhead = o.Reason
		tx.AutoIgnored = true
	case o.Matched && o.Match.Source == rules.SourceUser:
		// User-authored rules are corrections: apply directly.
		tx.Status = mis.StatusClassified
		tx.Head = o.Match.Head
		tx.Subhead = o.Match.Subhead
	case o.Matched:
		// Built-in matches are proposals awaiting operator confirmation.
		tx.Status = mis.StatusSuggested
		tx.SuggestedHead = o.Match.Head
		tx.SuggestedSubhead = o.Match.Subhead
	}
	return tx
}
