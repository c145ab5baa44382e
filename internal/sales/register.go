package sales

import (
	"time"

	"github.com/google/uuid"

	"github.com/tallyfold/mis/internal/meta"
	"github.com/tallyfold/mis/internal/mis"
	"github.com/tallyfold/mis/internal/taxonomy"
)

// Row is one raw sales-register line from the decoder. A negative amount
// marks a return.
type Row struct {
	Date        time.Time
	BillNumber  string
	PartyName   string
	AmountMinor int64
}

// Register is one state entity's sales register.
type Register struct {
	Name  string
	State string
	Rows  []Row
	// TaxesMinor and DiscountsMinor are register-level figures supplied
	// by the decoder (GST on sales, trade discounts).
	TaxesMinor     int64
	DiscountsMinor int64
}

// Totals summarizes one classified register. Net sales equals gross
// sales: returns and inter-company transfers are separate line items,
// never subtracted here.
type Totals struct {
	GrossSalesMinor   int64                 `json:"gross_sales_minor"`
	ReturnsMinor      int64                 `json:"returns_minor"`
	InterCompanyMinor int64                 `json:"inter_company_minor"`
	NetSalesMinor     int64                 `json:"net_sales_minor"`
	TaxesMinor        int64                 `json:"taxes_minor"`
	DiscountsMinor    int64                 `json:"discounts_minor"`
	ByChannel         map[mis.Channel]int64 `json:"by_channel"`
	TransfersByState  map[string]int64      `json:"transfers_by_state"`
}

// ClassifiedRegister is the stored result of importing one register.
type ClassifiedRegister struct {
	Name   string              `json:"name"`
	State  string              `json:"state"`
	Items  []mis.SalesLineItem `json:"items"`
	Totals Totals              `json:"totals"`
}

// ClassifyRegister classifies every row of a register and accumulates
// channel and transfer totals.
func (c *Classifier) ClassifyRegister(reg Register) ClassifiedRegister {
	out := ClassifiedRegister{
		Name:  reg.Name,
		State: reg.State,
		Totals: Totals{
			TaxesMinor:       reg.TaxesMinor,
			DiscountsMinor:   reg.DiscountsMinor,
			ByChannel:        make(map[mis.Channel]int64),
			TransfersByState: make(map[string]int64),
		},
	}
	for _, row := range reg.Rows {
		item := c.Classify(row.PartyName, row.AmountMinor, reg.State)
		out.Items = append(out.Items, item)
		switch {
		case item.IsReturn:
			out.Totals.ReturnsMinor += item.AmountMinor
		case item.IsInterCompany:
			out.Totals.InterCompanyMinor += item.AmountMinor
			out.Totals.TransfersByState[item.ToState] += item.AmountMinor
		default:
			out.Totals.GrossSalesMinor += item.AmountMinor
			out.Totals.ByChannel[item.Channel] += item.AmountMinor
		}
	}
	out.Totals.NetSalesMinor = out.Totals.GrossSalesMinor
	return out
}

// Transactions derives classified transactions from a register so
// sales-side amounts flow into the same aggregate as journal expenses.
func Transactions(reg Register, cr ClassifiedRegister, currency string) []mis.Transaction {
	var out []mis.Transaction
	for i, item := range cr.Items {
		var date time.Time
		var bill string
		if i < len(reg.Rows) {
			date = reg.Rows[i].Date
			bill = reg.Rows[i].BillNumber
		}
		tx := mis.Transaction{
			ID:        item.ID,
			Date:      date,
			VoucherNo: bill,
			Account:   item.PartyName,
			Currency:  currency,
			Status:    mis.StatusClassified,
			State:     reg.State,
		}
		if reg.Name != "" {
			tx.Metadata = meta.New(map[string]string{"register": reg.Name})
		}
		switch {
		case item.IsReturn:
			tx.Head = taxonomy.HeadReturns
			tx.Subhead = "Sales Returns"
			tx.DebitMinor = item.AmountMinor
		case item.IsInterCompany:
			tx.Head = taxonomy.HeadExclude
			tx.Subhead = "Stock Transfer"
			tx.CreditMinor = item.AmountMinor
		default:
			tx.Head = taxonomy.HeadRevenue
			tx.Subhead = string(item.Channel)
			tx.CreditMinor = item.AmountMinor
		}
		out = append(out, tx)
	}
	if cr.Totals.TaxesMinor > 0 {
		out = append(out, mis.Transaction{
			ID: uuid.New(), Account: reg.Name + " GST on sales",
			Currency: currency, CreditMinor: cr.Totals.TaxesMinor,
			Status: mis.StatusClassified, Head: taxonomy.HeadTaxes,
			Subhead: "GST on Sales", State: reg.State,
		})
	}
	if cr.Totals.DiscountsMinor > 0 {
		out = append(out, mis.Transaction{
			ID: uuid.New(), Account: reg.Name + " discounts",
			Currency: currency, DebitMinor: cr.Totals.DiscountsMinor,
			Status: mis.StatusClassified, Head: taxonomy.HeadDiscounts,
			Subhead: "Trade Discounts", State: reg.State,
		})
	}
	return out
}
