package report

import (
	"strings"

	"github.com/tallyfold/mis/internal/sales"
	"github.com/tallyfold/mis/internal/taxonomy"
)

// StateSummary is one state entity's slice of the multi-state roll-up.
type StateSummary struct {
	State             string `json:"state"`
	NetSalesMinor     int64  `json:"net_sales_minor"`
	ReturnsMinor      int64  `json:"returns_minor"`
	StockTransferMinor int64 `json:"stock_transfer_minor,omitempty"`
}

// StateRollup aggregates revenue across state entities. Stock transfers
// are attributed only from the designated transfer-origin state so the
// same goods are never counted leaving twice.
type StateRollup struct {
	States []StateSummary `json:"states"`

	TotalGrossSalesMinor    int64 `json:"total_gross_sales_minor"`
	TotalStockTransferMinor int64 `json:"total_stock_transfer_minor"`
	TotalReturnsMinor       int64 `json:"total_returns_minor"`
	TotalTaxesMinor         int64 `json:"total_taxes_minor"`
	TotalDiscountsMinor     int64 `json:"total_discounts_minor"`
	TotalNetRevenueMinor    int64 `json:"total_net_revenue_minor"`

	// ByChannel is one flat channel code -> amount map across all states.
	ByChannel map[string]int64 `json:"by_channel"`
}

// BuildStateRollup folds classified registers into the multi-entity
// revenue view.
func BuildStateRollup(originState string, regs []sales.ClassifiedRegister) StateRollup {
	out := StateRollup{ByChannel: make(map[string]int64)}
	for _, reg := range regs {
		t := reg.Totals
		ss := StateSummary{
			State:         reg.State,
			NetSalesMinor: t.NetSalesMinor,
			ReturnsMinor:  t.ReturnsMinor,
		}
		out.TotalGrossSalesMinor += t.GrossSalesMinor
		out.TotalReturnsMinor += t.ReturnsMinor
		out.TotalTaxesMinor += t.TaxesMinor
		out.TotalDiscountsMinor += t.DiscountsMinor
		if strings.EqualFold(strings.TrimSpace(reg.State), strings.TrimSpace(originState)) {
			ss.StockTransferMinor = t.InterCompanyMinor
			out.TotalStockTransferMinor += t.InterCompanyMinor
		}
		for ch, amt := range t.ByChannel {
			out.ByChannel[taxonomy.SubheadCode(string(ch))] += amt
		}
		out.States = append(out.States, ss)
	}
	out.TotalNetRevenueMinor = out.TotalGrossSalesMinor -
		out.TotalStockTransferMinor -
		out.TotalReturnsMinor -
		out.TotalTaxesMinor -
		out.TotalDiscountsMinor
	return out
}
