// Package report folds classified transactions into the tiered MIS P&L.
// Building a report is pure and idempotent: the same transaction set
// always yields the same report, and inputs are never mutated.
package report

import (
	"github.com/tallyfold/mis/internal/mis"
	"github.com/tallyfold/mis/internal/taxonomy"
)

// Report is the MIS P&L roll-up. All amounts are minor units. It is
// recomputed from the transaction set on demand and never persisted as a
// source of truth.
type Report struct {
	GrossRevenueMinor int64 `json:"gross_revenue_minor"`
	ReturnsMinor      int64 `json:"returns_minor"`
	DiscountsMinor    int64 `json:"discounts_minor"`
	TaxesMinor        int64 `json:"taxes_minor"`
	NetRevenueMinor   int64 `json:"net_revenue_minor"`

	COGMMinor        int64 `json:"cogm_minor"`
	GrossMarginMinor int64 `json:"gross_margin_minor"`

	ChannelCostsMinor int64 `json:"channel_costs_minor"`
	CM1Minor          int64 `json:"cm1_minor"`

	MarketingMinor int64 `json:"marketing_minor"`
	CM2Minor       int64 `json:"cm2_minor"`

	PlatformMinor int64 `json:"platform_minor"`
	CM3Minor      int64 `json:"cm3_minor"`

	OperatingMinor int64 `json:"operating_minor"`
	EBITDAMinor    int64 `json:"ebitda_minor"`

	NonOperatingMinor int64 `json:"non_operating_minor"`
	NetIncomeMinor    int64 `json:"net_income_minor"`

	// ExcludedMinor and IgnoredMinor are informational only and feed no tier.
	ExcludedMinor int64 `json:"excluded_minor"`
	IgnoredMinor  int64 `json:"ignored_minor"`

	// RevenueByChannel keys are subhead codes (see taxonomy.SubheadCode).
	RevenueByChannel map[string]int64 `json:"revenue_by_channel"`
	// Breakdown holds the per-subhead totals for every head.
	Breakdown map[taxonomy.HeadID]map[string]int64 `json:"breakdown"`
}

// Build aggregates the transaction set into a report. Transactions that
// are not fully classified are excluded from every aggregate, so an
// unresolved line never blocks nor skews the roll-up.
func Build(txs []mis.Transaction) Report {
	r := Report{
		RevenueByChannel: make(map[string]int64),
		Breakdown:        make(map[taxonomy.HeadID]map[string]int64),
	}

	for _, tx := range txs {
		if !tx.Classified() {
			continue
		}
		cfg, ok := taxonomy.Lookup(tx.Head)
		if !ok {
			continue
		}
		amount := amountFor(cfg.Kind, tx)
		r.addBreakdown(tx.Head, tx.Subhead, amount)

		switch tx.Head {
		case taxonomy.HeadRevenue:
			r.GrossRevenueMinor += amount
			r.RevenueByChannel[taxonomy.SubheadCode(tx.Subhead)] += amount
		case taxonomy.HeadReturns:
			r.ReturnsMinor += amount
		case taxonomy.HeadDiscounts:
			r.DiscountsMinor += amount
		case taxonomy.HeadTaxes:
			r.TaxesMinor += amount
		case taxonomy.HeadCOGM:
			r.COGMMinor += amount
		case taxonomy.HeadChannel:
			r.ChannelCostsMinor += amount
		case taxonomy.HeadMarketing:
			r.MarketingMinor += amount
		case taxonomy.HeadPlatform:
			r.PlatformMinor += amount
		case taxonomy.HeadOperating:
			r.OperatingMinor += amount
		case taxonomy.HeadNonOperating:
			r.NonOperatingMinor += amount
		case taxonomy.HeadExclude:
			r.ExcludedMinor += amount
		case taxonomy.HeadIgnore:
			r.IgnoredMinor += amount
		}
	}

	// Tier formulas, in order; each depends only on values above it.
	r.NetRevenueMinor = r.GrossRevenueMinor - r.ReturnsMinor - r.DiscountsMinor - r.TaxesMinor
	r.GrossMarginMinor = r.NetRevenueMinor - r.COGMMinor
	r.CM1Minor = r.GrossMarginMinor - r.ChannelCostsMinor
	r.CM2Minor = r.CM1Minor - r.MarketingMinor
	r.CM3Minor = r.CM2Minor - r.PlatformMinor
	r.EBITDAMinor = r.CM3Minor - r.OperatingMinor
	r.NetIncomeMinor = r.EBITDAMinor - r.NonOperatingMinor
	return r
}

// amountFor picks the side a head accumulates from. Revenue sums
// credits, cost heads sum debits, and either-side heads prefer the
// credit when present.
func amountFor(kind taxonomy.Kind, tx mis.Transaction) int64 {
	switch kind {
	case taxonomy.KindRevenue:
		return tx.CreditMinor
	case taxonomy.KindDebit:
		return tx.DebitMinor
	default:
		if tx.CreditMinor != 0 {
			return tx.CreditMinor
		}
		return tx.DebitMinor
	}
}

func (r *Report) addBreakdown(h taxonomy.HeadID, subhead string, amount int64) {
	m, ok := r.Breakdown[h]
	if !ok {
		m = make(map[string]int64)
		r.Breakdown[h] = m
	}
	m[taxonomy.SubheadCode(subhead)] += amount
}
