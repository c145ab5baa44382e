// Package prorate computes annual raw-materials COGS from per-period
// balance-sheet figures and allocates it across periods by revenue share.
// It is pure and independent of the transaction pipeline.
package prorate

import (
	"sort"
	"time"
)

// PeriodSummary carries one reporting period's balance-sheet figures.
// Values are in major currency units as filed.
type PeriodSummary struct {
	PeriodKey    string     `json:"period_key"`
	Month        time.Month `json:"month"`
	Year         int        `json:"year"`
	OpeningStock float64    `json:"opening_stock"`
	Purchases    float64    `json:"purchases"`
	ClosingStock float64    `json:"closing_stock"`
	NetRevenue   float64    `json:"net_revenue"`
}

// Allocation is one period's share of the annual raw-materials cost.
type Allocation struct {
	PeriodKey             string  `json:"period_key"`
	RevenueRatio          float64 `json:"revenue_ratio"`
	AllocatedRawMaterials float64 `json:"allocated_raw_materials"`
}

// Result is the annual roll-up plus per-period allocations. The
// allocations always sum to FYTotalRawMaterials (up to floating-point
// rounding) and the ratios sum to 1 when revenue is positive.
type Result struct {
	FYOpeningStock      float64      `json:"fy_opening_stock"`
	FYTotalPurchases    float64      `json:"fy_total_purchases"`
	FYClosingStock      float64      `json:"fy_closing_stock"`
	FYTotalRawMaterials float64      `json:"fy_total_raw_materials"`
	FYTotalRevenue      float64      `json:"fy_total_revenue"`
	Allocations         []Allocation `json:"allocations"`
}

// COGS is the shared cost-of-goods formula. A negative computed value is
// clamped to zero: it signals a data-entry problem in the filings, not a
// valid result.
func COGS(openingStock, purchases, closingStock float64) float64 {
	v := openingStock + purchases - closingStock
	if v < 0 {
		return 0
	}
	return v
}

// Prorate computes the annual figures and allocates raw-materials cost to
// each period in proportion to its revenue share. Zero total revenue
// falls back to an equal split so no period divides by zero. Empty input
// yields an all-zero result.
func Prorate(periods []PeriodSummary) Result {
	if len(periods) == 0 {
		return Result{}
	}

	ordered := make([]PeriodSummary, len(periods))
	copy(ordered, periods)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Year != ordered[j].Year {
			return ordered[i].Year < ordered[j].Year
		}
		return ordered[i].Month < ordered[j].Month
	})

	res := Result{
		FYOpeningStock: ordered[0].OpeningStock,
		FYClosingStock: ordered[len(ordered)-1].ClosingStock,
	}
	for _, p := range ordered {
		res.FYTotalPurchases += p.Purchases
		res.FYTotalRevenue += p.NetRevenue
	}
	res.FYTotalRawMaterials = COGS(res.FYOpeningStock, res.FYTotalPurchases, res.FYClosingStock)

	res.Allocations = make([]Allocation, 0, len(ordered))
	for _, p := range ordered {
		ratio := 1 / float64(len(ordered))
		if res.FYTotalRevenue > 0 {
			ratio = p.NetRevenue / res.FYTotalRevenue
		}
		res.Allocations = append(res.Allocations, Allocation{
			PeriodKey:             p.PeriodKey,
			RevenueRatio:          ratio,
			AllocatedRawMaterials: res.FYTotalRawMaterials * ratio,
		})
	}
	return res
}
