// Package voucher turns flat journal rows into vouchers and extracts
// classified expense transactions from them.
package voucher

import (
	"strings"

	"github.com/tallyfold/mis/internal/mis"
)

// GroupStats reports what grouping did with the input rows.
type GroupStats struct {
	RowsSeen    int
	RowsDropped int
	Undated     int
}

// Group splits an ordered row stream into vouchers. It runs in two
// passes: the first finds date boundaries, the second copies rows into
// chunks with date and voucher-number forward-filled. Inputs are never
// mutated. Rows with an empty account name are dropped.
//
// A leading run of rows without a date still forms a voucher so no row is
// lost; it keeps a zero date and is counted in Undated.
func Group(rows []mis.LedgerRow) ([]mis.Voucher, GroupStats) {
	stats := GroupStats{RowsSeen: len(rows)}

	kept := make([]mis.LedgerRow, 0, len(rows))
	for _, r := range rows {
		if strings.TrimSpace(r.AccountName) == "" {
			stats.RowsDropped++
			continue
		}
		kept = append(kept, r)
	}
	if len(kept) == 0 {
		return nil, stats
	}

	// Pass 1: chunk start indexes. Every explicit date starts a chunk;
	// index 0 starts one regardless.
	starts := []int{0}
	for i := 1; i < len(kept); i++ {
		if kept[i].HasDate() {
			starts = append(starts, i)
		}
	}

	// Pass 2: build vouchers, forward-filling per chunk. The voucher
	// number fills forward from the most recent row that carried one,
	// across chunk boundaries, matching how register exports print it
	// once per event.
	out := make([]mis.Voucher, 0, len(starts))
	var number string
	for si, start := range starts {
		end := len(kept)
		if si+1 < len(starts) {
			end = starts[si+1]
		}
		v := mis.Voucher{
			Date:   kept[start].Date,
			Number: kept[start].VoucherNumber,
			Rows:   make([]mis.LedgerRow, 0, end-start),
		}
		if !kept[start].HasDate() {
			stats.Undated++
		}
		for i := start; i < end; i++ {
			row := kept[i]
			if row.VoucherNumber != "" {
				number = row.VoucherNumber
			} else {
				row.VoucherNumber = number
			}
			row.Date = v.Date
			v.Rows = append(v.Rows, row)
		}
		if v.Number == "" {
			v.Number = number
		}
		out = append(out, v)
	}
	return out, stats
}
