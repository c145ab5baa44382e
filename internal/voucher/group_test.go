package voucher

import (
	"testing"
	"time"

	"github.com/tallyfold/mis/internal/mis"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGroupSplitsOnDates(t *testing.T) {
	rows := []mis.LedgerRow{
		{Date: date(2025, 4, 1), VoucherNumber: "V1", AccountName: "Factory Rent", DebitMinor: 500000},
		{AccountName: "Sharma Properties", CreditMinor: 500000},
		{Date: date(2025, 4, 2), AccountName: "Courier Charges", DebitMinor: 12000},
		{AccountName: "Delhivery", CreditMinor: 12000},
	}
	vouchers, stats := Group(rows)
	if len(vouchers) != 2 {
		t.Fatalf("vouchers = %d, want 2", len(vouchers))
	}
	if stats.RowsSeen != 4 || stats.RowsDropped != 0 || stats.Undated != 0 {
		t.Fatalf("stats = %+v", stats)
	}
	if len(vouchers[0].Rows) != 2 || len(vouchers[1].Rows) != 2 {
		t.Fatalf("row split wrong: %d/%d", len(vouchers[0].Rows), len(vouchers[1].Rows))
	}
}

func TestGroupForwardFillsDateAndNumber(t *testing.T) {
	rows := []mis.LedgerRow{
		{Date: date(2025, 4, 1), VoucherNumber: "V1", AccountName: "Factory Rent", DebitMinor: 500000},
		{AccountName: "Sharma Properties", CreditMinor: 500000},
		{Date: date(2025, 4, 2), AccountName: "Courier Charges", DebitMinor: 12000},
	}
	vouchers, _ := Group(rows)
	if len(vouchers) != 2 {
		t.Fatalf("vouchers = %d, want 2", len(vouchers))
	}
	first := vouchers[0]
	if got := first.Rows[1].Date; !got.Equal(first.Date) {
		t.Fatalf("undated row date = %v, want voucher date %v", got, first.Date)
	}
	if got := first.Rows[1].VoucherNumber; got != "V1" {
		t.Fatalf("undated row number = %q, want V1", got)
	}
	// The second voucher printed no number; it fills from the last seen one.
	if vouchers[1].Number != "V1" {
		t.Fatalf("second voucher number = %q, want V1", vouchers[1].Number)
	}
}

func TestGroupDropsEmptyAccountRows(t *testing.T) {
	rows := []mis.LedgerRow{
		{Date: date(2025, 4, 1), AccountName: "Factory Rent", DebitMinor: 500000},
		{AccountName: "   "},
		{AccountName: "Sharma Properties", CreditMinor: 500000},
	}
	vouchers, stats := Group(rows)
	if stats.RowsDropped != 1 {
		t.Fatalf("RowsDropped = %d, want 1", stats.RowsDropped)
	}
	if len(vouchers) != 1 || len(vouchers[0].Rows) != 2 {
		t.Fatalf("unexpected grouping: %+v", vouchers)
	}
}

func TestGroupLeadingUndatedRun(t *testing.T) {
	rows := []mis.LedgerRow{
		{AccountName: "Mystery Debit", DebitMinor: 100},
		{AccountName: "Mystery Credit", CreditMinor: 100},
		{Date: date(2025, 4, 1), AccountName: "Factory Rent", DebitMinor: 500000},
	}
	vouchers, stats := Group(rows)
	if len(vouchers) != 2 {
		t.Fatalf("vouchers = %d, want 2", len(vouchers))
	}
	if stats.Undated != 1 {
		t.Fatalf("Undated = %d, want 1", stats.Undated)
	}
	if !vouchers[0].Date.IsZero() {
		t.Fatal("leading undated voucher must keep a zero date")
	}
}

func TestGroupEmptyInput(t *testing.T) {
	vouchers, stats := Group(nil)
	if vouchers != nil {
		t.Fatalf("vouchers = %+v, want nil", vouchers)
	}
	if stats != (GroupStats{}) {
		t.Fatalf("stats = %+v, want zero", stats)
	}
}

func TestGroupDoesNotMutateInput(t *testing.T) {
	rows := []mis.LedgerRow{
		{Date: date(2025, 4, 1), VoucherNumber: "V1", AccountName: "Factory Rent", DebitMinor: 500000},
		{AccountName: "Sharma Properties", CreditMinor: 500000},
	}
	Group(rows)
	if !rows[1].Date.IsZero() || rows[1].VoucherNumber != "" {
		t.Fatalf("input row mutated: %+v", rows[1])
	}
}
