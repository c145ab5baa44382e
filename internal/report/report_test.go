package report

import (
	"reflect"
	"testing"

	"github.com/tallyfold/mis/internal/mis"
	"github.com/tallyfold/mis/internal/taxonomy"
)

func classified(head taxonomy.HeadID, subhead string, debit, credit int64) mis.Transaction {
	return mis.Transaction{
		Status:      mis.StatusClassified,
		Head:        head,
		Subhead:     subhead,
		DebitMinor:  debit,
		CreditMinor: credit,
	}
}

func tierFixture() []mis.Transaction {
	return []mis.Transaction{
		classified(taxonomy.HeadRevenue, "Amazon", 0, 100000),
		classified(taxonomy.HeadReturns, "Sales Returns", 5000, 0),
		classified(taxonomy.HeadDiscounts, "Trade Discounts", 2000, 0),
		classified(taxonomy.HeadTaxes, "GST on Sales", 0, 3000),
		classified(taxonomy.HeadCOGM, "Raw Materials", 30000, 0),
		classified(taxonomy.HeadChannel, "Shipping", 10000, 0),
		classified(taxonomy.HeadMarketing, "Performance Marketing", 8000, 0),
		classified(taxonomy.HeadPlatform, "Payment Gateway", 2000, 0),
		classified(taxonomy.HeadOperating, "Office Rent", 15000, 0),
		classified(taxonomy.HeadNonOperating, "Interest", 5000, 0),
	}
}

func TestBuildTierFormulas(t *testing.T) {
	r := Build(tierFixture())

	checks := []struct {
		name string
		got  int64
		want int64
	}{
		{"gross revenue", r.GrossRevenueMinor, 100000},
		{"net revenue", r.NetRevenueMinor, 90000},
		{"gross margin", r.GrossMarginMinor, 60000},
		{"cm1", r.CM1Minor, 50000},
		{"cm2", r.CM2Minor, 42000},
		{"cm3", r.CM3Minor, 40000},
		{"ebitda", r.EBITDAMinor, 25000},
		{"net income", r.NetIncomeMinor, 20000},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}
	if r.RevenueByChannel["amazon"] != 100000 {
		t.Errorf("revenueByChannel = %+v", r.RevenueByChannel)
	}
	if r.Breakdown[taxonomy.HeadCOGM]["raw_materials"] != 30000 {
		t.Errorf("breakdown = %+v", r.Breakdown[taxonomy.HeadCOGM])
	}
}

func TestBuildExcludesUnresolvedTransactions(t *testing.T) {
	txs := []mis.Transaction{
		classified(taxonomy.HeadRevenue, "Amazon", 0, 100000),
		{Status: mis.StatusUnclassified, DebitMinor: 99999},
		{
			Status:           mis.StatusSuggested,
			SuggestedHead:    taxonomy.HeadCOGM,
			SuggestedSubhead: "Raw Materials",
			DebitMinor:       88888,
		},
	}
	r := Build(txs)
	if r.COGMMinor != 0 {
		t.Fatalf("suggested amounts must not feed tiers, cogm = %d", r.COGMMinor)
	}
	if r.NetIncomeMinor != 100000 {
		t.Fatalf("net income = %d", r.NetIncomeMinor)
	}
}

func TestInformationalHeadsFeedNoTier(t *testing.T) {
	txs := []mis.Transaction{
		classified(taxonomy.HeadRevenue, "Amazon", 0, 100000),
		{
			Status:      mis.StatusIgnored,
			Head:        taxonomy.HeadIgnore,
			Subhead:     "GST ledger",
			DebitMinor:  40000,
			AutoIgnored: true,
		},
		classified(taxonomy.HeadExclude, "Stock Transfer", 0, 30000),
	}
	r := Build(txs)
	if r.IgnoredMinor != 40000 || r.ExcludedMinor != 30000 {
		t.Fatalf("ignored=%d excluded=%d", r.IgnoredMinor, r.ExcludedMinor)
	}
	if r.NetIncomeMinor != 100000 {
		t.Fatalf("informational heads leaked into tiers, net income = %d", r.NetIncomeMinor)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	txs := tierFixture()
	a := Build(txs)
	b := Build(txs)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same input must yield the same report")
	}
}

func TestBuildEmptyInput(t *testing.T) {
	r := Build(nil)
	if r.NetIncomeMinor != 0 || len(r.Breakdown) != 0 {
		t.Fatalf("report = %+v", r)
	}
}
