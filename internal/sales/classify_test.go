package sales

import (
	"testing"

	"github.com/tallyfold/mis/internal/mis"
)

func TestDetectChannel(t *testing.T) {
	cases := []struct {
		party string
		want  mis.Channel
	}{
		{"Blinkit Commerce Pvt Ltd", mis.ChannelBlinkit},
		{"GROFERS INDIA", mis.ChannelBlinkit},
		{"Amazon Seller Services", mis.ChannelAmazon},
		{"Shiprocket COD Remittance", mis.ChannelWebsite},
		{"Amazon order via Shiprocket", mis.ChannelAmazon},
		{"Sharma Traders", mis.ChannelOfflineOEM},
	}
	for _, tc := range cases {
		if got := DetectChannel(tc.party); got != tc.want {
			t.Errorf("DetectChannel(%q) = %s, want %s", tc.party, got, tc.want)
		}
	}
}

func TestClassifyReturn(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	item := c.Classify("Amazon Seller Services", -500000, "UP")
	if !item.IsReturn {
		t.Fatal("negative amount must mark a return")
	}
	if item.AmountMinor != 500000 {
		t.Fatalf("amount = %d, want positive 500000", item.AmountMinor)
	}
	if item.Channel != mis.ChannelAmazon || item.OriginalChannel != mis.ChannelAmazon {
		t.Fatalf("channel = %s original = %s", item.Channel, item.OriginalChannel)
	}
}

func TestTransferOnlyFromOriginState(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	item := c.Classify("Heatronics Pune Warehouse", 300000, "UP")
	if !item.IsInterCompany {
		t.Fatal("sibling party from the origin state must be a transfer")
	}
	if item.ToState != "Maharashtra" {
		t.Fatalf("ToState = %q, want Maharashtra", item.ToState)
	}

	// Same party from a non-origin state is an ordinary sale.
	item = c.Classify("Heatronics Pune Warehouse", 300000, "Maharashtra")
	if item.IsInterCompany {
		t.Fatal("transfer must not be detected outside the origin state")
	}
	if item.Channel != mis.ChannelOfflineOEM {
		t.Fatalf("channel = %s", item.Channel)
	}
}

func TestTransferUnknownDestination(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	item := c.Classify("Heatronics Depot", 100, "up")
	if !item.IsInterCompany {
		t.Fatal("case-insensitive origin state must match")
	}
	if item.ToState != "" {
		t.Fatalf("ToState = %q, want empty when no city matched", item.ToState)
	}
}

func TestClassifyRegisterTotals(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	reg := Register{
		Name:  "FY26 UP Register",
		State: "UP",
		Rows: []Row{
			{PartyName: "Amazon Seller Services", AmountMinor: 1000000},
			{PartyName: "Amazon Seller Services", AmountMinor: -200000},
			{PartyName: "Heatronics Hyderabad", AmountMinor: 300000},
			{PartyName: "Sharma Traders", AmountMinor: 500000},
		},
		TaxesMinor:     100000,
		DiscountsMinor: 50000,
	}
	cr := c.ClassifyRegister(reg)
	tt := cr.Totals
	if tt.GrossSalesMinor != 1500000 {
		t.Fatalf("gross = %d", tt.GrossSalesMinor)
	}
	if tt.NetSalesMinor != tt.GrossSalesMinor {
		t.Fatalf("net sales %d must equal gross %d", tt.NetSalesMinor, tt.GrossSalesMinor)
	}
	if tt.ReturnsMinor != 200000 || tt.InterCompanyMinor != 300000 {
		t.Fatalf("returns=%d transfers=%d", tt.ReturnsMinor, tt.InterCompanyMinor)
	}
	if tt.ByChannel[mis.ChannelAmazon] != 1000000 || tt.ByChannel[mis.ChannelOfflineOEM] != 500000 {
		t.Fatalf("byChannel = %+v", tt.ByChannel)
	}
	if tt.TransfersByState["Telangana"] != 300000 {
		t.Fatalf("transfersByState = %+v", tt.TransfersByState)
	}
	if len(cr.Items) != 4 {
		t.Fatalf("items = %d", len(cr.Items))
	}
}

func TestTransactionsDerivation(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	reg := Register{
		Name:  "FY26 UP Register",
		State: "UP",
		Rows: []Row{
			{BillNumber: "B1", PartyName: "Amazon Seller Services", AmountMinor: 1000000},
			{BillNumber: "B2", PartyName: "Amazon Seller Services", AmountMinor: -200000},
			{BillNumber: "B3", PartyName: "Heatronics Hyderabad", AmountMinor: 300000},
		},
		TaxesMinor:     100000,
		DiscountsMinor: 50000,
	}
	cr := c.ClassifyRegister(reg)
	txs := Transactions(reg, cr, "INR")
	// 3 rows plus one taxes entry and one discounts entry.
	if len(txs) != 5 {
		t.Fatalf("txs = %d, want 5", len(txs))
	}

	sale, ret, transfer := txs[0], txs[1], txs[2]
	if sale.CreditMinor != 1000000 || sale.Subhead != string(mis.ChannelAmazon) {
		t.Fatalf("sale tx = %+v", sale)
	}
	if sale.VoucherNo != "B1" || sale.State != "UP" {
		t.Fatalf("sale tx bill=%q state=%q", sale.VoucherNo, sale.State)
	}
	if ret.DebitMinor != 200000 || ret.Subhead != "Sales Returns" {
		t.Fatalf("return tx = %+v", ret)
	}
	if transfer.CreditMinor != 300000 || transfer.Subhead != "Stock Transfer" {
		t.Fatalf("transfer tx = %+v", transfer)
	}

	taxes, discounts := txs[3], txs[4]
	if taxes.CreditMinor != 100000 || taxes.Subhead != "GST on Sales" {
		t.Fatalf("taxes tx = %+v", taxes)
	}
	if discounts.DebitMinor != 50000 || discounts.Subhead != "Trade Discounts" {
		t.Fatalf("discounts tx = %+v", discounts)
	}
	for i, tx := range txs {
		if tx.Status != mis.StatusClassified {
			t.Fatalf("tx %d status = %s, sales entries are always classified", i, tx.Status)
		}
	}
}

func TestBadConfigPatternsInert(t *testing.T) {
	cfg := Config{
		TransferOriginState: "UP",
		SiblingPatterns:     []string{`(`},
		DestinationStates:   []StatePattern{{Pattern: `(`, State: "Nowhere"}},
	}
	c := NewClassifier(cfg)
	item := c.Classify("Heatronics Depot", 100, "UP")
	if item.IsInterCompany {
		t.Fatal("a rejected sibling pattern must never match")
	}
}
