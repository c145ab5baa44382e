package taxonomy

import "testing"

func TestOrderedCoversEveryHead(t *testing.T) {
	heads := Ordered()
	if len(heads) != len(curated) {
		t.Fatalf("ordered=%d curated=%d", len(heads), len(curated))
	}
	if heads[0] != HeadRevenue || heads[len(heads)-1] != HeadIgnore {
		t.Fatalf("order = %v", heads)
	}
	seen := make(map[HeadID]bool)
	for _, h := range heads {
		if !Valid(h) {
			t.Errorf("ordered head %q missing from curated map", h)
		}
		if seen[h] {
			t.Errorf("head %q listed twice", h)
		}
		seen[h] = true
	}
}

func TestValid(t *testing.T) {
	if !Valid(HeadCOGM) {
		t.Fatal("cogm must be valid")
	}
	if Valid("capex") {
		t.Fatal("unknown heads must fail validation")
	}
}

func TestHasSubhead(t *testing.T) {
	cases := []struct {
		head HeadID
		sub  string
		want bool
	}{
		{HeadCOGM, "Factory Rent", true},
		{HeadCOGM, "Office Rent", false},
		{HeadOperating, "Office Rent", true},
		{HeadRevenue, "Amazon", true},
		{HeadRevenue, "", false},
		// Ignore and Exclude carry operator-supplied reasons.
		{HeadIgnore, "Wrong entity", true},
		{HeadIgnore, "", false},
		{HeadExclude, "One-off settlement", true},
		{"capex", "Anything", false},
	}
	for _, tc := range cases {
		if got := HasSubhead(tc.head, tc.sub); got != tc.want {
			t.Errorf("HasSubhead(%s, %q) = %v, want %v", tc.head, tc.sub, got, tc.want)
		}
	}
}

func TestSubheadCode(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Amazon", "amazon"},
		{"Offline/OEM", "offline_oem"},
		{"Power & Fuel", "power_fuel"},
		{"Travel & Conveyance", "travel_conveyance"},
	}
	for _, tc := range cases {
		if got := SubheadCode(tc.in); got != tc.want {
			t.Errorf("SubheadCode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLookupKinds(t *testing.T) {
	rev, _ := Lookup(HeadRevenue)
	if rev.Kind != KindRevenue {
		t.Fatalf("revenue kind = %s", rev.Kind)
	}
	cogm, _ := Lookup(HeadCOGM)
	if cogm.Kind != KindDebit {
		t.Fatalf("cogm kind = %s", cogm.Kind)
	}
	ign, _ := Lookup(HeadIgnore)
	if ign.Kind != KindInformational {
		t.Fatalf("ignore kind = %s", ign.Kind)
	}
}
