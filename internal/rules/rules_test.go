package rules

import (
	"testing"

	"github.com/tallyfold/mis/internal/taxonomy"
)

func TestDefaultRulesFirstMatchWins(t *testing.T) {
	set := NewSet(nil, nil)
	cases := []struct {
		name    string
		account string
		head    taxonomy.HeadID
		subhead string
	}{
		{"factory rent beats office rent", "Factory Rent Noida", taxonomy.HeadCOGM, "Factory Rent"},
		{"plain rent is office rent", "Rent for March", taxonomy.HeadOperating, "Office Rent"},
		{"diesel is power and fuel", "Diesel Generator Expenses", taxonomy.HeadCOGM, "Power & Fuel"},
		{"google ads is marketing", "Google Ads March", taxonomy.HeadMarketing, "Performance Marketing"},
		{"courier is shipping", "Courier Charges", taxonomy.HeadChannel, "Shipping"},
		{"case insensitive", "AMAZON SELLER SERVICES", taxonomy.HeadRevenue, "Amazon"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, ok := set.Match(tc.account)
			if !ok {
				t.Fatalf("expected a match for %q", tc.account)
			}
			if m.Head != tc.head || m.Subhead != tc.subhead {
				t.Fatalf("got %s/%s, want %s/%s", m.Head, m.Subhead, tc.head, tc.subhead)
			}
		})
	}
}

func TestUserRulesBeforeBuiltin(t *testing.T) {
	user := []Rule{{Pattern: `courier`, Head: taxonomy.HeadMarketing, Subhead: "Agency Fees"}}
	set := NewSet(user, nil)

	m, ok := set.Match("Courier Charges")
	if !ok {
		t.Fatal("expected a match")
	}
	if m.Source != SourceUser {
		t.Fatalf("source = %s, want %s", m.Source, SourceUser)
	}
	if m.Head != taxonomy.HeadMarketing || m.Subhead != "Agency Fees" {
		t.Fatalf("got %s/%s, want user rule to win", m.Head, m.Subhead)
	}
}

func TestBadPatternIsInert(t *testing.T) {
	user := []Rule{{Pattern: `(`, Head: taxonomy.HeadOperating, Subhead: "Miscellaneous"}}
	set := NewSet(user, nil)

	rejected := set.Rejected()
	if len(rejected) != 1 || rejected[0].Pattern != "(" {
		t.Fatalf("rejected = %+v, want the bad pattern", rejected)
	}
	// The rest of the list still matches.
	if _, ok := set.Match("Insurance Premium"); !ok {
		t.Fatal("valid rules should still match")
	}
}

func TestIgnoreFilterIsDefinitive(t *testing.T) {
	set := NewSet(nil, nil)
	o := set.Classify("CGST Payable", "")
	if !o.Ignored {
		t.Fatal("expected GST ledger to be ignored")
	}
	if o.Reason != "GST ledger" {
		t.Fatalf("reason = %q", o.Reason)
	}
	if o.Matched {
		t.Fatal("an ignore match must not also classify")
	}
}

func TestClassifyFallsBackToParty(t *testing.T) {
	set := NewSet(nil, nil)
	o := set.Classify("Unlabelled Expense 42", "Blinkit Commerce Pvt Ltd")
	if !o.Matched {
		t.Fatal("expected party name to match")
	}
	if o.Match.Head != taxonomy.HeadRevenue || o.Match.Subhead != "Blinkit" {
		t.Fatalf("got %s/%s", o.Match.Head, o.Match.Subhead)
	}
}

func TestClassifyNoMatch(t *testing.T) {
	set := NewSet(nil, nil)
	o := set.Classify("Zomato Office Lunch", "HDFC")
	if o.Matched || o.Ignored {
		t.Fatalf("expected no outcome, got %+v", o)
	}
}

func TestIsBalanceMechanics(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"CGST 18%", true},
		{"IGST Input", true},
		{"TDS on Contractors", true},
		{"Rounded Off", true},
		{"Round Off", true},
		{"Freight Inward", false},
		{"Raw Material Purchase", false},
	}
	for _, tc := range cases {
		if got := IsBalanceMechanics(tc.name); got != tc.want {
			t.Errorf("IsBalanceMechanics(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestLoadedRuleOrderPreserved(t *testing.T) {
	user := []Rule{
		{Pattern: `alpha`, Head: taxonomy.HeadOperating, Subhead: "Salaries"},
		{Pattern: `alp`, Head: taxonomy.HeadOperating, Subhead: "Miscellaneous"},
	}
	set := NewSet(user, nil)
	m, ok := set.Match("alpha corp")
	if !ok || m.Subhead != "Salaries" {
		t.Fatalf("first listed rule must win, got %+v ok=%v", m, ok)
	}
}
