// Package taxonomy defines the fixed chart of MIS heads and their subheads.
// Heads are a closed enumeration so a typo in a head literal fails lookup
// instead of silently opening a new subtotal bucket.
package taxonomy

import "github.com/tallyfold/mis/internal/slug"

// HeadID identifies one top-level MIS head.
type HeadID string

const (
	HeadRevenue      HeadID = "revenue"
	HeadReturns      HeadID = "returns"
	HeadDiscounts    HeadID = "discounts"
	HeadTaxes        HeadID = "taxes"
	HeadCOGM         HeadID = "cogm"
	HeadChannel      HeadID = "channel_fulfillment"
	HeadMarketing    HeadID = "marketing"
	HeadPlatform     HeadID = "platform"
	HeadOperating    HeadID = "operating"
	HeadNonOperating HeadID = "non_operating"
	HeadExclude      HeadID = "exclude"
	HeadIgnore       HeadID = "ignore"
)

// Kind describes how a head's transactions enter the roll-up.
type Kind string

const (
	// KindRevenue accumulates credit amounts.
	KindRevenue Kind = "revenue"
	// KindDebit accumulates debit amounts (costs, returns, discounts).
	KindDebit Kind = "debit"
	// KindEither prefers the credit amount and falls back to the debit
	// (taxes, excluded and ignored lines can sit on either side).
	KindEither Kind = "either"
	// KindInformational marks heads reported but excluded from every tier.
	KindInformational Kind = "informational"
)

// Config is the fixed configuration of one head.
type Config struct {
	Label    string   `json:"label"`
	Kind     Kind     `json:"kind"`
	Subheads []string `json:"subheads"`
}

// ordered fixes both the display order and the P&L tier sequence.
var ordered = []HeadID{
	HeadRevenue,
	HeadReturns,
	HeadDiscounts,
	HeadTaxes,
	HeadCOGM,
	HeadChannel,
	HeadMarketing,
	HeadPlatform,
	HeadOperating,
	HeadNonOperating,
	HeadExclude,
	HeadIgnore,
}

var curated = map[HeadID]Config{
	HeadRevenue: {
		Label: "A. Revenue",
		Kind:  KindRevenue,
		Subheads: []string{
			"Blinkit", "Amazon", "Website", "Offline/OEM",
		},
	},
	HeadReturns: {
		Label:    "B. Returns",
		Kind:     KindDebit,
		Subheads: []string{"Sales Returns"},
	},
	HeadDiscounts: {
		Label:    "C. Discounts",
		Kind:     KindDebit,
		Subheads: []string{"Trade Discounts", "Cash Discounts"},
	},
	HeadTaxes: {
		Label:    "D. Taxes",
		Kind:     KindEither,
		Subheads: []string{"GST on Sales"},
	},
	HeadCOGM: {
		Label: "E. COGM",
		Kind:  KindDebit,
		Subheads: []string{
			"Raw Materials", "Packaging", "Job Work", "Freight Inward",
			"Factory Rent", "Factory Salaries", "Power & Fuel",
		},
	},
	HeadChannel: {
		Label: "F. Channel & Fulfillment",
		Kind:  KindDebit,
		Subheads: []string{
			"Shipping", "Marketplace Commission", "Warehousing & Storage",
		},
	},
	HeadMarketing: {
		Label: "G. Marketing",
		Kind:  KindDebit,
		Subheads: []string{
			"Performance Marketing", "Agency Fees", "Content & Creatives", "Samples",
		},
	},
	HeadPlatform: {
		Label: "H. Platform",
		Kind:  KindDebit,
		Subheads: []string{
			"Software & Subscriptions", "Payment Gateway",
		},
	},
	HeadOperating: {
		Label: "I. Operating Expenses",
		Kind:  KindDebit,
		Subheads: []string{
			"Office Rent", "Salaries", "Professional Fees", "Travel & Conveyance",
			"Utilities", "Insurance", "Miscellaneous",
		},
	},
	HeadNonOperating: {
		Label: "J. Non-operating",
		Kind:  KindDebit,
		Subheads: []string{
			"Interest", "Depreciation", "Donations",
		},
	},
	HeadExclude: {
		Label:    "X. Exclude",
		Kind:     KindInformational,
		Subheads: []string{"Manually Excluded"},
	},
	HeadIgnore: {
		Label: "Z. Ignore",
		Kind:  KindInformational,
		// Subheads under Ignore are the matched ignore-rule reasons and
		// are therefore free-form; see HasSubhead.
		Subheads: nil,
	},
}

// Ordered returns the head identifiers in display/tier order.
func Ordered() []HeadID {
	out := make([]HeadID, len(ordered))
	copy(out, ordered)
	return out
}

// Lookup returns the configuration for a head.
func Lookup(h HeadID) (Config, bool) {
	c, ok := curated[h]
	return c, ok
}

// Valid reports whether h names a configured head.
func Valid(h HeadID) bool {
	_, ok := curated[h]
	return ok
}

// HasSubhead reports whether sub is a configured subhead of h. The Ignore
// and Exclude heads accept any non-empty subhead since their subheads are
// operator-supplied reasons.
func HasSubhead(h HeadID, sub string) bool {
	c, ok := curated[h]
	if !ok {
		return false
	}
	if h == HeadIgnore || h == HeadExclude {
		return sub != ""
	}
	for _, s := range c.Subheads {
		if s == sub {
			return true
		}
	}
	return false
}

// SubheadCode returns the stable key used for per-subhead breakdown maps.
func SubheadCode(sub string) string {
	return slug.Slugify(sub)
}
