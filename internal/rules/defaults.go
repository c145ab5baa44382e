package rules

import "github.com/tallyfold/mis/internal/taxonomy"

// DefaultRules is the built-in classification list, evaluated after any
// user rules. Order matters: the first matching pattern wins.
func DefaultRules() []Rule {
	rs := []Rule{
		// Revenue by channel
		{Pattern: `blinkit|grofers`, Head: taxonomy.HeadRevenue, Subhead: "Blinkit"},
		{Pattern: `amazon`, Head: taxonomy.HeadRevenue, Subhead: "Amazon"},
		{Pattern: `shiprocket.*(sale|order)|website sale`, Head: taxonomy.HeadRevenue, Subhead: "Website"},

		// Returns and discounts
		{Pattern: `sales?\s*returns?|return\s*inward`, Head: taxonomy.HeadReturns, Subhead: "Sales Returns"},
		{Pattern: `cash\s*discount`, Head: taxonomy.HeadDiscounts, Subhead: "Cash Discounts"},
		{Pattern: `discount`, Head: taxonomy.HeadDiscounts, Subhead: "Trade Discounts"},

		// COGM
		{Pattern: `raw\s*material|purchase.*(material|component)`, Head: taxonomy.HeadCOGM, Subhead: "Raw Materials"},
		{Pattern: `packag(ing|e)|carton|corrugated|bopp`, Head: taxonomy.HeadCOGM, Subhead: "Packaging"},
		{Pattern: `job\s*work|fabrication`, Head: taxonomy.HeadCOGM, Subhead: "Job Work"},
		{Pattern: `freight\s*(inward)?|cartage|transport.*inward`, Head: taxonomy.HeadCOGM, Subhead: "Freight Inward"},
		{Pattern: `factory.*rent|rent.*factory`, Head: taxonomy.HeadCOGM, Subhead: "Factory Rent"},
		{Pattern: `factory.*(wages|salar)|wages`, Head: taxonomy.HeadCOGM, Subhead: "Factory Salaries"},
		{Pattern: `electricity|power|fuel|diesel`, Head: taxonomy.HeadCOGM, Subhead: "Power & Fuel"},

		// Channel & fulfillment
		{Pattern: `shiprocket|shipping|courier|delhivery|bluedart|logistics`, Head: taxonomy.HeadChannel, Subhead: "Shipping"},
		{Pattern: `commission|marketplace\s*fee`, Head: taxonomy.HeadChannel, Subhead: "Marketplace Commission"},
		{Pattern: `warehous(e|ing)|storage|fba\s*fee`, Head: taxonomy.HeadChannel, Subhead: "Warehousing & Storage"},

		// Marketing
		{Pattern: `google\s*ads|facebook|meta\s*ads|ads?\s*spend|adwords`, Head: taxonomy.HeadMarketing, Subhead: "Performance Marketing"},
		{Pattern: `agency|influencer`, Head: taxonomy.HeadMarketing, Subhead: "Agency Fees"},
		{Pattern: `photo|video|creative|content`, Head: taxonomy.HeadMarketing, Subhead: "Content & Creatives"},
		{Pattern: `sample`, Head: taxonomy.HeadMarketing, Subhead: "Samples"},

		// Platform
		{Pattern: `shopify|saas|subscription|software|zoho|aws|hosting`, Head: taxonomy.HeadPlatform, Subhead: "Software & Subscriptions"},
		{Pattern: `razorpay|payment\s*gateway|pg\s*charges`, Head: taxonomy.HeadPlatform, Subhead: "Payment Gateway"},

		// Operating
		{Pattern: `office.*rent|rent`, Head: taxonomy.HeadOperating, Subhead: "Office Rent"},
		{Pattern: `salar(y|ies)|payroll|staff\s*welfare`, Head: taxonomy.HeadOperating, Subhead: "Salaries"},
		{Pattern: `professional|consultanc|audit\s*fee|legal|ca\s*fee`, Head: taxonomy.HeadOperating, Subhead: "Professional Fees"},
		{Pattern: `travel|conveyance|cab|flight|hotel`, Head: taxonomy.HeadOperating, Subhead: "Travel & Conveyance"},
		{Pattern: `internet|telephone|mobile|water|utilit`, Head: taxonomy.HeadOperating, Subhead: "Utilities"},
		{Pattern: `insurance`, Head: taxonomy.HeadOperating, Subhead: "Insurance"},
		{Pattern: `printing|stationery|postage|misc`, Head: taxonomy.HeadOperating, Subhead: "Miscellaneous"},

		// Non-operating
		{Pattern: `interest\s*(paid|on)|bank\s*interest|emi`, Head: taxonomy.HeadNonOperating, Subhead: "Interest"},
		{Pattern: `depreciation`, Head: taxonomy.HeadNonOperating, Subhead: "Depreciation"},
		{Pattern: `donation|charity`, Head: taxonomy.HeadNonOperating, Subhead: "Donations"},
	}
	for i := range rs {
		rs[i].Source = SourceBuiltin
	}
	return rs
}

// DefaultIgnoreRules excludes balance-sheet traffic from the P&L: tax
// ledgers, withholding, bank movements, inter-company loans, asset
// purchases and book-keeping artifacts.
func DefaultIgnoreRules() []IgnoreRule {
	return []IgnoreRule{
		{Pattern: `\b(igst|cgst|sgst|gst)\b`, Reason: "GST ledger"},
		{Pattern: `\btds\b|tax\s*deducted`, Reason: "TDS ledger"},
		{Pattern: `bank\s*(transfer|charges\s*reversal)|contra`, Reason: "Bank transfer"},
		{Pattern: `inter\s*-?\s*company|ic\s*loan|loan\s*(to|from)`, Reason: "Inter-company loan"},
		{Pattern: `fixed\s*asset|machinery|plant\s*&?\s*equipment|capital\s*work`, Reason: "Fixed asset"},
		{Pattern: `suspense`, Reason: "Suspense"},
		{Pattern: `opening\s*balance|closing\s*balance`, Reason: "Opening/closing balance"},
	}
}
