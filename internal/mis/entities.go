// Package mis holds the core domain entities of the classification engine:
// raw ledger rows, vouchers, classified transactions and sales line items.
package mis

import (
	"time"

	"github.com/google/uuid"

	"github.com/tallyfold/mis/internal/meta"
	"github.com/tallyfold/mis/internal/taxonomy"
)

// Status tracks how far a transaction has moved through classification.
type Status string

const (
	// StatusUnclassified means no rule matched and no operator action was taken.
	StatusUnclassified Status = "unclassified"
	// StatusSuggested means a built-in rule proposed a head/subhead awaiting confirmation.
	StatusSuggested Status = "suggested"
	// StatusClassified means a head/subhead is assigned (by user rule or operator).
	StatusClassified Status = "classified"
	// StatusIgnored means the line is excluded from the P&L with a reason.
	StatusIgnored Status = "ignored"
)

// Channel identifies the sales channel a revenue line belongs to.
type Channel string

const (
	ChannelBlinkit    Channel = "Blinkit"
	ChannelAmazon     Channel = "Amazon"
	ChannelWebsite    Channel = "Website"
	ChannelOfflineOEM Channel = "Offline/OEM"
)

// LedgerRow is one raw journal line as decoded from a register export.
// A zero Date means the row inherits its voucher's date during grouping.
// Amounts are minor units; at most one side is meaningfully nonzero.
type LedgerRow struct {
	Date          time.Time
	VoucherNumber string
	GSTType       string
	AccountName   string
	DebitMinor    int64
	CreditMinor   int64
}

// HasDate reports whether the row carries an explicit accounting date.
func (r LedgerRow) HasDate() bool { return !r.Date.IsZero() }

// Voucher is an ordered, non-empty run of ledger rows sharing one
// accounting date. It is ephemeral: built, classified and discarded
// within a single import pass.
type Voucher struct {
	Date   time.Time
	Number string
	Rows   []LedgerRow
}

// Transaction is the classified unit of record.
type Transaction struct {
	ID       uuid.UUID
	Date     time.Time
	// VoucherNo carries the journal voucher or sales bill number.
	VoucherNo string
	// Account is the expense account (journal) or party (sales) this line hit.
	Account string
	// Party is the resolved counterparty, empty when none was found.
	Party       string
	Notes       string
	Currency    string
	DebitMinor  int64
	CreditMinor int64

	Status  Status
	Head    taxonomy.HeadID
	Subhead string
	// SuggestedHead/SuggestedSubhead are set only while Status is suggested.
	SuggestedHead    taxonomy.HeadID
	SuggestedSubhead string
	// AutoIgnored marks lines ignored by rule rather than by the operator.
	AutoIgnored bool
	// State tags sales-derived transactions with their register's state.
	State string

	Metadata meta.Metadata
}

// Classified reports whether the transaction contributes to aggregates.
func (t Transaction) Classified() bool {
	return (t.Status == StatusClassified || t.Status == StatusIgnored) &&
		t.Head != "" && t.Subhead != ""
}

// SalesLineItem is one normalized sales-register row.
// Amount is always positive; returns are flagged, not negated.
type SalesLineItem struct {
	ID             uuid.UUID
	PartyName      string
	AmountMinor    int64
	Channel        Channel
	IsReturn       bool
	IsInterCompany bool
	// ToState is the inferred destination of an inter-company transfer.
	ToState string
	// OriginalChannel keeps the channel a return was first sold on.
	OriginalChannel Channel
}

// ImportSummary reports what a journal import produced. Skipped voucher
// counts are surfaced so the operator can audit the receipt-voucher
// heuristic.
type ImportSummary struct {
	RowsSeen        int `json:"rows_seen"`
	RowsDropped     int `json:"rows_dropped"`
	Vouchers        int `json:"vouchers"`
	SkippedVouchers int `json:"skipped_vouchers"`
	UndatedVouchers int `json:"undated_vouchers"`
	Created         int `json:"created"`
	Suggested       int `json:"suggested"`
	AutoIgnored     int `json:"auto_ignored"`
	Unclassified    int `json:"unclassified"`
}

// Stats summarizes the stored transaction set for the operator.
type Stats struct {
	Total    int                     `json:"total"`
	ByStatus map[Status]int          `json:"by_status"`
	ByHead   map[taxonomy.HeadID]int `json:"by_head"`
}
