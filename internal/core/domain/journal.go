package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry. An entry moves
// DRAFT -> POSTED exactly once; posting is the only operation that mutates
// account balances.
type EntryStatus string

const (
	EntryDraft  EntryStatus = "DRAFT"
	EntryPosted EntryStatus = "POSTED"
)

// TransactionType identifies the business event behind a journal entry.
type TransactionType string

const (
	TxnBookingCost      TransactionType = "BOOKING_COST"
	TxnBookingRevenue   TransactionType = "BOOKING_REVENUE"
	TxnBookingVATUAE    TransactionType = "BOOKING_VAT_UAE"
	TxnBookingVATNonUAE TransactionType = "BOOKING_VAT_NON_UAE"
	TxnCommissionAgent  TransactionType = "COMMISSION_AGENT"
	TxnCommissionCS     TransactionType = "COMMISSION_CS"
	TxnReceiptPayment   TransactionType = "RECEIPT_PAYMENT"

	TxnRefundCost            TransactionType = "REFUND_COST"
	TxnRefundRevenue         TransactionType = "REFUND_REVENUE"
	TxnRefundVAT             TransactionType = "REFUND_VAT"
	TxnRefundCommissionAgent TransactionType = "REFUND_COMMISSION_AGENT"
	TxnRefundCommissionCS    TransactionType = "REFUND_COMMISSION_CS"
)

// EntrySourceType names the document an entry was generated from.
type EntrySourceType string

const (
	SourceBooking EntrySourceType = "BOOKING"
	SourceInvoice EntrySourceType = "INVOICE"
	SourceReceipt EntrySourceType = "RECEIPT"
)

// JournalEntry is a single paired debit/credit posting. This ledger uses one
// amount per entry, not multi-line postings.
type JournalEntry struct {
	EntryID         string          `json:"entryID"`     // Primary Key (UUID)
	EntryNumber     string          `json:"entryNumber"` // Sequential, e.g. "JE-000123"
	EntryDate       time.Time       `json:"entryDate"`
	Description     string          `json:"description"`
	Reference       string          `json:"reference"` // Source document number
	DebitAccountID  string          `json:"debitAccountID"`
	CreditAccountID string          `json:"creditAccountID"`
	Amount          decimal.Decimal `json:"amount"` // Positive, base currency
	TransactionType TransactionType `json:"transactionType"`
	SourceType      EntrySourceType `json:"sourceType"`
	SourceID        string          `json:"sourceID"`
	Status          EntryStatus     `json:"status"`

	// ReversesEntryID links a compensating entry to the entry it undoes.
	// ReversedByEntryID is the back-reference set on the superseded entry.
	// Entries are never deleted on edit; they are reversed and regenerated.
	ReversesEntryID   string `json:"reversesEntryID"`
	ReversedByEntryID string `json:"reversedByEntryID"`

	AuditFields
}

// IsReversed reports whether this entry has been superseded by a
// compensating entry and no longer counts for idempotency checks.
func (e JournalEntry) IsReversed() bool {
	return e.ReversedByEntryID != ""
}
