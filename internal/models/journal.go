package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the DB shape of a paired debit/credit posting.
type JournalEntry struct {
	EntryID           string          `db:"entry_id"`
	EntryNumber       string          `db:"entry_number"`
	EntryDate         time.Time       `db:"entry_date"`
	Description       string          `db:"description"`
	Reference         string          `db:"reference"`
	DebitAccountID    string          `db:"debit_account_id"`
	CreditAccountID   string          `db:"credit_account_id"`
	Amount            decimal.Decimal `db:"amount"`
	TransactionType   string          `db:"transaction_type"`
	SourceType        string          `db:"source_type"`
	SourceID          string          `db:"source_id"`
	Status            string          `db:"status"`
	ReversesEntryID   string          `db:"reverses_entry_id"`    // Nullable
	ReversedByEntryID string          `db:"reversed_by_entry_id"` // Nullable
	AuditFields
}
