package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
)

// JournalEntryResponse is the API shape of a journal entry.
type JournalEntryResponse struct {
	EntryID           string          `json:"entryID"`
	EntryNumber       string          `json:"entryNumber"`
	EntryDate         time.Time       `json:"entryDate"`
	Description       string          `json:"description"`
	Reference         string          `json:"reference,omitempty"`
	DebitAccountID    string          `json:"debitAccountID"`
	CreditAccountID   string          `json:"creditAccountID"`
	Amount            decimal.Decimal `json:"amount"`
	TransactionType   string          `json:"transactionType"`
	SourceType        string          `json:"sourceType"`
	SourceID          string          `json:"sourceID"`
	Status            string          `json:"status"`
	ReversesEntryID   string          `json:"reversesEntryID,omitempty"`
	ReversedByEntryID string          `json:"reversedByEntryID,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	CreatedBy         string          `json:"createdBy"`
}

// ToJournalEntryResponse converts a domain entry to its API shape.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:           e.EntryID,
		EntryNumber:       e.EntryNumber,
		EntryDate:         e.EntryDate,
		Description:       e.Description,
		Reference:         e.Reference,
		DebitAccountID:    e.DebitAccountID,
		CreditAccountID:   e.CreditAccountID,
		Amount:            e.Amount,
		TransactionType:   string(e.TransactionType),
		SourceType:        string(e.SourceType),
		SourceID:          e.SourceID,
		Status:            string(e.Status),
		ReversesEntryID:   e.ReversesEntryID,
		ReversedByEntryID: e.ReversedByEntryID,
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
	}
}

// ToJournalEntryResponses converts a slice of domain entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToJournalEntryResponse(&entries[i])
	}
	return responses
}

// ListEntriesParams holds parameters for listing journal entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse is a page of journal entries plus the next-page token.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}
