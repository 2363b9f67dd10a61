package mapping

import (
	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
	"github.com/atlasvoyage/travel_accounting_app/internal/models"
)

// ToModelJournalEntry converts a domain journal entry to its DB shape.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:           d.EntryID,
		EntryNumber:       d.EntryNumber,
		EntryDate:         d.EntryDate,
		Description:       d.Description,
		Reference:         d.Reference,
		DebitAccountID:    d.DebitAccountID,
		CreditAccountID:   d.CreditAccountID,
		Amount:            d.Amount,
		TransactionType:   string(d.TransactionType),
		SourceType:        string(d.SourceType),
		SourceID:          d.SourceID,
		Status:            string(d.Status),
		ReversesEntryID:   d.ReversesEntryID,
		ReversedByEntryID: d.ReversedByEntryID,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a DB journal-entry row to the domain shape.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:           m.EntryID,
		EntryNumber:       m.EntryNumber,
		EntryDate:         m.EntryDate,
		Description:       m.Description,
		Reference:         m.Reference,
		DebitAccountID:    m.DebitAccountID,
		CreditAccountID:   m.CreditAccountID,
		Amount:            m.Amount,
		TransactionType:   domain.TransactionType(m.TransactionType),
		SourceType:        domain.EntrySourceType(m.SourceType),
		SourceID:          m.SourceID,
		Status:            domain.EntryStatus(m.Status),
		ReversesEntryID:   m.ReversesEntryID,
		ReversedByEntryID: m.ReversedByEntryID,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
