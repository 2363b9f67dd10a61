package repositories

import (
	"context"
	"time"

	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
)

// JournalEntryReader defines read operations for journal entries.
type JournalEntryReader interface {
	// FindEntryByID retrieves a specific entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntriesBySource retrieves all entries generated from the given
	// source document, including reversed and reversing ones.
	FindEntriesBySource(ctx context.Context, sourceType domain.EntrySourceType, sourceID string) ([]domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entries using token-based pagination.
	ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalEntryWriter defines write operations for journal entries.
type JournalEntryWriter interface {
	// SaveEntry persists a new entry in DRAFT status.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// PostEntry transitions an entry DRAFT -> POSTED and applies its effect
	// to both account balances plus every ancestor, all inside a single
	// database transaction. Returns apperrors.ErrConflict when the entry is
	// already posted.
	PostEntry(ctx context.Context, entryID string, userID string, now time.Time) error

	// MarkEntryReversed records the back-reference from a superseded entry
	// to the compensating entry that undoes it.
	MarkEntryReversed(ctx context.Context, entryID string, reversedByEntryID string, userID string, now time.Time) error
}

// JournalRepositoryFacade combines all journal-entry repository interfaces.
type JournalRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities.
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
