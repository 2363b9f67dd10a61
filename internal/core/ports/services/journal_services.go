package services

import (
	"context"

	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
	"github.com/atlasvoyage/travel_accounting_app/internal/dto"
)

// CommissionKind selects which commission split an entry covers.
type CommissionKind string

const (
	CommissionAgent CommissionKind = "AGENT"
	CommissionCS    CommissionKind = "CS"
)

// JournalEngineSvc is the posting engine. Every Create* operation is
// idempotent per (source document, transaction type): a second call finds
// the existing active entry and returns it without creating a duplicate.
// Created entries are posted immediately.
type JournalEngineSvc interface {
	// CreateCostEntries creates one posted cost entry per supplier line
	// (or a single entry for single-supplier bookings).
	CreateCostEntries(ctx context.Context, booking *domain.Booking, userID string) ([]domain.JournalEntry, error)

	// CreateRevenueEntry records the booking's net revenue receivable.
	CreateRevenueEntry(ctx context.Context, booking *domain.Booking, userID string) (*domain.JournalEntry, error)

	// CreateVATEntry records VAT payable; a no-op returning nil when the
	// booking's VAT amount is zero.
	CreateVATEntry(ctx context.Context, booking *domain.Booking, userID string) (*domain.JournalEntry, error)

	// CreateCommissionEntry records one commission split; a no-op returning
	// nil when that split's amount is zero.
	CreateCommissionEntry(ctx context.Context, booking *domain.Booking, kind CommissionKind, userID string) (*domain.JournalEntry, error)

	// CreateReceiptEntry records the cash side of a customer payment.
	CreateReceiptEntry(ctx context.Context, receipt *domain.Receipt, userID string) (*domain.JournalEntry, error)

	// ReverseReceiptEntry undoes a receipt's cash entry with a compensating
	// entry after the receipt is cancelled or amended.
	ReverseReceiptEntry(ctx context.Context, receipt *domain.Receipt, userID string) error

	// PostJournalEntry transitions an entry DRAFT -> POSTED and applies it
	// to account balances. Posting twice returns apperrors.ErrConflict.
	PostJournalEntry(ctx context.Context, entryID string, userID string) error

	// CreateRefundEntries emits one posted reversal entry per nonzero
	// component of the original booking, debit and credit swapped.
	CreateRefundEntries(ctx context.Context, booking *domain.Booking, userID string) ([]domain.JournalEntry, error)

	// RegenerateBookingEntries reverses the booking's active entries with
	// compensating entries and creates a fresh set from its current
	// amounts. Used after a financial edit; nothing is deleted.
	RegenerateBookingEntries(ctx context.Context, booking *domain.Booking, userID string) error
}

// JournalReaderSvc defines read operations for journal entries.
type JournalReaderSvc interface {
	// GetEntryByID retrieves a specific entry by its ID.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entries.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// TrialBalance reports per-account debit/credit balances and whether
	// the ledger balances overall.
	TrialBalance(ctx context.Context) (*dto.TrialBalanceResponse, error)
}

// JournalSvcFacade combines the posting engine with its read operations.
type JournalSvcFacade interface {
	JournalEngineSvc
	JournalReaderSvc
}
