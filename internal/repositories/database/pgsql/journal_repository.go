package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atlasvoyage/travel_accounting_app/internal/apperrors"
	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
	portsrepo "github.com/atlasvoyage/travel_accounting_app/internal/core/ports/repositories"
	"github.com/atlasvoyage/travel_accounting_app/internal/models"
	"github.com/atlasvoyage/travel_accounting_app/internal/utils/mapping"
	"github.com/atlasvoyage/travel_accounting_app/internal/utils/pagination"
)

const journalEntryColumns = `entry_id, entry_number, entry_date, description, reference,
		debit_account_id, credit_account_id, amount, transaction_type, source_type, source_id, status,
		reverses_entry_id, reversed_by_entry_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountPostingSupport
}

// newPgxJournalRepository creates a new repository for journal entries. It
// needs posting support from the account repository to apply balances
// within its own transaction.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountPostingSupport) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}, accountRepo: accountRepo}
}

var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

func scanJournalEntry(row rowScanner) (*domain.JournalEntry, error) {
	var m models.JournalEntry
	var reference, reversesID, reversedByID sql.NullString

	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Description,
		&reference,
		&m.DebitAccountID,
		&m.CreditAccountID,
		&m.Amount,
		&m.TransactionType,
		&m.SourceType,
		&m.SourceID,
		&m.Status,
		&reversesID,
		&reversedByID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
	}

	m.Reference = reference.String
	m.ReversesEntryID = reversesID.String
	m.ReversedByEntryID = reversedByID.String
	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)

	query := `
		INSERT INTO journal_entries (entry_id, entry_number, entry_date, description, reference,
			debit_account_id, credit_account_id, amount, transaction_type, source_type, source_id, status,
			reverses_entry_id, reversed_by_entry_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EntryID,
		m.EntryNumber,
		m.EntryDate,
		m.Description,
		nullString(m.Reference),
		m.DebitAccountID,
		m.CreditAccountID,
		m.Amount,
		m.TransactionType,
		m.SourceType,
		m.SourceID,
		m.Status,
		nullString(m.ReversesEntryID),
		nullString(m.ReversedByEntryID),
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save journal entry %s: %w", m.EntryNumber, err)
	}
	return nil
}

// PostEntry applies one entry to the ledger: status flip, both account
// balances under row locks, and ancestor propagation for both sides, in a
// single transaction.
func (r *PgxJournalRepository) PostEntry(ctx context.Context, entryID string, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	entry, err := scanJournalEntry(tx.QueryRow(ctx,
		`SELECT `+journalEntryColumns+` FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`, entryID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
		}
		return err
	}
	if entry.Status == domain.EntryPosted {
		return fmt.Errorf("%w: entry %s is already posted", apperrors.ErrConflict, entry.EntryNumber)
	}
	if entry.DebitAccountID == entry.CreditAccountID {
		return fmt.Errorf("%w: entry %s debits and credits the same account", apperrors.ErrValidation, entry.EntryNumber)
	}

	accounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{entry.DebitAccountID, entry.CreditAccountID})
	if err != nil {
		return err
	}
	debitAcc, ok := accounts[entry.DebitAccountID]
	if !ok {
		return fmt.Errorf("%w: debit account %s", apperrors.ErrNotFound, entry.DebitAccountID)
	}
	creditAcc, ok := accounts[entry.CreditAccountID]
	if !ok {
		return fmt.Errorf("%w: credit account %s", apperrors.ErrNotFound, entry.CreditAccountID)
	}

	// Sign rule: a debit increases ASSET/EXPENSE balances and decreases the
	// rest; a credit does the opposite.
	debitBalanceDelta := entry.Amount
	if !debitAcc.AccountType.DebitIncreasesBalance() {
		debitBalanceDelta = entry.Amount.Neg()
	}
	creditBalanceDelta := entry.Amount
	if creditAcc.AccountType.DebitIncreasesBalance() {
		creditBalanceDelta = entry.Amount.Neg()
	}

	updates := map[string]portsrepo.BalanceUpdate{
		entry.DebitAccountID: {
			DebitDelta:   entry.Amount,
			BalanceDelta: debitBalanceDelta,
		},
		entry.CreditAccountID: {
			CreditDelta:  entry.Amount,
			BalanceDelta: creditBalanceDelta,
		},
	}
	if err := r.accountRepo.ApplyBalanceUpdatesInTx(ctx, tx, updates, userID, now); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx,
		`UPDATE journal_entries SET status = $2, last_updated_at = $3, last_updated_by = $4 WHERE entry_id = $1;`,
		entryID, string(domain.EntryPosted), now, userID)
	if err != nil {
		return fmt.Errorf("failed to mark entry %s posted: %w", entry.EntryNumber, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
	}

	if err := r.accountRepo.RecomputeAncestorBalancesInTx(ctx, tx, entry.DebitAccountID, userID, now); err != nil {
		return err
	}
	if err := r.accountRepo.RecomputeAncestorBalancesInTx(ctx, tx, entry.CreditAccountID, userID, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxJournalRepository) MarkEntryReversed(ctx context.Context, entryID string, reversedByEntryID string, userID string, now time.Time) error {
	query := `
		UPDATE journal_entries
		SET reversed_by_entry_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1 AND reversed_by_entry_id IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, entryID, reversedByEntryID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to mark entry %s reversed: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s is missing or already reversed", apperrors.ErrConflict, entryID)
	}
	return nil
}

func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	return scanJournalEntry(r.Pool.QueryRow(ctx, query, entryID))
}

func (r *PgxJournalRepository) FindEntriesBySource(ctx context.Context, sourceType domain.EntrySourceType, sourceID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
		WHERE source_type = $1 AND source_id = $2
		ORDER BY created_at, entry_number;
	`
	rows, err := r.Pool.Query(ctx, query, string(sourceType), sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for %s %s: %w", sourceType, sourceID, err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		entry, err := scanJournalEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

func (r *PgxJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	query := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
		WHERE ($2::timestamptz IS NULL OR (entry_date, created_at) < ($2, $3))
		ORDER BY entry_date DESC, created_at DESC
		LIMIT $1;
	`

	var entryDate, createdAt any
	if nextToken != nil && *nextToken != "" {
		docDate, created, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		entryDate, createdAt = docDate, created
	}

	rows, err := r.Pool.Query(ctx, query, limit, entryDate, createdAt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		entry, err := scanJournalEntry(rows)
		if err != nil {
			return nil, nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var token *string
	if len(entries) == limit {
		last := entries[len(entries)-1]
		t := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		token = &t
	}
	return entries, token, nil
}
