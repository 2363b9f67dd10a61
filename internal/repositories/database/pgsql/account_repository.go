package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atlasvoyage/travel_accounting_app/internal/apperrors"
	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
	portsrepo "github.com/atlasvoyage/travel_accounting_app/internal/core/ports/repositories"
	"github.com/atlasvoyage/travel_accounting_app/internal/models"
	"github.com/atlasvoyage/travel_accounting_app/internal/utils/mapping"
)

// maxAncestorDepth bounds the balance propagation walk; a deeper chain
// indicates a cycle or corrupt data.
const maxAncestorDepth = 16

const accountColumns = `account_id, code, name, account_type, parent_account_id, description, is_active,
		debit_balance, credit_balance, balance, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var m models.Account
	var parentID sql.NullString

	err := row.Scan(
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&parentID,
		&m.Description,
		&m.IsActive,
		&m.DebitBalance,
		&m.CreditBalance,
		&m.Balance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan account row: %w", err)
	}

	m.ParentAccountID = parentID.String
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (account_id, code, name, account_type, parent_account_id, description, is_active,
			debit_balance, credit_balance, balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Code,
		m.Name,
		m.AccountType,
		nullString(m.ParentAccountID),
		m.Description,
		m.IsActive,
		m.DebitBalance,
		m.CreditBalance,
		m.Balance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET name = $2, description = $3, parent_account_id = $4, is_active = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.Description,
		nullString(m.ParentAccountID),
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	return scanAccount(r.Pool.QueryRow(ctx, query, accountID))
}

func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = $1;`
	return scanAccount(r.Pool.QueryRow(ctx, query, code))
}

func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	return collectAccountMap(rows)
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY code LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	return accounts, rows.Err()
}

// FindAccountsByIDsForUpdate locks accounts in sorted ID order so concurrent
// postings touching the same accounts cannot deadlock.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	sorted := make([]string, len(accountIDs))
	copy(sorted, accountIDs)
	sort.Strings(sorted)

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`
	rows, err := tx.Query(ctx, query, sorted)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts for update: %w", err)
	}
	defer rows.Close()

	return collectAccountMap(rows)
}

func collectAccountMap(rows pgx.Rows) (map[string]domain.Account, error) {
	accounts := make(map[string]domain.Account)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts[account.AccountID] = *account
	}
	return accounts, rows.Err()
}

func (r *PgxAccountRepository) ApplyBalanceUpdatesInTx(ctx context.Context, tx pgx.Tx, updates map[string]portsrepo.BalanceUpdate, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET debit_balance = debit_balance + $2,
			credit_balance = credit_balance + $3,
			balance = balance + $4,
			last_updated_at = $5, last_updated_by = $6
		WHERE account_id = $1;
	`
	for accountID, update := range updates {
		tag, err := tx.Exec(ctx, query, accountID, update.DebitDelta, update.CreditDelta, update.BalanceDelta, now, userID)
		if err != nil {
			return fmt.Errorf("failed to apply balance update to account %s: %w", accountID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
	}
	return nil
}

// RecomputeAncestorBalancesInTx walks the parent chain to the root, rolling
// each ancestor's stored balances up from its direct children.
func (r *PgxAccountRepository) RecomputeAncestorBalancesInTx(ctx context.Context, tx pgx.Tx, accountID string, userID string, now time.Time) error {
	aggregateQuery := `
		UPDATE accounts
		SET debit_balance = COALESCE((SELECT SUM(debit_balance) FROM accounts WHERE parent_account_id = $1), 0),
			credit_balance = COALESCE((SELECT SUM(credit_balance) FROM accounts WHERE parent_account_id = $1), 0),
			balance = COALESCE((SELECT SUM(balance) FROM accounts WHERE parent_account_id = $1), 0),
			last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1;
	`

	currentID := accountID
	for depth := 0; depth < maxAncestorDepth; depth++ {
		var parentID sql.NullString
		err := tx.QueryRow(ctx, `SELECT parent_account_id FROM accounts WHERE account_id = $1;`, currentID).Scan(&parentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, currentID)
			}
			return fmt.Errorf("failed to read parent of account %s: %w", currentID, err)
		}
		if !parentID.Valid {
			return nil
		}

		if _, err := tx.Exec(ctx, aggregateQuery, parentID.String, now, userID); err != nil {
			return fmt.Errorf("failed to recompute balances of account %s: %w", parentID.String, err)
		}
		currentID = parentID.String
	}
	return fmt.Errorf("account parent chain exceeds depth %d starting at %s", maxAncestorDepth, accountID)
}
