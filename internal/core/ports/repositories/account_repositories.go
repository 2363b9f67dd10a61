package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
)

// BalanceUpdate carries the deltas one posting applies to a single account.
type BalanceUpdate struct {
	DebitDelta   decimal.Decimal
	CreditDelta  decimal.Decimal
	BalanceDelta decimal.Decimal
}

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its unique human-readable code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountPostingSupport defines the balance mutations the journal engine
// performs while posting, all within a caller-owned transaction.
type AccountPostingSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks them for update
	// within a transaction. Accounts are locked in sorted ID order.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceUpdatesInTx applies debit/credit/balance deltas to the given accounts.
	ApplyBalanceUpdatesInTx(ctx context.Context, tx pgx.Tx, updates map[string]BalanceUpdate, userID string, now time.Time) error

	// RecomputeAncestorBalancesInTx walks from the given account up to the
	// root, recomputing every ancestor's stored debit/credit/balance as the
	// sum over its direct children. The walk is depth-bounded so a corrupt
	// parent chain cannot loop forever.
	RecomputeAncestorBalancesInTx(ctx context.Context, tx pgx.Tx, accountID string, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountPostingSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities.
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
