package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is a node in the chart of accounts. Balances are mutated only by
// the journal engine when an entry is posted; parent balances are
// aggregations over direct children.
type Account struct {
	AccountID       string          `json:"accountID"`       // Primary Key (UUID)
	Code            string          `json:"code"`            // Unique human-readable code, e.g. "1201"
	Name            string          `json:"name"`            // User-defined name
	AccountType     AccountType     `json:"accountType"`     // ASSET, LIABILITY, etc.
	ParentAccountID string          `json:"parentAccountID"` // Nullable FK -> accounts.account_id (tree, acyclic)
	Description     string          `json:"description"`
	IsActive        bool            `json:"isActive"`
	DebitBalance    decimal.Decimal `json:"debitBalance"`  // Sum of debit-side postings
	CreditBalance   decimal.Decimal `json:"creditBalance"` // Sum of credit-side postings
	Balance         decimal.Decimal `json:"balance"`       // Signed, type-dependent net balance
	AuditFields
}

// DebitIncreasesBalance reports whether a debit posting increases the signed
// balance for this account's type.
func (a AccountType) DebitIncreasesBalance() bool {
	return a == Asset || a == Expense
}
