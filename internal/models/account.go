package models

import (
	"github.com/shopspring/decimal"
)

// AccountType mirrors domain.AccountType at the storage layer.
type AccountType string

// Account is the DB shape of a chart-of-accounts node.
type Account struct {
	AccountID       string          `db:"account_id"`
	Code            string          `db:"code"`
	Name            string          `db:"name"`
	AccountType     AccountType     `db:"account_type"`
	ParentAccountID string          `db:"parent_account_id"` // Nullable
	Description     string          `db:"description"`
	IsActive        bool            `db:"is_active"`
	DebitBalance    decimal.Decimal `db:"debit_balance"`
	CreditBalance   decimal.Decimal `db:"credit_balance"`
	Balance         decimal.Decimal `db:"balance"`
	AuditFields
}
