package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
)

// CreateAccountRequest is the payload for adding a chart-of-accounts node.
type CreateAccountRequest struct {
	Code            string `json:"code" binding:"required"`
	Name            string `json:"name" binding:"required"`
	AccountType     string `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentAccountID string `json:"parentAccountID"`
	Description     string `json:"description"`
}

// AccountResponse is the API shape of an account.
type AccountResponse struct {
	AccountID       string          `json:"accountID"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	AccountType     string          `json:"accountType"`
	ParentAccountID string          `json:"parentAccountID,omitempty"`
	Description     string          `json:"description,omitempty"`
	IsActive        bool            `json:"isActive"`
	DebitBalance    decimal.Decimal `json:"debitBalance"`
	CreditBalance   decimal.Decimal `json:"creditBalance"`
	Balance         decimal.Decimal `json:"balance"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ToAccountResponse converts a domain account to its API shape.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		Code:            a.Code,
		Name:            a.Name,
		AccountType:     string(a.AccountType),
		ParentAccountID: a.ParentAccountID,
		Description:     a.Description,
		IsActive:        a.IsActive,
		DebitBalance:    a.DebitBalance,
		CreditBalance:   a.CreditBalance,
		Balance:         a.Balance,
		CreatedAt:       a.CreatedAt,
	}
}

// ListAccountsParams holds parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// ListAccountsResponse is a page of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
