package dto

import (
	"github.com/shopspring/decimal"
)

// BookingSummaryResponse reports aggregated base-currency totals over every
// booking, including refund mirrors. AverageProfitMargin is total profit as
// a percentage of total revenue.
type BookingSummaryResponse struct {
	TotalCost           decimal.Decimal `json:"totalCost"`
	TotalRevenue        decimal.Decimal `json:"totalRevenue"`
	TotalProfit         decimal.Decimal `json:"totalProfit"`
	TotalVAT            decimal.Decimal `json:"totalVAT"`
	TotalCommission     decimal.Decimal `json:"totalCommission"`
	AverageProfitMargin decimal.Decimal `json:"averageProfitMargin"`
	BookingCount        int64           `json:"bookingCount"`
}

// TrialBalanceRow is one account's contribution to the trial balance.
type TrialBalanceRow struct {
	AccountID     string          `json:"accountID"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	AccountType   string          `json:"accountType"`
	DebitBalance  decimal.Decimal `json:"debitBalance"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
}

// TrialBalanceResponse reports per-account balances and the ledger totals.
// IsBalanced is true when total debits equal total credits.
type TrialBalanceResponse struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	IsBalanced  bool              `json:"isBalanced"`
}
