package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a stored conversion rate from a currency to the base
// currency, effective from a given date.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"` // Primary Key (UUID)
	CurrencyCode   string          `json:"currencyCode"`   // ISO 4217, e.g. "USD"
	RateToBase     decimal.Decimal `json:"rateToBase"`
	DateEffective  time.Time       `json:"dateEffective"`
	AuditFields
}
