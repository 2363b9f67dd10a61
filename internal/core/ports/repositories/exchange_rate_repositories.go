package repositories

import (
	"context"

	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
)

// ExchangeRateRepositoryFacade defines operations for stored currency rates.
type ExchangeRateRepositoryFacade interface {
	// FindLatestRateForCurrency retrieves the most recent effective rate to
	// the base currency for the given currency code.
	FindLatestRateForCurrency(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error)

	// SaveExchangeRate inserts or updates a rate for (currency, dateEffective).
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}
