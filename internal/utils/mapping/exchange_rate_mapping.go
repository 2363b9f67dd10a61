package mapping

import (
	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
	"github.com/atlasvoyage/travel_accounting_app/internal/models"
)

// ToModelExchangeRate converts a domain exchange rate to its DB shape.
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID: d.ExchangeRateID,
		CurrencyCode:   d.CurrencyCode,
		RateToBase:     d.RateToBase,
		DateEffective:  d.DateEffective,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExchangeRate converts a DB exchange-rate row to the domain shape.
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID: m.ExchangeRateID,
		CurrencyCode:   m.CurrencyCode,
		RateToBase:     m.RateToBase,
		DateEffective:  m.DateEffective,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
