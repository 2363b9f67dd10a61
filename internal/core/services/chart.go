package services

import (
	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
)

// Well-known chart-of-accounts codes the journal engine posts against.
// The migrations seed these; GetAccountByCode surfaces an explicit error
// when one is missing instead of skipping the posting.
const (
	codeAccountsReceivable = "1201"
	codeAccountsPayable    = "2101"
	codeVATPayable         = "2301"
	codeCommissionsPayable = "2401"
	codeCommissionExpense  = "6101"

	codeCashOnHand    = "1101"
	codeBankMain      = "1102"
	codeCardClearing  = "1103"
	codeChequesInHand = "1104"
)

// revenueAccountCodes maps service types to their revenue accounts.
var revenueAccountCodes = map[domain.ServiceType]string{
	domain.ServiceFlight:   "4101",
	domain.ServiceHotel:    "4102",
	domain.ServiceVisa:     "4103",
	domain.ServicePackage:  "4104",
	domain.ServiceTransfer: "4105",
	domain.ServiceOther:    "4109",
}

// costAccountCodes maps service types to their cost-of-sales accounts.
var costAccountCodes = map[domain.ServiceType]string{
	domain.ServiceFlight:   "5101",
	domain.ServiceHotel:    "5102",
	domain.ServiceVisa:     "5103",
	domain.ServicePackage:  "5104",
	domain.ServiceTransfer: "5105",
	domain.ServiceOther:    "5109",
}

func revenueAccountCode(serviceType domain.ServiceType) string {
	if code, ok := revenueAccountCodes[serviceType]; ok {
		return code
	}
	return revenueAccountCodes[domain.ServiceOther]
}

func costAccountCode(serviceType domain.ServiceType) string {
	if code, ok := costAccountCodes[serviceType]; ok {
		return code
	}
	return costAccountCodes[domain.ServiceOther]
}

// cashAccountCode selects the cash or bank account for a receipt. Foreign
// currency bank accounts live under a currency-suffixed code, e.g. "1102-USD".
func cashAccountCode(method domain.PaymentMethod, bankCurrency string, baseCurrency string) string {
	switch method {
	case domain.PaymentCash:
		return codeCashOnHand
	case domain.PaymentCard:
		return codeCardClearing
	case domain.PaymentCheque:
		return codeChequesInHand
	default:
		if bankCurrency != "" && bankCurrency != baseCurrency {
			return codeBankMain + "-" + bankCurrency
		}
		return codeBankMain
	}
}
