package finance

import (
	"github.com/shopspring/decimal"

	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
)

var oneHundred = decimal.NewFromInt(100)

// Round2 rounds a monetary value to 2 decimal places. Every derived value is
// rounded independently at the point of computation; intermediate results are
// not carried at full precision between stages.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// VATResult holds the outcome of the first calculation stage.
type VATResult struct {
	NetBeforeVAT decimal.Decimal
	VATAmount    decimal.Decimal
	GrossProfit  decimal.Decimal
	// CommissionBase is the profit figure commissions are computed against.
	CommissionBase decimal.Decimal
	// VATOnProfitDeferred is set when VAT must be charged on profit after
	// commission instead of being extracted from the sale amount.
	VATOnProfitDeferred bool
}

// CalculateVAT applies one of three regimes:
//
//  1. UAE, non-FLIGHT: VAT is extracted from the inclusive sale amount and
//     commissions are based on the profit after extraction.
//  2. UAE, FLIGHT: no extraction; VAT is charged later on profit after
//     commission.
//  3. Non-UAE: gross profit is sale minus cost; VAT (if applicable) is
//     likewise charged on profit after commission, otherwise zero.
func CalculateVAT(sale, cost decimal.Decimal, isUAE, vatApplicable bool, vatRate decimal.Decimal, serviceType domain.ServiceType) VATResult {
	if isUAE && serviceType != domain.ServiceFlight {
		divisor := decimal.NewFromInt(1).Add(vatRate.Div(oneHundred))
		netBeforeVAT := Round2(sale.Div(divisor))
		vat := Round2(sale.Sub(netBeforeVAT))
		grossProfit := Round2(netBeforeVAT.Sub(cost))
		return VATResult{
			NetBeforeVAT:   netBeforeVAT,
			VATAmount:      vat,
			GrossProfit:    grossProfit,
			CommissionBase: grossProfit,
		}
	}

	grossProfit := Round2(sale.Sub(cost))
	return VATResult{
		NetBeforeVAT:        Round2(sale),
		VATAmount:           decimal.Zero,
		GrossProfit:         grossProfit,
		CommissionBase:      grossProfit,
		VATOnProfitDeferred: isUAE || vatApplicable,
	}
}

// CommissionResult holds the sales-commission split.
type CommissionResult struct {
	AgentAmount           decimal.Decimal
	CSAmount              decimal.Decimal
	Total                 decimal.Decimal
	ProfitAfterCommission decimal.Decimal
}

// CalculateCommissions splits the commission base between the sales agent
// and customer service at their respective percentage rates.
func CalculateCommissions(commissionBase, agentRate, csRate decimal.Decimal) CommissionResult {
	agentAmount := Round2(commissionBase.Mul(agentRate).Div(oneHundred))
	csAmount := Round2(commissionBase.Mul(csRate).Div(oneHundred))
	total := Round2(agentAmount.Add(csAmount))
	return CommissionResult{
		AgentAmount:           agentAmount,
		CSAmount:              csAmount,
		Total:                 total,
		ProfitAfterCommission: Round2(commissionBase.Sub(total)),
	}
}

// CalculateVATOnProfit computes deferred VAT charged on the profit remaining
// after commission deduction.
func CalculateVATOnProfit(profitAfterCommission, vatRate decimal.Decimal) decimal.Decimal {
	return Round2(profitAfterCommission.Mul(vatRate).Div(oneHundred))
}

// ProfitMargin expresses net profit as a percentage of the sale amount,
// rounded to 2 decimal places. A non-positive sale yields zero.
func ProfitMargin(netProfit, sale decimal.Decimal) decimal.Decimal {
	if sale.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return Round2(netProfit.Div(sale).Mul(oneHundred))
}

// RateSource names where a resolved commission rate came from.
type RateSource string

const (
	RateExplicit        RateSource = "explicit"
	RateEmployeeDefault RateSource = "employee_default"
	RateZeroFallback    RateSource = "zero_fallback"
)

// ResolveCommissionRate picks the effective commission rate: an explicit
// rate wins, then the employee's stored default, then zero. The source is
// returned so callers can log zero-fallbacks instead of defaulting silently.
func ResolveCommissionRate(explicit, employeeDefault *decimal.Decimal) (decimal.Decimal, RateSource) {
	if explicit != nil {
		return *explicit, RateExplicit
	}
	if employeeDefault != nil {
		return *employeeDefault, RateEmployeeDefault
	}
	return decimal.Zero, RateZeroFallback
}

// BookingFigures is the full set of derived monetary fields for a booking.
type BookingFigures struct {
	NetBeforeVAT          decimal.Decimal
	VATAmount             decimal.Decimal
	GrossProfit           decimal.Decimal
	AgentCommission       decimal.Decimal
	CSCommission          decimal.Decimal
	TotalCommission       decimal.Decimal
	ProfitAfterCommission decimal.Decimal
	NetProfit             decimal.Decimal
	ProfitMarginPercent   decimal.Decimal
}

// ComputeBookingFigures runs the complete tax and commission cascade for a
// booking's base-currency amounts.
func ComputeBookingFigures(sale, cost decimal.Decimal, isUAE, vatApplicable bool, vatRate decimal.Decimal, serviceType domain.ServiceType, agentRate, csRate decimal.Decimal) BookingFigures {
	vatRes := CalculateVAT(sale, cost, isUAE, vatApplicable, vatRate, serviceType)
	commRes := CalculateCommissions(vatRes.CommissionBase, agentRate, csRate)

	vatAmount := vatRes.VATAmount
	netProfit := commRes.ProfitAfterCommission
	if vatRes.VATOnProfitDeferred {
		vatAmount = CalculateVATOnProfit(commRes.ProfitAfterCommission, vatRate)
		netProfit = Round2(commRes.ProfitAfterCommission.Sub(vatAmount))
	}

	return BookingFigures{
		NetBeforeVAT:          vatRes.NetBeforeVAT,
		VATAmount:             vatAmount,
		GrossProfit:           vatRes.GrossProfit,
		AgentCommission:       commRes.AgentAmount,
		CSCommission:          commRes.CSAmount,
		TotalCommission:       commRes.Total,
		ProfitAfterCommission: commRes.ProfitAfterCommission,
		NetProfit:             netProfit,
		ProfitMarginPercent:   ProfitMargin(netProfit, sale),
	}
}

// Negate mirrors every monetary field for refund bookings. The margin is a
// ratio of two negated amounts and so carries over unchanged.
func (f BookingFigures) Negate() BookingFigures {
	return BookingFigures{
		NetBeforeVAT:          f.NetBeforeVAT.Neg(),
		VATAmount:             f.VATAmount.Neg(),
		GrossProfit:           f.GrossProfit.Neg(),
		AgentCommission:       f.AgentCommission.Neg(),
		CSCommission:          f.CSCommission.Neg(),
		TotalCommission:       f.TotalCommission.Neg(),
		ProfitAfterCommission: f.ProfitAfterCommission.Neg(),
		NetProfit:             f.NetProfit.Neg(),
		ProfitMarginPercent:   f.ProfitMarginPercent,
	}
}
