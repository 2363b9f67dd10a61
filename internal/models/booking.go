package models

import (
	"github.com/shopspring/decimal"
)

// Booking is the DB shape of a booking row.
type Booking struct {
	BookingID     string `db:"booking_id"`
	BookingNumber string `db:"booking_number"`
	ServiceType   string `db:"service_type"`
	CustomerID    string `db:"customer_id"`
	EmployeeID    string `db:"employee_id"` // Nullable

	CostAmount   decimal.Decimal `db:"cost_amount"`
	CostCurrency string          `db:"cost_currency"`
	SaleAmount   decimal.Decimal `db:"sale_amount"`
	SaleCurrency string          `db:"sale_currency"`
	CostBase     decimal.Decimal `db:"cost_base"`
	SaleBase     decimal.Decimal `db:"sale_base"`

	IsUAE         bool            `db:"is_uae"`
	VATApplicable bool            `db:"vat_applicable"`
	VATRate       decimal.Decimal `db:"vat_rate"`

	NetBeforeVAT decimal.Decimal `db:"net_before_vat"`
	VATAmount    decimal.Decimal `db:"vat_amount"`
	GrossProfit  decimal.Decimal `db:"gross_profit"`
	NetProfit    decimal.Decimal `db:"net_profit"`

	AgentCommissionRate   decimal.Decimal `db:"agent_commission_rate"`
	AgentCommissionAmount decimal.Decimal `db:"agent_commission_amount"`
	CSCommissionRate      decimal.Decimal `db:"cs_commission_rate"`
	CSCommissionAmount    decimal.Decimal `db:"cs_commission_amount"`
	TotalCommission       decimal.Decimal `db:"total_commission"`

	Status            string `db:"status"`
	Notes             string `db:"notes"`
	RefundOfBookingID string `db:"refund_of_booking_id"` // Nullable

	AuditFields
}

// BookingSupplierLine is the DB shape of a supplier cost split line.
type BookingSupplierLine struct {
	LineID       string          `db:"line_id"`
	BookingID    string          `db:"booking_id"`
	SupplierName string          `db:"supplier_name"`
	CostAmount   decimal.Decimal `db:"cost_amount"`
	CostCurrency string          `db:"cost_currency"`
	CostBase     decimal.Decimal `db:"cost_base"`
	AuditFields
}
