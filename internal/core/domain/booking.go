package domain

import (
	"github.com/shopspring/decimal"
)

// ServiceType classifies the travel product a booking covers.
type ServiceType string

const (
	ServiceFlight   ServiceType = "FLIGHT"
	ServiceHotel    ServiceType = "HOTEL"
	ServiceVisa     ServiceType = "VISA"
	ServicePackage  ServiceType = "PACKAGE"
	ServiceTransfer ServiceType = "TRANSFER"
	ServiceOther    ServiceType = "OTHER"
)

// BookingStatus indicates where a booking is in its lifecycle.
type BookingStatus string

const (
	BookingPendingReview BookingStatus = "PENDING_REVIEW"
	BookingConfirmed     BookingStatus = "CONFIRMED"
	BookingComplete      BookingStatus = "COMPLETE"
	BookingCancelled     BookingStatus = "CANCELLED"
	BookingRefunded      BookingStatus = "REFUNDED"
)

// Booking holds a travel booking's commercial amounts plus everything the
// calculator derives from them. Amounts suffixed Base are in the base
// currency; the raw cost/sale keep their original currency.
type Booking struct {
	BookingID     string      `json:"bookingID"` // Primary Key (UUID)
	BookingNumber string      `json:"bookingNumber"`
	ServiceType   ServiceType `json:"serviceType"`
	CustomerID    string      `json:"customerID"`
	EmployeeID    string      `json:"employeeID"` // Assigned sales employee, nullable

	CostAmount   decimal.Decimal `json:"costAmount"`
	CostCurrency string          `json:"costCurrency"`
	SaleAmount   decimal.Decimal `json:"saleAmount"`
	SaleCurrency string          `json:"saleCurrency"`
	CostBase     decimal.Decimal `json:"costBase"`
	SaleBase     decimal.Decimal `json:"saleBase"`

	IsUAE         bool            `json:"isUAE"`
	VATApplicable bool            `json:"vatApplicable"`
	VATRate       decimal.Decimal `json:"vatRate"`

	NetBeforeVAT decimal.Decimal `json:"netBeforeVAT"`
	VATAmount    decimal.Decimal `json:"vatAmount"`
	GrossProfit  decimal.Decimal `json:"grossProfit"`
	NetProfit    decimal.Decimal `json:"netProfit"`

	AgentCommissionRate   decimal.Decimal `json:"agentCommissionRate"`
	AgentCommissionAmount decimal.Decimal `json:"agentCommissionAmount"`
	CSCommissionRate      decimal.Decimal `json:"csCommissionRate"`
	CSCommissionAmount    decimal.Decimal `json:"csCommissionAmount"`
	TotalCommission       decimal.Decimal `json:"totalCommission"`

	Status BookingStatus `json:"status"`
	Notes  string        `json:"notes"`

	// RefundOfBookingID links a REFUNDED mirror booking back to its original.
	RefundOfBookingID string `json:"refundOfBookingID"`

	SupplierLines []BookingSupplierLine `json:"supplierLines,omitempty"`
	AuditFields
}

// BookingSummary aggregates base-currency totals over all bookings. Refund
// mirrors carry negative amounts, so cancelled business nets out of the
// totals while still counting towards BookingCount.
type BookingSummary struct {
	TotalCost       decimal.Decimal `json:"totalCost"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	TotalProfit     decimal.Decimal `json:"totalProfit"`
	TotalVAT        decimal.Decimal `json:"totalVAT"`
	TotalCommission decimal.Decimal `json:"totalCommission"`
	BookingCount    int64           `json:"bookingCount"`
}

// BookingSupplierLine is one supplier's share of a multi-supplier booking cost.
type BookingSupplierLine struct {
	LineID       string          `json:"lineID"` // Primary Key (UUID)
	BookingID    string          `json:"bookingID"`
	SupplierName string          `json:"supplierName"`
	CostAmount   decimal.Decimal `json:"costAmount"`
	CostCurrency string          `json:"costCurrency"`
	CostBase     decimal.Decimal `json:"costBase"`
	AuditFields
}
