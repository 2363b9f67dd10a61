package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
	"github.com/atlasvoyage/travel_accounting_app/internal/utils/finance"
)

// CreateSupplierLineRequest is one supplier's cost share on a new booking.
type CreateSupplierLineRequest struct {
	SupplierName string          `json:"supplierName" binding:"required"`
	CostAmount   decimal.Decimal `json:"costAmount" binding:"required"`
	CostCurrency string          `json:"costCurrency" binding:"required,len=3"`
}

// CreateBookingRequest is the payload for creating a booking.
type CreateBookingRequest struct {
	ServiceType   string           `json:"serviceType" binding:"required"`
	CustomerID    string           `json:"customerID" binding:"required"`
	EmployeeID    string           `json:"employeeID"`
	CostAmount    decimal.Decimal  `json:"costAmount"`
	CostCurrency  string           `json:"costCurrency" binding:"required,len=3"`
	SaleAmount    decimal.Decimal  `json:"saleAmount" binding:"required"`
	SaleCurrency  string           `json:"saleCurrency" binding:"required,len=3"`
	IsUAE         bool             `json:"isUAE"`
	VATApplicable bool             `json:"vatApplicable"`
	VATRate       *decimal.Decimal `json:"vatRate"` // Nil falls back to the configured default

	AgentCommissionRate *decimal.Decimal `json:"agentCommissionRate"`
	CSCommissionRate    *decimal.Decimal `json:"csCommissionRate"`

	Notes         string                      `json:"notes"`
	SupplierLines []CreateSupplierLineRequest `json:"supplierLines" binding:"omitempty,dive"`
}

// UpdateBookingFinancialsRequest carries the editable financial inputs of a
// booking. Nil fields are left unchanged.
type UpdateBookingFinancialsRequest struct {
	CostAmount          *decimal.Decimal `json:"costAmount"`
	SaleAmount          *decimal.Decimal `json:"saleAmount"`
	VATRate             *decimal.Decimal `json:"vatRate"`
	AgentCommissionRate *decimal.Decimal `json:"agentCommissionRate"`
	CSCommissionRate    *decimal.Decimal `json:"csCommissionRate"`
}

// CancelBookingRequest carries the reason recorded on cancellation.
type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CancelBookingResponse reports the refund booking spawned by a cancellation.
type CancelBookingResponse struct {
	BookingID           string `json:"bookingID"`
	RefundBookingID     string `json:"refundBookingID"`
	RefundBookingNumber string `json:"refundBookingNumber"`
}

// SupplierLineResponse is the API shape of a supplier cost line.
type SupplierLineResponse struct {
	LineID       string          `json:"lineID"`
	SupplierName string          `json:"supplierName"`
	CostAmount   decimal.Decimal `json:"costAmount"`
	CostCurrency string          `json:"costCurrency"`
	CostBase     decimal.Decimal `json:"costBase"`
}

// BookingResponse is the API shape of a booking.
type BookingResponse struct {
	BookingID     string `json:"bookingID"`
	BookingNumber string `json:"bookingNumber"`
	ServiceType   string `json:"serviceType"`
	CustomerID    string `json:"customerID"`
	EmployeeID    string `json:"employeeID,omitempty"`

	CostAmount   decimal.Decimal `json:"costAmount"`
	CostCurrency string          `json:"costCurrency"`
	SaleAmount   decimal.Decimal `json:"saleAmount"`
	SaleCurrency string          `json:"saleCurrency"`
	CostBase     decimal.Decimal `json:"costBase"`
	SaleBase     decimal.Decimal `json:"saleBase"`

	IsUAE         bool            `json:"isUAE"`
	VATApplicable bool            `json:"vatApplicable"`
	VATRate       decimal.Decimal `json:"vatRate"`

	NetBeforeVAT        decimal.Decimal `json:"netBeforeVAT"`
	VATAmount           decimal.Decimal `json:"vatAmount"`
	GrossProfit         decimal.Decimal `json:"grossProfit"`
	NetProfit           decimal.Decimal `json:"netProfit"`
	ProfitMarginPercent decimal.Decimal `json:"profitMarginPercent"`

	AgentCommissionRate   decimal.Decimal `json:"agentCommissionRate"`
	AgentCommissionAmount decimal.Decimal `json:"agentCommissionAmount"`
	CSCommissionRate      decimal.Decimal `json:"csCommissionRate"`
	CSCommissionAmount    decimal.Decimal `json:"csCommissionAmount"`
	TotalCommission       decimal.Decimal `json:"totalCommission"`

	Status            string                 `json:"status"`
	Notes             string                 `json:"notes,omitempty"`
	RefundOfBookingID string                 `json:"refundOfBookingID,omitempty"`
	SupplierLines     []SupplierLineResponse `json:"supplierLines,omitempty"`
	CreatedAt         time.Time              `json:"createdAt"`
	CreatedBy         string                 `json:"createdBy"`
}

// ListBookingsParams holds parameters for listing bookings.
type ListBookingsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListBookingsResponse is a page of bookings plus the next-page token.
type ListBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToBookingResponse converts a domain booking to its API shape.
func ToBookingResponse(b *domain.Booking) BookingResponse {
	resp := BookingResponse{
		BookingID:             b.BookingID,
		BookingNumber:         b.BookingNumber,
		ServiceType:           string(b.ServiceType),
		CustomerID:            b.CustomerID,
		EmployeeID:            b.EmployeeID,
		CostAmount:            b.CostAmount,
		CostCurrency:          b.CostCurrency,
		SaleAmount:            b.SaleAmount,
		SaleCurrency:          b.SaleCurrency,
		CostBase:              b.CostBase,
		SaleBase:              b.SaleBase,
		IsUAE:                 b.IsUAE,
		VATApplicable:         b.VATApplicable,
		VATRate:               b.VATRate,
		NetBeforeVAT:          b.NetBeforeVAT,
		VATAmount:             b.VATAmount,
		GrossProfit:           b.GrossProfit,
		NetProfit:             b.NetProfit,
		ProfitMarginPercent:   finance.ProfitMargin(b.NetProfit, b.SaleBase),
		AgentCommissionRate:   b.AgentCommissionRate,
		AgentCommissionAmount: b.AgentCommissionAmount,
		CSCommissionRate:      b.CSCommissionRate,
		CSCommissionAmount:    b.CSCommissionAmount,
		TotalCommission:       b.TotalCommission,
		Status:                string(b.Status),
		Notes:                 b.Notes,
		RefundOfBookingID:     b.RefundOfBookingID,
		CreatedAt:             b.CreatedAt,
		CreatedBy:             b.CreatedBy,
	}
	for _, line := range b.SupplierLines {
		resp.SupplierLines = append(resp.SupplierLines, SupplierLineResponse{
			LineID:       line.LineID,
			SupplierName: line.SupplierName,
			CostAmount:   line.CostAmount,
			CostCurrency: line.CostCurrency,
			CostBase:     line.CostBase,
		})
	}
	return resp
}
