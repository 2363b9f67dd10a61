package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
)

// InvoiceResponse is the API shape of an invoice.
type InvoiceResponse struct {
	InvoiceID     string          `json:"invoiceID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	BookingID     string          `json:"bookingID"`
	CustomerID    string          `json:"customerID"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	VATAmount     decimal.Decimal `json:"vatAmount"`
	Total         decimal.Decimal `json:"total"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToInvoiceResponse converts a domain invoice to its API shape.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		InvoiceNumber: inv.InvoiceNumber,
		BookingID:     inv.BookingID,
		CustomerID:    inv.CustomerID,
		Subtotal:      inv.Subtotal,
		VATAmount:     inv.VATAmount,
		Total:         inv.Total,
		PaidAmount:    inv.PaidAmount,
		Status:        string(inv.Status),
		Notes:         inv.Notes,
		CreatedAt:     inv.CreatedAt,
	}
}

// ListInvoicesParams holds parameters for listing invoices.
type ListInvoicesParams struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// ListInvoicesResponse is a page of invoices.
type ListInvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}
