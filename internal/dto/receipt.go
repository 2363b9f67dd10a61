package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
)

// CreateReceiptRequest is the payload for recording a customer payment.
type CreateReceiptRequest struct {
	CustomerID          string          `json:"customerID" binding:"required"`
	InvoiceID           string          `json:"invoiceID"`
	Amount              decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod       string          `json:"paymentMethod" binding:"required"`
	BankAccountCurrency string          `json:"bankAccountCurrency" binding:"omitempty,len=3"`
	ReceiptDate         *time.Time      `json:"receiptDate"`
	Notes               string          `json:"notes"`
}

// UpdateReceiptRequest carries the editable fields of a receipt. Nil fields
// are left unchanged.
type UpdateReceiptRequest struct {
	Amount        *decimal.Decimal `json:"amount"`
	PaymentMethod *string          `json:"paymentMethod"`
	Notes         *string          `json:"notes"`
}

// ReceiptResponse is the API shape of a receipt.
type ReceiptResponse struct {
	ReceiptID           string          `json:"receiptID"`
	ReceiptNumber       string          `json:"receiptNumber"`
	CustomerID          string          `json:"customerID"`
	InvoiceID           string          `json:"invoiceID,omitempty"`
	Amount              decimal.Decimal `json:"amount"`
	PaymentMethod       string          `json:"paymentMethod"`
	BankAccountCurrency string          `json:"bankAccountCurrency,omitempty"`
	ReceiptDate         time.Time       `json:"receiptDate"`
	Status              string          `json:"status"`
	Notes               string          `json:"notes,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
}

// ToReceiptResponse converts a domain receipt to its API shape.
func ToReceiptResponse(r *domain.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ReceiptID:           r.ReceiptID,
		ReceiptNumber:       r.ReceiptNumber,
		CustomerID:          r.CustomerID,
		InvoiceID:           r.InvoiceID,
		Amount:              r.Amount,
		PaymentMethod:       string(r.PaymentMethod),
		BankAccountCurrency: r.BankAccountCurrency,
		ReceiptDate:         r.ReceiptDate,
		Status:              string(r.Status),
		Notes:               r.Notes,
		CreatedAt:           r.CreatedAt,
	}
}
