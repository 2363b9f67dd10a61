package domain

import (
	"github.com/shopspring/decimal"
)

// InvoiceStatus is derived purely from summed non-cancelled receipts, except
// CANCELLED which is only reached through booking cancellation.
type InvoiceStatus string

const (
	InvoiceUnpaid        InvoiceStatus = "UNPAID"
	InvoicePartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoicePaid          InvoiceStatus = "PAID"
	InvoiceCancelled     InvoiceStatus = "CANCELLED"
)

// Invoice is linked 1:1 to a booking. All amounts are base currency.
// PaidAmount is a derived convenience column, always recomputed from receipts.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"` // Primary Key (UUID)
	InvoiceNumber string          `json:"invoiceNumber"`
	BookingID     string          `json:"bookingID"`
	CustomerID    string          `json:"customerID"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	VATAmount     decimal.Decimal `json:"vatAmount"`
	Total         decimal.Decimal `json:"total"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	Status        InvoiceStatus   `json:"status"`
	Notes         string          `json:"notes"`
	AuditFields
}

// CreditNote records that a collected payment is owed back to the customer
// after a paid invoice was cancelled.
type CreditNote struct {
	CreditNoteID string          `json:"creditNoteID"` // Primary Key (UUID)
	InvoiceID    string          `json:"invoiceID"`
	BookingID    string          `json:"bookingID"` // Original booking reference
	Amount       decimal.Decimal `json:"amount"`
	Reason       string          `json:"reason"`
	AuditFields
}
