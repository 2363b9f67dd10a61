package models

import (
	"github.com/shopspring/decimal"
)

// Invoice is the DB shape of an invoice row. paid_amount is derived and is
// always recomputed from receipts, never treated as authoritative.
type Invoice struct {
	InvoiceID     string          `db:"invoice_id"`
	InvoiceNumber string          `db:"invoice_number"`
	BookingID     string          `db:"booking_id"`
	CustomerID    string          `db:"customer_id"`
	Subtotal      decimal.Decimal `db:"subtotal"`
	VATAmount     decimal.Decimal `db:"vat_amount"`
	Total         decimal.Decimal `db:"total"`
	PaidAmount    decimal.Decimal `db:"paid_amount"`
	Status        string          `db:"status"`
	Notes         string          `db:"notes"`
	AuditFields
}

// CreditNote is the DB shape of a credit-note annotation.
type CreditNote struct {
	CreditNoteID string          `db:"credit_note_id"`
	InvoiceID    string          `db:"invoice_id"`
	BookingID    string          `db:"booking_id"`
	Amount       decimal.Decimal `db:"amount"`
	Reason       string          `db:"reason"`
	AuditFields
}
