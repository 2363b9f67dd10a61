package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is the DB shape of a customer payment.
type Receipt struct {
	ReceiptID           string          `db:"receipt_id"`
	ReceiptNumber       string          `db:"receipt_number"`
	CustomerID          string          `db:"customer_id"`
	InvoiceID           string          `db:"invoice_id"` // Nullable
	Amount              decimal.Decimal `db:"amount"`
	PaymentMethod       string          `db:"payment_method"`
	BankAccountCurrency string          `db:"bank_account_currency"` // Nullable
	ReceiptDate         time.Time       `db:"receipt_date"`
	Status              string          `db:"status"`
	Notes               string          `db:"notes"`
	AuditFields
}
