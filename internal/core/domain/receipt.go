package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod selects which cash or bank account a receipt posts against.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentCard         PaymentMethod = "CARD"
	PaymentCheque       PaymentMethod = "CHEQUE"
)

// ReceiptStatus marks whether a receipt still counts towards reconciliation.
type ReceiptStatus string

const (
	ReceiptActive    ReceiptStatus = "ACTIVE"
	ReceiptCancelled ReceiptStatus = "CANCELLED"
)

// Receipt is a customer payment, optionally allocated to one invoice.
// CANCELLED receipts are excluded from reconciliation sums.
type Receipt struct {
	ReceiptID           string          `json:"receiptID"` // Primary Key (UUID)
	ReceiptNumber       string          `json:"receiptNumber"`
	CustomerID          string          `json:"customerID"`
	InvoiceID           string          `json:"invoiceID"` // Nullable allocation
	Amount              decimal.Decimal `json:"amount"`    // Base currency
	PaymentMethod       PaymentMethod   `json:"paymentMethod"`
	BankAccountCurrency string          `json:"bankAccountCurrency"` // Nullable, refines cash account selection
	ReceiptDate         time.Time       `json:"receiptDate"`
	Status              ReceiptStatus   `json:"status"`
	Notes               string          `json:"notes"`
	AuditFields
}
