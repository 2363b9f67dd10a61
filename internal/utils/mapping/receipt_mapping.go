package mapping

import (
	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
	"github.com/atlasvoyage/travel_accounting_app/internal/models"
)

// ToModelReceipt converts a domain receipt to its DB shape.
func ToModelReceipt(d domain.Receipt) models.Receipt {
	return models.Receipt{
		ReceiptID:           d.ReceiptID,
		ReceiptNumber:       d.ReceiptNumber,
		CustomerID:          d.CustomerID,
		InvoiceID:           d.InvoiceID,
		Amount:              d.Amount,
		PaymentMethod:       string(d.PaymentMethod),
		BankAccountCurrency: d.BankAccountCurrency,
		ReceiptDate:         d.ReceiptDate,
		Status:              string(d.Status),
		Notes:               d.Notes,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReceipt converts a DB receipt row to the domain shape.
func ToDomainReceipt(m models.Receipt) domain.Receipt {
	return domain.Receipt{
		ReceiptID:           m.ReceiptID,
		ReceiptNumber:       m.ReceiptNumber,
		CustomerID:          m.CustomerID,
		InvoiceID:           m.InvoiceID,
		Amount:              m.Amount,
		PaymentMethod:       domain.PaymentMethod(m.PaymentMethod),
		BankAccountCurrency: m.BankAccountCurrency,
		ReceiptDate:         m.ReceiptDate,
		Status:              domain.ReceiptStatus(m.Status),
		Notes:               m.Notes,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}
