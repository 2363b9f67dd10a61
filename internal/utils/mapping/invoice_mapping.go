package mapping

import (
	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
	"github.com/atlasvoyage/travel_accounting_app/internal/models"
)

// ToModelInvoice converts a domain invoice to its DB shape.
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:     d.InvoiceID,
		InvoiceNumber: d.InvoiceNumber,
		BookingID:     d.BookingID,
		CustomerID:    d.CustomerID,
		Subtotal:      d.Subtotal,
		VATAmount:     d.VATAmount,
		Total:         d.Total,
		PaidAmount:    d.PaidAmount,
		Status:        string(d.Status),
		Notes:         d.Notes,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a DB invoice row to the domain shape.
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     m.InvoiceID,
		InvoiceNumber: m.InvoiceNumber,
		BookingID:     m.BookingID,
		CustomerID:    m.CustomerID,
		Subtotal:      m.Subtotal,
		VATAmount:     m.VATAmount,
		Total:         m.Total,
		PaidAmount:    m.PaidAmount,
		Status:        domain.InvoiceStatus(m.Status),
		Notes:         m.Notes,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCreditNote converts a domain credit note to its DB shape.
func ToModelCreditNote(d domain.CreditNote) models.CreditNote {
	return models.CreditNote{
		CreditNoteID: d.CreditNoteID,
		InvoiceID:    d.InvoiceID,
		BookingID:    d.BookingID,
		Amount:       d.Amount,
		Reason:       d.Reason,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCreditNote converts a DB credit-note row to the domain shape.
func ToDomainCreditNote(m models.CreditNote) domain.CreditNote {
	return domain.CreditNote{
		CreditNoteID: m.CreditNoteID,
		InvoiceID:    m.InvoiceID,
		BookingID:    m.BookingID,
		Amount:       m.Amount,
		Reason:       m.Reason,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
