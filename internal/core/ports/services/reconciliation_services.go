package services

import (
	"context"

	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
	"github.com/atlasvoyage/travel_accounting_app/internal/dto"
)

// ReconciliationSvc matches customer receipts against invoices and keeps
// invoice status and paid amounts consistent.
type ReconciliationSvc interface {
	// RecordReceipt validates a payment against the invoice's outstanding
	// balance, persists the receipt, updates the invoice atomically and
	// posts the cash entry.
	RecordReceipt(ctx context.Context, req dto.CreateReceiptRequest, userID string) (*domain.Receipt, error)

	// UpdateReceipt amends an active receipt and re-reconciles the invoice.
	UpdateReceipt(ctx context.Context, receiptID string, req dto.UpdateReceiptRequest, userID string) (*domain.Receipt, error)

	// CancelReceipt marks a receipt CANCELLED, re-reconciles the invoice
	// and reverses the receipt's cash entry.
	CancelReceipt(ctx context.Context, receiptID string, userID string) error

	// GetReceiptByID retrieves a specific receipt by its ID.
	GetReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error)

	// ListReceiptsForInvoice lists all receipts recorded against an invoice.
	ListReceiptsForInvoice(ctx context.Context, invoiceID string) ([]domain.Receipt, error)

	// GetInvoiceByID retrieves a specific invoice by its ID.
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a paginated list of invoices.
	ListInvoices(ctx context.Context, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)
}
