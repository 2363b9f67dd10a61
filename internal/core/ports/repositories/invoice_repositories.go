package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
)

// InvoiceReader defines read operations for invoices.
type InvoiceReader interface {
	// FindInvoiceByID retrieves a specific invoice by its unique identifier.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// FindInvoiceByBookingID retrieves the invoice linked to a booking, if any.
	FindInvoiceByBookingID(ctx context.Context, bookingID string) (*domain.Invoice, error)

	// ListInvoices retrieves a paginated list of invoices.
	ListInvoices(ctx context.Context, limit int, offset int) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoices.
type InvoiceWriter interface {
	// SaveInvoice persists a new invoice.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoiceAmounts replaces an invoice's subtotal/vat/total after a
	// booking financial edit.
	UpdateInvoiceAmounts(ctx context.Context, invoiceID string, subtotal, vat, total decimal.Decimal, userID string, now time.Time) error
}

// InvoiceTxSupport defines invoice writes that join a caller-owned
// transaction so reconciliation and cancellation stay atomic end to end.
type InvoiceTxSupport interface {
	// FindInvoiceByIDForUpdate locks the invoice row for the span of the transaction.
	FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error)

	// UpdateInvoiceStatusAndPaidInTx writes the derived status and paid amount.
	UpdateInvoiceStatusAndPaidInTx(ctx context.Context, tx pgx.Tx, invoiceID string, status domain.InvoiceStatus, paidAmount decimal.Decimal, userID string, now time.Time) error

	// SaveCreditNoteInTx records a credit-note annotation for a cancelled paid invoice.
	SaveCreditNoteInTx(ctx context.Context, tx pgx.Tx, note domain.CreditNote) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
	InvoiceTxSupport
}

// InvoiceRepositoryWithTx extends InvoiceRepositoryFacade with transaction capabilities.
type InvoiceRepositoryWithTx interface {
	InvoiceRepositoryFacade
	TransactionManager
}
