package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
)

// ReceiptReader defines read operations for receipts.
type ReceiptReader interface {
	// FindReceiptByID retrieves a specific receipt by its unique identifier.
	FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error)

	// ListReceiptsByInvoice retrieves all receipts allocated to an invoice.
	ListReceiptsByInvoice(ctx context.Context, invoiceID string) ([]domain.Receipt, error)
}

// ReceiptTxSupport defines receipt writes that join a caller-owned
// transaction; reconciliation wraps receipt write, invoice status and
// booking cascade in one transaction.
type ReceiptTxSupport interface {
	SaveReceiptInTx(ctx context.Context, tx pgx.Tx, receipt domain.Receipt) error
	UpdateReceiptInTx(ctx context.Context, tx pgx.Tx, receipt domain.Receipt) error

	// SumActiveReceiptsForInvoiceInTx sums non-CANCELLED receipt amounts for
	// an invoice, optionally excluding one receipt (the candidate of an
	// update, for the overpayment guard).
	SumActiveReceiptsForInvoiceInTx(ctx context.Context, tx pgx.Tx, invoiceID string, excludeReceiptID string) (decimal.Decimal, error)
}

// ReceiptRepositoryFacade combines all receipt-related repository interfaces.
type ReceiptRepositoryFacade interface {
	ReceiptReader
	ReceiptTxSupport
}

// ReceiptRepositoryWithTx extends ReceiptRepositoryFacade with transaction capabilities.
type ReceiptRepositoryWithTx interface {
	ReceiptRepositoryFacade
	TransactionManager
}
