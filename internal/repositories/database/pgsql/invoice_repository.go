package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/atlasvoyage/travel_accounting_app/internal/apperrors"
	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
	portsrepo "github.com/atlasvoyage/travel_accounting_app/internal/core/ports/repositories"
	"github.com/atlasvoyage/travel_accounting_app/internal/models"
	"github.com/atlasvoyage/travel_accounting_app/internal/utils/mapping"
)

const invoiceColumns = `invoice_id, invoice_number, booking_id, customer_id,
		subtotal, vat_amount, total, paid_amount, status, notes,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) *PgxInvoiceRepository {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryWithTx = (*PgxInvoiceRepository)(nil)

func scanInvoice(row rowScanner) (*domain.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.InvoiceNumber,
		&m.BookingID,
		&m.CustomerID,
		&m.Subtotal,
		&m.VATAmount,
		&m.Total,
		&m.PaidAmount,
		&m.Status,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan invoice row: %w", err)
	}
	invoice := mapping.ToDomainInvoice(m)
	return &invoice, nil
}

func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.InvoiceID,
		m.InvoiceNumber,
		m.BookingID,
		m.CustomerID,
		m.Subtotal,
		m.VATAmount,
		m.Total,
		m.PaidAmount,
		m.Status,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: invoice for booking %s", apperrors.ErrDuplicate, m.BookingID)
		}
		return fmt.Errorf("failed to save invoice %s: %w", m.InvoiceNumber, err)
	}
	return nil
}

func (r *PgxInvoiceRepository) UpdateInvoiceAmounts(ctx context.Context, invoiceID string, subtotal, vat, total decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE invoices
		SET subtotal = $2, vat_amount = $3, total = $4, last_updated_at = $5, last_updated_by = $6
		WHERE invoice_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, invoiceID, subtotal, vat, total, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update invoice %s amounts: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoiceID)
	}
	return nil
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`
	return scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
}

func (r *PgxInvoiceRepository) FindInvoiceByBookingID(ctx context.Context, bookingID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE booking_id = $1;`
	return scanInvoice(r.Pool.QueryRow(ctx, query, bookingID))
}

func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, limit int, offset int) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY created_at DESC LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *invoice)
	}
	return invoices, rows.Err()
}

// FindInvoiceByIDForUpdate locks the invoice row until the caller's
// transaction ends, serialising concurrent reconciliation on one invoice.
func (r *PgxInvoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1 FOR UPDATE;`
	return scanInvoice(tx.QueryRow(ctx, query, invoiceID))
}

func (r *PgxInvoiceRepository) UpdateInvoiceStatusAndPaidInTx(ctx context.Context, tx pgx.Tx, invoiceID string, status domain.InvoiceStatus, paidAmount decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE invoices
		SET status = $2, paid_amount = $3, last_updated_at = $4, last_updated_by = $5
		WHERE invoice_id = $1;
	`
	tag, err := tx.Exec(ctx, query, invoiceID, string(status), paidAmount, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update invoice %s status: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoiceID)
	}
	return nil
}

func (r *PgxInvoiceRepository) SaveCreditNoteInTx(ctx context.Context, tx pgx.Tx, note domain.CreditNote) error {
	m := mapping.ToModelCreditNote(note)
	query := `
		INSERT INTO credit_notes (credit_note_id, invoice_id, booking_id, amount, reason,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		m.CreditNoteID,
		m.InvoiceID,
		m.BookingID,
		m.Amount,
		m.Reason,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save credit note for invoice %s: %w", m.InvoiceID, err)
	}
	return nil
}
