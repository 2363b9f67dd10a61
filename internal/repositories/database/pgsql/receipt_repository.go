package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/atlasvoyage/travel_accounting_app/internal/apperrors"
	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
	portsrepo "github.com/atlasvoyage/travel_accounting_app/internal/core/ports/repositories"
	"github.com/atlasvoyage/travel_accounting_app/internal/models"
	"github.com/atlasvoyage/travel_accounting_app/internal/utils/mapping"
)

const receiptColumns = `receipt_id, receipt_number, customer_id, invoice_id, amount,
		payment_method, bank_account_currency, receipt_date, status, notes,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxReceiptRepository struct {
	BaseRepository
}

func newPgxReceiptRepository(pool *pgxpool.Pool) *PgxReceiptRepository {
	return &PgxReceiptRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReceiptRepositoryWithTx = (*PgxReceiptRepository)(nil)

func scanReceipt(row rowScanner) (*domain.Receipt, error) {
	var m models.Receipt
	var invoiceID, bankCurrency sql.NullString

	err := row.Scan(
		&m.ReceiptID,
		&m.ReceiptNumber,
		&m.CustomerID,
		&invoiceID,
		&m.Amount,
		&m.PaymentMethod,
		&bankCurrency,
		&m.ReceiptDate,
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
		return nil, fmt.Errorf("failed to scan receipt row: %w", err)
	}

	m.InvoiceID = invoiceID.String
	m.BankAccountCurrency = bankCurrency.String
	receipt := mapping.ToDomainReceipt(m)
	return &receipt, nil
}

func (r *PgxReceiptRepository) SaveReceiptInTx(ctx context.Context, tx pgx.Tx, receipt domain.Receipt) error {
	m := mapping.ToModelReceipt(receipt)
	query := `
		INSERT INTO receipts (` + receiptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		m.ReceiptID,
		m.ReceiptNumber,
		m.CustomerID,
		nullString(m.InvoiceID),
		m.Amount,
		m.PaymentMethod,
		nullString(m.BankAccountCurrency),
		m.ReceiptDate,
		m.Status,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save receipt %s: %w", m.ReceiptNumber, err)
	}
	return nil
}

func (r *PgxReceiptRepository) UpdateReceiptInTx(ctx context.Context, tx pgx.Tx, receipt domain.Receipt) error {
	m := mapping.ToModelReceipt(receipt)
	query := `
		UPDATE receipts
		SET amount = $2, payment_method = $3, bank_account_currency = $4, receipt_date = $5,
			status = $6, notes = $7, last_updated_at = $8, last_updated_by = $9
		WHERE receipt_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.ReceiptID,
		m.Amount,
		m.PaymentMethod,
		nullString(m.BankAccountCurrency),
		m.ReceiptDate,
		m.Status,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update receipt %s: %w", m.ReceiptNumber, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: receipt %s", apperrors.ErrNotFound, m.ReceiptID)
	}
	return nil
}

// SumActiveReceiptsForInvoiceInTx sums non-CANCELLED receipt amounts for an
// invoice inside the caller's transaction, so the total is consistent with
// the locked invoice row.
func (r *PgxReceiptRepository) SumActiveReceiptsForInvoiceInTx(ctx context.Context, tx pgx.Tx, invoiceID string, excludeReceiptID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM receipts
		WHERE invoice_id = $1 AND status <> $2 AND ($3 = '' OR receipt_id <> $3);
	`
	var total decimal.Decimal
	err := tx.QueryRow(ctx, query, invoiceID, string(domain.ReceiptCancelled), excludeReceiptID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum receipts for invoice %s: %w", invoiceID, err)
	}
	return total, nil
}

func (r *PgxReceiptRepository) FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE receipt_id = $1;`
	return scanReceipt(r.Pool.QueryRow(ctx, query, receiptID))
}

func (r *PgxReceiptRepository) ListReceiptsByInvoice(ctx context.Context, invoiceID string) ([]domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE invoice_id = $1 ORDER BY receipt_date, created_at;`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	var receipts []domain.Receipt
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, *receipt)
	}
	return receipts, rows.Err()
}
