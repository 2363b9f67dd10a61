package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atlasvoyage/travel_accounting_app/internal/apperrors"
	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
	portsrepo "github.com/atlasvoyage/travel_accounting_app/internal/core/ports/repositories"
	"github.com/atlasvoyage/travel_accounting_app/internal/models"
	"github.com/atlasvoyage/travel_accounting_app/internal/utils/mapping"
	"github.com/atlasvoyage/travel_accounting_app/internal/utils/pagination"
)

const bookingColumns = `booking_id, booking_number, service_type, customer_id, employee_id,
		cost_amount, cost_currency, sale_amount, sale_currency, cost_base, sale_base,
		is_uae, vat_applicable, vat_rate,
		net_before_vat, vat_amount, gross_profit, net_profit,
		agent_commission_rate, agent_commission_amount, cs_commission_rate, cs_commission_amount, total_commission,
		status, notes, refund_of_booking_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxBookingRepository struct {
	BaseRepository
}

func newPgxBookingRepository(pool *pgxpool.Pool) *PgxBookingRepository {
	return &PgxBookingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BookingRepositoryWithTx = (*PgxBookingRepository)(nil)

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var m models.Booking
	var employeeID, refundOf sql.NullString

	err := row.Scan(
		&m.BookingID,
		&m.BookingNumber,
		&m.ServiceType,
		&m.CustomerID,
		&employeeID,
		&m.CostAmount,
		&m.CostCurrency,
		&m.SaleAmount,
		&m.SaleCurrency,
		&m.CostBase,
		&m.SaleBase,
		&m.IsUAE,
		&m.VATApplicable,
		&m.VATRate,
		&m.NetBeforeVAT,
		&m.VATAmount,
		&m.GrossProfit,
		&m.NetProfit,
		&m.AgentCommissionRate,
		&m.AgentCommissionAmount,
		&m.CSCommissionRate,
		&m.CSCommissionAmount,
		&m.TotalCommission,
		&m.Status,
		&m.Notes,
		&refundOf,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan booking row: %w", err)
	}

	m.EmployeeID = employeeID.String
	m.RefundOfBookingID = refundOf.String
	booking := mapping.ToDomainBooking(m)
	return &booking, nil
}

func (r *PgxBookingRepository) insertBooking(ctx context.Context, tx pgx.Tx, booking domain.Booking) error {
	m := mapping.ToModelBooking(booking)

	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30);
	`
	_, err := tx.Exec(ctx, query,
		m.BookingID,
		m.BookingNumber,
		m.ServiceType,
		m.CustomerID,
		nullString(m.EmployeeID),
		m.CostAmount,
		m.CostCurrency,
		m.SaleAmount,
		m.SaleCurrency,
		m.CostBase,
		m.SaleBase,
		m.IsUAE,
		m.VATApplicable,
		m.VATRate,
		m.NetBeforeVAT,
		m.VATAmount,
		m.GrossProfit,
		m.NetProfit,
		m.AgentCommissionRate,
		m.AgentCommissionAmount,
		m.CSCommissionRate,
		m.CSCommissionAmount,
		m.TotalCommission,
		m.Status,
		m.Notes,
		nullString(m.RefundOfBookingID),
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: booking number %s", apperrors.ErrDuplicate, m.BookingNumber)
		}
		return fmt.Errorf("failed to save booking %s: %w", m.BookingNumber, err)
	}

	for _, line := range booking.SupplierLines {
		lm := mapping.ToModelSupplierLine(line)
		_, err := tx.Exec(ctx, `
			INSERT INTO booking_supplier_lines (line_id, booking_id, supplier_name, cost_amount, cost_currency, cost_base,
				created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
		`,
			lm.LineID,
			lm.BookingID,
			lm.SupplierName,
			lm.CostAmount,
			lm.CostCurrency,
			lm.CostBase,
			lm.CreatedAt,
			lm.CreatedBy,
			lm.LastUpdatedAt,
			lm.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to save supplier line for booking %s: %w", m.BookingNumber, err)
		}
	}
	return nil
}

func (r *PgxBookingRepository) SaveBooking(ctx context.Context, booking domain.Booking) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := r.insertBooking(ctx, tx, booking); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxBookingRepository) SaveBookingInTx(ctx context.Context, tx pgx.Tx, booking domain.Booking) error {
	return r.insertBooking(ctx, tx, booking)
}

// UpdateBooking replaces the financial and commission columns and the
// supplier lines. Lines are replaced wholesale; journal history carries the
// old figures through reversal entries, not through line versioning.
func (r *PgxBookingRepository) UpdateBooking(ctx context.Context, booking domain.Booking) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	m := mapping.ToModelBooking(booking)
	query := `
		UPDATE bookings
		SET cost_amount = $2, cost_currency = $3, sale_amount = $4, sale_currency = $5,
			cost_base = $6, sale_base = $7, is_uae = $8, vat_applicable = $9, vat_rate = $10,
			net_before_vat = $11, vat_amount = $12, gross_profit = $13, net_profit = $14,
			agent_commission_rate = $15, agent_commission_amount = $16,
			cs_commission_rate = $17, cs_commission_amount = $18, total_commission = $19,
			status = $20, notes = $21, last_updated_at = $22, last_updated_by = $23
		WHERE booking_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.BookingID,
		m.CostAmount,
		m.CostCurrency,
		m.SaleAmount,
		m.SaleCurrency,
		m.CostBase,
		m.SaleBase,
		m.IsUAE,
		m.VATApplicable,
		m.VATRate,
		m.NetBeforeVAT,
		m.VATAmount,
		m.GrossProfit,
		m.NetProfit,
		m.AgentCommissionRate,
		m.AgentCommissionAmount,
		m.CSCommissionRate,
		m.CSCommissionAmount,
		m.TotalCommission,
		m.Status,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking %s: %w", m.BookingNumber, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: booking %s", apperrors.ErrNotFound, m.BookingID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM booking_supplier_lines WHERE booking_id = $1;`, m.BookingID); err != nil {
		return fmt.Errorf("failed to clear supplier lines for booking %s: %w", m.BookingNumber, err)
	}
	for _, line := range booking.SupplierLines {
		lm := mapping.ToModelSupplierLine(line)
		_, err := tx.Exec(ctx, `
			INSERT INTO booking_supplier_lines (line_id, booking_id, supplier_name, cost_amount, cost_currency, cost_base,
				created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
		`,
			lm.LineID,
			lm.BookingID,
			lm.SupplierName,
			lm.CostAmount,
			lm.CostCurrency,
			lm.CostBase,
			lm.CreatedAt,
			lm.CreatedBy,
			lm.LastUpdatedAt,
			lm.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to save supplier line for booking %s: %w", m.BookingNumber, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxBookingRepository) updateStatus(ctx context.Context, q queryExecutor, bookingID string, status domain.BookingStatus, note string, userID string, now time.Time) error {
	query := `
		UPDATE bookings
		SET status = $2,
			notes = CASE WHEN $3 = '' THEN notes
				WHEN notes = '' THEN $3
				ELSE notes || E'\n' || $3 END,
			last_updated_at = $4, last_updated_by = $5
		WHERE booking_id = $1;
	`
	tag, err := q.Exec(ctx, query, bookingID, string(status), note, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status of booking %s: %w", bookingID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: booking %s", apperrors.ErrNotFound, bookingID)
	}
	return nil
}

func (r *PgxBookingRepository) UpdateBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus, note string, userID string, now time.Time) error {
	return r.updateStatus(ctx, r.Pool, bookingID, status, note, userID, now)
}

func (r *PgxBookingRepository) UpdateBookingStatusInTx(ctx context.Context, tx pgx.Tx, bookingID string, status domain.BookingStatus, note string, userID string, now time.Time) error {
	return r.updateStatus(ctx, tx, bookingID, status, note, userID, now)
}

func (r *PgxBookingRepository) FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = $1;`
	booking, err := scanBooking(r.Pool.QueryRow(ctx, query, bookingID))
	if err != nil {
		return nil, err
	}

	lines, err := r.findSupplierLines(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	booking.SupplierLines = lines
	return booking, nil
}

func (r *PgxBookingRepository) findSupplierLines(ctx context.Context, bookingID string) ([]domain.BookingSupplierLine, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT line_id, booking_id, supplier_name, cost_amount, cost_currency, cost_base,
			created_at, created_by, last_updated_at, last_updated_by
		FROM booking_supplier_lines WHERE booking_id = $1 ORDER BY supplier_name, line_id;
	`, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query supplier lines for booking %s: %w", bookingID, err)
	}
	defer rows.Close()

	var lines []domain.BookingSupplierLine
	for rows.Next() {
		var lm models.BookingSupplierLine
		err := rows.Scan(
			&lm.LineID,
			&lm.BookingID,
			&lm.SupplierName,
			&lm.CostAmount,
			&lm.CostCurrency,
			&lm.CostBase,
			&lm.CreatedAt,
			&lm.CreatedBy,
			&lm.LastUpdatedAt,
			&lm.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supplier line row: %w", err)
		}
		lines = append(lines, mapping.ToDomainSupplierLine(lm))
	}
	return lines, rows.Err()
}

func (r *PgxBookingRepository) ListBookings(ctx context.Context, limit int, nextToken *string) ([]domain.Booking, *string, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE ($2::timestamptz IS NULL OR created_at < $2)
		ORDER BY created_at DESC
		LIMIT $1;
	`

	var cursor any
	if nextToken != nil && *nextToken != "" {
		_, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		cursor = createdAt
	}

	rows, err := r.Pool.Query(ctx, query, limit, cursor)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, nil, err
		}
		bookings = append(bookings, *booking)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var token *string
	if len(bookings) == limit {
		last := bookings[len(bookings)-1]
		t := pagination.EncodeToken(last.CreatedAt, last.CreatedAt)
		token = &t
	}
	return bookings, token, nil
}

func (r *PgxBookingRepository) SummarizeBookings(ctx context.Context) (*domain.BookingSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(cost_base), 0),
			COALESCE(SUM(sale_base), 0),
			COALESCE(SUM(net_profit), 0),
			COALESCE(SUM(vat_amount), 0),
			COALESCE(SUM(total_commission), 0),
			COUNT(*)
		FROM bookings;
	`

	var summary domain.BookingSummary
	err := r.Pool.QueryRow(ctx, query).Scan(
		&summary.TotalCost,
		&summary.TotalRevenue,
		&summary.TotalProfit,
		&summary.TotalVAT,
		&summary.TotalCommission,
		&summary.BookingCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize bookings: %w", err)
	}
	return &summary, nil
}
