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

const employeeColumns = `employee_id, name, email, default_commission_rate, password_hash, is_active,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxEmployeeRepository struct {
	BaseRepository
}

func newPgxEmployeeRepository(pool *pgxpool.Pool) *PgxEmployeeRepository {
	return &PgxEmployeeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EmployeeRepositoryFacade = (*PgxEmployeeRepository)(nil)

func scanEmployee(row rowScanner) (*domain.Employee, error) {
	var m models.Employee
	var rate decimal.NullDecimal

	err := row.Scan(
		&m.EmployeeID,
		&m.Name,
		&m.Email,
		&rate,
		&m.PasswordHash,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan employee row: %w", err)
	}

	if rate.Valid {
		m.DefaultCommissionRate = &rate.Decimal
	}
	employee := mapping.ToDomainEmployee(m)
	return &employee, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func (r *PgxEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	m := mapping.ToModelEmployee(employee)
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EmployeeID,
		m.Name,
		m.Email,
		nullDecimal(m.DefaultCommissionRate),
		m.PasswordHash,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: employee email %s", apperrors.ErrDuplicate, m.Email)
		}
		return fmt.Errorf("failed to save employee %s: %w", m.EmployeeID, err)
	}
	return nil
}

func (r *PgxEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	m := mapping.ToModelEmployee(employee)
	query := `
		UPDATE employees
		SET name = $2, email = $3, default_commission_rate = $4, password_hash = $5, is_active = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE employee_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.EmployeeID,
		m.Name,
		m.Email,
		nullDecimal(m.DefaultCommissionRate),
		m.PasswordHash,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: employee email %s", apperrors.ErrDuplicate, m.Email)
		}
		return fmt.Errorf("failed to update employee %s: %w", m.EmployeeID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: employee %s", apperrors.ErrNotFound, m.EmployeeID)
	}
	return nil
}

func (r *PgxEmployeeRepository) DeactivateEmployee(ctx context.Context, employeeID string, userID string, now time.Time) error {
	query := `
		UPDATE employees SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE employee_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, employeeID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate employee %s: %w", employeeID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: employee %s", apperrors.ErrNotFound, employeeID)
	}
	return nil
}

func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1;`
	return scanEmployee(r.Pool.QueryRow(ctx, query, employeeID))
}

func (r *PgxEmployeeRepository) FindEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email = $1;`
	return scanEmployee(r.Pool.QueryRow(ctx, query, email))
}

func (r *PgxEmployeeRepository) ListEmployees(ctx context.Context, limit int, offset int) ([]domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY name LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *employee)
	}
	return employees, rows.Err()
}
