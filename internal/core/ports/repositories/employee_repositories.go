package repositories

import (
	"context"
	"time"

	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
)

// EmployeeReader defines read operations for the employee directory.
type EmployeeReader interface {
	// FindEmployeeByID retrieves a specific employee by its unique identifier.
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// FindEmployeeByEmail retrieves an employee by their unique email address.
	FindEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error)

	// ListEmployees retrieves a paginated list of employees.
	ListEmployees(ctx context.Context, limit int, offset int) ([]domain.Employee, error)
}

// EmployeeWriter defines write operations for the employee directory.
type EmployeeWriter interface {
	// SaveEmployee persists a new employee.
	SaveEmployee(ctx context.Context, employee domain.Employee) error

	// UpdateEmployee updates an existing employee's details.
	UpdateEmployee(ctx context.Context, employee domain.Employee) error

	// DeactivateEmployee marks an employee as inactive.
	DeactivateEmployee(ctx context.Context, employeeID string, userID string, now time.Time) error
}

// EmployeeRepositoryFacade combines all employee-related repository interfaces.
type EmployeeRepositoryFacade interface {
	EmployeeReader
	EmployeeWriter
}
