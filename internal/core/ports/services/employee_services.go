package services

import (
	"context"

	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
	"github.com/atlasvoyage/travel_accounting_app/internal/dto"
)

// EmployeeReaderSvc defines read operations for employees.
type EmployeeReaderSvc interface {
	// GetEmployeeByID retrieves a specific employee by their ID.
	GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// ListEmployees retrieves all active employees.
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
}

// EmployeeWriterSvc defines employee management operations.
type EmployeeWriterSvc interface {
	// CreateEmployee registers an employee with a hashed password.
	CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, userID string) (*domain.Employee, error)

	// UpdateEmployee applies partial updates to an employee.
	UpdateEmployee(ctx context.Context, employeeID string, req dto.UpdateEmployeeRequest, userID string) (*domain.Employee, error)

	// AuthenticateEmployee verifies credentials and returns a signed JWT.
	AuthenticateEmployee(ctx context.Context, email, password string) (string, *domain.Employee, error)
}

// EmployeeSvcFacade combines employee reader and writer operations.
type EmployeeSvcFacade interface {
	EmployeeReaderSvc
	EmployeeWriterSvc
}
