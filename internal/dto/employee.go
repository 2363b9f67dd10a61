package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
)

// CreateEmployeeRequest is the payload for adding an employee record.
type CreateEmployeeRequest struct {
	Name                  string           `json:"name" binding:"required"`
	Email                 string           `json:"email" binding:"required,email"`
	DefaultCommissionRate *decimal.Decimal `json:"defaultCommissionRate"`
	Password              string           `json:"password" binding:"required,min=8"`
}

// UpdateEmployeeRequest carries editable employee fields. Nil fields are
// left unchanged.
type UpdateEmployeeRequest struct {
	Name                  *string          `json:"name"`
	DefaultCommissionRate *decimal.Decimal `json:"defaultCommissionRate"`
}

// EmployeeResponse is the API shape of an employee.
type EmployeeResponse struct {
	EmployeeID            string           `json:"employeeID"`
	Name                  string           `json:"name"`
	Email                 string           `json:"email"`
	DefaultCommissionRate *decimal.Decimal `json:"defaultCommissionRate,omitempty"`
	IsActive              bool             `json:"isActive"`
	CreatedAt             time.Time        `json:"createdAt"`
}

// ToEmployeeResponse converts a domain employee to its API shape.
func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID:            e.EmployeeID,
		Name:                  e.Name,
		Email:                 e.Email,
		DefaultCommissionRate: e.DefaultCommissionRate,
		IsActive:              e.IsActive,
		CreatedAt:             e.CreatedAt,
	}
}

// ListEmployeesResponse is a page of employees.
type ListEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
}
