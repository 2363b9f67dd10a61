package domain

import (
	"github.com/shopspring/decimal"
)

// Employee is a directory record consulted for default commission rates and
// actor attribution. Authentication concerns live outside this core; only
// the stored credential hash is kept here.
type Employee struct {
	EmployeeID            string           `json:"employeeID"` // Primary Key (UUID)
	Name                  string           `json:"name"`
	Email                 string           `json:"email"`
	DefaultCommissionRate *decimal.Decimal `json:"defaultCommissionRate"` // Nullable percentage
	PasswordHash          string           `json:"-"`
	IsActive              bool             `json:"isActive"`
	AuditFields
}
