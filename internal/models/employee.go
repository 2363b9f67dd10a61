package models

import (
	"github.com/shopspring/decimal"
)

// Employee is the DB shape of an employee directory record.
type Employee struct {
	EmployeeID            string           `db:"employee_id"`
	Name                  string           `db:"name"`
	Email                 string           `db:"email"`
	DefaultCommissionRate *decimal.Decimal `db:"default_commission_rate"` // Nullable
	PasswordHash          string           `db:"password_hash"`
	IsActive              bool             `db:"is_active"`
	AuditFields
}
