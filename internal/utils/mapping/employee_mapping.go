package mapping

import (
	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
	"github.com/atlasvoyage/travel_accounting_app/internal/models"
)

// ToModelEmployee converts a domain employee to its DB shape.
func ToModelEmployee(d domain.Employee) models.Employee {
	return models.Employee{
		EmployeeID:            d.EmployeeID,
		Name:                  d.Name,
		Email:                 d.Email,
		DefaultCommissionRate: d.DefaultCommissionRate,
		PasswordHash:          d.PasswordHash,
		IsActive:              d.IsActive,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEmployee converts a DB employee row to the domain shape.
func ToDomainEmployee(m models.Employee) domain.Employee {
	return domain.Employee{
		EmployeeID:            m.EmployeeID,
		Name:                  m.Name,
		Email:                 m.Email,
		DefaultCommissionRate: m.DefaultCommissionRate,
		PasswordHash:          m.PasswordHash,
		IsActive:              m.IsActive,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}
