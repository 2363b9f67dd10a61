package mapping

import (
	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
	"github.com/atlasvoyage/travel_accounting_app/internal/models"
)

// ToModelBooking converts a domain booking to its DB shape. Supplier lines
// are persisted separately.
func ToModelBooking(d domain.Booking) models.Booking {
	return models.Booking{
		BookingID:             d.BookingID,
		BookingNumber:         d.BookingNumber,
		ServiceType:           string(d.ServiceType),
		CustomerID:            d.CustomerID,
		EmployeeID:            d.EmployeeID,
		CostAmount:            d.CostAmount,
		CostCurrency:          d.CostCurrency,
		SaleAmount:            d.SaleAmount,
		SaleCurrency:          d.SaleCurrency,
		CostBase:              d.CostBase,
		SaleBase:              d.SaleBase,
		IsUAE:                 d.IsUAE,
		VATApplicable:         d.VATApplicable,
		VATRate:               d.VATRate,
		NetBeforeVAT:          d.NetBeforeVAT,
		VATAmount:             d.VATAmount,
		GrossProfit:           d.GrossProfit,
		NetProfit:             d.NetProfit,
		AgentCommissionRate:   d.AgentCommissionRate,
		AgentCommissionAmount: d.AgentCommissionAmount,
		CSCommissionRate:      d.CSCommissionRate,
		CSCommissionAmount:    d.CSCommissionAmount,
		TotalCommission:       d.TotalCommission,
		Status:                string(d.Status),
		Notes:                 d.Notes,
		RefundOfBookingID:     d.RefundOfBookingID,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBooking converts a DB booking row to the domain shape.
func ToDomainBooking(m models.Booking) domain.Booking {
	return domain.Booking{
		BookingID:             m.BookingID,
		BookingNumber:         m.BookingNumber,
		ServiceType:           domain.ServiceType(m.ServiceType),
		CustomerID:            m.CustomerID,
		EmployeeID:            m.EmployeeID,
		CostAmount:            m.CostAmount,
		CostCurrency:          m.CostCurrency,
		SaleAmount:            m.SaleAmount,
		SaleCurrency:          m.SaleCurrency,
		CostBase:              m.CostBase,
		SaleBase:              m.SaleBase,
		IsUAE:                 m.IsUAE,
		VATApplicable:         m.VATApplicable,
		VATRate:               m.VATRate,
		NetBeforeVAT:          m.NetBeforeVAT,
		VATAmount:             m.VATAmount,
		GrossProfit:           m.GrossProfit,
		NetProfit:             m.NetProfit,
		AgentCommissionRate:   m.AgentCommissionRate,
		AgentCommissionAmount: m.AgentCommissionAmount,
		CSCommissionRate:      m.CSCommissionRate,
		CSCommissionAmount:    m.CSCommissionAmount,
		TotalCommission:       m.TotalCommission,
		Status:                domain.BookingStatus(m.Status),
		Notes:                 m.Notes,
		RefundOfBookingID:     m.RefundOfBookingID,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSupplierLine converts a domain supplier line to its DB shape.
func ToModelSupplierLine(d domain.BookingSupplierLine) models.BookingSupplierLine {
	return models.BookingSupplierLine{
		LineID:       d.LineID,
		BookingID:    d.BookingID,
		SupplierName: d.SupplierName,
		CostAmount:   d.CostAmount,
		CostCurrency: d.CostCurrency,
		CostBase:     d.CostBase,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSupplierLine converts a DB supplier line row to the domain shape.
func ToDomainSupplierLine(m models.BookingSupplierLine) domain.BookingSupplierLine {
	return domain.BookingSupplierLine{
		LineID:       m.LineID,
		BookingID:    m.BookingID,
		SupplierName: m.SupplierName,
		CostAmount:   m.CostAmount,
		CostCurrency: m.CostCurrency,
		CostBase:     m.CostBase,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
