package mapping

import (
	"github.com/corefin/corefin/internal/core/domain"
	"github.com/corefin/corefin/internal/models"
)

// ToModelCompany converts a domain Company to a model Company
func ToModelCompany(d domain.Company) models.Company {
	m := models.Company{
		CompanyID:   d.CompanyID,
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.FunctionalCurrency != nil {
		m.FunctionalCurrency = *d.FunctionalCurrency
	}
	return m
}

// ToDomainCompany converts a model Company to a domain Company
func ToDomainCompany(m models.Company) domain.Company {
	d := domain.Company{
		CompanyID:   m.CompanyID,
		Name:        m.Name,
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.FunctionalCurrency != "" {
		fc := m.FunctionalCurrency
		d.FunctionalCurrency = &fc
	}
	return d
}

// ToDomainCompanySlice converts model Companies to domain Companies
func ToDomainCompanySlice(ms []models.Company) []domain.Company {
	ds := make([]domain.Company, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCompany(m)
	}
	return ds
}
