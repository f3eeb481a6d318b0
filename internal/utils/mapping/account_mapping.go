package mapping

import (
	"github.com/corefin/corefin/internal/core/domain"
	"github.com/corefin/corefin/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:             d.AccountID,
		CompanyID:             d.CompanyID,
		AccountNumber:         d.AccountNumber,
		Name:                  d.Name,
		AccountType:           d.AccountType,
		AccountCategory:       d.AccountCategory,
		NormalBalance:         d.NormalBalance,
		ParentAccountID:       d.ParentAccountID,
		HierarchyLevel:        d.HierarchyLevel,
		IsPostable:            d.IsPostable,
		IsCashFlowRelevant:    d.IsCashFlowRelevant,
		CashFlowCategory:      d.CashFlowCategory,
		IsIntercompany:        d.IsIntercompany,
		IntercompanyPartnerID: d.IntercompanyPartnerID,
		CurrencyRestriction:   d.CurrencyRestriction,
		IsRetainedEarnings:    d.IsRetainedEarnings,
		IsActive:              d.IsActive,
		Description:           d.Description,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:             m.AccountID,
		CompanyID:             m.CompanyID,
		AccountNumber:         m.AccountNumber,
		Name:                  m.Name,
		AccountType:           m.AccountType,
		AccountCategory:       m.AccountCategory,
		NormalBalance:         m.NormalBalance,
		ParentAccountID:       m.ParentAccountID,
		HierarchyLevel:        m.HierarchyLevel,
		IsPostable:            m.IsPostable,
		IsCashFlowRelevant:    m.IsCashFlowRelevant,
		CashFlowCategory:      m.CashFlowCategory,
		IsIntercompany:        m.IsIntercompany,
		IntercompanyPartnerID: m.IntercompanyPartnerID,
		CurrencyRestriction:   m.CurrencyRestriction,
		IsRetainedEarnings:    m.IsRetainedEarnings,
		IsActive:              m.IsActive,
		Description:           m.Description,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
