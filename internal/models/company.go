package models

import "github.com/corefin/corefin/internal/core/domain"

// Company is the persisted row for a reporting entity.
type Company struct {
	CompanyID          string `db:"company_id"`
	Name               string `db:"name"`
	FunctionalCurrency string `db:"functional_currency"` // Nullable; empty means not configured
	Description        string `db:"description"`
	IsActive           bool   `db:"is_active"`
	AuditFields
}

// UserCompany links a user to a company with a role.
type UserCompany struct {
	UserID    string                 `db:"user_id"`
	CompanyID string                 `db:"company_id"`
	Role      domain.UserCompanyRole `db:"role"`
	AuditFields
}
