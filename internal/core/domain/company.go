package domain

import "time"

// Company represents an isolated set of books: a chart of accounts and its
// journal entries. All reporting amounts for a company are expressed in its
// functional currency.
type Company struct {
	CompanyID          string  `json:"companyID"` // Primary Key (e.g., UUID)
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	FunctionalCurrency *string `json:"functionalCurrency"` // ISO code, e.g. "USD"; nil when never configured
	IsActive           bool    `json:"isActive"`
	AuditFields
}

// UserCompanyRole defines the possible roles a user can have within a company.
type UserCompanyRole string

const (
	RoleAdmin    UserCompanyRole = "ADMIN"
	RoleMember   UserCompanyRole = "MEMBER"
	RoleReadOnly UserCompanyRole = "READONLY"
	RoleRemoved  UserCompanyRole = "REMOVED"
)

// UserCompany represents the membership of a User in a Company.
type UserCompany struct {
	UserID    string          `json:"userID"`
	UserName  string          `json:"userName"`
	CompanyID string          `json:"companyID"`
	Role      UserCompanyRole `json:"role"`
	JoinedAt  time.Time       `json:"joinedAt"`
}
