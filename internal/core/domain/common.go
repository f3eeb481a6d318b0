package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// FiscalPeriod identifies an accounting sub-period within a fiscal year.
type FiscalPeriod struct {
	Year   int `json:"year"`
	Period int `json:"period"`
}

// DateOnly truncates t to a calendar date at UTC midnight. All ledger dates
// are calendar dates; the time component is never significant.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayBefore returns the calendar day immediately preceding d, rolling back
// across month and leap-year boundaries.
func DayBefore(d time.Time) time.Time {
	return DateOnly(d).AddDate(0, 0, -1)
}
