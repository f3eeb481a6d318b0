package dto

import "time"

// --- Reporting DTOs ---
//
// Report responses serialize the domain report types directly; only the
// request surfaces live here.

// BalanceSheetQuery carries the query parameters for a balance sheet request.
type BalanceSheetQuery struct {
	AsOfDate            time.Time  `form:"asOfDate" binding:"required" time_format:"2006-01-02"`
	ComparativeDate     *time.Time `form:"comparativeDate" time_format:"2006-01-02"`
	IncludeZeroBalances bool       `form:"includeZeroBalances"`
}

// BalanceSheetOptions controls balance sheet generation.
type BalanceSheetOptions struct {
	// ComparativeDate adds a second column with variances when set.
	ComparativeDate *time.Time
	// IncludeZeroBalances keeps zero-balance accounts in the sections.
	IncludeZeroBalances bool
}

// PeriodQuery carries the reporting period for period-based statements.
type PeriodQuery struct {
	PeriodStart time.Time `form:"periodStart" binding:"required" time_format:"2006-01-02"`
	PeriodEnd   time.Time `form:"periodEnd" binding:"required" time_format:"2006-01-02"`
}

// EquityStatementQuery carries the parameters for an equity statement request.
type EquityStatementQuery struct {
	PeriodStart  time.Time `form:"periodStart" binding:"required" time_format:"2006-01-02"`
	PeriodEnd    time.Time `form:"periodEnd" binding:"required" time_format:"2006-01-02"`
	Consolidated bool      `form:"consolidated"`
}

// EquityStatementOptions controls equity statement generation.
type EquityStatementOptions struct {
	// Consolidated includes the non-controlling interest column.
	Consolidated bool
}
