package services

import (
	"context"
	"time"

	"github.com/corefin/corefin/internal/core/domain"
	"github.com/corefin/corefin/internal/dto"
)

// ReportingService generates the derived financial statements. All reports
// are pure views over the ledger snapshot at generation time.
type ReportingService interface {
	// GenerateBalanceSheet builds the balance sheet as of a date and enforces
	// the fundamental accounting identity.
	GenerateBalanceSheet(ctx context.Context, companyID string, asOf time.Time, opts dto.BalanceSheetOptions, userID string) (*domain.BalanceSheetReport, error)

	// GenerateCashFlowStatement builds the indirect-method cash flow
	// statement for a period.
	GenerateCashFlowStatement(ctx context.Context, companyID string, periodStart, periodEnd time.Time, userID string) (*domain.CashFlowStatementReport, error)

	// GenerateEquityStatement builds the statement of changes in equity for a period.
	GenerateEquityStatement(ctx context.Context, companyID string, periodStart, periodEnd time.Time, opts dto.EquityStatementOptions, userID string) (*domain.EquityStatementReport, error)
}
