package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/corefin/corefin/internal/core/domain"
	portsrepo "github.com/corefin/corefin/internal/core/ports/repositories"
	portssvc "github.com/corefin/corefin/internal/core/ports/services"
	"github.com/corefin/corefin/internal/dto"
)

// reportingService generates financial statements from ledger snapshots.
// Each report loads the chart and the posted ledger once and hands both to a
// pure generator, so a report is internally consistent even while new entries
// are being posted concurrently.
type reportingService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	entryRepo   portsrepo.JournalEntryRepositoryFacade
	companySvc  portssvc.CompanySvcFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(ar portsrepo.AccountRepositoryFacade, er portsrepo.JournalEntryRepositoryFacade, companySvc portssvc.CompanySvcFacade) portssvc.ReportingService {
	return &reportingService{
		BaseService: BaseService{CompanyAuthorizer: companySvc},
		accountRepo: ar,
		entryRepo:   er,
		companySvc:  companySvc,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// snapshot loads the chart of accounts and the posted ledger for a company.
func (s *reportingService) snapshot(ctx context.Context, companyID, userID string) ([]domain.Account, []domain.LedgerEntry, string, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, nil, "", err
	}

	currency, err := s.companySvc.GetFunctionalCurrency(ctx, companyID)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to resolve functional currency for company %s: %w", companyID, err)
	}

	accounts, err := s.accountRepo.FindAccountsByCompany(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load chart of accounts", slog.String("company_id", companyID))
		return nil, nil, "", fmt.Errorf("failed to load chart for company %s: %w", companyID, err)
	}

	ledger, err := s.entryRepo.FindPostedEntriesWithLines(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load posted ledger", slog.String("company_id", companyID))
		return nil, nil, "", fmt.Errorf("failed to load ledger for company %s: %w", companyID, err)
	}

	return accounts, ledger, currency, nil
}

// GenerateBalanceSheet builds the balance sheet as of a date.
func (s *reportingService) GenerateBalanceSheet(ctx context.Context, companyID string, asOf time.Time, opts dto.BalanceSheetOptions, userID string) (*domain.BalanceSheetReport, error) {
	accounts, ledger, currency, err := s.snapshot(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}

	report, err := BuildBalanceSheet(companyID, currency, accounts, ledger, asOf, opts)
	if err != nil {
		s.LogError(ctx, err, "Balance sheet generation failed", slog.String("company_id", companyID))
		return nil, err
	}

	s.LogInfo(ctx, "Balance sheet generated", slog.String("company_id", companyID), slog.String("as_of", report.AsOfDate.Format("2006-01-02")))
	return report, nil
}

// GenerateCashFlowStatement builds the indirect-method cash flow statement.
func (s *reportingService) GenerateCashFlowStatement(ctx context.Context, companyID string, periodStart, periodEnd time.Time, userID string) (*domain.CashFlowStatementReport, error) {
	accounts, ledger, currency, err := s.snapshot(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}

	report, err := BuildCashFlowStatement(companyID, currency, accounts, ledger, periodStart, periodEnd)
	if err != nil {
		s.LogError(ctx, err, "Cash flow statement generation failed", slog.String("company_id", companyID))
		return nil, err
	}

	if !report.IsReconciled {
		s.LogInfo(ctx, "Cash flow statement does not reconcile",
			slog.String("company_id", companyID),
			slog.String("beginning_cash", report.BeginningCash.String()),
			slog.String("net_change", report.NetChangeInCash.String()),
			slog.String("ending_cash", report.EndingCash.String()))
	}
	return report, nil
}

// GenerateEquityStatement builds the statement of changes in equity.
func (s *reportingService) GenerateEquityStatement(ctx context.Context, companyID string, periodStart, periodEnd time.Time, opts dto.EquityStatementOptions, userID string) (*domain.EquityStatementReport, error) {
	accounts, ledger, currency, err := s.snapshot(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}

	report, err := BuildEquityStatement(companyID, currency, accounts, ledger, periodStart, periodEnd, opts)
	if err != nil {
		s.LogError(ctx, err, "Equity statement generation failed", slog.String("company_id", companyID))
		return nil, err
	}

	s.LogInfo(ctx, "Equity statement generated", slog.String("company_id", companyID))
	return report, nil
}
