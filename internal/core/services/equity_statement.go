package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corefin/corefin/internal/core/domain"
	"github.com/corefin/corefin/internal/dto"
	"github.com/corefin/corefin/internal/utils/accounting"
)

// BuildEquityStatement generates the statement of changes in equity for a
// period. Balances are credit-signed, so treasury stock shows negative.
// Closing balances are pro-forma: the retained earnings column absorbs the
// period's net income even though no closing entry has been posted, and its
// opening balance absorbs all prior-period earnings for the same reason.
func BuildEquityStatement(companyID, currency string, accounts []domain.Account, ledger []domain.LedgerEntry, periodStart, periodEnd time.Time, opts dto.EquityStatementOptions) (*domain.EquityStatementReport, error) {
	periodStart = domain.DateOnly(periodStart)
	periodEnd = domain.DateOnly(periodEnd)
	if periodStart.After(periodEnd) {
		return nil, &domain.InvalidPeriodError{Start: periodStart, End: periodEnd}
	}

	columns := make(map[domain.EquityComponent]*domain.EquityComponentColumn, len(domain.EquityComponents))
	for _, c := range domain.EquityComponents {
		if c == domain.ComponentNCI && !opts.Consolidated {
			continue
		}
		columns[c] = &domain.EquityComponentColumn{Component: c}
	}

	priorEarnings := decimal.Zero
	periodIncome := decimal.Zero

	for _, a := range accounts {
		if !a.IsBalanceSheetAccount() {
			priorEarnings = priorEarnings.Add(
				accounting.CalculateBeginningBalance(a.AccountID, domain.CreditBalance, ledger, periodStart))
			periodIncome = periodIncome.Add(
				accounting.CalculatePeriodBalance(a.AccountID, domain.CreditBalance, ledger, periodStart, periodEnd))
			continue
		}
		if a.AccountType != domain.Equity {
			continue
		}

		component := componentFor(a)
		col, ok := columns[component]
		if !ok {
			// Non-controlling interest outside a consolidated statement.
			continue
		}

		opening := accounting.CalculateBeginningBalance(a.AccountID, domain.CreditBalance, ledger, periodStart)
		delta := accounting.CalculatePeriodBalance(a.AccountID, domain.CreditBalance, ledger, periodStart, periodEnd)

		col.OpeningBalance = col.OpeningBalance.Add(opening)
		applyMovement(col, component, delta)
	}

	// Retained earnings carries the earnings of every period: prior-period
	// income into opening, this period's income as its own movement row.
	if col, ok := columns[domain.ComponentRetainedEarnings]; ok {
		col.OpeningBalance = col.OpeningBalance.Add(priorEarnings)
		col.NetIncome = periodIncome
	}

	report := &domain.EquityStatementReport{
		CompanyID:      companyID,
		Currency:       currency,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		IsConsolidated: opts.Consolidated,
	}

	for _, c := range domain.EquityComponents {
		col, ok := columns[c]
		if !ok {
			continue
		}
		col.ClosingBalance = col.OpeningBalance.
			Add(col.NetIncome).
			Add(col.OCI).
			Add(col.Dividends).
			Add(col.StockIssuance).
			Add(col.StockRepurchase).
			Add(col.OtherAdjustments)
		report.Columns = append(report.Columns, *col)
		report.TotalOpeningBalance = report.TotalOpeningBalance.Add(col.OpeningBalance)
		report.TotalClosingBalance = report.TotalClosingBalance.Add(col.ClosingBalance)
	}

	report.Rows = make([]domain.EquityStatementRow, 0, len(domain.EquityMovements))
	for _, m := range domain.EquityMovements {
		row := domain.EquityStatementRow{
			Movement: m,
			Amounts:  make(map[domain.EquityComponent]decimal.Decimal, len(report.Columns)),
		}
		for _, col := range report.Columns {
			amount := col.Amount(m)
			row.Amounts[col.Component] = amount
			row.Total = row.Total.Add(amount)
		}
		report.Rows = append(report.Rows, row)
	}

	return report, nil
}

// componentFor maps an equity account to its statement column. Contributed
// capital splits into common stock and additional paid-in capital by name.
func componentFor(a domain.Account) domain.EquityComponent {
	switch a.AccountCategory {
	case domain.CategoryRetainedEarnings:
		return domain.ComponentRetainedEarnings
	case domain.CategoryTreasuryStock:
		return domain.ComponentTreasuryStock
	case domain.CategoryAccumulatedOCI:
		return domain.ComponentAOCI
	case domain.CategoryNonControllingInterest:
		return domain.ComponentNCI
	default:
		if strings.Contains(strings.ToLower(a.Name), "additional paid") {
			return domain.ComponentAPIC
		}
		return domain.ComponentCommonStock
	}
}

// applyMovement routes an account's period movement to the movement row that
// describes it for the account's component.
func applyMovement(col *domain.EquityComponentColumn, component domain.EquityComponent, delta decimal.Decimal) {
	if delta.IsZero() {
		return
	}
	switch component {
	case domain.ComponentRetainedEarnings:
		// Explicit postings to retained earnings inside the period are
		// distributions when negative, adjustments otherwise. The income
		// itself lives on revenue and expense accounts, not here.
		if delta.IsNegative() {
			col.Dividends = col.Dividends.Add(delta)
		} else {
			col.OtherAdjustments = col.OtherAdjustments.Add(delta)
		}
	case domain.ComponentAOCI:
		col.OCI = col.OCI.Add(delta)
	case domain.ComponentTreasuryStock:
		// Treasury stock is debit-normal; buying back shares moves the
		// credit-signed balance down.
		if delta.IsNegative() {
			col.StockRepurchase = col.StockRepurchase.Add(delta)
		} else {
			col.OtherAdjustments = col.OtherAdjustments.Add(delta)
		}
	case domain.ComponentCommonStock, domain.ComponentAPIC:
		if delta.IsPositive() {
			col.StockIssuance = col.StockIssuance.Add(delta)
		} else {
			col.OtherAdjustments = col.OtherAdjustments.Add(delta)
		}
	default:
		col.OtherAdjustments = col.OtherAdjustments.Add(delta)
	}
}
