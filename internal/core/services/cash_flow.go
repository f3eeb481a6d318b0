package services

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corefin/corefin/internal/core/domain"
	"github.com/corefin/corefin/internal/utils/accounting"
)

// cashFlowBucket names the destination of one account's period movement
// within the cash flow statement.
type cashFlowBucket int

const (
	bucketExcluded cashFlowBucket = iota
	bucketCash
	bucketNonCashAdjustment
	bucketWorkingCapital
	bucketInvesting
	bucketFinancing
)

// BuildCashFlowStatement generates the indirect-method cash flow statement
// for a period. Every movement is expressed as a cash effect (positive =
// inflow). Because each non-cash account's period movement lands in exactly
// one section, the statement reconciles to the ledger's actual cash change
// whenever no account is excluded; a mismatch is reported through
// IsReconciled rather than failing generation.
func BuildCashFlowStatement(companyID, currency string, accounts []domain.Account, ledger []domain.LedgerEntry, periodStart, periodEnd time.Time) (*domain.CashFlowStatementReport, error) {
	periodStart = domain.DateOnly(periodStart)
	periodEnd = domain.DateOnly(periodEnd)
	if periodStart.After(periodEnd) {
		return nil, &domain.InvalidPeriodError{Start: periodStart, End: periodEnd}
	}

	report := &domain.CashFlowStatementReport{
		CompanyID:   companyID,
		Currency:    currency,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	}

	for _, a := range accounts {
		if !a.IsBalanceSheetAccount() {
			// Income statement accounts aggregate into net income; interest
			// and tax expense additionally feed the supplemental disclosures.
			delta := creditSignedPeriodDelta(a, ledger, periodStart, periodEnd)
			report.NetIncome = report.NetIncome.Add(delta)
			switch a.AccountCategory {
			case domain.CategoryInterestExpense:
				report.InterestPaid = report.InterestPaid.Add(delta.Neg())
			case domain.CategoryTaxExpense:
				report.TaxesPaid = report.TaxesPaid.Add(delta.Neg())
			}
			continue
		}

		switch classifyCashFlow(a) {
		case bucketCash:
			report.BeginningCash = report.BeginningCash.Add(
				accounting.CalculateBeginningBalance(a.AccountID, domain.DebitBalance, ledger, periodStart))
			report.EndingCash = report.EndingCash.Add(
				accounting.CalculateBalance(a.AccountID, domain.DebitBalance, ledger, periodEnd))
		case bucketNonCashAdjustment:
			if item, ok := cashEffectItem(a, ledger, periodStart, periodEnd); ok {
				report.NonCashAdjustments = append(report.NonCashAdjustments, item)
				report.TotalNonCashAdjustment = report.TotalNonCashAdjustment.Add(item.Amount)
			}
		case bucketWorkingCapital:
			if item, ok := cashEffectItem(a, ledger, periodStart, periodEnd); ok {
				report.WorkingCapitalChanges = append(report.WorkingCapitalChanges, item)
				report.NetWorkingCapitalDelta = report.NetWorkingCapitalDelta.Add(item.Amount)
			}
		case bucketInvesting:
			if item, ok := cashEffectItem(a, ledger, periodStart, periodEnd); ok {
				report.InvestingActivities = append(report.InvestingActivities, item)
				report.NetCashFromInvesting = report.NetCashFromInvesting.Add(item.Amount)
			}
		case bucketFinancing:
			if item, ok := cashEffectItem(a, ledger, periodStart, periodEnd); ok {
				report.FinancingActivities = append(report.FinancingActivities, item)
				report.NetCashFromFinancing = report.NetCashFromFinancing.Add(item.Amount)
			}
		}
	}

	for _, items := range [][]domain.CashFlowLineItem{
		report.NonCashAdjustments,
		report.WorkingCapitalChanges,
		report.InvestingActivities,
		report.FinancingActivities,
	} {
		sort.Slice(items, func(i, j int) bool { return items[i].AccountNumber < items[j].AccountNumber })
	}

	report.NetCashFromOperating = report.NetIncome.
		Add(report.TotalNonCashAdjustment).
		Add(report.NetWorkingCapitalDelta)
	report.NetChangeInCash = report.NetCashFromOperating.
		Add(report.NetCashFromInvesting).
		Add(report.NetCashFromFinancing).
		Add(report.ExchangeRateEffect)
	report.IsReconciled = report.BeginningCash.Add(report.NetChangeInCash).Equal(report.EndingCash)

	return report, nil
}

// classifyCashFlow assigns a balance sheet account to its statement bucket.
// An explicit cash flow category wins; otherwise the account's category, with
// name heuristics to recognize unflagged cash accounts and pull loan-like
// current liabilities into financing.
func classifyCashFlow(a domain.Account) cashFlowBucket {
	if a.IsCashFlowRelevant && a.AccountType == domain.Asset {
		return bucketCash
	}

	switch a.CashFlowCategory {
	case domain.CashFlowOperating:
		if a.IsContra() && a.AccountType == domain.Asset {
			return bucketNonCashAdjustment
		}
		return bucketWorkingCapital
	case domain.CashFlowInvesting:
		return bucketInvesting
	case domain.CashFlowFinancing:
		return bucketFinancing
	case domain.CashFlowNonCash:
		return bucketExcluded
	}

	switch a.AccountType {
	case domain.Asset:
		if a.IsContra() {
			// Accumulated depreciation and similar contra assets are the
			// indirect method's add-backs.
			return bucketNonCashAdjustment
		}
		if a.AccountCategory == domain.CategoryCurrentAsset {
			if isCashLike(a.Name) {
				// Charts authored before the cash flow relevance flag only
				// identify cash accounts by name.
				return bucketCash
			}
			return bucketWorkingCapital
		}
		return bucketInvesting
	case domain.Liability:
		if a.AccountCategory == domain.CategoryCurrentLiability && !isDebtLike(a.Name) {
			return bucketWorkingCapital
		}
		return bucketFinancing
	default:
		return bucketFinancing
	}
}

// isCashLike spots cash and cash-equivalent accounts by name.
func isCashLike(name string) bool {
	return strings.Contains(strings.ToLower(name), "cash")
}

// isDebtLike spots borrowing accounts parked in current liabilities, which
// belong under financing rather than working capital.
func isDebtLike(name string) bool {
	n := strings.ToLower(name)
	return strings.Contains(n, "loan") || strings.Contains(n, "note payable") || strings.Contains(n, "borrowing")
}

// cashEffectItem computes an account's period movement as a cash effect.
// For any account, the cash effect is the credit-signed movement: an asset
// increase (debit) consumes cash, a liability or equity increase (credit)
// provides it. Zero movements are dropped from the statement.
func cashEffectItem(a domain.Account, ledger []domain.LedgerEntry, start, end time.Time) (domain.CashFlowLineItem, bool) {
	delta := creditSignedPeriodDelta(a, ledger, start, end)
	if delta.IsZero() {
		return domain.CashFlowLineItem{}, false
	}
	return domain.CashFlowLineItem{
		AccountID:     a.AccountID,
		AccountNumber: a.AccountNumber,
		Name:          a.Name,
		Amount:        delta,
	}, true
}

// creditSignedPeriodDelta is the account's period movement with credits
// positive, regardless of the account's own normal balance.
func creditSignedPeriodDelta(a domain.Account, ledger []domain.LedgerEntry, start, end time.Time) decimal.Decimal {
	return accounting.CalculatePeriodBalance(a.AccountID, domain.CreditBalance, ledger, start, end)
}
