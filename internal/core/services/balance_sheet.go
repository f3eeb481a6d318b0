package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corefin/corefin/internal/core/domain"
	"github.com/corefin/corefin/internal/dto"
	"github.com/corefin/corefin/internal/utils/accounting"
)

// BuildBalanceSheet generates the balance sheet as of a date from an account
// and ledger snapshot. Line balances are signed in the section's natural
// direction, so contra accounts (accumulated depreciation, treasury stock)
// appear negative. The fundamental identity is asserted before the report is
// returned; a violation means corrupted data and fails the generation.
func BuildBalanceSheet(companyID, currency string, accounts []domain.Account, ledger []domain.LedgerEntry, asOf time.Time, opts dto.BalanceSheetOptions) (*domain.BalanceSheetReport, error) {
	asOf = domain.DateOnly(asOf)
	var comparative *time.Time
	if opts.ComparativeDate != nil {
		c := domain.DateOnly(*opts.ComparativeDate)
		comparative = &c
	}

	report := &domain.BalanceSheetReport{
		CompanyID:             companyID,
		Currency:              currency,
		AsOfDate:              asOf,
		ComparativeDate:       comparative,
		CurrentAssets:         domain.BalanceSheetSectionReport{Section: domain.SectionCurrentAssets},
		NonCurrentAssets:      domain.BalanceSheetSectionReport{Section: domain.SectionNonCurrentAssets},
		CurrentLiabilities:    domain.BalanceSheetSectionReport{Section: domain.SectionCurrentLiabilities},
		NonCurrentLiabilities: domain.BalanceSheetSectionReport{Section: domain.SectionNonCurrentLiabilities},
		Equity:                domain.BalanceSheetSectionReport{Section: domain.SectionEquity},
	}

	sections := map[domain.BalanceSheetSection]*domain.BalanceSheetSectionReport{
		domain.SectionCurrentAssets:         &report.CurrentAssets,
		domain.SectionNonCurrentAssets:      &report.NonCurrentAssets,
		domain.SectionCurrentLiabilities:    &report.CurrentLiabilities,
		domain.SectionNonCurrentLiabilities: &report.NonCurrentLiabilities,
		domain.SectionEquity:                &report.Equity,
	}

	earnings := decimal.Zero
	comparativeEarnings := decimal.Zero

	for _, a := range accounts {
		// Revenue and expense roll into current period earnings rather
		// than appearing as balance sheet lines.
		if !a.IsBalanceSheetAccount() {
			delta := sectionBalance(a, ledger, asOf)
			earnings = earnings.Add(delta)
			if comparative != nil {
				comparativeEarnings = comparativeEarnings.Add(sectionBalance(a, ledger, *comparative))
			}
			continue
		}

		section := sections[sectionFor(a)]
		balance := sectionBalance(a, ledger, asOf)

		line := domain.BalanceSheetLine{
			AccountID:     a.AccountID,
			AccountNumber: a.AccountNumber,
			Name:          a.Name,
			Balance:       balance,
		}

		if comparative != nil {
			cb := sectionBalance(a, ledger, *comparative)
			variance := balance.Sub(cb)
			line.ComparativeBalance = &cb
			line.Variance = &variance
			if !cb.IsZero() {
				pct := variance.Div(cb.Abs()).Mul(decimal.NewFromInt(100))
				line.VariancePercent = &pct
			}
			if ct := section.ComparativeTotal; ct != nil {
				sum := ct.Add(cb)
				section.ComparativeTotal = &sum
			} else {
				section.ComparativeTotal = &cb
			}
		}

		section.Total = section.Total.Add(balance)
		if balance.IsZero() && !opts.IncludeZeroBalances {
			continue
		}
		section.Lines = append(section.Lines, line)
	}

	for _, section := range sections {
		sort.Slice(section.Lines, func(i, j int) bool {
			return section.Lines[i].AccountNumber < section.Lines[j].AccountNumber
		})
	}

	report.CurrentPeriodEarnings = earnings
	report.TotalAssets = report.CurrentAssets.Total.Add(report.NonCurrentAssets.Total)
	report.TotalLiabilities = report.CurrentLiabilities.Total.Add(report.NonCurrentLiabilities.Total)
	report.TotalEquity = report.Equity.Total.Add(earnings)
	report.TotalLiabilitiesAndEquity = report.TotalLiabilities.Add(report.TotalEquity)

	if !report.TotalAssets.Equal(report.TotalLiabilitiesAndEquity) {
		return nil, &domain.BalanceSheetNotBalancedError{
			TotalAssets:               report.TotalAssets,
			TotalLiabilitiesAndEquity: report.TotalLiabilitiesAndEquity,
		}
	}
	return report, nil
}

// sectionFor maps an account to its balance sheet section by type and category.
func sectionFor(a domain.Account) domain.BalanceSheetSection {
	switch a.AccountType {
	case domain.Asset:
		if a.AccountCategory == domain.CategoryCurrentAsset {
			return domain.SectionCurrentAssets
		}
		return domain.SectionNonCurrentAssets
	case domain.Liability:
		if a.AccountCategory == domain.CategoryCurrentLiability {
			return domain.SectionCurrentLiabilities
		}
		return domain.SectionNonCurrentLiabilities
	default:
		return domain.SectionEquity
	}
}

// sectionBalance computes an account's cumulative balance as of a date,
// signed in the canonical direction of its type. Contra accounts come out
// negative, which keeps section totals additive and the identity exact.
// Income statement accounts come out credit-signed (revenue positive,
// expense negative), which is the earnings contribution.
func sectionBalance(a domain.Account, ledger []domain.LedgerEntry, asOf time.Time) decimal.Decimal {
	normal := domain.CanonicalNormalBalance(a.AccountType)
	if !a.IsBalanceSheetAccount() {
		normal = domain.CreditBalance
	}
	return accounting.CalculateBalance(a.AccountID, normal, ledger, asOf)
}
