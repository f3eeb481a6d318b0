package services_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corefin/corefin/internal/core/domain"
	"github.com/corefin/corefin/internal/core/services"
	"github.com/corefin/corefin/internal/dto"
)

// Shared reporting fixtures. Every builder consumes the same shape of
// snapshot: a chart of accounts plus posted ledger entries.

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func amount(v int64) *domain.MonetaryAmount {
	a := domain.NewMonetaryAmount(decimal.NewFromInt(v), "USD")
	return &a
}

func debitLine(accountID string, v int64) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineID:          uuid.NewString(),
		AccountID:       accountID,
		Debit:           amount(v),
		FunctionalDebit: amount(v),
		ExchangeRate:    decimal.NewFromInt(1),
	}
}

func creditLine(accountID string, v int64) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineID:           uuid.NewString(),
		AccountID:        accountID,
		Credit:           amount(v),
		FunctionalCredit: amount(v),
		ExchangeRate:     decimal.NewFromInt(1),
	}
}

func postedEntry(postingDate time.Time, lines ...domain.JournalEntryLine) domain.LedgerEntry {
	pd := postingDate
	return domain.LedgerEntry{
		Entry: domain.JournalEntry{
			EntryID:     uuid.NewString(),
			Status:      domain.Posted,
			PostingDate: &pd,
		},
		Lines: lines,
	}
}

func testAccount(id, number, name string, at domain.AccountType, category domain.AccountCategory) domain.Account {
	return domain.Account{
		AccountID:       id,
		CompanyID:       "company-1",
		AccountNumber:   number,
		Name:            name,
		AccountType:     at,
		AccountCategory: category,
		NormalBalance:   domain.CanonicalNormalBalance(at),
		HierarchyLevel:  1,
		IsPostable:      true,
		IsActive:        true,
	}
}

func contra(a domain.Account) domain.Account {
	if a.NormalBalance == domain.DebitBalance {
		a.NormalBalance = domain.CreditBalance
	} else {
		a.NormalBalance = domain.DebitBalance
	}
	return a
}

// balanceSheetFixture builds a small but complete chart with one month of
// activity: a stock issuance, an equipment purchase, a credit sale, a rent
// payment, and a depreciation accrual.
func balanceSheetFixture() ([]domain.Account, []domain.LedgerEntry) {
	accounts := []domain.Account{
		testAccount("cash", "1000", "Cash", domain.Asset, domain.CategoryCurrentAsset),
		testAccount("ar", "1100", "Accounts Receivable", domain.Asset, domain.CategoryCurrentAsset),
		testAccount("equip", "1500", "Equipment", domain.Asset, domain.CategoryFixedAsset),
		contra(testAccount("accum-depr", "1510", "Accumulated Depreciation", domain.Asset, domain.CategoryFixedAsset)),
		testAccount("ap", "2000", "Accounts Payable", domain.Liability, domain.CategoryCurrentLiability),
		testAccount("stock", "3000", "Common Stock", domain.Equity, domain.CategoryContributedCapital),
		testAccount("revenue", "4000", "Service Revenue", domain.Revenue, domain.CategoryOperatingRevenue),
		testAccount("rent", "5000", "Rent Expense", domain.Expense, domain.CategoryOperatingExpense),
		testAccount("depr-exp", "5100", "Depreciation Expense", domain.Expense, domain.CategoryDepreciationAmortization),
	}
	ledger := []domain.LedgerEntry{
		postedEntry(date(2025, time.January, 5), debitLine("cash", 10000), creditLine("stock", 10000)),
		postedEntry(date(2025, time.January, 10), debitLine("equip", 5000), creditLine("cash", 5000)),
		postedEntry(date(2025, time.January, 15), debitLine("ar", 3000), creditLine("revenue", 3000)),
		postedEntry(date(2025, time.January, 20), debitLine("rent", 1200), creditLine("cash", 1200)),
		postedEntry(date(2025, time.January, 31), debitLine("depr-exp", 500), creditLine("accum-depr", 500)),
	}
	return accounts, ledger
}

func TestBuildBalanceSheet_IdentityAndSections(t *testing.T) {
	accounts, ledger := balanceSheetFixture()

	report, err := services.BuildBalanceSheet("company-1", "USD", accounts, ledger,
		date(2025, time.January, 31), dto.BalanceSheetOptions{})
	require.NoError(t, err)

	assert.True(t, report.CurrentAssets.Total.Equal(decimal.NewFromInt(6800)),
		"current assets: %s", report.CurrentAssets.Total)
	assert.True(t, report.NonCurrentAssets.Total.Equal(decimal.NewFromInt(4500)),
		"non-current assets: %s", report.NonCurrentAssets.Total)
	assert.True(t, report.TotalAssets.Equal(decimal.NewFromInt(11300)))

	assert.True(t, report.TotalLiabilities.IsZero())
	assert.True(t, report.Equity.Total.Equal(decimal.NewFromInt(10000)))
	assert.True(t, report.CurrentPeriodEarnings.Equal(decimal.NewFromInt(1300)),
		"earnings: %s", report.CurrentPeriodEarnings)
	assert.True(t, report.TotalEquity.Equal(decimal.NewFromInt(11300)))

	assert.True(t, report.TotalAssets.Equal(report.TotalLiabilitiesAndEquity))
}

func TestBuildBalanceSheet_ContraAccountAppearsNegative(t *testing.T) {
	accounts, ledger := balanceSheetFixture()

	report, err := services.BuildBalanceSheet("company-1", "USD", accounts, ledger,
		date(2025, time.January, 31), dto.BalanceSheetOptions{})
	require.NoError(t, err)

	var accumDepr *domain.BalanceSheetLine
	for i := range report.NonCurrentAssets.Lines {
		if report.NonCurrentAssets.Lines[i].AccountID == "accum-depr" {
			accumDepr = &report.NonCurrentAssets.Lines[i]
		}
	}
	require.NotNil(t, accumDepr)
	assert.True(t, accumDepr.Balance.Equal(decimal.NewFromInt(-500)),
		"accumulated depreciation: %s", accumDepr.Balance)
}

func TestBuildBalanceSheet_LinesSortedAndZeroBalancesFiltered(t *testing.T) {
	accounts, ledger := balanceSheetFixture()

	report, err := services.BuildBalanceSheet("company-1", "USD", accounts, ledger,
		date(2025, time.January, 31), dto.BalanceSheetOptions{})
	require.NoError(t, err)

	// Accounts payable never moved, so it is dropped from the section.
	assert.Empty(t, report.CurrentLiabilities.Lines)

	require.Len(t, report.CurrentAssets.Lines, 2)
	assert.Equal(t, "1000", report.CurrentAssets.Lines[0].AccountNumber)
	assert.Equal(t, "1100", report.CurrentAssets.Lines[1].AccountNumber)

	withZeros, err := services.BuildBalanceSheet("company-1", "USD", accounts, ledger,
		date(2025, time.January, 31), dto.BalanceSheetOptions{IncludeZeroBalances: true})
	require.NoError(t, err)
	require.Len(t, withZeros.CurrentLiabilities.Lines, 1)
	assert.True(t, withZeros.CurrentLiabilities.Lines[0].Balance.IsZero())
}

func TestBuildBalanceSheet_ComparativeColumn(t *testing.T) {
	accounts, ledger := balanceSheetFixture()

	comparative := date(2025, time.January, 12)
	report, err := services.BuildBalanceSheet("company-1", "USD", accounts, ledger,
		date(2025, time.January, 31), dto.BalanceSheetOptions{ComparativeDate: &comparative})
	require.NoError(t, err)

	var cash *domain.BalanceSheetLine
	for i := range report.CurrentAssets.Lines {
		if report.CurrentAssets.Lines[i].AccountID == "cash" {
			cash = &report.CurrentAssets.Lines[i]
		}
	}
	require.NotNil(t, cash)
	require.NotNil(t, cash.ComparativeBalance)
	require.NotNil(t, cash.Variance)
	require.NotNil(t, cash.VariancePercent)

	// As of Jan 12 only the issuance and the equipment purchase had posted.
	assert.True(t, cash.ComparativeBalance.Equal(decimal.NewFromInt(5000)))
	assert.True(t, cash.Variance.Equal(decimal.NewFromInt(-1200)))
	assert.True(t, cash.VariancePercent.Equal(decimal.NewFromInt(-24)),
		"variance pct: %s", cash.VariancePercent)

	require.NotNil(t, report.CurrentAssets.ComparativeTotal)
	assert.True(t, report.CurrentAssets.ComparativeTotal.Equal(decimal.NewFromInt(5000)))
}

func TestBuildBalanceSheet_VariancePercentOmittedOnZeroBase(t *testing.T) {
	accounts, ledger := balanceSheetFixture()

	// AR had no balance at the comparative date.
	comparative := date(2025, time.January, 12)
	report, err := services.BuildBalanceSheet("company-1", "USD", accounts, ledger,
		date(2025, time.January, 31), dto.BalanceSheetOptions{ComparativeDate: &comparative})
	require.NoError(t, err)

	for _, line := range report.CurrentAssets.Lines {
		if line.AccountID == "ar" {
			require.NotNil(t, line.Variance)
			assert.True(t, line.Variance.Equal(decimal.NewFromInt(3000)))
			assert.Nil(t, line.VariancePercent)
			return
		}
	}
	t.Fatal("accounts receivable line not found")
}

func TestBuildBalanceSheet_UnbalancedLedgerFails(t *testing.T) {
	accounts := []domain.Account{
		testAccount("cash", "1000", "Cash", domain.Asset, domain.CategoryCurrentAsset),
	}
	// A one-sided entry cannot exist through the posting flow; the builder
	// still refuses to present it as a balanced statement.
	ledger := []domain.LedgerEntry{
		postedEntry(date(2025, time.January, 5), debitLine("cash", 100)),
	}

	report, err := services.BuildBalanceSheet("company-1", "USD", accounts, ledger,
		date(2025, time.January, 31), dto.BalanceSheetOptions{})
	assert.Nil(t, report)

	var notBalanced *domain.BalanceSheetNotBalancedError
	require.ErrorAs(t, err, &notBalanced)
	assert.True(t, notBalanced.TotalAssets.Equal(decimal.NewFromInt(100)))
	assert.True(t, notBalanced.TotalLiabilitiesAndEquity.IsZero())
}
