package accounting_test

import (
	"testing"

	"github.com/corefin/corefin/internal/core/domain"
	"github.com/corefin/corefin/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func acct(id, number, parent string, accountType domain.AccountType) domain.Account {
	return domain.Account{
		AccountID:       id,
		AccountNumber:   number,
		Name:            "Account " + number,
		AccountType:     accountType,
		ParentAccountID: parent,
	}
}

func sampleChart() []domain.Account {
	return []domain.Account{
		acct("assets", "1000", "", domain.Asset),
		acct("cash", "1100", "assets", domain.Asset),
		acct("petty-cash", "1110", "cash", domain.Asset),
		acct("receivables", "1200", "assets", domain.Asset),
		acct("liabilities", "2000", "", domain.Liability),
		acct("payables", "2100", "liabilities", domain.Liability),
	}
}

func TestTreeAndFlattenRoundTrip(t *testing.T) {
	accounts := sampleChart()
	idx := accounting.NewHierarchyIndex(accounts)

	forest := idx.Tree()
	require.Len(t, forest, 2)
	assert.Equal(t, "assets", forest[0].Account.AccountID)
	require.Len(t, forest[0].Children, 2)
	assert.Equal(t, "cash", forest[0].Children[0].Account.AccountID)
	require.Len(t, forest[0].Children[0].Children, 1)
	assert.Equal(t, "petty-cash", forest[0].Children[0].Children[0].Account.AccountID)

	flat := accounting.FlattenTree(forest)
	assert.Len(t, flat, len(accounts))
	// Depth-first: parent always precedes its children.
	positions := make(map[string]int, len(flat))
	for i, a := range flat {
		positions[a.AccountID] = i
	}
	for _, a := range accounts {
		if a.ParentAccountID != "" {
			assert.Less(t, positions[a.ParentAccountID], positions[a.AccountID])
		}
	}
}

func TestTraversalQueries(t *testing.T) {
	idx := accounting.NewHierarchyIndex(sampleChart())

	ancestors := idx.Ancestors("petty-cash")
	require.Len(t, ancestors, 2)
	assert.Equal(t, "cash", ancestors[0].AccountID)
	assert.Equal(t, "assets", ancestors[1].AccountID)

	descendants := idx.Descendants("assets")
	ids := make([]string, 0, len(descendants))
	for _, d := range descendants {
		ids = append(ids, d.AccountID)
	}
	assert.ElementsMatch(t, []string{"cash", "petty-cash", "receivables"}, ids)

	assert.Equal(t, 0, idx.Depth("assets"))
	assert.Equal(t, 2, idx.Depth("petty-cash"))

	siblings := idx.Siblings("cash")
	require.Len(t, siblings, 1)
	assert.Equal(t, "receivables", siblings[0].AccountID)

	root, ok := idx.RootAncestor("petty-cash")
	require.True(t, ok)
	assert.Equal(t, "assets", root.AccountID)
}

func TestValidateHierarchy_CollectsAllViolations(t *testing.T) {
	accounts := []domain.Account{
		acct("a", "1000", "missing", domain.Asset),
		acct("b", "2000", "c", domain.Liability),
		acct("c", "1100", "", domain.Asset),
	}

	errs := accounting.ValidateHierarchy(accounts)
	require.Len(t, errs, 2)

	var notFound *domain.ParentAccountNotFoundError
	require.ErrorAs(t, errs[0], &notFound)
	assert.Equal(t, "a", notFound.AccountID)
	assert.Equal(t, "missing", notFound.ParentAccountID)

	var mismatch *domain.AccountTypeMismatchError
	require.ErrorAs(t, errs[1], &mismatch)
	assert.Equal(t, "b", mismatch.AccountID)
	assert.Equal(t, domain.Liability, mismatch.ChildType)
	assert.Equal(t, domain.Asset, mismatch.ParentType)
}

func TestValidateHierarchy_CycleReportedOnce(t *testing.T) {
	accounts := []domain.Account{
		acct("a", "1000", "b", domain.Asset),
		acct("b", "1100", "a", domain.Asset),
	}

	errs := accounting.ValidateHierarchy(accounts)
	require.Len(t, errs, 1)

	var circ *domain.CircularReferenceError
	require.ErrorAs(t, errs[0], &circ)
	assert.Contains(t, circ.Chain, "a")
	assert.Contains(t, circ.Chain, "b")
}

func TestTree_TerminatesOnCyclicData(t *testing.T) {
	accounts := []domain.Account{
		acct("a", "1000", "b", domain.Asset),
		acct("b", "1100", "a", domain.Asset),
	}
	idx := accounting.NewHierarchyIndex(accounts)

	// Neither account is a root; both parents exist, so the forest is empty
	// rather than looping forever.
	assert.Empty(t, idx.Tree())
	assert.NotPanics(t, func() { idx.Ancestors("a") })
}
