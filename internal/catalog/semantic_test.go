package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTerms_MatchesSynonymsInTableOrder(t *testing.T) {
	table := DefaultSemanticTable()

	// "postre" appears after "camarones" in the input, but "mariscos"
	// precedes "dulce" in the table, so table order wins.
	terms := table.ExtractTerms("quiero un postre y tambien camarones")
	require.Equal(t, []string{"mariscos", "dulce"}, terms)
}

func TestExtractTerms_SubstringMatchIsLoose(t *testing.T) {
	table := DefaultSemanticTable()

	// "carne" matches inside "carnet"; the loose substring behavior is the contract.
	terms := table.ExtractTerms("perdi mi carnet")
	assert.Contains(t, terms, "carne")
}

func TestExtractTerms_NoMatch(t *testing.T) {
	table := DefaultSemanticTable()

	assert.Empty(t, table.ExtractTerms("xyzzy"))
	assert.Empty(t, table.ExtractTerms(""))
}

func TestItemsForTerms_KeywordHitsRankAboveCategoryHits(t *testing.T) {
	c := newTestCatalog()
	table := DefaultSemanticTable()

	items := c.ItemsForTerms(table, []string{"mariscos"}, "")
	require.NotEmpty(t, items)
	// Camarones al Ajillo matches the "camar" keyword in its name, so it leads.
	assert.Equal(t, "mr-camarones", items[0].ID)
}

func TestItemsForTerms_DeduplicatesAndCaps(t *testing.T) {
	c := newTestCatalog()
	table := DefaultSemanticTable()

	// pizza + vegetariano both cover the margherita; it must appear once.
	items := c.ItemsForTerms(table, []string{"pizza", "vegetariano"}, "")
	seen := make(map[string]int)
	for _, item := range items {
		seen[item.ID]++
	}
	for id, count := range seen {
		assert.Equal(t, 1, count, "item %s duplicated", id)
	}
	assert.LessOrEqual(t, len(items), maxSemanticResults)
}

func TestItemsForTerms_RespectsLocationFilter(t *testing.T) {
	c := newTestCatalog()
	table := DefaultSemanticTable()

	items := c.ItemsForTerms(table, []string{"cerveza"}, "centro")
	assert.Empty(t, items, "the IPA is jardin-only")

	items = c.ItemsForTerms(table, []string{"cerveza"}, "jardin")
	require.Len(t, items, 1)
	assert.Equal(t, "cv-ipa", items[0].ID)
}

func TestItemsForTerms_OnlyAvailableItems(t *testing.T) {
	c := newTestCatalog()
	table := DefaultSemanticTable()

	items := c.ItemsForTerms(table, []string{"pizza"}, "")
	for _, item := range items {
		assert.True(t, item.Available)
	}
}
