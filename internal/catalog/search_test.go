package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindItem_ExactNameBeatsSubstring(t *testing.T) {
	c := newTestCatalog()
	table := DefaultSemanticTable()

	item := c.FindItem(table, "pizza margherita")
	require.NotNil(t, item)
	assert.Equal(t, "pz-margherita", item.ID)
}

func TestFindItem_SubstringMatch(t *testing.T) {
	c := newTestCatalog()
	table := DefaultSemanticTable()

	item := c.FindItem(table, "margherita")
	require.NotNil(t, item)
	assert.Equal(t, "pz-margherita", item.ID)
}

func TestFindItem_PerWordIgnoresShortWords(t *testing.T) {
	c := newTestCatalog()
	table := DefaultSemanticTable()

	// "al" is ignored; "ajillo" resolves the camarones by word match.
	item := c.FindItem(table, "el al ajillo")
	require.NotNil(t, item)
	assert.Equal(t, "mr-camarones", item.ID)
}

func TestFindItem_SemanticFallback(t *testing.T) {
	c := newTestCatalog()
	table := DefaultSemanticTable()

	// No item is named "seafood"; the semantic table routes it to mariscos.
	item := c.FindItem(table, "seafood")
	require.NotNil(t, item)
	assert.Equal(t, "mr-camarones", item.ID)
}

func TestFindItem_DescriptionFallback(t *testing.T) {
	c := newTestCatalog()
	table := DefaultSemanticTable()

	item := c.FindItem(table, "chimichurri")
	require.NotNil(t, item)
	assert.Equal(t, "pf-lomo", item.ID)
}

func TestFindItem_NoMatchReturnsNil(t *testing.T) {
	c := newTestCatalog()
	table := DefaultSemanticTable()

	assert.Nil(t, c.FindItem(table, "xyzzy-nonexistent"))
	assert.Nil(t, c.FindItem(table, ""))
	assert.Nil(t, c.FindItem(nil, "zzzz"))
}

func TestFindItem_EnglishName(t *testing.T) {
	c := newTestCatalog()
	table := DefaultSemanticTable()

	item := c.FindItem(table, "Margherita Pizza")
	require.NotNil(t, item)
	assert.Equal(t, "pz-margherita", item.ID)
}
