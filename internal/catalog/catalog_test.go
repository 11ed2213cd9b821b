package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simmer-assistant/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func testLocations() []models.Location {
	return []models.Location{
		{ID: "centro", Name: "Simmer Down Centro", Brand: models.BrandSimmerDown, WhatsApp: "+50588881111"},
		{ID: "jardin", Name: "Simmer Garden", Brand: models.BrandSimmerGarden, WhatsApp: "+50588882222"},
	}
}

func testItems() []models.MenuItem {
	return []models.MenuItem{
		{
			ID: "pz-margherita", Name: "Pizza Margherita", NameEN: "Margherita Pizza",
			Description: "Tomate, mozzarella y albahaca fresca",
			Price:       14.00, PricePersonal: 8.50,
			Category: models.CategoryPizzas, Tags: []string{"vegetarian"},
			BestSeller: true, Available: true,
			Locations: []string{"centro", "jardin"},
		},
		{
			ID: "pz-diabla", Name: "Pizza a la Diabla",
			Description: "Pepperoni, jalapeño y salsa picante",
			Price:       16.00, PricePersonal: 9.50,
			Category: models.CategoryPizzasEspecial, Tags: []string{"spicy", "signature"},
			Available: true,
			Locations: []string{"centro"},
		},
		{
			ID: "mr-camarones", Name: "Camarones al Ajillo",
			Description: "Camarones salteados en mantequilla de ajo",
			Price:       18.50,
			LocationPrices: map[string]float64{"jardin": 19.50},
			Category:       models.CategoryMariscos, Tags: []string{"seafood", "signature"},
			BestSeller: true, Available: true,
			Locations: []string{"centro", "jardin"},
		},
		{
			ID: "ps-brownie", Name: "Brownie con Helado",
			Description: "Brownie de chocolate con helado de vainilla",
			Price:       6.50,
			Category:    models.CategoryPostres, Available: true,
			Locations: []string{"centro", "jardin"},
		},
		{
			ID: "en-cesar", Name: "Ensalada César",
			Description: "Lechuga romana, crutones y aderezo césar",
			Price:       9.00,
			Category:    models.CategoryEnsaladas, Tags: []string{"vegetarian"},
			Available: true,
			Locations: []string{"centro", "jardin"},
		},
		{
			ID: "pf-lomo", Name: "Lomo a la Parrilla",
			Description: "Lomo de res con chimichurri",
			Price:       21.00,
			Category:    models.CategoryPlatosFuertes, Available: true,
			Locations: []string{"jardin"},
		},
		{
			ID: "cv-ipa", Name: "IPA Artesanal",
			Description: "Cerveza artesanal de la casa",
			Price:       4.50,
			Category:    models.CategoryCervezas, Tags: []string{"craft"},
			Available: true,
			Locations: []string{"jardin"},
		},
		{
			ID: "mi-nuggets", Name: "Mini Nuggets",
			Description: "Nuggets de pollo con papas",
			Price:       7.00,
			Category:    models.CategoryMenuInfantil, Tags: []string{"kids"},
			Available: true,
			Locations: []string{"centro", "jardin"},
		},
		{
			ID: "pz-retirada", Name: "Pizza Cuatro Quesos",
			Description: "Fuera de temporada",
			Price:       15.00, PricePersonal: 9.00,
			Category: models.CategoryPizzas, Available: false,
			Locations: []string{"centro"},
		},
	}
}

func newTestCatalog() *Catalog {
	return New(testItems(), testLocations())
}

// ==========================
// Catalog Query Tests
// ==========================

func TestCatalog_ItemsExcludesUnavailable(t *testing.T) {
	c := newTestCatalog()

	for _, item := range c.Items() {
		assert.True(t, item.Available)
	}
	assert.Equal(t, len(testItems())-1, c.Len())
}

func TestCatalog_ByCategory(t *testing.T) {
	c := newTestCatalog()

	pizzas := c.ByCategory(models.CategoryPizzas)
	require.Len(t, pizzas, 1, "unavailable pizza must be excluded")
	assert.Equal(t, "pz-margherita", pizzas[0].ID)

	assert.Empty(t, c.ByCategory(models.CategoryBebidasFrias))
}

func TestCatalog_BestSellers(t *testing.T) {
	c := newTestCatalog()

	best := c.BestSellers()
	require.Len(t, best, 2)
	ids := []string{best[0].ID, best[1].ID}
	assert.Contains(t, ids, "pz-margherita")
	assert.Contains(t, ids, "mr-camarones")
}

func TestCatalog_ByTag(t *testing.T) {
	c := newTestCatalog()

	veggie := c.ByTag("vegetarian")
	require.Len(t, veggie, 2)
	for _, item := range veggie {
		assert.True(t, item.HasTag("vegetarian"))
		assert.True(t, item.Available)
	}
}

func TestCatalog_ForLocation(t *testing.T) {
	c := newTestCatalog()

	centro := c.ForLocation(c.Items(), "centro")
	for _, item := range centro {
		assert.True(t, item.AvailableAt("centro"))
	}
	// lomo and IPA are jardin-only
	for _, item := range centro {
		assert.NotEqual(t, "pf-lomo", item.ID)
		assert.NotEqual(t, "cv-ipa", item.ID)
	}

	assert.Equal(t, c.Items(), c.ForLocation(c.Items(), ""))
}

func TestCatalog_Exclusives(t *testing.T) {
	c := newTestCatalog()

	jardin := c.Exclusives("jardin")
	require.Len(t, jardin, 2)
	for _, item := range jardin {
		assert.True(t, item.IsExclusive())
		assert.Equal(t, "jardin", item.Locations[0])
	}
}

func TestCatalog_LocationLookup(t *testing.T) {
	c := newTestCatalog()

	loc := c.Location("centro")
	require.NotNil(t, loc)
	assert.Equal(t, models.BrandSimmerDown, loc.Brand)

	assert.Nil(t, c.Location("no-such"))
}

func TestCatalog_ItemLocationsReferenceValidLocations(t *testing.T) {
	c := newTestCatalog()

	for _, item := range c.Items() {
		for _, locID := range item.Locations {
			assert.NotNil(t, c.Location(locID), "item %s references unknown location %s", item.ID, locID)
		}
	}
}

func TestCatalog_Categories(t *testing.T) {
	c := newTestCatalog()

	cats := c.Categories()
	assert.Contains(t, cats, models.CategoryPizzas)
	assert.NotContains(t, cats, models.CategoryBebidasFrias)

	// fixed display order is preserved
	for i := 1; i < len(cats); i++ {
		assert.Less(t, indexOfCategory(cats[i-1]), indexOfCategory(cats[i]))
	}
}

func indexOfCategory(c models.Category) int {
	for i, known := range models.AllCategories {
		if c == known {
			return i
		}
	}
	return -1
}
