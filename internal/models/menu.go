// internal/models/menu.go
package models

// Category is the closed set of menu categories used across both brands.
type Category string

const (
	CategoryEntradas        Category = "entradas"
	CategoryEnsaladas       Category = "ensaladas"
	CategoryPastas          Category = "pastas"
	CategoryPizzas          Category = "pizzas"
	CategoryPizzasEspecial  Category = "pizzas-especiales"
	CategoryPlatosFuertes   Category = "platos-fuertes"
	CategoryMariscos        Category = "mariscos"
	CategoryBebidasFrias    Category = "bebidas-frias"
	CategoryBebidasCaliente Category = "bebidas-calientes"
	CategoryCervezas        Category = "cervezas"
	CategoryPostres         Category = "postres"
	CategoryMenuInfantil    Category = "menu-infantil"
)

// AllCategories lists every valid category in display order.
var AllCategories = []Category{
	CategoryEntradas,
	CategoryEnsaladas,
	CategoryPastas,
	CategoryPizzas,
	CategoryPizzasEspecial,
	CategoryPlatosFuertes,
	CategoryMariscos,
	CategoryBebidasFrias,
	CategoryBebidasCaliente,
	CategoryCervezas,
	CategoryPostres,
	CategoryMenuInfantil,
}

// IsValidCategory reports whether c is one of the known categories.
func IsValidCategory(c Category) bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// MenuItem is a dish or drink carried by one or more locations.
//
// Price is the base price. PricePersonal is set only for pizza-type items,
// which carry a personal and a large price and must render both.
// LocationPrices overrides the base price for specific locations.
type MenuItem struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	NameEN        string             `json:"nameEn,omitempty"`
	Description   string             `json:"description"`
	DescriptionEN string             `json:"descriptionEn,omitempty"`
	Price         float64            `json:"price"`
	PricePersonal float64            `json:"pricePersonal,omitempty"`
	LocationPrices map[string]float64 `json:"locationPrices,omitempty"`
	Category      Category           `json:"category"`
	Tags          []string           `json:"tags,omitempty"`
	BestSeller    bool               `json:"bestSeller"`
	Available     bool               `json:"available"`
	Locations     []string           `json:"locations"`
}

// HasTag reports whether the item carries the given free-form tag.
func (m *MenuItem) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// IsPizza reports whether the item carries a dual personal/large price.
func (m *MenuItem) IsPizza() bool {
	return m.PricePersonal > 0
}

// IsExclusive reports whether the item is carried by exactly one location.
func (m *MenuItem) IsExclusive() bool {
	return len(m.Locations) == 1
}

// AvailableAt reports whether the item is carried by the given location.
// An empty location list means the item is carried everywhere.
func (m *MenuItem) AvailableAt(locationID string) bool {
	if len(m.Locations) == 0 {
		return true
	}
	for _, id := range m.Locations {
		if id == locationID {
			return true
		}
	}
	return false
}
