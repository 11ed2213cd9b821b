// internal/catalog/catalog.go
package catalog

import "simmer-assistant/internal/models"

// Catalog is an in-memory snapshot of the menu and the locations that carry it.
// It is rebuilt from the store on startup and on admin changes; all query
// methods are read-only and safe for concurrent use after construction.
type Catalog struct {
	items     []models.MenuItem
	locations []models.Location
	byID      map[string]*models.MenuItem
}

// New builds a catalog from a menu snapshot. Unavailable items are kept (the
// admin pages need them) but excluded from every suggestion query.
func New(items []models.MenuItem, locations []models.Location) *Catalog {
	c := &Catalog{
		items:     items,
		locations: locations,
		byID:      make(map[string]*models.MenuItem, len(items)),
	}
	for i := range c.items {
		c.byID[c.items[i].ID] = &c.items[i]
	}
	return c
}

// Items returns every available item, in catalog order.
func (c *Catalog) Items() []models.MenuItem {
	out := make([]models.MenuItem, 0, len(c.items))
	for _, item := range c.items {
		if item.Available {
			out = append(out, item)
		}
	}
	return out
}

// Item looks an item up by id, available or not.
func (c *Catalog) Item(id string) *models.MenuItem {
	return c.byID[id]
}

// Len returns the number of available items.
func (c *Catalog) Len() int {
	return len(c.Items())
}

// ByCategory returns available items in the given category.
func (c *Catalog) ByCategory(category models.Category) []models.MenuItem {
	var out []models.MenuItem
	for _, item := range c.items {
		if item.Available && item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// BestSellers returns available items flagged as best sellers.
func (c *Catalog) BestSellers() []models.MenuItem {
	var out []models.MenuItem
	for _, item := range c.items {
		if item.Available && item.BestSeller {
			out = append(out, item)
		}
	}
	return out
}

// ByTag returns available items carrying the given tag.
func (c *Catalog) ByTag(tag string) []models.MenuItem {
	var out []models.MenuItem
	for _, item := range c.items {
		if item.Available && item.HasTag(tag) {
			out = append(out, item)
		}
	}
	return out
}

// ForLocation filters items to those carried by the given location. An empty
// locationID returns the input unchanged.
func (c *Catalog) ForLocation(items []models.MenuItem, locationID string) []models.MenuItem {
	if locationID == "" {
		return items
	}
	var out []models.MenuItem
	for _, item := range items {
		if item.AvailableAt(locationID) {
			out = append(out, item)
		}
	}
	return out
}

// Exclusives returns available items carried by exactly the given location.
func (c *Catalog) Exclusives(locationID string) []models.MenuItem {
	var out []models.MenuItem
	for _, item := range c.items {
		if item.Available && item.IsExclusive() && item.Locations[0] == locationID {
			out = append(out, item)
		}
	}
	return out
}

// Locations returns the location snapshot.
func (c *Catalog) Locations() []models.Location {
	return c.locations
}

// Location looks a location up by id.
func (c *Catalog) Location(id string) *models.Location {
	for i := range c.locations {
		if c.locations[i].ID == id {
			return &c.locations[i]
		}
	}
	return nil
}

// Categories returns the distinct categories present among available items,
// in the fixed category order.
func (c *Catalog) Categories() []models.Category {
	present := make(map[models.Category]bool)
	for _, item := range c.items {
		if item.Available {
			present[item.Category] = true
		}
	}
	var out []models.Category
	for _, cat := range models.AllCategories {
		if present[cat] {
			out = append(out, cat)
		}
	}
	return out
}
