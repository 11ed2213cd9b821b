// internal/catalog/search.go
package catalog

import (
	"strings"

	"simmer-assistant/internal/models"
)

// FindItem resolves a free-text fragment to a single menu item. Resolution
// order is the contract for "the user typed a dish name":
//
//  1. exact name match
//  2. name substring match
//  3. per-word name substring match (words of two characters or fewer ignored)
//  4. semantic-term category/keyword match
//  5. description substring match
//
// The first hit wins; nil means no resolution.
func (c *Catalog) FindItem(table *SemanticTable, query string) *models.MenuItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	items := c.Items()

	// 1. exact name
	for i := range items {
		if strings.ToLower(items[i].Name) == q || strings.ToLower(items[i].NameEN) == q {
			return &items[i]
		}
	}

	// 2. name substring, either direction
	for i := range items {
		name := strings.ToLower(items[i].Name)
		if strings.Contains(name, q) || strings.Contains(q, name) {
			return &items[i]
		}
	}

	// 3. per-word substring
	for _, word := range strings.Fields(q) {
		if len(word) <= 2 {
			continue
		}
		for i := range items {
			if strings.Contains(strings.ToLower(items[i].Name), word) {
				return &items[i]
			}
		}
	}

	// 4. semantic terms
	if table != nil {
		if terms := table.ExtractTerms(q); len(terms) > 0 {
			if hits := c.ItemsForTerms(table, terms, ""); len(hits) > 0 {
				return c.Item(hits[0].ID)
			}
		}
	}

	// 5. description substring
	for _, word := range strings.Fields(q) {
		if len(word) <= 2 {
			continue
		}
		for i := range items {
			if strings.Contains(strings.ToLower(items[i].Description), word) {
				return &items[i]
			}
		}
	}

	return nil
}
