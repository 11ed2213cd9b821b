// internal/catalog/pricing.go
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"simmer-assistant/internal/models"
)

// CurrencySymbol prefixes every formatted price.
const CurrencySymbol = "$"

// ResolvePrice returns the price of an item at a location, preferring the
// location-specific override and falling back to the base price.
func ResolvePrice(item *models.MenuItem, locationID string) float64 {
	if locationID != "" && item.LocationPrices != nil {
		if override, ok := item.LocationPrices[locationID]; ok {
			return override
		}
	}
	return item.Price
}

// FormatAmount renders a numeric amount as a two-decimal currency string.
// No rounding beyond standard decimal formatting.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%s%.2f", CurrencySymbol, amount)
}

// ParseAmount recovers the numeric value from a string produced by
// FormatAmount, exact to the cent.
func ParseAmount(s string) (float64, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), CurrencySymbol)
	return strconv.ParseFloat(trimmed, 64)
}

// FormatPrice renders an item's price at a location. Pizza-type items carry a
// personal and a large price and always render both, personal first.
func FormatPrice(item *models.MenuItem, locationID string) string {
	if item.IsPizza() {
		return fmt.Sprintf("%s personal / %s grande",
			FormatAmount(item.PricePersonal),
			FormatAmount(ResolvePrice(item, locationID)))
	}
	return FormatAmount(ResolvePrice(item, locationID))
}
