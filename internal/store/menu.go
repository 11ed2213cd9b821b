// internal/store/menu.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"simmer-assistant/internal/common/errors"
	"simmer-assistant/internal/models"
)

const menuSelectColumns = `id, name, name_en, description, description_en,
	price, price_personal, location_prices, category, tags, best_seller, available, locations`

// MenuItems loads the full menu, available and not. The catalog layer filters
// availability per query.
func (s *Store) MenuItems(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+menuSelectColumns+` FROM menu_items ORDER BY category, name`)
	if err != nil {
		return nil, errors.NewCatalogLookupFailedError(err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, errors.NewCatalogLookupFailedError(err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewCatalogLookupFailedError(err)
	}
	return items, nil
}

// MenuItem loads one item by id.
func (s *Store) MenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+menuSelectColumns+` FROM menu_items WHERE id = $1`, id)
	item, err := scanMenuItem(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewResourceNotFoundError("menu item", id)
	}
	if err != nil {
		return nil, errors.NewCatalogLookupFailedError(err)
	}
	return item, nil
}

// UpsertMenuItem inserts or replaces a menu item. Used by the admin pages and
// the seeder.
func (s *Store) UpsertMenuItem(ctx context.Context, item models.MenuItem) error {
	locationPrices, err := json.Marshal(item.LocationPrices)
	if err != nil {
		return errors.NewAdminUpdateFailedError("menu item", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO menu_items (id, name, name_en, description, description_en,
			price, price_personal, location_prices, category, tags, best_seller, available, locations)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, name_en = EXCLUDED.name_en,
			description = EXCLUDED.description, description_en = EXCLUDED.description_en,
			price = EXCLUDED.price, price_personal = EXCLUDED.price_personal,
			location_prices = EXCLUDED.location_prices, category = EXCLUDED.category,
			tags = EXCLUDED.tags, best_seller = EXCLUDED.best_seller,
			available = EXCLUDED.available, locations = EXCLUDED.locations`,
		item.ID, item.Name, item.NameEN, item.Description, item.DescriptionEN,
		item.Price, item.PricePersonal, locationPrices, string(item.Category),
		pq.Array(item.Tags), item.BestSeller, item.Available, pq.Array(item.Locations))
	if err != nil {
		return errors.NewAdminUpdateFailedError("menu item", err)
	}
	return nil
}

// SetItemAvailability flips one item's availability flag.
func (s *Store) SetItemAvailability(ctx context.Context, id string, available bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE menu_items SET available = $2 WHERE id = $1`, id, available)
	if err != nil {
		return errors.NewAdminUpdateFailedError("menu item", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NewResourceNotFoundError("menu item", id)
	}
	return nil
}

// Locations loads every restaurant location.
func (s *Store) Locations(ctx context.Context) ([]models.Location, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, brand, whatsapp, address, features FROM locations ORDER BY name`)
	if err != nil {
		return nil, errors.NewCatalogLookupFailedError(err)
	}
	defer rows.Close()

	var locations []models.Location
	for rows.Next() {
		var loc models.Location
		var features pq.StringArray
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Brand, &loc.WhatsApp, &loc.Address, &features); err != nil {
			return nil, errors.NewCatalogLookupFailedError(err)
		}
		loc.Features = features
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewCatalogLookupFailedError(err)
	}
	return locations, nil
}

// UpsertLocation inserts or replaces a location.
func (s *Store) UpsertLocation(ctx context.Context, loc models.Location) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO locations (id, name, brand, whatsapp, address, features)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, brand = EXCLUDED.brand, whatsapp = EXCLUDED.whatsapp,
			address = EXCLUDED.address, features = EXCLUDED.features`,
		loc.ID, loc.Name, string(loc.Brand), loc.WhatsApp, loc.Address, pq.Array(loc.Features))
	if err != nil {
		return errors.NewAdminUpdateFailedError("location", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMenuItem(row rowScanner) (*models.MenuItem, error) {
	var item models.MenuItem
	var category string
	var tags, locations pq.StringArray
	var locationPrices []byte

	err := row.Scan(&item.ID, &item.Name, &item.NameEN, &item.Description, &item.DescriptionEN,
		&item.Price, &item.PricePersonal, &locationPrices, &category,
		&tags, &item.BestSeller, &item.Available, &locations)
	if err != nil {
		return nil, err
	}

	item.Category = models.Category(category)
	item.Tags = tags
	item.Locations = locations
	if len(locationPrices) > 0 {
		if err := json.Unmarshal(locationPrices, &item.LocationPrices); err != nil {
			return nil, fmt.Errorf("decode location_prices for %s: %w", item.ID, err)
		}
	}
	return &item, nil
}
