// internal/store/admin.go
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"simmer-assistant/internal/common/errors"
	"simmer-assistant/internal/models"
)

// ==========================
// Events
// ==========================

// ActiveEvents returns upcoming active events, soonest first.
func (s *Store) ActiveEvents(ctx context.Context) ([]models.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, location_id, title, description, starts_at, ends_at, active
		FROM events WHERE active = TRUE AND ends_at > NOW()
		ORDER BY starts_at`)
	if err != nil {
		return nil, errors.NewCatalogLookupFailedError(err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.LocationID, &e.Title, &e.Description, &e.StartsAt, &e.EndsAt, &e.Active); err != nil {
			return nil, errors.NewCatalogLookupFailedError(err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// SaveEvent inserts or replaces an event. A missing id is generated.
func (s *Store) SaveEvent(ctx context.Context, e *models.Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (id, location_id, title, description, starts_at, ends_at, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			location_id = EXCLUDED.location_id, title = EXCLUDED.title,
			description = EXCLUDED.description, starts_at = EXCLUDED.starts_at,
			ends_at = EXCLUDED.ends_at, active = EXCLUDED.active`,
		e.ID, e.LocationID, e.Title, e.Description, e.StartsAt, e.EndsAt, e.Active)
	if err != nil {
		return errors.NewAdminUpdateFailedError("event", err)
	}
	return nil
}

// DeleteEvent removes an event.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return errors.NewAdminUpdateFailedError("event", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NewResourceNotFoundError("event", id)
	}
	return nil
}

// ==========================
// Specials
// ==========================

// ActiveSpecials returns every active promotion.
func (s *Store) ActiveSpecials(ctx context.Context) ([]models.Special, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, day_of_week, discount, active
		FROM specials WHERE active = TRUE
		ORDER BY day_of_week, title`)
	if err != nil {
		return nil, errors.NewCatalogLookupFailedError(err)
	}
	defer rows.Close()

	var specials []models.Special
	for rows.Next() {
		var sp models.Special
		if err := rows.Scan(&sp.ID, &sp.Title, &sp.Description, &sp.DayOfWeek, &sp.Discount, &sp.Active); err != nil {
			return nil, errors.NewCatalogLookupFailedError(err)
		}
		specials = append(specials, sp)
	}
	return specials, rows.Err()
}

// SaveSpecial inserts or replaces a promotion.
func (s *Store) SaveSpecial(ctx context.Context, sp *models.Special) error {
	if sp.ID == "" {
		sp.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO specials (id, title, description, day_of_week, discount, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title, description = EXCLUDED.description,
			day_of_week = EXCLUDED.day_of_week, discount = EXCLUDED.discount,
			active = EXCLUDED.active`,
		sp.ID, sp.Title, sp.Description, sp.DayOfWeek, sp.Discount, sp.Active)
	if err != nil {
		return errors.NewAdminUpdateFailedError("special", err)
	}
	return nil
}

// DeleteSpecial removes a promotion.
func (s *Store) DeleteSpecial(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM specials WHERE id = $1`, id)
	if err != nil {
		return errors.NewAdminUpdateFailedError("special", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NewResourceNotFoundError("special", id)
	}
	return nil
}

// ==========================
// Site settings
// ==========================

// Settings returns every key/value pair.
func (s *Store) Settings(ctx context.Context) ([]models.SiteSetting, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value, updated_at FROM site_settings ORDER BY key`)
	if err != nil {
		return nil, errors.NewCatalogLookupFailedError(err)
	}
	defer rows.Close()

	var settings []models.SiteSetting
	for rows.Next() {
		var st models.SiteSetting
		if err := rows.Scan(&st.Key, &st.Value, &st.UpdatedAt); err != nil {
			return nil, errors.NewCatalogLookupFailedError(err)
		}
		settings = append(settings, st)
	}
	return settings, rows.Err()
}

// PutSetting writes one key/value pair.
func (s *Store) PutSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO site_settings (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value, time.Now().UTC())
	if err != nil {
		return errors.NewAdminUpdateFailedError("setting", err)
	}
	return nil
}
