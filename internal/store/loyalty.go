// internal/store/loyalty.go
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"simmer-assistant/internal/common/errors"
	"simmer-assistant/internal/models"
)

// ProfileByPhone looks up a SimmerLovers member. A phone that is not enrolled
// returns (nil, nil) so the assistant treats the visitor as anonymous. The
// tier is derived from the live points balance, never stored.
func (s *Store) ProfileByPhone(ctx context.Context, phone string) (*models.LoyaltyProfile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT phone, name, points, visit_count, favorites, joined_at
		FROM loyalty_profiles WHERE phone = $1`, phone)

	var profile models.LoyaltyProfile
	var favorites pq.StringArray
	err := row.Scan(&profile.Phone, &profile.Name, &profile.Points,
		&profile.VisitCount, &favorites, &profile.JoinedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewLoyaltyLookupFailedError(err)
	}

	profile.Favorites = favorites
	profile.Tier = models.TierForPoints(profile.Points)
	return &profile, nil
}

// EnrollLoyalty creates a member record if the phone is new.
func (s *Store) EnrollLoyalty(ctx context.Context, phone, name string) (*models.LoyaltyProfile, error) {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO loyalty_profiles (phone, name, points, visit_count, favorites, joined_at)
		VALUES ($1, $2, 0, 0, '{}', $3)
		ON CONFLICT (phone) DO NOTHING`, phone, name, now)
	if err != nil {
		return nil, errors.NewLoyaltyLookupFailedError(err)
	}
	return s.ProfileByPhone(ctx, phone)
}

// AddLoyaltyPoints credits a member after a completed order and bumps the
// visit counter.
func (s *Store) AddLoyaltyPoints(ctx context.Context, phone string, points int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE loyalty_profiles
		SET points = points + $2, visit_count = visit_count + 1
		WHERE phone = $1`, phone, points)
	if err != nil {
		return errors.NewLoyaltyLookupFailedError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NewResourceNotFoundError("loyalty profile", phone)
	}
	return nil
}
