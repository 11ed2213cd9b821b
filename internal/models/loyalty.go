// internal/models/loyalty.go
package models

import "time"

// Tier is a SimmerLovers loyalty level.
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// TierForPoints maps a points balance to its tier.
func TierForPoints(points int) Tier {
	switch {
	case points >= 2000:
		return TierPlatinum
	case points >= 1000:
		return TierGold
	case points >= 400:
		return TierSilver
	default:
		return TierBronze
	}
}

// LoyaltyProfile is a SimmerLovers member as read from the store.
type LoyaltyProfile struct {
	Phone      string    `json:"phone"`
	Name       string    `json:"name,omitempty"`
	Points     int       `json:"points"`
	Tier       Tier      `json:"tier"`
	VisitCount int       `json:"visitCount"`
	Favorites  []string  `json:"favorites,omitempty"`
	JoinedAt   time.Time `json:"joinedAt"`
}
