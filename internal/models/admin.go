// internal/models/admin.go
package models

import "time"

// Event is an admin-managed happening at a location (live music, trivia night).
type Event struct {
	ID          string    `json:"id"`
	LocationID  string    `json:"locationId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt,omitempty"`
	Active      bool      `json:"active"`
}

// Special is an admin-managed promotion, optionally pinned to a day of week.
type Special struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	DayOfWeek   int     `json:"dayOfWeek"` // 0=Sunday ... 6=Saturday, -1 for every day
	Discount    float64 `json:"discount,omitempty"`
	Active      bool    `json:"active"`
}

// SiteSetting is a free-form key/value pair editable from the admin pages.
type SiteSetting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}
