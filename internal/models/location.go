// internal/models/location.go
package models

// Brand identifies one of the two restaurant brand families.
type Brand string

const (
	BrandSimmerDown   Brand = "simmer-down"
	BrandSimmerGarden Brand = "simmer-garden"
)

// Location is a physical restaurant a menu item can reference.
type Location struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Brand    Brand    `json:"brand"`
	WhatsApp string   `json:"whatsapp"`
	Address  string   `json:"address,omitempty"`
	Features []string `json:"features,omitempty"`
}

// HasFeature reports whether the location advertises the given feature.
func (l *Location) HasFeature(feature string) bool {
	for _, f := range l.Features {
		if f == feature {
			return true
		}
	}
	return false
}
