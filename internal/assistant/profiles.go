// internal/assistant/profiles.go
package assistant

import (
	"strings"

	"simmer-assistant/internal/catalog"
	"simmer-assistant/internal/models"
)

// Profile parameterizes the shared classifier/generator core for one
// assistant persona. The two personas share everything except the behaviors
// that genuinely diverge: ANIMA tracks orders and the cart for a single
// brand, SOPHIA routes between locations.
type Profile struct {
	Name  string
	Brand models.Brand

	// GreetingsES/EN are rotated through by visit count so regulars don't
	// always see the same opener.
	GreetingsES []string
	GreetingsEN []string

	Table *catalog.SemanticTable

	// LocationAliases maps lowercase message vocabulary to location ids.
	LocationAliases map[string]string
	DefaultLocation string

	EnableOrderTracking   bool
	EnableLocationRouting bool
}

// Greeting picks an opener for the given language and visit count.
func (p *Profile) Greeting(language string, visitCount int) string {
	pool := p.GreetingsES
	if language == "en" {
		pool = p.GreetingsEN
	}
	if len(pool) == 0 {
		return ""
	}
	return pool[visitCount%len(pool)]
}

// AnimaProfile is the single-brand assistant with order tracking and cart
// awareness.
func AnimaProfile(locations []models.Location) *Profile {
	return &Profile{
		Name:  "ANIMA",
		Brand: models.BrandSimmerDown,
		GreetingsES: []string{
			"¡Hola! Soy ANIMA, tu asistente de Simmer Down. ¿Qué se te antoja hoy?",
			"¡Qué gusto verte de nuevo! ¿Buscas algo rico hoy?",
			"¡Bienvenido otra vez! ¿Repetimos lo de siempre o probamos algo nuevo?",
		},
		GreetingsEN: []string{
			"Hi! I'm ANIMA, your Simmer Down assistant. What are you craving today?",
			"Great to see you again! Looking for something tasty?",
			"Welcome back! Your usual, or something new today?",
		},
		Table:                 catalog.DefaultSemanticTable(),
		LocationAliases:       aliasesFor(locations),
		DefaultLocation:       firstLocationID(locations, models.BrandSimmerDown),
		EnableOrderTracking:   true,
		EnableLocationRouting: false,
	}
}

// SophiaProfile is the multi-location assistant that routes menu questions to
// the right restaurant.
func SophiaProfile(locations []models.Location) *Profile {
	return &Profile{
		Name:  "SOPHIA",
		Brand: models.BrandSimmerGarden,
		GreetingsES: []string{
			"¡Hola! Soy SOPHIA. ¿Para cuál de nuestros restaurantes quieres ver el menú?",
			"¡Bienvenido! Cuéntame qué buscas y te digo en cuál local lo encuentras.",
		},
		GreetingsEN: []string{
			"Hi! I'm SOPHIA. Which of our restaurants would you like to browse?",
			"Welcome! Tell me what you're after and I'll point you to the right location.",
		},
		Table:                 catalog.DefaultSemanticTable(),
		LocationAliases:       aliasesFor(locations),
		DefaultLocation:       "",
		EnableOrderTracking:   false,
		EnableLocationRouting: true,
	}
}

func aliasesFor(locations []models.Location) map[string]string {
	aliases := make(map[string]string, len(locations)*2)
	for _, loc := range locations {
		aliases[strings.ToLower(loc.Name)] = loc.ID
		aliases[strings.ToLower(loc.ID)] = loc.ID
	}
	return aliases
}

func firstLocationID(locations []models.Location, brand models.Brand) string {
	for _, loc := range locations {
		if loc.Brand == brand {
			return loc.ID
		}
	}
	if len(locations) > 0 {
		return locations[0].ID
	}
	return ""
}
