// internal/assistant/intent.go
package assistant

import (
	"regexp"
	"strings"

	"simmer-assistant/internal/catalog"
	"simmer-assistant/internal/models"
)

// Intent is the closed set of things a user message can be classified as.
type Intent string

const (
	IntentGreeting     Intent = "greeting"
	IntentThanks       Intent = "thanks"
	IntentBye          Intent = "bye"
	IntentHelp         Intent = "help"
	IntentTrackOrder   Intent = "track_order"
	IntentRepeatOrder  Intent = "repeat_order"
	IntentViewCart     Intent = "view_cart"
	IntentEvents       Intent = "events"
	IntentDelivery     Intent = "delivery_hours"
	IntentLocation     Intent = "location"
	IntentLoyalty      Intent = "loyalty"
	IntentBestSeller   Intent = "bestseller"
	IntentSeafood      Intent = "seafood"
	IntentDietary      Intent = "dietary"
	IntentPrice        Intent = "price"
	IntentRecommend    Intent = "recommend"
	IntentCategory     Intent = "category"
	IntentMenu         Intent = "menu"
	IntentSemanticFood Intent = "semantic_food"
	IntentGeneral      Intent = "general"
)

// Entities is the structured information extracted alongside an intent.
type Entities struct {
	Category      models.Category `json:"category,omitempty"`
	Dietary       string          `json:"dietary,omitempty"`
	LocationID    string          `json:"locationId,omitempty"`
	SemanticTerms []string        `json:"semanticTerms,omitempty"`
}

// intentRule is one pattern test. Rules are evaluated in declaration order
// and the first match wins; that ordering is the tie-break contract, so more
// specific intents come first.
type intentRule struct {
	intent  Intent
	pattern *regexp.Regexp
}

// categoryPatterns maps message vocabulary to a menu category entity.
// Checked in declaration order.
var categoryPatterns = []struct {
	pattern  *regexp.Regexp
	category models.Category
}{
	{regexp.MustCompile(`pizzas?\s+especial|especiales`), models.CategoryPizzasEspecial},
	{regexp.MustCompile(`pizza`), models.CategoryPizzas},
	{regexp.MustCompile(`pastas?|spaghetti|lasañ|lasagna`), models.CategoryPastas},
	{regexp.MustCompile(`ensaladas?|salads?`), models.CategoryEnsaladas},
	{regexp.MustCompile(`entradas?|appetizers?|starters?`), models.CategoryEntradas},
	{regexp.MustCompile(`mariscos?|seafood`), models.CategoryMariscos},
	{regexp.MustCompile(`platos?\s+fuertes?|mains?\b`), models.CategoryPlatosFuertes},
	{regexp.MustCompile(`postres?|desserts?`), models.CategoryPostres},
	{regexp.MustCompile(`cervezas?|beers?`), models.CategoryCervezas},
	{regexp.MustCompile(`bebidas?\s+calientes?|caf[eé]|t[eé]\s+caliente`), models.CategoryBebidasCaliente},
	{regexp.MustCompile(`bebidas?|drinks?|refrescos?|jugos?`), models.CategoryBebidasFrias},
	{regexp.MustCompile(`infantil|kids|niñ`), models.CategoryMenuInfantil},
}

var dietaryPattern = regexp.MustCompile(`vegetarian|vegan|sin\s+gluten|gluten[-\s]?free|sin\s+carne`)

// Classifier reduces a free-text message to one intent plus extracted
// entities. Detection is deterministic, side-effect-free, and depends only on
// the message text.
type Classifier struct {
	rules []intentRule
	table *catalog.SemanticTable
}

// NewClassifier builds a classifier over the given semantic table.
func NewClassifier(table *catalog.SemanticTable) *Classifier {
	return &Classifier{
		table: table,
		rules: []intentRule{
			{IntentGreeting, regexp.MustCompile(`^\s*(hola|hello|hi\b|hey\b|buen[oa]s\s*(d[ií]as|tardes|noches)?|saludos|qu[eé] tal)`)},
			{IntentThanks, regexp.MustCompile(`gracias|thank\s*you|thanks|muy amable`)},
			{IntentBye, regexp.MustCompile(`adi[oó]s|hasta luego|bye\b|goodbye|nos vemos|chao`)},
			{IntentHelp, regexp.MustCompile(`ayuda|help\b|c[oó]mo funciona|qu[eé] puedes hacer|what can you do`)},
			{IntentTrackOrder, regexp.MustCompile(`mi pedido|mi orden|track|rastrear|estado de|d[oó]nde est[aá] mi|where('?s| is) my order`)},
			{IntentRepeatOrder, regexp.MustCompile(`repetir|lo de siempre|lo mismo|pedir de nuevo|order again|same as last`)},
			{IntentViewCart, regexp.MustCompile(`carrito|mi carro|cart\b|checkout|pagar`)},
			{IntentEvents, regexp.MustCompile(`eventos?|m[uú]sica en vivo|live music|trivia|promoci[oó]n de hoy`)},
			{IntentDelivery, regexp.MustCompile(`delivery|domicilio|env[ií]o|horarios?|hours?\b|a qu[eé] hora|abren|cierran|open|close`)},
			{IntentLocation, regexp.MustCompile(`ubicaci[oó]n|direcci[oó]n|sucursal|d[oó]nde (est[aá]n|queda)|where are you|location\b|address`)},
			{IntentLoyalty, regexp.MustCompile(`simmer\s*lovers|puntos|points|lealtad|loyalty|recompensas?|rewards?`)},
			{IntentBestSeller, regexp.MustCompile(`m[aá]s (vendido|pedido|popular)|best\s*sellers?|populares|favoritos de la casa`)},
			{IntentSeafood, regexp.MustCompile(`mariscos|seafood`)},
			{IntentDietary, regexp.MustCompile(`vegetarian|vegan[oa]?|sin gluten|gluten[-\s]?free|sin carne|al[eé]rgic`)},
			{IntentPrice, regexp.MustCompile(`cu[aá]nto (cuesta|vale)|precio|how much|price\b|cost\b`)},
			{IntentRecommend, regexp.MustCompile(`recomi[eé]nda|recomendaci[oó]n|qu[eé] me (sugieres|recomiendas)|suggest|recommend|sorpr[eé]ndeme`)},
			{IntentMenu, regexp.MustCompile(`men[uú]|carta\b|qu[eé] (tienen|venden|hay para comer)|what do you (have|sell)`)},
		},
	}
}

// Detect classifies a message. Evaluation order: the hand-ordered rule list,
// then a category vocabulary pass, then the semantic table as a secondary
// pass, then the general fallback. Empty input falls through to the fallback.
func (c *Classifier) Detect(message string) (Intent, Entities) {
	lowered := strings.ToLower(strings.TrimSpace(message))
	entities := Entities{}
	if lowered == "" {
		return IntentGeneral, entities
	}

	// Entities are extracted regardless of which rule wins, so a dietary
	// mention still reaches the generator when the intent is e.g. category.
	if m := dietaryPattern.FindString(lowered); m != "" {
		entities.Dietary = normalizeDietary(m)
	}
	for _, cp := range categoryPatterns {
		if cp.pattern.MatchString(lowered) {
			entities.Category = cp.category
			break
		}
	}

	for _, rule := range c.rules {
		if rule.pattern.MatchString(lowered) {
			return rule.intent, entities
		}
	}

	if entities.Category != "" {
		return IntentCategory, entities
	}

	if terms := c.table.ExtractTerms(lowered); len(terms) > 0 {
		entities.SemanticTerms = terms
		return IntentSemanticFood, entities
	}

	return IntentGeneral, entities
}

func normalizeDietary(match string) string {
	switch {
	case strings.Contains(match, "vegan"):
		return "vegan"
	case strings.Contains(match, "gluten"):
		return "gluten-free"
	default:
		return "vegetarian"
	}
}

// DetectLocation resolves a location mention in the message against an alias
// table (alias -> location id). Longest alias wins so "simmer garden centro"
// style overlaps resolve to the more specific entry. Returns "" for no match.
func DetectLocation(message string, aliases map[string]string) string {
	lowered := strings.ToLower(message)
	best := ""
	bestLen := 0
	for alias, id := range aliases {
		if strings.Contains(lowered, alias) && len(alias) > bestLen {
			best = id
			bestLen = len(alias)
		}
	}
	return best
}
