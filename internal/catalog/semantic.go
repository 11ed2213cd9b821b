// internal/catalog/semantic.go
package catalog

import (
	"strings"

	"simmer-assistant/internal/models"
)

// SemanticTerm maps a natural-language food concept to candidate categories,
// disambiguating keywords, and a canned reply fragment per language.
type SemanticTerm struct {
	Key        string
	Synonyms   []string
	Categories []models.Category
	Keywords   []string
	ReplyES    string
	ReplyEN    string
}

// SemanticTable is an ordered list of terms. Iteration order is the match
// order contract: ExtractTerms reports hits in table order, not input order.
type SemanticTable struct {
	terms []SemanticTerm
}

// NewSemanticTable builds a table from an ordered term list.
func NewSemanticTable(terms []SemanticTerm) *SemanticTable {
	return &SemanticTable{terms: terms}
}

// Terms exposes the ordered term list.
func (t *SemanticTable) Terms() []SemanticTerm {
	return t.terms
}

// Lookup returns the term for a key, or nil.
func (t *SemanticTable) Lookup(key string) *SemanticTerm {
	for i := range t.terms {
		if t.terms[i].Key == key {
			return &t.terms[i]
		}
	}
	return nil
}

// ExtractTerms returns the keys of every term whose key or synonym occurs in
// the lowercased input, in table order. Matching is plain substring
// containment, not word-boundary-safe: a short term like "carne" also matches
// inside longer words. That looseness is the observed contract and is kept.
func (t *SemanticTable) ExtractTerms(text string) []string {
	lowered := strings.ToLower(text)
	var matched []string
	for _, term := range t.terms {
		if strings.Contains(lowered, term.Key) {
			matched = append(matched, term.Key)
			continue
		}
		for _, syn := range term.Synonyms {
			if strings.Contains(lowered, syn) {
				matched = append(matched, term.Key)
				break
			}
		}
	}
	return matched
}

// maxSemanticResults caps ItemsForTerms output.
const maxSemanticResults = 6

// ItemsForTerms resolves matched term keys to menu items. Items whose name or
// description contains one of a term's keywords rank above items that merely
// belong to one of the term's categories. The result is de-duplicated by item
// id and capped at six entries. locationID, when set, filters to that
// location's menu.
func (c *Catalog) ItemsForTerms(table *SemanticTable, termKeys []string, locationID string) []models.MenuItem {
	var keywordHits, categoryHits []models.MenuItem
	seen := make(map[string]bool)

	for _, key := range termKeys {
		term := table.Lookup(key)
		if term == nil {
			continue
		}

		for _, item := range c.Items() {
			if seen[item.ID] {
				continue
			}
			if locationID != "" && !item.AvailableAt(locationID) {
				continue
			}

			haystack := strings.ToLower(item.Name + " " + item.Description)
			matchedKeyword := false
			for _, kw := range term.Keywords {
				if strings.Contains(haystack, kw) {
					matchedKeyword = true
					break
				}
			}

			if matchedKeyword {
				keywordHits = append(keywordHits, item)
				seen[item.ID] = true
				continue
			}

			for _, cat := range term.Categories {
				if item.Category == cat {
					categoryHits = append(categoryHits, item)
					seen[item.ID] = true
					break
				}
			}
		}
	}

	ranked := append(keywordHits, categoryHits...)
	if len(ranked) > maxSemanticResults {
		ranked = ranked[:maxSemanticResults]
	}
	return ranked
}

// DefaultSemanticTable is the shared es/en food vocabulary both assistants
// start from. Order matters: earlier terms win ties in intent detection.
func DefaultSemanticTable() *SemanticTable {
	return NewSemanticTable([]SemanticTerm{
		{
			Key:        "mariscos",
			Synonyms:   []string{"seafood", "camaron", "shrimp", "pescado", "fish", "ceviche", "pulpo"},
			Categories: []models.Category{models.CategoryMariscos},
			Keywords:   []string{"camar", "pescado", "pulpo", "ceviche", "marisco", "atun"},
			ReplyES:    "Del mar a tu mesa: esto es lo que tenemos de mariscos.",
			ReplyEN:    "From the sea to your table, here is our seafood.",
		},
		{
			Key:        "dulce",
			Synonyms:   []string{"sweet", "postre", "dessert", "chocolate", "helado"},
			Categories: []models.Category{models.CategoryPostres},
			Keywords:   []string{"chocolate", "helado", "brownie", "cheesecake", "dulce"},
			ReplyES:    "Para el antojo dulce tenemos estos postres.",
			ReplyEN:    "For a sweet craving, try one of these desserts.",
		},
		{
			Key:        "picante",
			Synonyms:   []string{"spicy", "picoso", "hot sauce", "chile"},
			Categories: []models.Category{models.CategoryPlatosFuertes, models.CategoryPizzasEspecial},
			Keywords:   []string{"picante", "diabla", "jalapeñ", "chile", "spicy"},
			ReplyES:    "¿Con ganas de picante? Estos platos tienen su toque.",
			ReplyEN:    "In the mood for heat? These dishes bring it.",
		},
		{
			Key:        "carne",
			Synonyms:   []string{"meat", "res", "beef", "lomo", "steak", "churrasco"},
			Categories: []models.Category{models.CategoryPlatosFuertes},
			Keywords:   []string{"lomo", "res", "churrasco", "costilla", "carne"},
			ReplyES:    "Para los carnívoros, estos son nuestros fuertes.",
			ReplyEN:    "For meat lovers, these are our mains.",
		},
		{
			Key:        "pasta",
			Synonyms:   []string{"spaghetti", "lasaña", "lasagna", "fettuccine", "alfredo"},
			Categories: []models.Category{models.CategoryPastas},
			Keywords:   []string{"pasta", "spaghetti", "lasañ", "fettuccine", "alfredo", "carbonara"},
			ReplyES:    "Nuestras pastas se preparan al momento.",
			ReplyEN:    "Our pastas are made to order.",
		},
		{
			Key:        "pizza",
			Synonyms:   []string{"pizzas", "margherita", "pepperoni"},
			Categories: []models.Category{models.CategoryPizzas, models.CategoryPizzasEspecial},
			Keywords:   []string{"pizza", "pepperoni", "margherita", "hawaiana"},
			ReplyES:    "Pizzas al horno de leña, en personal o grande.",
			ReplyEN:    "Wood-fired pizzas, personal or large.",
		},
		{
			Key:        "ensalada",
			Synonyms:   []string{"salad", "fresco", "light", "ligero"},
			Categories: []models.Category{models.CategoryEnsaladas},
			Keywords:   []string{"ensalada", "salad", "quinoa", "cesar"},
			ReplyES:    "Algo fresco y ligero: nuestras ensaladas.",
			ReplyEN:    "Something fresh and light: our salads.",
		},
		{
			Key:        "vegetariano",
			Synonyms:   []string{"vegetarian", "veggie", "vegano", "vegan", "sin carne"},
			Categories: []models.Category{models.CategoryEnsaladas, models.CategoryPastas, models.CategoryPizzas},
			Keywords:   []string{"vegetarian", "veggie", "vegetal"},
			ReplyES:    "Estas opciones son vegetarianas.",
			ReplyEN:    "These options are vegetarian.",
		},
		{
			Key:        "niños",
			Synonyms:   []string{"kids", "infantil", "children", "pequeños"},
			Categories: []models.Category{models.CategoryMenuInfantil},
			Keywords:   []string{"infantil", "kids", "nugget", "mini"},
			ReplyES:    "Para los pequeños tenemos el menú infantil.",
			ReplyEN:    "For the little ones we have a kids menu.",
		},
		{
			Key:        "cerveza",
			Synonyms:   []string{"beer", "artesanal", "craft", "ipa", "lager"},
			Categories: []models.Category{models.CategoryCervezas},
			Keywords:   []string{"cerveza", "ipa", "lager", "stout", "artesanal"},
			ReplyES:    "Cervezas frías, incluidas nuestras artesanales.",
			ReplyEN:    "Cold beers, including our craft selection.",
		},
		{
			Key:        "bebida",
			Synonyms:   []string{"drink", "refresco", "jugo", "juice", "limonada", "cafe", "café"},
			Categories: []models.Category{models.CategoryBebidasFrias, models.CategoryBebidasCaliente},
			Keywords:   []string{"limonada", "jugo", "cafe", "té", "soda", "batido"},
			ReplyES:    "Para acompañar, estas son nuestras bebidas.",
			ReplyEN:    "To go with your meal, here are our drinks.",
		},
		{
			Key:        "entrada",
			Synonyms:   []string{"appetizer", "starter", "para compartir", "picar"},
			Categories: []models.Category{models.CategoryEntradas},
			Keywords:   []string{"entrada", "compartir", "dedos", "nachos", "alitas"},
			ReplyES:    "Para empezar o compartir, estas entradas.",
			ReplyEN:    "To start or share, these appetizers.",
		},
	})
}
