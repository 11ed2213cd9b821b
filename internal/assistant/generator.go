// internal/assistant/generator.go
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"simmer-assistant/internal/catalog"
	"simmer-assistant/internal/common/logger"
	"simmer-assistant/internal/common/metrics"
	"simmer-assistant/internal/models"
)

// MenuReader is the catalog read model the generator consumes. Only
// available items are returned.
type MenuReader interface {
	MenuItems(ctx context.Context) ([]models.MenuItem, error)
	Locations(ctx context.Context) ([]models.Location, error)
}

// OrderReader is the order-history read model: up to the five most recent
// orders for a phone number, newest first.
type OrderReader interface {
	RecentOrders(ctx context.Context, phone string) ([]models.Order, error)
}

// PromoReader surfaces admin-managed events and day specials.
type PromoReader interface {
	ActiveEvents(ctx context.Context) ([]models.Event, error)
	ActiveSpecials(ctx context.Context) ([]models.Special, error)
}

// Reply is what the generator hands back to the transport layer.
type Reply struct {
	Text           string            `json:"text"`
	SuggestedItems []models.MenuItem `json:"suggestedItems"`
	Actions        []string          `json:"actions"`
}

// Action tokens the presentation layer maps to navigation or another
// classifier round-trip.
const (
	ActionMenu         = "menu"
	ActionCheckout     = "checkout"
	ActionViewCart     = "view_cart"
	ActionRequestPhone = "request_phone"
	ActionTrackOrder   = "track_order"
	ActionCallLocation = "call_location"
	ActionViewEvents   = "view_events"
	ActionJoinLoyalty  = "join_loyalty"
)

// Generator produces a natural-language reply plus suggestions for a
// classified intent. Every store lookup that fails is caught here and
// converted into a generic apologetic reply; Generate never returns an error
// to the caller.
type Generator struct {
	profile        *Profile
	menu           MenuReader
	orders         OrderReader
	promos         PromoReader
	maxSuggestions int
	logger         logger.Logger
}

// NewGenerator wires a generator for one assistant profile. orders and promos
// may be nil when the profile does not use them.
func NewGenerator(profile *Profile, menu MenuReader, orders OrderReader, promos PromoReader, maxSuggestions int, log logger.Logger) *Generator {
	if maxSuggestions <= 0 {
		maxSuggestions = 6
	}
	return &Generator{
		profile:        profile,
		menu:           menu,
		orders:         orders,
		promos:         promos,
		maxSuggestions: maxSuggestions,
		logger:         log.WithFields(map[string]interface{}{"assistant": profile.Name}),
	}
}

// Generate builds the reply for one classified message.
func (g *Generator) Generate(ctx context.Context, intent Intent, entities Entities, message string, conv models.ConversationContext) Reply {
	lang := conv.Language
	if lang == "" {
		lang = DetectLanguage(message)
	}
	if conv.Now.IsZero() {
		conv.Now = time.Now()
	}

	items, err := g.menu.MenuItems(ctx)
	if err != nil {
		g.logger.Error("menu lookup failed", map[string]interface{}{"error": err.Error()})
		metrics.LookupFailures.WithLabelValues("menu").Inc()
		return g.fallbackReply(lang)
	}
	locations, err := g.menu.Locations(ctx)
	if err != nil {
		g.logger.Error("location lookup failed", map[string]interface{}{"error": err.Error()})
		metrics.LookupFailures.WithLabelValues("locations").Inc()
		return g.fallbackReply(lang)
	}
	cat := catalog.New(items, locations)

	locationID := entities.LocationID
	if locationID == "" {
		locationID = conv.LocationID
	}
	if locationID == "" && !g.profile.EnableLocationRouting {
		locationID = g.profile.DefaultLocation
	}

	switch intent {
	case IntentGreeting:
		return g.greet(cat, conv, lang, locationID)
	case IntentThanks:
		return Reply{
			Text:    pick(lang, "¡Con mucho gusto! Aquí estoy si se te antoja algo más.", "You're very welcome! I'm here if you crave anything else."),
			Actions: []string{ActionMenu},
		}
	case IntentBye:
		return Reply{
			Text: pick(lang, "¡Hasta pronto! Te esperamos con el horno caliente.", "See you soon! The oven will be waiting."),
		}
	case IntentHelp:
		return Reply{
			Text: pick(lang,
				"Puedo mostrarte el menú, recomendarte platos, contarte de eventos y ayudarte con tu pedido. Pregúntame por ejemplo «¿qué pizzas tienen?»",
				"I can show you the menu, recommend dishes, tell you about events and help with your order. Try asking \"what pizzas do you have?\""),
			Actions: []string{ActionMenu, ActionViewCart},
		}
	case IntentMenu:
		return g.menuOverview(cat, lang, locationID)
	case IntentCategory:
		return g.browseCategory(cat, entities, lang, locationID)
	case IntentSemanticFood:
		return g.semanticFood(cat, entities, lang, locationID)
	case IntentDietary:
		return g.dietary(cat, entities, lang, locationID)
	case IntentSeafood:
		return g.seafood(cat, lang, locationID)
	case IntentBestSeller:
		return g.bestSellers(cat, conv, lang, locationID)
	case IntentPrice:
		return g.priceInquiry(cat, message, lang, locationID)
	case IntentRecommend:
		return g.recommend(ctx, cat, conv, lang, locationID)
	case IntentLocation:
		return g.locationInfo(cat, entities, lang)
	case IntentDelivery:
		return g.deliveryHours(cat, lang, locationID)
	case IntentEvents:
		return g.events(ctx, lang)
	case IntentLoyalty:
		return g.loyalty(conv, lang)
	case IntentTrackOrder:
		return g.trackOrder(ctx, conv, lang)
	case IntentRepeatOrder:
		return g.repeatOrder(ctx, cat, conv, lang)
	case IntentViewCart:
		return g.viewCart(conv, lang)
	default:
		return Reply{
			Text: pick(lang,
				"No estoy segura de haber entendido. Puedo mostrarte el menú o recomendarte algo rico, ¿te parece?",
				"I'm not sure I caught that. I can show you the menu or recommend something tasty, shall I?"),
			Actions: []string{ActionMenu},
		}
	}
}

// ==========================
// Intent branches
// ==========================

func (g *Generator) greet(cat *catalog.Catalog, conv models.ConversationContext, lang, locationID string) Reply {
	text := g.profile.Greeting(lang, conv.VisitCount)
	if conv.CustomerName != "" {
		text = pick(lang, fmt.Sprintf("¡Hola, %s! ", conv.CustomerName), fmt.Sprintf("Hi, %s! ", conv.CustomerName)) + text
	}
	if conv.LoyaltyTier == models.TierGold || conv.LoyaltyTier == models.TierPlatinum {
		text += pick(lang,
			" Como miembro "+string(conv.LoyaltyTier)+" de SimmerLovers, hoy tienes postre de cortesía.",
			" As a SimmerLovers "+string(conv.LoyaltyTier)+" member, dessert is on us today.")
	}

	suggestions := g.cap(cat.ForLocation(cat.BestSellers(), locationID))
	return Reply{Text: text, SuggestedItems: suggestions, Actions: []string{ActionMenu}}
}

func (g *Generator) menuOverview(cat *catalog.Catalog, lang, locationID string) Reply {
	cats := cat.Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	text := pick(lang,
		"Nuestra carta tiene: "+strings.Join(names, ", ")+". ¿Qué categoría quieres ver?",
		"Our menu covers: "+strings.Join(names, ", ")+". Which category would you like?")
	return Reply{
		Text:           text,
		SuggestedItems: g.cap(cat.ForLocation(cat.BestSellers(), locationID)),
		Actions:        []string{ActionMenu},
	}
}

func (g *Generator) browseCategory(cat *catalog.Catalog, entities Entities, lang, locationID string) Reply {
	items := cat.ForLocation(cat.ByCategory(entities.Category), locationID)
	if entities.Dietary != "" {
		items = filterByTag(items, entities.Dietary)
	}
	if len(items) == 0 {
		return Reply{
			Text: pick(lang,
				"Por ahora no tenemos platos disponibles en esa categoría. ¿Te muestro otra?",
				"We don't have dishes available in that category right now. Want to see another?"),
			Actions: []string{ActionMenu},
		}
	}
	return Reply{
		Text:           g.itemListText(items, lang, locationID),
		SuggestedItems: g.cap(items),
		Actions:        []string{ActionMenu, ActionViewCart},
	}
}

func (g *Generator) semanticFood(cat *catalog.Catalog, entities Entities, lang, locationID string) Reply {
	items := cat.ItemsForTerms(g.profile.Table, entities.SemanticTerms, locationID)
	if len(items) == 0 {
		return Reply{
			Text: pick(lang,
				"No encontré nada con eso, pero seguro algo del menú te antoja.",
				"I couldn't find anything for that, but something on the menu is bound to tempt you."),
			Actions: []string{ActionMenu},
		}
	}

	fragment := ""
	if term := g.profile.Table.Lookup(entities.SemanticTerms[0]); term != nil {
		fragment = pick(lang, term.ReplyES, term.ReplyEN)
	}
	return Reply{
		Text:           fragment + "\n" + g.itemListText(items, lang, locationID),
		SuggestedItems: g.cap(items),
		Actions:        []string{ActionMenu, ActionViewCart},
	}
}

func (g *Generator) dietary(cat *catalog.Catalog, entities Entities, lang, locationID string) Reply {
	tag := entities.Dietary
	if tag == "" {
		tag = "vegetarian"
	}
	items := cat.ForLocation(cat.ByTag(tag), locationID)
	if entities.Category != "" {
		items = filterByCategory(items, entities.Category)
	}
	if len(items) == 0 {
		return Reply{
			Text: pick(lang,
				"No tengo opciones marcadas así en este momento, pero pregúntame por ensaladas o pastas.",
				"I don't have options tagged that way right now, but ask me about salads or pastas."),
			Actions: []string{ActionMenu},
		}
	}
	return Reply{
		Text:           pick(lang, "Estas opciones encajan con lo que buscas:\n", "These options fit what you're after:\n") + g.itemListText(items, lang, locationID),
		SuggestedItems: g.cap(items),
		Actions:        []string{ActionMenu, ActionViewCart},
	}
}

func (g *Generator) seafood(cat *catalog.Catalog, lang, locationID string) Reply {
	items := cat.ItemsForTerms(g.profile.Table, []string{"mariscos"}, locationID)
	if len(items) == 0 {
		items = cat.ForLocation(cat.ByCategory(models.CategoryMariscos), locationID)
	}
	if len(items) == 0 {
		return Reply{
			Text:    pick(lang, "Hoy no tenemos mariscos disponibles, lo siento.", "We have no seafood available today, sorry."),
			Actions: []string{ActionMenu},
		}
	}
	return Reply{
		Text:           pick(lang, "Del mar a tu mesa:\n", "From the sea to your table:\n") + g.itemListText(items, lang, locationID),
		SuggestedItems: g.cap(items),
		Actions:        []string{ActionMenu, ActionViewCart},
	}
}

func (g *Generator) bestSellers(cat *catalog.Catalog, conv models.ConversationContext, lang, locationID string) Reply {
	items := cat.ForLocation(cat.BestSellers(), locationID)
	if len(items) == 0 {
		items = cat.ForLocation(cat.Items(), locationID)
	}
	return Reply{
		Text:           pick(lang, "Los favoritos de la casa:\n", "The house favorites:\n") + g.itemListText(items, lang, locationID),
		SuggestedItems: g.cap(items),
		Actions:        []string{ActionMenu, ActionViewCart},
	}
}

func (g *Generator) priceInquiry(cat *catalog.Catalog, message, lang, locationID string) Reply {
	item := cat.FindItem(g.profile.Table, message)
	if item == nil {
		return Reply{
			Text: pick(lang,
				"¿De cuál plato quieres saber el precio? Dime el nombre y te lo digo al instante.",
				"Which dish would you like the price for? Tell me the name and I'll check right away."),
			Actions: []string{ActionMenu},
		}
	}
	return Reply{
		Text: pick(lang,
			fmt.Sprintf("%s cuesta %s.", item.Name, catalog.FormatPrice(item, locationID)),
			fmt.Sprintf("%s is %s.", displayName(item, lang), catalog.FormatPrice(item, locationID))),
		SuggestedItems: []models.MenuItem{*item},
		Actions:        []string{ActionViewCart},
	}
}

func (g *Generator) recommend(ctx context.Context, cat *catalog.Catalog, conv models.ConversationContext, lang, locationID string) Reply {
	// Lunch leans lighter; dinner leans hearty. The sets deliberately differ.
	hour := conv.Now.Hour()
	var pool []models.MenuItem
	var lead string
	if hour >= 11 && hour < 15 {
		pool = append(cat.ByCategory(models.CategoryEnsaladas), cat.ByCategory(models.CategoryPlatosFuertes)...)
		lead = pick(lang, "Para el almuerzo te sugiero:", "For lunch I'd suggest:")
	} else {
		pool = append(cat.ByCategory(models.CategoryPizzas), cat.ByCategory(models.CategoryMariscos)...)
		lead = pick(lang, "Para esta noche te sugiero:", "For tonight I'd suggest:")
	}
	pool = cat.ForLocation(pool, locationID)
	if len(pool) == 0 {
		pool = cat.ForLocation(cat.BestSellers(), locationID)
	}

	text := lead + "\n" + g.itemListText(pool, lang, locationID)
	if promo := g.todaysSpecialLine(ctx, conv.Now, lang); promo != "" {
		text += "\n" + promo
	}
	return Reply{
		Text:           text,
		SuggestedItems: g.cap(pool),
		Actions:        []string{ActionMenu, ActionViewCart},
	}
}

func (g *Generator) locationInfo(cat *catalog.Catalog, entities Entities, lang string) Reply {
	if g.profile.EnableLocationRouting && entities.LocationID != "" {
		loc := cat.Location(entities.LocationID)
		if loc != nil {
			exclusives := g.cap(cat.Exclusives(loc.ID))
			text := pick(lang,
				fmt.Sprintf("%s te espera. Escríbenos al WhatsApp %s para reservar.", loc.Name, loc.WhatsApp),
				fmt.Sprintf("%s is waiting for you. Message us on WhatsApp at %s to book.", loc.Name, loc.WhatsApp))
			if len(exclusives) > 0 {
				text += pick(lang, " Solo ahí encuentras:\n", " Only there you'll find:\n") + g.itemListText(exclusives, lang, loc.ID)
			}
			return Reply{Text: text, SuggestedItems: exclusives, Actions: []string{ActionCallLocation}}
		}
	}

	var lines []string
	for _, loc := range cat.Locations() {
		lines = append(lines, fmt.Sprintf("• %s — WhatsApp %s", loc.Name, loc.WhatsApp))
	}
	return Reply{
		Text:    pick(lang, "Nos encuentras en:\n", "You can find us at:\n") + strings.Join(lines, "\n"),
		Actions: []string{ActionCallLocation},
	}
}

func (g *Generator) deliveryHours(cat *catalog.Catalog, lang, locationID string) Reply {
	contact := ""
	if loc := cat.Location(locationID); loc != nil {
		contact = loc.WhatsApp
	} else if locs := cat.Locations(); len(locs) > 0 {
		contact = locs[0].WhatsApp
	}
	return Reply{
		Text: pick(lang,
			fmt.Sprintf("Abrimos todos los días de 11:30 a 22:00. Para delivery escríbenos al WhatsApp %s.", contact),
			fmt.Sprintf("We're open every day from 11:30 to 22:00. For delivery message us on WhatsApp at %s.", contact)),
		Actions: []string{ActionCallLocation},
	}
}

func (g *Generator) events(ctx context.Context, lang string) Reply {
	if g.promos == nil {
		return Reply{
			Text:    pick(lang, "Pregunta en tu local más cercano por los eventos de esta semana.", "Ask your nearest location about this week's events."),
			Actions: []string{ActionViewEvents},
		}
	}
	evts, err := g.promos.ActiveEvents(ctx)
	if err != nil {
		g.logger.Error("events lookup failed", map[string]interface{}{"error": err.Error()})
		metrics.LookupFailures.WithLabelValues("events").Inc()
		return g.fallbackReply(lang)
	}
	if len(evts) == 0 {
		return Reply{
			Text:    pick(lang, "Por ahora no hay eventos programados, pero pronto anunciaremos más.", "No events scheduled right now, but more are coming soon."),
			Actions: []string{ActionViewEvents},
		}
	}
	var lines []string
	for _, e := range evts {
		lines = append(lines, fmt.Sprintf("• %s — %s", e.Title, e.StartsAt.Format("Mon 02 Jan 15:04")))
	}
	return Reply{
		Text:    pick(lang, "Esto es lo que viene:\n", "Here's what's coming up:\n") + strings.Join(lines, "\n"),
		Actions: []string{ActionViewEvents},
	}
}

func (g *Generator) loyalty(conv models.ConversationContext, lang string) Reply {
	if conv.LoyaltyTier == "" {
		return Reply{
			Text: pick(lang,
				"SimmerLovers te da puntos por cada pedido y sorpresas en tu cumpleaños. ¿Te unes?",
				"SimmerLovers earns you points on every order plus birthday surprises. Want to join?"),
			Actions: []string{ActionJoinLoyalty},
		}
	}
	return Reply{
		Text: pick(lang,
			fmt.Sprintf("Eres miembro %s con %d puntos. ¡Sigue sumando para subir de nivel!", conv.LoyaltyTier, conv.Points),
			fmt.Sprintf("You're a %s member with %d points. Keep going to reach the next tier!", conv.LoyaltyTier, conv.Points)),
		Actions: []string{ActionMenu},
	}
}

func (g *Generator) trackOrder(ctx context.Context, conv models.ConversationContext, lang string) Reply {
	if !g.profile.EnableOrderTracking || g.orders == nil {
		return Reply{
			Text:    pick(lang, "Para consultar tu pedido escríbenos por WhatsApp y te atendemos al momento.", "To check on your order, message us on WhatsApp and we'll help right away."),
			Actions: []string{ActionCallLocation},
		}
	}
	if conv.Phone == "" {
		return Reply{
			Text: pick(lang,
				"Para buscar tu pedido necesito el número de teléfono con el que ordenaste. ¿Me lo compartes?",
				"To look up your order I need the phone number you ordered with. Could you share it?"),
			Actions: []string{ActionRequestPhone},
		}
	}

	orders, err := g.orders.RecentOrders(ctx, conv.Phone)
	if err != nil {
		g.logger.Error("order lookup failed", map[string]interface{}{"error": err.Error()})
		metrics.LookupFailures.WithLabelValues("orders").Inc()
		return g.fallbackReply(lang)
	}
	if len(orders) == 0 {
		return Reply{
			Text: pick(lang,
				"No encontré pedidos recientes con ese número. ¿Quieres ver el menú y hacer uno nuevo?",
				"I couldn't find recent orders for that number. Want to browse the menu and place one?"),
			Actions: []string{ActionMenu},
		}
	}

	latest := orders[0]
	ref := latest.OrderNumber
	if ref == "" {
		ref = latest.ID
	}
	return Reply{
		Text: pick(lang,
			fmt.Sprintf("Tu pedido %s está «%s» por un total de %s.", ref, latest.Status, catalog.FormatAmount(latest.Total)),
			fmt.Sprintf("Your order %s is \"%s\" for a total of %s.", ref, latest.Status, catalog.FormatAmount(latest.Total))),
		Actions: []string{ActionTrackOrder},
	}
}

func (g *Generator) repeatOrder(ctx context.Context, cat *catalog.Catalog, conv models.ConversationContext, lang string) Reply {
	if !g.profile.EnableOrderTracking || g.orders == nil {
		return Reply{
			Text:    pick(lang, "Para repetir un pedido escríbenos por WhatsApp.", "To repeat an order, message us on WhatsApp."),
			Actions: []string{ActionCallLocation},
		}
	}
	if conv.Phone == "" {
		return Reply{
			Text: pick(lang,
				"¡Claro! Dame el número de teléfono con el que pediste y te lo repito.",
				"Of course! Give me the phone number you ordered with and I'll set it up again."),
			Actions: []string{ActionRequestPhone},
		}
	}

	orders, err := g.orders.RecentOrders(ctx, conv.Phone)
	if err != nil {
		g.logger.Error("order lookup failed", map[string]interface{}{"error": err.Error()})
		metrics.LookupFailures.WithLabelValues("orders").Inc()
		return g.fallbackReply(lang)
	}
	if len(orders) == 0 {
		return Reply{
			Text:    pick(lang, "No encontré un pedido anterior con ese número.", "I couldn't find a previous order for that number."),
			Actions: []string{ActionMenu},
		}
	}

	var suggestions []models.MenuItem
	for _, line := range orders[0].Items {
		if item := cat.Item(line.ItemID); item != nil && item.Available {
			suggestions = append(suggestions, *item)
		}
	}
	if len(suggestions) == 0 {
		return Reply{
			Text:    pick(lang, "Los platos de tu último pedido ya no están disponibles, pero el menú tiene nuevas delicias.", "The dishes from your last order aren't available anymore, but the menu has new treats."),
			Actions: []string{ActionMenu},
		}
	}
	return Reply{
		Text: pick(lang,
			fmt.Sprintf("Tu último pedido fue por %s. ¿Lo agrego al carrito?", catalog.FormatAmount(orders[0].Total)),
			fmt.Sprintf("Your last order came to %s. Shall I add it to the cart?", catalog.FormatAmount(orders[0].Total))),
		SuggestedItems: g.cap(suggestions),
		Actions:        []string{ActionCheckout, ActionViewCart},
	}
}

func (g *Generator) viewCart(conv models.ConversationContext, lang string) Reply {
	if len(conv.Cart) == 0 {
		return Reply{
			Text:    pick(lang, "Tu carrito está vacío. ¿Te muestro el menú?", "Your cart is empty. Shall I show you the menu?"),
			Actions: []string{ActionMenu},
		}
	}
	var lines []string
	for _, line := range conv.Cart {
		lines = append(lines, fmt.Sprintf("• %dx %s — %s", line.Quantity, line.Name, catalog.FormatAmount(line.Price*float64(line.Quantity))))
	}
	return Reply{
		Text: pick(lang, "Llevas en tu carrito:\n", "In your cart:\n") + strings.Join(lines, "\n") +
			pick(lang, fmt.Sprintf("\nTotal: %s", catalog.FormatAmount(conv.CartTotal())), fmt.Sprintf("\nTotal: %s", catalog.FormatAmount(conv.CartTotal()))),
		Actions: []string{ActionCheckout, ActionMenu},
	}
}

// ==========================
// Helpers
// ==========================

func (g *Generator) fallbackReply(lang string) Reply {
	return Reply{
		Text: pick(lang,
			"Lo siento, algo falló de mi lado. ¿Lo intentamos de nuevo en un momento?",
			"Sorry, something went wrong on my end. Shall we try again in a moment?"),
		SuggestedItems: nil,
		Actions:        []string{ActionMenu},
	}
}

func (g *Generator) todaysSpecialLine(ctx context.Context, now time.Time, lang string) string {
	if g.promos == nil {
		return ""
	}
	specials, err := g.promos.ActiveSpecials(ctx)
	if err != nil {
		g.logger.Warn("specials lookup failed", map[string]interface{}{"error": err.Error()})
		return ""
	}
	day := int(now.Weekday())
	for _, s := range specials {
		if s.DayOfWeek == day || s.DayOfWeek == -1 {
			return pick(lang, "Hoy además: "+s.Title, "Also today: "+s.Title)
		}
	}
	return ""
}

func (g *Generator) itemListText(items []models.MenuItem, lang, locationID string) string {
	capped := g.cap(items)
	lines := make([]string, len(capped))
	for i, item := range capped {
		lines[i] = fmt.Sprintf("• %s — %s", displayName(&item, lang), catalog.FormatPrice(&item, locationID))
	}
	return strings.Join(lines, "\n")
}

func (g *Generator) cap(items []models.MenuItem) []models.MenuItem {
	if len(items) > g.maxSuggestions {
		return items[:g.maxSuggestions]
	}
	return items
}

func pick(lang, es, en string) string {
	if lang == "en" {
		return en
	}
	return es
}

func displayName(item *models.MenuItem, lang string) string {
	if lang == "en" && item.NameEN != "" {
		return item.NameEN
	}
	return item.Name
}

func filterByTag(items []models.MenuItem, tag string) []models.MenuItem {
	var out []models.MenuItem
	for _, item := range items {
		if item.HasTag(tag) {
			out = append(out, item)
		}
	}
	return out
}

func filterByCategory(items []models.MenuItem, category models.Category) []models.MenuItem {
	var out []models.MenuItem
	for _, item := range items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}
