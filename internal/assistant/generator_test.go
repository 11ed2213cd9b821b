package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simmer-assistant/internal/common/logger"
	"simmer-assistant/internal/models"
)

// ==========================
// Stubs and fixtures
// ==========================

type stubMenu struct {
	items []models.MenuItem
	locs  []models.Location
	err   error
}

func (s *stubMenu) MenuItems(ctx context.Context) ([]models.MenuItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

func (s *stubMenu) Locations(ctx context.Context) ([]models.Location, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.locs, nil
}

type stubOrders struct {
	orders []models.Order
	err    error
}

func (s *stubOrders) RecentOrders(ctx context.Context, phone string) ([]models.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.orders, nil
}

type stubPromos struct {
	events   []models.Event
	specials []models.Special
	err      error
}

func (s *stubPromos) ActiveEvents(ctx context.Context) ([]models.Event, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.events, nil
}

func (s *stubPromos) ActiveSpecials(ctx context.Context) ([]models.Special, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.specials, nil
}

func genLocations() []models.Location {
	return []models.Location{
		{ID: "centro", Name: "Simmer Down Centro", Brand: models.BrandSimmerDown, WhatsApp: "+51 999 111 222"},
		{ID: "jardin", Name: "Simmer Garden Costa", Brand: models.BrandSimmerGarden, WhatsApp: "+51 999 333 444"},
	}
}

func genItems() []models.MenuItem {
	return []models.MenuItem{
		{
			ID: "pz-margherita", Name: "Pizza Margherita", NameEN: "Margherita Pizza",
			Description: "tomate, mozzarella y albahaca fresca",
			Price:       14.00, PricePersonal: 8.50,
			Category: models.CategoryPizzas, Tags: []string{"vegetarian"},
			BestSeller: true, Available: true,
		},
		{
			ID: "pz-pepperoni", Name: "Pizza Pepperoni",
			Description: "pepperoni y mozzarella",
			Price:       15.50, PricePersonal: 9.00,
			Category: models.CategoryPizzas, Available: true,
		},
		{
			ID: "mr-camarones", Name: "Camarones al Ajillo",
			Description: "camarones salteados en ajo y vino blanco",
			Price:       18.90, Category: models.CategoryMariscos,
			BestSeller: true, Available: true,
		},
		{
			ID: "ps-brownie", Name: "Brownie de la Casa",
			Description: "brownie de chocolate con helado",
			Price:       6.50, Category: models.CategoryPostres, Available: true,
		},
	}
}

func newTestGenerator(menu MenuReader, orders OrderReader, promos PromoReader) *Generator {
	return NewGenerator(AnimaProfile(genLocations()), menu, orders, promos, 6, logger.NewNoOpLogger())
}

func esContext() models.ConversationContext {
	return models.ConversationContext{Language: "es"}
}

// ==========================
// Tests
// ==========================

func TestGenerate_DietaryCategoryIntersection(t *testing.T) {
	g := newTestGenerator(&stubMenu{items: genItems(), locs: genLocations()}, nil, nil)

	reply := g.Generate(context.Background(), IntentDietary,
		Entities{Category: models.CategoryPizzas, Dietary: "vegetarian"},
		"¿tienen pizza vegetariana?", esContext())

	require.Len(t, reply.SuggestedItems, 1)
	assert.Equal(t, "pz-margherita", reply.SuggestedItems[0].ID)
	assert.Contains(t, reply.Text, "Pizza Margherita")
}

func TestGenerate_MenuLookupFailureDegradesToApology(t *testing.T) {
	g := newTestGenerator(&stubMenu{err: errors.New("connection refused")}, nil, nil)

	reply := g.Generate(context.Background(), IntentMenu, Entities{}, "ver la carta", esContext())

	assert.Contains(t, reply.Text, "Lo siento")
	assert.Empty(t, reply.SuggestedItems)
}

func TestGenerate_TrackOrderWithoutPhoneAsksForIt(t *testing.T) {
	g := newTestGenerator(&stubMenu{items: genItems(), locs: genLocations()},
		&stubOrders{orders: []models.Order{{ID: "ord-1", Total: 25}}}, nil)

	reply := g.Generate(context.Background(), IntentTrackOrder, Entities{}, "mi pedido", esContext())

	assert.Contains(t, reply.Actions, ActionRequestPhone)
	assert.Empty(t, reply.SuggestedItems)
	assert.Contains(t, reply.Text, "teléfono")
}

func TestGenerate_TrackOrderWithPhoneReportsLatest(t *testing.T) {
	orders := &stubOrders{orders: []models.Order{
		{ID: "ord-2", OrderNumber: "SD-1042", Status: models.OrderStatusPreparing, Total: 25.00},
		{ID: "ord-1", OrderNumber: "SD-1001", Status: models.OrderStatusDelivered, Total: 12.00},
	}}
	g := newTestGenerator(&stubMenu{items: genItems(), locs: genLocations()}, orders, nil)

	conv := esContext()
	conv.Phone = "+51987654321"
	reply := g.Generate(context.Background(), IntentTrackOrder, Entities{}, "estado de mi pedido", conv)

	assert.Contains(t, reply.Text, "SD-1042")
	assert.Contains(t, reply.Text, "preparing")
	assert.Contains(t, reply.Text, "$25.00")
}

func TestGenerate_OrderLookupFailureDegradesToApology(t *testing.T) {
	g := newTestGenerator(&stubMenu{items: genItems(), locs: genLocations()},
		&stubOrders{err: errors.New("timeout")}, nil)

	conv := esContext()
	conv.Phone = "+51987654321"
	reply := g.Generate(context.Background(), IntentTrackOrder, Entities{}, "mi pedido", conv)

	assert.Contains(t, reply.Text, "Lo siento")
	assert.Empty(t, reply.SuggestedItems)
}

func TestGenerate_SophiaRedirectsOrderTracking(t *testing.T) {
	g := NewGenerator(SophiaProfile(genLocations()),
		&stubMenu{items: genItems(), locs: genLocations()}, nil, nil, 6, logger.NewNoOpLogger())

	reply := g.Generate(context.Background(), IntentTrackOrder, Entities{}, "mi pedido", esContext())

	assert.Contains(t, reply.Text, "WhatsApp")
	assert.NotContains(t, reply.Actions, ActionRequestPhone)
}

func TestGenerate_RepeatOrderSuggestsLastItems(t *testing.T) {
	orders := &stubOrders{orders: []models.Order{{
		ID: "ord-3", Total: 22.50,
		Items: []models.OrderItem{
			{ItemID: "pz-margherita", Name: "Pizza Margherita", Quantity: 1, Price: 14.00},
			{ItemID: "ps-brownie", Name: "Brownie de la Casa", Quantity: 1, Price: 6.50},
		},
	}}}
	g := newTestGenerator(&stubMenu{items: genItems(), locs: genLocations()}, orders, nil)

	conv := esContext()
	conv.Phone = "+51987654321"
	reply := g.Generate(context.Background(), IntentRepeatOrder, Entities{}, "lo de siempre", conv)

	require.Len(t, reply.SuggestedItems, 2)
	assert.Equal(t, "pz-margherita", reply.SuggestedItems[0].ID)
	assert.Contains(t, reply.Actions, ActionCheckout)
	assert.Contains(t, reply.Text, "$22.50")
}

func TestGenerate_PriceInquiryUsesDualPizzaPricing(t *testing.T) {
	g := newTestGenerator(&stubMenu{items: genItems(), locs: genLocations()}, nil, nil)

	reply := g.Generate(context.Background(), IntentPrice, Entities{}, "¿cuánto cuesta la margherita?", esContext())

	assert.Contains(t, reply.Text, "$8.50 personal / $14.00 grande")
	require.Len(t, reply.SuggestedItems, 1)
	assert.Equal(t, "pz-margherita", reply.SuggestedItems[0].ID)
}

func TestGenerate_PriceInquiryUnknownDishAsksWhich(t *testing.T) {
	g := newTestGenerator(&stubMenu{items: genItems(), locs: genLocations()}, nil, nil)

	reply := g.Generate(context.Background(), IntentPrice, Entities{}, "¿precio?", esContext())

	assert.Contains(t, reply.Text, "cuál plato")
	assert.Empty(t, reply.SuggestedItems)
}

func TestGenerate_GreetingRewardsGoldMembers(t *testing.T) {
	g := newTestGenerator(&stubMenu{items: genItems(), locs: genLocations()}, nil, nil)

	conv := esContext()
	conv.CustomerName = "Valeria"
	conv.LoyaltyTier = models.TierGold
	reply := g.Generate(context.Background(), IntentGreeting, Entities{}, "hola", conv)

	assert.Contains(t, reply.Text, "Valeria")
	assert.Contains(t, reply.Text, "SimmerLovers")
	// Best sellers ride along with the greeting.
	assert.NotEmpty(t, reply.SuggestedItems)
}

func TestGenerate_GreetingEnglish(t *testing.T) {
	g := newTestGenerator(&stubMenu{items: genItems(), locs: genLocations()}, nil, nil)

	conv := models.ConversationContext{Language: "en"}
	reply := g.Generate(context.Background(), IntentGreeting, Entities{}, "hello", conv)

	assert.Contains(t, reply.Text, "ANIMA")
	assert.Contains(t, reply.Text, "craving")
}

func TestGenerate_ViewCartSumsLines(t *testing.T) {
	g := newTestGenerator(&stubMenu{items: genItems(), locs: genLocations()}, nil, nil)

	conv := esContext()
	conv.Cart = []models.CartItem{
		{Name: "Pizza Margherita", Quantity: 2, Price: 14.00},
		{Name: "Brownie de la Casa", Quantity: 1, Price: 6.50},
	}
	reply := g.Generate(context.Background(), IntentViewCart, Entities{}, "mi carrito", conv)

	assert.Contains(t, reply.Text, "2x Pizza Margherita")
	assert.Contains(t, reply.Text, "Total: $34.50")
	assert.Contains(t, reply.Actions, ActionCheckout)
}

func TestGenerate_ViewCartEmpty(t *testing.T) {
	g := newTestGenerator(&stubMenu{items: genItems(), locs: genLocations()}, nil, nil)

	reply := g.Generate(context.Background(), IntentViewCart, Entities{}, "carrito", esContext())

	assert.Contains(t, reply.Text, "vacío")
	assert.Contains(t, reply.Actions, ActionMenu)
}

func TestGenerate_SemanticFoodUsesTableReply(t *testing.T) {
	g := newTestGenerator(&stubMenu{items: genItems(), locs: genLocations()}, nil, nil)

	reply := g.Generate(context.Background(), IntentSemanticFood,
		Entities{SemanticTerms: []string{"dulce"}}, "algo dulce", esContext())

	assert.Contains(t, reply.Text, "antojo dulce")
	require.Len(t, reply.SuggestedItems, 1)
	assert.Equal(t, "ps-brownie", reply.SuggestedItems[0].ID)
}

func TestGenerate_EventsListsActive(t *testing.T) {
	promos := &stubPromos{events: []models.Event{{
		ID: "ev-1", Title: "Noche de Trivia",
		StartsAt: time.Date(2026, 9, 4, 20, 0, 0, 0, time.UTC),
	}}}
	g := newTestGenerator(&stubMenu{items: genItems(), locs: genLocations()}, nil, promos)

	reply := g.Generate(context.Background(), IntentEvents, Entities{}, "eventos", esContext())

	assert.Contains(t, reply.Text, "Noche de Trivia")
	assert.Contains(t, reply.Actions, ActionViewEvents)
}

func TestGenerate_EventsEmpty(t *testing.T) {
	g := newTestGenerator(&stubMenu{items: genItems(), locs: genLocations()}, nil, &stubPromos{})

	reply := g.Generate(context.Background(), IntentEvents, Entities{}, "eventos", esContext())

	assert.Contains(t, reply.Text, "no hay eventos")
}

func TestGenerate_RecommendAppendsDaySpecial(t *testing.T) {
	promos := &stubPromos{specials: []models.Special{
		{ID: "sp-1", Title: "2x1 en pizzas", DayOfWeek: -1, Active: true},
	}}
	g := newTestGenerator(&stubMenu{items: genItems(), locs: genLocations()}, nil, promos)

	conv := esContext()
	conv.Now = time.Date(2026, 8, 28, 20, 0, 0, 0, time.UTC) // dinner hour
	reply := g.Generate(context.Background(), IntentRecommend, Entities{}, "recomiéndame algo", conv)

	assert.Contains(t, reply.Text, "esta noche")
	assert.Contains(t, reply.Text, "2x1 en pizzas")
	assert.NotEmpty(t, reply.SuggestedItems)
}

func TestGenerate_LoyaltyEnrolledVsNot(t *testing.T) {
	g := newTestGenerator(&stubMenu{items: genItems(), locs: genLocations()}, nil, nil)

	conv := esContext()
	conv.LoyaltyTier = models.TierSilver
	conv.Points = 520
	reply := g.Generate(context.Background(), IntentLoyalty, Entities{}, "mis puntos", conv)
	assert.Contains(t, reply.Text, "520")
	assert.Contains(t, reply.Text, "silver")

	reply = g.Generate(context.Background(), IntentLoyalty, Entities{}, "puntos", esContext())
	assert.Contains(t, reply.Actions, ActionJoinLoyalty)
}

func TestGenerate_LocationRoutingShowsExclusives(t *testing.T) {
	items := append(genItems(), models.MenuItem{
		ID: "cv-ipa", Name: "IPA Artesanal", Price: 7.00,
		Category: models.CategoryCervezas, Available: true,
		Locations: []string{"jardin"},
	})
	g := NewGenerator(SophiaProfile(genLocations()),
		&stubMenu{items: items, locs: genLocations()}, nil, nil, 6, logger.NewNoOpLogger())

	reply := g.Generate(context.Background(), IntentLocation,
		Entities{LocationID: "jardin"}, "¿dónde queda el Simmer Garden?", esContext())

	assert.Contains(t, reply.Text, "Simmer Garden Costa")
	assert.Contains(t, reply.Text, "+51 999 333 444")
	require.Len(t, reply.SuggestedItems, 1)
	assert.Equal(t, "cv-ipa", reply.SuggestedItems[0].ID)
}

func TestGenerate_GeneralFallback(t *testing.T) {
	g := newTestGenerator(&stubMenu{items: genItems(), locs: genLocations()}, nil, nil)

	reply := g.Generate(context.Background(), IntentGeneral, Entities{}, "asdf", esContext())

	assert.Contains(t, reply.Actions, ActionMenu)
	assert.NotEmpty(t, reply.Text)
}
