// cmd/tools/menu-seeder/main.go
//
// Seeds the postgres catalog with the two-brand menu, locations, a starter
// set of events and specials, and the site settings the admin pages expect.
// Curated dishes keep their real names and prices; descriptions that the
// menu team has not written yet are filled with generated placeholder copy.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jaswdr/faker"

	"simmer-assistant/internal/common/config"
	"simmer-assistant/internal/common/database"
	"simmer-assistant/internal/common/logger"
	"simmer-assistant/internal/models"
	"simmer-assistant/internal/store"
)

var fake = faker.New()

func main() {
	wipe := flag.Bool("wipe", false, "delete existing menu rows before seeding")
	skipPromos := flag.Bool("skip-promos", false, "seed only locations and menu items")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}
	log := logger.NewZapAdapter(logger.New(cfg.Logging.Level, cfg.Logging.Format))

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		log.WithError(err).Error("postgres connection failed", nil)
		os.Exit(1)
	}
	defer pg.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := pg.Ping(ctx); err != nil {
		log.WithError(err).Error("postgres unreachable", nil)
		os.Exit(1)
	}

	if *wipe {
		for _, table := range []string{"menu_items", "locations", "events", "specials"} {
			if _, err := pg.Exec(ctx, "DELETE FROM "+table); err != nil {
				log.WithError(err).WithFields(map[string]interface{}{"table": table}).Error("wipe failed", nil)
				os.Exit(1)
			}
		}
		log.Info("existing catalog rows deleted", nil)
	}

	st := store.New(pg.DB, log)

	for _, loc := range seedLocations() {
		if err := st.UpsertLocation(ctx, loc); err != nil {
			log.WithError(err).WithFields(map[string]interface{}{"location": loc.ID}).Error("location upsert failed", nil)
			os.Exit(1)
		}
	}

	items := seedMenu()
	for _, item := range items {
		if err := st.UpsertMenuItem(ctx, item); err != nil {
			log.WithError(err).WithFields(map[string]interface{}{"item": item.ID}).Error("menu upsert failed", nil)
			os.Exit(1)
		}
	}

	if !*skipPromos {
		for _, event := range seedEvents() {
			ev := event
			if err := st.SaveEvent(ctx, &ev); err != nil {
				log.WithError(err).Error("event upsert failed", nil)
				os.Exit(1)
			}
		}
		for _, special := range seedSpecials() {
			sp := special
			if err := st.SaveSpecial(ctx, &sp); err != nil {
				log.WithError(err).Error("special upsert failed", nil)
				os.Exit(1)
			}
		}
		for key, value := range seedSettings() {
			if err := st.PutSetting(ctx, key, value); err != nil {
				log.WithError(err).Error("setting upsert failed", nil)
				os.Exit(1)
			}
		}
	}

	log.Info("seed complete", map[string]interface{}{
		"locations": len(seedLocations()),
		"items":     len(items),
	})
}

func seedLocations() []models.Location {
	return []models.Location{
		{
			ID:       "centro",
			Name:     "Simmer Down Centro",
			Brand:    models.BrandSimmerDown,
			WhatsApp: "+51 999 111 222",
			Address:  "Av. Larco 812, Miraflores",
			Features: []string{"delivery", "terraza", "pet-friendly"},
		},
		{
			ID:       "jardin",
			Name:     "Simmer Garden Costa",
			Brand:    models.BrandSimmerGarden,
			WhatsApp: "+51 999 333 444",
			Address:  "Malecón Cisneros 340, Miraflores",
			Features: []string{"delivery", "vista al mar", "bar"},
		},
	}
}

// dish is a compact row in the curated menu table below. Empty descriptions
// are filled with generated copy so the storefront never renders a blank card.
type dish struct {
	id, name, nameEN, desc string
	price, personal        float64
	category               models.Category
	tags                   []string
	bestSeller             bool
	locations              []string
	locationPrices         map[string]float64
}

func seedMenu() []models.MenuItem {
	dishes := []dish{
		{id: "en-tequenos", name: "Tequeños de Queso", nameEN: "Cheese Tequeños", desc: "Crocantes, con salsa de guacamole de la casa.", price: 16.50, category: models.CategoryEntradas, tags: []string{"vegetarian"}},
		{id: "en-alitas", name: "Alitas BBQ", nameEN: "BBQ Wings", price: 22.00, category: models.CategoryEntradas, bestSeller: true},
		{id: "es-cesar", name: "Ensalada César", nameEN: "Caesar Salad", price: 19.90, category: models.CategoryEnsaladas},
		{id: "es-quinoa", name: "Ensalada de Quinoa", nameEN: "Quinoa Salad", price: 21.50, category: models.CategoryEnsaladas, tags: []string{"vegan", "gluten-free"}},
		{id: "pa-carbonara", name: "Pasta Carbonara", nameEN: "Carbonara", price: 26.90, category: models.CategoryPastas},
		{id: "pa-pesto", name: "Fettuccine al Pesto", price: 24.50, category: models.CategoryPastas, tags: []string{"vegetarian"}},
		{id: "pz-margherita", name: "Pizza Margherita", desc: "Tomate, mozzarella fresca y albahaca.", price: 14.00, personal: 8.50, category: models.CategoryPizzas, tags: []string{"vegetarian"}, bestSeller: true},
		{id: "pz-pepperoni", name: "Pizza Pepperoni", price: 16.00, personal: 9.50, category: models.CategoryPizzas},
		{id: "pz-hawaiana", name: "Pizza Hawaiana", price: 15.50, personal: 9.00, category: models.CategoryPizzas},
		{id: "pe-trufa", name: "Pizza Trufa Negra", nameEN: "Black Truffle Pizza", price: 29.00, personal: 17.50, category: models.CategoryPizzasEspecial, tags: []string{"vegetarian"}},
		{id: "pe-parrillera", name: "Pizza Parrillera", price: 27.50, personal: 16.00, category: models.CategoryPizzasEspecial, bestSeller: true},
		{id: "pf-lomo", name: "Lomo Saltado", nameEN: "Lomo Saltado", desc: "Clásico criollo con papas doradas y arroz.", price: 32.00, category: models.CategoryPlatosFuertes, bestSeller: true},
		{id: "pf-pollo", name: "Pollo a la Parrilla", nameEN: "Grilled Chicken", price: 27.00, category: models.CategoryPlatosFuertes, tags: []string{"gluten-free"}},
		{id: "mr-camarones", name: "Camarones al Ajillo", nameEN: "Garlic Shrimp", price: 18.90, category: models.CategoryMariscos, bestSeller: true},
		{id: "mr-ceviche", name: "Ceviche Clásico", nameEN: "Classic Ceviche", desc: "Pesca del día, leche de tigre y camote.", price: 28.50, category: models.CategoryMariscos, tags: []string{"gluten-free"}, locationPrices: map[string]float64{"jardin": 31.00}},
		{id: "bf-limonada", name: "Limonada Frozen", price: 9.50, category: models.CategoryBebidasFrias, tags: []string{"vegan"}},
		{id: "bf-chicha", name: "Chicha Morada", price: 8.00, category: models.CategoryBebidasFrias, tags: []string{"vegan"}},
		{id: "bc-cappuccino", name: "Cappuccino", price: 10.50, category: models.CategoryBebidasCaliente, tags: []string{"vegetarian"}},
		{id: "cv-ipa", name: "IPA Artesanal del Jardín", nameEN: "House IPA", price: 15.00, category: models.CategoryCervezas, locations: []string{"jardin"}},
		{id: "cv-lager", name: "Lager Clásica", price: 12.00, category: models.CategoryCervezas},
		{id: "ps-brownie", name: "Brownie con Helado", nameEN: "Brownie Sundae", price: 6.50, category: models.CategoryPostres, tags: []string{"vegetarian"}, bestSeller: true},
		{id: "ps-tresleches", name: "Tres Leches", price: 12.50, category: models.CategoryPostres, tags: []string{"vegetarian"}},
		{id: "mi-nuggets", name: "Nuggets con Papas", nameEN: "Nuggets & Fries", price: 14.00, category: models.CategoryMenuInfantil},
		{id: "mi-minipizza", name: "Mini Pizza de Queso", price: 12.00, category: models.CategoryMenuInfantil, tags: []string{"vegetarian"}},
	}

	items := make([]models.MenuItem, 0, len(dishes))
	for _, d := range dishes {
		desc := d.desc
		if desc == "" {
			desc = fake.Lorem().Sentence(8)
		}
		items = append(items, models.MenuItem{
			ID:             d.id,
			Name:           d.name,
			NameEN:         d.nameEN,
			Description:    desc,
			DescriptionEN:  fake.Lorem().Sentence(8),
			Price:          d.price,
			PricePersonal:  d.personal,
			LocationPrices: d.locationPrices,
			Category:       d.category,
			Tags:           d.tags,
			BestSeller:     d.bestSeller,
			Available:      true,
			Locations:      d.locations,
		})
	}
	return items
}

func seedEvents() []models.Event {
	nextFriday := time.Now()
	for nextFriday.Weekday() != time.Friday {
		nextFriday = nextFriday.AddDate(0, 0, 1)
	}
	start := time.Date(nextFriday.Year(), nextFriday.Month(), nextFriday.Day(), 20, 0, 0, 0, time.Local)

	return []models.Event{
		{
			LocationID:  "centro",
			Title:       "Noche de Música en Vivo",
			Description: "Banda local en la terraza, entrada libre.",
			StartsAt:    start,
			EndsAt:      start.Add(3 * time.Hour),
			Active:      true,
		},
		{
			LocationID:  "jardin",
			Title:       "Cata de Cervezas Artesanales",
			Description: fake.Lorem().Sentence(10),
			StartsAt:    start.AddDate(0, 0, 1),
			EndsAt:      start.AddDate(0, 0, 1).Add(2 * time.Hour),
			Active:      true,
		},
	}
}

func seedSpecials() []models.Special {
	return []models.Special{
		{Title: "2x1 en pizzas", Description: "Todas las pizzas clásicas, solo en salón.", DayOfWeek: 2, Discount: 50, Active: true},
		{Title: "Happy hour de limonadas", DayOfWeek: -1, Discount: 30, Active: true},
	}
}

func seedSettings() map[string]string {
	return map[string]string{
		"delivery_hours":   "12:00-22:00",
		"delivery_zones":   "Miraflores, Barranco, San Isidro",
		"loyalty_name":     "SimmerLovers",
		"contact_whatsapp": "+51 999 111 222",
	}
}
