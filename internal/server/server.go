// Package server exposes the public API, the two chat assistants and the
// admin surface over chi.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"simmer-assistant/internal/assistant"
	"simmer-assistant/internal/common/logger"
	"simmer-assistant/internal/common/ratelimit"
	"simmer-assistant/internal/models"
)

// Repository is the persistence surface the handlers consume. *store.Store
// satisfies it.
type Repository interface {
	MenuItems(ctx context.Context) ([]models.MenuItem, error)
	UpsertMenuItem(ctx context.Context, item models.MenuItem) error
	SetItemAvailability(ctx context.Context, id string, available bool) error

	Locations(ctx context.Context) ([]models.Location, error)
	UpsertLocation(ctx context.Context, loc models.Location) error

	CreateOrder(ctx context.Context, order *models.Order) error
	OrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	RecentOrders(ctx context.Context, phone string) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error

	ProfileByPhone(ctx context.Context, phone string) (*models.LoyaltyProfile, error)
	EnrollLoyalty(ctx context.Context, phone, name string) (*models.LoyaltyProfile, error)
	AddLoyaltyPoints(ctx context.Context, phone string, points int) error

	ActiveEvents(ctx context.Context) ([]models.Event, error)
	SaveEvent(ctx context.Context, e *models.Event) error
	DeleteEvent(ctx context.Context, id string) error
	ActiveSpecials(ctx context.Context) ([]models.Special, error)
	SaveSpecial(ctx context.Context, sp *models.Special) error
	DeleteSpecial(ctx context.Context, id string) error
	Settings(ctx context.Context) ([]models.SiteSetting, error)
	PutSetting(ctx context.Context, key, value string) error
}

// Server holds the wired handler dependencies.
type Server struct {
	repo    Repository
	anima   *assistant.Service
	sophia  *assistant.Service
	limiter *ratelimit.Limiter
	version string
	logger  logger.Logger
}

// New assembles the server. limiter may be nil, which disables rate limiting
// (tests use this).
func New(repo Repository, anima, sophia *assistant.Service, limiter *ratelimit.Limiter, version string, log logger.Logger) *Server {
	return &Server{
		repo:    repo,
		anima:   anima,
		sophia:  sophia,
		limiter: limiter,
		version: version,
		logger:  log.WithFields(map[string]interface{}{"component": "server"}),
	}
}

// Router builds the full route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/assistant", func(r chi.Router) {
			r.Get("/health", s.handleAssistantHealth)
			// The limiter runs before the body is even read, so an
			// over-quota client never reaches the classifier.
			r.Group(func(r chi.Router) {
				r.Use(s.rateLimit)
				r.Post("/anima", s.handleAssistantMessage(s.anima))
				r.Post("/sophia", s.handleAssistantMessage(s.sophia))
				r.Post("/anima/nudge", s.handleNudge(s.anima))
				r.Post("/sophia/nudge", s.handleNudge(s.sophia))
			})
		})

		r.Get("/menu", s.handleMenu)
		r.Get("/menu/categories/{category}", s.handleMenuCategory)
		r.Get("/locations", s.handleLocations)

		r.Post("/orders", s.handleCreateOrder)
		r.Get("/orders/{orderNumber}", s.handleOrderByNumber)
		r.Get("/customers/{phone}/orders", s.handleCustomerOrders)

		r.Get("/loyalty/{phone}", s.handleLoyaltyProfile)
		r.Post("/loyalty", s.handleLoyaltyEnroll)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/menu", s.handleAdminUpsertMenuItem)
			r.Put("/menu/{id}/availability", s.handleAdminItemAvailability)
			r.Put("/locations", s.handleAdminUpsertLocation)

			r.Put("/orders/{id}/status", s.handleAdminOrderStatus)
			r.Post("/loyalty/{phone}/points", s.handleAdminAddPoints)

			r.Get("/events", s.handleAdminListEvents)
			r.Post("/events", s.handleAdminSaveEvent)
			r.Delete("/events/{id}", s.handleAdminDeleteEvent)

			r.Get("/specials", s.handleAdminListSpecials)
			r.Post("/specials", s.handleAdminSaveSpecial)
			r.Delete("/specials/{id}", s.handleAdminDeleteSpecial)

			r.Get("/settings", s.handleAdminListSettings)
			r.Put("/settings", s.handleAdminPutSetting)
		})
	})

	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
