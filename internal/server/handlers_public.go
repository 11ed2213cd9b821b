// internal/server/handlers_public.go
package server

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"simmer-assistant/internal/catalog"
	"simmer-assistant/internal/common/errors"
	"simmer-assistant/internal/models"
)

func (s *Server) loadCatalog(r *http.Request) (*catalog.Catalog, error) {
	items, err := s.repo.MenuItems(r.Context())
	if err != nil {
		return nil, err
	}
	locations, err := s.repo.Locations(r.Context())
	if err != nil {
		return nil, err
	}
	return catalog.New(items, locations), nil
}

// handleMenu returns every available item, optionally filtered by ?location=.
func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	cat, err := s.loadCatalog(r)
	if err != nil {
		writeError(w, err)
		return
	}

	items := cat.Items()
	if locationID := r.URL.Query().Get("location"); locationID != "" {
		if cat.Location(locationID) == nil {
			writeError(w, errors.NewInvalidLocationError(locationID))
			return
		}
		items = cat.ForLocation(items, locationID)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items":      items,
		"categories": cat.Categories(),
	})
}

func (s *Server) handleMenuCategory(w http.ResponseWriter, r *http.Request) {
	raw, _ := url.PathUnescape(chi.URLParam(r, "category"))
	category := models.Category(raw)
	if !models.IsValidCategory(category) {
		writeError(w, errors.NewInvalidCategoryError(raw))
		return
	}

	cat, err := s.loadCatalog(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"category": category,
		"items":    cat.ByCategory(category),
	})
}

func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := s.repo.Locations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"locations": locations})
}

// handleCreateOrder is the checkout endpoint.
func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r, orderCreateSchema)
	if !ok {
		return
	}

	var order models.Order
	if err := json.Unmarshal(body, &order); err != nil {
		writeError(w, err)
		return
	}

	cat, err := s.loadCatalog(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if cat.Location(order.LocationID) == nil {
		writeError(w, errors.NewInvalidLocationError(order.LocationID))
		return
	}
	// Line prices come from the catalog, not the client.
	for i := range order.Items {
		item := cat.Item(order.Items[i].ItemID)
		if item == nil || !item.Available {
			writeError(w, errors.NewResourceNotFoundError("menu item", order.Items[i].ItemID))
			return
		}
		order.Items[i].Name = item.Name
		order.Items[i].Price = catalog.ResolvePrice(item, order.LocationID)
	}

	if err := s.repo.CreateOrder(r.Context(), &order); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (s *Server) handleOrderByNumber(w http.ResponseWriter, r *http.Request) {
	order, err := s.repo.OrderByNumber(r.Context(), chi.URLParam(r, "orderNumber"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleCustomerOrders(w http.ResponseWriter, r *http.Request) {
	phone, _ := url.PathUnescape(chi.URLParam(r, "phone"))
	orders, err := s.repo.RecentOrders(r.Context(), phone)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

func (s *Server) handleLoyaltyProfile(w http.ResponseWriter, r *http.Request) {
	phone, _ := url.PathUnescape(chi.URLParam(r, "phone"))
	profile, err := s.repo.ProfileByPhone(r.Context(), phone)
	if err != nil {
		writeError(w, err)
		return
	}
	if profile == nil {
		writeError(w, errors.NewResourceNotFoundError("loyalty profile", phone))
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleLoyaltyEnroll(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r, loyaltyEnrollSchema)
	if !ok {
		return
	}

	var req struct {
		Phone string `json:"phone"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, err)
		return
	}

	profile, err := s.repo.EnrollLoyalty(r.Context(), req.Phone, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}
