// internal/server/handlers_admin.go
package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"simmer-assistant/internal/common/errors"
	"simmer-assistant/internal/common/validation"
	"simmer-assistant/internal/models"
)

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil || len(body) == 0 {
		writeValidationError(w, &validation.Result{
			Valid:  false,
			Errors: []validation.ValidationError{{Field: "(body)", Message: "request body is required"}},
		})
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		writeValidationError(w, &validation.Result{
			Valid:  false,
			Errors: []validation.ValidationError{{Field: "(body)", Message: "malformed JSON"}},
		})
		return false
	}
	return true
}

func (s *Server) handleAdminUpsertMenuItem(w http.ResponseWriter, r *http.Request) {
	var item models.MenuItem
	if !decodeJSON(w, r, &item) {
		return
	}
	if item.ID == "" || item.Name == "" {
		writeValidationError(w, &validation.Result{
			Valid:  false,
			Errors: []validation.ValidationError{{Field: "id", Message: "id and name are required"}},
		})
		return
	}
	if !models.IsValidCategory(item.Category) {
		writeError(w, errors.NewInvalidCategoryError(string(item.Category)))
		return
	}
	if err := s.repo.UpsertMenuItem(r.Context(), item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleAdminItemAvailability(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Available bool `json:"available"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	if err := s.repo.SetItemAvailability(r.Context(), id, req.Available); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "available": req.Available})
}

func (s *Server) handleAdminUpsertLocation(w http.ResponseWriter, r *http.Request) {
	var loc models.Location
	if !decodeJSON(w, r, &loc) {
		return
	}
	if loc.ID == "" || loc.Name == "" {
		writeValidationError(w, &validation.Result{
			Valid:  false,
			Errors: []validation.ValidationError{{Field: "id", Message: "id and name are required"}},
		})
		return
	}
	if err := s.repo.UpsertLocation(r.Context(), loc); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loc)
}

func (s *Server) handleAdminOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if !models.IsValidOrderStatus(req.Status) {
		writeValidationError(w, &validation.Result{
			Valid:  false,
			Errors: []validation.ValidationError{{Field: "status", Message: "unknown order status"}},
		})
		return
	}
	id := chi.URLParam(r, "id")
	if err := s.repo.UpdateOrderStatus(r.Context(), id, req.Status); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "status": req.Status})
}

func (s *Server) handleAdminAddPoints(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Points int `json:"points"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Points <= 0 {
		writeValidationError(w, &validation.Result{
			Valid:  false,
			Errors: []validation.ValidationError{{Field: "points", Message: "points must be positive"}},
		})
		return
	}
	phone := chi.URLParam(r, "phone")
	if err := s.repo.AddLoyaltyPoints(r.Context(), phone, req.Points); err != nil {
		writeError(w, err)
		return
	}
	profile, err := s.repo.ProfileByPhone(r.Context(), phone)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleAdminListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.repo.ActiveEvents(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

func (s *Server) handleAdminSaveEvent(w http.ResponseWriter, r *http.Request) {
	var event models.Event
	if !decodeJSON(w, r, &event) {
		return
	}
	if event.Title == "" || event.StartsAt.IsZero() {
		writeValidationError(w, &validation.Result{
			Valid:  false,
			Errors: []validation.ValidationError{{Field: "title", Message: "title and startsAt are required"}},
		})
		return
	}
	if err := s.repo.SaveEvent(r.Context(), &event); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (s *Server) handleAdminDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.DeleteEvent(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAdminListSpecials(w http.ResponseWriter, r *http.Request) {
	specials, err := s.repo.ActiveSpecials(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"specials": specials})
}

func (s *Server) handleAdminSaveSpecial(w http.ResponseWriter, r *http.Request) {
	var special models.Special
	if !decodeJSON(w, r, &special) {
		return
	}
	if special.Title == "" || special.DayOfWeek < -1 || special.DayOfWeek > 6 {
		writeValidationError(w, &validation.Result{
			Valid:  false,
			Errors: []validation.ValidationError{{Field: "dayOfWeek", Message: "title required and dayOfWeek must be -1..6"}},
		})
		return
	}
	if err := s.repo.SaveSpecial(r.Context(), &special); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, special)
}

func (s *Server) handleAdminDeleteSpecial(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.DeleteSpecial(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAdminListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.repo.Settings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"settings": settings})
}

func (s *Server) handleAdminPutSetting(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r, settingPutSchema)
	if !ok {
		return
	}
	var req struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.repo.PutSetting(r.Context(), req.Key, req.Value); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": req.Key, "value": req.Value})
}
