// internal/server/handlers_assistant.go
package server

import (
	"encoding/json"
	"io"
	"net/http"

	"simmer-assistant/internal/assistant"
	"simmer-assistant/internal/catalog"
	"simmer-assistant/internal/common/validation"
)

const maxBodyBytes = 64 << 10

func readBody(w http.ResponseWriter, r *http.Request, schema *validation.Schema) ([]byte, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil || len(body) == 0 {
		writeValidationError(w, &validation.Result{
			Valid:  false,
			Errors: []validation.ValidationError{{Field: "(body)", Message: "request body is required"}},
		})
		return nil, false
	}
	if result := schema.ValidateBytes(body); !result.Valid {
		writeValidationError(w, result)
		return nil, false
	}
	return body, true
}

// handleAssistantMessage serves one chat turn for the given persona.
func (s *Server) handleAssistantMessage(svc *assistant.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := readBody(w, r, assistantMessageSchema)
		if !ok {
			return
		}

		var req assistant.Request
		if err := json.Unmarshal(body, &req); err != nil {
			writeValidationError(w, &validation.Result{
				Valid:  false,
				Errors: []validation.ValidationError{{Field: "(body)", Message: "malformed JSON"}},
			})
			return
		}

		resp, err := svc.HandleMessage(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// handleNudge asks a quiet session whether the proactive opener should show.
// 204 means "not yet".
func (s *Server) handleNudge(svc *assistant.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := readBody(w, r, nudgeSchema)
		if !ok {
			return
		}

		var req struct {
			SessionID string `json:"sessionId"`
			Language  string `json:"language"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, err)
			return
		}

		resp, err := svc.Nudge(r.Context(), req.SessionID, req.Language)
		if err != nil {
			writeError(w, err)
			return
		}
		if resp == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// handleAssistantHealth reports static capability metadata plus live catalog
// counts.
func (s *Server) handleAssistantHealth(w http.ResponseWriter, r *http.Request) {
	items, err := s.repo.MenuItems(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	locations, err := s.repo.Locations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	cat := catalog.New(items, locations)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"version":    s.version,
		"assistants": []string{s.anima.Profile().Name, s.sophia.Profile().Name},
		"items":      cat.Len(),
		"categories": len(cat.Categories()),
		"locations":  len(cat.Locations()),
	})
}
