package handler

import (
	"log/slog"
	"net/http"

	"github.com/mindwellhq/mindwell/internal/auth"
	"github.com/mindwellhq/mindwell/internal/service"
)

// CatalogHandler serves the public mindfulness-session and
// reflection-prompt routes. These sit behind OptionalAuth: anonymous
// requests work, and a valid session only matters when the available filter
// or a premium item is requested.
type CatalogHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

func NewCatalogHandler(catalog *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

// availableOnly reports whether the request asked for the gated view
// (?available=true) instead of the full catalog.
func availableOnly(r *http.Request) bool {
	v := r.URL.Query().Get("available")
	return v == "1" || v == "true"
}

// HandleSessions returns the session catalog. By default the full list,
// locked items included; with ?available=true only what the requester may
// actually play.
//
// HTTP: GET /api/mindfulness-sessions
func (h *CatalogHandler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	if availableOnly(r) {
		userID, _ := auth.UserIDFromContext(r.Context())
		sessions, err := h.catalog.AvailableSessions(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sessions)
		return
	}

	sessions, err := h.catalog.Sessions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

// HandleSession returns one session; 404 unknown, 403 when it's premium and
// the requester isn't.
//
// HTTP: GET /api/mindfulness-sessions/{id}
func (h *CatalogHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	userID, _ := auth.UserIDFromContext(r.Context())
	session, err := h.catalog.Session(r.Context(), id, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// HandlePrompts returns the reflection-prompt catalog, with the same
// optional availability filter as sessions.
//
// HTTP: GET /api/reflection-prompts
func (h *CatalogHandler) HandlePrompts(w http.ResponseWriter, r *http.Request) {
	if availableOnly(r) {
		userID, _ := auth.UserIDFromContext(r.Context())
		prompts, err := h.catalog.AvailablePrompts(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, prompts)
		return
	}

	prompts, err := h.catalog.Prompts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prompts)
}

// HandlePrompt returns one prompt with the premium gate applied.
//
// HTTP: GET /api/reflection-prompts/{id}
func (h *CatalogHandler) HandlePrompt(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	userID, _ := auth.UserIDFromContext(r.Context())
	prompt, err := h.catalog.Prompt(r.Context(), id, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, prompt)
}
