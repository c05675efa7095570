package handler

import (
	"log/slog"
	"net/http"

	"github.com/mindwellhq/mindwell/internal/auth"
	"github.com/mindwellhq/mindwell/internal/service"
)

// MoodHandler serves the mood check-in routes. Create and list only — the
// mood log is an append-only history.
type MoodHandler struct {
	moods  *service.MoodService
	logger *slog.Logger
}

func NewMoodHandler(moods *service.MoodService, logger *slog.Logger) *MoodHandler {
	return &MoodHandler{moods: moods, logger: logger}
}

type createMoodRequest struct {
	Mood string `json:"mood"`
	Note string `json:"note"`
}

// HandleList returns the requester's mood history, newest first.
//
// HTTP: GET /api/mood
func (h *MoodHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	entries, err := h.moods.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// HandleCreate records a mood check-in for the requester. The mood must be
// one of the enumerated labels; the note is optional.
//
// HTTP: POST /api/mood
// Body: {"mood": "calm", "note": "slept well"}
func (h *MoodHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req createMoodRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	entry, err := h.moods.Create(r.Context(), userID, req.Mood, req.Note)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}
