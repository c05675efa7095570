package handler

import (
	"log/slog"
	"net/http"

	"github.com/mindwellhq/mindwell/internal/auth"
	"github.com/mindwellhq/mindwell/internal/repository"
	"github.com/mindwellhq/mindwell/internal/service"
)

// JournalHandler maps the journal CRUD routes onto the journal service.
// Every route here sits behind RequireAuth, so the identity is always in
// the request context.
type JournalHandler struct {
	journal *service.JournalService
	logger  *slog.Logger
}

func NewJournalHandler(journal *service.JournalService, logger *slog.Logger) *JournalHandler {
	return &JournalHandler{journal: journal, logger: logger}
}

type createJournalRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Mood    string `json:"mood"`
}

// updateJournalRequest uses pointers so "field absent" and "field set to
// empty" are distinguishable — only fields present in the body are patched.
type updateJournalRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Mood    *string `json:"mood"`
}

// HandleList returns the requester's entries, newest first.
//
// HTTP: GET /api/journal-entries
func (h *JournalHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	entries, err := h.journal.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// HandleCreate stores a new entry. The owner is always the authenticated
// requester — a userId in the body is ignored.
//
// HTTP: POST /api/journal-entries
func (h *JournalHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req createJournalRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	entry, err := h.journal.Create(r.Context(), userID, req.Title, req.Content, req.Mood)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// HandleGet returns one entry; 404 for an unknown id, 403 for a non-owner.
//
// HTTP: GET /api/journal-entries/{id}
func (h *JournalHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	entry, err := h.journal.Get(r.Context(), id, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// HandleUpdate patches the provided fields of an owned entry.
//
// HTTP: PATCH /api/journal-entries/{id}
func (h *JournalHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req updateJournalRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	entry, err := h.journal.Update(r.Context(), id, userID, repository.JournalPatch{
		Title:   req.Title,
		Content: req.Content,
		Mood:    req.Mood,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// HandleDelete removes an owned entry.
//
// HTTP: DELETE /api/journal-entries/{id} → 204 No Content
func (h *JournalHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.journal.Delete(r.Context(), id, userID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
