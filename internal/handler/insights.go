package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mindwellhq/mindwell/internal/auth"
	"github.com/mindwellhq/mindwell/internal/insights"
	"github.com/mindwellhq/mindwell/internal/service"
)

// InsightsHandler aggregates journal and mood history into the dashboard
// summary the client renders.
type InsightsHandler struct {
	journals *service.JournalService
	moods    *service.MoodService
	logger   *slog.Logger

	// now is swapped in tests to pin the reference date.
	now func() time.Time
}

func NewInsightsHandler(journals *service.JournalService, moods *service.MoodService, logger *slog.Logger) *InsightsHandler {
	return &InsightsHandler{
		journals: journals,
		moods:    moods,
		logger:   logger,
		now:      time.Now,
	}
}

type insightsResponse struct {
	JournalStreak    int                      `json:"journalStreak"`
	EntriesThisWeek  int                      `json:"entriesThisWeek"`
	DailyMoods       []insights.DayMood       `json:"dailyMoods"`
	MoodDistribution []insights.MoodCount     `json:"moodDistribution"`
	Calendar         [][]insights.CalendarDay `json:"calendar"`
}

// HandleInsights computes all dashboard figures for the signed-in user.
//
// HTTP: GET /api/insights
func (h *InsightsHandler) HandleInsights(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	entries, err := h.journals.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	moods, err := h.moods.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	now := h.now()
	writeJSON(w, http.StatusOK, insightsResponse{
		JournalStreak:    insights.JournalStreak(entries, now),
		EntriesThisWeek:  insights.EntriesThisWeek(entries, now),
		DailyMoods:       insights.DailyMoodSeries(moods, now),
		MoodDistribution: insights.MoodDistribution(moods),
		Calendar:         insights.MonthCalendar(moods, now),
	})
}
