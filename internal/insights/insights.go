// Package insights contains the pure date-bucketing helpers behind the
// dashboard: journal streaks, weekly activity, mood trends and the mood
// calendar. Everything here is a plain function of (entries, reference
// time) — no storage, no HTTP — so the handlers stay thin and the math is
// trivially testable.
package insights

import (
	"math"
	"time"

	"github.com/mindwellhq/mindwell/internal/model"
)

// DayMood is one day in the trailing-week mood series.
type DayMood struct {
	Label  string  `json:"date"`            // weekday label, e.g. "Mon"
	Score  float64 `json:"score"`           // average mood score, 0 when no data
	Mood   string  `json:"mood,omitempty"`  // most recent mood that day
	NoData bool    `json:"noData,omitempty"`
}

// MoodCount is one slice of the mood distribution.
type MoodCount struct {
	Mood  string `json:"mood"`
	Count int    `json:"count"`
}

// CalendarDay is one cell in the month grid.
type CalendarDay struct {
	Day     int    `json:"date"`
	InMonth bool   `json:"isCurrentMonth"`
	Today   bool   `json:"isToday,omitempty"`
	Mood    string `json:"mood,omitempty"`
}

// MoodScore maps a mood label to a 1–5 score, best (happy) to worst
// (stressed). Unknown labels score neutral.
func MoodScore(mood string) int {
	for i, m := range model.Moods {
		if mood == m {
			return len(model.Moods) - i
		}
	}
	return 3
}

// JournalStreak counts consecutive days with at least one journal entry,
// ending today. A day with no entry breaks the streak, so a user who last
// wrote yesterday but not today has a streak of zero.
func JournalStreak(entries []model.JournalEntry, today time.Time) int {
	streak := 0
	day := today
	for {
		found := false
		for _, e := range entries {
			if sameDay(e.CreatedAt, day) {
				found = true
				break
			}
		}
		if !found {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}

// EntriesThisWeek counts journal entries since the start of the current week
// (Sunday 00:00 in now's location).
func EntriesThisWeek(entries []model.JournalEntry, now time.Time) int {
	start := startOfDay(now).AddDate(0, 0, -int(now.Weekday()))
	count := 0
	for _, e := range entries {
		if !e.CreatedAt.In(now.Location()).Before(start) {
			count++
		}
	}
	return count
}

// DailyMoodSeries buckets mood check-ins into the trailing seven days
// (oldest first) and averages each day's scores to one decimal place. Days
// with no check-in carry a zero score and the NoData flag.
func DailyMoodSeries(entries []model.MoodEntry, today time.Time) []DayMood {
	series := make([]DayMood, 0, 7)
	for offset := -6; offset <= 0; offset++ {
		day := today.AddDate(0, 0, offset)

		sum, n := 0, 0
		var latest *model.MoodEntry
		for i := range entries {
			e := &entries[i]
			if !sameDay(e.CreatedAt, day) {
				continue
			}
			sum += MoodScore(e.Mood)
			n++
			if latest == nil || e.CreatedAt.After(latest.CreatedAt) {
				latest = e
			}
		}

		if n == 0 {
			series = append(series, DayMood{Label: day.Format("Mon"), NoData: true})
			continue
		}
		series = append(series, DayMood{
			Label: day.Format("Mon"),
			Score: math.Round(float64(sum)/float64(n)*10) / 10,
			Mood:  latest.Mood,
		})
	}
	return series
}

// MoodDistribution counts check-ins per mood label, in enumeration order.
// Labels outside the enumeration (there should be none) are dropped.
func MoodDistribution(entries []model.MoodEntry) []MoodCount {
	counts := make(map[string]int, len(model.Moods))
	for _, e := range entries {
		if model.ValidMood(e.Mood) {
			counts[e.Mood]++
		}
	}
	dist := make([]MoodCount, 0, len(model.Moods))
	for _, m := range model.Moods {
		dist = append(dist, MoodCount{Mood: m, Count: counts[m]})
	}
	return dist
}

// MonthCalendar lays out ref's month as Sunday-first weeks of seven cells.
// Leading and trailing cells come from the neighbouring months and are
// marked InMonth false. Each in-month day carries the most recent mood
// logged that day, and the cell for ref's own date is marked Today.
func MonthCalendar(entries []model.MoodEntry, ref time.Time) [][]CalendarDay {
	year, month, _ := ref.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, ref.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()
	daysInPrevMonth := first.AddDate(0, 0, -1).Day()

	var weeks [][]CalendarDay
	week := make([]CalendarDay, 0, 7)

	// fill the first row with the tail of the previous month
	lead := int(first.Weekday())
	for i := lead - 1; i >= 0; i-- {
		week = append(week, CalendarDay{Day: daysInPrevMonth - i})
	}

	for d := 1; d <= daysInMonth; d++ {
		day := time.Date(year, month, d, 0, 0, 0, 0, ref.Location())

		cell := CalendarDay{
			Day:     d,
			InMonth: true,
			Today:   d == ref.Day(),
		}
		var latest *model.MoodEntry
		for i := range entries {
			e := &entries[i]
			if !sameDay(e.CreatedAt, day) {
				continue
			}
			if latest == nil || e.CreatedAt.After(latest.CreatedAt) {
				latest = e
			}
		}
		if latest != nil {
			cell.Mood = latest.Mood
		}

		week = append(week, cell)
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = make([]CalendarDay, 0, 7)
		}
	}

	// fill the last row with the head of the next month
	if len(week) > 0 {
		for d := 1; len(week) < 7; d++ {
			week = append(week, CalendarDay{Day: d})
		}
		weeks = append(weeks, week)
	}

	return weeks
}

// sameDay reports whether t falls on the same calendar date as day,
// evaluated in day's location (entries are stored in UTC).
func sameDay(t, day time.Time) bool {
	y1, m1, d1 := t.In(day.Location()).Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
