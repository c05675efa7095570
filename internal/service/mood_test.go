package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mindwellhq/mindwell/internal/apperror"
	"github.com/mindwellhq/mindwell/internal/model"
)

func newTestMoodService(t *testing.T) (*MoodService, *mockMoodRepo) {
	t.Helper()
	repo := newMockMoodRepo()
	return NewMoodService(repo, testLogger()), repo
}

func TestMoodCreate_Success(t *testing.T) {
	svc, _ := newTestMoodService(t)

	entry, err := svc.Create(context.Background(), 1, model.MoodCalm, "slept well")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if entry.ID == 0 {
		t.Error("expected entry to have an ID")
	}
	if entry.Mood != model.MoodCalm {
		t.Errorf("Mood = %q, want %q", entry.Mood, model.MoodCalm)
	}
}

func TestMoodCreate_NoteOptional(t *testing.T) {
	svc, _ := newTestMoodService(t)

	if _, err := svc.Create(context.Background(), 1, model.MoodHappy, ""); err != nil {
		t.Errorf("Create() without note error = %v", err)
	}
}

func TestMoodCreate_EveryEnumValueAccepted(t *testing.T) {
	svc, _ := newTestMoodService(t)

	for _, mood := range model.Moods {
		if _, err := svc.Create(context.Background(), 1, mood, ""); err != nil {
			t.Errorf("Create(%q) error = %v", mood, err)
		}
	}
}

// Labels outside the enumeration are rejected and nothing is stored.
func TestMoodCreate_UnknownMoodRejected(t *testing.T) {
	svc, repo := newTestMoodService(t)

	for _, mood := range []string{"giddy", "HAPPY", "Calm", "", "ecstatic"} {
		_, err := svc.Create(context.Background(), 1, mood, "")
		if !errors.Is(err, apperror.ErrValidation) {
			t.Errorf("Create(%q) error = %v, want ErrValidation", mood, err)
		}
	}

	entries, _ := repo.GetMoodEntriesByUser(context.Background(), 1)
	if len(entries) != 0 {
		t.Errorf("%d entries stored despite rejections", len(entries))
	}
}

func TestMoodCreate_NoteTooLong(t *testing.T) {
	svc, _ := newTestMoodService(t)

	_, err := svc.Create(context.Background(), 1, model.MoodCalm, strings.Repeat("a", MaxNoteLength+1))
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestMoodListByUser(t *testing.T) {
	svc, _ := newTestMoodService(t)

	svc.Create(context.Background(), 1, model.MoodSad, "")
	svc.Create(context.Background(), 1, model.MoodHappy, "")
	svc.Create(context.Background(), 2, model.MoodNeutral, "")

	entries, err := svc.ListByUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	// newest first
	if entries[0].Mood != model.MoodHappy {
		t.Errorf("entries[0].Mood = %q, want %q", entries[0].Mood, model.MoodHappy)
	}
}
