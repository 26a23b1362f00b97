package bot

import (
	"testing"
	"time"
)

func TestSessionLifecycle(t *testing.T) {
	s := NewSessionStore()

	if _, ok := s.Get(1); ok {
		t.Fatal("empty store returned a session")
	}

	sess := s.Start(1, StepTitle)
	sess.Draft.Title = "כותרת"

	got, ok := s.Get(1)
	if !ok {
		t.Fatal("session missing after Start")
	}
	if got.Step != StepTitle || got.Draft.Title != "כותרת" {
		t.Errorf("got step %d title %q", got.Step, got.Draft.Title)
	}

	// Starting again replaces the draft entirely.
	s.Start(1, StepSearchType)
	got, _ = s.Get(1)
	if got.Draft.Title != "" || got.Step != StepSearchType {
		t.Error("Start did not reset the session")
	}

	s.Clear(1)
	if _, ok := s.Get(1); ok {
		t.Error("session survived Clear")
	}
}

func TestEditSessionReplacesPrevious(t *testing.T) {
	s := NewSessionStore()

	s.StartEdit(1, 10, "title", "ישן")
	s.StartEdit(1, 10, "description", "תיאור ישן")
	s.StartEdit(2, 10, "title", "של אחר")

	e, ok := s.GetEdit(1)
	if !ok {
		t.Fatal("edit missing")
	}
	if e.Field != "description" || e.Original != "תיאור ישן" {
		t.Errorf("got field %q original %q, want the newest edit only", e.Field, e.Original)
	}

	other, ok := s.GetEdit(2)
	if !ok || other.Field != "title" {
		t.Error("another user's edit was clobbered")
	}

	s.ClearEdit(1)
	if _, ok := s.GetEdit(1); ok {
		t.Error("edit survived ClearEdit")
	}
	if _, ok := s.GetEdit(2); !ok {
		t.Error("ClearEdit removed another user's edit")
	}
}

func TestPendingReport(t *testing.T) {
	s := NewSessionStore()

	s.StartReport(1, 42)
	r, ok := s.GetReport(1)
	if !ok || r.PostID != 42 {
		t.Fatalf("got %+v, %v", r, ok)
	}
	s.ClearReport(1)
	if _, ok := s.GetReport(1); ok {
		t.Error("report survived ClearReport")
	}
}

func TestSweep(t *testing.T) {
	s := NewSessionStore()
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	s.Start(1, StepTitle)
	s.StartEdit(2, 10, "title", "x")
	s.StartReport(3, 10)

	current = current.Add(10 * time.Minute)
	s.Start(4, StepTitle)

	removed := s.Sweep(5 * time.Minute)
	if removed != 3 {
		t.Errorf("removed %d entries, want 3", removed)
	}
	if _, ok := s.Get(1); ok {
		t.Error("stale session survived sweep")
	}
	if _, ok := s.GetEdit(2); ok {
		t.Error("stale edit survived sweep")
	}
	if _, ok := s.GetReport(3); ok {
		t.Error("stale report survived sweep")
	}
	if _, ok := s.Get(4); !ok {
		t.Error("fresh session removed by sweep")
	}
}

func TestTracker(t *testing.T) {
	tr := NewTracker()

	tr.Record(1, 100, InteractionView)
	tr.Record(1, 100, InteractionView)
	tr.Record(1, 101, InteractionContact)
	tr.Record(1, 102, InteractionSave)
	tr.Record(2, 100, InteractionShare)

	got := tr.Get(1)
	if got.Views != 2 || got.Contacts != 1 || got.Saves != 1 {
		t.Errorf("got %+v", got)
	}
	if got.UniqueUsers != 3 {
		t.Errorf("got %d unique users, want 3", got.UniqueUsers)
	}
	if got.Total() != 4 {
		t.Errorf("got total %d, want 4", got.Total())
	}

	if got := tr.Get(99); got != (StatsSnapshot{}) {
		t.Errorf("unknown post: got %+v, want zeroes", got)
	}

	tr.Remove(1)
	if got := tr.Get(1); got.Views != 0 {
		t.Error("counters survived Remove")
	}
}
