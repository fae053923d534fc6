package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Fatal("database file should not exist before creating store")
	}

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("database file should exist after creating store")
	}
}

func TestNewStore_RunsMigrations(t *testing.T) {
	s := newTestStore(t)

	for _, table := range []string{"sessions", "repetitions"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q should exist after migrations: %v", table, err)
		}
	}
}

func TestSessionRepository_CreateAndGet(t *testing.T) {
	s := newTestStore(t)

	session := &Session{
		ID:           uuid.NewString(),
		ExerciseName: "shoulder_press",
	}
	if err := s.Sessions().Create(session); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := s.Sessions().GetByID(session.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.ExerciseName != "shoulder_press" {
		t.Errorf("ExerciseName = %q, want %q", got.ExerciseName, "shoulder_press")
	}
	if got.EndedAt != nil {
		t.Error("a new session must not have an end time")
	}
	if got.StartedAt.IsZero() {
		t.Error("StartedAt should be filled in on create")
	}
}

func TestSessionRepository_Finish(t *testing.T) {
	s := newTestStore(t)

	session := &Session{ID: uuid.NewString(), ExerciseName: "shoulder_press"}
	if err := s.Sessions().Create(session); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := s.Sessions().Finish(session.ID, 10, 8, 2, 112.5, 7); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}

	got, err := s.Sessions().GetByID(session.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.EndedAt == nil {
		t.Error("finished session must have an end time")
	}
	if got.TotalReps != 10 || got.CompleteReps != 8 || got.IncompleteReps != 2 {
		t.Errorf("counters = %d/%d/%d, want 10/8/2",
			got.TotalReps, got.CompleteReps, got.IncompleteReps)
	}
	if got.AvgROM != 112.5 {
		t.Errorf("AvgROM = %v, want 112.5", got.AvgROM)
	}
	if got.ConfirmedReps != 7 {
		t.Errorf("ConfirmedReps = %d, want 7", got.ConfirmedReps)
	}
}

func TestSessionRepository_FinishMissing(t *testing.T) {
	s := newTestStore(t)

	err := s.Sessions().Finish("missing", 0, 0, 0, 0, 0)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Finish() on missing session error = %v, want ErrNotFound", err)
	}
}

func TestSessionRepository_GetMissing(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Sessions().GetByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestRepetitionRepository_CreateAndList(t *testing.T) {
	s := newTestStore(t)

	session := &Session{ID: uuid.NewString(), ExerciseName: "shoulder_press"}
	if err := s.Sessions().Create(session); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	reps := []*Repetition{
		{
			SessionID:  session.ID,
			View:       "front",
			StartFrame: 16,
			EndFrame:   42,
			MinAngle:   20,
			MaxAngle:   150,
			ROM:        130,
			IsComplete: true,
		},
		{
			SessionID:  session.ID,
			View:       "front",
			StartFrame: 80,
			EndFrame:   110,
			MinAngle:   60,
			MaxAngle:   140,
			ROM:        80,
			IsComplete: false,
			Errors:     []string{"ROM too small (80.0 < 100.0)", "incorrect technique during movement"},
		},
	}
	for _, rep := range reps {
		if err := s.Repetitions().Create(rep); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if rep.ID == 0 {
			t.Error("Create() should fill in the row ID")
		}
	}

	got, err := s.Repetitions().ListBySession(session.ID)
	if err != nil {
		t.Fatalf("ListBySession() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d repetitions, want 2", len(got))
	}

	if got[0].ROM != 130 || !got[0].IsComplete {
		t.Errorf("first rep = %+v, want complete with ROM 130", got[0])
	}
	if len(got[0].Errors) != 0 {
		t.Errorf("complete rep errors = %v, want none", got[0].Errors)
	}
	if len(got[1].Errors) != 2 {
		t.Errorf("incomplete rep has %d errors, want 2: %v", len(got[1].Errors), got[1].Errors)
	}
}

func TestRepetitionRepository_CountByView(t *testing.T) {
	s := newTestStore(t)

	session := &Session{ID: uuid.NewString(), ExerciseName: "shoulder_press"}
	if err := s.Sessions().Create(session); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	for _, view := range []string{"front", "front", "side"} {
		rep := &Repetition{SessionID: session.ID, View: view, IsComplete: true}
		if err := s.Repetitions().Create(rep); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	counts, err := s.Repetitions().CountByView(session.ID)
	if err != nil {
		t.Fatalf("CountByView() error = %v", err)
	}
	if counts["front"] != 2 || counts["side"] != 1 {
		t.Errorf("counts = %v, want front:2 side:1", counts)
	}
}

func TestSessionRepository_DeleteCascades(t *testing.T) {
	s := newTestStore(t)

	session := &Session{ID: uuid.NewString(), ExerciseName: "shoulder_press"}
	if err := s.Sessions().Create(session); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	rep := &Repetition{SessionID: session.ID, View: "front", IsComplete: true}
	if err := s.Repetitions().Create(rep); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := s.Sessions().Delete(session.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	reps, err := s.Repetitions().ListBySession(session.ID)
	if err != nil {
		t.Fatalf("ListBySession() error = %v", err)
	}
	if len(reps) != 0 {
		t.Errorf("got %d repetitions after cascade delete, want 0", len(reps))
	}
}
