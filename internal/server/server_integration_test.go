package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/jwojnar/cybercoach/internal/store"
)

func TestAPI_SessionWorkflow(t *testing.T) {
	// Setup
	tmpDir := t.TempDir()
	s, _ := store.New(filepath.Join(tmpDir, "test.db"))
	defer s.Close()

	session := &store.Session{ID: uuid.NewString(), ExerciseName: "shoulder_press"}
	if err := s.Sessions().Create(session); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	rep := &store.Repetition{
		SessionID:  session.ID,
		View:       "front",
		StartFrame: 16,
		EndFrame:   42,
		MinAngle:   20,
		MaxAngle:   150,
		ROM:        130,
		IsComplete: true,
	}
	if err := s.Repetitions().Create(rep); err != nil {
		t.Fatalf("failed to create repetition: %v", err)
	}

	srv := New(Config{Store: s})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	// 1. List sessions
	resp, err := client.Get(ts.URL + "/api/sessions")
	if err != nil {
		t.Fatalf("GET /api/sessions error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/sessions status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var listed struct {
		Sessions []struct {
			ID           string `json:"id"`
			ExerciseName string `json:"exercise_name"`
		} `json:"sessions"`
	}
	json.NewDecoder(resp.Body).Decode(&listed)
	resp.Body.Close()

	if len(listed.Sessions) != 1 {
		t.Fatalf("len(sessions) = %d, want 1", len(listed.Sessions))
	}
	if listed.Sessions[0].ExerciseName != "shoulder_press" {
		t.Errorf("exercise = %s, want shoulder_press", listed.Sessions[0].ExerciseName)
	}

	// 2. Get single session
	resp, _ = client.Get(ts.URL + "/api/sessions/" + session.ID)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/sessions/%s status = %d, want %d", session.ID, resp.StatusCode, http.StatusOK)
	}
	resp.Body.Close()

	// 3. List the session's repetitions
	resp, _ = client.Get(ts.URL + "/api/sessions/" + session.ID + "/reps")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET reps status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var reps struct {
		Repetitions []struct {
			View       string  `json:"view"`
			ROM        float64 `json:"rom"`
			IsComplete bool    `json:"is_complete"`
		} `json:"repetitions"`
	}
	json.NewDecoder(resp.Body).Decode(&reps)
	resp.Body.Close()

	if len(reps.Repetitions) != 1 {
		t.Fatalf("len(repetitions) = %d, want 1", len(reps.Repetitions))
	}
	if reps.Repetitions[0].ROM != 130 || !reps.Repetitions[0].IsComplete {
		t.Errorf("rep = %+v, want complete with ROM 130", reps.Repetitions[0])
	}

	// 4. Reps for an unknown session
	resp, _ = client.Get(ts.URL + "/api/sessions/" + uuid.NewString() + "/reps")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("GET reps for unknown session status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
	resp.Body.Close()

	// 5. Delete session
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/sessions/"+session.ID, nil)
	resp, _ = client.Do(req)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	resp.Body.Close()

	// 6. Verify deleted
	resp, _ = client.Get(ts.URL + "/api/sessions/" + session.ID)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("GET after delete status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
	resp.Body.Close()
}

func TestAPI_HealthCheck(t *testing.T) {
	srv := New(Config{})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var health struct {
		Status string `json:"status"`
		Uptime string `json:"uptime"`
	}
	json.NewDecoder(resp.Body).Decode(&health)

	if health.Status != "ok" {
		t.Errorf("status = %s, want ok", health.Status)
	}
}
