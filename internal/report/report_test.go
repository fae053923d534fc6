package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jwojnar/cybercoach/internal/engine"
)

func newTestReporter(t *testing.T) *Reporter {
	t.Helper()

	r, err := New(t.TempDir(), "shoulder_press")
	if err != nil {
		t.Fatalf("failed to create reporter: %v", err)
	}
	return r
}

func TestNew_CreatesSessionDirectory(t *testing.T) {
	root := t.TempDir()
	r, err := New(root, "shoulder_press")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	info, err := os.Stat(r.Dir())
	if err != nil {
		t.Fatalf("session directory should exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("session path should be a directory")
	}
	if !strings.HasPrefix(filepath.Base(r.Dir()), "session_") {
		t.Errorf("session directory %q should have session_ prefix", r.Dir())
	}
}

func TestGenerate_WritesSummary(t *testing.T) {
	r := newTestReporter(t)

	r.RecordRep(engine.Repetition{
		StartFrame: 16, EndFrame: 42,
		MinAngle: 20, MaxAngle: 150, ROM: 130,
		IsComplete: true,
	}, "front")
	r.RecordRep(engine.Repetition{
		StartFrame: 80, EndFrame: 110,
		MinAngle: 60, MaxAngle: 130, ROM: 70,
		IsComplete: false,
		Errors:     []string{"ROM too small (70.0 < 100.0)"},
	}, "front")

	if err := r.Generate(); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(r.Dir(), "summary.json"))
	if err != nil {
		t.Fatalf("failed to read summary.json: %v", err)
	}

	var doc struct {
		Summary Summary `json:"summary"`
		Reps    []Entry `json:"reps"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("failed to parse summary.json: %v", err)
	}

	if doc.Summary.TotalReps != 2 {
		t.Errorf("TotalReps = %d, want 2", doc.Summary.TotalReps)
	}
	if doc.Summary.CompleteReps != 1 {
		t.Errorf("CompleteReps = %d, want 1", doc.Summary.CompleteReps)
	}
	if doc.Summary.EfficiencyPct != 50 {
		t.Errorf("EfficiencyPct = %v, want 50", doc.Summary.EfficiencyPct)
	}
	if doc.Summary.AvgROM != 100 {
		t.Errorf("AvgROM = %v, want 100", doc.Summary.AvgROM)
	}
	if len(doc.Reps) != 2 {
		t.Errorf("got %d reps in summary, want 2", len(doc.Reps))
	}
}

func TestGenerate_WritesCSV(t *testing.T) {
	r := newTestReporter(t)

	r.RecordRep(engine.Repetition{
		StartFrame: 16, EndFrame: 42,
		MinAngle: 20, MaxAngle: 150, ROM: 130,
		IsComplete: false,
		Errors:     []string{"ROM too small (130.0 < 150.0)", "incorrect technique during movement"},
	}, "side")

	if err := r.Generate(); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	f, err := os.Open(filepath.Join(r.Dir(), "reps.csv"))
	if err != nil {
		t.Fatalf("failed to open reps.csv: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse reps.csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header plus 1 rep", len(rows))
	}

	header := rows[0]
	if header[0] != "start_frame" || header[len(header)-1] != "errors" {
		t.Errorf("unexpected header: %v", header)
	}

	row := rows[1]
	if row[0] != "16" || row[1] != "42" {
		t.Errorf("frames = %s..%s, want 16..42", row[0], row[1])
	}
	if row[4] != "130.0" {
		t.Errorf("rom = %s, want 130.0", row[4])
	}
	if row[6] != "side" {
		t.Errorf("view = %s, want side", row[6])
	}
	errCol := row[len(row)-1]
	if !strings.Contains(errCol, "|") {
		t.Errorf("errors column %q should join reasons with a pipe", errCol)
	}
}

func TestGenerate_EmptySession(t *testing.T) {
	r := newTestReporter(t)

	if err := r.Generate(); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(r.Dir(), "summary.json"))
	if err != nil {
		t.Fatalf("failed to read summary.json: %v", err)
	}

	var doc struct {
		Summary Summary `json:"summary"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("failed to parse summary.json: %v", err)
	}
	if doc.Summary.TotalReps != 0 || doc.Summary.EfficiencyPct != 0 {
		t.Errorf("empty session summary = %+v, want zeros", doc.Summary)
	}
}
