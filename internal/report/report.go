// Package report writes per-session training reports to disk.
//
// Each session gets its own timestamped directory containing a JSON
// summary and a CSV listing of every detected repetition.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jwojnar/cybercoach/internal/engine"
)

// Entry is one recorded repetition together with the view it came from.
type Entry struct {
	Repetition engine.Repetition `json:"repetition"`
	View       string            `json:"view"`
	RecordedAt time.Time         `json:"recorded_at"`
}

// Summary is the aggregate block written at the top of summary.json.
type Summary struct {
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	ExerciseName  string    `json:"exercise_name"`
	TotalReps     int       `json:"total_reps"`
	CompleteReps  int       `json:"complete_reps"`
	EfficiencyPct float64   `json:"efficiency_pct"`
	AvgROM        float64   `json:"avg_rom"`
}

// Reporter accumulates repetitions during a session and writes the
// report files when the session ends.
type Reporter struct {
	mu           sync.Mutex
	outdir       string
	exerciseName string
	startTime    time.Time
	entries      []Entry
}

// New creates a Reporter with a fresh session directory under saveRoot.
func New(saveRoot, exerciseName string) (*Reporter, error) {
	now := time.Now()
	outdir := filepath.Join(saveRoot, "session_"+now.Format("20060102_150405"))
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}

	return &Reporter{
		outdir:       outdir,
		exerciseName: exerciseName,
		startTime:    now,
	}, nil
}

// Dir returns the session directory the report files are written to.
func (r *Reporter) Dir() string {
	return r.outdir
}

// RecordRep records one detected repetition for the report.
func (r *Reporter) RecordRep(rep engine.Repetition, view string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, Entry{
		Repetition: rep,
		View:       view,
		RecordedAt: time.Now(),
	})
}

// Generate writes summary.json and reps.csv into the session directory.
// Call it once when the session ends.
func (r *Reporter) Generate() error {
	r.mu.Lock()
	entries := make([]Entry, len(r.entries))
	copy(entries, r.entries)
	r.mu.Unlock()

	if err := r.writeSummary(entries); err != nil {
		return err
	}
	return r.writeCSV(entries)
}

func (r *Reporter) writeSummary(entries []Entry) error {
	summary := Summary{
		StartTime:    r.startTime,
		EndTime:      time.Now(),
		ExerciseName: r.exerciseName,
		TotalReps:    len(entries),
	}

	var romSum float64
	for _, e := range entries {
		if e.Repetition.IsComplete {
			summary.CompleteReps++
		}
		romSum += e.Repetition.ROM
	}
	if len(entries) > 0 {
		summary.EfficiencyPct = float64(summary.CompleteReps) / float64(len(entries)) * 100
		summary.AvgROM = romSum / float64(len(entries))
	}

	doc := struct {
		Summary Summary `json:"summary"`
		Reps    []Entry `json:"reps"`
	}{Summary: summary, Reps: entries}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	path := filepath.Join(r.outdir, "summary.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

func (r *Reporter) writeCSV(entries []Entry) error {
	path := filepath.Join(r.outdir, "reps.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create reps.csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"start_frame", "end_frame", "min_angle", "max_angle",
		"rom", "is_complete", "view", "recorded_at", "errors"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, e := range entries {
		rep := e.Repetition
		row := []string{
			strconv.Itoa(rep.StartFrame),
			strconv.Itoa(rep.EndFrame),
			strconv.FormatFloat(rep.MinAngle, 'f', 1, 64),
			strconv.FormatFloat(rep.MaxAngle, 'f', 1, 64),
			strconv.FormatFloat(rep.ROM, 'f', 1, 64),
			strconv.FormatBool(rep.IsComplete),
			e.View,
			e.RecordedAt.Format(time.RFC3339),
			strings.Join(rep.Errors, "|"),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush reps.csv: %w", err)
	}
	return nil
}
