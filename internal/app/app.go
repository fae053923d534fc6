// Package app provides the main application logic for the CyberCoach training system.
package app

import (
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/jwojnar/cybercoach/internal/capture"
	"github.com/jwojnar/cybercoach/internal/engine"
	"github.com/jwojnar/cybercoach/internal/exercise"
	"github.com/jwojnar/cybercoach/internal/pose"
	"github.com/jwojnar/cybercoach/internal/report"
	"github.com/jwojnar/cybercoach/internal/server"
	"github.com/jwojnar/cybercoach/internal/store"
)

// ViewSource pairs a camera with the view of the exercise it films.
type ViewSource struct {
	View   string
	Camera capture.Camera
}

// Config holds configuration options for the application.
type Config struct {
	Store     *store.Store
	Exercise  *exercise.Definition
	Sources   []ViewSource
	ReportDir string
	Live      *server.LiveHandler
}

// App orchestrates capture, pose detection, and repetition analysis for
// one training session. With two sources it reconciles repetitions
// across views.
type App struct {
	config     Config
	pipelines  []*viewPipeline
	reconciler *engine.Reconciler
	reporter   *report.Reporter
	sessionID  string

	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// New creates a new App instance with the given configuration.
// It builds one analysis pipeline per configured view.
func New(config Config) (*App, error) {
	if len(config.Sources) == 0 {
		return nil, fmt.Errorf("at least one view source is required")
	}
	if config.Exercise == nil {
		return nil, fmt.Errorf("an exercise definition is required")
	}

	a := &App{config: config}

	if len(config.Sources) > 1 {
		a.reconciler = engine.NewReconciler(engine.DefaultSyncThreshold)
	}

	for _, src := range config.Sources {
		engCfg, err := config.Exercise.EngineConfig(src.View)
		if err != nil {
			return nil, err
		}
		eng, err := engine.New(engCfg)
		if err != nil {
			return nil, err
		}

		p := &viewPipeline{
			view:   src.View,
			camera: src.Camera,
			engine: eng,
		}

		// Try MediaPipe first, fall back to mock detector
		if mp, err := pose.NewMediaPipeDetector(pose.DefaultConfig()); err == nil {
			p.detector = mp
			log.Printf("View %s: using MediaPipe pose detection", src.View)
		} else {
			log.Printf("View %s: MediaPipe not available (%v), using mock detector", src.View, err)
			p.detector = pose.NewMockDetector()
		}

		a.pipelines = append(a.pipelines, p)
	}

	return a, nil
}

// SetEnabled enables or disables repetition analysis.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether repetition analysis is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector replaces the pose detector on every pipeline.
func (a *App) SetDetector(d pose.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, p := range a.pipelines {
		p.detector = d
	}
}

// SessionID returns the ID of the running session, or "" before Start.
func (a *App) SessionID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.sessionID
}

// Start opens the cameras, creates the session record, and begins one
// analysis loop per view.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if a.config.Store != nil {
		session := &store.Session{
			ID:           uuid.NewString(),
			ExerciseName: a.config.Exercise.Name,
		}
		if err := a.config.Store.Sessions().Create(session); err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}
		a.sessionID = session.ID
	}

	if a.config.ReportDir != "" {
		reporter, err := report.New(a.config.ReportDir, a.config.Exercise.Name)
		if err != nil {
			return err
		}
		a.reporter = reporter
	}

	for _, p := range a.pipelines {
		if err := p.camera.Open(); err != nil {
			return fmt.Errorf("failed to open camera for view %s: %w", p.view, err)
		}
	}

	a.stopCh = make(chan struct{})
	for _, p := range a.pipelines {
		a.wg.Add(1)
		go func(p *viewPipeline) {
			defer a.wg.Done()
			a.runPipeline(p)
		}(p)
	}

	log.Printf("Session %s started with %d view(s)", a.sessionID, len(a.pipelines))
	return nil
}

// Stop halts the analysis loops, finalizes the session record, and
// writes the report.
func (a *App) Stop() {
	a.mu.Lock()
	if a.stopCh == nil {
		a.mu.Unlock()
		return
	}
	close(a.stopCh)
	a.stopCh = nil
	a.mu.Unlock()

	a.wg.Wait()

	for _, p := range a.pipelines {
		if err := p.camera.Close(); err != nil {
			log.Printf("Error closing camera for view %s: %v", p.view, err)
		}
		if p.detector != nil {
			if err := p.detector.Close(); err != nil {
				log.Printf("Error closing detector for view %s: %v", p.view, err)
			}
		}
	}

	summary := a.Summary()

	if a.config.Store != nil && a.sessionID != "" {
		err := a.config.Store.Sessions().Finish(a.sessionID,
			summary.TotalReps, summary.CompleteReps, summary.IncompleteReps,
			summary.AvgROM, a.ConfirmedReps())
		if err != nil {
			log.Printf("Error finalizing session: %v", err)
		}
	}

	if a.reporter != nil {
		if err := a.reporter.Generate(); err != nil {
			log.Printf("Error writing report: %v", err)
		} else {
			log.Printf("Report written to %s", a.reporter.Dir())
		}
	}

	log.Printf("Session %s stopped: %d reps, %d complete",
		a.sessionID, summary.TotalReps, summary.CompleteReps)
}

// Summary aggregates repetition counts across all views.
func (a *App) Summary() engine.Summary {
	var all []engine.Repetition
	for _, p := range a.pipelines {
		all = append(all, p.engine.Repetitions()...)
	}
	return engine.Summarize(all)
}

// ConfirmedReps returns the number of cross-view confirmed repetitions,
// or zero in single-view mode.
func (a *App) ConfirmedReps() int {
	if a.reconciler == nil {
		return 0
	}
	return a.reconciler.Confirmed()
}

// Reconciler returns the cross-view reconciler, or nil in single-view mode.
func (a *App) Reconciler() *engine.Reconciler {
	return a.reconciler
}
