package app

import (
	"errors"
	"log"
	"time"

	"github.com/jwojnar/cybercoach/internal/capture"
	"github.com/jwojnar/cybercoach/internal/engine"
	"github.com/jwojnar/cybercoach/internal/pose"
	"github.com/jwojnar/cybercoach/internal/store"
)

// viewPipeline runs frame capture and repetition analysis for one view.
type viewPipeline struct {
	view     string
	camera   capture.Camera
	detector pose.Detector
	engine   *engine.Engine

	calc     *pose.AngleCalculator
	frameIdx int
}

// runPipeline is the per-view analysis loop. Each tick it reads a frame,
// extracts joint angles from the detected pose, and feeds them to the
// repetition engine. It exits when the app stops or the source runs out
// of frames.
func (a *App) runPipeline(p *viewPipeline) {
	fps := p.camera.FPS()
	if fps <= 0 {
		fps = capture.DefaultFPS
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-a.stopDone():
			return
		case <-ticker.C:
			// Skip processing if analysis is disabled
			if !a.IsEnabled() {
				continue
			}

			if err := a.processFrame(p); err != nil {
				if errors.Is(err, capture.ErrEndOfStream) {
					log.Printf("View %s: source exhausted after %d frames", p.view, p.frameIdx)
					return
				}
				log.Printf("View %s: %v", p.view, err)
			}
		}
	}
}

// stopDone returns the current stop channel under the lock, so the loop
// keeps working after Stop replaces it with nil.
func (a *App) stopDone() <-chan struct{} {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.stopCh == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return a.stopCh
}

// processFrame runs one capture-detect-analyze step for the view.
func (a *App) processFrame(p *viewPipeline) error {
	frame, err := p.camera.ReadFrame()
	if err != nil {
		return err
	}

	if p.calc == nil {
		p.calc = pose.NewAngleCalculator(frame.Cols(), frame.Rows(), pose.DefaultVisibilityThreshold)
	}

	landmarks, err := p.detector.Detect(frame)
	frame.Close()
	if err != nil {
		return err
	}

	p.frameIdx++
	if landmarks == nil {
		return nil
	}

	angles := p.calc.AllAngles(landmarks)
	result := p.engine.ProcessFrame(p.frameIdx, engine.AngleFrame(angles))

	a.publishResult(p, result)
	return nil
}

// publishResult broadcasts the frame result and records any finished
// repetition in the store, the report, and the reconciler.
func (a *App) publishResult(p *viewPipeline, result engine.FrameResult) {
	if a.config.Live != nil && result.HasSignal {
		a.config.Live.Broadcast("frame", map[string]any{
			"view":      p.view,
			"frame":     result.Frame,
			"signal":    result.Signal,
			"has_error": result.HasError,
			"statuses":  result.Statuses,
		})
	}

	if result.Repetition == nil {
		return
	}
	rep := *result.Repetition

	log.Printf("View %s: repetition [%d..%d] rom=%.1f complete=%v",
		p.view, rep.StartFrame, rep.EndFrame, rep.ROM, rep.IsComplete)

	if a.config.Store != nil && a.SessionID() != "" {
		record := &store.Repetition{
			SessionID:  a.SessionID(),
			View:       p.view,
			StartFrame: rep.StartFrame,
			EndFrame:   rep.EndFrame,
			MinAngle:   rep.MinAngle,
			MaxAngle:   rep.MaxAngle,
			ROM:        rep.ROM,
			IsComplete: rep.IsComplete,
			Errors:     rep.Errors,
		}
		if err := a.config.Store.Repetitions().Create(record); err != nil {
			log.Printf("View %s: failed to persist repetition: %v", p.view, err)
		}
	}

	if a.reporter != nil {
		a.reporter.RecordRep(rep, p.view)
	}

	outcome := engine.OutcomePending
	if a.reconciler != nil {
		outcome = a.reconciler.Submit(p.view, rep)
	}

	if a.config.Live != nil {
		a.config.Live.Broadcast("repetition", map[string]any{
			"view":       p.view,
			"repetition": rep,
			"outcome":    outcome,
		})
	}
}
