package engine

import "errors"

// ErrNoPrimaryJoints is returned when a view config defines no joints to
// build the tracking signal from.
var ErrNoPrimaryJoints = errors.New("engine: no primary joints configured")

// Config holds the per-view parameters of an Engine. Tables are selected
// once at construction and never change afterwards.
type Config struct {
	// View is the camera perspective this engine analyzes ("front", "side").
	View string

	// Ranges are the per-frame technique ranges.
	Ranges RangeTable

	// RomThresholds are the per-repetition range-of-motion thresholds.
	RomThresholds RangeTable

	// PrimaryJoints are averaged into the scalar tracking signal.
	PrimaryJoints []string

	// MinROM is the minimum degree span a repetition must traverse.
	MinROM float64

	// Tolerance is the slack applied to ROM threshold coverage.
	// Zero means DefaultTolerance.
	Tolerance float64

	// Window is the extremum detector half-window. Zero means DefaultWindow.
	Window int

	// HistorySize is the signal history capacity. Zero means
	// DefaultHistorySize.
	HistorySize int
}

// FrameResult is everything the engine derives from one ingested frame.
type FrameResult struct {
	Frame    int
	Statuses map[string]JointStatus
	HasError bool

	// Signal is the reduced scalar; HasSignal is false when no primary
	// joint had data this frame.
	Signal    float64
	HasSignal bool

	// Extremum is set when this ingestion surfaced a peak or valley.
	Extremum *Extremum

	// Repetition is set when this ingestion completed a cycle.
	Repetition *Repetition
}

// Engine is the per-view repetition detection pipeline. It is not safe for
// concurrent use; each camera view owns exactly one Engine and feeds it
// frames in order.
type Engine struct {
	cfg       Config
	history   *SignalHistory
	detector  ExtremumDetector
	segmenter *Segmenter
	reps      []Repetition
}

// New creates an Engine for one camera view. The config must name at least
// one primary joint; table selection for unknown view names is rejected
// earlier, by the exercise definition.
func New(cfg Config) (*Engine, error) {
	if len(cfg.PrimaryJoints) == 0 {
		return nil, ErrNoPrimaryJoints
	}
	if cfg.Tolerance == 0 {
		cfg.Tolerance = DefaultTolerance
	}

	return &Engine{
		cfg:       cfg,
		history:   NewSignalHistory(cfg.HistorySize),
		detector:  NewWindowDetector(cfg.Window),
		segmenter: NewSegmenter(),
	}, nil
}

// SetDetector replaces the extremum detection strategy. Must be called
// before the first frame is processed.
func (e *Engine) SetDetector(d ExtremumDetector) {
	if d != nil {
		e.detector = d
	}
}

// View returns the camera perspective this engine analyzes.
func (e *Engine) View() string {
	return e.cfg.View
}

// ProcessFrame pushes one frame of joint angles through the pipeline:
// technique validation, signal reduction, extremum detection, segmentation
// and scoring, all synchronously. frameIdx must increase monotonically.
//
// A frame with no usable signal is a data gap, not an error: the engine
// records the technique statuses and stays in its current state.
func (e *Engine) ProcessFrame(frameIdx int, angles AngleFrame) FrameResult {
	result := FrameResult{
		Frame:    frameIdx,
		Statuses: CheckAngles(angles, e.cfg.Ranges),
		HasError: HasAngleErrors(angles, e.cfg.Ranges),
	}

	// Technique bookkeeping happens before extremum checks so the error
	// is charged to the cycle that is open right now.
	if result.HasError {
		e.segmenter.NoteTechniqueError()
	}

	signal, ok := ReduceSignal(angles, e.cfg.PrimaryJoints)
	if !ok {
		return result
	}
	result.Signal = signal
	result.HasSignal = true

	e.history.Push(frameIdx, signal)

	ev, found := e.detector.Detect(e.history)
	if !found {
		return result
	}
	result.Extremum = &ev

	rep, hadError, done := e.segmenter.OnExtremum(ev, e.history)
	if !done {
		return result
	}

	rep.IsComplete, rep.Errors = ScoreRepetition(
		rep.MinAngle, rep.MaxAngle, e.cfg.RomThresholds,
		hadError, e.cfg.MinROM, e.cfg.Tolerance,
	)
	e.reps = append(e.reps, rep)
	result.Repetition = &rep

	return result
}

// Repetitions returns the append-only repetition log for the session.
func (e *Engine) Repetitions() []Repetition {
	return e.reps
}

// Summary aggregates the repetition log.
type Summary struct {
	TotalReps      int     `json:"total_reps"`
	CompleteReps   int     `json:"complete_reps"`
	IncompleteReps int     `json:"incomplete_reps"`
	AvgROM         float64 `json:"avg_rom"`
}

// Summary recomputes the session aggregate from the repetition log. It is
// a pure read: calling it twice yields identical results. AvgROM is 0 when
// no repetitions exist.
func (e *Engine) Summary() Summary {
	return Summarize(e.reps)
}

// Summarize aggregates an arbitrary repetition log.
func Summarize(reps []Repetition) Summary {
	s := Summary{TotalReps: len(reps)}
	if len(reps) == 0 {
		return s
	}

	var romSum float64
	for _, r := range reps {
		if r.IsComplete {
			s.CompleteReps++
		} else {
			s.IncompleteReps++
		}
		romSum += r.ROM
	}
	s.AvgROM = romSum / float64(len(reps))
	return s
}
