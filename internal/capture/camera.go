// Package capture provides video frame acquisition for the coaching
// pipeline: local cameras and video files via GoCV, and phone streams over
// MJPEG HTTP.
package capture

import (
	"errors"
	"sync"

	"gocv.io/x/gocv"
)

// Default camera settings
const (
	DefaultFPS    = 30
	DefaultWidth  = 640
	DefaultHeight = 480
)

// ErrCameraNotOpen is returned when trying to read from a source that is
// not open.
var ErrCameraNotOpen = errors.New("camera is not open")

// ErrEndOfStream is returned when a video file source has no more frames.
var ErrEndOfStream = errors.New("end of video stream")

// Camera defines the interface for frame source implementations.
type Camera interface {
	Open() error
	Close() error
	ReadFrame() (*gocv.Mat, error)
	SetFPS(fps int)
	FPS() int
	IsOpen() bool
}

// cameraImpl reads frames from a camera device or a video file using GoCV.
type cameraImpl struct {
	source  interface{} // device ID (int) or file path (string)
	capture *gocv.VideoCapture
	mu      sync.Mutex
	running bool
	fps     int
	isFile  bool
}

// NewCamera creates a Camera reading from the given device ID.
func NewCamera(deviceID int) Camera {
	return &cameraImpl{
		source: deviceID,
		fps:    DefaultFPS,
	}
}

// NewVideoFile creates a Camera that plays back a recorded video file.
// Useful for analyzing previously captured training sessions.
func NewVideoFile(path string) Camera {
	return &cameraImpl{
		source: path,
		fps:    DefaultFPS,
		isFile: true,
	}
}

// Open opens the source for capturing frames.
// Device sources are set to 640x480 for performance.
func (c *cameraImpl) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return nil
	}

	capture, err := gocv.OpenVideoCapture(c.source)
	if err != nil {
		return err
	}

	if !c.isFile {
		capture.Set(gocv.VideoCaptureFrameWidth, DefaultWidth)
		capture.Set(gocv.VideoCaptureFrameHeight, DefaultHeight)
		capture.Set(gocv.VideoCaptureFPS, float64(c.fps))
	}

	c.capture = capture
	c.running = true

	return nil
}

// Close closes the source and releases resources.
func (c *cameraImpl) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.capture == nil {
		c.running = false
		return nil
	}

	err := c.capture.Close()
	c.capture = nil
	c.running = false

	return err
}

// ReadFrame reads a single frame from the source.
// The caller is responsible for closing the returned Mat.
func (c *cameraImpl) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.capture == nil {
		return nil, ErrCameraNotOpen
	}

	mat := gocv.NewMat()
	if ok := c.capture.Read(&mat); !ok {
		mat.Close()
		if c.isFile {
			return nil, ErrEndOfStream
		}
		return nil, errors.New("failed to read frame from camera")
	}

	if mat.Empty() {
		mat.Close()
		return nil, errors.New("captured frame is empty")
	}

	return &mat, nil
}

// SetFPS sets the frames per second for capture.
// Values less than or equal to 0 are ignored.
func (c *cameraImpl) SetFPS(fps int) {
	if fps <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.fps = fps

	if c.capture != nil && !c.isFile {
		c.capture.Set(gocv.VideoCaptureFPS, float64(fps))
	}
}

// FPS returns the current frames per second setting.
func (c *cameraImpl) FPS() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.fps
}

// IsOpen returns true if the source is currently open.
func (c *cameraImpl) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.running
}
