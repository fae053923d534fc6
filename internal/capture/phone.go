package capture

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// PhoneCamera reads frames from a phone running an IP webcam app that
// exposes an MJPEG stream over HTTP (typically http://<phone>:8080/video).
// It implements the Camera interface so the pipeline treats the phone like
// any other view source.
type PhoneCamera struct {
	baseURL string
	client  *http.Client

	mu      sync.Mutex
	resp    *http.Response
	reader  *multipart.Reader
	running bool
	fps     int
}

// NewPhoneCamera creates a PhoneCamera for the given base URL, e.g.
// "http://192.168.1.100:8080".
func NewPhoneCamera(baseURL string) *PhoneCamera {
	return &PhoneCamera{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 0}, // streaming connection, no deadline
		fps:     DefaultFPS,
	}
}

// Open connects to the phone's MJPEG endpoint.
func (p *PhoneCamera) Open() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return nil
	}

	resp, err := p.client.Get(p.baseURL + "/video")
	if err != nil {
		return fmt.Errorf("connect to phone stream: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return fmt.Errorf("phone stream returned status %d", resp.StatusCode)
	}

	mediaType, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		resp.Body.Close()
		return fmt.Errorf("phone stream is not MJPEG (content type %q)",
			resp.Header.Get("Content-Type"))
	}

	p.resp = resp
	p.reader = multipart.NewReader(resp.Body, params["boundary"])
	p.running = true

	return nil
}

// Close terminates the stream connection.
func (p *PhoneCamera) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.running = false
	p.reader = nil
	if p.resp != nil {
		err := p.resp.Body.Close()
		p.resp = nil
		return err
	}
	return nil
}

// ReadFrame reads and decodes the next JPEG part from the stream.
// The caller is responsible for closing the returned Mat.
func (p *PhoneCamera) ReadFrame() (*gocv.Mat, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running || p.reader == nil {
		return nil, ErrCameraNotOpen
	}

	part, err := p.reader.NextPart()
	if err != nil {
		if err == io.EOF {
			return nil, ErrEndOfStream
		}
		return nil, fmt.Errorf("read stream part: %w", err)
	}

	data, err := io.ReadAll(part)
	part.Close()
	if err != nil {
		return nil, fmt.Errorf("read frame data: %w", err)
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("decoded frame is empty")
	}

	return &mat, nil
}

// SetFPS records the requested playback rate. The phone controls its own
// capture rate; the pipeline uses this value only for pacing.
func (p *PhoneCamera) SetFPS(fps int) {
	if fps <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fps = fps
}

// FPS returns the pacing rate.
func (p *PhoneCamera) FPS() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fps
}

// IsOpen returns true if the stream connection is established.
func (p *PhoneCamera) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Snapshot fetches a single still frame from the phone's shot endpoint.
// Some IP webcam apps serve this even when the video stream is busy.
func (p *PhoneCamera) Snapshot() (*gocv.Mat, error) {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(p.baseURL + "/shot.jpg")
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("snapshot returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &mat, nil
}
