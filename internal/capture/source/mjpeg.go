package source

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"

	"github.com/ramabhadrarao/face-recognition/internal/capture"
)

// MJPEGSource consumes a multipart/x-mixed-replace JPEG stream, the
// format most IP cameras expose over HTTP. A background goroutine
// keeps decoding parts; readers always see the latest complete frame.
type MJPEGSource struct {
	resp *http.Response

	mu     sync.RWMutex
	frame  image.Image
	width  int
	height int

	closeOnce sync.Once
	closed    chan struct{}
}

// OpenMJPEG connects to the camera endpoint and starts the reader
// goroutine. HTTP status codes map onto the acquisition errors so the
// controller's status contract holds for network cameras too.
func OpenMJPEG(ctx context.Context, client *http.Client, url string) (*MJPEGSource, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", capture.ErrDeviceNotFound, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		resp.Body.Close()
		return nil, capture.ErrPermissionDenied
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, capture.ErrDeviceNotFound
	case resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusLocked:
		resp.Body.Close()
		return nil, capture.ErrDeviceInUse
	default:
		resp.Body.Close()
		return nil, fmt.Errorf("camera endpoint returned status %d", resp.StatusCode)
	}

	mediaType, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") || params["boundary"] == "" {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: endpoint is not an MJPEG stream", capture.ErrConstraintUnsupported)
	}

	src := &MJPEGSource{
		resp:   resp,
		closed: make(chan struct{}),
	}
	go src.readLoop(params["boundary"])
	return src, nil
}

func (m *MJPEGSource) readLoop(boundary string) {
	reader := multipart.NewReader(m.resp.Body, boundary)
	for {
		select {
		case <-m.closed:
			return
		default:
		}

		part, err := reader.NextPart()
		if err != nil {
			return
		}
		frame, err := jpeg.Decode(part)
		part.Close()
		if err != nil {
			// Skip torn frames and keep reading.
			continue
		}

		bounds := frame.Bounds()
		m.mu.Lock()
		m.frame = frame
		m.width = bounds.Dx()
		m.height = bounds.Dy()
		m.mu.Unlock()
	}
}

func (m *MJPEGSource) Frame() (image.Image, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.frame == nil {
		return nil, capture.ErrNotReady
	}
	return m.frame, nil
}

func (m *MJPEGSource) Resolution() (int, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.width, m.height
}

func (m *MJPEGSource) Close() error {
	m.closeOnce.Do(func() {
		close(m.closed)
		m.resp.Body.Close()
	})
	return nil
}

// MJPEGAcquirer opens network camera sessions. The stream advertises
// no zoom capability, so the controller applies its fallback bounds.
type MJPEGAcquirer struct {
	URL    string
	Client *http.Client
}

func NewMJPEGAcquirer(url string, client *http.Client) *MJPEGAcquirer {
	return &MJPEGAcquirer{URL: url, Client: client}
}

func (a *MJPEGAcquirer) Acquire(ctx context.Context, constraints capture.Constraints) (*capture.Session, error) {
	src, err := OpenMJPEG(ctx, a.Client, a.URL)
	if err != nil {
		return nil, err
	}
	return &capture.Session{Source: src}, nil
}

func (a *MJPEGAcquirer) Release(session *capture.Session) {
	capture.ReleaseSource(session)
}
