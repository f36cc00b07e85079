package source

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"

	"github.com/ramabhadrarao/face-recognition/internal/capture"
)

// SyntheticOptions configures the generated stream.
type SyntheticOptions struct {
	Width  int
	Height int

	// FacePresent paints a skin-toned patch in the frame center.
	FacePresent bool

	// HardwareZoom advertises a device-side zoom control.
	HardwareZoom bool

	// RejectHardwareZoom makes every device zoom apply fail, so the
	// session degrades to simulated zoom.
	RejectHardwareZoom bool

	// UnsupportedIdeal rejects any acquisition that asks for a specific
	// geometry; only a minimal constraint set succeeds.
	UnsupportedIdeal bool

	// AcquireErr, when set, fails every acquisition with this error.
	AcquireErr error
}

// SyntheticSource renders frames procedurally. It backs local
// development and tests where no physical camera exists.
type SyntheticSource struct {
	mu          sync.Mutex
	width       int
	height      int
	facePresent bool
}

func NewSyntheticSource(width, height int, facePresent bool) *SyntheticSource {
	return &SyntheticSource{width: width, height: height, facePresent: facePresent}
}

// SetFacePresent toggles the skin-toned patch for subsequent frames.
func (s *SyntheticSource) SetFacePresent(present bool) {
	s.mu.Lock()
	s.facePresent = present
	s.mu.Unlock()
}

func (s *SyntheticSource) Resolution() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *SyntheticSource) Frame() (image.Image, error) {
	s.mu.Lock()
	width, height, facePresent := s.width, s.height, s.facePresent
	s.mu.Unlock()

	frame := image.NewRGBA(image.Rect(0, 0, width, height))
	background := color.RGBA{R: 30, G: 44, B: 62, A: 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			frame.SetRGBA(x, y, background)
		}
	}

	if facePresent {
		shorter := width
		if height < shorter {
			shorter = height
		}
		side := shorter / 2
		x0 := (width - side) / 2
		y0 := (height - side) / 2
		skin := color.RGBA{R: 200, G: 140, B: 110, A: 255}
		for y := y0; y < y0+side; y++ {
			for x := x0; x < x0+side; x++ {
				frame.SetRGBA(x, y, skin)
			}
		}
	}
	return frame, nil
}

// hardwareSyntheticSource additionally exposes a device zoom control.
type hardwareSyntheticSource struct {
	*SyntheticSource
	rejectZoom bool

	zoomMu sync.Mutex
	zoom   float64
}

func (h *hardwareSyntheticSource) ApplyZoom(factor float64) error {
	if h.rejectZoom {
		return errors.New("device rejected zoom level")
	}
	h.zoomMu.Lock()
	h.zoom = factor
	h.zoomMu.Unlock()
	return nil
}

// AppliedZoom reports the last factor the device accepted.
func (h *hardwareSyntheticSource) AppliedZoom() float64 {
	h.zoomMu.Lock()
	defer h.zoomMu.Unlock()
	return h.zoom
}

// SyntheticAcquirer hands out synthetic sessions. AcquireCalls and
// ReleaseCalls are counted so lifecycle behavior can be observed.
type SyntheticAcquirer struct {
	Options SyntheticOptions

	mu           sync.Mutex
	acquireCalls int
	releaseCalls int
	lastSource   *SyntheticSource
}

func NewSyntheticAcquirer(options SyntheticOptions) *SyntheticAcquirer {
	if options.Width == 0 {
		options.Width = 640
	}
	if options.Height == 0 {
		options.Height = 480
	}
	return &SyntheticAcquirer{Options: options}
}

func (a *SyntheticAcquirer) Acquire(ctx context.Context, constraints capture.Constraints) (*capture.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.acquireCalls++
	a.mu.Unlock()

	if a.Options.AcquireErr != nil {
		return nil, a.Options.AcquireErr
	}
	if a.Options.UnsupportedIdeal && (constraints.IdealWidth != 0 || constraints.IdealHeight != 0) {
		return nil, capture.ErrConstraintUnsupported
	}

	width, height := a.Options.Width, a.Options.Height
	if constraints.IdealWidth > 0 && constraints.IdealHeight > 0 {
		width, height = constraints.IdealWidth, constraints.IdealHeight
	}

	base := NewSyntheticSource(width, height, a.Options.FacePresent)

	a.mu.Lock()
	a.lastSource = base
	a.mu.Unlock()

	var src capture.FrameSource = base
	capability := capture.ZoomCapability{Min: 1, Max: 3, Step: 0.1, Hardware: false}
	if a.Options.HardwareZoom {
		src = &hardwareSyntheticSource{SyntheticSource: base, rejectZoom: a.Options.RejectHardwareZoom, zoom: 1}
		capability = capture.ZoomCapability{Min: 1, Max: 5, Step: 0.1, Hardware: true}
	}

	return &capture.Session{
		Source:     src,
		Capability: capability,
		Width:      width,
		Height:     height,
	}, nil
}

func (a *SyntheticAcquirer) Release(session *capture.Session) {
	a.mu.Lock()
	a.releaseCalls++
	a.mu.Unlock()
	capture.ReleaseSource(session)
}

func (a *SyntheticAcquirer) AcquireCalls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.acquireCalls
}

func (a *SyntheticAcquirer) ReleaseCalls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.releaseCalls
}

// LastSource returns the most recently acquired synthetic source so
// tests and the diagnose tool can flip the subject on and off.
func (a *SyntheticAcquirer) LastSource() *SyntheticSource {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastSource
}
