package capture

import (
	"context"
	"image"
	"io"
)

// FrameSource yields the current frame of a live stream. Resolution
// reports (0, 0) until the first frame is available.
type FrameSource interface {
	Frame() (image.Image, error)
	Resolution() (width, height int)
}

// HardwareZoomer is implemented by sources whose device applies zoom
// before frame readout. A returned error means the device rejected the
// level; the controller then falls back to simulated zoom permanently
// for the session.
type HardwareZoomer interface {
	ApplyZoom(factor float64) error
}

// Session owns one active stream handle. At most one session is active
// per controller; starting a new one stops the prior stream first.
type Session struct {
	Source     FrameSource
	Capability ZoomCapability
	Width      int
	Height     int
}

// Acquirer is the permission/device boundary. Acquire returns one of
// the acquisition errors from errors.go on failure; the core performs
// no permission UX of its own.
type Acquirer interface {
	Acquire(ctx context.Context, constraints Constraints) (*Session, error)
	Release(session *Session)
}

// ReleaseSource closes the session's source if it holds any resources.
func ReleaseSource(session *Session) {
	if session == nil {
		return
	}
	if closer, ok := session.Source.(io.Closer); ok {
		closer.Close()
	}
}
