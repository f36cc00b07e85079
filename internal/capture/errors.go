package capture

import "errors"

// Acquisition failures. All are terminal for the current attempt; the
// caller must explicitly re-invoke to retry.
var (
	ErrPermissionDenied      = errors.New("camera permission denied")
	ErrDeviceNotFound        = errors.New("no camera device found")
	ErrDeviceInUse           = errors.New("camera is in use by another application")
	ErrConstraintUnsupported = errors.New("camera does not support the requested constraints")
)

var (
	// ErrNotReady means the frame source has no valid dimensions yet.
	// The caller must retry after the source signals ready.
	ErrNotReady = errors.New("frame source not ready")

	// ErrNoSubject is returned by AutoFrame when the heuristic finds no
	// face. The zoom factor is left unchanged.
	ErrNoSubject = errors.New("no subject found")

	// ErrNoSession means an operation needs an active session.
	ErrNoSession = errors.New("no active capture session")
)
