package capture

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ramabhadrarao/face-recognition/internal/pkg/logger"
)

// Fixed auto-frame targets. Hardware zoom preserves native resolution
// so it can jump further; simulated zoom degrades quality faster.
const (
	hardwareZoomTarget  = 2.0
	simulatedZoomTarget = 1.5
)

// Options carries the fixed constants of the controller.
type Options struct {
	IdealWidth  int
	IdealHeight int

	// PresencePeriod is the heuristic ticker interval.
	PresencePeriod time.Duration

	// FallbackCapability is used when the device advertises no zoom
	// bounds of its own.
	FallbackCapability ZoomCapability
}

func (o *Options) applyDefaults() {
	if o.IdealWidth == 0 {
		o.IdealWidth = 1280
	}
	if o.IdealHeight == 0 {
		o.IdealHeight = 720
	}
	if o.PresencePeriod == 0 {
		o.PresencePeriod = 500 * time.Millisecond
	}
	if o.FallbackCapability.Max <= o.FallbackCapability.Min {
		o.FallbackCapability = ZoomCapability{Min: 1, Max: 3, Step: 0.1, Hardware: false}
	}
}

// Controller owns the capture session lifecycle: acquisition, zoom,
// the presence ticker and still capture. All state lives here; there
// are no package-level globals.
type Controller struct {
	acquirer Acquirer
	sink     EventSink
	log      logger.ILogger
	opts     Options

	mu         sync.Mutex
	session    *Session
	zoom       ZoomState
	latest     *PresenceSample
	pending    *Artifact
	status     StatusUpdate
	stopTicker chan struct{}
}

func NewController(acquirer Acquirer, sink EventSink, log logger.ILogger, opts Options) *Controller {
	opts.applyDefaults()
	if sink == nil {
		sink = noopSink{}
	}
	if log == nil {
		log = noopLogger{}
	}
	return &Controller{
		acquirer: acquirer,
		sink:     sink,
		log:      log,
		opts:     opts,
	}
}

// Start negotiates a new session. Any prior stream is stopped first,
// so at most one stream is ever active. A ConstraintUnsupported
// failure is recovered locally exactly once by retrying with a minimal
// constraint set; every other failure is terminal for this attempt and
// surfaced through the status contract without automatic retry.
func (c *Controller) Start(ctx context.Context) error {
	c.setStatus(StatusUpdate{State: StateRequesting, Severity: SeverityInfo, Detail: "Requesting camera access..."})

	constraints := Constraints{IdealWidth: c.opts.IdealWidth, IdealHeight: c.opts.IdealHeight}
	session, err := c.acquirer.Acquire(ctx, constraints)
	if errors.Is(err, ErrConstraintUnsupported) {
		c.log.Warn("Capture", "Ideal constraints unsupported, retrying with fallback", map[string]interface{}{
			"ideal_width":  constraints.IdealWidth,
			"ideal_height": constraints.IdealHeight,
		})
		session, err = c.acquirer.Acquire(ctx, Constraints{})
	}
	if err != nil {
		c.setStatus(statusForAcquireError(err))
		return err
	}

	capability := session.Capability
	if capability.Max <= capability.Min {
		capability = c.opts.FallbackCapability
	}

	c.mu.Lock()
	c.releaseSessionLocked()
	c.session = session
	c.zoom = ZoomState{
		Factor:   clampZoom(1, capability.Min, capability.Max),
		Min:      capability.Min,
		Max:      capability.Max,
		Step:     capability.Step,
		Hardware: capability.Hardware,
	}
	stop := make(chan struct{})
	c.stopTicker = stop
	zoom := c.zoom
	c.mu.Unlock()

	c.setStatus(StatusUpdate{State: StateStarting, Severity: SeverityInfo, Detail: "Starting camera..."})
	go c.runPresenceLoop(stop)

	c.setStatus(StatusUpdate{State: StateActive, Severity: SeveritySuccess, Detail: "Camera active"})
	c.sink.PublishZoom(zoom)
	return nil
}

// Stop releases the active stream and cancels the presence ticker.
// Safe to call repeatedly.
func (c *Controller) Stop() {
	c.mu.Lock()
	c.releaseSessionLocked()
	c.mu.Unlock()
}

// Close tears the controller down. Must be called on shutdown so the
// stream handle is released deterministically.
func (c *Controller) Close() {
	c.Stop()
}

func (c *Controller) releaseSessionLocked() {
	if c.stopTicker != nil {
		close(c.stopTicker)
		c.stopTicker = nil
	}
	if c.session != nil {
		c.acquirer.Release(c.session)
		c.session = nil
	}
}

// SetZoom clamps the level to the session bounds and applies it. In
// hardware mode a device rejection switches the session to simulated
// mode for good; the level is then reapplied in simulated form.
func (c *Controller) SetZoom(level float64) (ZoomState, error) {
	c.mu.Lock()
	if c.session == nil {
		c.mu.Unlock()
		return ZoomState{}, ErrNoSession
	}
	state := c.setZoomLocked(level)
	c.mu.Unlock()

	c.sink.PublishZoom(state)
	return state, nil
}

// StepZoom moves the factor by one step in the given direction (+1 or
// -1), clamped to bounds.
func (c *Controller) StepZoom(direction int) (ZoomState, error) {
	if direction != 1 && direction != -1 {
		return ZoomState{}, fmt.Errorf("invalid zoom direction %d", direction)
	}

	c.mu.Lock()
	if c.session == nil {
		c.mu.Unlock()
		return ZoomState{}, ErrNoSession
	}
	state := c.setZoomLocked(c.zoom.Factor + float64(direction)*c.zoom.Step)
	c.mu.Unlock()

	c.sink.PublishZoom(state)
	return state, nil
}

// AutoFrame runs the presence heuristic once on the current frame. A
// detected face jumps straight to the fixed target for the current
// zoom mode (no animation); otherwise ErrNoSubject is returned and the
// zoom is left untouched.
func (c *Controller) AutoFrame() (ZoomState, PresenceSample, error) {
	c.mu.Lock()
	if c.session == nil {
		c.mu.Unlock()
		return ZoomState{}, PresenceSample{}, ErrNoSession
	}
	source := c.session.Source
	width, height := source.Resolution()
	if width <= 0 || height <= 0 {
		zoom := c.zoom
		c.mu.Unlock()
		return zoom, PresenceSample{}, ErrNotReady
	}
	frame, err := source.Frame()
	if err != nil {
		zoom := c.zoom
		c.mu.Unlock()
		return zoom, PresenceSample{}, fmt.Errorf("%w: %v", ErrNotReady, err)
	}

	sample := Detect(frame)
	c.latest = &sample

	if !sample.Present {
		zoom := c.zoom
		c.mu.Unlock()
		c.sink.PublishPresence(sample)
		return zoom, sample, ErrNoSubject
	}

	target := simulatedZoomTarget
	if c.zoom.Hardware {
		target = hardwareZoomTarget
	}
	state := c.setZoomLocked(target)
	c.mu.Unlock()

	c.sink.PublishPresence(sample)
	c.sink.PublishZoom(state)
	return state, sample, nil
}

// Capture rasterizes the current visual frame into a still artifact.
// In simulated zoom the centered crop the user was viewing is
// reproduced (see renderStill). The new artifact overwrites any
// pending one; on failure the pending payload is left unchanged.
func (c *Controller) Capture() (*Artifact, error) {
	c.mu.Lock()
	if c.session == nil {
		c.mu.Unlock()
		return nil, ErrNoSession
	}
	source := c.session.Source
	width, height := source.Resolution()
	if width <= 0 || height <= 0 {
		c.mu.Unlock()
		return nil, ErrNotReady
	}
	frame, err := source.Frame()
	if err != nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %v", ErrNotReady, err)
	}

	zoom := c.zoom
	artifact, err := encodeArtifact(renderStill(frame, zoom), zoom.Factor)
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.pending = &artifact
	c.mu.Unlock()

	c.sink.PublishArtifact(artifact)
	return &artifact, nil
}

// PendingArtifact returns the current pending submission payload, or
// nil when nothing has been captured.
func (c *Controller) PendingArtifact() *Artifact {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// TakePendingArtifact consumes the pending payload (form submission).
func (c *Controller) TakePendingArtifact() *Artifact {
	c.mu.Lock()
	defer c.mu.Unlock()
	artifact := c.pending
	c.pending = nil
	return artifact
}

// LatestSample returns the most recent presence sample, if any tick or
// auto-frame has produced one for the active session.
func (c *Controller) LatestSample() (PresenceSample, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.latest == nil {
		return PresenceSample{}, false
	}
	return *c.latest, true
}

// Status reports the last status update and the live zoom state.
func (c *Controller) Status() (StatusUpdate, ZoomState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status, c.zoom
}

// ZoomStateSnapshot returns the current zoom state.
func (c *Controller) ZoomStateSnapshot() ZoomState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

func (c *Controller) setZoomLocked(level float64) ZoomState {
	level = clampZoom(level, c.zoom.Min, c.zoom.Max)
	if c.zoom.Hardware {
		if err := c.applyHardwareZoomLocked(level); err != nil {
			// Device rejected the level: simulated mode for the rest of
			// the session, no further hardware attempts.
			c.zoom.Hardware = false
			c.log.Warn("Capture", "Hardware zoom rejected, falling back to simulated zoom", map[string]interface{}{
				"level": level,
				"error": err.Error(),
			})
		}
	}
	c.zoom.Factor = level
	return c.zoom
}

func (c *Controller) applyHardwareZoomLocked(level float64) error {
	zoomer, ok := c.session.Source.(HardwareZoomer)
	if !ok {
		return errors.New("source exposes no hardware zoom control")
	}
	return zoomer.ApplyZoom(level)
}

func (c *Controller) runPresenceLoop(stop chan struct{}) {
	ticker := time.NewTicker(c.opts.PresencePeriod)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.presenceTick()
		}
	}
}

// presenceTick is independent and idempotent: it reads one frame,
// classifies it, and overwrites the single most-recent sample. No
// state accumulates across ticks.
func (c *Controller) presenceTick() {
	c.mu.Lock()
	var source FrameSource
	if c.session != nil {
		source = c.session.Source
	}
	c.mu.Unlock()
	if source == nil {
		return
	}

	width, height := source.Resolution()
	if width <= 0 || height <= 0 {
		return
	}
	frame, err := source.Frame()
	if err != nil {
		return
	}

	sample := Detect(frame)

	c.mu.Lock()
	c.latest = &sample
	c.mu.Unlock()

	c.sink.PublishPresence(sample)
}

func (c *Controller) setStatus(update StatusUpdate) {
	c.mu.Lock()
	c.status = update
	c.mu.Unlock()

	c.log.Info("Capture", "Status changed", map[string]interface{}{
		"state":    string(update.State),
		"severity": string(update.Severity),
		"detail":   update.Detail,
	})
	c.sink.PublishStatus(update)
}

func statusForAcquireError(err error) StatusUpdate {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return StatusUpdate{State: StateDenied, Severity: SeverityDanger, Detail: "Camera access denied. Use the enable control to try again."}
	case errors.Is(err, ErrDeviceNotFound):
		return StatusUpdate{State: StateNotFound, Severity: SeverityWarning, Detail: "No camera found on this device."}
	case errors.Is(err, ErrDeviceInUse):
		return StatusUpdate{State: StateError, Severity: SeverityDanger, Detail: "Camera is in use by another application."}
	default:
		return StatusUpdate{State: StateError, Severity: SeverityDanger, Detail: "Could not start camera: " + err.Error()}
	}
}

func clampZoom(level, min, max float64) float64 {
	if level < min {
		return min
	}
	if level > max {
		return max
	}
	return level
}

type noopSink struct{}

func (noopSink) PublishStatus(StatusUpdate)     {}
func (noopSink) PublishZoom(ZoomState)          {}
func (noopSink) PublishPresence(PresenceSample) {}
func (noopSink) PublishArtifact(Artifact)       {}

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }
