package capture_test

import (
	"context"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramabhadrarao/face-recognition/internal/capture"
	"github.com/ramabhadrarao/face-recognition/internal/capture/source"
)

type recordingSink struct {
	mu        sync.Mutex
	statuses  []capture.StatusUpdate
	zooms     []capture.ZoomState
	presences []capture.PresenceSample
	artifacts []capture.Artifact
}

func (r *recordingSink) PublishStatus(update capture.StatusUpdate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, update)
}

func (r *recordingSink) PublishZoom(state capture.ZoomState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.zooms = append(r.zooms, state)
}

func (r *recordingSink) PublishPresence(sample capture.PresenceSample) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presences = append(r.presences, sample)
}

func (r *recordingSink) PublishArtifact(artifact capture.Artifact) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.artifacts = append(r.artifacts, artifact)
}

func (r *recordingSink) statusStates() []capture.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	states := make([]capture.State, 0, len(r.statuses))
	for _, update := range r.statuses {
		states = append(states, update.State)
	}
	return states
}

// quietOptions keeps the presence ticker out of the way so tests only
// observe the operations they invoke.
func quietOptions() capture.Options {
	return capture.Options{PresencePeriod: time.Hour}
}

func TestStartActivatesSession(t *testing.T) {
	acquirer := source.NewSyntheticAcquirer(source.SyntheticOptions{})
	sink := &recordingSink{}
	controller := capture.NewController(acquirer, sink, nil, quietOptions())
	defer controller.Close()

	err := controller.Start(context.Background())
	require.NoError(t, err)

	status, zoom := controller.Status()
	assert.Equal(t, capture.StateActive, status.State)
	assert.Equal(t, capture.SeveritySuccess, status.Severity)
	assert.Equal(t, float64(1), zoom.Factor)
	assert.Equal(t, float64(1), zoom.Min)
	assert.Equal(t, float64(3), zoom.Max)
	assert.InDelta(t, 0.1, zoom.Step, 1e-12)
	assert.False(t, zoom.Hardware)

	assert.Equal(t, []capture.State{
		capture.StateRequesting,
		capture.StateStarting,
		capture.StateActive,
	}, sink.statusStates())
}

func TestStartPermissionDeniedStatus(t *testing.T) {
	acquirer := source.NewSyntheticAcquirer(source.SyntheticOptions{
		AcquireErr: capture.ErrPermissionDenied,
	})
	controller := capture.NewController(acquirer, nil, nil, quietOptions())

	err := controller.Start(context.Background())
	require.ErrorIs(t, err, capture.ErrPermissionDenied)

	status, _ := controller.Status()
	assert.Equal(t, capture.StateDenied, status.State)
	assert.Equal(t, capture.SeverityDanger, status.Severity)

	// A denied acquisition is terminal; no automatic retry happens.
	assert.Equal(t, 1, acquirer.AcquireCalls())
}

func TestStartDeviceNotFoundStatus(t *testing.T) {
	acquirer := source.NewSyntheticAcquirer(source.SyntheticOptions{
		AcquireErr: capture.ErrDeviceNotFound,
	})
	controller := capture.NewController(acquirer, nil, nil, quietOptions())

	err := controller.Start(context.Background())
	require.ErrorIs(t, err, capture.ErrDeviceNotFound)

	status, _ := controller.Status()
	assert.Equal(t, capture.StateNotFound, status.State)
	assert.Equal(t, capture.SeverityWarning, status.Severity)
}

func TestStartRetriesOnceWithoutIdealConstraints(t *testing.T) {
	acquirer := source.NewSyntheticAcquirer(source.SyntheticOptions{
		UnsupportedIdeal: true,
	})
	controller := capture.NewController(acquirer, nil, nil, quietOptions())
	defer controller.Close()

	err := controller.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, acquirer.AcquireCalls())

	status, _ := controller.Status()
	assert.Equal(t, capture.StateActive, status.State)
}

func TestStartStopsPriorSessionFirst(t *testing.T) {
	acquirer := source.NewSyntheticAcquirer(source.SyntheticOptions{})
	controller := capture.NewController(acquirer, nil, nil, quietOptions())
	defer controller.Close()

	require.NoError(t, controller.Start(context.Background()))
	require.NoError(t, controller.Start(context.Background()))
	assert.Equal(t, 1, acquirer.ReleaseCalls())

	controller.Stop()
	assert.Equal(t, 2, acquirer.ReleaseCalls())

	// Stop is idempotent.
	controller.Stop()
	assert.Equal(t, 2, acquirer.ReleaseCalls())
}

func TestSetZoomClampsToBounds(t *testing.T) {
	acquirer := source.NewSyntheticAcquirer(source.SyntheticOptions{})
	controller := capture.NewController(acquirer, nil, nil, quietOptions())
	defer controller.Close()
	require.NoError(t, controller.Start(context.Background()))

	state, err := controller.SetZoom(10)
	require.NoError(t, err)
	assert.Equal(t, float64(3), state.Factor)

	state, err = controller.SetZoom(0.2)
	require.NoError(t, err)
	assert.Equal(t, float64(1), state.Factor)
}

func TestZoomOperationsRequireSession(t *testing.T) {
	acquirer := source.NewSyntheticAcquirer(source.SyntheticOptions{})
	controller := capture.NewController(acquirer, nil, nil, quietOptions())

	_, err := controller.SetZoom(2)
	assert.ErrorIs(t, err, capture.ErrNoSession)

	_, err = controller.StepZoom(1)
	assert.ErrorIs(t, err, capture.ErrNoSession)

	_, _, err = controller.AutoFrame()
	assert.ErrorIs(t, err, capture.ErrNoSession)

	_, err = controller.Capture()
	assert.ErrorIs(t, err, capture.ErrNoSession)
}

func TestStepZoomMovesByOneStep(t *testing.T) {
	acquirer := source.NewSyntheticAcquirer(source.SyntheticOptions{})
	controller := capture.NewController(acquirer, nil, nil, quietOptions())
	defer controller.Close()
	require.NoError(t, controller.Start(context.Background()))

	state, err := controller.StepZoom(1)
	require.NoError(t, err)
	assert.InDelta(t, 1.1, state.Factor, 1e-12)

	state, err = controller.StepZoom(-1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, state.Factor, 1e-12)

	// Stepping below the minimum clamps.
	state, err = controller.StepZoom(-1)
	require.NoError(t, err)
	assert.Equal(t, float64(1), state.Factor)

	_, err = controller.StepZoom(0)
	assert.Error(t, err)
}

func TestHardwareZoomRejectionFallsBackPermanently(t *testing.T) {
	acquirer := source.NewSyntheticAcquirer(source.SyntheticOptions{
		HardwareZoom:       true,
		RejectHardwareZoom: true,
	})
	controller := capture.NewController(acquirer, nil, nil, quietOptions())
	defer controller.Close()
	require.NoError(t, controller.Start(context.Background()))

	initial := controller.ZoomStateSnapshot()
	assert.True(t, initial.Hardware)

	state, err := controller.SetZoom(2)
	require.NoError(t, err)
	assert.False(t, state.Hardware)
	assert.Equal(t, float64(2), state.Factor)

	// Once degraded, the session never returns to hardware mode.
	state, err = controller.SetZoom(1.5)
	require.NoError(t, err)
	assert.False(t, state.Hardware)
}

func TestAutoFrameJumpsToFixedTargets(t *testing.T) {
	t.Run("simulated zoom", func(t *testing.T) {
		acquirer := source.NewSyntheticAcquirer(source.SyntheticOptions{FacePresent: true})
		controller := capture.NewController(acquirer, nil, nil, quietOptions())
		defer controller.Close()
		require.NoError(t, controller.Start(context.Background()))

		state, sample, err := controller.AutoFrame()
		require.NoError(t, err)
		assert.True(t, sample.Present)
		assert.Equal(t, 1.5, state.Factor)
	})

	t.Run("hardware zoom", func(t *testing.T) {
		acquirer := source.NewSyntheticAcquirer(source.SyntheticOptions{
			FacePresent:  true,
			HardwareZoom: true,
		})
		controller := capture.NewController(acquirer, nil, nil, quietOptions())
		defer controller.Close()
		require.NoError(t, controller.Start(context.Background()))

		state, _, err := controller.AutoFrame()
		require.NoError(t, err)
		assert.True(t, state.Hardware)
		assert.Equal(t, 2.0, state.Factor)
	})
}

func TestAutoFrameWithoutSubjectLeavesZoomUnchanged(t *testing.T) {
	acquirer := source.NewSyntheticAcquirer(source.SyntheticOptions{FacePresent: false})
	controller := capture.NewController(acquirer, nil, nil, quietOptions())
	defer controller.Close()
	require.NoError(t, controller.Start(context.Background()))

	state, sample, err := controller.AutoFrame()
	assert.ErrorIs(t, err, capture.ErrNoSubject)
	assert.False(t, sample.Present)
	assert.Equal(t, float64(1), state.Factor)
}

func TestCaptureOverwritesPendingArtifact(t *testing.T) {
	acquirer := source.NewSyntheticAcquirer(source.SyntheticOptions{FacePresent: true})
	sink := &recordingSink{}
	controller := capture.NewController(acquirer, sink, nil, quietOptions())
	defer controller.Close()
	require.NoError(t, controller.Start(context.Background()))

	first, err := controller.Capture()
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := controller.Capture()
	require.NoError(t, err)
	require.NotNil(t, second)

	pending := controller.PendingArtifact()
	require.NotNil(t, pending)
	assert.Equal(t, second.CapturedAt, pending.CapturedAt)

	taken := controller.TakePendingArtifact()
	require.NotNil(t, taken)
	assert.Nil(t, controller.TakePendingArtifact())

	sink.mu.Lock()
	published := len(sink.artifacts)
	sink.mu.Unlock()
	assert.Equal(t, 2, published)
}

type notReadySource struct{}

func (notReadySource) Frame() (image.Image, error) { return nil, capture.ErrNotReady }
func (notReadySource) Resolution() (int, int)      { return 0, 0 }

type staticAcquirer struct {
	session *capture.Session
}

func (a staticAcquirer) Acquire(ctx context.Context, constraints capture.Constraints) (*capture.Session, error) {
	return a.session, nil
}

func (a staticAcquirer) Release(session *capture.Session) {}

func TestCaptureBeforeFirstFrameLeavesPendingUnchanged(t *testing.T) {
	acquirer := staticAcquirer{session: &capture.Session{Source: notReadySource{}}}
	controller := capture.NewController(acquirer, nil, nil, quietOptions())
	defer controller.Close()
	require.NoError(t, controller.Start(context.Background()))

	_, err := controller.Capture()
	assert.ErrorIs(t, err, capture.ErrNotReady)
	assert.Nil(t, controller.PendingArtifact())

	_, _, err = controller.AutoFrame()
	assert.ErrorIs(t, err, capture.ErrNotReady)
}

func TestPresenceTickerPublishesSamples(t *testing.T) {
	acquirer := source.NewSyntheticAcquirer(source.SyntheticOptions{FacePresent: true})
	sink := &recordingSink{}
	controller := capture.NewController(acquirer, sink, nil, capture.Options{
		PresencePeriod: 10 * time.Millisecond,
	})
	defer controller.Close()
	require.NoError(t, controller.Start(context.Background()))

	require.Eventually(t, func() bool {
		sample, ok := controller.LatestSample()
		return ok && sample.Present
	}, 2*time.Second, 10*time.Millisecond)

	controller.Stop()

	sink.mu.Lock()
	published := len(sink.presences)
	sink.mu.Unlock()
	assert.Greater(t, published, 0)
}
