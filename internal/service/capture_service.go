package service

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ramabhadrarao/face-recognition/internal/capture"
	"github.com/ramabhadrarao/face-recognition/internal/dto"
	"github.com/ramabhadrarao/face-recognition/internal/pkg/serverutils"
)

type ICaptureService interface {
	StartSession(ctx context.Context) (*dto.CaptureStatusResponse, error)
	StopSession()
	Status() *dto.CaptureStatusResponse
	SetZoom(req *dto.SetZoomRequest) (*dto.ZoomStateResponse, error)
	StepZoom(req *dto.StepZoomRequest) (*dto.ZoomStateResponse, error)
	AutoFrame() (*dto.AutoFrameResponse, error)
	CaptureStill() (*dto.ArtifactResponse, error)
	PendingArtifact() *dto.ArtifactResponse
}

type captureService struct {
	controller *capture.Controller
}

func NewCaptureService(controller *capture.Controller) ICaptureService {
	return &captureService{
		controller: controller,
	}
}

func (s *captureService) StartSession(ctx context.Context) (*dto.CaptureStatusResponse, error) {
	if err := s.controller.Start(ctx); err != nil {
		// The status contract already carries the failure; translate it
		// into an HTTP error for the caller.
		return nil, captureError(err)
	}
	return s.Status(), nil
}

func (s *captureService) StopSession() {
	s.controller.Stop()
}

func (s *captureService) Status() *dto.CaptureStatusResponse {
	status, zoom := s.controller.Status()

	resp := &dto.CaptureStatusResponse{
		State:    string(status.State),
		Severity: string(status.Severity),
		Detail:   status.Detail,
		Zoom:     toZoomResponse(zoom),
	}
	if sample, ok := s.controller.LatestSample(); ok {
		presence := toPresenceResponse(sample)
		resp.Presence = &presence
	}
	return resp
}

func (s *captureService) SetZoom(req *dto.SetZoomRequest) (*dto.ZoomStateResponse, error) {
	state, err := s.controller.SetZoom(req.Level)
	if err != nil {
		return nil, captureError(err)
	}
	resp := toZoomResponse(state)
	return &resp, nil
}

func (s *captureService) StepZoom(req *dto.StepZoomRequest) (*dto.ZoomStateResponse, error) {
	state, err := s.controller.StepZoom(req.Direction)
	if err != nil {
		return nil, captureError(err)
	}
	resp := toZoomResponse(state)
	return &resp, nil
}

func (s *captureService) AutoFrame() (*dto.AutoFrameResponse, error) {
	state, sample, err := s.controller.AutoFrame()
	if err != nil {
		return nil, captureError(err)
	}
	return &dto.AutoFrameResponse{
		Zoom:     toZoomResponse(state),
		Presence: toPresenceResponse(sample),
	}, nil
}

func (s *captureService) CaptureStill() (*dto.ArtifactResponse, error) {
	artifact, err := s.controller.Capture()
	if err != nil {
		return nil, captureError(err)
	}
	return toArtifactResponse(artifact), nil
}

func (s *captureService) PendingArtifact() *dto.ArtifactResponse {
	return toArtifactResponse(s.controller.PendingArtifact())
}

func toZoomResponse(state capture.ZoomState) dto.ZoomStateResponse {
	return dto.ZoomStateResponse{
		Factor:   state.Factor,
		Min:      state.Min,
		Max:      state.Max,
		Step:     state.Step,
		Hardware: state.Hardware,
	}
}

func toPresenceResponse(sample capture.PresenceSample) dto.PresenceResponse {
	return dto.PresenceResponse{
		Present:    sample.Present,
		Confidence: sample.Confidence,
		SkinRatio:  sample.SkinRatio,
		SampledAt:  sample.SampledAt,
	}
}

func toArtifactResponse(artifact *capture.Artifact) *dto.ArtifactResponse {
	if artifact == nil {
		return nil
	}
	return &dto.ArtifactResponse{
		ImageData:  artifact.DataURI,
		Width:      artifact.Width,
		Height:     artifact.Height,
		ZoomFactor: artifact.ZoomFactor,
		CapturedAt: artifact.CapturedAt,
	}
}

func captureError(err error) error {
	switch {
	case errors.Is(err, capture.ErrNoSession):
		return serverutils.NewAppError(fiber.StatusConflict, "no active capture session")
	case errors.Is(err, capture.ErrNotReady):
		return serverutils.NewAppError(fiber.StatusConflict, "camera stream is not ready yet")
	case errors.Is(err, capture.ErrNoSubject):
		return serverutils.NewAppError(fiber.StatusUnprocessableEntity, "no subject found in frame")
	case errors.Is(err, capture.ErrPermissionDenied):
		return serverutils.NewAppError(fiber.StatusForbidden, "camera access denied")
	case errors.Is(err, capture.ErrDeviceNotFound):
		return serverutils.NewAppError(fiber.StatusNotFound, "no camera found")
	case errors.Is(err, capture.ErrDeviceInUse):
		return serverutils.NewAppError(fiber.StatusConflict, "camera is in use by another application")
	case errors.Is(err, capture.ErrConstraintUnsupported):
		return serverutils.NewAppError(fiber.StatusUnprocessableEntity, "camera does not support the requested constraints")
	default:
		return err
	}
}
