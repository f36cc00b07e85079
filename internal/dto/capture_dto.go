package dto

import "time"

type ZoomStateResponse struct {
	Factor   float64 `json:"factor"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Step     float64 `json:"step"`
	Hardware bool    `json:"hardware"`
}

type CaptureStatusResponse struct {
	State    string            `json:"state"`
	Severity string            `json:"severity"`
	Detail   string            `json:"detail"`
	Zoom     ZoomStateResponse `json:"zoom"`
	Presence *PresenceResponse `json:"presence,omitempty"`
}

type PresenceResponse struct {
	Present    bool      `json:"present"`
	Confidence float64   `json:"confidence"`
	SkinRatio  float64   `json:"skin_ratio"`
	SampledAt  time.Time `json:"sampled_at"`
}

type SetZoomRequest struct {
	Level float64 `json:"level" validate:"required,gt=0"`
}

type StepZoomRequest struct {
	Direction int `json:"direction" validate:"required,oneof=1 -1"`
}

type AutoFrameResponse struct {
	Zoom     ZoomStateResponse `json:"zoom"`
	Presence PresenceResponse  `json:"presence"`
}

type ArtifactResponse struct {
	ImageData  string    `json:"image_data"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	ZoomFactor float64   `json:"zoom_factor"`
	CapturedAt time.Time `json:"captured_at"`
}
