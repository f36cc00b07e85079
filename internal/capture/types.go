package capture

import "time"

// Constraints is the requested stream geometry. Ideal values are
// best-effort hints, not hard requirements.
type Constraints struct {
	IdealWidth  int
	IdealHeight int
}

// ZoomCapability describes what the acquired device advertises.
type ZoomCapability struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Step     float64 `json:"step"`
	Hardware bool    `json:"hardware"`
}

// ZoomState is the live zoom of the active session. Factor is always
// within [Min, Max]. Hardware flips to false permanently for the
// session once a device zoom apply is rejected.
type ZoomState struct {
	Factor   float64 `json:"factor"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Step     float64 `json:"step"`
	Hardware bool    `json:"hardware"`
}

// PresenceSample is the result of one heuristic evaluation. It has no
// identity beyond "most recent"; every tick overwrites the last one.
type PresenceSample struct {
	Present    bool      `json:"present"`
	Confidence float64   `json:"confidence"` // 0..100
	SkinRatio  float64   `json:"skin_ratio"`
	SampledAt  time.Time `json:"sampled_at"`
}

// Artifact is one captured still. DataURI is the form submission
// payload (data:image/jpeg;base64,...).
type Artifact struct {
	DataURI    string    `json:"image_data"`
	JPEG       []byte    `json:"-"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	ZoomFactor float64   `json:"zoom_factor"`
	CapturedAt time.Time `json:"captured_at"`
}

// State is the operator-facing session state.
type State string

const (
	StateRequesting State = "requesting"
	StateDenied     State = "denied"
	StateNotFound   State = "not-found"
	StateStarting   State = "starting"
	StateActive     State = "active"
	StateError      State = "error"
)

// Severity is the display level of a status update.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
	SeverityDanger  Severity = "danger"
)

// StatusUpdate is published whenever the session state changes. Detail
// is free text for human operators, not machine-parsed.
type StatusUpdate struct {
	State    State    `json:"state"`
	Severity Severity `json:"severity"`
	Detail   string   `json:"detail"`
}

// EventSink receives the core's observable signals so any presentation
// layer can subscribe without the core knowing about transports.
type EventSink interface {
	PublishStatus(update StatusUpdate)
	PublishZoom(state ZoomState)
	PublishPresence(sample PresenceSample)
	PublishArtifact(artifact Artifact)
}
