package service

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/ramabhadrarao/face-recognition/internal/capture"
	"github.com/ramabhadrarao/face-recognition/internal/pkg/logger"
)

// In-process topics carrying the capture core's observable signals.
const (
	TopicCaptureStatus   = "capture.status"
	TopicCaptureZoom     = "capture.zoom"
	TopicCapturePresence = "capture.presence"
	TopicCaptureArtifact = "capture.artifact"
)

// IPublisherService fans capture signals onto the in-process bus. It
// satisfies capture.EventSink, keeping the capture core transport-free.
type IPublisherService interface {
	PublishStatus(update capture.StatusUpdate)
	PublishZoom(state capture.ZoomState)
	PublishPresence(sample capture.PresenceSample)
	PublishArtifact(artifact capture.Artifact)
}

type publisherService struct {
	pubSub *gochannel.GoChannel
	logger logger.ILogger
}

func NewPublisherService(pubSub *gochannel.GoChannel, log logger.ILogger) IPublisherService {
	return &publisherService{
		pubSub: pubSub,
		logger: log,
	}
}

func (s *publisherService) PublishStatus(update capture.StatusUpdate) {
	s.publish(TopicCaptureStatus, update)
}

func (s *publisherService) PublishZoom(state capture.ZoomState) {
	s.publish(TopicCaptureZoom, state)
}

func (s *publisherService) PublishPresence(sample capture.PresenceSample) {
	s.publish(TopicCapturePresence, sample)
}

func (s *publisherService) PublishArtifact(artifact capture.Artifact) {
	s.publish(TopicCaptureArtifact, artifact)
}

func (s *publisherService) publish(topic string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("Publisher", "Failed to marshal capture event", map[string]interface{}{
			"topic": topic,
			"error": err.Error(),
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), raw)
	if err := s.pubSub.Publish(topic, msg); err != nil {
		s.logger.Error("Publisher", "Failed to publish capture event", map[string]interface{}{
			"topic": topic,
			"error": err.Error(),
		})
	}
}
