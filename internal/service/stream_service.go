package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/ramabhadrarao/face-recognition/internal/pkg/logger"
)

// StreamDelivery pushes capture events to connected clients. Typically
// implemented by the WebSocket hub.
type StreamDelivery interface {
	Broadcast(eventType string, payload json.RawMessage)
}

// IStreamService bridges the in-process capture bus to live clients.
type IStreamService interface {
	Start(ctx context.Context) error
}

type streamService struct {
	pubSub   *gochannel.GoChannel
	delivery StreamDelivery
	logger   logger.ILogger
}

func NewStreamService(pubSub *gochannel.GoChannel, delivery StreamDelivery, log logger.ILogger) IStreamService {
	return &streamService{
		pubSub:   pubSub,
		delivery: delivery,
		logger:   log,
	}
}

func (s *streamService) Start(ctx context.Context) error {
	topics := []string{
		TopicCaptureStatus,
		TopicCaptureZoom,
		TopicCapturePresence,
		TopicCaptureArtifact,
	}

	for _, topic := range topics {
		messages, err := s.pubSub.Subscribe(ctx, topic)
		if err != nil {
			return err
		}
		go s.forward(topic, messages)
	}

	s.logger.Info("Stream", "Capture event forwarding started", map[string]interface{}{"topics": topics})
	return nil
}

func (s *streamService) forward(topic string, messages <-chan *message.Message) {
	for msg := range messages {
		s.delivery.Broadcast(topic, json.RawMessage(msg.Payload))
		msg.Ack()
	}
}
