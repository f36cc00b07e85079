package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/ramabhadrarao/face-recognition/internal/pkg/logger"
	"github.com/ramabhadrarao/face-recognition/pkg/events"
	pktNats "github.com/ramabhadrarao/face-recognition/pkg/nats"
)

// INotificationService relays domain events (enrollments, clock in/out)
// from the NATS bus to connected operator dashboards. Unlike the
// in-process capture stream, these events survive a restart because
// they go through a durable JetStream consumer.
type INotificationService interface {
	Start()
}

type notificationService struct {
	subscriber *pktNats.Subscriber
	delivery   StreamDelivery
	logger     logger.ILogger
}

func NewNotificationService(sub *pktNats.Subscriber, delivery StreamDelivery, log logger.ILogger) INotificationService {
	return &notificationService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

func (s *notificationService) Start() {
	if s.subscriber == nil {
		s.logger.Warn("Notification", "NATS subscriber unavailable, domain event relay disabled", nil)
		return
	}

	if err := s.subscriber.Subscribe("events.>", "attendance-notifier", s.handleEvent); err != nil {
		s.logger.Error("Notification", "Failed to start domain event relay", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("Notification", "Domain event relay started, listening to events.>", nil)
}

func (s *notificationService) handleEvent(_ context.Context, event events.Event) error {
	// The NATS subject carries the stream prefix; clients see the bare
	// event code (EMPLOYEE_ENROLLED, EMPLOYEE_CLOCK_IN, ...).
	typeCode := strings.TrimPrefix(event.EventType(), "events.")

	raw, err := json.Marshal(event.Payload())
	if err != nil {
		s.logger.Warn("Notification", "Dropping unmarshalable event", map[string]interface{}{
			"type":  typeCode,
			"error": err.Error(),
		})
		return nil
	}

	s.delivery.Broadcast(typeCode, json.RawMessage(raw))
	return nil
}
