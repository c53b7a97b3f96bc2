package service

import (
	"context"
	"fmt"

	"sales-assistant-be/internal/pkg/logger"
	"sales-assistant-be/pkg/events"
	pkgNats "sales-assistant-be/pkg/nats"
)

type IUsageMonitorService interface {
	Start() error
}

// usageMonitorService tails the usage event stream and mirrors it into
// the structured application log, where dashboards and alerting pick
// it up.
type usageMonitorService struct {
	subscriber *pkgNats.Subscriber
	logger     logger.ILogger
}

func NewUsageMonitorService(subscriber *pkgNats.Subscriber, sysLogger logger.ILogger) IUsageMonitorService {
	return &usageMonitorService{
		subscriber: subscriber,
		logger:     sysLogger,
	}
}

func (s *usageMonitorService) Start() error {
	subject := fmt.Sprintf("events.%s", events.EventTypeUsageRecorded)
	return s.subscriber.Subscribe(subject, "usage-monitor", func(ctx context.Context, event events.Event) error {
		s.logger.Info("usage", "LLM usage recorded", event.Payload())
		return nil
	})
}
