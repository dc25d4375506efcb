package publisher

import (
	"context"

	"lesson-display-service/internal/app/contracts"
	"lesson-display-service/internal/app/models"

	"go.uber.org/zap"
)

type logPublisher struct {
	log *zap.Logger
}

// NewLogPublisher writes page events to the log. It stands in for the broker
// when RabbitMQ is disabled.
func NewLogPublisher(log *zap.Logger) contracts.PageEventPublisher {
	return &logPublisher{log: log}
}

func (p *logPublisher) Publish(_ context.Context, event *models.PageEvent) error {
	p.log.Info("logPublisher.Publish page changed",
		zap.String("event_id", event.ID),
		zap.String("state", event.State),
		zap.Int("page_index", event.PageIndex),
		zap.Int("page_count", event.PageCount),
		zap.String("slot_label", event.SlotLabel),
		zap.Bool("is_primary", event.IsPrimary),
		zap.Int64("dwell_ms", event.DwellMillis),
	)
	return nil
}

func (p *logPublisher) Close() error {
	return nil
}
