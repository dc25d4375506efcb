package contracts

import (
	"context"

	"lesson-display-service/internal/app/models"
)

// ScheduleCache shares the last fetched document between replicas. GetSchedule
// returns nil without error on a cache miss.
type ScheduleCache interface {
	GetSchedule(ctx context.Context) (*models.ScheduleDocument, error)
	SetSchedule(ctx context.Context, doc *models.ScheduleDocument) error
}

type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, event *models.PageEvent) error
	LastSnapshot(ctx context.Context) (*models.PageEvent, error)
}

type PageEventPublisher interface {
	Publish(ctx context.Context, event *models.PageEvent) error
	Close() error
}
