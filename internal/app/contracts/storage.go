package contracts

import (
	"context"

	"lesson-display-service/internal/app/models"
)

// ScheduleStorage reads the published schedule.json document.
type ScheduleStorage interface {
	FetchSchedule(ctx context.Context) (*models.ScheduleDocument, error)
}
