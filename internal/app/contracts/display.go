package contracts

import (
	"context"

	"lesson-display-service/internal/app/models"
	"lesson-display-service/internal/app/services/core/clock"
	"lesson-display-service/internal/pkg/dto/responses"
)

type DisplayUsecase interface {
	LoadSchedule(ctx context.Context, doc *models.ScheduleDocument)
	ApplyOverride(ctx context.Context, debug bool, override clock.Override) []string
	ClearOverride(ctx context.Context)
	CheckDateRollover(ctx context.Context) bool
	Pause(ctx context.Context)
	Resume(ctx context.Context)
	StepNext(ctx context.Context)
	StepPrevious(ctx context.Context)
	View(ctx context.Context) *responses.Display
	Slots(ctx context.Context) []responses.TimeSlot
}

type ScheduleRefresher interface {
	Refresh(ctx context.Context) (*responses.Refresh, error)
}
