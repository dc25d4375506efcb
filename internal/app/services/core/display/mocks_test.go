package display

import (
	"context"
	"time"

	"lesson-display-service/internal/app/models"
	"lesson-display-service/internal/app/services/core/clock"
	"lesson-display-service/internal/pkg/dto/responses"

	"github.com/stretchr/testify/mock"
)

type MockLockerService struct {
	mock.Mock
}

func (m *MockLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	args := m.Called(ctx, key, lockValue)
	return args.Error(0)
}

func (m *MockLockerService) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	args := m.Called(ctx, key, lockValue, expiration)
	return args.Error(0)
}

type MockScheduleStorage struct {
	mock.Mock
}

func (m *MockScheduleStorage) FetchSchedule(ctx context.Context) (*models.ScheduleDocument, error) {
	args := m.Called(ctx)
	doc, _ := args.Get(0).(*models.ScheduleDocument)
	return doc, args.Error(1)
}

type MockScheduleCache struct {
	mock.Mock
}

func (m *MockScheduleCache) GetSchedule(ctx context.Context) (*models.ScheduleDocument, error) {
	args := m.Called(ctx)
	doc, _ := args.Get(0).(*models.ScheduleDocument)
	return doc, args.Error(1)
}

func (m *MockScheduleCache) SetSchedule(ctx context.Context, doc *models.ScheduleDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

type MockDisplayUsecase struct {
	mock.Mock
}

func (m *MockDisplayUsecase) LoadSchedule(ctx context.Context, doc *models.ScheduleDocument) {
	m.Called(ctx, doc)
}

func (m *MockDisplayUsecase) ApplyOverride(ctx context.Context, debug bool, override clock.Override) []string {
	args := m.Called(ctx, debug, override)
	dropped, _ := args.Get(0).([]string)
	return dropped
}

func (m *MockDisplayUsecase) ClearOverride(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockDisplayUsecase) CheckDateRollover(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockDisplayUsecase) Pause(ctx context.Context)        { m.Called(ctx) }
func (m *MockDisplayUsecase) Resume(ctx context.Context)       { m.Called(ctx) }
func (m *MockDisplayUsecase) StepNext(ctx context.Context)     { m.Called(ctx) }
func (m *MockDisplayUsecase) StepPrevious(ctx context.Context) { m.Called(ctx) }

func (m *MockDisplayUsecase) View(ctx context.Context) *responses.Display {
	args := m.Called(ctx)
	view, _ := args.Get(0).(*responses.Display)
	return view
}

func (m *MockDisplayUsecase) Slots(ctx context.Context) []responses.TimeSlot {
	args := m.Called(ctx)
	slots, _ := args.Get(0).([]responses.TimeSlot)
	return slots
}
