package display

import (
	"context"
	"errors"
	"testing"
	"time"

	"lesson-display-service/internal/app/config"
	"lesson-display-service/internal/app/models"
	"lesson-display-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type workerDeps struct {
	locker  *MockLockerService
	storage *MockScheduleStorage
	cache   *MockScheduleCache
	display *MockDisplayUsecase
}

func newTestWorker(spec string) (*Worker, workerDeps) {
	deps := workerDeps{
		locker:  new(MockLockerService),
		storage: new(MockScheduleStorage),
		cache:   new(MockScheduleCache),
		display: new(MockDisplayUsecase),
	}
	cfg := &config.InternalConfig{
		Schedule: config.AppSchedule{
			RefreshCronSpec:        spec,
			LeaderLockTTLInSeconds: 30,
			FetchTimeoutInSeconds:  5,
		},
	}
	w := NewWorker(zap.NewNop(), cfg, deps.locker, deps.storage, deps.cache, deps.display)
	return w, deps
}

func TestWorker_Refresh(t *testing.T) {
	ctx := context.Background()
	leaderKey := constvars.RedisKeyScheduleLeader
	ttl := 30 * time.Second

	t.Run("leader reads storage and shares it", func(t *testing.T) {
		w, deps := newTestWorker("@every 60s")
		doc := scheduleDoc()
		deps.locker.On("TryLock", mock.Anything, leaderKey, ttl).Return(true, "token-1", nil)
		deps.locker.On("Unlock", mock.Anything, leaderKey, "token-1").Return(nil)
		deps.storage.On("FetchSchedule", mock.Anything).Return(doc, nil)
		deps.cache.On("SetSchedule", mock.Anything, doc).Return(nil)
		deps.display.On("LoadSchedule", mock.Anything, doc).Return()

		result, err := w.Refresh(ctx)
		require.NoError(t, err)
		assert.True(t, result.Refreshed)
		require.NotNil(t, result.GeneratedAt)
		assert.True(t, doc.GeneratedAt.Equal(*result.GeneratedAt))

		deps.locker.AssertExpectations(t)
		deps.cache.AssertExpectations(t)
		deps.display.AssertExpectations(t)
		deps.cache.AssertNotCalled(t, "GetSchedule", mock.Anything)
	})

	t.Run("follower reads cache", func(t *testing.T) {
		w, deps := newTestWorker("@every 60s")
		doc := scheduleDoc()
		deps.locker.On("TryLock", mock.Anything, leaderKey, ttl).Return(false, "", nil)
		deps.cache.On("GetSchedule", mock.Anything).Return(doc, nil)
		deps.display.On("LoadSchedule", mock.Anything, doc).Return()

		_, err := w.Refresh(ctx)
		require.NoError(t, err)
		deps.storage.AssertNotCalled(t, "FetchSchedule", mock.Anything)
		deps.display.AssertExpectations(t)
	})

	t.Run("follower with empty cache reads storage", func(t *testing.T) {
		w, deps := newTestWorker("@every 60s")
		doc := scheduleDoc()
		deps.locker.On("TryLock", mock.Anything, leaderKey, ttl).Return(false, "", nil)
		deps.cache.On("GetSchedule", mock.Anything).Return(nil, nil)
		deps.storage.On("FetchSchedule", mock.Anything).Return(doc, nil)
		deps.display.On("LoadSchedule", mock.Anything, doc).Return()

		_, err := w.Refresh(ctx)
		require.NoError(t, err)
		deps.cache.AssertNotCalled(t, "SetSchedule", mock.Anything, mock.Anything)
		deps.display.AssertExpectations(t)
	})

	t.Run("lock error falls back to follower path", func(t *testing.T) {
		w, deps := newTestWorker("@every 60s")
		doc := scheduleDoc()
		deps.locker.On("TryLock", mock.Anything, leaderKey, ttl).Return(false, "", errors.New("redis down"))
		deps.cache.On("GetSchedule", mock.Anything).Return(nil, errors.New("redis down"))
		deps.storage.On("FetchSchedule", mock.Anything).Return(doc, nil)
		deps.display.On("LoadSchedule", mock.Anything, doc).Return()

		_, err := w.Refresh(ctx)
		require.NoError(t, err)
		deps.display.AssertExpectations(t)
	})

	t.Run("storage failure keeps previous schedule", func(t *testing.T) {
		w, deps := newTestWorker("@every 60s")
		deps.locker.On("TryLock", mock.Anything, leaderKey, ttl).Return(true, "token-1", nil)
		deps.locker.On("Unlock", mock.Anything, leaderKey, "token-1").Return(nil)
		deps.storage.On("FetchSchedule", mock.Anything).Return(nil, errors.New("no such key"))

		result, err := w.Refresh(ctx)
		assert.Error(t, err)
		assert.Nil(t, result)
		deps.display.AssertNotCalled(t, "LoadSchedule", mock.Anything, mock.Anything)
		deps.cache.AssertNotCalled(t, "SetSchedule", mock.Anything, mock.Anything)
		deps.locker.AssertCalled(t, "Unlock", mock.Anything, leaderKey, "token-1")
	})

	t.Run("cache write failure still loads", func(t *testing.T) {
		w, deps := newTestWorker("@every 60s")
		doc := scheduleDoc()
		deps.locker.On("TryLock", mock.Anything, leaderKey, ttl).Return(true, "token-1", nil)
		deps.locker.On("Unlock", mock.Anything, leaderKey, "token-1").Return(nil)
		deps.storage.On("FetchSchedule", mock.Anything).Return(doc, nil)
		deps.cache.On("SetSchedule", mock.Anything, doc).Return(errors.New("OOM"))
		deps.display.On("LoadSchedule", mock.Anything, doc).Return()

		_, err := w.Refresh(ctx)
		require.NoError(t, err)
		deps.display.AssertExpectations(t)
	})
}

func TestWorker_StartStop(t *testing.T) {
	w, deps := newTestWorker("not a cron spec")
	doc := &models.ScheduleDocument{}
	deps.locker.On("TryLock", mock.Anything, mock.Anything, mock.Anything).Return(false, "", nil)
	deps.cache.On("GetSchedule", mock.Anything).Return(doc, nil)
	deps.display.On("LoadSchedule", mock.Anything, doc).Return()

	w.Start(context.Background())
	w.Stop()

	deps.display.AssertNumberOfCalls(t, "LoadSchedule", 1)
	require.NotNil(t, w.cron)
	assert.Len(t, w.cron.Entries(), 2, "fallback refresh entry plus rollover check")
}

func TestWorker_RolloverJob(t *testing.T) {
	w, deps := newTestWorker("@every 60s")
	w.runCtx = context.Background()
	deps.display.On("CheckDateRollover", mock.Anything).Return(true).Once()

	w.rolloverJob()
	deps.display.AssertExpectations(t)
}
