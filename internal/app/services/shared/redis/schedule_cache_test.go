package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"lesson-display-service/internal/app/models"
	"lesson-display-service/internal/pkg/constvars"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	args := m.Called(ctx, key, value, exp)
	return args.Error(0)
}

func (m *MockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisRepository) Expire(ctx context.Context, key string, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, exp)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func TestScheduleCache_GetSchedule(t *testing.T) {
	ctx := context.Background()

	t.Run("miss returns nil without error", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("Get", ctx, constvars.RedisKeyScheduleDocument).Return("", nil)
		cache := NewScheduleCache(repo, time.Minute, time.Minute, zap.NewNop())

		doc, err := cache.GetSchedule(ctx)
		assert.NoError(t, err)
		assert.Nil(t, doc)
		repo.AssertExpectations(t)
	})

	t.Run("hit decodes document", func(t *testing.T) {
		stored := models.ScheduleDocument{
			GeneratedAt: time.Date(2026, 1, 30, 6, 0, 0, 0, time.UTC),
			AllLessonsByDate: map[string][]models.Lesson{
				"30.01.2026": {{Start: "09:00", End: "09:50"}},
			},
		}
		raw, err := json.Marshal(stored)
		require.NoError(t, err)

		repo := new(MockRedisRepository)
		repo.On("Get", ctx, constvars.RedisKeyScheduleDocument).Return(string(raw), nil)
		cache := NewScheduleCache(repo, time.Minute, time.Minute, zap.NewNop())

		doc, err := cache.GetSchedule(ctx)
		require.NoError(t, err)
		require.NotNil(t, doc)
		assert.True(t, stored.GeneratedAt.Equal(doc.GeneratedAt))
		lessons, ok := doc.LessonsFor("30.01.2026")
		assert.True(t, ok)
		assert.Len(t, lessons, 1)
	})

	t.Run("garbage entry is reported", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("Get", ctx, constvars.RedisKeyScheduleDocument).Return("{not json", nil)
		cache := NewScheduleCache(repo, time.Minute, time.Minute, zap.NewNop())

		doc, err := cache.GetSchedule(ctx)
		assert.Error(t, err)
		assert.Nil(t, doc)
	})

	t.Run("redis failure is propagated", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("Get", ctx, constvars.RedisKeyScheduleDocument).Return("", errors.New("dial tcp: refused"))
		cache := NewScheduleCache(repo, time.Minute, time.Minute, zap.NewNop())

		_, err := cache.GetSchedule(ctx)
		assert.Error(t, err)
	})
}

func TestScheduleCache_SetSchedule(t *testing.T) {
	ctx := context.Background()
	doc := &models.ScheduleDocument{GeneratedAt: time.Date(2026, 1, 30, 6, 0, 0, 0, time.UTC)}

	repo := new(MockRedisRepository)
	repo.On("Set", ctx, constvars.RedisKeyScheduleDocument, doc, 10*time.Minute).Return(nil)
	cache := NewScheduleCache(repo, 10*time.Minute, time.Minute, zap.NewNop())

	assert.NoError(t, cache.SetSchedule(ctx, doc))
	assert.NoError(t, cache.SetSchedule(ctx, nil), "nil document is a no-op")
	repo.AssertNumberOfCalls(t, "Set", 1)
}

func TestScheduleCache_Snapshot(t *testing.T) {
	ctx := context.Background()
	event := &models.PageEvent{ID: "evt-1", State: "running", PageIndex: 1, PageCount: 3, SlotLabel: "11:00"}
	raw, err := json.Marshal(event)
	require.NoError(t, err)

	repo := new(MockRedisRepository)
	repo.On("Set", ctx, constvars.RedisKeySnapshot, event, 30*time.Second).Return(nil)
	repo.On("Get", ctx, constvars.RedisKeySnapshot).Return(string(raw), nil)
	cache := NewScheduleCache(repo, time.Minute, 30*time.Second, zap.NewNop())

	require.NoError(t, cache.SaveSnapshot(ctx, event))
	got, err := cache.LastSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, event, got)
}
