package redis

import (
	"context"
	"time"

	"lesson-display-service/internal/app/contracts"
	"lesson-display-service/internal/app/models"
	"lesson-display-service/internal/pkg/constvars"
	"lesson-display-service/internal/pkg/exceptions"
	"lesson-display-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// ScheduleCache keeps the shared schedule document and the last page event in Redis.
type ScheduleCache struct {
	repo        contracts.RedisRepository
	scheduleTTL time.Duration
	snapshotTTL time.Duration
	log         *zap.Logger
}

var (
	_ contracts.ScheduleCache = (*ScheduleCache)(nil)
	_ contracts.SnapshotStore = (*ScheduleCache)(nil)
)

func NewScheduleCache(repo contracts.RedisRepository, scheduleTTL, snapshotTTL time.Duration, log *zap.Logger) *ScheduleCache {
	return &ScheduleCache{
		repo:        repo,
		scheduleTTL: scheduleTTL,
		snapshotTTL: snapshotTTL,
		log:         log,
	}
}

func (c *ScheduleCache) GetSchedule(ctx context.Context) (*models.ScheduleDocument, error) {
	var doc models.ScheduleDocument
	found, err := c.get(ctx, constvars.RedisKeyScheduleDocument, &doc)
	if err != nil || !found {
		return nil, err
	}
	return &doc, nil
}

func (c *ScheduleCache) SetSchedule(ctx context.Context, doc *models.ScheduleDocument) error {
	if doc == nil {
		return nil
	}
	if err := c.repo.Set(ctx, constvars.RedisKeyScheduleDocument, doc, c.scheduleTTL); err != nil {
		c.log.Error("ScheduleCache.SetSchedule error calling repo.Set",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingRedisKey, constvars.RedisKeyScheduleDocument),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (c *ScheduleCache) SaveSnapshot(ctx context.Context, event *models.PageEvent) error {
	if event == nil {
		return nil
	}
	return c.repo.Set(ctx, constvars.RedisKeySnapshot, event, c.snapshotTTL)
}

func (c *ScheduleCache) LastSnapshot(ctx context.Context) (*models.PageEvent, error) {
	var event models.PageEvent
	found, err := c.get(ctx, constvars.RedisKeySnapshot, &event)
	if err != nil || !found {
		return nil, err
	}
	return &event, nil
}

func (c *ScheduleCache) get(ctx context.Context, key string, dst interface{}) (bool, error) {
	raw, err := c.repo.Get(ctx, key)
	if err != nil {
		c.log.Error("ScheduleCache.get error calling repo.Get",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return false, err
	}
	if raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		c.log.Warn("ScheduleCache.get dropping undecodable cache entry",
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return false, exceptions.ErrCannotParseJSON(err)
	}
	return true, nil
}
