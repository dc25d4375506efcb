package locker

import (
	"context"
	"fmt"
	"time"

	"lesson-display-service/internal/app/contracts"
	"lesson-display-service/internal/pkg/constvars"
	"lesson-display-service/internal/pkg/exceptions"
	"lesson-display-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type lockService struct {
	redisRepo contracts.RedisRepository
	Log       *zap.Logger
}

func NewLockService(repo contracts.RedisRepository, logger *zap.Logger) contracts.LockerService {
	return &lockService{
		redisRepo: repo,
		Log:       logger,
	}
}

func (s *lockService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	requestID := utils.GetRequestID(ctx)
	s.Log.Debug("lockService.TryLock called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.Duration(constvars.LoggingLockExpirationTimeKey, expiration),
	)

	lockValue := uuid.NewString()
	acquired, err := s.redisRepo.TrySetNX(ctx, key, lockValue, expiration)
	if err != nil {
		s.Log.Error("lockService.TryLock error calling redisRepo.TrySetNX",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return false, "", err
	}
	if !acquired {
		s.Log.Debug("lockService.TryLock not acquired",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
		)
		return false, "", nil
	}

	s.Log.Debug("lockService.TryLock acquired lock",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.String(constvars.LoggingLockValueKey, lockValue),
	)
	return true, lockValue, nil
}

func (s *lockService) Unlock(ctx context.Context, key, lockValue string) error {
	requestID := utils.GetRequestID(ctx)

	owned, err := s.owns(ctx, key, lockValue)
	if err != nil {
		return err
	}
	if !owned {
		s.Log.Debug("lockService.Unlock nothing to release",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
		)
		return nil
	}

	if err := s.redisRepo.Delete(ctx, key); err != nil {
		s.Log.Error("lockService.Unlock error deleting lock from redis",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	s.Log.Debug("lockService.Unlock succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
	)
	return nil
}

func (s *lockService) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	owned, err := s.owns(ctx, key, lockValue)
	if err != nil {
		return err
	}
	if !owned {
		return exceptions.ErrRedisUnlock(fmt.Errorf("lock %s no longer held", key))
	}
	if _, err := s.redisRepo.Expire(ctx, key, expiration); err != nil {
		s.Log.Error("lockService.Refresh error calling redisRepo.Expire",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// owns reports whether key currently holds lockValue. A missing key is not an
// error; a key held by another token is.
func (s *lockService) owns(ctx context.Context, key, lockValue string) (bool, error) {
	requestID := utils.GetRequestID(ctx)

	storedVal, err := s.redisRepo.Get(ctx, key)
	if err != nil {
		s.Log.Error("lockService.owns error retrieving value from redis",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return false, err
	}
	if storedVal == "" {
		return false, nil
	}

	expected, _ := json.Marshal(lockValue)
	if storedVal != string(expected) {
		err := exceptions.ErrRedisUnlock(fmt.Errorf("lock not owned by this client"))
		s.Log.Warn("lockService.owns lock ownership mismatch",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingLockStoredValueKey, storedVal),
			zap.String(constvars.LoggingLockExpectedValueKey, string(expected)),
		)
		return false, err
	}
	return true, nil
}
