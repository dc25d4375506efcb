package display

import (
	"context"
	"errors"
	"sync"
	"time"

	"lesson-display-service/internal/app/config"
	"lesson-display-service/internal/app/contracts"
	"lesson-display-service/internal/app/models"
	"lesson-display-service/internal/pkg/constvars"
	"lesson-display-service/internal/pkg/dto/responses"
	"lesson-display-service/internal/pkg/exceptions"
	"lesson-display-service/internal/pkg/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	defaultRefreshSpec = "@every 60s"
	rolloverSpec       = "@every 1m"
)

// Worker keeps the display fed with schedule.json. One replica at a time holds
// the leader lock and reads object storage; the others read what it cached.
type Worker struct {
	log     *zap.Logger
	cfg     *config.InternalConfig
	locker  contracts.LockerService
	storage contracts.ScheduleStorage
	cache   contracts.ScheduleCache
	display contracts.DisplayUsecase

	// refreshMu serialises cron and manual refreshes.
	refreshMu sync.Mutex
	cron      *cron.Cron
	runCtx    context.Context
	cancel    context.CancelFunc
}

var _ contracts.ScheduleRefresher = (*Worker)(nil)

func NewWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, storage contracts.ScheduleStorage, cache contracts.ScheduleCache, displayUsecase contracts.DisplayUsecase) *Worker {
	return &Worker{
		log:     log,
		cfg:     cfg,
		locker:  lockerSvc,
		storage: storage,
		cache:   cache,
		display: displayUsecase,
	}
}

// Start loads the schedule once, then registers the periodic refresh and the
// date rollover check.
func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)

	if _, err := w.Refresh(w.runCtx); err != nil {
		w.log.Warn("display.Worker.Start initial refresh failed; will retry on schedule", zap.Error(err))
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(newCronLogger(w.log))))
	spec := w.cfg.Schedule.RefreshCronSpec
	if _, err := c.AddFunc(spec, w.refreshJob); err != nil {
		w.log.Warn("display.Worker.Start invalid refresh cron spec; falling back",
			zap.String("spec", spec),
			zap.String("fallback", defaultRefreshSpec),
			zap.Error(err),
		)
		c = cron.New(cron.WithChain(cron.SkipIfStillRunning(newCronLogger(w.log))))
		_, _ = c.AddFunc(defaultRefreshSpec, w.refreshJob)
	}
	_, _ = c.AddFunc(rolloverSpec, w.rolloverJob)
	c.Start()
	w.cron = c
}

// Stop cancels in-flight work and waits for running jobs to return.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

// Refresh fetches the current document and hands it to the display. On failure
// the display keeps whatever it showed before.
func (w *Worker) Refresh(ctx context.Context) (*responses.Refresh, error) {
	w.refreshMu.Lock()
	defer w.refreshMu.Unlock()

	if utils.GetRequestID(ctx) == "" {
		ctx = utils.WithRequestID(ctx, uuid.NewString())
	}
	ctx, cancel := context.WithTimeout(ctx, w.fetchTimeout())
	defer cancel()

	var doc *models.ScheduleDocument
	err := utils.LogOperation(w.log, "display.Worker.fetch", utils.GetRequestID(ctx), func() error {
		var fetchErr error
		doc, fetchErr = w.fetch(ctx)
		return fetchErr
	})
	if err != nil {
		w.log.Warn("display.Worker.Refresh keeping previous schedule",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, exceptions.ErrServerDeadlineExceeded(err)
		}
		return nil, err
	}

	w.display.LoadSchedule(ctx, doc)

	result := &responses.Refresh{Refreshed: true}
	if !doc.GeneratedAt.IsZero() {
		generatedAt := doc.GeneratedAt
		result.GeneratedAt = &generatedAt
	}
	return result, nil
}

func (w *Worker) refreshJob() {
	_, _ = w.Refresh(w.runCtx)
}

func (w *Worker) rolloverJob() {
	ctx := utils.WithRequestID(w.runCtx, uuid.NewString())
	if w.display.CheckDateRollover(ctx) {
		w.log.Info("display.Worker.rolloverJob target date changed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		)
	}
}

// fetch reads storage as leader, or the shared cache as follower. A follower
// with an empty or unreachable cache reads storage itself.
func (w *Worker) fetch(ctx context.Context) (*models.ScheduleDocument, error) {
	requestID := utils.GetRequestID(ctx)
	ttl := w.lockTTL()

	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisKeyScheduleLeader, ttl)
	if err != nil {
		w.log.Warn("display.Worker.fetch leader lock attempt failed; reading as follower",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
	if acquired {
		defer w.locker.Unlock(context.WithoutCancel(ctx), constvars.RedisKeyScheduleLeader, token)
		stopRefresh := w.keepLock(ctx, token, ttl)
		defer stopRefresh()
		return w.fetchAsLeader(ctx)
	}

	doc, err := w.cache.GetSchedule(ctx)
	if err == nil && doc != nil {
		w.log.Debug("display.Worker.fetch served from cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Time(constvars.LoggingGeneratedAtKey, doc.GeneratedAt),
		)
		return doc, nil
	}
	w.log.Info("display.Worker.fetch cache empty; reading storage directly",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return w.storage.FetchSchedule(ctx)
}

func (w *Worker) fetchAsLeader(ctx context.Context) (*models.ScheduleDocument, error) {
	doc, err := w.storage.FetchSchedule(ctx)
	if err != nil {
		return nil, err
	}
	if err := w.cache.SetSchedule(ctx, doc); err != nil {
		w.log.Warn("display.Worker.fetchAsLeader could not share document",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
	}
	return doc, nil
}

// keepLock extends the leader lock at half its TTL until the returned func is called.
func (w *Worker) keepLock(ctx context.Context, token string, ttl time.Duration) func() {
	refreshCtx, cancel := context.WithCancel(ctx)
	go func() {
		tick := time.NewTicker(ttl / 2)
		defer tick.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-tick.C:
				if err := w.locker.Refresh(refreshCtx, constvars.RedisKeyScheduleLeader, token, ttl); err != nil {
					w.log.Warn("display.Worker.keepLock failed to refresh leader lock TTL", zap.Error(err))
				}
			}
		}
	}()
	return cancel
}

func (w *Worker) lockTTL() time.Duration {
	if s := w.cfg.Schedule.LeaderLockTTLInSeconds; s > 0 {
		return time.Duration(s) * time.Second
	}
	return 30 * time.Second
}

func (w *Worker) fetchTimeout() time.Duration {
	if s := w.cfg.Schedule.FetchTimeoutInSeconds; s > 0 {
		return time.Duration(s) * time.Second
	}
	return 15 * time.Second
}

// cronLogger routes robfig/cron's logging through zap.
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func newCronLogger(log *zap.Logger) cron.Logger {
	return cronLogger{sugar: log.Sugar()}
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
