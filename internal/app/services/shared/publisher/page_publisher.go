package publisher

import (
	"context"
	"sync"
	"time"

	"lesson-display-service/internal/app/contracts"
	"lesson-display-service/internal/app/models"
	"lesson-display-service/internal/app/services/core/rotation"
	"lesson-display-service/internal/pkg/constvars"
	"lesson-display-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultBufferSize = 64

// PagePublisher is a rotation.Listener. PageChanged runs under the scheduler
// lock, so it only enqueues; a background goroutine does the I/O.
type PagePublisher struct {
	sink    contracts.PageEventPublisher
	store   contracts.SnapshotStore
	log     *zap.Logger
	timeout time.Duration
	now     func() time.Time

	mu      sync.RWMutex
	started bool
	closed  bool
	queue   chan *models.PageEvent
	done    chan struct{}
}

var _ rotation.Listener = (*PagePublisher)(nil)

// NewPagePublisher builds the listener. store may be nil.
func NewPagePublisher(sink contracts.PageEventPublisher, store contracts.SnapshotStore, bufferSize int, timeout time.Duration, log *zap.Logger) *PagePublisher {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PagePublisher{
		sink:    sink,
		store:   store,
		log:     log,
		timeout: timeout,
		now:     time.Now,
		queue:   make(chan *models.PageEvent, bufferSize),
		done:    make(chan struct{}),
	}
}

// Start consumes the queue until Stop is called.
func (p *PagePublisher) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.closed {
		return
	}
	p.started = true

	go func() {
		defer close(p.done)
		for event := range p.queue {
			p.deliver(ctx, event)
		}
	}()
}

// Stop closes the queue and waits for queued events to be delivered.
func (p *PagePublisher) Stop() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.queue)
	started := p.started
	p.mu.Unlock()

	if started {
		<-p.done
	}
	if err := p.sink.Close(); err != nil {
		p.log.Warn("PagePublisher.Stop error closing sink", zap.Error(err))
	}
}

func (p *PagePublisher) PageChanged(snap rotation.Snapshot) {
	event := NewPageEvent(snap, p.now())

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}
	select {
	case p.queue <- event:
	default:
		p.log.Warn("PagePublisher.PageChanged queue full; dropping event",
			zap.String("event_id", event.ID),
			zap.Int("page_index", event.PageIndex),
		)
	}
}

func (p *PagePublisher) deliver(ctx context.Context, event *models.PageEvent) {
	ctx, cancel := context.WithTimeout(utils.WithRequestID(ctx, event.ID), p.timeout)
	defer cancel()

	if err := p.sink.Publish(ctx, event); err != nil {
		p.log.Error("PagePublisher.deliver error calling sink.Publish",
			zap.String(constvars.LoggingRequestIDKey, event.ID),
			zap.Error(err),
		)
	}
	if p.store == nil {
		return
	}
	if err := p.store.SaveSnapshot(ctx, event); err != nil {
		p.log.Error("PagePublisher.deliver error calling store.SaveSnapshot",
			zap.String(constvars.LoggingRequestIDKey, event.ID),
			zap.Error(err),
		)
	}
}

// NewPageEvent flattens a rotation snapshot into the published event.
func NewPageEvent(snap rotation.Snapshot, at time.Time) *models.PageEvent {
	event := &models.PageEvent{
		ID:          uuid.NewString(),
		OccurredAt:  at.UTC(),
		State:       snap.State.String(),
		Paused:      snap.Paused,
		PageIndex:   snap.PageIndex,
		PageCount:   snap.PageCount,
		SlotLabel:   snap.SlotLabel,
		IsPrimary:   snap.IsPrimary,
		DwellMillis: snap.Dwell.Milliseconds(),
	}
	if snap.Page != nil {
		event.SlotID = snap.Page.Slot.ID
		event.LessonCount = len(snap.Page.Lessons)
	}
	return event
}
