// Package rotation cycles the display through its pages. Pages whose slot is
// primary at the moment they become current stay up longer than the others.
package rotation

import (
	"sync"
	"time"

	"lesson-display-service/internal/app/services/core/clock"
	"lesson-display-service/internal/app/services/core/slot"

	"go.uber.org/zap"
)

type Option func(*Scheduler)

func WithDurations(d Durations) Option {
	return func(s *Scheduler) {
		if d.Main > 0 {
			s.durations.Main = d.Main
		}
		if d.Other > 0 {
			s.durations.Other = d.Other
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Scheduler) {
		if log != nil {
			s.log = log
		}
	}
}

func WithListener(l Listener) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.listeners = append(s.listeners, l)
		}
	}
}

// Scheduler owns the rotation state. All transitions run under one lock, and
// every transition that moves the index or replaces the pages cancels the
// outstanding timer before arming a new one.
type Scheduler struct {
	mu         sync.Mutex
	classifier *slot.Classifier
	clock      clock.Reader
	timer      Timer
	durations  Durations
	listeners  []Listener
	log        *zap.Logger

	pages  []slot.Page
	index  int
	paused bool
	handle Handle
	dwell  time.Duration

	// generation identifies the armed timer; ticks carrying another value are stale.
	generation uint64
}

func New(classifier *slot.Classifier, reader clock.Reader, timer Timer, opts ...Option) *Scheduler {
	s := &Scheduler{
		classifier: classifier,
		clock:      reader,
		timer:      timer,
		durations:  DefaultDurations,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetClock swaps the reader used for primary-slot decisions. It does not touch
// the rotation state; callers reload afterwards.
func (s *Scheduler) SetClock(reader clock.Reader) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = reader
}

// Load replaces the pages and restarts from the first one. With startPaused
// the scheduler comes up paused; otherwise it runs when there is more than one page.
func (s *Scheduler) Load(pages []slot.Page, startPaused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancel()
	s.pages = make([]slot.Page, len(pages))
	for i, p := range pages {
		s.pages[i] = p.Clone()
	}
	s.index = 0
	s.paused = startPaused

	if len(s.pages) > 1 && !s.paused {
		s.arm()
	}

	s.log.Info("rotation.Scheduler.Load completed",
		zap.Int("page_count", len(s.pages)),
		zap.Bool("start_paused", startPaused),
		zap.Stringer("state", s.state()),
	)
	s.changed()
}

// Pause stops auto-advancing. It is a no-op unless the scheduler is running.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state() != StateRunning {
		return
	}
	s.cancel()
	s.paused = true
	s.log.Info("rotation.Scheduler.Pause completed", zap.Int("page_index", s.index))
	s.changed()
}

// Resume starts auto-advancing from the current page. Zero or one page never rotates.
func (s *Scheduler) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pages) <= 1 {
		s.log.Info("rotation.Scheduler.Resume ignored; nothing to rotate", zap.Int("page_count", len(s.pages)))
		return
	}
	if s.state() == StateRunning {
		return
	}
	s.paused = false
	s.arm()
	s.log.Info("rotation.Scheduler.Resume completed", zap.Int("page_index", s.index))
	s.changed()
}

// StepNext moves one page forward with wraparound. While running the timer is re-armed
// for the new page.
func (s *Scheduler) StepNext() {
	s.step(1)
}

// StepPrevious moves one page back with wraparound.
func (s *Scheduler) StepPrevious() {
	s.step(-1)
}

func (s *Scheduler) step(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.pages)
	if n == 0 {
		return
	}
	running := s.state() == StateRunning
	s.cancel()
	s.index = ((s.index+delta)%n + n) % n
	if running {
		s.arm()
	}
	s.log.Debug("rotation.Scheduler.step completed", zap.Int("delta", delta), zap.Int("page_index", s.index))
	s.changed()
}

// tick is the timer callback. Ticks from a cancelled timer are discarded.
func (s *Scheduler) tick(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation || s.handle == nil || len(s.pages) == 0 {
		s.log.Debug("rotation.Scheduler.tick discarded stale timer", zap.Uint64("generation", generation))
		return
	}
	s.handle = nil
	s.index = (s.index + 1) % len(s.pages)
	s.arm()
	s.changed()
}

// Stop cancels any pending timer. Used on shutdown.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancel()
	if len(s.pages) > 0 {
		s.paused = true
	}
}

func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

func (s *Scheduler) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Scheduler) state() State {
	switch {
	case len(s.pages) == 0:
		return StateEmpty
	case s.handle != nil:
		return StateRunning
	default:
		return StatePaused
	}
}

func (s *Scheduler) cancel() {
	if s.handle != nil {
		s.handle.Stop()
		s.handle = nil
	}
	s.generation++
	s.dwell = 0
}

// arm schedules the advance away from the current page. Primary status is read
// from the clock now, not when the pages were loaded.
func (s *Scheduler) arm() {
	s.cancel()

	page := s.pages[s.index]
	d := s.durations.Other
	primary := s.classifier.IsPrimary(page.Slot.ID, s.clock.Now())
	if primary {
		d = s.durations.Main
	}

	generation := s.generation
	handle := s.timer.AfterFunc(d, func() { s.tick(generation) })
	if handle == nil {
		s.log.Warn("rotation.Scheduler.arm failed to arm timer; staying paused",
			zap.Int("page_index", s.index),
			zap.Duration("dwell", d),
		)
		s.paused = true
		return
	}
	s.handle = handle
	s.dwell = d

	s.log.Debug("rotation.Scheduler.arm scheduled next page",
		zap.Int("page_index", s.index),
		zap.Int("page_count", len(s.pages)),
		zap.String("slot_label", page.Slot.Label),
		zap.Bool("is_primary", primary),
		zap.Duration("dwell", d),
	)
}

func (s *Scheduler) snapshot() Snapshot {
	snap := Snapshot{
		PageIndex: s.index,
		PageCount: len(s.pages),
		State:     s.state(),
		Paused:    s.paused,
		Dwell:     s.dwell,
	}
	if len(s.pages) == 0 {
		return snap
	}
	page := s.pages[s.index].Clone()
	snap.Page = &page
	snap.SlotLabel = page.Slot.Label
	snap.IsPrimary = s.classifier.IsPrimary(page.Slot.ID, s.clock.Now())
	return snap
}

func (s *Scheduler) changed() {
	if len(s.listeners) == 0 {
		return
	}
	snap := s.snapshot()
	for _, l := range s.listeners {
		l.PageChanged(snap)
	}
}
