package rotation

import (
	"sync"
	"testing"
	"time"

	"lesson-display-service/internal/app/models"
	"lesson-display-service/internal/app/services/core/clock"
	"lesson-display-service/internal/app/services/core/slot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHandle struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (h *fakeHandle) Stop() bool {
	if h.stopped || h.fired {
		return false
	}
	h.stopped = true
	return true
}

type fakeTimer struct {
	mu      sync.Mutex
	handles []*fakeHandle
	fail    bool
}

func (t *fakeTimer) AfterFunc(d time.Duration, f func()) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fail {
		return nil
	}
	h := &fakeHandle{d: d, f: f}
	t.handles = append(t.handles, h)
	return h
}

func (t *fakeTimer) pending() []*fakeHandle {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []*fakeHandle
	for _, h := range t.handles {
		if !h.stopped && !h.fired {
			out = append(out, h)
		}
	}
	return out
}

// fire runs the single pending timer and returns its duration.
func (t *fakeTimer) fire(tb testing.TB) time.Duration {
	tb.Helper()
	pending := t.pending()
	require.Len(tb, pending, 1, "exactly one timer should be pending")
	h := pending[0]
	t.mu.Lock()
	h.fired = true
	t.mu.Unlock()
	h.f()
	return h.d
}

type testClock struct {
	mu      sync.Mutex
	reading clock.Reading
}

func (c *testClock) Now() clock.Reading {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reading
}

func (c *testClock) set(minutes int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reading.MinutesOfDay = minutes
}

func threePages() []slot.Page {
	c := slot.MustNewClassifier(slot.DefaultTimeSlots)
	return slot.Group([]models.Lesson{
		{Start: "08:30", End: "10:20"},
		{Start: "11:00", End: "12:50"},
		{Start: "13:00", End: "14:50"},
	}, c).Pages
}

func newTestScheduler(minutes int, opts ...Option) (*Scheduler, *fakeTimer, *testClock) {
	timer := &fakeTimer{}
	clk := &testClock{reading: clock.Reading{MinutesOfDay: minutes}}
	s := New(slot.MustNewClassifier(slot.DefaultTimeSlots), clk, timer, opts...)
	return s, timer, clk
}

const (
	mainDwell  = 15 * time.Second
	otherDwell = 5 * time.Second
)

func TestScheduler_DwellSequence(t *testing.T) {
	// 10:30 makes slot 2, the second page, primary.
	s, timer, _ := newTestScheduler(630)
	s.Load(threePages(), false)

	require.Equal(t, StateRunning, s.State())

	var dwells []time.Duration
	var indexes []int
	for i := 0; i < 6; i++ {
		indexes = append(indexes, s.Snapshot().PageIndex)
		dwells = append(dwells, timer.fire(t))
	}

	assert.Equal(t, []time.Duration{otherDwell, mainDwell, otherDwell, otherDwell, mainDwell, otherDwell}, dwells)
	assert.Equal(t, []int{0, 1, 2, 0, 1, 2}, indexes)
}

func TestScheduler_PrimaryReevaluatedPerPage(t *testing.T) {
	s, timer, clk := newTestScheduler(630)
	s.Load(threePages(), false)

	assert.Equal(t, otherDwell, timer.fire(t))
	// clock crosses into slot 3's window while page 2 is showing
	clk.set(725)
	assert.Equal(t, mainDwell, timer.fire(t), "page 2 was armed before the crossing")
	assert.Equal(t, mainDwell, timer.fire(t), "page 3 is primary when it becomes current")
	assert.Equal(t, otherDwell, timer.fire(t))
}

func TestScheduler_LoadEmpty(t *testing.T) {
	s, timer, _ := newTestScheduler(630)
	s.Load(threePages(), false)
	s.Load(nil, false)

	snap := s.Snapshot()
	assert.Equal(t, StateEmpty, snap.State)
	assert.Nil(t, snap.Page)
	assert.Equal(t, 0, snap.PageIndex)
	assert.Equal(t, 0, snap.PageCount)
	assert.Empty(t, timer.pending())
}

func TestScheduler_SinglePageNeverRuns(t *testing.T) {
	s, timer, _ := newTestScheduler(630)
	s.Load(threePages()[:1], false)

	assert.Equal(t, StatePaused, s.State())
	assert.Empty(t, timer.pending())

	s.Resume()
	assert.Equal(t, StatePaused, s.State())
	assert.Empty(t, timer.pending())

	s.Load(nil, false)
	s.Resume()
	assert.Equal(t, StateEmpty, s.State())
	assert.Empty(t, timer.pending())
}

func TestScheduler_DebugStartsPaused(t *testing.T) {
	s, timer, _ := newTestScheduler(630)
	s.Load(threePages(), true)

	snap := s.Snapshot()
	assert.Equal(t, StatePaused, snap.State)
	assert.True(t, snap.Paused)
	assert.Empty(t, timer.pending())

	s.Resume()
	assert.Equal(t, StateRunning, s.State())
	assert.Len(t, timer.pending(), 1)
}

func TestScheduler_PauseResume(t *testing.T) {
	s, timer, _ := newTestScheduler(630)
	s.Load(threePages(), false)
	timer.fire(t)

	s.Pause()
	assert.Equal(t, StatePaused, s.State())
	assert.Empty(t, timer.pending())
	assert.Equal(t, 1, s.Snapshot().PageIndex)

	s.Pause()
	assert.Equal(t, StatePaused, s.State())

	s.Resume()
	pending := timer.pending()
	require.Len(t, pending, 1)
	assert.Equal(t, mainDwell, pending[0].d, "resume arms for the current page")
	assert.Equal(t, 1, s.Snapshot().PageIndex)

	s.Resume()
	assert.Len(t, timer.pending(), 1, "second resume must not arm another timer")
}

func TestScheduler_StepWraparound(t *testing.T) {
	s, _, _ := newTestScheduler(630)
	s.Load(threePages(), true)

	s.StepPrevious()
	assert.Equal(t, 2, s.Snapshot().PageIndex)
	s.StepNext()
	assert.Equal(t, 0, s.Snapshot().PageIndex)
	s.StepNext()
	s.StepNext()
	assert.Equal(t, 2, s.Snapshot().PageIndex)
	s.StepNext()
	assert.Equal(t, 0, s.Snapshot().PageIndex)
	assert.Equal(t, StatePaused, s.State())
}

func TestScheduler_StepWhileRunningRearms(t *testing.T) {
	s, timer, _ := newTestScheduler(630)
	s.Load(threePages(), false)
	first := timer.pending()
	require.Len(t, first, 1)

	s.StepNext()
	pending := timer.pending()
	require.Len(t, pending, 1)
	assert.True(t, first[0].stopped, "old timer is cancelled")
	assert.Equal(t, mainDwell, pending[0].d)
	assert.Equal(t, StateRunning, s.State())
}

func TestScheduler_StaleTickIsDiscarded(t *testing.T) {
	t.Run("After step", func(t *testing.T) {
		s, timer, _ := newTestScheduler(630)
		s.Load(threePages(), false)
		stale := timer.pending()[0]

		s.StepNext()
		stale.f()

		assert.Equal(t, 1, s.Snapshot().PageIndex, "stale tick must not double-advance")
		assert.Len(t, timer.pending(), 1)
	})

	t.Run("After pause", func(t *testing.T) {
		s, timer, _ := newTestScheduler(630)
		s.Load(threePages(), false)
		stale := timer.pending()[0]

		s.Pause()
		stale.f()

		assert.Equal(t, 0, s.Snapshot().PageIndex)
		assert.Equal(t, StatePaused, s.State())
		assert.Empty(t, timer.pending())
	})

	t.Run("After load to empty", func(t *testing.T) {
		s, timer, _ := newTestScheduler(630)
		s.Load(threePages(), false)
		stale := timer.pending()[0]

		s.Load(nil, false)
		stale.f()

		assert.Equal(t, StateEmpty, s.State())
		assert.Empty(t, timer.pending())
	})

	t.Run("After reload", func(t *testing.T) {
		s, timer, _ := newTestScheduler(630)
		s.Load(threePages(), false)
		stale := timer.pending()[0]

		s.Load(threePages(), false)
		stale.f()

		assert.Equal(t, 0, s.Snapshot().PageIndex)
		assert.Len(t, timer.pending(), 1)
	})
}

func TestScheduler_LoadIsIdempotent(t *testing.T) {
	s, timer, _ := newTestScheduler(630)
	pages := threePages()

	s.Load(pages, false)
	timer.fire(t)
	first := s.Snapshot()
	s.Load(pages, false)
	second := s.Snapshot()
	s.Load(pages, false)
	third := s.Snapshot()

	assert.Equal(t, 0, second.PageIndex)
	assert.NotEqual(t, first.PageIndex, second.PageIndex)
	assert.Equal(t, second, third)
	assert.Len(t, timer.pending(), 1)
}

func TestScheduler_ArmFailureSettlesPaused(t *testing.T) {
	s, timer, _ := newTestScheduler(630)
	timer.fail = true

	s.Load(threePages(), false)

	snap := s.Snapshot()
	assert.Equal(t, StatePaused, snap.State)
	assert.True(t, snap.Paused)
	assert.Equal(t, time.Duration(0), snap.Dwell)
}

func TestScheduler_SnapshotIsACopy(t *testing.T) {
	s, _, _ := newTestScheduler(630)
	s.Load(threePages(), true)

	snap := s.Snapshot()
	require.NotNil(t, snap.Page)
	snap.Page.Lessons[0].Start = "00:00"

	assert.Equal(t, "08:30", s.Snapshot().Page.Lessons[0].Start)
}

func TestScheduler_SnapshotFields(t *testing.T) {
	s, _, _ := newTestScheduler(630)
	s.Load(threePages(), false)

	snap := s.Snapshot()
	assert.Equal(t, "09:00", snap.SlotLabel)
	assert.False(t, snap.IsPrimary)
	assert.Equal(t, 3, snap.PageCount)
	assert.Equal(t, otherDwell, snap.Dwell)

	s.StepNext()
	snap = s.Snapshot()
	assert.Equal(t, "11:00", snap.SlotLabel)
	assert.True(t, snap.IsPrimary)
	assert.Equal(t, mainDwell, snap.Dwell)
}

func TestScheduler_ListenerSeesEveryTransition(t *testing.T) {
	var seen []int
	s, timer, _ := newTestScheduler(630, WithListener(ListenerFunc(func(snap Snapshot) {
		seen = append(seen, snap.PageIndex)
	})))

	s.Load(threePages(), false)
	timer.fire(t)
	s.StepPrevious()
	s.Pause()
	s.StepPrevious()

	assert.Equal(t, []int{0, 1, 0, 0, 2}, seen)
}

func TestScheduler_Durations(t *testing.T) {
	s, timer, _ := newTestScheduler(630, WithDurations(Durations{Main: time.Minute, Other: 2 * time.Second}))
	s.Load(threePages(), false)

	assert.Equal(t, 2*time.Second, timer.fire(t))
	assert.Equal(t, time.Minute, timer.fire(t))
}

func TestScheduler_StopCancelsTimer(t *testing.T) {
	s, timer, _ := newTestScheduler(630)
	s.Load(threePages(), false)

	s.Stop()

	assert.Empty(t, timer.pending())
	assert.Equal(t, StatePaused, s.State())
}

func TestScheduler_RealTimer(t *testing.T) {
	advanced := make(chan Snapshot, 4)
	s := New(
		slot.MustNewClassifier(slot.DefaultTimeSlots),
		clock.ReaderFunc(func() clock.Reading { return clock.Reading{MinutesOfDay: 0} }),
		NewRealTimer(),
		WithDurations(Durations{Main: 10 * time.Millisecond, Other: 10 * time.Millisecond}),
		WithListener(ListenerFunc(func(snap Snapshot) {
			select {
			case advanced <- snap:
			default:
			}
		})),
	)
	defer s.Stop()

	s.Load(threePages(), false)
	<-advanced

	select {
	case snap := <-advanced:
		assert.Equal(t, 1, snap.PageIndex)
	case <-time.After(2 * time.Second):
		t.Fatal("real timer did not advance the page")
	}
}
