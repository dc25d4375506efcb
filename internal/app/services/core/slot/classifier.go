package slot

import (
	"errors"
	"fmt"
	"sort"

	"lesson-display-service/internal/app/services/core/clock"
)

var ErrInvalidTable = errors.New("slot: invalid time slot table")

// Classifier maps lesson start times and clock readings onto a fixed slot table.
// It is immutable after construction and safe for concurrent use.
type Classifier struct {
	slots []TimeSlot
}

// NewClassifier validates the table and returns a classifier over a copy of it,
// ordered by slot id.
func NewClassifier(slots []TimeSlot) (*Classifier, error) {
	table := make([]TimeSlot, len(slots))
	copy(table, slots)
	sort.SliceStable(table, func(i, j int) bool { return table[i].ID < table[j].ID })

	for i, s := range table {
		if !validRange(s.AcceptRange) {
			return nil, fmt.Errorf("%w: slot %d accept range %d-%d", ErrInvalidTable, s.ID, s.AcceptRange.Min, s.AcceptRange.Max)
		}
		if !validRange(s.PrimaryWindow) {
			return nil, fmt.Errorf("%w: slot %d primary window %d-%d", ErrInvalidTable, s.ID, s.PrimaryWindow.Min, s.PrimaryWindow.Max)
		}
		for _, other := range table[:i] {
			if other.ID == s.ID {
				return nil, fmt.Errorf("%w: duplicate slot id %d", ErrInvalidTable, s.ID)
			}
			if other.AcceptRange.overlaps(s.AcceptRange) {
				return nil, fmt.Errorf("%w: accept ranges of slots %d and %d overlap", ErrInvalidTable, other.ID, s.ID)
			}
			if other.PrimaryWindow.overlaps(s.PrimaryWindow) {
				return nil, fmt.Errorf("%w: primary windows of slots %d and %d overlap", ErrInvalidTable, other.ID, s.ID)
			}
		}
	}
	return &Classifier{slots: table}, nil
}

// MustNewClassifier is NewClassifier for static tables.
func MustNewClassifier(slots []TimeSlot) *Classifier {
	c, err := NewClassifier(slots)
	if err != nil {
		panic(err)
	}
	return c
}

func validRange(r MinuteRange) bool {
	return r.Min >= 0 && r.Max < clock.MinutesPerDay && r.Min <= r.Max
}

// Slots returns a copy of the table ordered by id.
func (c *Classifier) Slots() []TimeSlot {
	out := make([]TimeSlot, len(c.slots))
	copy(out, c.slots)
	return out
}

// ClassifyLesson returns the id of the slot whose accept range holds start.
// Unparseable starts and starts outside every range report ok=false.
func (c *Classifier) ClassifyLesson(start string) (id int, ok bool) {
	pos := c.indexForStart(start)
	if pos < 0 {
		return 0, false
	}
	return c.slots[pos].ID, true
}

func (c *Classifier) indexForStart(start string) int {
	minutes, err := clock.ParseTimeOfDay(start)
	if err != nil {
		return -1
	}
	for i, s := range c.slots {
		if s.AcceptRange.Contains(minutes) {
			return i
		}
	}
	return -1
}

// CurrentPrimarySlot returns the slot whose primary window holds the reading,
// or ok=false outside operating hours.
func (c *Classifier) CurrentPrimarySlot(reading clock.Reading) (id int, ok bool) {
	for _, s := range c.slots {
		if s.PrimaryWindow.Contains(reading.MinutesOfDay) {
			return s.ID, true
		}
	}
	return 0, false
}

func (c *Classifier) IsPrimary(id int, reading clock.Reading) bool {
	primary, ok := c.CurrentPrimarySlot(reading)
	return ok && primary == id
}
