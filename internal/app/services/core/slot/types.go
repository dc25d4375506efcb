package slot

import (
	"lesson-display-service/internal/app/models"
)

// MinuteRange is an inclusive window of minutes from midnight.
type MinuteRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether minute m lies inside the range, bounds included.
func (r MinuteRange) Contains(m int) bool {
	return m >= r.Min && m <= r.Max
}

func (r MinuteRange) overlaps(other MinuteRange) bool {
	return r.Min <= other.Max && other.Min <= r.Max
}

// TimeSlot is a named daily window. Lessons whose start falls in AcceptRange
// belong to the slot; while the clock is inside PrimaryWindow the slot is the
// main focus of the display.
type TimeSlot struct {
	ID            int         `json:"id"`
	Label         string      `json:"label"`
	AcceptRange   MinuteRange `json:"accept_range"`
	PrimaryWindow MinuteRange `json:"primary_window"`
}

// DefaultTimeSlots is the table used by the ski school kiosks.
var DefaultTimeSlots = []TimeSlot{
	{ID: 1, Label: "09:00", AcceptRange: MinuteRange{Min: 480, Max: 599}, PrimaryWindow: MinuteRange{Min: 480, Max: 599}},
	{ID: 2, Label: "11:00", AcceptRange: MinuteRange{Min: 660, Max: 719}, PrimaryWindow: MinuteRange{Min: 600, Max: 719}},
	{ID: 3, Label: "13:00", AcceptRange: MinuteRange{Min: 780, Max: 839}, PrimaryWindow: MinuteRange{Min: 720, Max: 839}},
	{ID: 4, Label: "14:30", AcceptRange: MinuteRange{Min: 870, Max: 1439}, PrimaryWindow: MinuteRange{Min: 840, Max: 1019}},
}

// Page is one rotation unit: a slot and the lessons that start inside it.
type Page struct {
	Slot    TimeSlot        `json:"slot"`
	Lessons []models.Lesson `json:"lessons"`
}

// Clone returns a copy whose lesson slice does not alias the receiver.
func (p Page) Clone() Page {
	lessons := make([]models.Lesson, len(p.Lessons))
	for i, l := range p.Lessons {
		lessons[i] = l.Clone()
	}
	return Page{Slot: p.Slot, Lessons: lessons}
}

// Unassigned identifies a lesson that matched no slot.
type Unassigned struct {
	Index int    `json:"index"`
	Start string `json:"start"`
}

// GroupResult is the outcome of one grouping pass.
type GroupResult struct {
	Pages      []Page
	Unassigned []Unassigned
}
