package models

import "time"

// PageEvent is published whenever the page on screen changes and is kept in the
// cache as the last known state for clients that join late.
type PageEvent struct {
	ID          string    `json:"id"`
	OccurredAt  time.Time `json:"occurred_at"`
	State       string    `json:"state"`
	Paused      bool      `json:"paused"`
	PageIndex   int       `json:"page_index"`
	PageCount   int       `json:"page_count"`
	SlotID      int       `json:"slot_id,omitempty"`
	SlotLabel   string    `json:"slot_label,omitempty"`
	IsPrimary   bool      `json:"is_primary"`
	LessonCount int       `json:"lesson_count"`
	DwellMillis int64     `json:"dwell_ms"`
}
