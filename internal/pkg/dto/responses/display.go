package responses

import (
	"time"

	"lesson-display-service/internal/app/models"
)

type Display struct {
	Title       string             `json:"title"`
	TargetDate  string             `json:"target_date,omitempty"`
	Debug       bool               `json:"debug"`
	Override    DisplayOverride    `json:"override"`
	Rotation    Rotation           `json:"rotation"`
	Page        *Page              `json:"page,omitempty"`
	Indicators  []PageIndicator    `json:"indicators"`
	Unassigned  []UnassignedLesson `json:"unassigned,omitempty"`
	DateChoices []string           `json:"date_choices,omitempty"`
	GeneratedAt *time.Time         `json:"generated_at,omitempty"`
	LoadedAt    *time.Time         `json:"loaded_at,omitempty"`
}

type DisplayOverride struct {
	Date string `json:"date,omitempty"`
	Time string `json:"time,omitempty"`
}

type Rotation struct {
	State           string `json:"state"`
	Paused          bool   `json:"paused"`
	PageIndex       int    `json:"page_index"`
	PageCount       int    `json:"page_count"`
	DwellMillis     int64  `json:"dwell_ms"`
	IsPrimary       bool   `json:"is_primary"`
	CurrentSlotName string `json:"slot_label,omitempty"`
}

type Page struct {
	SlotID    int             `json:"slot_id"`
	SlotLabel string          `json:"slot_label"`
	Lessons   []models.Lesson `json:"lessons"`
}

type PageIndicator struct {
	SlotID  int    `json:"slot_id"`
	Label   string `json:"label"`
	Active  bool   `json:"active"`
	Primary bool   `json:"primary"`
}

type UnassignedLesson struct {
	Index int    `json:"index"`
	Start string `json:"start"`
}

type OverrideResult struct {
	Display Display  `json:"display"`
	Ignored []string `json:"ignored,omitempty"`
}

type TimeSlot struct {
	ID            int    `json:"id"`
	Label         string `json:"label"`
	AcceptFrom    string `json:"accept_from"`
	AcceptTo      string `json:"accept_to"`
	PrimaryFrom   string `json:"primary_from"`
	PrimaryTo     string `json:"primary_to"`
	PrimaryActive bool   `json:"primary_active"`
}

type Refresh struct {
	Refreshed   bool       `json:"refreshed"`
	GeneratedAt *time.Time `json:"generated_at,omitempty"`
}
