package models

import "time"

// ScheduleDocument mirrors the schedule.json object produced by the processing pipeline.
type ScheduleDocument struct {
	GeneratedAt      time.Time           `json:"generated_at"`
	Date             string              `json:"date,omitempty"`
	AllLessonsByDate map[string][]Lesson `json:"all_lessons_by_date"`
}

// LessonsFor returns the lessons published for a DD.MM.YYYY date.
func (d *ScheduleDocument) LessonsFor(date string) ([]Lesson, bool) {
	if d == nil || d.AllLessonsByDate == nil {
		return nil, false
	}
	lessons, ok := d.AllLessonsByDate[date]
	return lessons, ok
}
