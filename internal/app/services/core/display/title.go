package display

import (
	"fmt"

	"lesson-display-service/internal/app/services/core/clock"
	"lesson-display-service/internal/app/services/core/slot"
)

const noLessonsPhrase = "No lessons"

// BuildTitle renders the heading shown above the current page, e.g.
// "Schedule for Friday, 30.01.2026 11:00-12:50. 5 lessons".
func BuildTitle(date *clock.Date, page *slot.Page) string {
	if date == nil {
		return noLessonsPhrase
	}
	prefix := fmt.Sprintf("Schedule for %s, %s", date.Weekday(), date)
	if page == nil || len(page.Lessons) == 0 {
		return prefix + ". " + noLessonsPhrase
	}

	if span, ok := timeSpan(page); ok {
		prefix += " " + span
	}
	return fmt.Sprintf("%s. %s", prefix, lessonCount(len(page.Lessons)))
}

// timeSpan returns "<earliest start>-<latest end>" over the page's lessons.
// Times that do not parse are skipped.
func timeSpan(page *slot.Page) (string, bool) {
	first, last := -1, -1
	var start, end string
	for _, lesson := range page.Lessons {
		if m, err := clock.ParseTimeOfDay(lesson.Start); err == nil && (first < 0 || m < first) {
			first, start = m, lesson.Start
		}
		if m, err := clock.ParseTimeOfDay(lesson.End); err == nil && m > last {
			last, end = m, lesson.End
		}
	}
	if first < 0 || last < 0 {
		return "", false
	}
	return start + "-" + end, true
}

func lessonCount(n int) string {
	if n == 1 {
		return "1 lesson"
	}
	return fmt.Sprintf("%d lessons", n)
}
