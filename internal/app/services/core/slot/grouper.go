package slot

import (
	"lesson-display-service/internal/app/models"
)

// Group buckets lessons into pages by slot. Pages come out in slot id order and
// only for slots that received lessons; lessons keep their input order. Lessons
// matching no slot are returned in Unassigned and left out of every page.
func Group(lessons []models.Lesson, c *Classifier) GroupResult {
	var result GroupResult
	if len(lessons) == 0 {
		return result
	}

	// buckets are indexed by table position, which is already id ordered
	buckets := make([][]models.Lesson, len(c.slots))
	for i, lesson := range lessons {
		pos := c.indexForStart(lesson.Start)
		if pos < 0 {
			result.Unassigned = append(result.Unassigned, Unassigned{Index: i, Start: lesson.Start})
			continue
		}
		buckets[pos] = append(buckets[pos], lesson)
	}

	for pos, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		result.Pages = append(result.Pages, Page{Slot: c.slots[pos], Lessons: bucket})
	}
	return result
}
