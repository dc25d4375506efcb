// Package display ties the schedule document, the debug overrides and the
// rotation scheduler together. Every change to the data, the target date or
// the overrides regroups the lessons and reloads the scheduler from page one.
package display

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"lesson-display-service/internal/app/config"
	"lesson-display-service/internal/app/contracts"
	"lesson-display-service/internal/app/models"
	"lesson-display-service/internal/app/services/core/clock"
	"lesson-display-service/internal/app/services/core/rotation"
	"lesson-display-service/internal/app/services/core/slot"
	"lesson-display-service/internal/pkg/constvars"
	"lesson-display-service/internal/pkg/dto/responses"
	"lesson-display-service/internal/pkg/utils"

	"go.uber.org/zap"
)

const (
	dateChoicesAhead = 7
	dateChoicesBack  = 14
)

type Usecase struct {
	mu         sync.Mutex
	log        *zap.Logger
	classifier *slot.Classifier
	source     *clock.Source
	scheduler  *rotation.Scheduler
	now        func() time.Time

	doc        *models.ScheduleDocument
	loadedAt   time.Time
	debug      bool
	override   clock.Override
	targetDate *clock.Date
	pageSlots  []slot.TimeSlot
	unassigned []slot.Unassigned
}

var _ contracts.DisplayUsecase = (*Usecase)(nil)

func NewUsecase(log *zap.Logger, classifier *slot.Classifier, source *clock.Source, scheduler *rotation.Scheduler) *Usecase {
	scheduler.SetClock(source.Bind(clock.Override{}))
	return &Usecase{
		log:        log,
		classifier: classifier,
		source:     source,
		scheduler:  scheduler,
		now:        time.Now,
	}
}

// LoadSchedule installs a freshly fetched document. A document with the same
// generated_at as the current one is not rebuilt, so periodic refreshes do not
// restart the rotation.
func (u *Usecase) LoadSchedule(ctx context.Context, doc *models.ScheduleDocument) {
	if doc == nil {
		return
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	u.loadedAt = u.now()
	if u.doc != nil && !doc.GeneratedAt.IsZero() && doc.GeneratedAt.Equal(u.doc.GeneratedAt) {
		u.log.Debug("display.Usecase.LoadSchedule document unchanged",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Time(constvars.LoggingGeneratedAtKey, doc.GeneratedAt),
		)
		return
	}
	u.doc = doc
	u.rebuild(ctx, "schedule")
}

// ApplyOverride sets debug mode and the clock overrides. Malformed override
// fields are dropped and their names returned.
func (u *Usecase) ApplyOverride(ctx context.Context, debug bool, override clock.Override) []string {
	normalized, dropped := override.Normalize()
	if len(dropped) > 0 {
		u.log.Warn("display.Usecase.ApplyOverride ignoring malformed override values",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Strings("fields", dropped),
		)
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	u.debug = debug
	u.override = normalized
	u.scheduler.SetClock(u.source.Bind(normalized))
	u.rebuild(ctx, "override")
	return dropped
}

// ApplyBootOverride applies the debug flag and overrides configured at startup.
// With none configured it leaves the real clock in place and returns nil.
func (u *Usecase) ApplyBootOverride(ctx context.Context, cfg config.AppRotation) []string {
	override := clock.Override{Date: cfg.DateOverride, Time: cfg.TimeOverride}
	if !cfg.DebugMode && override.IsZero() {
		return nil
	}
	dropped := u.ApplyOverride(ctx, cfg.DebugMode, override)
	if len(dropped) > 0 {
		u.log.Warn("display.Usecase.ApplyBootOverride ignoring malformed overrides",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Strings("fields", dropped),
		)
	}
	return dropped
}

// ClearOverride leaves debug mode and returns to the real clock.
func (u *Usecase) ClearOverride(ctx context.Context) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.debug = false
	u.override = clock.Override{}
	u.scheduler.SetClock(u.source.Bind(u.override))
	u.rebuild(ctx, "override_cleared")
}

// CheckDateRollover rebuilds when the target date has moved, typically at midnight.
func (u *Usecase) CheckDateRollover(ctx context.Context) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.doc == nil {
		return false
	}
	next := u.selectTargetDate()
	if sameDate(next, u.targetDate) {
		return false
	}
	u.rebuild(ctx, "date_rollover")
	return true
}

func (u *Usecase) Pause(ctx context.Context) {
	u.control(ctx, "Pause", u.scheduler.Pause)
}

func (u *Usecase) Resume(ctx context.Context) {
	u.control(ctx, "Resume", u.scheduler.Resume)
}

func (u *Usecase) StepNext(ctx context.Context) {
	u.control(ctx, "StepNext", u.scheduler.StepNext)
}

func (u *Usecase) StepPrevious(ctx context.Context) {
	u.control(ctx, "StepPrevious", u.scheduler.StepPrevious)
}

func (u *Usecase) control(ctx context.Context, name string, action func()) {
	action()
	snap := u.scheduler.Snapshot()
	u.log.Info("display.Usecase."+name+" completed",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.Stringer("state", snap.State),
		zap.Int("page_index", snap.PageIndex),
		zap.Int(constvars.LoggingPageCountKey, snap.PageCount),
	)
}

func (u *Usecase) View(ctx context.Context) *responses.Display {
	u.mu.Lock()
	defer u.mu.Unlock()

	snap := u.scheduler.Snapshot()
	reading := u.source.Now(u.override)

	view := &responses.Display{
		Title: BuildTitle(u.targetDate, snap.Page),
		Debug: u.debug,
		Override: responses.DisplayOverride{
			Date: u.override.Date,
			Time: u.override.Time,
		},
		Rotation: responses.Rotation{
			State:           snap.State.String(),
			Paused:          snap.Paused,
			PageIndex:       snap.PageIndex,
			PageCount:       snap.PageCount,
			DwellMillis:     snap.Dwell.Milliseconds(),
			IsPrimary:       snap.IsPrimary,
			CurrentSlotName: snap.SlotLabel,
		},
		Indicators: u.indicators(snap, reading),
	}
	if u.targetDate != nil {
		view.TargetDate = u.targetDate.String()
	}
	if snap.Page != nil {
		view.Page = &responses.Page{
			SlotID:    snap.Page.Slot.ID,
			SlotLabel: snap.Page.Slot.Label,
			Lessons:   snap.Page.Lessons,
		}
	}
	for _, un := range u.unassigned {
		view.Unassigned = append(view.Unassigned, responses.UnassignedLesson{Index: un.Index, Start: un.Start})
	}
	if u.debug {
		view.DateChoices = dateChoices(u.source.Now(clock.Override{}).Date)
	}
	if u.doc != nil && !u.doc.GeneratedAt.IsZero() {
		generatedAt := u.doc.GeneratedAt
		view.GeneratedAt = &generatedAt
	}
	if !u.loadedAt.IsZero() {
		loadedAt := u.loadedAt
		view.LoadedAt = &loadedAt
	}
	return view
}

func (u *Usecase) Slots(ctx context.Context) []responses.TimeSlot {
	u.mu.Lock()
	reading := u.source.Now(u.override)
	u.mu.Unlock()

	slots := u.classifier.Slots()
	out := make([]responses.TimeSlot, 0, len(slots))
	for _, s := range slots {
		out = append(out, responses.TimeSlot{
			ID:            s.ID,
			Label:         s.Label,
			AcceptFrom:    formatMinutes(s.AcceptRange.Min),
			AcceptTo:      formatMinutes(s.AcceptRange.Max),
			PrimaryFrom:   formatMinutes(s.PrimaryWindow.Min),
			PrimaryTo:     formatMinutes(s.PrimaryWindow.Max),
			PrimaryActive: u.classifier.IsPrimary(s.ID, reading),
		})
	}
	return out
}

// rebuild regroups the target day's lessons and reloads the scheduler. Callers hold u.mu.
func (u *Usecase) rebuild(ctx context.Context, reason string) {
	u.targetDate = u.selectTargetDate()

	var lessons []models.Lesson
	if u.targetDate != nil {
		lessons, _ = u.doc.LessonsFor(u.targetDate.String())
	}
	result := slot.Group(lessons, u.classifier)

	u.unassigned = result.Unassigned
	u.pageSlots = u.pageSlots[:0]
	for _, p := range result.Pages {
		u.pageSlots = append(u.pageSlots, p.Slot)
	}

	requestID := utils.GetRequestID(ctx)
	if len(result.Unassigned) > 0 {
		u.log.Warn("display.Usecase.rebuild lessons outside every time slot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingUnassignedCountKey, len(result.Unassigned)),
			zap.Any("unassigned", result.Unassigned),
		)
	}

	u.scheduler.Load(result.Pages, u.debug)

	target := ""
	if u.targetDate != nil {
		target = u.targetDate.String()
	}
	u.log.Info("display.Usecase.rebuild completed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("reason", reason),
		zap.String(constvars.LoggingTargetDateKey, target),
		zap.Int(constvars.LoggingPageCountKey, len(result.Pages)),
		zap.Bool(constvars.LoggingDebugModeKey, u.debug),
	)
}

// selectTargetDate picks the day to show. An explicit override date always wins,
// even when it has no lessons. Otherwise today is used, falling back to the
// earliest published date when today is missing from the document.
func (u *Usecase) selectTargetDate() *clock.Date {
	if u.doc == nil {
		return nil
	}
	reading := u.source.Now(u.override)
	target := reading.Date
	if u.override.Date != "" {
		return &target
	}
	if _, ok := u.doc.LessonsFor(target.String()); ok {
		return &target
	}
	if earliest, ok := earliestDate(u.doc); ok {
		return &earliest
	}
	return &target
}

func (u *Usecase) indicators(snap rotation.Snapshot, reading clock.Reading) []responses.PageIndicator {
	out := make([]responses.PageIndicator, 0, len(u.pageSlots))
	if len(u.pageSlots) <= 1 {
		return out
	}
	for i, s := range u.pageSlots {
		out = append(out, responses.PageIndicator{
			SlotID:  s.ID,
			Label:   s.Label,
			Active:  i == snap.PageIndex,
			Primary: u.classifier.IsPrimary(s.ID, reading),
		})
	}
	return out
}

func earliestDate(doc *models.ScheduleDocument) (clock.Date, bool) {
	dates := make([]clock.Date, 0, len(doc.AllLessonsByDate))
	for key := range doc.AllLessonsByDate {
		d, err := clock.ParseDate(key)
		if err != nil {
			continue
		}
		dates = append(dates, d)
	}
	if len(dates) == 0 {
		return clock.Date{}, false
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates[0], true
}

// dateChoices lists the debug date picker: a week ahead (furthest first), then
// today and the two weeks before it.
func dateChoices(today clock.Date) []string {
	base := today.Time()
	out := make([]string, 0, dateChoicesAhead+dateChoicesBack)
	for i := dateChoicesAhead; i >= 1; i-- {
		out = append(out, clock.DateOf(base.AddDate(0, 0, i)).String())
	}
	for i := 0; i < dateChoicesBack; i++ {
		out = append(out, clock.DateOf(base.AddDate(0, 0, -i)).String())
	}
	return out
}

func sameDate(a, b *clock.Date) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func formatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
