package constvars

const (
	ResponseUnknown = "unknown"

	GetDisplaySuccessMessage      = "get display successfully"
	GetSlotsSuccessMessage        = "get time slots successfully"
	PauseRotationSuccessMessage   = "rotation paused"
	ResumeRotationSuccessMessage  = "rotation resumed"
	StepNextSuccessMessage        = "moved to next page"
	StepPreviousSuccessMessage    = "moved to previous page"
	ApplyOverrideSuccessMessage   = "override applied"
	ClearOverrideSuccessMessage   = "override cleared"
	RefreshScheduleSuccessMessage = "schedule refreshed"
)
