package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"lesson-display-service/internal/app/contracts"
	"lesson-display-service/internal/app/services/core/clock"
	"lesson-display-service/internal/pkg/constvars"
	"lesson-display-service/internal/pkg/dto/requests"
	"lesson-display-service/internal/pkg/dto/responses"
	"lesson-display-service/internal/pkg/exceptions"
	"lesson-display-service/internal/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const maxOverrideBodyBytes = 4 << 10

type DisplayController struct {
	Log            *zap.Logger
	DisplayUsecase contracts.DisplayUsecase
	Refresher      contracts.ScheduleRefresher
	RefreshTimeout time.Duration
}

func NewDisplayController(logger *zap.Logger, displayUsecase contracts.DisplayUsecase, refresher contracts.ScheduleRefresher) *DisplayController {
	return &DisplayController{
		Log:            logger,
		DisplayUsecase: displayUsecase,
		Refresher:      refresher,
		RefreshTimeout: 30 * time.Second,
	}
}

func (ctrl *DisplayController) GetDisplay(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDisplaySuccessMessage, ctrl.DisplayUsecase.View(r.Context()))
}

func (ctrl *DisplayController) GetSlots(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSlotsSuccessMessage, ctrl.DisplayUsecase.Slots(r.Context()))
}

func (ctrl *DisplayController) Pause(w http.ResponseWriter, r *http.Request) {
	ctrl.control(w, r, "Pause", ctrl.DisplayUsecase.Pause, constvars.PauseRotationSuccessMessage)
}

func (ctrl *DisplayController) Resume(w http.ResponseWriter, r *http.Request) {
	ctrl.control(w, r, "Resume", ctrl.DisplayUsecase.Resume, constvars.ResumeRotationSuccessMessage)
}

func (ctrl *DisplayController) StepNext(w http.ResponseWriter, r *http.Request) {
	ctrl.control(w, r, "StepNext", ctrl.DisplayUsecase.StepNext, constvars.StepNextSuccessMessage)
}

func (ctrl *DisplayController) StepPrevious(w http.ResponseWriter, r *http.Request) {
	ctrl.control(w, r, "StepPrevious", ctrl.DisplayUsecase.StepPrevious, constvars.StepPreviousSuccessMessage)
}

func (ctrl *DisplayController) control(w http.ResponseWriter, r *http.Request, name string, action func(context.Context), message string) {
	ctx := r.Context()
	ctrl.Log.Info("DisplayController."+name+" called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.Bool(constvars.LoggingAPIKeyAuthKey, utils.IsAPIKeyAuthenticated(ctx)),
	)
	action(ctx)
	utils.BuildSuccessResponse(w, constvars.StatusOK, message, ctrl.DisplayUsecase.View(ctx))
}

// ApplyOverride accepts debug, date and time from a JSON body or the query
// string. Values that fail validation are ignored and listed in the response.
func (ctrl *DisplayController) ApplyOverride(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := utils.GetRequestID(ctx)

	request, ignored, err := parseOverride(r)
	if err != nil {
		ctrl.Log.Error("DisplayController.ApplyOverride error parsing request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			for _, fe := range validationErrors {
				switch fe.StructField() {
				case "Date":
					request.Date = ""
				case "Time":
					request.Time = ""
				}
				ignored = append(ignored, strings.ToLower(fe.StructField()))
			}
		}
		ctrl.Log.Warn("DisplayController.ApplyOverride ignoring invalid values",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Strings("reasons", exceptions.FormatAllValidationErrors(err)),
		)
	}

	dropped := ctrl.DisplayUsecase.ApplyOverride(ctx, request.Debug, clock.Override{Date: request.Date, Time: request.Time})
	ignored = append(ignored, dropped...)

	ctrl.Log.Info("DisplayController.ApplyOverride succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool(constvars.LoggingAPIKeyAuthKey, utils.IsAPIKeyAuthenticated(ctx)),
		zap.Bool(constvars.LoggingDebugModeKey, request.Debug),
		zap.String("date", request.Date),
		zap.String("time", request.Time),
		zap.Strings("ignored", ignored),
	)

	result := responses.OverrideResult{
		Display: *ctrl.DisplayUsecase.View(ctx),
		Ignored: ignored,
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ApplyOverrideSuccessMessage, result)
}

func (ctrl *DisplayController) ClearOverride(w http.ResponseWriter, r *http.Request) {
	ctrl.control(w, r, "ClearOverride", ctrl.DisplayUsecase.ClearOverride, constvars.ClearOverrideSuccessMessage)
}

func (ctrl *DisplayController) Refresh(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("DisplayController.Refresh called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool(constvars.LoggingAPIKeyAuthKey, utils.IsAPIKeyAuthenticated(r.Context())),
	)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RefreshTimeout)
	defer cancel()

	result, err := ctrl.Refresher.Refresh(ctx)
	if err != nil {
		ctrl.Log.Error("DisplayController.Refresh error from refresher",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if errors.Is(err, context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrScheduleNotLoaded(err))
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RefreshScheduleSuccessMessage, result)
}

// parseOverride reads the JSON body when one is sent, otherwise the query
// string. An unparsable debug flag is reported as ignored and treated as false.
func parseOverride(r *http.Request) (*requests.DisplayOverride, []string, error) {
	request := &requests.DisplayOverride{}
	var ignored []string

	body, err := io.ReadAll(io.LimitReader(r.Body, maxOverrideBodyBytes))
	if err != nil {
		return nil, nil, err
	}
	if len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, request); err != nil {
			return nil, nil, err
		}
		return request, nil, nil
	}

	query := r.URL.Query()
	if raw := query.Get("debug"); raw != "" {
		debug, err := strconv.ParseBool(raw)
		if err != nil {
			ignored = append(ignored, "debug")
		}
		request.Debug = debug
	}
	request.Date = query.Get("date")
	request.Time = query.Get("time")
	return request, ignored, nil
}
