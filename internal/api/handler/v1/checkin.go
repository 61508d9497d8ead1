package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/symposio/conference-api/internal/api/handler/v1/request"
	"github.com/symposio/conference-api/internal/api/handler/v1/response"
	"github.com/symposio/conference-api/internal/domain"
	"github.com/symposio/conference-api/internal/service"
)

type CheckInService interface {
	CheckIn(ctx context.Context, input service.CheckInInput) (domain.CheckIn, error)
	BulkCheckIn(ctx context.Context, registrationIDs []uint, sessionID uint, method string) (service.BulkCheckInResult, error)
	GetBySession(ctx context.Context, sessionID uint) ([]domain.CheckIn, error)
}

type CheckInHandler struct {
	svc CheckInService
}

func NewCheckInHandler(svc CheckInService) *CheckInHandler {
	return &CheckInHandler{
		svc: svc,
	}
}

// HandleCheckIn godoc
// @Summary      Check a registration in to a session
// @Description  Resolves the registration by id or scanned QR payload. Repeated check-ins and unconfirmed registrations are rejected with stable error codes.
// @Tags         check-ins
// @Accept       json
// @Produce      json
// @Param        request  body      request.CheckInRequest  true  "request body"
// @Success      201      {object}  domain.CheckIn
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/check-ins [post]
// @Security     BearerAuth
func (h *CheckInHandler) HandleCheckIn(ctx *gin.Context) {
	var req request.CheckInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	checkIn, err := h.svc.CheckIn(ctx.Request.Context(), service.CheckInInput{
		RegistrationID: req.RegistrationID,
		QRCode:         req.QRData,
		SessionID:      req.SessionID,
		Method:         req.Method,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("registration", "id", req.RegistrationID))
		case errors.Is(err, service.ErrRegistrationNotForSession):
			response.RenderErr(ctx, response.ErrNotFound("registration", "sessionId", req.SessionID))
		case errors.Is(err, service.ErrSessionNotFound):
			response.RenderErr(ctx, response.ErrNotFound("session", "id", req.SessionID))
		case errors.Is(err, service.ErrAlreadyCheckedIn):
			response.RenderErr(ctx, response.ErrConflict(response.CodeAlreadyCheckedIn, err))
		case errors.Is(err, service.ErrNotConfirmed):
			response.RenderErr(ctx, response.ErrUnprocessable(response.CodeNotConfirmed, err))
		case errors.Is(err, service.ErrSessionNotActive):
			response.RenderErr(ctx, response.ErrUnprocessable(response.CodeSessionNotActive, err))
		default:
			err = fmt.Errorf("v1.HandleCheckIn -> h.svc.CheckIn -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, checkIn)
}

// HandleBulkCheckIn godoc
// @Summary      Check a batch of registrations in to a session
// @Description  Each registration id is processed independently; the response tallies successes and lists failed ids with their error codes.
// @Tags         check-ins
// @Accept       json
// @Produce      json
// @Param        request  body      request.BulkCheckInRequest  true  "request body"
// @Success      200      {object}  response.BulkCheckIn
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/bulk-checkin-registrations [post]
// @Security     BearerAuth
func (h *CheckInHandler) HandleBulkCheckIn(ctx *gin.Context) {
	var req request.BulkCheckInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.svc.BulkCheckIn(ctx.Request.Context(), req.RegistrationIDs, req.SessionID, req.Method)
	if err != nil {
		err = fmt.Errorf("v1.HandleBulkCheckIn -> h.svc.BulkCheckIn -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	failures := make([]response.BulkCheckInFailure, len(result.Failures))
	for i, failure := range result.Failures {
		failures[i] = response.BulkCheckInFailure{
			RegistrationID: failure.RegistrationID,
			Code:           checkInFailureCode(failure.Err),
		}
	}

	ctx.JSON(http.StatusOK, response.BulkCheckIn{
		SuccessCount: result.SuccessCount,
		FailCount:    result.FailCount,
		Failures:     failures,
	})
}

// HandleListCheckIns godoc
// @Summary      List check-ins of a session
// @Tags         check-ins
// @Produce      json
// @Param        sessionID  path      int  true  "Session ID"
// @Success      200        {array}   domain.CheckIn
// @Failure      400        {object}  response.Err
// @Failure      401        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /admin/sessions/{sessionID}/check-ins [get]
// @Security     BearerAuth
func (h *CheckInHandler) HandleListCheckIns(ctx *gin.Context) {
	sessionID, err := strconv.ParseUint(ctx.Param("sessionID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid session ID: %w", err)))
		return
	}

	checkIns, err := h.svc.GetBySession(ctx.Request.Context(), uint(sessionID))
	if err != nil {
		err = fmt.Errorf("v1.HandleListCheckIns -> h.svc.GetBySession -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, checkIns)
}

func checkInFailureCode(err error) string {
	switch {
	case errors.Is(err, service.ErrRegistrationNotFound),
		errors.Is(err, service.ErrRegistrationNotForSession),
		errors.Is(err, service.ErrSessionNotFound):
		return response.CodeNotFound
	case errors.Is(err, service.ErrAlreadyCheckedIn):
		return response.CodeAlreadyCheckedIn
	case errors.Is(err, service.ErrNotConfirmed):
		return response.CodeNotConfirmed
	case errors.Is(err, service.ErrSessionNotActive):
		return response.CodeSessionNotActive
	default:
		return response.CodeInternalError
	}
}
