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

type RegistrationService interface {
	RegisterBatch(ctx context.Context, input service.BatchRegistrationInput) (service.BatchRegistrationResult, error)
	Confirm(ctx context.Context, token string) ([]domain.Registration, error)
	GetBySession(ctx context.Context, sessionID uint) ([]domain.Registration, error)
	GetByConference(ctx context.Context, conferenceSlug string) ([]domain.Registration, error)
	Delete(ctx context.Context, id uint) error
}

type RegistrationHandler struct {
	svc RegistrationService
}

func NewRegistrationHandler(svc RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{
		svc: svc,
	}
}

// HandleBatchRegister godoc
// @Summary      Register one attendee for a set of sessions
// @Description  Persists one registration per selected session, all-or-nothing. Rejects full sessions, overlapping selections and duplicate emails per session with stable error codes.
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        request  body      request.BatchRegistrationRequest  true  "request body"
// @Success      201      {object}  response.BatchRegistration
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /registrations/batch [post]
func (h *RegistrationHandler) HandleBatchRegister(ctx *gin.Context) {
	var req request.BatchRegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.svc.RegisterBatch(ctx.Request.Context(), service.BatchRegistrationInput{
		FullName:                req.FullName,
		Email:                   req.Email,
		Phone:                   req.Phone,
		Organization:            req.Organization,
		Position:                req.Position,
		Role:                    req.Role,
		CMECertificateRequested: req.CMECertificateRequested,
		SessionIDs:              req.SessionIDs,
		ConferenceSlug:          req.ConferenceSlug,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConferenceNotFound):
			response.RenderErr(ctx, response.ErrNotFound("conference", "slug", req.ConferenceSlug))
		case errors.Is(err, service.ErrSessionNotFound),
			errors.Is(err, service.ErrSessionNotInConference):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrSessionFull):
			response.RenderErr(ctx, response.ErrUnprocessable(response.CodeSessionFull, err))
		case errors.Is(err, service.ErrScheduleConflict):
			response.RenderErr(ctx, response.ErrUnprocessable(response.CodeScheduleConflict, err))
		case errors.Is(err, service.ErrDuplicateRegistration):
			response.RenderErr(ctx, response.ErrConflict(response.CodeDuplicateRegistration, err))
		default:
			err = fmt.Errorf("v1.HandleBatchRegister -> h.svc.RegisterBatch -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ids := make([]uint, len(result.Registrations))
	for i, reg := range result.Registrations {
		ids[i] = reg.ID
	}

	ctx.JSON(http.StatusCreated, response.BatchRegistration{
		Success:           true,
		EmailSent:         result.EmailSent,
		ConfirmationToken: result.ConfirmationToken,
		RegistrationIDs:   ids,
	})
}

// HandleConfirmRegistration godoc
// @Summary      Confirm pending registrations by token
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        request  body      request.ConfirmRegistrationRequest  true  "request body"
// @Success      200      {object}  response.ConfirmRegistration
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      410      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /registrations/confirm [post]
func (h *RegistrationHandler) HandleConfirmRegistration(ctx *gin.Context) {
	var req request.ConfirmRegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	confirmed, err := h.svc.Confirm(ctx.Request.Context(), req.Token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("registration", "token", req.Token))
		case errors.Is(err, service.ErrTokenExpired):
			response.RenderErr(ctx, response.ErrConflict(response.CodeTokenExpired, err))
		default:
			err = fmt.Errorf("v1.HandleConfirmRegistration -> h.svc.Confirm -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.ConfirmRegistration{
		Confirmed: len(confirmed),
		Status:    domain.RegistrationStatusConfirmed,
	})
}

// HandleListRegistrationsBySession godoc
// @Summary      List registrations of a session
// @Tags         registrations
// @Produce      json
// @Param        sessionID  path      int  true  "Session ID"
// @Success      200        {array}   domain.Registration
// @Failure      400        {object}  response.Err
// @Failure      401        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /admin/sessions/{sessionID}/registrations [get]
// @Security     BearerAuth
func (h *RegistrationHandler) HandleListRegistrationsBySession(ctx *gin.Context) {
	sessionID, err := strconv.ParseUint(ctx.Param("sessionID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid session ID: %w", err)))
		return
	}

	registrations, err := h.svc.GetBySession(ctx.Request.Context(), uint(sessionID))
	if err != nil {
		err = fmt.Errorf("v1.HandleListRegistrationsBySession -> h.svc.GetBySession -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, registrations)
}

// HandleListRegistrationsByConference godoc
// @Summary      List all registrations of a conference
// @Tags         registrations
// @Produce      json
// @Param        slug  path      string  true  "Conference slug"
// @Success      200   {array}   domain.Registration
// @Failure      401   {object}  response.Err
// @Failure      404   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /admin/conferences/{slug}/registrations [get]
// @Security     BearerAuth
func (h *RegistrationHandler) HandleListRegistrationsByConference(ctx *gin.Context) {
	slug := ctx.Param("slug")

	registrations, err := h.svc.GetByConference(ctx.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrConferenceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("conference", "slug", slug))
			return
		}

		err = fmt.Errorf("v1.HandleListRegistrationsByConference -> h.svc.GetByConference -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, registrations)
}

// HandleDeleteRegistration godoc
// @Summary      Delete a registration
// @Tags         registrations
// @Produce      json
// @Param        registrationID  path  int  true  "Registration ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/registrations/{registrationID} [delete]
// @Security     BearerAuth
func (h *RegistrationHandler) HandleDeleteRegistration(ctx *gin.Context) {
	registrationID, err := strconv.ParseUint(ctx.Param("registrationID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid registration ID: %w", err)))
		return
	}

	if err = h.svc.Delete(ctx.Request.Context(), uint(registrationID)); err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("registration", "id", registrationID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteRegistration -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
