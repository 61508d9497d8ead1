package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/symposio/conference-api/internal/api/handler/v1/request"
	"github.com/symposio/conference-api/internal/api/handler/v1/response"
	"github.com/symposio/conference-api/internal/domain"
	"github.com/symposio/conference-api/internal/service"
)

type SessionService interface {
	Create(ctx context.Context, session domain.Session) (domain.Session, error)
	Update(ctx context.Context, session domain.Session) (domain.Session, error)
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (domain.Session, error)
	GetByConference(ctx context.Context, conferenceSlug string) ([]domain.Session, error)
	Capacities(ctx context.Context, conferenceSlug string) ([]domain.SessionCapacity, error)
	Selectable(ctx context.Context, conferenceSlug string, selectedIDs []uint) ([]domain.SelectableSession, error)
}

type SessionHandler struct {
	svc SessionService
}

func NewSessionHandler(svc SessionService) *SessionHandler {
	return &SessionHandler{
		svc: svc,
	}
}

// HandleListSessions godoc
// @Summary      List sessions of a conference
// @Tags         sessions
// @Produce      json
// @Param        slug  path      string  true  "Conference slug"
// @Success      200   {array}   domain.Session
// @Failure      404   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /conferences/{slug}/sessions [get]
func (h *SessionHandler) HandleListSessions(ctx *gin.Context) {
	slug := ctx.Param("slug")

	sessions, err := h.svc.GetByConference(ctx.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrConferenceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("conference", "slug", slug))
			return
		}

		err = fmt.Errorf("v1.HandleListSessions -> h.svc.GetByConference -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, sessions)
}

// HandleSessionCapacities godoc
// @Summary      Live capacity and activity view per session
// @Description  Registered counts, capacity, isFull and isActive per session of the conference, recomputed from live registrations.
// @Tags         sessions
// @Produce      json
// @Param        conference  query     string  true  "Conference slug"
// @Success      200         {array}   domain.SessionCapacity
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /sessions/capacity [get]
func (h *SessionHandler) HandleSessionCapacities(ctx *gin.Context) {
	slug := ctx.Query("conference")

	capacities, err := h.svc.Capacities(ctx.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrConferenceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("conference", "slug", slug))
			return
		}

		err = fmt.Errorf("v1.HandleSessionCapacities -> h.svc.Capacities -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, capacities)
}

// HandleSelectableSessions godoc
// @Summary      Sessions with form-disabled flags for a selection
// @Description  Presentation helper for registration forms; the hard overlap rule is enforced on submission regardless.
// @Tags         sessions
// @Produce      json
// @Param        conference  query     string  true   "Conference slug"
// @Param        selected    query     string  false  "Comma-separated selected session ids"
// @Success      200         {array}   domain.SelectableSession
// @Failure      400         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /sessions/selectable [get]
func (h *SessionHandler) HandleSelectableSessions(ctx *gin.Context) {
	slug := ctx.Query("conference")

	selectedIDs, err := parseIDList(ctx.Query("selected"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid selected ids: %w", err)))
		return
	}

	sessions, err := h.svc.Selectable(ctx.Request.Context(), slug, selectedIDs)
	if err != nil {
		if errors.Is(err, service.ErrConferenceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("conference", "slug", slug))
			return
		}

		err = fmt.Errorf("v1.HandleSelectableSessions -> h.svc.Selectable -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, sessions)
}

// HandleCreateSession godoc
// @Summary      Create a session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateSessionRequest  true  "request body"
// @Success      201      {object}  domain.Session
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/sessions [post]
// @Security     BearerAuth
func (h *SessionHandler) HandleCreateSession(ctx *gin.Context) {
	var req request.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	session, err := h.svc.Create(ctx.Request.Context(), domain.Session{
		ConferenceID: req.ConferenceID,
		Title:        req.Title,
		Day:          req.Day,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
		Room:         req.Room,
		Track:        req.Track,
		Category:     req.Category,
		Capacity:     req.Capacity,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTimeWindow):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidTimeWindow))
		case errors.Is(err, service.ErrConferenceNotFound):
			response.RenderErr(ctx, response.ErrNotFound("conference", "id", req.ConferenceID))
		default:
			err = fmt.Errorf("v1.HandleCreateSession -> h.svc.Create -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, session)
}

// HandleUpdateSession godoc
// @Summary      Update a session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        sessionID  path      int                           true  "Session ID"
// @Param        request    body      request.UpdateSessionRequest  true  "request body"
// @Success      200        {object}  domain.Session
// @Failure      400        {object}  response.Err
// @Failure      401        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /admin/sessions/{sessionID} [put]
// @Security     BearerAuth
func (h *SessionHandler) HandleUpdateSession(ctx *gin.Context) {
	sessionID, err := strconv.ParseUint(ctx.Param("sessionID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid session ID: %w", err)))
		return
	}

	var req request.UpdateSessionRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	session, err := h.svc.Update(ctx.Request.Context(), domain.Session{
		ID:       uint(sessionID),
		Title:    req.Title,
		Day:      req.Day,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Room:     req.Room,
		Track:    req.Track,
		Category: req.Category,
		Capacity: req.Capacity,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTimeWindow):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidTimeWindow))
		case errors.Is(err, service.ErrSessionNotFound):
			response.RenderErr(ctx, response.ErrNotFound("session", "id", sessionID))
		default:
			err = fmt.Errorf("v1.HandleUpdateSession -> h.svc.Update -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// HandleDeleteSession godoc
// @Summary      Delete a session
// @Description  Registrations referencing the session are kept; nothing cascades.
// @Tags         sessions
// @Produce      json
// @Param        sessionID  path  int  true  "Session ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/sessions/{sessionID} [delete]
// @Security     BearerAuth
func (h *SessionHandler) HandleDeleteSession(ctx *gin.Context) {
	sessionID, err := strconv.ParseUint(ctx.Param("sessionID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid session ID: %w", err)))
		return
	}

	if err = h.svc.Delete(ctx.Request.Context(), uint(sessionID)); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("session", "id", sessionID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteSession -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

func parseIDList(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}

	return ids, nil
}
