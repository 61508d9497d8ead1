package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/symposio/conference-api/internal/api/handler/v1/request"
	"github.com/symposio/conference-api/internal/api/handler/v1/response"
	"github.com/symposio/conference-api/internal/domain"
	"github.com/symposio/conference-api/internal/service"
)

type ConferenceService interface {
	Create(ctx context.Context, conference domain.Conference) (domain.Conference, error)
	Update(ctx context.Context, conference domain.Conference) (domain.Conference, error)
	GetBySlug(ctx context.Context, slug string) (domain.Conference, error)
	GetAll(ctx context.Context) ([]domain.Conference, error)
}

type ConferenceHandler struct {
	svc ConferenceService
}

func NewConferenceHandler(svc ConferenceService) *ConferenceHandler {
	return &ConferenceHandler{
		svc: svc,
	}
}

// HandleListConferences godoc
// @Summary      List all conferences
// @Tags         conferences
// @Produce      json
// @Success      200  {array}   domain.Conference
// @Failure      500  {object}  response.Err
// @Router       /conferences [get]
func (h *ConferenceHandler) HandleListConferences(ctx *gin.Context) {
	conferences, err := h.svc.GetAll(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListConferences -> h.svc.GetAll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, conferences)
}

// HandleGetConference godoc
// @Summary      Get a conference by slug
// @Tags         conferences
// @Produce      json
// @Param        slug  path      string  true  "Conference slug"
// @Success      200   {object}  domain.Conference
// @Failure      404   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /conferences/{slug} [get]
func (h *ConferenceHandler) HandleGetConference(ctx *gin.Context) {
	slug := ctx.Param("slug")

	conference, err := h.svc.GetBySlug(ctx.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrConferenceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("conference", "slug", slug))
			return
		}

		err = fmt.Errorf("v1.HandleGetConference -> h.svc.GetBySlug -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, conference)
}

// HandleCreateConference godoc
// @Summary      Create a conference
// @Tags         conferences
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateConferenceRequest  true  "request body"
// @Success      201      {object}  domain.Conference
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/conferences [post]
// @Security     BearerAuth
func (h *ConferenceHandler) HandleCreateConference(ctx *gin.Context) {
	var req request.CreateConferenceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	conference, err := h.svc.Create(ctx.Request.Context(), domain.Conference{
		Slug:        req.Slug,
		Name:        req.Name,
		Venue:       req.Venue,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Active:      req.Active,
	})
	if err != nil {
		if errors.Is(err, service.ErrConferenceSlugExists) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrConferenceSlugExists))
			return
		}

		err = fmt.Errorf("v1.HandleCreateConference -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, conference)
}

// HandleUpdateConference godoc
// @Summary      Update a conference
// @Tags         conferences
// @Accept       json
// @Produce      json
// @Param        slug     path      string                           true  "Conference slug"
// @Param        request  body      request.UpdateConferenceRequest  true  "request body"
// @Success      200      {object}  domain.Conference
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/conferences/{slug} [put]
// @Security     BearerAuth
func (h *ConferenceHandler) HandleUpdateConference(ctx *gin.Context) {
	slug := ctx.Param("slug")

	var req request.UpdateConferenceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	existing, err := h.svc.GetBySlug(ctx.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrConferenceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("conference", "slug", slug))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateConference -> h.svc.GetBySlug -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	existing.Name = req.Name
	existing.Venue = req.Venue
	existing.Description = req.Description
	existing.StartsAt = req.StartsAt
	existing.EndsAt = req.EndsAt
	existing.Active = req.Active

	updated, err := h.svc.Update(ctx.Request.Context(), existing)
	if err != nil {
		err = fmt.Errorf("v1.HandleUpdateConference -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}
