package repository

import (
	"context"
	"fmt"

	"github.com/symposio/conference-api/internal/domain"
	"github.com/symposio/conference-api/internal/repository/dao"
)

var (
	ErrConferenceNotFound   = dao.ErrConferenceNotFound
	ErrConferenceSlugExists = dao.ErrConferenceSlugExists
)

type ConferenceDAO interface {
	Insert(ctx context.Context, conference dao.Conference) (dao.Conference, error)
	Update(ctx context.Context, conference dao.Conference) (dao.Conference, error)
	FindByID(ctx context.Context, id uint) (dao.Conference, error)
	FindBySlug(ctx context.Context, slug string) (dao.Conference, error)
	FindAll(ctx context.Context) ([]dao.Conference, error)
}

type ConferenceRepository struct {
	dao ConferenceDAO
}

func NewConferenceRepository(dao ConferenceDAO) *ConferenceRepository {
	return &ConferenceRepository{
		dao: dao,
	}
}

func (r *ConferenceRepository) Create(ctx context.Context, conference domain.Conference) (domain.Conference, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(conference))
	if err != nil {
		return domain.Conference{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ConferenceRepository) Update(ctx context.Context, conference domain.Conference) (domain.Conference, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(conference))
	if err != nil {
		return domain.Conference{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ConferenceRepository) FindByID(ctx context.Context, id uint) (domain.Conference, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Conference{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ConferenceRepository) FindBySlug(ctx context.Context, slug string) (domain.Conference, error) {
	found, err := r.dao.FindBySlug(ctx, slug)
	if err != nil {
		return domain.Conference{}, fmt.Errorf("r.dao.FindBySlug -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ConferenceRepository) FindAll(ctx context.Context) ([]domain.Conference, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	conferences := make([]domain.Conference, len(found))
	for i, c := range found {
		conferences[i] = r.daoToDomain(c)
	}

	return conferences, nil
}

func (r *ConferenceRepository) domainToDao(c domain.Conference) dao.Conference {
	return dao.Conference{
		ID:          c.ID,
		Slug:        c.Slug,
		Name:        c.Name,
		Venue:       c.Venue,
		Description: c.Description,
		StartsAt:    c.StartsAt,
		EndsAt:      c.EndsAt,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (r *ConferenceRepository) daoToDomain(c dao.Conference) domain.Conference {
	return domain.Conference{
		ID:          c.ID,
		Slug:        c.Slug,
		Name:        c.Name,
		Venue:       c.Venue,
		Description: c.Description,
		StartsAt:    c.StartsAt,
		EndsAt:      c.EndsAt,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
