package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/symposio/conference-api/internal/domain"
	"github.com/symposio/conference-api/internal/repository"
)

var ErrConferenceSlugExists = repository.ErrConferenceSlugExists

type ConferenceRepository interface {
	Create(ctx context.Context, conference domain.Conference) (domain.Conference, error)
	Update(ctx context.Context, conference domain.Conference) (domain.Conference, error)
	FindByID(ctx context.Context, id uint) (domain.Conference, error)
	FindBySlug(ctx context.Context, slug string) (domain.Conference, error)
	FindAll(ctx context.Context) ([]domain.Conference, error)
}

type ConferenceService struct {
	repo ConferenceRepository
}

func NewConferenceService(repo ConferenceRepository) *ConferenceService {
	return &ConferenceService{
		repo: repo,
	}
}

func (s *ConferenceService) Create(ctx context.Context, conference domain.Conference) (domain.Conference, error) {
	created, err := s.repo.Create(ctx, conference)
	if err != nil {
		if errors.Is(err, repository.ErrConferenceSlugExists) {
			return domain.Conference{}, ErrConferenceSlugExists
		}

		return domain.Conference{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ConferenceService) Update(ctx context.Context, conference domain.Conference) (domain.Conference, error) {
	updated, err := s.repo.Update(ctx, conference)
	if err != nil {
		if errors.Is(err, repository.ErrConferenceNotFound) {
			return domain.Conference{}, ErrConferenceNotFound
		}

		return domain.Conference{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *ConferenceService) GetBySlug(ctx context.Context, slug string) (domain.Conference, error) {
	conference, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrConferenceNotFound) {
			return domain.Conference{}, ErrConferenceNotFound
		}

		return domain.Conference{}, fmt.Errorf("s.repo.FindBySlug -> %w", err)
	}

	return conference, nil
}

func (s *ConferenceService) GetAll(ctx context.Context) ([]domain.Conference, error) {
	conferences, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return conferences, nil
}
