package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/symposio/conference-api/internal/domain"
	"github.com/symposio/conference-api/internal/repository"
)

var ErrInvalidTimeWindow = errors.New("session must start before it ends")

type SessionRepository interface {
	Create(ctx context.Context, session domain.Session) (domain.Session, error)
	Update(ctx context.Context, session domain.Session) (domain.Session, error)
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (domain.Session, error)
	FindByIDs(ctx context.Context, ids []uint) ([]domain.Session, error)
	FindByConferenceID(ctx context.Context, conferenceID uint) ([]domain.Session, error)
}

type RegistrationCounter interface {
	CountBySession(ctx context.Context, conferenceID uint) (map[uint]int, error)
}

type SessionService struct {
	repo           SessionRepository
	conferenceRepo ConferenceRepository
	counter        RegistrationCounter
	now            func() time.Time
}

func NewSessionService(repo SessionRepository, conferenceRepo ConferenceRepository, counter RegistrationCounter) *SessionService {
	return &SessionService{
		repo:           repo,
		conferenceRepo: conferenceRepo,
		counter:        counter,
		now:            time.Now,
	}
}

func (s *SessionService) Create(ctx context.Context, session domain.Session) (domain.Session, error) {
	if !session.StartsAt.Before(session.EndsAt) {
		return domain.Session{}, ErrInvalidTimeWindow
	}

	if _, err := s.conferenceRepo.FindByID(ctx, session.ConferenceID); err != nil {
		if errors.Is(err, repository.ErrConferenceNotFound) {
			return domain.Session{}, ErrConferenceNotFound
		}

		return domain.Session{}, fmt.Errorf("s.conferenceRepo.FindByID -> %w", err)
	}

	created, err := s.repo.Create(ctx, session)
	if err != nil {
		return domain.Session{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *SessionService) Update(ctx context.Context, session domain.Session) (domain.Session, error) {
	if !session.StartsAt.Before(session.EndsAt) {
		return domain.Session{}, ErrInvalidTimeWindow
	}

	updated, err := s.repo.Update(ctx, session)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return domain.Session{}, ErrSessionNotFound
		}

		return domain.Session{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// Delete removes a session without touching its registrations.
func (s *SessionService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return ErrSessionNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *SessionService) GetByID(ctx context.Context, id uint) (domain.Session, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return domain.Session{}, ErrSessionNotFound
		}

		return domain.Session{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return session, nil
}

func (s *SessionService) GetByConference(ctx context.Context, conferenceSlug string) ([]domain.Session, error) {
	conference, err := s.findConference(ctx, conferenceSlug)
	if err != nil {
		return nil, err
	}

	sessions, err := s.repo.FindByConferenceID(ctx, conference.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByConferenceID -> %w", err)
	}

	return sessions, nil
}

// Capacities is the single capacity/activity view for a conference,
// recomputed from live registration counts on every call.
func (s *SessionService) Capacities(ctx context.Context, conferenceSlug string) ([]domain.SessionCapacity, error) {
	conference, err := s.findConference(ctx, conferenceSlug)
	if err != nil {
		return nil, err
	}

	sessions, err := s.repo.FindByConferenceID(ctx, conference.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByConferenceID -> %w", err)
	}

	registered, err := s.counter.CountBySession(ctx, conference.ID)
	if err != nil {
		return nil, fmt.Errorf("s.counter.CountBySession -> %w", err)
	}

	now := s.now()
	capacities := make([]domain.SessionCapacity, len(sessions))
	for i, session := range sessions {
		count := registered[session.ID]
		capacities[i] = domain.SessionCapacity{
			SessionID:  session.ID,
			Registered: count,
			Capacity:   session.Capacity,
			IsFull:     session.IsFull(count),
			IsActive:   session.IsActiveAt(now, 0),
		}
	}

	return capacities, nil
}

// Selectable returns the conference's sessions with the registration form's
// disabled flags computed against an already-selected set. Presentation
// convenience only; the hard overlap rule lives in RegisterBatch.
func (s *SessionService) Selectable(ctx context.Context, conferenceSlug string, selectedIDs []uint) ([]domain.SelectableSession, error) {
	conference, err := s.findConference(ctx, conferenceSlug)
	if err != nil {
		return nil, err
	}

	sessions, err := s.repo.FindByConferenceID(ctx, conference.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByConferenceID -> %w", err)
	}

	selected := make([]domain.Session, 0, len(selectedIDs))
	for _, session := range sessions {
		for _, id := range selectedIDs {
			if session.ID == id {
				selected = append(selected, session)
				break
			}
		}
	}

	return domain.DisableAgainstSelection(sessions, selected), nil
}

func (s *SessionService) findConference(ctx context.Context, slug string) (domain.Conference, error) {
	conference, err := s.conferenceRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrConferenceNotFound) {
			return domain.Conference{}, ErrConferenceNotFound
		}

		return domain.Conference{}, fmt.Errorf("s.conferenceRepo.FindBySlug -> %w", err)
	}

	return conference, nil
}
