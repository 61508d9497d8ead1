package repository

import (
	"context"
	"fmt"

	"github.com/symposio/conference-api/internal/domain"
	"github.com/symposio/conference-api/internal/repository/dao"
)

var ErrSessionNotFound = dao.ErrSessionNotFound

type SessionDAO interface {
	Insert(ctx context.Context, session dao.Session) (dao.Session, error)
	Update(ctx context.Context, session dao.Session) (dao.Session, error)
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (dao.Session, error)
	FindByIDs(ctx context.Context, ids []uint) ([]dao.Session, error)
	FindByConferenceID(ctx context.Context, conferenceID uint) ([]dao.Session, error)
}

type SessionRepository struct {
	dao SessionDAO
}

func NewSessionRepository(dao SessionDAO) *SessionRepository {
	return &SessionRepository{
		dao: dao,
	}
}

func (r *SessionRepository) Create(ctx context.Context, session domain.Session) (domain.Session, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(session))
	if err != nil {
		return domain.Session{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *SessionRepository) Update(ctx context.Context, session domain.Session) (domain.Session, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(session))
	if err != nil {
		return domain.Session{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *SessionRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id uint) (domain.Session, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Session{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *SessionRepository) FindByIDs(ctx context.Context, ids []uint) ([]domain.Session, error) {
	found, err := r.dao.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByIDs -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *SessionRepository) FindByConferenceID(ctx context.Context, conferenceID uint) ([]domain.Session, error) {
	found, err := r.dao.FindByConferenceID(ctx, conferenceID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByConferenceID -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *SessionRepository) daosToDomain(sessions []dao.Session) []domain.Session {
	result := make([]domain.Session, len(sessions))
	for i, s := range sessions {
		result[i] = r.daoToDomain(s)
	}

	return result
}

func (r *SessionRepository) domainToDao(s domain.Session) dao.Session {
	return dao.Session{
		ID:           s.ID,
		ConferenceID: s.ConferenceID,
		Title:        s.Title,
		Day:          s.Day,
		StartsAt:     s.StartsAt,
		EndsAt:       s.EndsAt,
		Room:         s.Room,
		Track:        s.Track,
		Category:     s.Category,
		Capacity:     s.Capacity,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func (r *SessionRepository) daoToDomain(s dao.Session) domain.Session {
	return domain.Session{
		ID:           s.ID,
		ConferenceID: s.ConferenceID,
		Title:        s.Title,
		Day:          s.Day,
		StartsAt:     s.StartsAt,
		EndsAt:       s.EndsAt,
		Room:         s.Room,
		Track:        s.Track,
		Category:     s.Category,
		Capacity:     s.Capacity,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
