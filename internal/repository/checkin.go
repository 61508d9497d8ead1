package repository

import (
	"context"
	"fmt"

	"github.com/symposio/conference-api/internal/domain"
	"github.com/symposio/conference-api/internal/repository/dao"
)

var ErrAlreadyCheckedIn = dao.ErrAlreadyCheckedIn

type CheckInDAO interface {
	Insert(ctx context.Context, checkIn dao.CheckIn) (dao.CheckIn, error)
	ExistsFor(ctx context.Context, registrationID, sessionID uint) (bool, error)
	FindBySessionID(ctx context.Context, sessionID uint) ([]dao.CheckIn, error)
}

type CheckInRepository struct {
	dao CheckInDAO
}

func NewCheckInRepository(dao CheckInDAO) *CheckInRepository {
	return &CheckInRepository{
		dao: dao,
	}
}

func (r *CheckInRepository) Create(ctx context.Context, checkIn domain.CheckIn) (domain.CheckIn, error) {
	created, err := r.dao.Insert(ctx, dao.CheckIn{
		RegistrationID: checkIn.RegistrationID,
		SessionID:      checkIn.SessionID,
		Method:         checkIn.Method,
		CheckedInAt:    checkIn.CheckedInAt,
	})
	if err != nil {
		return domain.CheckIn{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *CheckInRepository) ExistsFor(ctx context.Context, registrationID, sessionID uint) (bool, error) {
	exists, err := r.dao.ExistsFor(ctx, registrationID, sessionID)
	if err != nil {
		return false, fmt.Errorf("r.dao.ExistsFor -> %w", err)
	}

	return exists, nil
}

func (r *CheckInRepository) FindBySessionID(ctx context.Context, sessionID uint) ([]domain.CheckIn, error) {
	found, err := r.dao.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindBySessionID -> %w", err)
	}

	checkIns := make([]domain.CheckIn, len(found))
	for i, c := range found {
		checkIns[i] = r.daoToDomain(c)
	}

	return checkIns, nil
}

func (r *CheckInRepository) daoToDomain(c dao.CheckIn) domain.CheckIn {
	return domain.CheckIn{
		ID:             c.ID,
		RegistrationID: c.RegistrationID,
		SessionID:      c.SessionID,
		Method:         c.Method,
		CheckedInAt:    c.CheckedInAt,
	}
}
