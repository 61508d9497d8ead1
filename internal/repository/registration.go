package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/symposio/conference-api/internal/domain"
	"github.com/symposio/conference-api/internal/repository/dao"
)

var (
	ErrRegistrationNotFound  = dao.ErrRegistrationNotFound
	ErrDuplicateRegistration = dao.ErrDuplicateRegistration
	ErrSessionFull           = dao.ErrSessionFull
	ErrTokenExpired          = dao.ErrTokenExpired
)

type RegistrationDAO interface {
	InsertBatch(ctx context.Context, registrations []dao.Registration) ([]dao.Registration, error)
	CountBySession(ctx context.Context, conferenceID uint) ([]dao.SessionRegistrationCount, error)
	FindByID(ctx context.Context, id uint) (dao.Registration, error)
	FindByQRCode(ctx context.Context, qrCode string) (dao.Registration, error)
	ConfirmByToken(ctx context.Context, token string, now time.Time) ([]dao.Registration, error)
	FindBySessionID(ctx context.Context, sessionID uint) ([]dao.Registration, error)
	FindByConferenceID(ctx context.Context, conferenceID uint) ([]dao.Registration, error)
	Delete(ctx context.Context, id uint) error
}

type RegistrationRepository struct {
	dao RegistrationDAO
}

func NewRegistrationRepository(dao RegistrationDAO) *RegistrationRepository {
	return &RegistrationRepository{
		dao: dao,
	}
}

func (r *RegistrationRepository) CreateBatch(ctx context.Context, registrations []domain.Registration) ([]domain.Registration, error) {
	daoRegistrations := make([]dao.Registration, len(registrations))
	for i, reg := range registrations {
		daoRegistrations[i] = r.domainToDao(reg)
	}

	created, err := r.dao.InsertBatch(ctx, daoRegistrations)
	if err != nil {
		return nil, fmt.Errorf("r.dao.InsertBatch -> %w", err)
	}

	return r.daosToDomain(created), nil
}

func (r *RegistrationRepository) CountBySession(ctx context.Context, conferenceID uint) (map[uint]int, error) {
	counts, err := r.dao.CountBySession(ctx, conferenceID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountBySession -> %w", err)
	}

	registered := make(map[uint]int, len(counts))
	for _, c := range counts {
		registered[c.SessionID] = c.Registered
	}

	return registered, nil
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id uint) (domain.Registration, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *RegistrationRepository) FindByQRCode(ctx context.Context, qrCode string) (domain.Registration, error) {
	found, err := r.dao.FindByQRCode(ctx, qrCode)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.FindByQRCode -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *RegistrationRepository) ConfirmByToken(ctx context.Context, token string, now time.Time) ([]domain.Registration, error) {
	confirmed, err := r.dao.ConfirmByToken(ctx, token, now)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ConfirmByToken -> %w", err)
	}

	return r.daosToDomain(confirmed), nil
}

func (r *RegistrationRepository) FindBySessionID(ctx context.Context, sessionID uint) ([]domain.Registration, error) {
	found, err := r.dao.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindBySessionID -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *RegistrationRepository) FindByConferenceID(ctx context.Context, conferenceID uint) ([]domain.Registration, error) {
	found, err := r.dao.FindByConferenceID(ctx, conferenceID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByConferenceID -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *RegistrationRepository) daosToDomain(registrations []dao.Registration) []domain.Registration {
	result := make([]domain.Registration, len(registrations))
	for i, reg := range registrations {
		result[i] = r.daoToDomain(reg)
	}

	return result
}

func (r *RegistrationRepository) domainToDao(reg domain.Registration) dao.Registration {
	return dao.Registration{
		ID:                      reg.ID,
		ConferenceID:            reg.ConferenceID,
		SessionID:               reg.SessionID,
		Email:                   reg.Email,
		FullName:                reg.FullName,
		Phone:                   reg.Phone,
		Organization:            reg.Organization,
		Position:                reg.Position,
		Role:                    reg.Role,
		CMECertificateRequested: reg.CMECertificateRequested,
		Status:                  reg.Status,
		ConfirmationToken:       reg.ConfirmationToken,
		TokenExpiresAt:          reg.TokenExpiresAt,
		QRCode:                  reg.QRCode,
		RemindersSent:           reg.RemindersSent,
		CreatedAt:               reg.CreatedAt,
		UpdatedAt:               reg.UpdatedAt,
	}
}

func (r *RegistrationRepository) daoToDomain(reg dao.Registration) domain.Registration {
	return domain.Registration{
		ID:                      reg.ID,
		ConferenceID:            reg.ConferenceID,
		SessionID:               reg.SessionID,
		Email:                   reg.Email,
		FullName:                reg.FullName,
		Phone:                   reg.Phone,
		Organization:            reg.Organization,
		Position:                reg.Position,
		Role:                    reg.Role,
		CMECertificateRequested: reg.CMECertificateRequested,
		Status:                  reg.Status,
		ConfirmationToken:       reg.ConfirmationToken,
		TokenExpiresAt:          reg.TokenExpiresAt,
		QRCode:                  reg.QRCode,
		RemindersSent:           reg.RemindersSent,
		CreatedAt:               reg.CreatedAt,
		UpdatedAt:               reg.UpdatedAt,
	}
}
