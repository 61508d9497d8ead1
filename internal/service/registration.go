package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/symposio/conference-api/internal/config"
	"github.com/symposio/conference-api/internal/domain"
	"github.com/symposio/conference-api/internal/mailqueue"
	"github.com/symposio/conference-api/internal/repository"
)

var (
	ErrConferenceNotFound     = repository.ErrConferenceNotFound
	ErrSessionNotFound        = repository.ErrSessionNotFound
	ErrRegistrationNotFound   = repository.ErrRegistrationNotFound
	ErrDuplicateRegistration  = repository.ErrDuplicateRegistration
	ErrSessionFull            = repository.ErrSessionFull
	ErrTokenExpired           = repository.ErrTokenExpired
	ErrScheduleConflict       = errors.New("selected sessions overlap in time")
	ErrSessionNotInConference = errors.New("session does not belong to this conference")
)

type RegistrationRepository interface {
	CreateBatch(ctx context.Context, registrations []domain.Registration) ([]domain.Registration, error)
	CountBySession(ctx context.Context, conferenceID uint) (map[uint]int, error)
	FindByID(ctx context.Context, id uint) (domain.Registration, error)
	FindByQRCode(ctx context.Context, qrCode string) (domain.Registration, error)
	ConfirmByToken(ctx context.Context, token string, now time.Time) ([]domain.Registration, error)
	FindBySessionID(ctx context.Context, sessionID uint) ([]domain.Registration, error)
	FindByConferenceID(ctx context.Context, conferenceID uint) ([]domain.Registration, error)
	Delete(ctx context.Context, id uint) error
}

type MailQueue interface {
	Enqueue(ctx context.Context, job mailqueue.Job) error
}

type BatchRegistrationInput struct {
	FullName                string
	Email                   string
	Phone                   string
	Organization            string
	Position                string
	Role                    string
	CMECertificateRequested bool
	SessionIDs              []uint
	ConferenceSlug          string
}

type BatchRegistrationResult struct {
	Registrations     []domain.Registration
	ConfirmationToken string
	EmailSent         bool
}

type RegistrationService struct {
	repo           RegistrationRepository
	sessionRepo    SessionRepository
	conferenceRepo ConferenceRepository
	mail           MailQueue
	conf           *config.RegistrationConfig
	now            func() time.Time
}

func NewRegistrationService(
	repo RegistrationRepository,
	sessionRepo SessionRepository,
	conferenceRepo ConferenceRepository,
	mail MailQueue,
	conf *config.RegistrationConfig,
) *RegistrationService {
	return &RegistrationService{
		repo:           repo,
		sessionRepo:    sessionRepo,
		conferenceRepo: conferenceRepo,
		mail:           mail,
		conf:           conf,
		now:            time.Now,
	}
}

// RegisterBatch validates and persists one registration row per selected
// session, all-or-nothing. Rule order: conference/session resolution, time
// overlap across the whole selection, then capacity and duplicate checks
// inside the storage transaction so concurrent submissions cannot overbook.
// The confirmation email is enqueued only after the batch has committed;
// a failed enqueue is reported through EmailSent, never as an error.
func (s *RegistrationService) RegisterBatch(ctx context.Context, input BatchRegistrationInput) (BatchRegistrationResult, error) {
	conference, err := s.conferenceRepo.FindBySlug(ctx, input.ConferenceSlug)
	if err != nil {
		if errors.Is(err, repository.ErrConferenceNotFound) {
			return BatchRegistrationResult{}, ErrConferenceNotFound
		}

		return BatchRegistrationResult{}, fmt.Errorf("s.conferenceRepo.FindBySlug -> %w", err)
	}

	sessionIDs := dedupe(input.SessionIDs)

	sessions, err := s.sessionRepo.FindByIDs(ctx, sessionIDs)
	if err != nil {
		return BatchRegistrationResult{}, fmt.Errorf("s.sessionRepo.FindByIDs -> %w", err)
	}

	found := make(map[uint]struct{}, len(sessions))
	for _, session := range sessions {
		found[session.ID] = struct{}{}
		if session.ConferenceID != conference.ID {
			return BatchRegistrationResult{}, fmt.Errorf("session %d: %w", session.ID, ErrSessionNotInConference)
		}
	}
	for _, id := range sessionIDs {
		if _, ok := found[id]; !ok {
			return BatchRegistrationResult{}, fmt.Errorf("session %d: %w", id, ErrSessionNotFound)
		}
	}

	if conflict, ok := domain.FindConflict(sessions); ok {
		return BatchRegistrationResult{}, fmt.Errorf("%q overlaps %q: %w",
			conflict.First.Title, conflict.Second.Title, ErrScheduleConflict)
	}

	status := domain.RegistrationStatusConfirmed
	if s.conf.RequireConfirmation {
		status = domain.RegistrationStatusPending
	}

	token := uuid.NewString()
	expiresAt := s.now().Add(s.conf.TokenTTL)

	registrations := make([]domain.Registration, len(sessionIDs))
	for i, sessionID := range sessionIDs {
		registrations[i] = domain.Registration{
			ConferenceID:            conference.ID,
			SessionID:               sessionID,
			FullName:                input.FullName,
			Email:                   input.Email,
			Phone:                   input.Phone,
			Organization:            input.Organization,
			Position:                input.Position,
			Role:                    input.Role,
			CMECertificateRequested: input.CMECertificateRequested,
			Status:                  status,
			ConfirmationToken:       token,
			TokenExpiresAt:          &expiresAt,
			QRCode:                  uuid.NewString(),
		}
	}

	created, err := s.repo.CreateBatch(ctx, registrations)
	if err != nil {
		return BatchRegistrationResult{}, fmt.Errorf("s.repo.CreateBatch -> %w", err)
	}

	result := BatchRegistrationResult{
		Registrations:     created,
		ConfirmationToken: token,
	}

	if s.mail != nil {
		ids := make([]uint, len(created))
		for i, reg := range created {
			ids[i] = reg.ID
		}

		err = s.mail.Enqueue(ctx, mailqueue.Job{
			Type:            mailqueue.JobTypeConfirmation,
			RecipientEmail:  input.Email,
			RecipientName:   input.FullName,
			ConferenceSlug:  conference.Slug,
			Token:           token,
			RegistrationIDs: ids,
		})
		result.EmailSent = err == nil
	}

	return result, nil
}

// Confirm flips every pending registration behind the token to confirmed.
func (s *RegistrationService) Confirm(ctx context.Context, token string) ([]domain.Registration, error) {
	confirmed, err := s.repo.ConfirmByToken(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			return nil, ErrRegistrationNotFound
		}
		if errors.Is(err, repository.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}

		return nil, fmt.Errorf("s.repo.ConfirmByToken -> %w", err)
	}

	return confirmed, nil
}

func (s *RegistrationService) GetBySession(ctx context.Context, sessionID uint) ([]domain.Registration, error) {
	registrations, err := s.repo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindBySessionID -> %w", err)
	}

	return registrations, nil
}

func (s *RegistrationService) GetByConference(ctx context.Context, conferenceSlug string) ([]domain.Registration, error) {
	conference, err := s.conferenceRepo.FindBySlug(ctx, conferenceSlug)
	if err != nil {
		if errors.Is(err, repository.ErrConferenceNotFound) {
			return nil, ErrConferenceNotFound
		}

		return nil, fmt.Errorf("s.conferenceRepo.FindBySlug -> %w", err)
	}

	registrations, err := s.repo.FindByConferenceID(ctx, conference.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByConferenceID -> %w", err)
	}

	return registrations, nil
}

func (s *RegistrationService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			return ErrRegistrationNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	result := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}

	return result
}
