package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/symposio/conference-api/internal/config"
	"github.com/symposio/conference-api/internal/domain"
	"github.com/symposio/conference-api/internal/repository"
)

var (
	ErrAlreadyCheckedIn         = repository.ErrAlreadyCheckedIn
	ErrNotConfirmed             = errors.New("registration is not confirmed")
	ErrSessionNotActive         = errors.New("session is outside its live time window")
	ErrRegistrationNotForSession = errors.New("registration does not belong to this session")
)

type CheckInRepository interface {
	Create(ctx context.Context, checkIn domain.CheckIn) (domain.CheckIn, error)
	ExistsFor(ctx context.Context, registrationID, sessionID uint) (bool, error)
	FindBySessionID(ctx context.Context, sessionID uint) ([]domain.CheckIn, error)
}

type CheckInInput struct {
	RegistrationID uint
	QRCode         string
	SessionID      uint
	Method         string
}

type BulkCheckInFailure struct {
	RegistrationID uint
	Err            error
}

type BulkCheckInResult struct {
	SuccessCount int
	FailCount    int
	Failures     []BulkCheckInFailure
}

type CheckInService struct {
	repo             CheckInRepository
	registrationRepo RegistrationRepository
	sessionRepo      SessionRepository
	conf             *config.CheckInConfig
	now              func() time.Time
}

func NewCheckInService(
	repo CheckInRepository,
	registrationRepo RegistrationRepository,
	sessionRepo SessionRepository,
	conf *config.CheckInConfig,
) *CheckInService {
	return &CheckInService{
		repo:             repo,
		registrationRepo: registrationRepo,
		sessionRepo:      sessionRepo,
		conf:             conf,
		now:              time.Now,
	}
}

// CheckIn records attendance for one registration at one session. The
// registration is resolved by id or by scanned QR payload, must reference
// the target session and be confirmed; a repeated check-in surfaces as
// ErrAlreadyCheckedIn off the storage uniqueness guard. When configured,
// the session's live time window is enforced here and not left to the UI.
func (s *CheckInService) CheckIn(ctx context.Context, input CheckInInput) (domain.CheckIn, error) {
	registration, err := s.resolveRegistration(ctx, input)
	if err != nil {
		return domain.CheckIn{}, err
	}

	if registration.SessionID != input.SessionID {
		return domain.CheckIn{}, ErrRegistrationNotForSession
	}

	if !registration.CheckInEligible() {
		return domain.CheckIn{}, ErrNotConfirmed
	}

	if s.conf.EnforceWindow {
		session, err := s.sessionRepo.FindByID(ctx, input.SessionID)
		if err != nil {
			if errors.Is(err, repository.ErrSessionNotFound) {
				return domain.CheckIn{}, ErrSessionNotFound
			}

			return domain.CheckIn{}, fmt.Errorf("s.sessionRepo.FindByID -> %w", err)
		}

		if !session.IsActiveAt(s.now(), s.conf.WindowGrace) {
			return domain.CheckIn{}, ErrSessionNotActive
		}
	}

	method := input.Method
	if method == "" {
		method = domain.CheckInMethodManual
	}

	created, err := s.repo.Create(ctx, domain.CheckIn{
		RegistrationID: registration.ID,
		SessionID:      input.SessionID,
		Method:         method,
		CheckedInAt:    s.now(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyCheckedIn) {
			return domain.CheckIn{}, ErrAlreadyCheckedIn
		}

		return domain.CheckIn{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// BulkCheckIn applies CheckIn per registration id independently. One bad id
// never aborts the batch; the result tallies successes and carries enough
// detail to tell which ids failed and why.
func (s *CheckInService) BulkCheckIn(ctx context.Context, registrationIDs []uint, sessionID uint, method string) (BulkCheckInResult, error) {
	var result BulkCheckInResult

	for _, id := range registrationIDs {
		_, err := s.CheckIn(ctx, CheckInInput{
			RegistrationID: id,
			SessionID:      sessionID,
			Method:         method,
		})
		if err != nil {
			result.FailCount++
			result.Failures = append(result.Failures, BulkCheckInFailure{
				RegistrationID: id,
				Err:            err,
			})
			continue
		}

		result.SuccessCount++
	}

	return result, nil
}

func (s *CheckInService) GetBySession(ctx context.Context, sessionID uint) ([]domain.CheckIn, error) {
	checkIns, err := s.repo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindBySessionID -> %w", err)
	}

	return checkIns, nil
}

func (s *CheckInService) resolveRegistration(ctx context.Context, input CheckInInput) (domain.Registration, error) {
	var (
		registration domain.Registration
		err          error
	)

	if input.QRCode != "" {
		registration, err = s.registrationRepo.FindByQRCode(ctx, input.QRCode)
	} else {
		registration, err = s.registrationRepo.FindByID(ctx, input.RegistrationID)
	}
	if err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			return domain.Registration{}, ErrRegistrationNotFound
		}

		return domain.Registration{}, fmt.Errorf("s.registrationRepo resolve -> %w", err)
	}

	return registration, nil
}
