package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symposio/conference-api/internal/config"
	"github.com/symposio/conference-api/internal/domain"
)

func newTestCheckInService(
	checkIns *fakeCheckInRepo,
	registrations *fakeRegistrationRepo,
	conf *config.CheckInConfig,
) *CheckInService {
	if conf == nil {
		conf = &config.CheckInConfig{}
	}

	svc := NewCheckInService(checkIns, registrations, newFakeSessionRepo(testSessions()...), conf)
	svc.now = func() time.Time { return testNow }

	return svc
}

func confirmedRegistration(id, sessionID uint) domain.Registration {
	return domain.Registration{
		ID:        id,
		SessionID: sessionID,
		Status:    domain.RegistrationStatusConfirmed,
		QRCode:    "qr-code-1",
	}
}

func TestCheckInService_CheckIn(t *testing.T) {
	t.Run("records a check-in by registration id", func(t *testing.T) {
		checkIns := newFakeCheckInRepo()
		svc := newTestCheckInService(checkIns, newFakeRegistrationRepo(confirmedRegistration(1, 10)), nil)

		created, err := svc.CheckIn(context.Background(), CheckInInput{
			RegistrationID: 1,
			SessionID:      10,
		})
		require.NoError(t, err)
		assert.Equal(t, uint(1), created.RegistrationID)
		assert.Equal(t, domain.CheckInMethodManual, created.Method, "method defaults to manual")
		assert.Equal(t, testNow, created.CheckedInAt)
	})

	t.Run("resolves the registration from a scanned QR payload", func(t *testing.T) {
		svc := newTestCheckInService(newFakeCheckInRepo(), newFakeRegistrationRepo(confirmedRegistration(1, 10)), nil)

		created, err := svc.CheckIn(context.Background(), CheckInInput{
			QRCode:    "qr-code-1",
			SessionID: 10,
			Method:    domain.CheckInMethodQR,
		})
		require.NoError(t, err)
		assert.Equal(t, uint(1), created.RegistrationID)
		assert.Equal(t, domain.CheckInMethodQR, created.Method)
	})

	t.Run("unknown registration", func(t *testing.T) {
		svc := newTestCheckInService(newFakeCheckInRepo(), newFakeRegistrationRepo(), nil)

		_, err := svc.CheckIn(context.Background(), CheckInInput{RegistrationID: 404, SessionID: 10})
		assert.ErrorIs(t, err, ErrRegistrationNotFound)
	})

	t.Run("registration for a different session", func(t *testing.T) {
		svc := newTestCheckInService(newFakeCheckInRepo(), newFakeRegistrationRepo(confirmedRegistration(1, 11)), nil)

		_, err := svc.CheckIn(context.Background(), CheckInInput{RegistrationID: 1, SessionID: 10})
		assert.ErrorIs(t, err, ErrRegistrationNotForSession)
	})

	t.Run("pending registration is rejected", func(t *testing.T) {
		pending := confirmedRegistration(1, 10)
		pending.Status = domain.RegistrationStatusPending
		svc := newTestCheckInService(newFakeCheckInRepo(), newFakeRegistrationRepo(pending), nil)

		_, err := svc.CheckIn(context.Background(), CheckInInput{RegistrationID: 1, SessionID: 10})
		assert.ErrorIs(t, err, ErrNotConfirmed)
	})

	t.Run("second check-in for the same session is rejected", func(t *testing.T) {
		checkIns := newFakeCheckInRepo()
		svc := newTestCheckInService(checkIns, newFakeRegistrationRepo(confirmedRegistration(1, 10)), nil)

		input := CheckInInput{RegistrationID: 1, SessionID: 10}
		_, err := svc.CheckIn(context.Background(), input)
		require.NoError(t, err)

		_, err = svc.CheckIn(context.Background(), input)
		assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	})

	t.Run("window enforcement rejects a check-in before the session opens", func(t *testing.T) {
		// testNow is one hour before session 10 starts.
		svc := newTestCheckInService(newFakeCheckInRepo(), newFakeRegistrationRepo(confirmedRegistration(1, 10)), &config.CheckInConfig{
			EnforceWindow: true,
			WindowGrace:   15 * time.Minute,
		})

		_, err := svc.CheckIn(context.Background(), CheckInInput{RegistrationID: 1, SessionID: 10})
		assert.ErrorIs(t, err, ErrSessionNotActive)
	})

	t.Run("window grace admits an early scan", func(t *testing.T) {
		svc := newTestCheckInService(newFakeCheckInRepo(), newFakeRegistrationRepo(confirmedRegistration(1, 10)), &config.CheckInConfig{
			EnforceWindow: true,
			WindowGrace:   15 * time.Minute,
		})
		svc.now = func() time.Time { return testNow.Add(50 * time.Minute) }

		_, err := svc.CheckIn(context.Background(), CheckInInput{RegistrationID: 1, SessionID: 10})
		assert.NoError(t, err)
	})
}

func TestCheckInService_BulkCheckIn(t *testing.T) {
	t.Run("tallies successes and failures independently", func(t *testing.T) {
		pending := domain.Registration{ID: 3, SessionID: 10, Status: domain.RegistrationStatusPending}
		wrongSession := domain.Registration{ID: 4, SessionID: 11, Status: domain.RegistrationStatusConfirmed}
		registrations := newFakeRegistrationRepo(
			domain.Registration{ID: 1, SessionID: 10, Status: domain.RegistrationStatusConfirmed},
			domain.Registration{ID: 2, SessionID: 10, Status: domain.RegistrationStatusConfirmed},
			pending,
			wrongSession,
			domain.Registration{ID: 5, SessionID: 10, Status: domain.RegistrationStatusConfirmed},
		)

		svc := newTestCheckInService(newFakeCheckInRepo(), registrations, nil)

		result, err := svc.BulkCheckIn(context.Background(), []uint{1, 2, 3, 4, 5}, 10, domain.CheckInMethodManual)
		require.NoError(t, err)

		assert.Equal(t, 3, result.SuccessCount)
		assert.Equal(t, 2, result.FailCount)
		require.Len(t, result.Failures, 2)
		assert.Equal(t, uint(3), result.Failures[0].RegistrationID)
		assert.ErrorIs(t, result.Failures[0].Err, ErrNotConfirmed)
		assert.Equal(t, uint(4), result.Failures[1].RegistrationID)
		assert.ErrorIs(t, result.Failures[1].Err, ErrRegistrationNotForSession)
	})

	t.Run("empty batch", func(t *testing.T) {
		svc := newTestCheckInService(newFakeCheckInRepo(), newFakeRegistrationRepo(), nil)

		result, err := svc.BulkCheckIn(context.Background(), nil, 10, domain.CheckInMethodManual)
		require.NoError(t, err)
		assert.Zero(t, result.SuccessCount)
		assert.Zero(t, result.FailCount)
	})
}
