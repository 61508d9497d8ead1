package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symposio/conference-api/internal/config"
	"github.com/symposio/conference-api/internal/domain"
	"github.com/symposio/conference-api/internal/repository"
)

var testNow = time.Date(2026, time.September, 14, 8, 0, 0, 0, time.UTC)

func testConference() domain.Conference {
	return domain.Conference{ID: 1, Slug: "goconf-2026", Name: "GoConf 2026"}
}

func testSessions() []domain.Session {
	capacity := 30
	return []domain.Session{
		{
			ID:           10,
			ConferenceID: 1,
			Title:        "Morning Keynote",
			Day:          1,
			StartsAt:     testNow.Add(1 * time.Hour),
			EndsAt:       testNow.Add(2 * time.Hour),
			Capacity:     &capacity,
		},
		{
			ID:           11,
			ConferenceID: 1,
			Title:        "Concurrency Workshop",
			Day:          1,
			StartsAt:     testNow.Add(2 * time.Hour),
			EndsAt:       testNow.Add(3 * time.Hour),
			Capacity:     &capacity,
		},
		{
			ID:           12,
			ConferenceID: 1,
			Title:        "Parallel Track Talk",
			Day:          1,
			StartsAt:     testNow.Add(90 * time.Minute),
			EndsAt:       testNow.Add(150 * time.Minute),
		},
	}
}

func newTestRegistrationService(
	repo *fakeRegistrationRepo,
	mail MailQueue,
	conf *config.RegistrationConfig,
) *RegistrationService {
	if conf == nil {
		conf = &config.RegistrationConfig{
			RequireConfirmation: true,
			TokenTTL:            48 * time.Hour,
		}
	}

	svc := NewRegistrationService(
		repo,
		newFakeSessionRepo(testSessions()...),
		newFakeConferenceRepo(testConference()),
		mail,
		conf,
	)
	svc.now = func() time.Time { return testNow }

	return svc
}

func testInput(sessionIDs ...uint) BatchRegistrationInput {
	return BatchRegistrationInput{
		FullName:       "Dana Okafor",
		Email:          "dana@example.com",
		Role:           domain.RoleParticipant,
		SessionIDs:     sessionIDs,
		ConferenceSlug: "goconf-2026",
	}
}

func TestRegistrationService_RegisterBatch(t *testing.T) {
	t.Run("creates one registration per session sharing token and contact", func(t *testing.T) {
		repo := newFakeRegistrationRepo()
		mail := &fakeMailQueue{}
		svc := newTestRegistrationService(repo, mail, nil)

		result, err := svc.RegisterBatch(context.Background(), testInput(10, 11))
		require.NoError(t, err)

		require.Len(t, result.Registrations, 2)
		assert.NotEmpty(t, result.ConfirmationToken)
		for _, reg := range result.Registrations {
			assert.Equal(t, "dana@example.com", reg.Email)
			assert.Equal(t, domain.RegistrationStatusPending, reg.Status)
			assert.Equal(t, result.ConfirmationToken, reg.ConfirmationToken)
			assert.NotEmpty(t, reg.QRCode)
		}
		assert.NotEqual(t,
			result.Registrations[0].QRCode,
			result.Registrations[1].QRCode,
			"each registration gets its own QR code")
	})

	t.Run("skips confirmation when disabled", func(t *testing.T) {
		repo := newFakeRegistrationRepo()
		svc := newTestRegistrationService(repo, &fakeMailQueue{}, &config.RegistrationConfig{
			RequireConfirmation: false,
			TokenTTL:            48 * time.Hour,
		})

		result, err := svc.RegisterBatch(context.Background(), testInput(10))
		require.NoError(t, err)
		assert.Equal(t, domain.RegistrationStatusConfirmed, result.Registrations[0].Status)
	})

	t.Run("rejects overlapping selection before touching storage", func(t *testing.T) {
		repo := newFakeRegistrationRepo()
		svc := newTestRegistrationService(repo, &fakeMailQueue{}, nil)

		_, err := svc.RegisterBatch(context.Background(), testInput(10, 12))
		require.ErrorIs(t, err, ErrScheduleConflict)
		assert.Empty(t, repo.registrations, "nothing persisted")
	})

	t.Run("back to back sessions are accepted", func(t *testing.T) {
		repo := newFakeRegistrationRepo()
		svc := newTestRegistrationService(repo, &fakeMailQueue{}, nil)

		_, err := svc.RegisterBatch(context.Background(), testInput(10, 11))
		assert.NoError(t, err)
	})

	t.Run("unknown conference", func(t *testing.T) {
		svc := newTestRegistrationService(newFakeRegistrationRepo(), &fakeMailQueue{}, nil)

		input := testInput(10)
		input.ConferenceSlug = "no-such-conf"
		_, err := svc.RegisterBatch(context.Background(), input)
		assert.ErrorIs(t, err, ErrConferenceNotFound)
	})

	t.Run("unknown session id", func(t *testing.T) {
		svc := newTestRegistrationService(newFakeRegistrationRepo(), &fakeMailQueue{}, nil)

		_, err := svc.RegisterBatch(context.Background(), testInput(10, 999))
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("session from another conference", func(t *testing.T) {
		repo := newFakeRegistrationRepo()
		svc := newTestRegistrationService(repo, &fakeMailQueue{}, nil)
		svc.sessionRepo.(*fakeSessionRepo).sessions[50] = domain.Session{
			ID:           50,
			ConferenceID: 99,
			StartsAt:     testNow.Add(5 * time.Hour),
			EndsAt:       testNow.Add(6 * time.Hour),
		}

		_, err := svc.RegisterBatch(context.Background(), testInput(10, 50))
		assert.ErrorIs(t, err, ErrSessionNotInConference)
	})

	t.Run("duplicate session ids collapse to one registration", func(t *testing.T) {
		repo := newFakeRegistrationRepo()
		svc := newTestRegistrationService(repo, &fakeMailQueue{}, nil)

		result, err := svc.RegisterBatch(context.Background(), testInput(10, 10, 10))
		require.NoError(t, err)
		assert.Len(t, result.Registrations, 1)
	})

	t.Run("full session surfaces as ErrSessionFull, nothing persisted", func(t *testing.T) {
		repo := newFakeRegistrationRepo()
		repo.createErr = repository.ErrSessionFull
		svc := newTestRegistrationService(repo, &fakeMailQueue{}, nil)

		_, err := svc.RegisterBatch(context.Background(), testInput(10, 11))
		assert.ErrorIs(t, err, ErrSessionFull)
		assert.Empty(t, repo.registrations)
	})

	t.Run("duplicate email per session surfaces as ErrDuplicateRegistration", func(t *testing.T) {
		repo := newFakeRegistrationRepo()
		repo.createErr = repository.ErrDuplicateRegistration
		svc := newTestRegistrationService(repo, &fakeMailQueue{}, nil)

		_, err := svc.RegisterBatch(context.Background(), testInput(10))
		assert.ErrorIs(t, err, ErrDuplicateRegistration)
	})

	t.Run("confirmation mail is enqueued after commit", func(t *testing.T) {
		mail := &fakeMailQueue{}
		svc := newTestRegistrationService(newFakeRegistrationRepo(), mail, nil)

		result, err := svc.RegisterBatch(context.Background(), testInput(10, 11))
		require.NoError(t, err)
		assert.True(t, result.EmailSent)

		require.Len(t, mail.jobs, 1)
		job := mail.jobs[0]
		assert.Equal(t, "dana@example.com", job.RecipientEmail)
		assert.Equal(t, result.ConfirmationToken, job.Token)
		assert.Len(t, job.RegistrationIDs, 2)
	})

	t.Run("failed enqueue is soft, registrations stand", func(t *testing.T) {
		repo := newFakeRegistrationRepo()
		mail := &fakeMailQueue{err: errors.New("redis down")}
		svc := newTestRegistrationService(repo, mail, nil)

		result, err := svc.RegisterBatch(context.Background(), testInput(10))
		require.NoError(t, err)
		assert.False(t, result.EmailSent)
		assert.Len(t, repo.registrations, 1)
	})
}

func TestRegistrationService_Confirm(t *testing.T) {
	expiry := testNow.Add(time.Hour)
	pending := domain.Registration{
		ID:                1,
		SessionID:         10,
		Status:            domain.RegistrationStatusPending,
		ConfirmationToken: "token-1",
		TokenExpiresAt:    &expiry,
	}

	t.Run("flips pending registrations to confirmed", func(t *testing.T) {
		svc := newTestRegistrationService(newFakeRegistrationRepo(pending), &fakeMailQueue{}, nil)

		confirmed, err := svc.Confirm(context.Background(), "token-1")
		require.NoError(t, err)
		require.Len(t, confirmed, 1)
		assert.Equal(t, domain.RegistrationStatusConfirmed, confirmed[0].Status)
	})

	t.Run("unknown token", func(t *testing.T) {
		svc := newTestRegistrationService(newFakeRegistrationRepo(pending), &fakeMailQueue{}, nil)

		_, err := svc.Confirm(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrRegistrationNotFound)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := pending
		past := testNow.Add(-time.Hour)
		expired.TokenExpiresAt = &past

		svc := newTestRegistrationService(newFakeRegistrationRepo(expired), &fakeMailQueue{}, nil)

		_, err := svc.Confirm(context.Background(), "token-1")
		assert.ErrorIs(t, err, ErrTokenExpired)
	})
}
