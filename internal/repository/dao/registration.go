package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRegistrationNotFound  = errors.New("registration not found")
	ErrDuplicateRegistration = errors.New("email already registered for this session")
	ErrSessionFull           = errors.New("session is full")
	ErrTokenExpired          = errors.New("confirmation token expired")
)

const registrationStatusCancelled = "cancelled"

type Registration struct {
	ID uint `gorm:"primaryKey"`

	ConferenceID uint   `gorm:"not null;index"`
	SessionID    uint   `gorm:"not null;uniqueIndex:idx_registrations_session_email"`
	Email        string `gorm:"not null;uniqueIndex:idx_registrations_session_email"`

	FullName                string `gorm:"not null"`
	Phone                   string `gorm:"not null"`
	Organization            string
	Position                string
	Role                    string `gorm:"not null"`
	CMECertificateRequested bool   `gorm:"default:false"`

	Status            string `gorm:"not null;default:pending"`
	ConfirmationToken string `gorm:"index"`
	TokenExpiresAt    *time.Time
	QRCode            string `gorm:"uniqueIndex;not null"`
	RemindersSent     int    `gorm:"default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type RegistrationDAO struct {
	db *gorm.DB
}

func NewRegistrationDAO(db *gorm.DB) *RegistrationDAO {
	return &RegistrationDAO{
		db: db,
	}
}

// InsertBatch writes one registration row per selected session inside a
// single transaction. The selected session rows are locked first so the
// capacity count and the inserts are atomic with respect to concurrent
// submissions for the same sessions. Any rule failure rolls the whole batch
// back.
func (d *RegistrationDAO) InsertBatch(ctx context.Context, registrations []Registration) ([]Registration, error) {
	sessionIDs := make([]uint, len(registrations))
	for i, reg := range registrations {
		sessionIDs[i] = reg.SessionID
	}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sessions []Session
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", sessionIDs).
			Find(&sessions).Error; err != nil {
			return err
		}

		byID := make(map[uint]Session, len(sessions))
		for _, s := range sessions {
			byID[s.ID] = s
		}

		for _, reg := range registrations {
			session, ok := byID[reg.SessionID]
			if !ok {
				return fmt.Errorf("session %d: %w", reg.SessionID, ErrSessionNotFound)
			}

			if session.Capacity != nil {
				var registered int64
				if err := tx.Model(&Registration{}).
					Where("session_id = ? AND status <> ?", session.ID, registrationStatusCancelled).
					Count(&registered).Error; err != nil {
					return err
				}
				if registered >= int64(*session.Capacity) {
					return fmt.Errorf("session %d: %w", session.ID, ErrSessionFull)
				}
			}

			var duplicates int64
			if err := tx.Model(&Registration{}).
				Where("session_id = ? AND lower(email) = lower(?)", session.ID, reg.Email).
				Count(&duplicates).Error; err != nil {
				return err
			}
			if duplicates > 0 {
				return fmt.Errorf("session %d: %w", session.ID, ErrDuplicateRegistration)
			}
		}

		if err := tx.Create(&registrations).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) &&
				pgErr.Code == pgerrcode.UniqueViolation &&
				pgErr.ConstraintName == "idx_registrations_session_email" {
				return ErrDuplicateRegistration
			}

			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return registrations, nil
}

type SessionRegistrationCount struct {
	SessionID  uint
	Registered int
}

// CountBySession returns the live non-cancelled registration count per
// session of a conference. Sessions without registrations are absent.
func (d *RegistrationDAO) CountBySession(ctx context.Context, conferenceID uint) ([]SessionRegistrationCount, error) {
	var counts []SessionRegistrationCount

	result := d.db.WithContext(ctx).Model(&Registration{}).
		Select("session_id, count(*) as registered").
		Where("conference_id = ? AND status <> ?", conferenceID, registrationStatusCancelled).
		Group("session_id").
		Scan(&counts)
	if result.Error != nil {
		return nil, result.Error
	}

	return counts, nil
}

func (d *RegistrationDAO) FindByID(ctx context.Context, id uint) (Registration, error) {
	var registration Registration

	result := d.db.WithContext(ctx).First(&registration, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Registration{}, ErrRegistrationNotFound
		}

		return Registration{}, result.Error
	}

	return registration, nil
}

func (d *RegistrationDAO) FindByQRCode(ctx context.Context, qrCode string) (Registration, error) {
	var registration Registration

	result := d.db.WithContext(ctx).First(&registration, "qr_code = ?", qrCode)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Registration{}, ErrRegistrationNotFound
		}

		return Registration{}, result.Error
	}

	return registration, nil
}

// ConfirmByToken flips every pending registration sharing the confirmation
// token to confirmed. Expiry is checked against the stored token deadline.
func (d *RegistrationDAO) ConfirmByToken(ctx context.Context, token string, now time.Time) ([]Registration, error) {
	var confirmed []Registration

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var registrations []Registration
		if err := tx.Where("confirmation_token = ?", token).Find(&registrations).Error; err != nil {
			return err
		}
		if len(registrations) == 0 {
			return ErrRegistrationNotFound
		}

		for _, reg := range registrations {
			if reg.TokenExpiresAt != nil && now.After(*reg.TokenExpiresAt) {
				return ErrTokenExpired
			}
		}

		if err := tx.Model(&Registration{}).
			Where("confirmation_token = ? AND status = ?", token, "pending").
			Update("status", "confirmed").Error; err != nil {
			return err
		}

		return tx.Where("confirmation_token = ?", token).Find(&confirmed).Error
	})
	if err != nil {
		return nil, err
	}

	return confirmed, nil
}

func (d *RegistrationDAO) FindBySessionID(ctx context.Context, sessionID uint) ([]Registration, error) {
	var registrations []Registration

	result := d.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at").
		Find(&registrations)
	if result.Error != nil {
		return nil, result.Error
	}

	return registrations, nil
}

func (d *RegistrationDAO) FindByConferenceID(ctx context.Context, conferenceID uint) ([]Registration, error) {
	var registrations []Registration

	result := d.db.WithContext(ctx).
		Where("conference_id = ?", conferenceID).
		Order("created_at").
		Find(&registrations)
	if result.Error != nil {
		return nil, result.Error
	}

	return registrations, nil
}

func (d *RegistrationDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Registration{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRegistrationNotFound
	}

	return nil
}
