package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var ErrAlreadyCheckedIn = errors.New("registration already checked in for this session")

type CheckIn struct {
	ID uint `gorm:"primaryKey"`

	RegistrationID uint   `gorm:"not null;uniqueIndex:idx_check_ins_registration_session"`
	SessionID      uint   `gorm:"not null;uniqueIndex:idx_check_ins_registration_session"`
	Method         string `gorm:"not null"`

	CheckedInAt time.Time `gorm:"not null"`
}

type CheckInDAO struct {
	db *gorm.DB
}

func NewCheckInDAO(db *gorm.DB) *CheckInDAO {
	return &CheckInDAO{
		db: db,
	}
}

// Insert writes the check-in row and flips the registration status in one
// transaction. The unique index on (registration_id, session_id) makes the
// second of two concurrent attempts fail deterministically instead of
// producing a duplicate row.
func (d *CheckInDAO) Insert(ctx context.Context, checkIn CheckIn) (CheckIn, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&checkIn).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) &&
				pgErr.Code == pgerrcode.UniqueViolation &&
				pgErr.ConstraintName == "idx_check_ins_registration_session" {
				return ErrAlreadyCheckedIn
			}

			return err
		}

		return tx.Model(&Registration{}).
			Where("id = ?", checkIn.RegistrationID).
			Update("status", "checked_in").Error
	})
	if err != nil {
		return CheckIn{}, err
	}

	return checkIn, nil
}

func (d *CheckInDAO) ExistsFor(ctx context.Context, registrationID, sessionID uint) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&CheckIn{}).
		Where("registration_id = ? AND session_id = ?", registrationID, sessionID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (d *CheckInDAO) FindBySessionID(ctx context.Context, sessionID uint) ([]CheckIn, error) {
	var checkIns []CheckIn

	result := d.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("checked_in_at").
		Find(&checkIns)
	if result.Error != nil {
		return nil, result.Error
	}

	return checkIns, nil
}
