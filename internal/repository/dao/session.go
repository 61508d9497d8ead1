package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found")

type Session struct {
	ID uint `gorm:"primaryKey"`

	ConferenceID uint   `gorm:"not null;index"`
	Title        string `gorm:"not null"`
	Day          int    `gorm:"not null"`
	StartsAt     time.Time `gorm:"not null"`
	EndsAt       time.Time `gorm:"not null"`
	Room         string
	Track        string
	Category     string
	Capacity     *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

type SessionDAO struct {
	db *gorm.DB
}

func NewSessionDAO(db *gorm.DB) *SessionDAO {
	return &SessionDAO{
		db: db,
	}
}

func (d *SessionDAO) Insert(ctx context.Context, session Session) (Session, error) {
	result := d.db.WithContext(ctx).Create(&session)
	if result.Error != nil {
		return Session{}, result.Error
	}

	return session, nil
}

func (d *SessionDAO) Update(ctx context.Context, session Session) (Session, error) {
	result := d.db.WithContext(ctx).Model(&Session{ID: session.ID}).Updates(map[string]interface{}{
		"title":     session.Title,
		"day":       session.Day,
		"starts_at": session.StartsAt,
		"ends_at":   session.EndsAt,
		"room":      session.Room,
		"track":     session.Track,
		"category":  session.Category,
		"capacity":  session.Capacity,
	})
	if result.Error != nil {
		return Session{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Session{}, ErrSessionNotFound
	}

	return d.FindByID(ctx, session.ID)
}

// Delete removes the session row only. Registrations referencing it are kept
// on purpose; nothing cascades.
func (d *SessionDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Session{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func (d *SessionDAO) FindByID(ctx context.Context, id uint) (Session, error) {
	var session Session

	result := d.db.WithContext(ctx).First(&session, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Session{}, ErrSessionNotFound
		}

		return Session{}, result.Error
	}

	return session, nil
}

func (d *SessionDAO) FindByIDs(ctx context.Context, ids []uint) ([]Session, error) {
	var sessions []Session

	result := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&sessions)
	if result.Error != nil {
		return nil, result.Error
	}

	return sessions, nil
}

func (d *SessionDAO) FindByConferenceID(ctx context.Context, conferenceID uint) ([]Session, error) {
	var sessions []Session

	result := d.db.WithContext(ctx).
		Where("conference_id = ?", conferenceID).
		Order("day, starts_at").
		Find(&sessions)
	if result.Error != nil {
		return nil, result.Error
	}

	return sessions, nil
}
