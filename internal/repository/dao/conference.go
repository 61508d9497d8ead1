package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrConferenceNotFound   = errors.New("conference not found")
	ErrConferenceSlugExists = errors.New("conference slug already exists")
)

type Conference struct {
	ID uint `gorm:"primaryKey"`

	Slug        string `gorm:"unique;not null"`
	Name        string `gorm:"not null"`
	Venue       string
	Description string
	StartsAt    time.Time `gorm:"not null"`
	EndsAt      time.Time `gorm:"not null"`
	Active      bool      `gorm:"default:false"`

	Sessions []Session `gorm:"foreignKey:ConferenceID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ConferenceDAO struct {
	db *gorm.DB
}

func NewConferenceDAO(db *gorm.DB) *ConferenceDAO {
	return &ConferenceDAO{
		db: db,
	}
}

func (d *ConferenceDAO) Insert(ctx context.Context, conference Conference) (Conference, error) {
	result := d.db.WithContext(ctx).Create(&conference)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return Conference{}, ErrConferenceSlugExists
		}

		return Conference{}, result.Error
	}

	return conference, nil
}

func (d *ConferenceDAO) Update(ctx context.Context, conference Conference) (Conference, error) {
	result := d.db.WithContext(ctx).Model(&Conference{ID: conference.ID}).Updates(map[string]interface{}{
		"name":        conference.Name,
		"venue":       conference.Venue,
		"description": conference.Description,
		"starts_at":   conference.StartsAt,
		"ends_at":     conference.EndsAt,
		"active":      conference.Active,
	})
	if result.Error != nil {
		return Conference{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Conference{}, ErrConferenceNotFound
	}

	return d.FindByID(ctx, conference.ID)
}

func (d *ConferenceDAO) FindByID(ctx context.Context, id uint) (Conference, error) {
	var conference Conference

	result := d.db.WithContext(ctx).First(&conference, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Conference{}, ErrConferenceNotFound
		}

		return Conference{}, result.Error
	}

	return conference, nil
}

func (d *ConferenceDAO) FindBySlug(ctx context.Context, slug string) (Conference, error) {
	var conference Conference

	result := d.db.WithContext(ctx).First(&conference, "slug = ?", slug)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Conference{}, ErrConferenceNotFound
		}

		return Conference{}, result.Error
	}

	return conference, nil
}

func (d *ConferenceDAO) FindAll(ctx context.Context) ([]Conference, error) {
	var conferences []Conference

	result := d.db.WithContext(ctx).Order("starts_at DESC").Find(&conferences)
	if result.Error != nil {
		return nil, result.Error
	}

	return conferences, nil
}
