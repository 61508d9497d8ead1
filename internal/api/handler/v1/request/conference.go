package request

import (
	"errors"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

var slugExp = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

type CreateConferenceRequest struct {
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Venue       string    `json:"venue"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	Active      bool      `json:"active"`
}

func (req *CreateConferenceRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Slug, validation.Required, validation.Match(slugExp)),
		validation.Field(&req.Name, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Venue, validation.Length(0, 300)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.StartsAt, validation.Required),
		validation.Field(&req.EndsAt, validation.Required),
	)
	if err != nil {
		return err
	}

	if !req.StartsAt.Before(req.EndsAt) {
		return errors.New("endsAt must be after startsAt")
	}

	return nil
}

type UpdateConferenceRequest struct {
	Name        string    `json:"name"`
	Venue       string    `json:"venue"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	Active      bool      `json:"active"`
}

func (req *UpdateConferenceRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Venue, validation.Length(0, 300)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.StartsAt, validation.Required),
		validation.Field(&req.EndsAt, validation.Required),
	)
	if err != nil {
		return err
	}

	if !req.StartsAt.Before(req.EndsAt) {
		return errors.New("endsAt must be after startsAt")
	}

	return nil
}
