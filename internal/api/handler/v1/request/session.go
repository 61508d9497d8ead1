package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

var errEndsBeforeStarts = errors.New("endsAt must be after startsAt")

type CreateSessionRequest struct {
	ConferenceID uint      `json:"conferenceId"`
	Title        string    `json:"title"`
	Day          int       `json:"day"`
	StartsAt     time.Time `json:"startsAt"`
	EndsAt       time.Time `json:"endsAt"`
	Room         string    `json:"room"`
	Track        string    `json:"track"`
	Category     string    `json:"category"`
	Capacity     *int      `json:"capacity"`
}

func (req *CreateSessionRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.ConferenceID, validation.Required),
		validation.Field(&req.Title, validation.Required, validation.Length(2, 300)),
		validation.Field(&req.Day, validation.Required, validation.Min(1)),
		validation.Field(&req.StartsAt, validation.Required),
		validation.Field(&req.EndsAt, validation.Required),
	)
	if err != nil {
		return err
	}

	if !req.StartsAt.Before(req.EndsAt) {
		return errEndsBeforeStarts
	}

	if req.Capacity != nil && *req.Capacity < 1 {
		return errors.New("capacity must be at least 1 when set")
	}

	return nil
}

type UpdateSessionRequest struct {
	Title    string    `json:"title"`
	Day      int       `json:"day"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
	Room     string    `json:"room"`
	Track    string    `json:"track"`
	Category string    `json:"category"`
	Capacity *int      `json:"capacity"`
}

func (req *UpdateSessionRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 300)),
		validation.Field(&req.Day, validation.Required, validation.Min(1)),
		validation.Field(&req.StartsAt, validation.Required),
		validation.Field(&req.EndsAt, validation.Required),
	)
	if err != nil {
		return err
	}

	if !req.StartsAt.Before(req.EndsAt) {
		return errEndsBeforeStarts
	}

	if req.Capacity != nil && *req.Capacity < 1 {
		return errors.New("capacity must be at least 1 when set")
	}

	return nil
}
