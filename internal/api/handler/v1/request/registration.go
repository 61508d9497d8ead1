package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Accepts international numbers with optional +, separators and 7-20 digits.
const phonePattern = `^\+?[0-9][0-9\s\-().]{5,19}$`

var errInvalidPhone = errors.New("phone must be a valid phone number")

type BatchRegistrationRequest struct {
	FullName                string `json:"fullName"`
	Email                   string `json:"email"`
	Phone                   string `json:"phone"`
	Organization            string `json:"organization"`
	Position                string `json:"position"`
	Role                    string `json:"role"`
	CMECertificateRequested bool   `json:"cmeCertificateRequested"`
	SessionIDs              []uint `json:"sessionIds"`
	ConferenceSlug          string `json:"conferenceSlug"`
}

func (req *BatchRegistrationRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.FullName, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Phone, validation.Required),
		validation.Field(&req.Organization, validation.Length(0, 200)),
		validation.Field(&req.Position, validation.Length(0, 200)),
		validation.Field(&req.Role, validation.Required, validation.In("participant", "speaker", "moderator")),
		validation.Field(&req.SessionIDs, validation.Required, validation.Length(1, 0)),
		validation.Field(&req.ConferenceSlug, validation.Required),
	)
	if err != nil {
		return err
	}

	phoneExp := regexp2.MustCompile(phonePattern, regexp2.None)
	if ok, _ := phoneExp.MatchString(req.Phone); !ok {
		return errInvalidPhone
	}

	return nil
}

type ConfirmRegistrationRequest struct {
	Token string `json:"token"`
}

func (req *ConfirmRegistrationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Token, validation.Required, is.UUID),
	)
}
