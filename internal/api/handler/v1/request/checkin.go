package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
)

var errMissingRegistrationRef = errors.New("either registrationId or qrData is required")

type CheckInRequest struct {
	RegistrationID uint   `json:"registrationId"`
	QRData         string `json:"qrData"`
	SessionID      uint   `json:"sessionId"`
	Method         string `json:"method"`
}

func (req *CheckInRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.SessionID, validation.Required),
		validation.Field(&req.Method, validation.In("qr", "manual")),
	)
	if err != nil {
		return err
	}

	if req.RegistrationID == 0 && req.QRData == "" {
		return errMissingRegistrationRef
	}

	return nil
}

type BulkCheckInRequest struct {
	RegistrationIDs []uint `json:"registrationIds"`
	SessionID       uint   `json:"sessionId"`
	Method          string `json:"method"`
}

func (req *BulkCheckInRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RegistrationIDs, validation.Required, validation.Length(1, 0)),
		validation.Field(&req.SessionID, validation.Required),
		validation.Field(&req.Method, validation.In("qr", "manual")),
	)
}
