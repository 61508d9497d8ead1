package domain

import "time"

const (
	CheckInMethodQR     = "qr"
	CheckInMethodManual = "manual"
)

// CheckIn records that a registered attendee was present at a session.
// The existence of a CheckIn row is the source of truth for "checked in";
// Registration.Status is a denormalized mirror updated in the same
// transaction.
type CheckIn struct {
	ID             uint      `json:"id"`
	RegistrationID uint      `json:"registration_id"`
	SessionID      uint      `json:"session_id"`
	Method         string    `json:"method"`
	CheckedInAt    time.Time `json:"checked_in_at"`
}
