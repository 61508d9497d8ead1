package domain

import "time"

const (
	RegistrationStatusPending   = "pending"
	RegistrationStatusConfirmed = "confirmed"
	RegistrationStatusCancelled = "cancelled"
	RegistrationStatusCheckedIn = "checked_in"
)

const (
	RoleParticipant = "participant"
	RoleSpeaker     = "speaker"
	RoleModerator   = "moderator"
)

// Registration is one registrant's enrollment in one session. A registrant
// selecting N sessions produces N rows sharing the contact fields and the
// confirmation token.
type Registration struct {
	ID                      uint       `json:"id"`
	ConferenceID            uint       `json:"conference_id"`
	SessionID               uint       `json:"session_id"`
	FullName                string     `json:"full_name"`
	Email                   string     `json:"email"`
	Phone                   string     `json:"phone"`
	Organization            string     `json:"organization"`
	Position                string     `json:"position"`
	Role                    string     `json:"role"`
	CMECertificateRequested bool       `json:"cme_certificate_requested"`
	Status                  string     `json:"status"`
	ConfirmationToken       string     `json:"-"`
	TokenExpiresAt          *time.Time `json:"-"`
	QRCode                  string     `json:"qr_code"`
	RemindersSent           int        `json:"reminders_sent"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

// CheckInEligible reports whether the registration may be checked in at all.
// Pending and cancelled registrations are not; an already checked-in one is
// caught separately by the check-in uniqueness rule.
func (r Registration) CheckInEligible() bool {
	return r.Status == RegistrationStatusConfirmed || r.Status == RegistrationStatusCheckedIn
}
