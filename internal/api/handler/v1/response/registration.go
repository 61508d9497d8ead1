package response

type BatchRegistration struct {
	Success           bool   `json:"success"`
	EmailSent         bool   `json:"emailSent"`
	ConfirmationToken string `json:"confirmationToken,omitempty"`
	RegistrationIDs   []uint `json:"registrationIds"`
}

type ConfirmRegistration struct {
	Confirmed int    `json:"confirmed"`
	Status    string `json:"status"`
}
