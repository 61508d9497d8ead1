package response

type BulkCheckInFailure struct {
	RegistrationID uint   `json:"registrationId"`
	Code           string `json:"code"`
}

type BulkCheckIn struct {
	SuccessCount int                  `json:"successCount"`
	FailCount    int                  `json:"failCount"`
	Failures     []BulkCheckInFailure `json:"failures"`
}
