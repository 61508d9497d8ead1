package response

import "github.com/symposio/conference-api/internal/domain"

type Login struct {
	Token string       `json:"token"`
	Admin domain.Admin `json:"admin"`
}
