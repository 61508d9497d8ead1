package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckInRequest_Validate(t *testing.T) {
	t.Run("by registration id", func(t *testing.T) {
		req := CheckInRequest{RegistrationID: 1, SessionID: 10, Method: "manual"}
		assert.NoError(t, req.Validate())
	})

	t.Run("by QR payload", func(t *testing.T) {
		req := CheckInRequest{QRData: "qr-code-1", SessionID: 10, Method: "qr"}
		assert.NoError(t, req.Validate())
	})

	t.Run("needs either id or QR payload", func(t *testing.T) {
		req := CheckInRequest{SessionID: 10}
		assert.ErrorIs(t, req.Validate(), errMissingRegistrationRef)
	})

	t.Run("needs a session", func(t *testing.T) {
		req := CheckInRequest{RegistrationID: 1}
		assert.Error(t, req.Validate())
	})

	t.Run("unknown method", func(t *testing.T) {
		req := CheckInRequest{RegistrationID: 1, SessionID: 10, Method: "telepathy"}
		assert.Error(t, req.Validate())
	})
}

func TestBulkCheckInRequest_Validate(t *testing.T) {
	t.Run("valid batch", func(t *testing.T) {
		req := BulkCheckInRequest{RegistrationIDs: []uint{1, 2, 3}, SessionID: 10, Method: "manual"}
		assert.NoError(t, req.Validate())
	})

	t.Run("empty id list", func(t *testing.T) {
		req := BulkCheckInRequest{SessionID: 10}
		assert.Error(t, req.Validate())
	})
}
