package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCreateSessionRequest_Validate(t *testing.T) {
	starts := time.Date(2026, time.September, 14, 9, 0, 0, 0, time.UTC)
	capacity := 30

	valid := func() CreateSessionRequest {
		return CreateSessionRequest{
			ConferenceID: 1,
			Title:        "Morning Keynote",
			Day:          1,
			StartsAt:     starts,
			EndsAt:       starts.Add(time.Hour),
			Capacity:     &capacity,
		}
	}

	t.Run("valid request", func(t *testing.T) {
		req := valid()
		assert.NoError(t, req.Validate())
	})

	t.Run("ends before it starts", func(t *testing.T) {
		req := valid()
		req.EndsAt = starts.Add(-time.Hour)
		assert.ErrorIs(t, req.Validate(), errEndsBeforeStarts)
	})

	t.Run("zero-length window", func(t *testing.T) {
		req := valid()
		req.EndsAt = req.StartsAt
		assert.ErrorIs(t, req.Validate(), errEndsBeforeStarts)
	})

	t.Run("zero capacity when set", func(t *testing.T) {
		req := valid()
		zero := 0
		req.Capacity = &zero
		assert.Error(t, req.Validate())
	})

	t.Run("nil capacity means unlimited", func(t *testing.T) {
		req := valid()
		req.Capacity = nil
		assert.NoError(t, req.Validate())
	})

	t.Run("missing day", func(t *testing.T) {
		req := valid()
		req.Day = 0
		assert.Error(t, req.Validate())
	})
}
