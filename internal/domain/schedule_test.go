package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symposio/conference-api/internal/domain"
)

func at(hour, min int) time.Time {
	return time.Date(2026, time.September, 14, hour, min, 0, 0, time.UTC)
}

func session(id uint, day int, start, end time.Time) domain.Session {
	return domain.Session{
		ID:       id,
		Day:      day,
		StartsAt: start,
		EndsAt:   end,
	}
}

func TestSession_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a    domain.Session
		b    domain.Session
		want bool
	}{
		{
			name: "disjoint windows",
			a:    session(1, 1, at(9, 0), at(10, 0)),
			b:    session(2, 1, at(11, 0), at(12, 0)),
			want: false,
		},
		{
			name: "back to back shares only the boundary",
			a:    session(1, 1, at(9, 0), at(10, 0)),
			b:    session(2, 1, at(10, 0), at(11, 0)),
			want: false,
		},
		{
			name: "partial overlap",
			a:    session(1, 1, at(9, 0), at(10, 0)),
			b:    session(2, 1, at(9, 30), at(10, 30)),
			want: true,
		},
		{
			name: "contained window",
			a:    session(1, 1, at(9, 0), at(12, 0)),
			b:    session(2, 1, at(10, 0), at(11, 0)),
			want: true,
		},
		{
			name: "identical windows",
			a:    session(1, 1, at(9, 0), at(10, 0)),
			b:    session(2, 1, at(9, 0), at(10, 0)),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestFindConflict(t *testing.T) {
	a := session(1, 1, at(9, 0), at(10, 0))
	b := session(2, 1, at(10, 0), at(11, 0))
	c := session(3, 1, at(9, 30), at(10, 30))

	t.Run("no conflict for back to back selection", func(t *testing.T) {
		_, found := domain.FindConflict([]domain.Session{a, b})
		assert.False(t, found)
	})

	t.Run("returns the first overlapping pair", func(t *testing.T) {
		conflict, found := domain.FindConflict([]domain.Session{a, b, c})
		require.True(t, found)
		assert.Equal(t, uint(1), conflict.First.ID)
		assert.Equal(t, uint(3), conflict.Second.ID)
	})

	t.Run("empty selection", func(t *testing.T) {
		_, found := domain.FindConflict(nil)
		assert.False(t, found)
	})
}

func TestSession_IsFull(t *testing.T) {
	capacity := 2

	t.Run("nil capacity is never full", func(t *testing.T) {
		s := domain.Session{Capacity: nil}
		assert.False(t, s.IsFull(100000))
	})

	t.Run("below capacity", func(t *testing.T) {
		s := domain.Session{Capacity: &capacity}
		assert.False(t, s.IsFull(1))
	})

	t.Run("at capacity", func(t *testing.T) {
		s := domain.Session{Capacity: &capacity}
		assert.True(t, s.IsFull(2))
	})
}

func TestSession_IsActiveAt(t *testing.T) {
	s := session(1, 1, at(9, 0), at(10, 0))

	tests := []struct {
		name  string
		at    time.Time
		grace time.Duration
		want  bool
	}{
		{name: "before start", at: at(8, 59), want: false},
		{name: "at start", at: at(9, 0), want: true},
		{name: "during", at: at(9, 30), want: true},
		{name: "at end", at: at(10, 0), want: false},
		{name: "before start within grace", at: at(8, 50), grace: 15 * time.Minute, want: true},
		{name: "after end within grace", at: at(10, 10), grace: 15 * time.Minute, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.IsActiveAt(tt.at, tt.grace))
		})
	}
}

func TestDisableAgainstSelection(t *testing.T) {
	morningA := session(1, 1, at(9, 0), at(10, 0))
	morningB := session(2, 1, at(10, 30), at(11, 30))
	afternoon := session(3, 1, at(14, 0), at(15, 0))
	plenary := session(4, 1, at(16, 0), at(17, 0))
	plenary.Track = domain.TrackPlenary
	otherDay := session(5, 2, at(9, 0), at(10, 0))

	all := []domain.Session{morningA, morningB, afternoon, plenary, otherDay}

	byID := func(t *testing.T, result []domain.SelectableSession, id uint) domain.SelectableSession {
		t.Helper()
		for _, s := range result {
			if s.ID == id {
				return s
			}
		}
		t.Fatalf("session %d missing from result", id)
		return domain.SelectableSession{}
	}

	t.Run("empty selection disables nothing", func(t *testing.T) {
		result := domain.DisableAgainstSelection(all, nil)
		for _, s := range result {
			assert.False(t, s.Disabled, "session %d", s.ID)
		}
	})

	t.Run("morning pick blocks same half-day, keeps afternoon", func(t *testing.T) {
		result := domain.DisableAgainstSelection(all, []domain.Session{morningA})

		assert.False(t, byID(t, result, 1).Disabled, "selected session stays enabled")
		assert.True(t, byID(t, result, 2).Disabled, "other morning session same day")
		assert.False(t, byID(t, result, 3).Disabled, "afternoon session same day")
		assert.True(t, byID(t, result, 4).Disabled, "plenary same day")
		assert.False(t, byID(t, result, 5).Disabled, "other day untouched")
	})

	t.Run("plenary pick blocks the whole day", func(t *testing.T) {
		result := domain.DisableAgainstSelection(all, []domain.Session{plenary})

		assert.True(t, byID(t, result, 1).Disabled)
		assert.True(t, byID(t, result, 2).Disabled)
		assert.True(t, byID(t, result, 3).Disabled)
		assert.False(t, byID(t, result, 4).Disabled)
		assert.False(t, byID(t, result, 5).Disabled)
	})
}

func TestRegistration_CheckInEligible(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{status: domain.RegistrationStatusPending, want: false},
		{status: domain.RegistrationStatusConfirmed, want: true},
		{status: domain.RegistrationStatusCancelled, want: false},
		{status: domain.RegistrationStatusCheckedIn, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			r := domain.Registration{Status: tt.status}
			assert.Equal(t, tt.want, r.CheckInEligible())
		})
	}
}
