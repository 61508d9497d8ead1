package domain

import (
	"strings"
	"time"
)

const TrackPlenary = "plenary"

type Session struct {
	ID           uint      `json:"id"`
	ConferenceID uint      `json:"conference_id"`
	Title        string    `json:"title"`
	Day          int       `json:"day"`
	StartsAt     time.Time `json:"starts_at"`
	EndsAt       time.Time `json:"ends_at"`
	Room         string    `json:"room"`
	Track        string    `json:"track"`
	Category     string    `json:"category"`
	Capacity     *int      `json:"capacity"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Overlaps reports whether the two sessions' time windows intersect.
// Windows are half-open, so a session ending exactly when the other
// starts does not overlap.
func (s Session) Overlaps(other Session) bool {
	return s.StartsAt.Before(other.EndsAt) && other.StartsAt.Before(s.EndsAt)
}

// IsActiveAt reports whether t falls inside the session's live window,
// widened by grace on both ends.
func (s Session) IsActiveAt(t time.Time, grace time.Duration) bool {
	return !t.Before(s.StartsAt.Add(-grace)) && t.Before(s.EndsAt.Add(grace))
}

func (s Session) IsPlenary() bool {
	return strings.EqualFold(s.Track, TrackPlenary)
}

// Morning reports whether the session belongs to the morning half-day block.
func (s Session) Morning() bool {
	return s.StartsAt.Hour() < 12
}

// IsFull applies the capacity rule: a nil capacity means unlimited and the
// session is never full; otherwise it is full once the count of
// non-cancelled registrations reaches the capacity.
func (s Session) IsFull(registered int) bool {
	return s.Capacity != nil && registered >= *s.Capacity
}
