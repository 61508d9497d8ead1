package domain

// Conflict is an overlapping pair found in a selection of sessions.
type Conflict struct {
	First  Session `json:"first"`
	Second Session `json:"second"`
}

// FindConflict scans a candidate selection pairwise and returns the first
// overlapping pair. Back-to-back sessions sharing a boundary are fine.
func FindConflict(selection []Session) (Conflict, bool) {
	for i := 0; i < len(selection); i++ {
		for j := i + 1; j < len(selection); j++ {
			if selection[i].Overlaps(selection[j]) {
				return Conflict{First: selection[i], Second: selection[j]}, true
			}
		}
	}

	return Conflict{}, false
}

// SessionCapacity is the per-session capacity/activity view, recomputed from
// live registration counts on every request.
type SessionCapacity struct {
	SessionID  uint `json:"sessionId"`
	Registered int  `json:"registered"`
	Capacity   *int `json:"capacity"`
	IsFull     bool `json:"isFull"`
	IsActive   bool `json:"isActive"`
}

// SelectableSession is the presentation-layer view used by registration
// forms: Disabled marks sessions the UI should grey out against the current
// selection. It is a convenience filter, stricter than the hard overlap rule.
type SelectableSession struct {
	Session
	Disabled bool `json:"disabled"`
}

// DisableAgainstSelection computes the UX filter for a registration form.
// A candidate is disabled when it truly overlaps a selected session, when a
// selected session is plenary and the candidate runs on the same day, or when
// the candidate shares a morning/afternoon half-day block on the same day
// with a selected non-plenary session. Already-selected sessions are never
// disabled so the form can render them checked.
func DisableAgainstSelection(all []Session, selected []Session) []SelectableSession {
	selectedIDs := make(map[uint]struct{}, len(selected))
	for _, s := range selected {
		selectedIDs[s.ID] = struct{}{}
	}

	result := make([]SelectableSession, len(all))
	for i, candidate := range all {
		result[i] = SelectableSession{Session: candidate}

		if _, ok := selectedIDs[candidate.ID]; ok {
			continue
		}

		for _, sel := range selected {
			if candidate.Overlaps(sel) {
				result[i].Disabled = true
				break
			}
			if candidate.Day != sel.Day {
				continue
			}
			if sel.IsPlenary() || candidate.IsPlenary() {
				result[i].Disabled = true
				break
			}
			if candidate.Morning() == sel.Morning() {
				result[i].Disabled = true
				break
			}
		}
	}

	return result
}
