package engine

import (
	"presencewatch/internal/core/domain"
	"time"
)

// Reconstruct walks a debounced sequence and emits one session per
// Online..Offline pair. Events after asOf are ignored. A trailing Online
// yields an open session.
func Reconstruct(events []domain.PresenceEvent, asOf time.Time) []domain.Session {
	var sessions []domain.Session
	var current *domain.Session

	for _, ev := range events {
		if ev.Timestamp.After(asOf) {
			break
		}

		switch ev.State {
		case domain.Online:
			if current == nil {
				current = &domain.Session{DeviceID: ev.DeviceID, Start: ev.Timestamp}
			}
		case domain.Offline:
			if current != nil {
				current.End = ev.Timestamp
				sessions = append(sessions, *current)
				current = nil
			}
		}
	}

	if current != nil {
		current.Open = true
		sessions = append(sessions, *current)
	}

	return sessions
}

// Sessions runs the full per-device pipeline on raw events.
func Sessions(events []domain.PresenceEvent, threshold time.Duration, asOf time.Time) []domain.Session {
	return Reconstruct(Debounce(events, threshold), asOf)
}
