// Package engine turns a device's raw presence transitions into sessions
// and aggregates those sessions per day and across the fleet. Every
// function here is pure; callers own snapshotting and parallelism.
package engine

import (
	"presencewatch/internal/core/domain"
	"time"
)

// DefaultFlapThreshold is used when no threshold is configured.
const DefaultFlapThreshold = 2 * time.Minute

// Debounce reduces an ordered event sequence to strictly alternating
// transitions. Consecutive duplicates keep the first event. An Offline
// followed by an Online less than threshold later is dropped together with
// that Online when the device was online before the Offline. A leading
// Offline is never collapsed.
//
// Debounce is idempotent: its output satisfies every rule it enforces.
func Debounce(events []domain.PresenceEvent, threshold time.Duration) []domain.PresenceEvent {
	out := make([]domain.PresenceEvent, 0, len(events))

	for _, ev := range events {
		if len(out) == 0 {
			out = append(out, ev)
			continue
		}

		last := out[len(out)-1]
		if ev.State == last.State {
			continue
		}

		if ev.State == domain.Online && len(out) > 1 &&
			ev.Timestamp.Sub(last.Timestamp) < threshold {
			// flap: stayed online through the gap
			out = out[:len(out)-1]
			continue
		}

		out = append(out, ev)
	}

	return out
}
