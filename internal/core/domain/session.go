package domain

import "time"

// Session is one continuous online interval of a device.
// An open session has no end yet; End is zero.
type Session struct {
	DeviceID string
	Start    time.Time
	End      time.Time
	Open     bool
}

// EndAt resolves the end of the session against an as-of instant.
func (s Session) EndAt(asOf time.Time) time.Time {
	if s.Open {
		if asOf.Before(s.Start) {
			return s.Start
		}
		return asOf
	}
	return s.End
}

// Overlap returns how much of the session falls inside [from, to).
func (s Session) Overlap(from, to, asOf time.Time) time.Duration {
	start := s.Start
	if start.Before(from) {
		start = from
	}
	end := s.EndAt(asOf)
	if end.After(to) {
		end = to
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}
