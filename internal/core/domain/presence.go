package domain

import (
	"fmt"
	coreerrors "presencewatch/internal/core/errors"
	"strings"
	"time"
)

// State is the presence of a device after a transition.
type State uint8

const (
	Offline State = iota
	Online
)

func (s State) String() string {
	if s == Online {
		return "online"
	}
	return "offline"
}

// ParseState accepts "online" and "offline" in any case.
func ParseState(raw string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "online":
		return Online, nil
	case "offline":
		return Offline, nil
	default:
		return Offline, fmt.Errorf("%w: %q", coreerrors.ErrInvalidState, raw)
	}
}

// PresenceEvent is a single online/offline transition reported for a device.
type PresenceEvent struct {
	DeviceID  string
	Timestamp time.Time
	State     State
}
