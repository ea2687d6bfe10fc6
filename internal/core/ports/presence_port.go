package ports

import (
	"presencewatch/internal/core/domain"
	"time"
)

// PresenceService is the main port used by the HTTP and MQTT adapters.
type PresenceService interface {
	ReportTransition(deviceID string, at time.Time, state domain.State) error
	GetDevices(category string) ([]domain.DeviceSummary, error)
	GetHistorical(rangeDays int) (*Historical, error)
	GetPersonStats(deviceID string, days int) (*domain.PersonStats, error)
	GetSessions(deviceID string, days int) ([]domain.Session, error)
}

// Historical is a fleet history series together with the bucket size
// chosen for its range.
type Historical struct {
	Granularity domain.Granularity
	Points      []domain.HistoricalPoint
}

// CommitFunc persists an accepted event before it becomes visible.
type CommitFunc func(ev domain.PresenceEvent) error

// EventStore is the append-only presence log used by the service.
type EventStore interface {
	Append(ev domain.PresenceEvent, commit CommitFunc) error
	Snapshot() EventSnapshot
}

// EventSnapshot is an immutable cut of the event log.
type EventSnapshot interface {
	Devices() []string
	EventsFor(deviceID string, from, to time.Time) []domain.PresenceEvent
}

// Journal durably records accepted events and replays them on start.
type Journal interface {
	Append(ev domain.PresenceEvent) error
	Replay(fn func(ev domain.PresenceEvent) error) (int, error)
}

// DeviceDirectory supplies inventory metadata for known devices.
type DeviceDirectory interface {
	List() []domain.DeviceInfo
	Lookup(mac string) (domain.DeviceInfo, bool)
}
