package memory

import (
	"fmt"
	"presencewatch/internal/core/domain"
	coreerrors "presencewatch/internal/core/errors"
	"presencewatch/internal/core/ports"
	"sort"
	"sync"
	"time"
)

// EventStore keeps every device's transitions in append-only slices.
//
// Writers for one device are serialized by that device's ingest lock, which
// is held across validation and commit. mu only guards publishing the new
// slice header, so readers never wait on a commit.
type EventStore struct {
	mu     sync.RWMutex
	events map[string][]domain.PresenceEvent

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewEventStore creates an empty in-memory EventStore.
func NewEventStore() *EventStore {
	return &EventStore{
		events: make(map[string][]domain.PresenceEvent),
		locks:  make(map[string]*sync.Mutex),
	}
}

func (r *EventStore) deviceLock(deviceID string) *sync.Mutex {
	r.locksMu.Lock()
	defer r.locksMu.Unlock()

	l, ok := r.locks[deviceID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[deviceID] = l
	}
	return l
}

// Append stores ev if it is not older than the device's last event.
// commit, when set, runs after validation while the device's ingest lock
// is held; if it fails nothing is stored. The event becomes visible to
// snapshots only after commit returns.
func (r *EventStore) Append(ev domain.PresenceEvent, commit ports.CommitFunc) error {
	l := r.deviceLock(ev.DeviceID)
	l.Lock()
	defer l.Unlock()

	r.mu.RLock()
	log := r.events[ev.DeviceID]
	r.mu.RUnlock()

	if n := len(log); n > 0 && ev.Timestamp.Before(log[n-1].Timestamp) {
		return fmt.Errorf("%w: %s at %s precedes %s", coreerrors.ErrOutOfOrder,
			ev.DeviceID, ev.Timestamp.Format(time.RFC3339Nano),
			log[n-1].Timestamp.Format(time.RFC3339Nano))
	}

	if commit != nil {
		if err := commit(ev); err != nil {
			return err
		}
	}

	// log is still the device's current slice: only this goroutine writes it
	r.mu.Lock()
	r.events[ev.DeviceID] = append(log, ev)
	r.mu.Unlock()
	return nil
}

// Snapshot returns an immutable cut of the log. Slices are capped at their
// current length so later appends never show through.
func (r *EventStore) Snapshot() ports.EventSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make(map[string][]domain.PresenceEvent, len(r.events))
	for id, log := range r.events {
		events[id] = log[:len(log):len(log)]
	}
	return &Snapshot{events: events}
}

// EventsFor returns the device's events in [from, to).
func (r *EventStore) EventsFor(deviceID string, from, to time.Time) []domain.PresenceEvent {
	return r.Snapshot().EventsFor(deviceID, from, to)
}

// Devices lists every device with at least one event, sorted.
func (r *EventStore) Devices() []string {
	return r.Snapshot().Devices()
}

// Count returns the number of devices with at least one event.
func (r *EventStore) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.events)
}

// EventCount returns the number of stored events across all devices.
func (r *EventStore) EventCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, log := range r.events {
		n += len(log)
	}
	return n
}

// Snapshot is a consistent view of the EventStore at one instant.
type Snapshot struct {
	events map[string][]domain.PresenceEvent
}

// Devices lists every device with at least one event, sorted.
func (s *Snapshot) Devices() []string {
	ids := make([]string, 0, len(s.events))
	for id := range s.events {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of devices in the snapshot.
func (s *Snapshot) Count() int {
	return len(s.events)
}

// EventsFor returns a copy of the device's events in [from, to). Unknown
// devices yield an empty slice.
func (s *Snapshot) EventsFor(deviceID string, from, to time.Time) []domain.PresenceEvent {
	log := s.events[deviceID]
	lo := sort.Search(len(log), func(i int) bool {
		return !log[i].Timestamp.Before(from)
	})
	hi := sort.Search(len(log), func(i int) bool {
		return !log[i].Timestamp.Before(to)
	})
	if hi <= lo {
		return []domain.PresenceEvent{}
	}

	out := make([]domain.PresenceEvent, hi-lo)
	copy(out, log[lo:hi])
	return out
}
