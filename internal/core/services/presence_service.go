package services

import (
	"errors"
	"fmt"
	"presencewatch/internal/core/domain"
	"presencewatch/internal/core/engine"
	coreerrors "presencewatch/internal/core/errors"
	"presencewatch/internal/core/ports"
	"presencewatch/pkg/utils"
	"runtime"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Option customises a PresenceServiceImpl.
type Option func(*PresenceServiceImpl)

// WithJournal makes every accepted transition durable before it is stored.
func WithJournal(j ports.Journal) Option {
	return func(s *PresenceServiceImpl) {
		s.journal = j
	}
}

// WithDirectory supplies device metadata for GetDevices.
func WithDirectory(d ports.DeviceDirectory) Option {
	return func(s *PresenceServiceImpl) {
		s.directory = d
	}
}

func WithFlapThreshold(threshold time.Duration) Option {
	return func(s *PresenceServiceImpl) {
		if threshold > 0 {
			s.flapThreshold = threshold
		}
	}
}

// WithLocation sets the time zone that defines calendar days and buckets.
func WithLocation(loc *time.Location) Option {
	return func(s *PresenceServiceImpl) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithGranularityTable(table domain.GranularityTable) Option {
	return func(s *PresenceServiceImpl) {
		if len(table) > 0 {
			s.granularities = table
		}
	}
}

// WithWorkers bounds how many device pipelines run in parallel per query.
func WithWorkers(n int) Option {
	return func(s *PresenceServiceImpl) {
		if n > 0 {
			s.workers = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *PresenceServiceImpl) {
		if now != nil {
			s.now = now
		}
	}
}

// PresenceServiceImpl is the default implementation of PresenceService.
// Every query works on one snapshot of the event store taken when it
// starts.
type PresenceServiceImpl struct {
	store     ports.EventStore
	journal   ports.Journal
	directory ports.DeviceDirectory
	logger    *zap.Logger

	flapThreshold time.Duration
	loc           *time.Location
	granularities domain.GranularityTable
	workers       int
	now           func() time.Time
}

// NewPresenceService constructs a new PresenceServiceImpl.
func NewPresenceService(store ports.EventStore, logger *zap.Logger, opts ...Option) *PresenceServiceImpl {
	s := &PresenceServiceImpl{
		store:         store,
		logger:        logger,
		flapThreshold: engine.DefaultFlapThreshold,
		loc:           time.UTC,
		granularities: domain.DefaultGranularityTable(),
		workers:       runtime.NumCPU(),
		now:           time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Restore replays the journal into the event store.
func (s *PresenceServiceImpl) Restore() (int, error) {
	if s.journal == nil {
		return 0, nil
	}
	return s.journal.Replay(func(ev domain.PresenceEvent) error {
		return s.store.Append(ev, nil)
	})
}

// ReportTransition records a presence transition for a device.
func (s *PresenceServiceImpl) ReportTransition(deviceID string, at time.Time, state domain.State) error {
	mac, ok := utils.NormalizeMAC(deviceID)
	if !ok {
		return fmt.Errorf("%w: %q", coreerrors.ErrInvalidDeviceID, deviceID)
	}

	var commit ports.CommitFunc
	if s.journal != nil {
		commit = s.journal.Append
	}

	ev := domain.PresenceEvent{DeviceID: mac, Timestamp: at, State: state}
	if err := s.store.Append(ev, commit); err != nil {
		if errors.Is(err, coreerrors.ErrOutOfOrder) {
			s.logger.Warn("Dropping out-of-order transition",
				zap.String("device_id", mac),
				zap.Time("timestamp", at),
				zap.Stringer("state", state))
		}
		return err
	}

	s.logger.Debug("Transition recorded",
		zap.String("device_id", mac),
		zap.Time("timestamp", at),
		zap.Stringer("state", state))
	return nil
}

// GetDevices lists directory devices and every device seen in the log,
// optionally filtered by category.
func (s *PresenceServiceImpl) GetDevices(category string) ([]domain.DeviceSummary, error) {
	now := s.now()
	snap := s.store.Snapshot()

	infos := map[string]domain.DeviceInfo{}
	if s.directory != nil {
		for _, info := range s.directory.List() {
			infos[info.MAC] = info
		}
	}
	for _, id := range snap.Devices() {
		if _, ok := infos[id]; !ok {
			infos[id] = domain.DeviceInfo{MAC: id}
		}
	}

	var ids []string
	for id, info := range infos {
		if category != "" && !strings.EqualFold(info.Category, category) {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	sessions := s.sessionsByDevice(snap, ids, now)

	summaries := make([]domain.DeviceSummary, len(ids))
	for i, id := range ids {
		summary := domain.DeviceSummary{DeviceInfo: infos[id], Status: domain.StatusOffline}
		if n := len(sessions[i]); n > 0 {
			last := sessions[i][n-1]
			if last.Open {
				summary.Status = domain.StatusOnline
			}
			summary.LastSeen = last.EndAt(now)
		}
		summaries[i] = summary
	}
	return summaries, nil
}

// GetHistorical returns the fleet online count over the last rangeDays
// days. The bucket size comes from the granularity table.
func (s *PresenceServiceImpl) GetHistorical(rangeDays int) (*ports.Historical, error) {
	if rangeDays <= 0 {
		return nil, fmt.Errorf("%w: range of %d days", coreerrors.ErrInvalidRange, rangeDays)
	}

	now := s.now()
	snap := s.store.Snapshot()
	ids := snap.Devices()

	started := time.Now()
	sessions := s.sessionsByDevice(snap, ids, now)

	g := s.granularities.Select(rangeDays)
	points, err := engine.BinFleet(sessions, now.AddDate(0, 0, -rangeDays), now, g, s.loc)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Fleet history computed",
		zap.Int("range_days", rangeDays),
		zap.String("granularity", string(g)),
		zap.Int("devices", len(ids)),
		zap.Int("points", len(points)),
		zap.Duration("elapsed", time.Since(started)))

	return &ports.Historical{Granularity: g, Points: points}, nil
}

// GetPersonStats aggregates the last days calendar days, today included.
func (s *PresenceServiceImpl) GetPersonStats(deviceID string, days int) (*domain.PersonStats, error) {
	mac, from, now, err := s.window(deviceID, days)
	if err != nil {
		return nil, err
	}

	sessions := s.sessionsFor(s.store.Snapshot(), mac, now)
	daily, err := engine.AggregateDaily(mac, sessions, from, now, s.loc, now)
	if err != nil {
		return nil, err
	}

	info := domain.DeviceInfo{MAC: mac}
	if s.directory != nil {
		if known, ok := s.directory.Lookup(mac); ok {
			info = known
		}
	}

	return &domain.PersonStats{
		Device:  info,
		Summary: domain.Summarize(daily),
		Daily:   daily,
	}, nil
}

// GetSessions returns the sessions touching the last days calendar days.
func (s *PresenceServiceImpl) GetSessions(deviceID string, days int) ([]domain.Session, error) {
	mac, from, now, err := s.window(deviceID, days)
	if err != nil {
		return nil, err
	}

	sessions := s.sessionsFor(s.store.Snapshot(), mac, now)
	out := make([]domain.Session, 0, len(sessions))
	for _, session := range sessions {
		if session.EndAt(now).Before(from) {
			continue
		}
		out = append(out, session)
	}
	return out, nil
}

func (s *PresenceServiceImpl) window(deviceID string, days int) (string, time.Time, time.Time, error) {
	if days <= 0 {
		return "", time.Time{}, time.Time{}, fmt.Errorf("%w: %d days", coreerrors.ErrInvalidRange, days)
	}
	mac, ok := utils.NormalizeMAC(deviceID)
	if !ok {
		return "", time.Time{}, time.Time{}, fmt.Errorf("%w: %q", coreerrors.ErrInvalidDeviceID, deviceID)
	}

	now := s.now().In(s.loc)
	y, m, d := now.Date()
	from := time.Date(y, m, d-(days-1), 0, 0, 0, 0, s.loc)
	return mac, from, now, nil
}

func (s *PresenceServiceImpl) sessionsFor(snap ports.EventSnapshot, id string, asOf time.Time) []domain.Session {
	events := snap.EventsFor(id, time.Time{}, asOf.Add(time.Nanosecond))
	return engine.Sessions(events, s.flapThreshold, asOf)
}

// sessionsByDevice runs the per-device pipelines in parallel and returns
// once all of them are done.
func (s *PresenceServiceImpl) sessionsByDevice(snap ports.EventSnapshot, ids []string, asOf time.Time) [][]domain.Session {
	out := make([][]domain.Session, len(ids))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, id := range ids {
		g.Go(func() error {
			out[i] = s.sessionsFor(snap, id, asOf)
			return nil
		})
	}
	_ = g.Wait()

	return out
}
