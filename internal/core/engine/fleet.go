package engine

import (
	"fmt"
	"presencewatch/internal/core/domain"
	coreerrors "presencewatch/internal/core/errors"
	"sort"
	"time"
)

type boundary struct {
	at    time.Time
	delta int
}

// BinFleet samples how many devices are online at the end of every bucket
// of granularity g covering [t0, t1). Buckets are calendar aligned in loc,
// so the first bucket may start before t0. The final bucket is sampled at
// t1 instead of its calendar end.
//
// Boundary convention: a device is online at instant τ iff one of its
// sessions has start ≤ τ < end. A session opening exactly at a bucket end
// is counted for that bucket, a session closing exactly there is not.
func BinFleet(
	sessionsByDevice [][]domain.Session,
	t0, t1 time.Time,
	g domain.Granularity,
	loc *time.Location,
) ([]domain.HistoricalPoint, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: %q", coreerrors.ErrInvalidGranularity, g)
	}
	if !t1.After(t0) {
		return nil, fmt.Errorf("%w: [%s, %s)", coreerrors.ErrInvalidRange,
			t0.Format(time.RFC3339), t1.Format(time.RFC3339))
	}

	type bucket struct {
		start    time.Time
		sampleAt time.Time
	}
	var buckets []bucket
	for b := g.Floor(t0, loc); b.Before(t1); {
		next := g.Next(b, loc)
		sampleAt := next
		if sampleAt.After(t1) {
			sampleAt = t1
		}
		buckets = append(buckets, bucket{start: b, sampleAt: sampleAt})
		b = next
	}

	firstSample := buckets[0].sampleAt
	var boundaries []boundary
	for _, sessions := range sessionsByDevice {
		for _, s := range sessions {
			if s.Start.After(t1) {
				continue
			}
			if !s.Open && !s.End.After(firstSample) {
				continue
			}
			boundaries = append(boundaries, boundary{at: s.Start, delta: 1})
			if !s.Open {
				boundaries = append(boundaries, boundary{at: s.End, delta: -1})
			}
		}
	}

	// closes before opens on ties
	sort.Slice(boundaries, func(i, j int) bool {
		if boundaries[i].at.Equal(boundaries[j].at) {
			return boundaries[i].delta < boundaries[j].delta
		}
		return boundaries[i].at.Before(boundaries[j].at)
	})

	points := make([]domain.HistoricalPoint, len(buckets))
	online, next := 0, 0
	for i, b := range buckets {
		for next < len(boundaries) && !boundaries[next].at.After(b.sampleAt) {
			online += boundaries[next].delta
			next++
		}
		count := online
		if count < 0 {
			count = 0
		}
		points[i] = domain.HistoricalPoint{
			BucketStart: b.start,
			BucketLabel: g.Label(b.start, loc),
			Count:       count,
		}
	}
	return points, nil
}
