package domain

import "time"

// DailyStat summarises one local calendar day of a device.
type DailyStat struct {
	DeviceID         string
	Date             time.Time
	OnlineHours      float64
	OfflineIntervals int
	Online           bool
}

// PersonSummary is the reduction of a run of daily stats.
type PersonSummary struct {
	TotalOnlineDays    int
	AverageHoursPerDay float64
	MaxHoursOnline     float64
}

// PersonStats is the daily presence of one device, and so of its owner.
type PersonStats struct {
	Device  DeviceInfo
	Summary PersonSummary
	Daily   []DailyStat
}

// Summarize counts online days and computes the mean and maximum of
// OnlineHours. An empty slice yields a zero summary.
func Summarize(daily []DailyStat) PersonSummary {
	var summary PersonSummary
	if len(daily) == 0 {
		return summary
	}

	var total float64
	for _, d := range daily {
		if d.Online {
			summary.TotalOnlineDays++
		}
		total += d.OnlineHours
		if d.OnlineHours > summary.MaxHoursOnline {
			summary.MaxHoursOnline = d.OnlineHours
		}
	}
	summary.AverageHoursPerDay = total / float64(len(daily))
	return summary
}

// HistoricalPoint is the fleet online count reported for one bucket.
type HistoricalPoint struct {
	BucketStart time.Time
	BucketLabel string
	Count       int
}
