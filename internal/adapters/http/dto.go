package http

import (
	"presencewatch/internal/core/domain"
	"time"
)

type TransitionRequest struct {
	Timestamp time.Time `json:"timestamp" binding:"required"`
	State     string    `json:"state" binding:"required"`
}

type ErrorResponse struct {
	Msg string `json:"msg"`
}

type DeviceResponse struct {
	MACAddress string     `json:"mac_address"`
	Hostname   string     `json:"hostname,omitempty"`
	IPAddress  string     `json:"ip_address,omitempty"`
	Category   string     `json:"device_category,omitempty"`
	Owner      string     `json:"owner,omitempty"`
	Status     string     `json:"status"`
	LastSeen   *time.Time `json:"last_seen,omitempty"`
}

type DevicesResponse struct {
	Devices []DeviceResponse `json:"devices"`
}

// Stats and history responses keep the dashboard's camelCase field names.

type SummaryResponse struct {
	TotalOnlineDays    int     `json:"totalOnlineDays"`
	AverageHoursPerDay float64 `json:"averageHoursPerDay"`
	MaxHoursOnline     float64 `json:"maxHoursOnline"`
}

type DailyStatResponse struct {
	Date             string  `json:"date"`
	OnlineHours      float64 `json:"onlineHours"`
	OfflineIntervals int     `json:"offlineIntervals"`
	Online           bool    `json:"online"`
}

type PersonStatsResponse struct {
	DeviceID string              `json:"deviceId"`
	Hostname string              `json:"hostname,omitempty"`
	Owner    string              `json:"owner,omitempty"`
	Summary  SummaryResponse     `json:"summary"`
	Daily    []DailyStatResponse `json:"daily"`
}

type SessionResponse struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
	Open  bool       `json:"open"`
}

type SessionsResponse struct {
	DeviceID string            `json:"deviceId"`
	Sessions []SessionResponse `json:"sessions"`
}

type HistoricalPointResponse struct {
	BucketStart time.Time `json:"bucketStart"`
	BucketLabel string    `json:"bucketLabel"`
	Count       int       `json:"count"`
}

type HistoryResponse struct {
	RangeDays   int                       `json:"rangeDays"`
	Granularity string                    `json:"granularity"`
	Points      []HistoricalPointResponse `json:"points"`
}

func newDeviceResponse(d domain.DeviceSummary) DeviceResponse {
	resp := DeviceResponse{
		MACAddress: d.MAC,
		Hostname:   d.Hostname,
		IPAddress:  d.IP,
		Category:   d.Category,
		Owner:      d.Owner,
		Status:     string(d.Status),
	}
	if !d.LastSeen.IsZero() {
		lastSeen := d.LastSeen
		resp.LastSeen = &lastSeen
	}
	return resp
}

func newPersonStatsResponse(deviceID string, stats *domain.PersonStats) PersonStatsResponse {
	resp := PersonStatsResponse{
		DeviceID: deviceID,
		Hostname: stats.Device.Hostname,
		Owner:    stats.Device.Owner,
		Summary: SummaryResponse{
			TotalOnlineDays:    stats.Summary.TotalOnlineDays,
			AverageHoursPerDay: stats.Summary.AverageHoursPerDay,
			MaxHoursOnline:     stats.Summary.MaxHoursOnline,
		},
		Daily: make([]DailyStatResponse, len(stats.Daily)),
	}
	for i, d := range stats.Daily {
		resp.Daily[i] = DailyStatResponse{
			Date:             d.Date.Format("2006-01-02"),
			OnlineHours:      d.OnlineHours,
			OfflineIntervals: d.OfflineIntervals,
			Online:           d.Online,
		}
	}
	return resp
}

func newSessionResponse(s domain.Session) SessionResponse {
	resp := SessionResponse{Start: s.Start, Open: s.Open}
	if !s.Open {
		end := s.End
		resp.End = &end
	}
	return resp
}
