package domain

import "time"

type DeviceStatus string

const (
	StatusOnline  DeviceStatus = "online"
	StatusOffline DeviceStatus = "offline"
)

// DeviceInfo is inventory metadata owned by the device directory.
type DeviceInfo struct {
	MAC      string
	Hostname string
	IP       string
	Category string
	// Owner is the person the device belongs to, empty for shared gear.
	Owner    string
}

// DeviceSummary is DeviceInfo plus the presence derived from the event log.
type DeviceSummary struct {
	DeviceInfo
	Status   DeviceStatus
	LastSeen time.Time
}
