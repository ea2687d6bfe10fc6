package memory

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"presencewatch/internal/core/domain"
	coreerrors "presencewatch/internal/core/errors"
	"presencewatch/pkg/utils"
	"sort"
	"strings"
	"sync"
)

// DeviceDirectory is an in-memory device inventory.
type DeviceDirectory struct {
	mu      sync.RWMutex
	devices map[string]domain.DeviceInfo
}

func NewDeviceDirectory() *DeviceDirectory {
	return &DeviceDirectory{
		devices: make(map[string]domain.DeviceInfo),
	}
}

// LoadFromCSV initializes the directory from an inventory file.
// The header names the columns: mac_address (or device_id), hostname,
// ip_address, device_category (or category) and owner (or employee). Only
// the MAC column is required. Tab separated files are accepted as well.
func (r *DeviceDirectory) LoadFromCSV(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	firstLine, _, _ := bytes.Cut(raw, []byte("\n"))
	if bytes.Contains(firstLine, []byte("\t")) {
		reader.Comma = '\t'
	}
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	columns := map[string]int{}
	for i, name := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	macCol, ok := columns["mac_address"]
	if !ok {
		if macCol, ok = columns["device_id"]; !ok {
			return fmt.Errorf("%s: missing mac_address column", path)
		}
	}
	field := func(row []string, names ...string) string {
		for _, name := range names {
			if i, ok := columns[name]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
		}
		return ""
	}

	for i, row := range records[1:] {
		if len(row) == 0 || macCol >= len(row) || strings.TrimSpace(row[macCol]) == "" {
			continue
		}
		mac, ok := utils.NormalizeMAC(row[macCol])
		if !ok {
			return fmt.Errorf("%s row %d: %w: %q", path, i+2, coreerrors.ErrInvalidDeviceID, row[macCol])
		}
		r.Add(domain.DeviceInfo{
			MAC:      mac,
			Hostname: field(row, "hostname"),
			IP:       field(row, "ip_address"),
			Category: field(row, "device_category", "category"),
			Owner:    field(row, "owner", "employee"),
		})
	}
	return nil
}

// Add inserts or replaces a device's metadata.
func (r *DeviceDirectory) Add(info domain.DeviceInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.devices[info.MAC] = info
}

func (r *DeviceDirectory) Lookup(mac string) (domain.DeviceInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.devices[mac]
	return info, ok
}

// List returns every device sorted by MAC.
func (r *DeviceDirectory) List() []domain.DeviceInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.DeviceInfo, 0, len(r.devices))
	for _, info := range r.devices {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MAC < out[j].MAC })
	return out
}

func (r *DeviceDirectory) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.devices)
}
