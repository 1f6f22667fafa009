package poller

import (
	"github.com/clambin/lyric-monitor/pkg/lyric"
)

// Update is one snapshot of all locations, devices and rooms.
type Update struct {
	Locations []lyric.Location
	// Rooms holds the rooms reporting to each thermostat, keyed by the
	// thermostat's MAC address.
	Rooms map[string][]lyric.Room
}

// GetLocation returns the named location.
func (u Update) GetLocation(name string) (lyric.Location, bool) {
	for _, location := range u.Locations {
		if location.Name == name {
			return location, true
		}
	}
	return lyric.Location{}, false
}

// Thermostats returns all thermostats, across all locations.
func (u Update) Thermostats() []lyric.Device {
	return u.devices(lyric.Device.IsThermostat)
}

// LeakDetectors returns all leak detectors, across all locations.
func (u Update) LeakDetectors() []lyric.Device {
	return u.devices(lyric.Device.IsLeakDetector)
}

func (u Update) devices(match func(lyric.Device) bool) []lyric.Device {
	var devices []lyric.Device
	for _, location := range u.Locations {
		for _, device := range location.Devices {
			if match(device) {
				devices = append(devices, device)
			}
		}
	}
	return devices
}
