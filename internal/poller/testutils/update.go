// Package testutils builds poller updates for tests.
package testutils

import (
	"github.com/clambin/lyric-monitor/internal/poller"
	"github.com/clambin/lyric-monitor/pkg/lyric"
)

// Update returns a snapshot with one location containing a thermostat (with
// one room sensor) and a leak detector.
func Update() poller.Update {
	return poller.Update{
		Locations: []lyric.Location{{
			LocationID: 42,
			Name:       "Home",
			Devices:    []lyric.Device{Thermostat(), LeakDetector()},
		}},
		Rooms: map[string][]lyric.Room{
			"00A01234": {
				{
					ID:              1,
					RoomName:        "Bedroom",
					RoomAvgTemp:     19.5,
					RoomAvgHumidity: 48,
					Accessories: []lyric.Accessory{
						{ID: 0, Type: lyric.AccessoryTypeIndoorAirSensor, Temperature: 19, Status: "Ok"},
					},
				},
			},
		},
	}
}

// Thermostat returns the thermostat device in Update.
func Thermostat() lyric.Device {
	return lyric.Device{
		DeviceClass:              lyric.DeviceClassThermostat,
		DeviceType:               "Thermostat",
		DeviceID:                 "LCC-001",
		MacID:                    "00A01234",
		Name:                     "Living Room",
		Units:                    "Celsius",
		IsAlive:                  ptr(true),
		IndoorTemperature:        ptr(20.5),
		IndoorHumidity:           ptr(45.0),
		OutdoorTemperature:       ptr(9.5),
		DisplayedOutdoorHumidity: ptr(71.0),
		ChangeableValues: &lyric.ChangeableValues{
			Mode:                     "Heat",
			HeatSetpoint:             ptr(21.0),
			ThermostatSetpointStatus: lyric.NoHold,
			NextPeriodTime:           "17:00:00",
		},
	}
}

// LeakDetector returns the leak detector device in Update.
func LeakDetector() lyric.Device {
	return lyric.Device{
		DeviceClass:           lyric.DeviceClassLeakDetector,
		DeviceType:            "Water Leak Detector",
		DeviceID:              "LDX-001",
		MacID:                 "00B05678",
		Name:                  "Leak Detector",
		IsAlive:               ptr(true),
		WaterPresent:          ptr(false),
		CurrentSensorReadings: &lyric.SensorReadings{Temperature: 18.1, Humidity: 52},
		DeviceSettings: &lyric.DeviceSettings{
			UserDefinedName: "Basement",
			Temp:            &lyric.AlarmSettings{High: lyric.AlarmLimit{Limit: 30}, Low: lyric.AlarmLimit{Limit: 5}},
			Humidity:        &lyric.AlarmSettings{High: lyric.AlarmLimit{Limit: 70}, Low: lyric.AlarmLimit{Limit: 20}},
		},
		BatteryRemaining:   ptr(94.0),
		WifiSignalStrength: ptr(-62.0),
		LastCheckin:        "2024-09-01T10:12:00Z",
	}
}

func ptr[T any](v T) *T { return &v }
