// Package sensors defines the sensors & binary sensors exposed for each
// device, as declarative descriptor tables: each descriptor pairs a value
// function with a suitability predicate and the display metadata (device
// class, state class, unit) the rendering side needs.
package sensors

import (
	"math"
	"time"

	"github.com/clambin/lyric-monitor/pkg/lyric"
)

// Platform distinguishes measurement sensors from on/off sensors.
type Platform string

const (
	PlatformSensor       Platform = "sensor"
	PlatformBinarySensor Platform = "binary_sensor"
)

// DeviceClass describes what a sensor measures.
type DeviceClass string

const (
	Temperature    DeviceClass = "temperature"
	Humidity       DeviceClass = "humidity"
	Battery        DeviceClass = "battery"
	SignalStrength DeviceClass = "signal_strength"
	Timestamp      DeviceClass = "timestamp"
	Moisture       DeviceClass = "moisture"
	Connectivity   DeviceClass = "connectivity"
)

// StateClass describes how a sensor's values relate over time.
type StateClass string

// Measurement marks a sensor reporting current values.
const Measurement StateClass = "measurement"

// Units of measurement.
const (
	UnitCelsius    = "°C"
	UnitFahrenheit = "°F"
	UnitPercent    = "%"
)

// DeviceSensor describes one sensor derived from a device. Value returns
// the sensor's current value, or nil when the device doesn't carry the
// underlying attribute. Suitable reports whether the sensor applies to the
// device at all.
type DeviceSensor struct {
	Key         string
	Name        string
	DeviceClass DeviceClass
	StateClass  StateClass
	Value       func(lyric.Device) any
	Suitable    func(lyric.Device) bool
}

// AccessorySensor describes one sensor derived from a room and the
// accessory reporting from it.
type AccessorySensor struct {
	Key         string
	Name        string
	DeviceClass DeviceClass
	StateClass  StateClass
	Value       func(lyric.Room, lyric.Accessory) any
	Suitable    func(lyric.Room, lyric.Accessory) bool
}

// DeviceBinarySensor describes one on/off sensor derived from a device.
type DeviceBinarySensor struct {
	Key         string
	Name        string
	DeviceClass DeviceClass
	Value       func(lyric.Device) any
	Suitable    func(lyric.Device) bool
}

// DeviceSensors are the sensors of a thermostat.
var DeviceSensors = []DeviceSensor{
	{
		Key:         "indoor_temperature",
		Name:        "Indoor Temperature",
		DeviceClass: Temperature,
		StateClass:  Measurement,
		Value:       func(d lyric.Device) any { return floatValue(d.IndoorTemperature) },
		Suitable:    func(d lyric.Device) bool { return d.IndoorTemperature != nil },
	},
	{
		Key:         "indoor_humidity",
		Name:        "Indoor Humidity",
		DeviceClass: Humidity,
		StateClass:  Measurement,
		Value:       func(d lyric.Device) any { return floatValue(d.IndoorHumidity) },
		Suitable:    func(d lyric.Device) bool { return d.IndoorHumidity != nil },
	},
	{
		Key:         "outdoor_temperature",
		Name:        "Outdoor Temperature",
		DeviceClass: Temperature,
		StateClass:  Measurement,
		Value:       func(d lyric.Device) any { return floatValue(d.OutdoorTemperature) },
		Suitable:    func(d lyric.Device) bool { return d.OutdoorTemperature != nil },
	},
	{
		Key:         "outdoor_humidity",
		Name:        "Outdoor Humidity",
		DeviceClass: Humidity,
		StateClass:  Measurement,
		Value:       func(d lyric.Device) any { return floatValue(d.DisplayedOutdoorHumidity) },
		Suitable:    func(d lyric.Device) bool { return d.DisplayedOutdoorHumidity != nil },
	},
	{
		Key:         "next_period_time",
		Name:        "Next Period Time",
		DeviceClass: Timestamp,
		Value: func(d lyric.Device) any {
			next, err := NextOccurrence(d.ChangeableValues.NextPeriodTime, time.Now())
			if err != nil {
				return nil
			}
			return next
		},
		Suitable: func(d lyric.Device) bool {
			return d.ChangeableValues != nil && d.ChangeableValues.NextPeriodTime != ""
		},
	},
	{
		Key:  "setpoint_status",
		Name: "Setpoint Status",
		Value: func(d lyric.Device) any {
			return SetpointStatus(d.ChangeableValues.ThermostatSetpointStatus, d.ChangeableValues.NextPeriodTime)
		},
		Suitable: func(d lyric.Device) bool {
			return d.ChangeableValues != nil && d.ChangeableValues.ThermostatSetpointStatus != ""
		},
	},
}

// AccessorySensors are the sensors of a room accessory.
var AccessorySensors = []AccessorySensor{
	{
		Key:         "room_temperature",
		Name:        "Room Temperature",
		DeviceClass: Temperature,
		StateClass:  Measurement,
		Value:       func(_ lyric.Room, accessory lyric.Accessory) any { return accessory.Temperature },
		Suitable: func(_ lyric.Room, accessory lyric.Accessory) bool {
			return accessory.Type == lyric.AccessoryTypeIndoorAirSensor
		},
	},
	{
		Key:         "room_humidity",
		Name:        "Room Humidity",
		DeviceClass: Humidity,
		StateClass:  Measurement,
		Value:       func(room lyric.Room, _ lyric.Accessory) any { return room.RoomAvgHumidity },
		Suitable: func(_ lyric.Room, accessory lyric.Accessory) bool {
			return accessory.Type == lyric.AccessoryTypeIndoorAirSensor
		},
	},
}

// LeakSensors are the sensors of a leak detector.
var LeakSensors = []DeviceSensor{
	{
		Key:         "temperature",
		Name:        "Temperature",
		DeviceClass: Temperature,
		StateClass:  Measurement,
		Value: func(d lyric.Device) any {
			if d.CurrentSensorReadings == nil {
				return nil
			}
			return d.CurrentSensorReadings.Temperature
		},
		Suitable: func(d lyric.Device) bool { return d.CurrentSensorReadings != nil },
	},
	{
		Key:         "warn_temp_max",
		Name:        "Warn Temp Max",
		DeviceClass: Temperature,
		StateClass:  Measurement,
		Value:       func(d lyric.Device) any { return alarmLimit(tempSettings(d), high) },
		Suitable:    func(d lyric.Device) bool { return d.CurrentSensorReadings != nil },
	},
	{
		Key:         "warn_temp_min",
		Name:        "Warn Temp Min",
		DeviceClass: Temperature,
		StateClass:  Measurement,
		Value:       func(d lyric.Device) any { return alarmLimit(tempSettings(d), low) },
		Suitable:    func(d lyric.Device) bool { return d.CurrentSensorReadings != nil },
	},
	{
		Key:         "humidity",
		Name:        "Humidity",
		DeviceClass: Humidity,
		StateClass:  Measurement,
		Value: func(d lyric.Device) any {
			if d.CurrentSensorReadings == nil {
				return nil
			}
			return d.CurrentSensorReadings.Humidity
		},
		Suitable: func(d lyric.Device) bool { return d.CurrentSensorReadings != nil },
	},
	{
		Key:         "warn_hum_max",
		Name:        "Warn Hum Max",
		DeviceClass: Humidity,
		StateClass:  Measurement,
		Value:       func(d lyric.Device) any { return alarmLimit(humiditySettings(d), high) },
		Suitable:    func(d lyric.Device) bool { return d.CurrentSensorReadings != nil },
	},
	{
		Key:         "warn_hum_min",
		Name:        "Warn Hum Min",
		DeviceClass: Humidity,
		StateClass:  Measurement,
		Value:       func(d lyric.Device) any { return alarmLimit(humiditySettings(d), low) },
		Suitable:    func(d lyric.Device) bool { return d.CurrentSensorReadings != nil },
	},
	{
		Key:         "battery",
		Name:        "Battery",
		DeviceClass: Battery,
		StateClass:  Measurement,
		Value:       func(d lyric.Device) any { return floatValue(d.BatteryRemaining) },
		Suitable:    func(d lyric.Device) bool { return d.BatteryRemaining != nil },
	},
	{
		// reported negative (dBm); displayed as absolute value
		Key:         "wifi_strength",
		Name:        "WiFi Strength",
		DeviceClass: SignalStrength,
		StateClass:  Measurement,
		Value: func(d lyric.Device) any {
			if d.WifiSignalStrength == nil {
				return nil
			}
			return math.Abs(*d.WifiSignalStrength)
		},
		Suitable: func(d lyric.Device) bool { return d.WifiSignalStrength != nil },
	},
	{
		Key:  "last_checkin",
		Name: "Last Checkin",
		Value: func(d lyric.Device) any {
			if d.LastCheckin == "" {
				return nil
			}
			return d.LastCheckin
		},
		Suitable: func(d lyric.Device) bool { return d.LastCheckin != "" },
	},
}

// DeviceBinarySensors are the on/off sensors of a leak detector.
var DeviceBinarySensors = []DeviceBinarySensor{
	{
		Key:         "water_present",
		Name:        "Water Present",
		DeviceClass: Moisture,
		Value:       func(d lyric.Device) any { return boolValue(d.WaterPresent) },
		Suitable:    func(d lyric.Device) bool { return d.WaterPresent != nil },
	},
	{
		Key:         "is_alive",
		Name:        "Alive",
		DeviceClass: Connectivity,
		Value:       func(d lyric.Device) any { return boolValue(d.IsAlive) },
		Suitable:    func(d lyric.Device) bool { return d.IsAlive != nil },
	},
}

func floatValue(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolValue(v *bool) any {
	if v == nil {
		return nil
	}
	return *v
}

type alarmBound int

const (
	high alarmBound = iota
	low
)

func tempSettings(d lyric.Device) *lyric.AlarmSettings {
	if d.DeviceSettings == nil {
		return nil
	}
	return d.DeviceSettings.Temp
}

func humiditySettings(d lyric.Device) *lyric.AlarmSettings {
	if d.DeviceSettings == nil {
		return nil
	}
	return d.DeviceSettings.Humidity
}

func alarmLimit(settings *lyric.AlarmSettings, bound alarmBound) any {
	if settings == nil {
		return nil
	}
	if bound == high {
		return settings.High.Limit
	}
	return settings.Low.Limit
}
