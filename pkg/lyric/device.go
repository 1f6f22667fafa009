package lyric

// Device classes reported by the API.
const (
	DeviceClassThermostat   = "Thermostat"
	DeviceClassLeakDetector = "LeakDetector"
)

// Setpoint hold modes of a thermostat. The vendor schema defines this as a
// closed set.
const (
	NoHold        = "NoHold"
	PermanentHold = "PermanentHold"
	TemporaryHold = "TemporaryHold"
	VacationHold  = "VacationHold"
	HoldUntil     = "HoldUntil"
)

// Device is a single device registered at a Location: a thermostat or a leak
// detector. Fields that only some device classes report are pointers, so
// callers can distinguish "absent" from a zero value.
type Device struct {
	DeviceClass              string            `json:"deviceClass"`
	DeviceType               string            `json:"deviceType"`
	DeviceID                 string            `json:"deviceID"`
	MacID                    string            `json:"macID"`
	Name                     string            `json:"name"`
	Units                    string            `json:"units"`
	IsAlive                  *bool             `json:"isAlive,omitempty"`
	FirmwareVersion          string            `json:"firmwareVer,omitempty"`
	IndoorTemperature        *float64          `json:"indoorTemperature,omitempty"`
	IndoorHumidity           *float64          `json:"indoorHumidity,omitempty"`
	OutdoorTemperature       *float64          `json:"outdoorTemperature,omitempty"`
	DisplayedOutdoorHumidity *float64          `json:"displayedOutdoorHumidity,omitempty"`
	ChangeableValues         *ChangeableValues `json:"changeableValues,omitempty"`
	WaterPresent             *bool             `json:"waterPresent,omitempty"`
	CurrentSensorReadings    *SensorReadings   `json:"currentSensorReadings,omitempty"`
	DeviceSettings           *DeviceSettings   `json:"deviceSettings,omitempty"`
	BatteryRemaining         *float64          `json:"batteryRemaining,omitempty"`
	WifiSignalStrength       *float64          `json:"wifiSignalStrength,omitempty"`
	LastCheckin              string            `json:"lastCheckin,omitempty"`
}

// IsThermostat reports whether the device is a thermostat.
func (d Device) IsThermostat() bool {
	return d.DeviceClass == DeviceClassThermostat
}

// IsLeakDetector reports whether the device is a leak detector.
func (d Device) IsLeakDetector() bool {
	return d.DeviceClass == DeviceClassLeakDetector
}

// UserDefinedName returns the name the user gave the device in the vendor
// app, falling back to the device name. Leak detectors carry theirs in the
// device settings.
func (d Device) UserDefinedName() string {
	if d.DeviceSettings != nil && d.DeviceSettings.UserDefinedName != "" {
		return d.DeviceSettings.UserDefinedName
	}
	return d.Name
}

// ChangeableValues holds the scheduling state of a thermostat.
type ChangeableValues struct {
	Mode                     string   `json:"mode"`
	HeatSetpoint             *float64 `json:"heatSetpoint,omitempty"`
	CoolSetpoint             *float64 `json:"coolSetpoint,omitempty"`
	ThermostatSetpointStatus string   `json:"thermostatSetpointStatus,omitempty"`
	NextPeriodTime           string   `json:"nextPeriodTime,omitempty"`
	HeatCoolMode             string   `json:"heatCoolMode,omitempty"`
}

// SensorReadings holds the onboard measurements of a leak detector.
type SensorReadings struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
}

// DeviceSettings holds the user-configurable settings of a leak detector.
type DeviceSettings struct {
	UserDefinedName string         `json:"userDefinedName"`
	Temp            *AlarmSettings `json:"temp,omitempty"`
	Humidity        *AlarmSettings `json:"humidity,omitempty"`
}

// AlarmSettings holds the high & low warning limits for one measurement.
type AlarmSettings struct {
	High AlarmLimit `json:"high"`
	Low  AlarmLimit `json:"low"`
}

// AlarmLimit is a single warning limit.
type AlarmLimit struct {
	Limit float64 `json:"limit"`
}
