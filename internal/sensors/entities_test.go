package sensors_test

import (
	"testing"

	"github.com/clambin/lyric-monitor/internal/poller/testutils"
	"github.com/clambin/lyric-monitor/internal/sensors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	entities := sensors.Build(testutils.Update())

	tests := []struct {
		id       string
		platform sensors.Platform
		class    sensors.DeviceClass
		unit     string
		state    any
	}{
		{id: "00A01234_indoor_temperature", platform: sensors.PlatformSensor, class: sensors.Temperature, unit: "°C", state: 20.5},
		{id: "00A01234_indoor_humidity", platform: sensors.PlatformSensor, class: sensors.Humidity, unit: "%", state: 45.0},
		{id: "00A01234_outdoor_temperature", platform: sensors.PlatformSensor, class: sensors.Temperature, unit: "°C", state: 9.5},
		{id: "00A01234_outdoor_humidity", platform: sensors.PlatformSensor, class: sensors.Humidity, unit: "%", state: 71.0},
		{id: "00A01234_setpoint_status", platform: sensors.PlatformSensor, state: "Following Schedule"},
		{id: "Basement_temperature", platform: sensors.PlatformSensor, class: sensors.Temperature, unit: "°C", state: 18.1},
		{id: "Basement_warn_temp_max", platform: sensors.PlatformSensor, class: sensors.Temperature, unit: "°C", state: 30.0},
		{id: "Basement_warn_temp_min", platform: sensors.PlatformSensor, class: sensors.Temperature, unit: "°C", state: 5.0},
		{id: "Basement_humidity", platform: sensors.PlatformSensor, class: sensors.Humidity, unit: "%", state: 52.0},
		{id: "Basement_warn_hum_max", platform: sensors.PlatformSensor, class: sensors.Humidity, unit: "%", state: 70.0},
		{id: "Basement_warn_hum_min", platform: sensors.PlatformSensor, class: sensors.Humidity, unit: "%", state: 20.0},
		{id: "Basement_battery", platform: sensors.PlatformSensor, class: sensors.Battery, unit: "%", state: 94.0},
		{id: "Basement_wifi_strength", platform: sensors.PlatformSensor, class: sensors.SignalStrength, state: 62.0},
		{id: "Basement_last_checkin", platform: sensors.PlatformSensor, state: "2024-09-01T10:12:00Z"},
		{id: "Basement_water_present", platform: sensors.PlatformBinarySensor, class: sensors.Moisture, state: false},
		{id: "Basement_is_alive", platform: sensors.PlatformBinarySensor, class: sensors.Connectivity, state: true},
		{id: "00A01234_room1_acc0_room_temperature", platform: sensors.PlatformSensor, class: sensors.Temperature, unit: "°C", state: 19.0},
		{id: "00A01234_room1_acc0_room_humidity", platform: sensors.PlatformSensor, class: sensors.Humidity, unit: "%", state: 48.0},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			entity, found := findEntity(entities, tt.id)
			require.True(t, found)
			assert.Equal(t, tt.platform, entity.Platform)
			assert.Equal(t, tt.class, entity.DeviceClass)
			assert.Equal(t, tt.unit, entity.Unit)
			assert.Equal(t, tt.state, entity.State)
			assert.Equal(t, "Home", entity.Location)
		})
	}

	// next_period_time resolves against the wall clock; only check presence
	entity, found := findEntity(entities, "00A01234_next_period_time")
	require.True(t, found)
	assert.Equal(t, sensors.Timestamp, entity.DeviceClass)
	assert.NotNil(t, entity.State)
}

func TestBuild_Registration(t *testing.T) {
	update := testutils.Update()

	entities := sensors.Build(update)

	// device sensors are filtered on suitability: the leak detector has no
	// thermostat attributes
	_, found := findEntity(entities, "00B05678_indoor_temperature")
	assert.False(t, found)
	_, found = findEntity(entities, "00B05678_setpoint_status")
	assert.False(t, found)

	// leak & binary sensors register unconditionally: the thermostat gets
	// them too, with a nil state for attributes it doesn't report
	entity, found := findEntity(entities, "Living Room_temperature")
	require.True(t, found)
	assert.Nil(t, entity.State)
	entity, found = findEntity(entities, "Living Room_is_alive")
	require.True(t, found)
	assert.Equal(t, true, entity.State)

	// accessory sensors are filtered on accessory type
	update.Rooms["00A01234"][0].Accessories[0].Type = "MotionSensor"
	entities = sensors.Build(update)
	_, found = findEntity(entities, "00A01234_room1_acc0_room_temperature")
	assert.False(t, found)
}

func TestBuild_Fahrenheit(t *testing.T) {
	update := testutils.Update()
	update.Locations[0].Devices[0].Units = "Fahrenheit"

	entities := sensors.Build(update)

	entity, found := findEntity(entities, "00A01234_indoor_temperature")
	require.True(t, found)
	assert.Equal(t, "°F", entity.Unit)

	// room sensors follow the parent thermostat's unit
	entity, found = findEntity(entities, "00A01234_room1_acc0_room_temperature")
	require.True(t, found)
	assert.Equal(t, "°F", entity.Unit)

	// leak detectors always report in celsius
	entity, found = findEntity(entities, "Basement_temperature")
	require.True(t, found)
	assert.Equal(t, "°C", entity.Unit)
}

func findEntity(entities []sensors.Entity, id string) (sensors.Entity, bool) {
	for _, entity := range entities {
		if entity.ID == id {
			return entity, true
		}
	}
	return sensors.Entity{}, false
}
