package sensors

import (
	"fmt"

	"github.com/clambin/lyric-monitor/internal/poller"
	"github.com/clambin/lyric-monitor/pkg/lyric"
)

// Entity is one sensor instance for one device, built from a descriptor and
// a device state snapshot. State is the descriptor's value at snapshot time:
// a float64, bool, string or time.Time, or nil when the device doesn't
// report the underlying attribute.
type Entity struct {
	ID          string
	Name        string
	Platform    Platform
	Key         string
	DeviceClass DeviceClass
	StateClass  StateClass
	Unit        string
	Location    string
	Device      string
	State       any
}

// Build evaluates all descriptor tables against the snapshot and returns
// the resulting entities.
//
// Device and accessory sensors only register when their suitability
// predicate matches; leak and binary sensors register for every device,
// suitable or not. See DESIGN.md on this asymmetry before changing it.
func Build(update poller.Update) []Entity {
	var entities []Entity
	for _, location := range update.Locations {
		for _, device := range location.Devices {
			for _, descriptor := range DeviceSensors {
				if !descriptor.Suitable(device) {
					continue
				}
				entities = append(entities, Entity{
					ID:          device.MacID + "_" + descriptor.Key,
					Name:        device.Name + " " + descriptor.Name,
					Platform:    PlatformSensor,
					Key:         descriptor.Key,
					DeviceClass: descriptor.DeviceClass,
					StateClass:  descriptor.StateClass,
					Unit:        sensorUnit(descriptor.DeviceClass, temperatureUnit(device)),
					Location:    location.Name,
					Device:      device.Name,
					State:       descriptor.Value(device),
				})
			}

			for _, descriptor := range LeakSensors {
				entities = append(entities, Entity{
					ID:          device.UserDefinedName() + "_" + descriptor.Key,
					Name:        device.UserDefinedName() + " " + descriptor.Name,
					Platform:    PlatformSensor,
					Key:         descriptor.Key,
					DeviceClass: descriptor.DeviceClass,
					StateClass:  descriptor.StateClass,
					Unit:        sensorUnit(descriptor.DeviceClass, UnitCelsius),
					Location:    location.Name,
					Device:      device.UserDefinedName(),
					State:       descriptor.Value(device),
				})
			}

			for _, descriptor := range DeviceBinarySensors {
				entities = append(entities, Entity{
					ID:          device.UserDefinedName() + "_" + descriptor.Key,
					Name:        device.UserDefinedName() + " " + descriptor.Name,
					Platform:    PlatformBinarySensor,
					Key:         descriptor.Key,
					DeviceClass: descriptor.DeviceClass,
					Location:    location.Name,
					Device:      device.UserDefinedName(),
					State:       descriptor.Value(device),
				})
			}

			entities = append(entities, buildAccessorySensors(location, device, update.Rooms[device.MacID])...)
		}
	}
	return entities
}

func buildAccessorySensors(location lyric.Location, device lyric.Device, rooms []lyric.Room) []Entity {
	var entities []Entity
	for _, room := range rooms {
		for _, accessory := range room.Accessories {
			for _, descriptor := range AccessorySensors {
				if !descriptor.Suitable(room, accessory) {
					continue
				}
				entities = append(entities, Entity{
					ID:          accessoryID(device, room, accessory, descriptor.Key),
					Name:        room.RoomName + " " + descriptor.Name,
					Platform:    PlatformSensor,
					Key:         descriptor.Key,
					DeviceClass: descriptor.DeviceClass,
					StateClass:  descriptor.StateClass,
					Unit:        sensorUnit(descriptor.DeviceClass, temperatureUnit(device)),
					Location:    location.Name,
					Device:      room.RoomName,
					State:       descriptor.Value(room, accessory),
				})
			}
		}
	}
	return entities
}

func accessoryID(device lyric.Device, room lyric.Room, accessory lyric.Accessory, key string) string {
	return fmt.Sprintf("%s_room%d_acc%d_%s", device.MacID, room.ID, accessory.ID, key)
}

// temperatureUnit returns the unit a device displays temperatures in.
func temperatureUnit(device lyric.Device) string {
	if device.Units == "Fahrenheit" {
		return UnitFahrenheit
	}
	return UnitCelsius
}

func sensorUnit(class DeviceClass, tempUnit string) string {
	switch class {
	case Temperature:
		return tempUnit
	case Humidity, Battery:
		return UnitPercent
	default:
		return ""
	}
}
