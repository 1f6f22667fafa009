package hass

import (
	"strconv"
	"time"
)

// discoveryMessage is the MQTT discovery config for one entity.
// https://www.home-assistant.io/integrations/mqtt/#mqtt-discovery
type discoveryMessage struct {
	Name              string          `json:"name"`
	UniqueID          string          `json:"unique_id"`
	ObjectID          string          `json:"object_id,omitempty"`
	StateTopic        string          `json:"state_topic"`
	AvailabilityTopic string          `json:"availability_topic,omitempty"`
	DeviceClass       string          `json:"device_class,omitempty"`
	StateClass        string          `json:"state_class,omitempty"`
	UnitOfMeasurement string          `json:"unit_of_measurement,omitempty"`
	Device            discoveryDevice `json:"device"`
}

// discoveryDevice groups entities under one device in Home Assistant.
type discoveryDevice struct {
	Identifiers  []string `json:"identifiers"`
	Name         string   `json:"name"`
	Manufacturer string   `json:"manufacturer,omitempty"`
}

func formatState(state any) string {
	switch v := state.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "ON"
		}
		return "OFF"
	case time.Time:
		return v.Format(time.RFC3339)
	case string:
		return v
	default:
		return ""
	}
}
