package lyric

// AccessoryTypeIndoorAirSensor is the accessory type of a room-level
// temperature/humidity sensor.
const AccessoryTypeIndoorAirSensor = "IndoorAirSensor"

// Priority describes which rooms a thermostat prioritizes, including the
// accessory sensors reporting from each room.
type Priority struct {
	DeviceID        string          `json:"deviceId"`
	Status          string          `json:"status"`
	CurrentPriority CurrentPriority `json:"currentPriority"`
}

// CurrentPriority is the active priority selection of a thermostat.
type CurrentPriority struct {
	DeviceID           string `json:"deviceId"`
	ActivePriorityType string `json:"activePriorityType"`
	Rooms              []Room `json:"rooms"`
}

// Room is a room reporting to a thermostat.
type Room struct {
	ID              int         `json:"id"`
	RoomName        string      `json:"roomName"`
	RoomAvgTemp     float64     `json:"roomAvgTemp"`
	RoomAvgHumidity float64     `json:"roomAvgHumidity"`
	OverallMotion   bool        `json:"overallMotion"`
	Accessories     []Accessory `json:"accessories"`
}

// Accessory is a remote sensor in a Room, e.g. an indoor air sensor paired
// with the thermostat.
type Accessory struct {
	ID            int     `json:"id"`
	Type          string  `json:"type"`
	Temperature   float64 `json:"temperature"`
	Status        string  `json:"status"`
	DetectMotion  bool    `json:"detectMotion"`
	ExcludeTemp   bool    `json:"excludeTemp"`
	ExcludeMotion bool    `json:"excludeMotion"`
}
