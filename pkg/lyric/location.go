package lyric

// Location is a home registered with the vendor, with all devices in it.
type Location struct {
	LocationID int      `json:"locationID"`
	Name       string   `json:"name"`
	Devices    []Device `json:"devices"`
}
