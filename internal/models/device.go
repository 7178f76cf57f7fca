package models

// Device is one simulated bench instrument. Regenerated on every listing.
type Device struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`   // teaching_equipment
	Status      string  `json:"status"` // online | offline
	Power       bool    `json:"power"`
	Temperature float64 `json:"temperature"` // °C
}

// DeviceList is the payload of /api/devices.
type DeviceList struct {
	Devices []Device `json:"devices"`
	Total   int      `json:"total"`
	Online  int      `json:"online"`
}
