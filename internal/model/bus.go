package model

// Bus is a vehicle of a cooperative built on one bus structure.
type Bus struct {
	ID             uint64 `json:"id"`               // buses.id
	CooperativeID  uint64 `json:"cooperative_id"`   // buses.cooperative_id
	BusStructureID uint64 `json:"bus_structure_id"` // buses.bus_structure_id
	BusNumber      string `json:"bus_number"`       // buses.bus_number
	LicensePlate   string `json:"license_plate"`    // buses.license_plate
}
