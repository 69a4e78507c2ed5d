package model

import "time"

// Frequency is one scheduled trip of a bus on a route.  Seats are sold per
// frequency, so it is the trip id used by the seat map and ticket lookups.
//
// Fields:
//
//	ID             – primary key identifier (trip id).
//	CooperativeID  – cooperative operating the trip.
//	BusID          – bus assigned to the trip.
//	BusStructureID – structure the seat map is rendered from.
//	Date           – departure date.
//	DepartureTime  – "HH:MM" departure time.
//	ArrivalTime    – "HH:MM" arrival time.
type Frequency struct {
	ID             uint64    `json:"id"`               // frequencies.id
	CooperativeID  uint64    `json:"cooperative_id"`   // frequencies.cooperative_id
	BusID          uint64    `json:"bus_id"`           // frequencies.bus_id
	BusStructureID uint64    `json:"bus_structure_id"` // frequencies.bus_structure_id
	Date           time.Time `json:"date"`             // frequencies.date
	DepartureTime  string    `json:"departure_time"`   // frequencies.departure_time
	ArrivalTime    string    `json:"arrival_time"`     // frequencies.arrival_time
}
