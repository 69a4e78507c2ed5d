// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// LayoutSavedEvent is published when a bus structure is saved.  It carries
// enough for downstream consumers to audit the change without querying the
// primary database.
type LayoutSavedEvent struct {
	BusStructureID uint64         `json:"bus_structure_id"`
	CooperativeID  uint64         `json:"cooperative_id"`
	SavedBy        uint64         `json:"saved_by"`
	Name           string         `json:"name"`
	Floors         int            `json:"floors"`
	SeatCount      int            `json:"seat_count"`
	ElementCounts  map[string]int `json:"element_counts"`
	SavedAt        string         `json:"saved_at"`
}
