package model

import (
	"time"

	"github.com/ruta593/fleet-console/internal/layout"
)

// BusStructure is a saved floor plan that buses of a cooperative are built
// on.  Layout holds the serialized floors; it is stored as a JSON column.
//
// Fields:
//
//	ID            – primary key identifier, the opaque layout id.
//	CooperativeID – cooperative that authored the structure.
//	Name          – display name chosen in the editor.
//	Floors        – number of floors (1 or 2).
//	SeatCount     – number of seat elements across all floors.
//	Layout        – floor number to placed elements.
//	CreatedAt     – creation timestamp.
type BusStructure struct {
	ID            uint64        `json:"id"`             // bus_structures.id
	CooperativeID uint64        `json:"cooperative_id"` // bus_structures.cooperative_id
	Name          string        `json:"name"`           // bus_structures.name
	Floors        int           `json:"floors"`         // bus_structures.floors
	SeatCount     int           `json:"seat_count"`     // bus_structures.seat_count
	Layout        layout.Layout `json:"layout"`         // bus_structures.layout (JSON)
	CreatedAt     time.Time     `json:"created_at"`     // bus_structures.created_at
}

// BusStructureSummary is the list view of a structure without its layout.
type BusStructureSummary struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Floors    int       `json:"floors"`
	SeatCount int       `json:"seat_count"`
	CreatedAt time.Time `json:"created_at"`
}
