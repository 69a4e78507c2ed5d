// Package seatmap projects a stored bus layout onto the sale-time state of
// one scheduled trip and tracks which seats an operator has picked.
package seatmap

import "github.com/ruta593/fleet-console/internal/layout"

// Reservation is the state of one seat in a reservation snapshot.
type Reservation struct {
	Reserved bool `json:"reserved"`
}

// Snapshot maps seat id to its reservation state for one trip.  Seats that
// are missing from the snapshot are free.
type Snapshot map[string]Reservation

// ReservedSnapshot builds a snapshot in which every listed seat is reserved.
func ReservedSnapshot(seatIDs []string) Snapshot {
	s := make(Snapshot, len(seatIDs))
	for _, id := range seatIDs {
		s[id] = Reservation{Reserved: true}
	}
	return s
}

// SnapshotFromLayout derives a snapshot from a layout whose seats already
// carry a status, which is what the seat-structure endpoint returns.
func SnapshotFromLayout(l layout.Layout) Snapshot {
	s := make(Snapshot)
	for _, elements := range l {
		for _, el := range elements {
			if el.IsSeat() && el.Status == layout.StatusReserved {
				s[el.ID] = Reservation{Reserved: true}
			}
		}
	}
	return s
}

// Projection is the renderable state of a trip's seat map.
type Projection struct {
	Floors   layout.Layout `json:"floors"`
	Total    int           `json:"total"`
	Reserved int           `json:"reserved"`
	Free     int           `json:"free"`
}

// Project annotates every seat of l with its status from snap and computes
// the aggregate counts.  Non-seat elements are passed through without a
// status.  Neither input is modified.
func Project(l layout.Layout, snap Snapshot) Projection {
	p := Projection{Floors: make(layout.Layout, len(l))}
	for floor, elements := range l {
		out := make([]layout.Element, len(elements))
		for i, el := range elements {
			if el.IsSeat() {
				el.Status = layout.StatusFree
				if snap[el.ID].Reserved {
					el.Status = layout.StatusReserved
					p.Reserved++
				}
				p.Total++
			} else {
				el.Status = ""
			}
			out[i] = el
		}
		p.Floors[floor] = out
	}
	p.Free = p.Total - p.Reserved
	return p
}

// Seat finds a seat by id on any floor.
func (p Projection) Seat(id string) (layout.Element, bool) {
	for _, elements := range p.Floors {
		for _, el := range elements {
			if el.ID == id && el.IsSeat() {
				return el, true
			}
		}
	}
	return layout.Element{}, false
}

// FloorCount returns how many floors the projection renders.
func (p Projection) FloorCount() int { return len(p.Floors) }
