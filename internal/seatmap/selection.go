package seatmap

import "github.com/ruta593/fleet-console/internal/layout"

// SelectedSeat is a seat the operator has picked during a sale.
type SelectedSeat struct {
	SeatID         string            `json:"seat_id"`
	AdditionalCost float64           `json:"additional_cost"`
	Status         layout.SeatStatus `json:"status"`
}

// SelectionStore is the set of seats picked in one sale session, kept in
// the order they were picked.  It never holds a reserved seat.
type SelectionStore struct {
	order []string
	seats map[string]SelectedSeat
}

// NewSelectionStore returns an empty store.
func NewSelectionStore() *SelectionStore {
	return &SelectionStore{seats: make(map[string]SelectedSeat)}
}

// AddSeat adds seat unless it is reserved.  Adding a seat that is already
// selected keeps a single membership.  It reports whether seat is selected
// after the call.
func (s *SelectionStore) AddSeat(seat SelectedSeat) bool {
	if seat.Status == layout.StatusReserved || seat.SeatID == "" {
		return false
	}
	if _, ok := s.seats[seat.SeatID]; !ok {
		s.order = append(s.order, seat.SeatID)
	}
	s.seats[seat.SeatID] = seat
	return true
}

// RemoveSeat drops seatID; absent ids are ignored.
func (s *SelectionStore) RemoveSeat(seatID string) {
	if _, ok := s.seats[seatID]; !ok {
		return
	}
	delete(s.seats, seatID)
	for i, id := range s.order {
		if id == seatID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Clear empties the store.
func (s *SelectionStore) Clear() {
	s.order = nil
	clear(s.seats)
}

// IsSelected reports membership of seatID.
func (s *SelectionStore) IsSelected(seatID string) bool {
	_, ok := s.seats[seatID]
	return ok
}

// Len returns the number of selected seats.
func (s *SelectionStore) Len() int { return len(s.order) }

// Seats returns the selected seats in pick order.
func (s *SelectionStore) Seats() []SelectedSeat {
	out := make([]SelectedSeat, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.seats[id])
	}
	return out
}

// AdditionalTotal sums the surcharges of the selected seats.
func (s *SelectionStore) AdditionalTotal() float64 {
	total := 0.0
	for _, seat := range s.seats {
		total += seat.AdditionalCost
	}
	return total
}
