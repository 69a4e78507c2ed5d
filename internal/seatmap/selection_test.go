package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ruta593/fleet-console/internal/layout"
)

func TestSelectionStore_AddIsIdempotent(t *testing.T) {
	s := NewSelectionStore()
	seat := SelectedSeat{SeatID: "seat-v-v1", AdditionalCost: 2, Status: layout.StatusFree}

	assert.True(t, s.AddSeat(seat))
	assert.True(t, s.AddSeat(seat))
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.IsSelected("seat-v-v1"))
	assert.Equal(t, 2.0, s.AdditionalTotal())
}

func TestSelectionStore_RejectsReserved(t *testing.T) {
	s := NewSelectionStore()
	assert.False(t, s.AddSeat(SelectedSeat{SeatID: "A", Status: layout.StatusReserved}))
	assert.False(t, s.AddSeat(SelectedSeat{}))
	assert.Zero(t, s.Len())
}

func TestSelectionStore_RemoveAndOrder(t *testing.T) {
	s := NewSelectionStore()
	for _, id := range []string{"A", "B", "C"} {
		s.AddSeat(SelectedSeat{SeatID: id, AdditionalCost: 1, Status: layout.StatusFree})
	}

	s.RemoveSeat("missing")
	assert.Equal(t, 3, s.Len())

	s.RemoveSeat("B")
	seats := s.Seats()
	assert.Equal(t, []string{"A", "C"}, []string{seats[0].SeatID, seats[1].SeatID})
	assert.False(t, s.IsSelected("B"))

	s.Clear()
	s.Clear()
	assert.Zero(t, s.Len())
	assert.Empty(t, s.Seats())
	assert.Zero(t, s.AdditionalTotal())
}
