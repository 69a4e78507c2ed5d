package seatmap

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruta593/fleet-console/internal/layout"
)

func threeSeatLayout() layout.Layout {
	return layout.Layout{
		1: {
			{ID: "A", Type: layout.TypeSeat, Name: "V1", AdditionalCost: 3},
			{ID: "bath-1", Type: layout.TypeBathroom, Name: "Baño 1"},
			{ID: "B", Type: layout.TypeSeat, Name: "V2", AdditionalCost: 3},
		},
		2: {
			{ID: "C", Type: layout.TypeSeat, Name: "N1"},
			{ID: "stairs-1", Type: layout.TypeStairs, Name: "Escalera 1"},
		},
	}
}

func TestProject_UnknownSeatsDefaultToFree(t *testing.T) {
	p := Project(threeSeatLayout(), Snapshot{"A": {Reserved: true}})

	assert.Equal(t, 3, p.Total)
	assert.Equal(t, 1, p.Reserved)
	assert.Equal(t, 2, p.Free)

	for id, want := range map[string]layout.SeatStatus{
		"A": layout.StatusReserved,
		"B": layout.StatusFree,
		"C": layout.StatusFree,
	} {
		seat, ok := p.Seat(id)
		require.True(t, ok, id)
		assert.Equal(t, want, seat.Status, id)
	}

	assert.Empty(t, p.Floors[1][1].Status, "bathrooms carry no status")
	assert.Equal(t, 2, p.FloorCount())
}

func TestProject_DoesNotMutateInputs(t *testing.T) {
	l := threeSeatLayout()
	Project(l, ReservedSnapshot([]string{"A", "C"}))
	assert.Empty(t, l[1][0].Status)
}

func TestProject_EmptyInputs(t *testing.T) {
	p := Project(nil, nil)
	assert.Zero(t, p.Total)
	assert.Zero(t, p.Free)
	_, ok := p.Seat("A")
	assert.False(t, ok)
}

func TestProject_SnapshotEntriesForMissingSeatsAreIgnored(t *testing.T) {
	p := Project(threeSeatLayout(), Snapshot{"Z": {Reserved: true}, "B": {Reserved: false}})
	assert.Equal(t, 0, p.Reserved)
	assert.Equal(t, 3, p.Free)
}

func TestSnapshotFromLayout(t *testing.T) {
	l := threeSeatLayout()
	l[1][2].Status = layout.StatusReserved
	l[1][1].Status = layout.StatusReserved // not a seat, ignored

	snap := SnapshotFromLayout(l)
	assert.Equal(t, Snapshot{"B": {Reserved: true}}, snap)

	_, ok := Project(l, snap).Seat("bath-1")
	assert.False(t, ok)
}

func TestSnapshotFromLayout_ShortStatusCodes(t *testing.T) {
	var l layout.Layout
	require.NoError(t, json.Unmarshal([]byte(`{"1":[
		{"id":"A","type":"seat","name":"V1","status":"r"},
		{"id":"B","type":"seat","name":"V2","status":"f"}
	]}`), &l))

	p := Project(l, SnapshotFromLayout(l))
	assert.Equal(t, 1, p.Reserved)
	assert.Equal(t, 1, p.Free)
	seat, ok := p.Seat("A")
	require.True(t, ok)
	assert.Equal(t, layout.StatusReserved, seat.Status)
}
