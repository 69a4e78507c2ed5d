package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocator_CountersAreIndependent(t *testing.T) {
	a := NewAllocator()

	assert.Equal(t, "V1", a.NextSeatName("V"))
	assert.Equal(t, "Baño 1", a.NextBathroomName())
	assert.Equal(t, "V2", a.NextSeatName("V"))
	assert.Equal(t, "Baño 2", a.NextBathroomName())
	assert.Equal(t, "Escalera 1", a.NextStairsName())
	assert.Equal(t, "N1", a.NextSeatName("N"))
	assert.Equal(t, "V3", a.NextSeatName("V"))
}

func TestAllocateID(t *testing.T) {
	tests := []struct {
		typ  ElementType
		code string
		name string
		want string
	}{
		{TypeSeat, "V", "V1", "seat-v-v1"},
		{TypeSeat, "VIP", "VIP12", "seat-vip-vip12"},
		{TypeBathroom, "", "Baño 3", "bath-3"},
		{TypeStairs, "", "Escalera 2", "stairs-2"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, AllocateID(tt.typ, tt.code, tt.name))
		})
	}
}

func TestAllocateID_CaseOnlyCodesCollide(t *testing.T) {
	// Lower-casing is deliberate; the collision is caught by IsUnique.
	assert.Equal(t, AllocateID(TypeSeat, "V", "V1"), AllocateID(TypeSeat, "v", "v1"))
}

func TestIsUnique_AcrossFloors(t *testing.T) {
	p := NewFloorPlan()
	require.NoError(t, p.SetFloorCount(2))
	_, err := p.AddElement(2, TypeStairs, "")
	require.NoError(t, err)

	assert.False(t, IsUnique("stairs-1", p))
	assert.True(t, IsUnique("stairs-2", p))
	assert.True(t, IsUnique("anything", nil))
}

func TestAllocator_Restore(t *testing.T) {
	a := NewAllocator()
	a.Restore(Layout{
		1: {
			{ID: "seat-v-v4", Type: TypeSeat, Name: "V4"},
			{ID: "seat-v-v2", Type: TypeSeat, Name: "V2"},
			{ID: "bath-2", Type: TypeBathroom, Name: "Baño 2"},
			{ID: "odd", Type: TypeSeat, Name: "custom"},
		},
		2: {
			{ID: "stairs-1", Type: TypeStairs, Name: "Escalera 1"},
		},
	})

	assert.Equal(t, "V5", a.NextSeatName("V"))
	assert.Equal(t, "N1", a.NextSeatName("N"))
	assert.Equal(t, "Baño 3", a.NextBathroomName())
	assert.Equal(t, "Escalera 2", a.NextStairsName())
}

func TestSeatCodeAndNumber(t *testing.T) {
	tests := []struct {
		el   Element
		code string
		n    int
		ok   bool
	}{
		{Element{ID: "seat-a2-a21", Name: "A21"}, "A2", 1, true},
		{Element{ID: "seat-vip-vip12", Name: "VIP12"}, "VIP", 12, true},
		{Element{ID: "seat-v-v3", Name: "v3"}, "v", 3, true},
		{Element{ID: "legacy", Name: "B7"}, "B", 7, true},
		{Element{ID: "seat-x-custom", Name: "custom"}, "", 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.el.ID, func(t *testing.T) {
			code, n, ok := seatCodeAndNumber(tc.el)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.code, code)
			assert.Equal(t, tc.n, n)
		})
	}
}
