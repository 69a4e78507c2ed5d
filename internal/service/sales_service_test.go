package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruta593/fleet-console/internal/layout"
	"github.com/ruta593/fleet-console/internal/model"
	"github.com/ruta593/fleet-console/internal/repository"
	"github.com/ruta593/fleet-console/internal/seatmap"
)

type fakeTrips map[uint64]*model.Frequency

func (f fakeTrips) GetByIDAndCooperative(_ context.Context, id, coop uint64) (*model.Frequency, error) {
	t, ok := f[id]
	if !ok {
		return nil, repository.ErrFrequencyNotFound
	}
	if t.CooperativeID != coop {
		return nil, repository.ErrForbidden
	}
	return t, nil
}

type fakeBuses map[uint64]*model.Bus

func (f fakeBuses) GetByID(_ context.Context, id uint64) (*model.Bus, error) {
	if b, ok := f[id]; ok {
		return b, nil
	}
	return nil, repository.ErrBusNotFound
}

type fakeStructureReader map[uint64]*model.BusStructure

func (f fakeStructureReader) GetByID(_ context.Context, id uint64) (*model.BusStructure, error) {
	if s, ok := f[id]; ok {
		return s, nil
	}
	return nil, repository.ErrBusStructureNotFound
}

type fakeTickets struct {
	tickets map[string]*model.Ticket
	err     error
	page    *repository.ClientPage
}

func (f *fakeTickets) GetBySeat(_ context.Context, _ uint64, seatID string) (*model.Ticket, error) {
	if f.err != nil {
		return nil, f.err
	}
	if t, ok := f.tickets[seatID]; ok {
		return t, nil
	}
	return nil, repository.ErrTicketNotFound
}

func (f *fakeTickets) ReservedSeatIDs(context.Context, uint64) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	ids := make([]string, 0, len(f.tickets))
	for id := range f.tickets {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeTickets) ListClients(_ context.Context, _ uint64, page, _ int) (*repository.ClientPage, error) {
	if f.err != nil {
		return nil, f.err
	}
	p := *f.page
	p.Page = page
	return &p, nil
}

var clerk = model.Identity{UserID: 11, CooperativeID: 3, Role: model.RoleClerk}

func salesFixture(tickets *fakeTickets) *SalesService {
	structure := &model.BusStructure{
		ID:            5,
		CooperativeID: 3,
		Layout: layout.Layout{
			1: {
				{ID: "seat-v-v1", Type: layout.TypeSeat, Name: "V1", AdditionalCost: 2},
				{ID: "seat-v-v2", Type: layout.TypeSeat, Name: "V2", AdditionalCost: 2},
				{ID: "bath-1", Type: layout.TypeBathroom, Name: "Baño 1"},
			},
			2: {
				{ID: "seat-n-n1", Type: layout.TypeSeat, Name: "N1", Status: layout.StatusReserved},
			},
		},
	}
	return NewSalesService(
		fakeTrips{
			40: {ID: 40, CooperativeID: 3, BusID: 8, BusStructureID: 5},
			41: {ID: 41, CooperativeID: 3, BusID: 8, BusStructureID: 6},
		},
		fakeBuses{8: {ID: 8, CooperativeID: 3, BusStructureID: 5}},
		fakeStructureReader{5: structure},
		tickets,
	)
}

func TestSalesService_SeatMap(t *testing.T) {
	svc := salesFixture(&fakeTickets{tickets: map[string]*model.Ticket{"seat-v-v2": {ID: 1}}})

	p, err := svc.SeatMap(context.Background(), clerk, 40)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Total)
	assert.Equal(t, 2, p.Reserved)
	assert.Equal(t, 1, p.Free)

	seat, ok := p.Seat("seat-v-v1")
	require.True(t, ok)
	assert.Equal(t, layout.StatusFree, seat.Status)
	seat, _ = p.Seat("seat-v-v2")
	assert.Equal(t, layout.StatusReserved, seat.Status)
	seat, _ = p.Seat("seat-n-n1")
	assert.Equal(t, layout.StatusReserved, seat.Status)
}

func TestSalesService_SeatMapErrors(t *testing.T) {
	svc := salesFixture(&fakeTickets{})
	ctx := context.Background()

	_, err := svc.SeatMap(ctx, clerk, 99)
	assert.ErrorIs(t, err, repository.ErrFrequencyNotFound)

	_, err = svc.SeatMap(ctx, model.Identity{CooperativeID: 1}, 40)
	assert.ErrorIs(t, err, repository.ErrForbidden)

	_, err = svc.SeatMap(ctx, clerk, 41)
	assert.ErrorIs(t, err, repository.ErrConflict)

	failing := salesFixture(&fakeTickets{err: errors.New("timeout")})
	_, err = failing.SeatMap(ctx, clerk, 40)
	assert.EqualError(t, err, "reserved seats of trip 40: timeout")
}

func TestSalesService_TicketBySeat(t *testing.T) {
	sold := &model.Ticket{ID: 1, SeatID: "seat-v-v2", TicketCode: "T-0001"}
	svc := salesFixture(&fakeTickets{tickets: map[string]*model.Ticket{"seat-v-v2": sold}})
	ctx := context.Background()

	got, err := svc.TicketBySeat(ctx, 40, "seat-v-v2")
	require.NoError(t, err)
	assert.Same(t, sold, got)

	_, err = svc.TicketBySeat(ctx, 40, "seat-v-v1")
	assert.ErrorIs(t, err, seatmap.ErrTicketNotFound)

	_, err = svc.Ticket(ctx, model.Identity{CooperativeID: 9}, 40, "seat-v-v2")
	assert.ErrorIs(t, err, repository.ErrForbidden)

	broken := salesFixture(&fakeTickets{err: errors.New("conn reset")})
	_, err = broken.TicketBySeat(ctx, 40, "seat-v-v2")
	require.Error(t, err)
	assert.NotErrorIs(t, err, seatmap.ErrTicketNotFound)
}

func TestSalesService_Clients(t *testing.T) {
	page := &repository.ClientPage{Items: []repository.ClientTicket{{ClientName: "Ana"}}, TotalPages: 3}
	svc := salesFixture(&fakeTickets{page: page})

	got, err := svc.Clients(context.Background(), clerk, 40, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 3, got.TotalPages)
	assert.Equal(t, "Ana", got.Items[0].ClientName)
}
