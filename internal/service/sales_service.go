package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ruta593/fleet-console/internal/model"
	"github.com/ruta593/fleet-console/internal/repository"
	"github.com/ruta593/fleet-console/internal/seatmap"
)

// TripSource loads scheduled trips with ownership enforced.
type TripSource interface {
	GetByIDAndCooperative(ctx context.Context, id, cooperativeID uint64) (*model.Frequency, error)
}

// BusSource loads buses.
type BusSource interface {
	GetByID(ctx context.Context, id uint64) (*model.Bus, error)
}

// StructureReader loads a bus structure without ownership checks; the trip
// has already been checked.
type StructureReader interface {
	GetByID(ctx context.Context, id uint64) (*model.BusStructure, error)
}

// TicketStore answers seat-state questions for a trip.
type TicketStore interface {
	GetBySeat(ctx context.Context, frequencyID uint64, seatID string) (*model.Ticket, error)
	ReservedSeatIDs(ctx context.Context, frequencyID uint64) ([]string, error)
	ListClients(ctx context.Context, frequencyID uint64, page, size int) (*repository.ClientPage, error)
}

// SalesService builds trip seat maps and resolves tickets.  It implements
// seatmap.TicketFinder for sale sessions.
type SalesService struct {
	trips      TripSource
	buses      BusSource
	structures StructureReader
	tickets    TicketStore
}

// NewSalesService wires a SalesService.
func NewSalesService(trips TripSource, buses BusSource, structures StructureReader, tickets TicketStore) *SalesService {
	return &SalesService{trips: trips, buses: buses, structures: structures, tickets: tickets}
}

var _ seatmap.TicketFinder = (*SalesService)(nil)

// SeatMap loads the structure of the bus assigned to tripID and projects
// the trip's sold tickets onto it.  The trip must belong to ident's
// cooperative and reference the structure its bus is built on.
func (s *SalesService) SeatMap(ctx context.Context, ident model.Identity, tripID uint64) (seatmap.Projection, error) {
	trip, err := s.trips.GetByIDAndCooperative(ctx, tripID, ident.CooperativeID)
	if err != nil {
		return seatmap.Projection{}, err
	}
	bus, err := s.buses.GetByID(ctx, trip.BusID)
	if err != nil {
		return seatmap.Projection{}, fmt.Errorf("bus %d of trip %d: %w", trip.BusID, tripID, err)
	}
	if trip.BusStructureID != 0 && trip.BusStructureID != bus.BusStructureID {
		return seatmap.Projection{}, fmt.Errorf("trip %d uses structure %d but bus %d is built on %d: %w",
			tripID, trip.BusStructureID, bus.ID, bus.BusStructureID, repository.ErrConflict)
	}
	st, err := s.structures.GetByID(ctx, bus.BusStructureID)
	if err != nil {
		return seatmap.Projection{}, fmt.Errorf("structure of bus %d: %w", bus.ID, err)
	}
	reserved, err := s.tickets.ReservedSeatIDs(ctx, tripID)
	if err != nil {
		return seatmap.Projection{}, fmt.Errorf("reserved seats of trip %d: %w", tripID, err)
	}

	snap := seatmap.SnapshotFromLayout(st.Layout)
	for id, r := range seatmap.ReservedSnapshot(reserved) {
		snap[id] = r
	}
	return seatmap.Project(st.Layout, snap), nil
}

// TicketBySeat returns the ticket sold for seatID on tripID.  A missing
// ticket is reported as seatmap.ErrTicketNotFound.
func (s *SalesService) TicketBySeat(ctx context.Context, tripID uint64, seatID string) (*model.Ticket, error) {
	t, err := s.tickets.GetBySeat(ctx, tripID, seatID)
	if errors.Is(err, repository.ErrTicketNotFound) {
		return nil, seatmap.ErrTicketNotFound
	}
	return t, err
}

// Ticket is TicketBySeat with the trip's ownership checked first.
func (s *SalesService) Ticket(ctx context.Context, ident model.Identity, tripID uint64, seatID string) (*model.Ticket, error) {
	if _, err := s.trips.GetByIDAndCooperative(ctx, tripID, ident.CooperativeID); err != nil {
		return nil, err
	}
	return s.TicketBySeat(ctx, tripID, seatID)
}

// Clients returns one page of the trip's passenger list.
func (s *SalesService) Clients(ctx context.Context, ident model.Identity, tripID uint64, page int) (*repository.ClientPage, error) {
	if _, err := s.trips.GetByIDAndCooperative(ctx, tripID, ident.CooperativeID); err != nil {
		return nil, err
	}
	return s.tickets.ListClients(ctx, tripID, page, repository.DefaultPageSize)
}
