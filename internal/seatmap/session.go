package seatmap

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ruta593/fleet-console/internal/layout"
	"github.com/ruta593/fleet-console/internal/model"
)

var (
	// ErrTicketNotFound is the normal negative result of a ticket lookup.
	ErrTicketNotFound = errors.New("no ticket found for this seat")
	// ErrSeatNotFound means the clicked id is not a seat of the projection.
	ErrSeatNotFound = errors.New("seat not found on this bus")
	// ErrClickDiscarded means the session was cancelled or completed while
	// the click was waiting on a ticket lookup.
	ErrClickDiscarded = errors.New("sale session changed while the seat click was pending")
)

// TicketFinder looks up the ticket sold for a seat on a trip.  It returns
// ErrTicketNotFound (possibly wrapped) when no ticket exists.
type TicketFinder interface {
	TicketBySeat(ctx context.Context, tripID uint64, seatID string) (*model.Ticket, error)
}

// ClickAction tells the UI what a seat click did.
type ClickAction string

const (
	ActionSelected   ClickAction = "selected"
	ActionDeselected ClickAction = "deselected"
	ActionTicket     ClickAction = "ticket"
)

// ClickResult is returned by Session.Click.
type ClickResult struct {
	Action ClickAction    `json:"action"`
	SeatID string         `json:"seat_id"`
	Ticket *model.Ticket  `json:"ticket,omitempty"`
	Seats  []SelectedSeat `json:"selected"`
}

// Session is one operator's sale on one trip: the latest projection of
// the trip's seat map plus the seats picked so far.  It is safe for
// concurrent use; ticket lookups run without holding the lock.
type Session struct {
	TripID uint64

	mu         sync.Mutex
	projection Projection
	selection  *SelectionStore
	generation uint64
	finder     TicketFinder
}

// NewSession starts a sale session for tripID.
func NewSession(tripID uint64, p Projection, finder TicketFinder) *Session {
	return &Session{TripID: tripID, projection: p, selection: NewSelectionStore(), finder: finder}
}

// View is a consistent copy of the session state.
type View struct {
	TripID          uint64         `json:"trip_id"`
	Projection      Projection     `json:"seat_map"`
	Selected        []SelectedSeat `json:"selected"`
	AdditionalTotal float64        `json:"additional_total"`
}

// View returns a copy of the current state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		TripID:          s.TripID,
		Projection:      s.projection,
		Selected:        s.selection.Seats(),
		AdditionalTotal: s.selection.AdditionalTotal(),
	}
}

// IsSelected reports whether seatID is currently picked.
func (s *Session) IsSelected(seatID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.IsSelected(seatID)
}

// Click applies a seat click.  A reserved seat never touches the
// selection; it resolves to the ticket sold for it.  A free seat toggles
// its membership in the selection.
func (s *Session) Click(ctx context.Context, seatID string) (ClickResult, error) {
	s.mu.Lock()
	seat, ok := s.projection.Seat(seatID)
	if !ok {
		s.mu.Unlock()
		return ClickResult{}, ErrSeatNotFound
	}
	if seat.Status != layout.StatusReserved {
		defer s.mu.Unlock()
		res := ClickResult{SeatID: seatID}
		if s.selection.IsSelected(seatID) {
			s.selection.RemoveSeat(seatID)
			res.Action = ActionDeselected
		} else {
			s.selection.AddSeat(SelectedSeat{SeatID: seatID, AdditionalCost: seat.AdditionalCost, Status: seat.Status})
			res.Action = ActionSelected
		}
		res.Seats = s.selection.Seats()
		return res, nil
	}
	gen := s.generation
	s.mu.Unlock()

	ticket, err := s.lookup(ctx, seatID)
	if err != nil {
		return ClickResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return ClickResult{}, ErrClickDiscarded
	}
	return ClickResult{Action: ActionTicket, SeatID: seatID, Ticket: ticket, Seats: s.selection.Seats()}, nil
}

func (s *Session) lookup(ctx context.Context, seatID string) (*model.Ticket, error) {
	if s.finder == nil {
		return nil, ErrTicketNotFound
	}
	ticket, err := s.finder.TicketBySeat(ctx, s.TripID, seatID)
	if err != nil {
		if errors.Is(err, ErrTicketNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("ticket lookup for seat %s: %w", seatID, err)
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}
	return ticket, nil
}

// ApplyProjection installs a freshly fetched projection.  The selection
// survives the refetch except for seats that have since become reserved.
func (s *Session) ApplyProjection(p Projection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projection = p
	for _, sel := range s.selection.Seats() {
		if seat, ok := p.Seat(sel.SeatID); !ok || seat.Status == layout.StatusReserved {
			s.selection.RemoveSeat(sel.SeatID)
		}
	}
}

// Complete ends a successful sale: the selection is cleared and pending
// clicks are discarded.  The caller refetches the projection afterwards.
func (s *Session) Complete() { s.reset() }

// Cancel abandons the sale.  Cancelling an empty session is a no-op.
func (s *Session) Cancel() { s.reset() }

func (s *Session) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Clear()
	s.generation++
}
