package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ruta593/fleet-console/internal/model"
)

// ErrTicketNotFound is returned when no ticket was sold for a seat.  It is
// an expected outcome of a lookup, not a failure.
var ErrTicketNotFound = errors.New("ticket not found")

// DefaultPageSize is the client-list page size used when none is given.
const DefaultPageSize = 10

// ClientTicket is one row of a trip's passenger list.
type ClientTicket struct {
	ClientDNI  string `json:"client_dni"`
	ClientName string `json:"client_name"`
	TicketCode string `json:"ticket_code"`
	SeatID     string `json:"seat_id"`
}

// ClientPage is a page of a trip's passenger list.
type ClientPage struct {
	Items      []ClientTicket `json:"client_list"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
}

// TicketRepo reads sold tickets.  Ticket issuance lives in the sales
// backend; this repository only answers seat-state questions.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo constructs a TicketRepo with the given DB handle.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// GetBySeat returns the ticket sold for seatID on a trip, or
// ErrTicketNotFound.
func (r *TicketRepo) GetBySeat(ctx context.Context, frequencyID uint64, seatID string) (*model.Ticket, error) {
	const q = `SELECT id, frequency_id, seat_id, ticket_code, client_dni, client_name, price, additional_cost, created_at
	           FROM tickets
	           WHERE frequency_id = ? AND seat_id = ?
	           ORDER BY id DESC
	           LIMIT 1`
	var t model.Ticket
	err := r.db.QueryRowContext(ctx, q, frequencyID, seatID).
		Scan(&t.ID, &t.FrequencyID, &t.SeatID, &t.TicketCode, &t.ClientDNI, &t.ClientName, &t.Price, &t.AdditionalCost, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ReservedSeatIDs lists the seats that have a ticket on a trip.
func (r *TicketRepo) ReservedSeatIDs(ctx context.Context, frequencyID uint64) ([]string, error) {
	const q = `SELECT DISTINCT seat_id FROM tickets WHERE frequency_id = ?`
	rows, err := r.db.QueryContext(ctx, q, frequencyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// ListClients returns one page of a trip's passenger list ordered by sale.
// Pages are 1-based; a page past the end is empty.
func (r *TicketRepo) ListClients(ctx context.Context, frequencyID uint64, page, size int) (*ClientPage, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tickets WHERE frequency_id = ?`, frequencyID).Scan(&total); err != nil {
		return nil, err
	}

	const q = `SELECT client_dni, client_name, ticket_code, seat_id
	           FROM tickets
	           WHERE frequency_id = ?
	           ORDER BY id
	           LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, frequencyID, size, (page-1)*size)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := &ClientPage{Items: []ClientTicket{}, Page: page, TotalPages: (total + size - 1) / size}
	for rows.Next() {
		var c ClientTicket
		if err := rows.Scan(&c.ClientDNI, &c.ClientName, &c.TicketCode, &c.SeatID); err != nil {
			return nil, err
		}
		out.Items = append(out.Items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
