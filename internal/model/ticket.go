package model

import "time"

// Ticket is a sold seat on a trip.  A seat is reserved for a frequency
// exactly when a ticket row exists for it.
//
// Fields:
//
//	ID             – primary key identifier.
//	FrequencyID    – trip the ticket was sold for.
//	SeatID         – layout element id of the seat.
//	TicketCode     – printed ticket code.
//	ClientDNI      – passenger national id.
//	ClientName     – passenger name.
//	Price          – fare paid, surcharge included.
//	AdditionalCost – seat-type surcharge part of Price.
//	CreatedAt      – sale timestamp.
type Ticket struct {
	ID             uint64    `json:"id"`              // tickets.id
	FrequencyID    uint64    `json:"frequency_id"`    // tickets.frequency_id
	SeatID         string    `json:"seat_id"`         // tickets.seat_id
	TicketCode     string    `json:"ticket_code"`     // tickets.ticket_code
	ClientDNI      string    `json:"client_dni"`      // tickets.client_dni
	ClientName     string    `json:"client_name"`     // tickets.client_name
	Price          float64   `json:"price"`           // tickets.price
	AdditionalCost float64   `json:"additional_cost"` // tickets.additional_cost
	CreatedAt      time.Time `json:"created_at"`      // tickets.created_at
}
