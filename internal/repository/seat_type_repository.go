package repository // repository defines data access for seat types

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel definitions

	"github.com/ruta593/fleet-console/internal/model"
)

// ErrSeatTypeNotFound is returned when a seat type lookup yields no rows.
var ErrSeatTypeNotFound = errors.New("seat type not found")

// SeatTypeRepo provides read access to a cooperative's seat-type catalog.
type SeatTypeRepo struct {
	db *sql.DB
}

// NewSeatTypeRepo constructs a SeatTypeRepo with the given DB handle.
func NewSeatTypeRepo(db *sql.DB) *SeatTypeRepo {
	return &SeatTypeRepo{db: db}
}

// ListByCooperative returns every seat type of a cooperative ordered by code.
func (r *SeatTypeRepo) ListByCooperative(ctx context.Context, cooperativeID uint64) ([]model.SeatType, error) {
	const q = `SELECT id, cooperative_id, name, description, code, additional_cost
	           FROM seat_types
	           WHERE cooperative_id = ?
	           ORDER BY code`
	rows, err := r.db.QueryContext(ctx, q, cooperativeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.SeatType{}
	for rows.Next() {
		var t model.SeatType
		if err := rows.Scan(&t.ID, &t.CooperativeID, &t.Name, &t.Description, &t.Code, &t.AdditionalCost); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByCode retrieves one seat type of a cooperative by its code.
func (r *SeatTypeRepo) GetByCode(ctx context.Context, cooperativeID uint64, code string) (*model.SeatType, error) {
	const q = `SELECT id, cooperative_id, name, description, code, additional_cost
	           FROM seat_types WHERE cooperative_id = ? AND code = ?`
	var t model.SeatType
	err := r.db.QueryRowContext(ctx, q, cooperativeID, code).
		Scan(&t.ID, &t.CooperativeID, &t.Name, &t.Description, &t.Code, &t.AdditionalCost)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatTypeNotFound
		}
		return nil, err
	}
	return &t, nil
}
