package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ruta593/fleet-console/internal/model"
)

var (
	// ErrBusNotFound is returned when a bus lookup fails.
	ErrBusNotFound = errors.New("bus not found")
	// ErrFrequencyNotFound is returned when a scheduled trip lookup fails.
	ErrFrequencyNotFound = errors.New("trip not found")
)

// BusRepo reads buses.
type BusRepo struct {
	db *sql.DB
}

// NewBusRepo constructs a BusRepo with the given DB handle.
func NewBusRepo(db *sql.DB) *BusRepo { return &BusRepo{db: db} }

// GetByID retrieves a bus by id.
func (r *BusRepo) GetByID(ctx context.Context, id uint64) (*model.Bus, error) {
	const q = `SELECT id, cooperative_id, bus_structure_id, bus_number, license_plate
	           FROM buses WHERE id = ?`
	var b model.Bus
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&b.ID, &b.CooperativeID, &b.BusStructureID, &b.BusNumber, &b.LicensePlate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBusNotFound
		}
		return nil, err
	}
	return &b, nil
}

// FrequencyRepo reads scheduled trips.
type FrequencyRepo struct {
	db *sql.DB
}

// NewFrequencyRepo constructs a FrequencyRepo with the given DB handle.
func NewFrequencyRepo(db *sql.DB) *FrequencyRepo { return &FrequencyRepo{db: db} }

// GetByID retrieves a trip by id.
func (r *FrequencyRepo) GetByID(ctx context.Context, id uint64) (*model.Frequency, error) {
	const q = `SELECT id, cooperative_id, bus_id, bus_structure_id, date, departure_time, arrival_time
	           FROM frequencies WHERE id = ?`
	var f model.Frequency
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&f.ID, &f.CooperativeID, &f.BusID, &f.BusStructureID, &f.Date, &f.DepartureTime, &f.ArrivalTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFrequencyNotFound
		}
		return nil, err
	}
	return &f, nil
}

// GetByIDAndCooperative retrieves a trip and enforces ownership; trips of
// another cooperative yield ErrForbidden.
func (r *FrequencyRepo) GetByIDAndCooperative(ctx context.Context, id, cooperativeID uint64) (*model.Frequency, error) {
	f, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.CooperativeID != cooperativeID {
		return nil, ErrForbidden
	}
	return f, nil
}
