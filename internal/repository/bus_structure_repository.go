package repository // repository holds data access logic for domain entities

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ruta593/fleet-console/internal/model"
)

// ErrBusStructureNotFound is returned when a bus structure lookup fails.
var ErrBusStructureNotFound = errors.New("bus structure not found")

// BusStructureRepo stores authored floor plans.  The layout travels as a
// JSON document in the layout column; the floor and seat counts are
// denormalised so listings do not need to decode it.
type BusStructureRepo struct {
	db *sql.DB
}

// NewBusStructureRepo constructs a BusStructureRepo with the given DB handle.
func NewBusStructureRepo(db *sql.DB) *BusStructureRepo {
	return &BusStructureRepo{db: db}
}

// Create inserts a structure and populates its ID and CreatedAt.
func (r *BusStructureRepo) Create(ctx context.Context, s *model.BusStructure) error {
	doc, err := json.Marshal(s.Layout)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	const qInsert = `INSERT INTO bus_structures (cooperative_id, name, floors, seat_count, layout)
	                 VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, s.CooperativeID, s.Name, s.Floors, s.SeatCount, doc)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)

	// read back created_at as set by the database
	const qSelect = `SELECT created_at FROM bus_structures WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, s.ID).Scan(&s.CreatedAt)
}

// GetByID loads a structure with its decoded layout.
func (r *BusStructureRepo) GetByID(ctx context.Context, id uint64) (*model.BusStructure, error) {
	const q = `SELECT id, cooperative_id, name, floors, seat_count, layout, created_at
	           FROM bus_structures WHERE id = ?`
	var (
		s   model.BusStructure
		doc []byte
	)
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.CooperativeID, &s.Name, &s.Floors, &s.SeatCount, &doc, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBusStructureNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(doc, &s.Layout); err != nil {
		return nil, fmt.Errorf("decode layout of bus structure %d: %w", id, err)
	}
	return &s, nil
}

// GetByIDAndCooperative loads a structure and enforces that it belongs to
// cooperativeID.  A structure of another cooperative yields ErrForbidden.
func (r *BusStructureRepo) GetByIDAndCooperative(ctx context.Context, id, cooperativeID uint64) (*model.BusStructure, error) {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.CooperativeID != cooperativeID {
		return nil, ErrForbidden
	}
	return s, nil
}

// ListByCooperative returns the structures of a cooperative, newest first,
// without their layouts.
func (r *BusStructureRepo) ListByCooperative(ctx context.Context, cooperativeID uint64) ([]model.BusStructureSummary, error) {
	const q = `SELECT id, name, floors, seat_count, created_at
	           FROM bus_structures
	           WHERE cooperative_id = ?
	           ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, cooperativeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.BusStructureSummary{}
	for rows.Next() {
		var s model.BusStructureSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Floors, &s.SeatCount, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
