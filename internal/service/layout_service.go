// Package service holds the use cases that sit between the HTTP handlers
// and the repositories: saving authored layouts and loading trip seat maps.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ruta593/fleet-console/internal/layout"
	"github.com/ruta593/fleet-console/internal/model"
	"github.com/ruta593/fleet-console/internal/queue"
)

// StructureStore persists bus structures.  *repository.BusStructureRepo
// satisfies it.
type StructureStore interface {
	Create(ctx context.Context, s *model.BusStructure) error
	GetByIDAndCooperative(ctx context.Context, id, cooperativeID uint64) (*model.BusStructure, error)
}

// SeatTypeSource lists a cooperative's seat-type catalog.
type SeatTypeSource interface {
	ListByCooperative(ctx context.Context, cooperativeID uint64) ([]model.SeatType, error)
}

// EventPublisher announces saved layouts.
type EventPublisher interface {
	PublishLayoutSaved(ctx context.Context, ev queue.LayoutSavedEvent) error
}

// CachePurger drops cached catalog responses of a cooperative.
type CachePurger interface {
	PurgeCooperative(ctx context.Context, cooperativeID uint64) error
}

// ErrStore wraps persistence failures so handlers can tell them from user
// rejections.
var ErrStore = errors.New("layout store unavailable")

// LayoutService creates editable plans and saves them.
type LayoutService struct {
	structures StructureStore
	seatTypes  SeatTypeSource
	events     EventPublisher
	cache      CachePurger
	logger     echo.Logger
	now        func() time.Time
}

// NewLayoutService wires a LayoutService.  events and cache may be nil.
func NewLayoutService(structures StructureStore, seatTypes SeatTypeSource, events EventPublisher, cache CachePurger, logger echo.Logger) *LayoutService {
	return &LayoutService{
		structures: structures,
		seatTypes:  seatTypes,
		events:     events,
		cache:      cache,
		logger:     logger,
		now:        time.Now,
	}
}

// NewPlan returns an empty plan with floors floors and the operator's seat
// catalog installed.
func (s *LayoutService) NewPlan(ctx context.Context, ident model.Identity, floors int) (*layout.FloorPlan, error) {
	plan := layout.NewFloorPlan()
	if err := plan.SetFloorCount(floors); err != nil {
		return nil, err
	}
	if err := s.installCatalog(ctx, ident, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// OpenSaved rebuilds an editable plan from a saved structure of the
// operator's cooperative.  Numbering continues after the existing names.
func (s *LayoutService) OpenSaved(ctx context.Context, ident model.Identity, structureID uint64) (*layout.FloorPlan, *model.BusStructure, error) {
	st, err := s.structures.GetByIDAndCooperative(ctx, structureID, ident.CooperativeID)
	if err != nil {
		return nil, nil, err
	}
	plan, err := layout.FromLayout(st.Layout)
	if err != nil {
		return nil, nil, fmt.Errorf("bus structure %d: %w", structureID, err)
	}
	if err := s.installCatalog(ctx, ident, plan); err != nil {
		return nil, nil, err
	}
	return plan, st, nil
}

func (s *LayoutService) installCatalog(ctx context.Context, ident model.Identity, plan *layout.FloorPlan) error {
	if s.seatTypes == nil {
		return nil
	}
	types, err := s.seatTypes.ListByCooperative(ctx, ident.CooperativeID)
	if err != nil {
		return fmt.Errorf("%w: load seat types: %v", ErrStore, err)
	}
	// An empty catalog leaves seat codes unrestricted.
	if len(types) > 0 {
		plan.SetSeatTypes(model.SeatCosts(types))
	}
	return nil
}

// Save validates plan, persists it under ident's cooperative and returns the
// stored structure.  Publishing the event and purging the catalog cache are
// best effort: failures are logged and do not fail the save.
func (s *LayoutService) Save(ctx context.Context, ident model.Identity, name string, plan *layout.FloorPlan) (*model.BusStructure, error) {
	if err := plan.ValidateForSave(name); err != nil {
		return nil, err
	}
	snapshot := plan.Serialize()
	st := &model.BusStructure{
		CooperativeID: ident.CooperativeID,
		Name:          strings.TrimSpace(name),
		Floors:        plan.FloorCount(),
		SeatCount:     plan.SeatCount(),
		Layout:        snapshot,
	}
	if err := s.structures.Create(ctx, st); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	if s.cache != nil {
		if err := s.cache.PurgeCooperative(ctx, ident.CooperativeID); err != nil {
			s.warnf("purge catalog cache for cooperative %d: %v", ident.CooperativeID, err)
		}
	}
	if s.events != nil {
		ev := queue.LayoutSavedEvent{
			BusStructureID: st.ID,
			CooperativeID:  st.CooperativeID,
			SavedBy:        ident.UserID,
			Name:           st.Name,
			Floors:         st.Floors,
			SeatCount:      st.SeatCount,
			ElementCounts:  countByType(snapshot),
			SavedAt:        s.now().UTC().Format(time.RFC3339),
		}
		if err := s.events.PublishLayoutSaved(ctx, ev); err != nil {
			s.warnf("publish layout.saved for bus structure %d: %v", st.ID, err)
		}
	}
	return st, nil
}

func (s *LayoutService) warnf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Warnf(format, args...)
	}
}

func countByType(l layout.Layout) map[string]int {
	out := map[string]int{}
	for _, elements := range l {
		for _, el := range elements {
			out[string(el.Type)]++
		}
	}
	return out
}
