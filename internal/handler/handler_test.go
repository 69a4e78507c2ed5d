package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/ruta593/fleet-console/internal/handler"
	"github.com/ruta593/fleet-console/internal/model"
	"github.com/ruta593/fleet-console/internal/repository"
	"github.com/ruta593/fleet-console/internal/router"
	"github.com/ruta593/fleet-console/internal/service"
	"github.com/ruta593/fleet-console/internal/session"
	"github.com/ruta593/fleet-console/internal/utils"
)

const jwtSecret = "handler-test"

var (
	admin = model.Identity{UserID: 1, CooperativeID: 3, Role: model.RoleAdmin}
	clerk = model.Identity{UserID: 2, CooperativeID: 3, Role: model.RoleClerk}
)

// memStore is an in-memory stand-in for the MySQL repositories.
type memStore struct {
	mu         sync.Mutex
	structures map[uint64]*model.BusStructure
	seatTypes  []model.SeatType
	trips      map[uint64]*model.Frequency
	buses      map[uint64]*model.Bus
	tickets    map[string]*model.Ticket // by seat id, trip 40 only
}

func newMemStore() *memStore {
	return &memStore{
		structures: map[uint64]*model.BusStructure{},
		seatTypes:  []model.SeatType{{ID: 1, CooperativeID: 3, Name: "VIP", Code: "V", AdditionalCost: 2.5}},
		trips:      map[uint64]*model.Frequency{40: {ID: 40, CooperativeID: 3, BusID: 8, BusStructureID: 5}},
		buses:      map[uint64]*model.Bus{8: {ID: 8, CooperativeID: 3, BusStructureID: 5}},
		tickets:    map[string]*model.Ticket{},
	}
}

func (m *memStore) Create(_ context.Context, s *model.BusStructure) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = uint64(len(m.structures) + 1)
	s.CreatedAt = time.Now().UTC()
	m.structures[s.ID] = s
	return nil
}

func (m *memStore) GetByID(_ context.Context, id uint64) (*model.BusStructure, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.structures[id]; ok {
		return s, nil
	}
	return nil, repository.ErrBusStructureNotFound
}

func (m *memStore) GetByIDAndCooperative(ctx context.Context, id, coop uint64) (*model.BusStructure, error) {
	s, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.CooperativeID != coop {
		return nil, repository.ErrForbidden
	}
	return s, nil
}

func (m *memStore) ListByCooperative(_ context.Context, coop uint64) ([]model.BusStructureSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.BusStructureSummary{}
	for _, s := range m.structures {
		if s.CooperativeID == coop {
			out = append(out, model.BusStructureSummary{ID: s.ID, Name: s.Name, Floors: s.Floors, SeatCount: s.SeatCount})
		}
	}
	return out, nil
}

type seatTypes struct{ m *memStore }

func (s seatTypes) ListByCooperative(context.Context, uint64) ([]model.SeatType, error) {
	return s.m.seatTypes, nil
}

func (s seatTypes) GetByCode(_ context.Context, coop uint64, code string) (*model.SeatType, error) {
	for _, t := range s.m.seatTypes {
		if t.CooperativeID == coop && t.Code == code {
			return &t, nil
		}
	}
	return nil, repository.ErrSeatTypeNotFound
}

type trips struct{ m *memStore }

func (t trips) GetByIDAndCooperative(_ context.Context, id, coop uint64) (*model.Frequency, error) {
	f, ok := t.m.trips[id]
	if !ok {
		return nil, repository.ErrFrequencyNotFound
	}
	if f.CooperativeID != coop {
		return nil, repository.ErrForbidden
	}
	return f, nil
}

type buses struct{ m *memStore }

func (b buses) GetByID(_ context.Context, id uint64) (*model.Bus, error) {
	if bus, ok := b.m.buses[id]; ok {
		return bus, nil
	}
	return nil, repository.ErrBusNotFound
}

type tickets struct{ m *memStore }

func (t tickets) GetBySeat(_ context.Context, _ uint64, seatID string) (*model.Ticket, error) {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	if tk, ok := t.m.tickets[seatID]; ok {
		return tk, nil
	}
	return nil, repository.ErrTicketNotFound
}

func (t tickets) ReservedSeatIDs(context.Context, uint64) ([]string, error) {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	ids := []string{}
	for id := range t.m.tickets {
		ids = append(ids, id)
	}
	return ids, nil
}

func (t tickets) ListClients(_ context.Context, _ uint64, page, _ int) (*repository.ClientPage, error) {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	out := &repository.ClientPage{Items: []repository.ClientTicket{}, Page: page, TotalPages: 1}
	for _, tk := range t.m.tickets {
		out.Items = append(out.Items, repository.ClientTicket{ClientName: tk.ClientName, SeatID: tk.SeatID, TicketCode: tk.TicketCode})
	}
	return out, nil
}

type testServer struct {
	e     *echo.Echo
	store *memStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := newMemStore()
	e := echo.New()
	e.Validator = handler.NewRequestValidator()

	registry := session.NewRegistry(time.Hour)
	layouts := service.NewLayoutService(store, seatTypes{store}, nil, nil, e.Logger)
	sales := service.NewSalesService(trips{store}, buses{store}, store, tickets{store})
	pass := func(next echo.HandlerFunc) echo.HandlerFunc { return next }

	router.RegisterRoutes(e, nil)
	router.RegisterCatalog(e, handler.NewCatalogHandler(store, seatTypes{store}), jwtSecret, pass, pass)
	router.RegisterLayouts(e, handler.NewLayoutHandler(layouts, registry), jwtSecret, pass)
	router.RegisterSales(e, handler.NewSalesHandler(sales, registry), jwtSecret, pass)
	return &testServer{e: e, store: store}
}

// do sends a JSON request as id and decodes the response into out when
// out is not nil.
func (s *testServer) do(t *testing.T, id model.Identity, method, path string, body interface{}, out interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	tok, err := utils.NewAccessToken(jwtSecret, id, 5)
	require.NoError(t, err)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok.Token)

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	if out != nil && rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}
