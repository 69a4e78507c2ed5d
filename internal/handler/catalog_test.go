package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruta593/fleet-console/internal/handler"
	"github.com/ruta593/fleet-console/internal/layout"
	"github.com/ruta593/fleet-console/internal/model"
	"github.com/ruta593/fleet-console/internal/router"
)

func TestCatalog(t *testing.T) {
	s := newTestServer(t)
	s.store.structures[1] = &model.BusStructure{ID: 1, CooperativeID: 3, Name: "Mini", Floors: 1, SeatCount: 1,
		Layout: layout.Layout{1: {{ID: "seat-v-v1", Type: layout.TypeSeat, Name: "V1"}}}}
	s.store.structures[2] = &model.BusStructure{ID: 2, CooperativeID: 4, Name: "Elsewhere", Floors: 1}

	var list struct {
		Count int                         `json:"count"`
		Items []model.BusStructureSummary `json:"items"`
	}
	code := s.do(t, clerk, http.MethodGet, "/v1/bus-structures", nil, &list)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, "Mini", list.Items[0].Name)

	var st model.BusStructure
	code = s.do(t, admin, http.MethodGet, "/v1/bus-structures/1", nil, &st)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, st.Layout[1], 1)
	assert.Equal(t, "seat-v-v1", st.Layout[1][0].ID)

	assert.Equal(t, http.StatusForbidden, s.do(t, admin, http.MethodGet, "/v1/bus-structures/2", nil, nil))
	assert.Equal(t, http.StatusNotFound, s.do(t, admin, http.MethodGet, "/v1/bus-structures/9", nil, nil))

	var types struct {
		Count int              `json:"count"`
		Items []model.SeatType `json:"items"`
	}
	code = s.do(t, clerk, http.MethodGet, "/v1/seat-types", nil, &types)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, types.Count)
	assert.Equal(t, "V", types.Items[0].Code)

	var vip model.SeatType
	code = s.do(t, clerk, http.MethodGet, "/v1/seat-types/V", nil, &vip)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "VIP", vip.Name)
	assert.Equal(t, 2.5, vip.AdditionalCost)

	var body map[string]string
	code = s.do(t, clerk, http.MethodGet, "/v1/seat-types/Z", nil, &body)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "seat type not found", body["error"])
}

func TestCatalogRequiresToken(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/seat-types", nil)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type pinger struct{ err error }

func (p pinger) PingContext(context.Context) error { return p.err }

func TestHealthAndReady(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"database up", nil, http.StatusOK},
		{"database down", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			router.RegisterRoutes(e, &handler.ReadyHandler{DB: pinger{err: tc.err}})

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "ok", rec.Body.String())

			rec = httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
			assert.Equal(t, tc.want, rec.Code)
			assert.Contains(t, rec.Body.String(), `"redis":"disabled"`)
		})
	}
}
