package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruta593/fleet-console/internal/model"
	"github.com/ruta593/fleet-console/internal/utils"
)

const secret = "test-secret"

func serve(t *testing.T, authHeader string, mws ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, *model.Identity) {
	t.Helper()
	e := echo.New()
	var seen *model.Identity
	e.GET("/v1/whoami", func(c echo.Context) error {
		if id, ok := CurrentIdentity(c); ok {
			seen = &id
		}
		return c.NoContent(http.StatusNoContent)
	}, mws...)

	req := httptest.NewRequest(http.MethodGet, "/v1/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

func TestJWTAuth_ValidToken(t *testing.T) {
	want := model.Identity{UserID: 7, CooperativeID: 3, Role: model.RoleAdmin}
	tok, err := utils.NewAccessToken(secret, want, 5)
	require.NoError(t, err)

	rec, seen := serve(t, "Bearer "+tok.Token, JWTAuth(secret))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, want, *seen)
}

func TestJWTAuth_Rejections(t *testing.T) {
	good := model.Identity{UserID: 7, CooperativeID: 3, Role: model.RoleClerk}
	wrongKey, err := utils.NewAccessToken("other", good, 5)
	require.NoError(t, err)
	expired, err := utils.NewAccessToken(secret, good, -5)
	require.NoError(t, err)
	noCoop, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": 7, "role": model.RoleClerk, "exp": time.Now().Add(time.Minute).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		errMsg string
	}{
		{"missing header", "", "missing bearer token"},
		{"not bearer", "Basic abc", "missing bearer token"},
		{"wrong key", "Bearer " + wrongKey.Token, "invalid token"},
		{"expired", "Bearer " + expired.Token, "invalid token"},
		{"missing cooperative", "Bearer " + noCoop, "invalid claims"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, seen := serve(t, tt.header, JWTAuth(secret))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.errMsg)
			assert.Nil(t, seen)
		})
	}
}

func TestClaimUint(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		want    uint64
		wantErr bool
	}{
		{"number", float64(12), 12, false},
		{"string", "12", 12, false},
		{"zero", float64(0), 0, true},
		{"fraction", 1.5, 0, true},
		{"negative string", "-3", 0, true},
		{"missing", nil, 0, true},
		{"bool", true, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := claimUint(jwt.MapClaims{"sub": tt.value}, "sub")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequireRole(t *testing.T) {
	clerk, err := utils.NewAccessToken(secret, model.Identity{UserID: 1, CooperativeID: 1, Role: model.RoleClerk}, 5)
	require.NoError(t, err)
	admin, err := utils.NewAccessToken(secret, model.Identity{UserID: 2, CooperativeID: 1, Role: model.RoleAdmin}, 5)
	require.NoError(t, err)

	rec, _ := serve(t, "Bearer "+clerk.Token, JWTAuth(secret), RequireRole(model.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = serve(t, "Bearer "+admin.Token, JWTAuth(secret), RequireRole(model.RoleAdmin))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = serve(t, "", RequireRole(model.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
