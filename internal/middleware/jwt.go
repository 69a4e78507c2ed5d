package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"fmt"
	"net/http" // HTTP status codes for responses
	"strconv"
	"strings" // string utilities for prefix checking and trimming

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers

	"github.com/ruta593/fleet-console/internal/model"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token and
// turns its sub, role and cooperative_id claims into a model.Identity stored
// on the request context.  The provided secret must match the one used when
// issuing tokens.  Handlers read the operator back with CurrentIdentity.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Only HMAC-signed tokens are accepted.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			id, err := identityFromClaims(claims)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims", "message": err.Error()})
			}
			SetIdentity(c, id)
			return next(c)
		}
	}
}

func identityFromClaims(claims jwt.MapClaims) (model.Identity, error) {
	uid, err := claimUint(claims, "sub")
	if err != nil {
		return model.Identity{}, err
	}
	coop, err := claimUint(claims, "cooperative_id")
	if err != nil {
		return model.Identity{}, err
	}
	role, _ := claims["role"].(string)
	if role == "" {
		return model.Identity{}, fmt.Errorf("claim role is required")
	}
	return model.Identity{UserID: uid, CooperativeID: coop, Role: role}, nil
}

// claimUint accepts numeric claims encoded either as JSON numbers or as
// decimal strings.
func claimUint(claims jwt.MapClaims, name string) (uint64, error) {
	switch v := claims[name].(type) {
	case float64:
		if v <= 0 || v != float64(uint64(v)) {
			return 0, fmt.Errorf("claim %s must be a positive integer", name)
		}
		return uint64(v), nil
	case string:
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil || n == 0 {
			return 0, fmt.Errorf("claim %s must be a positive integer", name)
		}
		return n, nil
	case nil:
		return 0, fmt.Errorf("claim %s is required", name)
	default:
		return 0, fmt.Errorf("claim %s has unexpected type %T", name, v)
	}
}
