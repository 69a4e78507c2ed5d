package middleware

// identity.go holds the context plumbing for the authenticated operator.
// JWTAuth stores a model.Identity under identityKey; handlers read it back
// with CurrentIdentity and pass it on explicitly.

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ruta593/fleet-console/internal/model"
)

const identityKey = "identity"

// SetIdentity stores id on the request context.
func SetIdentity(c echo.Context, id model.Identity) {
	c.Set(identityKey, id)
	c.Set("user_id", strconv.FormatUint(id.UserID, 10))
	c.Set("role", id.Role)
}

// CurrentIdentity returns the operator stored by JWTAuth.  ok is false on
// routes that are not behind JWTAuth.
func CurrentIdentity(c echo.Context) (model.Identity, bool) {
	id, ok := c.Get(identityKey).(model.Identity)
	return id, ok
}

// userID returns the operator id as a string for cache and rate-limit keys,
// or "anon" when the request is not authenticated.
func userID(c echo.Context) string {
	if id, ok := CurrentIdentity(c); ok {
		return strconv.FormatUint(id.UserID, 10)
	}
	return "anon"
}

// cooperativeKey scopes keys per cooperative; unauthenticated requests share
// the "public" bucket.
func cooperativeKey(c echo.Context) string {
	if id, ok := CurrentIdentity(c); ok {
		return strconv.FormatUint(id.CooperativeID, 10)
	}
	return "public"
}
