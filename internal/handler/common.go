package handler // handler defines http handlers

import (
	"errors"   // errors matches sentinel values from lower layers
	"net/http" // http defines status code constants
	"strconv"  // strconv converts path parameters to numbers

	"github.com/go-playground/validator/v10" // validator checks request DTO tags
	"github.com/labstack/echo/v4"            // echo defines request context types

	"github.com/ruta593/fleet-console/internal/layout"
	"github.com/ruta593/fleet-console/internal/middleware"
	"github.com/ruta593/fleet-console/internal/model"
	"github.com/ruta593/fleet-console/internal/repository"
	"github.com/ruta593/fleet-console/internal/seatmap"
	"github.com/ruta593/fleet-console/internal/service"
	"github.com/ruta593/fleet-console/internal/session"
)

// RequestValidator adapts go-playground/validator to echo.Validator so
// handlers can call c.Validate on bound DTOs.
type RequestValidator struct {
	v *validator.Validate
}

// NewRequestValidator returns a validator for e.Validator.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate checks the struct tags of i.
func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.v.Struct(i)
}

// bind decodes the request into req and validates it.  The returned error
// is an *echo.HTTPError ready to be returned from the handler.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if c.Echo().Validator == nil {
		return nil
	}
	if err := c.Validate(req); err != nil {
		fields := map[string]string{}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[fe.Namespace()] = fe.Tag()
			}
		}
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": fields})
	}
	return nil
}

// identity returns the operator set by JWTAuth.
func identity(c echo.Context) (model.Identity, error) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return model.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return id, nil
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, echo.Map{"error": "invalid " + name})
	}
	return id, nil
}

// respondError maps domain and persistence errors onto HTTP responses.
// User rejections keep the model unchanged and carry the text to show;
// anything unrecognised is logged and reported as 500.
func respondError(c echo.Context, err error) error {
	if r := layout.RejectionOf(err); r != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "rejected", "message": r.Error()})
	}
	switch {
	case errors.Is(err, seatmap.ErrTicketNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": seatmap.ErrTicketNotFound.Error()})
	case errors.Is(err, seatmap.ErrSeatNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": seatmap.ErrSeatNotFound.Error()})
	case errors.Is(err, seatmap.ErrClickDiscarded):
		return c.JSON(http.StatusConflict, echo.Map{"error": seatmap.ErrClickDiscarded.Error()})
	case errors.Is(err, session.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
	case errors.Is(err, session.ErrNotOwner), errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrBusStructureNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "bus structure not found"})
	case errors.Is(err, repository.ErrFrequencyNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "trip not found"})
	case errors.Is(err, repository.ErrSeatTypeNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "seat type not found"})
	case errors.Is(err, repository.ErrBusNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "bus not found"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "trip and bus disagree on the bus structure"})
	case errors.Is(err, service.ErrStore):
		c.Logger().Errorf("store: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "storage unavailable"})
	}
	c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
