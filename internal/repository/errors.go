// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current operator is not
// allowed to touch a resource of another cooperative, while ErrConflict
// signals that related records disagree (e.g. a trip whose bus is built on
// a different structure than the one the trip references).
package repository

import "errors"

// ErrForbidden is returned when the caller asks for a resource that
// belongs to another cooperative. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when stored records are inconsistent with each
// other. Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
