package model

// Operator roles carried in the bearer token's role claim.
const (
	RoleAdmin = "ADMIN" // authors bus structures
	RoleClerk = "CLERK" // sells seats at the counter
)

// Identity is the authenticated operator behind a request.  It is passed
// explicitly to services that stamp ownership onto records.
type Identity struct {
	UserID        uint64 `json:"user_id"`
	CooperativeID uint64 `json:"cooperative_id"`
	Role          string `json:"role"`
}
