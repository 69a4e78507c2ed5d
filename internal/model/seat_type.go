package model

// SeatType is a seat category of a cooperative.  Code is the short label
// seats of this type are named after ("V" -> V1, V2, ...) and
// AdditionalCost the surcharge added to the fare.
type SeatType struct {
	ID             uint64  `json:"id"`              // seat_types.id
	CooperativeID  uint64  `json:"cooperative_id"`  // seat_types.cooperative_id
	Name           string  `json:"name"`            // seat_types.name
	Description    *string `json:"description"`     // seat_types.description (nullable)
	Code           string  `json:"code"`            // seat_types.code
	AdditionalCost float64 `json:"additional_cost"` // seat_types.additional_cost
}

// SeatCosts indexes a catalog by code.
func SeatCosts(types []SeatType) map[string]float64 {
	m := make(map[string]float64, len(types))
	for _, t := range types {
		m[t.Code] = t.AdditionalCost
	}
	return m
}
