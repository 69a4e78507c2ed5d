package layout

import "errors"

// Rejections returned by the floor-plan model.  They are user errors, not
// faults: the operation did not change any state and the message is meant
// to be shown to the operator as is.
var (
	ErrSeatTypeRequired  = errors.New("a seat type must be selected")
	ErrUnknownSeatType   = errors.New("unknown seat type")
	ErrDuplicateID       = errors.New("id already exists on another floor")
	ErrInvalidType       = errors.New("unknown element type")
	ErrFloorOutOfRange   = errors.New("floor does not exist in this layout")
	ErrInvalidFloorCount = errors.New("floor count must be 1 or 2")
	ErrFloorCountLocked  = errors.New("floor count cannot change once the first floor has elements")
	ErrNameRequired      = errors.New("the layout needs a name")
	ErrEmptyFirstFloor   = errors.New("the first floor must have at least one element")
	ErrElementNotFound   = errors.New("element not found on this floor")
	ErrNotDragging       = errors.New("no drag in progress")
)

var rejections = []error{
	ErrSeatTypeRequired, ErrUnknownSeatType, ErrDuplicateID, ErrInvalidType,
	ErrFloorOutOfRange, ErrInvalidFloorCount, ErrFloorCountLocked,
	ErrNameRequired, ErrEmptyFirstFloor, ErrElementNotFound, ErrNotDragging,
}

// RejectionOf returns the rejection err wraps, or nil.  Its message is the
// text to show the operator.
func RejectionOf(err error) error {
	for _, r := range rejections {
		if errors.Is(err, r) {
			return r
		}
	}
	return nil
}
