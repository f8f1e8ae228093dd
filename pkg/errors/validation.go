package errors

import (
	"math"
	"strconv"

	"github.com/google/uuid"
)

// MaxUnits is the largest capacity or usage value the solver can represent.
// It mirrors grid.MaxUnits; the grid package depends on this one, not the
// other way round.
const MaxUnits = math.MaxUint16

// ParseUnits parses a decimal capacity or usage value for the named field.
// Values beyond MaxUnits fail with ErrCodeCapacityOverflow instead of being
// truncated; anything that is not a non-negative integer is ErrCodeInvalidInput.
func ParseUnits(field, s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if As(err, &numErr) && numErr.Err == strconv.ErrRange {
			return 0, New(ErrCodeCapacityOverflow, "%s %s exceeds maximum %d", field, s, MaxUnits)
		}
		return 0, Wrap(ErrCodeInvalidInput, err, "%s %q is not a number", field, s)
	}
	return CheckUnits(field, v)
}

// CheckUnits verifies that v fits in the capacity range.
func CheckUnits(field string, v uint64) (uint16, error) {
	if v > MaxUnits {
		return 0, New(ErrCodeCapacityOverflow, "%s %d exceeds maximum %d", field, v, MaxUnits)
	}
	return uint16(v), nil
}

// ValidatePlanID validates a plan identifier before it reaches a store.
// Plan IDs are UUIDs; anything else is rejected so arbitrary strings never end
// up in file paths, cache keys or queries.
func ValidatePlanID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidPlanID, "plan id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidPlanID, err, "invalid plan id %q", id)
	}
	return nil
}
