package validators

import (
	"math"

	"github.com/sehatsetu/sehatsetu-api/internal/httperr"
)

// Coordinates accepts both values unset, or both set within WGS84 range.
func Coordinates(lat, lng *float64) error {
	if lat == nil && lng == nil {
		return nil
	}
	if lat == nil || lng == nil {
		return httperr.ErrBusiness("invalid_coordinates")
	}
	if math.IsNaN(*lat) || math.IsNaN(*lng) ||
		*lat < -90 || *lat > 90 || *lng < -180 || *lng > 180 {
		return httperr.ErrBusiness("invalid_coordinates")
	}
	return nil
}

// ZeroAsUnset treats 0 as "not provided", which is how the web forms submit empty fields.
func ZeroAsUnset(v *float64) *float64 {
	if v == nil || *v == 0 {
		return nil
	}
	return v
}
