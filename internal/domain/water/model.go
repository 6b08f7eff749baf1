// Package water holds the sensor reading type shared by the classifier,
// the analyzer and the window stores.
package water

import (
	"fmt"
	"math"

	apperrors "github.com/yanqian/salinity-watch/pkg/errors"
)

// Reading is one buoy sample. Time is a display label such as "14:00".
type Reading struct {
	Time        string  `json:"time"`
	Salinity    float64 `json:"salinity"`
	Temperature float64 `json:"temperature"`
}

// Validate rejects readings no sensor could have produced.
func (r Reading) Validate() error {
	if math.IsNaN(r.Salinity) || math.IsInf(r.Salinity, 0) {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "salinity must be a finite number", nil)
	}
	if r.Salinity < 0 {
		return apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("salinity cannot be negative (got %v)", r.Salinity), nil)
	}
	if math.IsNaN(r.Temperature) || math.IsInf(r.Temperature, 0) {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "temperature must be a finite number", nil)
	}
	return nil
}

// ValidateAll checks every reading of a history and reports the first bad index.
func ValidateAll(history []Reading) error {
	for i, r := range history {
		if err := r.Validate(); err != nil {
			return apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("reading %d is invalid", i), err)
		}
	}
	return nil
}
