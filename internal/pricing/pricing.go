// Package pricing computes booking totals from a stay date range and a
// nightly rate.
package pricing

import (
	"errors"
	"math"
	"time"
)

// ErrInvalidRange indicates the check-out date is not after the check-in date.
var ErrInvalidRange = errors.New("pricing: check-out date must be after check-in date")

// Quote is the computed price for a stay.
type Quote struct {
	Nights int
	Total  float64
}

const hoursPerNight = 24

// PriceFor computes the number of nights and the total price for a stay.
// Nights are whole days rounded up, so a checkout one hour after check-in
// still counts as one night. Totals carry the native float64 precision;
// no currency rounding is applied.
func PriceFor(checkIn, checkOut time.Time, nightlyRate float64) (Quote, error) {
	nights := int(math.Ceil(checkOut.Sub(checkIn).Hours() / hoursPerNight))
	if nights <= 0 {
		return Quote{}, ErrInvalidRange
	}
	return Quote{
		Nights: nights,
		Total:  float64(nights) * nightlyRate,
	}, nil
}
