// Package geo holds the geographic input to the prayer-time engine.
//
// Locations are always supplied by the caller (flags or the config file);
// there is no network lookup.
package geo

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCoordinate is returned for a latitude or longitude outside its
// domain. Such values would make the arcsine/arccosine math undefined.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Location holds geographic coordinates in degrees.
type Location struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// New returns a validated Location.
func New(latitude, longitude float64) (Location, error) {
	loc := Location{Latitude: latitude, Longitude: longitude}
	if err := loc.Validate(); err != nil {
		return Location{}, err
	}
	return loc, nil
}

// Validate checks that latitude is within [-90, 90] and longitude within
// [-180, 180].
func (l Location) Validate() error {
	if math.IsNaN(l.Latitude) || l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v must be between -90 and 90", ErrInvalidCoordinate, l.Latitude)
	}
	if math.IsNaN(l.Longitude) || l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v must be between -180 and 180", ErrInvalidCoordinate, l.Longitude)
	}
	return nil
}

// String renders the coordinates as "lat, lon" with four decimals.
func (l Location) String() string {
	return fmt.Sprintf("%.4f, %.4f", l.Latitude, l.Longitude)
}
