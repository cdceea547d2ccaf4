package geo

import (
	"fmt"
	"time"

	"github.com/bradfitz/latlong"
)

// ZoneResolver picks the time zone a visitor's local hour is read in.
type ZoneResolver struct {
	fallback *time.Location
}

// NewZoneResolver loads the fallback zone by IANA name. An empty name or
// "Local" means the server's zone.
func NewZoneResolver(fallbackName string) (*ZoneResolver, error) {
	if fallbackName == "" || fallbackName == "Local" {
		return &ZoneResolver{fallback: time.Local}, nil
	}
	loc, err := time.LoadLocation(fallbackName)
	if err != nil {
		return nil, fmt.Errorf("failed to load fallback timezone %q: %w", fallbackName, err)
	}
	return &ZoneResolver{fallback: loc}, nil
}

func (z *ZoneResolver) Fallback() *time.Location {
	return z.fallback
}

// ForResult prefers the zone reported by the API, then the zone containing
// the coordinates, then the fallback.
func (z *ZoneResolver) ForResult(r *Result) *time.Location {
	if r == nil {
		return z.fallback
	}
	if r.TimeZone != "" {
		if loc, err := time.LoadLocation(r.TimeZone); err == nil {
			return loc
		}
	}
	return z.ForCoordinates(r.Latitude, r.Longitude)
}

func (z *ZoneResolver) ForCoordinates(latitude, longitude float64) *time.Location {
	name := latlong.LookupZoneName(latitude, longitude)
	if name == "" {
		return z.fallback
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return z.fallback
	}
	return loc
}
