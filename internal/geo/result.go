package geo

import "regionview/pkg/sanitizer"

// Result is what a successful lookup yields.
type Result struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	City        string  `json:"city,omitempty"`
	RegionName  string  `json:"region_name,omitempty"`
	CountryName string  `json:"country_name,omitempty"`
	TimeZone    string  `json:"timezone,omitempty"`
}

// LocationInfo is the descriptive part of a lookup, shown in the subtitle.
type LocationInfo struct {
	City        string `json:"city,omitempty"`
	RegionName  string `json:"region_name,omitempty"`
	CountryName string `json:"country_name,omitempty"`
}

func (r *Result) Info() *LocationInfo {
	return &LocationInfo{
		City:        r.City,
		RegionName:  r.RegionName,
		CountryName: r.CountryName,
	}
}

// Locality returns the most specific non-empty place name, or "" when the
// lookup named nothing.
func (l *LocationInfo) Locality() string {
	if l == nil {
		return ""
	}
	for _, name := range []string{l.City, l.RegionName, l.CountryName} {
		if name != "" {
			return name
		}
	}
	return ""
}

func normalizeResult(r *Result) {
	r.City = sanitizer.NormalizePlaceName(r.City)
	r.RegionName = sanitizer.NormalizePlaceName(r.RegionName)
	r.CountryName = sanitizer.NormalizePlaceName(r.CountryName)
	r.TimeZone = sanitizer.NormalizeTimezone(r.TimeZone)
}
