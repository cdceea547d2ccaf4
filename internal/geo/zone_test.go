package geo

import (
	"testing"
	"time"
)

func TestZoneResolver_ForResult(t *testing.T) {
	if _, err := time.LoadLocation("America/Chicago"); err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	z, err := NewZoneResolver("UTC")
	if err != nil {
		t.Fatalf("NewZoneResolver() error = %v", err)
	}

	tests := []struct {
		name   string
		result *Result
		want   string
	}{
		{
			name:   "nil result uses fallback",
			result: nil,
			want:   "UTC",
		},
		{
			name:   "reported zone wins",
			result: &Result{Latitude: 40.7, Longitude: -74.0, TimeZone: "America/Chicago"},
			want:   "America/Chicago",
		},
		{
			name:   "coordinates when zone unknown",
			result: &Result{Latitude: 40.7, Longitude: -74.0, TimeZone: "Not/AZone"},
			want:   "America/New_York",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := z.ForResult(tt.result)
			if got.String() != tt.want {
				t.Errorf("ForResult() = %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestNewZoneResolver(t *testing.T) {
	z, err := NewZoneResolver("")
	if err != nil {
		t.Fatalf("NewZoneResolver(\"\") error = %v", err)
	}
	if z.Fallback() != time.Local {
		t.Errorf("Fallback() = %v, want time.Local", z.Fallback())
	}

	if _, err := NewZoneResolver("Mars/Olympus_Mons"); err == nil {
		t.Error("NewZoneResolver(unknown) expected error")
	}
}
