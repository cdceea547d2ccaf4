package display

import (
	"strings"
	"testing"

	"regionview/internal/geo"
	"regionview/internal/region"
)

func TestRenderer_RenderAllCombinations(t *testing.T) {
	renderer := NewRenderer(region.DefaultCatalog)

	for _, combo := range region.Combinations() {
		t.Run(combo.Key(), func(t *testing.T) {
			var rec Recorder
			if err := renderer.Render(&rec, combo.Region, combo.Period, nil); err != nil {
				t.Fatalf("Render() error = %v", err)
			}

			pair := region.DefaultCatalog[combo.Region][combo.Period]
			if rec.Images[First] != pair[0].Path || rec.Images[Second] != pair[1].Path {
				t.Errorf("Images = %v, want [%q %q]", rec.Images, pair[0].Path, pair[1].Path)
			}
			if rec.Labels[First] != pair[0].Label || rec.Labels[Second] != pair[1].Label {
				t.Errorf("Labels = %v, want [%q %q]", rec.Labels, pair[0].Label, pair[1].Label)
			}
			wantIndicator := string(combo.Period) + " • " + string(combo.Region)
			if rec.Indicator != wantIndicator {
				t.Errorf("Indicator = %q, want %q", rec.Indicator, wantIndicator)
			}
			if rec.Renders != 1 {
				t.Errorf("Renders = %d, want 1", rec.Renders)
			}
		})
	}
}

func TestRenderer_CountsWholeRenders(t *testing.T) {
	renderer := NewRenderer(region.DefaultCatalog)
	var rec Recorder

	rec.SetSubtitle("written outside a render")
	rec.SetImage(First, "western/day golden gate.jpg")
	if rec.Renders != 0 {
		t.Fatalf("Renders = %d after field writes, want 0", rec.Renders)
	}

	for i := 1; i <= 2; i++ {
		if err := renderer.Render(&rec, region.Eastern, region.Night, nil); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if rec.Renders != i {
			t.Errorf("Renders = %d after %d renders", rec.Renders, i)
		}
	}
}

func TestRenderer_RenderUnknownLeavesSurface(t *testing.T) {
	renderer := NewRenderer(region.DefaultCatalog)
	rec := Recorder{Indicator: "day • western"}

	if err := renderer.Render(&rec, region.Region("central"), region.Day, nil); err == nil {
		t.Fatal("Render() expected error for unknown region")
	}
	if rec.Indicator != "day • western" || rec.Renders != 0 {
		t.Errorf("surface changed on failed render: %+v", rec)
	}
}

func TestSubtitle(t *testing.T) {
	tests := []struct {
		name       string
		location   *geo.LocationInfo
		contains   string
		notContain string
	}{
		{
			name:       "no location",
			location:   nil,
			contains:   "Showing the eastern region by night.",
			notContain: "based on",
		},
		{
			name:     "city preferred",
			location: &geo.LocationInfo{City: "Brooklyn", RegionName: "New York", CountryName: "United States"},
			contains: "based on Brooklyn and your current hour",
		},
		{
			name:     "region when no city",
			location: &geo.LocationInfo{RegionName: "New York", CountryName: "United States"},
			contains: "based on New York",
		},
		{
			name:     "country when nothing else",
			location: &geo.LocationInfo{CountryName: "United States"},
			contains: "based on United States",
		},
		{
			name:     "generic phrase when empty",
			location: &geo.LocationInfo{},
			contains: "based on your area",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Subtitle(region.Eastern, region.Night, tt.location)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("Subtitle() = %q, want it to contain %q", got, tt.contains)
			}
			if tt.notContain != "" && strings.Contains(got, tt.notContain) {
				t.Errorf("Subtitle() = %q, must not contain %q", got, tt.notContain)
			}
		})
	}
}
