package display

import (
	"regionview/internal/geo"
	"regionview/internal/region"
)

// Source records how a display state was reached.
type Source string

const (
	SourceAuto     Source = "auto"
	SourceFallback Source = "fallback"
	SourceManual   Source = "manual"
)

// FallbackRegion is shown whenever the visitor cannot be located.
const FallbackRegion = region.Western

type State struct {
	Region   region.Region     `json:"region"`
	Period   region.TimePeriod `json:"time"`
	Location *geo.LocationInfo `json:"location,omitempty"`
	Source   Source            `json:"source"`
}

func (s State) Combination() region.Combination {
	return region.Combination{Region: s.Region, Period: s.Period}
}
