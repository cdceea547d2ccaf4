package display

import (
	"fmt"

	"regionview/internal/geo"
	"regionview/internal/region"
)

const genericLocality = "your area"

type Renderer struct {
	catalog region.Catalog
}

func NewRenderer(catalog region.Catalog) *Renderer {
	return &Renderer{catalog: catalog}
}

func (r *Renderer) Catalog() region.Catalog {
	return r.catalog
}

// Render writes every field of the surface for one region/time. It looks the
// pair up before touching the surface so a bad combination leaves the page
// as it was.
func (r *Renderer) Render(s Surface, reg region.Region, period region.TimePeriod, location *geo.LocationInfo) error {
	pair, err := r.catalog.Lookup(reg, period)
	if err != nil {
		return err
	}

	s.SetImage(First, pair[0].Path)
	s.SetImage(Second, pair[1].Path)
	s.SetLabel(First, pair[0].Label)
	s.SetLabel(Second, pair[1].Label)
	s.SetIndicator(Indicator(reg, period))
	s.SetSubtitle(Subtitle(reg, period, location))
	if c, ok := s.(Committer); ok {
		c.Commit()
	}
	return nil
}

// RenderState is Render for a resolved State.
func (r *Renderer) RenderState(s Surface, state State) error {
	return r.Render(s, state.Region, state.Period, state.Location)
}

func Indicator(reg region.Region, period region.TimePeriod) string {
	return fmt.Sprintf("%s • %s", period, reg)
}

func Subtitle(reg region.Region, period region.TimePeriod, location *geo.LocationInfo) string {
	if location == nil {
		return fmt.Sprintf("Showing the %s region by %s.", reg, period)
	}
	locality := location.Locality()
	if locality == "" {
		locality = genericLocality
	}
	return fmt.Sprintf("Showing the %s region by %s, based on %s and your current hour.", reg, period, locality)
}
