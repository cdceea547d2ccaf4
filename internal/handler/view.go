package handler

import (
	"net/url"
	"strings"

	"regionview/internal/browse"
	"regionview/internal/display"
	"regionview/internal/geo"
	"regionview/internal/region"
	"regionview/pkg/sanitizer"
)

// Query parameters describing the display a page is currently showing, so
// modal interactions can redraw it without another lookup.
const (
	ParamRegion = "region"
	ParamTime   = "time"
	ParamPlace  = "place"
	ParamSource = "source"
)

const assetsPrefix = "/assets/"

type ImageView struct {
	Path  string `json:"path"`
	URL   string `json:"url"`
	Label string `json:"label,omitempty"`
}

type CardView struct {
	Key        string `json:"key"`
	Region     string `json:"region"`
	Time       string `json:"time"`
	Title      string `json:"title"`
	PreviewURL string `json:"preview_url"`
	Label      string `json:"label,omitempty"`
	SelectURL  string `json:"-"`
}

type PageLinks struct {
	Browse   string
	Close    string
	Backdrop string
}

// PageView is the data behind the page template. The embedded Recorder is
// the surface the renderer writes into.
type PageView struct {
	display.Recorder

	State     display.State
	ModalOpen bool
	Cards     []CardView
	Links     PageLinks
}

func (v *PageView) ImageViews() [2]ImageView {
	return imageViews(&v.Recorder)
}

// assetURL turns a catalog path into an escaped URL under /assets/.
func assetURL(path string) string {
	u := url.URL{Path: assetsPrefix + strings.TrimPrefix(path, "/")}
	return u.EscapedPath()
}

func imageViews(rec *display.Recorder) [2]ImageView {
	var out [2]ImageView
	for i := range out {
		out[i] = ImageView{
			Path:  rec.Images[i],
			URL:   assetURL(rec.Images[i]),
			Label: rec.Labels[i],
		}
	}
	return out
}

func cardViews(cards []browse.Card) []CardView {
	out := make([]CardView, 0, len(cards))
	for _, c := range cards {
		q := url.Values{}
		q.Set(browse.ParamModal, browse.Open.String())
		q.Set(browse.ParamSelect, c.Key())

		cv := CardView{
			Key:       c.Key(),
			Region:    string(c.Region),
			Time:      string(c.Period),
			Title:     display.Indicator(c.Region, c.Period),
			Label:     c.Label,
			SelectURL: "?" + q.Encode(),
		}
		if c.Preview != "" {
			cv.PreviewURL = assetURL(c.Preview)
		}
		out = append(out, cv)
	}
	return out
}

// displayQuery encodes the shown display for links that keep it.
func displayQuery(state display.State) url.Values {
	q := url.Values{}
	q.Set(ParamRegion, string(state.Region))
	q.Set(ParamTime, string(state.Period))
	if state.Source != "" {
		q.Set(ParamSource, string(state.Source))
	}
	if place := state.Location.Locality(); place != "" {
		q.Set(ParamPlace, place)
	}
	return q
}

func pageLinks(state display.State) PageLinks {
	with := func(kv ...string) string {
		q := displayQuery(state)
		for i := 0; i+1 < len(kv); i += 2 {
			q.Set(kv[i], kv[i+1])
		}
		return "?" + q.Encode()
	}
	open := browse.Open.String()
	return PageLinks{
		Browse:   with(browse.ParamAction, string(browse.EventOpen)),
		Close:    with(browse.ParamModal, open, browse.ParamAction, string(browse.EventClose)),
		Backdrop: with(browse.ParamModal, open, browse.ParamClick, string(browse.TargetBackdrop)),
	}
}

// shownDisplay reads the display a page was showing from its query. ok is
// false when the query does not carry a complete, valid one.
func shownDisplay(q url.Values) (display.State, bool) {
	reg, err := region.ParseRegion(q.Get(ParamRegion))
	if err != nil {
		return display.State{}, false
	}
	period, err := region.ParsePeriod(q.Get(ParamTime))
	if err != nil {
		return display.State{}, false
	}

	state := display.State{Region: reg, Period: period, Source: display.SourceManual}
	switch src := display.Source(q.Get(ParamSource)); src {
	case display.SourceAuto, display.SourceFallback, display.SourceManual:
		state.Source = src
	}
	if place := sanitizer.NormalizePlaceName(q.Get(ParamPlace)); place != "" {
		state.Location = &geo.LocationInfo{City: place}
	}
	return state, true
}
