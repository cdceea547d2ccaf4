package service

import (
	"context"
	"time"

	"regionview/internal/display"
	"regionview/internal/events"
	"regionview/internal/geo"
	"regionview/internal/region"
	"regionview/pkg/logger"
	"regionview/pkg/metrics"
	"regionview/pkg/middleware"
)

// Outcome is the result of one page load. Err is the lookup failure that
// forced the fallback display, nil when the visitor was located.
type Outcome struct {
	State display.State
	Err   error
}

type DisplayService interface {
	LoadContent(ctx context.Context, clientIP string, surface display.Surface) (Outcome, error)
	Select(ctx context.Context, combo region.Combination, surface display.Surface) (display.State, error)
	Rendered(ctx context.Context, state display.State)
	Renderer() *display.Renderer
}

type Deps struct {
	Locator    geo.Locator
	Classifier region.Classifier
	Zones      *geo.ZoneResolver
	Clock      region.Clock
	Renderer   *display.Renderer
	Publisher  events.Publisher
	Metrics    *metrics.Collector
	Log        *logger.Logger
}

type displayService struct {
	locator    geo.Locator
	classifier region.Classifier
	zones      *geo.ZoneResolver
	clock      region.Clock
	renderer   *display.Renderer
	publisher  events.Publisher
	metrics    *metrics.Collector
	log        *logger.Logger
}

func NewDisplayService(d Deps) DisplayService {
	if d.Clock == nil {
		d.Clock = region.SystemClock
	}
	if d.Publisher == nil {
		d.Publisher = events.NopPublisher{}
	}
	if d.Zones == nil {
		d.Zones, _ = geo.NewZoneResolver("")
	}
	if d.Log == nil {
		d.Log = logger.Discard()
	}
	return &displayService{
		locator:    d.Locator,
		classifier: d.Classifier,
		zones:      d.Zones,
		clock:      d.Clock,
		renderer:   d.Renderer,
		publisher:  d.Publisher,
		metrics:    d.Metrics,
		log:        d.Log,
	}
}

func (s *displayService) Renderer() *display.Renderer {
	return s.renderer
}

// renderReserve is the share of the remaining request time, as a divisor,
// held back from the lookup for rendering the fallback.
const renderReserve = 5

// lookupContext bounds the lookup to end before the request deadline, so a
// slow upstream is reported as a lookup failure rather than a request timeout.
func lookupContext(ctx context.Context) (context.Context, context.CancelFunc) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return context.WithCancel(ctx)
	}
	remaining := time.Until(deadline)
	return context.WithTimeout(ctx, remaining-remaining/renderReserve)
}

// LoadContent performs the single lookup of a page load and renders exactly
// once: the located region, or the western fallback when the lookup failed
// for any reason. Lookup failures are reported in the Outcome, never as the
// returned error.
func (s *displayService) LoadContent(ctx context.Context, clientIP string, surface display.Surface) (Outcome, error) {
	requestID := middleware.GetRequestID(ctx)
	lookupIP := geo.LookupIP(clientIP)
	log := s.log.With("request_id", requestID)

	log.Debug("Resolving visitor location",
		"client_ip", clientIP,
		"lookup_ip", lookupIP,
	)

	lookupCtx, cancel := lookupContext(ctx)
	start := time.Now()
	result, err := s.locator.Locate(lookupCtx, lookupIP)
	elapsed := time.Since(start)
	cancel()

	if err != nil {
		kind := geo.KindOf(err)
		s.metrics.ObserveLookup(kind.String(), elapsed)
		log.Warn("Location lookup failed, using fallback",
			"kind", kind.String(),
			"error", err,
			"duration_ms", elapsed.Milliseconds(),
		)

		state := display.State{
			Region: display.FallbackRegion,
			Period: region.CurrentPeriod(s.clock, s.zones.Fallback()),
			Source: display.SourceFallback,
		}
		if renderErr := s.render(ctx, requestID, surface, state, kind.String()); renderErr != nil {
			return Outcome{}, renderErr
		}
		return Outcome{State: state, Err: err}, nil
	}

	s.metrics.ObserveLookup("success", elapsed)

	state := display.State{
		Region:   s.classifier.Classify(result.Latitude, result.Longitude),
		Period:   region.CurrentPeriod(s.clock, s.zones.ForResult(result)),
		Location: result.Info(),
		Source:   display.SourceAuto,
	}

	log.Info("Visitor located",
		"region", state.Region,
		"time", state.Period,
		"locality", state.Location.Locality(),
		"duration_ms", elapsed.Milliseconds(),
	)

	if err := s.render(ctx, requestID, surface, state, ""); err != nil {
		return Outcome{}, err
	}
	return Outcome{State: state}, nil
}

// Select renders a manually chosen combination without a location.
func (s *displayService) Select(ctx context.Context, combo region.Combination, surface display.Surface) (display.State, error) {
	state := display.State{
		Region: combo.Region,
		Period: combo.Period,
		Source: display.SourceManual,
	}
	if err := s.render(ctx, middleware.GetRequestID(ctx), surface, state, ""); err != nil {
		return display.State{}, err
	}
	return state, nil
}

func (s *displayService) render(ctx context.Context, requestID string, surface display.Surface, state display.State, failureKind string) error {
	if err := s.renderer.RenderState(surface, state); err != nil {
		s.log.Error("Failed to render display",
			"request_id", requestID,
			"region", state.Region,
			"time", state.Period,
			"error", err,
		)
		return err
	}

	s.notify(ctx, requestID, state, failureKind)
	return nil
}

// Rendered records a display that was drawn outside the service, such as a
// card picked in the browse modal.
func (s *displayService) Rendered(ctx context.Context, state display.State) {
	s.notify(ctx, middleware.GetRequestID(ctx), state, "")
}

// notify counts and publishes a rendered state. Publishing problems are
// logged and never affect the page.
func (s *displayService) notify(ctx context.Context, requestID string, state display.State, failureKind string) {
	s.metrics.ObserveRender(string(state.Source), string(state.Region), string(state.Period))

	ev := events.NewDisplayRendered(state, failureKind, s.clock.Now())
	if err := s.publisher.PublishDisplay(ctx, requestID, ev); err != nil {
		s.log.Warn("Failed to publish display event",
			"request_id", requestID,
			"region", state.Region,
			"error", err,
		)
	}
}
