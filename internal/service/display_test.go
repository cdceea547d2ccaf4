package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"regionview/internal/display"
	"regionview/internal/events"
	"regionview/internal/geo"
	"regionview/internal/region"
	"regionview/pkg/logger"
	"regionview/pkg/metrics"
	"regionview/pkg/middleware"
)

type mockLocator struct {
	mu       sync.Mutex
	calls    int
	lastIP   string
	locateFn func(ctx context.Context, ip string) (*geo.Result, error)
}

func (m *mockLocator) Locate(ctx context.Context, ip string) (*geo.Result, error) {
	m.mu.Lock()
	m.calls++
	m.lastIP = ip
	m.mu.Unlock()
	return m.locateFn(ctx, ip)
}

type recordingPublisher struct {
	mu        sync.Mutex
	events    []events.DisplayRendered
	requestID string
	err       error
}

func (p *recordingPublisher) PublishDisplay(_ context.Context, requestID string, ev events.DisplayRendered) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	p.requestID = requestID
	return p.err
}

type fixture struct {
	svc       DisplayService
	locator   *mockLocator
	publisher *recordingPublisher
	metrics   *metrics.Collector
}

func newFixture(t *testing.T, now time.Time, locate func(context.Context, string) (*geo.Result, error)) fixture {
	t.Helper()

	collector, err := metrics.NewCollector(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewCollector() = %v", err)
	}
	zones, err := geo.NewZoneResolver("UTC")
	if err != nil {
		t.Fatalf("NewZoneResolver() = %v", err)
	}

	locator := &mockLocator{locateFn: locate}
	publisher := &recordingPublisher{}

	svc := NewDisplayService(Deps{
		Locator:    locator,
		Classifier: region.NewClassifier(region.DefaultEasternThreshold),
		Zones:      zones,
		Clock:      region.ClockFunc(func() time.Time { return now }),
		Renderer:   display.NewRenderer(region.DefaultCatalog),
		Publisher:  publisher,
		Metrics:    collector,
		Log:        logger.Discard(),
	})

	return fixture{svc: svc, locator: locator, publisher: publisher, metrics: collector}
}

func assertRendered(t *testing.T, rec *display.Recorder, reg region.Region, period region.TimePeriod) {
	t.Helper()

	pair, err := region.DefaultCatalog.Lookup(reg, period)
	if err != nil {
		t.Fatalf("catalog lookup: %v", err)
	}
	if rec.Images[0] != pair[0].Path || rec.Images[1] != pair[1].Path {
		t.Errorf("images = %v, want %s and %s", rec.Images, pair[0].Path, pair[1].Path)
	}
	if want := display.Indicator(reg, period); rec.Indicator != want {
		t.Errorf("indicator = %q, want %q", rec.Indicator, want)
	}
	if rec.Renders != 1 {
		t.Errorf("renders = %d, want exactly 1", rec.Renders)
	}
}

func TestLoadContent_LocatedVisitor(t *testing.T) {
	// 17:00 UTC is 13:00 in New York
	now := time.Date(2024, 6, 1, 17, 0, 0, 0, time.UTC)
	f := newFixture(t, now, func(context.Context, string) (*geo.Result, error) {
		return &geo.Result{
			Latitude:    40.7,
			Longitude:   -74,
			City:        "New York",
			RegionName:  "New York",
			CountryName: "United States",
			TimeZone:    "America/New_York",
		}, nil
	})

	ctx := middleware.WithRequestID(context.Background(), "req-1")
	rec := &display.Recorder{}
	out, err := f.svc.LoadContent(ctx, "203.0.113.7", rec)
	if err != nil {
		t.Fatalf("LoadContent() = %v", err)
	}

	if out.Err != nil {
		t.Errorf("Outcome.Err = %v, want nil", out.Err)
	}
	if out.State.Region != region.Eastern || out.State.Period != region.Day {
		t.Errorf("state = %s/%s, want eastern/day", out.State.Region, out.State.Period)
	}
	if out.State.Source != display.SourceAuto {
		t.Errorf("source = %s, want auto", out.State.Source)
	}
	if out.State.Location.Locality() != "New York" {
		t.Errorf("locality = %q", out.State.Location.Locality())
	}
	assertRendered(t, rec, region.Eastern, region.Day)
	if !strings.Contains(rec.Subtitle, "New York") {
		t.Errorf("subtitle should name the city, got %q", rec.Subtitle)
	}

	if f.locator.calls != 1 {
		t.Errorf("locator calls = %d, want 1", f.locator.calls)
	}
	if f.locator.lastIP != "203.0.113.7" {
		t.Errorf("locator ip = %q", f.locator.lastIP)
	}

	if got := testutil.ToFloat64(f.metrics.Lookups.WithLabelValues("success")); got != 1 {
		t.Errorf("success lookups = %v, want 1", got)
	}
	if len(f.publisher.events) != 1 || f.publisher.events[0].Source != "auto" {
		t.Errorf("published events = %+v", f.publisher.events)
	}
	if f.publisher.requestID != "req-1" {
		t.Errorf("published request id = %q", f.publisher.requestID)
	}
}

func TestLoadContent_LocalHourFromCoordinates(t *testing.T) {
	// 03:00 UTC is 20:00 the previous evening in Los Angeles
	now := time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC)
	f := newFixture(t, now, func(context.Context, string) (*geo.Result, error) {
		return &geo.Result{Latitude: 34.05, Longitude: -118.24, City: "Los Angeles"}, nil
	})

	out, err := f.svc.LoadContent(context.Background(), "198.51.100.4", &display.Recorder{})
	if err != nil {
		t.Fatalf("LoadContent() = %v", err)
	}
	if out.State.Region != region.Southern {
		t.Errorf("region = %s, want southern", out.State.Region)
	}
	if out.State.Period != region.Night {
		t.Errorf("period = %s, want night", out.State.Period)
	}
}

func TestLoadContent_FallbackOnAnyFailure(t *testing.T) {
	// 23:00 UTC with a UTC fallback zone is night
	now := time.Date(2024, 6, 1, 23, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		err  error
		kind geo.ErrorKind
	}{
		{
			name: "network failure",
			err:  &geo.LoadError{Kind: geo.KindNetworkFailure, Message: "dial tcp: connection refused"},
			kind: geo.KindNetworkFailure,
		},
		{
			name: "malformed response",
			err:  &geo.LoadError{Kind: geo.KindMalformedResponse, Message: "invalid character '<'"},
			kind: geo.KindMalformedResponse,
		},
		{
			name: "upstream error",
			err:  &geo.LoadError{Kind: geo.KindUpstreamError, Message: "API Error: usage limit reached"},
			kind: geo.KindUpstreamError,
		},
		{
			name: "context cancelled",
			err:  context.Canceled,
			kind: geo.KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, now, func(context.Context, string) (*geo.Result, error) {
				return nil, tt.err
			})

			rec := &display.Recorder{}
			out, err := f.svc.LoadContent(context.Background(), "203.0.113.7", rec)
			if err != nil {
				t.Fatalf("LoadContent() = %v", err)
			}

			if !errors.Is(out.Err, tt.err) {
				t.Errorf("Outcome.Err = %v, want %v", out.Err, tt.err)
			}
			if geo.KindOf(out.Err) != tt.kind {
				t.Errorf("kind = %s, want %s", geo.KindOf(out.Err), tt.kind)
			}
			if out.State.Region != region.Western || out.State.Period != region.Night {
				t.Errorf("state = %s/%s, want western/night", out.State.Region, out.State.Period)
			}
			if out.State.Location != nil {
				t.Errorf("fallback must not carry a location, got %+v", out.State.Location)
			}
			if out.State.Source != display.SourceFallback {
				t.Errorf("source = %s, want fallback", out.State.Source)
			}
			assertRendered(t, rec, region.Western, region.Night)

			if got := testutil.ToFloat64(f.metrics.Lookups.WithLabelValues(tt.kind.String())); got != 1 {
				t.Errorf("lookups{%s} = %v, want 1", tt.kind, got)
			}
			if len(f.publisher.events) != 1 || f.publisher.events[0].FailureKind != tt.kind.String() {
				t.Errorf("published events = %+v", f.publisher.events)
			}
		})
	}
}

func TestLoadContent_PrivateAddressUsesSelfLookup(t *testing.T) {
	f := newFixture(t, time.Now(), func(context.Context, string) (*geo.Result, error) {
		return &geo.Result{Latitude: 45, Longitude: -93}, nil
	})

	if _, err := f.svc.LoadContent(context.Background(), "10.0.0.12", &display.Recorder{}); err != nil {
		t.Fatalf("LoadContent() = %v", err)
	}
	if f.locator.lastIP != "" {
		t.Errorf("private address should not be forwarded, got %q", f.locator.lastIP)
	}
}

func TestLoadContent_PublishFailureDoesNotAffectPage(t *testing.T) {
	f := newFixture(t, time.Now(), func(context.Context, string) (*geo.Result, error) {
		return &geo.Result{Latitude: 30, Longitude: -90}, nil
	})
	f.publisher.err = errors.New("broker down")

	rec := &display.Recorder{}
	out, err := f.svc.LoadContent(context.Background(), "203.0.113.7", rec)
	if err != nil {
		t.Fatalf("LoadContent() = %v", err)
	}
	if out.State.Region != region.Southern || rec.Renders != 1 {
		t.Errorf("state = %+v, renders = %d", out.State, rec.Renders)
	}
}

func TestSelect_RendersWithoutLookup(t *testing.T) {
	f := newFixture(t, time.Now(), func(context.Context, string) (*geo.Result, error) {
		t.Fatal("manual selection must not look up the visitor")
		return nil, nil
	})

	rec := &display.Recorder{}
	state, err := f.svc.Select(context.Background(), region.Combination{Region: region.Northern, Period: region.Night}, rec)
	if err != nil {
		t.Fatalf("Select() = %v", err)
	}

	if state.Source != display.SourceManual || state.Location != nil {
		t.Errorf("state = %+v", state)
	}
	assertRendered(t, rec, region.Northern, region.Night)
	if strings.Contains(rec.Subtitle, "based on") {
		t.Errorf("manual subtitle must not mention a location, got %q", rec.Subtitle)
	}
	if got := testutil.ToFloat64(f.metrics.Renders.WithLabelValues("manual", "northern", "night")); got != 1 {
		t.Errorf("manual renders = %v, want 1", got)
	}
}

func TestSelect_UnknownCombination(t *testing.T) {
	f := newFixture(t, time.Now(), nil)

	rec := &display.Recorder{}
	if _, err := f.svc.Select(context.Background(), region.Combination{Region: "central", Period: region.Day}, rec); err == nil {
		t.Fatal("expected error for a combination outside the catalog")
	}
	if rec.Renders != 0 {
		t.Errorf("nothing should be rendered, got %d renders", rec.Renders)
	}
	if len(f.publisher.events) != 0 {
		t.Errorf("nothing should be published, got %+v", f.publisher.events)
	}
}

func TestRendered_RecordsExternalRender(t *testing.T) {
	f := newFixture(t, time.Now(), nil)

	ctx := middleware.WithRequestID(context.Background(), "req-9")
	f.svc.Rendered(ctx, display.State{Region: region.Eastern, Period: region.Day, Source: display.SourceManual})

	if got := testutil.ToFloat64(f.metrics.Renders.WithLabelValues("manual", "eastern", "day")); got != 1 {
		t.Errorf("manual renders = %v, want 1", got)
	}
	if len(f.publisher.events) != 1 || f.publisher.requestID != "req-9" {
		t.Errorf("published = %+v, request id %q", f.publisher.events, f.publisher.requestID)
	}
}

func TestLoadContent_LookupEndsBeforeRequestDeadline(t *testing.T) {
	now := time.Date(2024, 6, 1, 17, 0, 0, 0, time.UTC)

	var lookupDeadline time.Time
	f := newFixture(t, now, func(ctx context.Context, _ string) (*geo.Result, error) {
		lookupDeadline, _ = ctx.Deadline()
		<-ctx.Done()
		return nil, &geo.LoadError{Kind: geo.KindNetworkFailure, Message: "lookup timed out", Err: ctx.Err()}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	requestDeadline, _ := ctx.Deadline()

	var rec display.Recorder
	outcome, err := f.svc.LoadContent(ctx, "8.8.8.8", &rec)
	if err != nil {
		t.Fatalf("LoadContent() error = %v", err)
	}

	if !lookupDeadline.Before(requestDeadline) {
		t.Errorf("lookup deadline %v should fall before request deadline %v", lookupDeadline, requestDeadline)
	}
	if ctx.Err() != nil {
		t.Error("fallback should be rendered while the request is still live")
	}
	if outcome.State.Source != display.SourceFallback {
		t.Errorf("Source = %v, want fallback", outcome.State.Source)
	}
	assertRendered(t, &rec, region.Western, region.Day)
}
