package main

import (
	"context"
	_ "time/tzdata"

	"regionview/internal/browse"
	"regionview/internal/display"
	"regionview/internal/events"
	"regionview/internal/geo"
	"regionview/internal/handler"
	"regionview/internal/region"
	"regionview/internal/service"
	"regionview/internal/validator"
	"regionview/pkg/app"
	"regionview/pkg/config"
	"regionview/pkg/contracts"
	"regionview/pkg/kafka"
	kafka_config "regionview/pkg/kafka/config"
	kafka_middleware "regionview/pkg/kafka/middleware"
	"regionview/pkg/metrics"
)

const ServiceName = "regionview"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting regionview service")

	collector, err := metrics.NewCollector(nil)
	if err != nil {
		cfg.Log.Fatal("Failed to register metrics", "error", err)
	}

	serverApp := app.NewApplication(cfg, collector)

	publisher := initPublisher(cfg, collector, serverApp)
	displayService := initServices(cfg, collector, publisher)

	bindings, err := browse.NewBindings(region.DefaultCatalog)
	if err != nil {
		cfg.Log.Fatal("Image catalog is incomplete", "error", err)
	}

	serverApp.SetApp(app.Routes{
		Health: handler.NewHealthHandler(region.DefaultCatalog, cfg.AssetsDir, cfg.Log),
		Assets: handler.NewAssetsHandler(cfg.AssetsDir),
		App: []contracts.Handler{
			handler.NewPageHandler(displayService, bindings, cfg.Log),
			handler.NewDisplayHandler(displayService, validator.NewSelectionValidator(cfg.Log), cfg.Log),
		},
		Route: handler.RouteLabel,
	}, geo.ClientIP)
	serverApp.Run()
}

func initServices(cfg *config.Config, collector *metrics.Collector, publisher events.Publisher) service.DisplayService {
	zones, err := geo.NewZoneResolver(cfg.DefaultTimezone)
	if err != nil {
		cfg.Log.Fatal("Invalid default timezone", "error", err)
	}

	locator := geo.NewClient(geo.ClientConfig{
		APIKey:         cfg.GeoAPIKey,
		KeyedBaseURL:   cfg.GeoKeyedBaseURL,
		KeylessBaseURL: cfg.GeoKeylessBaseURL,
		Timeout:        cfg.GeoTimeout,
	})

	displayService := service.NewDisplayService(service.Deps{
		Locator:    locator,
		Classifier: region.NewClassifier(cfg.EasternThreshold),
		Zones:      zones,
		Clock:      region.SystemClock,
		Renderer:   display.NewRenderer(region.DefaultCatalog),
		Publisher:  publisher,
		Metrics:    collector,
		Log:        cfg.Log,
	})

	cfg.Log.Info("Display service initialized",
		"geo_endpoint", locator.RedactedEndpoint(""),
		"keyed", locator.Keyed(),
		"eastern_threshold", cfg.EasternThreshold,
		"fallback_timezone", zones.Fallback().String(),
	)
	return displayService
}

// initPublisher returns a Kafka publisher when brokers are configured and a
// no-op one otherwise.
func initPublisher(cfg *config.Config, collector *metrics.Collector, serverApp *app.Application) events.Publisher {
	kafkaCfg := kafka_config.Load()
	if !kafkaCfg.Enabled() {
		cfg.Log.Info("Kafka brokers not configured, display events disabled")
		return events.NopPublisher{}
	}
	if err := kafkaCfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	producer, err := kafka.NewProducer(kafkaCfg, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	producer.Use(kafka_middleware.MetricsProducerMiddleware(collector))

	serverApp.OnShutdown(func(context.Context) error {
		cfg.Log.Info("Closing Kafka producer")
		return producer.Close()
	})

	cfg.Log.Info("Display events enabled", "brokers", kafkaCfg.Brokers, "topic", producer.Topic())
	return events.NewKafkaPublisher(producer)
}
