package kafka_middleware

import (
	"context"

	"regionview/pkg/kafka"
	"regionview/pkg/metrics"
)

// MetricsProducerMiddleware counts publish results.
func MetricsProducerMiddleware(collector *metrics.Collector) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		err := next(ctx, msg)
		if err != nil {
			collector.ObserveEvent("error")
		} else {
			collector.ObserveEvent("ok")
		}
		return err
	}
}
