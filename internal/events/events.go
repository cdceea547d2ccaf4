package events

import (
	"context"
	"time"

	"regionview/internal/display"
	"regionview/pkg/kafka"
)

const (
	EventTypeDisplayRendered = "display.rendered"
	SchemaVersion            = "1"
	Source                   = "regionview"
)

// DisplayRendered is published once per rendered display.
type DisplayRendered struct {
	Region      string    `json:"region"`
	Period      string    `json:"time"`
	Source      string    `json:"source"`
	Locality    string    `json:"locality,omitempty"`
	FailureKind string    `json:"failure_kind,omitempty"`
	RenderedAt  time.Time `json:"rendered_at"`
}

func NewDisplayRendered(state display.State, failureKind string, at time.Time) DisplayRendered {
	return DisplayRendered{
		Region:      string(state.Region),
		Period:      string(state.Period),
		Source:      string(state.Source),
		Locality:    state.Location.Locality(),
		FailureKind: failureKind,
		RenderedAt:  at.UTC(),
	}
}

type Publisher interface {
	PublishDisplay(ctx context.Context, requestID string, ev DisplayRendered) error
}

// NopPublisher drops events; used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishDisplay(context.Context, string, DisplayRendered) error {
	return nil
}

type KafkaPublisher struct {
	producer *kafka.Producer
}

func NewKafkaPublisher(producer *kafka.Producer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

// PublishDisplay keys events by region so one region's events stay ordered.
func (p *KafkaPublisher) PublishDisplay(ctx context.Context, requestID string, ev DisplayRendered) error {
	msg, err := kafka.NewMessage().
		WithKey(ev.Region).
		WithValue(ev).
		WithTimestamp(ev.RenderedAt).
		WithEventType(EventTypeDisplayRendered).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		WithCorrelationID(requestID).
		Build()
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, msg)
}
