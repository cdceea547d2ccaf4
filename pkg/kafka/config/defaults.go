package kafka_config

import "time"

const (
	// Publishing is off unless brokers are configured
	DefaultKafkaBrokers = ""
	DefaultDisplayTopic = "regionview.display.rendered"

	// Producer defaults
	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequireAcks  = 1
	DefaultProducerCompression  = "snappy"
	DefaultProducerAsync        = true
)
