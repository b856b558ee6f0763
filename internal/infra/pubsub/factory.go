package pubsub

import "github.com/riferrei/srclient"

const EnvironmentLocal = "local"

type FactoryOptions struct {
	Environment       string
	KafkaBrokers      []string
	SchemaRegistryURL string
}

// NewPublisherFactory keeps events in process for local runs and emits them
// to kafka everywhere else.
func NewPublisherFactory(opts FactoryOptions) PublisherFactory {
	if opts.Environment == EnvironmentLocal {
		return NewMemoryPublisherFactory(nil)
	}

	kafkaOpts := KafkaPublisherFactoryOptions{
		Brokers: opts.KafkaBrokers,
	}
	if opts.SchemaRegistryURL != "" {
		kafkaOpts.SchemaRegistry = srclient.CreateSchemaRegistryClient(opts.SchemaRegistryURL)
	}

	return NewKafkaPublisherFactory(kafkaOpts)
}
