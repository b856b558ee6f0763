package pubsub

import "context"

//go:generate mockgen -source=pubsub.go -destination=../../../test/unit/doubles/infra/pubsub/pubsub_mock.go -package=pubsub -mock_names=PublisherFactory=MockPublisherFactory,Publisher=MockPublisher

type PublisherFactory interface {
	New(Topic, Message) (Publisher, error)
}

type Publisher interface {
	Publish(context.Context, Key, Message) error
}

type Key string
type Message any
type Topic string

// SchemaProvider is implemented by every message published on a topic. The
// schema is the avro record definition used on the wire.
type SchemaProvider interface {
	AvroSchema() string
}

type MessageHandler func(context.Context, Key, Message) error
