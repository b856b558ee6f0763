package pubsub

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lovoo/goka"
)

const (
	_emitterRetries    = 10
	_emitterRetryDelay = 5 * time.Second
)

type KafkaPublisherFactoryOptions struct {
	Brokers []string
	// SchemaRegistry switches the wire format to Confluent framed avro.
	SchemaRegistry SchemaRegistry
}

var _ PublisherFactory = (*KafkaPublisherFactory)(nil)

type KafkaPublisherFactory struct {
	brokers  []string
	registry SchemaRegistry
}

func NewKafkaPublisherFactory(opts KafkaPublisherFactoryOptions) *KafkaPublisherFactory {
	return &KafkaPublisherFactory{
		brokers:  opts.Brokers,
		registry: opts.SchemaRegistry,
	}
}

func (f *KafkaPublisherFactory) New(topic Topic, prototype Message) (Publisher, error) {
	return NewKafkaPublisher(f.brokers, topic, prototype, f.registry)
}

type publisherKey struct {
	brokers       string
	topic         Topic
	prototypeType string
}

type publisherInstance struct {
	publisher *SimpleKafkaPublisher
	once      sync.Once
	err       error
}

var (
	publishersMap   = make(map[publisherKey]*publisherInstance)
	publishersMutex sync.Mutex
)

// NewKafkaPublisher returns one shared emitter per brokers/topic/type so that
// every repository asking for the same topic reuses the connection.
func NewKafkaPublisher(brokers []string, topic Topic, prototype Message, registry SchemaRegistry) (*SimpleKafkaPublisher, error) {
	key := publisherKey{
		brokers:       strings.Join(brokers, ","),
		topic:         topic,
		prototypeType: fmt.Sprintf("%T", prototype),
	}

	publishersMutex.Lock()
	instance, exists := publishersMap[key]
	if !exists {
		instance = &publisherInstance{}
		publishersMap[key] = instance
	}
	publishersMutex.Unlock()

	instance.once.Do(func() {
		codec, err := newCodec(topic, prototype, registry)
		if err != nil {
			instance.err = err
			return
		}

		for try := range _emitterRetries {
			slog.Debug("connecting to kafka brokers",
				slog.String("brokers", key.brokers),
				slog.String("topic", string(topic)),
				slog.Int("attempt", try+1))

			emitter, err := goka.NewEmitter(brokers, goka.Stream(topic), codec)
			if err == nil {
				instance.publisher = &SimpleKafkaPublisher{emitter: emitter, topic: topic}
				return
			}
			time.Sleep(_emitterRetryDelay)
		}

		instance.err = fmt.Errorf("imposible to connect to kafka brokers after %d retries", _emitterRetries)
	})

	if instance.err != nil {
		return nil, instance.err
	}

	return instance.publisher, nil
}

var _ Publisher = (*SimpleKafkaPublisher)(nil)

type SimpleKafkaPublisher struct {
	emitter *goka.Emitter
	topic   Topic
}

func (p *SimpleKafkaPublisher) Publish(_ context.Context, key Key, message Message) error {
	slog.Debug("publishing message", slog.String("topic", string(p.topic)), slog.String("key", string(key)))
	if err := p.emitter.EmitSync(string(key), message); err != nil {
		return fmt.Errorf("emitting to %s: %w", p.topic, err)
	}

	return nil
}

func (p *SimpleKafkaPublisher) Close() error {
	return p.emitter.Finish()
}

func newCodec(topic Topic, prototype Message, registry SchemaRegistry) (goka.Codec, error) {
	if registry == nil {
		return NewAvroCodec(prototype)
	}
	return NewConfluentAvroCodec(topic, prototype, registry)
}
