package pubsub

import (
	"context"
	"log/slog"
	"sync"
)

var _ PublisherFactory = (*MemoryPublisherFactory)(nil)

type MemoryPublisherFactory struct {
	broker *MemoryBroker
}

func NewMemoryPublisherFactory(broker *MemoryBroker) *MemoryPublisherFactory {
	if broker == nil {
		broker = GetMemoryBroker()
	}

	return &MemoryPublisherFactory{
		broker: broker,
	}
}

func (f *MemoryPublisherFactory) New(topic Topic, _ Message) (Publisher, error) {
	return &MemoryPublisher{
		broker: f.broker,
		topic:  topic,
	}, nil
}

var _ Publisher = (*MemoryPublisher)(nil)

type MemoryPublisher struct {
	broker *MemoryBroker
	topic  Topic
}

func (p *MemoryPublisher) Publish(ctx context.Context, key Key, message Message) error {
	p.broker.Publish(ctx, p.topic, key, message)
	return nil
}

// MemoryBroker delivers published messages synchronously to the handlers
// subscribed on the topic. It stands in for kafka when running locally.
type MemoryBroker struct {
	mu       sync.RWMutex
	handlers map[Topic][]MessageHandler
}

var (
	memoryBroker     *MemoryBroker
	memoryBrokerOnce sync.Once
)

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{
		handlers: make(map[Topic][]MessageHandler),
	}
}

func GetMemoryBroker() *MemoryBroker {
	memoryBrokerOnce.Do(func() {
		memoryBroker = NewMemoryBroker()
	})
	return memoryBroker
}

func (b *MemoryBroker) Subscribe(topic Topic, handler MessageHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[topic] = append(b.handlers[topic], handler)
}

func (b *MemoryBroker) Publish(ctx context.Context, topic Topic, key Key, message Message) {
	b.mu.RLock()
	handlers := append([]MessageHandler(nil), b.handlers[topic]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, key, message); err != nil {
			slog.Error("memory broker handler failed",
				slog.String("topic", string(topic)),
				slog.String("key", string(key)),
				slog.String("error", err.Error()))
		}
	}
}

func (b *MemoryBroker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers = make(map[Topic][]MessageHandler)
}
