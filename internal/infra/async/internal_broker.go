package async

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

//go:generate mockgen -source=internal_broker.go -destination=../../../test/unit/doubles/infra/async/internal_broker_mock.go -package=async

const _subscriptionBuffer = 64

type BrokerTopicName string

type BrokerMessage struct {
	Event string
	Value any
	Span  trace.Span
	Error error
}

type InternalBroker interface {
	Subscribe(topic BrokerTopicName) (Subscription, error)
	Unsubscribe(topic BrokerTopicName, subscription Subscription) error
	Publish(ctx context.Context, topic BrokerTopicName, msg BrokerMessage) error
	Stop()
}

var _ InternalBroker = (*LocalBroker)(nil)

var ErrTopicNotFound = errors.New("topic not found")
var ErrSubscriptorNotFound = errors.New("subscriptor not found")

func NewLocalBroker() *LocalBroker {
	return &LocalBroker{
		topics: make(map[BrokerTopicName][]*subscriptor),
	}
}

// LocalBroker fans messages out to in-process subscribers. Delivery is
// best-effort: a subscriber whose buffer is full misses the message.
type LocalBroker struct {
	mu     sync.RWMutex
	topics map[BrokerTopicName][]*subscriptor
}

type subscriptor struct {
	mu           sync.Mutex
	active       bool
	subscription Subscription
	receiver     chan BrokerMessage
}

type Subscription struct {
	ID       string
	Receiver <-chan BrokerMessage
}

func (b *LocalBroker) Subscribe(topic BrokerTopicName) (Subscription, error) {
	receiver := make(chan BrokerMessage, _subscriptionBuffer)
	subscription := Subscription{ID: uuid.NewString(), Receiver: receiver}

	b.mu.Lock()
	b.topics[topic] = append(b.topics[topic], &subscriptor{
		active:       true,
		subscription: subscription,
		receiver:     receiver,
	})
	b.mu.Unlock()

	return subscription, nil
}

// Unsubscribe closes the subscription channel and forgets the subscriber.
// The topic stays known, so publishing to it keeps succeeding.
func (b *LocalBroker) Unsubscribe(topic BrokerTopicName, subscription Subscription) error {
	b.mu.Lock()
	subscriptors, ok := b.topics[topic]
	if !ok {
		b.mu.Unlock()
		return ErrTopicNotFound
	}

	index := slices.IndexFunc(subscriptors, func(s *subscriptor) bool { return s.subscription.ID == subscription.ID })
	if index < 0 {
		b.mu.Unlock()
		return ErrSubscriptorNotFound
	}
	removed := subscriptors[index]
	b.topics[topic] = slices.Delete(slices.Clone(subscriptors), index, index+1)
	b.mu.Unlock()

	removed.close()
	return nil
}

func (b *LocalBroker) Publish(ctx context.Context, topic BrokerTopicName, msg BrokerMessage) error {
	msg.Span = trace.SpanFromContext(ctx)

	b.mu.RLock()
	subscriptors, ok := b.topics[topic]
	b.mu.RUnlock()
	if !ok {
		return ErrTopicNotFound
	}

	for _, s := range subscriptors {
		s.deliver(topic, msg)
	}

	return nil
}

func (b *LocalBroker) Stop() {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, subscriptors := range b.topics {
		for _, s := range subscriptors {
			s.close()
		}
	}
}

func (s *subscriptor) deliver(topic BrokerTopicName, msg BrokerMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return
	}

	select {
	case s.receiver <- msg:
	default:
		slog.Warn("subscriber buffer full, dropping message",
			slog.String("topic", string(topic)),
			slog.String("event", msg.Event),
			slog.String("subscription_id", s.subscription.ID))
	}
}

func (s *subscriptor) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		s.active = false
		close(s.receiver)
	}
}
