package communication

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"posbridge-server/internal/control_plane/communication/internal"
	"posbridge-server/internal/control_plane/domain"
	"posbridge-server/internal/control_plane/usecases"
	"posbridge-server/internal/infra/async"
	"posbridge-server/internal/infra/pubsub"
)

const (
	_deviceHealthTopic    = "device_health"
	_commandOutcomesTopic = "command_outcomes"
)

func NewDeviceEventPublisher(factory pubsub.PublisherFactory, broker async.InternalBroker) (*DeviceEventPublisher, error) {
	health, err := factory.New(_deviceHealthTopic, &internal.DeviceHealthChanged{})
	if err != nil {
		return nil, fmt.Errorf("creating health publisher: %w", err)
	}

	outcomes, err := factory.New(_commandOutcomesTopic, &internal.CommandOutcome{})
	if err != nil {
		return nil, fmt.Errorf("creating outcome publisher: %w", err)
	}

	return &DeviceEventPublisher{
		health:   health,
		outcomes: outcomes,
		broker:   broker,
	}, nil
}

var _ usecases.DeviceEventPublisher = (*DeviceEventPublisher)(nil)

// DeviceEventPublisher emits avro events keyed by device (health) or command
// (outcomes) and mirrors health changes onto the in-process broker.
type DeviceEventPublisher struct {
	health   pubsub.Publisher
	outcomes pubsub.Publisher
	broker   async.InternalBroker
}

func (p *DeviceEventPublisher) PublishHealthChanged(ctx context.Context, device domain.Device) error {
	if p.broker != nil {
		err := p.broker.Publish(ctx, async.BrokerTopicName(usecases.DeviceHealthStream), async.BrokerMessage{
			Event: usecases.DeviceHealthChangedEvent,
			Value: usecases.HealthSnapshot{
				DeviceID:       device.ID,
				OrganizationID: device.OrganizationID,
				Health:         device.Health,
			},
		})
		// nobody is listening yet
		if err != nil && !errors.Is(err, async.ErrTopicNotFound) {
			slog.Warn("streaming health change",
				slog.String("device_id", device.ID.String()),
				slog.String("error", err.Error()))
		}
	}

	err := p.health.Publish(ctx, pubsub.Key(device.ID), internal.FromDeviceHealth(device))
	if err != nil {
		return fmt.Errorf("publishing health change: %w", err)
	}

	return nil
}

func (p *DeviceEventPublisher) PublishCommandOutcome(ctx context.Context, outcome usecases.CommandOutcome) error {
	err := p.outcomes.Publish(ctx, pubsub.Key(outcome.CommandID), internal.FromCommandOutcome(outcome))
	if err != nil {
		return fmt.Errorf("publishing command outcome: %w", err)
	}

	return nil
}
