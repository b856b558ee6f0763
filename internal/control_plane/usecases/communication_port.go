package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"posbridge-server/internal/control_plane/domain"
)

//go:generate mockgen -source=communication_port.go -destination=../../../test/unit/doubles/control_plane/usecases/communication_port_mock.go -package=usecases

// DeviceCommunicationError carries the raw downstream message so operators
// can fix register side misconfiguration.
type DeviceCommunicationError struct {
	DeviceID   domain.ID
	StatusCode int
	Message    string
	Err        error
}

func (e *DeviceCommunicationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("device %s responded %d: %s", e.DeviceID, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("device %s: %s", e.DeviceID, e.Message)
}

func (e *DeviceCommunicationError) Unwrap() error {
	return e.Err
}

func AsDeviceCommunicationError(err error) (*DeviceCommunicationError, bool) {
	var target *DeviceCommunicationError
	ok := errors.As(err, &target)
	return target, ok
}

// DeviceResponse is the final body returned by a register, already merged
// from the POST and the follow up GET.
type DeviceResponse struct {
	RequestID string
	Body      map[string]any
}

type FiscalDeviceClient interface {
	Execute(ctx context.Context, device domain.Device, command domain.Command) (DeviceResponse, error)
}

type CommandOutcome struct {
	OrganizationID domain.ID
	DeviceID       domain.ID
	CommandID      domain.ID
	Channel        domain.Channel
	CommandType    domain.CommandType
	Status         string
	Message        string
	OccurredAt     time.Time
}

// DeviceHealthStream is the in-process topic carrying HealthSnapshot values
// to live subscribers such as the websocket hub.
const (
	DeviceHealthStream       = "device_health"
	DeviceHealthChangedEvent = "health_changed"
)

type DeviceEventPublisher interface {
	PublishHealthChanged(context.Context, domain.Device) error
	PublishCommandOutcome(context.Context, CommandOutcome) error
}

// TaskNotifier wakes agents up. Delivery is best effort: agents keep polling.
type TaskNotifier interface {
	NotifyTaskQueued(context.Context, domain.AgentTask) error
}
