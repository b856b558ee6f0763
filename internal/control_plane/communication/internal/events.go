package internal

import (
	"time"

	"posbridge-server/internal/control_plane/domain"
	"posbridge-server/internal/control_plane/usecases"
)

type DeviceHealthChanged struct {
	DeviceID       string     `avro:"device_id"`
	OrganizationID *string    `avro:"organization_id"`
	Kind           string     `avro:"kind"`
	Status         string     `avro:"status"`
	ShiftState     string     `avro:"shift_state"`
	LastError      *string    `avro:"last_error"`
	LastSeenAt     *time.Time `avro:"last_seen_at"`
	UpdatedAt      time.Time  `avro:"updated_at"`
}

func (DeviceHealthChanged) AvroSchema() string {
	return `{
		"type": "record",
		"name": "DeviceHealthChanged",
		"namespace": "posbridge.devices",
		"fields": [
			{"name": "device_id", "type": "string"},
			{"name": "organization_id", "type": ["null", "string"], "default": null},
			{"name": "kind", "type": "string"},
			{"name": "status", "type": "string"},
			{"name": "shift_state", "type": "string"},
			{"name": "last_error", "type": ["null", "string"], "default": null},
			{"name": "last_seen_at", "type": ["null", {"type": "long", "logicalType": "timestamp-millis"}], "default": null},
			{"name": "updated_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
		]
	}`
}

func FromDeviceHealth(device domain.Device) *DeviceHealthChanged {
	event := &DeviceHealthChanged{
		DeviceID:   device.ID.String(),
		Kind:       string(device.Kind),
		Status:     string(device.Health.Status),
		ShiftState: string(device.Health.ShiftState),
		LastSeenAt: device.Health.LastSeenAt,
		UpdatedAt:  device.Health.UpdatedAt,
	}
	if device.OrganizationID != nil {
		org := device.OrganizationID.String()
		event.OrganizationID = &org
	}
	if device.Health.LastError != "" {
		message := device.Health.LastError
		event.LastError = &message
	}
	return event
}

type CommandOutcome struct {
	OrganizationID string    `avro:"organization_id"`
	DeviceID       *string   `avro:"device_id"`
	CommandID      string    `avro:"command_id"`
	Channel        string    `avro:"channel"`
	CommandType    string    `avro:"command_type"`
	Status         string    `avro:"status"`
	Message        *string   `avro:"message"`
	OccurredAt     time.Time `avro:"occurred_at"`
}

func (CommandOutcome) AvroSchema() string {
	return `{
		"type": "record",
		"name": "CommandOutcome",
		"namespace": "posbridge.devices",
		"fields": [
			{"name": "organization_id", "type": "string"},
			{"name": "device_id", "type": ["null", "string"], "default": null},
			{"name": "command_id", "type": "string"},
			{"name": "channel", "type": "string"},
			{"name": "command_type", "type": "string"},
			{"name": "status", "type": "string"},
			{"name": "message", "type": ["null", "string"], "default": null},
			{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
		]
	}`
}

func FromCommandOutcome(outcome usecases.CommandOutcome) *CommandOutcome {
	event := &CommandOutcome{
		OrganizationID: outcome.OrganizationID.String(),
		CommandID:      outcome.CommandID.String(),
		Channel:        string(outcome.Channel),
		CommandType:    string(outcome.CommandType),
		Status:         outcome.Status,
		OccurredAt:     outcome.OccurredAt,
	}
	if !outcome.DeviceID.IsEmpty() {
		device := outcome.DeviceID.String()
		event.DeviceID = &device
	}
	if outcome.Message != "" {
		message := outcome.Message
		event.Message = &message
	}
	return event
}

// TaskQueued is the MQTT wake-up hint sent to agents.
type TaskQueued struct {
	TaskID      string    `json:"taskId"`
	DeviceID    string    `json:"fiscalDeviceId"`
	CommandType string    `json:"type"`
	CreatedAt   time.Time `json:"createdAt"`
}

func FromAgentTask(task domain.AgentTask) TaskQueued {
	return TaskQueued{
		TaskID:      task.ID.String(),
		DeviceID:    task.DeviceID.String(),
		CommandType: string(task.Command.Type),
		CreatedAt:   task.CreatedAt,
	}
}
