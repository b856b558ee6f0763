package internal

import (
	"encoding/json"
	"fmt"
	"time"

	"posbridge-server/internal/control_plane/domain"

	"gorm.io/datatypes"
)

type AgentTask struct {
	ID             string         `json:"id" gorm:"primaryKey"`
	Version        int            `json:"version"`
	OrganizationID string         `json:"organization_id" gorm:"index:idx_agent_tasks_queue,priority:1"`
	DeviceID       string         `json:"device_id" gorm:"index:idx_agent_tasks_queue,priority:2"`
	Status         string         `json:"status" gorm:"index:idx_agent_tasks_queue,priority:3"`
	CommandType    string         `json:"command_type"`
	Payload        datatypes.JSON `json:"payload"`
	Attempts       int            `json:"attempts"`
	FnCode         string         `json:"fn_code"`
	ErrorMessage   string         `json:"error_message"`
	CreatedAt      time.Time      `json:"created_at" gorm:"index:idx_agent_tasks_queue,priority:4"`
	UpdatedAt      time.Time      `json:"updated_at"`
	StartedAt      *time.Time     `json:"started_at,omitempty"`
	FinishedAt     *time.Time     `json:"finished_at,omitempty"`
}

func (AgentTask) TableName() string {
	return "agent_tasks"
}

func FromAgentTask(value domain.AgentTask) (AgentTask, error) {
	payload, err := value.Command.MarshalPayload()
	if err != nil {
		return AgentTask{}, fmt.Errorf("encoding command payload: %w", err)
	}

	return AgentTask{
		ID:             value.ID.String(),
		Version:        int(value.Version),
		OrganizationID: value.OrganizationID.String(),
		DeviceID:       value.DeviceID.String(),
		Status:         string(value.Status),
		CommandType:    string(value.Command.Type),
		Payload:        datatypes.JSON(payload),
		Attempts:       value.Attempts,
		FnCode:         value.FnCode,
		ErrorMessage:   value.ErrorMessage,
		CreatedAt:      value.CreatedAt,
		UpdatedAt:      value.UpdatedAt,
		StartedAt:      value.StartedAt,
		FinishedAt:     value.FinishedAt,
	}, nil
}

func (t AgentTask) ToDomain() (domain.AgentTask, error) {
	command, err := domain.DecodeCommand(domain.CommandType(t.CommandType), json.RawMessage(t.Payload))
	if err != nil {
		return domain.AgentTask{}, fmt.Errorf("decoding task %s: %w", t.ID, err)
	}

	return domain.AgentTask{
		ID:             domain.ID(t.ID),
		Version:        domain.Version(t.Version),
		OrganizationID: domain.ID(t.OrganizationID),
		DeviceID:       domain.ID(t.DeviceID),
		Command:        command,
		Status:         domain.AgentTaskStatus(t.Status),
		Attempts:       t.Attempts,
		FnCode:         t.FnCode,
		ErrorMessage:   t.ErrorMessage,
		CreatedAt:      t.CreatedAt.UTC(),
		UpdatedAt:      t.UpdatedAt.UTC(),
		StartedAt:      utcPtr(t.StartedAt),
		FinishedAt:     utcPtr(t.FinishedAt),
	}, nil
}

// StateColumns are the columns a status transition rewrites.
func (t AgentTask) StateColumns() map[string]any {
	return map[string]any{
		"version":       t.Version,
		"status":        t.Status,
		"attempts":      t.Attempts,
		"fn_code":       t.FnCode,
		"error_message": t.ErrorMessage,
		"updated_at":    t.UpdatedAt,
		"started_at":    t.StartedAt,
		"finished_at":   t.FinishedAt,
	}
}

func utcPtr(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	utc := value.UTC()
	return &utc
}
