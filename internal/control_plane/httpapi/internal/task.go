package internal

import (
	"encoding/json"
	"time"

	"posbridge-server/internal/control_plane/domain"
)

type TaskCreateRequest struct {
	OrganizationID string          `json:"organizationId"`
	DeviceID       string          `json:"fiscalDeviceId"`
	Type           string          `json:"type"`
	Payload        json.RawMessage `json:"payload"`
}

func (r TaskCreateRequest) ToCommand() (domain.Command, error) {
	return CommandRequest{Type: r.Type, Payload: r.Payload}.ToCommand()
}

type TaskStatusRequest struct {
	Status string `json:"status"`
	FnCode string `json:"fnCode,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (r TaskStatusRequest) ToUpdate() domain.TaskStatusUpdate {
	return domain.TaskStatusUpdate{
		Status:       domain.AgentTaskStatus(r.Status),
		FnCode:       r.FnCode,
		ErrorMessage: r.Error,
	}
}

type TaskResponse struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organizationId"`
	DeviceID       string          `json:"fiscalDeviceId"`
	Type           string          `json:"type"`
	Payload        json.RawMessage `json:"payload"`
	Status         string          `json:"status"`
	Attempts       int             `json:"attempts"`
	FnCode         string          `json:"fnCode,omitempty"`
	Error          string          `json:"error,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	StartedAt      *time.Time      `json:"startedAt"`
	FinishedAt     *time.Time      `json:"finishedAt"`
}

func FromTask(task domain.AgentTask) TaskResponse {
	payload, err := task.Command.MarshalPayload()
	if err != nil {
		payload = json.RawMessage("{}")
	}

	return TaskResponse{
		ID:             task.ID.String(),
		OrganizationID: task.OrganizationID.String(),
		DeviceID:       task.DeviceID.String(),
		Type:           string(task.Command.Type),
		Payload:        payload,
		Status:         string(task.Status),
		Attempts:       task.Attempts,
		FnCode:         task.FnCode,
		Error:          task.ErrorMessage,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
		StartedAt:      task.StartedAt,
		FinishedAt:     task.FinishedAt,
	}
}

func FromTasks(tasks []domain.AgentTask) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		result[i] = FromTask(task)
	}
	return result
}
