package domain

import (
	"time"

	"posbridge-server/internal/infra/utils"
)

type AgentTaskStatus string

const (
	AgentTaskQueued     AgentTaskStatus = "queued"
	AgentTaskInProgress AgentTaskStatus = "in_progress"
	AgentTaskDone       AgentTaskStatus = "done"
	AgentTaskError      AgentTaskStatus = "error"
)

const DefaultAgentErrorMessage = "unknown agent error"

type AgentTask struct {
	ID             ID
	Version        Version
	OrganizationID ID
	DeviceID       ID
	Command        Command
	Status         AgentTaskStatus
	Attempts       int
	FnCode         string
	ErrorMessage   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	StartedAt      *time.Time
	FinishedAt     *time.Time
}

// TaskStatusUpdate is what an agent reports after touching the hardware.
type TaskStatusUpdate struct {
	Status       AgentTaskStatus
	FnCode       string
	ErrorMessage string
}

func NewAgentTask(orgID, deviceID ID, command Command, now time.Time) AgentTask {
	return AgentTask{
		ID:             ID(utils.GenerateUUID()),
		Version:        1,
		OrganizationID: orgID,
		DeviceID:       deviceID,
		Command:        command,
		Status:         AgentTaskQueued,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (t AgentTask) IsFinal() bool {
	return t.Status == AgentTaskDone || t.Status == AgentTaskError
}

// AttemptsExhausted reports whether another claim would exceed maxAttempts.
// A zero cap means unlimited.
func (t AgentTask) AttemptsExhausted(maxAttempts int) bool {
	return maxAttempts > 0 && t.Attempts >= maxAttempts
}

// Claim flips a queued task to in_progress for the poller that won it.
func (t *AgentTask) Claim(now time.Time) {
	t.Status = AgentTaskInProgress
	t.Attempts++
	started := now
	t.StartedAt = &started
	t.FinishedAt = nil
	t.UpdatedAt = now
	t.Version++
}

// Apply performs the transition requested by an agent. done is final; error
// stays visible until someone requeues or retries it.
func (t *AgentTask) Apply(update TaskStatusUpdate, now time.Time, maxAttempts int) error {
	if t.Status == AgentTaskDone {
		return ErrTaskFinalized
	}

	switch update.Status {
	case AgentTaskQueued:
		if t.Status != AgentTaskError && t.Status != AgentTaskInProgress {
			return ErrInvalidTransition
		}
		if t.AttemptsExhausted(maxAttempts) {
			return ErrTaskAttemptsExhausted
		}
		t.Status = AgentTaskQueued
		t.StartedAt = nil
		t.FinishedAt = nil
		t.ErrorMessage = ""
		t.FnCode = ""
	case AgentTaskInProgress:
		if t.Status != AgentTaskQueued && t.Status != AgentTaskError {
			return ErrInvalidTransition
		}
		if t.AttemptsExhausted(maxAttempts) {
			return ErrTaskAttemptsExhausted
		}
		t.Claim(now)
		t.ErrorMessage = ""
		return nil
	case AgentTaskDone:
		if t.Status != AgentTaskInProgress {
			return ErrInvalidTransition
		}
		t.Status = AgentTaskDone
		t.FnCode = update.FnCode
		t.ErrorMessage = ""
		t.FinishedAt = timePtr(now)
	case AgentTaskError:
		if t.Status != AgentTaskInProgress {
			return ErrInvalidTransition
		}
		t.Status = AgentTaskError
		t.FnCode = update.FnCode
		t.ErrorMessage = update.ErrorMessage
		if t.ErrorMessage == "" {
			t.ErrorMessage = DefaultAgentErrorMessage
		}
		t.FinishedAt = timePtr(now)
	default:
		return newValidationError("status", "unknown task status %q", update.Status)
	}

	t.UpdatedAt = now
	t.Version++
	return nil
}

func timePtr(t time.Time) *time.Time {
	return &t
}
