package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"posbridge-server/internal/control_plane/domain"
)

const (
	_queueAgentTasks      = "agent_tasks"
	_maxStatusUpdateTries = 3
)

type AgentTaskServiceConfig struct {
	// MaxAttempts caps claims per task; zero disables the cap.
	MaxAttempts int
}

func NewAgentTaskService(
	repository AgentTaskRepository,
	devices DeviceService,
	notifier TaskNotifier,
	publisher DeviceEventPublisher,
	config AgentTaskServiceConfig,
) *SimpleAgentTaskService {
	return &SimpleAgentTaskService{
		repository:  repository,
		devices:     devices,
		notifier:    notifier,
		publisher:   publisher,
		maxAttempts: config.MaxAttempts,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

var _ AgentTaskService = &SimpleAgentTaskService{}

type SimpleAgentTaskService struct {
	repository  AgentTaskRepository
	devices     DeviceService
	notifier    TaskNotifier
	publisher   DeviceEventPublisher
	maxAttempts int
	now         func() time.Time
}

func (s *SimpleAgentTaskService) CreateTask(ctx context.Context, orgID, deviceID domain.ID, command domain.Command) (domain.AgentTask, error) {
	device, err := s.devices.GetDevice(ctx, deviceID, orgID)
	if err != nil {
		return domain.AgentTask{}, err
	}
	if device.Kind != domain.DeviceKindLANRegister || command.Type == domain.CommandSyncOrder {
		return domain.AgentTask{}, fmt.Errorf("%w: %s for %s", ErrUnsupportedCommand, command.Type, device.Kind)
	}
	if command.Payload == nil {
		return domain.AgentTask{}, fmt.Errorf("%w: command payload is required", domain.ErrValidation)
	}
	if err := command.Payload.Validate(); err != nil {
		return domain.AgentTask{}, err
	}

	task := domain.NewAgentTask(orgID, deviceID, command, s.now())
	if err := s.repository.Create(ctx, task); err != nil {
		return domain.AgentTask{}, fmt.Errorf("creating agent task: %w", err)
	}

	if err := s.notifier.NotifyTaskQueued(ctx, task); err != nil {
		slog.Warn("notifying agents about queued task",
			slog.String("task_id", task.ID.String()),
			slog.String("error", err.Error()))
	}

	slog.Debug("agent task queued",
		slog.String("task_id", task.ID.String()),
		slog.String("device_id", deviceID.String()),
		slog.String("command", string(command.Type)))
	return task, nil
}

// FetchNextTask returns nil when the device has nothing claimable.
func (s *SimpleAgentTaskService) FetchNextTask(ctx context.Context, orgID, deviceID domain.ID) (*domain.AgentTask, error) {
	if _, err := s.devices.GetDevice(ctx, deviceID, orgID); err != nil {
		return nil, err
	}

	task, found, err := s.repository.ClaimNext(ctx, orgID, deviceID, s.now(), s.maxAttempts)
	if err != nil {
		return nil, fmt.Errorf("claiming agent task: %w", err)
	}
	if !found {
		return nil, nil
	}

	countClaim(ctx, _queueAgentTasks)
	return &task, nil
}

func (s *SimpleAgentTaskService) UpdateTaskStatus(ctx context.Context, orgScope, id domain.ID, update domain.TaskStatusUpdate) (domain.AgentTask, error) {
	for try := 1; ; try++ {
		task, err := s.repository.Get(ctx, id)
		if err != nil {
			return domain.AgentTask{}, err
		}
		if !orgScope.IsEmpty() && task.OrganizationID != orgScope {
			return domain.AgentTask{}, ErrTaskNotFound
		}

		expected := task.Status
		if err := task.Apply(update, s.now(), s.maxAttempts); err != nil {
			return domain.AgentTask{}, err
		}

		err = s.repository.Update(ctx, task, expected)
		if errors.Is(err, ErrTaskConflict) && try < _maxStatusUpdateTries {
			continue
		}
		if err != nil {
			return domain.AgentTask{}, err
		}

		if task.IsFinal() {
			s.reportOutcome(ctx, task)
		}
		return task, nil
	}
}

func (s *SimpleAgentTaskService) GetTask(ctx context.Context, id, orgID domain.ID) (domain.AgentTask, error) {
	task, err := s.repository.Get(ctx, id)
	if err != nil {
		return domain.AgentTask{}, err
	}
	if task.OrganizationID != orgID {
		return domain.AgentTask{}, ErrTaskNotFound
	}
	return task, nil
}

func (s *SimpleAgentTaskService) ListTasks(ctx context.Context, orgID, deviceID domain.ID, pagination Pagination) ([]domain.AgentTask, int, error) {
	if _, err := s.devices.GetDevice(ctx, deviceID, orgID); err != nil {
		return nil, 0, err
	}
	return s.repository.FindByDevice(ctx, orgID, deviceID, pagination)
}

// reportOutcome feeds the agent's result into device health. Failures here
// are logged only: the task transition has already been stored.
func (s *SimpleAgentTaskService) reportOutcome(ctx context.Context, task domain.AgentTask) {
	report := domain.OnlineReport(InferShiftState(task.Command.Type))
	if task.Status == domain.AgentTaskError {
		report = domain.ErrorReport(task.ErrorMessage)
	}
	if _, err := s.devices.RecordHealth(ctx, task.DeviceID, report); err != nil {
		slog.Error("recording device health from agent task",
			slog.String("task_id", task.ID.String()),
			slog.String("error", err.Error()))
	}

	outcome := CommandOutcome{
		OrganizationID: task.OrganizationID,
		DeviceID:       task.DeviceID,
		CommandID:      task.ID,
		Channel:        domain.ChannelAgent,
		CommandType:    task.Command.Type,
		Status:         string(task.Status),
		Message:        task.ErrorMessage,
		OccurredAt:     task.UpdatedAt,
	}
	if err := s.publisher.PublishCommandOutcome(ctx, outcome); err != nil {
		slog.Warn("publishing command outcome", slog.String("error", err.Error()))
	}
}
