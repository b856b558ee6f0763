package communication

import (
	"context"
	"fmt"

	"posbridge-server/internal/control_plane/communication/internal"
	"posbridge-server/internal/control_plane/domain"
	"posbridge-server/internal/control_plane/usecases"
	"posbridge-server/internal/infra/mqtt"
)

func NewMQTTTaskNotifier(client mqtt.Client, topicPrefix string) *MQTTTaskNotifier {
	return &MQTTTaskNotifier{
		client:      client,
		topicPrefix: topicPrefix,
	}
}

var _ usecases.TaskNotifier = (*MQTTTaskNotifier)(nil)

// MQTTTaskNotifier publishes a hint on {prefix}/agents/{organization}/tasks.
// Agents that miss it pick the task up on their next poll.
type MQTTTaskNotifier struct {
	client      mqtt.Client
	topicPrefix string
}

func (n *MQTTTaskNotifier) NotifyTaskQueued(_ context.Context, task domain.AgentTask) error {
	topic := AgentTasksTopic(n.topicPrefix, task.OrganizationID)
	if err := n.client.Publish(topic, internal.FromAgentTask(task)); err != nil {
		return fmt.Errorf("notifying agents: %w", err)
	}
	return nil
}

func AgentTasksTopic(prefix string, orgID domain.ID) string {
	if prefix == "" {
		return fmt.Sprintf("agents/%s/tasks", orgID)
	}
	return fmt.Sprintf("%s/agents/%s/tasks", prefix, orgID)
}

var _ usecases.TaskNotifier = NoopTaskNotifier{}

// NoopTaskNotifier is used when no MQTT broker is configured.
type NoopTaskNotifier struct{}

func (NoopTaskNotifier) NotifyTaskQueued(context.Context, domain.AgentTask) error {
	return nil
}
