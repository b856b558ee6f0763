package usecases

import (
	"context"
	"fmt"

	"posbridge-server/internal/control_plane/domain"
)

func NewDispatchService(
	devices DeviceService,
	bridge FiscalBridgeService,
	tasks AgentTaskService,
	saleCommands SaleCommandService,
) *SimpleDispatchService {
	return &SimpleDispatchService{
		devices:      devices,
		bridge:       bridge,
		tasks:        tasks,
		saleCommands: saleCommands,
	}
}

var _ DispatchService = &SimpleDispatchService{}

type SimpleDispatchService struct {
	devices      DeviceService
	bridge       FiscalBridgeService
	tasks        AgentTaskService
	saleCommands SaleCommandService
}

// Dispatch routes command by the channel of the device: direct registers
// answer synchronously, agent registers get a queued task and terminals get
// a sale command.
func (s *SimpleDispatchService) Dispatch(ctx context.Context, orgID, deviceID domain.ID, command domain.Command) (DispatchResult, error) {
	device, err := s.devices.GetDevice(ctx, deviceID, orgID)
	if err != nil {
		return DispatchResult{}, err
	}

	result := DispatchResult{Channel: device.Channel}
	switch device.Channel {
	case domain.ChannelDirect:
		bridged, err := s.bridge.Execute(ctx, orgID, deviceID, command)
		if err != nil {
			return DispatchResult{}, err
		}
		result.Result = &bridged
	case domain.ChannelAgent:
		task, err := s.tasks.CreateTask(ctx, orgID, deviceID, command)
		if err != nil {
			return DispatchResult{}, err
		}
		result.Task = &task
	case domain.ChannelTerminal:
		payload, ok := command.Payload.(domain.SyncOrderPayload)
		if !ok {
			return DispatchResult{}, fmt.Errorf("%w: terminals only accept %s", ErrUnsupportedCommand, domain.CommandSyncOrder)
		}
		saleCommand, err := s.saleCommands.Enqueue(ctx, orgID, payload.OrderID, "device:"+deviceID.String())
		if err != nil {
			return DispatchResult{}, err
		}
		result.SaleCommand = &saleCommand
	default:
		return DispatchResult{}, fmt.Errorf("%w: unknown channel %q", ErrUnsupportedCommand, device.Channel)
	}

	countCommand(ctx, string(device.Channel), string(command.Type))
	return result, nil
}
