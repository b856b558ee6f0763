package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"posbridge-server/internal/control_plane/domain"
)

func NewTerminalService(
	repository DeviceRepository,
	devices DeviceService,
	healthCache DeviceHealthCache,
) *SimpleTerminalService {
	return &SimpleTerminalService{
		repository:  repository,
		devices:     devices,
		healthCache: healthCache,
	}
}

var _ TerminalService = &SimpleTerminalService{}

type SimpleTerminalService struct {
	repository  DeviceRepository
	devices     DeviceService
	healthCache DeviceHealthCache
}

// RegisterToken records the platform token of a terminal. New terminals stay
// unclaimed until an operator links them.
func (s *SimpleTerminalService) RegisterToken(ctx context.Context, token TerminalToken) (domain.Device, error) {
	device, err := domain.NewDeviceBuilder().
		WithName("Evotor " + token.DeviceUUID).
		AsEvotorTerminal(token.UserID, token.DeviceUUID, token.Token).
		Build()
	if err != nil {
		return domain.Device{}, err
	}

	return s.devices.UpsertDevice(ctx, device)
}

func (s *SimpleTerminalService) LinkDevice(ctx context.Context, orgID, deviceID domain.ID) (domain.Device, error) {
	if orgID.IsEmpty() {
		return domain.Device{}, fmt.Errorf("%w: organization is required", domain.ErrValidation)
	}

	device, err := s.repository.Get(ctx, deviceID)
	if err != nil {
		return domain.Device{}, err
	}
	if device.Kind != domain.DeviceKindEvotorTerminal {
		// registers are scoped at creation, never linked afterwards
		return domain.Device{}, ErrDeviceNotFound
	}

	if device.BelongsTo(orgID) {
		return device, nil
	}
	if err := device.LinkTo(orgID); err != nil {
		return domain.Device{}, err
	}

	if err := s.repository.Update(ctx, device); err != nil {
		return domain.Device{}, fmt.Errorf("linking device: %w", err)
	}
	s.healthCache.Delete(ctx, device.ID)

	slog.Info("terminal linked",
		slog.String("device_id", device.ID.String()),
		slog.String("organization_id", orgID.String()))
	return device, nil
}
