package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"posbridge-server/internal/control_plane/domain"
)

var (
	errUnknown = errors.New("unknown error")
)

func NewDeviceService(
	repository DeviceRepository,
	healthCache DeviceHealthCache,
	publisher DeviceEventPublisher,
) *SimpleDeviceService {
	return &SimpleDeviceService{
		repository:  repository,
		healthCache: healthCache,
		publisher:   publisher,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

var _ DeviceService = &SimpleDeviceService{}

type SimpleDeviceService struct {
	repository  DeviceRepository
	healthCache DeviceHealthCache
	publisher   DeviceEventPublisher
	now         func() time.Time
}

// UpsertDevice matches registers by organization and address:port and
// terminals by platform user id. A match keeps its id, health and
// organization; only the descriptive attributes change.
func (s *SimpleDeviceService) UpsertDevice(ctx context.Context, device domain.Device) (domain.Device, error) {
	if err := device.Validate(); err != nil {
		return domain.Device{}, err
	}

	existing, err := s.findByIdentity(ctx, device)
	if errors.Is(err, ErrDeviceNotFound) {
		device.Health = domain.UnknownHealth()
		if err := s.repository.Create(ctx, device); err != nil {
			return domain.Device{}, fmt.Errorf("creating device: %w", err)
		}
		slog.Info("device registered",
			slog.String("device_id", device.ID.String()),
			slog.String("kind", string(device.Kind)))
		return device, nil
	}
	if err != nil {
		return domain.Device{}, fmt.Errorf("finding device: %w", err)
	}

	existing.MergeFrom(device)
	existing.UpdatedAt = s.now()
	if err := s.repository.Update(ctx, existing); err != nil {
		return domain.Device{}, fmt.Errorf("updating device: %w", err)
	}

	return existing, nil
}

func (s *SimpleDeviceService) findByIdentity(ctx context.Context, device domain.Device) (domain.Device, error) {
	switch device.Kind {
	case domain.DeviceKindEvotorTerminal:
		return s.repository.FindByPlatformUserID(ctx, device.PlatformUserID)
	default:
		if device.OrganizationID == nil {
			return domain.Device{}, ErrDeviceNotFound
		}
		return s.repository.FindByAddress(ctx, *device.OrganizationID, device.Address, device.Port)
	}
}

func (s *SimpleDeviceService) CreateDevice(ctx context.Context, device domain.Device) error {
	if err := device.Validate(); err != nil {
		return err
	}

	_, err := s.findByIdentity(ctx, device)
	if err == nil {
		slog.Warn("device duplicated",
			slog.String("address", device.Address),
			slog.Int("port", device.Port))
		return ErrDeviceDuplicated
	}
	if !errors.Is(err, ErrDeviceNotFound) {
		slog.Error("checking device identity", slog.String("error", err.Error()))
		return errUnknown
	}

	err = s.repository.Create(ctx, device)
	if errors.Is(err, ErrDeviceDuplicated) {
		return ErrDeviceDuplicated
	}
	if err != nil {
		slog.Error("creating device", slog.String("error", err.Error()))
		return errUnknown
	}

	return nil
}

func (s *SimpleDeviceService) UpdateDevice(ctx context.Context, orgID domain.ID, device domain.Device) (domain.Device, error) {
	current, err := s.GetDevice(ctx, device.ID, orgID)
	if err != nil {
		return domain.Device{}, err
	}

	if current.Kind == domain.DeviceKindLANRegister &&
		(current.Address != device.Address || current.Port != device.Port) {
		other, err := s.repository.FindByAddress(ctx, orgID, device.Address, device.Port)
		if err == nil && other.ID != current.ID {
			return domain.Device{}, ErrDeviceDuplicated
		}
		if err != nil && !errors.Is(err, ErrDeviceNotFound) {
			return domain.Device{}, fmt.Errorf("checking device identity: %w", err)
		}
	}

	current.MergeFrom(device)
	if err := current.Validate(); err != nil {
		return domain.Device{}, err
	}
	current.UpdatedAt = s.now()

	if err := s.repository.Update(ctx, current); err != nil {
		slog.Error("updating device", slog.String("error", err.Error()))
		return domain.Device{}, errUnknown
	}

	return current, nil
}

func (s *SimpleDeviceService) DeleteDevice(ctx context.Context, id, orgID domain.ID) error {
	if _, err := s.GetDevice(ctx, id, orgID); err != nil {
		return err
	}

	if err := s.repository.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrDeviceNotFound) {
			return ErrDeviceNotFound
		}
		slog.Error("deleting device", slog.String("error", err.Error()))
		return errUnknown
	}
	s.healthCache.Delete(ctx, id)

	slog.Info("device deleted",
		slog.String("device_id", id.String()),
		slog.String("organization_id", orgID.String()))
	return nil
}

func (s *SimpleDeviceService) ListDevices(ctx context.Context, orgID domain.ID, pagination Pagination) ([]domain.Device, int, error) {
	devices, total, err := s.repository.FindByOrganization(ctx, orgID, pagination)
	if err != nil {
		slog.Error("listing devices",
			slog.String("organization_id", orgID.String()),
			slog.String("error", err.Error()))
		return nil, 0, errUnknown
	}

	return devices, total, nil
}

// GetDevice hides devices of other organizations behind ErrDeviceNotFound.
func (s *SimpleDeviceService) GetDevice(ctx context.Context, id, orgID domain.ID) (domain.Device, error) {
	device, err := s.repository.Get(ctx, id)
	if errors.Is(err, ErrDeviceNotFound) {
		return domain.Device{}, ErrDeviceNotFound
	}
	if err != nil {
		slog.Error("getting device", slog.String("error", err.Error()))
		return domain.Device{}, errUnknown
	}

	if !device.BelongsTo(orgID) {
		slog.Warn("cross tenant device access",
			slog.String("device_id", id.String()),
			slog.String("organization_id", orgID.String()))
		return domain.Device{}, ErrDeviceNotFound
	}

	return device, nil
}

// RecordHealth is the only writer of device health.
func (s *SimpleDeviceService) RecordHealth(ctx context.Context, deviceID domain.ID, report domain.HealthReport) (domain.Device, error) {
	if err := report.Validate(); err != nil {
		return domain.Device{}, err
	}

	device, err := s.repository.Get(ctx, deviceID)
	if errors.Is(err, ErrDeviceNotFound) {
		return domain.Device{}, ErrDeviceNotFound
	}
	if err != nil {
		return domain.Device{}, fmt.Errorf("getting device: %w", err)
	}

	device.Health = device.Health.Apply(report, s.now())
	if err := s.repository.UpdateHealth(ctx, deviceID, device.Health); err != nil {
		return domain.Device{}, fmt.Errorf("writing health: %w", err)
	}

	s.healthCache.Set(ctx, HealthSnapshot{
		DeviceID:       device.ID,
		OrganizationID: device.OrganizationID,
		Health:         device.Health,
	})

	if err := s.publisher.PublishHealthChanged(ctx, device); err != nil {
		slog.Warn("publishing health change",
			slog.String("device_id", deviceID.String()),
			slog.String("error", err.Error()))
	}

	slog.Debug("device health recorded",
		slog.String("device_id", deviceID.String()),
		slog.String("status", string(device.Health.Status)),
		slog.String("shift_state", string(device.Health.ShiftState)))

	return device, nil
}

func (s *SimpleDeviceService) GetHealth(ctx context.Context, id, orgID domain.ID) (domain.DeviceHealth, error) {
	if snapshot, ok := s.healthCache.Get(ctx, id); ok {
		if snapshot.OrganizationID == nil || *snapshot.OrganizationID != orgID {
			return domain.DeviceHealth{}, ErrDeviceNotFound
		}
		return snapshot.Health, nil
	}

	device, err := s.GetDevice(ctx, id, orgID)
	if err != nil {
		return domain.DeviceHealth{}, err
	}

	s.healthCache.Set(ctx, HealthSnapshot{
		DeviceID:       device.ID,
		OrganizationID: device.OrganizationID,
		Health:         device.Health,
	})
	return device.Health, nil
}
