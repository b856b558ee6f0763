package persistence

import (
	"context"
	"errors"
	"fmt"

	"posbridge-server/internal/control_plane/domain"
	"posbridge-server/internal/control_plane/persistence/internal"
	"posbridge-server/internal/control_plane/usecases"
	"posbridge-server/internal/infra/sql"
)

func NewDeviceRepository(orm sql.ORM) (*SimpleDeviceRepository, error) {
	err := orm.AutoMigrate(&internal.Device{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	for _, index := range internal.DeviceIndexes {
		if err := orm.Exec(index).Error(); err != nil {
			return nil, fmt.Errorf("creating device index: %w", err)
		}
	}

	return &SimpleDeviceRepository{
		orm: orm,
	}, nil
}

var _ usecases.DeviceRepository = (*SimpleDeviceRepository)(nil)

type SimpleDeviceRepository struct {
	orm sql.ORM
}

func (s *SimpleDeviceRepository) Create(ctx context.Context, device domain.Device) error {
	entity := internal.FromDevice(device)
	err := s.orm.
		WithContext(ctx).
		Create(&entity).
		Error()

	if errors.Is(err, sql.ErrDuplicatedKey) {
		return usecases.ErrDeviceDuplicated
	}
	if err != nil {
		return fmt.Errorf("database insert: %w", err)
	}

	return nil
}

// Update rewrites the descriptive columns. Health has its own writer.
func (s *SimpleDeviceRepository) Update(ctx context.Context, device domain.Device) error {
	entity := internal.FromDevice(device)
	var organizationID any
	if entity.OrganizationID != nil {
		organizationID = *entity.OrganizationID
	}

	tx := s.orm.
		WithContext(ctx).
		Model(&internal.Device{}).
		Where("id = ?", entity.ID).
		Updates(map[string]any{
			"version":              entity.Version,
			"organization_id":      organizationID,
			"channel":              entity.Channel,
			"name":                 entity.Name,
			"address":              entity.Address,
			"port":                 entity.Port,
			"username":             entity.Username,
			"password":             entity.Password,
			"operator_name":        entity.OperatorName,
			"operator_vatin":       entity.OperatorVATIN,
			"tax_system":           entity.TaxSystem,
			"platform_device_uuid": entity.PlatformDeviceUUID,
			"platform_token":       entity.PlatformToken,
			"updated_at":           entity.UpdatedAt,
		})

	err := tx.Error()
	if errors.Is(err, sql.ErrDuplicatedKey) {
		return usecases.ErrDeviceDuplicated
	}
	if err != nil {
		return fmt.Errorf("database update: %w", err)
	}
	if tx.RowsAffected() == 0 {
		return usecases.ErrDeviceNotFound
	}

	return nil
}

func (s *SimpleDeviceRepository) Get(ctx context.Context, id domain.ID) (domain.Device, error) {
	return s.first(ctx, "id = ?", id.String())
}

func (s *SimpleDeviceRepository) FindByAddress(ctx context.Context, orgID domain.ID, address string, port int) (domain.Device, error) {
	return s.first(ctx, "organization_id = ? AND kind = ? AND address = ? AND port = ?",
		orgID.String(), string(domain.DeviceKindLANRegister), address, port)
}

func (s *SimpleDeviceRepository) FindByPlatformUserID(ctx context.Context, userID string) (domain.Device, error) {
	return s.first(ctx, "kind = ? AND platform_user_id = ?", string(domain.DeviceKindEvotorTerminal), userID)
}

func (s *SimpleDeviceRepository) FindByOrganization(ctx context.Context, orgID domain.ID, pagination usecases.Pagination) ([]domain.Device, int, error) {
	var total int64
	err := s.orm.
		WithContext(ctx).
		Model(&internal.Device{}).
		Where("organization_id = ?", orgID.String()).
		Count(&total).
		Error()
	if err != nil {
		return nil, 0, fmt.Errorf("count query: %w", err)
	}

	var entities []internal.Device
	query := s.orm.
		WithContext(ctx).
		Where("organization_id = ?", orgID.String()).
		Order("created_at ASC, id ASC")
	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.Offset)
	}
	err = query.Find(&entities).Error()
	if err != nil {
		return nil, 0, fmt.Errorf("database query: %w", err)
	}

	result := make([]domain.Device, len(entities))
	for i, entity := range entities {
		result[i] = entity.ToDomain()
	}

	return result, int(total), nil
}

func (s *SimpleDeviceRepository) UpdateHealth(ctx context.Context, id domain.ID, health domain.DeviceHealth) error {
	tx := s.orm.
		WithContext(ctx).
		Model(&internal.Device{}).
		Where("id = ?", id.String()).
		Updates(internal.HealthColumns(health))

	if err := tx.Error(); err != nil {
		return fmt.Errorf("database update: %w", err)
	}
	if tx.RowsAffected() == 0 {
		return usecases.ErrDeviceNotFound
	}

	return nil
}

func (s *SimpleDeviceRepository) Delete(ctx context.Context, id domain.ID) error {
	tx := s.orm.
		WithContext(ctx).
		Where("id = ?", id.String()).
		Delete(&internal.Device{})

	if err := tx.Error(); err != nil {
		return fmt.Errorf("database delete: %w", err)
	}
	if tx.RowsAffected() == 0 {
		return usecases.ErrDeviceNotFound
	}

	return nil
}

func (s *SimpleDeviceRepository) first(ctx context.Context, query string, args ...any) (domain.Device, error) {
	var entity internal.Device
	err := s.orm.
		WithContext(ctx).
		Where(query, args...).
		First(&entity).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.Device{}, usecases.ErrDeviceNotFound
	}
	if err != nil {
		return domain.Device{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}
