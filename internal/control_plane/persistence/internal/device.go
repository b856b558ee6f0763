package internal

import (
	"time"

	"posbridge-server/internal/control_plane/domain"
)

type Device struct {
	ID                 string  `json:"id" gorm:"primaryKey"`
	Version            int     `json:"version"`
	OrganizationID     *string `json:"organization_id,omitempty" gorm:"index"`
	Kind               string  `json:"kind"`
	Channel            string  `json:"channel"`
	Name               string  `json:"name"`
	Address            string  `json:"address"`
	Port               int     `json:"port"`
	Username           string  `json:"username"`
	Password           string  `json:"password"`
	OperatorName       string  `json:"operator_name"`
	OperatorVATIN      string  `json:"operator_vatin" gorm:"column:operator_vatin"`
	TaxSystem          string  `json:"tax_system"`
	PlatformUserID     string  `json:"platform_user_id" gorm:"index"`
	PlatformDeviceUUID string  `json:"platform_device_uuid" gorm:"column:platform_device_uuid"`
	PlatformToken      string  `json:"platform_token"`

	HealthStatus     string     `json:"health_status"`
	HealthLastSeenAt *time.Time `json:"health_last_seen_at,omitempty"`
	HealthLastError  string     `json:"health_last_error"`
	HealthShiftState string     `json:"health_shift_state"`
	HealthUpdatedAt  time.Time  `json:"health_updated_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Device) TableName() string {
	return "fiscal_devices"
}

// DeviceIndexes keep one register per organization and address, and one
// terminal per platform user.
var DeviceIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_fiscal_devices_address
		ON fiscal_devices (organization_id, address, port) WHERE kind = 'lan_register'`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_fiscal_devices_platform_user
		ON fiscal_devices (platform_user_id) WHERE kind = 'evotor_terminal'`,
}

func (s Device) ToDomain() domain.Device {
	device := domain.Device{
		ID:                 domain.ID(s.ID),
		Version:            domain.Version(s.Version),
		Kind:               domain.DeviceKind(s.Kind),
		Channel:            domain.Channel(s.Channel),
		Name:               s.Name,
		Address:            s.Address,
		Port:               s.Port,
		Username:           s.Username,
		Password:           s.Password,
		OperatorName:       s.OperatorName,
		OperatorVATIN:      s.OperatorVATIN,
		TaxSystem:          domain.TaxSystem(s.TaxSystem),
		PlatformUserID:     s.PlatformUserID,
		PlatformDeviceUUID: s.PlatformDeviceUUID,
		PlatformToken:      s.PlatformToken,
		Health:             s.health(),
		CreatedAt:          s.CreatedAt.UTC(),
		UpdatedAt:          s.UpdatedAt.UTC(),
	}

	if s.OrganizationID != nil {
		orgID := domain.ID(*s.OrganizationID)
		device.OrganizationID = &orgID
	}

	return device
}

func (s Device) health() domain.DeviceHealth {
	health := domain.DeviceHealth{
		Status:     domain.HealthStatus(s.HealthStatus),
		LastError:  s.HealthLastError,
		ShiftState: domain.ShiftState(s.HealthShiftState),
		UpdatedAt:  s.HealthUpdatedAt.UTC(),
	}
	if s.HealthLastSeenAt != nil {
		seen := s.HealthLastSeenAt.UTC()
		health.LastSeenAt = &seen
	}
	if health.Status == "" {
		health.Status = domain.HealthStatusUnknown
	}
	if health.ShiftState == "" {
		health.ShiftState = domain.ShiftStateUnknown
	}
	return health
}

func FromDevice(value domain.Device) Device {
	device := Device{
		ID:                 value.ID.String(),
		Version:            int(value.Version),
		Kind:               string(value.Kind),
		Channel:            string(value.Channel),
		Name:               value.Name,
		Address:            value.Address,
		Port:               value.Port,
		Username:           value.Username,
		Password:           value.Password,
		OperatorName:       value.OperatorName,
		OperatorVATIN:      value.OperatorVATIN,
		TaxSystem:          string(value.TaxSystem),
		PlatformUserID:     value.PlatformUserID,
		PlatformDeviceUUID: value.PlatformDeviceUUID,
		PlatformToken:      value.PlatformToken,
		CreatedAt:          value.CreatedAt,
		UpdatedAt:          value.UpdatedAt,
	}

	if value.OrganizationID != nil {
		orgID := value.OrganizationID.String()
		device.OrganizationID = &orgID
	}

	device.HealthStatus = string(value.Health.Status)
	device.HealthLastSeenAt = value.Health.LastSeenAt
	device.HealthLastError = value.Health.LastError
	device.HealthShiftState = string(value.Health.ShiftState)
	device.HealthUpdatedAt = value.Health.UpdatedAt

	return device
}

// HealthColumns lists every health column so a write replaces all of them.
func HealthColumns(health domain.DeviceHealth) map[string]any {
	return map[string]any{
		"health_status":       string(health.Status),
		"health_last_seen_at": health.LastSeenAt,
		"health_last_error":   health.LastError,
		"health_shift_state":  string(health.ShiftState),
		"health_updated_at":   health.UpdatedAt,
	}
}
