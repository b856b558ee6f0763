package internal

import (
	"time"

	"posbridge-server/internal/control_plane/domain"
)

type DeviceRequest struct {
	Name          string `json:"name"`
	IP            string `json:"ip"`
	Port          int    `json:"port"`
	Username      string `json:"username,omitempty"`
	Password      string `json:"password,omitempty"`
	OperatorName  string `json:"operatorName,omitempty"`
	OperatorVATIN string `json:"operatorVatin,omitempty"`
	TaxSystem     string `json:"taxSystem,omitempty"`
	Channel       string `json:"channel,omitempty"`
}

// ToDevice builds a validated LAN register owned by orgID.
func (r DeviceRequest) ToDevice(orgID domain.ID) (domain.Device, error) {
	return domain.NewDeviceBuilder().
		WithOrganization(orgID).
		WithName(r.Name).
		WithChannel(domain.Channel(r.Channel)).
		AsLANRegister(r.IP, r.Port).
		WithCredentials(r.Username, r.Password).
		WithOperator(r.OperatorName, r.OperatorVATIN).
		WithTaxSystem(domain.TaxSystem(r.TaxSystem)).
		Build()
}

type HealthResponse struct {
	Status     string     `json:"status"`
	LastSeenAt *time.Time `json:"lastSeenAt"`
	LastError  string     `json:"lastError,omitempty"`
	ShiftState string     `json:"shiftState"`
	UpdatedAt  *time.Time `json:"updatedAt"`
}

func FromHealth(health domain.DeviceHealth) HealthResponse {
	response := HealthResponse{
		Status:     string(health.Status),
		LastSeenAt: health.LastSeenAt,
		LastError:  health.LastError,
		ShiftState: string(health.ShiftState),
	}
	if !health.UpdatedAt.IsZero() {
		updatedAt := health.UpdatedAt
		response.UpdatedAt = &updatedAt
	}
	return response
}

// DeviceResponse never carries passwords or platform tokens.
type DeviceResponse struct {
	ID                 string         `json:"id"`
	OrganizationID     *string        `json:"organizationId"`
	Kind               string         `json:"kind"`
	Channel            string         `json:"channel"`
	Name               string         `json:"name"`
	IP                 string         `json:"ip,omitempty"`
	Port               int            `json:"port,omitempty"`
	Username           string         `json:"username,omitempty"`
	HasCredentials     bool           `json:"hasCredentials"`
	OperatorName       string         `json:"operatorName,omitempty"`
	OperatorVATIN      string         `json:"operatorVatin,omitempty"`
	TaxSystem          string         `json:"taxSystem,omitempty"`
	PlatformUserID     string         `json:"platformUserId,omitempty"`
	PlatformDeviceUUID string         `json:"platformDeviceUuid,omitempty"`
	Health             HealthResponse `json:"health"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

func FromDevice(device domain.Device) DeviceResponse {
	response := DeviceResponse{
		ID:                 device.ID.String(),
		Kind:               string(device.Kind),
		Channel:            string(device.Channel),
		Name:               device.Name,
		IP:                 device.Address,
		Port:               device.Port,
		Username:           device.Username,
		HasCredentials:     device.HasCredentials(),
		OperatorName:       device.OperatorName,
		OperatorVATIN:      device.OperatorVATIN,
		TaxSystem:          string(device.TaxSystem),
		PlatformUserID:     device.PlatformUserID,
		PlatformDeviceUUID: device.PlatformDeviceUUID,
		Health:             FromHealth(device.Health),
		CreatedAt:          device.CreatedAt,
		UpdatedAt:          device.UpdatedAt,
	}
	if device.OrganizationID != nil {
		org := device.OrganizationID.String()
		response.OrganizationID = &org
	}
	return response
}

func FromDevices(devices []domain.Device) []DeviceResponse {
	result := make([]DeviceResponse, len(devices))
	for i, device := range devices {
		result[i] = FromDevice(device)
	}
	return result
}

// HealthEvent is pushed to websocket subscribers on every health change.
type HealthEvent struct {
	Type           string         `json:"type"`
	DeviceID       string         `json:"deviceId"`
	OrganizationID string         `json:"organizationId"`
	Health         HealthResponse `json:"health"`
}

func FromHealthSnapshot(deviceID, organizationID string, health domain.DeviceHealth) HealthEvent {
	return HealthEvent{
		Type:           "device_health",
		DeviceID:       deviceID,
		OrganizationID: organizationID,
		Health:         FromHealth(health),
	}
}
