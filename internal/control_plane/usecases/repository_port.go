package usecases

import (
	"context"
	"errors"
	"time"

	"posbridge-server/internal/control_plane/domain"
)

//go:generate mockgen -source=repository_port.go -destination=../../../test/unit/doubles/control_plane/usecases/repository_port_mock.go -package=usecases

var (
	ErrDeviceNotFound       = errors.New("device not found")
	ErrDeviceDuplicated     = errors.New("device already exists")
	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskConflict         = errors.New("task changed concurrently")
	ErrOrderNotFound        = errors.New("order not found")
	ErrSaleCommandNotFound  = errors.New("sale command not found")
	ErrSaleCommandFinalized = errors.New("sale command already finalized")
	ErrSaleCommandConflict  = errors.New("a live sale command already exists for this order")
	ErrUnsupportedCommand   = errors.New("command not supported on this channel")

	ErrTaskFinalized         = domain.ErrTaskFinalized
	ErrInvalidTransition     = domain.ErrInvalidTransition
	ErrTaskAttemptsExhausted = domain.ErrTaskAttemptsExhausted
	ErrOrderNotBillable      = domain.ErrOrderNotBillable
	ErrDeviceAlreadyLinked   = domain.ErrDeviceAlreadyLinked
)

// Pagination encapsulates pagination parameters for repository queries
type Pagination struct {
	Limit  int
	Offset int
}

type DeviceRepository interface {
	Create(context.Context, domain.Device) error
	Update(context.Context, domain.Device) error
	Get(context.Context, domain.ID) (domain.Device, error)
	FindByAddress(ctx context.Context, orgID domain.ID, address string, port int) (domain.Device, error)
	FindByPlatformUserID(ctx context.Context, userID string) (domain.Device, error)
	FindByOrganization(context.Context, domain.ID, Pagination) ([]domain.Device, int, error)
	// UpdateHealth overwrites every health column of the device in one statement.
	UpdateHealth(context.Context, domain.ID, domain.DeviceHealth) error
	Delete(context.Context, domain.ID) error
}

type AgentTaskRepository interface {
	Create(context.Context, domain.AgentTask) error
	Get(context.Context, domain.ID) (domain.AgentTask, error)
	// ClaimNext atomically moves the oldest claimable queued task of the
	// device to in_progress. found is false when nothing is queued.
	ClaimNext(ctx context.Context, orgID, deviceID domain.ID, now time.Time, maxAttempts int) (task domain.AgentTask, found bool, err error)
	// Update persists task only if its status is still expected, returning
	// ErrTaskConflict otherwise.
	Update(ctx context.Context, task domain.AgentTask, expected domain.AgentTaskStatus) error
	FindByDevice(ctx context.Context, orgID, deviceID domain.ID, pagination Pagination) ([]domain.AgentTask, int, error)
}

type SaleCommandRepository interface {
	// Create fails with ErrSaleCommandConflict when the order already has a
	// pending or delivered command.
	Create(context.Context, domain.SaleCommand) error
	Get(ctx context.Context, orgID, id domain.ID) (domain.SaleCommand, error)
	// ExpireOverdue fails every pending or delivered command of the
	// organization whose deadline is not after now.
	ExpireOverdue(ctx context.Context, orgID domain.ID, now time.Time) (int, error)
	ClaimOldestPending(ctx context.Context, orgID domain.ID, now time.Time) (cmd domain.SaleCommand, found bool, err error)
	// Finalize moves a pending or delivered command to status. It returns
	// ErrSaleCommandNotFound for unknown or foreign ids and
	// ErrSaleCommandFinalized when the command is already final.
	Finalize(ctx context.Context, orgID, id domain.ID, status domain.SaleCommandStatus, message string, now time.Time) (domain.SaleCommand, error)
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int, error)
}

type OrderRepository interface {
	Get(ctx context.Context, orgID, id domain.ID) (domain.Order, error)
}

// HealthSnapshot is what the health cache keeps per device.
type HealthSnapshot struct {
	DeviceID       domain.ID           `json:"device_id"`
	OrganizationID *domain.ID          `json:"organization_id,omitempty"`
	Health         domain.DeviceHealth `json:"health"`
}

type DeviceHealthCache interface {
	Get(context.Context, domain.ID) (HealthSnapshot, bool)
	Set(context.Context, HealthSnapshot)
	Delete(context.Context, domain.ID)
}
