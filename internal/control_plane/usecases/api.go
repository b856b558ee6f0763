package usecases

import (
	"context"

	"posbridge-server/internal/control_plane/domain"
)

//go:generate mockgen -source=./api.go -destination=../../../test/unit/doubles/control_plane/usecases/api_mock.go -package=usecases

type DeviceService interface {
	UpsertDevice(context.Context, domain.Device) (domain.Device, error)
	CreateDevice(context.Context, domain.Device) error
	UpdateDevice(ctx context.Context, orgID domain.ID, device domain.Device) (domain.Device, error)
	DeleteDevice(ctx context.Context, id, orgID domain.ID) error
	ListDevices(ctx context.Context, orgID domain.ID, pagination Pagination) ([]domain.Device, int, error)
	GetDevice(ctx context.Context, id, orgID domain.ID) (domain.Device, error)
	RecordHealth(ctx context.Context, deviceID domain.ID, report domain.HealthReport) (domain.Device, error)
	GetHealth(ctx context.Context, id, orgID domain.ID) (domain.DeviceHealth, error)
}

type BridgeResult struct {
	DeviceID   domain.ID          `json:"deviceId"`
	Command    domain.CommandType `json:"command"`
	RequestID  string             `json:"requestId,omitempty"`
	ShiftState domain.ShiftState  `json:"shiftState"`
	Response   map[string]any     `json:"response"`
}

type FiscalBridgeService interface {
	GetShiftStatus(ctx context.Context, orgID, deviceID domain.ID) (BridgeResult, error)
	OpenShift(ctx context.Context, orgID, deviceID domain.ID, operator *domain.Operator) (BridgeResult, error)
	CloseShift(ctx context.Context, orgID, deviceID domain.ID, operator *domain.Operator) (BridgeResult, error)
	SendXReport(ctx context.Context, orgID, deviceID domain.ID, operator *domain.Operator) (BridgeResult, error)
	SellTestReceipt(ctx context.Context, orgID, deviceID domain.ID) (BridgeResult, error)
	Execute(ctx context.Context, orgID, deviceID domain.ID, command domain.Command) (BridgeResult, error)
}

type AgentTaskService interface {
	CreateTask(ctx context.Context, orgID, deviceID domain.ID, command domain.Command) (domain.AgentTask, error)
	FetchNextTask(ctx context.Context, orgID, deviceID domain.ID) (*domain.AgentTask, error)
	// UpdateTaskStatus applies an agent report. An empty orgScope means the
	// caller may act for any organization.
	UpdateTaskStatus(ctx context.Context, orgScope, id domain.ID, update domain.TaskStatusUpdate) (domain.AgentTask, error)
	GetTask(ctx context.Context, id, orgID domain.ID) (domain.AgentTask, error)
	ListTasks(ctx context.Context, orgID, deviceID domain.ID, pagination Pagination) ([]domain.AgentTask, int, error)
}

type SaleCommandService interface {
	Enqueue(ctx context.Context, orgID, orderID domain.ID, requestedBy string) (domain.SaleCommand, error)
	PollPending(ctx context.Context, orgID domain.ID) (*domain.SaleCommand, error)
	Acknowledge(ctx context.Context, orgID, id domain.ID, status domain.SaleCommandStatus, message string) (domain.SaleCommand, error)
	Get(ctx context.Context, orgID, id domain.ID) (domain.SaleCommand, error)
}

type TerminalToken struct {
	UserID     string
	DeviceUUID string
	Token      string
}

type TerminalService interface {
	RegisterToken(context.Context, TerminalToken) (domain.Device, error)
	LinkDevice(ctx context.Context, orgID, deviceID domain.ID) (domain.Device, error)
}

type DispatchResult struct {
	Channel     domain.Channel      `json:"channel"`
	Result      *BridgeResult       `json:"result,omitempty"`
	Task        *domain.AgentTask   `json:"task,omitempty"`
	SaleCommand *domain.SaleCommand `json:"saleCommand,omitempty"`
}

type DispatchService interface {
	Dispatch(ctx context.Context, orgID, deviceID domain.ID, command domain.Command) (DispatchResult, error)
}
