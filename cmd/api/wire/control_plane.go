//go:build wireinject
// +build wireinject

package wire

import (
	"posbridge-server/internal/control_plane/communication"
	"posbridge-server/internal/control_plane/httpapi"
	"posbridge-server/internal/control_plane/persistence"
	"posbridge-server/internal/control_plane/usecases"
	"posbridge-server/internal/infra/async"

	"github.com/google/wire"
)

var RepositorySet = wire.NewSet(
	provideDatabase,
	persistence.NewDeviceRepository,
	wire.Bind(new(usecases.DeviceRepository), new(*persistence.SimpleDeviceRepository)),
	persistence.NewAgentTaskRepository,
	wire.Bind(new(usecases.AgentTaskRepository), new(*persistence.SimpleAgentTaskRepository)),
	persistence.NewSaleCommandRepository,
	wire.Bind(new(usecases.SaleCommandRepository), new(*persistence.SimpleSaleCommandRepository)),
	persistence.NewOrderRepository,
	wire.Bind(new(usecases.OrderRepository), new(*persistence.SimpleOrderRepository)),
	provideCache,
	provideDeviceHealthCacheConfig,
	persistence.NewDeviceHealthCache,
	wire.Bind(new(usecases.DeviceHealthCache), new(*persistence.SimpleDeviceHealthCache)),
)

var CommunicationSet = wire.NewSet(
	providePublisherFactory,
	communication.NewDeviceEventPublisher,
	wire.Bind(new(usecases.DeviceEventPublisher), new(*communication.DeviceEventPublisher)),
	provideAtolClientConfig,
	communication.NewAtolClient,
	wire.Bind(new(usecases.FiscalDeviceClient), new(*communication.AtolClient)),
	provideTaskNotifier,
)

var ServiceSet = wire.NewSet(
	usecases.NewDeviceService,
	wire.Bind(new(usecases.DeviceService), new(*usecases.SimpleDeviceService)),
	usecases.NewFiscalBridgeService,
	wire.Bind(new(usecases.FiscalBridgeService), new(*usecases.SimpleFiscalBridgeService)),
	provideAgentTaskServiceConfig,
	usecases.NewAgentTaskService,
	wire.Bind(new(usecases.AgentTaskService), new(*usecases.SimpleAgentTaskService)),
	provideSaleCommandServiceConfig,
	usecases.NewSaleCommandService,
	wire.Bind(new(usecases.SaleCommandService), new(*usecases.SimpleSaleCommandService)),
	usecases.NewTerminalService,
	wire.Bind(new(usecases.TerminalService), new(*usecases.SimpleTerminalService)),
	usecases.NewDispatchService,
	wire.Bind(new(usecases.DispatchService), new(*usecases.SimpleDispatchService)),
)

func InitializeControlPlane(broker async.InternalBroker) (*ControlPlane, func(), error) {
	wire.Build(
		provideAppConfig,
		RepositorySet,
		CommunicationSet,
		ServiceSet,
		httpapi.NewFiscalDeviceController,
		provideAgentTaskController,
		provideTerminalController,
		httpapi.NewDeviceHealthWebSocketController,
		provideRetentionTicker,
		provideRetentionConfig,
		usecases.NewRetentionWorker,
		wire.Struct(new(ControlPlane), "*"),
	)
	return nil, nil, nil
}
