package driver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"posbridge-server/internal/control_plane/communication"
	"posbridge-server/internal/control_plane/domain"
	"posbridge-server/internal/control_plane/httpapi"
	"posbridge-server/internal/control_plane/persistence"
	"posbridge-server/internal/control_plane/usecases"
	"posbridge-server/internal/infra/async"
	"posbridge-server/internal/infra/cache"
	"posbridge-server/internal/infra/httpserver"
	"posbridge-server/internal/infra/pubsub"
	"posbridge-server/internal/infra/sql"
)

const (
	AgentSecret   = "functional-agent-secret"
	WebhookSecret = "functional-webhook-secret"
)

// Server runs the whole control plane in process on a private sqlite
// database, next to a fake LAN register.
type Server struct {
	URL      string
	Register *FakeRegister

	api     *httptest.Server
	health  *httpapi.DeviceHealthWebSocketController
	broker  *async.LocalBroker
	orders  *persistence.SimpleOrderRepository
	devices *persistence.SimpleDeviceRepository
}

func StartServer() (*Server, error) {
	orm, err := sql.NewMemoryORM()
	if err != nil {
		return nil, err
	}

	devices, err := persistence.NewDeviceRepository(orm)
	if err != nil {
		return nil, err
	}
	tasks, err := persistence.NewAgentTaskRepository(orm)
	if err != nil {
		return nil, err
	}
	saleCommands, err := persistence.NewSaleCommandRepository(orm)
	if err != nil {
		return nil, err
	}
	orders, err := persistence.NewOrderRepository(orm)
	if err != nil {
		return nil, err
	}

	backend, err := cache.New(nil)
	if err != nil {
		return nil, err
	}
	healthConfig := persistence.DefaultDeviceHealthCacheConfig()
	healthConfig.Cache = backend
	healthCache, err := persistence.NewDeviceHealthCache(healthConfig)
	if err != nil {
		return nil, err
	}

	broker := async.NewLocalBroker()
	publisher, err := communication.NewDeviceEventPublisher(pubsub.NewMemoryPublisherFactory(pubsub.NewMemoryBroker()), broker)
	if err != nil {
		return nil, err
	}

	deviceService := usecases.NewDeviceService(devices, healthCache, publisher)
	bridge := usecases.NewFiscalBridgeService(deviceService, communication.NewAtolClient(communication.AtolClientConfig{}), publisher)
	taskService := usecases.NewAgentTaskService(tasks, deviceService, communication.NoopTaskNotifier{}, publisher,
		usecases.AgentTaskServiceConfig{MaxAttempts: 5})
	saleCommandService := usecases.NewSaleCommandService(saleCommands, orders, publisher, usecases.SaleCommandServiceConfig{})
	terminalService := usecases.NewTerminalService(devices, deviceService, healthCache)
	dispatcher := usecases.NewDispatchService(deviceService, bridge, taskService, saleCommandService)

	health := httpapi.NewDeviceHealthWebSocketController(broker)
	server := httpserver.NewServer(httpserver.ServerOptions{},
		httpapi.NewFiscalDeviceController(deviceService, bridge, dispatcher, taskService),
		httpapi.NewAgentTaskController(taskService, []byte(AgentSecret)),
		httpapi.NewTerminalController(terminalService, saleCommandService, WebhookSecret),
		health,
	)
	api := httptest.NewServer(server.Handler())

	return &Server{
		URL:      api.URL,
		Register: StartFakeRegister(),
		api:      api,
		health:   health,
		broker:   broker,
		orders:   orders,
		devices:  devices,
	}, nil
}

func (s *Server) Close() {
	s.api.Close()
	s.Register.Close()
	s.health.Shutdown()
	s.broker.Stop()
}

// SeedOrder stores an order the way the ordering module would.
func (s *Server) SeedOrder(ctx context.Context, order domain.Order) error {
	return s.orders.Save(ctx, order)
}

func (s *Server) Device(ctx context.Context, id string) (domain.Device, error) {
	return s.devices.Get(ctx, domain.ID(id))
}

// FakeRegister answers like an ATOL web server whose shift is in the
// configured state.
type FakeRegister struct {
	mu         sync.Mutex
	shiftState string
	requests   int
	server     *httptest.Server
}

func StartFakeRegister() *FakeRegister {
	register := &FakeRegister{shiftState: "closed"}
	register.server = httptest.NewServer(http.HandlerFunc(register.serve))
	return register
}

func (f *FakeRegister) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests++
	body := fmt.Sprintf(`{"requestId":"r-%d","status":"ready","shiftState":%q}`, f.requests, f.shiftState)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func (f *FakeRegister) SetShiftState(state string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shiftState = state
}

func (f *FakeRegister) Requests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests
}

// Address is the ip and port a device record should point at.
func (f *FakeRegister) Address() (string, int) {
	host, portText, err := net.SplitHostPort(f.server.Listener.Addr().String())
	if err != nil {
		panic(err)
	}
	port, err := strconv.Atoi(portText)
	if err != nil {
		panic(err)
	}
	return host, port
}

func (f *FakeRegister) Close() {
	f.server.Close()
}
