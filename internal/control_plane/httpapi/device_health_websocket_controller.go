package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"posbridge-server/internal/control_plane/domain"
	"posbridge-server/internal/control_plane/httpapi/internal"
	"posbridge-server/internal/control_plane/usecases"
	"posbridge-server/internal/infra/async"
	"posbridge-server/internal/infra/httpserver"

	"github.com/gorilla/websocket"
)

const (
	_wsReadLimit    = 512
	_wsPongWait     = 60 * time.Second
	_wsPingInterval = 54 * time.Second
	_wsWriteWait    = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// dashboards are served from other origins; CORS is enforced upstream
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type healthClient struct {
	organizationID domain.ID
	conn           *websocket.Conn
	writeMu        sync.Mutex
}

func (c *healthClient) write(event internal.HealthEvent) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(_wsWriteWait))
	return c.conn.WriteJSON(event)
}

func (c *healthClient) ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(_wsWriteWait))
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

// DeviceHealthWebSocketController streams health changes of one
// organization's devices to connected dashboards.
type DeviceHealthWebSocketController struct {
	broker     async.InternalBroker
	clients    map[*healthClient]struct{}
	clientsMux sync.RWMutex
	ready      chan struct{}
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewDeviceHealthWebSocketController(broker async.InternalBroker) *DeviceHealthWebSocketController {
	ctx, cancel := context.WithCancel(context.Background())

	wsc := &DeviceHealthWebSocketController{
		broker:  broker,
		clients: make(map[*healthClient]struct{}),
		ready:   make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}

	go wsc.run()

	return wsc
}

var _ httpserver.Controller = (*DeviceHealthWebSocketController)(nil)

func (wsc *DeviceHealthWebSocketController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/ws/device-health", wsc.handleWebSocket())
}

// Ready is closed once the hub listens on the health stream.
func (wsc *DeviceHealthWebSocketController) Ready() <-chan struct{} {
	return wsc.ready
}

func (wsc *DeviceHealthWebSocketController) handleWebSocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := organizationFrom(r)
		if !ok {
			// browsers cannot set headers on the upgrade request
			orgID = domain.ID(httpserver.GetQueryParam(r, "organizationId"))
		}
		if orgID.IsEmpty() {
			httpserver.ReplyWithError(w, http.StatusForbidden, missingOrganizationErrMessage)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("websocket upgrade failed", slog.String("error", err.Error()))
			return
		}

		client := &healthClient{organizationID: orgID, conn: conn}
		total := wsc.register(client)
		slog.Info("websocket client registered",
			slog.String("organization_id", orgID.String()),
			slog.String("remote_addr", r.RemoteAddr),
			slog.Int("total_clients", total))

		go wsc.keepAlive(client)
		go wsc.readUntilClosed(client)
	}
}

func (wsc *DeviceHealthWebSocketController) register(client *healthClient) int {
	wsc.clientsMux.Lock()
	defer wsc.clientsMux.Unlock()
	wsc.clients[client] = struct{}{}
	return len(wsc.clients)
}

func (wsc *DeviceHealthWebSocketController) unregister(client *healthClient) {
	wsc.clientsMux.Lock()
	_, ok := wsc.clients[client]
	delete(wsc.clients, client)
	total := len(wsc.clients)
	wsc.clientsMux.Unlock()

	if ok {
		client.conn.Close()
		slog.Info("websocket client unregistered", slog.Int("total_clients", total))
	}
}

// readUntilClosed drains control frames; clients never send data.
func (wsc *DeviceHealthWebSocketController) readUntilClosed(client *healthClient) {
	defer wsc.unregister(client)

	conn := client.conn
	conn.SetReadLimit(_wsReadLimit)
	conn.SetReadDeadline(time.Now().Add(_wsPongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(_wsPongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("websocket read error", slog.String("error", err.Error()))
			} else {
				slog.Debug("websocket connection closed", slog.String("error", err.Error()))
			}
			return
		}
	}
}

func (wsc *DeviceHealthWebSocketController) keepAlive(client *healthClient) {
	ticker := time.NewTicker(_wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-wsc.ctx.Done():
			return
		case <-ticker.C:
			if err := client.ping(); err != nil {
				wsc.unregister(client)
				return
			}
		}
	}
}

func (wsc *DeviceHealthWebSocketController) run() {
	topic := async.BrokerTopicName(usecases.DeviceHealthStream)

	subscription, err := wsc.broker.Subscribe(topic)
	if err != nil {
		slog.Error("failed to subscribe to device health", slog.String("error", err.Error()))
		return
	}
	defer wsc.broker.Unsubscribe(topic, subscription)
	close(wsc.ready)

	for {
		select {
		case <-wsc.ctx.Done():
			return
		case msg, ok := <-subscription.Receiver:
			if !ok {
				return
			}
			if msg.Event != usecases.DeviceHealthChangedEvent {
				continue
			}
			snapshot, ok := msg.Value.(usecases.HealthSnapshot)
			if !ok || snapshot.OrganizationID == nil {
				continue
			}
			wsc.broadcast(*snapshot.OrganizationID, internal.FromHealthSnapshot(
				snapshot.DeviceID.String(),
				snapshot.OrganizationID.String(),
				snapshot.Health,
			))
		}
	}
}

func (wsc *DeviceHealthWebSocketController) broadcast(orgID domain.ID, event internal.HealthEvent) {
	wsc.clientsMux.RLock()
	targets := make([]*healthClient, 0, len(wsc.clients))
	for client := range wsc.clients {
		if client.organizationID == orgID {
			targets = append(targets, client)
		}
	}
	wsc.clientsMux.RUnlock()

	for _, client := range targets {
		if err := client.write(event); err != nil {
			slog.Error("failed to write message to websocket client", slog.String("error", err.Error()))
			wsc.unregister(client)
		}
	}
}

func (wsc *DeviceHealthWebSocketController) Shutdown() {
	slog.Info("shutting down device health websocket controller")
	wsc.cancel()

	wsc.clientsMux.Lock()
	for client := range wsc.clients {
		client.conn.Close()
		delete(wsc.clients, client)
	}
	wsc.clientsMux.Unlock()
}
