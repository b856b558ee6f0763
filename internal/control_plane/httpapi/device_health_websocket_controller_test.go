package httpapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"posbridge-server/internal/control_plane/domain"
	"posbridge-server/internal/control_plane/httpapi"
	"posbridge-server/internal/control_plane/usecases"
	"posbridge-server/internal/infra/async"

	"github.com/gorilla/websocket"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type healthEvent struct {
	Type           string `json:"type"`
	DeviceID       string `json:"deviceId"`
	OrganizationID string `json:"organizationId"`
	Health         struct {
		Status     string `json:"status"`
		ShiftState string `json:"shiftState"`
	} `json:"health"`
}

var _ = Describe("DeviceHealthWebSocketController", func() {
	var (
		broker     *async.LocalBroker
		controller *httpapi.DeviceHealthWebSocketController
		server     *httptest.Server
	)

	BeforeEach(func() {
		broker = async.NewLocalBroker()
		controller = httpapi.NewDeviceHealthWebSocketController(broker)
		Eventually(controller.Ready()).Should(BeClosed())

		router := http.NewServeMux()
		controller.AddRoutes(router)
		server = httptest.NewServer(router)
	})

	AfterEach(func() {
		controller.Shutdown()
		server.Close()
		broker.Stop()
	})

	dial := func(org string) *websocket.Conn {
		url := "ws" + strings.TrimPrefix(server.URL, "http") + "/v1/ws/device-health?organizationId=" + org
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		Expect(err).NotTo(HaveOccurred())
		return conn
	}

	publish := func(deviceID, org string, status domain.HealthStatus) {
		orgID := domain.ID(org)
		err := broker.Publish(context.Background(), async.BrokerTopicName(usecases.DeviceHealthStream), async.BrokerMessage{
			Event: usecases.DeviceHealthChangedEvent,
			Value: usecases.HealthSnapshot{
				DeviceID:       domain.ID(deviceID),
				OrganizationID: &orgID,
				Health:         domain.DeviceHealth{Status: status, ShiftState: domain.ShiftStateOpen},
			},
		})
		Expect(err).NotTo(HaveOccurred())
	}

	It("should refuse connections without an organization", func() {
		response, err := http.Get(server.URL + "/v1/ws/device-health")
		Expect(err).NotTo(HaveOccurred())
		defer response.Body.Close()

		Expect(response.StatusCode).To(Equal(http.StatusForbidden))
	})

	It("should only stream the subscriber organization's devices", func() {
		mine := dial("org1")
		defer mine.Close()
		theirs := dial("org2")
		defer theirs.Close()

		// clients register once the upgrade returns, so keep publishing
		// until each side has seen its own device
		readWhilePublishing := func(conn *websocket.Conn, deviceID, org string) healthEvent {
			done := make(chan struct{})
			defer close(done)
			go func() {
				defer GinkgoRecover()
				ticker := time.NewTicker(50 * time.Millisecond)
				defer ticker.Stop()
				for {
					select {
					case <-done:
						return
					case <-ticker.C:
						publish(deviceID, org, domain.HealthStatusOnline)
					}
				}
			}()

			conn.SetReadDeadline(time.Now().Add(3 * time.Second))
			var event healthEvent
			Expect(conn.ReadJSON(&event)).To(Succeed())
			return event
		}

		Expect(readWhilePublishing(theirs, "dev-2", "org2").DeviceID).To(Equal("dev-2"))
		event := readWhilePublishing(mine, "dev-1", "org1")

		Expect(event.DeviceID).To(Equal("dev-1"))
		Expect(event.OrganizationID).To(Equal("org1"))
		Expect(event.Health.Status).To(Equal("online"))
		Expect(event.Health.ShiftState).To(Equal("open"))
	})

	It("should ignore snapshots of unclaimed devices", func() {
		conn := dial("org1")
		defer conn.Close()

		err := broker.Publish(context.Background(), async.BrokerTopicName(usecases.DeviceHealthStream), async.BrokerMessage{
			Event: usecases.DeviceHealthChangedEvent,
			Value: usecases.HealthSnapshot{DeviceID: "term-1"},
		})
		Expect(err).NotTo(HaveOccurred())

		conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
		var event healthEvent
		Expect(conn.ReadJSON(&event)).NotTo(Succeed())
	})
})
