package httpapi_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"posbridge-server/internal/control_plane/domain"
	"posbridge-server/internal/control_plane/httpapi"
	"posbridge-server/internal/control_plane/usecases"
	"posbridge-server/internal/infra/httpserver"
	mockusecases "posbridge-server/test/unit/doubles/control_plane/usecases"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("TerminalController", func() {
	var (
		ctrl         *gomock.Controller
		terminals    *mockusecases.MockTerminalService
		saleCommands *mockusecases.MockSaleCommandService
		router       *http.ServeMux
		recorder     *httptest.ResponseRecorder
		pending      domain.SaleCommand
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		terminals = mockusecases.NewMockTerminalService(ctrl)
		saleCommands = mockusecases.NewMockSaleCommandService(ctrl)

		router = http.NewServeMux()
		httpapi.NewTerminalController(terminals, saleCommands, "webhook-secret").AddRoutes(router)
		recorder = httptest.NewRecorder()

		var err error
		pending, err = domain.NewSaleCommand(domain.Order{
			ID:             "o1",
			OrganizationID: "org1",
			Status:         "open",
			Total:          200,
			Items:          []domain.OrderItem{{Name: "Coffee", Quantity: 2, Price: 100, Total: 200}},
		}, "user:u1", time.Now(), domain.DefaultSaleCommandTTL)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	newRequest := func(method, path, body string) *http.Request {
		if body == "" {
			return httptest.NewRequest(method, path, nil)
		}
		return httptest.NewRequest(method, path, strings.NewReader(body))
	}

	serveAsOrg := func(method, path, body string) {
		request := newRequest(method, path, body)
		request.Header.Set(httpserver.OrganizationHeader, "org1")
		request.Header.Set(httpserver.UserHeader, "u1")
		router.ServeHTTP(recorder, request)
	}

	Context("registerToken", func() {
		It("should reject calls without the webhook secret", func() {
			request := newRequest(http.MethodPost, "/token", `{"userId":"u-1","deviceUuid":"d-1","token":"t"}`)
			request.Header.Set("Authorization", "Bearer wrong")
			router.ServeHTTP(recorder, request)

			Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should register the terminal and report whether it is linked", func() {
			terminals.EXPECT().RegisterToken(gomock.Any(), usecases.TerminalToken{
				UserID:     "u-1",
				DeviceUUID: "d-1",
				Token:      "t",
			}).Return(domain.Device{ID: "term-1", Kind: domain.DeviceKindEvotorTerminal}, nil)

			request := newRequest(http.MethodPost, "/token", `{"userId":"u-1","deviceUuid":"d-1","token":"t"}`)
			request.Header.Set("Authorization", "Bearer webhook-secret")
			router.ServeHTTP(recorder, request)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(MatchJSON(`{"deviceId":"term-1","linked":false}`))
		})
	})

	Context("linkDevice", func() {
		It("should require an organization", func() {
			router.ServeHTTP(recorder, newRequest(http.MethodPost, "/devices/link", `{"deviceId":"term-1"}`))

			Expect(recorder.Code).To(Equal(http.StatusForbidden))
		})

		It("should answer 409 when another organization owns the terminal", func() {
			terminals.EXPECT().LinkDevice(gomock.Any(), domain.ID("org1"), domain.ID("term-1")).
				Return(domain.Device{}, usecases.ErrDeviceAlreadyLinked)

			serveAsOrg(http.MethodPost, "/devices/link", `{"deviceId":"term-1"}`)

			Expect(recorder.Code).To(Equal(http.StatusConflict))
		})
	})

	Context("enqueue", func() {
		It("should record who requested the sale", func() {
			saleCommands.EXPECT().Enqueue(gomock.Any(), domain.ID("org1"), domain.ID("o1"), "user:u1").Return(pending, nil)

			serveAsOrg(http.MethodPost, "/sale-commands", `{"orderId":"o1"}`)

			Expect(recorder.Code).To(Equal(http.StatusCreated))
			Expect(recorder.Body.String()).To(ContainSubstring(`"status":"pending"`))
			Expect(recorder.Body.String()).To(ContainSubstring(`"qty":2`))
		})

		It("should answer 409 while a command for the order is live", func() {
			saleCommands.EXPECT().Enqueue(gomock.Any(), domain.ID("org1"), domain.ID("o1"), gomock.Any()).
				Return(domain.SaleCommand{}, usecases.ErrSaleCommandConflict)

			serveAsOrg(http.MethodPost, "/sale-commands", `{"orderId":"o1"}`)

			Expect(recorder.Code).To(Equal(http.StatusConflict))
		})

		It("should answer 400 for an order with nothing to bill", func() {
			saleCommands.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(domain.SaleCommand{}, usecases.ErrOrderNotBillable)

			serveAsOrg(http.MethodPost, "/sale-commands", `{"orderId":"o1"}`)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})

		It("should require an order id", func() {
			serveAsOrg(http.MethodPost, "/sale-commands", `{}`)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("pollPending", func() {
		It("should answer 204 when nothing is waiting", func() {
			saleCommands.EXPECT().PollPending(gomock.Any(), domain.ID("org1")).Return(nil, nil)

			serveAsOrg(http.MethodGet, "/sale-commands/pending", "")

			Expect(recorder.Code).To(Equal(http.StatusNoContent))
		})

		It("should hand out the delivered command", func() {
			delivered := pending
			delivered.Status = domain.SaleCommandDelivered
			delivered.Attempts = 1
			saleCommands.EXPECT().PollPending(gomock.Any(), domain.ID("org1")).Return(&delivered, nil)

			serveAsOrg(http.MethodGet, "/sale-commands/pending", "")

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(ContainSubstring(`"status":"delivered"`))
		})
	})

	Context("acknowledge", func() {
		It("should pass the terminal's verdict through", func() {
			saleCommands.EXPECT().
				Acknowledge(gomock.Any(), domain.ID("org1"), pending.ID, domain.SaleCommandFailed, "no paper").
				Return(pending, nil)

			serveAsOrg(http.MethodPost, "/sale-commands/"+pending.ID.String()+"/ack", `{"status":"failed","error":"no paper"}`)

			Expect(recorder.Code).To(Equal(http.StatusOK))
		})

		It("should answer 409 on a second acknowledgment", func() {
			saleCommands.EXPECT().Acknowledge(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(domain.SaleCommand{}, usecases.ErrSaleCommandFinalized)

			serveAsOrg(http.MethodPost, "/sale-commands/c-1/ack", `{"status":"accepted"}`)

			Expect(recorder.Code).To(Equal(http.StatusConflict))
		})

		It("should answer 400 for an unknown status", func() {
			saleCommands.EXPECT().Acknowledge(gomock.Any(), gomock.Any(), gomock.Any(), domain.SaleCommandStatus("maybe"), gomock.Any()).
				Return(domain.SaleCommand{}, domain.ErrValidation)

			serveAsOrg(http.MethodPost, "/sale-commands/c-1/ack", `{"status":"maybe"}`)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("getSaleCommand", func() {
		It("should answer 404 outside the organization", func() {
			saleCommands.EXPECT().Get(gomock.Any(), domain.ID("org1"), domain.ID("c-9")).
				Return(domain.SaleCommand{}, usecases.ErrSaleCommandNotFound)

			serveAsOrg(http.MethodGet, "/sale-commands/c-9", "")

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})
	})
})
