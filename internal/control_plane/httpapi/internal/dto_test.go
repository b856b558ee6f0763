package internal_test

import (
	"encoding/json"
	"errors"
	"time"

	"posbridge-server/internal/control_plane/domain"
	"posbridge-server/internal/control_plane/httpapi/internal"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("DeviceRequest", func() {
	It("should build a direct register by default", func() {
		device, err := internal.DeviceRequest{
			Name:      "Front desk",
			IP:        "192.168.1.20",
			Port:      16732,
			TaxSystem: "osn",
		}.ToDevice("org1")

		Expect(err).NotTo(HaveOccurred())
		Expect(device.Kind).To(Equal(domain.DeviceKindLANRegister))
		Expect(device.Channel).To(Equal(domain.ChannelDirect))
		Expect(device.BelongsTo("org1")).To(BeTrue())
	})

	It("should keep the agent channel", func() {
		device, err := internal.DeviceRequest{IP: "10.0.0.5", Port: 5555, Channel: "agent"}.ToDevice("org1")
		Expect(err).NotTo(HaveOccurred())
		Expect(device.Channel).To(Equal(domain.ChannelAgent))
	})

	DescribeTable("should reject invalid registers",
		func(request internal.DeviceRequest) {
			_, err := request.ToDevice("org1")
			Expect(errors.Is(err, domain.ErrValidation)).To(BeTrue())
		},
		Entry("hostname instead of ip", internal.DeviceRequest{IP: "kkm.local", Port: 5555}),
		Entry("ipv6", internal.DeviceRequest{IP: "::1", Port: 5555}),
		Entry("port out of range", internal.DeviceRequest{IP: "10.0.0.5", Port: 70000}),
		Entry("short vatin", internal.DeviceRequest{IP: "10.0.0.5", Port: 5555, OperatorVATIN: "123"}),
		Entry("unknown tax system", internal.DeviceRequest{IP: "10.0.0.5", Port: 5555, TaxSystem: "flat"}),
		Entry("terminal channel", internal.DeviceRequest{IP: "10.0.0.5", Port: 5555, Channel: "terminal"}),
	)
})

var _ = Describe("FromDevice", func() {
	It("should never expose secrets", func() {
		device, err := domain.NewDeviceBuilder().
			WithOrganization("org1").
			AsLANRegister("10.0.0.5", 5555).
			WithCredentials("admin", "secret").
			Build()
		Expect(err).NotTo(HaveOccurred())

		data, err := json.Marshal(internal.FromDevice(device))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).NotTo(ContainSubstring("secret"))
		Expect(string(data)).To(ContainSubstring(`"hasCredentials":true`))

		terminal, err := domain.NewDeviceBuilder().AsEvotorTerminal("user-1", "uuid-1", "platform-token").Build()
		Expect(err).NotTo(HaveOccurred())
		data, err = json.Marshal(internal.FromDevice(terminal))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).NotTo(ContainSubstring("platform-token"))
		Expect(string(data)).To(ContainSubstring(`"organizationId":null`))
	})
})

var _ = Describe("FromTask", func() {
	It("should render the typed payload", func() {
		command, err := domain.NewCommand(domain.OpenShiftPayload{Operator: &domain.Operator{Name: "Ivanova"}})
		Expect(err).NotTo(HaveOccurred())
		task := domain.NewAgentTask("org1", "dev-1", command, time.Now().UTC())

		response := internal.FromTask(task)
		Expect(response.Type).To(Equal("open_shift"))
		Expect(response.Status).To(Equal("queued"))
		Expect(string(response.Payload)).To(MatchJSON(`{"operator":{"name":"Ivanova"}}`))
	})
})

var _ = Describe("TaskCreateRequest", func() {
	It("should reject unknown command types", func() {
		_, err := internal.TaskCreateRequest{Type: "reboot"}.ToCommand()
		Expect(errors.Is(err, domain.ErrValidation)).To(BeTrue())
	})

	It("should reject unknown payload fields", func() {
		_, err := internal.TaskCreateRequest{Type: "x_report", Payload: json.RawMessage(`{"cashier":"x"}`)}.ToCommand()
		Expect(errors.Is(err, domain.ErrValidation)).To(BeTrue())
	})
})
