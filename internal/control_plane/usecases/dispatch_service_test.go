package usecases_test

import (
	"context"

	"posbridge-server/internal/control_plane/domain"
	"posbridge-server/internal/control_plane/usecases"
	mockusecases "posbridge-server/test/unit/doubles/control_plane/usecases"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = ginkgo.Describe("DispatchService", func() {
	var (
		ctx          context.Context
		ctrl         *gomock.Controller
		devices      *mockusecases.MockDeviceService
		bridge       *mockusecases.MockFiscalBridgeService
		tasks        *mockusecases.MockAgentTaskService
		saleCommands *mockusecases.MockSaleCommandService
		service      usecases.DispatchService
		shiftStatus  domain.Command
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		ctrl = gomock.NewController(ginkgo.GinkgoT())
		devices = mockusecases.NewMockDeviceService(ctrl)
		bridge = mockusecases.NewMockFiscalBridgeService(ctrl)
		tasks = mockusecases.NewMockAgentTaskService(ctrl)
		saleCommands = mockusecases.NewMockSaleCommandService(ctrl)
		service = usecases.NewDispatchService(devices, bridge, tasks, saleCommands)

		var err error
		shiftStatus, err = domain.NewCommand(domain.ShiftStatusPayload{})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
	})

	ginkgo.AfterEach(func() {
		ctrl.Finish()
	})

	ginkgo.It("should call direct registers synchronously", func() {
		device := newRegister("org1", "10.0.0.5", 5555)
		devices.EXPECT().GetDevice(gomock.Any(), device.ID, domain.ID("org1")).Return(device, nil)
		bridge.EXPECT().Execute(gomock.Any(), domain.ID("org1"), device.ID, shiftStatus).
			Return(usecases.BridgeResult{DeviceID: device.ID, ShiftState: domain.ShiftStateClosed}, nil)

		result, err := service.Dispatch(ctx, "org1", device.ID, shiftStatus)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(result.Channel).To(gomega.Equal(domain.ChannelDirect))
		gomega.Expect(result.Result.ShiftState).To(gomega.Equal(domain.ShiftStateClosed))
	})

	ginkgo.It("should queue a task for agent registers", func() {
		device := newRegister("org1", "10.0.0.5", 5555)
		device.Channel = domain.ChannelAgent
		devices.EXPECT().GetDevice(gomock.Any(), device.ID, domain.ID("org1")).Return(device, nil)
		tasks.EXPECT().CreateTask(gomock.Any(), domain.ID("org1"), device.ID, shiftStatus).
			Return(domain.AgentTask{ID: "t-1", Status: domain.AgentTaskQueued}, nil)

		result, err := service.Dispatch(ctx, "org1", device.ID, shiftStatus)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(result.Task.ID).To(gomega.Equal(domain.ID("t-1")))
	})

	ginkgo.Context("terminals", func() {
		var terminal domain.Device

		ginkgo.BeforeEach(func() {
			terminal = newTerminal("user-1")
			gomega.Expect(terminal.LinkTo("org1")).To(gomega.Succeed())
			devices.EXPECT().GetDevice(gomock.Any(), terminal.ID, domain.ID("org1")).Return(terminal, nil)
		})

		ginkgo.It("should enqueue sync_order as a sale command", func() {
			command, err := domain.NewCommand(domain.SyncOrderPayload{OrderID: "o1"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			saleCommands.EXPECT().Enqueue(gomock.Any(), domain.ID("org1"), domain.ID("o1"), "device:"+terminal.ID.String()).
				Return(domain.SaleCommand{ID: "sc-1"}, nil)

			result, err := service.Dispatch(ctx, "org1", terminal.ID, command)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(result.Channel).To(gomega.Equal(domain.ChannelTerminal))
			gomega.Expect(result.SaleCommand.ID).To(gomega.Equal(domain.ID("sc-1")))
		})

		ginkgo.It("should refuse every other command", func() {
			_, err := service.Dispatch(ctx, "org1", terminal.ID, shiftStatus)
			gomega.Expect(err).To(gomega.MatchError(usecases.ErrUnsupportedCommand))
		})
	})
})
