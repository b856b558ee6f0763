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

var _ = ginkgo.Describe("TerminalService", func() {
	var (
		ctx        context.Context
		ctrl       *gomock.Controller
		repository *mockusecases.MockDeviceRepository
		devices    *mockusecases.MockDeviceService
		cache      *mockusecases.MockDeviceHealthCache
		service    usecases.TerminalService
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		ctrl = gomock.NewController(ginkgo.GinkgoT())
		repository = mockusecases.NewMockDeviceRepository(ctrl)
		devices = mockusecases.NewMockDeviceService(ctrl)
		cache = mockusecases.NewMockDeviceHealthCache(ctrl)
		service = usecases.NewTerminalService(repository, devices, cache)
	})

	ginkgo.AfterEach(func() {
		ctrl.Finish()
	})

	ginkgo.Context("RegisterToken", func() {
		ginkgo.It("should upsert an unclaimed terminal", func() {
			devices.EXPECT().UpsertDevice(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, device domain.Device) (domain.Device, error) {
					gomega.Expect(device.Kind).To(gomega.Equal(domain.DeviceKindEvotorTerminal))
					gomega.Expect(device.PlatformUserID).To(gomega.Equal("user-1"))
					gomega.Expect(device.IsClaimed()).To(gomega.BeFalse())
					return device, nil
				})

			device, err := service.RegisterToken(ctx, usecases.TerminalToken{UserID: "user-1", DeviceUUID: "d-1", Token: "t-1"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(device.PlatformToken).To(gomega.Equal("t-1"))
		})

		ginkgo.It("should require a platform user id", func() {
			_, err := service.RegisterToken(ctx, usecases.TerminalToken{DeviceUUID: "d-1", Token: "t-1"})
			gomega.Expect(err).To(gomega.MatchError(domain.ErrValidation))
		})
	})

	ginkgo.Context("LinkDevice", func() {
		ginkgo.It("should bind an unclaimed terminal", func() {
			terminal := newTerminal("user-1")
			repository.EXPECT().Get(gomock.Any(), terminal.ID).Return(terminal, nil)
			repository.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
			cache.EXPECT().Delete(gomock.Any(), terminal.ID)

			device, err := service.LinkDevice(ctx, "org1", terminal.ID)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(device.BelongsTo("org1")).To(gomega.BeTrue())
		})

		ginkgo.It("should be a no-op for the same organization", func() {
			terminal := newTerminal("user-1")
			gomega.Expect(terminal.LinkTo("org1")).To(gomega.Succeed())
			repository.EXPECT().Get(gomock.Any(), terminal.ID).Return(terminal, nil)

			_, err := service.LinkDevice(ctx, "org1", terminal.ID)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})

		ginkgo.It("should refuse a terminal claimed by another organization", func() {
			terminal := newTerminal("user-1")
			gomega.Expect(terminal.LinkTo("org2")).To(gomega.Succeed())
			repository.EXPECT().Get(gomock.Any(), terminal.ID).Return(terminal, nil)

			_, err := service.LinkDevice(ctx, "org1", terminal.ID)
			gomega.Expect(err).To(gomega.MatchError(usecases.ErrDeviceAlreadyLinked))
		})
	})
})
