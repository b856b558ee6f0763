package usecases_test

import (
	"context"
	"errors"

	"posbridge-server/internal/control_plane/domain"
	"posbridge-server/internal/control_plane/usecases"
	mockusecases "posbridge-server/test/unit/doubles/control_plane/usecases"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

func newRegister(orgID domain.ID, address string, port int) domain.Device {
	device, err := domain.NewDeviceBuilder().
		WithOrganization(orgID).
		WithName("front desk").
		AsLANRegister(address, port).
		Build()
	gomega.Expect(err).NotTo(gomega.HaveOccurred())
	return device
}

func newTerminal(userID string) domain.Device {
	device, err := domain.NewDeviceBuilder().
		AsEvotorTerminal(userID, "uuid-"+userID, "token-"+userID).
		Build()
	gomega.Expect(err).NotTo(gomega.HaveOccurred())
	return device
}

var _ = ginkgo.Describe("DeviceService", func() {
	var (
		ctx        context.Context
		ctrl       *gomock.Controller
		repository *mockusecases.MockDeviceRepository
		cache      *mockusecases.MockDeviceHealthCache
		publisher  *mockusecases.MockDeviceEventPublisher
		service    usecases.DeviceService
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		ctrl = gomock.NewController(ginkgo.GinkgoT())
		repository = mockusecases.NewMockDeviceRepository(ctrl)
		cache = mockusecases.NewMockDeviceHealthCache(ctrl)
		publisher = mockusecases.NewMockDeviceEventPublisher(ctrl)
		service = usecases.NewDeviceService(repository, cache, publisher)
	})

	ginkgo.AfterEach(func() {
		ctrl.Finish()
	})

	ginkgo.Context("UpsertDevice", func() {
		ginkgo.When("no register is bound to the address", func() {
			ginkgo.It("should create it with unknown health", func() {
				device := newRegister("org1", "192.168.1.10", 16732)
				repository.EXPECT().FindByAddress(gomock.Any(), domain.ID("org1"), "192.168.1.10", 16732).
					Return(domain.Device{}, usecases.ErrDeviceNotFound)
				repository.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, d domain.Device) error {
						gomega.Expect(d.Health.Status).To(gomega.Equal(domain.HealthStatusUnknown))
						gomega.Expect(d.Health.ShiftState).To(gomega.Equal(domain.ShiftStateUnknown))
						return nil
					})

				result, err := service.UpsertDevice(ctx, device)
				gomega.Expect(err).NotTo(gomega.HaveOccurred())
				gomega.Expect(result.ID).To(gomega.Equal(device.ID))
			})
		})

		ginkgo.When("the register already exists", func() {
			ginkgo.It("should keep identity and health and update the attributes", func() {
				existing := newRegister("org1", "192.168.1.10", 16732)
				existing.Health.Status = domain.HealthStatusOnline

				incoming := newRegister("org1", "192.168.1.10", 16732)
				incoming.Name = "back office"

				repository.EXPECT().FindByAddress(gomock.Any(), domain.ID("org1"), "192.168.1.10", 16732).
					Return(existing, nil)
				repository.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

				result, err := service.UpsertDevice(ctx, incoming)
				gomega.Expect(err).NotTo(gomega.HaveOccurred())
				gomega.Expect(result.ID).To(gomega.Equal(existing.ID))
				gomega.Expect(result.Name).To(gomega.Equal("back office"))
				gomega.Expect(result.Health.Status).To(gomega.Equal(domain.HealthStatusOnline))
			})
		})

		ginkgo.When("a terminal registers again", func() {
			ginkgo.It("should match it by platform user id", func() {
				existing := newTerminal("user-1")
				incoming := newTerminal("user-1")
				incoming.PlatformToken = "fresh"

				repository.EXPECT().FindByPlatformUserID(gomock.Any(), "user-1").Return(existing, nil)
				repository.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

				result, err := service.UpsertDevice(ctx, incoming)
				gomega.Expect(err).NotTo(gomega.HaveOccurred())
				gomega.Expect(result.ID).To(gomega.Equal(existing.ID))
				gomega.Expect(result.PlatformToken).To(gomega.Equal("fresh"))
			})
		})

		ginkgo.It("should reject invalid devices before touching storage", func() {
			device := newRegister("org1", "192.168.1.10", 16732)
			device.Address = "not-an-ip"

			_, err := service.UpsertDevice(ctx, device)
			gomega.Expect(err).To(gomega.MatchError(domain.ErrValidation))
		})
	})

	ginkgo.Context("CreateDevice", func() {
		ginkgo.It("should refuse a second register on the same address", func() {
			device := newRegister("org1", "10.0.0.5", 5555)
			repository.EXPECT().FindByAddress(gomock.Any(), domain.ID("org1"), "10.0.0.5", 5555).
				Return(newRegister("org1", "10.0.0.5", 5555), nil)

			err := service.CreateDevice(ctx, device)
			gomega.Expect(err).To(gomega.MatchError(usecases.ErrDeviceDuplicated))
		})
	})

	ginkgo.Context("GetDevice", func() {
		ginkgo.It("should hide devices of other organizations", func() {
			device := newRegister("org2", "10.0.0.5", 5555)
			repository.EXPECT().Get(gomock.Any(), device.ID).Return(device, nil)

			_, err := service.GetDevice(ctx, device.ID, "org1")
			gomega.Expect(err).To(gomega.MatchError(usecases.ErrDeviceNotFound))
		})

		ginkgo.It("should return devices of the caller's organization", func() {
			device := newRegister("org1", "10.0.0.5", 5555)
			repository.EXPECT().Get(gomock.Any(), device.ID).Return(device, nil)

			result, err := service.GetDevice(ctx, device.ID, "org1")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(result.ID).To(gomega.Equal(device.ID))
		})
	})

	ginkgo.Context("UpdateDevice", func() {
		ginkgo.It("should refuse moving onto an address used by another register", func() {
			current := newRegister("org1", "10.0.0.5", 5555)
			other := newRegister("org1", "10.0.0.6", 5555)
			update := current
			update.Address = "10.0.0.6"

			repository.EXPECT().Get(gomock.Any(), current.ID).Return(current, nil)
			repository.EXPECT().FindByAddress(gomock.Any(), domain.ID("org1"), "10.0.0.6", 5555).Return(other, nil)

			_, err := service.UpdateDevice(ctx, "org1", update)
			gomega.Expect(err).To(gomega.MatchError(usecases.ErrDeviceDuplicated))
		})
	})

	ginkgo.Context("DeleteDevice", func() {
		ginkgo.It("should drop the cached health", func() {
			device := newRegister("org1", "10.0.0.5", 5555)
			repository.EXPECT().Get(gomock.Any(), device.ID).Return(device, nil)
			repository.EXPECT().Delete(gomock.Any(), device.ID).Return(nil)
			cache.EXPECT().Delete(gomock.Any(), device.ID)

			gomega.Expect(service.DeleteDevice(ctx, device.ID, "org1")).To(gomega.Succeed())
		})
	})

	ginkgo.Context("RecordHealth", func() {
		var device domain.Device

		ginkgo.BeforeEach(func() {
			device = newRegister("org1", "10.0.0.5", 5555)
			device.Health.ShiftState = domain.ShiftStateOpen
			repository.EXPECT().Get(gomock.Any(), device.ID).Return(device, nil)
		})

		ginkgo.It("should stamp last seen on online reports", func() {
			repository.EXPECT().UpdateHealth(gomock.Any(), device.ID, gomock.Any()).Return(nil)
			cache.EXPECT().Set(gomock.Any(), gomock.Any())
			publisher.EXPECT().PublishHealthChanged(gomock.Any(), gomock.Any()).Return(nil)

			closed := domain.ShiftStateClosed
			result, err := service.RecordHealth(ctx, device.ID, domain.OnlineReport(&closed))
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(result.Health.Status).To(gomega.Equal(domain.HealthStatusOnline))
			gomega.Expect(result.Health.LastSeenAt).NotTo(gomega.BeNil())
			gomega.Expect(result.Health.ShiftState).To(gomega.Equal(domain.ShiftStateClosed))
		})

		ginkgo.It("should keep the shift state on error reports", func() {
			repository.EXPECT().UpdateHealth(gomock.Any(), device.ID, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ domain.ID, health domain.DeviceHealth) error {
					gomega.Expect(health.Status).To(gomega.Equal(domain.HealthStatusError))
					gomega.Expect(health.LastError).To(gomega.Equal("connection refused"))
					gomega.Expect(health.LastSeenAt).To(gomega.BeNil())
					gomega.Expect(health.ShiftState).To(gomega.Equal(domain.ShiftStateOpen))
					return nil
				})
			cache.EXPECT().Set(gomock.Any(), gomock.Any())
			publisher.EXPECT().PublishHealthChanged(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

			_, err := service.RecordHealth(ctx, device.ID, domain.ErrorReport("connection refused"))
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})
	})

	ginkgo.Context("GetHealth", func() {
		ginkgo.It("should serve cached health of the caller's organization", func() {
			org := domain.ID("org1")
			cache.EXPECT().Get(gomock.Any(), domain.ID("dev-1")).Return(usecases.HealthSnapshot{
				DeviceID:       "dev-1",
				OrganizationID: &org,
				Health:         domain.DeviceHealth{Status: domain.HealthStatusOnline},
			}, true)

			health, err := service.GetHealth(ctx, "dev-1", "org1")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(health.Status).To(gomega.Equal(domain.HealthStatusOnline))
		})

		ginkgo.It("should not leak cached health across organizations", func() {
			org := domain.ID("org2")
			cache.EXPECT().Get(gomock.Any(), domain.ID("dev-1")).Return(usecases.HealthSnapshot{
				DeviceID:       "dev-1",
				OrganizationID: &org,
			}, true)

			_, err := service.GetHealth(ctx, "dev-1", "org1")
			gomega.Expect(err).To(gomega.MatchError(usecases.ErrDeviceNotFound))
		})

		ginkgo.It("should fill the cache on a miss", func() {
			device := newRegister("org1", "10.0.0.5", 5555)
			cache.EXPECT().Get(gomock.Any(), device.ID).Return(usecases.HealthSnapshot{}, false)
			repository.EXPECT().Get(gomock.Any(), device.ID).Return(device, nil)
			cache.EXPECT().Set(gomock.Any(), gomock.Any())

			health, err := service.GetHealth(ctx, device.ID, "org1")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(health.Status).To(gomega.Equal(domain.HealthStatusUnknown))
		})
	})
})
