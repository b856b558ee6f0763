package persistence_test

import (
	"context"
	"time"

	"posbridge-server/internal/control_plane/domain"
	"posbridge-server/internal/control_plane/persistence"
	"posbridge-server/internal/control_plane/usecases"
	"posbridge-server/internal/infra/cache"
	mockcache "posbridge-server/test/unit/doubles/infra/cache"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = ginkgo.Describe("DeviceHealthCache", func() {
	var (
		ctx      context.Context
		snapshot usecases.HealthSnapshot
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		org := domain.ID("org1")
		seen := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
		snapshot = usecases.HealthSnapshot{
			DeviceID:       "dev-1",
			OrganizationID: &org,
			Health: domain.DeviceHealth{
				Status:     domain.HealthStatusOnline,
				LastSeenAt: &seen,
				ShiftState: domain.ShiftStateOpen,
				UpdatedAt:  seen,
			},
		}
	})

	ginkgo.Context("with a ristretto backend", func() {
		var healthCache *persistence.SimpleDeviceHealthCache

		ginkgo.BeforeEach(func() {
			backend, err := cache.New(nil)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			healthCache, err = persistence.NewDeviceHealthCache(&persistence.DeviceHealthCacheConfig{
				Cache:     backend,
				KeyPrefix: "device_health:",
				TTL:       time.Minute,
			})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})

		ginkgo.It("should return what was stored", func() {
			healthCache.Set(ctx, snapshot)

			got, found := healthCache.Get(ctx, "dev-1")
			gomega.Expect(found).To(gomega.BeTrue())
			gomega.Expect(got.DeviceID).To(gomega.Equal(domain.ID("dev-1")))
			gomega.Expect(*got.OrganizationID).To(gomega.Equal(domain.ID("org1")))
			gomega.Expect(got.Health.Status).To(gomega.Equal(domain.HealthStatusOnline))
			gomega.Expect(got.Health.ShiftState).To(gomega.Equal(domain.ShiftStateOpen))
			gomega.Expect(got.Health.LastSeenAt.Equal(*snapshot.Health.LastSeenAt)).To(gomega.BeTrue())
		})

		ginkgo.It("should forget deleted entries", func() {
			healthCache.Set(ctx, snapshot)
			healthCache.Delete(ctx, "dev-1")

			_, found := healthCache.Get(ctx, "dev-1")
			gomega.Expect(found).To(gomega.BeFalse())
		})
	})

	ginkgo.Context("with a mocked backend", func() {
		var (
			ctrl        *gomock.Controller
			backend     *mockcache.MockCache
			healthCache *persistence.SimpleDeviceHealthCache
		)

		ginkgo.BeforeEach(func() {
			ctrl = gomock.NewController(ginkgo.GinkgoT())
			backend = mockcache.NewMockCache(ctrl)

			var err error
			healthCache, err = persistence.NewDeviceHealthCache(&persistence.DeviceHealthCacheConfig{
				Cache:     backend,
				KeyPrefix: "device_health:",
				TTL:       time.Minute,
			})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})

		ginkgo.AfterEach(func() {
			ctrl.Finish()
		})

		ginkgo.It("should decode map values handed back by redis", func() {
			backend.EXPECT().Get(gomock.Any(), "device_health:dev-1").Return(map[string]any{
				"DeviceID": "dev-1",
				"Health":   map[string]any{"Status": "error", "LastError": "timeout", "ShiftState": "closed"},
			}, true)

			got, found := healthCache.Get(ctx, "dev-1")
			gomega.Expect(found).To(gomega.BeTrue())
			gomega.Expect(got.Health.Status).To(gomega.Equal(domain.HealthStatusError))
			gomega.Expect(got.Health.LastError).To(gomega.Equal("timeout"))
		})

		ginkgo.It("should treat unexpected values as a miss", func() {
			backend.EXPECT().Get(gomock.Any(), "device_health:dev-1").Return(42, true)

			_, found := healthCache.Get(ctx, "dev-1")
			gomega.Expect(found).To(gomega.BeFalse())
		})

		ginkgo.It("should store the snapshot as a JSON string with the configured TTL", func() {
			backend.EXPECT().
				Set(gomock.Any(), "device_health:dev-1", gomock.AssignableToTypeOf(""), time.Minute).
				Return(true)

			healthCache.Set(ctx, snapshot)
		})
	})

	ginkgo.It("should require a cache instance", func() {
		_, err := persistence.NewDeviceHealthCache(&persistence.DeviceHealthCacheConfig{})
		gomega.Expect(err).To(gomega.HaveOccurred())
	})
})
