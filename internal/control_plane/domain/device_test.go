package domain_test

import (
	"time"

	"posbridge-server/internal/control_plane/domain"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Device", func() {
	Context("NewDeviceBuilder", func() {
		It("should build a LAN register with unknown health", func() {
			device, err := domain.NewDeviceBuilder().
				WithOrganization("org1").
				WithName("front desk").
				AsLANRegister("192.168.1.20", 16732).
				WithOperator("Ivanova", "7701234567").
				WithTaxSystem(domain.TaxSystemUSNIncome).
				Build()

			Expect(err).NotTo(HaveOccurred())
			Expect(device.ID).NotTo(BeEmpty())
			Expect(device.Channel).To(Equal(domain.ChannelDirect))
			Expect(device.BelongsTo("org1")).To(BeTrue())
			Expect(device.Health.Status).To(Equal(domain.HealthStatusUnknown))
			Expect(device.Health.ShiftState).To(Equal(domain.ShiftStateUnknown))
			Expect(device.BaseURL()).To(Equal("http://192.168.1.20:16732"))
		})

		DescribeTable("should reject invalid registers",
			func(address string, port int, vatin string, tax domain.TaxSystem, field string) {
				_, err := domain.NewDeviceBuilder().
					WithOrganization("org1").
					AsLANRegister(address, port).
					WithOperator("op", vatin).
					WithTaxSystem(tax).
					Build()

				Expect(err).To(MatchError(domain.ErrValidation))
				var validation *domain.ValidationError
				Expect(err).To(BeAssignableToTypeOf(validation))
				Expect(err.(*domain.ValidationError).Field).To(Equal(field))
			},
			Entry("not an address", "register.local", 80, "", domain.TaxSystemOSN, "ip"),
			Entry("IPv6 address", "::1", 80, "", domain.TaxSystemOSN, "ip"),
			Entry("IPv4-mapped IPv6 address", "::ffff:192.168.1.10", 16732, "", domain.TaxSystemOSN, "ip"),
			Entry("address with a zone", "192.168.1.10%eth0", 80, "", domain.TaxSystemOSN, "ip"),
			Entry("port zero", "10.0.0.1", 0, "", domain.TaxSystemOSN, "port"),
			Entry("port too large", "10.0.0.1", 65536, "", domain.TaxSystemOSN, "port"),
			Entry("short VATIN", "10.0.0.1", 80, "123456789", domain.TaxSystemOSN, "operatorVatin"),
			Entry("VATIN with letters", "10.0.0.1", 80, "12345678ab", domain.TaxSystemOSN, "operatorVatin"),
			Entry("unknown tax system", "10.0.0.1", 80, "", domain.TaxSystem("flat"), "taxSystem"),
		)

		It("should build an unclaimed Evotor terminal", func() {
			device, err := domain.NewDeviceBuilder().
				AsEvotorTerminal("user-1", "uuid-1", "token-1").
				Build()

			Expect(err).NotTo(HaveOccurred())
			Expect(device.IsClaimed()).To(BeFalse())
			Expect(device.Channel).To(Equal(domain.ChannelTerminal))
		})
	})

	Context("LinkTo", func() {
		var device domain.Device

		BeforeEach(func() {
			var err error
			device, err = domain.NewDeviceBuilder().AsEvotorTerminal("user-1", "uuid-1", "").Build()
			Expect(err).NotTo(HaveOccurred())
		})

		It("should claim an unclaimed device", func() {
			Expect(device.LinkTo("org1")).To(Succeed())
			Expect(device.BelongsTo("org1")).To(BeTrue())
		})

		It("should be a no-op for the same organization", func() {
			Expect(device.LinkTo("org1")).To(Succeed())
			version := device.Version
			Expect(device.LinkTo("org1")).To(Succeed())
			Expect(device.Version).To(Equal(version))
		})

		It("should refuse another organization", func() {
			Expect(device.LinkTo("org1")).To(Succeed())
			Expect(device.LinkTo("org2")).To(MatchError(domain.ErrDeviceAlreadyLinked))
			Expect(device.BelongsTo("org1")).To(BeTrue())
		})
	})

	Context("DeviceHealth.Apply", func() {
		var (
			now    time.Time
			health domain.DeviceHealth
		)

		BeforeEach(func() {
			now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
			open := domain.ShiftStateOpen
			health = domain.UnknownHealth().Apply(domain.OnlineReport(&open), now)
		})

		It("should stamp last seen and shift state on success", func() {
			Expect(health.Status).To(Equal(domain.HealthStatusOnline))
			Expect(*health.LastSeenAt).To(Equal(now))
			Expect(health.ShiftState).To(Equal(domain.ShiftStateOpen))
			Expect(health.LastError).To(BeEmpty())
		})

		It("should keep the shift state and last seen on failure", func() {
			later := now.Add(time.Minute)
			failed := health.Apply(domain.ErrorReport("dial tcp: connection refused"), later)

			Expect(failed.Status).To(Equal(domain.HealthStatusError))
			Expect(failed.LastError).To(Equal("dial tcp: connection refused"))
			Expect(failed.ShiftState).To(Equal(domain.ShiftStateOpen))
			Expect(*failed.LastSeenAt).To(Equal(now))
			Expect(failed.UpdatedAt).To(Equal(later))
		})

		It("should clear the previous error on the next success", func() {
			failed := health.Apply(domain.ErrorReport("timeout"), now.Add(time.Minute))
			recovered := failed.Apply(domain.OnlineReport(nil), now.Add(2*time.Minute))

			Expect(recovered.LastError).To(BeEmpty())
			Expect(recovered.ShiftState).To(Equal(domain.ShiftStateOpen))
		})
	})

	DescribeTable("ParseShiftState",
		func(raw string, expected domain.ShiftState, ok bool) {
			state, found := domain.ParseShiftState(raw)
			Expect(found).To(Equal(ok))
			Expect(state).To(Equal(expected))
		},
		Entry("opened", "opened", domain.ShiftStateOpen, true),
		Entry("expired counts as open", "expired", domain.ShiftStateOpen, true),
		Entry("closed", "Closed", domain.ShiftStateClosed, true),
		Entry("unknown word", "paused", domain.ShiftState(""), false),
	)
})
