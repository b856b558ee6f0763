package domain_test

import (
	"time"

	"posbridge-server/internal/control_plane/domain"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SaleCommand", func() {
	var (
		now   time.Time
		order domain.Order
	)

	BeforeEach(func() {
		now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		order = domain.Order{
			ID:             "o1",
			OrganizationID: "org1",
			Status:         "open",
			Total:          450,
			Items:          []domain.OrderItem{{Name: "Latte", Quantity: 1, Price: 450, Total: 450}},
		}
	})

	It("should snapshot the order and expire after the ttl", func() {
		cmd, err := domain.NewSaleCommand(order, "cashier-1", now, 0)

		Expect(err).NotTo(HaveOccurred())
		Expect(cmd.Status).To(Equal(domain.SaleCommandPending))
		Expect(cmd.ExpiresAt).To(Equal(now.Add(5 * time.Minute)))
		Expect(cmd.Order.ID).To(Equal(domain.ID("o1")))
		Expect(cmd.Order.Total).To(Equal(450.0))
	})

	It("should not follow later changes to the order", func() {
		cmd, err := domain.NewSaleCommand(order, "cashier-1", now, time.Minute)
		Expect(err).NotTo(HaveOccurred())

		order.Items[0].Name = "Cappuccino"
		Expect(cmd.Order.Items[0].Name).To(Equal("Latte"))
	})

	It("should reject orders without billable items", func() {
		order.Items = []domain.OrderItem{{Name: "Gift", Quantity: 0}}

		_, err := domain.NewSaleCommand(order, "cashier-1", now, time.Minute)
		Expect(err).To(MatchError(domain.ErrOrderNotBillable))
	})

	It("should stop being live at expiry or once final", func() {
		cmd, err := domain.NewSaleCommand(order, "cashier-1", now, time.Minute)
		Expect(err).NotTo(HaveOccurred())

		Expect(cmd.IsLive(now)).To(BeTrue())
		Expect(cmd.IsLive(now.Add(time.Minute))).To(BeFalse())

		cmd.Status = domain.SaleCommandAccepted
		Expect(cmd.IsLive(now)).To(BeFalse())
	})

	DescribeTable("AckStatus",
		func(status domain.SaleCommandStatus, message, stored string, valid bool) {
			result, err := domain.AckStatus(status, message)
			if !valid {
				Expect(err).To(MatchError(domain.ErrValidation))
				return
			}
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(Equal(stored))
		},
		Entry("accepted", domain.SaleCommandAccepted, "", "", true),
		Entry("failed with message", domain.SaleCommandFailed, "drawer jammed", "drawer jammed", true),
		Entry("failed without message", domain.SaleCommandFailed, "", domain.UnknownTerminalError, true),
		Entry("pending is not an ack", domain.SaleCommandPending, "", "", false),
	)
})
