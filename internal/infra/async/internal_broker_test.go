package async_test

import (
	"context"

	"posbridge-server/internal/infra/async"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LocalBroker", func() {
	const (
		healthTopic   async.BrokerTopicName = "device_health"
		outcomesTopic async.BrokerTopicName = "command_outcomes"
	)

	var (
		broker *async.LocalBroker
		ctx    context.Context
	)

	healthChanged := async.BrokerMessage{
		Event: "device_health_changed",
		Value: "9b0d7f7e-2a47-4e43-8f5e-3f0e6b3c1a10",
	}

	BeforeEach(func() {
		broker = async.NewLocalBroker()
		ctx = context.Background()
	})

	Context("Subscribe", func() {
		It("should deliver published messages to the subscriber", func() {
			subscription, err := broker.Subscribe(healthTopic)
			Expect(err).NotTo(HaveOccurred())

			Expect(broker.Publish(ctx, healthTopic, healthChanged)).To(Succeed())

			Eventually(subscription.Receiver).Should(Receive(And(
				HaveField("Event", "device_health_changed"),
				HaveField("Value", "9b0d7f7e-2a47-4e43-8f5e-3f0e6b3c1a10"),
			)))
		})

		It("should fan out to every subscriber of the topic", func() {
			first, _ := broker.Subscribe(healthTopic)
			second, _ := broker.Subscribe(healthTopic)

			Expect(broker.Publish(ctx, healthTopic, healthChanged)).To(Succeed())

			Eventually(first.Receiver).Should(Receive())
			Eventually(second.Receiver).Should(Receive())
		})

		It("should keep topics apart", func() {
			outcomes, _ := broker.Subscribe(outcomesTopic)
			_, _ = broker.Subscribe(healthTopic)

			Expect(broker.Publish(ctx, healthTopic, healthChanged)).To(Succeed())

			Consistently(outcomes.Receiver).ShouldNot(Receive())
		})
	})

	Context("Publish", func() {
		It("should fail for a topic nobody ever subscribed to", func() {
			err := broker.Publish(ctx, outcomesTopic, healthChanged)

			Expect(err).To(MatchError(async.ErrTopicNotFound))
		})

		It("should succeed once every subscriber left", func() {
			subscription, _ := broker.Subscribe(healthTopic)
			Expect(broker.Unsubscribe(healthTopic, subscription)).To(Succeed())

			Expect(broker.Publish(ctx, healthTopic, healthChanged)).To(Succeed())
		})

		It("should not block on a subscriber that never reads", func() {
			subscription, _ := broker.Subscribe(healthTopic)

			for range 200 {
				Expect(broker.Publish(ctx, healthTopic, healthChanged)).To(Succeed())
			}

			Expect(subscription.Receiver).To(HaveLen(64))
		})
	})

	Context("Unsubscribe", func() {
		It("should close the subscription channel", func() {
			subscription, _ := broker.Subscribe(healthTopic)

			Expect(broker.Unsubscribe(healthTopic, subscription)).To(Succeed())

			Eventually(subscription.Receiver).Should(BeClosed())
		})

		It("should leave the other subscribers in place", func() {
			leaving, _ := broker.Subscribe(healthTopic)
			staying, _ := broker.Subscribe(healthTopic)
			Expect(broker.Unsubscribe(healthTopic, leaving)).To(Succeed())

			Expect(broker.Publish(ctx, healthTopic, healthChanged)).To(Succeed())

			Eventually(staying.Receiver).Should(Receive())
		})

		It("should report an unknown topic", func() {
			err := broker.Unsubscribe(outcomesTopic, async.Subscription{ID: "missing"})

			Expect(err).To(MatchError(async.ErrTopicNotFound))
		})

		It("should report a subscription that is already gone", func() {
			subscription, _ := broker.Subscribe(healthTopic)
			Expect(broker.Unsubscribe(healthTopic, subscription)).To(Succeed())

			err := broker.Unsubscribe(healthTopic, subscription)

			Expect(err).To(MatchError(async.ErrSubscriptorNotFound))
		})
	})

	Context("Stop", func() {
		It("should close every subscription", func() {
			health, _ := broker.Subscribe(healthTopic)
			outcomes, _ := broker.Subscribe(outcomesTopic)

			broker.Stop()

			Eventually(health.Receiver).Should(BeClosed())
			Eventually(outcomes.Receiver).Should(BeClosed())
		})
	})
})
