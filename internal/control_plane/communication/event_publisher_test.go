package communication_test

import (
	"context"
	"errors"
	"time"

	"posbridge-server/internal/control_plane/communication"
	"posbridge-server/internal/control_plane/communication/internal"
	"posbridge-server/internal/control_plane/domain"
	"posbridge-server/internal/control_plane/usecases"
	"posbridge-server/internal/infra/async"
	"posbridge-server/internal/infra/pubsub"
	mockasync "posbridge-server/test/unit/doubles/infra/async"
	mockpubsub "posbridge-server/test/unit/doubles/infra/pubsub"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = ginkgo.Describe("DeviceEventPublisher", func() {
	var (
		ctx    context.Context
		device domain.Device
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		var err error
		device, err = domain.NewDeviceBuilder().
			WithOrganization("org1").
			AsLANRegister("10.0.0.5", 5555).
			Build()
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		seen := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
		device.Health = domain.DeviceHealth{
			Status:     domain.HealthStatusError,
			LastSeenAt: &seen,
			LastError:  "connection refused",
			ShiftState: domain.ShiftStateOpen,
			UpdatedAt:  seen.Add(time.Minute),
		}
	})

	ginkgo.Context("with the memory broker", func() {
		var (
			events    *pubsub.MemoryBroker
			stream    *async.LocalBroker
			publisher *communication.DeviceEventPublisher
		)

		ginkgo.BeforeEach(func() {
			events = pubsub.NewMemoryBroker()
			stream = async.NewLocalBroker()
			ginkgo.DeferCleanup(stream.Stop)

			var err error
			publisher, err = communication.NewDeviceEventPublisher(pubsub.NewMemoryPublisherFactory(events), stream)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})

		ginkgo.It("should publish the health event keyed by device", func() {
			var (
				gotKey   pubsub.Key
				gotEvent *internal.DeviceHealthChanged
			)
			events.Subscribe("device_health", func(_ context.Context, key pubsub.Key, message pubsub.Message) error {
				gotKey = key
				gotEvent = message.(*internal.DeviceHealthChanged)
				return nil
			})

			gomega.Expect(publisher.PublishHealthChanged(ctx, device)).To(gomega.Succeed())

			gomega.Expect(gotKey).To(gomega.Equal(pubsub.Key(device.ID)))
			gomega.Expect(gotEvent.Status).To(gomega.Equal("error"))
			gomega.Expect(gotEvent.ShiftState).To(gomega.Equal("open"))
			gomega.Expect(*gotEvent.OrganizationID).To(gomega.Equal("org1"))
			gomega.Expect(*gotEvent.LastError).To(gomega.Equal("connection refused"))
		})

		ginkgo.It("should mirror the health change to live subscribers", func() {
			subscription, err := stream.Subscribe(async.BrokerTopicName(usecases.DeviceHealthStream))
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			gomega.Expect(publisher.PublishHealthChanged(ctx, device)).To(gomega.Succeed())

			var message async.BrokerMessage
			gomega.Eventually(subscription.Receiver).Should(gomega.Receive(&message))
			gomega.Expect(message.Event).To(gomega.Equal(usecases.DeviceHealthChangedEvent))
			snapshot := message.Value.(usecases.HealthSnapshot)
			gomega.Expect(snapshot.DeviceID).To(gomega.Equal(device.ID))
			gomega.Expect(snapshot.Health.Status).To(gomega.Equal(domain.HealthStatusError))
		})

		ginkgo.It("should not fail when nobody streams health", func() {
			gomega.Expect(publisher.PublishHealthChanged(ctx, device)).To(gomega.Succeed())
		})

		ginkgo.It("should still publish the event when the live stream fails", func() {
			ctrl := gomock.NewController(ginkgo.GinkgoT())
			stream := mockasync.NewMockInternalBroker(ctrl)
			stream.EXPECT().
				Publish(gomock.Any(), async.BrokerTopicName(usecases.DeviceHealthStream), gomock.Any()).
				Return(errors.New("stream closed"))

			published := 0
			events.Subscribe("device_health", func(context.Context, pubsub.Key, pubsub.Message) error {
				published++
				return nil
			})

			failing, err := communication.NewDeviceEventPublisher(pubsub.NewMemoryPublisherFactory(events), stream)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			gomega.Expect(failing.PublishHealthChanged(ctx, device)).To(gomega.Succeed())
			gomega.Expect(published).To(gomega.Equal(1))
		})

		ginkgo.It("should publish outcomes keyed by command", func() {
			var gotEvent *internal.CommandOutcome
			events.Subscribe("command_outcomes", func(_ context.Context, key pubsub.Key, message pubsub.Message) error {
				gomega.Expect(key).To(gomega.Equal(pubsub.Key("sc-1")))
				gotEvent = message.(*internal.CommandOutcome)
				return nil
			})

			err := publisher.PublishCommandOutcome(ctx, usecases.CommandOutcome{
				OrganizationID: "org1",
				CommandID:      "sc-1",
				Channel:        domain.ChannelTerminal,
				CommandType:    domain.CommandSyncOrder,
				Status:         "failed",
				Message:        "printer jammed",
				OccurredAt:     time.Now().UTC(),
			})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			gomega.Expect(gotEvent.DeviceID).To(gomega.BeNil())
			gomega.Expect(gotEvent.Channel).To(gomega.Equal("terminal"))
			gomega.Expect(*gotEvent.Message).To(gomega.Equal("printer jammed"))
		})
	})

	ginkgo.Context("when the event bus fails", func() {
		var (
			ctrl      *gomock.Controller
			health    *mockpubsub.MockPublisher
			publisher *communication.DeviceEventPublisher
		)

		ginkgo.BeforeEach(func() {
			ctrl = gomock.NewController(ginkgo.GinkgoT())
			factory := mockpubsub.NewMockPublisherFactory(ctrl)
			health = mockpubsub.NewMockPublisher(ctrl)
			outcomes := mockpubsub.NewMockPublisher(ctrl)
			factory.EXPECT().New(pubsub.Topic("device_health"), gomock.Any()).Return(health, nil)
			factory.EXPECT().New(pubsub.Topic("command_outcomes"), gomock.Any()).Return(outcomes, nil)

			var err error
			publisher, err = communication.NewDeviceEventPublisher(factory, nil)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})

		ginkgo.AfterEach(func() {
			ctrl.Finish()
		})

		ginkgo.It("should return the publish error", func() {
			health.EXPECT().Publish(gomock.Any(), pubsub.Key(device.ID), gomock.Any()).Return(errors.New("broker down"))

			err := publisher.PublishHealthChanged(ctx, device)
			gomega.Expect(err).To(gomega.MatchError(gomega.ContainSubstring("broker down")))
		})
	})

	ginkgo.It("should fail when a publisher cannot be created", func() {
		ctrl := gomock.NewController(ginkgo.GinkgoT())
		factory := mockpubsub.NewMockPublisherFactory(ctrl)
		factory.EXPECT().New(gomock.Any(), gomock.Any()).Return(nil, errors.New("no brokers"))

		_, err := communication.NewDeviceEventPublisher(factory, nil)
		gomega.Expect(err).To(gomega.HaveOccurred())
	})
})

var _ = ginkgo.Describe("event schemas", func() {
	ginkgo.It("should encode health events with avro", func() {
		codec, err := pubsub.NewAvroCodec(&internal.DeviceHealthChanged{})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		event := internal.FromDeviceHealth(domain.Device{
			ID:     "dev-1",
			Kind:   domain.DeviceKindEvotorTerminal,
			Health: domain.UnknownHealth(),
		})
		data, err := codec.Encode(event)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		decoded, err := codec.Decode(data)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(decoded.(*internal.DeviceHealthChanged).Status).To(gomega.Equal("unknown"))
		gomega.Expect(decoded.(*internal.DeviceHealthChanged).OrganizationID).To(gomega.BeNil())
	})

	ginkgo.It("should encode command outcomes with avro", func() {
		codec, err := pubsub.NewAvroCodec(&internal.CommandOutcome{})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		data, err := codec.Encode(internal.FromCommandOutcome(usecases.CommandOutcome{
			OrganizationID: "org1",
			DeviceID:       "dev-1",
			CommandID:      "task-1",
			Channel:        domain.ChannelAgent,
			CommandType:    domain.CommandOpenShift,
			Status:         "done",
			OccurredAt:     time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
		}))
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		decoded, err := codec.Decode(data)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		outcome := decoded.(*internal.CommandOutcome)
		gomega.Expect(*outcome.DeviceID).To(gomega.Equal("dev-1"))
		gomega.Expect(outcome.Message).To(gomega.BeNil())
	})
})
