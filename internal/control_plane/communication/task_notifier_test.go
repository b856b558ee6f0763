package communication_test

import (
	"context"
	"errors"
	"time"

	"posbridge-server/internal/control_plane/communication"
	"posbridge-server/internal/control_plane/communication/internal"
	"posbridge-server/internal/control_plane/domain"
	mockmqtt "posbridge-server/test/unit/doubles/infra/mqtt"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = ginkgo.Describe("MQTTTaskNotifier", func() {
	var (
		ctrl     *gomock.Controller
		client   *mockmqtt.MockClient
		notifier *communication.MQTTTaskNotifier
		task     domain.AgentTask
	)

	ginkgo.BeforeEach(func() {
		ctrl = gomock.NewController(ginkgo.GinkgoT())
		client = mockmqtt.NewMockClient(ctrl)
		notifier = communication.NewMQTTTaskNotifier(client, "posbridge")

		command, err := domain.NewCommand(domain.XReportPayload{})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		task = domain.NewAgentTask("org1", "dev-1", command, time.Now().UTC())
	})

	ginkgo.AfterEach(func() {
		ctrl.Finish()
	})

	ginkgo.It("should publish a hint on the organization topic", func() {
		client.EXPECT().
			Publish("posbridge/agents/org1/tasks", internal.FromAgentTask(task)).
			Return(nil)

		gomega.Expect(notifier.NotifyTaskQueued(context.Background(), task)).To(gomega.Succeed())
	})

	ginkgo.It("should wrap broker failures", func() {
		client.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("timed out"))

		err := notifier.NotifyTaskQueued(context.Background(), task)
		gomega.Expect(err).To(gomega.MatchError(gomega.ContainSubstring("timed out")))
	})

	ginkgo.It("should build topics without a prefix", func() {
		gomega.Expect(communication.AgentTasksTopic("", "org1")).To(gomega.Equal("agents/org1/tasks"))
	})
})

var _ = ginkgo.Describe("NoopTaskNotifier", func() {
	ginkgo.It("should never fail", func() {
		err := communication.NoopTaskNotifier{}.NotifyTaskQueued(context.Background(), domain.AgentTask{})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
	})
})
