package usecases_test

import (
	"context"
	"errors"
	"time"

	"posbridge-server/internal/control_plane/domain"
	"posbridge-server/internal/control_plane/usecases"
	mockusecases "posbridge-server/test/unit/doubles/control_plane/usecases"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = ginkgo.Describe("AgentTaskService", func() {
	var (
		ctx        context.Context
		ctrl       *gomock.Controller
		repository *mockusecases.MockAgentTaskRepository
		devices    *mockusecases.MockDeviceService
		notifier   *mockusecases.MockTaskNotifier
		publisher  *mockusecases.MockDeviceEventPublisher
		service    usecases.AgentTaskService
		device     domain.Device
		command    domain.Command
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		ctrl = gomock.NewController(ginkgo.GinkgoT())
		repository = mockusecases.NewMockAgentTaskRepository(ctrl)
		devices = mockusecases.NewMockDeviceService(ctrl)
		notifier = mockusecases.NewMockTaskNotifier(ctrl)
		publisher = mockusecases.NewMockDeviceEventPublisher(ctrl)
		service = usecases.NewAgentTaskService(repository, devices, notifier, publisher,
			usecases.AgentTaskServiceConfig{MaxAttempts: 3})

		device = newRegister("org1", "192.168.1.10", 16732)
		device.Channel = domain.ChannelAgent

		var err error
		command, err = domain.NewCommand(domain.OpenShiftPayload{Operator: &domain.Operator{Name: "Cashier"}})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
	})

	ginkgo.AfterEach(func() {
		ctrl.Finish()
	})

	ginkgo.Context("CreateTask", func() {
		ginkgo.It("should queue the task and wake the agent", func() {
			devices.EXPECT().GetDevice(gomock.Any(), device.ID, domain.ID("org1")).Return(device, nil)
			repository.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			notifier.EXPECT().NotifyTaskQueued(gomock.Any(), gomock.Any()).Return(nil)

			task, err := service.CreateTask(ctx, "org1", device.ID, command)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(task.Status).To(gomega.Equal(domain.AgentTaskQueued))
			gomega.Expect(task.Attempts).To(gomega.BeZero())
			gomega.Expect(task.OrganizationID).To(gomega.Equal(domain.ID("org1")))
		})

		ginkgo.It("should still succeed when the wake-up cannot be sent", func() {
			devices.EXPECT().GetDevice(gomock.Any(), device.ID, domain.ID("org1")).Return(device, nil)
			repository.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			notifier.EXPECT().NotifyTaskQueued(gomock.Any(), gomock.Any()).Return(errors.New("broker offline"))

			_, err := service.CreateTask(ctx, "org1", device.ID, command)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})

		ginkgo.It("should refuse devices of other organizations", func() {
			devices.EXPECT().GetDevice(gomock.Any(), device.ID, domain.ID("org2")).Return(domain.Device{}, usecases.ErrDeviceNotFound)

			_, err := service.CreateTask(ctx, "org2", device.ID, command)
			gomega.Expect(err).To(gomega.MatchError(usecases.ErrDeviceNotFound))
		})
	})

	ginkgo.Context("FetchNextTask", func() {
		ginkgo.It("should return nil when nothing is queued", func() {
			devices.EXPECT().GetDevice(gomock.Any(), device.ID, domain.ID("org1")).Return(device, nil)
			repository.EXPECT().ClaimNext(gomock.Any(), domain.ID("org1"), device.ID, gomock.Any(), 3).
				Return(domain.AgentTask{}, false, nil)

			task, err := service.FetchNextTask(ctx, "org1", device.ID)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(task).To(gomega.BeNil())
		})

		ginkgo.It("should return the claimed task", func() {
			claimed := domain.NewAgentTask("org1", device.ID, command, time.Now().UTC())
			claimed.Claim(time.Now().UTC())
			devices.EXPECT().GetDevice(gomock.Any(), device.ID, domain.ID("org1")).Return(device, nil)
			repository.EXPECT().ClaimNext(gomock.Any(), domain.ID("org1"), device.ID, gomock.Any(), 3).
				Return(claimed, true, nil)

			task, err := service.FetchNextTask(ctx, "org1", device.ID)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(task.Status).To(gomega.Equal(domain.AgentTaskInProgress))
			gomega.Expect(task.Attempts).To(gomega.Equal(1))
		})
	})

	ginkgo.Context("UpdateTaskStatus", func() {
		var task domain.AgentTask

		ginkgo.BeforeEach(func() {
			task = domain.NewAgentTask("org1", device.ID, command, time.Now().UTC())
			task.Claim(time.Now().UTC())
		})

		ginkgo.It("should finish the task and mark the device online", func() {
			repository.EXPECT().Get(gomock.Any(), task.ID).Return(task, nil)
			repository.EXPECT().Update(gomock.Any(), gomock.Any(), domain.AgentTaskInProgress).Return(nil)
			devices.EXPECT().RecordHealth(gomock.Any(), device.ID, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ domain.ID, report domain.HealthReport) (domain.Device, error) {
					gomega.Expect(report.Status).To(gomega.Equal(domain.HealthStatusOnline))
					gomega.Expect(*report.ShiftState).To(gomega.Equal(domain.ShiftStateOpen))
					return device, nil
				})
			publisher.EXPECT().PublishCommandOutcome(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, outcome usecases.CommandOutcome) error {
					gomega.Expect(outcome.Channel).To(gomega.Equal(domain.ChannelAgent))
					gomega.Expect(outcome.Status).To(gomega.Equal("done"))
					return nil
				})

			updated, err := service.UpdateTaskStatus(ctx, "org1", task.ID, domain.TaskStatusUpdate{
				Status: domain.AgentTaskDone,
				FnCode: "7281440500000123",
			})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(updated.Status).To(gomega.Equal(domain.AgentTaskDone))
			gomega.Expect(updated.FinishedAt).NotTo(gomega.BeNil())
		})

		ginkgo.It("should record the agent error on the device", func() {
			repository.EXPECT().Get(gomock.Any(), task.ID).Return(task, nil)
			repository.EXPECT().Update(gomock.Any(), gomock.Any(), domain.AgentTaskInProgress).Return(nil)
			devices.EXPECT().RecordHealth(gomock.Any(), device.ID, domain.ErrorReport(domain.DefaultAgentErrorMessage)).Return(device, nil)
			publisher.EXPECT().PublishCommandOutcome(gomock.Any(), gomock.Any()).Return(nil)

			updated, err := service.UpdateTaskStatus(ctx, "", task.ID, domain.TaskStatusUpdate{Status: domain.AgentTaskError})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(updated.ErrorMessage).To(gomega.Equal(domain.DefaultAgentErrorMessage))
		})

		ginkgo.It("should refuse to touch a done task", func() {
			task.Status = domain.AgentTaskDone
			repository.EXPECT().Get(gomock.Any(), task.ID).Return(task, nil)

			_, err := service.UpdateTaskStatus(ctx, "org1", task.ID, domain.TaskStatusUpdate{Status: domain.AgentTaskQueued})
			gomega.Expect(err).To(gomega.MatchError(usecases.ErrTaskFinalized))
		})

		ginkgo.It("should hide tasks outside the token organization", func() {
			repository.EXPECT().Get(gomock.Any(), task.ID).Return(task, nil)

			_, err := service.UpdateTaskStatus(ctx, "org2", task.ID, domain.TaskStatusUpdate{Status: domain.AgentTaskDone})
			gomega.Expect(err).To(gomega.MatchError(usecases.ErrTaskNotFound))
		})

		ginkgo.It("should retry when another writer won the race", func() {
			repository.EXPECT().Get(gomock.Any(), task.ID).Return(task, nil).Times(2)
			gomock.InOrder(
				repository.EXPECT().Update(gomock.Any(), gomock.Any(), domain.AgentTaskInProgress).Return(usecases.ErrTaskConflict),
				repository.EXPECT().Update(gomock.Any(), gomock.Any(), domain.AgentTaskInProgress).Return(nil),
			)
			devices.EXPECT().RecordHealth(gomock.Any(), device.ID, gomock.Any()).Return(device, nil)
			publisher.EXPECT().PublishCommandOutcome(gomock.Any(), gomock.Any()).Return(nil)

			_, err := service.UpdateTaskStatus(ctx, "org1", task.ID, domain.TaskStatusUpdate{Status: domain.AgentTaskDone})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})

		ginkgo.It("should refuse a retry once attempts are exhausted", func() {
			task.Status = domain.AgentTaskError
			task.Attempts = 3
			repository.EXPECT().Get(gomock.Any(), task.ID).Return(task, nil)

			_, err := service.UpdateTaskStatus(ctx, "org1", task.ID, domain.TaskStatusUpdate{Status: domain.AgentTaskQueued})
			gomega.Expect(err).To(gomega.MatchError(usecases.ErrTaskAttemptsExhausted))
		})
	})

	ginkgo.Context("GetTask", func() {
		ginkgo.It("should hide tasks of other organizations", func() {
			task := domain.NewAgentTask("org1", device.ID, command, time.Now().UTC())
			repository.EXPECT().Get(gomock.Any(), task.ID).Return(task, nil)

			_, err := service.GetTask(ctx, task.ID, "org2")
			gomega.Expect(err).To(gomega.MatchError(usecases.ErrTaskNotFound))
		})
	})
})
