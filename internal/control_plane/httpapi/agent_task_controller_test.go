package httpapi_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"posbridge-server/internal/control_plane/domain"
	"posbridge-server/internal/control_plane/httpapi"
	"posbridge-server/internal/control_plane/usecases"
	"posbridge-server/internal/infra/auth"
	mockusecases "posbridge-server/test/unit/doubles/control_plane/usecases"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("AgentTaskController", func() {
	var (
		secret   = []byte("agent-secret")
		ctrl     *gomock.Controller
		tasks    *mockusecases.MockAgentTaskService
		router   *http.ServeMux
		recorder *httptest.ResponseRecorder
		token    string
		queued   domain.AgentTask
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		tasks = mockusecases.NewMockAgentTaskService(ctrl)

		router = http.NewServeMux()
		httpapi.NewAgentTaskController(tasks, secret).AddRoutes(router)
		recorder = httptest.NewRecorder()

		var err error
		token, err = auth.SignJWT(secret, "org1", "agent-1", time.Hour)
		Expect(err).NotTo(HaveOccurred())

		command, err := domain.NewCommand(domain.XReportPayload{})
		Expect(err).NotTo(HaveOccurred())
		queued = domain.NewAgentTask("org1", "dev-1", command, time.Now())
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	serve := func(method, path, body string) {
		var request *http.Request
		if body == "" {
			request = httptest.NewRequest(method, path, nil)
		} else {
			request = httptest.NewRequest(method, path, strings.NewReader(body))
		}
		if token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}
		router.ServeHTTP(recorder, request)
	}

	It("should reject requests without a valid agent token", func() {
		token = "forged"

		serve(http.MethodGet, "/tasks/next?organizationId=org1&fiscalDeviceId=dev-1", "")

		Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
	})

	Context("createTask", func() {
		It("should queue the command for the device", func() {
			tasks.EXPECT().CreateTask(gomock.Any(), domain.ID("org1"), domain.ID("dev-1"), gomock.Any()).DoAndReturn(
				func(_ any, _, _ domain.ID, command domain.Command) (domain.AgentTask, error) {
					Expect(command.Type).To(Equal(domain.CommandXReport))
					return queued, nil
				})

			serve(http.MethodPost, "/tasks", `{"organizationId":"org1","fiscalDeviceId":"dev-1","type":"x_report"}`)

			Expect(recorder.Code).To(Equal(http.StatusCreated))
			Expect(recorder.Body.String()).To(ContainSubstring(`"status":"queued"`))
		})

		It("should default to the token's organization", func() {
			tasks.EXPECT().CreateTask(gomock.Any(), domain.ID("org1"), domain.ID("dev-1"), gomock.Any()).Return(queued, nil)

			serve(http.MethodPost, "/tasks", `{"fiscalDeviceId":"dev-1","type":"x_report"}`)

			Expect(recorder.Code).To(Equal(http.StatusCreated))
		})

		It("should forbid organizations outside the token", func() {
			serve(http.MethodPost, "/tasks", `{"organizationId":"org2","fiscalDeviceId":"dev-1","type":"x_report"}`)

			Expect(recorder.Code).To(Equal(http.StatusForbidden))
		})

		It("should require a device", func() {
			serve(http.MethodPost, "/tasks", `{"organizationId":"org1","type":"x_report"}`)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})

		It("should reject devices on the direct channel", func() {
			tasks.EXPECT().CreateTask(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(domain.AgentTask{}, usecases.ErrUnsupportedCommand)

			serve(http.MethodPost, "/tasks", `{"organizationId":"org1","fiscalDeviceId":"dev-1","type":"x_report"}`)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("nextTask", func() {
		It("should answer 204 when the queue is empty", func() {
			tasks.EXPECT().FetchNextTask(gomock.Any(), domain.ID("org1"), domain.ID("dev-1")).Return(nil, nil)

			serve(http.MethodGet, "/tasks/next?organizationId=org1&fiscalDeviceId=dev-1", "")

			Expect(recorder.Code).To(Equal(http.StatusNoContent))
			Expect(recorder.Body.Len()).To(BeZero())
		})

		It("should hand out the claimed task", func() {
			claimed := queued
			claimed.Claim(time.Now())
			tasks.EXPECT().FetchNextTask(gomock.Any(), domain.ID("org1"), domain.ID("dev-1")).Return(&claimed, nil)

			serve(http.MethodGet, "/tasks/next?fiscalDeviceId=dev-1", "")

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(ContainSubstring(`"status":"in_progress"`))
			Expect(recorder.Body.String()).To(ContainSubstring(`"attempts":1`))
		})

		It("should let an unscoped token serve any organization", func() {
			var err error
			token, err = auth.SignJWT(secret, "", "agent-multi", time.Hour)
			Expect(err).NotTo(HaveOccurred())
			tasks.EXPECT().FetchNextTask(gomock.Any(), domain.ID("org7"), domain.ID("dev-1")).Return(nil, nil)

			serve(http.MethodGet, "/tasks/next?organizationId=org7&fiscalDeviceId=dev-1", "")

			Expect(recorder.Code).To(Equal(http.StatusNoContent))
		})

		It("should forbid an unscoped token without an organization", func() {
			var err error
			token, err = auth.SignJWT(secret, "", "agent-multi", time.Hour)
			Expect(err).NotTo(HaveOccurred())

			serve(http.MethodGet, "/tasks/next?fiscalDeviceId=dev-1", "")

			Expect(recorder.Code).To(Equal(http.StatusForbidden))
		})
	})

	Context("updateStatus", func() {
		It("should scope the update to the token's organization", func() {
			tasks.EXPECT().UpdateTaskStatus(gomock.Any(), domain.ID("org1"), domain.ID("task-1"), domain.TaskStatusUpdate{
				Status: domain.AgentTaskDone,
				FnCode: "9999078900001234",
			}).Return(queued, nil)

			serve(http.MethodPost, "/tasks/task-1/status", `{"status":"done","fnCode":"9999078900001234"}`)

			Expect(recorder.Code).To(Equal(http.StatusOK))
		})

		It("should answer 409 for a finished task", func() {
			tasks.EXPECT().UpdateTaskStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(domain.AgentTask{}, usecases.ErrTaskFinalized)

			serve(http.MethodPost, "/tasks/task-1/status", `{"status":"in_progress"}`)

			Expect(recorder.Code).To(Equal(http.StatusConflict))
		})

		It("should answer 404 for a task of another organization", func() {
			tasks.EXPECT().UpdateTaskStatus(gomock.Any(), domain.ID("org1"), domain.ID("task-9"), gomock.Any()).
				Return(domain.AgentTask{}, usecases.ErrTaskNotFound)

			serve(http.MethodPost, "/tasks/task-9/status", `{"status":"error","error":"jammed"}`)

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})
	})

	Context("getTask", func() {
		It("should read the task within the organization", func() {
			tasks.EXPECT().GetTask(gomock.Any(), domain.ID("task-1"), domain.ID("org1")).Return(queued, nil)

			serve(http.MethodGet, "/tasks/task-1", "")

			Expect(recorder.Code).To(Equal(http.StatusOK))
		})
	})
})
