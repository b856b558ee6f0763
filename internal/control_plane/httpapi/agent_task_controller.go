package httpapi

import (
	"net/http"

	"posbridge-server/internal/control_plane/domain"
	"posbridge-server/internal/control_plane/httpapi/internal"
	"posbridge-server/internal/control_plane/usecases"
	"posbridge-server/internal/infra/auth"
	"posbridge-server/internal/infra/httpserver"
)

const (
	createTaskErrMessage = "failed to create task"
	fetchTaskErrMessage  = "failed to fetch next task"
	updateTaskErrMessage = "failed to update task status"
	getTaskErrMessage    = "failed to read task"

	foreignOrganizationErrMessage = "token is not valid for this organization"
)

func NewAgentTaskController(tasks usecases.AgentTaskService, jwtSecret []byte) *AgentTaskController {
	return &AgentTaskController{
		tasks:      tasks,
		middleware: auth.AgentMiddleware(jwtSecret),
	}
}

var _ httpserver.Controller = &AgentTaskController{}

// AgentTaskController serves the on-premise agents. Every route requires an
// agent JWT; a token carrying an organization may only act for it.
type AgentTaskController struct {
	tasks      usecases.AgentTaskService
	middleware func(http.Handler) http.Handler
}

func (c *AgentTaskController) AddRoutes(router *http.ServeMux) {
	router.Handle("POST /tasks", c.middleware(c.createTask()))
	router.Handle("GET /tasks/next", c.middleware(c.nextTask()))
	router.Handle("POST /tasks/{id}/status", c.middleware(c.updateStatus()))
	router.Handle("GET /tasks/{id}", c.middleware(c.getTask()))
}

func (c *AgentTaskController) createTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.TaskCreateRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, malformedBodyErrMessage)
			return
		}

		orgID, ok := authorizeOrganization(w, r, body.OrganizationID)
		if !ok {
			return
		}
		if body.DeviceID == "" {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "fiscalDeviceId is required")
			return
		}

		command, err := body.ToCommand()
		if err != nil {
			replyWithServiceError(w, err, createTaskErrMessage)
			return
		}

		task, err := c.tasks.CreateTask(r.Context(), orgID, domain.ID(body.DeviceID), command)
		if err != nil {
			replyWithServiceError(w, err, createTaskErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusCreated, internal.FromTask(task))
	}
}

func (c *AgentTaskController) nextTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := authorizeOrganization(w, r, httpserver.GetQueryParam(r, "organizationId"))
		if !ok {
			return
		}
		deviceID := httpserver.GetQueryParam(r, "fiscalDeviceId")
		if deviceID == "" {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "fiscalDeviceId is required")
			return
		}

		task, err := c.tasks.FetchNextTask(r.Context(), orgID, domain.ID(deviceID))
		if err != nil {
			replyWithServiceError(w, err, fetchTaskErrMessage)
			return
		}
		if task == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.FromTask(*task))
	}
}

func (c *AgentTaskController) updateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.TaskStatusRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, malformedBodyErrMessage)
			return
		}

		// unscoped tokens may report on any organization's task
		var orgScope domain.ID
		if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
			orgScope = domain.ID(claims.OrganizationID)
		}

		task, err := c.tasks.UpdateTaskStatus(r.Context(), orgScope, domain.ID(httpserver.GetPathParam(r, "id")), body.ToUpdate())
		if err != nil {
			replyWithServiceError(w, err, updateTaskErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.FromTask(task))
	}
}

func (c *AgentTaskController) getTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := authorizeOrganization(w, r, httpserver.GetQueryParam(r, "organizationId"))
		if !ok {
			return
		}

		task, err := c.tasks.GetTask(r.Context(), domain.ID(httpserver.GetPathParam(r, "id")), orgID)
		if err != nil {
			replyWithServiceError(w, err, getTaskErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.FromTask(task))
	}
}

// authorizeOrganization resolves the organization an agent acts for: the
// requested one, or the token's when none is given.
func authorizeOrganization(w http.ResponseWriter, r *http.Request, requested string) (domain.ID, bool) {
	claims := auth.ClaimsFromContext(r.Context())
	if requested == "" && claims != nil {
		requested = claims.OrganizationID
	}
	if requested == "" {
		httpserver.ReplyWithError(w, http.StatusForbidden, missingOrganizationErrMessage)
		return "", false
	}
	if claims == nil || !claims.AllowsOrganization(requested) {
		httpserver.ReplyWithError(w, http.StatusForbidden, foreignOrganizationErrMessage)
		return "", false
	}
	return domain.ID(requested), true
}
