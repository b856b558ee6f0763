package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"posbridge-server/internal/control_plane/domain"
	"posbridge-server/internal/control_plane/httpapi/internal"
	"posbridge-server/internal/control_plane/usecases"
	"posbridge-server/internal/infra/httpserver"
)

const (
	listDevicesErrMessage  = "failed to list fiscal devices"
	createDeviceErrMessage = "failed to create fiscal device"
	updateDeviceErrMessage = "failed to update fiscal device"
	deviceErrMessage       = "failed to read fiscal device"
	bridgeErrMessage       = "failed to reach fiscal device"
	dispatchErrMessage     = "failed to dispatch command"
	listTasksErrMessage    = "failed to list tasks"

	_maxOptionalBodyBytes = 1 << 16
)

func NewFiscalDeviceController(
	devices usecases.DeviceService,
	bridge usecases.FiscalBridgeService,
	dispatcher usecases.DispatchService,
	tasks usecases.AgentTaskService,
) *FiscalDeviceController {
	return &FiscalDeviceController{
		devices:    devices,
		bridge:     bridge,
		dispatcher: dispatcher,
		tasks:      tasks,
	}
}

var _ httpserver.Controller = &FiscalDeviceController{}

// FiscalDeviceController is the operator surface. Every route is scoped to
// the organization set by the gateway.
type FiscalDeviceController struct {
	devices    usecases.DeviceService
	bridge     usecases.FiscalBridgeService
	dispatcher usecases.DispatchService
	tasks      usecases.AgentTaskService
}

func (c *FiscalDeviceController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/fiscal-devices", c.listDevices())
	router.Handle("POST /v1/fiscal-devices", c.createDevice())
	router.Handle("GET /v1/fiscal-devices/{id}", c.getDevice())
	router.Handle("PUT /v1/fiscal-devices/{id}", c.updateDevice())
	router.Handle("DELETE /v1/fiscal-devices/{id}", c.deleteDevice())
	router.Handle("GET /v1/fiscal-devices/{id}/health", c.getHealth())
	router.Handle("GET /v1/fiscal-devices/{id}/shift", c.shiftStatus())
	router.Handle("POST /v1/fiscal-devices/{id}/shift/open", c.withOperator(c.bridge.OpenShift))
	router.Handle("POST /v1/fiscal-devices/{id}/shift/close", c.withOperator(c.bridge.CloseShift))
	router.Handle("POST /v1/fiscal-devices/{id}/x-report", c.withOperator(c.bridge.SendXReport))
	router.Handle("POST /v1/fiscal-devices/{id}/test-receipt", c.testReceipt())
	router.Handle("POST /v1/fiscal-devices/{id}/commands", c.dispatch())
	router.Handle("GET /v1/fiscal-devices/{id}/tasks", c.listTasks())
}

func (c *FiscalDeviceController) listDevices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := requireOrganization(w, r)
		if !ok {
			return
		}

		params, pagination := paginationFrom(r)
		devices, total, err := c.devices.ListDevices(r.Context(), orgID, pagination)
		if err != nil {
			replyWithServiceError(w, err, listDevicesErrMessage)
			return
		}

		httpserver.ReplyWithPaginatedData(w, http.StatusOK, internal.FromDevices(devices), total, params)
	}
}

func (c *FiscalDeviceController) createDevice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := requireOrganization(w, r)
		if !ok {
			return
		}

		var body internal.DeviceRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, malformedBodyErrMessage)
			return
		}

		device, err := body.ToDevice(orgID)
		if err != nil {
			replyWithServiceError(w, err, createDeviceErrMessage)
			return
		}

		if err := c.devices.CreateDevice(r.Context(), device); err != nil {
			replyWithServiceError(w, err, createDeviceErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusCreated, internal.FromDevice(device))
	}
}

func (c *FiscalDeviceController) getDevice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := requireOrganization(w, r)
		if !ok {
			return
		}

		device, err := c.devices.GetDevice(r.Context(), deviceIDFrom(r), orgID)
		if err != nil {
			replyWithServiceError(w, err, deviceErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.FromDevice(device))
	}
}

func (c *FiscalDeviceController) updateDevice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := requireOrganization(w, r)
		if !ok {
			return
		}

		var body internal.DeviceRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, malformedBodyErrMessage)
			return
		}

		device, err := body.ToDevice(orgID)
		if err != nil {
			replyWithServiceError(w, err, updateDeviceErrMessage)
			return
		}
		device.ID = deviceIDFrom(r)

		updated, err := c.devices.UpdateDevice(r.Context(), orgID, device)
		if err != nil {
			replyWithServiceError(w, err, updateDeviceErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.FromDevice(updated))
	}
}

func (c *FiscalDeviceController) deleteDevice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := requireOrganization(w, r)
		if !ok {
			return
		}

		if err := c.devices.DeleteDevice(r.Context(), deviceIDFrom(r), orgID); err != nil {
			replyWithServiceError(w, err, "failed to delete fiscal device")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (c *FiscalDeviceController) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := requireOrganization(w, r)
		if !ok {
			return
		}

		health, err := c.devices.GetHealth(r.Context(), deviceIDFrom(r), orgID)
		if err != nil {
			replyWithServiceError(w, err, deviceErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.FromHealth(health))
	}
}

func (c *FiscalDeviceController) shiftStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := requireOrganization(w, r)
		if !ok {
			return
		}

		result, err := c.bridge.GetShiftStatus(r.Context(), orgID, deviceIDFrom(r))
		if err != nil {
			replyWithServiceError(w, err, bridgeErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, result)
	}
}

type operatorCall func(ctx context.Context, orgID, deviceID domain.ID, operator *domain.Operator) (usecases.BridgeResult, error)

// withOperator serves the shift and report routes, which share an optional
// operator body.
func (c *FiscalDeviceController) withOperator(call operatorCall) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := requireOrganization(w, r)
		if !ok {
			return
		}

		var body internal.OperatorRequest
		if err := decodeOptionalBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, malformedBodyErrMessage)
			return
		}

		result, err := call(r.Context(), orgID, deviceIDFrom(r), body.Operator)
		if err != nil {
			replyWithServiceError(w, err, bridgeErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, result)
	}
}

func (c *FiscalDeviceController) testReceipt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := requireOrganization(w, r)
		if !ok {
			return
		}

		result, err := c.bridge.SellTestReceipt(r.Context(), orgID, deviceIDFrom(r))
		if err != nil {
			replyWithServiceError(w, err, bridgeErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, result)
	}
}

func (c *FiscalDeviceController) dispatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := requireOrganization(w, r)
		if !ok {
			return
		}

		var body internal.CommandRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, malformedBodyErrMessage)
			return
		}

		command, err := body.ToCommand()
		if err != nil {
			replyWithServiceError(w, err, dispatchErrMessage)
			return
		}

		result, err := c.dispatcher.Dispatch(r.Context(), orgID, deviceIDFrom(r), command)
		if err != nil {
			replyWithServiceError(w, err, dispatchErrMessage)
			return
		}

		status := http.StatusAccepted
		if result.Channel == domain.ChannelDirect {
			status = http.StatusOK
		}
		httpserver.ReplyJSONResponse(w, status, internal.FromDispatchResult(result))
	}
}

func (c *FiscalDeviceController) listTasks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := requireOrganization(w, r)
		if !ok {
			return
		}

		params, pagination := paginationFrom(r)
		tasks, total, err := c.tasks.ListTasks(r.Context(), orgID, deviceIDFrom(r), pagination)
		if err != nil {
			replyWithServiceError(w, err, listTasksErrMessage)
			return
		}

		httpserver.ReplyWithPaginatedData(w, http.StatusOK, internal.FromTasks(tasks), total, params)
	}
}

func deviceIDFrom(r *http.Request) domain.ID {
	return domain.ID(httpserver.GetPathParam(r, "id"))
}

// decodeOptionalBody accepts an empty body as the zero value.
func decodeOptionalBody(r *http.Request, placeholder any) error {
	if r.Body == nil {
		return nil
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, _maxOptionalBodyBytes))
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return json.Unmarshal(data, placeholder)
}
