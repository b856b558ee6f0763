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
	registerTokenErrMessage = "failed to register terminal token"
	linkDeviceErrMessage    = "failed to link terminal"
	enqueueErrMessage       = "failed to enqueue sale command"
	pollErrMessage          = "failed to poll sale commands"
	ackErrMessage           = "failed to acknowledge sale command"
	saleCommandErrMessage   = "failed to read sale command"
)

func NewTerminalController(
	terminals usecases.TerminalService,
	saleCommands usecases.SaleCommandService,
	webhookSecret string,
) *TerminalController {
	return &TerminalController{
		terminals:    terminals,
		saleCommands: saleCommands,
		webhook:      auth.SharedSecretMiddleware(webhookSecret),
	}
}

var _ httpserver.Controller = &TerminalController{}

// TerminalController serves the platform webhook and the routes terminals
// poll through the gateway.
type TerminalController struct {
	terminals    usecases.TerminalService
	saleCommands usecases.SaleCommandService
	webhook      func(http.Handler) http.Handler
}

func (c *TerminalController) AddRoutes(router *http.ServeMux) {
	router.Handle("POST /token", c.webhook(c.registerToken()))
	router.Handle("POST /devices/link", c.linkDevice())
	router.Handle("POST /sale-commands", c.enqueue())
	router.Handle("GET /sale-commands/pending", c.pollPending())
	router.Handle("POST /sale-commands/{id}/ack", c.acknowledge())
	router.Handle("GET /sale-commands/{id}", c.getSaleCommand())
}

func (c *TerminalController) registerToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.TokenRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, malformedBodyErrMessage)
			return
		}

		device, err := c.terminals.RegisterToken(r.Context(), body.ToTerminalToken())
		if err != nil {
			replyWithServiceError(w, err, registerTokenErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.TokenResponse{
			DeviceID: device.ID.String(),
			Linked:   device.IsClaimed(),
		})
	}
}

func (c *TerminalController) linkDevice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := requireOrganization(w, r)
		if !ok {
			return
		}

		var body internal.LinkRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, malformedBodyErrMessage)
			return
		}

		device, err := c.terminals.LinkDevice(r.Context(), orgID, domain.ID(body.DeviceID))
		if err != nil {
			replyWithServiceError(w, err, linkDeviceErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.FromDevice(device))
	}
}

func (c *TerminalController) enqueue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := requireOrganization(w, r)
		if !ok {
			return
		}

		var body internal.SaleCommandCreateRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, malformedBodyErrMessage)
			return
		}
		if body.OrderID == "" {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "orderId is required")
			return
		}

		command, err := c.saleCommands.Enqueue(r.Context(), orgID, domain.ID(body.OrderID), requestedBy(r))
		if err != nil {
			replyWithServiceError(w, err, enqueueErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusCreated, internal.FromSaleCommand(command))
	}
}

func (c *TerminalController) pollPending() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := requireOrganization(w, r)
		if !ok {
			return
		}

		command, err := c.saleCommands.PollPending(r.Context(), orgID)
		if err != nil {
			replyWithServiceError(w, err, pollErrMessage)
			return
		}
		if command == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.FromSaleCommand(*command))
	}
}

func (c *TerminalController) acknowledge() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := requireOrganization(w, r)
		if !ok {
			return
		}

		var body internal.SaleCommandAckRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, malformedBodyErrMessage)
			return
		}

		command, err := c.saleCommands.Acknowledge(r.Context(), orgID, domain.ID(httpserver.GetPathParam(r, "id")),
			domain.SaleCommandStatus(body.Status), body.Error)
		if err != nil {
			replyWithServiceError(w, err, ackErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.FromSaleCommand(command))
	}
}

func (c *TerminalController) getSaleCommand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := requireOrganization(w, r)
		if !ok {
			return
		}

		command, err := c.saleCommands.Get(r.Context(), orgID, domain.ID(httpserver.GetPathParam(r, "id")))
		if err != nil {
			replyWithServiceError(w, err, saleCommandErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.FromSaleCommand(command))
	}
}

func requestedBy(r *http.Request) string {
	if userID := r.Header.Get(httpserver.UserHeader); userID != "" {
		return "user:" + userID
	}
	return ""
}
