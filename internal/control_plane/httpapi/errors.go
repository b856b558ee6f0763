package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"posbridge-server/internal/control_plane/domain"
	"posbridge-server/internal/control_plane/usecases"
	"posbridge-server/internal/infra/httpserver"
)

const (
	missingOrganizationErrMessage = "organization is required"
	malformedBodyErrMessage       = "malformed request body"
)

var _notFoundErrors = []error{
	usecases.ErrDeviceNotFound,
	usecases.ErrTaskNotFound,
	usecases.ErrOrderNotFound,
	usecases.ErrSaleCommandNotFound,
}

var _conflictErrors = []error{
	usecases.ErrDeviceDuplicated,
	usecases.ErrDeviceAlreadyLinked,
	usecases.ErrTaskConflict,
	usecases.ErrTaskFinalized,
	usecases.ErrInvalidTransition,
	usecases.ErrTaskAttemptsExhausted,
	usecases.ErrSaleCommandConflict,
	usecases.ErrSaleCommandFinalized,
}

var _badRequestErrors = []error{
	domain.ErrValidation,
	usecases.ErrOrderNotBillable,
	usecases.ErrUnsupportedCommand,
}

// replyWithServiceError maps usecase errors to status codes. Unknown errors
// are logged and answered with fallback; device communication errors keep
// the register's own message so operators can fix the device.
func replyWithServiceError(w http.ResponseWriter, err error, fallback string) {
	if commErr, ok := usecases.AsDeviceCommunicationError(err); ok {
		httpserver.ReplyWithError(w, http.StatusBadGateway, commErr.Message)
		return
	}

	switch {
	case isAny(err, _notFoundErrors):
		httpserver.ReplyWithError(w, http.StatusNotFound, err.Error())
	case isAny(err, _conflictErrors):
		httpserver.ReplyWithError(w, http.StatusConflict, err.Error())
	case isAny(err, _badRequestErrors):
		httpserver.ReplyWithError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error(fallback, slog.String("error", err.Error()))
		httpserver.ReplyWithError(w, http.StatusInternalServerError, fallback)
	}
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// organizationFrom reads the organization set by the upstream gateway.
func organizationFrom(r *http.Request) (domain.ID, bool) {
	orgID := domain.ID(r.Header.Get(httpserver.OrganizationHeader))
	return orgID, !orgID.IsEmpty()
}

func requireOrganization(w http.ResponseWriter, r *http.Request) (domain.ID, bool) {
	orgID, ok := organizationFrom(r)
	if !ok {
		httpserver.ReplyWithError(w, http.StatusForbidden, missingOrganizationErrMessage)
	}
	return orgID, ok
}

func paginationFrom(r *http.Request) (httpserver.PaginationParams, usecases.Pagination) {
	params := httpserver.ExtractPaginationParams(r)
	return params, usecases.Pagination{Limit: params.Limit, Offset: params.Offset()}
}
