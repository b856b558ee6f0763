package driver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"posbridge-server/internal/infra/auth"
	"posbridge-server/internal/infra/httpserver"
)

type APIDriver struct {
	baseURL string
	client  *http.Client
}

func NewAPIDriver(baseURL string) *APIDriver {
	return &APIDriver{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Caller identifies who a request is made for. Empty fields are not sent.
type Caller struct {
	OrganizationID string
	UserID         string
	Bearer         string
}

// AgentToken signs a token the agent routes accept. An empty organization
// yields a multi-organization token.
func AgentToken(organizationID string) string {
	token, err := auth.SignJWT([]byte(AgentSecret), organizationID, "functional-agent", time.Hour)
	if err != nil {
		panic(err)
	}
	return token
}

func (d *APIDriver) do(method, path string, caller Caller, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		reader = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequest(method, fmt.Sprintf("%s%s", d.baseURL, path), reader)
	if err != nil {
		panic(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if caller.OrganizationID != "" {
		req.Header.Set(httpserver.OrganizationHeader, caller.OrganizationID)
	}
	if caller.UserID != "" {
		req.Header.Set(httpserver.UserHeader, caller.UserID)
	}
	if caller.Bearer != "" {
		req.Header.Set("Authorization", "Bearer "+caller.Bearer)
	}

	return d.client.Do(req)
}

func (d *APIDriver) CreateFiscalDevice(caller Caller, body map[string]any) (*http.Response, error) {
	return d.do(http.MethodPost, "/v1/fiscal-devices", caller, body)
}

func (d *APIDriver) GetShiftStatus(caller Caller, deviceID string) (*http.Response, error) {
	return d.do(http.MethodGet, fmt.Sprintf("/v1/fiscal-devices/%s/shift", deviceID), caller, nil)
}

func (d *APIDriver) OpenShift(caller Caller, deviceID string) (*http.Response, error) {
	return d.do(http.MethodPost, fmt.Sprintf("/v1/fiscal-devices/%s/shift/open", deviceID), caller, nil)
}

func (d *APIDriver) GetHealth(caller Caller, deviceID string) (*http.Response, error) {
	return d.do(http.MethodGet, fmt.Sprintf("/v1/fiscal-devices/%s/health", deviceID), caller, nil)
}

func (d *APIDriver) DispatchCommand(caller Caller, deviceID, commandType string) (*http.Response, error) {
	return d.do(http.MethodPost, fmt.Sprintf("/v1/fiscal-devices/%s/commands", deviceID), caller,
		map[string]any{"type": commandType})
}

func (d *APIDriver) ListDeviceTasks(caller Caller, deviceID string) (*http.Response, error) {
	return d.do(http.MethodGet, fmt.Sprintf("/v1/fiscal-devices/%s/tasks", deviceID), caller, nil)
}

func (d *APIDriver) FetchNextTask(caller Caller, organizationID, deviceID string) (*http.Response, error) {
	path := fmt.Sprintf("/tasks/next?fiscalDeviceId=%s", deviceID)
	if organizationID != "" {
		path += "&organizationId=" + organizationID
	}
	return d.do(http.MethodGet, path, caller, nil)
}

func (d *APIDriver) ReportTaskStatus(caller Caller, taskID string, body map[string]any) (*http.Response, error) {
	return d.do(http.MethodPost, fmt.Sprintf("/tasks/%s/status", taskID), caller, body)
}

func (d *APIDriver) RegisterTerminalToken(caller Caller, userID, deviceUUID, token string) (*http.Response, error) {
	return d.do(http.MethodPost, "/token", caller, map[string]any{
		"userId":     userID,
		"deviceUuid": deviceUUID,
		"token":      token,
	})
}

func (d *APIDriver) LinkTerminal(caller Caller, deviceID string) (*http.Response, error) {
	return d.do(http.MethodPost, "/devices/link", caller, map[string]any{"deviceId": deviceID})
}

func (d *APIDriver) EnqueueSaleCommand(caller Caller, orderID string) (*http.Response, error) {
	return d.do(http.MethodPost, "/sale-commands", caller, map[string]any{"orderId": orderID})
}

func (d *APIDriver) PollSaleCommand(caller Caller) (*http.Response, error) {
	return d.do(http.MethodGet, "/sale-commands/pending", caller, nil)
}

func (d *APIDriver) AcknowledgeSaleCommand(caller Caller, id, status, message string) (*http.Response, error) {
	body := map[string]any{"status": status}
	if message != "" {
		body["error"] = message
	}
	return d.do(http.MethodPost, fmt.Sprintf("/sale-commands/%s/ack", id), caller, body)
}

func (d *APIDriver) GetSaleCommand(caller Caller, id string) (*http.Response, error) {
	return d.do(http.MethodGet, fmt.Sprintf("/sale-commands/%s", id), caller, nil)
}
