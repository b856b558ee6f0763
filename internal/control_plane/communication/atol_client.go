package communication

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"posbridge-server/internal/control_plane/communication/internal"
	"posbridge-server/internal/control_plane/domain"
	"posbridge-server/internal/control_plane/usecases"
	"posbridge-server/internal/infra/utils"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	_defaultRequestTimeout = 10 * time.Second
	_maxResponseBytes      = 1 << 20
)

var _terminalStatuses = map[string]bool{
	"ready": true,
	"done":  true,
	"error": true,
}

var ErrUnsupportedAtolCommand = errors.New("command not supported by the register")

type AtolClientConfig struct {
	RequestTimeout time.Duration
	Transport      http.RoundTripper
}

func NewAtolClient(config AtolClientConfig) *AtolClient {
	timeout := config.RequestTimeout
	if timeout <= 0 {
		timeout = _defaultRequestTimeout
	}
	transport := config.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &AtolClient{
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(transport),
		},
		timeout: timeout,
		newUUID: utils.GenerateUUID,
	}
}

var _ usecases.FiscalDeviceClient = (*AtolClient)(nil)

// AtolClient talks to the web server embedded in ATOL registers. A command
// is posted to /requests and its result read back from /requests/{id}
// unless the POST answer is already final.
type AtolClient struct {
	http    *http.Client
	timeout time.Duration
	newUUID func() string
}

func (c *AtolClient) Execute(ctx context.Context, device domain.Device, command domain.Command) (usecases.DeviceResponse, error) {
	requestID := c.newUUID()
	request, ok := internal.FromCommand(requestID, command)
	if !ok {
		return usecases.DeviceResponse{}, fmt.Errorf("%s: %w", command.Type, ErrUnsupportedAtolCommand)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(request)
	if err != nil {
		return usecases.DeviceResponse{}, fmt.Errorf("encoding request: %w", err)
	}

	status, posted, err := c.do(ctx, device, http.MethodPost, "/requests", body)
	if err != nil {
		return usecases.DeviceResponse{}, communicationError(device, 0, err.Error(), err)
	}
	if status < 200 || status >= 300 {
		return usecases.DeviceResponse{}, communicationError(device, status, describe(posted, "unexpected response"), nil)
	}

	requestID = assignedID(posted, requestID)

	result := posted
	if !isTerminal(posted) {
		result = c.fetchResult(ctx, device, requestID, posted)
	}

	if statusOf(result) == "error" {
		return usecases.DeviceResponse{}, communicationError(device, 0, describe(result, "device reported an error"), nil)
	}

	return usecases.DeviceResponse{RequestID: requestID, Body: result}, nil
}

// assignedID returns the id the register answered with, uuid first, and
// keeps ours when it answered with neither.
func assignedID(posted map[string]any, fallback string) string {
	for _, key := range []string{"uuid", "requestId"} {
		if id, ok := posted[key].(string); ok && id != "" {
			return id
		}
	}
	return fallback
}

// fetchResult falls back to the POST answer when the follow up GET fails.
func (c *AtolClient) fetchResult(ctx context.Context, device domain.Device, requestID string, fallback map[string]any) map[string]any {
	status, body, err := c.do(ctx, device, http.MethodGet, "/requests/"+url.PathEscape(requestID), nil)
	if err != nil {
		slog.Warn("reading register result",
			slog.String("device_id", device.ID.String()),
			slog.String("request_id", requestID),
			slog.String("error", err.Error()))
		return fallback
	}
	if status < 200 || status >= 300 {
		slog.Warn("reading register result",
			slog.String("device_id", device.ID.String()),
			slog.String("request_id", requestID),
			slog.Int("status", status))
		return fallback
	}
	return body
}

func (c *AtolClient) do(ctx context.Context, device domain.Device, method, path string, body []byte) (int, map[string]any, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, device.BaseURL()+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if device.HasCredentials() {
		req.SetBasicAuth(device.Username, device.Password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, _maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading response: %w", err)
	}

	return resp.StatusCode, decodeBody(raw), nil
}

// decodeBody treats anything that is not a JSON object as empty.
func decodeBody(raw []byte) map[string]any {
	result := map[string]any{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return result
	}
	if err := json.Unmarshal(raw, &result); err != nil || result == nil {
		return map[string]any{}
	}
	return result
}

func statusOf(body map[string]any) string {
	status, _ := body["status"].(string)
	return strings.ToLower(status)
}

func isTerminal(body map[string]any) bool {
	if _terminalStatuses[statusOf(body)] {
		return true
	}
	_, hasResult := body["result"].(map[string]any)
	return hasResult
}

// describe picks the most specific message the register sent back.
func describe(body map[string]any, fallback string) string {
	switch v := body["error"].(type) {
	case string:
		if v != "" {
			return v
		}
	case map[string]any:
		if description, ok := v["description"].(string); ok && description != "" {
			return description
		}
	}
	if message, ok := body["message"].(string); ok && message != "" {
		return message
	}
	if description, ok := body["description"].(string); ok && description != "" {
		return description
	}
	return fallback
}

func communicationError(device domain.Device, status int, message string, err error) *usecases.DeviceCommunicationError {
	return &usecases.DeviceCommunicationError{
		DeviceID:   device.ID,
		StatusCode: status,
		Message:    message,
		Err:        err,
	}
}
