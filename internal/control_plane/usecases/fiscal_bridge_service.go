package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"posbridge-server/internal/control_plane/domain"
)

func NewFiscalBridgeService(
	devices DeviceService,
	client FiscalDeviceClient,
	publisher DeviceEventPublisher,
) *SimpleFiscalBridgeService {
	return &SimpleFiscalBridgeService{
		devices:   devices,
		client:    client,
		publisher: publisher,
	}
}

var _ FiscalBridgeService = (*SimpleFiscalBridgeService)(nil)

type SimpleFiscalBridgeService struct {
	devices   DeviceService
	client    FiscalDeviceClient
	publisher DeviceEventPublisher
}

func (s *SimpleFiscalBridgeService) GetShiftStatus(ctx context.Context, orgID, deviceID domain.ID) (BridgeResult, error) {
	return s.run(ctx, orgID, deviceID, domain.ShiftStatusPayload{})
}

func (s *SimpleFiscalBridgeService) OpenShift(ctx context.Context, orgID, deviceID domain.ID, operator *domain.Operator) (BridgeResult, error) {
	return s.runWithOperator(ctx, orgID, deviceID, operator, func(op *domain.Operator) domain.CommandPayload {
		return domain.OpenShiftPayload{Operator: op}
	})
}

func (s *SimpleFiscalBridgeService) CloseShift(ctx context.Context, orgID, deviceID domain.ID, operator *domain.Operator) (BridgeResult, error) {
	return s.runWithOperator(ctx, orgID, deviceID, operator, func(op *domain.Operator) domain.CommandPayload {
		return domain.CloseShiftPayload{Operator: op}
	})
}

func (s *SimpleFiscalBridgeService) SendXReport(ctx context.Context, orgID, deviceID domain.ID, operator *domain.Operator) (BridgeResult, error) {
	return s.runWithOperator(ctx, orgID, deviceID, operator, func(op *domain.Operator) domain.CommandPayload {
		return domain.XReportPayload{Operator: op}
	})
}

// SellTestReceipt prints a one ruble non fiscal receipt, used to check the
// register end to end.
func (s *SimpleFiscalBridgeService) SellTestReceipt(ctx context.Context, orgID, deviceID domain.ID) (BridgeResult, error) {
	device, err := s.devices.GetDevice(ctx, deviceID, orgID)
	if err != nil {
		return BridgeResult{}, err
	}

	payload := domain.SellPayload{
		Operator:  defaultOperator(device, nil),
		TaxSystem: device.TaxSystem,
		Items: []domain.ReceiptItem{
			{Name: "Test item", Price: 1, Quantity: 1, Amount: 1, Tax: "none"},
		},
		Payments: []domain.Payment{{Type: domain.PaymentCash, Sum: 1}},
		Test:     true,
	}
	command, err := domain.NewCommand(payload)
	if err != nil {
		return BridgeResult{}, err
	}

	return s.execute(ctx, device, command)
}

func (s *SimpleFiscalBridgeService) Execute(ctx context.Context, orgID, deviceID domain.ID, command domain.Command) (BridgeResult, error) {
	device, err := s.devices.GetDevice(ctx, deviceID, orgID)
	if err != nil {
		return BridgeResult{}, err
	}
	return s.execute(ctx, device, command)
}

func (s *SimpleFiscalBridgeService) runWithOperator(
	ctx context.Context,
	orgID, deviceID domain.ID,
	operator *domain.Operator,
	build func(*domain.Operator) domain.CommandPayload,
) (BridgeResult, error) {
	device, err := s.devices.GetDevice(ctx, deviceID, orgID)
	if err != nil {
		return BridgeResult{}, err
	}

	command, err := domain.NewCommand(build(defaultOperator(device, operator)))
	if err != nil {
		return BridgeResult{}, err
	}
	return s.execute(ctx, device, command)
}

func (s *SimpleFiscalBridgeService) run(ctx context.Context, orgID, deviceID domain.ID, payload domain.CommandPayload) (BridgeResult, error) {
	command, err := domain.NewCommand(payload)
	if err != nil {
		return BridgeResult{}, err
	}
	return s.Execute(ctx, orgID, deviceID, command)
}

func (s *SimpleFiscalBridgeService) execute(ctx context.Context, device domain.Device, command domain.Command) (BridgeResult, error) {
	if device.Kind != domain.DeviceKindLANRegister {
		return BridgeResult{}, fmt.Errorf("%w: %s devices are not reachable over LAN", ErrUnsupportedCommand, device.Kind)
	}
	if command.Type == domain.CommandSyncOrder {
		return BridgeResult{}, fmt.Errorf("%w: %s", ErrUnsupportedCommand, command.Type)
	}

	response, err := s.client.Execute(ctx, device, command)
	countBridgeCall(ctx, string(command.Type), err == nil)
	if err != nil {
		s.recordHealth(ctx, device.ID, domain.ErrorReport(err.Error()))
		s.publishOutcome(ctx, device, command, response.RequestID, "error", err.Error())

		var commErr *DeviceCommunicationError
		if errors.As(err, &commErr) {
			return BridgeResult{}, commErr
		}
		return BridgeResult{}, &DeviceCommunicationError{DeviceID: device.ID, Message: err.Error(), Err: err}
	}

	shift := ExtractShiftState(response.Body)
	if shift == nil {
		shift = InferShiftState(command.Type)
	}
	updated := s.recordHealth(ctx, device.ID, domain.OnlineReport(shift))
	s.publishOutcome(ctx, device, command, response.RequestID, "done", "")

	result := BridgeResult{
		DeviceID:   device.ID,
		Command:    command.Type,
		RequestID:  response.RequestID,
		ShiftState: updated.ShiftState,
		Response:   response.Body,
	}
	if shift != nil {
		result.ShiftState = *shift
	}
	return result, nil
}

// health write failures never mask the outcome of the device call
func (s *SimpleFiscalBridgeService) recordHealth(ctx context.Context, deviceID domain.ID, report domain.HealthReport) domain.DeviceHealth {
	device, err := s.devices.RecordHealth(ctx, deviceID, report)
	if err != nil {
		slog.Error("recording device health",
			slog.String("device_id", deviceID.String()),
			slog.String("error", err.Error()))
		return domain.UnknownHealth()
	}
	return device.Health
}

func (s *SimpleFiscalBridgeService) publishOutcome(ctx context.Context, device domain.Device, command domain.Command, requestID, status, message string) {
	outcome := CommandOutcome{
		DeviceID:    device.ID,
		CommandID:   domain.ID(requestID),
		Channel:     domain.ChannelDirect,
		CommandType: command.Type,
		Status:      status,
		Message:     message,
		OccurredAt:  time.Now().UTC(),
	}
	if device.OrganizationID != nil {
		outcome.OrganizationID = *device.OrganizationID
	}
	if err := s.publisher.PublishCommandOutcome(ctx, outcome); err != nil {
		slog.Warn("publishing command outcome", slog.String("error", err.Error()))
	}
}

func defaultOperator(device domain.Device, operator *domain.Operator) *domain.Operator {
	if operator != nil {
		return operator
	}
	if device.OperatorName == "" {
		return nil
	}
	return &domain.Operator{Name: device.OperatorName, VATIN: device.OperatorVATIN}
}

// ExtractShiftState looks for the shift state in the places registers report
// it: shiftState, shift.state and result.shiftStatus.state.
func ExtractShiftState(body map[string]any) *domain.ShiftState {
	candidates := []any{
		body["shiftState"],
		nested(body, "shift", "state"),
		nested(body, "result", "shiftStatus", "state"),
	}
	for _, candidate := range candidates {
		raw, ok := candidate.(string)
		if !ok {
			continue
		}
		if state, ok := domain.ParseShiftState(raw); ok {
			return &state
		}
	}
	return nil
}

// InferShiftState is used when a successful response does not mention the shift.
func InferShiftState(commandType domain.CommandType) *domain.ShiftState {
	var state domain.ShiftState
	switch commandType {
	case domain.CommandOpenShift:
		state = domain.ShiftStateOpen
	case domain.CommandCloseShift:
		state = domain.ShiftStateClosed
	default:
		return nil
	}
	return &state
}

func nested(body map[string]any, path ...string) any {
	var current any = body
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = m[key]
	}
	return current
}
