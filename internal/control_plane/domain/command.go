package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type CommandType string

const (
	CommandShiftStatus CommandType = "shift_status"
	CommandOpenShift   CommandType = "open_shift"
	CommandCloseShift  CommandType = "close_shift"
	CommandXReport     CommandType = "x_report"
	CommandSell        CommandType = "sell"
	CommandSyncOrder   CommandType = "sync_order"
)

// CommandPayload is implemented by one struct per CommandType.
type CommandPayload interface {
	CommandType() CommandType
	Validate() error
}

// Command is a tagged union: Type always equals Payload.CommandType().
type Command struct {
	Type    CommandType
	Payload CommandPayload
}

func NewCommand(payload CommandPayload) (Command, error) {
	if payload == nil {
		return Command{}, newValidationError("payload", "is required")
	}
	if err := payload.Validate(); err != nil {
		return Command{}, err
	}
	return Command{Type: payload.CommandType(), Payload: payload}, nil
}

var payloadFactories = map[CommandType]func() CommandPayload{
	CommandShiftStatus: func() CommandPayload { return &ShiftStatusPayload{} },
	CommandOpenShift:   func() CommandPayload { return &OpenShiftPayload{} },
	CommandCloseShift:  func() CommandPayload { return &CloseShiftPayload{} },
	CommandXReport:     func() CommandPayload { return &XReportPayload{} },
	CommandSell:        func() CommandPayload { return &SellPayload{} },
	CommandSyncOrder:   func() CommandPayload { return &SyncOrderPayload{} },
}

// DecodeCommand rejects unknown types, unknown payload fields and payloads
// that fail validation.
func DecodeCommand(commandType CommandType, raw json.RawMessage) (Command, error) {
	factory, ok := payloadFactories[commandType]
	if !ok {
		return Command{}, newValidationError("type", "unknown command type %q", commandType)
	}

	payload := factory()
	if len(bytes.TrimSpace(raw)) > 0 && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		decoder := json.NewDecoder(bytes.NewReader(raw))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(payload); err != nil {
			return Command{}, newValidationError("payload", "malformed %s payload: %v", commandType, err)
		}
	}

	return NewCommand(derefPayload(payload))
}

// payloads are stored by value so a Command is immutable once built
func derefPayload(p CommandPayload) CommandPayload {
	switch v := p.(type) {
	case *ShiftStatusPayload:
		return *v
	case *OpenShiftPayload:
		return *v
	case *CloseShiftPayload:
		return *v
	case *XReportPayload:
		return *v
	case *SellPayload:
		return *v
	case *SyncOrderPayload:
		return *v
	default:
		return p
	}
}

func (c Command) MarshalPayload() (json.RawMessage, error) {
	if c.Payload == nil {
		return json.RawMessage("{}"), nil
	}
	data, err := json.Marshal(c.Payload)
	if err != nil {
		return nil, fmt.Errorf("encoding %s payload: %w", c.Type, err)
	}
	return data, nil
}

type commandJSON struct {
	Type    CommandType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func (c Command) MarshalJSON() ([]byte, error) {
	payload, err := c.MarshalPayload()
	if err != nil {
		return nil, err
	}
	return json.Marshal(commandJSON{Type: c.Type, Payload: payload})
}

func (c *Command) UnmarshalJSON(data []byte) error {
	var raw commandJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, err := DecodeCommand(raw.Type, raw.Payload)
	if err != nil {
		return err
	}
	*c = decoded
	return nil
}

type Operator struct {
	Name  string `json:"name"`
	VATIN string `json:"vatin,omitempty"`
}

func (o *Operator) validate() error {
	if o == nil {
		return nil
	}
	if o.Name == "" {
		return newValidationError("operator.name", "is required")
	}
	if o.VATIN != "" && !vatinPattern.MatchString(o.VATIN) {
		return newValidationError("operator.vatin", "must contain 10 to 12 digits")
	}
	return nil
}

type ShiftStatusPayload struct{}

func (ShiftStatusPayload) CommandType() CommandType { return CommandShiftStatus }
func (ShiftStatusPayload) Validate() error          { return nil }

type OpenShiftPayload struct {
	Operator *Operator `json:"operator,omitempty"`
}

func (OpenShiftPayload) CommandType() CommandType { return CommandOpenShift }
func (p OpenShiftPayload) Validate() error        { return p.Operator.validate() }

type CloseShiftPayload struct {
	Operator *Operator `json:"operator,omitempty"`
}

func (CloseShiftPayload) CommandType() CommandType { return CommandCloseShift }
func (p CloseShiftPayload) Validate() error        { return p.Operator.validate() }

type XReportPayload struct {
	Operator *Operator `json:"operator,omitempty"`
}

func (XReportPayload) CommandType() CommandType { return CommandXReport }
func (p XReportPayload) Validate() error        { return p.Operator.validate() }

type PaymentType string

const (
	PaymentCash           PaymentType = "cash"
	PaymentElectronically PaymentType = "electronically"
)

type ReceiptItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
	Amount   float64 `json:"amount"`
	Tax      string  `json:"tax,omitempty"`
}

type Payment struct {
	Type PaymentType `json:"type"`
	Sum  float64     `json:"sum"`
}

type SellPayload struct {
	Operator  *Operator     `json:"operator,omitempty"`
	TaxSystem TaxSystem     `json:"taxSystem,omitempty"`
	Items     []ReceiptItem `json:"items"`
	Payments  []Payment     `json:"payments"`
	Test      bool          `json:"test,omitempty"`
}

func (SellPayload) CommandType() CommandType { return CommandSell }

func (p SellPayload) Validate() error {
	if err := p.Operator.validate(); err != nil {
		return err
	}
	if p.TaxSystem != "" && !validTaxSystems[p.TaxSystem] {
		return newValidationError("taxSystem", "unknown tax system %q", p.TaxSystem)
	}
	if len(p.Items) == 0 {
		return newValidationError("items", "at least one item is required")
	}
	for i, item := range p.Items {
		if item.Name == "" {
			return newValidationError(fmt.Sprintf("items[%d].name", i), "is required")
		}
		if item.Quantity <= 0 || item.Price < 0 {
			return newValidationError(fmt.Sprintf("items[%d]", i), "quantity must be positive and price not negative")
		}
	}
	if len(p.Payments) == 0 {
		return newValidationError("payments", "at least one payment is required")
	}
	for i, payment := range p.Payments {
		if payment.Type != PaymentCash && payment.Type != PaymentElectronically {
			return newValidationError(fmt.Sprintf("payments[%d].type", i), "unknown payment type %q", payment.Type)
		}
	}
	return nil
}

type SyncOrderPayload struct {
	OrderID ID `json:"orderId"`
}

func (SyncOrderPayload) CommandType() CommandType { return CommandSyncOrder }

func (p SyncOrderPayload) Validate() error {
	if p.OrderID.IsEmpty() {
		return newValidationError("orderId", "is required")
	}
	return nil
}
