package internal

import (
	"posbridge-server/internal/control_plane/domain"
)

// Command names understood by the register web server.
const (
	AtolGetShiftStatus = "getShiftStatus"
	AtolOpenShift      = "openShift"
	AtolCloseShift     = "closeShift"
	AtolReportX        = "reportX"
	AtolSell           = "sell"
)

type AtolOperator struct {
	Name  string `json:"name"`
	VATIN string `json:"vatin,omitempty"`
}

type AtolTax struct {
	Type string `json:"type"`
}

type AtolItem struct {
	Type     string  `json:"type"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
	Amount   float64 `json:"amount"`
	Tax      AtolTax `json:"tax"`
}

type AtolPayment struct {
	Type string  `json:"type"`
	Sum  float64 `json:"sum"`
}

// AtolRequest is the body posted to /requests. Params flatten into the top
// level object next to uuid and command.
type AtolRequest struct {
	UUID         string        `json:"uuid"`
	Command      string        `json:"command"`
	Operator     *AtolOperator `json:"operator,omitempty"`
	TaxationType string        `json:"taxationType,omitempty"`
	Items        []AtolItem    `json:"items,omitempty"`
	Payments     []AtolPayment `json:"payments,omitempty"`
	Test         bool          `json:"test,omitempty"`
}

// FromCommand maps a typed command onto the register request. ok is false
// for commands the register cannot run.
func FromCommand(uuid string, command domain.Command) (AtolRequest, bool) {
	request := AtolRequest{UUID: uuid}

	switch payload := command.Payload.(type) {
	case domain.ShiftStatusPayload:
		request.Command = AtolGetShiftStatus
	case domain.OpenShiftPayload:
		request.Command = AtolOpenShift
		request.Operator = fromOperator(payload.Operator)
	case domain.CloseShiftPayload:
		request.Command = AtolCloseShift
		request.Operator = fromOperator(payload.Operator)
	case domain.XReportPayload:
		request.Command = AtolReportX
		request.Operator = fromOperator(payload.Operator)
	case domain.SellPayload:
		request.Command = AtolSell
		request.Operator = fromOperator(payload.Operator)
		request.TaxationType = string(payload.TaxSystem)
		request.Test = payload.Test
		for _, item := range payload.Items {
			request.Items = append(request.Items, fromItem(item))
		}
		for _, payment := range payload.Payments {
			request.Payments = append(request.Payments, AtolPayment{Type: string(payment.Type), Sum: payment.Sum})
		}
	default:
		return AtolRequest{}, false
	}

	return request, true
}

func fromOperator(operator *domain.Operator) *AtolOperator {
	if operator == nil {
		return nil
	}
	return &AtolOperator{Name: operator.Name, VATIN: operator.VATIN}
}

func fromItem(item domain.ReceiptItem) AtolItem {
	tax := item.Tax
	if tax == "" {
		tax = "none"
	}
	amount := item.Amount
	if amount == 0 {
		amount = item.Price * item.Quantity
	}
	return AtolItem{
		Type:     "position",
		Name:     item.Name,
		Price:    item.Price,
		Quantity: item.Quantity,
		Amount:   amount,
		Tax:      AtolTax{Type: tax},
	}
}
