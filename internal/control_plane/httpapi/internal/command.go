package internal

import (
	"encoding/json"

	"posbridge-server/internal/control_plane/domain"
	"posbridge-server/internal/control_plane/usecases"
)

type OperatorRequest struct {
	Operator *domain.Operator `json:"operator,omitempty"`
}

type CommandRequest struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func (r CommandRequest) ToCommand() (domain.Command, error) {
	return domain.DecodeCommand(domain.CommandType(r.Type), r.Payload)
}

type DispatchResponse struct {
	Channel     string                 `json:"channel"`
	Result      *usecases.BridgeResult `json:"result,omitempty"`
	Task        *TaskResponse          `json:"task,omitempty"`
	SaleCommand *SaleCommandResponse   `json:"saleCommand,omitempty"`
}

func FromDispatchResult(result usecases.DispatchResult) DispatchResponse {
	response := DispatchResponse{
		Channel: string(result.Channel),
		Result:  result.Result,
	}
	if result.Task != nil {
		task := FromTask(*result.Task)
		response.Task = &task
	}
	if result.SaleCommand != nil {
		command := FromSaleCommand(*result.SaleCommand)
		response.SaleCommand = &command
	}
	return response
}
