package internal

import (
	"time"

	"posbridge-server/internal/control_plane/domain"
)

type SaleCommandCreateRequest struct {
	OrderID string `json:"orderId"`
}

type SaleCommandAckRequest struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type SaleCommandResponse struct {
	ID             string               `json:"id"`
	OrganizationID string               `json:"organizationId"`
	OrderID        string               `json:"orderId"`
	RequestedBy    string               `json:"requestedBy,omitempty"`
	Order          domain.OrderSnapshot `json:"order"`
	Status         string               `json:"status"`
	Attempts       int                  `json:"attempts"`
	Error          string               `json:"error,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
	ExpiresAt      time.Time            `json:"expiresAt"`
	DeliveredAt    *time.Time           `json:"deliveredAt"`
	FinishedAt     *time.Time           `json:"finishedAt"`
}

func FromSaleCommand(command domain.SaleCommand) SaleCommandResponse {
	return SaleCommandResponse{
		ID:             command.ID.String(),
		OrganizationID: command.OrganizationID.String(),
		OrderID:        command.OrderID.String(),
		RequestedBy:    command.RequestedBy,
		Order:          command.Order,
		Status:         string(command.Status),
		Attempts:       command.Attempts,
		Error:          command.ErrorMessage,
		CreatedAt:      command.CreatedAt,
		ExpiresAt:      command.ExpiresAt,
		DeliveredAt:    command.DeliveredAt,
		FinishedAt:     command.FinishedAt,
	}
}
