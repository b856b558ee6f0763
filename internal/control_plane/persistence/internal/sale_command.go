package internal

import (
	"encoding/json"
	"fmt"
	"time"

	"posbridge-server/internal/control_plane/domain"

	"gorm.io/datatypes"
)

type SaleCommand struct {
	ID             string         `json:"id" gorm:"primaryKey"`
	OrganizationID string         `json:"organization_id" gorm:"index:idx_sale_commands_queue,priority:1"`
	OrderID        string         `json:"order_id"`
	RequestedBy    string         `json:"requested_by"`
	Order          datatypes.JSON `json:"order"`
	Status         string         `json:"status" gorm:"index:idx_sale_commands_queue,priority:2"`
	Attempts       int            `json:"attempts"`
	ErrorMessage   string         `json:"error_message"`
	CreatedAt      time.Time      `json:"created_at" gorm:"index:idx_sale_commands_queue,priority:3"`
	ExpiresAt      time.Time      `json:"expires_at" gorm:"index"`
	DeliveredAt    *time.Time     `json:"delivered_at,omitempty"`
	FinishedAt     *time.Time     `json:"finished_at,omitempty"`
}

func (SaleCommand) TableName() string {
	return "sale_commands"
}

// SaleCommandLiveOrderIndex allows a single live command per order.
const SaleCommandLiveOrderIndex = `CREATE UNIQUE INDEX IF NOT EXISTS ux_sale_commands_live_order
	ON sale_commands (organization_id, order_id) WHERE status IN ('pending', 'delivered')`

func FromSaleCommand(value domain.SaleCommand) (SaleCommand, error) {
	order, err := json.Marshal(value.Order)
	if err != nil {
		return SaleCommand{}, fmt.Errorf("encoding order snapshot: %w", err)
	}

	return SaleCommand{
		ID:             value.ID.String(),
		OrganizationID: value.OrganizationID.String(),
		OrderID:        value.OrderID.String(),
		RequestedBy:    value.RequestedBy,
		Order:          datatypes.JSON(order),
		Status:         string(value.Status),
		Attempts:       value.Attempts,
		ErrorMessage:   value.ErrorMessage,
		CreatedAt:      value.CreatedAt,
		ExpiresAt:      value.ExpiresAt,
		DeliveredAt:    value.DeliveredAt,
		FinishedAt:     value.FinishedAt,
	}, nil
}

func (c SaleCommand) ToDomain() (domain.SaleCommand, error) {
	var order domain.OrderSnapshot
	if len(c.Order) > 0 {
		if err := json.Unmarshal(c.Order, &order); err != nil {
			return domain.SaleCommand{}, fmt.Errorf("decoding order snapshot of %s: %w", c.ID, err)
		}
	}

	return domain.SaleCommand{
		ID:             domain.ID(c.ID),
		OrganizationID: domain.ID(c.OrganizationID),
		OrderID:        domain.ID(c.OrderID),
		RequestedBy:    c.RequestedBy,
		Order:          order,
		Status:         domain.SaleCommandStatus(c.Status),
		Attempts:       c.Attempts,
		ErrorMessage:   c.ErrorMessage,
		CreatedAt:      c.CreatedAt.UTC(),
		ExpiresAt:      c.ExpiresAt.UTC(),
		DeliveredAt:    utcPtr(c.DeliveredAt),
		FinishedAt:     utcPtr(c.FinishedAt),
	}, nil
}
