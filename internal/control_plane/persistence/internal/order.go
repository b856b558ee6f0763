package internal

import (
	"encoding/json"
	"fmt"

	"posbridge-server/internal/control_plane/domain"

	"gorm.io/datatypes"
)

// Order mirrors the billing table this service reads.
type Order struct {
	ID             string         `json:"id" gorm:"primaryKey"`
	OrganizationID string         `json:"organization_id" gorm:"index"`
	Status         string         `json:"status"`
	Total          float64        `json:"total"`
	Items          datatypes.JSON `json:"items"`
}

func (Order) TableName() string {
	return "orders"
}

func FromOrder(value domain.Order) (Order, error) {
	items, err := json.Marshal(value.Items)
	if err != nil {
		return Order{}, fmt.Errorf("encoding order items: %w", err)
	}

	return Order{
		ID:             value.ID.String(),
		OrganizationID: value.OrganizationID.String(),
		Status:         value.Status,
		Total:          value.Total,
		Items:          datatypes.JSON(items),
	}, nil
}

func (o Order) ToDomain() (domain.Order, error) {
	var items []domain.OrderItem
	if len(o.Items) > 0 {
		if err := json.Unmarshal(o.Items, &items); err != nil {
			return domain.Order{}, fmt.Errorf("decoding items of order %s: %w", o.ID, err)
		}
	}

	return domain.Order{
		ID:             domain.ID(o.ID),
		OrganizationID: domain.ID(o.OrganizationID),
		Status:         o.Status,
		Total:          o.Total,
		Items:          items,
	}, nil
}
