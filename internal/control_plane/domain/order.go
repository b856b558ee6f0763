package domain

// Order is owned by the billing context; this subsystem only reads it.
type Order struct {
	ID             ID
	OrganizationID ID
	Status         string
	Total          float64
	Items          []OrderItem
}

type OrderItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"qty"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
}

// OrderSnapshot is the point-in-time copy a terminal acts on.
type OrderSnapshot struct {
	ID     ID          `json:"id"`
	Status string      `json:"status"`
	Total  float64     `json:"total"`
	Items  []OrderItem `json:"items"`
}

func (o Order) BillableItems() []OrderItem {
	result := make([]OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		if item.Quantity > 0 {
			result = append(result, item)
		}
	}
	return result
}

func (o Order) Snapshot() OrderSnapshot {
	items := make([]OrderItem, len(o.Items))
	copy(items, o.Items)
	return OrderSnapshot{
		ID:     o.ID,
		Status: o.Status,
		Total:  o.Total,
		Items:  items,
	}
}
