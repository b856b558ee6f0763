package domain

import (
	"time"

	"posbridge-server/internal/infra/utils"
)

type SaleCommandStatus string

const (
	SaleCommandPending   SaleCommandStatus = "pending"
	SaleCommandDelivered SaleCommandStatus = "delivered"
	SaleCommandAccepted  SaleCommandStatus = "accepted"
	SaleCommandFailed    SaleCommandStatus = "failed"
)

const (
	DefaultSaleCommandTTL = 5 * time.Minute

	ExpiredBeforePickupMessage = "sale command expired before pickup by terminal"
	ExpiredBeforeAckMessage    = "sale command expired before terminal acknowledgment"
	UnknownTerminalError       = "unknown terminal error"
)

type SaleCommand struct {
	ID             ID
	OrganizationID ID
	OrderID        ID
	RequestedBy    string
	Order          OrderSnapshot
	Status         SaleCommandStatus
	Attempts       int
	ErrorMessage   string
	CreatedAt      time.Time
	ExpiresAt      time.Time
	DeliveredAt    *time.Time
	FinishedAt     *time.Time
}

// NewSaleCommand snapshots order at now. Orders without a positive quantity
// line are rejected.
func NewSaleCommand(order Order, requestedBy string, now time.Time, ttl time.Duration) (SaleCommand, error) {
	if len(order.BillableItems()) == 0 {
		return SaleCommand{}, ErrOrderNotBillable
	}
	if ttl <= 0 {
		ttl = DefaultSaleCommandTTL
	}

	return SaleCommand{
		ID:             ID(utils.GenerateUUID()),
		OrganizationID: order.OrganizationID,
		OrderID:        order.ID,
		RequestedBy:    requestedBy,
		Order:          order.Snapshot(),
		Status:         SaleCommandPending,
		CreatedAt:      now,
		ExpiresAt:      now.Add(ttl),
	}, nil
}

func (c SaleCommand) IsFinal() bool {
	return c.Status == SaleCommandAccepted || c.Status == SaleCommandFailed
}

// IsLive is true while a terminal may still pick up or acknowledge the command.
func (c SaleCommand) IsLive(now time.Time) bool {
	return !c.IsFinal() && now.Before(c.ExpiresAt)
}

// AckStatus validates an acknowledgment and returns the message to store.
func AckStatus(status SaleCommandStatus, message string) (string, error) {
	switch status {
	case SaleCommandAccepted:
		return "", nil
	case SaleCommandFailed:
		if message == "" {
			return UnknownTerminalError, nil
		}
		return message, nil
	default:
		return "", newValidationError("status", "must be accepted or failed")
	}
}
