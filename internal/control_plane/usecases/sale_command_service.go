package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"posbridge-server/internal/control_plane/domain"
)

const _queueSaleCommands = "sale_commands"

type SaleCommandServiceConfig struct {
	TTL time.Duration
}

func NewSaleCommandService(
	repository SaleCommandRepository,
	orders OrderRepository,
	publisher DeviceEventPublisher,
	config SaleCommandServiceConfig,
) *SimpleSaleCommandService {
	ttl := config.TTL
	if ttl <= 0 {
		ttl = domain.DefaultSaleCommandTTL
	}
	return &SimpleSaleCommandService{
		repository: repository,
		orders:     orders,
		publisher:  publisher,
		ttl:        ttl,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

var _ SaleCommandService = &SimpleSaleCommandService{}

// SimpleSaleCommandService keeps no timers: expiry happens on the next
// enqueue or poll of the organization.
type SimpleSaleCommandService struct {
	repository SaleCommandRepository
	orders     OrderRepository
	publisher  DeviceEventPublisher
	ttl        time.Duration
	now        func() time.Time
}

func (s *SimpleSaleCommandService) Enqueue(ctx context.Context, orgID, orderID domain.ID, requestedBy string) (domain.SaleCommand, error) {
	order, err := s.orders.Get(ctx, orgID, orderID)
	if err != nil {
		return domain.SaleCommand{}, err
	}

	now := s.now()
	command, err := domain.NewSaleCommand(order, requestedBy, now, s.ttl)
	if err != nil {
		return domain.SaleCommand{}, err
	}

	// an expired command must not block a fresh one for the same order
	if err := s.sweep(ctx, orgID, now); err != nil {
		return domain.SaleCommand{}, err
	}

	if err := s.repository.Create(ctx, command); err != nil {
		return domain.SaleCommand{}, err
	}

	slog.Info("sale command enqueued",
		slog.String("sale_command_id", command.ID.String()),
		slog.String("order_id", orderID.String()),
		slog.String("requested_by", requestedBy))
	return command, nil
}

// PollPending hands the oldest pending command to the calling terminal, or
// nil when there is none.
func (s *SimpleSaleCommandService) PollPending(ctx context.Context, orgID domain.ID) (*domain.SaleCommand, error) {
	now := s.now()
	if err := s.sweep(ctx, orgID, now); err != nil {
		return nil, err
	}

	command, found, err := s.repository.ClaimOldestPending(ctx, orgID, now)
	if err != nil {
		return nil, fmt.Errorf("claiming sale command: %w", err)
	}
	if !found {
		return nil, nil
	}

	countClaim(ctx, _queueSaleCommands)
	return &command, nil
}

func (s *SimpleSaleCommandService) Acknowledge(
	ctx context.Context,
	orgID, id domain.ID,
	status domain.SaleCommandStatus,
	message string,
) (domain.SaleCommand, error) {
	stored, err := domain.AckStatus(status, message)
	if err != nil {
		return domain.SaleCommand{}, err
	}

	command, err := s.repository.Finalize(ctx, orgID, id, status, stored, s.now())
	if err != nil {
		return domain.SaleCommand{}, err
	}

	outcome := CommandOutcome{
		OrganizationID: orgID,
		CommandID:      command.ID,
		Channel:        domain.ChannelTerminal,
		CommandType:    domain.CommandSyncOrder,
		Status:         string(command.Status),
		Message:        command.ErrorMessage,
		OccurredAt:     s.now(),
	}
	if err := s.publisher.PublishCommandOutcome(ctx, outcome); err != nil {
		slog.Warn("publishing command outcome", slog.String("error", err.Error()))
	}

	return command, nil
}

func (s *SimpleSaleCommandService) Get(ctx context.Context, orgID, id domain.ID) (domain.SaleCommand, error) {
	return s.repository.Get(ctx, orgID, id)
}

func (s *SimpleSaleCommandService) sweep(ctx context.Context, orgID domain.ID, now time.Time) error {
	expired, err := s.repository.ExpireOverdue(ctx, orgID, now)
	if err != nil {
		return fmt.Errorf("expiring sale commands: %w", err)
	}
	if expired > 0 {
		countExpired(ctx, expired)
		slog.Info("sale commands expired",
			slog.String("organization_id", orgID.String()),
			slog.Int("count", expired))
	}
	return nil
}
