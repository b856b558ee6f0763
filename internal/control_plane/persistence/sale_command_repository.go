package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"posbridge-server/internal/control_plane/domain"
	"posbridge-server/internal/control_plane/persistence/internal"
	"posbridge-server/internal/control_plane/usecases"
	"posbridge-server/internal/infra/sql"
)

var liveSaleCommandStatuses = []string{
	string(domain.SaleCommandPending),
	string(domain.SaleCommandDelivered),
}

func NewSaleCommandRepository(orm sql.ORM) (*SimpleSaleCommandRepository, error) {
	err := orm.AutoMigrate(&internal.SaleCommand{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	if err := orm.Exec(internal.SaleCommandLiveOrderIndex).Error(); err != nil {
		return nil, fmt.Errorf("creating live order index: %w", err)
	}

	return &SimpleSaleCommandRepository{
		orm: orm,
	}, nil
}

var _ usecases.SaleCommandRepository = (*SimpleSaleCommandRepository)(nil)

type SimpleSaleCommandRepository struct {
	orm sql.ORM
}

func (s *SimpleSaleCommandRepository) Create(ctx context.Context, command domain.SaleCommand) error {
	entity, err := internal.FromSaleCommand(command)
	if err != nil {
		return err
	}

	err = s.orm.
		WithContext(ctx).
		Create(&entity).
		Error()

	if errors.Is(err, sql.ErrDuplicatedKey) {
		return usecases.ErrSaleCommandConflict
	}
	if err != nil {
		return fmt.Errorf("database insert: %w", err)
	}

	return nil
}

func (s *SimpleSaleCommandRepository) Get(ctx context.Context, orgID, id domain.ID) (domain.SaleCommand, error) {
	var entity internal.SaleCommand
	err := s.orm.
		WithContext(ctx).
		Where("id = ? AND organization_id = ?", id.String(), orgID.String()).
		First(&entity).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.SaleCommand{}, usecases.ErrSaleCommandNotFound
	}
	if err != nil {
		return domain.SaleCommand{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain()
}

// ExpireOverdue fails live commands past their deadline, with a message that
// tells whether a terminal ever picked them up.
func (s *SimpleSaleCommandRepository) ExpireOverdue(ctx context.Context, orgID domain.ID, now time.Time) (int, error) {
	now = now.UTC()
	sweeps := []struct {
		status  domain.SaleCommandStatus
		message string
	}{
		{domain.SaleCommandPending, domain.ExpiredBeforePickupMessage},
		{domain.SaleCommandDelivered, domain.ExpiredBeforeAckMessage},
	}

	expired := 0
	for _, sweep := range sweeps {
		tx := s.orm.
			WithContext(ctx).
			Model(&internal.SaleCommand{}).
			Where("organization_id = ? AND status = ? AND expires_at <= ?", orgID.String(), string(sweep.status), now).
			Updates(map[string]any{
				"status":        string(domain.SaleCommandFailed),
				"error_message": sweep.message,
				"finished_at":   now,
			})
		if err := tx.Error(); err != nil {
			return expired, fmt.Errorf("database update: %w", err)
		}
		expired += int(tx.RowsAffected())
	}

	return expired, nil
}

func (s *SimpleSaleCommandRepository) ClaimOldestPending(ctx context.Context, orgID domain.ID, now time.Time) (domain.SaleCommand, bool, error) {
	now = now.UTC()
	for {
		var candidates []internal.SaleCommand
		err := s.orm.
			WithContext(ctx).
			Where("organization_id = ? AND status = ? AND expires_at > ?",
				orgID.String(), string(domain.SaleCommandPending), now).
			Order("created_at ASC, id ASC").
			Limit(_claimCandidates).
			Find(&candidates).
			Error()
		if err != nil {
			return domain.SaleCommand{}, false, fmt.Errorf("database query: %w", err)
		}
		if len(candidates) == 0 {
			return domain.SaleCommand{}, false, nil
		}

		for _, candidate := range candidates {
			tx := s.orm.
				WithContext(ctx).
				Model(&internal.SaleCommand{}).
				Where("id = ? AND status = ?", candidate.ID, string(domain.SaleCommandPending)).
				Updates(map[string]any{
					"status":       string(domain.SaleCommandDelivered),
					"attempts":     candidate.Attempts + 1,
					"delivered_at": now,
				})
			if err := tx.Error(); err != nil {
				return domain.SaleCommand{}, false, fmt.Errorf("database update: %w", err)
			}
			if tx.RowsAffected() != 1 {
				continue
			}

			candidate.Status = string(domain.SaleCommandDelivered)
			candidate.Attempts++
			candidate.DeliveredAt = &now
			command, err := candidate.ToDomain()
			return command, err == nil, err
		}
	}
}

func (s *SimpleSaleCommandRepository) Finalize(
	ctx context.Context,
	orgID, id domain.ID,
	status domain.SaleCommandStatus,
	message string,
	now time.Time,
) (domain.SaleCommand, error) {
	now = now.UTC()
	tx := s.orm.
		WithContext(ctx).
		Model(&internal.SaleCommand{}).
		Where("id = ? AND organization_id = ? AND status IN ?", id.String(), orgID.String(), liveSaleCommandStatuses).
		Updates(map[string]any{
			"status":        string(status),
			"error_message": message,
			"finished_at":   now,
		})
	if err := tx.Error(); err != nil {
		return domain.SaleCommand{}, fmt.Errorf("database update: %w", err)
	}

	command, err := s.Get(ctx, orgID, id)
	if err != nil {
		return domain.SaleCommand{}, err
	}
	if tx.RowsAffected() == 0 {
		return domain.SaleCommand{}, usecases.ErrSaleCommandFinalized
	}

	return command, nil
}

// DeleteExpiredBefore removes commands whose deadline passed before cutoff,
// whatever their status.
func (s *SimpleSaleCommandRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int, error) {
	tx := s.orm.
		WithContext(ctx).
		Where("expires_at < ?", cutoff.UTC()).
		Delete(&internal.SaleCommand{})
	if err := tx.Error(); err != nil {
		return 0, fmt.Errorf("database delete: %w", err)
	}

	return int(tx.RowsAffected()), nil
}
