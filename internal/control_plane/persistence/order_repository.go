package persistence

import (
	"context"
	"errors"
	"fmt"

	"posbridge-server/internal/control_plane/domain"
	"posbridge-server/internal/control_plane/persistence/internal"
	"posbridge-server/internal/control_plane/usecases"
	"posbridge-server/internal/infra/sql"
)

func NewOrderRepository(orm sql.ORM) (*SimpleOrderRepository, error) {
	err := orm.AutoMigrate(&internal.Order{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleOrderRepository{
		orm: orm,
	}, nil
}

var _ usecases.OrderRepository = (*SimpleOrderRepository)(nil)

// SimpleOrderRepository reads orders owned by billing. Save exists for
// fixtures and local runs.
type SimpleOrderRepository struct {
	orm sql.ORM
}

func (s *SimpleOrderRepository) Get(ctx context.Context, orgID, id domain.ID) (domain.Order, error) {
	var entity internal.Order
	err := s.orm.
		WithContext(ctx).
		Where("id = ? AND organization_id = ?", id.String(), orgID.String()).
		First(&entity).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.Order{}, usecases.ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain()
}

func (s *SimpleOrderRepository) Save(ctx context.Context, order domain.Order) error {
	entity, err := internal.FromOrder(order)
	if err != nil {
		return err
	}

	if err := s.orm.WithContext(ctx).Save(&entity).Error(); err != nil {
		return fmt.Errorf("database save: %w", err)
	}

	return nil
}
