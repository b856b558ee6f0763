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

// a claim looks at a few candidates so that losing one race does not send
// the poller away empty handed
const _claimCandidates = 5

func NewAgentTaskRepository(orm sql.ORM) (*SimpleAgentTaskRepository, error) {
	err := orm.AutoMigrate(&internal.AgentTask{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleAgentTaskRepository{
		orm: orm,
	}, nil
}

var _ usecases.AgentTaskRepository = (*SimpleAgentTaskRepository)(nil)

type SimpleAgentTaskRepository struct {
	orm sql.ORM
}

func (s *SimpleAgentTaskRepository) Create(ctx context.Context, task domain.AgentTask) error {
	entity, err := internal.FromAgentTask(task)
	if err != nil {
		return err
	}

	err = s.orm.
		WithContext(ctx).
		Create(&entity).
		Error()
	if err != nil {
		return fmt.Errorf("database insert: %w", err)
	}

	return nil
}

func (s *SimpleAgentTaskRepository) Get(ctx context.Context, id domain.ID) (domain.AgentTask, error) {
	var entity internal.AgentTask
	err := s.orm.
		WithContext(ctx).
		Where("id = ?", id.String()).
		First(&entity).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.AgentTask{}, usecases.ErrTaskNotFound
	}
	if err != nil {
		return domain.AgentTask{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain()
}

// ClaimNext walks the oldest queued tasks and flips the first one it wins
// with a conditional update on status.
func (s *SimpleAgentTaskRepository) ClaimNext(
	ctx context.Context,
	orgID, deviceID domain.ID,
	now time.Time,
	maxAttempts int,
) (domain.AgentTask, bool, error) {
	for {
		var candidates []internal.AgentTask
		query := s.orm.
			WithContext(ctx).
			Where("organization_id = ? AND device_id = ? AND status = ?",
				orgID.String(), deviceID.String(), string(domain.AgentTaskQueued))
		if maxAttempts > 0 {
			query = query.Where("attempts < ?", maxAttempts)
		}
		err := query.
			Order("created_at ASC, id ASC").
			Limit(_claimCandidates).
			Find(&candidates).
			Error()
		if err != nil {
			return domain.AgentTask{}, false, fmt.Errorf("database query: %w", err)
		}
		if len(candidates) == 0 {
			return domain.AgentTask{}, false, nil
		}

		for _, candidate := range candidates {
			task, err := candidate.ToDomain()
			if err != nil {
				return domain.AgentTask{}, false, err
			}

			task.Claim(now)
			won, err := s.compareAndSwap(ctx, task, domain.AgentTaskQueued)
			if err != nil {
				return domain.AgentTask{}, false, err
			}
			if won {
				return task, true, nil
			}
		}
		// every candidate was taken by someone else; look again
	}
}

func (s *SimpleAgentTaskRepository) Update(ctx context.Context, task domain.AgentTask, expected domain.AgentTaskStatus) error {
	won, err := s.compareAndSwap(ctx, task, expected)
	if err != nil {
		return err
	}
	if won {
		return nil
	}

	// tell a vanished task apart from a lost race
	if _, err := s.Get(ctx, task.ID); err != nil {
		return err
	}
	return usecases.ErrTaskConflict
}

func (s *SimpleAgentTaskRepository) FindByDevice(
	ctx context.Context,
	orgID, deviceID domain.ID,
	pagination usecases.Pagination,
) ([]domain.AgentTask, int, error) {
	var total int64
	err := s.orm.
		WithContext(ctx).
		Model(&internal.AgentTask{}).
		Where("organization_id = ? AND device_id = ?", orgID.String(), deviceID.String()).
		Count(&total).
		Error()
	if err != nil {
		return nil, 0, fmt.Errorf("count query: %w", err)
	}

	var entities []internal.AgentTask
	query := s.orm.
		WithContext(ctx).
		Where("organization_id = ? AND device_id = ?", orgID.String(), deviceID.String()).
		Order("created_at DESC, id DESC")
	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.Offset)
	}
	if err := query.Find(&entities).Error(); err != nil {
		return nil, 0, fmt.Errorf("database query: %w", err)
	}

	result := make([]domain.AgentTask, 0, len(entities))
	for _, entity := range entities {
		task, err := entity.ToDomain()
		if err != nil {
			return nil, 0, err
		}
		result = append(result, task)
	}

	return result, int(total), nil
}

func (s *SimpleAgentTaskRepository) compareAndSwap(ctx context.Context, task domain.AgentTask, expected domain.AgentTaskStatus) (bool, error) {
	entity, err := internal.FromAgentTask(task)
	if err != nil {
		return false, err
	}

	tx := s.orm.
		WithContext(ctx).
		Model(&internal.AgentTask{}).
		Where("id = ? AND status = ?", entity.ID, string(expected)).
		Updates(entity.StateColumns())
	if err := tx.Error(); err != nil {
		return false, fmt.Errorf("database update: %w", err)
	}

	return tx.RowsAffected() == 1, nil
}
