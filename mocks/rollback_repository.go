package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/repositories"
)

type RollbackRepository struct {
	mock.Mock
}

func (r *RollbackRepository) CreateRollbackExecution(ctx context.Context, exec repositories.Executor,
	execution models.RollbackExecution,
) error {
	args := r.Called(ctx, exec, execution)
	return args.Error(0)
}

func (r *RollbackRepository) GetRollbackExecutionById(ctx context.Context, exec repositories.Executor,
	rollbackId string,
) (models.RollbackExecution, error) {
	args := r.Called(ctx, exec, rollbackId)
	return args.Get(0).(models.RollbackExecution), args.Error(1)
}

func (r *RollbackRepository) UpdateRollbackStatus(ctx context.Context, exec repositories.Executor,
	rollbackId string, status models.RollbackStatus, update models.RollbackStatusUpdate,
) error {
	args := r.Called(ctx, exec, rollbackId, status, update)
	return args.Error(0)
}

func (r *RollbackRepository) GetLatestCompletedRollback(ctx context.Context, exec repositories.Executor,
	aiSystemId string,
) (*models.RollbackExecution, error) {
	args := r.Called(ctx, exec, aiSystemId)
	return args.Get(0).(*models.RollbackExecution), args.Error(1)
}

func (r *RollbackRepository) CountAutomatedRollbacksOfDay(ctx context.Context, exec repositories.Executor,
	aiSystemId string, day time.Time,
) (int, error) {
	args := r.Called(ctx, exec, aiSystemId, day)
	return args.Int(0), args.Error(1)
}

func (r *RollbackRepository) CreateRollbackPolicy(ctx context.Context, exec repositories.Executor,
	policy models.RollbackPolicy,
) error {
	args := r.Called(ctx, exec, policy)
	return args.Error(0)
}

func (r *RollbackRepository) GetRollbackPolicyForSystem(ctx context.Context, exec repositories.Executor,
	organizationId, aiSystemId string,
) (*models.RollbackPolicy, error) {
	args := r.Called(ctx, exec, organizationId, aiSystemId)
	return args.Get(0).(*models.RollbackPolicy), args.Error(1)
}
