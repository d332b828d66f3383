package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/repositories"
)

type ViolationRepository struct {
	mock.Mock
}

func (r *ViolationRepository) CreateViolation(ctx context.Context, exec repositories.Executor,
	violation models.Violation,
) error {
	args := r.Called(ctx, exec, violation)
	return args.Error(0)
}

func (r *ViolationRepository) GetViolationById(ctx context.Context, exec repositories.Executor,
	violationId string,
) (models.Violation, error) {
	args := r.Called(ctx, exec, violationId)
	return args.Get(0).(models.Violation), args.Error(1)
}

func (r *ViolationRepository) ListViolationsOfAISystem(ctx context.Context, exec repositories.Executor,
	aiSystemId string,
) ([]models.Violation, error) {
	args := r.Called(ctx, exec, aiSystemId)
	return args.Get(0).([]models.Violation), args.Error(1)
}

func (r *ViolationRepository) ResolveViolation(ctx context.Context, exec repositories.Executor,
	violationId, resolvedBy string,
) error {
	args := r.Called(ctx, exec, violationId, resolvedBy)
	return args.Error(0)
}
