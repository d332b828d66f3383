package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/repositories"
)

type AISystemRepository struct {
	mock.Mock
}

func (r *AISystemRepository) GetAISystemById(ctx context.Context, exec repositories.Executor,
	aiSystemId string,
) (models.AISystem, error) {
	args := r.Called(ctx, exec, aiSystemId)
	return args.Get(0).(models.AISystem), args.Error(1)
}

func (r *AISystemRepository) ListAISystemsOfOrganization(ctx context.Context, exec repositories.Executor,
	organizationId string,
) ([]models.AISystem, error) {
	args := r.Called(ctx, exec, organizationId)
	return args.Get(0).([]models.AISystem), args.Error(1)
}

func (r *AISystemRepository) ListOrganizationIds(ctx context.Context, exec repositories.Executor) ([]string, error) {
	args := r.Called(ctx, exec)
	return args.Get(0).([]string), args.Error(1)
}
