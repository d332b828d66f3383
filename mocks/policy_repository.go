package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/repositories"
)

type PolicyRepository struct {
	mock.Mock
}

func (r *PolicyRepository) GetPolicyById(ctx context.Context, exec repositories.Executor,
	policyId string,
) (models.Policy, error) {
	args := r.Called(ctx, exec, policyId)
	return args.Get(0).(models.Policy), args.Error(1)
}

func (r *PolicyRepository) ListActivePoliciesOfOrganization(ctx context.Context, exec repositories.Executor,
	organizationId string,
) ([]models.Policy, error) {
	args := r.Called(ctx, exec, organizationId)
	return args.Get(0).([]models.Policy), args.Error(1)
}

func (r *PolicyRepository) CreatePolicy(ctx context.Context, exec repositories.Executor,
	policy models.Policy,
) error {
	args := r.Called(ctx, exec, policy)
	return args.Error(0)
}

func (r *PolicyRepository) SetPolicyActive(ctx context.Context, exec repositories.Executor,
	policyId string, active bool,
) error {
	args := r.Called(ctx, exec, policyId, active)
	return args.Error(0)
}

func (r *PolicyRepository) SoftDeletePolicy(ctx context.Context, exec repositories.Executor,
	policyId string,
) error {
	args := r.Called(ctx, exec, policyId)
	return args.Error(0)
}
