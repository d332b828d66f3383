package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/repositories"
)

type EnforcementRepository struct {
	mock.Mock
}

func (r *EnforcementRepository) CreateEnforcementLogEntry(ctx context.Context, exec repositories.Executor,
	entry models.EnforcementLogEntry,
) error {
	args := r.Called(ctx, exec, entry)
	return args.Error(0)
}

func (r *EnforcementRepository) CreateGovernanceAlert(ctx context.Context, exec repositories.Executor,
	alert models.GovernanceAlert,
) error {
	args := r.Called(ctx, exec, alert)
	return args.Error(0)
}

func (r *EnforcementRepository) HasRecentGovernanceAlert(ctx context.Context, exec repositories.Executor,
	aiSystemId, source, message string, since time.Time,
) (bool, error) {
	args := r.Called(ctx, exec, aiSystemId, source, message, since)
	return args.Bool(0), args.Error(1)
}
