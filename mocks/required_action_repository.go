package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/repositories"
)

type RequiredActionRepository struct {
	mock.Mock
}

func (r *RequiredActionRepository) BatchInsertRequiredActions(ctx context.Context,
	exec repositories.Executor, actions []models.RequiredAction,
) error {
	args := r.Called(ctx, exec, actions)
	return args.Error(0)
}

func (r *RequiredActionRepository) ListActionsOfViolation(ctx context.Context,
	exec repositories.Executor, violationId string,
) ([]models.RequiredAction, error) {
	args := r.Called(ctx, exec, violationId)
	return args.Get(0).([]models.RequiredAction), args.Error(1)
}
