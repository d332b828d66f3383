package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/repositories"
)

type RegulationRepository struct {
	mock.Mock
}

func (r *RegulationRepository) GetRegulationById(ctx context.Context, exec repositories.Executor,
	regulationId string,
) (models.Regulation, error) {
	args := r.Called(ctx, exec, regulationId)
	return args.Get(0).(models.Regulation), args.Error(1)
}

func (r *RegulationRepository) ListActiveRegulations(ctx context.Context, exec repositories.Executor,
	at time.Time,
) ([]models.Regulation, error) {
	args := r.Called(ctx, exec, at)
	return args.Get(0).([]models.Regulation), args.Error(1)
}

func (r *RegulationRepository) CreateRegulation(ctx context.Context, exec repositories.Executor,
	input models.CreateRegulationInput, newRegulationId string,
) error {
	args := r.Called(ctx, exec, input, newRegulationId)
	return args.Error(0)
}
