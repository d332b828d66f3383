package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/repositories"
)

type PredictiveAlertRepository struct {
	mock.Mock
}

func (r *PredictiveAlertRepository) GetOpenAlert(ctx context.Context, exec repositories.Executor,
	aiSystemId string, metric models.MetricKind,
) (*models.PredictiveAlert, error) {
	args := r.Called(ctx, exec, aiSystemId, metric)
	return args.Get(0).(*models.PredictiveAlert), args.Error(1)
}

func (r *PredictiveAlertRepository) CreatePredictiveAlert(ctx context.Context, exec repositories.Executor,
	alert models.PredictiveAlert,
) error {
	args := r.Called(ctx, exec, alert)
	return args.Error(0)
}

func (r *PredictiveAlertRepository) DismissPredictiveAlert(ctx context.Context, exec repositories.Executor,
	alertId, dismissedBy string,
) error {
	args := r.Called(ctx, exec, alertId, dismissedBy)
	return args.Error(0)
}
