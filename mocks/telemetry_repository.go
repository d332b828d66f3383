package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/repositories"
)

type TelemetryRepository struct {
	mock.Mock
}

func (r *TelemetryRepository) CreateTelemetryEvent(ctx context.Context, exec repositories.Executor,
	event models.TelemetryEvent,
) (models.TelemetryEvent, error) {
	args := r.Called(ctx, exec, event)
	return args.Get(0).(models.TelemetryEvent), args.Error(1)
}

func (r *TelemetryRepository) ListMetricSamples(ctx context.Context, exec repositories.Executor,
	aiSystemId string, metric models.MetricKind, since time.Time,
) ([]models.MetricSample, error) {
	args := r.Called(ctx, exec, aiSystemId, metric, since)
	return args.Get(0).([]models.MetricSample), args.Error(1)
}
