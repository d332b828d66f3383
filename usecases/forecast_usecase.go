package usecases

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/repositories"
	"github.com/modelproof/modelproof-backend/repositories/clock"
	"github.com/modelproof/modelproof-backend/usecases/executor_factory"
	"github.com/modelproof/modelproof-backend/usecases/forecast"
	"github.com/modelproof/modelproof-backend/utils"
)

const forecastMaxParallelMetrics = 3

type ForecastUsecase struct {
	executorFactory           executor_factory.ExecutorFactory
	telemetryRepository       repositories.TelemetryRepository
	predictiveAlertRepository repositories.PredictiveAlertRepository
	forecaster                forecast.Forecaster
	clock                     clock.Clock
	lookbackDays              int
}

func NewForecastUsecase(
	executorFactory executor_factory.ExecutorFactory,
	telemetryRepository repositories.TelemetryRepository,
	predictiveAlertRepository repositories.PredictiveAlertRepository,
	forecaster forecast.Forecaster,
	clk clock.Clock,
	lookbackDays int,
) ForecastUsecase {
	return ForecastUsecase{
		executorFactory:           executorFactory,
		telemetryRepository:       telemetryRepository,
		predictiveAlertRepository: predictiveAlertRepository,
		forecaster:                forecaster,
		clock:                     clk,
		lookbackDays:              lookbackDays,
	}
}

// Forecast fits a trend for every monitored metric of one AI system over the
// lookback window. Metrics are independent and fitted concurrently; metrics
// with too few samples simply produce no result.
func (uc ForecastUsecase) Forecast(ctx context.Context, aiSystemId string,
	lookbackDays int,
) ([]models.TrendResult, error) {
	tracer := utils.OpenTelemetryTracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "ForecastUsecase.Forecast")
	defer span.End()

	if lookbackDays <= 0 {
		lookbackDays = uc.lookbackDays
	}
	since := uc.clock.Now().Add(-time.Duration(lookbackDays) * 24 * time.Hour)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(forecastMaxParallelMetrics)

	var mu sync.Mutex
	var results []models.TrendResult

	for _, metric := range models.MonitoredMetrics {
		group.Go(func() error {
			samples, err := uc.telemetryRepository.ListMetricSamples(groupCtx,
				uc.executorFactory.NewExecutor(), aiSystemId, metric, since)
			if err != nil {
				return err
			}
			result := uc.forecaster.ForecastMetric(metric, samples)
			if result == nil {
				return nil
			}
			mu.Lock()
			results = append(results, *result)
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// GenerateAlertsForSystem forecasts every metric of one system and raises a
// predictive alert for each predicted threshold crossing. An existing open
// alert for the (system, metric) pair suppresses the new one.
func (uc ForecastUsecase) GenerateAlertsForSystem(ctx context.Context,
	system models.AISystem,
) error {
	results, err := uc.Forecast(ctx, system.Id, uc.lookbackDays)
	if err != nil {
		return err
	}

	exec := uc.executorFactory.NewExecutor()
	logger := utils.LoggerFromContext(ctx)

	for _, result := range results {
		if !result.WillCrossThreshold {
			continue
		}

		open, err := uc.predictiveAlertRepository.GetOpenAlert(ctx, exec, system.Id, result.Metric)
		if err != nil {
			return err
		}
		if open != nil {
			continue
		}

		err = uc.predictiveAlertRepository.CreatePredictiveAlert(ctx, exec, models.PredictiveAlert{
			Id:             uuid.NewString(),
			OrganizationId: system.OrganizationId,
			AISystemId:     system.Id,
			Metric:         result.Metric,
			Severity:       forecast.AlertSeverity(result, uc.clock.Now()),
			Trend:          result,
		})
		if err != nil {
			if errors.Is(err, models.ConflictError) {
				// another worker raised the same alert in the meantime
				continue
			}
			return err
		}
		logger.InfoContext(ctx, "predictive alert raised",
			"ai_system_id", system.Id, "metric", result.Metric.String(),
			"confidence", result.Confidence)
	}
	return nil
}

// DismissAlert closes an open predictive alert, allowing a future detection
// for the same (system, metric) pair to raise a fresh one.
func (uc ForecastUsecase) DismissAlert(ctx context.Context, alertId, dismissedBy string) error {
	return uc.predictiveAlertRepository.DismissPredictiveAlert(ctx,
		uc.executorFactory.NewExecutor(), alertId, dismissedBy)
}
