package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/modelproof/modelproof-backend/mocks"
	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/repositories/clock"
	"github.com/modelproof/modelproof-backend/usecases/forecast"
)

type ForecastUsecaseTestSuite struct {
	suite.Suite
	executorFactory           *mocks.ExecutorFactory
	executorMock              *mocks.Executor
	telemetryRepository       *mocks.TelemetryRepository
	predictiveAlertRepository *mocks.PredictiveAlertRepository

	now time.Time
}

func (suite *ForecastUsecaseTestSuite) SetupTest() {
	suite.executorMock = new(mocks.Executor)
	suite.executorFactory = new(mocks.ExecutorFactory)
	suite.telemetryRepository = new(mocks.TelemetryRepository)
	suite.predictiveAlertRepository = new(mocks.PredictiveAlertRepository)
	suite.now = time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	suite.executorFactory.On("NewExecutor").Return(suite.executorMock)
}

func (suite *ForecastUsecaseTestSuite) makeUsecase() ForecastUsecase {
	return NewForecastUsecase(
		suite.executorFactory,
		suite.telemetryRepository,
		suite.predictiveAlertRepository,
		forecast.NewForecaster(clock.NewMock(suite.now)),
		clock.NewMock(suite.now),
		14,
	)
}

// driftSamplesHeadingForThreshold climbs 0.01 per day towards the 0.15 drift
// threshold, last sample at now.
func (suite *ForecastUsecaseTestSuite) driftSamplesHeadingForThreshold() []models.MetricSample {
	values := []float64{0.09, 0.10, 0.11, 0.12, 0.13}
	samples := make([]models.MetricSample, len(values))
	start := suite.now.Add(-4 * 24 * time.Hour)
	for i, value := range values {
		samples[i] = models.MetricSample{
			Timestamp: start.Add(time.Duration(i) * 24 * time.Hour),
			Value:     value,
		}
	}
	return samples
}

func (suite *ForecastUsecaseTestSuite) mockSamples(drift []models.MetricSample) {
	suite.telemetryRepository.On("ListMetricSamples", mock.Anything, suite.executorMock,
		"sys-1", models.MetricDrift, mock.Anything).
		Return(drift, nil)
	for _, metric := range models.MonitoredMetrics {
		if metric == models.MetricDrift {
			continue
		}
		suite.telemetryRepository.On("ListMetricSamples", mock.Anything, suite.executorMock,
			"sys-1", metric, mock.Anything).
			Return([]models.MetricSample{}, nil)
	}
}

func (suite *ForecastUsecaseTestSuite) TestForecast_onlyMetricsWithEnoughSamplesProduceResults() {
	suite.mockSamples(suite.driftSamplesHeadingForThreshold())

	results, err := suite.makeUsecase().Forecast(context.Background(), "sys-1", 14)

	suite.NoError(err)
	if suite.Len(results, 1) {
		suite.Equal(models.MetricDrift, results[0].Metric)
		suite.True(results[0].WillCrossThreshold)
	}
}

func (suite *ForecastUsecaseTestSuite) TestGenerateAlertsForSystem_raisesAlert() {
	suite.mockSamples(suite.driftSamplesHeadingForThreshold())
	suite.predictiveAlertRepository.On("GetOpenAlert", mock.Anything, suite.executorMock,
		"sys-1", models.MetricDrift).
		Return((*models.PredictiveAlert)(nil), nil)
	suite.predictiveAlertRepository.On("CreatePredictiveAlert", mock.Anything, suite.executorMock,
		mock.MatchedBy(func(alert models.PredictiveAlert) bool {
			return alert.AISystemId == "sys-1" &&
				alert.Metric == models.MetricDrift &&
				alert.Trend.WillCrossThreshold
		})).
		Return(nil)

	err := suite.makeUsecase().GenerateAlertsForSystem(context.Background(), models.AISystem{
		Id:             "sys-1",
		OrganizationId: "org-1",
	})

	suite.NoError(err)
	suite.predictiveAlertRepository.AssertExpectations(suite.T())
}

func (suite *ForecastUsecaseTestSuite) TestGenerateAlertsForSystem_openAlertSuppressesNewOne() {
	suite.mockSamples(suite.driftSamplesHeadingForThreshold())
	suite.predictiveAlertRepository.On("GetOpenAlert", mock.Anything, suite.executorMock,
		"sys-1", models.MetricDrift).
		Return(&models.PredictiveAlert{Id: "alert-1", Metric: models.MetricDrift}, nil)

	err := suite.makeUsecase().GenerateAlertsForSystem(context.Background(), models.AISystem{
		Id:             "sys-1",
		OrganizationId: "org-1",
	})

	suite.NoError(err)
	suite.predictiveAlertRepository.AssertNotCalled(suite.T(), "CreatePredictiveAlert",
		mock.Anything, mock.Anything, mock.Anything)
}

func TestForecastUsecaseTestSuite(t *testing.T) {
	suite.Run(t, new(ForecastUsecaseTestSuite))
}
