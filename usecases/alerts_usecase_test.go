package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/modelproof/modelproof-backend/mocks"
	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/repositories/clock"
	"github.com/modelproof/modelproof-backend/usecases/forecast"
)

type AlertsUsecaseTestSuite struct {
	suite.Suite
	executorFactory           *mocks.ExecutorFactory
	executorMock              *mocks.Executor
	aiSystemRepository        *mocks.AISystemRepository
	telemetryRepository       *mocks.TelemetryRepository
	predictiveAlertRepository *mocks.PredictiveAlertRepository

	now time.Time
}

func (suite *AlertsUsecaseTestSuite) SetupTest() {
	suite.executorMock = new(mocks.Executor)
	suite.executorFactory = new(mocks.ExecutorFactory)
	suite.aiSystemRepository = new(mocks.AISystemRepository)
	suite.telemetryRepository = new(mocks.TelemetryRepository)
	suite.predictiveAlertRepository = new(mocks.PredictiveAlertRepository)
	suite.now = time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	suite.executorFactory.On("NewExecutor").Return(suite.executorMock)
}

func (suite *AlertsUsecaseTestSuite) makeUsecase() AlertsUsecase {
	forecastUsecase := NewForecastUsecase(
		suite.executorFactory,
		suite.telemetryRepository,
		suite.predictiveAlertRepository,
		forecast.NewForecaster(clock.NewMock(suite.now)),
		clock.NewMock(suite.now),
		14,
	)
	return NewAlertsUsecase(suite.executorFactory, suite.aiSystemRepository, forecastUsecase)
}

func (suite *AlertsUsecaseTestSuite) TestGenerateAlertsForOrganization_brokenSystemDoesNotStopTheBatch() {
	suite.aiSystemRepository.On("ListAISystemsOfOrganization", mock.Anything, suite.executorMock, "org-1").
		Return([]models.AISystem{
			{Id: "sys-broken", OrganizationId: "org-1"},
			{Id: "sys-healthy", OrganizationId: "org-1"},
		}, nil)

	suite.telemetryRepository.On("ListMetricSamples", mock.Anything, suite.executorMock,
		"sys-broken", mock.Anything, mock.Anything).
		Return([]models.MetricSample{}, errors.New("connection reset"))
	suite.telemetryRepository.On("ListMetricSamples", mock.Anything, suite.executorMock,
		"sys-healthy", mock.Anything, mock.Anything).
		Return([]models.MetricSample{}, nil)

	err := suite.makeUsecase().GenerateAlertsForOrganization(context.Background(), "org-1")

	suite.NoError(err)
	suite.telemetryRepository.AssertCalled(suite.T(), "ListMetricSamples",
		mock.Anything, suite.executorMock, "sys-healthy", mock.Anything, mock.Anything)
}

func TestAlertsUsecaseTestSuite(t *testing.T) {
	suite.Run(t, new(AlertsUsecaseTestSuite))
}
