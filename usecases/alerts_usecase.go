package usecases

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/modelproof/modelproof-backend/repositories"
	"github.com/modelproof/modelproof-backend/usecases/executor_factory"
	"github.com/modelproof/modelproof-backend/utils"
)

const (
	alertGenerationRetries    = 3
	alertGenerationRetryDelay = 500 * time.Millisecond
)

// AlertsUsecase runs the predictive monitoring batch over a whole tenant.
type AlertsUsecase struct {
	executorFactory    executor_factory.ExecutorFactory
	aiSystemRepository repositories.AISystemRepository
	forecastUsecase    ForecastUsecase
}

func NewAlertsUsecase(
	executorFactory executor_factory.ExecutorFactory,
	aiSystemRepository repositories.AISystemRepository,
	forecastUsecase ForecastUsecase,
) AlertsUsecase {
	return AlertsUsecase{
		executorFactory:    executorFactory,
		aiSystemRepository: aiSystemRepository,
		forecastUsecase:    forecastUsecase,
	}
}

// GenerateAlertsForOrganization forecasts every AI system of the tenant. A
// failing system is retried a few times for transient store errors, then
// logged and skipped: one broken system must not starve the rest of the batch.
func (uc AlertsUsecase) GenerateAlertsForOrganization(ctx context.Context, organizationId string) error {
	logger := utils.LoggerFromContext(ctx)

	systems, err := uc.aiSystemRepository.ListAISystemsOfOrganization(ctx,
		uc.executorFactory.NewExecutor(), organizationId)
	if err != nil {
		return err
	}

	for _, system := range systems {
		err := retry.Do(
			func() error {
				return uc.forecastUsecase.GenerateAlertsForSystem(ctx, system)
			},
			retry.Context(ctx),
			retry.Attempts(alertGenerationRetries),
			retry.Delay(alertGenerationRetryDelay),
			retry.LastErrorOnly(true),
		)
		if err != nil {
			logger.ErrorContext(ctx, "predictive alert generation failed for system",
				"organization_id", organizationId, "ai_system_id", system.Id,
				"error", err.Error())
		}
	}
	return nil
}
