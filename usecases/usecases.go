package usecases

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/modelproof/modelproof-backend/infra"
	"github.com/modelproof/modelproof-backend/repositories"
	"github.com/modelproof/modelproof-backend/repositories/clock"
	"github.com/modelproof/modelproof-backend/usecases/evaluate_regulation"
	"github.com/modelproof/modelproof-backend/usecases/executor_factory"
	"github.com/modelproof/modelproof-backend/usecases/forecast"
	"github.com/modelproof/modelproof-backend/usecases/policy_eval"
	"github.com/modelproof/modelproof-backend/usecases/remediation"
	"github.com/modelproof/modelproof-backend/usecases/rollback"
)

// Usecases wires the repositories into the application services. One instance
// is built at startup and shared; all fields are safe for concurrent use.
type Usecases struct {
	executorGetter repositories.ExecutorGetter
	clock          clock.Clock
	monitoring     infra.MonitoringConfig

	aiSystemRepository        repositories.AISystemRepository
	regulationRepository      *repositories.CachedRegulationRepository
	policyRepository          repositories.PolicyRepository
	violationRepository       repositories.ViolationRepository
	requiredActionRepository  repositories.RequiredActionRepository
	predictiveAlertRepository repositories.PredictiveAlertRepository
	telemetryRepository       repositories.TelemetryRepository
	deploymentRepository      repositories.DeploymentRepository
	rollbackRepository        repositories.RollbackRepository
	enforcementRepository     repositories.EnforcementRepository

	rollbackController *rollback.Controller
}

func NewUsecases(pool *pgxpool.Pool, crypter repositories.DescriptionCrypter,
	monitoring infra.MonitoringConfig,
) Usecases {
	executorGetter := repositories.NewExecutorGetter(pool)
	clk := clock.New()

	usecases := Usecases{
		executorGetter: executorGetter,
		clock:          clk,
		monitoring:     monitoring,

		aiSystemRepository: &repositories.AISystemRepositoryPostgresql{},
		regulationRepository: repositories.NewCachedRegulationRepository(
			&repositories.RegulationRepositoryPostgresql{}, monitoring.RegulationCacheTTL),
		policyRepository:          &repositories.PolicyRepositoryPostgresql{},
		violationRepository:       repositories.NewViolationRepository(crypter),
		requiredActionRepository:  &repositories.RequiredActionRepositoryPostgresql{},
		predictiveAlertRepository: &repositories.PredictiveAlertRepositoryPostgresql{},
		telemetryRepository:       &repositories.TelemetryRepositoryPostgresql{},
		deploymentRepository:      &repositories.DeploymentRepositoryPostgresql{},
		rollbackRepository:        &repositories.RollbackRepositoryPostgresql{},
		enforcementRepository:     &repositories.EnforcementRepositoryPostgresql{},
	}

	factory := usecases.NewExecutorFactory()
	usecases.rollbackController = rollback.NewController(
		factory,
		factory,
		usecases.rollbackRepository,
		usecases.deploymentRepository,
		clk,
	)
	return usecases
}

func (u Usecases) NewExecutorFactory() executor_factory.DbExecutorFactory {
	return executor_factory.NewDbExecutorFactory(u.executorGetter)
}

func (u Usecases) NewTelemetryUsecase() TelemetryUsecase {
	factory := u.NewExecutorFactory()
	return NewTelemetryUsecase(
		factory,
		factory,
		u.aiSystemRepository,
		u.regulationRepository,
		u.violationRepository,
		u.telemetryRepository,
		u.NewActionUsecase(),
		evaluate_regulation.NewMatcher(),
		u.clock,
	)
}

func (u Usecases) NewPolicyUsecase() PolicyUsecase {
	factory := u.NewExecutorFactory()
	return NewPolicyUsecase(
		factory,
		factory,
		u.aiSystemRepository,
		u.policyRepository,
		u.violationRepository,
		u.enforcementRepository,
		policy_eval.NewEvaluator(),
		u.rollbackController,
		u.clock,
		u.monitoring.AlertDedupWindow,
	)
}

func (u Usecases) NewActionUsecase() ActionUsecase {
	factory := u.NewExecutorFactory()
	return NewActionUsecase(
		factory,
		factory,
		u.requiredActionRepository,
		remediation.NewGenerator(),
	)
}

func (u Usecases) NewForecastUsecase() ForecastUsecase {
	return NewForecastUsecase(
		u.NewExecutorFactory(),
		u.telemetryRepository,
		u.predictiveAlertRepository,
		forecast.NewForecaster(u.clock),
		u.clock,
		u.monitoring.ForecastLookbackDays,
	)
}

func (u Usecases) NewAlertsUsecase() AlertsUsecase {
	return NewAlertsUsecase(
		u.NewExecutorFactory(),
		u.aiSystemRepository,
		u.NewForecastUsecase(),
	)
}

func (u Usecases) NewRollbackUsecase() RollbackUsecase {
	return NewRollbackUsecase(u.rollbackController)
}

func (u Usecases) NewGovernanceUsecase() GovernanceUsecase {
	return NewGovernanceUsecase(
		u.NewExecutorFactory(),
		u.regulationRepository,
		u.policyRepository,
		u.rollbackRepository,
	)
}

// ListOrganizationIds is used by the worker to schedule one periodic
// monitoring job per tenant.
func (u Usecases) ListOrganizationIds(ctx context.Context) ([]string, error) {
	return u.aiSystemRepository.ListOrganizationIds(ctx, u.executorGetter.GetExecutor())
}
