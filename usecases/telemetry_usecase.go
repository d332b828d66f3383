package usecases

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/repositories"
	"github.com/modelproof/modelproof-backend/repositories/clock"
	"github.com/modelproof/modelproof-backend/usecases/evaluate_regulation"
	"github.com/modelproof/modelproof-backend/usecases/executor_factory"
	"github.com/modelproof/modelproof-backend/utils"
)

type regulationLister interface {
	ListActiveRegulations(ctx context.Context, exec repositories.Executor,
		at time.Time) ([]models.Regulation, error)
}

type actionDeriver interface {
	GenerateActions(ctx context.Context, violations []models.Violation) (
		map[string][]models.RequiredAction, error)
}

type TelemetryUsecase struct {
	executorFactory      executor_factory.ExecutorFactory
	transactionFactory   executor_factory.TransactionFactory
	aiSystemRepository   repositories.AISystemRepository
	regulationRepository regulationLister
	violationRepository  repositories.ViolationRepository
	telemetryRepository  repositories.TelemetryRepository
	actionUsecase        actionDeriver
	matcher              evaluate_regulation.Matcher
	clock                clock.Clock
}

func NewTelemetryUsecase(
	executorFactory executor_factory.ExecutorFactory,
	transactionFactory executor_factory.TransactionFactory,
	aiSystemRepository repositories.AISystemRepository,
	regulationRepository regulationLister,
	violationRepository repositories.ViolationRepository,
	telemetryRepository repositories.TelemetryRepository,
	actionUsecase actionDeriver,
	matcher evaluate_regulation.Matcher,
	clk clock.Clock,
) TelemetryUsecase {
	return TelemetryUsecase{
		executorFactory:      executorFactory,
		transactionFactory:   transactionFactory,
		aiSystemRepository:   aiSystemRepository,
		regulationRepository: regulationRepository,
		violationRepository:  violationRepository,
		telemetryRepository:  telemetryRepository,
		actionUsecase:        actionUsecase,
		matcher:              matcher,
		clock:                clk,
	}
}

// TelemetryEventInput is the raw ingestion payload. Metric and event type
// names are resolved to their closed enums here, at the boundary, and unknown
// values are rejected before anything reaches the evaluators.
type TelemetryEventInput struct {
	AISystemId string
	EventType  string
	Metric     string
	Value      float64
	Severity   string
	Timestamp  time.Time
}

func (input TelemetryEventInput) parse() (models.TelemetryEvent, error) {
	eventType, ok := models.EventTypeFrom(input.EventType)
	if !ok {
		return models.TelemetryEvent{}, errors.Wrapf(models.BadParameterError,
			"unknown event type %q", input.EventType)
	}
	metric, err := models.MetricKindFrom(input.Metric)
	if err != nil {
		return models.TelemetryEvent{}, errors.Wrapf(err, "metric %q", input.Metric)
	}

	return models.TelemetryEvent{
		Id:         uuid.NewString(),
		AISystemId: input.AISystemId,
		EventType:  eventType,
		Metric:     metric,
		Value:      input.Value,
		Severity:   models.SeverityFrom(input.Severity),
		Timestamp:  input.Timestamp,
	}, nil
}

// EvaluateTelemetry records one telemetry event and evaluates it against every
// active regulation applying to the emitting AI system. Confirmed violations
// are persisted, their remediation actions derived, and the violations
// returned.
func (uc TelemetryUsecase) EvaluateTelemetry(ctx context.Context,
	input TelemetryEventInput,
) ([]models.Violation, error) {
	tracer := utils.OpenTelemetryTracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "TelemetryUsecase.EvaluateTelemetry")
	defer span.End()

	event, err := input.parse()
	if err != nil {
		return nil, err
	}

	exec := uc.executorFactory.NewExecutor()

	system, err := uc.aiSystemRepository.GetAISystemById(ctx, exec, event.AISystemId)
	if err != nil {
		return nil, err
	}

	event, err = uc.telemetryRepository.CreateTelemetryEvent(ctx, exec, event)
	if err != nil {
		return nil, err
	}

	regulations, err := uc.regulationRepository.ListActiveRegulations(ctx, exec, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	violations := uc.matcher.MatchEvent(system, event, regulations)
	if len(violations) == 0 {
		return nil, nil
	}

	violations, err = executor_factory.TransactionReturnValue(ctx, uc.transactionFactory,
		func(tx repositories.Transaction) ([]models.Violation, error) {
			for i := range violations {
				violations[i].Id = uuid.NewString()
				if err := uc.violationRepository.CreateViolation(ctx, tx, violations[i]); err != nil {
					return nil, err
				}
			}
			return violations, nil
		})
	if err != nil {
		return nil, err
	}

	if _, err := uc.actionUsecase.GenerateActions(ctx, violations); err != nil {
		return nil, err
	}

	utils.LoggerFromContext(ctx).InfoContext(ctx, "telemetry event produced violations",
		"ai_system_id", system.Id, "event_type", string(event.EventType),
		"violations", len(violations))
	return violations, nil
}

// ResolveViolation sets the resolution fields of a violation exactly once.
func (uc TelemetryUsecase) ResolveViolation(ctx context.Context, violationId, resolvedBy string) error {
	return uc.violationRepository.ResolveViolation(ctx, uc.executorFactory.NewExecutor(),
		violationId, resolvedBy)
}
