package usecases

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/pure_utils"
	"github.com/modelproof/modelproof-backend/repositories"
	"github.com/modelproof/modelproof-backend/usecases/executor_factory"
)

type regulationWriter interface {
	CreateRegulation(ctx context.Context, exec repositories.Executor,
		input models.CreateRegulationInput, newRegulationId string) error
}

type rollbackPolicyWriter interface {
	CreateRollbackPolicy(ctx context.Context, exec repositories.Executor,
		policy models.RollbackPolicy) error
}

// GovernanceUsecase owns the admin writes of the reference data: regulations,
// tenant policies and rollback policies. Inputs are validated here, at write
// time, so the evaluators downstream never see malformed configuration.
type GovernanceUsecase struct {
	executorFactory      executor_factory.ExecutorFactory
	regulationRepository regulationWriter
	policyRepository     repositories.PolicyRepository
	rollbackRepository   rollbackPolicyWriter
	validate             *validator.Validate
}

func NewGovernanceUsecase(
	executorFactory executor_factory.ExecutorFactory,
	regulationRepository regulationWriter,
	policyRepository repositories.PolicyRepository,
	rollbackRepository rollbackPolicyWriter,
) GovernanceUsecase {
	return GovernanceUsecase{
		executorFactory:      executorFactory,
		regulationRepository: regulationRepository,
		policyRepository:     policyRepository,
		rollbackRepository:   rollbackRepository,
		validate:             validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (uc GovernanceUsecase) CreateRegulation(ctx context.Context,
	input models.CreateRegulationInput,
) (string, error) {
	if err := uc.validate.Struct(input); err != nil {
		return "", errors.Wrap(models.BadParameterError, err.Error())
	}
	for _, eventType := range input.EventTypes {
		if _, ok := models.EventTypeFrom(eventType); !ok {
			return "", errors.Wrapf(models.BadParameterError, "unknown event type %q", eventType)
		}
	}

	newRegulationId := uuid.NewString()
	err := uc.regulationRepository.CreateRegulation(ctx, uc.executorFactory.NewExecutor(),
		input, newRegulationId)
	if err != nil {
		return "", err
	}
	return newRegulationId, nil
}

func (uc GovernanceUsecase) CreatePolicy(ctx context.Context,
	input models.CreatePolicyInput,
) (models.Policy, error) {
	if err := uc.validate.Struct(input); err != nil {
		return models.Policy{}, errors.Wrap(models.BadParameterError, err.Error())
	}

	policy := models.Policy{
		Id:             uuid.NewString(),
		OrganizationId: input.OrganizationId,
		Name:           input.Name,
		Type:           models.PolicyTypeFrom(input.Type),
		Scope:          models.PolicyScopeFrom(input.Scope),
		ScopeFilter:    input.ScopeFilter,
		Conditions: models.PolicyConditions{
			RequireCertification: input.RequireCertification,
		},
		Active: true,
	}
	if input.MinRiskLevel != nil {
		policy.Conditions.MinRiskLevel = pure_utils.Ptr(models.RiskLevelFrom(*input.MinRiskLevel))
	}
	if input.MaxRiskLevel != nil {
		policy.Conditions.MaxRiskLevel = pure_utils.Ptr(models.RiskLevelFrom(*input.MaxRiskLevel))
	}
	policy.Enforcement.Actions = pure_utils.Map(input.EnforcementActions,
		func(action string) models.EnforcementAction { return models.EnforcementAction(action) })
	if policy.Type == models.PolicyApprovalRequired {
		policy.Enforcement.Approval = &models.ApprovalWorkflow{
			ApproverRoles:            input.ApproverRoles,
			AllRequired:              input.ApprovalAllRequired,
			EscalationTimeoutMinutes: input.EscalationTimeoutMinutes,
		}
	}

	err := uc.policyRepository.CreatePolicy(ctx, uc.executorFactory.NewExecutor(), policy)
	if err != nil {
		return models.Policy{}, err
	}
	return policy, nil
}

// CreateRollbackPolicy writes the per-system rollback configuration. Trigger
// severities are resolved here so the rollback controller only ever reads
// well-formed rules.
func (uc GovernanceUsecase) CreateRollbackPolicy(ctx context.Context,
	input models.CreateRollbackPolicyInput,
) (string, error) {
	if err := uc.validate.Struct(input); err != nil {
		return "", errors.Wrap(models.BadParameterError, err.Error())
	}

	triggers, err := pure_utils.MapErr(input.Triggers,
		func(rule models.RollbackTriggerRuleInput) (models.RollbackTriggerRule, error) {
			if rule.Severity != "*" && models.SeverityFrom(rule.Severity) == models.UnknownSeverity {
				return models.RollbackTriggerRule{}, errors.Wrapf(models.BadParameterError,
					"unknown trigger severity %q", rule.Severity)
			}
			return models.RollbackTriggerRule{
				ViolationType: rule.ViolationType,
				Severity:      rule.Severity,
			}, nil
		})
	if err != nil {
		return "", err
	}

	policy := models.RollbackPolicy{
		Id:                     uuid.NewString(),
		OrganizationId:         input.OrganizationId,
		AISystemId:             input.AISystemId,
		Enabled:                input.Enabled,
		Triggers:               triggers,
		AutoRollbackOnCritical: input.AutoRollbackOnCritical,
		CooldownMinutes:        pure_utils.PtrValueOrDefault(input.CooldownMinutes, 60),
		MaxAutomatedPerDay:     pure_utils.PtrValueOrDefault(input.MaxAutomatedPerDay, 3),
		RequireApproval:        input.RequireApproval,
		ApproverRoles:          input.ApproverRoles,
	}

	if err := uc.rollbackRepository.CreateRollbackPolicy(ctx, uc.executorFactory.NewExecutor(),
		policy); err != nil {
		return "", err
	}
	return policy.Id, nil
}

func (uc GovernanceUsecase) SetPolicyActive(ctx context.Context, policyId string, active bool) error {
	return uc.policyRepository.SetPolicyActive(ctx, uc.executorFactory.NewExecutor(),
		policyId, active)
}

func (uc GovernanceUsecase) DeletePolicy(ctx context.Context, policyId string) error {
	return uc.policyRepository.SoftDeletePolicy(ctx, uc.executorFactory.NewExecutor(), policyId)
}
