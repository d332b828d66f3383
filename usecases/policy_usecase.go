package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/repositories"
	"github.com/modelproof/modelproof-backend/repositories/clock"
	"github.com/modelproof/modelproof-backend/usecases/executor_factory"
	"github.com/modelproof/modelproof-backend/usecases/policy_eval"
	"github.com/modelproof/modelproof-backend/usecases/rollback"
	"github.com/modelproof/modelproof-backend/utils"
)

type PolicyUsecase struct {
	executorFactory       executor_factory.ExecutorFactory
	transactionFactory    executor_factory.TransactionFactory
	aiSystemRepository    repositories.AISystemRepository
	policyRepository      repositories.PolicyRepository
	violationRepository   repositories.ViolationRepository
	enforcementRepository repositories.EnforcementRepository
	evaluator             policy_eval.Evaluator
	// rollbackController may be nil when rollback is not wired (e.g. in
	// read-only deployments); block_deployment enforcement then only logs.
	rollbackController *rollback.Controller
	clock              clock.Clock
	alertDedupWindow   time.Duration
}

func NewPolicyUsecase(
	executorFactory executor_factory.ExecutorFactory,
	transactionFactory executor_factory.TransactionFactory,
	aiSystemRepository repositories.AISystemRepository,
	policyRepository repositories.PolicyRepository,
	violationRepository repositories.ViolationRepository,
	enforcementRepository repositories.EnforcementRepository,
	evaluator policy_eval.Evaluator,
	rollbackController *rollback.Controller,
	clk clock.Clock,
	alertDedupWindow time.Duration,
) PolicyUsecase {
	return PolicyUsecase{
		executorFactory:       executorFactory,
		transactionFactory:    transactionFactory,
		aiSystemRepository:    aiSystemRepository,
		policyRepository:      policyRepository,
		violationRepository:   violationRepository,
		enforcementRepository: enforcementRepository,
		evaluator:             evaluator,
		rollbackController:    rollbackController,
		clock:                 clk,
		alertDedupWindow:      alertDedupWindow,
	}
}

// EvaluatePolicies checks one AI system against every active policy of its
// tenant and applies the enforcement side effects of each violation.
// Violations and enforcement log entries are append-only: re-evaluating the
// same system re-logs them. Governance alerts are deduplicated within a time
// window instead.
func (uc PolicyUsecase) EvaluatePolicies(ctx context.Context,
	aiSystemId, action string,
) (models.PolicyEvaluation, error) {
	tracer := utils.OpenTelemetryTracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "PolicyUsecase.EvaluatePolicies")
	defer span.End()

	exec := uc.executorFactory.NewExecutor()

	system, err := uc.aiSystemRepository.GetAISystemById(ctx, exec, aiSystemId)
	if err != nil {
		return models.PolicyEvaluation{}, err
	}
	policies, err := uc.policyRepository.ListActivePoliciesOfOrganization(ctx, exec,
		system.OrganizationId)
	if err != nil {
		return models.PolicyEvaluation{}, err
	}

	evaluation := uc.evaluator.Evaluate(system, action, policies, uc.clock.Now())
	if len(evaluation.Violations) == 0 {
		return evaluation, nil
	}

	policiesById := make(map[string]models.Policy, len(policies))
	for _, policy := range policies {
		policiesById[policy.Id] = policy
	}

	err = uc.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		for i := range evaluation.Violations {
			evaluation.Violations[i].Id = uuid.NewString()
			if err := uc.violationRepository.CreateViolation(ctx, tx, evaluation.Violations[i]); err != nil {
				return err
			}
			if err := uc.logEnforcement(ctx, tx, evaluation.Violations[i], action); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.PolicyEvaluation{}, err
	}

	for _, violation := range evaluation.Violations {
		uc.applyEnforcement(ctx, system, policiesById, violation)
	}

	return evaluation, nil
}

func (uc PolicyUsecase) logEnforcement(ctx context.Context, tx repositories.Transaction,
	violation models.Violation, action string,
) error {
	if violation.PolicyId == nil {
		return nil
	}
	return uc.enforcementRepository.CreateEnforcementLogEntry(ctx, tx, models.EnforcementLogEntry{
		Id:             uuid.NewString(),
		OrganizationId: violation.OrganizationId,
		PolicyId:       *violation.PolicyId,
		AISystemId:     violation.AISystemId,
		Action:         action,
		ViolationId:    &violation.Id,
	})
}

// applyEnforcement runs the side effects configured on the violated policy.
// Side-effect failures are logged, never escalated: the evaluation result has
// already been committed.
func (uc PolicyUsecase) applyEnforcement(ctx context.Context, system models.AISystem,
	policiesById map[string]models.Policy, violation models.Violation,
) {
	if violation.PolicyId == nil {
		return
	}
	policy, ok := policiesById[*violation.PolicyId]
	if !ok {
		return
	}

	logger := utils.LoggerFromContext(ctx)
	for _, enforcementAction := range policy.Enforcement.Actions {
		switch enforcementAction {
		case models.EnforcementCreateAlert:
			if err := uc.createAlert(ctx, system, violation); err != nil {
				logger.ErrorContext(ctx, "failed to create governance alert",
					"ai_system_id", system.Id, "policy_id", policy.Id, "error", err.Error())
			}
		case models.EnforcementBlockDeployment:
			uc.triggerPolicyRollback(ctx, system, violation)
		case models.EnforcementNotifyOwner:
			logger.InfoContext(ctx, "policy violation notified to system owner",
				"ai_system_id", system.Id, "policy_id", policy.Id,
				"severity", violation.Severity.String())
		}
	}
}

// createAlert raises a governance alert unless an identical one was raised
// within the dedup window.
func (uc PolicyUsecase) createAlert(ctx context.Context, system models.AISystem,
	violation models.Violation,
) error {
	exec := uc.executorFactory.NewExecutor()

	recent, err := uc.enforcementRepository.HasRecentGovernanceAlert(ctx, exec,
		system.Id, models.AlertSourcePolicy, violation.Description,
		uc.clock.Now().Add(-uc.alertDedupWindow))
	if err != nil {
		return err
	}
	if recent {
		return nil
	}

	return uc.enforcementRepository.CreateGovernanceAlert(ctx, exec, models.GovernanceAlert{
		Id:             uuid.NewString(),
		OrganizationId: system.OrganizationId,
		AISystemId:     system.Id,
		Source:         models.AlertSourcePolicy,
		Severity:       violation.Severity,
		Message:        violation.Description,
	})
}

// triggerPolicyRollback feeds a blocking policy violation into the rollback
// eligibility check. Ineligibility is normal operation, not an error.
func (uc PolicyUsecase) triggerPolicyRollback(ctx context.Context, system models.AISystem,
	violation models.Violation,
) {
	if uc.rollbackController == nil {
		return
	}
	logger := utils.LoggerFromContext(ctx)

	input := rollback.TriggerRollbackInput{
		OrganizationId: system.OrganizationId,
		AISystemId:     system.Id,
		Trigger:        models.RollbackTriggerPolicy,
		TriggeredBy:    "policy_engine",
		ViolationType:  violation.Source.String(),
		Severity:       violation.Severity,
	}

	eligible, err := uc.rollbackController.ShouldTriggerRollback(ctx, input)
	if err != nil {
		logger.ErrorContext(ctx, "rollback eligibility check failed",
			"ai_system_id", system.Id, "error", err.Error())
		return
	}
	if !eligible {
		return
	}

	if _, err := uc.rollbackController.TriggerRollback(ctx, input); err != nil {
		logger.ErrorContext(ctx, "policy-triggered rollback failed",
			"ai_system_id", system.Id, "error", err.Error())
	}
}
