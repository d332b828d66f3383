package rollback

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/pure_utils"
	"github.com/modelproof/modelproof-backend/repositories"
	"github.com/modelproof/modelproof-backend/repositories/clock"
	"github.com/modelproof/modelproof-backend/usecases/executor_factory"
	"github.com/modelproof/modelproof-backend/utils"
)

// Controller owns the deployment history and the rollback state machine:
// pending_approval -> approved -> in_progress -> {completed | failed}. A
// trigger without an approval requirement skips straight to in_progress.
type Controller struct {
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	rollbackRepository repositories.RollbackRepository
	deploymentRepo     repositories.DeploymentRepository
	clock              clock.Clock
	systemLocks        *keyedMutex
}

func NewController(
	executorFactory executor_factory.ExecutorFactory,
	transactionFactory executor_factory.TransactionFactory,
	rollbackRepository repositories.RollbackRepository,
	deploymentRepo repositories.DeploymentRepository,
	clk clock.Clock,
) *Controller {
	return &Controller{
		executorFactory:    executorFactory,
		transactionFactory: transactionFactory,
		rollbackRepository: rollbackRepository,
		deploymentRepo:     deploymentRepo,
		clock:              clk,
		systemLocks:        newKeyedMutex(),
	}
}

type TriggerRollbackInput struct {
	OrganizationId string
	AISystemId     string
	Trigger        models.RollbackTrigger
	TriggeredBy    string
	// TargetVersion overrides the automatic target resolution when set.
	TargetVersion *string
	// ViolationType and Severity describe the violation that motivated an
	// automated or policy trigger; ignored for manual triggers.
	ViolationType string
	Severity      models.Severity
}

// CheckEligibility verifies that an automated or policy-driven rollback may
// fire for the system. It returns nil when eligible, or a precondition error
// naming the failed check.
func (c *Controller) CheckEligibility(ctx context.Context, exec repositories.Executor,
	input TriggerRollbackInput,
) error {
	policy, err := c.rollbackRepository.GetRollbackPolicyForSystem(ctx, exec,
		input.OrganizationId, input.AISystemId)
	if err != nil {
		return err
	}
	if policy == nil || !policy.Enabled {
		return models.ErrRollbackPolicyDisabled
	}

	if !triggerMatches(*policy, input.ViolationType, input.Severity) {
		return models.ErrRollbackTriggerNotMatched
	}

	if err := c.checkCooldown(ctx, exec, *policy, input.AISystemId); err != nil {
		return err
	}

	if input.Trigger == models.RollbackTriggerAutomated {
		count, err := c.rollbackRepository.CountAutomatedRollbacksOfDay(ctx, exec,
			input.AISystemId, c.clock.Now())
		if err != nil {
			return err
		}
		if count >= policy.MaxAutomatedPerDay {
			return models.ErrRollbackDailyCapReached
		}
	}

	return nil
}

// ShouldTriggerRollback reports eligibility as a boolean, swallowing the
// precondition reasons. Store errors still propagate.
func (c *Controller) ShouldTriggerRollback(ctx context.Context, input TriggerRollbackInput) (bool, error) {
	err := c.CheckEligibility(ctx, c.executorFactory.NewExecutor(), input)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, models.PreconditionFailedError):
		return false, nil
	default:
		return false, err
	}
}

func triggerMatches(policy models.RollbackPolicy, violationType string, severity models.Severity) bool {
	for _, rule := range policy.Triggers {
		if rule.Matches(violationType, severity) {
			return true
		}
	}
	return severity.AtLeast(models.SeverityCritical) && policy.AutoRollbackOnCritical
}

// checkCooldown passes when at least CooldownMinutes have elapsed since the
// last completed rollback. An elapsed time of exactly the cooldown passes.
func (c *Controller) checkCooldown(ctx context.Context, exec repositories.Executor,
	policy models.RollbackPolicy, aiSystemId string,
) error {
	last, err := c.rollbackRepository.GetLatestCompletedRollback(ctx, exec, aiSystemId)
	if err != nil {
		return err
	}
	if last == nil || last.CompletedAt == nil {
		return nil
	}

	elapsedMinutes := c.clock.Now().Sub(*last.CompletedAt).Minutes()
	if elapsedMinutes < float64(policy.CooldownMinutes) {
		return models.ErrRollbackCooldownActive
	}
	return nil
}

// TriggerRollback creates a rollback execution and, unless the policy requires
// human approval, executes it immediately. Rollback decisions for one AI
// system are serialized through a per-system lock.
func (c *Controller) TriggerRollback(ctx context.Context, input TriggerRollbackInput) (models.RollbackExecution, error) {
	c.systemLocks.lock(input.AISystemId)
	defer c.systemLocks.unlock(input.AISystemId)

	exec := c.executorFactory.NewExecutor()

	if input.Trigger != models.RollbackTriggerManual {
		if err := c.CheckEligibility(ctx, exec, input); err != nil {
			return models.RollbackExecution{}, err
		}
	}

	active, err := c.deploymentRepo.GetActiveDeployment(ctx, exec, input.AISystemId)
	if err != nil {
		return models.RollbackExecution{}, err
	}
	if active == nil {
		return models.RollbackExecution{}, errors.Wrap(models.PreconditionFailedError,
			"no active deployment to roll back")
	}

	toVersion, err := c.resolveTargetVersion(ctx, exec, input, *active)
	if err != nil {
		return models.RollbackExecution{}, err
	}

	requiresApproval, err := c.requiresApproval(ctx, exec, input)
	if err != nil {
		return models.RollbackExecution{}, err
	}

	execution := models.RollbackExecution{
		Id:             uuid.NewString(),
		OrganizationId: input.OrganizationId,
		AISystemId:     input.AISystemId,
		FromVersion:    active.Version,
		ToVersion:      toVersion,
		Trigger:        input.Trigger,
		Status:         models.RollbackInProgress,
		TriggeredBy:    input.TriggeredBy,
	}
	if requiresApproval {
		execution.Status = models.RollbackPendingApproval
	}

	// The execution row is committed before any deployment mutation so a later
	// failure can be recorded on it.
	if err := c.rollbackRepository.CreateRollbackExecution(ctx, exec, execution); err != nil {
		return models.RollbackExecution{}, err
	}

	if requiresApproval {
		utils.LoggerFromContext(ctx).InfoContext(ctx, "rollback pending approval",
			"rollback_id", execution.Id, "ai_system_id", input.AISystemId)
		return execution, nil
	}

	return c.execute(ctx, execution)
}

// resolveTargetVersion picks the version to roll back to: the explicit
// override, else the most recent history entry that is neither the active
// deployment nor itself a rolled back one.
func (c *Controller) resolveTargetVersion(ctx context.Context, exec repositories.Executor,
	input TriggerRollbackInput, active models.DeploymentRecord,
) (string, error) {
	if input.TargetVersion != nil {
		return *input.TargetVersion, nil
	}

	history, err := c.deploymentRepo.ListDeploymentHistory(ctx, exec, input.AISystemId)
	if err != nil {
		return "", err
	}
	for _, record := range history {
		if record.Id == active.Id {
			continue
		}
		if record.Status == models.DeploymentRolledBack {
			continue
		}
		return record.Version, nil
	}
	return "", models.ErrNoRollbackTarget
}

func (c *Controller) requiresApproval(ctx context.Context, exec repositories.Executor,
	input TriggerRollbackInput,
) (bool, error) {
	policy, err := c.rollbackRepository.GetRollbackPolicyForSystem(ctx, exec,
		input.OrganizationId, input.AISystemId)
	if err != nil {
		return false, err
	}
	return policy != nil && policy.RequireApproval, nil
}

// execute runs the deployment swap in one transaction: demote the active
// record, insert the rollback record as the new active one, mark the execution
// completed. On failure the transaction is rolled back, leaving the prior
// deployment untouched, and the failure is recorded on the execution itself in
// addition to being returned.
func (c *Controller) execute(ctx context.Context, execution models.RollbackExecution) (models.RollbackExecution, error) {
	err := c.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		if err := c.rollbackRepository.UpdateRollbackStatus(ctx, tx, execution.Id,
			models.RollbackInProgress, models.RollbackStatusUpdate{}); err != nil {
			return err
		}

		active, err := c.deploymentRepo.GetActiveDeployment(ctx, tx, execution.AISystemId)
		if err != nil {
			return err
		}
		if active == nil || active.Version != execution.FromVersion {
			return errors.Wrap(models.PreconditionFailedError,
				"active deployment changed since the rollback was triggered")
		}

		if err := c.deploymentRepo.SetDeploymentStatus(ctx, tx, active.Id,
			models.DeploymentRolledBack); err != nil {
			return err
		}

		if err := c.deploymentRepo.InsertDeployment(ctx, tx, models.DeploymentRecord{
			Id:             uuid.NewString(),
			OrganizationId: execution.OrganizationId,
			AISystemId:     execution.AISystemId,
			Version:        execution.ToVersion,
			Status:         models.DeploymentActive,
			Type:           models.DeploymentTypeRollback,
			DeployedBy:     execution.TriggeredBy,
			RollbackFrom:   pure_utils.Ptr(execution.FromVersion),
		}); err != nil {
			return err
		}

		return c.rollbackRepository.UpdateRollbackStatus(ctx, tx, execution.Id,
			models.RollbackCompleted, models.RollbackStatusUpdate{})
	})
	if err != nil {
		c.recordFailure(ctx, execution.Id, err)
		return models.RollbackExecution{}, err
	}

	return c.rollbackRepository.GetRollbackExecutionById(ctx,
		c.executorFactory.NewExecutor(), execution.Id)
}

// recordFailure writes the failed status outside the rolled back transaction
// so that history queries see the failure even if the caller drops the error.
func (c *Controller) recordFailure(ctx context.Context, rollbackId string, cause error) {
	updateErr := c.rollbackRepository.UpdateRollbackStatus(ctx,
		c.executorFactory.NewExecutor(), rollbackId,
		models.RollbackFailed, models.RollbackStatusUpdate{
			Error: pure_utils.Ptr(cause.Error()),
		})
	if updateErr != nil {
		utils.LoggerFromContext(ctx).ErrorContext(ctx, "failed to record rollback failure",
			"rollback_id", rollbackId, "error", updateErr.Error())
	}
}

// ApproveRollback transitions a pending_approval execution to approved and
// immediately executes it, preserving the original record id, versions and
// trigger provenance.
func (c *Controller) ApproveRollback(ctx context.Context, rollbackId, approverId,
	approverRole string,
) (models.RollbackExecution, error) {
	exec := c.executorFactory.NewExecutor()

	execution, err := c.rollbackRepository.GetRollbackExecutionById(ctx, exec, rollbackId)
	if err != nil {
		return models.RollbackExecution{}, err
	}

	c.systemLocks.lock(execution.AISystemId)
	defer c.systemLocks.unlock(execution.AISystemId)

	// Re-read under the lock: a concurrent approval may have advanced the
	// record between the first fetch and the lock acquisition.
	execution, err = c.rollbackRepository.GetRollbackExecutionById(ctx, exec, rollbackId)
	if err != nil {
		return models.RollbackExecution{}, err
	}
	if execution.Status != models.RollbackPendingApproval {
		return models.RollbackExecution{}, models.ErrRollbackNotPendingApproval
	}

	policy, err := c.rollbackRepository.GetRollbackPolicyForSystem(ctx, exec,
		execution.OrganizationId, execution.AISystemId)
	if err != nil {
		return models.RollbackExecution{}, err
	}
	if err := checkApproverRole(policy, approverRole); err != nil {
		return models.RollbackExecution{}, err
	}

	if err := c.rollbackRepository.UpdateRollbackStatus(ctx, exec, rollbackId,
		models.RollbackApproved, models.RollbackStatusUpdate{
			ApprovedBy: &approverId,
		}); err != nil {
		return models.RollbackExecution{}, err
	}

	return c.execute(ctx, execution)
}

// checkApproverRole: an empty or absent role list means any authenticated
// approver may approve.
func checkApproverRole(policy *models.RollbackPolicy, approverRole string) error {
	if policy == nil || len(policy.ApproverRoles) == 0 {
		return nil
	}
	for _, role := range policy.ApproverRoles {
		if role == approverRole {
			return nil
		}
	}
	return models.ErrUnauthorizedApprover
}
