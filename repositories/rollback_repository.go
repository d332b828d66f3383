package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/repositories/dbmodels"
)

type RollbackRepository interface {
	CreateRollbackExecution(ctx context.Context, exec Executor, execution models.RollbackExecution) error
	GetRollbackExecutionById(ctx context.Context, exec Executor, rollbackId string) (models.RollbackExecution, error)
	UpdateRollbackStatus(ctx context.Context, exec Executor, rollbackId string,
		status models.RollbackStatus, update models.RollbackStatusUpdate) error
	GetLatestCompletedRollback(ctx context.Context, exec Executor, aiSystemId string) (*models.RollbackExecution, error)
	CountAutomatedRollbacksOfDay(ctx context.Context, exec Executor, aiSystemId string, day time.Time) (int, error)
	GetRollbackPolicyForSystem(ctx context.Context, exec Executor, organizationId,
		aiSystemId string) (*models.RollbackPolicy, error)
	CreateRollbackPolicy(ctx context.Context, exec Executor, policy models.RollbackPolicy) error
}

type RollbackRepositoryPostgresql struct{}

func (repo *RollbackRepositoryPostgresql) CreateRollbackExecution(ctx context.Context, exec Executor,
	execution models.RollbackExecution,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_ROLLBACK_EXECUTIONS).
			Columns(
				"id",
				"organization_id",
				"ai_system_id",
				"from_version",
				"to_version",
				"trigger",
				"status",
				"triggered_by",
			).
			Values(
				execution.Id,
				execution.OrganizationId,
				execution.AISystemId,
				execution.FromVersion,
				execution.ToVersion,
				string(execution.Trigger),
				execution.Status.String(),
				execution.TriggeredBy,
			),
	)
}

func (repo *RollbackRepositoryPostgresql) GetRollbackExecutionById(ctx context.Context, exec Executor,
	rollbackId string,
) (models.RollbackExecution, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectRollbackExecutionColumns...).
			From(dbmodels.TABLE_ROLLBACK_EXECUTIONS).
			Where("id = ?", rollbackId),
		dbmodels.AdaptRollbackExecution,
	)
}

// UpdateRollbackStatus only changes status and bookkeeping fields: the from and
// to versions are fixed at creation and never updated.
func (repo *RollbackRepositoryPostgresql) UpdateRollbackStatus(ctx context.Context, exec Executor,
	rollbackId string, status models.RollbackStatus, update models.RollbackStatusUpdate,
) error {
	query := NewQueryBuilder().
		Update(dbmodels.TABLE_ROLLBACK_EXECUTIONS).
		Set("status", status.String()).
		Where("id = ?", rollbackId)

	if update.ApprovedBy != nil {
		query = query.Set("approved_by", *update.ApprovedBy)
	}
	if update.Error != nil {
		query = query.Set("error", *update.Error)
	}
	if status == models.RollbackCompleted {
		query = query.Set("completed_at", squirrel.Expr("now()"))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return errors.Wrap(err, "can't build sql query")
	}
	tag, err := exec.Exec(ctx, sql, args...)
	if err != nil {
		return errors.Wrap(err, "error executing sql query")
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(models.NotFoundError, "rollback execution not found")
	}
	return nil
}

func (repo *RollbackRepositoryPostgresql) GetLatestCompletedRollback(ctx context.Context, exec Executor,
	aiSystemId string,
) (*models.RollbackExecution, error) {
	return SqlToOptionalModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectRollbackExecutionColumns...).
			From(dbmodels.TABLE_ROLLBACK_EXECUTIONS).
			Where("ai_system_id = ? AND status = ?", aiSystemId, models.RollbackCompleted.String()).
			OrderBy("completed_at DESC").
			Limit(1),
		dbmodels.AdaptRollbackExecution,
	)
}

// CountAutomatedRollbacksOfDay counts automated rollbacks created during the
// UTC calendar day containing the given time, whatever their current status.
func (repo *RollbackRepositoryPostgresql) CountAutomatedRollbacksOfDay(ctx context.Context, exec Executor,
	aiSystemId string, day time.Time,
) (int, error) {
	dayStart := day.UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	type row struct {
		Count int `db:"count"`
	}
	count, err := SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select("COUNT(*) AS count").
			From(dbmodels.TABLE_ROLLBACK_EXECUTIONS).
			Where("ai_system_id = ? AND trigger = ? AND created_at >= ? AND created_at < ?",
				aiSystemId, string(models.RollbackTriggerAutomated), dayStart, dayEnd),
		func(db row) (int, error) { return db.Count, nil },
	)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *RollbackRepositoryPostgresql) GetRollbackPolicyForSystem(ctx context.Context, exec Executor,
	organizationId, aiSystemId string,
) (*models.RollbackPolicy, error) {
	return SqlToOptionalModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectRollbackPolicyColumns...).
			From(dbmodels.TABLE_ROLLBACK_POLICIES).
			Where("organization_id = ? AND ai_system_id = ?", organizationId, aiSystemId),
		dbmodels.AdaptRollbackPolicy,
	)
}

func (repo *RollbackRepositoryPostgresql) CreateRollbackPolicy(ctx context.Context, exec Executor,
	policy models.RollbackPolicy,
) error {
	triggers, err := dbmodels.SerializeRollbackTriggers(policy.Triggers)
	if err != nil {
		return errors.Wrap(err, "can't encode rollback policy triggers")
	}

	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_ROLLBACK_POLICIES).
			Columns(
				"id",
				"organization_id",
				"ai_system_id",
				"enabled",
				"triggers",
				"auto_rollback_on_critical",
				"cooldown_minutes",
				"max_automated_per_day",
				"require_approval",
				"approver_roles",
			).
			Values(
				policy.Id,
				policy.OrganizationId,
				policy.AISystemId,
				policy.Enabled,
				triggers,
				policy.AutoRollbackOnCritical,
				policy.CooldownMinutes,
				policy.MaxAutomatedPerDay,
				policy.RequireApproval,
				policy.ApproverRoles,
			),
	)
}
