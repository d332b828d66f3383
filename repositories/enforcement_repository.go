package repositories

import (
	"context"
	"time"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/repositories/dbmodels"
)

type EnforcementRepository interface {
	CreateEnforcementLogEntry(ctx context.Context, exec Executor, entry models.EnforcementLogEntry) error
	CreateGovernanceAlert(ctx context.Context, exec Executor, alert models.GovernanceAlert) error
	HasRecentGovernanceAlert(ctx context.Context, exec Executor, aiSystemId, source, message string,
		since time.Time) (bool, error)
}

type EnforcementRepositoryPostgresql struct{}

func (repo *EnforcementRepositoryPostgresql) CreateEnforcementLogEntry(ctx context.Context, exec Executor,
	entry models.EnforcementLogEntry,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_ENFORCEMENT_LOG).
			Columns(
				"id",
				"organization_id",
				"policy_id",
				"ai_system_id",
				"action",
				"violation_id",
			).
			Values(
				entry.Id,
				entry.OrganizationId,
				entry.PolicyId,
				entry.AISystemId,
				entry.Action,
				entry.ViolationId,
			),
	)
}

func (repo *EnforcementRepositoryPostgresql) CreateGovernanceAlert(ctx context.Context, exec Executor,
	alert models.GovernanceAlert,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_GOVERNANCE_ALERTS).
			Columns(
				"id",
				"organization_id",
				"ai_system_id",
				"source",
				"severity",
				"message",
			).
			Values(
				alert.Id,
				alert.OrganizationId,
				alert.AISystemId,
				alert.Source,
				alert.Severity.String(),
				alert.Message,
			),
	)
}

// HasRecentGovernanceAlert reports whether an identical alert was raised since
// the given time, so repeated evaluations do not flood operators. The caller
// computes the bound from its clock.
func (repo *EnforcementRepositoryPostgresql) HasRecentGovernanceAlert(ctx context.Context, exec Executor,
	aiSystemId, source, message string, since time.Time,
) (bool, error) {
	type row struct {
		Count int `db:"count"`
	}
	count, err := SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select("COUNT(*) AS count").
			From(dbmodels.TABLE_GOVERNANCE_ALERTS).
			Where("ai_system_id = ? AND source = ? AND message = ? AND created_at >= ?",
				aiSystemId, source, message, since),
		func(db row) (int, error) { return db.Count, nil },
	)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
