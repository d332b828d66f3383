package repositories

import (
	"context"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/repositories/dbmodels"
)

type RequiredActionRepository interface {
	BatchInsertRequiredActions(ctx context.Context, exec Executor, actions []models.RequiredAction) error
	ListActionsOfViolation(ctx context.Context, exec Executor, violationId string) ([]models.RequiredAction, error)
}

type RequiredActionRepositoryPostgresql struct{}

func (repo *RequiredActionRepositoryPostgresql) BatchInsertRequiredActions(ctx context.Context, exec Executor,
	actions []models.RequiredAction,
) error {
	if len(actions) == 0 {
		return nil
	}

	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_REQUIRED_ACTIONS).
		Columns(
			"id",
			"violation_id",
			"type",
			"priority",
			"assignee_role",
			"deadline",
			"automated",
			"description",
			"details",
		)
	for _, action := range actions {
		query = query.Values(
			action.Id,
			action.ViolationId,
			string(action.Type),
			action.Priority.String(),
			action.AssigneeRole,
			action.Deadline,
			action.Automated,
			action.Description,
			action.Details,
		)
	}

	return ExecBuilder(ctx, exec, query)
}

func (repo *RequiredActionRepositoryPostgresql) ListActionsOfViolation(ctx context.Context, exec Executor,
	violationId string,
) ([]models.RequiredAction, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectRequiredActionColumns...).
			From(dbmodels.TABLE_REQUIRED_ACTIONS).
			Where("violation_id = ?", violationId).
			OrderBy("deadline", "created_at"),
		dbmodels.AdaptRequiredAction,
	)
}
