package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/repositories/dbmodels"
)

type PredictiveAlertRepository interface {
	GetOpenAlert(ctx context.Context, exec Executor, aiSystemId string,
		metric models.MetricKind) (*models.PredictiveAlert, error)
	CreatePredictiveAlert(ctx context.Context, exec Executor, alert models.PredictiveAlert) error
	DismissPredictiveAlert(ctx context.Context, exec Executor, alertId, dismissedBy string) error
}

type PredictiveAlertRepositoryPostgresql struct{}

// GetOpenAlert returns the single non-dismissed alert for (system, metric), or
// nil. The uniqueness is also enforced by a partial unique index.
func (repo *PredictiveAlertRepositoryPostgresql) GetOpenAlert(ctx context.Context, exec Executor,
	aiSystemId string, metric models.MetricKind,
) (*models.PredictiveAlert, error) {
	return SqlToOptionalModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectPredictiveAlertColumns...).
			From(dbmodels.TABLE_PREDICTIVE_ALERTS).
			Where("ai_system_id = ? AND metric = ? AND dismissed_at IS NULL",
				aiSystemId, metric.String()),
		dbmodels.AdaptPredictiveAlert,
	)
}

func (repo *PredictiveAlertRepositoryPostgresql) CreatePredictiveAlert(ctx context.Context, exec Executor,
	alert models.PredictiveAlert,
) error {
	trend, err := dbmodels.SerializeTrendResult(alert.Trend)
	if err != nil {
		return errors.Wrap(err, "can't encode predictive alert trend")
	}

	err = ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_PREDICTIVE_ALERTS).
			Columns(
				"id",
				"organization_id",
				"ai_system_id",
				"metric",
				"severity",
				"trend",
			).
			Values(
				alert.Id,
				alert.OrganizationId,
				alert.AISystemId,
				alert.Metric.String(),
				alert.Severity.String(),
				trend,
			),
	)
	if IsUniqueViolationError(err) {
		// another open alert for the same (system, metric) won the race
		return errors.Wrap(models.ConflictError, "an open predictive alert already exists for this metric")
	}
	return err
}

func (repo *PredictiveAlertRepositoryPostgresql) DismissPredictiveAlert(ctx context.Context, exec Executor,
	alertId, dismissedBy string,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_PREDICTIVE_ALERTS).
			Set("dismissed_at", squirrel.Expr("now()")).
			Set("dismissed_by", dismissedBy).
			Where("id = ? AND dismissed_at IS NULL", alertId),
	)
}
