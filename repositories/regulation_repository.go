package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/repositories/dbmodels"
)

type RegulationRepository interface {
	GetRegulationById(ctx context.Context, exec Executor, regulationId string) (models.Regulation, error)
	ListActiveRegulations(ctx context.Context, exec Executor, at time.Time) ([]models.Regulation, error)
	CreateRegulation(ctx context.Context, exec Executor, input models.CreateRegulationInput, newRegulationId string) error
}

type RegulationRepositoryPostgresql struct{}

func (repo *RegulationRepositoryPostgresql) GetRegulationById(ctx context.Context, exec Executor,
	regulationId string,
) (models.Regulation, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectRegulationColumns...).
			From(dbmodels.TABLE_REGULATIONS).
			Where("id = ?", regulationId),
		dbmodels.AdaptRegulation,
	)
}

// ListActiveRegulations returns the regulations in force at the given time:
// effective date has passed and sunset date, if any, has not.
func (repo *RegulationRepositoryPostgresql) ListActiveRegulations(ctx context.Context, exec Executor,
	at time.Time,
) ([]models.Regulation, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectRegulationColumns...).
			From(dbmodels.TABLE_REGULATIONS).
			Where("effective_date <= ?", at).
			Where(squirrel.Or{
				squirrel.Eq{"sunset_date": nil},
				squirrel.GtOrEq{"sunset_date": at},
			}).
			OrderBy("jurisdiction", "control_id"),
		dbmodels.AdaptRegulation,
	)
}

func (repo *RegulationRepositoryPostgresql) CreateRegulation(ctx context.Context, exec Executor,
	input models.CreateRegulationInput, newRegulationId string,
) error {
	overrides, err := json.Marshal(input.SeverityOverrides)
	if err != nil {
		return errors.Wrap(err, "can't encode regulation severity overrides")
	}

	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_REGULATIONS).
			Columns(
				"id",
				"framework",
				"jurisdiction",
				"name",
				"control_id",
				"control_name",
				"description",
				"event_types",
				"requires_high_risk",
				"requires_employment_ai",
				"severity_overrides",
				"reporting_required",
				"reporting_deadline_days",
				"effective_date",
				"sunset_date",
			).
			Values(
				newRegulationId,
				input.Framework,
				input.Jurisdiction,
				input.Name,
				input.ControlId,
				input.ControlName,
				input.Description,
				input.EventTypes,
				input.RequiresHighRisk,
				input.RequiresEmploymentAI,
				overrides,
				input.ReportingRequired,
				input.ReportingDeadlineDays,
				input.EffectiveDate,
				input.SunsetDate,
			),
	)
}
