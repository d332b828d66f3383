package repositories

import (
	"context"
	"time"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/repositories/dbmodels"
)

type TelemetryRepository interface {
	CreateTelemetryEvent(ctx context.Context, exec Executor, event models.TelemetryEvent) (models.TelemetryEvent, error)
	ListMetricSamples(ctx context.Context, exec Executor, aiSystemId string,
		metric models.MetricKind, since time.Time) ([]models.MetricSample, error)
}

type TelemetryRepositoryPostgresql struct{}

// CreateTelemetryEvent inserts the event and returns the stored row.
func (repo *TelemetryRepositoryPostgresql) CreateTelemetryEvent(ctx context.Context, exec Executor,
	event models.TelemetryEvent,
) (models.TelemetryEvent, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_TELEMETRY_EVENTS).
			Columns(
				"id",
				"ai_system_id",
				"event_type",
				"metric",
				"value",
				"severity",
				"timestamp",
			).
			Values(
				event.Id,
				event.AISystemId,
				string(event.EventType),
				event.Metric.String(),
				event.Value,
				event.Severity.String(),
				event.Timestamp,
			).
			Suffix("RETURNING *"),
		dbmodels.AdaptTelemetryEvent,
	)
}

// ListMetricSamples returns the (timestamp, value) series for one system and
// metric, ordered by timestamp ascending, as the forecaster expects.
func (repo *TelemetryRepositoryPostgresql) ListMetricSamples(ctx context.Context, exec Executor,
	aiSystemId string, metric models.MetricKind, since time.Time,
) ([]models.MetricSample, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select("timestamp", "value").
			From(dbmodels.TABLE_TELEMETRY_EVENTS).
			Where("ai_system_id = ? AND metric = ? AND timestamp >= ?",
				aiSystemId, metric.String(), since).
			OrderBy("timestamp"),
		dbmodels.AdaptMetricSample,
	)
}
