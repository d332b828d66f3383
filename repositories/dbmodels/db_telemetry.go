package dbmodels

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/modelproof/modelproof-backend/models"
)

type DBTelemetryEvent struct {
	Id         string    `db:"id"`
	AISystemId string    `db:"ai_system_id"`
	EventType  string    `db:"event_type"`
	Metric     string    `db:"metric"`
	Value      float64   `db:"value"`
	Severity   string    `db:"severity"`
	Timestamp  time.Time `db:"timestamp"`
}

const TABLE_TELEMETRY_EVENTS = "telemetry_events"

func AdaptTelemetryEvent(db DBTelemetryEvent) (models.TelemetryEvent, error) {
	metric, err := models.MetricKindFrom(db.Metric)
	if err != nil {
		return models.TelemetryEvent{}, errors.Wrap(err, "stored telemetry event has unknown metric")
	}

	return models.TelemetryEvent{
		Id:         db.Id,
		AISystemId: db.AISystemId,
		EventType:  models.EventType(db.EventType),
		Metric:     metric,
		Value:      db.Value,
		Severity:   models.SeverityFrom(db.Severity),
		Timestamp:  db.Timestamp,
	}, nil
}

type DBMetricSample struct {
	Timestamp time.Time `db:"timestamp"`
	Value     float64   `db:"value"`
}

func AdaptMetricSample(db DBMetricSample) (models.MetricSample, error) {
	return models.MetricSample{
		Timestamp: db.Timestamp,
		Value:     db.Value,
	}, nil
}
