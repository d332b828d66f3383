package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/guregu/null/v5"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/utils"
)

type DBPredictiveAlert struct {
	Id             string      `db:"id"`
	OrganizationId string      `db:"organization_id"`
	AISystemId     string      `db:"ai_system_id"`
	Metric         string      `db:"metric"`
	Severity       string      `db:"severity"`
	Trend          []byte      `db:"trend"`
	CreatedAt      time.Time   `db:"created_at"`
	DismissedAt    null.Time   `db:"dismissed_at"`
	DismissedBy    null.String `db:"dismissed_by"`
}

const TABLE_PREDICTIVE_ALERTS = "predictive_alerts"

var SelectPredictiveAlertColumns = utils.ColumnList[DBPredictiveAlert]()

type dbTrendResult struct {
	CurrentValue        float64    `json:"current_value"`
	PredictedValue      float64    `json:"predicted_value"`
	Threshold           float64    `json:"threshold"`
	Slope               float64    `json:"slope"`
	Intercept           float64    `json:"intercept"`
	RSquared            float64    `json:"r_squared"`
	Direction           string     `json:"direction"`
	Velocity            float64    `json:"velocity"`
	SampleCount         int        `json:"sample_count"`
	WillCrossThreshold  bool       `json:"will_cross_threshold"`
	PredictedCrossingAt *time.Time `json:"predicted_crossing_at,omitempty"`
	Confidence          float64    `json:"confidence"`
}

func AdaptPredictiveAlert(db DBPredictiveAlert) (models.PredictiveAlert, error) {
	metric, err := models.MetricKindFrom(db.Metric)
	if err != nil {
		return models.PredictiveAlert{}, errors.Wrap(err, "stored predictive alert has unknown metric")
	}

	var trend dbTrendResult
	if err := json.Unmarshal(db.Trend, &trend); err != nil {
		return models.PredictiveAlert{}, errors.Wrap(err, "can't decode predictive alert trend")
	}

	return models.PredictiveAlert{
		Id:             db.Id,
		OrganizationId: db.OrganizationId,
		AISystemId:     db.AISystemId,
		Metric:         metric,
		Severity:       models.SeverityFrom(db.Severity),
		Trend: models.TrendResult{
			Metric:              metric,
			CurrentValue:        trend.CurrentValue,
			PredictedValue:      trend.PredictedValue,
			Threshold:           trend.Threshold,
			Slope:               trend.Slope,
			Intercept:           trend.Intercept,
			RSquared:            trend.RSquared,
			Direction:           models.TrendDirection(trend.Direction),
			Velocity:            trend.Velocity,
			SampleCount:         trend.SampleCount,
			WillCrossThreshold:  trend.WillCrossThreshold,
			PredictedCrossingAt: trend.PredictedCrossingAt,
			Confidence:          trend.Confidence,
		},
		CreatedAt:   db.CreatedAt,
		DismissedAt: db.DismissedAt.Ptr(),
		DismissedBy: db.DismissedBy.Ptr(),
	}, nil
}

func SerializeTrendResult(trend models.TrendResult) ([]byte, error) {
	return json.Marshal(dbTrendResult{
		CurrentValue:        trend.CurrentValue,
		PredictedValue:      trend.PredictedValue,
		Threshold:           trend.Threshold,
		Slope:               trend.Slope,
		Intercept:           trend.Intercept,
		RSquared:            trend.RSquared,
		Direction:           string(trend.Direction),
		Velocity:            trend.Velocity,
		SampleCount:         trend.SampleCount,
		WillCrossThreshold:  trend.WillCrossThreshold,
		PredictedCrossingAt: trend.PredictedCrossingAt,
		Confidence:          trend.Confidence,
	})
}
