package models

import "time"

type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// TrendResult is the outcome of fitting one metric's time series and projecting
// it forward. It is a pure computation result, not a violation.
type TrendResult struct {
	Metric         MetricKind
	CurrentValue   float64
	PredictedValue float64
	Threshold      float64

	Slope     float64
	Intercept float64
	RSquared  float64

	Direction TrendDirection
	// Velocity is the fitted change per day, in the metric's unit.
	Velocity    float64
	SampleCount int

	WillCrossThreshold  bool
	PredictedCrossingAt *time.Time

	// Confidence is a 0-100 score combining fit quality, sample count and
	// sampling regularity.
	Confidence float64
}

// PredictiveAlert is an early warning that a metric will cross a threshold in
// the future, distinct from a Violation. At most one open (non-dismissed) alert
// exists per (AI system, metric).
type PredictiveAlert struct {
	Id             string
	OrganizationId string
	AISystemId     string
	Metric         MetricKind
	Severity       Severity
	Trend          TrendResult
	CreatedAt      time.Time
	DismissedAt    *time.Time
	DismissedBy    *string
}

func (a PredictiveAlert) IsOpen() bool {
	return a.DismissedAt == nil
}
