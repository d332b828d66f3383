package forecast

import (
	"math"
	"time"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/repositories/clock"
)

const (
	// Below this many samples no trend is fitted at all.
	minSampleCount = 3

	projectionDays   = 7
	crossingClampMax = 30 * 24 * time.Hour

	// A fitted slope smaller than this fraction of the latest value per day
	// is reported as a stable trend.
	stableSlopeRatio = 0.01

	confidenceFitWeight      = 60.0
	confidenceSampleWeight   = 25.0
	confidenceEvennessWeight = 15.0
	// Sample-count contribution saturates at this many samples.
	confidenceSampleSaturation = 20
)

// Forecaster fits ordinary least-squares regressions over metric time series
// and projects threshold crossings. It performs no I/O.
type Forecaster struct {
	clock clock.Clock
}

func NewForecaster(clk clock.Clock) Forecaster {
	return Forecaster{clock: clk}
}

// ForecastMetric fits a linear trend to the samples of one metric and projects
// it projectionDays forward. Samples must be ordered by timestamp ascending.
// Returns nil when there are too few samples or the metric has no threshold.
func (f Forecaster) ForecastMetric(
	metric models.MetricKind,
	samples []models.MetricSample,
) *models.TrendResult {
	if len(samples) < minSampleCount {
		return nil
	}
	threshold, ok := metric.Threshold()
	if !ok {
		return nil
	}

	now := f.clock.Now()
	origin := samples[0].Timestamp

	// x in milliseconds since the first sample keeps the normal equations
	// well-conditioned even over long lookback windows.
	xs := make([]float64, len(samples))
	ys := make([]float64, len(samples))
	for i, sample := range samples {
		xs[i] = float64(sample.Timestamp.Sub(origin).Milliseconds())
		ys[i] = sample.Value
	}

	slope, intercept, rSquared := fitLeastSquares(xs, ys)

	latest := samples[len(samples)-1]
	velocityPerDay := slope * float64((24 * time.Hour).Milliseconds())

	direction := models.TrendStable
	if math.Abs(velocityPerDay) > stableSlopeRatio*math.Abs(latest.Value) {
		if velocityPerDay > 0 {
			direction = models.TrendIncreasing
		} else {
			direction = models.TrendDecreasing
		}
	}

	horizon := now.Add(projectionDays * 24 * time.Hour)
	predicted := intercept + slope*float64(horizon.Sub(origin).Milliseconds())

	result := models.TrendResult{
		Metric:         metric,
		CurrentValue:   latest.Value,
		PredictedValue: predicted,
		Threshold:      threshold,
		Slope:          slope,
		Intercept:      intercept,
		RSquared:       rSquared,
		Direction:      direction,
		Velocity:       velocityPerDay,
		SampleCount:    len(samples),
		Confidence:     confidenceScore(rSquared, xs),
	}

	if (latest.Value > threshold) != (predicted > threshold) {
		result.WillCrossThreshold = true
		result.PredictedCrossingAt = crossingTime(slope, intercept, threshold, origin, now, horizon)
	}

	return &result
}

// crossingTime solves the fitted line for the threshold. The analytic solution
// is kept only when it falls within a sane window around now; otherwise the
// projection horizon is reported.
func crossingTime(
	slope, intercept, threshold float64,
	origin, now, horizon time.Time,
) *time.Time {
	if slope == 0 {
		return &horizon
	}
	offsetMs := (threshold - intercept) / slope
	at := origin.Add(time.Duration(offsetMs) * time.Millisecond)
	if at.Before(now) || at.After(now.Add(crossingClampMax)) {
		return &horizon
	}
	return &at
}

func fitLeastSquares(xs, ys []float64) (slope, intercept, rSquared float64) {
	n := float64(len(xs))

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / n
	meanY := sumY / n

	var covXY, varX float64
	for i := range xs {
		covXY += (xs[i] - meanX) * (ys[i] - meanY)
		varX += (xs[i] - meanX) * (xs[i] - meanX)
	}
	if varX == 0 {
		return 0, meanY, 0
	}

	slope = covXY / varX
	intercept = meanY - slope*meanX

	var ssRes, ssTot float64
	for i := range xs {
		fitted := intercept + slope*xs[i]
		ssRes += (ys[i] - fitted) * (ys[i] - fitted)
		ssTot += (ys[i] - meanY) * (ys[i] - meanY)
	}
	if ssTot == 0 {
		// A perfectly flat series is fitted exactly.
		return slope, intercept, 1
	}
	rSquared = 1 - ssRes/ssTot
	if rSquared < 0 {
		rSquared = 0
	}
	return slope, intercept, rSquared
}

// confidenceScore combines fit quality, sample count and sampling regularity
// into a 0-100 score.
func confidenceScore(rSquared float64, xs []float64) float64 {
	fit := math.Min(rSquared, 1) * confidenceFitWeight

	sampleRatio := float64(len(xs)) / confidenceSampleSaturation
	sampleScore := math.Min(sampleRatio, 1) * confidenceSampleWeight

	return fit + sampleScore + evennessScore(xs)*confidenceEvennessWeight
}

// evennessScore returns 1 for perfectly regular sampling intervals and decays
// towards 0 as the intervals grow irregular (coefficient of variation >= 1).
func evennessScore(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	intervals := make([]float64, 0, len(xs)-1)
	var sum float64
	for i := 1; i < len(xs); i++ {
		interval := xs[i] - xs[i-1]
		intervals = append(intervals, interval)
		sum += interval
	}
	mean := sum / float64(len(intervals))
	if mean == 0 {
		return 0
	}

	var variance float64
	for _, interval := range intervals {
		variance += (interval - mean) * (interval - mean)
	}
	variance /= float64(len(intervals))

	cv := math.Sqrt(variance) / mean
	return math.Max(0, 1-cv)
}

// AlertSeverity buckets a predicted crossing by how soon it lands. Privacy
// sensitive metrics are always critical, no matter how far out the crossing is.
func AlertSeverity(trend models.TrendResult, now time.Time) models.Severity {
	if trend.Metric.IsPrivacySensitive() {
		return models.SeverityCritical
	}
	if trend.PredictedCrossingAt == nil {
		return models.SeverityLow
	}
	until := trend.PredictedCrossingAt.Sub(now)
	switch {
	case until <= 2*24*time.Hour:
		return models.SeverityCritical
	case until <= 7*24*time.Hour:
		return models.SeverityHigh
	case until <= 14*24*time.Hour:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}
