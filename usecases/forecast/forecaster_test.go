package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/repositories/clock"
)

func samplesAt(start time.Time, interval time.Duration, values []float64) []models.MetricSample {
	samples := make([]models.MetricSample, len(values))
	for i, value := range values {
		samples[i] = models.MetricSample{
			Timestamp: start.Add(time.Duration(i) * interval),
			Value:     value,
		}
	}
	return samples
}

func TestForecastMetric_tooFewSamples(t *testing.T) {
	forecaster := NewForecaster(clock.NewMock(time.Now()))

	result := forecaster.ForecastMetric(models.MetricDrift,
		samplesAt(time.Now().Add(-2*time.Hour), time.Hour, []float64{0.01, 0.02}))

	assert.Nil(t, result)
}

func TestForecastMetric_perfectlyLinearSeries(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	forecaster := NewForecaster(clock.NewMock(now))

	// 0.005 per day over 20 days, starting well below the 0.15 drift
	// threshold and heading straight for it.
	values := make([]float64, 20)
	for i := range values {
		values[i] = 0.02 + 0.005*float64(i)
	}
	start := now.Add(-19 * 24 * time.Hour)

	result := forecaster.ForecastMetric(models.MetricDrift,
		samplesAt(start, 24*time.Hour, values))

	assert.NotNil(t, result)
	assert.InDelta(t, 1.0, result.RSquared, 1e-9)
	assert.GreaterOrEqual(t, result.Confidence, 85.0)
	assert.Equal(t, models.TrendIncreasing, result.Direction)
	assert.InDelta(t, 0.005, result.Velocity, 1e-9)
	assert.Equal(t, 20, result.SampleCount)
}

func TestForecastMetric_noisySeriesIsStableWithLowConfidence(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	forecaster := NewForecaster(clock.NewMock(now))

	// Oscillation around a flat mean, no trend to find.
	values := []float64{0.05, 0.02, 0.06, 0.01, 0.05, 0.05, 0.01, 0.06, 0.02, 0.05}
	start := now.Add(-9 * 24 * time.Hour)

	result := forecaster.ForecastMetric(models.MetricErrorRate,
		samplesAt(start, 24*time.Hour, values))

	assert.NotNil(t, result)
	assert.Equal(t, models.TrendStable, result.Direction)
	assert.Less(t, result.Confidence, 40.0)
}

func TestForecastMetric_predictsThresholdCrossing(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	forecaster := NewForecaster(clock.NewMock(now))

	// 0.13 and climbing 0.01/day: crosses the 0.15 drift threshold in
	// about two days.
	values := []float64{0.09, 0.10, 0.11, 0.12, 0.13}
	start := now.Add(-4 * 24 * time.Hour)

	result := forecaster.ForecastMetric(models.MetricDrift,
		samplesAt(start, 24*time.Hour, values))

	assert.NotNil(t, result)
	assert.True(t, result.WillCrossThreshold)
	if assert.NotNil(t, result.PredictedCrossingAt) {
		assert.WithinDuration(t, now.Add(2*24*time.Hour), *result.PredictedCrossingAt, 12*time.Hour)
	}
	assert.Equal(t, models.SeverityCritical, AlertSeverity(*result, now))
}

func TestForecastMetric_noCrossingWhenAlreadyAboveThreshold(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	forecaster := NewForecaster(clock.NewMock(now))

	values := []float64{0.20, 0.21, 0.22, 0.23, 0.24}
	start := now.Add(-4 * 24 * time.Hour)

	result := forecaster.ForecastMetric(models.MetricDrift,
		samplesAt(start, 24*time.Hour, values))

	assert.NotNil(t, result)
	assert.False(t, result.WillCrossThreshold)
	assert.Nil(t, result.PredictedCrossingAt)
}

func TestForecastMetric_flatSeriesHasPerfectFit(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	forecaster := NewForecaster(clock.NewMock(now))

	values := []float64{0.03, 0.03, 0.03, 0.03, 0.03}
	start := now.Add(-4 * 24 * time.Hour)

	result := forecaster.ForecastMetric(models.MetricDrift,
		samplesAt(start, 24*time.Hour, values))

	assert.NotNil(t, result)
	assert.Equal(t, models.TrendStable, result.Direction)
	assert.Equal(t, 1.0, result.RSquared)
	assert.False(t, result.WillCrossThreshold)
}

func TestAlertSeverity_privacyMetricAlwaysCritical(t *testing.T) {
	now := time.Now()
	farOut := now.Add(20 * 24 * time.Hour)

	trend := models.TrendResult{
		Metric:              models.MetricPhiLeakage,
		PredictedCrossingAt: &farOut,
	}

	assert.Equal(t, models.SeverityCritical, AlertSeverity(trend, now))
}

func TestAlertSeverity_buckets(t *testing.T) {
	now := time.Now()
	at := func(d time.Duration) *time.Time {
		crossing := now.Add(d)
		return &crossing
	}

	tests := []struct {
		crossingIn time.Duration
		expected   models.Severity
	}{
		{24 * time.Hour, models.SeverityCritical},
		{5 * 24 * time.Hour, models.SeverityHigh},
		{10 * 24 * time.Hour, models.SeverityMedium},
		{20 * 24 * time.Hour, models.SeverityLow},
	}
	for _, tt := range tests {
		trend := models.TrendResult{
			Metric:              models.MetricDrift,
			PredictedCrossingAt: at(tt.crossingIn),
		}
		assert.Equal(t, tt.expected, AlertSeverity(trend, now))
	}
}

func TestForecastMetric_irregularSamplingLowersConfidence(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	forecaster := NewForecaster(clock.NewMock(now))

	values := []float64{0.02, 0.03, 0.04, 0.05, 0.06}
	regular := forecaster.ForecastMetric(models.MetricDrift,
		samplesAt(now.Add(-4*24*time.Hour), 24*time.Hour, values))

	irregularSamples := []models.MetricSample{
		{Timestamp: now.Add(-10 * 24 * time.Hour), Value: 0.02},
		{Timestamp: now.Add(-9*24*time.Hour - 23*time.Hour), Value: 0.03},
		{Timestamp: now.Add(-9 * 24 * time.Hour), Value: 0.04},
		{Timestamp: now.Add(-8*24*time.Hour - 23*time.Hour), Value: 0.05},
		{Timestamp: now, Value: 0.06},
	}
	irregular := forecaster.ForecastMetric(models.MetricDrift, irregularSamples)

	assert.NotNil(t, regular)
	assert.NotNil(t, irregular)
	assert.Greater(t, regular.Confidence, irregular.Confidence)
}
