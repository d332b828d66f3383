package models

// MetricKind is the closed set of monitored telemetry metrics. Raw metric names
// are resolved to a MetricKind at the ingestion boundary; unknown names are
// rejected there rather than deep inside the forecaster.
type MetricKind int

const (
	MetricDrift MetricKind = iota
	MetricErrorRate
	MetricLatency
	MetricBiasScore
	MetricPhiLeakage
	UnknownMetric
)

var MonitoredMetrics = []MetricKind{
	MetricDrift,
	MetricErrorRate,
	MetricLatency,
	MetricBiasScore,
	MetricPhiLeakage,
}

func (m MetricKind) String() string {
	switch m {
	case MetricDrift:
		return "drift"
	case MetricErrorRate:
		return "error_rate"
	case MetricLatency:
		return "latency"
	case MetricBiasScore:
		return "bias_score"
	case MetricPhiLeakage:
		return "phi_leakage"
	}
	return "unknown"
}

func MetricKindFrom(s string) (MetricKind, error) {
	switch s {
	case "drift":
		return MetricDrift, nil
	case "error_rate":
		return MetricErrorRate, nil
	case "latency":
		return MetricLatency, nil
	case "bias_score":
		return MetricBiasScore, nil
	case "phi_leakage":
		return MetricPhiLeakage, nil
	}
	return UnknownMetric, ErrUnknownMetric
}

// metricThresholds holds the alerting threshold per metric. All monitored
// metrics breach upward.
var metricThresholds = map[MetricKind]float64{
	MetricDrift:      0.15,
	MetricErrorRate:  0.05,
	MetricLatency:    2000,
	MetricBiasScore:  0.10,
	MetricPhiLeakage: 0,
}

func (m MetricKind) Threshold() (float64, bool) {
	threshold, ok := metricThresholds[m]
	return threshold, ok
}

// IsPrivacySensitive reports whether a predicted breach of this metric is
// always critical, regardless of how far out the crossing is.
func (m MetricKind) IsPrivacySensitive() bool {
	return m == MetricPhiLeakage
}
