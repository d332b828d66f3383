package models

import "time"

// EventType identifies the kind of compliance event carried by a telemetry
// record. The set is closed: ingestion rejects anything else.
type EventType string

const (
	EventBiasDetected           EventType = "bias_detected"
	EventDriftDetected          EventType = "drift_detected"
	EventPhiExposure            EventType = "phi_exposure"
	EventPrivacyIncident        EventType = "privacy_incident"
	EventErrorSpike             EventType = "error_spike"
	EventPerformanceDegradation EventType = "performance_degradation"
	EventSecurityIncident       EventType = "security_incident"
)

var ValidEventTypes = []EventType{
	EventBiasDetected,
	EventDriftDetected,
	EventPhiExposure,
	EventPrivacyIncident,
	EventErrorSpike,
	EventPerformanceDegradation,
	EventSecurityIncident,
}

func EventTypeFrom(s string) (EventType, bool) {
	for _, t := range ValidEventTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// TelemetryEvent is one immutable telemetry record for an AI system. Events are
// produced by an external ingestion collaborator and never mutated here.
type TelemetryEvent struct {
	Id         string
	AISystemId string
	EventType  EventType
	Metric     MetricKind
	Value      float64
	Severity   Severity
	Timestamp  time.Time
}

// MetricSample is one (timestamp, value) point of a metric time series.
type MetricSample struct {
	Timestamp time.Time
	Value     float64
}
