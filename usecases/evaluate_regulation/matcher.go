package evaluate_regulation

import (
	"fmt"
	"time"

	"github.com/modelproof/modelproof-backend/models"
)

// Matcher decides which regulations apply to an AI system + event pair and
// emits normalized violations. It is a pure function of its inputs.
type Matcher struct{}

func NewMatcher() Matcher {
	return Matcher{}
}

// MatchEvent evaluates one telemetry event against the active regulations.
// Multiple regulations may fire for one event; each yields an independent
// violation. Violations are returned without ids, the caller persists them.
func (m Matcher) MatchEvent(
	system models.AISystem,
	event models.TelemetryEvent,
	regulations []models.Regulation,
) []models.Violation {
	var violations []models.Violation
	for _, regulation := range regulations {
		if !regulationApplies(regulation, system, event) {
			continue
		}
		violations = append(violations, buildViolation(regulation, system, event))
	}
	return violations
}

// regulationApplies is the conjunction of the three gates: event-type
// membership, geography and category. Geography alone is never sufficient.
func regulationApplies(
	regulation models.Regulation,
	system models.AISystem,
	event models.TelemetryEvent,
) bool {
	if !regulation.AppliesToEventType(event.EventType) {
		return false
	}
	if !geographicGate(regulation, system) {
		return false
	}
	return categoryGate(regulation, system)
}

// geographicGate: federal controls apply everywhere, state overlays only to
// systems deployed in that state.
func geographicGate(regulation models.Regulation, system models.AISystem) bool {
	if regulation.IsFederal() {
		return true
	}
	return regulation.Jurisdiction == system.Location
}

// categoryGate checks the system-attribute requirements of the regulation. A
// regulation with no attribute requirement passes trivially.
func categoryGate(regulation models.Regulation, system models.AISystem) bool {
	if regulation.RequiresHighRisk && !system.IsHighRisk {
		return false
	}
	if regulation.RequiresEmploymentAI && !system.IsEmploymentAI {
		return false
	}
	return true
}

func buildViolation(
	regulation models.Regulation,
	system models.AISystem,
	event models.TelemetryEvent,
) models.Violation {
	violation := models.Violation{
		OrganizationId:    system.OrganizationId,
		AISystemId:        system.Id,
		Source:            models.ViolationSourceRegulation,
		Framework:         regulation.Framework,
		RegulationId:      &regulation.Id,
		ControlId:         regulation.ControlId,
		Severity:          resolveSeverity(regulation, event),
		Description:       describeViolation(regulation, system, event),
		ReportingRequired: regulation.ReportingRequired,
		DetectedAt:        event.Timestamp,
	}
	if regulation.ReportingRequired && regulation.ReportingDeadlineDays > 0 {
		deadline := event.Timestamp.Add(time.Duration(regulation.ReportingDeadlineDays) * 24 * time.Hour)
		violation.ReportingDeadline = &deadline
	}
	return violation
}

// resolveSeverity: a critical event stays critical, then the regulation's
// per-event-type override wins, then the event's own severity, then medium.
func resolveSeverity(regulation models.Regulation, event models.TelemetryEvent) models.Severity {
	if event.Severity == models.SeverityCritical {
		return models.SeverityCritical
	}
	if override, ok := regulation.SeverityOverrides[event.EventType]; ok {
		return override
	}
	if event.Severity != models.UnknownSeverity {
		return event.Severity
	}
	return models.SeverityMedium
}

func describeViolation(
	regulation models.Regulation,
	system models.AISystem,
	event models.TelemetryEvent,
) string {
	return fmt.Sprintf("%s control %s (%s) triggered by %s event on system %q",
		regulation.Framework, regulation.ControlId, regulation.ControlName,
		event.EventType, system.Name)
}
