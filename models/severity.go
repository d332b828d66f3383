package models

type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
	UnknownSeverity
)

var ValidSeverities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	}
	return "unknown"
}

func SeverityFrom(s string) Severity {
	for _, severity := range ValidSeverities {
		if severity.String() == s {
			return severity
		}
	}
	return UnknownSeverity
}

// AtLeast reports whether s is at least as severe as other.
func (s Severity) AtLeast(other Severity) bool {
	return s >= other && s != UnknownSeverity
}

type RiskLevel int

const (
	RiskLow RiskLevel = iota + 1
	RiskMedium
	RiskHigh
	RiskCritical
	UnknownRiskLevel RiskLevel = 0
)

func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	case RiskCritical:
		return "critical"
	}
	return "unknown"
}

func RiskLevelFrom(s string) RiskLevel {
	switch s {
	case "low":
		return RiskLow
	case "medium":
		return RiskMedium
	case "high":
		return RiskHigh
	case "critical":
		return RiskCritical
	}
	return UnknownRiskLevel
}

// Rank is the ordinal used when comparing a system's risk level against policy
// bounds (low=1 .. critical=4).
func (r RiskLevel) Rank() int {
	return int(r)
}
