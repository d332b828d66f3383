package models

import "time"

// EnforcementLogEntry is one append-only record of a policy enforcement
// decision. The log is intentionally append-only for audit purposes: repeated
// evaluations of the same system re-log their violations.
type EnforcementLogEntry struct {
	Id             string
	OrganizationId string
	PolicyId       string
	AISystemId     string
	Action         string
	ViolationId    *string
	CreatedAt      time.Time
}

// GovernanceAlert is an operator-facing alert raised by enforcement side
// effects or by the predictive monitoring loop. Unlike the enforcement log,
// alerts are deduplicated within a time window.
type GovernanceAlert struct {
	Id             string
	OrganizationId string
	AISystemId     string
	Source         string
	Severity       Severity
	Message        string
	CreatedAt      time.Time
}

const (
	AlertSourcePolicy     = "policy_enforcement"
	AlertSourcePredictive = "predictive_monitoring"
)
