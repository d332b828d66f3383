package models

import "time"

type DeploymentStatus int

const (
	DeploymentActive DeploymentStatus = iota
	DeploymentDeprecated
	DeploymentRolledBack
	UnknownDeploymentStatus
)

func (s DeploymentStatus) String() string {
	switch s {
	case DeploymentActive:
		return "active"
	case DeploymentDeprecated:
		return "deprecated"
	case DeploymentRolledBack:
		return "rolled_back"
	}
	return "unknown"
}

func DeploymentStatusFrom(s string) DeploymentStatus {
	switch s {
	case "active":
		return DeploymentActive
	case "deprecated":
		return DeploymentDeprecated
	case "rolled_back":
		return DeploymentRolledBack
	}
	return UnknownDeploymentStatus
}

type DeploymentType string

const (
	DeploymentTypeStandard DeploymentType = "standard"
	DeploymentTypeRollback DeploymentType = "rollback"
)

// DeploymentRecord is one version of one AI system's deployment history.
// Invariant: at most one active record per AI system at any time. Recording a
// new deployment atomically demotes the prior active record.
type DeploymentRecord struct {
	Id             string
	OrganizationId string
	AISystemId     string
	Version        string
	Status         DeploymentStatus
	Type           DeploymentType
	DeployedBy     string
	// RollbackFrom is set on rollback-type records and points at the version
	// that was rolled back.
	RollbackFrom *string
	DeployedAt   time.Time
}
