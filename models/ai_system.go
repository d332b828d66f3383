package models

import "time"

// AISystem is the registry read model for one deployed AI system. The registry
// itself is owned by an external collaborator; this subsystem only reads it.
type AISystem struct {
	Id             string
	OrganizationId string
	Name           string
	Department     string
	Location       string
	RiskLevel      RiskLevel
	VendorId       string
	Category       string
	Certified      bool
	IsHighRisk     bool
	IsEmploymentAI bool
	CreatedAt      time.Time
}
