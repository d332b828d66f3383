package models

import "time"

type ViolationSource int

const (
	ViolationSourceRegulation ViolationSource = iota
	ViolationSourcePolicy
	UnknownViolationSource
)

func (s ViolationSource) String() string {
	switch s {
	case ViolationSourceRegulation:
		return "regulation"
	case ViolationSourcePolicy:
		return "policy"
	}
	return "unknown"
}

func ViolationSourceFrom(s string) ViolationSource {
	switch s {
	case "regulation":
		return ViolationSourceRegulation
	case "policy":
		return ViolationSourcePolicy
	}
	return UnknownViolationSource
}

// Violation is a confirmed breach of a regulation or tenant policy, tied to one
// AI system and one point in time. It is never mutated after creation except for
// the resolution fields, which are set exactly once.
type Violation struct {
	Id             string
	OrganizationId string
	AISystemId     string
	Source         ViolationSource
	Framework      string
	RegulationId   *string
	PolicyId       *string
	ControlId      string
	Severity       Severity

	// Description may reference sensitive system behavior; it is stored
	// encrypted and decrypted on read through the encryption capability.
	Description string

	ReportingRequired bool
	ReportingDeadline *time.Time

	DetectedAt time.Time
	ResolvedAt *time.Time
	ResolvedBy *string
}

func (v Violation) IsResolved() bool {
	return v.ResolvedAt != nil
}
