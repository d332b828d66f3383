package models

import "time"

type ActionType string

const (
	ActionNotify   ActionType = "notify"
	ActionDocument ActionType = "document"
	ActionRollback ActionType = "rollback"
	ActionRestrict ActionType = "restrict"
	ActionEscalate ActionType = "escalate"
)

// ActionPriority orders remediation work: immediate < urgent < high < medium < low.
// Lower value means more urgent.
type ActionPriority int

const (
	PriorityImmediate ActionPriority = iota
	PriorityUrgent
	PriorityHigh
	PriorityMedium
	PriorityLow
	UnknownPriority
)

func (p ActionPriority) String() string {
	switch p {
	case PriorityImmediate:
		return "immediate"
	case PriorityUrgent:
		return "urgent"
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	}
	return "unknown"
}

func ActionPriorityFrom(s string) ActionPriority {
	switch s {
	case "immediate":
		return PriorityImmediate
	case "urgent":
		return PriorityUrgent
	case "high":
		return PriorityHigh
	case "medium":
		return PriorityMedium
	case "low":
		return PriorityLow
	}
	return UnknownPriority
}

// RequiredAction is a concrete remediation task derived from a Violation, with
// an owner and a deadline. Many actions may derive from one violation.
type RequiredAction struct {
	Id           string
	ViolationId  string
	Type         ActionType
	Priority     ActionPriority
	AssigneeRole string
	Deadline     time.Time
	Automated    bool
	Description  string
	Details      string
	CreatedAt    time.Time
	CompletedAt  *time.Time
	CompletedBy  *string
}

const actionDedupDescriptionPrefixLen = 50

// DedupKey identifies duplicate actions within one violation: same type, same
// assignee, same description prefix. The higher-priority duplicate wins.
func (a RequiredAction) DedupKey() string {
	description := a.Description
	if len(description) > actionDedupDescriptionPrefixLen {
		description = description[:actionDedupDescriptionPrefixLen]
	}
	return string(a.Type) + "|" + a.AssigneeRole + "|" + description
}
