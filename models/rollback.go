package models

import "time"

type RollbackTrigger string

const (
	RollbackTriggerAutomated RollbackTrigger = "automated"
	RollbackTriggerManual    RollbackTrigger = "manual"
	RollbackTriggerPolicy    RollbackTrigger = "policy"
)

type RollbackStatus int

const (
	RollbackPendingApproval RollbackStatus = iota
	RollbackApproved
	RollbackInProgress
	RollbackCompleted
	RollbackFailed
	UnknownRollbackStatus
)

func (s RollbackStatus) String() string {
	switch s {
	case RollbackPendingApproval:
		return "pending_approval"
	case RollbackApproved:
		return "approved"
	case RollbackInProgress:
		return "in_progress"
	case RollbackCompleted:
		return "completed"
	case RollbackFailed:
		return "failed"
	}
	return "unknown"
}

func RollbackStatusFrom(s string) RollbackStatus {
	switch s {
	case "pending_approval":
		return RollbackPendingApproval
	case "approved":
		return RollbackApproved
	case "in_progress":
		return RollbackInProgress
	case "completed":
		return RollbackCompleted
	case "failed":
		return RollbackFailed
	}
	return UnknownRollbackStatus
}

// IsTerminal reports whether no further transition is allowed from s.
func (s RollbackStatus) IsTerminal() bool {
	return s == RollbackCompleted || s == RollbackFailed
}

// RollbackExecution is one tracked attempt to revert an AI system's active
// deployment to a prior version. FromVersion and ToVersion are fixed at
// creation and preserved unchanged across all transitions.
type RollbackExecution struct {
	Id             string
	OrganizationId string
	AISystemId     string
	FromVersion    string
	ToVersion      string
	Trigger        RollbackTrigger
	Status         RollbackStatus
	TriggeredBy    string
	ApprovedBy     *string
	Error          *string
	CreatedAt      time.Time
	CompletedAt    *time.Time
}

// RollbackStatusUpdate carries the optional bookkeeping fields written along a
// status transition. From/to versions are deliberately absent: they are
// immutable.
type RollbackStatusUpdate struct {
	ApprovedBy *string
	Error      *string
}

// RollbackTriggerRule matches a (violationType, severity) pair; "*" is a
// wildcard on either side.
type RollbackTriggerRule struct {
	ViolationType string
	Severity      string
}

func (r RollbackTriggerRule) Matches(violationType string, severity Severity) bool {
	if r.ViolationType != "*" && r.ViolationType != violationType {
		return false
	}
	if r.Severity != "*" && r.Severity != severity.String() {
		return false
	}
	return true
}

// RollbackPolicy configures whether and how automated rollback fires for one
// AI system.
type RollbackPolicy struct {
	Id             string
	OrganizationId string
	AISystemId     string
	Enabled        bool
	Triggers       []RollbackTriggerRule
	// AutoRollbackOnCritical lets any critical violation trigger a rollback even
	// when no trigger rule matches.
	AutoRollbackOnCritical bool
	CooldownMinutes        int
	MaxAutomatedPerDay     int
	RequireApproval        bool
	// ApproverRoles restricts who may approve. Empty means any authenticated
	// approver.
	ApproverRoles []string
	CreatedAt     time.Time
}

// CreateRollbackPolicyInput configures automated rollback for one AI system.
// CooldownMinutes and MaxAutomatedPerDay are optional; absent values take the
// defaults of 60 minutes and 3 per day.
type CreateRollbackPolicyInput struct {
	OrganizationId string                     `validate:"required,uuid4"`
	AISystemId     string                     `validate:"required"`
	Enabled        bool
	Triggers       []RollbackTriggerRuleInput `validate:"dive"`

	AutoRollbackOnCritical bool
	CooldownMinutes        *int `validate:"omitempty,gte=0"`
	MaxAutomatedPerDay     *int `validate:"omitempty,gte=1"`

	RequireApproval bool
	ApproverRoles   []string `validate:"dive,required"`
}

// RollbackTriggerRuleInput is the raw form of a trigger rule. Either side may
// be the "*" wildcard; a non-wildcard severity must name a valid one.
type RollbackTriggerRuleInput struct {
	ViolationType string `validate:"required"`
	Severity      string `validate:"required"`
}
