package models

import "time"

type PolicyType int

const (
	PolicyProhibited PolicyType = iota
	PolicyApprovalRequired
	PolicyRestricted
	PolicyMonitored
	UnknownPolicyType
)

func (t PolicyType) String() string {
	switch t {
	case PolicyProhibited:
		return "prohibited"
	case PolicyApprovalRequired:
		return "approval_required"
	case PolicyRestricted:
		return "restricted"
	case PolicyMonitored:
		return "monitored"
	}
	return "unknown"
}

func PolicyTypeFrom(s string) PolicyType {
	switch s {
	case "prohibited":
		return PolicyProhibited
	case "approval_required":
		return PolicyApprovalRequired
	case "restricted":
		return PolicyRestricted
	case "monitored":
		return PolicyMonitored
	}
	return UnknownPolicyType
}

type PolicyScope int

const (
	ScopeAll PolicyScope = iota
	ScopeDepartment
	ScopeCategory
	ScopeVendor
	UnknownPolicyScope
)

func (s PolicyScope) String() string {
	switch s {
	case ScopeAll:
		return "all"
	case ScopeDepartment:
		return "department"
	case ScopeCategory:
		return "category"
	case ScopeVendor:
		return "vendor"
	}
	return "unknown"
}

func PolicyScopeFrom(s string) PolicyScope {
	switch s {
	case "all":
		return ScopeAll
	case "department":
		return ScopeDepartment
	case "category":
		return ScopeCategory
	case "vendor":
		return ScopeVendor
	}
	return UnknownPolicyScope
}

// PolicyConditions is the typed condition block of a policy. A nil bound means
// no restriction on that axis.
type PolicyConditions struct {
	MinRiskLevel         *RiskLevel
	MaxRiskLevel         *RiskLevel
	RequireCertification bool
}

type EnforcementAction string

const (
	EnforcementCreateAlert     EnforcementAction = "create_alert"
	EnforcementBlockDeployment EnforcementAction = "block_deployment"
	EnforcementNotifyOwner     EnforcementAction = "notify_owner"
)

// ApprovalWorkflow configures the human approval step of an approval_required
// policy.
type ApprovalWorkflow struct {
	ApproverRoles            []string
	AllRequired              bool
	EscalationTimeoutMinutes int
}

// EnforcementConfig is the typed enforcement block of a policy, validated at
// write time so the evaluator never does runtime type coercion.
type EnforcementConfig struct {
	Actions  []EnforcementAction
	Approval *ApprovalWorkflow
}

// Policy is a tenant-authored rule constraining AI-system behavior,
// independent of framework regulations.
type Policy struct {
	Id             string
	OrganizationId string
	Name           string
	Type           PolicyType
	Scope          PolicyScope
	// ScopeFilter is an allow-list of values on the scope axis. Empty means no
	// restriction (only meaningful when Scope != all).
	ScopeFilter []string
	Conditions  PolicyConditions
	Enforcement EnforcementConfig
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// AppliesTo reports whether the policy's scope matches the system. Filters are
// allow-lists; an absent filter means no restriction on that axis.
func (p Policy) AppliesTo(system AISystem) bool {
	switch p.Scope {
	case ScopeAll:
		return true
	case ScopeDepartment:
		return p.scopeFilterMatches(system.Department)
	case ScopeCategory:
		return p.scopeFilterMatches(system.Category)
	case ScopeVendor:
		return p.scopeFilterMatches(system.VendorId)
	}
	return false
}

func (p Policy) scopeFilterMatches(value string) bool {
	if len(p.ScopeFilter) == 0 {
		return true
	}
	for _, allowed := range p.ScopeFilter {
		if allowed == value {
			return true
		}
	}
	return false
}

// PolicyEvaluation is the outcome of evaluating one AI system against all
// active policies of its tenant.
type PolicyEvaluation struct {
	Allowed          bool
	Violations       []Violation
	RequiresApproval bool
	Approvers        []string
}

type CreatePolicyInput struct {
	OrganizationId string   `validate:"required,uuid4"`
	Name           string   `validate:"required"`
	Type           string   `validate:"required,oneof=prohibited approval_required restricted monitored"`
	Scope          string   `validate:"required,oneof=all department category vendor"`
	ScopeFilter    []string `validate:"dive,required"`
	MinRiskLevel   *string  `validate:"omitempty,oneof=low medium high critical"`
	MaxRiskLevel   *string  `validate:"omitempty,oneof=low medium high critical"`

	RequireCertification bool

	EnforcementActions []string `validate:"dive,oneof=create_alert block_deployment notify_owner"`

	ApproverRoles            []string `validate:"dive,required"`
	ApprovalAllRequired      bool
	EscalationTimeoutMinutes int `validate:"gte=0"`
}
