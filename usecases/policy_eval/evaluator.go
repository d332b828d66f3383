package policy_eval

import (
	"fmt"
	"sort"
	"time"

	"github.com/hashicorp/go-set/v2"

	"github.com/modelproof/modelproof-backend/models"
)

// Evaluator checks an AI system against its tenant's active policies. It is a
// pure function of its inputs; persistence of violations and enforcement side
// effects belong to the caller.
type Evaluator struct{}

func NewEvaluator() Evaluator {
	return Evaluator{}
}

// Evaluate runs every applicable policy against the system. The result is
// allowed only when no policy produced a violation and no approval requirement
// is outstanding.
func (e Evaluator) Evaluate(
	system models.AISystem,
	action string,
	policies []models.Policy,
	now time.Time,
) models.PolicyEvaluation {
	evaluation := models.PolicyEvaluation{}
	approvers := set.New[string](0)

	for _, policy := range policies {
		if !policy.Active || policy.DeletedAt != nil {
			continue
		}
		if !policy.AppliesTo(system) {
			continue
		}

		evaluation.Violations = append(evaluation.Violations,
			evaluatePolicy(policy, system, action, now)...)

		if policy.Type == models.PolicyApprovalRequired {
			evaluation.RequiresApproval = true
			if policy.Enforcement.Approval != nil {
				approvers.InsertSlice(policy.Enforcement.Approval.ApproverRoles)
			}
		}
	}

	if !approvers.Empty() {
		evaluation.Approvers = approvers.Slice()
		sort.Strings(evaluation.Approvers)
	}
	evaluation.Allowed = len(evaluation.Violations) == 0 && !evaluation.RequiresApproval
	return evaluation
}

// evaluatePolicy returns the violations one applicable policy produces for the
// system. A prohibited policy is always a critical violation; the other types
// only violate when a condition fails.
func evaluatePolicy(
	policy models.Policy,
	system models.AISystem,
	action string,
	now time.Time,
) []models.Violation {
	if policy.Type == models.PolicyProhibited {
		return []models.Violation{newPolicyViolation(policy, system, now,
			models.SeverityCritical,
			fmt.Sprintf("action %q is prohibited by policy %q", action, policy.Name))}
	}

	var violations []models.Violation
	for _, reason := range conditionFailures(policy.Conditions, system) {
		violations = append(violations, newPolicyViolation(policy, system, now,
			conditionSeverity(policy.Type),
			fmt.Sprintf("policy %q: %s", policy.Name, reason)))
	}
	return violations
}

// conditionFailures lists the condition checks the system fails, as
// human-readable reasons. Risk bounds compare the ordinal risk rank.
func conditionFailures(conditions models.PolicyConditions, system models.AISystem) []string {
	var reasons []string
	if conditions.MinRiskLevel != nil && system.RiskLevel.Rank() < conditions.MinRiskLevel.Rank() {
		reasons = append(reasons, fmt.Sprintf("risk level %s is below the required minimum %s",
			system.RiskLevel, *conditions.MinRiskLevel))
	}
	if conditions.MaxRiskLevel != nil && system.RiskLevel.Rank() > conditions.MaxRiskLevel.Rank() {
		reasons = append(reasons, fmt.Sprintf("risk level %s exceeds the allowed maximum %s",
			system.RiskLevel, *conditions.MaxRiskLevel))
	}
	if conditions.RequireCertification && !system.Certified {
		reasons = append(reasons, "system is not certified")
	}
	return reasons
}

func conditionSeverity(policyType models.PolicyType) models.Severity {
	if policyType == models.PolicyRestricted {
		return models.SeverityHigh
	}
	return models.SeverityMedium
}

func newPolicyViolation(
	policy models.Policy,
	system models.AISystem,
	now time.Time,
	severity models.Severity,
	description string,
) models.Violation {
	return models.Violation{
		OrganizationId: system.OrganizationId,
		AISystemId:     system.Id,
		Source:         models.ViolationSourcePolicy,
		PolicyId:       &policy.Id,
		Severity:       severity,
		Description:    description,
		DetectedAt:     now,
	}
}
