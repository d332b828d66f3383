package policy_eval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/pure_utils"
)

var evalNow = time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

func radiologySystem() models.AISystem {
	return models.AISystem{
		Id:             "sys-1",
		OrganizationId: "org-1",
		Name:           "triage-model",
		Department:     "Radiology",
		Category:       "diagnostic",
		VendorId:       "vendor-1",
		RiskLevel:      models.RiskMedium,
		Certified:      true,
	}
}

func activePolicy(policyType models.PolicyType) models.Policy {
	return models.Policy{
		Id:             "policy-1",
		OrganizationId: "org-1",
		Name:           "radiology-governance",
		Type:           policyType,
		Scope:          models.ScopeAll,
		Active:         true,
	}
}

func TestEvaluate_noApplicablePolicyIsAllowed(t *testing.T) {
	evaluator := NewEvaluator()

	result := evaluator.Evaluate(radiologySystem(), "deploy", nil, evalNow)

	assert.True(t, result.Allowed)
	assert.Empty(t, result.Violations)
	assert.False(t, result.RequiresApproval)
}

func TestEvaluate_prohibitedPolicyAlwaysCritical(t *testing.T) {
	evaluator := NewEvaluator()

	lowRisk := radiologySystem()
	lowRisk.RiskLevel = models.RiskLow

	result := evaluator.Evaluate(lowRisk, "deploy",
		[]models.Policy{activePolicy(models.PolicyProhibited)}, evalNow)

	assert.False(t, result.Allowed)
	if assert.Len(t, result.Violations, 1) {
		violation := result.Violations[0]
		assert.Equal(t, models.SeverityCritical, violation.Severity)
		assert.Equal(t, models.ViolationSourcePolicy, violation.Source)
		if assert.NotNil(t, violation.PolicyId) {
			assert.Equal(t, "policy-1", *violation.PolicyId)
		}
	}
}

func TestEvaluate_inactiveAndDeletedPoliciesAreSkipped(t *testing.T) {
	evaluator := NewEvaluator()

	inactive := activePolicy(models.PolicyProhibited)
	inactive.Active = false

	deleted := activePolicy(models.PolicyProhibited)
	deleted.Id = "policy-2"
	deletedAt := evalNow.Add(-time.Hour)
	deleted.DeletedAt = &deletedAt

	result := evaluator.Evaluate(radiologySystem(), "deploy",
		[]models.Policy{inactive, deleted}, evalNow)

	assert.True(t, result.Allowed)
}

func TestEvaluate_scopeFilter(t *testing.T) {
	evaluator := NewEvaluator()

	policy := activePolicy(models.PolicyProhibited)
	policy.Scope = models.ScopeDepartment
	policy.ScopeFilter = []string{"Cardiology"}

	result := evaluator.Evaluate(radiologySystem(), "deploy", []models.Policy{policy}, evalNow)
	assert.True(t, result.Allowed)

	policy.ScopeFilter = []string{"Cardiology", "Radiology"}
	result = evaluator.Evaluate(radiologySystem(), "deploy", []models.Policy{policy}, evalNow)
	assert.False(t, result.Allowed)
}

func TestEvaluate_emptyScopeFilterMatchesWholeAxis(t *testing.T) {
	evaluator := NewEvaluator()

	policy := activePolicy(models.PolicyProhibited)
	policy.Scope = models.ScopeVendor
	policy.ScopeFilter = nil

	result := evaluator.Evaluate(radiologySystem(), "deploy", []models.Policy{policy}, evalNow)

	assert.False(t, result.Allowed)
}

func TestEvaluate_riskBounds(t *testing.T) {
	evaluator := NewEvaluator()

	policy := activePolicy(models.PolicyRestricted)
	policy.Conditions = models.PolicyConditions{
		MaxRiskLevel: pure_utils.Ptr(models.RiskMedium),
	}

	t.Run("within bounds", func(t *testing.T) {
		result := evaluator.Evaluate(radiologySystem(), "deploy", []models.Policy{policy}, evalNow)
		assert.True(t, result.Allowed)
	})

	t.Run("above maximum", func(t *testing.T) {
		critical := radiologySystem()
		critical.RiskLevel = models.RiskCritical
		result := evaluator.Evaluate(critical, "deploy", []models.Policy{policy}, evalNow)
		assert.False(t, result.Allowed)
		if assert.Len(t, result.Violations, 1) {
			assert.Equal(t, models.SeverityHigh, result.Violations[0].Severity)
		}
	})

	t.Run("below minimum", func(t *testing.T) {
		bounded := activePolicy(models.PolicyMonitored)
		bounded.Conditions = models.PolicyConditions{
			MinRiskLevel: pure_utils.Ptr(models.RiskHigh),
		}
		result := evaluator.Evaluate(radiologySystem(), "deploy", []models.Policy{bounded}, evalNow)
		assert.False(t, result.Allowed)
	})
}

func TestEvaluate_certificationRequirement(t *testing.T) {
	evaluator := NewEvaluator()

	policy := activePolicy(models.PolicyRestricted)
	policy.Conditions = models.PolicyConditions{RequireCertification: true}

	uncertified := radiologySystem()
	uncertified.Certified = false

	result := evaluator.Evaluate(uncertified, "deploy", []models.Policy{policy}, evalNow)

	assert.False(t, result.Allowed)
	if assert.Len(t, result.Violations, 1) {
		assert.Contains(t, result.Violations[0].Description, "not certified")
	}
}

func TestEvaluate_approvalRequiredWithoutConditionViolations(t *testing.T) {
	evaluator := NewEvaluator()

	policy := activePolicy(models.PolicyApprovalRequired)
	policy.Enforcement.Approval = &models.ApprovalWorkflow{
		ApproverRoles: []string{"compliance_officer", "cto"},
	}

	result := evaluator.Evaluate(radiologySystem(), "deploy", []models.Policy{policy}, evalNow)

	assert.False(t, result.Allowed)
	assert.Empty(t, result.Violations)
	assert.True(t, result.RequiresApproval)
	assert.Equal(t, []string{"compliance_officer", "cto"}, result.Approvers)
}

func TestEvaluate_approverRolesAreMergedAndDeduplicated(t *testing.T) {
	evaluator := NewEvaluator()

	first := activePolicy(models.PolicyApprovalRequired)
	first.Enforcement.Approval = &models.ApprovalWorkflow{
		ApproverRoles: []string{"compliance_officer", "cto"},
	}

	second := activePolicy(models.PolicyApprovalRequired)
	second.Id = "policy-2"
	second.Enforcement.Approval = &models.ApprovalWorkflow{
		ApproverRoles: []string{"compliance_officer", "security_officer"},
	}

	result := evaluator.Evaluate(radiologySystem(), "deploy",
		[]models.Policy{first, second}, evalNow)

	assert.True(t, result.RequiresApproval)
	assert.Equal(t, []string{"compliance_officer", "cto", "security_officer"}, result.Approvers)
}
