package remediation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/modelproof/modelproof-backend/models"
)

func hipaaBreachViolation(severity models.Severity) models.Violation {
	return models.Violation{
		Id:         "violation-1",
		Framework:  "HIPAA",
		ControlId:  "164.404",
		Severity:   severity,
		DetectedAt: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestGenerateForViolation_breachNotificationPlaybook(t *testing.T) {
	generator := NewGenerator()

	actions := generator.GenerateForViolation(hipaaBreachViolation(models.SeverityHigh))

	if assert.Len(t, actions, 2) {
		assert.Equal(t, models.ActionNotify, actions[0].Type)
		assert.Equal(t, models.PriorityImmediate, actions[0].Priority)
		assert.Equal(t, RolePrivacyOfficer, actions[0].AssigneeRole)
		assert.Equal(t, hipaaBreachViolation(models.SeverityHigh).DetectedAt.Add(2*time.Hour),
			actions[0].Deadline)

		assert.Equal(t, models.ActionDocument, actions[1].Type)
		assert.Equal(t, models.PriorityHigh, actions[1].Priority)
	}
}

func TestGenerateForViolation_criticalAddsRollback(t *testing.T) {
	generator := NewGenerator()

	actions := generator.GenerateForViolation(hipaaBreachViolation(models.SeverityCritical))

	types := make([]models.ActionType, len(actions))
	for i, action := range actions {
		types[i] = action.Type
	}
	assert.Contains(t, types, models.ActionRollback)
	assert.Len(t, actions, 3)
}

func TestGenerateForViolation_unknownControlEscalates(t *testing.T) {
	generator := NewGenerator()

	violation := hipaaBreachViolation(models.SeverityMedium)
	violation.ControlId = "999.999"

	actions := generator.GenerateForViolation(violation)

	if assert.Len(t, actions, 1) {
		assert.Equal(t, models.ActionEscalate, actions[0].Type)
		assert.Equal(t, RoleComplianceOfficer, actions[0].AssigneeRole)
	}
}

func TestGenerateForViolation_sortedByPriorityThenDeadline(t *testing.T) {
	generator := NewGenerator()

	actions := generator.GenerateForViolation(hipaaBreachViolation(models.SeverityCritical))

	for i := 1; i < len(actions); i++ {
		previous, current := actions[i-1], actions[i]
		if previous.Priority == current.Priority {
			assert.False(t, current.Deadline.Before(previous.Deadline))
		} else {
			assert.Less(t, int(previous.Priority), int(current.Priority))
		}
	}
}

func TestDedupActions_keepsHigherPriorityDuplicate(t *testing.T) {
	deadline := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	duplicateDescription := "Notify privacy officer of potential PHI breach"

	actions := dedupActions([]models.RequiredAction{
		{
			Type:         models.ActionNotify,
			Priority:     models.PriorityHigh,
			AssigneeRole: RolePrivacyOfficer,
			Deadline:     deadline,
			Description:  duplicateDescription,
		},
		{
			Type:         models.ActionNotify,
			Priority:     models.PriorityImmediate,
			AssigneeRole: RolePrivacyOfficer,
			Deadline:     deadline,
			Description:  duplicateDescription,
		},
	})

	if assert.Len(t, actions, 1) {
		assert.Equal(t, models.PriorityImmediate, actions[0].Priority)
	}
}

func TestDedupActions_prefixOnlyComparesFirst50Chars(t *testing.T) {
	base := "Notify privacy officer of potential PHI breach in the"

	actions := dedupActions([]models.RequiredAction{
		{Type: models.ActionNotify, AssigneeRole: RolePrivacyOfficer, Priority: models.PriorityHigh, Description: base + " cardiology model"},
		{Type: models.ActionNotify, AssigneeRole: RolePrivacyOfficer, Priority: models.PriorityUrgent, Description: base + " radiology model"},
	})

	// Same 50-char prefix, so the two collapse into the more urgent one.
	if assert.Len(t, actions, 1) {
		assert.Equal(t, models.PriorityUrgent, actions[0].Priority)
	}
}

func TestGenerate_batchKeyedByViolationId(t *testing.T) {
	generator := NewGenerator()

	first := hipaaBreachViolation(models.SeverityMedium)
	second := hipaaBreachViolation(models.SeverityMedium)
	second.Id = "violation-2"
	second.Framework = "FED-AI"
	second.ControlId = "FED-DR-01"

	actions := generator.Generate([]models.Violation{first, second})

	assert.Len(t, actions, 2)
	assert.NotEmpty(t, actions["violation-1"])
	assert.NotEmpty(t, actions["violation-2"])
	for _, action := range actions["violation-2"] {
		assert.Equal(t, "violation-2", action.ViolationId)
	}
}
