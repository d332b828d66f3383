package remediation

import (
	"time"

	"github.com/modelproof/modelproof-backend/models"
)

const (
	RolePrivacyOfficer    = "privacy_officer"
	RoleComplianceOfficer = "compliance_officer"
	RoleMLEngineer        = "ml_engineer"
	RoleSecurityOfficer   = "security_officer"
	RoleSystemOwner       = "system_owner"
)

// fallbackRules apply to violations of controls the table does not know.
var fallbackRules = []actionRule{
	{
		actionType:     models.ActionEscalate,
		priority:       models.PriorityHigh,
		assigneeRole:   RoleComplianceOfficer,
		deadlineOffset: 24 * time.Hour,
		description:    "Review violation without a remediation playbook and assign follow-up",
	},
}

// defaultRules is the remediation playbook per (framework, controlId).
func defaultRules() map[ruleKey][]actionRule {
	return map[ruleKey][]actionRule{
		// HIPAA breach notification: notify fast, document within the
		// regulatory window, and roll back immediately on critical exposure.
		{framework: "HIPAA", controlId: "164.404"}: {
			{
				actionType:     models.ActionNotify,
				priority:       models.PriorityImmediate,
				assigneeRole:   RolePrivacyOfficer,
				deadlineOffset: 2 * time.Hour,
				description:    "Notify privacy officer of potential PHI breach",
			},
			{
				actionType:     models.ActionDocument,
				priority:       models.PriorityHigh,
				assigneeRole:   RolePrivacyOfficer,
				deadlineOffset: 7 * 24 * time.Hour,
				description:    "Document breach assessment and affected records",
			},
			{
				actionType:     models.ActionRollback,
				priority:       models.PriorityImmediate,
				assigneeRole:   RoleMLEngineer,
				deadlineOffset: time.Hour,
				description:    "Roll back the exposing deployment pending manual approval",
				criticalOnly:   true,
			},
		},
		{framework: "HIPAA", controlId: "164.312"}: {
			{
				actionType:     models.ActionRestrict,
				priority:       models.PriorityUrgent,
				assigneeRole:   RoleSecurityOfficer,
				deadlineOffset: 4 * time.Hour,
				description:    "Restrict system access until access controls are verified",
			},
			{
				actionType:     models.ActionDocument,
				priority:       models.PriorityMedium,
				assigneeRole:   RoleSecurityOfficer,
				deadlineOffset: 3 * 24 * time.Hour,
				description:    "Document access control review findings",
			},
		},
		// California automated-decision bias audit.
		{framework: "CA-AI-Act", controlId: "CA-ADB-01"}: {
			{
				actionType:     models.ActionNotify,
				priority:       models.PriorityUrgent,
				assigneeRole:   RoleComplianceOfficer,
				deadlineOffset: 24 * time.Hour,
				description:    "Notify compliance officer of detected bias in automated decisions",
			},
			{
				actionType:     models.ActionDocument,
				priority:       models.PriorityHigh,
				assigneeRole:   RoleMLEngineer,
				deadlineOffset: 7 * 24 * time.Hour,
				description:    "Produce bias audit report with affected cohorts",
			},
			{
				actionType:     models.ActionRollback,
				priority:       models.PriorityUrgent,
				assigneeRole:   RoleMLEngineer,
				deadlineOffset: 12 * time.Hour,
				description:    "Roll back to the last audited model version",
				criticalOnly:   true,
			},
		},
		{framework: "CA-AI-Act", controlId: "CA-EMP-02"}: {
			{
				actionType:     models.ActionRestrict,
				priority:       models.PriorityUrgent,
				assigneeRole:   RoleSystemOwner,
				deadlineOffset: 24 * time.Hour,
				description:    "Suspend automated employment decisions pending human review",
			},
			{
				actionType:     models.ActionNotify,
				priority:       models.PriorityHigh,
				assigneeRole:   RoleComplianceOfficer,
				deadlineOffset: 48 * time.Hour,
				description:    "Notify compliance officer of employment AI decision incident",
			},
		},
		// Federal baseline: drift and reliability controls.
		{framework: "FED-AI", controlId: "FED-DR-01"}: {
			{
				actionType:     models.ActionNotify,
				priority:       models.PriorityHigh,
				assigneeRole:   RoleMLEngineer,
				deadlineOffset: 12 * time.Hour,
				description:    "Investigate model drift beyond tolerated bounds",
				automated:      true,
			},
			{
				actionType:     models.ActionDocument,
				priority:       models.PriorityMedium,
				assigneeRole:   RoleMLEngineer,
				deadlineOffset: 5 * 24 * time.Hour,
				description:    "Record drift analysis and retraining decision",
			},
		},
		{framework: "FED-AI", controlId: "FED-SEC-03"}: {
			{
				actionType:     models.ActionEscalate,
				priority:       models.PriorityImmediate,
				assigneeRole:   RoleSecurityOfficer,
				deadlineOffset: time.Hour,
				description:    "Escalate security incident to the incident response team",
			},
			{
				actionType:     models.ActionRestrict,
				priority:       models.PriorityImmediate,
				assigneeRole:   RoleSecurityOfficer,
				deadlineOffset: 2 * time.Hour,
				description:    "Isolate the affected system from production traffic",
				criticalOnly:   true,
			},
			{
				actionType:     models.ActionDocument,
				priority:       models.PriorityHigh,
				assigneeRole:   RoleSecurityOfficer,
				deadlineOffset: 3 * 24 * time.Hour,
				description:    "File the incident report with timeline and scope",
			},
		},
	}
}
