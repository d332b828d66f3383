package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/guregu/null/v5"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/utils"
)

type DBPolicy struct {
	Id             string    `db:"id"`
	OrganizationId string    `db:"organization_id"`
	Name           string    `db:"name"`
	Type           string    `db:"type"`
	Scope          string    `db:"scope"`
	ScopeFilter    []string  `db:"scope_filter"`
	Conditions     []byte    `db:"conditions"`
	Enforcement    []byte    `db:"enforcement"`
	Active         bool      `db:"active"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
	DeletedAt      null.Time `db:"deleted_at"`
}

const TABLE_POLICIES = "policies"

var SelectPolicyColumns = utils.ColumnList[DBPolicy]()

// dbPolicyConditions and dbEnforcementConfig are the persisted form of the
// typed policy blocks. They are validated at write time, so decoding failures
// here indicate corruption rather than user error.
type dbPolicyConditions struct {
	MinRiskLevel         *string `json:"min_risk_level,omitempty"`
	MaxRiskLevel         *string `json:"max_risk_level,omitempty"`
	RequireCertification bool    `json:"require_certification,omitempty"`
}

type dbApprovalWorkflow struct {
	ApproverRoles            []string `json:"approver_roles"`
	AllRequired              bool     `json:"all_required"`
	EscalationTimeoutMinutes int      `json:"escalation_timeout_minutes"`
}

type dbEnforcementConfig struct {
	Actions  []string            `json:"actions"`
	Approval *dbApprovalWorkflow `json:"approval,omitempty"`
}

func AdaptPolicy(db DBPolicy) (models.Policy, error) {
	var conditions dbPolicyConditions
	if len(db.Conditions) > 0 {
		if err := json.Unmarshal(db.Conditions, &conditions); err != nil {
			return models.Policy{}, errors.Wrap(err, "can't decode policy conditions")
		}
	}

	var enforcement dbEnforcementConfig
	if len(db.Enforcement) > 0 {
		if err := json.Unmarshal(db.Enforcement, &enforcement); err != nil {
			return models.Policy{}, errors.Wrap(err, "can't decode policy enforcement config")
		}
	}

	policy := models.Policy{
		Id:             db.Id,
		OrganizationId: db.OrganizationId,
		Name:           db.Name,
		Type:           models.PolicyTypeFrom(db.Type),
		Scope:          models.PolicyScopeFrom(db.Scope),
		ScopeFilter:    db.ScopeFilter,
		Active:         db.Active,
		CreatedAt:      db.CreatedAt,
		UpdatedAt:      db.UpdatedAt,
		DeletedAt:      db.DeletedAt.Ptr(),
	}

	if conditions.MinRiskLevel != nil {
		level := models.RiskLevelFrom(*conditions.MinRiskLevel)
		policy.Conditions.MinRiskLevel = &level
	}
	if conditions.MaxRiskLevel != nil {
		level := models.RiskLevelFrom(*conditions.MaxRiskLevel)
		policy.Conditions.MaxRiskLevel = &level
	}
	policy.Conditions.RequireCertification = conditions.RequireCertification

	for _, action := range enforcement.Actions {
		policy.Enforcement.Actions = append(policy.Enforcement.Actions, models.EnforcementAction(action))
	}
	if enforcement.Approval != nil {
		policy.Enforcement.Approval = &models.ApprovalWorkflow{
			ApproverRoles:            enforcement.Approval.ApproverRoles,
			AllRequired:              enforcement.Approval.AllRequired,
			EscalationTimeoutMinutes: enforcement.Approval.EscalationTimeoutMinutes,
		}
	}

	return policy, nil
}

func SerializePolicyConditions(conditions models.PolicyConditions) ([]byte, error) {
	db := dbPolicyConditions{
		RequireCertification: conditions.RequireCertification,
	}
	if conditions.MinRiskLevel != nil {
		value := conditions.MinRiskLevel.String()
		db.MinRiskLevel = &value
	}
	if conditions.MaxRiskLevel != nil {
		value := conditions.MaxRiskLevel.String()
		db.MaxRiskLevel = &value
	}
	return json.Marshal(db)
}

func SerializeEnforcementConfig(config models.EnforcementConfig) ([]byte, error) {
	db := dbEnforcementConfig{}
	for _, action := range config.Actions {
		db.Actions = append(db.Actions, string(action))
	}
	if config.Approval != nil {
		db.Approval = &dbApprovalWorkflow{
			ApproverRoles:            config.Approval.ApproverRoles,
			AllRequired:              config.Approval.AllRequired,
			EscalationTimeoutMinutes: config.Approval.EscalationTimeoutMinutes,
		}
	}
	return json.Marshal(db)
}
