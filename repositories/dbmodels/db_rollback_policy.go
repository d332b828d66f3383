package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/pure_utils"
	"github.com/modelproof/modelproof-backend/utils"
)

type DBRollbackPolicy struct {
	Id                     string    `db:"id"`
	OrganizationId         string    `db:"organization_id"`
	AISystemId             string    `db:"ai_system_id"`
	Enabled                bool      `db:"enabled"`
	Triggers               []byte    `db:"triggers"`
	AutoRollbackOnCritical bool      `db:"auto_rollback_on_critical"`
	CooldownMinutes        int       `db:"cooldown_minutes"`
	MaxAutomatedPerDay     int       `db:"max_automated_per_day"`
	RequireApproval        bool      `db:"require_approval"`
	ApproverRoles          []string  `db:"approver_roles"`
	CreatedAt              time.Time `db:"created_at"`
}

const TABLE_ROLLBACK_POLICIES = "rollback_policies"

var SelectRollbackPolicyColumns = utils.ColumnList[DBRollbackPolicy]()

type dbRollbackTriggerRule struct {
	ViolationType string `json:"violation_type"`
	Severity      string `json:"severity"`
}

func AdaptRollbackPolicy(db DBRollbackPolicy) (models.RollbackPolicy, error) {
	var rules []dbRollbackTriggerRule
	if len(db.Triggers) > 0 {
		if err := json.Unmarshal(db.Triggers, &rules); err != nil {
			return models.RollbackPolicy{}, errors.Wrap(err, "can't decode rollback policy triggers")
		}
	}

	triggers := pure_utils.Map(rules, func(rule dbRollbackTriggerRule) models.RollbackTriggerRule {
		return models.RollbackTriggerRule{
			ViolationType: rule.ViolationType,
			Severity:      rule.Severity,
		}
	})

	return models.RollbackPolicy{
		Id:                     db.Id,
		OrganizationId:         db.OrganizationId,
		AISystemId:             db.AISystemId,
		Enabled:                db.Enabled,
		Triggers:               triggers,
		AutoRollbackOnCritical: db.AutoRollbackOnCritical,
		CooldownMinutes:        db.CooldownMinutes,
		MaxAutomatedPerDay:     db.MaxAutomatedPerDay,
		RequireApproval:        db.RequireApproval,
		ApproverRoles:          db.ApproverRoles,
		CreatedAt:              db.CreatedAt,
	}, nil
}

func SerializeRollbackTriggers(triggers []models.RollbackTriggerRule) ([]byte, error) {
	rules := pure_utils.Map(triggers, func(trigger models.RollbackTriggerRule) dbRollbackTriggerRule {
		return dbRollbackTriggerRule{
			ViolationType: trigger.ViolationType,
			Severity:      trigger.Severity,
		}
	})
	return json.Marshal(rules)
}
