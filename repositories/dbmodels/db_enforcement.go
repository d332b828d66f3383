package dbmodels

import (
	"time"

	"github.com/guregu/null/v5"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/utils"
)

type DBEnforcementLogEntry struct {
	Id             string      `db:"id"`
	OrganizationId string      `db:"organization_id"`
	PolicyId       string      `db:"policy_id"`
	AISystemId     string      `db:"ai_system_id"`
	Action         string      `db:"action"`
	ViolationId    null.String `db:"violation_id"`
	CreatedAt      time.Time   `db:"created_at"`
}

const TABLE_ENFORCEMENT_LOG = "enforcement_log"

var SelectEnforcementLogColumns = utils.ColumnList[DBEnforcementLogEntry]()

func AdaptEnforcementLogEntry(db DBEnforcementLogEntry) (models.EnforcementLogEntry, error) {
	return models.EnforcementLogEntry{
		Id:             db.Id,
		OrganizationId: db.OrganizationId,
		PolicyId:       db.PolicyId,
		AISystemId:     db.AISystemId,
		Action:         db.Action,
		ViolationId:    db.ViolationId.Ptr(),
		CreatedAt:      db.CreatedAt,
	}, nil
}

type DBGovernanceAlert struct {
	Id             string    `db:"id"`
	OrganizationId string    `db:"organization_id"`
	AISystemId     string    `db:"ai_system_id"`
	Source         string    `db:"source"`
	Severity       string    `db:"severity"`
	Message        string    `db:"message"`
	CreatedAt      time.Time `db:"created_at"`
}

const TABLE_GOVERNANCE_ALERTS = "governance_alerts"

var SelectGovernanceAlertColumns = utils.ColumnList[DBGovernanceAlert]()

func AdaptGovernanceAlert(db DBGovernanceAlert) (models.GovernanceAlert, error) {
	return models.GovernanceAlert{
		Id:             db.Id,
		OrganizationId: db.OrganizationId,
		AISystemId:     db.AISystemId,
		Source:         db.Source,
		Severity:       models.SeverityFrom(db.Severity),
		Message:        db.Message,
		CreatedAt:      db.CreatedAt,
	}, nil
}
