package dbmodels

import (
	"time"

	"github.com/guregu/null/v5"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/utils"
)

type DBRollbackExecution struct {
	Id             string      `db:"id"`
	OrganizationId string      `db:"organization_id"`
	AISystemId     string      `db:"ai_system_id"`
	FromVersion    string      `db:"from_version"`
	ToVersion      string      `db:"to_version"`
	Trigger        string      `db:"trigger"`
	Status         string      `db:"status"`
	TriggeredBy    string      `db:"triggered_by"`
	ApprovedBy     null.String `db:"approved_by"`
	Error          null.String `db:"error"`
	CreatedAt      time.Time   `db:"created_at"`
	CompletedAt    null.Time   `db:"completed_at"`
}

const TABLE_ROLLBACK_EXECUTIONS = "rollback_executions"

var SelectRollbackExecutionColumns = utils.ColumnList[DBRollbackExecution]()

func AdaptRollbackExecution(db DBRollbackExecution) (models.RollbackExecution, error) {
	return models.RollbackExecution{
		Id:             db.Id,
		OrganizationId: db.OrganizationId,
		AISystemId:     db.AISystemId,
		FromVersion:    db.FromVersion,
		ToVersion:      db.ToVersion,
		Trigger:        models.RollbackTrigger(db.Trigger),
		Status:         models.RollbackStatusFrom(db.Status),
		TriggeredBy:    db.TriggeredBy,
		ApprovedBy:     db.ApprovedBy.Ptr(),
		Error:          db.Error.Ptr(),
		CreatedAt:      db.CreatedAt,
		CompletedAt:    db.CompletedAt.Ptr(),
	}, nil
}
