package dbmodels

import (
	"time"

	"github.com/guregu/null/v5"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/utils"
)

type DBDeploymentRecord struct {
	Id             string      `db:"id"`
	OrganizationId string      `db:"organization_id"`
	AISystemId     string      `db:"ai_system_id"`
	Version        string      `db:"version"`
	Status         string      `db:"status"`
	Type           string      `db:"type"`
	DeployedBy     string      `db:"deployed_by"`
	RollbackFrom   null.String `db:"rollback_from"`
	DeployedAt     time.Time   `db:"deployed_at"`
}

const TABLE_DEPLOYMENTS = "deployments"

var SelectDeploymentColumns = utils.ColumnList[DBDeploymentRecord]()

func AdaptDeploymentRecord(db DBDeploymentRecord) (models.DeploymentRecord, error) {
	return models.DeploymentRecord{
		Id:             db.Id,
		OrganizationId: db.OrganizationId,
		AISystemId:     db.AISystemId,
		Version:        db.Version,
		Status:         models.DeploymentStatusFrom(db.Status),
		Type:           models.DeploymentType(db.Type),
		DeployedBy:     db.DeployedBy,
		RollbackFrom:   db.RollbackFrom.Ptr(),
		DeployedAt:     db.DeployedAt,
	}, nil
}
