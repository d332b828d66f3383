package dbmodels

import (
	"time"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/utils"
)

type DBAISystem struct {
	Id             string    `db:"id"`
	OrganizationId string    `db:"organization_id"`
	Name           string    `db:"name"`
	Department     string    `db:"department"`
	Location       string    `db:"location"`
	RiskLevel      string    `db:"risk_level"`
	VendorId       string    `db:"vendor_id"`
	Category       string    `db:"category"`
	Certified      bool      `db:"certified"`
	IsHighRisk     bool      `db:"is_high_risk"`
	IsEmploymentAI bool      `db:"is_employment_ai"`
	CreatedAt      time.Time `db:"created_at"`
}

const TABLE_AI_SYSTEMS = "ai_systems"

var SelectAISystemColumns = utils.ColumnList[DBAISystem]()

func AdaptAISystem(db DBAISystem) (models.AISystem, error) {
	return models.AISystem{
		Id:             db.Id,
		OrganizationId: db.OrganizationId,
		Name:           db.Name,
		Department:     db.Department,
		Location:       db.Location,
		RiskLevel:      models.RiskLevelFrom(db.RiskLevel),
		VendorId:       db.VendorId,
		Category:       db.Category,
		Certified:      db.Certified,
		IsHighRisk:     db.IsHighRisk,
		IsEmploymentAI: db.IsEmploymentAI,
		CreatedAt:      db.CreatedAt,
	}, nil
}
