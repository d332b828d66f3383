package dbmodels

import (
	"time"

	"github.com/guregu/null/v5"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/utils"
)

type DBViolation struct {
	Id                string      `db:"id"`
	OrganizationId    string      `db:"organization_id"`
	AISystemId        string      `db:"ai_system_id"`
	Source            string      `db:"source"`
	Framework         string      `db:"framework"`
	RegulationId      null.String `db:"regulation_id"`
	PolicyId          null.String `db:"policy_id"`
	ControlId         string      `db:"control_id"`
	Severity          string      `db:"severity"`
	Description       []byte      `db:"description"`
	ReportingRequired bool        `db:"reporting_required"`
	ReportingDeadline null.Time   `db:"reporting_deadline"`
	DetectedAt        time.Time   `db:"detected_at"`
	ResolvedAt        null.Time   `db:"resolved_at"`
	ResolvedBy        null.String `db:"resolved_by"`
}

const TABLE_VIOLATIONS = "violations"

var SelectViolationColumns = utils.ColumnList[DBViolation]()

// AdaptViolation leaves Description empty: the encrypted blob is decrypted by
// the repository, which owns the encryption capability.
func AdaptViolation(db DBViolation) (models.Violation, error) {
	return models.Violation{
		Id:                db.Id,
		OrganizationId:    db.OrganizationId,
		AISystemId:        db.AISystemId,
		Source:            models.ViolationSourceFrom(db.Source),
		Framework:         db.Framework,
		RegulationId:      db.RegulationId.Ptr(),
		PolicyId:          db.PolicyId.Ptr(),
		ControlId:         db.ControlId,
		Severity:          models.SeverityFrom(db.Severity),
		ReportingRequired: db.ReportingRequired,
		ReportingDeadline: db.ReportingDeadline.Ptr(),
		DetectedAt:        db.DetectedAt,
		ResolvedAt:        db.ResolvedAt.Ptr(),
		ResolvedBy:        db.ResolvedBy.Ptr(),
	}, nil
}
