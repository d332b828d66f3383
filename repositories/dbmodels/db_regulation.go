package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/guregu/null/v5"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/pure_utils"
	"github.com/modelproof/modelproof-backend/utils"
)

type DBRegulation struct {
	Id                    string    `db:"id"`
	Framework             string    `db:"framework"`
	Jurisdiction          string    `db:"jurisdiction"`
	Name                  string    `db:"name"`
	ControlId             string    `db:"control_id"`
	ControlName           string    `db:"control_name"`
	Description           string    `db:"description"`
	EventTypes            []string  `db:"event_types"`
	RequiresHighRisk      bool      `db:"requires_high_risk"`
	RequiresEmploymentAI  bool      `db:"requires_employment_ai"`
	SeverityOverrides     []byte    `db:"severity_overrides"`
	ReportingRequired     bool      `db:"reporting_required"`
	ReportingDeadlineDays int       `db:"reporting_deadline_days"`
	EffectiveDate         time.Time `db:"effective_date"`
	SunsetDate            null.Time `db:"sunset_date"`
}

const TABLE_REGULATIONS = "regulations"

var SelectRegulationColumns = utils.ColumnList[DBRegulation]()

func AdaptRegulation(db DBRegulation) (models.Regulation, error) {
	overrides := make(map[string]string)
	if len(db.SeverityOverrides) > 0 {
		if err := json.Unmarshal(db.SeverityOverrides, &overrides); err != nil {
			return models.Regulation{}, errors.Wrap(err, "can't decode regulation severity overrides")
		}
	}

	severityOverrides := make(map[models.EventType]models.Severity, len(overrides))
	for eventType, severity := range overrides {
		severityOverrides[models.EventType(eventType)] = models.SeverityFrom(severity)
	}

	eventTypes := pure_utils.Map(db.EventTypes,
		func(t string) models.EventType { return models.EventType(t) })

	return models.Regulation{
		Id:                    db.Id,
		Framework:             db.Framework,
		Jurisdiction:          db.Jurisdiction,
		Name:                  db.Name,
		ControlId:             db.ControlId,
		ControlName:           db.ControlName,
		Description:           db.Description,
		EventTypes:            eventTypes,
		RequiresHighRisk:      db.RequiresHighRisk,
		RequiresEmploymentAI:  db.RequiresEmploymentAI,
		SeverityOverrides:     severityOverrides,
		ReportingRequired:     db.ReportingRequired,
		ReportingDeadlineDays: db.ReportingDeadlineDays,
		EffectiveDate:         db.EffectiveDate,
		SunsetDate:            db.SunsetDate.Ptr(),
	}, nil
}
