package dbmodels

import (
	"time"

	"github.com/guregu/null/v5"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/utils"
)

type DBRequiredAction struct {
	Id           string      `db:"id"`
	ViolationId  string      `db:"violation_id"`
	Type         string      `db:"type"`
	Priority     string      `db:"priority"`
	AssigneeRole string      `db:"assignee_role"`
	Deadline     time.Time   `db:"deadline"`
	Automated    bool        `db:"automated"`
	Description  string      `db:"description"`
	Details      string      `db:"details"`
	CreatedAt    time.Time   `db:"created_at"`
	CompletedAt  null.Time   `db:"completed_at"`
	CompletedBy  null.String `db:"completed_by"`
}

const TABLE_REQUIRED_ACTIONS = "required_actions"

var SelectRequiredActionColumns = utils.ColumnList[DBRequiredAction]()

func AdaptRequiredAction(db DBRequiredAction) (models.RequiredAction, error) {
	return models.RequiredAction{
		Id:           db.Id,
		ViolationId:  db.ViolationId,
		Type:         models.ActionType(db.Type),
		Priority:     models.ActionPriorityFrom(db.Priority),
		AssigneeRole: db.AssigneeRole,
		Deadline:     db.Deadline,
		Automated:    db.Automated,
		Description:  db.Description,
		Details:      db.Details,
		CreatedAt:    db.CreatedAt,
		CompletedAt:  db.CompletedAt.Ptr(),
		CompletedBy:  db.CompletedBy.Ptr(),
	}, nil
}
