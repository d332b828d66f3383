package remediation

import (
	"fmt"
	"sort"
	"time"

	"github.com/modelproof/modelproof-backend/models"
)

// actionRule is one remediation template for a (framework, controlId) pair.
// DeadlineOffset is relative to the violation's detection time.
type actionRule struct {
	actionType     models.ActionType
	priority       models.ActionPriority
	assigneeRole   string
	deadlineOffset time.Duration
	automated      bool
	description    string
	// criticalOnly rules fire only when the violation itself is critical.
	criticalOnly bool
}

type ruleKey struct {
	framework string
	controlId string
}

// Generator maps violations to prioritized, deduplicated remediation actions.
// It is a pure function of its rule table and the violations, and performs no
// I/O.
type Generator struct {
	rules map[ruleKey][]actionRule
}

func NewGenerator() Generator {
	return Generator{rules: defaultRules()}
}

// GenerateForViolation derives the remediation actions of one violation,
// deduplicated and sorted by priority then deadline. Violations with no rule
// fall back to a single escalation to the compliance officer.
func (g Generator) GenerateForViolation(violation models.Violation) []models.RequiredAction {
	rules, ok := g.rules[ruleKey{framework: violation.Framework, controlId: violation.ControlId}]
	if !ok {
		rules = fallbackRules
	}

	var actions []models.RequiredAction
	for _, rule := range rules {
		if rule.criticalOnly && violation.Severity != models.SeverityCritical {
			continue
		}
		actions = append(actions, models.RequiredAction{
			ViolationId:  violation.Id,
			Type:         rule.actionType,
			Priority:     rule.priority,
			AssigneeRole: rule.assigneeRole,
			Deadline:     violation.DetectedAt.Add(rule.deadlineOffset),
			Automated:    rule.automated,
			Description:  rule.description,
			Details: fmt.Sprintf("%s control %s, severity %s",
				violation.Framework, violation.ControlId, violation.Severity),
		})
	}

	return sortActions(dedupActions(actions))
}

// Generate derives actions for a batch of violations, keyed by violation id.
func (g Generator) Generate(violations []models.Violation) map[string][]models.RequiredAction {
	actions := make(map[string][]models.RequiredAction, len(violations))
	for _, violation := range violations {
		actions[violation.Id] = g.GenerateForViolation(violation)
	}
	return actions
}

// dedupActions keeps the higher-priority instance of each duplicate key.
func dedupActions(actions []models.RequiredAction) []models.RequiredAction {
	kept := make(map[string]models.RequiredAction, len(actions))
	order := make([]string, 0, len(actions))
	for _, action := range actions {
		key := action.DedupKey()
		existing, ok := kept[key]
		if !ok {
			order = append(order, key)
			kept[key] = action
			continue
		}
		if action.Priority < existing.Priority {
			kept[key] = action
		}
	}

	deduped := make([]models.RequiredAction, 0, len(order))
	for _, key := range order {
		deduped = append(deduped, kept[key])
	}
	return deduped
}

func sortActions(actions []models.RequiredAction) []models.RequiredAction {
	sort.SliceStable(actions, func(i, j int) bool {
		if actions[i].Priority != actions[j].Priority {
			return actions[i].Priority < actions[j].Priority
		}
		return actions[i].Deadline.Before(actions[j].Deadline)
	})
	return actions
}
