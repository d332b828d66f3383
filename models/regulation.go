package models

import "time"

const JurisdictionFederal = "federal"

// Regulation is one control of a compliance framework: a federal baseline
// control, or a state overlay gated by geography and AI-system attributes.
// Regulations are read-mostly reference data, loaded once per cache TTL.
type Regulation struct {
	Id           string
	Framework    string
	Jurisdiction string
	Name         string
	ControlId    string
	ControlName  string
	Description  string

	// Applicability predicate
	EventTypes           []EventType
	RequiresHighRisk     bool
	RequiresEmploymentAI bool

	// SeverityOverrides maps event types to the severity a violation takes when
	// the event itself is not critical.
	SeverityOverrides map[EventType]Severity

	ReportingRequired     bool
	ReportingDeadlineDays int

	EffectiveDate time.Time
	SunsetDate    *time.Time
}

func (r Regulation) IsFederal() bool {
	return r.Jurisdiction == JurisdictionFederal
}

// ActiveAt reports whether the regulation is in force at t.
func (r Regulation) ActiveAt(t time.Time) bool {
	if t.Before(r.EffectiveDate) {
		return false
	}
	if r.SunsetDate != nil && t.After(*r.SunsetDate) {
		return false
	}
	return true
}

// AppliesToEventType reports event-type membership, the first of the three
// applicability gates.
func (r Regulation) AppliesToEventType(eventType EventType) bool {
	for _, t := range r.EventTypes {
		if t == eventType {
			return true
		}
	}
	return false
}

type CreateRegulationInput struct {
	Framework             string            `validate:"required"`
	Jurisdiction          string            `validate:"required"`
	Name                  string            `validate:"required"`
	ControlId             string            `validate:"required"`
	ControlName           string            `validate:"required"`
	Description           string            `validate:"required"`
	EventTypes            []string          `validate:"required,min=1,dive,required"`
	RequiresHighRisk      bool
	RequiresEmploymentAI  bool
	SeverityOverrides     map[string]string `validate:"dive,oneof=low medium high critical"`
	ReportingRequired     bool
	ReportingDeadlineDays int               `validate:"gte=0"`
	EffectiveDate         time.Time         `validate:"required"`
	SunsetDate            *time.Time
}
