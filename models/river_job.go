package models

// run the trend forecaster over every monitored system of an organization
type PredictiveMonitoringArgs struct {
	OrganizationId string `json:"organization_id"`
}

func (PredictiveMonitoringArgs) Kind() string { return "predictive_monitoring" }
